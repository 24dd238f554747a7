// Copyright (c) 2026 Keymaster Team
// srvinv - server inventory tracking
// This source code is licensed under the MIT license found in the LICENSE file.

// Package tui implements the interactive server browser. Presentation and
// input handling live here; data comes from a Source, normally backed by
// core.Inventory.
package tui
