// Copyright (c) 2026 Keymaster Team
// srvinv - server inventory tracking
// This source code is licensed under the MIT license found in the LICENSE file.
//
// Package cli implements the srvinv command line using Cobra. It loads the
// configuration, opens the store and hands every inventory command to the
// operations in internal/core. CLI code stays thin: parsing flags, printing
// tables and translating errors.
package cli
