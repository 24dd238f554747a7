// Copyright (c) 2026 Keymaster Team
// srvinv - server inventory tracking
// This source code is licensed under the MIT license found in the LICENSE file.

// Package db is the entity store for srvinv. It keeps the five inventory
// tables and the three server association tables behind a bun-backed
// Store that runs on SQLite, PostgreSQL or MySQL.
//
// Every table offers the same four primitives: insert, find by an equality
// filter, update in place and delete. Rows always come back in creation
// order (ascending id). The server table additionally maintains the
// server_ip, server_tag and server_admin associations inside a single
// transaction per mutation.
//
// Testing notes
//   - Use an in-memory SQLite DSN of the form
//     "file:<name>?mode=memory&cache=shared"; New pins such stores to a
//     single connection so the schema stays visible.
//   - Every successful mutation appends an audit_log row; tests that count
//     audit entries should account for that.
package db // import "github.com/toeirei/srvinv/internal/db"
