// Copyright (c) 2026 Keymaster Team
// srvinv - server inventory tracking
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"database/sql"
	"errors"
	"strings"
)

var (
	// ErrDuplicate is returned when attempting to insert a record that already exists.
	ErrDuplicate = errors.New("duplicate record")
	// ErrNotFound is returned when a row addressed by id does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrInUse is returned when deleting a row that servers still reference.
	ErrInUse = errors.New("record is in use")
	// ErrInvalidFilter is returned when a filter names an unknown column.
	ErrInvalidFilter = errors.New("invalid filter column")
)

// MapDBError inspects low-level driver errors and maps common constraint
// violations to package-level sentinel errors. The mapping is string-based
// so no driver package has to be imported here.
func MapDBError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	le := strings.ToLower(err.Error())
	// MySQL duplicate entry (1062), Postgres unique violation (23505), SQLite unique constraint
	if strings.Contains(le, "duplicate") || strings.Contains(le, "unique") || strings.Contains(le, "23505") || strings.Contains(le, "1062") {
		return ErrDuplicate
	}
	// Postgres foreign key violation (23503), MySQL row is referenced (1451)
	if strings.Contains(le, "foreign key") || strings.Contains(le, "23503") || strings.Contains(le, "1451") {
		return ErrInUse
	}
	return err
}
