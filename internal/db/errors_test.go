// Copyright (c) 2026 Keymaster Team
// srvinv - server inventory tracking
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"
)

func TestMapDBError_DuplicateStrings(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"mysql duplicate entry", errors.New("Error 1062: Duplicate entry 'Alice' for key 'name'")},
		{"postgres unique violation", errors.New("ERROR: duplicate key value violates unique constraint \"admin_name_key\" (SQLSTATE 23505)")},
		{"sqlite unique constraint", errors.New("constraint failed: UNIQUE constraint failed: admin.name (2067)")},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if mapped := MapDBError(c.err); !errors.Is(mapped, ErrDuplicate) {
				t.Fatalf("expected ErrDuplicate for case %s, got: %v", c.name, mapped)
			}
		})
	}
}

func TestMapDBError_ForeignKeyStrings(t *testing.T) {
	cases := []error{
		errors.New("ERROR: update or delete on table \"server_status\" violates foreign key constraint (SQLSTATE 23503)"),
		errors.New("Error 1451: Cannot delete or update a parent row"),
		errors.New("FOREIGN KEY constraint failed"),
	}
	for _, e := range cases {
		if mapped := MapDBError(e); !errors.Is(mapped, ErrInUse) {
			t.Fatalf("expected ErrInUse for %q, got: %v", e, mapped)
		}
	}
}

func TestMapDBError_NoRows(t *testing.T) {
	if mapped := MapDBError(fmt.Errorf("scan: %w", sql.ErrNoRows)); !errors.Is(mapped, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", mapped)
	}
}

func TestMapDBError_Passthrough(t *testing.T) {
	if MapDBError(nil) != nil {
		t.Fatalf("expected nil for nil input")
	}
	e := errors.New("some network error")
	mapped := MapDBError(e)
	if mapped != e {
		t.Fatalf("expected original error to be returned unchanged, got: %v", mapped)
	}
}
