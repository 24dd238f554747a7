// Copyright (c) 2026 Keymaster Team
// srvinv - server inventory tracking
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"database/sql"
	"testing"

	"github.com/uptrace/bun/dialect"
	_ "modernc.org/sqlite"
)

func TestCreateBunDB_VariousDialects(t *testing.T) {
	sqlDB, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite in-memory: %v", err)
	}
	defer func() { _ = sqlDB.Close() }()

	cases := map[string]dialect.Name{
		"sqlite":   dialect.SQLite,
		"postgres": dialect.PG,
		"mysql":    dialect.MySQL,
		"unknown":  dialect.SQLite,
	}
	for dbType, want := range cases {
		b := createBunDB(sqlDB, dbType)
		if got := b.Dialect().Name(); got != want {
			t.Fatalf("createBunDB(%s) dialect = %v; want %v", dbType, got, want)
		}
	}
}

func TestDriverFor(t *testing.T) {
	for dbType, want := range map[string]string{"sqlite": "sqlite", "postgres": "pgx", "mysql": "mysql"} {
		got, err := driverFor(dbType)
		if err != nil || got != want {
			t.Fatalf("driverFor(%s) = %q, %v; want %q", dbType, got, err, want)
		}
	}
	if _, err := driverFor("oracle"); err == nil {
		t.Fatalf("expected error for unknown type")
	}
}
