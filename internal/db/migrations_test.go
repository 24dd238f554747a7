// Copyright (c) 2026 Keymaster Team
// srvinv - server inventory tracking
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"database/sql"
	"reflect"
	"testing"

	_ "modernc.org/sqlite"
)

func TestRunMigrationsSqlite(t *testing.T) {
	dbConn, err := sql.Open("sqlite", "file:test_migrations?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	dbConn.SetMaxOpenConns(1)
	defer func() { _ = dbConn.Close() }()

	if err := RunMigrations(dbConn, "sqlite"); err != nil {
		t.Fatalf("RunMigrations failed: %v", err)
	}
	// A second run must be a no-op.
	if err := RunMigrations(dbConn, "sqlite"); err != nil {
		t.Fatalf("second RunMigrations failed: %v", err)
	}

	var versions []string
	rows, err := dbConn.Query("SELECT version FROM schema_migrations ORDER BY version")
	if err != nil {
		t.Fatalf("query schema_migrations failed: %v", err)
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			t.Fatalf("scan version failed: %v", err)
		}
		versions = append(versions, v)
	}
	if want := []string{"000001_create_inventory_tables"}; !reflect.DeepEqual(versions, want) {
		t.Fatalf("applied migrations = %v; want %v", versions, want)
	}
}

func TestRunMigrationsUnknownType(t *testing.T) {
	dbConn, err := sql.Open("sqlite", "file:test_migrations_unknown?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	defer func() { _ = dbConn.Close() }()
	if err := RunMigrations(dbConn, "oracle"); err == nil {
		t.Fatalf("expected error for unknown database type")
	}
}

func TestSplitStatements(t *testing.T) {
	script := "-- comment\nCREATE TABLE a (id INT);\n\nCREATE TABLE b (id INT);\n"
	got := splitStatements(script)
	want := []string{"CREATE TABLE a (id INT)", "CREATE TABLE b (id INT)"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("splitStatements = %q; want %q", got, want)
	}
}

func TestNewRejectsUnknownType(t *testing.T) {
	if _, err := New("oracle", "whatever"); err == nil {
		t.Fatalf("expected error for unsupported database type")
	}
}
