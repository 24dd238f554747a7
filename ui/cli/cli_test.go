// Copyright (c) 2026 Keymaster Team
// srvinv - server inventory tracking
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toeirei/srvinv/internal/core"
	"github.com/toeirei/srvinv/internal/db"
	"github.com/toeirei/srvinv/internal/i18n"
)

// newTestApp returns an app bound to a fresh in-memory store. The config
// dir points at a temp dir so no real srvinv.yaml is read.
func newTestApp(t *testing.T) *app {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	store, err := db.New("sqlite", dsn)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
		i18n.Init("en")
	})
	return &app{store: store}
}

// execute runs the command line args against a and returns its output.
func execute(t *testing.T, a *app, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(a)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func mustExecute(t *testing.T, a *app, args ...string) string {
	t.Helper()
	out, err := execute(t, a, args...)
	require.NoError(t, err, out)
	return out
}

// seed creates the lookup rows the server commands resolve against.
func seed(t *testing.T, a *app) {
	t.Helper()
	mustExecute(t, a, "status", "add", "Running")
	mustExecute(t, a, "status", "add", "Stopped")
	mustExecute(t, a, "type", "add", "Web")
	mustExecute(t, a, "ip", "add", "10.0.0.1")
	mustExecute(t, a, "ip", "add", "10.0.0.2")
	mustExecute(t, a, "tag", "add", "prod")
	mustExecute(t, a, "tag", "add", "edge")
	mustExecute(t, a, "admin", "add", "Alice")
}

func TestLookupCommands(t *testing.T) {
	a := newTestApp(t)

	out := mustExecute(t, a, "tag", "add", "prod")
	assert.Equal(t, "Added tag 1.\n", out)

	out = mustExecute(t, a, "tag", "list")
	assert.Equal(t, "ID\tName\n1\tprod\n", out)

	out = mustExecute(t, a, "tag", "update", "1", "--name", "staging")
	assert.Equal(t, "Updated tag 1.\n", out)

	out = mustExecute(t, a, "tag", "show", "1")
	assert.Contains(t, out, "staging")

	out = mustExecute(t, a, "tag", "list", "--name", "prod")
	assert.Equal(t, "No results.\n", out)

	out = mustExecute(t, a, "tag", "delete", "1")
	assert.Equal(t, "Deleted tag 1.\n", out)

	_, err := execute(t, a, "tag", "show", "1")
	require.Error(t, err)
	assert.True(t, core.IsNotFound(err))
}

func TestIPCommandUsesAddressField(t *testing.T) {
	a := newTestApp(t)
	mustExecute(t, a, "ip", "add", "192.168.1.10")
	out := mustExecute(t, a, "ip", "list", "--address", "192.168.1.10")
	assert.Equal(t, "ID\tAddress\n1\t192.168.1.10\n", out)

	_, err := execute(t, a, "ip", "add", "300.1.1.1")
	require.Error(t, err)
	assert.True(t, core.IsValidation(err))
}

func TestLookupCommandErrors(t *testing.T) {
	a := newTestApp(t)

	_, err := execute(t, a, "status", "add", "running")
	require.Error(t, err)
	assert.True(t, errors.Is(err, &core.Error{Kind: core.KindCapital}))

	_, err = execute(t, a, "admin", "show", "abc")
	require.Error(t, err)
	assert.True(t, errors.Is(err, &core.Error{Entity: core.EntityAdmin, Kind: core.KindType}))

	mustExecute(t, a, "admin", "add", "Alice")
	_, err = execute(t, a, "admin", "add", "Alice")
	require.Error(t, err)
	assert.True(t, core.IsConflict(err))
}

func TestServerCommands(t *testing.T) {
	a := newTestApp(t)
	seed(t, a)

	out := mustExecute(t, a, "server", "add", "web01", "--status", "Running", "--type", "Web",
		"--ips", "10.0.0.1,10.0.0.2", "--tags", "prod, edge", "--admins", "Alice", "--description", "frontend")
	assert.Equal(t, "Added server 1.\n", out)

	out = mustExecute(t, a, "server", "list", "--tags", "prod,edge")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "1\tweb01\tRunning\tWeb\t10.0.0.1,10.0.0.2\tprod,edge\tAlice\tfrontend", lines[1])

	out = mustExecute(t, a, "server", "list", "--status", "Stopped")
	assert.Equal(t, "No results.\n", out)

	// Clearing the tags leaves the other relations alone.
	mustExecute(t, a, "server", "update", "1", "--tags", "", "--status", "Stopped")
	out = mustExecute(t, a, "server", "show", "1")
	assert.Contains(t, out, "Stopped")
	assert.Contains(t, out, "10.0.0.1,10.0.0.2")
	assert.NotContains(t, out, "prod")

	out = mustExecute(t, a, "server", "delete", "1")
	assert.Equal(t, "Deleted server 1.\n", out)

	// Relation rows go, related rows stay.
	out = mustExecute(t, a, "tag", "list")
	assert.Contains(t, out, "prod")
}

func TestServerCommandErrors(t *testing.T) {
	a := newTestApp(t)
	seed(t, a)

	_, err := execute(t, a, "server", "add", "web01", "--type", "Web")
	require.Error(t, err, "--status is required")

	_, err = execute(t, a, "server", "add", "web01", "--status", "Missing", "--type", "Web")
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrStatusNotFound)

	_, err = execute(t, a, "server", "add", "web01", "--status", "Running", "--type", "Web", "--tags", "prod,nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrTagNotFound)

	// Nothing was written by the failed adds.
	out := mustExecute(t, a, "server", "list")
	assert.Equal(t, "No results.\n", out)
}

func TestHistoryCommand(t *testing.T) {
	a := newTestApp(t)
	mustExecute(t, a, "tag", "add", "prod")
	mustExecute(t, a, "tag", "delete", "1")

	out := mustExecute(t, a, "history", "--limit", "1")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "DELETE_TAG")
}

func TestBackupAndRestoreCommands(t *testing.T) {
	a := newTestApp(t)
	seed(t, a)
	mustExecute(t, a, "server", "add", "web01", "--status", "Running", "--type", "Web", "--tags", "prod")

	file := filepath.Join(t.TempDir(), "inventory.json")
	out := mustExecute(t, a, "backup", file)
	assert.Contains(t, out, file+".zst")
	_, err := os.Stat(file + ".zst")
	require.NoError(t, err)

	mustExecute(t, a, "server", "delete", "1")

	_, err = execute(t, a, "restore", file+".zst")
	require.ErrorIs(t, err, errNotConfirmed)
	assert.Equal(t, "This replaces the whole inventory. Re-run with --yes to confirm.", describeError(err))

	mustExecute(t, a, "restore", file+".zst", "--yes")
	out = mustExecute(t, a, "server", "list", "--tags", "prod")
	assert.Contains(t, out, "web01")
}

func TestDBMaintainCommand(t *testing.T) {
	a := newTestApp(t)
	out := mustExecute(t, a, "db-maintain")
	assert.Equal(t, "Database maintenance finished.\n", out)
}

func TestLanguageFlag(t *testing.T) {
	a := newTestApp(t)
	out := mustExecute(t, a, "--language", "de", "tag", "add", "prod")
	assert.Equal(t, "tag 1 hinzugefügt.\n", out)
}

func TestVersionCommandSkipsStore(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	a := &app{}
	out := mustExecute(t, a, "version")
	assert.True(t, strings.HasPrefix(out, "srvinv "), out)
	assert.Nil(t, a.store, "version must not open the database")
}

func TestInitConfigCommand(t *testing.T) {
	a := newTestApp(t)
	out := mustExecute(t, a, "init-config", "--database.dsn", "/srv/inventory.db")
	assert.Contains(t, out, "srvinv.yaml")

	raw, err := os.ReadFile(filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "srvinv", "srvinv.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "/srv/inventory.db")
}

func TestOpenFromConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dbFile := filepath.Join(t.TempDir(), "srvinv.db")
	a := &app{}
	mustExecute(t, a, "--database.dsn", dbFile, "tag", "add", "prod")
	assert.Nil(t, a.store, "store is closed after the command")

	out := mustExecute(t, &app{}, "--database.dsn", dbFile, "tag", "list")
	assert.Contains(t, out, "prod")
}

func TestDescribeError(t *testing.T) {
	i18n.Init("en")
	assert.True(t, strings.HasPrefix(describeError(&core.Error{Entity: "tag", Kind: core.KindLength}), "Invalid input:"))
	assert.True(t, strings.HasPrefix(describeError(core.ErrIPNotFound), "Not found:"))
	assert.True(t, strings.HasPrefix(describeError(db.ErrInUse), "Conflict:"))
	assert.True(t, strings.HasPrefix(describeError(errors.New("boom")), "Error:"))
}

func TestSuggest(t *testing.T) {
	all := []string{"prod", "preview", "dev"}
	got, _ := suggest(all, "p", false)
	assert.Equal(t, []string{"preview", "prod"}, got)

	got, _ = suggest(all, "dev,pr", true)
	assert.Equal(t, []string{"dev,preview", "dev,prod"}, got)
}

func TestRenderTable(t *testing.T) {
	plain := renderTable([]string{"ID", "Name"}, [][]string{{"1", "prod"}}, false)
	assert.Equal(t, "ID\tName\n1\tprod", plain)

	styled := renderTable([]string{"ID", "Name"}, [][]string{{"1", "prod"}}, true)
	assert.Contains(t, styled, "prod")
	assert.Contains(t, styled, "─")
}
