// Copyright (c) 2026 Keymaster Team
// srvinv - server inventory tracking
// This source code is licensed under the MIT license found in the LICENSE file.

package core

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/toeirei/srvinv/internal/db"
)

// newTestInventory opens an isolated in-memory store for the test.
func newTestInventory(t *testing.T) (*Inventory, *db.BunStore) {
	t.Helper()
	dsn := "file:core_" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	s, err := db.New("sqlite", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return NewInventory(s), s
}

// seedLookups adds statuses Running/Stopped, types Web/Database, IPs
// 10.0.0.1/10.0.0.2, tags prod/dev/eu and admins Alice/Bob.
func seedLookups(t *testing.T, inv *Inventory) {
	t.Helper()
	ctx := context.Background()
	for _, n := range []string{"Running", "Stopped"} {
		_, err := inv.Statuses.Add(ctx, n)
		require.NoError(t, err)
	}
	for _, n := range []string{"Web", "Database"} {
		_, err := inv.Types.Add(ctx, n)
		require.NoError(t, err)
	}
	for _, a := range []string{"10.0.0.1", "10.0.0.2"} {
		_, err := inv.IPs.Add(ctx, a)
		require.NoError(t, err)
	}
	for _, n := range []string{"prod", "dev", "eu"} {
		_, err := inv.Tags.Add(ctx, n)
		require.NoError(t, err)
	}
	for _, n := range []string{"Alice", "Bob"} {
		_, err := inv.Admins.Add(ctx, n)
		require.NoError(t, err)
	}
}

func serverNames(t *testing.T, inv *Inventory, q ServerQuery) []string {
	t.Helper()
	rows, err := inv.Servers.Get(context.Background(), q)
	require.NoError(t, err)
	names := make([]string, 0, len(rows))
	for _, s := range rows {
		names = append(names, s.Name)
	}
	return names
}
