// Copyright (c) 2026 Keymaster Team
// srvinv - server inventory tracking
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"testing"
)

func TestRunMaintenance_Sqlite(t *testing.T) {
	WithTestStore(t, func(s *BunStore) {
		seedInventory(t, s)
		ctx := context.Background()
		if err := s.RunMaintenance(ctx); err != nil {
			t.Fatalf("RunMaintenance(sqlite) failed: %v", err)
		}
		// The store must stay usable afterwards.
		admins, err := s.Admins().Find(ctx, nil)
		if err != nil {
			t.Fatalf("Find after maintenance failed: %v", err)
		}
		if len(admins) != 2 {
			t.Fatalf("expected 2 admins after maintenance, got %d", len(admins))
		}
	})
}

func TestRunMaintenance_UnsupportedType(t *testing.T) {
	WithTestStore(t, func(s *BunStore) {
		s.dbType = "oracle"
		defer func() { s.dbType = "sqlite" }()
		if err := s.RunMaintenance(context.Background()); err == nil {
			t.Fatalf("expected error for unsupported type")
		}
	})
}
