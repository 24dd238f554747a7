// Copyright (c) 2026 Keymaster Team
// srvinv - server inventory tracking
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"errors"
	"testing"

	"github.com/toeirei/srvinv/internal/model"
)

func TestTableInsertFindGet(t *testing.T) {
	WithTestStore(t, func(s *BunStore) {
		ctx := context.Background()
		f := seedInventory(t, s)
		if f.ip1.ID == 0 || f.ip2.ID <= f.ip1.ID {
			t.Fatalf("expected increasing ids, got %d and %d", f.ip1.ID, f.ip2.ID)
		}

		all, err := s.IPs().Find(ctx, nil)
		if err != nil {
			t.Fatalf("Find failed: %v", err)
		}
		if len(all) != 2 || all[0].Address != "10.0.0.1" || all[1].Address != "10.0.0.2" {
			t.Fatalf("unexpected ips: %+v", all)
		}

		byAddr, err := s.IPs().Find(ctx, Filter{"address": "10.0.0.2"})
		if err != nil {
			t.Fatalf("Find by address failed: %v", err)
		}
		if len(byAddr) != 1 || byAddr[0].ID != f.ip2.ID {
			t.Fatalf("unexpected filter result: %+v", byAddr)
		}

		got, err := s.Tags().Get(ctx, f.dev.ID)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got.Name != "dev" {
			t.Fatalf("Get returned %+v", got)
		}
	})
}

func TestTableFindCombinedFilter(t *testing.T) {
	WithTestStore(t, func(s *BunStore) {
		ctx := context.Background()
		f := seedInventory(t, s)
		got, err := s.Statuses().Find(ctx, Filter{"id": f.running.ID, "name": "Stopped"})
		if err != nil {
			t.Fatalf("Find failed: %v", err)
		}
		if len(got) != 0 {
			t.Fatalf("expected no rows for contradicting filter, got %+v", got)
		}
	})
}

func TestTableFindInvalidColumn(t *testing.T) {
	WithTestStore(t, func(s *BunStore) {
		_, err := s.Tags().Find(context.Background(), Filter{"colour": "red"})
		if !errors.Is(err, ErrInvalidFilter) {
			t.Fatalf("expected ErrInvalidFilter, got %v", err)
		}
	})
}

func TestTableGetMissing(t *testing.T) {
	WithTestStore(t, func(s *BunStore) {
		_, err := s.Admins().Get(context.Background(), 42)
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestAdminNameUnique(t *testing.T) {
	WithTestStore(t, func(s *BunStore) {
		ctx := context.Background()
		seedInventory(t, s)
		err := s.Admins().Insert(ctx, &model.Admin{Name: "Alice"})
		if !errors.Is(err, ErrDuplicate) {
			t.Fatalf("expected ErrDuplicate, got %v", err)
		}
	})
}

func TestDuplicateLookupNamesAllowed(t *testing.T) {
	WithTestStore(t, func(s *BunStore) {
		ctx := context.Background()
		for i := 0; i < 2; i++ {
			if err := s.Tags().Insert(ctx, &model.Tag{Name: "prod"}); err != nil {
				t.Fatalf("insert duplicate tag name: %v", err)
			}
		}
		got, err := s.Tags().Find(ctx, Filter{"name": "prod"})
		if err != nil {
			t.Fatalf("Find failed: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("expected 2 tags named prod, got %d", len(got))
		}
	})
}

func TestTableUpdate(t *testing.T) {
	WithTestStore(t, func(s *BunStore) {
		ctx := context.Background()
		f := seedInventory(t, s)
		f.web.Name = "Frontend"
		if err := s.Types().Update(ctx, f.web); err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		got, err := s.Types().Get(ctx, f.web.ID)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got.Name != "Frontend" {
			t.Fatalf("expected updated name, got %q", got.Name)
		}

		// Same values again must not be reported as missing.
		if err := s.Types().Update(ctx, f.web); err != nil {
			t.Fatalf("idempotent Update failed: %v", err)
		}

		err = s.Types().Update(ctx, model.ServerType{ID: 999, Name: "Ghost"})
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound for missing row, got %v", err)
		}
	})
}

func TestTableDeleteMissing(t *testing.T) {
	WithTestStore(t, func(s *BunStore) {
		err := s.IPs().Delete(context.Background(), 7)
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestDeleteReferencedStatusInUse(t *testing.T) {
	WithTestStore(t, func(s *BunStore) {
		ctx := context.Background()
		f := seedInventory(t, s)
		srv := model.Server{Name: "web01", StatusID: f.running.ID, TypeID: f.web.ID}
		if err := s.Servers().Insert(ctx, &srv); err != nil {
			t.Fatalf("insert server: %v", err)
		}
		if err := s.Statuses().Delete(ctx, f.running.ID); !errors.Is(err, ErrInUse) {
			t.Fatalf("expected ErrInUse for status, got %v", err)
		}
		if err := s.Types().Delete(ctx, f.web.ID); !errors.Is(err, ErrInUse) {
			t.Fatalf("expected ErrInUse for type, got %v", err)
		}
		// Unreferenced rows can go.
		if err := s.Statuses().Delete(ctx, f.stopped.ID); err != nil {
			t.Fatalf("delete unreferenced status: %v", err)
		}
	})
}

func TestAuditLogRecordsMutations(t *testing.T) {
	WithTestStore(t, func(s *BunStore) {
		ctx := context.Background()
		a := model.Admin{Name: "Carol"}
		if err := s.Admins().Insert(ctx, &a); err != nil {
			t.Fatalf("insert: %v", err)
		}
		if err := s.Admins().Delete(ctx, a.ID); err != nil {
			t.Fatalf("delete: %v", err)
		}
		entries, err := s.AuditLog(ctx)
		if err != nil {
			t.Fatalf("AuditLog failed: %v", err)
		}
		if len(entries) != 2 {
			t.Fatalf("expected 2 audit entries, got %d", len(entries))
		}
		if entries[0].Action != "DELETE_ADMIN" || entries[1].Action != "ADD_ADMIN" {
			t.Fatalf("unexpected audit order: %q, %q", entries[0].Action, entries[1].Action)
		}
		if entries[0].Timestamp.IsZero() || entries[0].Username == "" {
			t.Fatalf("audit entry missing metadata: %+v", entries[0])
		}
	})
}
