// Copyright (c) 2026 Keymaster Team
// srvinv - server inventory tracking
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"strings"
	"testing"

	"github.com/toeirei/srvinv/internal/model"
)

// WithTestStore opens an in-memory sqlite Store named after the test and
// closes it when fn returns.
func WithTestStore(t *testing.T, fn func(s *BunStore)) {
	t.Helper()
	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	s, err := New("sqlite", dsn)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer func() { _ = s.Close() }()
	fn(s)
}

// fixture holds the rows created by seedInventory.
type fixture struct {
	running, stopped model.ServerStatus
	web, db          model.ServerType
	ip1, ip2         model.IP
	prod, dev        model.Tag
	alice, bob       model.Admin
}

// seedInventory inserts two of every lookup entity.
func seedInventory(t *testing.T, s *BunStore) fixture {
	t.Helper()
	ctx := context.Background()
	f := fixture{
		running: model.ServerStatus{Name: "Running"},
		stopped: model.ServerStatus{Name: "Stopped"},
		web:     model.ServerType{Name: "Web"},
		db:      model.ServerType{Name: "Database"},
		ip1:     model.IP{Address: "10.0.0.1"},
		ip2:     model.IP{Address: "10.0.0.2"},
		prod:    model.Tag{Name: "prod"},
		dev:     model.Tag{Name: "dev"},
		alice:   model.Admin{Name: "Alice"},
		bob:     model.Admin{Name: "Bob"},
	}
	for _, st := range []*model.ServerStatus{&f.running, &f.stopped} {
		if err := s.Statuses().Insert(ctx, st); err != nil {
			t.Fatalf("insert status: %v", err)
		}
	}
	for _, ty := range []*model.ServerType{&f.web, &f.db} {
		if err := s.Types().Insert(ctx, ty); err != nil {
			t.Fatalf("insert type: %v", err)
		}
	}
	for _, ip := range []*model.IP{&f.ip1, &f.ip2} {
		if err := s.IPs().Insert(ctx, ip); err != nil {
			t.Fatalf("insert ip: %v", err)
		}
	}
	for _, tag := range []*model.Tag{&f.prod, &f.dev} {
		if err := s.Tags().Insert(ctx, tag); err != nil {
			t.Fatalf("insert tag: %v", err)
		}
	}
	for _, a := range []*model.Admin{&f.alice, &f.bob} {
		if err := s.Admins().Insert(ctx, a); err != nil {
			t.Fatalf("insert admin: %v", err)
		}
	}
	return f
}
