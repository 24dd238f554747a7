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

func TestServerInsertLoadsRelations(t *testing.T) {
	WithTestStore(t, func(s *BunStore) {
		ctx := context.Background()
		f := seedInventory(t, s)
		srv := model.Server{
			Name:        "web01",
			Description: "frontend node",
			StatusID:    f.running.ID,
			TypeID:      f.web.ID,
			IPs:         []model.IP{f.ip2, f.ip1, f.ip2},
			Tags:        []model.Tag{f.prod},
			Admins:      []model.Admin{f.bob, f.alice},
		}
		if err := s.Servers().Insert(ctx, &srv); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
		if srv.ID == 0 {
			t.Fatalf("expected assigned id")
		}
		if srv.Status.Name != "Running" || srv.Type.Name != "Web" {
			t.Fatalf("relations not resolved: %+v", srv)
		}
		if len(srv.IPs) != 2 || srv.IPs[0].ID != f.ip1.ID || srv.IPs[1].ID != f.ip2.ID {
			t.Fatalf("ips not deduplicated or ordered: %+v", srv.IPs)
		}
		if len(srv.Admins) != 2 || srv.Admins[0].Name != "Alice" {
			t.Fatalf("admins not ordered by id: %+v", srv.Admins)
		}

		got, err := s.Servers().Get(ctx, srv.ID)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got.Description != "frontend node" || len(got.Tags) != 1 || got.Tags[0].Name != "prod" {
			t.Fatalf("unexpected stored server: %+v", got)
		}
	})
}

func TestServerFindFilters(t *testing.T) {
	WithTestStore(t, func(s *BunStore) {
		ctx := context.Background()
		f := seedInventory(t, s)
		for _, srv := range []model.Server{
			{Name: "web01", StatusID: f.running.ID, TypeID: f.web.ID},
			{Name: "db01", StatusID: f.running.ID, TypeID: f.db.ID},
			{Name: "web02", StatusID: f.stopped.ID, TypeID: f.web.ID},
		} {
			if err := s.Servers().Insert(ctx, &srv); err != nil {
				t.Fatalf("Insert %s failed: %v", srv.Name, err)
			}
		}

		running, err := s.Servers().Find(ctx, Filter{"status_id": f.running.ID})
		if err != nil {
			t.Fatalf("Find failed: %v", err)
		}
		if len(running) != 2 || running[0].Name != "web01" || running[1].Name != "db01" {
			t.Fatalf("unexpected running servers: %+v", running)
		}

		webRunning, err := s.Servers().Find(ctx, Filter{"status_id": f.running.ID, "type_id": f.web.ID})
		if err != nil {
			t.Fatalf("Find failed: %v", err)
		}
		if len(webRunning) != 1 || webRunning[0].Name != "web01" {
			t.Fatalf("unexpected result: %+v", webRunning)
		}

		byName, err := s.Servers().Find(ctx, Filter{"name": "web02"})
		if err != nil {
			t.Fatalf("Find failed: %v", err)
		}
		if len(byName) != 1 || byName[0].Status.Name != "Stopped" {
			t.Fatalf("unexpected result: %+v", byName)
		}

		if _, err := s.Servers().Find(ctx, Filter{"ip": "10.0.0.1"}); !errors.Is(err, ErrInvalidFilter) {
			t.Fatalf("expected ErrInvalidFilter, got %v", err)
		}
	})
}

func TestServerUpdateReplacesOnlySelectedSets(t *testing.T) {
	WithTestStore(t, func(s *BunStore) {
		ctx := context.Background()
		f := seedInventory(t, s)
		srv := model.Server{
			Name:     "web01",
			StatusID: f.running.ID,
			TypeID:   f.web.ID,
			IPs:      []model.IP{f.ip1},
			Tags:     []model.Tag{f.prod, f.dev},
			Admins:   []model.Admin{f.alice},
		}
		if err := s.Servers().Insert(ctx, &srv); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}

		srv.Name = "web01b"
		srv.StatusID = f.stopped.ID
		srv.IPs = []model.IP{f.ip2}
		srv.Tags = nil
		srv.Admins = nil
		if err := s.Servers().Update(ctx, &srv, RelIPs|RelTags); err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if srv.Name != "web01b" || srv.Status.Name != "Stopped" {
			t.Fatalf("scalar columns not updated: %+v", srv)
		}
		if len(srv.IPs) != 1 || srv.IPs[0].ID != f.ip2.ID {
			t.Fatalf("ips not replaced: %+v", srv.IPs)
		}
		if len(srv.Tags) != 0 {
			t.Fatalf("tags not cleared: %+v", srv.Tags)
		}
		if len(srv.Admins) != 1 || srv.Admins[0].ID != f.alice.ID {
			t.Fatalf("admins should be untouched: %+v", srv.Admins)
		}
	})
}

func TestServerUpdateMissing(t *testing.T) {
	WithTestStore(t, func(s *BunStore) {
		f := seedInventory(t, s)
		srv := model.Server{ID: 99, Name: "ghost", StatusID: f.running.ID, TypeID: f.web.ID}
		if err := s.Servers().Update(context.Background(), &srv, RelNone); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestServerDeleteRemovesAssociations(t *testing.T) {
	WithTestStore(t, func(s *BunStore) {
		ctx := context.Background()
		f := seedInventory(t, s)
		srv := model.Server{Name: "web01", StatusID: f.running.ID, TypeID: f.web.ID, IPs: []model.IP{f.ip1}, Tags: []model.Tag{f.prod}, Admins: []model.Admin{f.alice}}
		if err := s.Servers().Insert(ctx, &srv); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
		if err := s.Servers().Delete(ctx, srv.ID); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if _, err := s.Servers().Get(ctx, srv.ID); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound after delete, got %v", err)
		}
		var links []ServerIPModel
		if err := s.bun.NewSelect().Model(&links).Scan(ctx); err != nil {
			t.Fatalf("select links: %v", err)
		}
		if len(links) != 0 {
			t.Fatalf("expected association rows to be removed, got %d", len(links))
		}
		// Related rows survive.
		if _, err := s.IPs().Get(ctx, f.ip1.ID); err != nil {
			t.Fatalf("ip should survive server delete: %v", err)
		}
		if err := s.Servers().Delete(ctx, srv.ID); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound on second delete, got %v", err)
		}
	})
}

func TestDeleteRelatedEntityDetachesFromServers(t *testing.T) {
	WithTestStore(t, func(s *BunStore) {
		ctx := context.Background()
		f := seedInventory(t, s)
		srv := model.Server{Name: "web01", StatusID: f.running.ID, TypeID: f.web.ID, IPs: []model.IP{f.ip1, f.ip2}, Tags: []model.Tag{f.prod}, Admins: []model.Admin{f.alice, f.bob}}
		if err := s.Servers().Insert(ctx, &srv); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
		if err := s.IPs().Delete(ctx, f.ip1.ID); err != nil {
			t.Fatalf("delete ip: %v", err)
		}
		if err := s.Tags().Delete(ctx, f.prod.ID); err != nil {
			t.Fatalf("delete tag: %v", err)
		}
		if err := s.Admins().Delete(ctx, f.bob.ID); err != nil {
			t.Fatalf("delete admin: %v", err)
		}
		got, err := s.Servers().Get(ctx, srv.ID)
		if err != nil {
			t.Fatalf("server should survive: %v", err)
		}
		if len(got.IPs) != 1 || got.IPs[0].ID != f.ip2.ID {
			t.Fatalf("unexpected ips: %+v", got.IPs)
		}
		if len(got.Tags) != 0 {
			t.Fatalf("unexpected tags: %+v", got.Tags)
		}
		if len(got.Admins) != 1 || got.Admins[0].ID != f.alice.ID {
			t.Fatalf("unexpected admins: %+v", got.Admins)
		}
	})
}
