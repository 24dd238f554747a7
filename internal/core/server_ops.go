// Copyright (c) 2026 Keymaster Team
// srvinv - server inventory tracking
// This source code is licensed under the MIT license found in the LICENSE file.

package core

import (
	"context"

	"github.com/toeirei/srvinv/internal/db"
	"github.com/toeirei/srvinv/internal/model"
)

// ServerQuery filters servers. Every supplied field must match. Status and
// Type are names resolved to ids before the store query; IP, Tags and Admins
// are resolved and matched against each server's relation sets, where all
// listed tags and admins must be present. Nil means not supplied.
type ServerQuery struct {
	ID     *int
	Name   *string
	Status *string
	Type   *string
	IP     *string
	Tags   []string
	Admins []string
}

// NewServer carries the fields for ServerOps.Add. Status and Type are
// names; IPs, Tags and Admins are addresses and names to resolve.
type NewServer struct {
	Name        string
	Status      string
	Type        string
	Description *string
	IPs         []string
	Tags        []string
	Admins      []string
}

// ServerChanges lists the server fields to change. A nil field stays
// untouched. A non-nil relation slice replaces the whole set, so an empty
// slice clears it.
type ServerChanges struct {
	Name        *string
	Status      *string
	Type        *string
	Description *string
	IPs         []string
	Tags        []string
	Admins      []string
}

// ServerOps are the CRUD operations for the server aggregate.
type ServerOps struct {
	store   Store
	resolve *Resolver
}

// NewServerOps returns the server operations on store.
func NewServerOps(store Store) *ServerOps {
	return &ServerOps{store: store, resolve: NewResolver(store)}
}

// Resolver returns the resolver the operations use.
func (o *ServerOps) Resolver() *Resolver { return o.resolve }

// Get returns the servers matching q in creation order.
func (o *ServerOps) Get(ctx context.Context, q ServerQuery) ([]model.Server, error) {
	filter := db.Filter{}
	if q.ID != nil {
		filter["id"] = *q.ID
	}
	if q.Name != nil {
		if err := ValidateServerName(*q.Name); err != nil {
			return nil, err
		}
		filter["name"] = *q.Name
	}
	if q.Status != nil {
		id, err := o.resolve.ResolveStatus(ctx, *q.Status)
		if err != nil {
			return nil, err
		}
		filter["status_id"] = id
	}
	if q.Type != nil {
		id, err := o.resolve.ResolveType(ctx, *q.Type)
		if err != nil {
			return nil, err
		}
		filter["type_id"] = id
	}

	var ip *model.IP
	if q.IP != nil {
		v, err := o.resolve.ResolveIP(ctx, *q.IP)
		if err != nil {
			return nil, err
		}
		ip = &v
	}
	tags, err := o.resolve.ResolveTags(ctx, q.Tags)
	if err != nil {
		return nil, err
	}
	admins, err := o.resolve.ResolveAdmins(ctx, q.Admins)
	if err != nil {
		return nil, err
	}

	rows, err := o.store.Servers().Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]model.Server, 0, len(rows))
	for _, s := range rows {
		if ip != nil && !s.HasIP(ip.ID) {
			continue
		}
		if !hasAll(tags, func(t model.Tag) bool { return s.HasTag(t.ID) }) {
			continue
		}
		if !hasAll(admins, func(a model.Admin) bool { return s.HasAdmin(a.ID) }) {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func hasAll[T any](items []T, has func(T) bool) bool {
	for _, it := range items {
		if !has(it) {
			return false
		}
	}
	return true
}

// GetByID returns the server with id or a KindNotFound error.
func (o *ServerOps) GetByID(ctx context.Context, id int) (*model.Server, error) {
	s, err := o.store.Servers().Get(ctx, id)
	if err != nil {
		return nil, wrapStore(EntityServer, id, err)
	}
	return s, nil
}

// Add validates and resolves every field of in, then stores the server and
// its associations in one transaction. Nothing is written when any field
// fails.
func (o *ServerOps) Add(ctx context.Context, in NewServer) (*model.Server, error) {
	if err := ValidateServerName(in.Name); err != nil {
		return nil, err
	}
	s := model.Server{Name: in.Name}
	if in.Description != nil {
		if err := ValidateServerDescription(*in.Description); err != nil {
			return nil, err
		}
		s.Description = *in.Description
	}
	var err error
	if s.StatusID, err = o.resolve.ResolveStatus(ctx, in.Status); err != nil {
		return nil, err
	}
	if s.TypeID, err = o.resolve.ResolveType(ctx, in.Type); err != nil {
		return nil, err
	}
	if s.IPs, err = o.resolve.ResolveIPs(ctx, in.IPs); err != nil {
		return nil, err
	}
	if s.Tags, err = o.resolve.ResolveTags(ctx, in.Tags); err != nil {
		return nil, err
	}
	if s.Admins, err = o.resolve.ResolveAdmins(ctx, in.Admins); err != nil {
		return nil, err
	}
	if err := o.store.Servers().Insert(ctx, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Update validates and resolves every supplied field of ch, applies them to
// s and persists the result. On failure s is left unchanged.
func (o *ServerOps) Update(ctx context.Context, s *model.Server, ch ServerChanges) error {
	next := *s
	rels := db.RelNone
	var err error

	if ch.Name != nil {
		if err := ValidateServerName(*ch.Name); err != nil {
			return err
		}
		next.Name = *ch.Name
	}
	if ch.Description != nil {
		if err := ValidateServerDescription(*ch.Description); err != nil {
			return err
		}
		next.Description = *ch.Description
	}
	if ch.Status != nil {
		if next.StatusID, err = o.resolve.ResolveStatus(ctx, *ch.Status); err != nil {
			return err
		}
	}
	if ch.Type != nil {
		if next.TypeID, err = o.resolve.ResolveType(ctx, *ch.Type); err != nil {
			return err
		}
	}
	if ch.IPs != nil {
		if next.IPs, err = o.resolve.ResolveIPs(ctx, ch.IPs); err != nil {
			return err
		}
		rels |= db.RelIPs
	}
	if ch.Tags != nil {
		if next.Tags, err = o.resolve.ResolveTags(ctx, ch.Tags); err != nil {
			return err
		}
		rels |= db.RelTags
	}
	if ch.Admins != nil {
		if next.Admins, err = o.resolve.ResolveAdmins(ctx, ch.Admins); err != nil {
			return err
		}
		rels |= db.RelAdmins
	}

	if err := o.store.Servers().Update(ctx, &next, rels); err != nil {
		return wrapStore(EntityServer, s.ID, err)
	}
	*s = next
	return nil
}

// Delete removes s and its association rows. Related IPs, tags and admins
// stay.
func (o *ServerOps) Delete(ctx context.Context, s *model.Server) error {
	return wrapStore(EntityServer, s.ID, o.store.Servers().Delete(ctx, s.ID))
}
