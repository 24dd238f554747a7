// Copyright (c) 2026 Keymaster Team
// srvinv - server inventory tracking
// This source code is licensed under the MIT license found in the LICENSE file.

package core

import (
	"context"
	"fmt"

	"github.com/toeirei/srvinv/internal/db"
	"github.com/toeirei/srvinv/internal/model"
)

// Resolver translates human names into the rows they denote. A name
// resolves only when exactly one row carries it; zero and several matches
// both fail with a KindNotResolved error for the referenced entity.
type Resolver struct {
	store Store
}

// NewResolver returns a Resolver reading from store.
func NewResolver(store Store) *Resolver {
	return &Resolver{store: store}
}

func unresolved(entity, field, value string, matches int) error {
	return &Error{
		Entity: entity,
		Field:  field,
		Kind:   KindNotResolved,
		Value:  value,
		Msg:    fmt.Sprintf("not found %q (%d matches)", value, matches),
	}
}

// resolveOne validates name, then looks it up in table by column.
func resolveOne[T any](ctx context.Context, table db.Table[T], entity, column, name string, validate func(string) error) (*T, error) {
	if err := validate(name); err != nil {
		return nil, err
	}
	rows, err := table.Find(ctx, db.Filter{column: name})
	if err != nil {
		return nil, err
	}
	if len(rows) != 1 {
		return nil, unresolved(entity, column, name, len(rows))
	}
	return &rows[0], nil
}

// ResolveStatus returns the id of the server status called name.
func (r *Resolver) ResolveStatus(ctx context.Context, name string) (int, error) {
	st, err := resolveOne(ctx, r.store.Statuses(), EntityStatus, "name", name, ValidateStatusName)
	if err != nil {
		return 0, err
	}
	return st.ID, nil
}

// ResolveType returns the id of the server type called name.
func (r *Resolver) ResolveType(ctx context.Context, name string) (int, error) {
	ty, err := resolveOne(ctx, r.store.Types(), EntityType, "name", name, ValidateTypeName)
	if err != nil {
		return 0, err
	}
	return ty.ID, nil
}

// ResolveIP returns the IP row with the given address.
func (r *Resolver) ResolveIP(ctx context.Context, address string) (model.IP, error) {
	ip, err := resolveOne(ctx, r.store.IPs(), EntityIP, "address", address, ValidateIPAddress)
	if err != nil {
		return model.IP{}, err
	}
	return *ip, nil
}

// ResolveTag returns the tag called name.
func (r *Resolver) ResolveTag(ctx context.Context, name string) (model.Tag, error) {
	tag, err := resolveOne(ctx, r.store.Tags(), EntityTag, "name", name, ValidateTagName)
	if err != nil {
		return model.Tag{}, err
	}
	return *tag, nil
}

// ResolveAdmin returns the admin called name.
func (r *Resolver) ResolveAdmin(ctx context.Context, name string) (model.Admin, error) {
	a, err := resolveOne(ctx, r.store.Admins(), EntityAdmin, "name", name, ValidateAdminName)
	if err != nil {
		return model.Admin{}, err
	}
	return *a, nil
}

// ResolveIPs resolves every address in order.
func (r *Resolver) ResolveIPs(ctx context.Context, addresses []string) ([]model.IP, error) {
	return resolveAll(ctx, addresses, r.ResolveIP)
}

// ResolveTags resolves every tag name in order.
func (r *Resolver) ResolveTags(ctx context.Context, names []string) ([]model.Tag, error) {
	return resolveAll(ctx, names, r.ResolveTag)
}

// ResolveAdmins resolves every admin name in order.
func (r *Resolver) ResolveAdmins(ctx context.Context, names []string) ([]model.Admin, error) {
	return resolveAll(ctx, names, r.ResolveAdmin)
}

func resolveAll[T any](ctx context.Context, names []string, fn func(context.Context, string) (T, error)) ([]T, error) {
	out := make([]T, 0, len(names))
	for _, n := range names {
		v, err := fn(ctx, n)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
