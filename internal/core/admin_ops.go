// Copyright (c) 2026 Keymaster Team
// srvinv - server inventory tracking
// This source code is licensed under the MIT license found in the LICENSE file.

package core

import (
	"context"

	"github.com/toeirei/srvinv/internal/model"
)

// AdminQuery filters admins. Nil fields are not applied.
type AdminQuery struct {
	ID   *int
	Name *string
}

// AdminChanges lists the admin fields to change. Nil fields stay untouched.
type AdminChanges struct {
	Name *string
}

// AdminOps are the CRUD operations for admins.
type AdminOps struct {
	ops lookupOps[model.Admin]
}

// NewAdminOps returns the admin operations on store.
func NewAdminOps(store Store) *AdminOps {
	return &AdminOps{ops: lookupOps[model.Admin]{
		entity:   EntityAdmin,
		field:    "name",
		table:    store.Admins,
		validate: ValidateAdminName,
		build:    func(v string) model.Admin { return model.Admin{Name: v} },
		set:      func(a *model.Admin, v string) { a.Name = v },
		id:       func(a model.Admin) int { return a.ID },
	}}
}

// Get returns the admins matching every supplied filter, in creation order.
func (o *AdminOps) Get(ctx context.Context, q AdminQuery) ([]model.Admin, error) {
	return o.ops.get(ctx, q.ID, q.Name)
}

// GetByID returns the admin with id or a KindNotFound error.
func (o *AdminOps) GetByID(ctx context.Context, id int) (*model.Admin, error) {
	return o.ops.getByID(ctx, id)
}

// Add validates name and stores a new admin. Names are unique; a second
// admin with the same name fails with db.ErrDuplicate.
func (o *AdminOps) Add(ctx context.Context, name string) (*model.Admin, error) {
	return o.ops.add(ctx, name)
}

// Update applies ch to a and persists it.
func (o *AdminOps) Update(ctx context.Context, a *model.Admin, ch AdminChanges) error {
	return o.ops.update(ctx, a, ch.Name)
}

// Delete removes a and detaches it from every server.
func (o *AdminOps) Delete(ctx context.Context, a *model.Admin) error {
	return o.ops.delete(ctx, a)
}
