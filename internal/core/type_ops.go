// Copyright (c) 2026 Keymaster Team
// srvinv - server inventory tracking
// This source code is licensed under the MIT license found in the LICENSE file.

package core

import (
	"context"

	"github.com/toeirei/srvinv/internal/model"
)

// TypeQuery filters server types. Nil fields are not applied.
type TypeQuery struct {
	ID   *int
	Name *string
}

// TypeChanges lists the type fields to change.
type TypeChanges struct {
	Name *string
}

// TypeOps are the CRUD operations for server types.
type TypeOps struct {
	ops lookupOps[model.ServerType]
}

// NewTypeOps returns the type operations on store.
func NewTypeOps(store Store) *TypeOps {
	return &TypeOps{ops: lookupOps[model.ServerType]{
		entity:   EntityType,
		field:    "name",
		table:    store.Types,
		validate: ValidateTypeName,
		build:    func(v string) model.ServerType { return model.ServerType{Name: v} },
		set:      func(t *model.ServerType, v string) { t.Name = v },
		id:       func(t model.ServerType) int { return t.ID },
	}}
}

func (o *TypeOps) Get(ctx context.Context, q TypeQuery) ([]model.ServerType, error) {
	return o.ops.get(ctx, q.ID, q.Name)
}

func (o *TypeOps) GetByID(ctx context.Context, id int) (*model.ServerType, error) {
	return o.ops.getByID(ctx, id)
}

func (o *TypeOps) Add(ctx context.Context, name string) (*model.ServerType, error) {
	return o.ops.add(ctx, name)
}

func (o *TypeOps) Update(ctx context.Context, t *model.ServerType, ch TypeChanges) error {
	return o.ops.update(ctx, t, ch.Name)
}

// Delete removes t unless a server still uses it (db.ErrInUse).
func (o *TypeOps) Delete(ctx context.Context, t *model.ServerType) error {
	return o.ops.delete(ctx, t)
}
