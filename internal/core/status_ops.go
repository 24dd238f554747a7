// Copyright (c) 2026 Keymaster Team
// srvinv - server inventory tracking
// This source code is licensed under the MIT license found in the LICENSE file.

package core

import (
	"context"

	"github.com/toeirei/srvinv/internal/model"
)

// StatusQuery filters server statuses. Nil fields are not applied.
type StatusQuery struct {
	ID   *int
	Name *string
}

// StatusChanges lists the status fields to change.
type StatusChanges struct {
	Name *string
}

// StatusOps are the CRUD operations for server statuses.
type StatusOps struct {
	ops lookupOps[model.ServerStatus]
}

// NewStatusOps returns the status operations on store.
func NewStatusOps(store Store) *StatusOps {
	return &StatusOps{ops: lookupOps[model.ServerStatus]{
		entity:   EntityStatus,
		field:    "name",
		table:    store.Statuses,
		validate: ValidateStatusName,
		build:    func(v string) model.ServerStatus { return model.ServerStatus{Name: v} },
		set:      func(s *model.ServerStatus, v string) { s.Name = v },
		id:       func(s model.ServerStatus) int { return s.ID },
	}}
}

func (o *StatusOps) Get(ctx context.Context, q StatusQuery) ([]model.ServerStatus, error) {
	return o.ops.get(ctx, q.ID, q.Name)
}

func (o *StatusOps) GetByID(ctx context.Context, id int) (*model.ServerStatus, error) {
	return o.ops.getByID(ctx, id)
}

func (o *StatusOps) Add(ctx context.Context, name string) (*model.ServerStatus, error) {
	return o.ops.add(ctx, name)
}

func (o *StatusOps) Update(ctx context.Context, s *model.ServerStatus, ch StatusChanges) error {
	return o.ops.update(ctx, s, ch.Name)
}

// Delete removes s. A status still used by a server is not deleted; the
// store reports db.ErrInUse.
func (o *StatusOps) Delete(ctx context.Context, s *model.ServerStatus) error {
	return o.ops.delete(ctx, s)
}
