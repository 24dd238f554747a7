// Copyright (c) 2026 Keymaster Team
// srvinv - server inventory tracking
// This source code is licensed under the MIT license found in the LICENSE file.

package core

import (
	"context"

	"github.com/toeirei/srvinv/internal/model"
)

// TagQuery filters tags. Nil fields are not applied.
type TagQuery struct {
	ID   *int
	Name *string
}

// TagChanges lists the tag fields to change.
type TagChanges struct {
	Name *string
}

// TagOps are the CRUD operations for tags.
type TagOps struct {
	ops lookupOps[model.Tag]
}

// NewTagOps returns the tag operations on store.
func NewTagOps(store Store) *TagOps {
	return &TagOps{ops: lookupOps[model.Tag]{
		entity:   EntityTag,
		field:    "name",
		table:    store.Tags,
		validate: ValidateTagName,
		build:    func(v string) model.Tag { return model.Tag{Name: v} },
		set:      func(t *model.Tag, v string) { t.Name = v },
		id:       func(t model.Tag) int { return t.ID },
	}}
}

func (o *TagOps) Get(ctx context.Context, q TagQuery) ([]model.Tag, error) {
	return o.ops.get(ctx, q.ID, q.Name)
}

func (o *TagOps) GetByID(ctx context.Context, id int) (*model.Tag, error) {
	return o.ops.getByID(ctx, id)
}

func (o *TagOps) Add(ctx context.Context, name string) (*model.Tag, error) {
	return o.ops.add(ctx, name)
}

func (o *TagOps) Update(ctx context.Context, t *model.Tag, ch TagChanges) error {
	return o.ops.update(ctx, t, ch.Name)
}

// Delete removes t and detaches it from every server.
func (o *TagOps) Delete(ctx context.Context, t *model.Tag) error {
	return o.ops.delete(ctx, t)
}
