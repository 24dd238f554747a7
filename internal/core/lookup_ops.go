// Copyright (c) 2026 Keymaster Team
// srvinv - server inventory tracking
// This source code is licensed under the MIT license found in the LICENSE file.

package core

import (
	"context"

	"github.com/toeirei/srvinv/internal/db"
)

// lookupOps implements get/add/update/delete for the entities that carry a
// single text field next to their id (admin, ip, tag, status, type).
type lookupOps[T any] struct {
	entity   string
	field    string
	table    func() db.Table[T]
	validate func(string) error
	build    func(value string) T
	set      func(row *T, value string)
	id       func(T) int
}

func (o lookupOps[T]) get(ctx context.Context, id *int, value *string) ([]T, error) {
	filter := db.Filter{}
	if id != nil {
		filter["id"] = *id
	}
	if value != nil {
		if err := o.validate(*value); err != nil {
			return nil, err
		}
		filter[o.field] = *value
	}
	return o.table().Find(ctx, filter)
}

func (o lookupOps[T]) getByID(ctx context.Context, id int) (*T, error) {
	row, err := o.table().Get(ctx, id)
	if err != nil {
		return nil, wrapStore(o.entity, id, err)
	}
	return row, nil
}

func (o lookupOps[T]) add(ctx context.Context, value string) (*T, error) {
	if err := o.validate(value); err != nil {
		return nil, err
	}
	row := o.build(value)
	if err := o.table().Insert(ctx, &row); err != nil {
		return nil, err
	}
	return &row, nil
}

func (o lookupOps[T]) update(ctx context.Context, row *T, value *string) error {
	if value == nil {
		return nil
	}
	if err := o.validate(*value); err != nil {
		return err
	}
	next := *row
	o.set(&next, *value)
	if err := o.table().Update(ctx, next); err != nil {
		return wrapStore(o.entity, o.id(next), err)
	}
	*row = next
	return nil
}

func (o lookupOps[T]) delete(ctx context.Context, row *T) error {
	id := o.id(*row)
	return wrapStore(o.entity, id, o.table().Delete(ctx, id))
}
