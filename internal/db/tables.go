// Copyright (c) 2026 Keymaster Team
// srvinv - server inventory tracking
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/uptrace/bun"
)

// bunTable implements Table for the single-column lookup tables. M is the
// bun model, T the domain value.
type bunTable[M any, T any] struct {
	store     *BunStore
	entity    string
	columns   []string
	toModel   func(M) T
	fromModel func(T) M
	idOf      func(T) int
	// linkModel and linkCol name the association table holding references
	// to this entity; they are removed together with the row.
	linkModel interface{}
	linkCol   string
	// refCol names the server column referencing this entity. A referenced
	// row cannot be deleted.
	refCol string
}

func (t *bunTable[M, T]) Find(ctx context.Context, filter Filter) ([]T, error) {
	var rows []M
	q, err := applyFilter(t.store.bun.NewSelect().Model(&rows), filter, t.columns)
	if err != nil {
		return nil, err
	}
	if err := q.OrderExpr("?TableAlias.id ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("find %s: %w", t.entity, MapDBError(err))
	}
	dbLogf("db: find %s %v -> %d rows", t.entity, filter, len(rows))
	return mapSlice(rows, t.toModel), nil
}

func (t *bunTable[M, T]) Get(ctx context.Context, id int) (*T, error) {
	var row M
	if err := t.store.bun.NewSelect().Model(&row).Where("?TableAlias.id = ?", id).Scan(ctx); err != nil {
		return nil, fmt.Errorf("get %s %d: %w", t.entity, id, MapDBError(err))
	}
	v := t.toModel(row)
	return &v, nil
}

func (t *bunTable[M, T]) Insert(ctx context.Context, row *T) error {
	m := t.fromModel(*row)
	if _, err := t.store.bun.NewInsert().Model(&m).Returning("id").Exec(ctx); err != nil {
		return fmt.Errorf("insert %s: %w", t.entity, MapDBError(err))
	}
	*row = t.toModel(m)
	t.store.audit(ctx, "ADD_"+strings.ToUpper(t.entity), fmt.Sprintf("%s %d: %v", t.entity, t.idOf(*row), *row))
	return nil
}

func (t *bunTable[M, T]) Update(ctx context.Context, row T) error {
	id := t.idOf(row)
	m := t.fromModel(row)
	err := t.store.bun.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		ok, err := rowExists(ctx, tx, (*M)(nil), id)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotFound
		}
		_, err = tx.NewUpdate().Model(&m).WherePK().Exec(ctx)
		return MapDBError(err)
	})
	if err != nil {
		return fmt.Errorf("update %s %d: %w", t.entity, id, err)
	}
	t.store.audit(ctx, "UPDATE_"+strings.ToUpper(t.entity), fmt.Sprintf("%s %d: %v", t.entity, id, row))
	return nil
}

func (t *bunTable[M, T]) Delete(ctx context.Context, id int) error {
	err := t.store.bun.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		ok, err := rowExists(ctx, tx, (*M)(nil), id)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotFound
		}
		if t.refCol != "" {
			n, err := tx.NewSelect().Model((*ServerModel)(nil)).Where("? = ?", bun.Ident(t.refCol), id).Count(ctx)
			if err != nil {
				return MapDBError(err)
			}
			if n > 0 {
				return fmt.Errorf("%w: referenced by %d server(s)", ErrInUse, n)
			}
		}
		if t.linkModel != nil {
			if _, err := tx.NewDelete().Model(t.linkModel).Where("? = ?", bun.Ident(t.linkCol), id).Exec(ctx); err != nil {
				return MapDBError(err)
			}
		}
		_, err = tx.NewDelete().Model((*M)(nil)).Where("id = ?", id).Exec(ctx)
		return MapDBError(err)
	})
	if err != nil {
		return fmt.Errorf("delete %s %d: %w", t.entity, id, err)
	}
	t.store.audit(ctx, "DELETE_"+strings.ToUpper(t.entity), fmt.Sprintf("%s %d", t.entity, id))
	return nil
}
