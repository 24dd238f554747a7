// Copyright (c) 2026 Keymaster Team
// srvinv - server inventory tracking
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"maps"
	"slices"

	"github.com/uptrace/bun"
)

// execRawProvider is a small interface used to accept either *bun.DB or *bun.Tx
// since both expose NewRaw(...).* methods returning *bun.RawQuery.
type execRawProvider interface {
	NewRaw(query string, args ...interface{}) *bun.RawQuery
}

// ExecRaw executes a raw SQL statement using the provided Bun DB or transaction.
func ExecRaw(ctx context.Context, exec execRawProvider, query string, args ...interface{}) (sql.Result, error) {
	return exec.NewRaw(query, args...).Exec(ctx)
}

// QueryRawInto runs a raw query and scans the result into dest using Bun's RawQuery.Scan.
func QueryRawInto(ctx context.Context, exec execRawProvider, dest interface{}, query string, args ...interface{}) error {
	return exec.NewRaw(query, args...).Scan(ctx, dest)
}

// applyFilter adds one equality condition per filter entry. Keys are applied
// in sorted order so the generated SQL is stable.
func applyFilter(q *bun.SelectQuery, filter Filter, columns []string) (*bun.SelectQuery, error) {
	for _, col := range slices.Sorted(maps.Keys(filter)) {
		if !slices.Contains(columns, col) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidFilter, col)
		}
		q = q.Where("?TableAlias.? = ?", bun.Ident(col), filter[col])
	}
	return q, nil
}

// rowExists reports whether the table of model has a row with the given id.
func rowExists(ctx context.Context, idb bun.IDB, model interface{}, id int) (bool, error) {
	ok, err := idb.NewSelect().Model(model).Where("?TableAlias.id = ?", id).Exists(ctx)
	if err != nil {
		return false, MapDBError(err)
	}
	return ok, nil
}

// uniqueIDs returns the ids in first-seen order with duplicates removed.
func uniqueIDs[T any](items []T, id func(T) int) []int {
	seen := make(map[int]bool, len(items))
	out := make([]int, 0, len(items))
	for _, it := range items {
		v := id(it)
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
