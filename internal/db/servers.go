// Copyright (c) 2026 Keymaster Team
// srvinv - server inventory tracking
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"fmt"

	"github.com/toeirei/srvinv/internal/model"
	"github.com/uptrace/bun"
)

var serverColumns = []string{"id", "name", "description", "status_id", "type_id"}

type serverTable struct {
	store *BunStore
}

// withRelations selects the status and type rows by join and the three
// association sets by separate m2m queries.
func withRelations(q *bun.SelectQuery) *bun.SelectQuery {
	return q.Relation("Status").Relation("Type").Relation("IPs").Relation("Tags").Relation("Admins")
}

func (t *serverTable) Find(ctx context.Context, filter Filter) ([]model.Server, error) {
	var rows []ServerModel
	q, err := applyFilter(withRelations(t.store.bun.NewSelect().Model(&rows)), filter, serverColumns)
	if err != nil {
		return nil, err
	}
	if err := q.OrderExpr("?TableAlias.id ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("find server: %w", MapDBError(err))
	}
	dbLogf("db: find server %v -> %d rows", filter, len(rows))
	return mapSlice(rows, serverModelToModel), nil
}

func (t *serverTable) Get(ctx context.Context, id int) (*model.Server, error) {
	var row ServerModel
	if err := withRelations(t.store.bun.NewSelect().Model(&row)).Where("?TableAlias.id = ?", id).Scan(ctx); err != nil {
		return nil, fmt.Errorf("get server %d: %w", id, MapDBError(err))
	}
	s := serverModelToModel(row)
	return &s, nil
}

func (t *serverTable) Insert(ctx context.Context, row *model.Server) error {
	m := serverToModel(*row)
	err := t.store.bun.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(&m).Returning("id").Exec(ctx); err != nil {
			return MapDBError(err)
		}
		row.ID = m.ID
		return writeLinks(ctx, tx, *row, RelAll)
	})
	if err != nil {
		row.ID = 0
		return fmt.Errorf("insert server: %w", err)
	}
	t.store.audit(ctx, "ADD_SERVER", fmt.Sprintf("server %d: %s", m.ID, row.Name))
	return t.reload(ctx, row)
}

func (t *serverTable) Update(ctx context.Context, row *model.Server, rels Relations) error {
	m := serverToModel(*row)
	err := t.store.bun.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		ok, err := rowExists(ctx, tx, (*ServerModel)(nil), row.ID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotFound
		}
		if _, err := tx.NewUpdate().Model(&m).Column("name", "description", "status_id", "type_id").WherePK().Exec(ctx); err != nil {
			return MapDBError(err)
		}
		return writeLinks(ctx, tx, *row, rels)
	})
	if err != nil {
		return fmt.Errorf("update server %d: %w", row.ID, err)
	}
	t.store.audit(ctx, "UPDATE_SERVER", fmt.Sprintf("server %d: %s", row.ID, row.Name))
	return t.reload(ctx, row)
}

func (t *serverTable) Delete(ctx context.Context, id int) error {
	err := t.store.bun.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		ok, err := rowExists(ctx, tx, (*ServerModel)(nil), id)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotFound
		}
		for _, link := range []interface{}{(*ServerIPModel)(nil), (*ServerTagModel)(nil), (*ServerAdminModel)(nil)} {
			if _, err := tx.NewDelete().Model(link).Where("server_id = ?", id).Exec(ctx); err != nil {
				return MapDBError(err)
			}
		}
		_, err = tx.NewDelete().Model((*ServerModel)(nil)).Where("id = ?", id).Exec(ctx)
		return MapDBError(err)
	})
	if err != nil {
		return fmt.Errorf("delete server %d: %w", id, err)
	}
	t.store.audit(ctx, "DELETE_SERVER", fmt.Sprintf("server %d", id))
	return nil
}

// reload replaces row with the stored server so callers see resolved
// relations in id order.
func (t *serverTable) reload(ctx context.Context, row *model.Server) error {
	fresh, err := t.Get(ctx, row.ID)
	if err != nil {
		return err
	}
	*row = *fresh
	return nil
}

// writeLinks replaces the association sets selected by rels with the ones
// carried by s.
func writeLinks(ctx context.Context, tx bun.IDB, s model.Server, rels Relations) error {
	if rels&RelIPs != 0 {
		ids := uniqueIDs(s.IPs, func(ip model.IP) int { return ip.ID })
		if err := replaceLinks(ctx, tx, s.ID, ids, func(sid, id int) ServerIPModel {
			return ServerIPModel{ServerID: sid, IPID: id}
		}); err != nil {
			return fmt.Errorf("write server ips: %w", err)
		}
	}
	if rels&RelTags != 0 {
		ids := uniqueIDs(s.Tags, func(tag model.Tag) int { return tag.ID })
		if err := replaceLinks(ctx, tx, s.ID, ids, func(sid, id int) ServerTagModel {
			return ServerTagModel{ServerID: sid, TagID: id}
		}); err != nil {
			return fmt.Errorf("write server tags: %w", err)
		}
	}
	if rels&RelAdmins != 0 {
		ids := uniqueIDs(s.Admins, func(a model.Admin) int { return a.ID })
		if err := replaceLinks(ctx, tx, s.ID, ids, func(sid, id int) ServerAdminModel {
			return ServerAdminModel{ServerID: sid, AdminID: id}
		}); err != nil {
			return fmt.Errorf("write server admins: %w", err)
		}
	}
	return nil
}

func replaceLinks[L any](ctx context.Context, tx bun.IDB, serverID int, ids []int, mk func(serverID, relatedID int) L) error {
	if _, err := tx.NewDelete().Model((*L)(nil)).Where("server_id = ?", serverID).Exec(ctx); err != nil {
		return MapDBError(err)
	}
	if len(ids) == 0 {
		return nil
	}
	links := make([]L, 0, len(ids))
	for _, id := range ids {
		links = append(links, mk(serverID, id))
	}
	_, err := tx.NewInsert().Model(&links).Exec(ctx)
	return MapDBError(err)
}
