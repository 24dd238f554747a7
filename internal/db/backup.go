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

// Export reads every table into a BackupData inside one transaction so the
// dump is consistent.
func (s *BunStore) Export(ctx context.Context) (*model.BackupData, error) {
	backup := &model.BackupData{SchemaVersion: model.BackupSchemaVersion}
	err := s.bun.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var err error
		if backup.Admins, err = selectAll(ctx, tx, adminModelToModel); err != nil {
			return err
		}
		if backup.IPs, err = selectAll(ctx, tx, ipModelToModel); err != nil {
			return err
		}
		if backup.Tags, err = selectAll(ctx, tx, tagModelToModel); err != nil {
			return err
		}
		if backup.ServerStatuses, err = selectAll(ctx, tx, statusModelToModel); err != nil {
			return err
		}
		if backup.ServerTypes, err = selectAll(ctx, tx, typeModelToModel); err != nil {
			return err
		}
		if backup.Servers, err = selectAll(ctx, tx, func(m ServerModel) model.ServerRow {
			return model.ServerRow{ID: m.ID, Name: m.Name, Description: m.Description.String, StatusID: m.StatusID, TypeID: m.TypeID}
		}); err != nil {
			return err
		}
		if backup.ServerIPs, err = selectLinks(ctx, tx, func(m ServerIPModel) model.ServerLink {
			return model.ServerLink{ServerID: m.ServerID, RelatedID: m.IPID}
		}); err != nil {
			return err
		}
		if backup.ServerTags, err = selectLinks(ctx, tx, func(m ServerTagModel) model.ServerLink {
			return model.ServerLink{ServerID: m.ServerID, RelatedID: m.TagID}
		}); err != nil {
			return err
		}
		if backup.ServerAdmins, err = selectLinks(ctx, tx, func(m ServerAdminModel) model.ServerLink {
			return model.ServerLink{ServerID: m.ServerID, RelatedID: m.AdminID}
		}); err != nil {
			return err
		}
		backup.AuditLogEntries, err = selectAll(ctx, tx, auditLogModelToModel)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	return backup, nil
}

func selectAll[M any, T any](ctx context.Context, tx bun.IDB, fn func(M) T) ([]T, error) {
	var rows []M
	if err := tx.NewSelect().Model(&rows).OrderExpr("?TableAlias.id ASC").Scan(ctx); err != nil {
		return nil, MapDBError(err)
	}
	return mapSlice(rows, fn), nil
}

func selectLinks[M any](ctx context.Context, tx bun.IDB, fn func(M) model.ServerLink) ([]model.ServerLink, error) {
	var rows []M
	if err := tx.NewSelect().Model(&rows).OrderExpr("1, 2").Scan(ctx); err != nil {
		return nil, MapDBError(err)
	}
	return mapSlice(rows, fn), nil
}

// Import wipes every inventory table and restores the rows in backup with
// their original ids. The audit log is replaced as well.
func (s *BunStore) Import(ctx context.Context, backup *model.BackupData) error {
	if backup == nil {
		return fmt.Errorf("import: empty backup")
	}
	if backup.SchemaVersion != model.BackupSchemaVersion {
		return fmt.Errorf("import: unsupported backup schema version %d (want %d)", backup.SchemaVersion, model.BackupSchemaVersion)
	}
	err := s.bun.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		// Children first so foreign keys never dangle.
		for _, table := range []string{"server_ip", "server_tag", "server_admin", "server", "admin", "ip", "tag", "server_status", "server_type", "audit_log"} {
			if _, err := ExecRaw(ctx, tx, "DELETE FROM ?", bun.Ident(table)); err != nil {
				return fmt.Errorf("wipe %s: %w", table, MapDBError(err))
			}
		}

		if err := insertAll(ctx, tx, backup.Admins, adminToModel); err != nil {
			return err
		}
		if err := insertAll(ctx, tx, backup.IPs, ipToModel); err != nil {
			return err
		}
		if err := insertAll(ctx, tx, backup.Tags, tagToModel); err != nil {
			return err
		}
		if err := insertAll(ctx, tx, backup.ServerStatuses, statusToModel); err != nil {
			return err
		}
		if err := insertAll(ctx, tx, backup.ServerTypes, typeToModel); err != nil {
			return err
		}
		if err := insertAll(ctx, tx, backup.Servers, func(r model.ServerRow) ServerModel {
			return serverToModel(model.Server{ID: r.ID, Name: r.Name, Description: r.Description, StatusID: r.StatusID, TypeID: r.TypeID})
		}); err != nil {
			return err
		}
		if err := insertAll(ctx, tx, backup.ServerIPs, func(l model.ServerLink) ServerIPModel {
			return ServerIPModel{ServerID: l.ServerID, IPID: l.RelatedID}
		}); err != nil {
			return err
		}
		if err := insertAll(ctx, tx, backup.ServerTags, func(l model.ServerLink) ServerTagModel {
			return ServerTagModel{ServerID: l.ServerID, TagID: l.RelatedID}
		}); err != nil {
			return err
		}
		if err := insertAll(ctx, tx, backup.ServerAdmins, func(l model.ServerLink) ServerAdminModel {
			return ServerAdminModel{ServerID: l.ServerID, AdminID: l.RelatedID}
		}); err != nil {
			return err
		}
		if err := insertAll(ctx, tx, backup.AuditLogEntries, func(e model.AuditLogEntry) AuditLogModel {
			return AuditLogModel{ID: e.ID, Timestamp: e.Timestamp.UTC(), Username: e.Username, Action: e.Action, Details: e.Details}
		}); err != nil {
			return err
		}

		if s.dbType == "postgres" {
			return resetSequences(ctx, tx)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}
	s.audit(ctx, "RESTORE_BACKUP", fmt.Sprintf("restored %d servers", len(backup.Servers)))
	return nil
}

func insertAll[T any, M any](ctx context.Context, tx bun.IDB, items []T, fn func(T) M) error {
	if len(items) == 0 {
		return nil
	}
	rows := mapSlice(items, fn)
	if _, err := tx.NewInsert().Model(&rows).Exec(ctx); err != nil {
		return MapDBError(err)
	}
	return nil
}

// resetSequences moves the postgres SERIAL sequences past the restored ids.
func resetSequences(ctx context.Context, tx bun.Tx) error {
	for _, table := range []string{"admin", "ip", "tag", "server_status", "server_type", "server", "audit_log"} {
		q := "SELECT setval(pg_get_serial_sequence(?, 'id'), COALESCE((SELECT MAX(id) FROM ?), 0) + 1, false)"
		if _, err := ExecRaw(ctx, tx, q, table, bun.Ident(table)); err != nil {
			return fmt.Errorf("reset sequence %s: %w", table, err)
		}
	}
	return nil
}
