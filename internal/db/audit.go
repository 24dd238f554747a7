// Copyright (c) 2026 Keymaster Team
// srvinv - server inventory tracking
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"fmt"
	"os/user"
	"strings"
	"time"

	"github.com/toeirei/srvinv/internal/logging"
	"github.com/toeirei/srvinv/internal/model"
)

// currentUsername returns the OS user name without a Windows domain prefix.
func currentUsername() string {
	curUser, err := user.Current()
	if err != nil {
		return "unknown"
	}
	if parts := strings.Split(curUser.Username, `\`); len(parts) > 1 {
		return parts[1]
	}
	return curUser.Username
}

// LogAction appends an entry to the audit log.
func (s *BunStore) LogAction(ctx context.Context, action, details string) error {
	entry := AuditLogModel{
		Timestamp: time.Now().UTC(),
		Username:  currentUsername(),
		Action:    action,
		Details:   details,
	}
	if _, err := s.bun.NewInsert().Model(&entry).Exec(ctx); err != nil {
		return fmt.Errorf("write audit log: %w", MapDBError(err))
	}
	return nil
}

// audit records a completed mutation. The mutation has already been
// committed, so a failing audit write is only logged.
func (s *BunStore) audit(ctx context.Context, action, details string) {
	if err := s.LogAction(ctx, action, details); err != nil {
		logging.Warnf("audit %s failed: %v", action, err)
	}
}

// AuditLog returns all audit entries, newest first.
func (s *BunStore) AuditLog(ctx context.Context) ([]model.AuditLogEntry, error) {
	var rows []AuditLogModel
	if err := s.bun.NewSelect().Model(&rows).OrderExpr("?TableAlias.id DESC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("read audit log: %w", MapDBError(err))
	}
	return mapSlice(rows, auditLogModelToModel), nil
}
