// Copyright (c) 2026 Keymaster Team
// srvinv - server inventory tracking
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"context"

	"github.com/toeirei/srvinv/internal/core"
	"github.com/toeirei/srvinv/internal/model"
)

// Source feeds the browser.
type Source interface {
	// Servers returns the servers with the given status, or all when
	// status is nil.
	Servers(ctx context.Context, status *string) ([]model.Server, error)
	Statuses(ctx context.Context) ([]model.ServerStatus, error)
}

// InventorySource reads through the core operations.
type InventorySource struct {
	Inv *core.Inventory
}

func (s InventorySource) Servers(ctx context.Context, status *string) ([]model.Server, error) {
	return s.Inv.Servers.Get(ctx, core.ServerQuery{Status: status})
}

func (s InventorySource) Statuses(ctx context.Context) ([]model.ServerStatus, error) {
	return s.Inv.Statuses.Get(ctx, core.StatusQuery{})
}
