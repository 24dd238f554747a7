// Copyright (c) 2026 Keymaster Team
// srvinv - server inventory tracking
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"

	"github.com/toeirei/srvinv/internal/model"
	"github.com/uptrace/bun"
)

// Filter maps column names to values; rows match when every column equals
// its value. A nil or empty filter matches all rows.
type Filter map[string]any

// Table is the set of primitives every inventory table offers.
type Table[T any] interface {
	// Find returns the rows matching filter, ordered by id.
	Find(ctx context.Context, filter Filter) ([]T, error)
	// Get returns the row with the given id or ErrNotFound.
	Get(ctx context.Context, id int) (*T, error)
	// Insert stores row and writes the assigned id back into it.
	Insert(ctx context.Context, row *T) error
	// Update overwrites the stored row that has row's id.
	Update(ctx context.Context, row T) error
	// Delete removes the row and every association row pointing at it.
	Delete(ctx context.Context, id int) error
}

// Relations selects which server association sets an update rewrites.
type Relations uint8

const (
	RelIPs Relations = 1 << iota
	RelTags
	RelAdmins

	RelNone Relations = 0
	RelAll            = RelIPs | RelTags | RelAdmins
)

// ServerTable stores servers together with their association rows. Rows
// returned by Find and Get carry the resolved status, type and relation
// sets.
type ServerTable interface {
	Find(ctx context.Context, filter Filter) ([]model.Server, error)
	Get(ctx context.Context, id int) (*model.Server, error)
	// Insert stores the server and its IPs, Tags and Admins in one
	// transaction and reloads it into row.
	Insert(ctx context.Context, row *model.Server) error
	// Update rewrites the scalar columns and the association sets named by
	// rels, then reloads the server into row.
	Update(ctx context.Context, row *model.Server, rels Relations) error
	Delete(ctx context.Context, id int) error
}

// Store is the complete entity store.
type Store interface {
	Admins() Table[model.Admin]
	IPs() Table[model.IP]
	Tags() Table[model.Tag]
	Statuses() Table[model.ServerStatus]
	Types() Table[model.ServerType]
	Servers() ServerTable

	LogAction(ctx context.Context, action, details string) error
	AuditLog(ctx context.Context) ([]model.AuditLogEntry, error)
	Export(ctx context.Context) (*model.BackupData, error)
	Import(ctx context.Context, backup *model.BackupData) error
	RunMaintenance(ctx context.Context) error
	Close() error
}

// BunStore implements Store on a single *bun.DB for all dialects.
type BunStore struct {
	bun    *bun.DB
	dbType string
}

var _ Store = (*BunStore)(nil)

// BunDB exposes the underlying *bun.DB for tests and maintenance tooling.
func (s *BunStore) BunDB() *bun.DB { return s.bun }

// DBType returns the database type the store was opened with.
func (s *BunStore) DBType() string { return s.dbType }

// Close releases the connection pool.
func (s *BunStore) Close() error { return s.bun.Close() }

// Admins returns the admin table. Admin names are unique.
func (s *BunStore) Admins() Table[model.Admin] {
	return &bunTable[AdminModel, model.Admin]{
		store:     s,
		entity:    "admin",
		columns:   []string{"id", "name"},
		toModel:   adminModelToModel,
		fromModel: adminToModel,
		idOf:      func(a model.Admin) int { return a.ID },
		linkModel: (*ServerAdminModel)(nil),
		linkCol:   "admin_id",
	}
}

// IPs returns the ip table.
func (s *BunStore) IPs() Table[model.IP] {
	return &bunTable[IPModel, model.IP]{
		store:     s,
		entity:    "ip",
		columns:   []string{"id", "address"},
		toModel:   ipModelToModel,
		fromModel: ipToModel,
		idOf:      func(i model.IP) int { return i.ID },
		linkModel: (*ServerIPModel)(nil),
		linkCol:   "ip_id",
	}
}

// Tags returns the tag table.
func (s *BunStore) Tags() Table[model.Tag] {
	return &bunTable[TagModel, model.Tag]{
		store:     s,
		entity:    "tag",
		columns:   []string{"id", "name"},
		toModel:   tagModelToModel,
		fromModel: tagToModel,
		idOf:      func(t model.Tag) int { return t.ID },
		linkModel: (*ServerTagModel)(nil),
		linkCol:   "tag_id",
	}
}

// Statuses returns the server_status table. Deleting a status that a
// server still references fails with ErrInUse.
func (s *BunStore) Statuses() Table[model.ServerStatus] {
	return &bunTable[ServerStatusModel, model.ServerStatus]{
		store:     s,
		entity:    "server_status",
		columns:   []string{"id", "name"},
		toModel:   statusModelToModel,
		fromModel: statusToModel,
		idOf:      func(st model.ServerStatus) int { return st.ID },
		refCol:    "status_id",
	}
}

// Types returns the server_type table. Deleting a type that a server still
// references fails with ErrInUse.
func (s *BunStore) Types() Table[model.ServerType] {
	return &bunTable[ServerTypeModel, model.ServerType]{
		store:     s,
		entity:    "server_type",
		columns:   []string{"id", "name"},
		toModel:   typeModelToModel,
		fromModel: typeToModel,
		idOf:      func(t model.ServerType) int { return t.ID },
		refCol:    "type_id",
	}
}

// Servers returns the server table.
func (s *BunStore) Servers() ServerTable {
	return &serverTable{store: s}
}
