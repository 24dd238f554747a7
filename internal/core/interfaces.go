// Copyright (c) 2026 Keymaster Team
// srvinv - server inventory tracking
// This source code is licensed under the MIT license found in the LICENSE file.

// Package core holds the validated data-access layer: field validators,
// name resolvers and the per-entity CRUD operations. Operations own no
// state besides the Store handle they were built with.
package core

import (
	"github.com/toeirei/srvinv/internal/db"
	"github.com/toeirei/srvinv/internal/model"
)

// Store is the subset of the entity store the operations need.
// *db.BunStore satisfies it.
type Store interface {
	Admins() db.Table[model.Admin]
	IPs() db.Table[model.IP]
	Tags() db.Table[model.Tag]
	Statuses() db.Table[model.ServerStatus]
	Types() db.Table[model.ServerType]
	Servers() db.ServerTable
}

// Ptr returns a pointer to v. It is handy for filling the optional fields
// of query and change structs.
func Ptr[T any](v T) *T { return &v }
