// Copyright (c) 2026 Keymaster Team
// srvinv - server inventory tracking
// This source code is licensed under the MIT license found in the LICENSE file.

package core

// Inventory bundles the operations of every entity on one store handle.
type Inventory struct {
	Admins   *AdminOps
	IPs      *IPOps
	Tags     *TagOps
	Statuses *StatusOps
	Types    *TypeOps
	Servers  *ServerOps
}

// NewInventory wires the operations for store.
func NewInventory(store Store) *Inventory {
	return &Inventory{
		Admins:   NewAdminOps(store),
		IPs:      NewIPOps(store),
		Tags:     NewTagOps(store),
		Statuses: NewStatusOps(store),
		Types:    NewTypeOps(store),
		Servers:  NewServerOps(store),
	}
}
