// Copyright (c) 2026 Keymaster Team
// srvinv - server inventory tracking
// This source code is licensed under the MIT license found in the LICENSE file.

package core

import (
	"context"

	"github.com/toeirei/srvinv/internal/model"
)

// IPQuery filters IPs. Nil fields are not applied.
type IPQuery struct {
	ID      *int
	Address *string
}

// IPChanges lists the IP fields to change.
type IPChanges struct {
	Address *string
}

// IPOps are the CRUD operations for IP addresses.
type IPOps struct {
	ops lookupOps[model.IP]
}

// NewIPOps returns the IP operations on store.
func NewIPOps(store Store) *IPOps {
	return &IPOps{ops: lookupOps[model.IP]{
		entity:   EntityIP,
		field:    "address",
		table:    store.IPs,
		validate: ValidateIPAddress,
		build:    func(v string) model.IP { return model.IP{Address: v} },
		set:      func(ip *model.IP, v string) { ip.Address = v },
		id:       func(ip model.IP) int { return ip.ID },
	}}
}

func (o *IPOps) Get(ctx context.Context, q IPQuery) ([]model.IP, error) {
	return o.ops.get(ctx, q.ID, q.Address)
}

func (o *IPOps) GetByID(ctx context.Context, id int) (*model.IP, error) {
	return o.ops.getByID(ctx, id)
}

// Add stores a new address. The same address may be stored more than once.
func (o *IPOps) Add(ctx context.Context, address string) (*model.IP, error) {
	return o.ops.add(ctx, address)
}

func (o *IPOps) Update(ctx context.Context, ip *model.IP, ch IPChanges) error {
	return o.ops.update(ctx, ip, ch.Address)
}

func (o *IPOps) Delete(ctx context.Context, ip *model.IP) error {
	return o.ops.delete(ctx, ip)
}
