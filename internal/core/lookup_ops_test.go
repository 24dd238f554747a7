// Copyright (c) 2026 Keymaster Team
// srvinv - server inventory tracking
// This source code is licensed under the MIT license found in the LICENSE file.

package core

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toeirei/srvinv/internal/db"
	"github.com/toeirei/srvinv/internal/model"
)

func TestGetWithoutFiltersReturnsCreationOrder(t *testing.T) {
	inv, _ := newTestInventory(t)
	ctx := context.Background()
	for _, n := range []string{"zeta", "alpha", "mid"} {
		_, err := inv.Tags.Add(ctx, n)
		require.NoError(t, err)
	}
	tags, err := inv.Tags.Get(ctx, TagQuery{})
	require.NoError(t, err)
	require.Len(t, tags, 3)
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, []string{tags[0].Name, tags[1].Name, tags[2].Name})
}

func TestAddThenGetByName(t *testing.T) {
	inv, _ := newTestInventory(t)
	ctx := context.Background()

	added, err := inv.Types.Add(ctx, "Load Balancer")
	require.NoError(t, err)
	assert.NotZero(t, added.ID)

	got, err := inv.Types.Get(ctx, TypeQuery{Name: Ptr("Load Balancer")})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, *added, got[0])
}

func TestGetValidatesFilters(t *testing.T) {
	inv, _ := newTestInventory(t)
	ctx := context.Background()

	_, err := inv.Statuses.Get(ctx, StatusQuery{Name: Ptr("running")})
	assert.True(t, errors.Is(err, &Error{Kind: KindCapital}), "got %v", err)

	_, err = inv.IPs.Get(ctx, IPQuery{Address: Ptr("10.0.0")})
	assert.True(t, IsValidation(err), "got %v", err)
}

func TestGetSuppliedZeroIDIsApplied(t *testing.T) {
	inv, _ := newTestInventory(t)
	ctx := context.Background()
	_, err := inv.Admins.Add(ctx, "Alice")
	require.NoError(t, err)

	got, err := inv.Admins.Get(ctx, AdminQuery{ID: Ptr(0)})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestAddInvalidDoesNotWrite(t *testing.T) {
	inv, _ := newTestInventory(t)
	ctx := context.Background()

	_, err := inv.Statuses.Add(ctx, "running")
	require.Error(t, err)
	_, err = inv.Admins.Add(ctx, "")
	require.Error(t, err)

	statuses, err := inv.Statuses.Get(ctx, StatusQuery{})
	require.NoError(t, err)
	assert.Empty(t, statuses)
	admins, err := inv.Admins.Get(ctx, AdminQuery{})
	require.NoError(t, err)
	assert.Empty(t, admins)
}

func TestAdminNamesUnique(t *testing.T) {
	inv, _ := newTestInventory(t)
	ctx := context.Background()
	_, err := inv.Admins.Add(ctx, "Alice")
	require.NoError(t, err)
	_, err = inv.Admins.Add(ctx, "Alice")
	assert.True(t, errors.Is(err, db.ErrDuplicate), "got %v", err)
	assert.True(t, IsConflict(err))
}

func TestUpdateAppliesSuppliedFields(t *testing.T) {
	inv, _ := newTestInventory(t)
	ctx := context.Background()

	ip, err := inv.IPs.Add(ctx, "10.0.0.1")
	require.NoError(t, err)

	require.NoError(t, inv.IPs.Update(ctx, ip, IPChanges{Address: Ptr("10.0.0.9")}))
	assert.Equal(t, "10.0.0.9", ip.Address)

	stored, err := inv.IPs.GetByID(ctx, ip.ID)
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.9", stored.Address)

	// Nothing supplied, nothing changes.
	require.NoError(t, inv.IPs.Update(ctx, ip, IPChanges{}))
	assert.Equal(t, "10.0.0.9", ip.Address)
}

func TestUpdateInvalidLeavesEntity(t *testing.T) {
	inv, _ := newTestInventory(t)
	ctx := context.Background()

	tag, err := inv.Tags.Add(ctx, "prod")
	require.NoError(t, err)
	err = inv.Tags.Update(ctx, tag, TagChanges{Name: Ptr("far too long tag name")})
	assert.True(t, errors.Is(err, &Error{Entity: EntityTag, Field: "name", Kind: KindLength}), "got %v", err)
	assert.Equal(t, "prod", tag.Name)

	stored, err := inv.Tags.GetByID(ctx, tag.ID)
	require.NoError(t, err)
	assert.Equal(t, "prod", stored.Name)
}

func TestDeleteThenGet(t *testing.T) {
	inv, _ := newTestInventory(t)
	ctx := context.Background()

	a, err := inv.Admins.Add(ctx, "Alice")
	require.NoError(t, err)
	b, err := inv.Admins.Add(ctx, "Bob")
	require.NoError(t, err)

	require.NoError(t, inv.Admins.Delete(ctx, a))
	all, err := inv.Admins.Get(ctx, AdminQuery{})
	require.NoError(t, err)
	assert.Equal(t, []model.Admin{*b}, all)

	err = inv.Admins.Delete(ctx, a)
	assert.True(t, errors.Is(err, &Error{Entity: EntityAdmin, Kind: KindNotFound}), "got %v", err)
}

func TestGetByIDNotFound(t *testing.T) {
	inv, _ := newTestInventory(t)
	_, err := inv.Statuses.GetByID(context.Background(), 12)
	assert.True(t, errors.Is(err, &Error{Entity: EntityStatus, Field: "id", Kind: KindNotFound}), "got %v", err)
	assert.True(t, IsNotFound(err))
}

func TestDeleteStatusInUse(t *testing.T) {
	inv, _ := newTestInventory(t)
	seedLookups(t, inv)
	ctx := context.Background()
	_, err := inv.Servers.Add(ctx, NewServer{Name: "web01", Status: "Running", Type: "Web"})
	require.NoError(t, err)

	running, err := inv.Statuses.Get(ctx, StatusQuery{Name: Ptr("Running")})
	require.NoError(t, err)
	err = inv.Statuses.Delete(ctx, &running[0])
	assert.True(t, errors.Is(err, db.ErrInUse), "got %v", err)

	web, err := inv.Types.Get(ctx, TypeQuery{Name: Ptr("Web")})
	require.NoError(t, err)
	err = inv.Types.Delete(ctx, &web[0])
	assert.True(t, errors.Is(err, db.ErrInUse), "got %v", err)
}
