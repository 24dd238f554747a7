// Copyright (c) 2026 Keymaster Team
// srvinv - server inventory tracking
// This source code is licensed under the MIT license found in the LICENSE file.

package web

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/toeirei/srvinv/internal/core"
	"github.com/toeirei/srvinv/internal/model"
)

// lookupResource adapts the operations of a single-field entity to the
// generic REST handlers. field is both the JSON key and the query
// parameter of that entity's only data field.
type lookupResource[T any] struct {
	entity  string
	field   string
	get     func(ctx context.Context, id *int, value *string) ([]T, error)
	getByID func(ctx context.Context, id int) (*T, error)
	add     func(ctx context.Context, value string) (*T, error)
	update  func(ctx context.Context, row *T, value *string) error
	delete  func(ctx context.Context, row *T) error
}

func registerLookup[T any](g *gin.RouterGroup, res lookupResource[T]) {
	g.GET("", res.list)
	g.GET("/:id", res.show)
	g.POST("", res.create)
	g.PATCH("/:id", res.patch)
	g.DELETE("/:id", res.remove)
}

// queryID parses an optional id query parameter.
func queryID(c *gin.Context, entity string) (*int, error) {
	raw, ok := c.GetQuery("id")
	if !ok {
		return nil, nil
	}
	id, err := core.ParseID(entity, raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// queryString returns a pointer to the query parameter when it is present.
func queryString(c *gin.Context, key string) *string {
	v, ok := c.GetQuery(key)
	if !ok {
		return nil
	}
	return &v
}

func (res lookupResource[T]) load(c *gin.Context) (*T, bool) {
	id, err := core.ParseID(res.entity, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	row, err := res.getByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return row, true
}

func (res lookupResource[T]) list(c *gin.Context) {
	id, err := queryID(c, res.entity)
	if err != nil {
		respondError(c, err)
		return
	}
	rows, err := res.get(c.Request.Context(), id, queryString(c, res.field))
	if err != nil {
		respondError(c, err)
		return
	}
	if rows == nil {
		rows = []T{}
	}
	c.JSON(http.StatusOK, rows)
}

func (res lookupResource[T]) show(c *gin.Context) {
	row, ok := res.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, row)
}

func (res lookupResource[T]) create(c *gin.Context) {
	var input map[string]*string
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	value := input[res.field]
	if value == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing field " + res.field})
		return
	}
	row, err := res.add(c.Request.Context(), *value)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, row)
}

func (res lookupResource[T]) patch(c *gin.Context) {
	row, ok := res.load(c)
	if !ok {
		return
	}
	var input map[string]*string
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	if err := res.update(c.Request.Context(), row, input[res.field]); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

func (res lookupResource[T]) remove(c *gin.Context) {
	row, ok := res.load(c)
	if !ok {
		return
	}
	if err := res.delete(c.Request.Context(), row); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func adminResource(inv *core.Inventory) lookupResource[model.Admin] {
	return lookupResource[model.Admin]{
		entity: core.EntityAdmin,
		field:  "name",
		get: func(ctx context.Context, id *int, v *string) ([]model.Admin, error) {
			return inv.Admins.Get(ctx, core.AdminQuery{ID: id, Name: v})
		},
		getByID: inv.Admins.GetByID,
		add:     inv.Admins.Add,
		update: func(ctx context.Context, row *model.Admin, v *string) error {
			return inv.Admins.Update(ctx, row, core.AdminChanges{Name: v})
		},
		delete: inv.Admins.Delete,
	}
}

func ipResource(inv *core.Inventory) lookupResource[model.IP] {
	return lookupResource[model.IP]{
		entity: core.EntityIP,
		field:  "address",
		get: func(ctx context.Context, id *int, v *string) ([]model.IP, error) {
			return inv.IPs.Get(ctx, core.IPQuery{ID: id, Address: v})
		},
		getByID: inv.IPs.GetByID,
		add:     inv.IPs.Add,
		update: func(ctx context.Context, row *model.IP, v *string) error {
			return inv.IPs.Update(ctx, row, core.IPChanges{Address: v})
		},
		delete: inv.IPs.Delete,
	}
}

func tagResource(inv *core.Inventory) lookupResource[model.Tag] {
	return lookupResource[model.Tag]{
		entity: core.EntityTag,
		field:  "name",
		get: func(ctx context.Context, id *int, v *string) ([]model.Tag, error) {
			return inv.Tags.Get(ctx, core.TagQuery{ID: id, Name: v})
		},
		getByID: inv.Tags.GetByID,
		add:     inv.Tags.Add,
		update: func(ctx context.Context, row *model.Tag, v *string) error {
			return inv.Tags.Update(ctx, row, core.TagChanges{Name: v})
		},
		delete: inv.Tags.Delete,
	}
}

func statusResource(inv *core.Inventory) lookupResource[model.ServerStatus] {
	return lookupResource[model.ServerStatus]{
		entity: core.EntityStatus,
		field:  "name",
		get: func(ctx context.Context, id *int, v *string) ([]model.ServerStatus, error) {
			return inv.Statuses.Get(ctx, core.StatusQuery{ID: id, Name: v})
		},
		getByID: inv.Statuses.GetByID,
		add:     inv.Statuses.Add,
		update: func(ctx context.Context, row *model.ServerStatus, v *string) error {
			return inv.Statuses.Update(ctx, row, core.StatusChanges{Name: v})
		},
		delete: inv.Statuses.Delete,
	}
}

func typeResource(inv *core.Inventory) lookupResource[model.ServerType] {
	return lookupResource[model.ServerType]{
		entity: core.EntityType,
		field:  "name",
		get: func(ctx context.Context, id *int, v *string) ([]model.ServerType, error) {
			return inv.Types.Get(ctx, core.TypeQuery{ID: id, Name: v})
		},
		getByID: inv.Types.GetByID,
		add:     inv.Types.Add,
		update: func(ctx context.Context, row *model.ServerType, v *string) error {
			return inv.Types.Update(ctx, row, core.TypeChanges{Name: v})
		},
		delete: inv.Types.Delete,
	}
}
