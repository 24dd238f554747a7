// Copyright (c) 2026 Keymaster Team
// srvinv - server inventory tracking
// This source code is licensed under the MIT license found in the LICENSE file.

package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/toeirei/srvinv/internal/core"
	"github.com/toeirei/srvinv/internal/model"
)

// serverInput is the body of POST and PATCH /api/v1/servers. A relation
// list that is present replaces the whole set; an empty list clears it.
type serverInput struct {
	Name        *string  `json:"name"`
	Status      *string  `json:"status"`
	Type        *string  `json:"type"`
	Description *string  `json:"description"`
	IPs         []string `json:"ips"`
	Tags        []string `json:"tags"`
	Admins      []string `json:"admins"`
}

// loadServer resolves the :id parameter or writes the error response.
func loadServer(c *gin.Context, inv *core.Inventory) (*model.Server, bool) {
	id, err := core.ParseID(core.EntityServer, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	s, err := inv.Servers.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return s, true
}

// ListServers handles GET /api/v1/servers. Query parameters id, name,
// status, type and ip filter by value; tags and admins take a
// comma-separated list that a server must hold completely.
func ListServers(inv *core.Inventory) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := queryID(c, core.EntityServer)
		if err != nil {
			respondError(c, err)
			return
		}
		q := core.ServerQuery{
			ID:     id,
			Name:   queryString(c, "name"),
			Status: queryString(c, "status"),
			Type:   queryString(c, "type"),
			IP:     queryString(c, "ip"),
		}
		if v, ok := c.GetQuery("tags"); ok {
			q.Tags = core.SplitNames(v)
		}
		if v, ok := c.GetQuery("admins"); ok {
			q.Admins = core.SplitNames(v)
		}
		servers, err := inv.Servers.Get(c.Request.Context(), q)
		if err != nil {
			respondError(c, err)
			return
		}
		if servers == nil {
			servers = []model.Server{}
		}
		c.JSON(http.StatusOK, servers)
	}
}

// GetServer handles GET /api/v1/servers/:id.
func GetServer(inv *core.Inventory) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := loadServer(c, inv)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, s)
	}
}

// CreateServer handles POST /api/v1/servers.
func CreateServer(inv *core.Inventory) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input serverInput
		if err := c.ShouldBindJSON(&input); err != nil {
			badRequest(c, err)
			return
		}
		if input.Name == nil || input.Status == nil || input.Type == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name, status and type are required"})
			return
		}
		s, err := inv.Servers.Add(c.Request.Context(), core.NewServer{
			Name:        *input.Name,
			Status:      *input.Status,
			Type:        *input.Type,
			Description: input.Description,
			IPs:         input.IPs,
			Tags:        input.Tags,
			Admins:      input.Admins,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, s)
	}
}

// UpdateServer handles PATCH /api/v1/servers/:id.
func UpdateServer(inv *core.Inventory) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := loadServer(c, inv)
		if !ok {
			return
		}
		var input serverInput
		if err := c.ShouldBindJSON(&input); err != nil {
			badRequest(c, err)
			return
		}
		err := inv.Servers.Update(c.Request.Context(), s, core.ServerChanges{
			Name:        input.Name,
			Status:      input.Status,
			Type:        input.Type,
			Description: input.Description,
			IPs:         input.IPs,
			Tags:        input.Tags,
			Admins:      input.Admins,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, s)
	}
}

// DeleteServer handles DELETE /api/v1/servers/:id.
func DeleteServer(inv *core.Inventory) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := loadServer(c, inv)
		if !ok {
			return
		}
		if err := inv.Servers.Delete(c.Request.Context(), s); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// ShowServer renders a server as one line of text. Without :id it shows
// the server with id 1.
func ShowServer(inv *core.Inventory) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.Param("id")
		if raw == "" {
			raw = "1"
		}
		id, err := core.ParseID(core.EntityServer, raw)
		if err != nil {
			respondError(c, err)
			return
		}
		s, err := inv.Servers.GetByID(c.Request.Context(), id)
		if err != nil {
			c.String(statusFor(err), err.Error())
			return
		}
		c.String(http.StatusOK, s.Summary())
	}
}

// ShowServerType renders a server type name as text. Without :id it shows
// the type with id 1.
func ShowServerType(inv *core.Inventory) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.Param("id")
		if raw == "" {
			raw = "1"
		}
		id, err := core.ParseID(core.EntityType, raw)
		if err != nil {
			respondError(c, err)
			return
		}
		t, err := inv.Types.GetByID(c.Request.Context(), id)
		if err != nil {
			c.String(statusFor(err), err.Error())
			return
		}
		c.String(http.StatusOK, t.String())
	}
}
