// Copyright (c) 2026 Keymaster Team
// srvinv - server inventory tracking
// This source code is licensed under the MIT license found in the LICENSE file.

// Package web exposes the inventory over HTTP with gin: a JSON API under
// /api/v1 plus the plain-text smoke routes /, /server and /server_type.
package web

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/toeirei/srvinv/buildvars"
	"github.com/toeirei/srvinv/internal/core"
	"github.com/toeirei/srvinv/internal/logging"
	"github.com/toeirei/srvinv/internal/model"
)

// RequestIDHeader carries the per-request id on every response.
const RequestIDHeader = "X-Request-ID"

// HistorySource provides the audit log for /api/v1/history.
type HistorySource interface {
	AuditLog(ctx context.Context) ([]model.AuditLogEntry, error)
}

// NewRouter builds the gin engine for inv. history may be nil, in which
// case /api/v1/history is not registered.
func NewRouter(inv *core.Inventory, history HistorySource) *gin.Engine {
	if logging.DebugEnabled() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), RequestLogger())

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Hello World!")
	})
	r.GET("/server", ShowServer(inv))
	r.GET("/server/:id", ShowServer(inv))
	r.GET("/server_type", ShowServerType(inv))
	r.GET("/server_type/:id", ShowServerType(inv))

	api := r.Group("/api/v1")
	{
		api.GET("/version", func(c *gin.Context) {
			c.JSON(http.StatusOK, buildvars.Resolve(nil))
		})
		if history != nil {
			api.GET("/history", ListHistory(history))
		}

		registerLookup(api.Group("/admins"), adminResource(inv))
		registerLookup(api.Group("/ips"), ipResource(inv))
		registerLookup(api.Group("/tags"), tagResource(inv))
		registerLookup(api.Group("/statuses"), statusResource(inv))
		registerLookup(api.Group("/types"), typeResource(inv))

		servers := api.Group("/servers")
		servers.GET("", ListServers(inv))
		servers.GET("/:id", GetServer(inv))
		servers.POST("", CreateServer(inv))
		servers.PATCH("/:id", UpdateServer(inv))
		servers.DELETE("/:id", DeleteServer(inv))
	}
	return r
}

// RequestID tags every request with an id, reusing a valid incoming
// X-Request-ID.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set("requestID", id)
		c.Writer.Header().Set(RequestIDHeader, id)
		c.Next()
	}
}

// RequestLogger logs one line per request through the application logger.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		status := c.Writer.Status()
		logf := logging.Debugf
		if status >= http.StatusInternalServerError {
			logf = logging.Errorf
		}
		logf("http: %s %s -> %d (%s) id=%s", c.Request.Method, c.Request.URL.Path, status, time.Since(start), c.GetString("requestID"))
	}
}

// ListHistory returns the audit log, newest first.
func ListHistory(history HistorySource) gin.HandlerFunc {
	return func(c *gin.Context) {
		entries, err := history.AuditLog(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, entries)
	}
}
