// Copyright (c) 2026 Keymaster Team
// srvinv - server inventory tracking
// This source code is licensed under the MIT license found in the LICENSE file.

package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/toeirei/srvinv/internal/core"
	"github.com/toeirei/srvinv/internal/logging"
)

// statusFor maps an operation error to its HTTP status.
func statusFor(err error) int {
	switch {
	case core.IsValidation(err):
		return http.StatusBadRequest
	case core.IsNotFound(err):
		return http.StatusNotFound
	case core.IsConflict(err):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as {"error": ...}. Typed errors add the entity,
// field and kind so clients can tell failures apart.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	body := gin.H{"error": err.Error()}
	var ce *core.Error
	if errors.As(err, &ce) {
		body["entity"] = ce.Entity
		body["field"] = ce.Field
		body["kind"] = ce.Kind.String()
	}
	if status == http.StatusInternalServerError {
		logging.Errorf("http: %v", err)
		body["error"] = "internal error"
	}
	c.JSON(status, body)
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
