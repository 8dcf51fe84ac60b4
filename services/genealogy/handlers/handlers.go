// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package handlers contains the HTTP handlers for the genealogy service.
// Every response wraps its payload in a {success: bool, ...} envelope;
// failures carry {success: false, error: string} with a non-2xx status.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AleutianAI/LineageBench/services/genealogy/store"
)

// ServiceName identifies this service in health responses.
const ServiceName = "genealogy-api"

// Handlers contains the HTTP handlers for the genealogy API.
type Handlers struct {
	store *store.Store
}

// NewHandlers creates handlers backed by the given store.
func NewHandlers(s *store.Store) *Handlers {
	return &Handlers{store: s}
}

// fail writes the error envelope with the given status.
func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error":   message,
	})
}

// getOrCreateRequestID returns the X-Request-ID header, minting one when
// the caller didn't send it, and echoes it on the response.
func getOrCreateRequestID(c *gin.Context) string {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.NewString()
	}
	c.Header("X-Request-ID", requestID)
	return requestID
}

// HandleHealth handles GET /api/health.
func (h *Handlers) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":       "healthy",
		"service":      ServiceName,
		"data_source":  h.store.WorkbookPath(),
		"people_count": h.store.PeopleCount(),
	})
}
