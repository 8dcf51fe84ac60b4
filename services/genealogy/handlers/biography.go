// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// HandleBiographyScientists handles GET /api/biography/scientists.
func (h *Handlers) HandleBiographyScientists(c *gin.Context) {
	scientists := h.store.BiographyScientists()
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"scientists": scientists,
		"count":      len(scientists),
	})
}

// HandleGetBiography handles GET /api/biography/:name.
//
// Returns the full per-model biography mapping for the scientist.
//
// Response:
//
//	200 OK: {success, scientist, biography}
//	404 Not Found: scientist has no biography data
func (h *Handlers) HandleGetBiography(c *gin.Context) {
	name := c.Param("name")
	biography, err := h.store.BiographyModels(name)
	if err != nil {
		fail(c, http.StatusNotFound, fmt.Sprintf("No biography data found for scientist: %s", name))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"scientist": name,
		"biography": biography,
	})
}

// HandleGetBiographyByModel handles GET /api/biography/:name/:model.
//
// When the scientist exists but has no entry for the requested model, the
// scientist's first loaded model entry is returned instead. That fallback
// is long-standing observable behavior the frontend relies on.
func (h *Handlers) HandleGetBiographyByModel(c *gin.Context) {
	name := c.Param("name")
	model := c.Param("model")
	biography, err := h.store.BiographyForModel(name, model)
	if err != nil {
		fail(c, http.StatusNotFound,
			fmt.Sprintf("No biography data found for scientist: %s with model: %s", name, model))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"scientist": name,
		"model":     model,
		"biography": biography,
	})
}

// HandleListModels handles GET /api/biography/models.
func (h *Handlers) HandleListModels(c *gin.Context) {
	models := h.store.Models()
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"models":  models,
		"count":   len(models),
	})
}

// HandleScientistsForModel handles GET /api/biography/models/:model/scientists.
func (h *Handlers) HandleScientistsForModel(c *gin.Context) {
	model := c.Param("model")
	scientists := h.store.ScientistsForModel(model)
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"model":      model,
		"scientists": scientists,
		"count":      len(scientists),
	})
}
