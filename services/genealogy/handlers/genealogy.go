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
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// HandleListPeople handles GET /api/genealogy/people.
func (h *Handlers) HandleListPeople(c *gin.Context) {
	people := h.store.People()
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    people,
		"count":   len(people),
	})
}

// HandleGetPerson handles GET /api/genealogy/people/:id.
//
// Response:
//
//	200 OK: {success, data}
//	404 Not Found: unknown or non-numeric id
func (h *Handlers) HandleGetPerson(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		fail(c, http.StatusNotFound, "Person not found")
		return
	}
	person, err := h.store.PersonByID(id)
	if err != nil {
		fail(c, http.StatusNotFound, "Person not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    person,
	})
}

// HandleReload handles POST /api/genealogy/reload.
//
// Re-runs the lineage load. A failed load empties the store and is logged;
// the endpoint still reports success with the (then zero) people count, so
// a broken workbook never takes the API down.
func (h *Handlers) HandleReload(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	slog.Info("Reloading lineage data", "request_id", requestID)

	h.store.LoadLineage()
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Data reloaded successfully",
		"count":   h.store.PeopleCount(),
	})
}

// HandleGetLineage handles GET /api/genealogy/lineage/:name.
//
// Response:
//
//	200 OK: {success, scientist, lineage}
//	404 Not Found: no lineage entry for the exact trimmed name
func (h *Handlers) HandleGetLineage(c *gin.Context) {
	name := c.Param("name")
	lineage, err := h.store.Lineage(name)
	if err != nil {
		fail(c, http.StatusNotFound, fmt.Sprintf("No lineage data found for scientist: %s", name))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"scientist": name,
		"lineage":   lineage,
	})
}

// HandleGetQuestions handles GET /api/genealogy/questions/:name.
//
// An unknown scientist yields an empty question list, not a 404; the
// frontend treats "no questions" and "unknown name" the same way.
func (h *Handlers) HandleGetQuestions(c *gin.Context) {
	name := c.Param("name")
	questions := h.store.LineageQuestions(name)
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"scientist": name,
		"questions": questions,
		"count":     len(questions),
	})
}
