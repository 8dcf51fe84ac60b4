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
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/AleutianAI/LineageBench/services/genealogy/datatypes"
	"github.com/AleutianAI/LineageBench/services/genealogy/store"
)

// promptSeparator splits "<scientist> — <question>" prompts. The frontend
// builds prompts in that shape, so the scientist name can be recovered when
// a submission omits it.
const promptSeparator = " — "

// HandleSaveRating handles POST /api/ratings.
//
// Response:
//
//	200 OK: {success, message, id}
//	400 Bad Request: missing/invalid body or missing required fields
//	500 Internal Server Error: sink rewrite failed (record kept in memory)
func (h *Handlers) HandleSaveRating(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandleSaveRating")

	var sub datatypes.RatingSubmission
	if err := c.ShouldBindJSON(&sub); err != nil {
		logger.Warn("Invalid rating body", "error", err)
		fail(c, http.StatusBadRequest, "No rating data provided")
		return
	}

	// Submissions from the biography rater omit the scientist name; it is
	// recoverable from the prompt prefix.
	if sub.ScientistName == "" && strings.Contains(sub.Prompt, promptSeparator) {
		sub.ScientistName = strings.SplitN(sub.Prompt, promptSeparator, 2)[0]
	}

	rating, err := h.store.SaveRating(sub)
	if err != nil {
		logger.Error("Failed to save rating", "error", err)
		if errors.Is(err, store.ErrMissingField) {
			fail(c, http.StatusBadRequest, err.Error())
			return
		}
		fail(c, http.StatusInternalServerError, "Failed to save rating")
		return
	}

	logger.Info("Rating saved", "scientist", rating.ScientistName, "model", rating.Model)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Rating saved successfully",
		"id":      rating.ID,
	})
}

// HandleListRatings handles GET /api/ratings.
func (h *Handlers) HandleListRatings(c *gin.Context) {
	ratings := h.store.Ratings()
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"ratings": ratings,
		"count":   len(ratings),
	})
}

// HandleSaveAssessment handles POST /api/genealogy/assessments.
//
// Response:
//
//	200 OK: {success, message, id}
//	400 Bad Request: missing/invalid body or missing required fields
//	500 Internal Server Error: sink rewrite failed (record kept in memory)
func (h *Handlers) HandleSaveAssessment(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandleSaveAssessment")

	var sub datatypes.AssessmentSubmission
	if err := c.ShouldBindJSON(&sub); err != nil {
		logger.Warn("Invalid assessment body", "error", err)
		fail(c, http.StatusBadRequest, "No assessment data provided")
		return
	}

	assessment, err := h.store.SaveAssessment(sub)
	if err != nil {
		logger.Error("Failed to save genealogy assessment", "error", err)
		if errors.Is(err, store.ErrMissingField) {
			fail(c, http.StatusBadRequest, err.Error())
			return
		}
		fail(c, http.StatusInternalServerError, "Failed to save genealogy assessment")
		return
	}

	logger.Info("Assessment saved", "person", assessment.PersonName)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Genealogy assessment saved successfully",
		"id":      assessment.ID,
	})
}

// HandleListAssessments handles GET /api/genealogy/assessments.
func (h *Handlers) HandleListAssessments(c *gin.Context) {
	assessments := h.store.Assessments()
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"assessments": assessments,
		"count":       len(assessments),
	})
}
