// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/AleutianAI/LineageBench/services/genealogy/handlers"
)

// SetupRoutes registers all genealogy API routes with the router.
//
// Genealogy:
//
//	GET  /api/genealogy/people - list all people
//	GET  /api/genealogy/people/:id - one person by id
//	POST /api/genealogy/reload - re-run the lineage load
//	GET  /api/genealogy/lineage/:name - lineage entry for a scientist
//	GET  /api/genealogy/questions/:name - derived comparison questions
//	GET  /api/genealogy/assessments - list genealogy assessments
//	POST /api/genealogy/assessments - submit a genealogy assessment
//
// Biography:
//
//	GET  /api/biography/scientists - scientist summaries
//	GET  /api/biography/models - available model names
//	GET  /api/biography/models/:model/scientists - scientists for a model
//	GET  /api/biography/:name - all-model biography for a scientist
//	GET  /api/biography/:name/:model - one-model biography
//
// Ratings:
//
//	GET  /api/ratings - list ratings
//	POST /api/ratings - submit a rating
//
// Health:
//
//	GET  /api/health - liveness and data counts
func SetupRoutes(router *gin.Engine, h *handlers.Handlers) {
	api := router.Group("/api")
	{
		genealogy := api.Group("/genealogy")
		{
			genealogy.GET("/people", h.HandleListPeople)
			genealogy.GET("/people/:id", h.HandleGetPerson)
			genealogy.POST("/reload", h.HandleReload)
			genealogy.GET("/lineage/:name", h.HandleGetLineage)
			genealogy.GET("/questions/:name", h.HandleGetQuestions)
			genealogy.GET("/assessments", h.HandleListAssessments)
			genealogy.POST("/assessments", h.HandleSaveAssessment)
		}

		biography := api.Group("/biography")
		{
			biography.GET("/scientists", h.HandleBiographyScientists)
			biography.GET("/models", h.HandleListModels)
			biography.GET("/models/:model/scientists", h.HandleScientistsForModel)
			biography.GET("/:name", h.HandleGetBiography)
			biography.GET("/:name/:model", h.HandleGetBiographyByModel)
		}

		api.GET("/ratings", h.HandleListRatings)
		api.POST("/ratings", h.HandleSaveRating)

		api.GET("/health", h.HandleHealth)
	}
}
