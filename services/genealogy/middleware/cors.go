// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package middleware holds the gin middleware for the genealogy service.
package middleware

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// defaultCORSOrigins are the local Vite dev servers the rating frontend
// runs on.
const defaultCORSOrigins = "http://localhost:5173,http://localhost:5174"

// CORS returns CORS middleware allowing the given origins. The origins
// string is comma-separated, typically from the CORS_ORIGINS env var;
// blank falls back to the local frontend dev servers.
func CORS(origins string) gin.HandlerFunc {
	if origins == "" {
		origins = defaultCORSOrigins
	}
	allowed := make([]string, 0)
	for _, origin := range strings.Split(origins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			allowed = append(allowed, origin)
		}
	}

	cfg := cors.DefaultConfig()
	cfg.AllowOrigins = allowed
	cfg.AllowHeaders = append(cfg.AllowHeaders, "X-Request-ID")
	return cors.New(cfg)
}
