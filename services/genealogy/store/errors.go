// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package store

import "errors"

// Sentinel errors for the genealogy store.
var (
	// ErrPersonNotFound indicates no person exists with the requested id.
	ErrPersonNotFound = errors.New("person not found")

	// ErrLineageNotFound indicates no lineage entry exists for the name.
	ErrLineageNotFound = errors.New("no lineage data found")

	// ErrBiographyNotFound indicates no biography entry exists for the
	// name, or for the (name, model) pair.
	ErrBiographyNotFound = errors.New("no biography data found")

	// ErrMissingField indicates a submission lacks a required field.
	ErrMissingField = errors.New("missing required field")

	// ErrPersist indicates the Excel sink rewrite failed. The in-memory
	// append is kept; only durability is lost.
	ErrPersist = errors.New("failed to persist records")
)
