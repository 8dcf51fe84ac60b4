// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package store holds the in-memory state of the genealogy service: the
// people and lineage data loaded from the research workbook, the per-model
// biography entries, and the accumulated rating/assessment records that are
// rewritten to Excel sinks on every save.
//
// Loads parse the workbook into fresh snapshots and swap them under a write
// lock, so concurrent readers never observe a half-built state. A failed
// load resets the affected dataset to empty and is logged, never surfaced:
// the store stays usable and queries return empty results.
package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/AleutianAI/LineageBench/services/genealogy/datatypes"
	"github.com/AleutianAI/LineageBench/services/genealogy/observability"
)

// Layout constants for the frontend tree view. Every person sits in one
// column; rows are spaced by insertion order.
const (
	layoutX        = 300
	layoutYStart   = 50
	layoutYSpacing = 120
)

// Config configures a Store.
type Config struct {
	// WorkbookPath is the research workbook (.xlsx) holding the lineage
	// and biography sheets.
	WorkbookPath string

	// RatingsPath is the Excel sink rewritten on every rating save.
	RatingsPath string

	// AssessmentsPath is the Excel sink rewritten on every assessment save.
	AssessmentsPath string

	// Metrics is optional; nil disables metric recording.
	Metrics *observability.Metrics
}

// Store is the single owner of all mutable service state. Safe for
// concurrent use: queries take the read lock, loads and saves the write
// lock. Saves hold the write lock across the sink rewrite so at most one
// writer touches a sink file at a time.
type Store struct {
	cfg Config

	mu          sync.RWMutex
	people      []datatypes.Person
	lineage     map[string]datatypes.LineageEntry
	bio         *biographySet
	ratings     []datatypes.Rating
	assessments []datatypes.Assessment
}

// New creates an empty store. Call LoadLineage and LoadBiography (or
// Reload) to populate it.
func New(cfg Config) *Store {
	return &Store{
		cfg:     cfg,
		lineage: make(map[string]datatypes.LineageEntry),
		bio:     newBiographySet(),
	}
}

// WorkbookPath returns the configured workbook path.
func (s *Store) WorkbookPath() string { return s.cfg.WorkbookPath }

// =============================================================================
// Loading
// =============================================================================

// LoadLineage (re)loads the lineage sheet. The previous people/lineage
// snapshot is fully replaced; on failure it is replaced with an empty one.
func (s *Store) LoadLineage() {
	people, lineage, err := s.parseLineage()
	s.cfg.Metrics.RecordLoad("lineage", err)
	if err != nil {
		slog.Error("Error loading lineage data", "workbook", s.cfg.WorkbookPath, "error", err)
		people, lineage = nil, make(map[string]datatypes.LineageEntry)
	} else {
		slog.Info("Loaded lineage data", "people", len(people))
	}

	s.mu.Lock()
	s.people = people
	s.lineage = lineage
	s.mu.Unlock()
	s.cfg.Metrics.SetPeopleLoaded(len(people))
}

// LoadBiography (re)loads the biography sheet with the same failure
// semantics as LoadLineage.
func (s *Store) LoadBiography() {
	bio, err := s.parseBiography()
	s.cfg.Metrics.RecordLoad("biography", err)
	if err != nil {
		slog.Error("Error loading biography data", "workbook", s.cfg.WorkbookPath, "error", err)
		bio = newBiographySet()
	} else {
		slog.Info("Loaded biography data", "scientists", bio.len(), "models", len(bio.modelNames()))
	}

	s.mu.Lock()
	s.bio = bio
	s.mu.Unlock()
	s.cfg.Metrics.SetBiographyScientists(bio.len())
}

// Reload reloads both sheets.
func (s *Store) Reload() {
	s.LoadLineage()
	s.LoadBiography()
}

func (s *Store) parseLineage() ([]datatypes.Person, map[string]datatypes.LineageEntry, error) {
	table, err := readSheet(s.cfg.WorkbookPath, lineageSheet)
	if err != nil {
		return nil, nil, err
	}

	var people []datatypes.Person
	lineage := make(map[string]datatypes.LineageEntry)
	for _, row := range table.rows {
		name := table.cell(row, "Name")
		if name == "" {
			continue
		}
		// Duplicate rows for a name are skipped: first occurrence wins.
		if _, seen := lineage[name]; seen {
			continue
		}

		id := len(people) + 1
		people = append(people, datatypes.Person{
			ID:       id,
			Name:     name,
			Position: table.cellOrDefault(row, "Type", "Unknown") + " | " + table.cellOrDefault(row, "Gender", "Unknown"),
			Level:    0,
			X:        layoutX,
			Y:        layoutYStart + len(people)*layoutYSpacing,
		})
		lineage[name] = datatypes.LineageEntry{
			PersonID:         id,
			DirectSupervisor: parseRelationships(table.cell(row, "1 up")),
			DirectStudents:   parseRelationships(table.cell(row, "1 down")),
			AllAncestors:     parseRelationships(table.cell(row, "all ancestors")),
			AllDescendants:   parseRelationships(table.cell(row, "all descendants")),
		}
	}
	return people, lineage, nil
}

func (s *Store) parseBiography() (*biographySet, error) {
	table, err := readSheet(s.cfg.WorkbookPath, biographySheet)
	if err != nil {
		return nil, err
	}

	bio := newBiographySet()
	for _, row := range table.rows {
		name := table.cell(row, "Name")
		if name == "" {
			continue
		}
		bio.put(datatypes.Biography{
			Name:                   name,
			Type:                   table.cellOrDefault(row, "Type", "Unknown"),
			Gender:                 table.cellOrDefault(row, "Gender", "Unknown"),
			Model:                  table.cellOrDefault(row, "Model", "Unknown"),
			MinimalBiography:       table.cell(row, "Biography(Minimal)"),
			ComprehensiveBiography: table.cell(row, "Biography(Comprehensive)"),
		})
	}
	return bio, nil
}

// parseRelationships decodes one lineage cell. The cell holds a JSON object
// whose "results" array is the relationship sequence. Blank cells, malformed
// JSON and payloads without a results array all degrade to an empty
// sequence; parse failures are logged at warning level and never propagate.
func parseRelationships(raw string) []datatypes.Relationship {
	if raw == "" {
		return []datatypes.Relationship{}
	}
	var payload struct {
		Results []datatypes.Relationship `json:"results"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		slog.Warn("Failed to parse lineage JSON", "error", truncate(err.Error(), 100))
		return []datatypes.Relationship{}
	}
	if payload.Results == nil {
		return []datatypes.Relationship{}
	}
	return payload.Results
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// =============================================================================
// Queries
// =============================================================================

// People returns all people in id order.
func (s *Store) People() []datatypes.Person {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]datatypes.Person, len(s.people))
	copy(out, s.people)
	return out
}

// PeopleCount returns the size of the current lineage snapshot.
func (s *Store) PeopleCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.people)
}

// PersonByID returns the person with the given id, or ErrPersonNotFound.
func (s *Store) PersonByID(id int) (datatypes.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.people {
		if p.ID == id {
			return p, nil
		}
	}
	return datatypes.Person{}, ErrPersonNotFound
}

// Lineage returns the lineage entry for an exact trimmed name, or
// ErrLineageNotFound. No fuzzy matching.
func (s *Store) Lineage(name string) (datatypes.LineageEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.lineage[name]
	if !ok {
		return datatypes.LineageEntry{}, ErrLineageNotFound
	}
	return entry, nil
}

// BiographyModels returns the full per-model biography mapping for a
// scientist, or ErrBiographyNotFound.
func (s *Store) BiographyModels(name string) (map[string]datatypes.Biography, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	models, ok := s.bio.byName[name]
	if !ok {
		return nil, ErrBiographyNotFound
	}
	out := make(map[string]datatypes.Biography, len(models.byModel))
	for model, entry := range models.byModel {
		out[model] = entry
	}
	return out, nil
}

// BiographyForModel returns the biography entry for (name, model). When the
// model has no entry for the scientist, the scientist's first loaded model
// is returned instead; this fallback is observable API behavior, keep it.
func (s *Store) BiographyForModel(name, model string) (datatypes.Biography, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	models, ok := s.bio.byName[name]
	if !ok || len(models.order) == 0 {
		return datatypes.Biography{}, ErrBiographyNotFound
	}
	if entry, ok := models.byModel[model]; ok {
		return entry, nil
	}
	return models.byModel[models.order[0]], nil
}

// BiographyScientists returns one summary per scientist, in load order.
// Name, type and gender come from the scientist's first loaded model entry.
func (s *Store) BiographyScientists() []datatypes.ScientistSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]datatypes.ScientistSummary, 0, len(s.bio.order))
	for _, name := range s.bio.order {
		models := s.bio.byName[name]
		if len(models.order) == 0 {
			continue
		}
		first := models.byModel[models.order[0]]
		out = append(out, datatypes.ScientistSummary{
			Name:   first.Name,
			Type:   first.Type,
			Gender: first.Gender,
		})
	}
	return out
}

// Models returns the deduplicated model names across all scientists, in
// first-seen load order.
func (s *Store) Models() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bio.modelNames()
}

// ScientistsForModel returns a summary for every scientist that has an
// entry for the exact model name.
func (s *Store) ScientistsForModel(model string) []datatypes.ScientistSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]datatypes.ScientistSummary, 0)
	for _, name := range s.bio.order {
		entry, ok := s.bio.byName[name].byModel[model]
		if !ok {
			continue
		}
		out = append(out, datatypes.ScientistSummary{
			Name:   entry.Name,
			Type:   entry.Type,
			Gender: entry.Gender,
			Model:  entry.Model,
		})
	}
	return out
}

// =============================================================================
// Mutations
// =============================================================================

// SaveRating builds a rating from a submission, appends it in memory and
// rewrites the ratings sink from the full accumulated list. When the sink
// rewrite fails the in-memory append is kept (the durability gap is logged
// and surfaced, not rolled back).
func (s *Store) SaveRating(sub datatypes.RatingSubmission) (datatypes.Rating, error) {
	if err := requireFields(map[string]string{
		"id":        sub.ID,
		"model":     sub.Model,
		"technique": sub.Technique,
		"prompt":    sub.Prompt,
		"response":  sub.Response,
		"timestamp": sub.Timestamp,
	}); err != nil {
		s.cfg.Metrics.RecordSave("rating", err)
		return datatypes.Rating{}, err
	}

	scientist := sub.ScientistName
	if scientist == "" {
		scientist = "Unknown"
	}
	rating := datatypes.Rating{
		ID:               sub.ID,
		ScientistName:    scientist,
		Model:            sub.Model,
		Technique:        sub.Technique,
		Prompt:           sub.Prompt,
		Response:         sub.Response,
		AffiliationScore: scoreForCategory(sub.Ratings, "affiliation"),
		ResearchScore:    scoreForCategory(sub.Ratings, "research"),
		GenderScore:      scoreForCategory(sub.Ratings, "gender"),
		Timestamp:        sub.Timestamp,
		Notes:            sub.Notes,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ratings = append(s.ratings, rating)
	err := writeRatingsSink(s.cfg.RatingsPath, s.ratings)
	s.cfg.Metrics.RecordSave("rating", err)
	if err != nil {
		slog.Error("Error saving ratings to Excel", "path", s.cfg.RatingsPath, "error", err)
		return rating, fmt.Errorf("%w: %v", ErrPersist, err)
	}
	slog.Info("Saved rating", "scientist", rating.ScientistName, "model", rating.Model, "total", len(s.ratings))
	return rating, nil
}

// SaveAssessment appends a genealogy assessment and rewrites its sink, with
// the same durability semantics as SaveRating.
func (s *Store) SaveAssessment(sub datatypes.AssessmentSubmission) (datatypes.Assessment, error) {
	if err := requireFields(map[string]string{
		"id":          sub.ID,
		"person_name": sub.PersonName,
		"supervisors": sub.Supervisors,
		"supervisees": sub.Supervisees,
		"timestamp":   sub.Timestamp,
	}); err != nil {
		s.cfg.Metrics.RecordSave("assessment", err)
		return datatypes.Assessment{}, err
	}

	assessment := datatypes.Assessment{
		ID:          sub.ID,
		PersonName:  sub.PersonName,
		Supervisors: sub.Supervisors,
		Supervisees: sub.Supervisees,
		SourceURL:   sub.SourceURL,
		Timestamp:   sub.Timestamp,
		Notes:       sub.Notes,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.assessments = append(s.assessments, assessment)
	err := writeAssessmentsSink(s.cfg.AssessmentsPath, s.assessments)
	s.cfg.Metrics.RecordSave("assessment", err)
	if err != nil {
		slog.Error("Error saving genealogy assessments to Excel", "path", s.cfg.AssessmentsPath, "error", err)
		return assessment, fmt.Errorf("%w: %v", ErrPersist, err)
	}
	slog.Info("Saved genealogy assessment", "person", assessment.PersonName, "total", len(s.assessments))
	return assessment, nil
}

// Ratings returns all ratings in insertion order.
func (s *Store) Ratings() []datatypes.Rating {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]datatypes.Rating, len(s.ratings))
	copy(out, s.ratings)
	return out
}

// Assessments returns all assessments in insertion order.
func (s *Store) Assessments() []datatypes.Assessment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]datatypes.Assessment, len(s.assessments))
	copy(out, s.assessments)
	return out
}

// scoreForCategory extracts the score for a category from a submission's
// ratings list. First match wins; a missing category scores 0.
func scoreForCategory(ratings []datatypes.CategoryScore, category string) int {
	for _, r := range ratings {
		if r.Category == category {
			return r.Score
		}
	}
	return 0
}

func requireFields(fields map[string]string) error {
	for name, value := range fields {
		if value == "" {
			return fmt.Errorf("%w: %s", ErrMissingField, name)
		}
	}
	return nil
}

// =============================================================================
// Biography snapshot
// =============================================================================

// biographySet is the nested scientist -> model -> entry mapping, with
// insertion order preserved on both levels so the documented "first model
// wins" fallbacks stay deterministic.
type biographySet struct {
	order  []string
	byName map[string]*modelEntries
}

type modelEntries struct {
	order   []string
	byModel map[string]datatypes.Biography
}

func newBiographySet() *biographySet {
	return &biographySet{byName: make(map[string]*modelEntries)}
}

// put inserts or overwrites the (name, model) entry. A repeated model for
// the same scientist overwrites the previous entry but keeps its position.
func (b *biographySet) put(entry datatypes.Biography) {
	models, ok := b.byName[entry.Name]
	if !ok {
		models = &modelEntries{byModel: make(map[string]datatypes.Biography)}
		b.byName[entry.Name] = models
		b.order = append(b.order, entry.Name)
	}
	if _, seen := models.byModel[entry.Model]; !seen {
		models.order = append(models.order, entry.Model)
	}
	models.byModel[entry.Model] = entry
}

func (b *biographySet) len() int { return len(b.order) }

// modelNames returns the deduplicated model names in first-seen order.
func (b *biographySet) modelNames() []string {
	seen := make(map[string]bool)
	names := make([]string, 0)
	for _, scientist := range b.order {
		for _, model := range b.byName[scientist].order {
			if !seen[model] {
				seen[model] = true
				names = append(names, model)
			}
		}
	}
	return names
}
