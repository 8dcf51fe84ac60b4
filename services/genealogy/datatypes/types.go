// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package datatypes defines the wire and domain types for the genealogy
// service: people and their supervision lineage loaded from the research
// workbook, per-model biography entries, and the user-submitted rating and
// assessment records appended back to the Excel sinks.
package datatypes

import "fmt"

// Person is one scientist row from the lineage sheet, positioned for the
// frontend tree layout. IDs are assigned sequentially in load order,
// starting at 1.
type Person struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Position string `json:"position"` // "<type> | <gender>"
	Level    int    `json:"level"`    // always 0, no tree-depth computation
	X        int    `json:"x"`
	Y        int    `json:"y"`
}

// Relationship is a single supervision edge parsed from the embedded JSON
// payload of a lineage cell. The payload schema is owned by the upstream
// genealogy crawler, so fields stay open-ended.
type Relationship map[string]any

// Supervisor returns the supervisor name of the edge, or "".
func (r Relationship) Supervisor() string { return r.stringField("Name_supervisor") }

// Student returns the student name of the edge, or "".
func (r Relationship) Student() string { return r.stringField("Name_student") }

// Institution returns the student's institution, or "".
func (r Relationship) Institution() string { return r.stringField("Institution_student") }

// DissertationYear returns the student's dissertation year, or "".
func (r Relationship) DissertationYear() string { return r.stringField("Year_Dissertation_student") }

// Confidence returns the crawler's confidence label, or "".
func (r Relationship) Confidence() string { return r.stringField("Confidence") }

// stringField coerces an open-ended payload value to a string. Numeric
// years arrive as JSON numbers, so non-strings go through fmt.Sprint.
func (r Relationship) stringField(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// LineageEntry holds the four relationship sequences for one scientist,
// keyed in the store by the scientist's trimmed name.
type LineageEntry struct {
	PersonID         int            `json:"person_id"`
	DirectSupervisor []Relationship `json:"direct_supervisor"`
	DirectStudents   []Relationship `json:"direct_students"`
	AllAncestors     []Relationship `json:"all_ancestors"`
	AllDescendants   []Relationship `json:"all_descendants"`
}

// Biography is one (scientist, model) entry from the biography sheet.
type Biography struct {
	Name                   string `json:"name"`
	Type                   string `json:"type"`
	Gender                 string `json:"gender"`
	Model                  string `json:"model"`
	MinimalBiography       string `json:"minimal_biography"`
	ComprehensiveBiography string `json:"comprehensive_biography"`
}

// ScientistSummary is the listing shape for biography scientists. Model is
// only set by the per-model listing.
type ScientistSummary struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	Gender string `json:"gender"`
	Model  string `json:"model,omitempty"`
}

// Relationship type and expected answer values for lineage questions.
const (
	RelationshipSupervises   = "supervises"
	RelationshipSupervisedBy = "supervised_by"

	AnswerASupervisesB = "A_supervises_B"
	AnswerBSupervisesA = "B_supervises_A"
)

// Question is one derived comparison question: does the scientist supervise
// the other person, or the other way around?
type Question struct {
	Scientist        string `json:"scientist"`
	OtherPerson      string `json:"other_person"`
	RelationshipType string `json:"relationship_type"`
	Institution      string `json:"institution"`
	Year             string `json:"year"`
	Confidence       string `json:"confidence"`
	ExpectedAnswer   string `json:"expected_answer"`
}

// Rating is a persisted human judgment of a model-generated biography,
// scored per category. Identity is the caller-supplied id; duplicates are
// accepted (append-log semantics).
type Rating struct {
	ID               string `json:"id"`
	ScientistName    string `json:"scientist_name"`
	Model            string `json:"model"`
	Technique        string `json:"technique"`
	Prompt           string `json:"prompt"`
	Response         string `json:"response"`
	AffiliationScore int    `json:"affiliation_score"`
	ResearchScore    int    `json:"research_score"`
	GenderScore      int    `json:"gender_score"`
	Timestamp        string `json:"timestamp"`
	Notes            string `json:"notes"`
}

// Assessment is a human-curated ground-truth statement of a scientist's
// actual supervisors and supervisees.
type Assessment struct {
	ID          string `json:"id"`
	PersonName  string `json:"person_name"`
	Supervisors string `json:"supervisors"`
	Supervisees string `json:"supervisees"`
	SourceURL   string `json:"source_url"`
	Timestamp   string `json:"timestamp"`
	Notes       string `json:"notes"`
}

// CategoryScore is one per-category score in a rating submission.
type CategoryScore struct {
	Category string `json:"category"`
	Score    int    `json:"score"`
}

// RatingSubmission is the POST /api/ratings request body.
type RatingSubmission struct {
	ID            string          `json:"id"`
	ScientistName string          `json:"scientist_name"`
	Model         string          `json:"model"`
	Technique     string          `json:"technique"`
	Prompt        string          `json:"prompt"`
	Response      string          `json:"response"`
	Ratings       []CategoryScore `json:"ratings"`
	Timestamp     string          `json:"timestamp"`
	Notes         string          `json:"notes"`
}

// AssessmentSubmission is the POST /api/genealogy/assessments request body.
type AssessmentSubmission struct {
	ID          string `json:"id"`
	PersonName  string `json:"person_name"`
	Supervisors string `json:"supervisors"`
	Supervisees string `json:"supervisees"`
	SourceURL   string `json:"source_url"`
	Timestamp   string `json:"timestamp"`
	Notes       string `json:"notes"`
}

// ScoreLabel maps a numeric category score to the label persisted in the
// ratings sink. Raters submit 1, 3 or 5; anything else is Unknown.
func ScoreLabel(score int) string {
	switch score {
	case 1:
		return "Incorrect"
	case 3:
		return "Not applicable"
	case 5:
		return "Correct"
	default:
		return "Unknown"
	}
}
