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

import (
	"github.com/AleutianAI/LineageBench/services/genealogy/datatypes"
)

// LineageQuestions derives the comparison questions for a scientist from
// their lineage entry: one question per related person, asking which of the
// pair supervises the other.
//
// Relationships are walked in a fixed order (direct supervisor, direct
// students, all ancestors, all descendants). A relationship only yields a
// question when the scientist is one of its two endpoints by exact name
// match; indirect edges between two other people are skipped. The first
// relationship naming a given other person wins, later ones are dropped
// regardless of direction.
//
// Returns an empty slice when the scientist has no lineage entry or no
// person record.
func (s *Store) LineageQuestions(name string) []datatypes.Question {
	s.mu.RLock()
	defer s.mu.RUnlock()

	questions := []datatypes.Question{}
	entry, ok := s.lineage[name]
	if !ok {
		return questions
	}
	if !s.hasPerson(name) {
		return questions
	}

	related := make([]datatypes.Relationship, 0,
		len(entry.DirectSupervisor)+len(entry.DirectStudents)+len(entry.AllAncestors)+len(entry.AllDescendants))
	related = append(related, entry.DirectSupervisor...)
	related = append(related, entry.DirectStudents...)
	related = append(related, entry.AllAncestors...)
	related = append(related, entry.AllDescendants...)

	used := make(map[string]bool)
	for _, rel := range related {
		var otherName, relType, expected string
		switch name {
		case rel.Supervisor():
			otherName = rel.Student()
			relType = datatypes.RelationshipSupervises
			expected = datatypes.AnswerASupervisesB
		case rel.Student():
			otherName = rel.Supervisor()
			relType = datatypes.RelationshipSupervisedBy
			expected = datatypes.AnswerBSupervisesA
		default:
			// Indirect relationship between two other people.
			continue
		}
		if otherName == "" || used[otherName] {
			continue
		}
		used[otherName] = true
		questions = append(questions, datatypes.Question{
			Scientist:        name,
			OtherPerson:      otherName,
			RelationshipType: relType,
			Institution:      rel.Institution(),
			Year:             rel.DissertationYear(),
			Confidence:       rel.Confidence(),
			ExpectedAnswer:   expected,
		})
	}
	return questions
}

// hasPerson reports whether a person record exists for the name. Callers
// must hold at least the read lock.
func (s *Store) hasPerson(name string) bool {
	for _, p := range s.people {
		if p.Name == name {
			return true
		}
	}
	return false
}
