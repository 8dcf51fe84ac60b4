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
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/AleutianAI/LineageBench/services/genealogy/datatypes"
)

// Sheet names of the two Excel sinks.
const (
	ratingsSinkSheet     = "AI Model Ratings"
	assessmentsSinkSheet = "Genealogy Assessments"
)

// writeRatingsSink rewrites the ratings sink from the full in-memory list.
// Scores are persisted as their review labels; the numeric scores live only
// in memory and on the API.
func writeRatingsSink(path string, ratings []datatypes.Rating) error {
	rows := make([][]any, 0, len(ratings))
	for _, r := range ratings {
		rows = append(rows, []any{
			r.ID,
			r.ScientistName,
			r.Model,
			r.Technique,
			r.Prompt,
			r.Response,
			datatypes.ScoreLabel(r.AffiliationScore),
			datatypes.ScoreLabel(r.ResearchScore),
			datatypes.ScoreLabel(r.GenderScore),
			r.Timestamp,
			r.Notes,
		})
	}
	headers := []any{
		"ID", "Scientist Name", "AI Model", "Technique", "Prompt", "Response",
		"Affiliation Score", "Research Score", "Gender Score", "Timestamp", "Notes",
	}
	return writeSink(path, ratingsSinkSheet, headers, rows)
}

// writeAssessmentsSink rewrites the genealogy assessments sink.
func writeAssessmentsSink(path string, assessments []datatypes.Assessment) error {
	rows := make([][]any, 0, len(assessments))
	for _, a := range assessments {
		rows = append(rows, []any{
			a.ID,
			a.PersonName,
			a.Supervisors,
			a.Supervisees,
			a.SourceURL,
			a.Timestamp,
			a.Notes,
		})
	}
	headers := []any{
		"ID", "Person Name", "Supervisors", "Supervisees", "Source URL", "Timestamp", "Notes",
	}
	return writeSink(path, assessmentsSinkSheet, headers, rows)
}

// writeSink writes a single-sheet workbook with a header row. The workbook
// is written to a temp file and renamed into place so a crash mid-write
// never leaves a corrupt sink behind.
func writeSink(path, sheet string, headers []any, rows [][]any) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("create sheet %q: %w", sheet, err)
	}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return fmt.Errorf("write header row: %w", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("row %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	// excelize.SaveAs rejects the .tmp extension, so write the workbook
	// to the temp file directly.
	tmp := path + ".tmp"
	out, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("save %s: %w", tmp, err)
	}
	if err := f.Write(out); err != nil {
		out.Close()
		os.Remove(tmp)
		return fmt.Errorf("save %s: %w", tmp, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("save %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}
