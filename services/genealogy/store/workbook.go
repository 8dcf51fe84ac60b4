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
	"strings"

	"github.com/xuri/excelize/v2"
)

// Sheet names the loader expects in the research workbook. These are the
// literal tab names maintained by the research team.
const (
	lineageSheet   = "people to test (lineage)"
	biographySheet = "people to test (bio)"
)

// sheetTable is one worksheet flattened into header-indexed rows. Cells are
// addressed by header name so column order in the workbook doesn't matter;
// a missing column degrades to empty values.
type sheetTable struct {
	columns map[string]int
	rows    [][]string
}

// readSheet opens the workbook and flattens the named sheet. The first row
// is the header row. Returns an error when the file or sheet is missing or
// the workbook cannot be parsed.
func readSheet(path, sheet string) (*sheetTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return &sheetTable{columns: map[string]int{}}, nil
	}

	columns := make(map[string]int, len(rows[0]))
	for i, header := range rows[0] {
		header = strings.TrimSpace(header)
		if header == "" {
			continue
		}
		if _, exists := columns[header]; !exists {
			columns[header] = i
		}
	}
	return &sheetTable{columns: columns, rows: rows[1:]}, nil
}

// cell returns the trimmed value of the named column in a row, or "" when
// the column is absent or the row is too short.
func (t *sheetTable) cell(row []string, column string) string {
	idx, ok := t.columns[column]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// cellOrDefault is cell with a fallback for blank values. The original
// sheets leave Type/Gender/Model blank for some rows; those surface as
// "Unknown" everywhere downstream.
func (t *sheetTable) cellOrDefault(row []string, column, fallback string) string {
	if v := t.cell(row, column); v != "" {
		return v
	}
	return fallback
}
