// Copyright (C) 2026 Sonorous Guardian
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/SonorousGuardian/risk-management-dashboard/services/dashboard/datatypes"
	"github.com/SonorousGuardian/risk-management-dashboard/services/dashboard/store"
)

// ErrNoHeader is returned for a CSV source with no header row.
var ErrNoHeader = errors.New("source has no header row")

// Syncer upserts ingested rows into the risk store.
type Syncer struct {
	store *store.RiskStore
	now   func() time.Time
}

// NewSyncer creates a Syncer writing to the given store.
func NewSyncer(s *store.RiskStore) *Syncer {
	return &Syncer{store: s, now: time.Now}
}

// SyncCSVFile loads risks from the CSV file at path and upserts them by
// Risk ID. A missing file is an error; malformed rows are collected into
// the result, not fatal.
func (s *Syncer) SyncCSVFile(path string) (datatypes.SyncResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return datatypes.SyncResult{
			Success: false,
			Message: fmt.Sprintf("CSV file not found at: %s", path),
		}, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	return s.SyncCSV(f)
}

// SyncCSV loads risks from CSV data, first row being the header. Used
// both for the configured register file and for uploaded files.
func (s *Syncer) SyncCSV(r io.Reader) (datatypes.SyncResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // ragged rows are handled per-column

	headerRecord, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return datatypes.SyncResult{Success: false, Message: "CSV file is empty"}, ErrNoHeader
	}
	if err != nil {
		return datatypes.SyncResult{Success: false, Message: "failed to read CSV header"}, err
	}
	h := parseHeader(headerRecord)

	result := datatypes.SyncResult{Success: true}
	now := s.now()
	line := 1 // header was line 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", line, err))
			continue
		}
		s.upsertRow(h, record, now, line, &result)
	}

	result.TotalProcessed = result.Created + result.Updated
	result.Message = "CSV sync completed successfully."
	return result, nil
}

// upsertRow parses and stores one record, recording the outcome in the
// running result.
func (s *Syncer) upsertRow(h header, record []string, now time.Time, line int, result *datatypes.SyncResult) {
	row, ok, err := parseRow(h, record, now)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", line, err))
		return
	}
	if !ok {
		return // blank row
	}
	_, created, err := s.store.Upsert(row.toRisk())
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", line, err))
		return
	}
	if created {
		result.Created++
	} else {
		result.Updated++
	}
}
