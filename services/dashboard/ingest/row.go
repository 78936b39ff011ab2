// Copyright (C) 2026 Sonorous Guardian
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package ingest loads risk rows from CSV files and Google Sheets into
// the store.
//
// Both sources share one row contract: a header row naming the columns
// ("Risk ID", "Title", "Risk Owner", ...) followed by data rows. Rows
// are upserted by Risk ID — an existing record's mutable fields are
// overwritten and its score recomputed, a new Risk ID creates a record.
// Row-level failures are collected into the sync result instead of
// aborting the run.
package ingest

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/SonorousGuardian/risk-management-dashboard/services/dashboard/datatypes"
)

// Column header names expected in CSV files and sheets. Matching is
// whitespace-insensitive but otherwise exact, same contract as the
// register spreadsheets this ingests.
const (
	colRiskID        = "Risk ID"
	colTitle         = "Title"
	colOwner         = "Risk Owner"
	colCategory      = "Risk Category"
	colLikelihood    = "Likelihood"
	colImpact        = "Impact"
	colStatus        = "Status"
	colEffectiveness = "Control Effectiveness"
	colLastUpdated   = "Last Updated"
)

// dateLayout is the expected format of the Last Updated column.
const dateLayout = "2006-01-02"

// Row is one normalized risk tuple from an ingestion source.
type Row struct {
	RiskID               string `validate:"required"`
	Title                string
	Owner                string
	Category             string
	Likelihood           int    `validate:"min=1,max=5"`
	Impact               int    `validate:"min=1,max=5"`
	Status               string `validate:"oneof=Open Mitigated Closed Accepted"`
	ControlEffectiveness string `validate:"oneof=High Medium Low"`
	LastUpdated          time.Time
}

// rowValidator validates parsed rows before they reach the store.
var rowValidator = validator.New()

// header maps column names to their position in data records.
type header map[string]int

func parseHeader(record []string) header {
	h := make(header, len(record))
	for i, name := range record {
		h[strings.TrimSpace(name)] = i
	}
	return h
}

func (h header) get(record []string, column string) string {
	idx, ok := h[column]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

// parseRow converts one data record into a Row.
//
// Rows with an empty Risk ID are blank spreadsheet rows: the returned
// bool is false and they are skipped silently, not counted as errors.
// Missing Status and Control Effectiveness fall back to "Open" and
// "Medium"; a missing Last Updated takes the ingestion time.
func parseRow(h header, record []string, now time.Time) (Row, bool, error) {
	row := Row{
		RiskID:               h.get(record, colRiskID),
		Title:                h.get(record, colTitle),
		Owner:                h.get(record, colOwner),
		Category:             h.get(record, colCategory),
		Status:               h.get(record, colStatus),
		ControlEffectiveness: h.get(record, colEffectiveness),
		LastUpdated:          now,
	}
	if row.RiskID == "" {
		return Row{}, false, nil
	}
	if row.Status == "" {
		row.Status = datatypes.StatusOpen
	}
	if row.ControlEffectiveness == "" {
		row.ControlEffectiveness = datatypes.EffectivenessMedium
	}

	var err error
	if row.Likelihood, err = parseScale(h.get(record, colLikelihood)); err != nil {
		return Row{}, false, fmt.Errorf("likelihood: %w", err)
	}
	if row.Impact, err = parseScale(h.get(record, colImpact)); err != nil {
		return Row{}, false, fmt.Errorf("impact: %w", err)
	}
	if raw := h.get(record, colLastUpdated); raw != "" {
		row.LastUpdated, err = time.Parse(dateLayout, raw)
		if err != nil {
			return Row{}, false, fmt.Errorf("last updated: %w", err)
		}
	}

	if err := rowValidator.Struct(row); err != nil {
		return Row{}, false, fmt.Errorf("invalid row %s: %w", row.RiskID, err)
	}
	return row, true, nil
}

// parseScale parses a likelihood/impact cell. Empty cells default to 1,
// matching the register spreadsheet convention for not-yet-assessed
// risks.
func parseScale(raw string) (int, error) {
	if raw == "" {
		return 1, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("not an integer: %q", raw)
	}
	return v, nil
}

// toRisk converts a validated row to the store's record shape.
//
// IsMitigated is seeded from the workflow status on ingest (Mitigated
// and Closed rows arrive flagged); after ingestion the flag lives its
// own life through the toggle endpoint.
func (r Row) toRisk() datatypes.Risk {
	return datatypes.Risk{
		RiskID:               r.RiskID,
		Title:                r.Title,
		Owner:                r.Owner,
		Category:             r.Category,
		Likelihood:           r.Likelihood,
		Impact:               r.Impact,
		Status:               r.Status,
		ControlEffectiveness: r.ControlEffectiveness,
		IsMitigated:          r.Status == datatypes.StatusMitigated || r.Status == datatypes.StatusClosed,
		LastUpdated:          r.LastUpdated,
	}
}
