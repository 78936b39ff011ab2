// Copyright (C) 2026 Sonorous Guardian
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package ingest

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/SonorousGuardian/risk-management-dashboard/services/dashboard/datatypes"
)

// SheetsConfig configures the Google Sheets source.
type SheetsConfig struct {
	// SpreadsheetID is the document id from the sheet URL. Required.
	SpreadsheetID string

	// CredentialsFile is the path to a service-account JSON key. When
	// empty, application default credentials are used.
	CredentialsFile string

	// ReadRange is the A1-notation range to pull. Defaults to the
	// first sheet.
	ReadRange string
}

// ErrSheetsNotConfigured is returned when no spreadsheet id is set.
var ErrSheetsNotConfigured = errors.New("google sheet id not configured")

// SyncSheets pulls rows from a Google Sheet and upserts them by Risk ID.
// The sheet follows the same header contract as the CSV register.
func (s *Syncer) SyncSheets(ctx context.Context, cfg SheetsConfig) (datatypes.SyncResult, error) {
	if cfg.SpreadsheetID == "" {
		return datatypes.SyncResult{
			Success: false,
			Message: "Google Sheet ID not configured.",
		}, ErrSheetsNotConfigured
	}
	readRange := cfg.ReadRange
	if readRange == "" {
		readRange = "Sheet1"
	}

	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	opts = append(opts, option.WithScopes(sheets.SpreadsheetsReadonlyScope))

	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return datatypes.SyncResult{Success: false, Message: "failed to create Sheets client"},
			fmt.Errorf("sheets client: %w", err)
	}

	resp, err := svc.Spreadsheets.Values.Get(cfg.SpreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return datatypes.SyncResult{Success: false, Message: "failed to read spreadsheet"},
			fmt.Errorf("read sheet %s: %w", cfg.SpreadsheetID, err)
	}
	if len(resp.Values) == 0 {
		return datatypes.SyncResult{Success: false, Message: "spreadsheet is empty"}, ErrNoHeader
	}

	h := parseHeader(cellsToStrings(resp.Values[0]))
	result := datatypes.SyncResult{Success: true}
	now := s.now()
	for i, cells := range resp.Values[1:] {
		// Sheet rows are 1-based and row 1 is the header.
		s.upsertRow(h, cellsToStrings(cells), now, i+2, &result)
	}

	result.TotalProcessed = result.Created + result.Updated
	result.Message = "Google Sheets sync completed successfully."
	return result, nil
}

// cellsToStrings flattens a sheet row. The Sheets API returns cells as
// interface{} values; numeric cells stringify cleanly for our columns.
func cellsToStrings(cells []interface{}) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = fmt.Sprintf("%v", c)
	}
	return out
}
