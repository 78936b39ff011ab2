// Copyright (C) 2026 Sonorous Guardian
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/SonorousGuardian/risk-management-dashboard/services/dashboard/datatypes"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var syncFromSheets bool

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Re-ingest the risk register from its source",
	Long: `Triggers a server-side sync of the risk register.

By default the service re-reads its configured CSV file; with --sheets
it pulls from the configured Google Sheet instead.

Examples:
  riskdash sync            # Sync from the register CSV
  riskdash sync --sheets   # Sync from Google Sheets`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&syncFromSheets, "sheets", false, "Sync from Google Sheets instead of the CSV file")
}

func runSync(cmd *cobra.Command, args []string) error {
	path := "/v1/sync/csv"
	if syncFromSheets {
		path = "/v1/sync/sheets"
	}

	var result datatypes.SyncResult
	if err := apiCall(cmd.Context(), http.MethodPost, path, nil, &result); err != nil {
		return err
	}

	fmt.Println(result.Message)
	fmt.Printf("  created: %d, updated: %d, processed: %d\n",
		result.Created, result.Updated, result.TotalProcessed)
	for _, e := range result.Errors {
		fmt.Printf("  error: %s\n", e)
	}
	return nil
}
