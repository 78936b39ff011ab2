// Copyright (C) 2026 Sonorous Guardian
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/SonorousGuardian/risk-management-dashboard/services/dashboard/datatypes"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var statsJSON bool

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the dashboard's top-line risk statistics",
	Long: `Fetches the summary statistics computed over the full register.

Examples:
  riskdash stats           # Human-readable KPI summary
  riskdash stats --json    # Raw JSON for scripting`,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Output raw JSON")
}

func runStats(cmd *cobra.Command, args []string) error {
	var stats datatypes.DashboardStats
	if err := apiCall(cmd.Context(), http.MethodGet, "/v1/dashboard/stats", nil, &stats); err != nil {
		return err
	}

	if statsJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	}

	fmt.Printf("Risk Register Summary\n")
	fmt.Printf("  Total risks:      %d\n", stats.TotalRisks)
	fmt.Printf("  Critical:         %d\n", stats.CriticalRisks)
	fmt.Printf("  High:             %d\n", stats.HighRisks)
	fmt.Printf("  Medium:           %d\n", stats.MediumRisks)
	fmt.Printf("  Low:              %d\n", stats.LowRisks)
	fmt.Printf("  Open:             %d\n", stats.OpenRisks)
	fmt.Printf("  Mitigated:        %d (%.1f%%)\n", stats.MitigatedRisks, stats.MitigatedPercentage)
	fmt.Printf("  Average score:    %.1f\n", stats.AverageScore)
	return nil
}
