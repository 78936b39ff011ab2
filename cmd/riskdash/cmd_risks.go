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
	"net/url"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/SonorousGuardian/risk-management-dashboard/services/dashboard/datatypes"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	risksStatus   string
	risksCategory string
	risksOwner    string
	risksSearch   string
	risksSortBy   string
	risksPage     int
	risksPageSize int
)

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

var risksCmd = &cobra.Command{
	Use:   "risks",
	Short: "List risks from the register",
	Long: `Lists risks with the same filters the dashboard table supports.

Examples:
  riskdash risks                          # First page, highest score first
  riskdash risks --status Open            # Open risks only
  riskdash risks --search RISK-00         # Search risk id and title
  riskdash risks --sort-by last_updated   # Oldest update first
  riskdash risks --page 2 --page-size 50`,
	RunE: runRisks,
}

func init() {
	risksCmd.Flags().StringVar(&risksStatus, "status", "", "Filter by status (Open, Mitigated, Closed, Accepted)")
	risksCmd.Flags().StringVar(&risksCategory, "category", "", "Filter by risk category")
	risksCmd.Flags().StringVar(&risksOwner, "owner", "", "Filter by risk owner")
	risksCmd.Flags().StringVar(&risksSearch, "search", "", "Case-insensitive search over risk id and title")
	risksCmd.Flags().StringVar(&risksSortBy, "sort-by", "", "Sort field, '-' prefix for descending (default -risk_score)")
	risksCmd.Flags().IntVar(&risksPage, "page", 1, "Page number (1-based)")
	risksCmd.Flags().IntVar(&risksPageSize, "page-size", 20, "Rows per page (max 100)")
}

func runRisks(cmd *cobra.Command, args []string) error {
	query := url.Values{}
	setIfPresent := func(key, value string) {
		if value != "" {
			query.Set(key, value)
		}
	}
	setIfPresent("status", risksStatus)
	setIfPresent("category", risksCategory)
	setIfPresent("owner", risksOwner)
	setIfPresent("search", risksSearch)
	setIfPresent("sort_by", risksSortBy)
	query.Set("page", strconv.Itoa(risksPage))
	query.Set("page_size", strconv.Itoa(risksPageSize))

	var resp datatypes.RiskListResponse
	if err := apiCall(cmd.Context(), http.MethodGet, "/v1/risks", query, &resp); err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RISK ID\tTITLE\tSCORE\tSTATUS\tOWNER\tMITIGATED")
	for _, r := range resp.Results {
		mitigated := "no"
		if r.IsMitigated {
			mitigated = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\n",
			r.RiskID, truncate(r.Title, 48), r.RiskScore, r.Status, r.Owner, mitigated)
	}
	w.Flush()
	fmt.Printf("\nPage %d (%d of %d risks)\n", resp.Page, len(resp.Results), resp.TotalCount)
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
