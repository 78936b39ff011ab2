// Copyright (C) 2026 Sonorous Guardian
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package datatypes

// DashboardStats is the top-line KPI payload for the dashboard header.
type DashboardStats struct {
	TotalRisks          int     `json:"total_risks"`
	CriticalRisks       int     `json:"critical_risks"`
	HighRisks           int     `json:"high_risks"`
	MediumRisks         int     `json:"medium_risks"`
	LowRisks            int     `json:"low_risks"`
	OpenRisks           int     `json:"open_risks"`
	MitigatedRisks      int     `json:"mitigated_risks"`
	ClosedRisks         int     `json:"closed_risks"`
	AcceptedRisks       int     `json:"accepted_risks"`
	AverageScore        float64 `json:"average_score"`
	MitigatedPercentage float64 `json:"mitigated_percentage"`
}

// MatrixCell is one of the 25 likelihood/impact combinations. Cells are
// recomputed per request and emitted even when Count is zero so the client
// can render an empty grid.
type MatrixCell struct {
	Likelihood int `json:"likelihood"`
	Impact     int `json:"impact"`
	Count      int `json:"count"`
	Score      int `json:"score"`
}

// DistributionEntry is one group of a grouped count: the group value,
// how many risks carry it, and their average score. Only values actually
// present in the register are emitted.
type DistributionEntry struct {
	Value    string  `json:"value"`
	Count    int     `json:"count"`
	AvgScore float64 `json:"avg_score"`
}

// RiskListResponse is the filtered, sorted, paginated table payload.
// TotalCount is the size of the filtered set before slicing, so the client
// can build pagination controls.
type RiskListResponse struct {
	Results    []Risk `json:"results"`
	TotalCount int    `json:"total_count"`
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
}

// ToggleMitigationResponse confirms a mitigation flip.
type ToggleMitigationResponse struct {
	ID          string `json:"id"`
	RiskID      string `json:"risk_id"`
	IsMitigated bool   `json:"is_mitigated"`
	Message     string `json:"message"`
}

// SyncResult reports one CSV or Sheets ingestion run. Row-level failures
// are collected into Errors instead of aborting the run.
type SyncResult struct {
	Success        bool     `json:"success"`
	Message        string   `json:"message"`
	Created        int      `json:"created"`
	Updated        int      `json:"updated"`
	TotalProcessed int      `json:"total_processed"`
	Errors         []string `json:"errors,omitempty"`
}
