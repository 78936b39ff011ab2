// Copyright (C) 2026 Sonorous Guardian
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package report renders the downloadable register reports.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/SonorousGuardian/risk-management-dashboard/services/dashboard/datatypes"
	"github.com/SonorousGuardian/risk-management-dashboard/services/dashboard/scoring"
)

// Filename returns the timestamped download name for a CSV report.
func Filename(now time.Time) string {
	return fmt.Sprintf("risk_register_full_report_%s.csv", now.Format("20060102_150405"))
}

// WriteCSV writes the full register report: summary statistics, the 5x5
// matrix grid, category and status distributions, and every risk row.
// All aggregates are computed from the one snapshot passed in, so the
// sections cannot disagree with each other.
func WriteCSV(w io.Writer, risks []datatypes.Risk, now time.Time) error {
	cw := csv.NewWriter(w)

	stats := scoring.Summarize(risks)

	writeSummary(cw, stats, now)
	writeMatrix(cw, scoring.Matrix(risks))
	writeDistribution(cw, risks, scoring.GroupByCategory, "RISKS BY CATEGORY", "Category")
	writeDistribution(cw, risks, scoring.GroupByStatus, "RISKS BY STATUS", "Status")
	writeRiskRows(cw, risks)

	cw.Flush()
	return cw.Error()
}

func writeSummary(cw *csv.Writer, stats datatypes.DashboardStats, now time.Time) {
	cw.Write([]string{"=== RISK REGISTER SUMMARY ==="})
	cw.Write([]string{"Generated", now.Format("2006-01-02 15:04:05")})
	cw.Write(nil)
	cw.Write([]string{"Metric", "Value"})
	cw.Write([]string{"Total Risks", strconv.Itoa(stats.TotalRisks)})
	cw.Write([]string{fmt.Sprintf("Critical Risks (Score >= %d)", datatypes.ThresholdCritical), strconv.Itoa(stats.CriticalRisks)})
	cw.Write([]string{fmt.Sprintf("High Risks (Score %d-%d)", datatypes.ThresholdHigh, datatypes.ThresholdCritical-1), strconv.Itoa(stats.HighRisks)})
	cw.Write([]string{"Open Risks", strconv.Itoa(stats.OpenRisks)})
	cw.Write([]string{"Mitigated Risks", strconv.Itoa(stats.MitigatedRisks)})
	cw.Write([]string{"Average Risk Score", strconv.FormatFloat(stats.AverageScore, 'f', 1, 64)})
	cw.Write(nil)
}

// writeMatrix renders the heatmap as a grid, likelihood rows from 5 down
// to 1 so the layout matches the on-screen matrix.
func writeMatrix(cw *csv.Writer, cells map[string]datatypes.MatrixCell) {
	cw.Write([]string{"=== RISK MATRIX (Likelihood x Impact) ==="})
	headerRow := []string{""}
	for impact := 1; impact <= 5; impact++ {
		headerRow = append(headerRow, fmt.Sprintf("Impact %d", impact))
	}
	cw.Write(headerRow)
	for likelihood := 5; likelihood >= 1; likelihood-- {
		row := []string{fmt.Sprintf("Likelihood %d", likelihood)}
		for impact := 1; impact <= 5; impact++ {
			row = append(row, strconv.Itoa(cells[scoring.MatrixKey(likelihood, impact)].Count))
		}
		cw.Write(row)
	}
	cw.Write(nil)
}

func writeDistribution(cw *csv.Writer, risks []datatypes.Risk, key scoring.GroupKey, title, column string) {
	entries, err := scoring.Distribution(risks, key)
	if err != nil {
		return // keys here are compile-time constants
	}
	cw.Write([]string{fmt.Sprintf("=== %s ===", title)})
	cw.Write([]string{column, "Count"})
	for _, e := range entries {
		cw.Write([]string{e.Value, strconv.Itoa(e.Count)})
	}
	cw.Write(nil)
}

func writeRiskRows(cw *csv.Writer, risks []datatypes.Risk) {
	cw.Write([]string{"=== ALL RISKS ==="})
	cw.Write([]string{
		"Risk ID", "Title", "Risk Owner", "Risk Category",
		"Likelihood", "Impact", "Risk Score", "Severity", "Status",
		"Control Effectiveness", "Last Updated", "Is Mitigated",
	})
	for _, r := range risks {
		mitigated := "No"
		if r.IsMitigated {
			mitigated = "Yes"
		}
		cw.Write([]string{
			r.RiskID,
			r.Title,
			r.Owner,
			r.Category,
			strconv.Itoa(r.Likelihood),
			strconv.Itoa(r.Impact),
			strconv.Itoa(r.RiskScore),
			string(datatypes.SeverityBand(r.RiskScore)),
			r.Status,
			r.ControlEffectiveness,
			r.LastUpdated.Format("2006-01-02"),
			mitigated,
		})
	}
}
