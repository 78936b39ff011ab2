// Copyright (C) 2026 Sonorous Guardian
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package scoring

import (
	"github.com/SonorousGuardian/risk-management-dashboard/services/dashboard/datatypes"
)

// Summarize computes the dashboard's top-line KPIs from one risk
// snapshot.
//
// All values come out of a single pass over the same slice, so they are
// mutually consistent: the caller hands in one snapshot and the severity,
// status, and mitigation counts cannot race each other.
//
// An empty register is not an error. MitigatedPercentage and AverageScore
// are defined as 0 when the register is empty.
func Summarize(risks []datatypes.Risk) datatypes.DashboardStats {
	stats := datatypes.DashboardStats{TotalRisks: len(risks)}
	if stats.TotalRisks == 0 {
		return stats
	}

	scoreSum := 0
	for _, r := range risks {
		scoreSum += r.RiskScore

		switch datatypes.SeverityBand(r.RiskScore) {
		case datatypes.BandCritical:
			stats.CriticalRisks++
		case datatypes.BandHigh:
			stats.HighRisks++
		case datatypes.BandMedium:
			stats.MediumRisks++
		case datatypes.BandLow:
			stats.LowRisks++
		}

		switch r.Status {
		case datatypes.StatusOpen:
			stats.OpenRisks++
		case datatypes.StatusClosed:
			stats.ClosedRisks++
		case datatypes.StatusAccepted:
			stats.AcceptedRisks++
		}

		if r.IsMitigated {
			stats.MitigatedRisks++
		}
	}

	total := float64(stats.TotalRisks)
	stats.AverageScore = round1(float64(scoreSum) / total)
	stats.MitigatedPercentage = round1(float64(stats.MitigatedRisks) / total * 100)
	return stats
}
