// Copyright (C) 2026 Sonorous Guardian
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package datatypes

// Band is a severity classification derived from a risk score. It lives
// with the Risk record because severity is a property of the record
// itself: every serialized risk carries its band and color, and the
// aggregators classify with the same thresholds.
type Band string

const (
	BandLow      Band = "Low"
	BandMedium   Band = "Medium"
	BandHigh     Band = "High"
	BandCritical Band = "Critical"
)

// Severity thresholds, inclusive lower bounds. A score of exactly 15 is
// Critical, exactly 8 is High, exactly 4 is Medium. These are the single
// source of truth for every consumer (matrix coloring, KPI labels, score
// badges); do not duplicate them elsewhere.
const (
	ThresholdCritical = 15
	ThresholdHigh     = 8
	ThresholdMedium   = 4
)

// SeverityBand classifies a score into its severity band using the fixed
// inclusive-lower thresholds.
func SeverityBand(score int) Band {
	switch {
	case score >= ThresholdCritical:
		return BandCritical
	case score >= ThresholdHigh:
		return BandHigh
	case score >= ThresholdMedium:
		return BandMedium
	default:
		return BandLow
	}
}

// Color returns the dashboard hex color for the band.
func (b Band) Color() string {
	switch b {
	case BandCritical:
		return "#ef4444"
	case BandHigh:
		return "#f97316"
	case BandMedium:
		return "#f59e0b"
	case BandLow:
		return "#22c55e"
	default:
		return "#6b7280"
	}
}
