// Copyright (C) 2026 Sonorous Guardian
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package scoring

import (
	"fmt"

	"github.com/SonorousGuardian/risk-management-dashboard/services/dashboard/datatypes"
)

// MatrixKey builds the "likelihood_impact" cell key used by the heatmap
// client, e.g. "5_4".
func MatrixKey(likelihood, impact int) string {
	return fmt.Sprintf("%d_%d", likelihood, impact)
}

// Matrix builds the 5x5 occupancy table from a risk snapshot.
//
// All 25 cells are always present, zero-count cells included, so the
// client can render an empty grid. Risks with likelihood or impact
// outside [1,5] should not exist given the store invariant, but if one
// slips through it is excluded from the counts rather than failing the
// aggregation.
func Matrix(risks []datatypes.Risk) map[string]datatypes.MatrixCell {
	cells := make(map[string]datatypes.MatrixCell, 25)
	for likelihood := 1; likelihood <= 5; likelihood++ {
		for impact := 1; impact <= 5; impact++ {
			cells[MatrixKey(likelihood, impact)] = datatypes.MatrixCell{
				Likelihood: likelihood,
				Impact:     impact,
				Score:      Score(likelihood, impact),
			}
		}
	}
	for _, r := range risks {
		if !r.InMatrixRange() {
			continue
		}
		key := MatrixKey(r.Likelihood, r.Impact)
		cell := cells[key]
		cell.Count++
		cells[key] = cell
	}
	return cells
}
