// Copyright (C) 2026 Sonorous Guardian
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package scoring

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SonorousGuardian/risk-management-dashboard/services/dashboard/datatypes"
)

// testRisk builds a register row with the derived score already set, the
// way the store persists it.
func testRisk(riskID string, likelihood, impact int) datatypes.Risk {
	return datatypes.Risk{
		ID:                   "id-" + riskID,
		RiskID:               riskID,
		Title:                "Risk " + riskID,
		Category:             datatypes.CategoryDataProtection,
		Owner:                datatypes.OwnerSecurity,
		Likelihood:           likelihood,
		Impact:               impact,
		RiskScore:            likelihood * impact,
		Status:               datatypes.StatusOpen,
		ControlEffectiveness: datatypes.EffectivenessMedium,
	}
}

func TestMatrixKey(t *testing.T) {
	assert.Equal(t, "3_4", MatrixKey(3, 4))
	assert.Equal(t, "1_1", MatrixKey(1, 1))
	assert.Equal(t, "5_5", MatrixKey(5, 5))
}

func TestMatrix_EmptyRegisterHasAllCells(t *testing.T) {
	m := Matrix(nil)
	require.Len(t, m, 25)
	for l := 1; l <= 5; l++ {
		for i := 1; i <= 5; i++ {
			cell, ok := m[MatrixKey(l, i)]
			require.True(t, ok, "missing cell %d_%d", l, i)
			assert.Equal(t, 0, cell.Count)
			assert.Equal(t, l, cell.Likelihood)
			assert.Equal(t, i, cell.Impact)
			assert.Equal(t, l*i, cell.Score)
		}
	}
}

func TestMatrix_CountsRisksPerCell(t *testing.T) {
	risks := []datatypes.Risk{
		testRisk("RISK-001", 5, 4),
		testRisk("RISK-002", 5, 4),
		testRisk("RISK-003", 1, 1),
	}
	m := Matrix(risks)

	assert.Equal(t, 2, m["5_4"].Count)
	assert.Equal(t, 1, m["1_1"].Count)
	assert.Equal(t, 0, m["3_3"].Count)

	total := 0
	for _, cell := range m {
		total += cell.Count
	}
	assert.Equal(t, len(risks), total, "every in-range risk lands in exactly one cell")
}

func TestMatrix_ExcludesOutOfRangeRisks(t *testing.T) {
	risks := []datatypes.Risk{
		testRisk("RISK-001", 0, 3),
		testRisk("RISK-002", 3, 6),
		testRisk("RISK-003", 2, 2),
	}
	m := Matrix(risks)

	require.Len(t, m, 25)
	total := 0
	for _, cell := range m {
		total += cell.Count
	}
	assert.Equal(t, 1, total)
	assert.Equal(t, 1, m["2_2"].Count)
}

func TestMatrix_CellKeysMatchCoordinates(t *testing.T) {
	for key, cell := range Matrix(nil) {
		assert.Equal(t, fmt.Sprintf("%d_%d", cell.Likelihood, cell.Impact), key)
	}
}
