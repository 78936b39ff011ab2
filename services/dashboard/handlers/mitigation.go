// Copyright (C) 2026 Sonorous Guardian
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SonorousGuardian/risk-management-dashboard/pkg/validation"
	"github.com/SonorousGuardian/risk-management-dashboard/services/dashboard/datatypes"
	"github.com/SonorousGuardian/risk-management-dashboard/services/dashboard/observability"
	"github.com/SonorousGuardian/risk-management-dashboard/services/dashboard/store"
)

// ToggleMitigation flips the IsMitigated flag of one risk. The flip is
// atomic in the store and leaves Status untouched — the two fields are
// decoupled.
func ToggleMitigation(s *store.RiskStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		riskID := c.Param("riskId")
		if err := validation.ValidateRiskID(riskID); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		risk, err := s.ToggleMitigation(riskID)
		if errors.Is(err, store.ErrRiskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Risk not found"})
			return
		}
		if err != nil {
			slog.Error("failed to toggle mitigation", "riskId", riskID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update risk"})
			return
		}

		observability.Default.ObserveToggle(risk.IsMitigated)
		slog.Info("mitigation toggled", "riskId", riskID, "isMitigated", risk.IsMitigated)
		c.JSON(http.StatusOK, datatypes.ToggleMitigationResponse{
			ID:          risk.ID,
			RiskID:      risk.RiskID,
			IsMitigated: risk.IsMitigated,
			Message:     fmt.Sprintf("Risk %s mitigation status updated.", risk.RiskID),
		})
	}
}
