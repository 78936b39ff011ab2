// Copyright (C) 2026 Sonorous Guardian
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SonorousGuardian/risk-management-dashboard/services/dashboard/observability"
	"github.com/SonorousGuardian/risk-management-dashboard/services/dashboard/scoring"
	"github.com/SonorousGuardian/risk-management-dashboard/services/dashboard/store"
)

// DashboardStats returns the top-line KPIs computed over the full
// register. All stats come out of one store snapshot, so they are
// mutually consistent.
func DashboardStats(s *store.RiskStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		risks, err := s.List()
		if err != nil {
			slog.Error("failed to list risks for stats", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read risk register"})
			return
		}
		stats := scoring.Summarize(risks)
		observability.Default.RegisterSize.Set(float64(stats.TotalRisks))
		c.JSON(http.StatusOK, stats)
	}
}

// RiskMatrix returns the 5x5 heatmap: all 25 likelihood/impact cells
// keyed "likelihood_impact", zero-count cells included.
func RiskMatrix(s *store.RiskStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		risks, err := s.List()
		if err != nil {
			slog.Error("failed to list risks for matrix", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read risk register"})
			return
		}
		c.JSON(http.StatusOK, scoring.Matrix(risks))
	}
}

// Distribution returns the grouped counts for one group key (category,
// status, owner, effectiveness). Unknown keys are a client error; there
// is no safe default grouping to fall back to.
func Distribution(s *store.RiskStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		key, err := scoring.ParseGroupKey(c.Param("groupKey"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		risks, err := s.List()
		if err != nil {
			slog.Error("failed to list risks for distribution", "groupKey", key, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read risk register"})
			return
		}
		entries, err := scoring.Distribution(risks, key)
		if errors.Is(err, scoring.ErrUnknownGroupKey) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, entries)
	}
}
