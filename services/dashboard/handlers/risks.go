// Copyright (C) 2026 Sonorous Guardian
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package handlers implements the gin handlers of the dashboard API.
//
// Handlers translate HTTP into calls against the store and the scoring
// engine and map typed failures (ErrRiskNotFound, unknown group keys)
// to JSON error responses. Malformed filter, sort, and page parameters
// are clamped or ignored rather than rejected — the engine defines a
// safe default for each.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SonorousGuardian/risk-management-dashboard/pkg/validation"
	"github.com/SonorousGuardian/risk-management-dashboard/services/dashboard/scoring"
	"github.com/SonorousGuardian/risk-management-dashboard/services/dashboard/store"
)

// ListRisks returns the filtered, sorted, paginated register table.
//
// Query params: status, category, owner, effectiveness, is_mitigated,
// search, min_score, max_score, sort_by, page, page_size.
func ListRisks(s *store.RiskStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		risks, err := s.List()
		if err != nil {
			slog.Error("failed to list risks", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read risk register"})
			return
		}

		filter := scoring.Filter{
			Status:        c.Query("status"),
			Category:      c.Query("category"),
			Owner:         c.Query("owner"),
			Effectiveness: c.Query("effectiveness"),
			Search:        c.Query("search"),
			IsMitigated:   boolParam(c, "is_mitigated"),
			MinScore:      intParam(c, "min_score"),
			MaxScore:      intParam(c, "max_score"),
		}
		page := intValue(c, "page", 1)
		pageSize := intValue(c, "page_size", scoring.DefaultPageSize)

		resp := scoring.Query(risks, filter, c.Query("sort_by"), page, pageSize)
		c.JSON(http.StatusOK, resp)
	}
}

// GetRisk returns one risk by its register code.
func GetRisk(s *store.RiskStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		riskID := c.Param("riskId")
		if err := validation.ValidateRiskID(riskID); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		risk, err := s.Get(riskID)
		if errors.Is(err, store.ErrRiskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Risk not found"})
			return
		}
		if err != nil {
			slog.Error("failed to get risk", "riskId", riskID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read risk"})
			return
		}
		c.JSON(http.StatusOK, risk)
	}
}

// boolParam parses an optional boolean query param. Malformed values are
// treated as unset, never matching-nothing.
func boolParam(c *gin.Context, name string) *bool {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &v
}

// intParam parses an optional integer query param, unset on garbage.
func intParam(c *gin.Context, name string) *int {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &v
}

// intValue parses an integer query param with a fallback default.
func intValue(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
