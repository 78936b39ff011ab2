// Copyright (C) 2026 Sonorous Guardian
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SonorousGuardian/risk-management-dashboard/services/dashboard/report"
	"github.com/SonorousGuardian/risk-management-dashboard/services/dashboard/store"
)

// DownloadCSVReport streams the full register report (summary, matrix,
// distributions, all rows) as a timestamped CSV download.
func DownloadCSVReport(s *store.RiskStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		risks, err := s.List()
		if err != nil {
			slog.Error("failed to list risks for report", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read risk register"})
			return
		}
		if len(risks) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "No risk data available to export."})
			return
		}

		now := time.Now()
		c.Header("Content-Type", "text/csv; charset=utf-8")
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename(now)))
		c.Header("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
		c.Status(http.StatusOK)

		if err := report.WriteCSV(c.Writer, risks, now); err != nil {
			// Headers are already out; all we can do is log.
			slog.Error("failed to write csv report", "error", err)
		}
	}
}
