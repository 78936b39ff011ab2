// Copyright (C) 2026 Sonorous Guardian
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SonorousGuardian/risk-management-dashboard/services/dashboard/ingest"
	"github.com/SonorousGuardian/risk-management-dashboard/services/dashboard/observability"
)

// SyncCSV re-ingests the configured register CSV file.
func SyncCSV(syncer *ingest.Syncer, csvPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := syncer.SyncCSVFile(csvPath)
		observability.Default.ObserveSync("csv", result.Created, result.Updated, len(result.Errors), err != nil)
		if err != nil {
			slog.Error("csv sync failed", "path", csvPath, "error", err)
			c.JSON(http.StatusInternalServerError, result)
			return
		}
		slog.Info("csv sync completed", "created", result.Created, "updated", result.Updated, "errors", len(result.Errors))
		c.JSON(http.StatusOK, result)
	}
}

// SyncSheets re-ingests the configured Google Sheet.
func SyncSheets(syncer *ingest.Syncer, cfg ingest.SheetsConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := syncer.SyncSheets(c.Request.Context(), cfg)
		observability.Default.ObserveSync("sheets", result.Created, result.Updated, len(result.Errors), err != nil)
		if err != nil {
			slog.Error("sheets sync failed", "spreadsheetId", cfg.SpreadsheetID, "error", err)
			c.JSON(http.StatusInternalServerError, result)
			return
		}
		slog.Info("sheets sync completed", "created", result.Created, "updated", result.Updated, "errors", len(result.Errors))
		c.JSON(http.StatusOK, result)
	}
}

// UploadCSV ingests an uploaded CSV file without touching the configured
// register file on disk.
func UploadCSV(syncer *ingest.Syncer) gin.HandlerFunc {
	return func(c *gin.Context) {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided. Please upload a CSV file."})
			return
		}
		if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".csv") {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file type. Please upload a CSV file."})
			return
		}

		f, err := fileHeader.Open()
		if err != nil {
			slog.Error("failed to open uploaded file", "filename", fileHeader.Filename, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read uploaded file"})
			return
		}
		defer f.Close()

		result, err := syncer.SyncCSV(f)
		observability.Default.ObserveSync("upload", result.Created, result.Updated, len(result.Errors), err != nil)
		if err != nil {
			slog.Error("uploaded csv sync failed", "filename", fileHeader.Filename, "error", err)
			c.JSON(http.StatusInternalServerError, result)
			return
		}
		slog.Info("uploaded csv processed",
			"filename", fileHeader.Filename,
			"created", result.Created,
			"updated", result.Updated,
			"errors", len(result.Errors),
		)
		c.JSON(http.StatusOK, result)
	}
}
