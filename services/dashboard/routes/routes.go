// Copyright (C) 2026 Sonorous Guardian
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/SonorousGuardian/risk-management-dashboard/services/dashboard/handlers"
	"github.com/SonorousGuardian/risk-management-dashboard/services/dashboard/ingest"
	"github.com/SonorousGuardian/risk-management-dashboard/services/dashboard/store"
)

// Config carries the collaborators the routes need.
type Config struct {
	Store     *store.RiskStore
	Syncer    *ingest.Syncer
	CSVPath   string
	SheetsCfg ingest.SheetsConfig
}

// SetupRoutes registers the dashboard API on the router.
func SetupRoutes(router *gin.Engine, cfg Config) {
	router.GET("/health", handlers.HealthCheck(cfg.Store))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API version 1 group
	v1 := router.Group("/v1")
	{
		risks := v1.Group("/risks")
		{
			risks.GET("", handlers.ListRisks(cfg.Store))
			risks.GET("/:riskId", handlers.GetRisk(cfg.Store))
			risks.POST("/:riskId/toggle-mitigated", handlers.ToggleMitigation(cfg.Store))
		}

		dashboard := v1.Group("/dashboard")
		{
			dashboard.GET("/stats", handlers.DashboardStats(cfg.Store))
			dashboard.GET("/matrix", handlers.RiskMatrix(cfg.Store))
			dashboard.GET("/distribution/:groupKey", handlers.Distribution(cfg.Store))
		}

		sync := v1.Group("/sync")
		{
			sync.POST("/csv", handlers.SyncCSV(cfg.Syncer, cfg.CSVPath))
			sync.POST("/sheets", handlers.SyncSheets(cfg.Syncer, cfg.SheetsCfg))
		}

		v1.POST("/upload/csv", handlers.UploadCSV(cfg.Syncer))
		v1.GET("/reports/csv", handlers.DownloadCSVReport(cfg.Store))
	}
}
