// Copyright (C) 2026 Sonorous Guardian
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SonorousGuardian/risk-management-dashboard/services/dashboard/store"
)

// HealthCheck reports service liveness plus a store round-trip.
func HealthCheck(s *store.RiskStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		count, err := s.Count()
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "risk_count": count})
	}
}
