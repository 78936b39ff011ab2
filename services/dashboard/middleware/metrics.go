// Copyright (C) 2026 Sonorous Guardian
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package middleware holds cross-cutting gin middleware for the
// dashboard service.
package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SonorousGuardian/risk-management-dashboard/services/dashboard/observability"
)

// Metrics records request count and latency per route. Uses the route
// template (c.FullPath) rather than the raw URL so path parameters don't
// explode label cardinality.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		statusClass := fmt.Sprintf("%dxx", c.Writer.Status()/100)
		observability.Default.RequestsTotal.WithLabelValues(endpoint, statusClass).Inc()
		observability.Default.RequestDurationSeconds.WithLabelValues(endpoint).
			Observe(time.Since(start).Seconds())
	}
}
