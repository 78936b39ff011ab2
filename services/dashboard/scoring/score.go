// Copyright (C) 2026 Sonorous Guardian
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package scoring is the risk aggregation engine.
//
// Everything in this package is pure, deterministic computation over a
// snapshot of the risk register supplied by the caller: no I/O, no
// long-lived state, no logging. Concurrency safety is the caller's
// problem — each incoming slice is treated as immutable for the duration
// of one computation.
//
// Severity classification (bands, thresholds, colors) lives with the
// Risk record in datatypes; this package consumes it.
package scoring

import "math"

// Score derives a risk score from likelihood and impact. Both inputs are
// expected in [1,5]; out-of-range values are a caller error and are not
// clamped here.
func Score(likelihood, impact int) int {
	return likelihood * impact
}

// round1 rounds half-up to one decimal place. All percentage and average
// outputs of this package share this single rounding rule.
func round1(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}
