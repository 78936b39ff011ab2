// Copyright (C) 2026 Sonorous Guardian
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package datatypes defines the risk register's shared data shapes.
//
// The Risk record is owned by the store; every other package treats it as
// read-only input. RiskScore is derived state: it is recomputed from
// Likelihood and Impact on every mutation and is never settable on its own.
package datatypes

import (
	"encoding/json"
	"time"
)

// Workflow status values.
const (
	StatusOpen      = "Open"
	StatusMitigated = "Mitigated"
	StatusClosed    = "Closed"
	StatusAccepted  = "Accepted"
)

// Control effectiveness values.
const (
	EffectivenessHigh   = "High"
	EffectivenessMedium = "Medium"
	EffectivenessLow    = "Low"
)

// Well-known risk categories. The set is extensible: the store and the
// aggregators accept values outside this list.
const (
	CategoryAccessControl      = "Access Control"
	CategoryBusinessContinuity = "Business Continuity"
	CategoryConfiguration      = "Configuration"
	CategoryDataProtection     = "Data Protection"
	CategoryThirdParty         = "Third-party"
)

// Well-known risk owners. Extensible like categories.
const (
	OwnerCompliance = "Compliance"
	OwnerFinance    = "Finance"
	OwnerIT         = "IT"
	OwnerOperations = "Operations"
	OwnerSecurity   = "Security"
)

// Risk is one row of the risk register.
//
// ID is the internal identifier (uuid, immutable). RiskID is the
// human-facing code ("RISK-001"), unique across the register and used as
// the upsert key for CSV and Sheets ingestion.
//
// IsMitigated is deliberately independent of Status: a risk can be Open
// yet already marked mitigated pending a status change. The mitigation
// toggle flips the flag only and never touches Status.
type Risk struct {
	ID                   string    `json:"id"`
	RiskID               string    `json:"risk_id"`
	Title                string    `json:"title"`
	Category             string    `json:"risk_category"`
	Owner                string    `json:"risk_owner"`
	Likelihood           int       `json:"likelihood"`
	Impact               int       `json:"impact"`
	RiskScore            int       `json:"risk_score"`
	Status               string    `json:"status"`
	ControlEffectiveness string    `json:"control_effectiveness"`
	IsMitigated          bool      `json:"is_mitigated"`
	LastUpdated          time.Time `json:"last_updated"`
	CreatedAt            time.Time `json:"created_at"`
}

// MarshalJSON emits the derived severity band and hex color alongside
// the stored fields. The severity is never stored; it is recomputed from
// RiskScore on every serialization so it cannot drift from the score.
func (r Risk) MarshalJSON() ([]byte, error) {
	type plain Risk // drops the method set, avoiding recursion
	band := SeverityBand(r.RiskScore)
	return json.Marshal(struct {
		plain
		SeverityLevel string `json:"severity_level"`
		SeverityColor string `json:"severity_color"`
	}{plain(r), string(band), band.Color()})
}

// Recalculate restores the derived-score invariant after a likelihood or
// impact change and bumps LastUpdated. Callers mutating those fields must
// call this before persisting.
func (r *Risk) Recalculate(now time.Time) {
	r.RiskScore = r.Likelihood * r.Impact
	r.LastUpdated = now
}

// InMatrixRange reports whether the risk sits inside the 5x5 matrix.
// Scores outside the range are excluded from matrix counts rather than
// failing aggregation.
func (r *Risk) InMatrixRange() bool {
	return r.Likelihood >= 1 && r.Likelihood <= 5 && r.Impact >= 1 && r.Impact <= 5
}
