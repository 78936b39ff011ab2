// Copyright (C) 2026 Sonorous Guardian
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package validation provides input validation for user-supplied
// identifiers.
//
// Risk identifiers arrive from URLs, CSV cells, and spreadsheet rows and
// end up in store keys and log lines; validating them here keeps
// arbitrary bytes out of both.
package validation

import (
	"fmt"
	"regexp"
)

// riskIDPattern matches register codes like "RISK-001" or "R.17":
// alphanumerics with interior dots, hyphens, and underscores, up to 32
// characters.
var riskIDPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._\-]{0,31}$`)

// ValidateRiskID validates a human-facing risk identifier.
//
// Valid identifiers:
//   - 1-32 characters
//   - letters and digits
//   - dots, hyphens, underscores after the first character
//
// Returns an error describing the expected shape if the id is invalid.
func ValidateRiskID(riskID string) error {
	if riskID == "" {
		return fmt.Errorf("risk id cannot be empty")
	}
	if !riskIDPattern.MatchString(riskID) {
		return fmt.Errorf("invalid risk id format: %q (must be 1-32 alphanumeric chars, dots, hyphens, or underscores)", riskID)
	}
	return nil
}
