// Copyright (C) 2026 Sonorous Guardian
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package scoring

import (
	"sort"
	"strings"

	"github.com/SonorousGuardian/risk-management-dashboard/services/dashboard/datatypes"
)

// Pagination defaults. A missing or non-positive page size falls back to
// DefaultPageSize; anything above MaxPageSize is clamped.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// DefaultSort is applied when no sort key is given or the requested field
// is not sortable.
const DefaultSort = "-risk_score"

// Filter holds the optional table filters. Zero-valued fields are not
// applied: an unset filter matches everything, never nothing. All set
// filters combine with AND semantics.
type Filter struct {
	Status        string
	Category      string
	Owner         string
	Effectiveness string

	// IsMitigated filters on the mitigation flag; nil means not applied.
	IsMitigated *bool

	// Search is a case-insensitive substring match against RiskID or
	// Title (OR between the two fields).
	Search string

	// MinScore/MaxScore bound RiskScore inclusively; nil means open.
	// Matrix cell-click filtering sets both to the cell's score.
	MinScore *int
	MaxScore *int
}

// Matches reports whether the risk passes every applied filter.
func (f Filter) Matches(r datatypes.Risk) bool {
	if f.Status != "" && r.Status != f.Status {
		return false
	}
	if f.Category != "" && r.Category != f.Category {
		return false
	}
	if f.Owner != "" && r.Owner != f.Owner {
		return false
	}
	if f.Effectiveness != "" && r.ControlEffectiveness != f.Effectiveness {
		return false
	}
	if f.IsMitigated != nil && r.IsMitigated != *f.IsMitigated {
		return false
	}
	if f.MinScore != nil && r.RiskScore < *f.MinScore {
		return false
	}
	if f.MaxScore != nil && r.RiskScore > *f.MaxScore {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(r.RiskID), needle) &&
			!strings.Contains(strings.ToLower(r.Title), needle) {
			return false
		}
	}
	return true
}

// ApplyFilter returns the risks passing the filter, preserving input
// order.
func ApplyFilter(risks []datatypes.Risk, f Filter) []datatypes.Risk {
	out := make([]datatypes.Risk, 0, len(risks))
	for _, r := range risks {
		if f.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}

// sortableFields maps sort keys to comparators returning true when a
// precedes b ascending. The internal ID breaks all ties so ordering is
// deterministic across requests — pagination depends on that.
var sortableFields = map[string]func(a, b datatypes.Risk) bool{
	"risk_score":   func(a, b datatypes.Risk) bool { return a.RiskScore < b.RiskScore },
	"last_updated": func(a, b datatypes.Risk) bool { return a.LastUpdated.Before(b.LastUpdated) },
	"title":        func(a, b datatypes.Risk) bool { return a.Title < b.Title },
	"risk_id":      func(a, b datatypes.Risk) bool { return a.RiskID < b.RiskID },
	"likelihood":   func(a, b datatypes.Risk) bool { return a.Likelihood < b.Likelihood },
	"impact":       func(a, b datatypes.Risk) bool { return a.Impact < b.Impact },
}

// ParseSort splits a sort key into field and direction. A leading '-'
// marks descending. Unknown or empty fields fall back to DefaultSort
// instead of failing.
func ParseSort(sortBy string) (field string, descending bool) {
	s := strings.TrimSpace(sortBy)
	if s == "" {
		s = DefaultSort
	}
	if strings.HasPrefix(s, "-") {
		descending = true
		s = s[1:]
	}
	if _, ok := sortableFields[s]; !ok {
		return "risk_score", true
	}
	return s, descending
}

// Sort orders the risks in place by the given sort key.
func Sort(risks []datatypes.Risk, sortBy string) {
	field, descending := ParseSort(sortBy)
	less := sortableFields[field]
	sort.Slice(risks, func(i, j int) bool {
		a, b := risks[i], risks[j]
		if less(a, b) != less(b, a) { // strict order on the primary field
			if descending {
				return less(b, a)
			}
			return less(a, b)
		}
		return a.ID < b.ID
	})
}

// Paginate slices out the 1-based page. A page past the end yields an
// empty slice, not an error. Returns the normalized page and page size
// actually used.
func Paginate(risks []datatypes.Risk, page, pageSize int) ([]datatypes.Risk, int, int) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	if page <= 0 {
		page = 1
	}
	// (page-1)*pageSize overflows int for absurd but parsable page
	// values; anything past the last page is empty either way, so bail
	// out before multiplying.
	if page-1 > len(risks)/pageSize {
		return []datatypes.Risk{}, page, pageSize
	}
	start := (page - 1) * pageSize
	if start >= len(risks) {
		return []datatypes.Risk{}, page, pageSize
	}
	end := start + pageSize
	if end > len(risks) {
		end = len(risks)
	}
	return risks[start:end], page, pageSize
}

// Query runs the full filter → sort → paginate pipeline and returns the
// requested page plus the total match count for pagination metadata. The
// input slice is not modified.
func Query(risks []datatypes.Risk, f Filter, sortBy string, page, pageSize int) datatypes.RiskListResponse {
	matched := ApplyFilter(risks, f)
	Sort(matched, sortBy)
	results, page, pageSize := Paginate(matched, page, pageSize)
	return datatypes.RiskListResponse{
		Results:    results,
		TotalCount: len(matched),
		Page:       page,
		PageSize:   pageSize,
	}
}
