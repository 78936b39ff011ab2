// Copyright (C) 2026 Sonorous Guardian
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package scoring

import (
	"fmt"
	"sort"

	"github.com/SonorousGuardian/risk-management-dashboard/services/dashboard/datatypes"
)

// GroupKey selects the field a distribution groups by.
type GroupKey string

const (
	GroupByCategory      GroupKey = "category"
	GroupByStatus        GroupKey = "status"
	GroupByOwner         GroupKey = "owner"
	GroupByEffectiveness GroupKey = "effectiveness"
)

// ErrUnknownGroupKey is returned by Distribution for a group key outside
// the supported set.
var ErrUnknownGroupKey = fmt.Errorf("unknown group key")

// ParseGroupKey validates a client-supplied group key.
func ParseGroupKey(s string) (GroupKey, error) {
	switch GroupKey(s) {
	case GroupByCategory, GroupByStatus, GroupByOwner, GroupByEffectiveness:
		return GroupKey(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownGroupKey, s)
	}
}

// Distribution groups a risk snapshot by the given key, counting each
// distinct value actually present and averaging the group's risk scores.
// Unlike the matrix, groups with zero
// risks are omitted: the enumerated domains are extensible, so only
// observed values are meaningful.
//
// Entries are ordered by count descending, ties by value ascending, so
// output is deterministic across requests.
func Distribution(risks []datatypes.Risk, key GroupKey) ([]datatypes.DistributionEntry, error) {
	var field func(datatypes.Risk) string
	switch key {
	case GroupByCategory:
		field = func(r datatypes.Risk) string { return r.Category }
	case GroupByStatus:
		field = func(r datatypes.Risk) string { return r.Status }
	case GroupByOwner:
		field = func(r datatypes.Risk) string { return r.Owner }
	case GroupByEffectiveness:
		field = func(r datatypes.Risk) string { return r.ControlEffectiveness }
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownGroupKey, key)
	}

	counts := make(map[string]int)
	scoreSums := make(map[string]int)
	for _, r := range risks {
		v := field(r)
		counts[v]++
		scoreSums[v] += r.RiskScore
	}

	entries := make([]datatypes.DistributionEntry, 0, len(counts))
	for value, count := range counts {
		entries = append(entries, datatypes.DistributionEntry{
			Value:    value,
			Count:    count,
			AvgScore: round1(float64(scoreSums[value]) / float64(count)),
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Value < entries[j].Value
	})
	return entries, nil
}
