// Package testutil provides the fixed reference instant and record
// builders shared by tests across the module.
package testutil

import "time"

// FixedRef is the canonical reference instant used by tests: a Tuesday
// at mid-day, so day and week truncation are both visible in resolved
// ranges. Passing it wherever a reference instant is injected keeps
// parsed queries and rendered blocks byte-stable.
func FixedRef() time.Time {
	return time.Date(2021, time.June, 1, 12, 0, 0, 0, time.UTC)
}

// Day builds a UTC midnight instant, the granularity date ranges
// resolve to.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// FixedTokenSource returns a pager-token source that always yields
// token, for deterministic rendered blocks. An empty token defaults to
// "test-pager-token".
func FixedTokenSource(token string) func() string {
	if token == "" {
		token = "test-pager-token"
	}
	return func() string { return token }
}
