// Package query parses compact search commands into structured Query
// values.
//
// A command like
//
//	sp warbler in France since 2021-01 by @alice page 2
//
// becomes a Query with a taxon term, rank filter, place, observer, date
// range, and page number. Parsing is a single pass over the token
// stream with a fixed keyword table (see the lexicon package); all
// ambiguity is resolved by defined precedence, never by guessing:
//
//   - the first unclaimed WORD/QUOTED run becomes the taxon term
//   - a bare rank word ("species", "sp") is a rank filter, not a term;
//     quote it to search the literal word
//   - when several date clauses appear, the last one wins and earlier
//     ones are dropped silently
//   - a mention is only meaningful after "by"
//
// Parsing is a pure function of the token sequence plus an injected
// reference instant used to anchor relative dates. Failures are always
// a *ParseError carrying a Reason; the parser never returns a partial
// Query.
package query

import (
	"fmt"

	"github.com/roach88/taxa/internal/daterange"
)

// SortKey orders search results.
type SortKey string

const (
	// SortRelevance is the source's default ordering.
	SortRelevance SortKey = "relevance"

	// SortObservations orders by observation count, descending.
	SortObservations SortKey = "observations"

	// SortName orders by scientific name.
	SortName SortKey = "name"

	// SortDate orders by observation date, newest first.
	SortDate SortKey = "date"
)

// Paging bounds. A page or per-page control outside these bounds fails
// with ReasonPageOutOfRange.
const (
	DefaultPerPage = 20
	MaxPerPage     = 100
	MaxPage        = 500
)

// Query is the structured search specification produced by one parse
// call. It is a value object: constructed exactly once, never mutated.
// Derive variants (the next page) with WithPage.
type Query struct {
	// TaxonTerm is the free-text name fragment, empty when the command
	// had none.
	TaxonTerm string

	// Rank is the canonical rank-filter name, empty for no filter.
	Rank string

	// Place is the place filter, empty for no filter.
	Place string

	// Observer is the observer login, empty for no filter.
	Observer string

	// Range is the observation date filter, nil for no filter. The
	// pointed-to Range is shared between clones; treat it as immutable.
	Range *daterange.Range

	// Page is 1-based, always >= 1.
	Page int

	// PerPage is within [1, MaxPerPage].
	PerPage int

	// Sort is never empty; SortRelevance by default.
	Sort SortKey
}

// WithPage returns a copy of the query positioned on page n, clamped
// into [1, MaxPage]. All filter fields are preserved unchanged.
func (q Query) WithPage(n int) Query {
	if n < 1 {
		n = 1
	}
	if n > MaxPage {
		n = MaxPage
	}
	q.Page = n
	return q
}

// Empty reports whether the query carries no filter at all. Empty
// queries are rejected by the parser; the method exists for callers
// composing queries by hand.
func (q Query) Empty() bool {
	return q.TaxonTerm == "" && q.Rank == "" && q.Place == "" &&
		q.Observer == "" && q.Range == nil
}

// String renders a compact single-line description for logs and traces.
func (q Query) String() string {
	s := fmt.Sprintf("query{term=%q", q.TaxonTerm)
	if q.Rank != "" {
		s += " rank=" + q.Rank
	}
	if q.Place != "" {
		s += fmt.Sprintf(" place=%q", q.Place)
	}
	if q.Observer != "" {
		s += " by=" + q.Observer
	}
	if q.Range != nil {
		s += " range=" + q.Range.Human()
	}
	return s + fmt.Sprintf(" page=%d per=%d sort=%s}", q.Page, q.PerPage, q.Sort)
}
