package render

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/taxa/internal/lexicon"
	"github.com/roach88/taxa/internal/query"
	"github.com/roach88/taxa/internal/taxon"
)

var ref = time.Date(2021, time.June, 1, 12, 0, 0, 0, time.UTC)

func fixedToken() string { return "test-pager-token" }

func newRenderer(opts ...Option) *Renderer {
	return New(lexicon.Default(), append([]Option{WithTokenSource(fixedToken)}, opts...)...)
}

func parseQuery(t *testing.T, raw string) *query.Query {
	t.Helper()
	q, err := query.Parse(raw, ref)
	require.NoError(t, err)
	return q
}

func warbler() taxon.Record {
	rec := taxon.NewRecord(1, "species", "Setophaga petechia", "yellow warbler")
	rec.ObservationCount = 1234
	return rec
}

func recordPage(pageNumber, totalPages, totalCount int, recs ...taxon.Record) taxon.Page {
	items := make([]taxon.Item, len(recs))
	for i, rec := range recs {
		items[i] = rec
	}
	return taxon.Page{
		Items:      items,
		PageNumber: pageNumber,
		TotalPages: totalPages,
		TotalCount: totalCount,
	}
}

func TestRender_RangeString(t *testing.T) {
	r := newRenderer()
	q := parseQuery(t, "warbler page 2")

	block := r.Render(q, recordPage(2, 3, 47, warbler()))
	assert.Equal(t, "showing 21–21 of 47", block.Footer)
}

func TestRender_RangeStringWithoutTotal(t *testing.T) {
	r := newRenderer()
	q := parseQuery(t, "warbler")

	block := r.Render(q, recordPage(1, 0, 0, warbler()))
	assert.Equal(t, "showing 1–1", block.Footer)
}

func TestRender_EmptyPage(t *testing.T) {
	r := newRenderer()
	q := parseQuery(t, "warbler")

	block := r.Render(q, taxon.Page{PageNumber: 1})
	assert.Empty(t, block.Lines)
	assert.Equal(t, "no results", block.Footer)
	assert.False(t, block.HasNext)
	assert.False(t, block.HasPrev)
}

func TestRender_ZeroPageNumberDegrades(t *testing.T) {
	r := newRenderer()
	q := parseQuery(t, "warbler")

	// A malformed page number from the source degrades to numbering
	// from 1, never to negative indices.
	block := r.Render(q, recordPage(0, 0, 2, warbler(), warbler()))
	require.Len(t, block.Lines, 2)
	assert.True(t, strings.HasPrefix(block.Lines[0], "1. "))
	assert.True(t, strings.HasPrefix(block.Lines[1], "2. "))
	assert.Equal(t, "showing 1–2 of 2", block.Footer)
	assert.False(t, block.HasPrev)
}

func TestRender_Navigation(t *testing.T) {
	r := newRenderer()
	q := parseQuery(t, "warbler")

	testCases := []struct {
		name     string
		page     taxon.Page
		wantPrev bool
		wantNext bool
	}{
		{
			name:     "first of three",
			page:     recordPage(1, 3, 47, warbler()),
			wantPrev: false,
			wantNext: true,
		},
		{
			name:     "middle",
			page:     recordPage(2, 3, 47, warbler()),
			wantPrev: true,
			wantNext: true,
		},
		{
			name:     "last",
			page:     recordPage(3, 3, 47, warbler()),
			wantPrev: true,
			wantNext: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			block := r.Render(q, tc.page)
			assert.Equal(t, tc.wantPrev, block.HasPrev)
			assert.Equal(t, tc.wantNext, block.HasNext)
		})
	}
}

func TestRender_NextHeuristicWithoutTotals(t *testing.T) {
	r := newRenderer()
	q := parseQuery(t, "warbler per=2")

	// A full page suggests a successor; a short page does not.
	full := recordPage(1, 0, 0, warbler(), warbler())
	assert.True(t, r.Render(q, full).HasNext)

	short := recordPage(1, 0, 0, warbler())
	assert.False(t, r.Render(q, short).HasNext)
}

func TestRender_Idempotent(t *testing.T) {
	r := newRenderer()
	q := parseQuery(t, "warbler page 2")
	page := recordPage(2, 3, 47, warbler())

	first := r.Render(q, page)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, r.Render(q, page))
	}
}

func TestRender_NextPagePreservesFilters(t *testing.T) {
	r := newRenderer()
	q := parseQuery(t, "sp warbler in France since 2021-01")

	next := q.WithPage(q.Page + 1)
	block := r.Render(&next, recordPage(2, 3, 47, warbler()))

	assert.Contains(t, block.Header, `results for "warbler"`)
	assert.Contains(t, block.Header, "in France")
	assert.Contains(t, block.Header, "since 2021-01-01")
	assert.Equal(t, "showing 21–21 of 47", block.Footer)
}

func TestRender_DoesNotMutatePage(t *testing.T) {
	r := newRenderer()
	q := parseQuery(t, "warbler")

	page := recordPage(1, 3, 47, warbler())
	itemsBefore := make([]taxon.Item, len(page.Items))
	copy(itemsBefore, page.Items)

	_ = r.Render(q, page)
	assert.Equal(t, itemsBefore, page.Items)
	assert.Equal(t, 1, page.PageNumber)
}

func TestRender_IrregularPluralHeadline(t *testing.T) {
	r := newRenderer()
	q := parseQuery(t, "fish by @alice")

	rec := taxon.NewRecord(47178, "class", "Actinopterygii", "ray-finned fish")
	obs := []taxon.Item{
		taxon.Observation{ID: 1, Taxon: rec, ObserverLogin: "alice", ObservedAt: ref},
		taxon.Observation{ID: 2, Taxon: rec, ObserverLogin: "alice", ObservedAt: ref},
	}
	block := r.Render(q, taxon.Page{Items: obs, PageNumber: 1, TotalPages: 1, TotalCount: 2})

	// The irregular noun stays "fish" even with count > 1.
	assert.Equal(t, "2 ray-finned fish by alice", block.Header)
}

func TestRender_MixedItemsHeaderFallsBack(t *testing.T) {
	r := newRenderer()
	q := parseQuery(t, "warbler")

	rec := warbler()
	items := []taxon.Item{
		rec,
		taxon.Observation{ID: 1, Taxon: rec, ObservedAt: ref},
	}
	block := r.Render(q, taxon.Page{Items: items, PageNumber: 1})
	assert.Contains(t, block.Header, `results for "warbler"`)
}

func TestRender_Width(t *testing.T) {
	r := newRenderer(WithWidth(30))
	q := parseQuery(t, "warbler")

	block := r.Render(q, recordPage(1, 1, 1, warbler()))
	require.NotEmpty(t, block.Lines)
	for _, line := range block.Lines {
		for _, part := range splitLines(line) {
			assert.LessOrEqual(t, len([]rune(part)), 30)
		}
	}
}

func TestRender_TokenSource(t *testing.T) {
	r := newRenderer()
	q := parseQuery(t, "warbler")

	block := r.Render(q, recordPage(1, 1, 1, warbler()))
	assert.Equal(t, "test-pager-token", block.Token)

	// The default source yields distinct tokens per render.
	def := New(lexicon.Default())
	a := def.Render(q, recordPage(1, 1, 1, warbler()))
	b := def.Render(q, recordPage(1, 1, 1, warbler()))
	assert.NotEqual(t, a.Token, b.Token)
}

func splitLines(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	return append(out, s[start:])
}
