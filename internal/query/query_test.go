package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithPage_PreservesFilters(t *testing.T) {
	q := mustParse(t, "sp warbler in France since 2021-01 by @alice per=30")

	next := q.WithPage(q.Page + 1)
	assert.Equal(t, 2, next.Page)
	assert.Equal(t, q.TaxonTerm, next.TaxonTerm)
	assert.Equal(t, q.Rank, next.Rank)
	assert.Equal(t, q.Place, next.Place)
	assert.Equal(t, q.Observer, next.Observer)
	assert.Equal(t, q.PerPage, next.PerPage)
	assert.Equal(t, q.Sort, next.Sort)
	require.NotNil(t, next.Range)
	assert.Equal(t, *q.Range, *next.Range)

	// The original is untouched.
	assert.Equal(t, 1, q.Page)
}

func TestWithPage_Clamped(t *testing.T) {
	q := Query{Page: 5, PerPage: DefaultPerPage, Sort: SortRelevance}
	assert.Equal(t, 1, q.WithPage(0).Page)
	assert.Equal(t, 1, q.WithPage(-3).Page)
	assert.Equal(t, MaxPage, q.WithPage(MaxPage+1).Page)
}

func TestEmpty(t *testing.T) {
	assert.True(t, Query{Page: 1, PerPage: DefaultPerPage}.Empty())
	assert.False(t, Query{TaxonTerm: "warbler"}.Empty())
	assert.False(t, Query{Observer: "alice"}.Empty())
}

func TestString_Compact(t *testing.T) {
	q := mustParse(t, "sp warbler since 2021-01-01 page 2")
	s := q.String()
	assert.Contains(t, s, `term="warbler"`)
	assert.Contains(t, s, "rank=species")
	assert.Contains(t, s, "since 2021-01-01")
	assert.Contains(t, s, "page=2")
}
