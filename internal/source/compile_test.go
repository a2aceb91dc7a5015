package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/taxa/internal/query"
	"github.com/roach88/taxa/internal/testutil"
)

func parseQuery(t *testing.T, raw string) *query.Query {
	t.Helper()
	q, err := query.Parse(raw, testutil.FixedRef())
	require.NoError(t, err)
	return q
}

func TestRows_AllFilters(t *testing.T) {
	var c Compiler
	q := parseQuery(t, "sp warbler in France since 2021-01 by alice page 2 per=10")

	sqlStr, params := c.Rows(q)

	assert.Contains(t, sqlStr, "FROM observations o JOIN taxa t")
	assert.Contains(t, sqlStr, "t.common_name LIKE ?")
	assert.Contains(t, sqlStr, "t.rank = ?")
	assert.Contains(t, sqlStr, "o.place LIKE ?")
	assert.Contains(t, sqlStr, "o.observer = ?")
	assert.Contains(t, sqlStr, "o.observed_at >= ?")
	assert.Contains(t, sqlStr, "ORDER BY")
	assert.Contains(t, sqlStr, "LIMIT ? OFFSET ?")

	// Values are parameterized, never interpolated.
	assert.NotContains(t, sqlStr, "warbler")
	assert.NotContains(t, sqlStr, "France")
	assert.NotContains(t, sqlStr, "alice")

	assert.Equal(t, []any{
		"%warbler%", "%warbler%", "species", "%France%", "alice",
		"2021-01-01T00:00:00Z",
		10, 10, // LIMIT per=10, OFFSET (page 2 - 1) * 10
	}, params)
}

func TestRows_OpenEndedRangeOmitsClosedBound(t *testing.T) {
	var c Compiler

	sqlStr, _ := c.Rows(parseQuery(t, "warbler since 2021-01"))
	assert.Contains(t, sqlStr, "o.observed_at >= ?")
	assert.NotContains(t, sqlStr, "o.observed_at < ?")

	sqlStr, _ = c.Rows(parseQuery(t, "warbler before 2021-01"))
	assert.NotContains(t, sqlStr, "o.observed_at >= ?")
	assert.Contains(t, sqlStr, "o.observed_at < ?")
}

func TestRows_OrderByAlwaysPresent(t *testing.T) {
	var c Compiler

	testCases := []struct {
		raw  string
		want string
	}{
		{"warbler", "t.observation_count DESC, t.id ASC, o.id ASC"},
		{"warbler sort=name", "t.scientific_name COLLATE BINARY ASC, o.id ASC"},
		{"warbler sort=date", "o.observed_at DESC, o.id ASC"},
		{"warbler sort=obs", "t.observation_count DESC, o.id ASC"},
	}

	for _, tc := range testCases {
		t.Run(tc.raw, func(t *testing.T) {
			sqlStr, _ := c.Rows(parseQuery(t, tc.raw))
			assert.Contains(t, sqlStr, "ORDER BY "+tc.want)
		})
	}
}

func TestCount_SameFiltersNoPaging(t *testing.T) {
	var c Compiler
	q := parseQuery(t, "warbler in France page 3")

	sqlStr, params := c.Count(q)
	assert.Contains(t, sqlStr, "SELECT COUNT(*)")
	assert.Contains(t, sqlStr, "o.place LIKE ?")
	assert.NotContains(t, sqlStr, "LIMIT")
	assert.NotContains(t, sqlStr, "OFFSET")
	assert.Equal(t, []any{"%warbler%", "%warbler%", "%France%"}, params)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%`, escapeLike("100%"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `a\\b`, escapeLike(`a\b`))
	assert.Equal(t, "plain", escapeLike("plain"))
}
