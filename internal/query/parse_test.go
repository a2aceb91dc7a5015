package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/taxa/internal/daterange"
)

var ref = time.Date(2021, time.June, 1, 12, 0, 0, 0, time.UTC)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustParse(t *testing.T, raw string) *Query {
	t.Helper()
	q, err := Parse(raw, ref)
	require.NoError(t, err)
	require.NotNil(t, q)
	return q
}

func TestParse_RankTermDatePage(t *testing.T) {
	q := mustParse(t, "sp warbler since 2021-01-01 page 2")

	assert.Equal(t, "warbler", q.TaxonTerm)
	assert.Equal(t, "species", q.Rank)
	require.NotNil(t, q.Range)
	assert.Equal(t, day(2021, time.January, 1), q.Range.Start)
	assert.True(t, q.Range.OpenEnd)
	assert.Equal(t, 2, q.Page)
	assert.Equal(t, DefaultPerPage, q.PerPage)
	assert.Equal(t, SortRelevance, q.Sort)
}

func TestParse_TermOnly(t *testing.T) {
	q := mustParse(t, "yellow warbler")
	assert.Equal(t, "yellow warbler", q.TaxonTerm)
	assert.Empty(t, q.Rank)
	assert.Nil(t, q.Range)
	assert.Equal(t, 1, q.Page)
}

func TestParse_QuotedTermEscapesKeywords(t *testing.T) {
	// Quoting lets the user search rank words and keywords literally.
	q := mustParse(t, `"species" "in"`)
	assert.Equal(t, "species in", q.TaxonTerm)
	assert.Empty(t, q.Rank)
	assert.Empty(t, q.Place)
}

func TestParse_BareRankKeywordNotPartOfTerm(t *testing.T) {
	q := mustParse(t, "warbler species")
	assert.Equal(t, "warbler", q.TaxonTerm)
	assert.Equal(t, "species", q.Rank)
}

func TestParse_RankAliases(t *testing.T) {
	testCases := []struct {
		raw  string
		want string
	}{
		{"sp warbler", "species"},
		{"ssp warbler", "subspecies"},
		{"fam tits", "family"},
		{"GENUS tits", "genus"},
	}
	for _, tc := range testCases {
		t.Run(tc.raw, func(t *testing.T) {
			assert.Equal(t, tc.want, mustParse(t, tc.raw).Rank)
		})
	}
}

func TestParse_Place(t *testing.T) {
	q := mustParse(t, "warbler in France")
	assert.Equal(t, "warbler", q.TaxonTerm)
	assert.Equal(t, "France", q.Place)

	q = mustParse(t, "warbler in New York since 2021")
	assert.Equal(t, "New York", q.Place)
	require.NotNil(t, q.Range)

	q = mustParse(t, `warbler from "Parc national des Écrins"`)
	assert.Equal(t, "Parc national des Écrins", q.Place)
}

func TestParse_Observer(t *testing.T) {
	q := mustParse(t, "fish by @alice")
	assert.Equal(t, "fish", q.TaxonTerm)
	assert.Equal(t, "alice", q.Observer)

	// A plain login after "by" works too.
	q = mustParse(t, "fish by alice")
	assert.Equal(t, "alice", q.Observer)
}

func TestParse_MentionWithoutBy(t *testing.T) {
	_, err := Parse("warbler @alice", ref)
	require.Error(t, err)
	assert.Equal(t, ReasonUnexpectedMention, ReasonOf(err))
}

func TestParse_ByWithoutOperand(t *testing.T) {
	_, err := Parse("warbler by", ref)
	require.Error(t, err)
	assert.Equal(t, ReasonUnexpectedMention, ReasonOf(err))
}

func TestParse_DateClauses(t *testing.T) {
	testCases := []struct {
		name string
		raw  string
		want daterange.Range
	}{
		{
			name: "since",
			raw:  "warbler since 2021-01",
			want: daterange.Range{Start: day(2021, time.January, 1), OpenEnd: true},
		},
		{
			name: "before",
			raw:  "warbler before 2022",
			want: daterange.Range{End: day(2022, time.January, 1), OpenStart: true},
		},
		{
			name: "between",
			raw:  "warbler between 2021-01-01 and 2021-03-01",
			want: daterange.Range{Start: day(2021, time.January, 1), End: day(2021, time.March, 1)},
		},
		{
			name: "bare date token",
			raw:  "warbler 2021-03-05",
			want: daterange.Range{Start: day(2021, time.March, 5), End: day(2021, time.March, 6)},
		},
		{
			name: "relative phrase",
			raw:  "warbler since last week",
			want: daterange.Range{Start: day(2021, time.May, 24), OpenEnd: true},
		},
		{
			name: "multi token phrase",
			raw:  "warbler since last 7 days",
			want: daterange.Range{Start: day(2021, time.May, 26), OpenEnd: true},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			q := mustParse(t, tc.raw)
			assert.Equal(t, "warbler", q.TaxonTerm)
			require.NotNil(t, q.Range)
			assert.Equal(t, tc.want, *q.Range)
		})
	}
}

func TestParse_LastDateClauseWins(t *testing.T) {
	q := mustParse(t, "warbler since 2020-01-01 since 2021-02-03")

	want := mustParse(t, "warbler since 2021-02-03")
	require.NotNil(t, q.Range)
	assert.Equal(t, *want.Range, *q.Range)
}

func TestParse_DateOperandDoesNotSwallowTrailingWords(t *testing.T) {
	// "2022 warbler" is not a date phrase; only "2021" belongs to the
	// between-span, but the term run is already closed so "warbler" is
	// dropped rather than misread as a date.
	q := mustParse(t, "tits between 2021-01-01 and 2021-02-01 France")
	require.NotNil(t, q.Range)
	assert.Equal(t, day(2021, time.February, 1), q.Range.End)
	assert.Equal(t, "tits", q.TaxonTerm)
}

func TestParse_InvertedRange(t *testing.T) {
	_, err := Parse("between 2021-03-01 and 2021-01-01", ref)
	require.Error(t, err)
	assert.Equal(t, ReasonInvertedRange, ReasonOf(err))
}

func TestParse_UnrecognizedDate(t *testing.T) {
	for _, raw := range []string{
		"warbler since soonish",
		"warbler since",
		"warbler between 2021-01-01",
	} {
		t.Run(raw, func(t *testing.T) {
			_, err := Parse(raw, ref)
			require.Error(t, err)
			assert.Equal(t, ReasonUnrecognizedDate, ReasonOf(err))
		})
	}
}

func TestParse_Page(t *testing.T) {
	q := mustParse(t, "warbler page 3")
	assert.Equal(t, 3, q.Page)

	q = mustParse(t, "warbler page=4")
	assert.Equal(t, 4, q.Page)
}

func TestParse_PageOutOfRange(t *testing.T) {
	for _, raw := range []string{
		"warbler page 0",
		"warbler page 501",
		"warbler page",
		"warbler page=0",
		"warbler per=0",
		"warbler per=101",
	} {
		t.Run(raw, func(t *testing.T) {
			_, err := Parse(raw, ref)
			require.Error(t, err)
			assert.Equal(t, ReasonPageOutOfRange, ReasonOf(err))
		})
	}
}

func TestParse_PerAndSortFlags(t *testing.T) {
	q := mustParse(t, "warbler per=50 sort=name")
	assert.Equal(t, 50, q.PerPage)
	assert.Equal(t, SortName, q.Sort)

	q = mustParse(t, "warbler sort obs")
	assert.Equal(t, SortObservations, q.Sort)

	// Unknown sort words are consumed but leave the default.
	q = mustParse(t, "warbler sort sideways")
	assert.Equal(t, SortRelevance, q.Sort)
	assert.Equal(t, "warbler", q.TaxonTerm)
}

func TestParse_EmptyQuery(t *testing.T) {
	for _, raw := range []string{"", "   ", "page 2", "per=50"} {
		t.Run("input:"+raw, func(t *testing.T) {
			_, err := Parse(raw, ref)
			require.Error(t, err)
			assert.Equal(t, ReasonEmptyQuery, ReasonOf(err))
		})
	}
}

func TestParse_UnterminatedQuote(t *testing.T) {
	_, err := Parse(`warbler "song sparrow`, ref)
	require.Error(t, err)
	assert.Equal(t, ReasonUnterminatedQuote, ReasonOf(err))
}

func TestParse_FirstFailureWins(t *testing.T) {
	// Both a bad mention and a bad page are present; the mention comes
	// first in token order.
	_, err := Parse("@alice page 0", ref)
	require.Error(t, err)
	assert.Equal(t, ReasonUnexpectedMention, ReasonOf(err))
}

func TestParse_LaterUnclaimedWordsDropped(t *testing.T) {
	q := mustParse(t, "warbler in France yellow")
	assert.Equal(t, "warbler", q.TaxonTerm)
	// "yellow" came after the term run closed and no clause claimed it.
	assert.Equal(t, "France yellow", q.Place)
}

func TestParse_Deterministic(t *testing.T) {
	first := mustParse(t, "sp warbler in France since 2021-01 by @alice page 2")
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, mustParse(t, "sp warbler in France since 2021-01 by @alice page 2"))
	}
}
