package render

import (
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/roach88/taxa/internal/query"
	"github.com/roach88/taxa/internal/taxon"
)

// Golden tests pin the exact rendered text. Regenerate with:
//
//	go test ./internal/render -update
func assertGolden(t *testing.T, name string, block Block) {
	t.Helper()
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, []byte(block.Text()))
}

func TestGolden_TaxaSearchPage(t *testing.T) {
	r := newRenderer()
	q, err := query.Parse("sp warbler in France since 2021-01 page 2", ref)
	require.NoError(t, err)

	rec1 := taxon.NewRecord(1, "species", "Setophaga petechia", "yellow warbler")
	rec1.ObservationCount = 1234
	rec2 := taxon.NewRecord(2, "species", "Cardellina pusilla", "Wilson's warbler")
	rec2.ObservationCount = 987

	page := taxon.Page{
		Items:      []taxon.Item{rec1, rec2},
		PageNumber: 2,
		TotalPages: 2,
		TotalCount: 22,
	}
	assertGolden(t, "taxa_search", r.Render(q, page))
}

func TestGolden_ObservationsPage(t *testing.T) {
	r := newRenderer()
	q, err := query.Parse("fish by @alice", ref)
	require.NoError(t, err)

	rec := taxon.NewRecord(47178, "class", "Actinopterygii", "ray-finned fish")
	at := func(d int) time.Time {
		return time.Date(2021, time.May, d, 9, 0, 0, 0, time.UTC)
	}
	page := taxon.Page{
		Items: []taxon.Item{
			taxon.Observation{ID: 11, Taxon: rec, ObserverLogin: "alice", ObservedAt: at(30), Place: "Lac Léman"},
			taxon.Observation{ID: 12, Taxon: rec, ObserverLogin: "alice", ObservedAt: at(28)},
			taxon.Observation{ID: 13, Taxon: rec, ObserverLogin: "alice", ObservedAt: at(21), Place: "Rhône"},
		},
		PageNumber: 1,
		TotalPages: 1,
		TotalCount: 3,
	}
	assertGolden(t, "observations", r.Render(q, page))
}

func TestGolden_SubspeciesTrinomial(t *testing.T) {
	r := newRenderer()
	q, err := query.Parse("ssp goose", ref)
	require.NoError(t, err)

	rec := taxon.NewRecord(3, "subspecies", "Anser anser domesticus", "greylag goose")
	rec.ObservationCount = 15

	page := taxon.Page{
		Items:      []taxon.Item{rec},
		PageNumber: 1,
		TotalPages: 1,
		TotalCount: 1,
	}
	assertGolden(t, "subspecies", r.Render(q, page))
}
