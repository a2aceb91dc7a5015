package testutil

import (
	"time"

	"github.com/roach88/taxa/internal/taxon"
)

// Clade IDs used across tests.
const (
	Mammalia = 40151
	Insecta  = 47158
)

// Species builds an active species-rank record.
func Species(id int, scientific, common string) taxon.Record {
	rec := taxon.NewRecord(id, "species", scientific, common)
	return rec
}

// SpeciesIn builds a species record whose ancestry passes through the
// given clade IDs, broadest first.
func SpeciesIn(id int, scientific, common string, ancestry ...int) taxon.Record {
	rec := Species(id, scientific, common)
	rec.Ancestry = ancestry
	return rec
}

// Obs builds an observation of rec on the given day.
func Obs(id int, rec taxon.Record, observer string, observedAt time.Time, place string) taxon.Observation {
	return taxon.Observation{
		ID:            id,
		Taxon:         rec,
		ObserverLogin: observer,
		ObservedAt:    observedAt,
		Place:         place,
	}
}
