// Package taxon defines the record types returned by a search source:
// taxa, observations, and result pages. The query core only ever reads
// these values; nothing in this package mutates after construction.
package taxon

import (
	"time"

	"golang.org/x/text/unicode/norm"
)

// Record is one taxon as returned by a search source.
type Record struct {
	// ID is the source's taxon identifier.
	ID int

	// Rank is the lowercase rank name ("species", "family").
	Rank string

	// ScientificName is the Latin name. Never pluralized by formatters.
	ScientificName string

	// CommonName is the vernacular name, empty when the source has none.
	CommonName string

	// MatchedTerm is the term the search matched on, when it was neither
	// the scientific nor the common name. Empty otherwise.
	MatchedTerm string

	// Ancestry is the ordered ancestor taxon IDs, broadest first.
	Ancestry []int

	// Active is false for taxa deactivated by a taxonomy revision.
	Active bool

	// ObservationCount is the source's observation total for this taxon.
	ObservationCount int
}

// NewRecord builds a Record with NFC-normalized names. Sources composing
// records by hand should go through this so that identical names compare
// equal regardless of the encoder that produced them.
func NewRecord(id int, rank, scientificName, commonName string) Record {
	return Record{
		ID:             id,
		Rank:           rank,
		ScientificName: norm.NFC.String(scientificName),
		CommonName:     norm.NFC.String(commonName),
		Active:         true,
	}
}

// Within reports whether the record's ancestry passes through the given
// taxon ID.
func (r Record) Within(id int) bool {
	for _, a := range r.Ancestry {
		if a == id {
			return true
		}
	}
	return false
}

// Observation is one observation record.
type Observation struct {
	ID            int
	Taxon         Record
	ObserverLogin string
	ObservedAt    time.Time
	Place         string
}

// Item is one entry on a result page: a Record or an Observation.
//
// Sealed interface: the marker method keeps implementations inside this
// package so renderers can type-switch exhaustively.
type Item interface {
	pageItem()
}

func (Record) pageItem()      {}
func (Observation) pageItem() {}

// Page is one page of results from a search source. The core reads
// pages; it never builds or mutates them.
type Page struct {
	// Items holds the page's records in source order.
	Items []Item

	// PageNumber is 1-based.
	PageNumber int

	// TotalPages is 0 when the source does not report it.
	TotalPages int

	// TotalCount is 0 when the source does not report it.
	TotalCount int
}
