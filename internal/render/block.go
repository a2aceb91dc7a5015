// Package render turns result pages into display blocks: an ordered
// list of text lines plus navigation metadata, ready for the chat layer
// to post. Rendering is read-only over its inputs and byte-identical
// for identical inputs (with a fixed pager-token source).
package render

import (
	"strings"

	"github.com/google/uuid"
)

// Block is one rendered result page. The chat layer posts Header,
// Lines, and Footer verbatim and uses the navigation fields to offer
// paging controls.
type Block struct {
	// Header is the one-line summary of what the page shows.
	Header string

	// Lines are the rendered items, one per result.
	Lines []string

	// Footer is the range string ("showing 11–20 of 47").
	Footer string

	// PageNumber is the 1-based page this block renders.
	PageNumber int

	// TotalPages is 0 when the source did not report it.
	TotalPages int

	// HasPrev and HasNext drive the pager controls.
	HasPrev bool
	HasNext bool

	// Token correlates a posted block with later paging interactions.
	// Unique per render unless a fixed token source is injected.
	Token string
}

// Text joins the block into a single displayable string.
func (b Block) Text() string {
	parts := make([]string, 0, len(b.Lines)+2)
	if b.Header != "" {
		parts = append(parts, b.Header)
	}
	parts = append(parts, b.Lines...)
	if b.Footer != "" {
		parts = append(parts, b.Footer)
	}
	return strings.Join(parts, "\n")
}

// NewPagerToken returns a fresh time-ordered token for correlating a
// block with its paging interactions.
func NewPagerToken() string {
	return uuid.Must(uuid.NewV7()).String()
}
