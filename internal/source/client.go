package source

import (
	"context"

	"github.com/roach88/taxa/internal/query"
	"github.com/roach88/taxa/internal/render"
	"github.com/roach88/taxa/internal/taxon"
)

// Client executes a structured query against an observation source and
// returns one page of results. Implementations own their transport;
// the core treats the returned page as an already-materialized value.
type Client interface {
	Search(ctx context.Context, q *query.Query) (taxon.Page, error)
}

// Messenger posts a rendered block to the display layer.
type Messenger interface {
	Post(ctx context.Context, block render.Block) error
}
