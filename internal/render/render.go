package render

import (
	"fmt"

	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/roach88/taxa/internal/daterange"
	"github.com/roach88/taxa/internal/lexicon"
	"github.com/roach88/taxa/internal/namefmt"
	"github.com/roach88/taxa/internal/query"
	"github.com/roach88/taxa/internal/taxon"
)

// Renderer renders result pages for a query. Construct once, render
// many; a Renderer holds only immutable configuration and is safe for
// concurrent use.
type Renderer struct {
	names    *namefmt.Formatter
	width    int
	newToken func() string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithWidth wraps rendered lines at w columns. Zero (the default)
// disables wrapping.
func WithWidth(w int) Option {
	return func(r *Renderer) { r.width = w }
}

// WithTokenSource replaces the pager-token source. Tests inject a
// fixed source for deterministic output.
func WithTokenSource(fn func() string) Option {
	return func(r *Renderer) { r.newToken = fn }
}

// New creates a Renderer over the given lexicon.
func New(lex *lexicon.Lexicon, opts ...Option) *Renderer {
	r := &Renderer{
		names:    namefmt.New(lex),
		newToken: NewPagerToken,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render produces the display block for one result page. The input
// page is never mutated; missing optional data (no common name, no
// totals) degrades to fallback text rather than failing.
func (r *Renderer) Render(q *query.Query, page taxon.Page) Block {
	block := Block{
		Header:     r.header(q, page),
		PageNumber: page.PageNumber,
		TotalPages: page.TotalPages,
		HasPrev:    page.PageNumber > 1,
		Token:      r.newToken(),
	}

	if page.TotalPages > 0 {
		block.HasNext = page.PageNumber < page.TotalPages
	} else {
		// Heuristic when the source does not report totals: a full page
		// probably has a successor.
		block.HasNext = len(page.Items) == q.PerPage
	}

	start := startIndex(q, page)
	for i, item := range page.Items {
		line := fmt.Sprintf("%d. %s", start+i, r.itemLabel(item))
		if r.width > 0 {
			line = wordwrap.String(line, r.width)
		}
		block.Lines = append(block.Lines, line)
	}

	block.Footer = r.footer(q, page)
	return block
}

func (r *Renderer) itemLabel(item taxon.Item) string {
	switch it := item.(type) {
	case taxon.Record:
		return fmt.Sprintf("%s — %s",
			r.names.FullName(it),
			r.names.CountLabel(it.ObservationCount, "observation"))
	case taxon.Observation:
		label := fmt.Sprintf("%s, %s", r.names.FullName(it.Taxon), daterange.HumanDay(it.ObservedAt))
		if it.ObserverLogin != "" {
			label += ", by " + it.ObserverLogin
		}
		if it.Place != "" {
			label += ", " + it.Place
		}
		return label
	default:
		return fmt.Sprintf("unknown item %T", item)
	}
}

// header summarizes the page. When every item is an observation of the
// same taxon, the headline is the counted common name ("47 fish by
// alice"); otherwise it restates the query's filters.
func (r *Renderer) header(q *query.Query, page taxon.Page) string {
	if rec, count, ok := soleTaxon(page); ok {
		name := r.names.Format(rec, count, true)
		head := commaInt(count) + " " + name.Display
		return head + filterSuffix(q)
	}

	head := "results"
	if q.TaxonTerm != "" {
		head = fmt.Sprintf("results for %q", q.TaxonTerm)
	}
	if q.Rank != "" {
		head += " (" + r.names.Abbrev(q.Rank) + ")"
	}
	return head + filterSuffix(q)
}

func filterSuffix(q *query.Query) string {
	var s string
	if q.Place != "" {
		s += " in " + q.Place
	}
	if q.Observer != "" {
		s += " by " + q.Observer
	}
	if q.Range != nil {
		s += " " + q.Range.Human()
	}
	return s
}

func (r *Renderer) footer(q *query.Query, page taxon.Page) string {
	if len(page.Items) == 0 {
		return "no results"
	}
	start := startIndex(q, page)
	end := start + len(page.Items) - 1
	if page.TotalCount > 0 {
		return fmt.Sprintf("showing %d–%d of %s", start, end, commaInt(page.TotalCount))
	}
	return fmt.Sprintf("showing %d–%d", start, end)
}

// startIndex is the 1-based number of the page's first item. A source
// reporting a page number below 1 degrades to numbering from 1 rather
// than producing negative indices.
func startIndex(q *query.Query, page taxon.Page) int {
	if page.PageNumber < 1 {
		return 1
	}
	return (page.PageNumber-1)*q.PerPage + 1
}

// soleTaxon reports the single taxon observed across the whole page,
// if the page consists solely of observations of one taxon. count is
// the source total when known, else the page's item count.
func soleTaxon(page taxon.Page) (taxon.Record, int, bool) {
	var rec taxon.Record
	for i, item := range page.Items {
		obs, ok := item.(taxon.Observation)
		if !ok {
			return taxon.Record{}, 0, false
		}
		if i == 0 {
			rec = obs.Taxon
		} else if obs.Taxon.ID != rec.ID {
			return taxon.Record{}, 0, false
		}
	}
	if len(page.Items) == 0 {
		return taxon.Record{}, 0, false
	}
	count := page.TotalCount
	if count == 0 {
		count = len(page.Items)
	}
	return rec, count, true
}

func commaInt(n int) string {
	return message.NewPrinter(language.English).Sprintf("%d", n)
}
