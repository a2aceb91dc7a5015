package query

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/roach88/taxa/internal/daterange"
	"github.com/roach88/taxa/internal/lexicon"
	"github.com/roach88/taxa/internal/token"
)

// maxDatePhraseTokens bounds how many tokens a single date expression
// may span ("last 30 days" is the longest recognized phrase).
const maxDatePhraseTokens = 3

// Parser parses commands against a fixed lexicon. The zero value is
// not usable; construct with NewParser. Parser is stateless between
// calls and safe for concurrent use.
type Parser struct {
	lex *lexicon.Lexicon
}

// NewParser creates a Parser over the given lexicon.
func NewParser(lex *lexicon.Lexicon) *Parser {
	return &Parser{lex: lex}
}

// Parse tokenizes and parses raw command text using the default
// lexicon. ref anchors relative date expressions.
func Parse(raw string, ref time.Time) (*Query, error) {
	return NewParser(lexicon.Default()).Parse(raw, ref)
}

// ParseTokens parses an already-tokenized command using the default
// lexicon.
func ParseTokens(toks []token.Token, ref time.Time) (*Query, error) {
	return NewParser(lexicon.Default()).ParseTokens(toks, ref)
}

// Parse tokenizes and parses raw command text. ref anchors relative
// date expressions; Parse never reads the wall clock.
func (p *Parser) Parse(raw string, ref time.Time) (*Query, error) {
	toks, err := token.Tokenize(raw)
	if err != nil {
		var uq *token.UnterminatedQuoteError
		if errors.As(err, &uq) {
			return nil, newParseError(ReasonUnterminatedQuote,
				"quote opened but never closed", `"`, uq.Position)
		}
		return nil, err
	}
	return p.ParseTokens(toks, ref)
}

// ParseTokens parses a token sequence into a Query. The first failure
// in token order wins. A sequence with no usable clause fails with
// ReasonEmptyQuery; ParseTokens never returns a partial Query.
func (p *Parser) ParseTokens(toks []token.Token, ref time.Time) (*Query, error) {
	run := &parseRun{
		lex:  p.lex,
		toks: toks,
		ref:  ref,
		q:    Query{Page: 1, PerPage: DefaultPerPage, Sort: SortRelevance},
	}
	if err := run.parse(); err != nil {
		return nil, err
	}
	run.q.TaxonTerm = strings.Join(run.termParts, " ")
	if run.q.Empty() {
		return nil, newParseError(ReasonEmptyQuery, "no search clause in input", "", -1)
	}
	return &run.q, nil
}

// parseRun is the single-pass parser state: a cursor over the tokens
// plus the query under construction and the taxon-term run. The term
// is the first contiguous run of unclaimed WORD/QUOTED/NUMBER tokens;
// once any clause interrupts a non-empty run, later unclaimed words are
// dropped.
type parseRun struct {
	lex  *lexicon.Lexicon
	toks []token.Token
	ref  time.Time

	i         int
	q         Query
	termParts []string
	termDone  bool
}

func (r *parseRun) parse() error {
	for r.i < len(r.toks) {
		tok := r.toks[r.i]
		switch tok.Kind {
		case token.Mention:
			return newParseError(ReasonUnexpectedMention,
				`mention is only valid after "by"`, "@"+tok.Text, tok.Position)

		case token.Flag:
			r.endTerm()
			if err := r.flag(tok); err != nil {
				return err
			}
			r.i++

		case token.Date:
			// A bare date token is a date clause of its own; when several
			// date clauses appear, the last one wins.
			rng, err := daterange.Resolve(tok.Text, r.ref)
			if err != nil {
				return r.dateError(err, tok)
			}
			r.q.Range = &rng
			r.endTerm()
			r.i++

		case token.Word:
			if kind, ok := r.lex.Keyword(tok.Text); ok && kind != lexicon.KeywordAnd {
				r.endTerm()
				if err := r.clause(kind, tok); err != nil {
					return err
				}
				continue
			}
			if rank, ok := r.lex.Rank(tok.Text); ok {
				r.q.Rank = rank.Name
				r.endTerm()
				r.i++
				continue
			}
			r.termWord(tok.Text)
			r.i++

		default: // Quoted, Number
			r.termWord(tok.Text)
			r.i++
		}
	}
	return nil
}

// termWord adds a word to the taxon term while the first run is still
// open. Words after the run closed are dropped.
func (r *parseRun) termWord(text string) {
	if !r.termDone {
		r.termParts = append(r.termParts, text)
	}
}

// endTerm closes the taxon-term run once it holds at least one word.
func (r *parseRun) endTerm() {
	if len(r.termParts) > 0 {
		r.termDone = true
	}
}

// clause consumes one keyword clause starting at the keyword token.
// On return the cursor points past everything the clause claimed.
func (r *parseRun) clause(kind lexicon.KeywordKind, kw token.Token) error {
	r.i++ // consume the keyword itself

	switch kind {
	case lexicon.KeywordObserver:
		if r.i >= len(r.toks) {
			return newParseError(ReasonUnexpectedMention,
				`expected a user after "by"`, kw.Text, kw.Position)
		}
		operand := r.toks[r.i]
		switch operand.Kind {
		case token.Mention, token.Word, token.Number:
			r.q.Observer = operand.Text
			r.i++
		default:
			return newParseError(ReasonUnexpectedMention,
				`expected a user after "by"`, operand.Text, operand.Position)
		}

	case lexicon.KeywordPlace:
		r.q.Place = strings.Join(r.collectPhrase(), " ")

	case lexicon.KeywordSince:
		return r.openDateClause(kw, "since")

	case lexicon.KeywordBefore:
		return r.openDateClause(kw, "before")

	case lexicon.KeywordBetween:
		return r.betweenClause(kw)

	case lexicon.KeywordPage:
		if r.i >= len(r.toks) || r.toks[r.i].Kind != token.Number {
			return newParseError(ReasonPageOutOfRange,
				`expected a number after "page"`, kw.Text, kw.Position)
		}
		operand := r.toks[r.i]
		if err := r.setPage(operand.Text, operand.Position); err != nil {
			return err
		}
		r.i++

	case lexicon.KeywordSort:
		// An unknown sort word leaves the default in place but is still
		// consumed, so it never leaks into the taxon term.
		if r.i < len(r.toks) && r.toks[r.i].Kind == token.Word {
			if sk, ok := sortKeyOf(r.toks[r.i].Text); ok {
				r.q.Sort = sk
			}
			r.i++
		}
	}
	return nil
}

// collectPhrase consumes the following run of plain words, quoted
// phrases, and numbers, stopping at the next keyword, rank word, or
// control token. Used for place names ("in New York").
func (r *parseRun) collectPhrase() []string {
	var parts []string
	for r.i < len(r.toks) {
		tok := r.toks[r.i]
		switch tok.Kind {
		case token.Word:
			if _, ok := r.lex.Keyword(tok.Text); ok {
				return parts
			}
			if _, ok := r.lex.Rank(tok.Text); ok {
				return parts
			}
		case token.Quoted, token.Number:
			// allowed
		default:
			return parts
		}
		parts = append(parts, tok.Text)
		r.i++
	}
	return parts
}

// openDateClause handles "since X" and "before X". The operand may span
// several tokens ("since last week"); the longest resolvable run wins
// so a trailing term word is not swallowed.
func (r *parseRun) openDateClause(kw token.Token, prefix string) error {
	run := r.collectDateRun(r.i, maxDatePhraseTokens)
	if len(run) == 0 {
		return newParseError(ReasonUnrecognizedDate,
			`expected a date after "`+prefix+`"`, kw.Text, kw.Position)
	}
	for n := len(run); n >= 1; n-- {
		expr := prefix + " " + joinTokens(run[:n])
		rng, err := daterange.Resolve(expr, r.ref)
		if err == nil {
			r.q.Range = &rng
			r.i += n
			return nil
		}
		if !isUnrecognized(err) {
			return r.dateError(err, run[0])
		}
	}
	return newParseError(ReasonUnrecognizedDate,
		"unrecognized date expression", joinTokens(run[:1]), run[0].Position)
}

// betweenClause handles "between X and Y".
func (r *parseRun) betweenClause(kw token.Token) error {
	xRun := r.collectDateRun(r.i, maxDatePhraseTokens)
	andIdx := r.i + len(xRun)
	if len(xRun) == 0 || andIdx >= len(r.toks) || !r.isAnd(r.toks[andIdx]) {
		return newParseError(ReasonUnrecognizedDate,
			`expected "between <start> and <end>"`, kw.Text, kw.Position)
	}
	yRun := r.collectDateRun(andIdx+1, maxDatePhraseTokens)
	if len(yRun) == 0 {
		return newParseError(ReasonUnrecognizedDate,
			`expected a date after "and"`, kw.Text, kw.Position)
	}

	x := joinTokens(xRun)
	for n := len(yRun); n >= 1; n-- {
		expr := "between " + x + " and " + joinTokens(yRun[:n])
		rng, err := daterange.Resolve(expr, r.ref)
		if err == nil {
			r.q.Range = &rng
			r.i = andIdx + 1 + n
			return nil
		}
		if !isUnrecognized(err) {
			return r.dateError(err, kw)
		}
	}
	return newParseError(ReasonUnrecognizedDate,
		"unrecognized date expression", joinTokens(yRun[:1]), yRun[0].Position)
}

// collectDateRun gathers up to limit consecutive tokens that can be
// part of a date expression, starting at index start. Keywords, rank
// words, and control tokens end the run.
func (r *parseRun) collectDateRun(start, limit int) []token.Token {
	var run []token.Token
	for idx := start; idx < len(r.toks) && len(run) < limit; idx++ {
		tok := r.toks[idx]
		switch tok.Kind {
		case token.Date, token.Number:
			run = append(run, tok)
		case token.Word:
			if _, ok := r.lex.Keyword(tok.Text); ok {
				return run
			}
			if _, ok := r.lex.Rank(tok.Text); ok {
				return run
			}
			run = append(run, tok)
		default:
			return run
		}
	}
	return run
}

func (r *parseRun) isAnd(tok token.Token) bool {
	if tok.Kind != token.Word {
		return false
	}
	kind, ok := r.lex.Keyword(tok.Text)
	return ok && kind == lexicon.KeywordAnd
}

// flag consumes a key=value control token. Unknown keys are dropped;
// they are controls for other layers, not search terms.
func (r *parseRun) flag(tok token.Token) error {
	key, value, _ := strings.Cut(tok.Text, "=")
	switch strings.ToLower(key) {
	case "page":
		return r.setPage(value, tok.Position)
	case "per":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 || n > MaxPerPage {
			return newParseError(ReasonPageOutOfRange,
				"per-page must be within [1, "+strconv.Itoa(MaxPerPage)+"]",
				tok.Text, tok.Position)
		}
		r.q.PerPage = n
	case "sort":
		if sk, ok := sortKeyOf(value); ok {
			r.q.Sort = sk
		}
	}
	return nil
}

func (r *parseRun) setPage(value string, pos int) error {
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 || n > MaxPage {
		return newParseError(ReasonPageOutOfRange,
			"page must be within [1, "+strconv.Itoa(MaxPage)+"]", value, pos)
	}
	r.q.Page = n
	return nil
}

// dateError maps daterange errors onto the parse error taxonomy.
func (r *parseRun) dateError(err error, tok token.Token) error {
	var inv *daterange.InvertedRangeError
	if errors.As(err, &inv) {
		return newParseError(ReasonInvertedRange, inv.Error(), tok.Text, tok.Position)
	}
	var unrec *daterange.UnrecognizedError
	if errors.As(err, &unrec) {
		return newParseError(ReasonUnrecognizedDate, unrec.Error(), tok.Text, tok.Position)
	}
	return err
}

func isUnrecognized(err error) bool {
	var unrec *daterange.UnrecognizedError
	return errors.As(err, &unrec)
}

func joinTokens(toks []token.Token) string {
	parts := make([]string, len(toks))
	for i, t := range toks {
		parts[i] = t.Text
	}
	return strings.Join(parts, " ")
}

func sortKeyOf(word string) (SortKey, bool) {
	switch strings.ToLower(word) {
	case "relevance":
		return SortRelevance, true
	case "obs", "observations":
		return SortObservations, true
	case "name":
		return SortName, true
	case "date":
		return SortDate, true
	default:
		return "", false
	}
}
