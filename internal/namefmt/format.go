package namefmt

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/roach88/taxa/internal/lexicon"
	"github.com/roach88/taxa/internal/taxon"
)

// inactiveMarker is appended to names of deactivated taxa.
const inactiveMarker = " ❗ Inactive Taxon"

// FormattedName is a rendered display name. Ephemeral: recomputed on
// every call, never cached.
type FormattedName struct {
	Display string
	Plural  bool
}

// Formatter renders taxon names using a lexicon's rank and plural
// tables. Stateless apart from the immutable lexicon; safe for
// concurrent use.
type Formatter struct {
	lex *lexicon.Lexicon
}

// New creates a Formatter over the given lexicon.
func New(lex *lexicon.Lexicon) *Formatter {
	return &Formatter{lex: lex}
}

// Format produces a count-aware display name for a record.
//
// When preferCommon is set and the record has a common name, the common
// name is used and pluralized for counts other than one. Otherwise the
// scientific name is used as-is: scientific names are invariant, so the
// result is never marked plural.
func (f *Formatter) Format(rec taxon.Record, count int, preferCommon bool) FormattedName {
	if preferCommon && rec.CommonName != "" {
		if count == 1 {
			return FormattedName{Display: rec.CommonName}
		}
		return FormattedName{
			Display: f.pluralize(rec.CommonName, rec.Ancestry),
			Plural:  true,
		}
	}
	return FormattedName{Display: rec.ScientificName}
}

// Abbrev returns the short form of a rank name ("species" → "sp"), or
// the input unchanged when the rank is unknown.
func (f *Formatter) Abbrev(rankName string) string {
	if r, ok := f.lex.Rank(rankName); ok && r.Abbrev != "" {
		return r.Abbrev
	}
	return rankName
}

// FullName renders a record in the style of a taxon page:
//
//   - rank prefix for ranks above species ("Family Paridae")
//   - Markdown italics for genus-level and below
//   - trinomial abbreviation inserted for subspecific three-part names
//   - common name in parentheses
//   - matched term in a second parenthesis when it matched neither name
//   - inactive marker for deactivated taxa
func (f *Formatter) FullName(rec taxon.Record) string {
	name := rec.ScientificName
	level := f.rankLevel(rec.Rank)

	if level <= lexicon.LevelGenus {
		name = "*" + name + "*"
	}
	if level > lexicon.LevelSpecies {
		name = titleWord(rec.Rank) + " " + name
	} else if r, ok := f.lex.Rank(rec.Rank); ok && r.Trinomial != "" {
		if parts := strings.Fields(rec.ScientificName); len(parts) == 3 {
			// Name is already italicized; close and reopen italics around
			// the unitalicized abbreviation.
			name = fmt.Sprintf("*%s %s* %s *%s*", parts[0], parts[1], r.Trinomial, parts[2])
		}
	}

	if rec.CommonName != "" {
		name += " (" + rec.CommonName + ")"
	}
	if rec.MatchedTerm != "" &&
		!strings.EqualFold(rec.MatchedTerm, rec.ScientificName) &&
		!strings.EqualFold(rec.MatchedTerm, rec.CommonName) {
		name += " (" + rec.MatchedTerm + ")"
	}
	if !rec.Active {
		name += inactiveMarker
	}
	return name
}

// CountLabel renders a grouped count with a pluralized noun, e.g.
// "1,234 observations". The noun pluralizes through the unscoped
// override table, then the general rule.
func (f *Formatter) CountLabel(count int, noun string) string {
	word := noun
	if count != 1 {
		word = f.pluralize(noun, nil)
	}
	return message.NewPrinter(language.English).Sprintf("%d", count) + " " + word
}

// rankLevel returns the lexicon level for a rank name. Unknown ranks
// are treated as species-level so they render italicized without a
// bogus prefix.
func (f *Formatter) rankLevel(rankName string) int {
	if r, ok := f.lex.Rank(rankName); ok {
		return r.Level
	}
	return lexicon.LevelSpecies
}

func titleWord(s string) string {
	return cases.Title(language.English).String(s)
}
