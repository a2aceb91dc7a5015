package lexicon

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"cuelang.org/go/cue/cuecontext"
)

//go:embed tables.cue
var tablesCUE []byte

// KeywordKind classifies a reserved parser keyword by the clause it
// introduces.
type KeywordKind string

const (
	// KeywordObserver introduces an observer clause ("by @alice").
	KeywordObserver KeywordKind = "observer"

	// KeywordPlace introduces a place clause ("in France").
	KeywordPlace KeywordKind = "place"

	// KeywordSince introduces an open-ended date clause ("since 2021-01").
	KeywordSince KeywordKind = "date_since"

	// KeywordBefore introduces an open-start date clause ("before 2022").
	KeywordBefore KeywordKind = "date_before"

	// KeywordBetween introduces a bounded date span ("between X and Y").
	KeywordBetween KeywordKind = "date_between"

	// KeywordAnd separates the two bounds of a between-span. It is only
	// reserved inside a date span; elsewhere it is an ordinary word.
	KeywordAnd KeywordKind = "date_and"

	// KeywordPage introduces a page-number control ("page 2").
	KeywordPage KeywordKind = "page"

	// KeywordSort introduces a sort control ("sort name").
	KeywordSort KeywordKind = "sort"
)

// Rank describes one taxonomic rank.
type Rank struct {
	// Name is the canonical lowercase rank name ("species").
	Name string `json:"name"`

	// Level is the numeric rank level; higher is broader. Species is
	// LevelSpecies, genus is LevelGenus.
	Level int `json:"level"`

	// Abbrev is the short display form ("sp", "Fam").
	Abbrev string `json:"abbrev,omitempty"`

	// Trinomial is the abbreviation inserted into subspecific trinomials
	// ("ssp.", "var.", "f."). Empty for ranks above subspecies.
	Trinomial string `json:"trinomial,omitempty"`

	// Primary marks the seven primary Linnaean ranks. Primary ancestor
	// ranks are emphasized in hierarchy listings.
	Primary bool `json:"primary,omitempty"`

	// Aliases are additional input spellings accepted by the parser.
	Aliases []string `json:"aliases,omitempty"`
}

// Rank levels referenced by the formatter. Kept in sync with tables.cue
// by a load-time check.
const (
	LevelSpecies = 10
	LevelGenus   = 20
)

// PluralOverride is one irregular plural entry.
type PluralOverride struct {
	Singular string `json:"singular"`
	Plural   string `json:"plural"`

	// Within scopes the override to records whose ancestry contains this
	// taxon ID. Zero means unscoped.
	Within int `json:"within,omitempty"`

	// Otherwise is the plural used when Within is set but the record is
	// outside the clade. Empty falls through to the general rule.
	Otherwise string `json:"otherwise,omitempty"`
}

// Lexicon is the loaded, immutable lookup structure over the tables.
// Safe for concurrent use.
type Lexicon struct {
	ranks     []Rank
	rankIndex map[string]int // lowercase name/alias → index into ranks
	keywords  map[string]KeywordKind
	plurals   map[string]PluralOverride // lowercase singular → override
}

type rawTables struct {
	Ranks    []Rank            `json:"ranks"`
	Keywords map[string]string `json:"keywords"`
	Plurals  []PluralOverride  `json:"plurals"`
}

// Load parses and validates the embedded CUE tables into a Lexicon.
func Load() (*Lexicon, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(tablesCUE)
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("compile lexicon tables: %w", err)
	}
	if err := v.Validate(); err != nil {
		return nil, fmt.Errorf("validate lexicon tables: %w", err)
	}

	var raw rawTables
	if err := v.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode lexicon tables: %w", err)
	}
	return build(raw)
}

func build(raw rawTables) (*Lexicon, error) {
	lex := &Lexicon{
		ranks:     raw.Ranks,
		rankIndex: make(map[string]int),
		keywords:  make(map[string]KeywordKind),
		plurals:   make(map[string]PluralOverride),
	}

	for i, r := range raw.Ranks {
		if r.Name == "" || r.Level <= 0 {
			return nil, fmt.Errorf("rank %d: missing name or level", i)
		}
		for _, key := range append([]string{r.Name}, r.Aliases...) {
			key = strings.ToLower(key)
			if prev, dup := lex.rankIndex[key]; dup && lex.ranks[prev].Name != r.Name {
				return nil, fmt.Errorf("rank alias %q claimed by both %q and %q",
					key, lex.ranks[prev].Name, r.Name)
			}
			lex.rankIndex[key] = i
		}
	}
	if i, ok := lex.rankIndex["species"]; !ok || lex.ranks[i].Level != LevelSpecies {
		return nil, fmt.Errorf("species rank missing or not at level %d", LevelSpecies)
	}
	if i, ok := lex.rankIndex["genus"]; !ok || lex.ranks[i].Level != LevelGenus {
		return nil, fmt.Errorf("genus rank missing or not at level %d", LevelGenus)
	}

	for word, kind := range raw.Keywords {
		word = strings.ToLower(word)
		if _, dup := lex.rankIndex[word]; dup {
			return nil, fmt.Errorf("keyword %q collides with a rank name", word)
		}
		lex.keywords[word] = KeywordKind(kind)
	}

	for _, p := range raw.Plurals {
		lex.plurals[strings.ToLower(p.Singular)] = p
	}
	return lex, nil
}

var (
	defaultOnce sync.Once
	defaultLex  *Lexicon
	defaultErr  error
)

// Default returns the Lexicon loaded from the embedded tables. It
// panics if the embedded tables fail to load; that is a build defect,
// not a runtime condition.
func Default() *Lexicon {
	defaultOnce.Do(func() {
		defaultLex, defaultErr = Load()
	})
	if defaultErr != nil {
		panic(fmt.Sprintf("lexicon: embedded tables invalid: %v", defaultErr))
	}
	return defaultLex
}

// Rank looks up a rank by canonical name or alias, case-insensitively.
func (l *Lexicon) Rank(word string) (Rank, bool) {
	i, ok := l.rankIndex[strings.ToLower(word)]
	if !ok {
		return Rank{}, false
	}
	return l.ranks[i], true
}

// Keyword looks up a reserved parser keyword, case-insensitively.
func (l *Lexicon) Keyword(word string) (KeywordKind, bool) {
	kind, ok := l.keywords[strings.ToLower(word)]
	return kind, ok
}

// Plural returns the irregular plural for singular, if an override
// applies to a record with the given ancestry. The second return is
// false when the general English rule should be used instead.
func (l *Lexicon) Plural(singular string, ancestry []int) (string, bool) {
	p, ok := l.plurals[strings.ToLower(singular)]
	if !ok {
		return "", false
	}
	if p.Within == 0 || containsID(ancestry, p.Within) {
		return matchCase(singular, p.Plural), true
	}
	if p.Otherwise != "" {
		return matchCase(singular, p.Otherwise), true
	}
	return "", false
}

// Ranks returns all ranks ordered broadest first, then by name. The
// returned slice is a copy.
func (l *Lexicon) Ranks() []Rank {
	out := make([]Rank, len(l.ranks))
	copy(out, l.ranks)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Level != out[j].Level {
			return out[i].Level > out[j].Level
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func containsID(ancestry []int, id int) bool {
	for _, a := range ancestry {
		if a == id {
			return true
		}
	}
	return false
}

// matchCase copies the leading-capital casing of src onto word, so
// "Goose" pluralizes to "Geese" rather than "geese".
func matchCase(src, word string) string {
	if src == "" || word == "" {
		return word
	}
	if src[0] >= 'A' && src[0] <= 'Z' && word[0] >= 'a' && word[0] <= 'z' {
		return strings.ToUpper(word[:1]) + word[1:]
	}
	return word
}
