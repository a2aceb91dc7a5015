// Package lexicon holds the data tables that drive query parsing and
// name formatting: taxonomic ranks, parser keywords, and irregular
// plural overrides for common names.
//
// The tables are data, not code. They are authored in an embedded CUE
// file (tables.cue), validated against a CUE schema at load time, and
// decoded into an immutable Lexicon value. Extending the keyword table
// or adding a rank alias never touches the parser state machine.
//
// TABLES:
//
//   - ranks: every taxonomic rank with its numeric level, short
//     abbreviation, trinomial abbreviation (for subspecific names),
//     primary-rank marker, and input aliases ("sp" → species).
//   - keywords: the reserved words the parser claims ("by", "in",
//     "since", "page", ...) mapped to their clause kind.
//   - plurals: irregular plural overrides consulted before the general
//     English pluralization rule. An override may be scoped to a clade
//     by ancestor taxon ID ("mouse" → "mice" only within Mammalia).
//
// LOCALIZATION:
//
// The plural override table is swappable: WithPluralOverrides merges a
// YAML override file into a copy of the Lexicon, leaving the original
// untouched. Everything else is fixed at build time.
//
// All lookups are case-insensitive on the input word. A Lexicon is
// immutable after load and safe for concurrent use.
package lexicon
