// Package namefmt renders taxon records as display names.
//
// Two families of output:
//
//   - Format: a count-aware label ("2 warblers", common name pluralized)
//     used for list items. Common names pluralize through the lexicon's
//     irregular-override table first, then the general English rule.
//     Scientific names are invariant and never pluralized.
//
//   - FullName: the full page-style name, e.g.
//     "Genus *Taraxacum* (dandelions)". Ranks above species are shown
//     as a prefix, genus-level and below are italicized in Markdown,
//     and subspecific trinomials get the rank's abbreviation inserted
//     unitalicized between the second and third name:
//     "*Anser anser* ssp. *domesticus*".
//
// Every function here is a pure function of its arguments plus the
// formatter's lexicon. Identical inputs always produce identical
// output; there is no locale or random state.
package namefmt
