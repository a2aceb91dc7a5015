// Package daterange resolves date expressions from query text into
// half-open instant ranges, and renders ranges back into short human
// strings for display.
//
// Resolution is a pure function of the expression text and an injected
// reference instant; the package never reads the wall clock. The same
// (text, reference) pair always yields the same range, which keeps both
// the parser and the renderer deterministic.
//
// RESOLUTION RULES, in priority order:
//
//  1. Absolute ISO-style dates resolve at their calendar granularity:
//     "2021-03-05" → [2021-03-05T00:00, 2021-03-06T00:00), "2021-03" →
//     the whole month, "2021" → the whole year.
//  2. "since X" → [X, +∞).
//  3. "before X" → (-∞, X).
//  4. "between X and Y" → [X, Y); Y before X is an inverted range error.
//  5. Relative phrases ("today", "yesterday", "this week", "last week",
//     "this month", "last month", "this year", "last year",
//     "last N days") are fixed offsets from the reference instant,
//     truncated to day granularity. Weeks start on Monday.
//
// Anything else is an unrecognized date error. Both error conditions
// are typed so the query parser can map them onto its own error
// taxonomy without string matching.
package daterange
