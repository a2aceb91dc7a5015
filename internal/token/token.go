// Package token turns raw command text into a flat sequence of typed
// lexical tokens. It is the first stage of the query pipeline:
//
//	[raw text] → [token.Tokenize] → [query.ParseTokens] → [query.Query]
//
// The tokenizer is deliberately shallow: it classifies spans of input
// (words, quoted phrases, date-like strings, mentions, numbers, flags)
// without interpreting them. All meaning (which word is a keyword,
// what a date resolves to) is assigned by the parser.
package token

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Kind classifies a token.
type Kind int

const (
	// Word is any bare token not matching a more specific kind.
	Word Kind = iota

	// Quoted is a double-quoted phrase; Text holds the content without
	// the surrounding quotes.
	Quoted

	// Date is a date-like token (ISO-style "2021", "2021-03" or
	// "2021-03-05", optionally with a time suffix) or a relative date
	// word ("today", "yesterday"). Not resolved here.
	Date

	// Mention is an @-prefixed user reference; Text holds the name
	// without the sigil.
	Mention

	// Flag is a key=value control token ("per=50", "sort=name").
	Flag

	// Number is a token consisting solely of ASCII digits.
	Number
)

// String returns the kind name used in error messages and traces.
func (k Kind) String() string {
	switch k {
	case Word:
		return "WORD"
	case Quoted:
		return "QUOTED"
	case Date:
		return "DATE"
	case Mention:
		return "MENTION"
	case Flag:
		return "FLAG"
	case Number:
		return "NUMBER"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Token is one classified span of input. Tokens are immutable; Position
// is the byte offset of the span's start in the raw input.
type Token struct {
	Kind     Kind
	Text     string
	Position int
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%d", t.Kind, t.Text, t.Position)
}

// UnterminatedQuoteError reports a double quote opened at Position but
// never closed.
type UnterminatedQuoteError struct {
	Position int
}

func (e *UnterminatedQuoteError) Error() string {
	return fmt.Sprintf("unterminated quote at offset %d", e.Position)
}

// relativeDateWords are single words tagged as Date candidates. Multi-
// word relative phrases ("last week") are assembled by the parser from
// their Word tokens.
var relativeDateWords = map[string]bool{
	"today":     true,
	"yesterday": true,
}

// Tokenize splits raw input into tokens. Whitespace separates tokens
// except inside double-quoted spans. Empty or whitespace-only input
// yields an empty sequence and no error.
func Tokenize(raw string) ([]Token, error) {
	var toks []Token
	i := 0
	for i < len(raw) {
		r, size := utf8.DecodeRuneInString(raw[i:])
		if unicode.IsSpace(r) {
			i += size
			continue
		}
		if r == '"' {
			end := strings.IndexByte(raw[i+1:], '"')
			if end < 0 {
				return nil, &UnterminatedQuoteError{Position: i}
			}
			toks = append(toks, Token{
				Kind:     Quoted,
				Text:     raw[i+1 : i+1+end],
				Position: i,
			})
			i += end + 2
			continue
		}

		start := i
		for i < len(raw) {
			r, size := utf8.DecodeRuneInString(raw[i:])
			if unicode.IsSpace(r) {
				break
			}
			i += size
		}
		toks = append(toks, classify(raw[start:i], start))
	}
	return toks, nil
}

func classify(text string, pos int) Token {
	switch {
	case strings.HasPrefix(text, "@") && len(text) > 1:
		return Token{Kind: Mention, Text: text[1:], Position: pos}
	case allDigits(text):
		return Token{Kind: Number, Text: text, Position: pos}
	case isDateLike(text):
		return Token{Kind: Date, Text: text, Position: pos}
	case isFlag(text):
		return Token{Kind: Flag, Text: text, Position: pos}
	default:
		return Token{Kind: Word, Text: text, Position: pos}
	}
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// isFlag reports whether text is a key=value control token. The key
// must be a bare identifier; "=" inside quoted phrases never gets here.
func isFlag(text string) bool {
	eq := strings.IndexByte(text, '=')
	if eq <= 0 || eq == len(text)-1 {
		return false
	}
	for _, r := range text[:eq] {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// isDateLike reports whether text looks like an ISO-style date
// ("2021", "2021-03", "2021-03-05", "2021-03-05T14:00:00") or a
// relative date word. A bare 4-digit token is classified as Number,
// not Date; the parser treats Numbers in date position as years.
func isDateLike(text string) bool {
	if relativeDateWords[strings.ToLower(text)] {
		return true
	}
	// Minimal shape check: starts with a 4-digit year followed by "-".
	if len(text) < 6 || !allDigits(text[:4]) || text[4] != '-' {
		return false
	}
	for _, r := range text[5:] {
		if r != '-' && r != ':' && r != 'T' && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}
