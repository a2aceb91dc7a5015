package query

import (
	"errors"
	"fmt"
)

// Reason categorizes parse failures. Every failure mode a caller can
// surface to the user has its own reason; messages are advisory, the
// reason is the contract.
type Reason string

const (
	// ReasonUnterminatedQuote indicates a double quote was opened but
	// never closed.
	ReasonUnterminatedQuote Reason = "UNTERMINATED_QUOTE"

	// ReasonUnrecognizedDate indicates a date clause that matched none
	// of the resolution rules.
	ReasonUnrecognizedDate Reason = "UNRECOGNIZED_DATE"

	// ReasonInvertedRange indicates a between-span whose end precedes
	// its start.
	ReasonInvertedRange Reason = "INVERTED_RANGE"

	// ReasonUnexpectedMention indicates an @mention outside an observer
	// clause, or an observer clause without an operand.
	ReasonUnexpectedMention Reason = "UNEXPECTED_MENTION"

	// ReasonPageOutOfRange indicates a page or per-page control outside
	// its allowed bounds, or a page keyword without a number.
	ReasonPageOutOfRange Reason = "PAGE_OUT_OF_RANGE"

	// ReasonEmptyQuery indicates input with no usable clause at all.
	ReasonEmptyQuery Reason = "EMPTY_QUERY"
)

// ParseError is the single error type returned by parsing. The first
// failure in token order wins; the parser never collects multiple
// failures.
type ParseError struct {
	// Reason is the failure category.
	Reason Reason

	// Message is a human-readable description.
	Message string

	// Token is the offending token text, when one is identifiable.
	Token string

	// Position is the byte offset of the offending token in the raw
	// input, or -1 when not tied to a specific token.
	Position int
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("%s: %s (token=%q, pos=%d)", e.Reason, e.Message, e.Token, e.Position)
	}
	return fmt.Sprintf("%s: %s", e.Reason, e.Message)
}

// IsParseError reports whether err is (or wraps) a ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// ReasonOf extracts the Reason from an error, or "" when the error is
// not a ParseError. Uses errors.As to handle wrapped errors.
func ReasonOf(err error) Reason {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Reason
	}
	return ""
}

func newParseError(reason Reason, message, tok string, pos int) *ParseError {
	return &ParseError{Reason: reason, Message: message, Token: tok, Position: pos}
}
