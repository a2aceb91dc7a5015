package daterange

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// UnrecognizedError reports an expression that matched none of the
// resolution rules.
type UnrecognizedError struct {
	Text string
}

func (e *UnrecognizedError) Error() string {
	return fmt.Sprintf("unrecognized date expression %q", e.Text)
}

// InvertedRangeError reports a between-span whose end precedes its
// start.
type InvertedRangeError struct {
	Start time.Time
	End   time.Time
}

func (e *InvertedRangeError) Error() string {
	return fmt.Sprintf("inverted date range: %s is before %s",
		e.End.Format(dayLayout), e.Start.Format(dayLayout))
}

// absoluteLayouts maps each accepted absolute layout to the calendar
// granularity it implies. Order matters: longest layouts first so
// "2021-03-05T14:30:00" is not truncated by a shorter match.
var absoluteLayouts = []struct {
	layout string
	unit   func(t time.Time) time.Time // start → exclusive end
}{
	{"2006-01-02T15:04:05", func(t time.Time) time.Time { return t.Add(time.Second) }},
	{"2006-01-02T15:04", func(t time.Time) time.Time { return t.Add(time.Minute) }},
	{"2006-01-02", func(t time.Time) time.Time { return t.AddDate(0, 0, 1) }},
	{"2006-01", func(t time.Time) time.Time { return t.AddDate(0, 1, 0) }},
	{"2006", func(t time.Time) time.Time { return t.AddDate(1, 0, 0) }},
}

// Resolve converts a date expression into a Range anchored at ref.
// See the package documentation for the rule set. Resolve is pure:
// identical (text, ref) pairs yield identical ranges.
func Resolve(text string, ref time.Time) (Range, error) {
	expr := strings.Join(strings.Fields(text), " ")
	if expr == "" {
		return Range{}, &UnrecognizedError{Text: text}
	}

	// Combinator keywords match case-insensitively, but the operand is
	// resolved with its original casing: RFC 3339 layouts require an
	// uppercase "T" separator.
	if rest, ok := cutKeyword(expr, "since "); ok {
		start, err := resolvePoint(rest, ref)
		if err != nil {
			return Range{}, err
		}
		return Range{Start: start, OpenEnd: true}, nil
	}
	if rest, ok := cutKeyword(expr, "before "); ok {
		end, err := resolvePoint(rest, ref)
		if err != nil {
			return Range{}, err
		}
		return Range{End: end, OpenStart: true}, nil
	}
	if rest, ok := cutKeyword(expr, "between "); ok {
		first, second, found := cutAnd(rest)
		if !found {
			return Range{}, &UnrecognizedError{Text: text}
		}
		start, err := resolvePoint(strings.TrimSpace(first), ref)
		if err != nil {
			return Range{}, err
		}
		end, err := resolvePoint(strings.TrimSpace(second), ref)
		if err != nil {
			return Range{}, err
		}
		if end.Before(start) {
			return Range{}, &InvertedRangeError{Start: start, End: end}
		}
		return Range{Start: start, End: end}, nil
	}

	if r, ok := resolveAbsolute(expr, ref.Location()); ok {
		return r, nil
	}
	if r, ok := resolveRelative(strings.ToLower(expr), ref); ok {
		return r, nil
	}
	return Range{}, &UnrecognizedError{Text: text}
}

// cutKeyword strips a leading keyword, matching case-insensitively,
// and returns the operand in its original casing.
func cutKeyword(expr, keyword string) (string, bool) {
	if len(expr) > len(keyword) && strings.EqualFold(expr[:len(keyword)], keyword) {
		return strings.TrimSpace(expr[len(keyword):]), true
	}
	return "", false
}

// cutAnd splits a between-operand on its " and " separator, matching
// the separator case-insensitively.
func cutAnd(s string) (string, string, bool) {
	const sep = " and "
	for i := 0; i+len(sep) <= len(s); i++ {
		if strings.EqualFold(s[i:i+len(sep)], sep) {
			return s[:i], s[i+len(sep):], true
		}
	}
	return s, "", false
}

// resolvePoint resolves an expression to a single instant: the start of
// whatever range the expression denotes on its own. "since yesterday"
// therefore begins at yesterday's midnight.
func resolvePoint(expr string, ref time.Time) (time.Time, error) {
	if r, ok := resolveAbsolute(expr, ref.Location()); ok {
		return r.Start, nil
	}
	if r, ok := resolveRelative(strings.ToLower(expr), ref); ok {
		return r.Start, nil
	}
	return time.Time{}, &UnrecognizedError{Text: expr}
}

func resolveAbsolute(expr string, loc *time.Location) (Range, bool) {
	for _, al := range absoluteLayouts {
		if len(expr) != len(al.layout) {
			continue
		}
		t, err := time.ParseInLocation(al.layout, expr, loc)
		if err != nil {
			continue
		}
		return Range{Start: t, End: al.unit(t)}, true
	}
	return Range{}, false
}

func resolveRelative(lower string, ref time.Time) (Range, bool) {
	day := startOfDay(ref)

	switch lower {
	case "today":
		return Range{Start: day, End: day.AddDate(0, 0, 1)}, true
	case "yesterday":
		return Range{Start: day.AddDate(0, 0, -1), End: day}, true
	case "this week":
		start := startOfWeek(day)
		return Range{Start: start, End: start.AddDate(0, 0, 7)}, true
	case "last week":
		start := startOfWeek(day).AddDate(0, 0, -7)
		return Range{Start: start, End: start.AddDate(0, 0, 7)}, true
	case "this month":
		start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
		return Range{Start: start, End: start.AddDate(0, 1, 0)}, true
	case "last month":
		start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location()).AddDate(0, -1, 0)
		return Range{Start: start, End: start.AddDate(0, 1, 0)}, true
	case "this year":
		start := time.Date(ref.Year(), time.January, 1, 0, 0, 0, 0, ref.Location())
		return Range{Start: start, End: start.AddDate(1, 0, 0)}, true
	case "last year":
		start := time.Date(ref.Year()-1, time.January, 1, 0, 0, 0, 0, ref.Location())
		return Range{Start: start, End: start.AddDate(1, 0, 0)}, true
	}

	// "last N days": the N calendar days ending with today.
	if rest, ok := strings.CutPrefix(lower, "last "); ok {
		if num, found := strings.CutSuffix(rest, " days"); found {
			n, err := strconv.Atoi(num)
			if err == nil && n >= 1 {
				return Range{Start: day.AddDate(0, 0, -(n - 1)), End: day.AddDate(0, 0, 1)}, true
			}
		}
	}
	return Range{}, false
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// startOfWeek returns the Monday at or before day.
func startOfWeek(day time.Time) time.Time {
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}
