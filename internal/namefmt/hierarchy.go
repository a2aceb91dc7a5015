package namefmt

import (
	"fmt"
	"strings"

	"github.com/roach88/taxa/internal/taxon"
)

const hierarchyDelimiter = " > "

// Hierarchy renders an ancestor chain as a single line, broadest rank
// first, with primary ranks emphasized:
//
//	**Animalia** > **Chordata** > **Aves** > Passeriformes > **Parulidae**
//
// Ancestors must already be ordered broadest first. maxLen caps the
// result length in bytes; when the chain does not fit, the tail is
// replaced with "and N more". Zero means no cap.
func (f *Formatter) Hierarchy(ancestors []taxon.Record, maxLen int) string {
	names := make([]string, len(ancestors))
	for i, rec := range ancestors {
		name := rec.ScientificName
		if r, ok := f.lex.Rank(rec.Rank); ok && r.Primary {
			name = "**" + name + "**"
		}
		names[i] = name
	}
	if maxLen > 0 {
		names = fitNames(names, maxLen)
	}
	return strings.Join(names, hierarchyDelimiter)
}

// fitNames truncates a name list so the delimited join fits maxLen,
// appending "and N more" for whatever was dropped. The replacement
// itself must fit, so earlier names are dropped until it does.
func fitNames(names []string, maxLen int) []string {
	joinedLen := func(fit []string, next string) int {
		n := len(next)
		for _, s := range fit {
			n += len(s) + len(hierarchyDelimiter)
		}
		return n
	}
	more := func(count int) string {
		return fmt.Sprintf("and %d more", count)
	}

	var fit []string
	for i, name := range names {
		if joinedLen(fit, name) <= maxLen {
			fit = append(fit, name)
			continue
		}
		dropped := len(names) - i
		for len(fit) > 0 && joinedLen(fit, more(dropped)) > maxLen {
			fit = fit[:len(fit)-1]
			dropped++
		}
		return append(fit, more(dropped))
	}
	return fit
}
