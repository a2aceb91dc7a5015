package namefmt

import (
	"strings"

	"github.com/jinzhu/inflection"
)

// pluralize inflects the final word of a common name, so compound names
// pluralize naturally ("house mouse" → "house mice"). The lexicon's
// override table is consulted first; only when no override applies does
// the general English rule run.
func (f *Formatter) pluralize(name string, ancestry []int) string {
	words := strings.Fields(name)
	if len(words) == 0 {
		return name
	}
	last := words[len(words)-1]

	plural, ok := f.lex.Plural(last, ancestry)
	if !ok {
		plural = inflection.Plural(last)
	}
	words[len(words)-1] = plural
	return strings.Join(words, " ")
}
