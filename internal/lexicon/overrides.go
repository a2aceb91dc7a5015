package lexicon

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// pluralOverrideFile is the YAML shape of a plural override file:
//
//	plurals:
//	  - singular: poisson
//	    plural: poissons
//	  - singular: fish
//	    plural: fishes
type pluralOverrideFile struct {
	Plurals []struct {
		Singular  string `yaml:"singular"`
		Plural    string `yaml:"plural"`
		Within    int    `yaml:"within,omitempty"`
		Otherwise string `yaml:"otherwise,omitempty"`
	} `yaml:"plurals"`
}

// WithPluralOverrides returns a copy of the Lexicon with the plural
// override table merged from a YAML document. Entries in the document
// replace embedded entries with the same singular; the receiver is not
// modified. This is the localization hook: swap the irregular-plural
// table without rebuilding.
func (l *Lexicon) WithPluralOverrides(r io.Reader) (*Lexicon, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read plural overrides: %w", err)
	}

	var file pluralOverrideFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse plural overrides: %w", err)
	}

	merged := &Lexicon{
		ranks:     l.ranks,
		rankIndex: l.rankIndex,
		keywords:  l.keywords,
		plurals:   make(map[string]PluralOverride, len(l.plurals)+len(file.Plurals)),
	}
	for k, v := range l.plurals {
		merged.plurals[k] = v
	}
	for i, p := range file.Plurals {
		if p.Singular == "" || p.Plural == "" {
			return nil, fmt.Errorf("plural override %d: singular and plural are required", i)
		}
		merged.plurals[strings.ToLower(p.Singular)] = PluralOverride{
			Singular:  p.Singular,
			Plural:    p.Plural,
			Within:    p.Within,
			Otherwise: p.Otherwise,
		}
	}
	return merged, nil
}
