package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/taxa/internal/lexicon"
)

// LexiconOptions holds flags for the lexicon command.
type LexiconOptions struct {
	*RootOptions
	Plurals string
}

// NewLexiconCommand creates the lexicon command.
func NewLexiconCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LexiconOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "lexicon [word]",
		Short: "Inspect the rank and keyword tables",
		Long: `With no argument, list every taxonomic rank the parser accepts.
With a word, show how the parser classifies it: rank, keyword, or a
plain term, with its plural form.

Example:
  taxa lexicon
  taxa lexicon sp
  taxa lexicon goose --plurals overrides.yaml`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			word := ""
			if len(args) == 1 {
				word = args[0]
			}
			return runLexicon(opts, word, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Plurals, "plurals", "", "YAML file of extra plural overrides")

	return cmd
}

// wordView is the JSON projection of a single-word lookup.
type wordView struct {
	Word    string `json:"word"`
	Rank    string `json:"rank,omitempty"`
	Keyword string `json:"keyword,omitempty"`
	Plural  string `json:"plural,omitempty"`
}

func runLexicon(opts *LexiconOptions, word string, cmd *cobra.Command) error {
	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	lex := lexicon.Default()
	if opts.Plurals != "" {
		f, err := os.Open(opts.Plurals)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to read plural overrides", err)
		}
		defer f.Close()
		lex, err = lex.WithPluralOverrides(f)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to apply plural overrides", err)
		}
	}

	if word == "" {
		return dumpRanks(opts, lex, out)
	}

	v := wordView{Word: word}
	if rank, ok := lex.Rank(word); ok {
		v.Rank = rank.Name
	}
	if kind, ok := lex.Keyword(word); ok {
		v.Keyword = string(kind)
	}
	if v.Rank == "" && v.Keyword == "" {
		if plural, ok := lex.Plural(strings.ToLower(word), nil); ok {
			v.Plural = plural
		}
	}

	if opts.Format == "json" {
		return out.Success(v)
	}
	switch {
	case v.Rank != "":
		return out.Success(fmt.Sprintf("%s: rank %q", word, v.Rank))
	case v.Keyword != "":
		return out.Success(fmt.Sprintf("%s: keyword (%s)", word, v.Keyword))
	case v.Plural != "":
		return out.Success(fmt.Sprintf("%s: term, plural %q", word, v.Plural))
	default:
		return out.Success(fmt.Sprintf("%s: term", word))
	}
}

func dumpRanks(opts *LexiconOptions, lex *lexicon.Lexicon, out *OutputFormatter) error {
	ranks := lex.Ranks()
	if opts.Format == "json" {
		return out.Success(ranks)
	}

	var b strings.Builder
	for i, r := range ranks {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%-14s level=%-3d", r.Name, r.Level)
		if r.Abbrev != "" {
			fmt.Fprintf(&b, " abbrev=%s", r.Abbrev)
		}
		if len(r.Aliases) > 0 {
			fmt.Fprintf(&b, " aliases=%s", strings.Join(r.Aliases, ","))
		}
	}
	return out.Success(b.String())
}
