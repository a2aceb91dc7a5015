package cli

import (
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roach88/taxa/internal/query"
)

// NewParseCommand creates the parse command.
func NewParseCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <command>...",
		Short: "Parse a search command without running it",
		Long: `Parse a search command and print the structured query.

The arguments are joined into one command string, so quoting the whole
command is optional:

  taxa parse sp warbler since 2021-01-01 page 2
  taxa parse 'fish by @alice in "New Zealand"'`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(rootOpts, strings.Join(args, " "), cmd)
		},
	}
}

// queryView is the JSON projection of a parsed query.
type queryView struct {
	Term     string     `json:"term,omitempty"`
	Rank     string     `json:"rank,omitempty"`
	Place    string     `json:"place,omitempty"`
	Observer string     `json:"observer,omitempty"`
	Range    *rangeView `json:"range,omitempty"`
	Page     int        `json:"page"`
	PerPage  int        `json:"per_page"`
	Sort     string     `json:"sort"`
}

type rangeView struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
	Human string `json:"human"`
}

func runParse(opts *RootOptions, raw string, cmd *cobra.Command) error {
	logger := opts.Logger()
	logger.Debug("parsing command", zap.String("raw", raw))

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	q, err := query.Parse(raw, opts.refTime())
	if err != nil {
		_ = out.Error(err)
		return err
	}
	logger.Debug("parsed", zap.Stringer("query", q))

	if opts.Format == "json" {
		return out.Success(viewOf(q))
	}
	return out.Success(q.String())
}

func viewOf(q *query.Query) queryView {
	v := queryView{
		Term:     q.TaxonTerm,
		Rank:     q.Rank,
		Place:    q.Place,
		Observer: q.Observer,
		Page:     q.Page,
		PerPage:  q.PerPage,
		Sort:     string(q.Sort),
	}
	if q.Range != nil {
		rv := &rangeView{Human: q.Range.Human()}
		if !q.Range.OpenStart {
			rv.Start = q.Range.Start.UTC().Format(time.RFC3339)
		}
		if !q.Range.OpenEnd {
			rv.End = q.Range.End.UTC().Format(time.RFC3339)
		}
		v.Range = rv
	}
	return v
}
