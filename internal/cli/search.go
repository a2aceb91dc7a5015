package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roach88/taxa/internal/lexicon"
	"github.com/roach88/taxa/internal/query"
	"github.com/roach88/taxa/internal/render"
	"github.com/roach88/taxa/internal/source"
)

// SearchOptions holds flags for the search command.
type SearchOptions struct {
	*RootOptions
	Database string
	Width    int
	Page     int
}

// NewSearchCommand creates the search command.
func NewSearchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SearchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "search <command>...",
		Short: "Run a search command against a local database",
		Long: `Parse a search command, run it against the local observation
database, and print the rendered result page.

Example:
  taxa search --db ./taxa.db sp warbler in France since 2021-01
  taxa search --db ./taxa.db fish by alice page 2 --width 72`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(opts, strings.Join(args, " "), cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	cmd.Flags().IntVar(&opts.Width, "width", 0, "wrap rendered lines at this column (0 = no wrap)")
	cmd.Flags().IntVar(&opts.Page, "page", 0, "override the page number from the command")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

// blockView is the JSON projection of a rendered page.
type blockView struct {
	Header     string   `json:"header"`
	Lines      []string `json:"lines"`
	Footer     string   `json:"footer"`
	Page       int      `json:"page"`
	TotalPages int      `json:"total_pages,omitempty"`
	HasPrev    bool     `json:"has_prev"`
	HasNext    bool     `json:"has_next"`
	Token      string   `json:"token"`
}

func runSearch(opts *SearchOptions, raw string, cmd *cobra.Command) error {
	logger := opts.Logger()
	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	q, err := query.Parse(raw, opts.refTime())
	if err != nil {
		_ = out.Error(err)
		return err
	}
	if opts.Page > 0 {
		next := q.WithPage(opts.Page)
		q = &next
	}
	logger.Debug("parsed", zap.Stringer("query", q))

	src, err := source.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer func() {
		if closeErr := src.Close(); closeErr != nil {
			logger.Error("error closing database", zap.Error(closeErr))
		}
	}()

	page, err := src.Search(cmd.Context(), q)
	if err != nil {
		return WrapExitError(ExitCommandError, "search failed", err)
	}
	logger.Debug("searched",
		zap.Int("items", len(page.Items)),
		zap.Int("total", page.TotalCount))

	var ropts []render.Option
	if opts.Width > 0 {
		ropts = append(ropts, render.WithWidth(opts.Width))
	}
	block := render.New(lexicon.Default(), ropts...).Render(q, page)

	if opts.Format == "json" {
		return out.Success(blockView{
			Header:     block.Header,
			Lines:      block.Lines,
			Footer:     block.Footer,
			Page:       block.PageNumber,
			TotalPages: block.TotalPages,
			HasPrev:    block.HasPrev,
			HasNext:    block.HasNext,
			Token:      block.Token,
		})
	}
	return out.Success(block.Text())
}
