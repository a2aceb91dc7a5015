// Package cli implements the taxa command-line interface.
package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// RootOptions holds global flags shared by every subcommand.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"

	// Ref overrides the reference instant used to anchor relative
	// dates ("yesterday", "last week"). Empty means now. RFC 3339.
	Ref string

	logger *zap.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the taxa CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "taxa",
		Short: "taxa - biodiversity query understanding",
		Long: `taxa parses compact biodiversity search commands and renders
result pages against a local observation database.

A command like "sp warbler in France since 2021-01 by alice page 2"
becomes a structured query with a taxon term, rank filter, place,
observer, date range, and page number.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			if opts.Ref != "" {
				if _, err := time.Parse(time.RFC3339, opts.Ref); err != nil {
					return fmt.Errorf("invalid --ref %q: %w", opts.Ref, err)
				}
			}
			return opts.initLogger()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Ref, "ref", "", "reference instant for relative dates (RFC 3339, default now)")

	cmd.AddCommand(NewParseCommand(opts))
	cmd.AddCommand(NewSearchCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))
	cmd.AddCommand(NewLexiconCommand(opts))

	return cmd
}

// refTime returns the reference instant for date resolution. The flag
// is validated in PersistentPreRunE, so a parse failure here means the
// command was built without going through the root command.
func (o *RootOptions) refTime() time.Time {
	if o.Ref == "" {
		return time.Now()
	}
	t, err := time.Parse(time.RFC3339, o.Ref)
	if err != nil {
		panic(fmt.Sprintf("unvalidated --ref %q: %v", o.Ref, err))
	}
	return t
}

// initLogger builds the process logger. Diagnostics always go to
// stderr so JSON output on stdout stays machine-readable.
func (o *RootOptions) initLogger() error {
	config := zap.NewProductionConfig()
	config.OutputPaths = []string{"stderr"}
	if o.Verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}
	logger, err := config.Build()
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	o.logger = logger
	return nil
}

// Logger returns the process logger, a no-op logger before the root
// command has run.
func (o *RootOptions) Logger() *zap.Logger {
	if o.logger == nil {
		return zap.NewNop()
	}
	return o.logger
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
