package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roach88/taxa/internal/source"
	"github.com/roach88/taxa/internal/taxon"
)

// SeedOptions holds flags for the seed command.
type SeedOptions struct {
	*RootOptions
	Database string
}

// seedFile is the JSON shape accepted by the seed command.
type seedFile struct {
	Taxa         []seedTaxon       `json:"taxa"`
	Observations []seedObservation `json:"observations"`
}

type seedTaxon struct {
	ID               int    `json:"id"`
	Rank             string `json:"rank"`
	ScientificName   string `json:"scientific_name"`
	CommonName       string `json:"common_name,omitempty"`
	MatchedTerm      string `json:"matched_term,omitempty"`
	Ancestry         []int  `json:"ancestry,omitempty"`
	Inactive         bool   `json:"inactive,omitempty"`
	ObservationCount int    `json:"observation_count,omitempty"`
}

type seedObservation struct {
	ID       int    `json:"id"`
	TaxonID  int    `json:"taxon_id"`
	Observer string `json:"observer,omitempty"`

	// ObservedAt accepts RFC 3339 or a plain day ("2021-03-05").
	ObservedAt string `json:"observed_at"`
	Place      string `json:"place,omitempty"`
}

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SeedOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "seed <records.json>",
		Short: "Load taxa and observations into a local database",
		Long: `Load a JSON file of taxa and observations into the local
database, creating the database if it does not exist. Existing records
with the same IDs are replaced, so seeding is idempotent.

Example:
  taxa seed --db ./taxa.db ./testdata/records.json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runSeed(opts *SeedOptions, path string, cmd *cobra.Command) error {
	logger := opts.Logger()
	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	data, err := os.ReadFile(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read records file", err)
	}
	var file seedFile
	if err := json.Unmarshal(data, &file); err != nil {
		return WrapExitError(ExitCommandError, "failed to parse records file", err)
	}

	src, err := source.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer func() {
		if closeErr := src.Close(); closeErr != nil {
			logger.Error("error closing database", zap.Error(closeErr))
		}
	}()

	byID := make(map[int]taxon.Record, len(file.Taxa))
	for _, st := range file.Taxa {
		rec := taxon.NewRecord(st.ID, st.Rank, st.ScientificName, st.CommonName)
		rec.MatchedTerm = st.MatchedTerm
		rec.Ancestry = st.Ancestry
		rec.Active = !st.Inactive
		rec.ObservationCount = st.ObservationCount
		if err := src.AddTaxon(rec); err != nil {
			return WrapExitError(ExitCommandError, "failed to load taxon", err)
		}
		byID[rec.ID] = rec
	}

	for _, so := range file.Observations {
		rec, ok := byID[so.TaxonID]
		if !ok {
			return WrapExitError(ExitCommandError,
				fmt.Sprintf("observation %d references unknown taxon %d", so.ID, so.TaxonID), nil)
		}
		observedAt, err := parseObservedAt(so.ObservedAt)
		if err != nil {
			return WrapExitError(ExitCommandError,
				fmt.Sprintf("observation %d: bad observed_at", so.ID), err)
		}
		obs := taxon.Observation{
			ID:            so.ID,
			Taxon:         rec,
			ObserverLogin: so.Observer,
			ObservedAt:    observedAt,
			Place:         so.Place,
		}
		if err := src.AddObservation(obs); err != nil {
			return WrapExitError(ExitCommandError, "failed to load observation", err)
		}
	}

	logger.Info("seeded database",
		zap.String("db", opts.Database),
		zap.Int("taxa", len(file.Taxa)),
		zap.Int("observations", len(file.Observations)))
	return out.Success(fmt.Sprintf("loaded %d taxa, %d observations", len(file.Taxa), len(file.Observations)))
}

func parseObservedAt(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02", s, time.UTC)
}
