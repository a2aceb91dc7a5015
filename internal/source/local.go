package source

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/roach88/taxa/internal/query"
	"github.com/roach88/taxa/internal/taxon"
)

//go:embed schema.sql
var schemaSQL string

// LocalSource is a SQLite-backed Client implementation. It backs the
// CLI's offline mode and the integration tests; nothing in the query
// core depends on it.
type LocalSource struct {
	db *sql.DB
}

var _ Client = (*LocalSource)(nil)

// Open creates or opens a local source database at path. ":memory:"
// opens a throwaway in-memory database. Idempotent: the schema applies
// with IF NOT EXISTS.
func Open(path string) (*LocalSource, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect database: %w", err)
	}

	// SQLite allows one writer; a single connection avoids SQLITE_BUSY
	// and keeps :memory: databases on one handle.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply pragma: %w", err)
		}
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &LocalSource{db: db}, nil
}

// Close closes the underlying database.
func (s *LocalSource) Close() error {
	return s.db.Close()
}

// AddTaxon inserts or replaces a taxon record.
func (s *LocalSource) AddTaxon(rec taxon.Record) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO taxa
		 (id, rank, scientific_name, common_name, ancestry, active, observation_count)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Rank, rec.ScientificName, rec.CommonName,
		joinAncestry(rec.Ancestry), boolToInt(rec.Active), rec.ObservationCount,
	)
	if err != nil {
		return fmt.Errorf("insert taxon %d: %w", rec.ID, err)
	}
	return nil
}

// AddObservation inserts or replaces an observation. The taxon must
// have been added first.
func (s *LocalSource) AddObservation(obs taxon.Observation) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO observations (id, taxon_id, observer, observed_at, place)
		 VALUES (?, ?, ?, ?, ?)`,
		obs.ID, obs.Taxon.ID, obs.ObserverLogin,
		obs.ObservedAt.UTC().Format(time.RFC3339), obs.Place,
	)
	if err != nil {
		return fmt.Errorf("insert observation %d: %w", obs.ID, err)
	}
	return nil
}

// Search implements Client. It runs the compiled count and rows
// queries and assembles one result page.
func (s *LocalSource) Search(ctx context.Context, q *query.Query) (taxon.Page, error) {
	var c Compiler

	countSQL, countParams := c.Count(q)
	var total int
	if err := s.db.QueryRowContext(ctx, countSQL, countParams...).Scan(&total); err != nil {
		return taxon.Page{}, fmt.Errorf("count observations: %w", err)
	}

	rowsSQL, rowsParams := c.Rows(q)
	rows, err := s.db.QueryContext(ctx, rowsSQL, rowsParams...)
	if err != nil {
		return taxon.Page{}, fmt.Errorf("query observations: %w", err)
	}
	defer rows.Close()

	page := taxon.Page{
		PageNumber: q.Page,
		TotalCount: total,
		TotalPages: (total + q.PerPage - 1) / q.PerPage,
	}
	for rows.Next() {
		var (
			obs        taxon.Observation
			observedAt string
			ancestry   string
			active     int
		)
		if err := rows.Scan(
			&obs.ID, &obs.Taxon.ID, &obs.ObserverLogin, &observedAt, &obs.Place,
			&obs.Taxon.Rank, &obs.Taxon.ScientificName, &obs.Taxon.CommonName,
			&ancestry, &active, &obs.Taxon.ObservationCount,
		); err != nil {
			return taxon.Page{}, fmt.Errorf("scan observation: %w", err)
		}
		obs.ObservedAt, err = time.Parse(time.RFC3339, observedAt)
		if err != nil {
			return taxon.Page{}, fmt.Errorf("observation %d: bad observed_at: %w", obs.ID, err)
		}
		obs.Taxon.Ancestry = splitAncestry(ancestry)
		obs.Taxon.Active = active != 0
		page.Items = append(page.Items, obs)
	}
	if err := rows.Err(); err != nil {
		return taxon.Page{}, fmt.Errorf("iterate observations: %w", err)
	}
	return page, nil
}

func joinAncestry(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, "/")
}

func splitAncestry(s string) []int {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, "/")
	ids := make([]int, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.Atoi(p)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
