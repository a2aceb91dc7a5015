package source

import (
	"strings"
	"time"

	"github.com/roach88/taxa/internal/query"
)

// Compiler compiles a query.Query to parameterized SQL for SQLite.
//
// All values are parameterized, never interpolated. Every rows query
// includes an ORDER BY ending in the observation ID so result order is
// deterministic regardless of how SQLite chooses to scan.
type Compiler struct{}

const selectColumns = `o.id, o.taxon_id, o.observer, o.observed_at, o.place,
t.rank, t.scientific_name, t.common_name, t.ancestry, t.active, t.observation_count`

// Rows returns the paged observation query for q.
func (Compiler) Rows(q *query.Query) (string, []any) {
	where, params := compileWhere(q)
	sql := "SELECT " + selectColumns + "\nFROM observations o JOIN taxa t ON t.id = o.taxon_id" +
		where +
		"\nORDER BY " + orderBy(q.Sort) +
		"\nLIMIT ? OFFSET ?"
	params = append(params, q.PerPage, (q.Page-1)*q.PerPage)
	return sql, params
}

// Count returns the total-count query matching the same filters.
func (Compiler) Count(q *query.Query) (string, []any) {
	where, params := compileWhere(q)
	return "SELECT COUNT(*) FROM observations o JOIN taxa t ON t.id = o.taxon_id" + where, params
}

func compileWhere(q *query.Query) (string, []any) {
	var conds []string
	var params []any

	if q.TaxonTerm != "" {
		conds = append(conds, `(t.common_name LIKE ? ESCAPE '\' OR t.scientific_name LIKE ? ESCAPE '\')`)
		like := "%" + escapeLike(q.TaxonTerm) + "%"
		params = append(params, like, like)
	}
	if q.Rank != "" {
		conds = append(conds, "t.rank = ?")
		params = append(params, q.Rank)
	}
	if q.Place != "" {
		conds = append(conds, `o.place LIKE ? ESCAPE '\'`)
		params = append(params, "%"+escapeLike(q.Place)+"%")
	}
	if q.Observer != "" {
		conds = append(conds, "o.observer = ?")
		params = append(params, q.Observer)
	}
	if q.Range != nil {
		if !q.Range.OpenStart {
			conds = append(conds, "o.observed_at >= ?")
			params = append(params, q.Range.Start.UTC().Format(time.RFC3339))
		}
		if !q.Range.OpenEnd {
			conds = append(conds, "o.observed_at < ?")
			params = append(params, q.Range.End.UTC().Format(time.RFC3339))
		}
	}

	if len(conds) == 0 {
		return "", nil
	}
	return "\nWHERE " + strings.Join(conds, " AND "), params
}

// orderBy maps a sort key to its ORDER BY clause. The observation ID
// tiebreaker is mandatory: without it, equal-keyed rows would come back
// in scan order and paging would not be stable.
func orderBy(sort query.SortKey) string {
	switch sort {
	case query.SortName:
		return "t.scientific_name COLLATE BINARY ASC, o.id ASC"
	case query.SortDate:
		return "o.observed_at DESC, o.id ASC"
	case query.SortObservations:
		return "t.observation_count DESC, o.id ASC"
	default: // SortRelevance: best-observed taxa first
		return "t.observation_count DESC, t.id ASC, o.id ASC"
	}
}

// escapeLike escapes LIKE wildcards in user input so a term containing
// "%" matches literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	return strings.ReplaceAll(s, "_", `\_`)
}
