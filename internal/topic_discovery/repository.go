// Package topic_discovery returns, for a search term, the topics that
// co-occur with it across the repository corpus, with occurrence counts.
package topic_discovery

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository reads raw topic rows from Postgres.
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// TopicRowsContaining returns the pipe-delimited topics column of every
// repository whose topic list mentions the term. The LIKE prefilter is a
// substring match; the service re-checks exact token membership after
// parsing.
func (r *Repository) TopicRowsContaining(ctx context.Context, term string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT topics FROM repo_topics WHERE LOWER(topics) LIKE '%' || $1 || '%'`,
		term,
	)
	if err != nil {
		return nil, fmt.Errorf("query topic rows: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var topics string
		if err := rows.Scan(&topics); err != nil {
			return nil, fmt.Errorf("scan topic row: %w", err)
		}
		out = append(out, topics)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate topic rows: %w", err)
	}
	return out, nil
}
