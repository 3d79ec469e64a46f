package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RepoRecord is one repository row from the metadata corpus. Contributors,
// stargazers and topics keep the store's delimited string encodings; the
// edge generation pipeline parses them.
type RepoRecord struct {
	NameWithOwner   string
	Stars           int
	Forks           int
	Watchers        int
	IsArchived      bool
	LanguageCount   int
	PullRequests    int
	Issues          int
	PrimaryLanguage string
	CreatedAtYear   int
	License         string
	Topics          string
	Contributors    string
	Stargazers      string
}

// RepoStore reads repository metadata from Postgres. It is the read-only
// corpus accessor; nothing in this service ever writes to these tables.
type RepoStore struct {
	db *pgxpool.Pool
}

func NewRepoStore(db *pgxpool.Pool) *RepoStore {
	return &RepoStore{db: db}
}

// ReposForTopics returns every repository carrying at least one of the given
// topics. Topic matching is case-insensitive against the pipe-delimited
// topics column.
func (s *RepoStore) ReposForTopics(ctx context.Context, topics []string) ([]RepoRecord, error) {
	if len(topics) == 0 {
		return nil, nil
	}

	conds := make([]string, 0, len(topics))
	args := make([]any, 0, len(topics))
	for i, t := range topics {
		// match a whole pipe-delimited token, not a substring of one
		conds = append(conds, fmt.Sprintf(
			"('|' || LOWER(t.topics) || '|') LIKE '%%|' || $%d || '|%%'", i+1))
		args = append(args, strings.ToLower(t))
	}

	query := fmt.Sprintf(`
		SELECT
			r.name_with_owner,
			COALESCE(r.stars, 0),
			COALESCE(r.forks, 0),
			COALESCE(r.watchers, 0),
			COALESCE(r.is_archived, false),
			COALESCE(r.language_count, 0),
			COALESCE(r.pull_requests, 0),
			COALESCE(r.issues, 0),
			COALESCE(r.primary_language, ''),
			COALESCE(r.created_at_year, 0),
			COALESCE(r.license, ''),
			COALESCE(t.topics, ''),
			COALESCE(r.contributors, ''),
			COALESCE(r.stargazers, '')
		FROM repos r
		JOIN repo_topics t ON r.name_with_owner = t.repo
		WHERE %s
		ORDER BY r.name_with_owner
	`, strings.Join(conds, " OR "))

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query repos for topics: %w", err)
	}
	defer rows.Close()

	var out []RepoRecord
	for rows.Next() {
		var r RepoRecord
		if err := rows.Scan(
			&r.NameWithOwner, &r.Stars, &r.Forks, &r.Watchers, &r.IsArchived,
			&r.LanguageCount, &r.PullRequests, &r.Issues, &r.PrimaryLanguage,
			&r.CreatedAtYear, &r.License, &r.Topics, &r.Contributors, &r.Stargazers,
		); err != nil {
			return nil, fmt.Errorf("scan repo row: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate repo rows: %w", err)
	}
	return out, nil
}
