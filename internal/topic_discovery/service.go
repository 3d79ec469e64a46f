package topic_discovery

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/deepgit-labs/deepgit-backend/internal/edge_generation/parse"
)

// minOccurrences filters out topics that barely co-occur with the term;
// below this the counts are noise in the frontend topic picker.
const minOccurrences = 3

type TopicCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type Result struct {
	Success bool         `json:"success"`
	Data    []TopicCount `json:"data"`
	Total   int          `json:"total"`
	Cached  bool         `json:"cached"`
}

type Service struct {
	repo  *Repository
	cache *Cache
	log   *zap.Logger
}

func NewService(repo *Repository, cache *Cache, log *zap.Logger) *Service {
	return &Service{repo: repo, cache: cache, log: log}
}

// ProcessTopics counts the topics co-occurring with the search term across
// every repository that carries the term. The term itself is excluded, low
// counts are dropped, and results are sorted by count descending.
func (s *Service) ProcessTopics(ctx context.Context, searchTerm string) (*Result, error) {
	term := strings.ToLower(strings.TrimSpace(searchTerm))
	if term == "" {
		return nil, fmt.Errorf("search term is required")
	}

	if cached, hit, err := s.cache.Get(ctx, term); err != nil {
		s.log.Warn("topic cache read failed", zap.Error(err))
	} else if hit {
		return &Result{Success: true, Data: cached, Total: len(cached), Cached: true}, nil
	}

	rows, err := s.repo.TopicRowsContaining(ctx, term)
	if err != nil {
		return nil, err
	}

	counts := map[string]int{}
	for _, row := range rows {
		topics := parse.Topics(row)
		if !containsLower(topics, term) {
			continue
		}
		for topic := range topics {
			counts[topic]++
		}
	}

	var out []TopicCount
	for name, count := range counts {
		if strings.ToLower(name) == term || count < minOccurrences {
			continue
		}
		out = append(out, TopicCount{Name: name, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})

	if err := s.cache.Set(ctx, term, out); err != nil {
		s.log.Warn("topic cache write failed", zap.Error(err))
	}

	return &Result{Success: true, Data: out, Total: len(out), Cached: false}, nil
}

func containsLower(topics parse.Set, term string) bool {
	for t := range topics {
		if strings.ToLower(t) == term {
			return true
		}
	}
	return false
}
