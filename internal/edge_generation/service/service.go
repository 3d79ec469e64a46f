// Package service orchestrates edge generation: fetch repository nodes from
// the metadata store, run the criteria/combination pipeline, export the
// resulting graph, and report statistics.
package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/deepgit-labs/deepgit-backend/internal/edge_generation/criteria"
	"github.com/deepgit-labs/deepgit-backend/internal/edge_generation/domain"
	"github.com/deepgit-labs/deepgit-backend/internal/edge_generation/export"
	"github.com/deepgit-labs/deepgit-backend/internal/edge_generation/graphbuild"
	"github.com/deepgit-labs/deepgit-backend/internal/edge_generation/stats"
	"github.com/deepgit-labs/deepgit-backend/internal/storage/postgres"
)

// RepoStore is the read-only corpus accessor the service consumes.
type RepoStore interface {
	ReposForTopics(ctx context.Context, topics []string) ([]postgres.RepoRecord, error)
}

type Service struct {
	store     RepoStore
	exportDir string
	log       *zap.Logger
}

func New(store RepoStore, exportDir string, log *zap.Logger) *Service {
	return &Service{store: store, exportDir: exportDir, log: log}
}

// GenerationStats is the statistics record for one generation request.
type GenerationStats struct {
	TopicBasedEdges         int      `json:"topic_based_edges"`
	ContributorOverlapEdges int      `json:"contributor_overlap_edges"`
	SharedOrganizationEdges int      `json:"shared_organization_edges"`
	StargazerOverlapEdges   int      `json:"stargazer_overlap_edges"`
	TotalEdges              int      `json:"total_edges"`
	TotalNodes              int      `json:"total_nodes"`
	CriteriaUsed            []string `json:"criteria_used"`
	CombinationLogicApplied bool     `json:"combination_logic_applied"`
}

// RebuildStats extends the generation statistics with the explicit count of
// edges created on the rebuild path.
type RebuildStats struct {
	GenerationStats
	EdgesCreated int `json:"edges_created"`
}

type GenerateResult struct {
	Graph      *domain.Graph        `json:"-"`
	Stats      GenerationStats      `json:"stats"`
	Statistics stats.EdgeStatistics `json:"statistics"`
	GEXFPath   string               `json:"gexf_path"`
}

// RebuildResult carries either rebuild statistics or, when the graph has
// fewer than two nodes, just the user-visible message.
type RebuildResult struct {
	Graph   *domain.Graph `json:"-"`
	Stats   *RebuildStats `json:"stats,omitempty"`
	Message string        `json:"message,omitempty"`
}

// GenerateWithCriteria builds a fresh graph for the repositories carrying
// any of the given topics and writes it to the export directory.
func (s *Service) GenerateWithCriteria(ctx context.Context, topics []string, cfg criteria.Config) (*GenerateResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	records, err := s.store.ReposForTopics(ctx, topics)
	if err != nil {
		return nil, fmt.Errorf("fetch repos: %w", err)
	}

	nodes := make([]*domain.Node, 0, len(records))
	for i := range records {
		nodes = append(nodes, nodeFromRecord(&records[i]))
	}

	g, outcome, err := graphbuild.FromNodes(nodes, cfg)
	if err != nil {
		return nil, err
	}

	gexfPath := filepath.Join(s.exportDir, export.UniqueFilename(topics))
	if err := export.WriteGEXF(g, gexfPath); err != nil {
		return nil, fmt.Errorf("export gexf: %w", err)
	}

	s.log.Info("edge generation complete",
		zap.Strings("topics", topics),
		zap.Int("nodes", len(g.Nodes)),
		zap.Int("edges", len(g.Edges)),
	)

	return &GenerateResult{
		Graph:      g,
		Stats:      generationStats(g, outcome, cfg),
		Statistics: stats.Describe(g),
		GEXFPath:   gexfPath,
	}, nil
}

// RebuildEdges reruns the pipeline over an existing graph's node set after
// clearing its edges. A graph with fewer than two nodes yields the
// structured not-enough-nodes result rather than an error.
func (s *Service) RebuildEdges(g *domain.Graph, cfg criteria.Config) (*RebuildResult, error) {
	rebuilt, outcome, err := graphbuild.Rebuild(g, cfg)
	if errors.Is(err, domain.ErrNotEnoughNodes) {
		return &RebuildResult{Message: domain.NotEnoughNodesMessage}, nil
	}
	if err != nil {
		return nil, err
	}

	return &RebuildResult{
		Graph: rebuilt,
		Stats: &RebuildStats{
			GenerationStats: generationStats(rebuilt, outcome, cfg),
			EdgesCreated:    outcome.EdgesCreated,
		},
	}, nil
}

// ExportNodes writes a nodes-only GEXF for the repositories carrying any of
// the given topics. Returns the file path and the node count.
func (s *Service) ExportNodes(ctx context.Context, topics []string) (string, int, error) {
	records, err := s.store.ReposForTopics(ctx, topics)
	if err != nil {
		return "", 0, fmt.Errorf("fetch repos: %w", err)
	}
	if len(records) == 0 {
		return "", 0, nil
	}

	b := graphbuild.NewBuilder()
	for i := range records {
		b.AddNode(nodeFromRecord(&records[i]))
	}
	g := b.Seal()

	path := filepath.Join(s.exportDir, export.UniqueFilename(topics))
	if err := export.WriteGEXF(g, path); err != nil {
		return "", 0, fmt.Errorf("export gexf: %w", err)
	}
	return path, len(g.Nodes), nil
}

// Describe exposes the statistics reporter for an already-built graph.
func (s *Service) Describe(g *domain.Graph) stats.EdgeStatistics {
	return stats.Describe(g)
}

func generationStats(g *domain.Graph, outcome graphbuild.Outcome, cfg criteria.Config) GenerationStats {
	return GenerationStats{
		TopicBasedEdges:         outcome.CandidateCounts[domain.CriterionTopic],
		ContributorOverlapEdges: outcome.CandidateCounts[domain.CriterionContributor],
		SharedOrganizationEdges: outcome.CandidateCounts[domain.CriterionOrganization],
		StargazerOverlapEdges:   outcome.CandidateCounts[domain.CriterionStargazer],
		TotalEdges:              len(g.Edges),
		TotalNodes:              len(g.Nodes),
		CriteriaUsed:            cfg.CriteriaUsed(),
		CombinationLogicApplied: true,
	}
}

func nodeFromRecord(r *postgres.RepoRecord) *domain.Node {
	return &domain.Node{
		ID:           r.NameWithOwner,
		Topics:       r.Topics,
		Contributors: r.Contributors,
		Stargazers:   r.Stargazers,
		Attrs: domain.Attrs{
			"stars":           r.Stars,
			"forks":           r.Forks,
			"watchers":        r.Watchers,
			"isArchived":      r.IsArchived,
			"languageCount":   r.LanguageCount,
			"pullRequests":    r.PullRequests,
			"issues":          r.Issues,
			"primaryLanguage": r.PrimaryLanguage,
			"createdAt_year":  r.CreatedAtYear,
			"license":         r.License,
			"github_url":      "https://github.com/" + r.NameWithOwner,
		},
	}
}
