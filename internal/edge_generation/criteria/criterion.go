package criteria

import (
	"github.com/deepgit-labs/deepgit-backend/internal/edge_generation/domain"
)

// Criterion evaluates one relationship predicate over every unordered node
// pair and emits at most one candidate edge per qualifying pair. Nodes must
// arrive sorted by ID; evaluators never mutate them.
type Criterion interface {
	Kind() domain.CriterionKind
	Evaluate(nodes []*domain.Node) []domain.CandidateEdge
}

// ForConfig returns the enabled criteria in canonical evaluation order,
// parametrized with the config's thresholds.
func ForConfig(cfg Config) []Criterion {
	var out []Criterion
	if cfg.TopicBasedLinking {
		out = append(out, topicOverlap{threshold: cfg.TopicThreshold})
	}
	if cfg.ContributorOverlapEnabled {
		out = append(out, contributorOverlap{threshold: cfg.ContributorOverlapThreshold})
	}
	if cfg.SharedOrganizationEnabled {
		out = append(out, sharedOrganization{})
	}
	if cfg.CommonStargazersEnabled {
		out = append(out, stargazerOverlap{threshold: cfg.StargazerOverlapThreshold})
	}
	return out
}
