package criteria

import (
	"github.com/deepgit-labs/deepgit-backend/internal/edge_generation/domain"
)

type stargazerOverlap struct {
	threshold int
}

func (stargazerOverlap) Kind() domain.CriterionKind { return domain.CriterionStargazer }

func (s stargazerOverlap) Evaluate(nodes []*domain.Node) []domain.CandidateEdge {
	return overlapScan(nodes, domain.CriterionStargazer, s.threshold,
		func(n *domain.Node) string { return n.Stargazers })
}
