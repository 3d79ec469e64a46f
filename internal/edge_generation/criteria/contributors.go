package criteria

import (
	"github.com/deepgit-labs/deepgit-backend/internal/edge_generation/domain"
	"github.com/deepgit-labs/deepgit-backend/internal/edge_generation/parse"
)

type contributorOverlap struct {
	threshold int
}

func (contributorOverlap) Kind() domain.CriterionKind { return domain.CriterionContributor }

func (c contributorOverlap) Evaluate(nodes []*domain.Node) []domain.CandidateEdge {
	return overlapScan(nodes, domain.CriterionContributor, c.threshold,
		func(n *domain.Node) string { return n.Contributors })
}

// overlapScan is the shared pairwise scan for the set-overlap criteria
// (contributors and stargazers): parse each node's field once, then emit a
// candidate for every pair whose intersection reaches the threshold.
func overlapScan(nodes []*domain.Node, kind domain.CriterionKind, threshold int, field func(*domain.Node) string) []domain.CandidateEdge {
	if threshold < 1 {
		threshold = 1
	}

	sets := make([]parse.Set, len(nodes))
	for i, n := range nodes {
		sets[i] = parse.DelimitedSet(field(n))
	}

	var out []domain.CandidateEdge
	for i := range nodes {
		if len(sets[i]) < threshold {
			continue
		}
		for j := i + 1; j < len(nodes); j++ {
			shared := parse.Intersect(sets[i], sets[j])
			if len(shared) >= threshold {
				out = append(out, domain.NewCandidateEdge(
					nodes[i].ID, nodes[j].ID,
					kind,
					shared.Sorted(),
					len(shared),
				))
			}
		}
	}
	return out
}
