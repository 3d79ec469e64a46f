package criteria

import (
	"github.com/deepgit-labs/deepgit-backend/internal/edge_generation/domain"
	"github.com/deepgit-labs/deepgit-backend/internal/edge_generation/parse"
)

type topicOverlap struct {
	threshold int
}

func (topicOverlap) Kind() domain.CriterionKind { return domain.CriterionTopic }

func (t topicOverlap) Evaluate(nodes []*domain.Node) []domain.CandidateEdge {
	threshold := t.threshold
	if threshold < 1 {
		threshold = 1
	}

	sets := make([]parse.Set, len(nodes))
	for i, n := range nodes {
		sets[i] = parse.Topics(n.Topics)
	}

	var out []domain.CandidateEdge
	for i := range nodes {
		if len(sets[i]) == 0 {
			continue
		}
		for j := i + 1; j < len(nodes); j++ {
			shared := parse.Intersect(sets[i], sets[j])
			if len(shared) >= threshold {
				out = append(out, domain.NewCandidateEdge(
					nodes[i].ID, nodes[j].ID,
					domain.CriterionTopic,
					shared.Sorted(),
					len(shared),
				))
			}
		}
	}
	return out
}
