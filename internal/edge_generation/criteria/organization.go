package criteria

import (
	"github.com/deepgit-labs/deepgit-backend/internal/edge_generation/domain"
)

// sharedOrganization links repositories owned by the same organization.
// Boolean match, no threshold; weight is fixed at 1.
type sharedOrganization struct{}

func (sharedOrganization) Kind() domain.CriterionKind { return domain.CriterionOrganization }

func (sharedOrganization) Evaluate(nodes []*domain.Node) []domain.CandidateEdge {
	var out []domain.CandidateEdge
	for i := range nodes {
		orgA, ok := nodes[i].Organization()
		if !ok {
			continue
		}
		for j := i + 1; j < len(nodes); j++ {
			orgB, ok := nodes[j].Organization()
			if !ok || orgA != orgB {
				continue
			}
			out = append(out, domain.NewCandidateEdge(
				nodes[i].ID, nodes[j].ID,
				domain.CriterionOrganization,
				[]string{orgA},
				1,
			))
		}
	}
	return out
}
