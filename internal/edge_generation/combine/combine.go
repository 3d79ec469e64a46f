// Package combine resolves the candidate edges produced by the criterion
// evaluators into at most one final edge per node pair, according to the
// active combination policy.
package combine

import (
	"sort"

	"github.com/deepgit-labs/deepgit-backend/internal/edge_generation/criteria"
	"github.com/deepgit-labs/deepgit-backend/internal/edge_generation/domain"
	"github.com/deepgit-labs/deepgit-backend/internal/edge_generation/parse"
)

// Result carries the surviving edges plus the per-criterion candidate counts
// observed before combination, for generation statistics.
type Result struct {
	Edges           []domain.FinalEdge
	CandidateCounts map[domain.CriterionKind]int
}

// Apply groups candidates by unordered pair and applies exactly one policy,
// by precedence: strict AND (all enabled criteria must hold), flexible AND
// (at least min_criteria_required must hold), use_and_logic (more than one
// must hold), and OR otherwise. Output is sorted by pair key so identical
// inputs always produce identical edge lists.
func Apply(candidates []domain.CandidateEdge, cfg criteria.Config) Result {
	counts := map[domain.CriterionKind]int{}
	groups := map[string][]domain.CandidateEdge{}
	var keys []string
	for _, c := range candidates {
		counts[c.Kind]++
		k := c.PairKey()
		if _, seen := groups[k]; !seen {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], c)
	}
	sort.Strings(keys)

	keep := keepFunc(cfg)

	var edges []domain.FinalEdge
	for _, k := range keys {
		group := groups[k]
		if !keep(group) {
			continue
		}
		edges = append(edges, Merge(group))
	}

	return Result{Edges: edges, CandidateCounts: counts}
}

func keepFunc(cfg criteria.Config) func([]domain.CandidateEdge) bool {
	switch {
	case cfg.StrictANDLogic:
		required := cfg.EnabledKinds()
		return func(group []domain.CandidateEdge) bool {
			return len(distinctKinds(group)) == len(required)
		}
	case cfg.MinCriteriaRequired > 1:
		minKinds := cfg.MinCriteriaRequired
		return func(group []domain.CandidateEdge) bool {
			return len(distinctKinds(group)) >= minKinds
		}
	case cfg.UseANDLogic:
		// With fewer than two enabled criteria there is nothing to combine,
		// so AND degenerates to OR.
		if len(cfg.EnabledKinds()) <= 1 {
			return func([]domain.CandidateEdge) bool { return true }
		}
		return func(group []domain.CandidateEdge) bool {
			return len(group) > 1
		}
	default:
		return func([]domain.CandidateEdge) bool { return true }
	}
}

// Merge folds a pair's candidate group into one final edge. Criteria are
// listed in canonical evaluation order, evidence is de-duplicated per
// criterion and sorted, and weights add up. The result does not depend on
// the order of the input group.
func Merge(group []domain.CandidateEdge) domain.FinalEdge {
	byKind := map[domain.CriterionKind][]domain.CandidateEdge{}
	for _, c := range group {
		byKind[c.Kind] = append(byKind[c.Kind], c)
	}

	edge := domain.FinalEdge{
		A:        group[0].A,
		B:        group[0].B,
		Evidence: map[domain.CriterionKind][]string{},
	}

	for _, kind := range domain.CriterionOrder() {
		cands, ok := byKind[kind]
		if !ok {
			continue
		}
		edge.Criteria = append(edge.Criteria, kind)
		ev := parse.Set{}
		for _, c := range cands {
			for _, v := range c.Evidence {
				ev.Add(v)
			}
			edge.Weight += c.Weight
		}
		edge.Evidence[kind] = ev.Sorted()
	}

	if len(edge.Criteria) > 1 {
		edge.Type = domain.EdgeTypeCombined
	} else {
		edge.Type = domain.EdgeTypeSingle
	}
	return edge
}

func distinctKinds(group []domain.CandidateEdge) []domain.CriterionKind {
	seen := map[domain.CriterionKind]bool{}
	var out []domain.CriterionKind
	for _, c := range group {
		if !seen[c.Kind] {
			seen[c.Kind] = true
			out = append(out, c.Kind)
		}
	}
	return out
}
