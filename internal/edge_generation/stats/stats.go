// Package stats computes descriptive statistics over a finished graph.
package stats

import (
	"sort"
	"strings"

	"github.com/deepgit-labs/deepgit-backend/internal/edge_generation/domain"
)

type EdgeStatistics struct {
	TotalNodes          int            `json:"total_nodes"`
	TotalEdges          int            `json:"total_edges"`
	EdgeTypes           map[string]int `json:"edge_types"`
	CombinedBreakdown   map[string]int `json:"combined_breakdown,omitempty"`
	AverageDegree       float64        `json:"average_degree"`
	ConnectedComponents int            `json:"connected_components"`
	Density             float64        `json:"density"`
}

// Describe is a pure function of the graph. Single edges are counted under
// their criterion kind; combined edges are counted under "combined" with a
// secondary breakdown keyed by the sorted, pipe-joined criteria they satisfy.
func Describe(g *domain.Graph) EdgeStatistics {
	s := EdgeStatistics{
		TotalNodes: len(g.Nodes),
		TotalEdges: len(g.Edges),
		EdgeTypes:  map[string]int{},
	}

	for _, e := range g.Edges {
		criteria := splitCriteria(e.Attrs)
		if attrString(e.Attrs, domain.AttrEdgeType) == string(domain.EdgeTypeCombined) {
			s.EdgeTypes[string(domain.EdgeTypeCombined)]++
			if s.CombinedBreakdown == nil {
				s.CombinedBreakdown = map[string]int{}
			}
			sort.Strings(criteria)
			s.CombinedBreakdown[strings.Join(criteria, "|")]++
			continue
		}
		kind := "unknown"
		if len(criteria) == 1 {
			kind = criteria[0]
		}
		s.EdgeTypes[kind]++
	}

	if s.TotalNodes > 0 {
		s.AverageDegree = 2 * float64(s.TotalEdges) / float64(s.TotalNodes)
	}
	if s.TotalNodes >= 2 {
		s.Density = 2 * float64(s.TotalEdges) / (float64(s.TotalNodes) * float64(s.TotalNodes-1))
	}
	s.ConnectedComponents = countComponents(g)
	return s
}

// countComponents runs a union-find over the edge list; isolated nodes each
// count as their own component.
func countComponents(g *domain.Graph) int {
	if len(g.Nodes) == 0 {
		return 0
	}

	parent := make(map[string]string, len(g.Nodes))
	for id := range g.Nodes {
		parent[id] = id
	}

	var find func(string) string
	find = func(x string) string {
		if parent[x] != x {
			parent[x] = find(parent[x])
		}
		return parent[x]
	}

	components := len(g.Nodes)
	for _, e := range g.Edges {
		ra, okA := parent[e.Source]
		rb, okB := parent[e.Target]
		if !okA || !okB {
			continue
		}
		ra, rb = find(ra), find(rb)
		if ra != rb {
			parent[ra] = rb
			components--
		}
	}
	return components
}

func splitCriteria(attrs domain.Attrs) []string {
	raw := attrString(attrs, domain.AttrCriteriaSatisfied)
	if raw == "" {
		return nil
	}
	return strings.Split(raw, "|")
}

func attrString(attrs domain.Attrs, key string) string {
	if v, ok := attrs[key].(string); ok {
		return v
	}
	return ""
}
