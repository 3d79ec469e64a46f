package domain

import (
	"sort"
	"strings"
)

type Attrs map[string]any

// Node is a repository in the relationship graph. The delimited attribute
// encodings (Topics, Contributors, Stargazers) are kept verbatim so they can
// be passed through to the exported graph; criteria parse them into sets.
type Node struct {
	ID           string `json:"id"` // "owner/name"
	Topics       string `json:"topics"`
	Contributors string `json:"contributors"`
	Stargazers   string `json:"stargazers"`
	Attrs        Attrs  `json:"attrs,omitempty"` // opaque pass-through (stars, forks, ...)
}

// Organization returns the owner segment of the node ID. A node without a
// "/" separator has no organization.
func (n *Node) Organization() (string, bool) {
	i := strings.IndexByte(n.ID, '/')
	if i <= 0 {
		return "", false
	}
	return n.ID[:i], true
}

// Edge is an externally visible graph edge. All attribute values are scalar;
// list-valued evidence is joined before it gets here.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Attrs  Attrs  `json:"attrs,omitempty"`
}

type Graph struct {
	Nodes map[string]*Node `json:"nodes"`
	Edges []*Edge          `json:"edges"`
}

func NewGraph() *Graph {
	return &Graph{Nodes: map[string]*Node{}, Edges: []*Edge{}}
}

// SortedNodes returns the graph's nodes ordered by ID. Every pass over node
// pairs starts from this ordering so results do not depend on map iteration.
func (g *Graph) SortedNodes() []*Node {
	out := make([]*Node, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// CandidateEdge is one satisfied criterion for an unordered node pair,
// prior to combination. A and B are stored in sorted order.
type CandidateEdge struct {
	A, B     string
	Kind     CriterionKind
	Evidence []string // shared values; single-element for shared_organization
	Weight   int
}

// PairKey returns the unordered pair grouping key.
func (c CandidateEdge) PairKey() string {
	return c.A + "\x00" + c.B
}

// NewCandidateEdge normalizes the pair ordering.
func NewCandidateEdge(a, b string, kind CriterionKind, evidence []string, weight int) CandidateEdge {
	if b < a {
		a, b = b, a
	}
	return CandidateEdge{A: a, B: b, Kind: kind, Evidence: evidence, Weight: weight}
}

// FinalEdge is the single edge that survives the combination policy for a
// node pair. Criteria are listed in canonical evaluation order and Weight is
// the sum of the contributing candidates' weights.
type FinalEdge struct {
	A, B     string
	Type     EdgeType
	Criteria []CriterionKind
	Evidence map[CriterionKind][]string
	Weight   int
}
