// Package graphbuild applies final edges to graph values. Graphs are
// accumulated through a Builder and sealed before they leave the package, so
// callers never see a half-built graph.
package graphbuild

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/deepgit-labs/deepgit-backend/internal/edge_generation/combine"
	"github.com/deepgit-labs/deepgit-backend/internal/edge_generation/criteria"
	"github.com/deepgit-labs/deepgit-backend/internal/edge_generation/domain"
)

// EvidenceJoin is the delimiter used when list-valued evidence is flattened
// into a scalar edge attribute for the exported graph.
const EvidenceJoin = "|"

type Builder struct {
	nodes  map[string]*domain.Node
	edges  []*domain.Edge
	sealed bool
}

func NewBuilder() *Builder {
	return &Builder{nodes: map[string]*domain.Node{}}
}

func (b *Builder) AddNode(n *domain.Node) {
	if b.sealed || n == nil {
		return
	}
	if _, ok := b.nodes[n.ID]; !ok {
		b.nodes[n.ID] = n
	}
}

// ApplyFinalEdge flattens a final edge into scalar attributes and appends it.
// The downstream graph format does not support composite attribute values,
// so evidence lists are joined here.
func (b *Builder) ApplyFinalEdge(e domain.FinalEdge) {
	if b.sealed {
		return
	}
	attrs := domain.Attrs{
		domain.AttrEdgeType:          string(e.Type),
		domain.AttrCriteriaSatisfied: joinKinds(e.Criteria),
		domain.AttrWeight:            e.Weight,
	}
	for kind, values := range e.Evidence {
		attrs[domain.EvidenceAttr(kind)] = strings.Join(values, EvidenceJoin)
	}
	b.edges = append(b.edges, &domain.Edge{Source: e.A, Target: e.B, Attrs: attrs})
}

// Seal finalizes the builder and returns the graph. Further mutations on the
// builder are ignored.
func (b *Builder) Seal() *domain.Graph {
	b.sealed = true
	g := domain.NewGraph()
	for id, n := range b.nodes {
		g.Nodes[id] = n
	}
	g.Edges = append(g.Edges, b.edges...)
	return g
}

// Outcome reports what one pipeline run produced.
type Outcome struct {
	CandidateCounts map[domain.CriterionKind]int
	EdgesCreated    int
}

// FromNodes builds a fresh graph: all nodes with their attributes, plus
// every final edge the enabled criteria and combination policy yield.
func FromNodes(nodes []*domain.Node, cfg criteria.Config) (*domain.Graph, Outcome, error) {
	if err := cfg.Validate(); err != nil {
		return nil, Outcome{}, err
	}

	b := NewBuilder()
	for _, n := range nodes {
		b.AddNode(n)
	}

	res := runPipeline(b.nodeSlice(), cfg)
	for _, e := range res.Edges {
		b.ApplyFinalEdge(e)
	}
	return b.Seal(), Outcome{CandidateCounts: res.CandidateCounts, EdgesCreated: len(res.Edges)}, nil
}

// Rebuild drops every edge of an existing graph, re-derives the node
// attribute views, and reruns the pipeline over the graph's own node set.
// A graph with fewer than two nodes has nothing to connect and is rejected
// with domain.ErrNotEnoughNodes.
func Rebuild(g *domain.Graph, cfg criteria.Config) (*domain.Graph, Outcome, error) {
	if err := cfg.Validate(); err != nil {
		return nil, Outcome{}, err
	}
	if g == nil {
		return nil, Outcome{}, fmt.Errorf("graphbuild: graph is nil")
	}
	if len(g.Nodes) < 2 {
		return nil, Outcome{}, domain.ErrNotEnoughNodes
	}

	res := runPipeline(g.SortedNodes(), cfg)

	b := NewBuilder()
	for _, n := range g.SortedNodes() {
		b.AddNode(n)
	}
	for _, e := range res.Edges {
		b.ApplyFinalEdge(e)
	}
	return b.Seal(), Outcome{CandidateCounts: res.CandidateCounts, EdgesCreated: len(res.Edges)}, nil
}

// nodeSlice returns the builder's nodes sorted by ID.
func (b *Builder) nodeSlice() []*domain.Node {
	out := make([]*domain.Node, 0, len(b.nodes))
	for _, n := range b.nodes {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// runPipeline evaluates every enabled criterion over the node set and
// combines the candidates. Evaluators are independent and each owns its
// output slot, so running them concurrently cannot change the result.
func runPipeline(nodes []*domain.Node, cfg criteria.Config) combine.Result {
	crits := criteria.ForConfig(cfg)

	perCriterion := make([][]domain.CandidateEdge, len(crits))
	var eg errgroup.Group
	for i, c := range crits {
		i, c := i, c
		eg.Go(func() error {
			perCriterion[i] = c.Evaluate(nodes)
			return nil
		})
	}
	_ = eg.Wait() // evaluators are total and never error

	var candidates []domain.CandidateEdge
	for _, batch := range perCriterion {
		candidates = append(candidates, batch...)
	}
	return combine.Apply(candidates, cfg)
}

func joinKinds(kinds []domain.CriterionKind) string {
	parts := make([]string, len(kinds))
	for i, k := range kinds {
		parts[i] = string(k)
	}
	return strings.Join(parts, EvidenceJoin)
}
