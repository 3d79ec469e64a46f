package graphbuild

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deepgit-labs/deepgit-backend/internal/edge_generation/criteria"
	"github.com/deepgit-labs/deepgit-backend/internal/edge_generation/domain"
)

func topicNode(id, topics string) *domain.Node {
	return &domain.Node{ID: id, Topics: topics}
}

func TestFromNodesTopicEdge(t *testing.T) {
	nodes := []*domain.Node{
		topicNode("o1/a", "x|y"),
		topicNode("o2/b", "y|z"),
	}
	cfg := criteria.Config{TopicBasedLinking: true, TopicThreshold: 1}

	g, out, err := FromNodes(nodes, cfg)
	require.NoError(t, err)
	require.Len(t, g.Edges, 1)
	assert.Equal(t, 1, out.EdgesCreated)
	assert.Equal(t, 1, out.CandidateCounts[domain.CriterionTopic])

	e := g.Edges[0]
	assert.Equal(t, "o1/a", e.Source)
	assert.Equal(t, "o2/b", e.Target)
	assert.Equal(t, "single", e.Attrs[domain.AttrEdgeType])
	assert.Equal(t, "topic", e.Attrs[domain.AttrCriteriaSatisfied])
	assert.Equal(t, "y", e.Attrs[domain.AttrSharedTopics])
	assert.Equal(t, 1, e.Attrs[domain.AttrWeight])
}

func TestFromNodesTopicThresholdTwo(t *testing.T) {
	nodes := []*domain.Node{
		topicNode("o1/a", "x|y"),
		topicNode("o2/b", "y|z"),
	}
	cfg := criteria.Config{TopicBasedLinking: true, TopicThreshold: 2}

	g, out, err := FromNodes(nodes, cfg)
	require.NoError(t, err)
	assert.Empty(t, g.Edges)
	assert.Equal(t, 0, out.EdgesCreated)
}

func TestFromNodesSharedOrganization(t *testing.T) {
	nodes := []*domain.Node{
		{ID: "acme/a"},
		{ID: "acme/b"},
		{ID: "other/c"},
	}
	cfg := criteria.Config{SharedOrganizationEnabled: true}

	g, _, err := FromNodes(nodes, cfg)
	require.NoError(t, err)
	require.Len(t, g.Edges, 1)
	e := g.Edges[0]
	assert.Equal(t, "acme/a", e.Source)
	assert.Equal(t, "acme/b", e.Target)
	assert.Equal(t, "acme", e.Attrs[domain.AttrOrganization])
	assert.Equal(t, 1, e.Attrs[domain.AttrWeight])
}

func TestFromNodesCombinedWithUseANDLogic(t *testing.T) {
	nodes := []*domain.Node{
		{ID: "o1/a", Topics: "x|y", Contributors: "p,q,r"},
		{ID: "o2/b", Topics: "x|y", Contributors: "p,q,r"},
	}
	cfg := criteria.Config{
		TopicBasedLinking:           true,
		TopicThreshold:              1,
		ContributorOverlapEnabled:   true,
		ContributorOverlapThreshold: 1,
		UseANDLogic:                 true,
	}

	g, _, err := FromNodes(nodes, cfg)
	require.NoError(t, err)
	require.Len(t, g.Edges, 1)

	e := g.Edges[0]
	assert.Equal(t, "combined", e.Attrs[domain.AttrEdgeType])
	assert.Equal(t, "topic|contributor_overlap", e.Attrs[domain.AttrCriteriaSatisfied])
	assert.Equal(t, 5, e.Attrs[domain.AttrWeight]) // 2 shared topics + 3 shared contributors
	assert.Equal(t, "x|y", e.Attrs[domain.AttrSharedTopics])
	assert.Equal(t, "p|q|r", e.Attrs[domain.AttrSharedContrib])
}

func TestFromNodesStrictANDUnsatisfiedCriterion(t *testing.T) {
	// topic and contributor hold, shared organization does not
	nodes := []*domain.Node{
		{ID: "o1/a", Topics: "x|y", Contributors: "p,q,r"},
		{ID: "o2/b", Topics: "x|y", Contributors: "p,q,r"},
	}
	cfg := criteria.Config{
		TopicBasedLinking:           true,
		TopicThreshold:              1,
		ContributorOverlapEnabled:   true,
		ContributorOverlapThreshold: 1,
		SharedOrganizationEnabled:   true,
		StrictANDLogic:              true,
	}

	g, _, err := FromNodes(nodes, cfg)
	require.NoError(t, err)
	assert.Empty(t, g.Edges)
}

func TestFromNodesRejectsEmptyConfig(t *testing.T) {
	_, _, err := FromNodes([]*domain.Node{{ID: "a/a"}, {ID: "a/b"}}, criteria.Config{})
	assert.ErrorIs(t, err, domain.ErrNoCriteriaEnabled)
}

func TestFromNodesBoundarySizes(t *testing.T) {
	cfg := criteria.Config{TopicBasedLinking: true, TopicThreshold: 1}

	g, _, err := FromNodes(nil, cfg)
	require.NoError(t, err)
	assert.Empty(t, g.Edges)
	assert.Empty(t, g.Nodes)

	g, _, err = FromNodes([]*domain.Node{topicNode("a/a", "x")}, cfg)
	require.NoError(t, err)
	assert.Empty(t, g.Edges)
	assert.Len(t, g.Nodes, 1)
}

func TestFromNodesIdempotent(t *testing.T) {
	nodes := []*domain.Node{
		{ID: "o1/a", Topics: "x|y", Stargazers: "u1,u2,u3"},
		{ID: "o2/b", Topics: "y", Stargazers: "u1,u2"},
		{ID: "o1/c", Topics: "z", Stargazers: "u9"},
	}
	reversed := []*domain.Node{nodes[2], nodes[1], nodes[0]}
	cfg := criteria.Config{
		TopicBasedLinking:         true,
		TopicThreshold:            1,
		CommonStargazersEnabled:   true,
		StargazerOverlapThreshold: 2,
	}

	g1, _, err := FromNodes(nodes, cfg)
	require.NoError(t, err)
	g2, _, err := FromNodes(reversed, cfg)
	require.NoError(t, err)

	require.Equal(t, len(g1.Edges), len(g2.Edges))
	for i := range g1.Edges {
		assert.Equal(t, g1.Edges[i], g2.Edges[i])
	}
}

func TestRebuildReplacesEdges(t *testing.T) {
	nodes := []*domain.Node{
		{ID: "acme/a", Topics: "x"},
		{ID: "acme/b", Topics: "y"},
	}
	cfg := criteria.Config{TopicBasedLinking: true, TopicThreshold: 1}
	g, _, err := FromNodes(nodes, cfg)
	require.NoError(t, err)
	assert.Empty(t, g.Edges)

	// pre-existing stale edge must not survive a rebuild
	g.Edges = append(g.Edges, &domain.Edge{Source: "acme/a", Target: "acme/b"})

	rebuilt, out, err := Rebuild(g, criteria.Config{SharedOrganizationEnabled: true})
	require.NoError(t, err)
	require.Len(t, rebuilt.Edges, 1)
	assert.Equal(t, 1, out.EdgesCreated)
	assert.Equal(t, "shared_organization", rebuilt.Edges[0].Attrs[domain.AttrCriteriaSatisfied])
	assert.Len(t, rebuilt.Nodes, 2)
}

func TestRebuildNotEnoughNodes(t *testing.T) {
	g := domain.NewGraph()
	g.Nodes["only/one"] = &domain.Node{ID: "only/one"}

	_, _, err := Rebuild(g, criteria.Config{SharedOrganizationEnabled: true})
	assert.ErrorIs(t, err, domain.ErrNotEnoughNodes)

	_, _, err = Rebuild(domain.NewGraph(), criteria.Config{SharedOrganizationEnabled: true})
	assert.ErrorIs(t, err, domain.ErrNotEnoughNodes)
}

func TestBuilderSealedIgnoresMutation(t *testing.T) {
	b := NewBuilder()
	b.AddNode(&domain.Node{ID: "a/a"})
	g := b.Seal()

	b.AddNode(&domain.Node{ID: "b/b"})
	b.ApplyFinalEdge(domain.FinalEdge{A: "a/a", B: "b/b", Type: domain.EdgeTypeSingle})

	assert.Len(t, g.Nodes, 1)
	assert.Empty(t, g.Edges)
}
