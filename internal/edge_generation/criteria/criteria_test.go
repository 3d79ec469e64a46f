package criteria

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deepgit-labs/deepgit-backend/internal/edge_generation/domain"
)

func node(id, topics, contributors, stargazers string) *domain.Node {
	return &domain.Node{ID: id, Topics: topics, Contributors: contributors, Stargazers: stargazers}
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, Default().Validate())

	empty := Config{}
	assert.ErrorIs(t, empty.Validate(), domain.ErrNoCriteriaEnabled)

	onlyOrg := Config{SharedOrganizationEnabled: true}
	assert.NoError(t, onlyOrg.Validate())
}

func TestEnabledKindsCanonicalOrder(t *testing.T) {
	cfg := Config{
		CommonStargazersEnabled:   true,
		TopicBasedLinking:         true,
		SharedOrganizationEnabled: true,
	}
	assert.Equal(t, []domain.CriterionKind{
		domain.CriterionTopic,
		domain.CriterionOrganization,
		domain.CriterionStargazer,
	}, cfg.EnabledKinds())
}

func TestForConfig(t *testing.T) {
	cfg := Default()
	cfg.ContributorOverlapEnabled = true
	crits := ForConfig(cfg)
	require.Len(t, crits, 2)
	assert.Equal(t, domain.CriterionTopic, crits[0].Kind())
	assert.Equal(t, domain.CriterionContributor, crits[1].Kind())
}

func TestTopicOverlap(t *testing.T) {
	a := node("acme/a", "x|y", "", "")
	b := node("beta/b", "y|z", "", "")
	c := node("gamma/c", "w", "", "")

	t.Run("threshold 1", func(t *testing.T) {
		edges := (topicOverlap{threshold: 1}).Evaluate([]*domain.Node{a, b, c})
		require.Len(t, edges, 1)
		assert.Equal(t, "acme/a", edges[0].A)
		assert.Equal(t, "beta/b", edges[0].B)
		assert.Equal(t, []string{"y"}, edges[0].Evidence)
		assert.Equal(t, 1, edges[0].Weight)
	})

	t.Run("threshold 2 excludes single overlap", func(t *testing.T) {
		edges := (topicOverlap{threshold: 2}).Evaluate([]*domain.Node{a, b, c})
		assert.Empty(t, edges)
	})

	t.Run("threshold boundary", func(t *testing.T) {
		d := node("d/d", "x|y|z", "", "")
		e := node("e/e", "x|y", "", "")
		edges := (topicOverlap{threshold: 2}).Evaluate([]*domain.Node{d, e})
		require.Len(t, edges, 1)
		assert.Equal(t, 2, edges[0].Weight)
	})

	t.Run("duplicate topics count once", func(t *testing.T) {
		d := node("d/d", "x|x|y", "", "")
		e := node("e/e", "x", "", "")
		edges := (topicOverlap{threshold: 1}).Evaluate([]*domain.Node{d, e})
		require.Len(t, edges, 1)
		assert.Equal(t, []string{"x"}, edges[0].Evidence)
	})
}

func TestContributorOverlap(t *testing.T) {
	a := node("a/a", "", "alice,bob,carol", "")
	b := node("b/b", "", "bob|carol|dave", "")
	c := node("c/c", "", `["carol"]`, "")

	edges := (contributorOverlap{threshold: 2}).Evaluate([]*domain.Node{a, b, c})
	require.Len(t, edges, 1)
	assert.Equal(t, domain.CriterionContributor, edges[0].Kind)
	assert.Equal(t, []string{"bob", "carol"}, edges[0].Evidence)
	assert.Equal(t, 2, edges[0].Weight)

	// threshold - 1 shared does not qualify
	edges = (contributorOverlap{threshold: 3}).Evaluate([]*domain.Node{a, b})
	assert.Empty(t, edges)
}

func TestContributorOverlapMalformedInput(t *testing.T) {
	a := node("a/a", "", "[unterminated", "")
	b := node("b/b", "", "alice", "")
	assert.NotPanics(t, func() {
		edges := (contributorOverlap{threshold: 1}).Evaluate([]*domain.Node{a, b})
		assert.Empty(t, edges)
	})
}

func TestSharedOrganization(t *testing.T) {
	a := node("acme/a", "", "", "")
	b := node("acme/b", "", "", "")
	c := node("other/c", "", "", "")
	d := node("norepo", "", "", "") // no separator, no organization

	edges := (sharedOrganization{}).Evaluate([]*domain.Node{a, b, c, d})
	require.Len(t, edges, 1)
	assert.Equal(t, "acme/a", edges[0].A)
	assert.Equal(t, "acme/b", edges[0].B)
	assert.Equal(t, []string{"acme"}, edges[0].Evidence)
	assert.Equal(t, 1, edges[0].Weight)
}

func TestStargazerOverlapBoundary(t *testing.T) {
	a := node("a/a", "", "", "u1,u2,u3,u4,u5")
	b := node("b/b", "", "", "u1,u2,u3,u4,u9")

	edges := (stargazerOverlap{threshold: 4}).Evaluate([]*domain.Node{a, b})
	require.Len(t, edges, 1)
	assert.Equal(t, 4, edges[0].Weight)

	edges = (stargazerOverlap{threshold: 5}).Evaluate([]*domain.Node{a, b})
	assert.Empty(t, edges)
}

func TestEvaluateNoSelfPairs(t *testing.T) {
	a := node("acme/a", "x", "", "")
	edges := (topicOverlap{threshold: 1}).Evaluate([]*domain.Node{a})
	assert.Empty(t, edges)
}
