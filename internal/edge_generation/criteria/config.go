package criteria

import (
	"github.com/deepgit-labs/deepgit-backend/internal/edge_generation/domain"
)

// Config is the declarative edge-criteria configuration for one generation
// request. It is built once, validated once, and read-only afterwards.
type Config struct {
	TopicBasedLinking bool `json:"topic_based_linking"`
	TopicThreshold    int  `json:"topic_threshold"`

	ContributorOverlapEnabled   bool `json:"contributor_overlap_enabled"`
	ContributorOverlapThreshold int  `json:"contributor_overlap_threshold"`

	SharedOrganizationEnabled bool `json:"shared_organization_enabled"`

	CommonStargazersEnabled   bool `json:"common_stargazers_enabled"`
	StargazerOverlapThreshold int  `json:"stargazer_overlap_threshold"`

	UseANDLogic         bool `json:"use_and_logic"`
	MinCriteriaRequired int  `json:"min_criteria_required"`
	StrictANDLogic      bool `json:"strict_and_logic"`
}

// Default returns the authoritative defaults. The fresh-graph path enables
// topic linking; the rebuild path starts from DefaultRebuild instead.
// Thresholds are shared between both entry points.
func Default() Config {
	return Config{
		TopicBasedLinking:           true,
		TopicThreshold:              1,
		ContributorOverlapThreshold: 2,
		StargazerOverlapThreshold:   2,
	}
}

// DefaultRebuild returns the defaults for the rebuild-on-existing path,
// which enables nothing until the caller opts in.
func DefaultRebuild() Config {
	c := Default()
	c.TopicBasedLinking = false
	return c
}

// Validate rejects a config that enables none of the four criteria.
func (c Config) Validate() error {
	if !c.TopicBasedLinking && !c.ContributorOverlapEnabled &&
		!c.SharedOrganizationEnabled && !c.CommonStargazersEnabled {
		return domain.ErrNoCriteriaEnabled
	}
	return nil
}

// EnabledKinds returns the enabled criterion kinds in canonical order.
func (c Config) EnabledKinds() []domain.CriterionKind {
	var out []domain.CriterionKind
	for _, k := range domain.CriterionOrder() {
		if c.enabled(k) {
			out = append(out, k)
		}
	}
	return out
}

func (c Config) enabled(k domain.CriterionKind) bool {
	switch k {
	case domain.CriterionTopic:
		return c.TopicBasedLinking
	case domain.CriterionContributor:
		return c.ContributorOverlapEnabled
	case domain.CriterionOrganization:
		return c.SharedOrganizationEnabled
	case domain.CriterionStargazer:
		return c.CommonStargazersEnabled
	}
	return false
}

// CriteriaUsed lists the config option names active for this request, for
// inclusion in generation statistics.
func (c Config) CriteriaUsed() []string {
	var out []string
	if c.TopicBasedLinking {
		out = append(out, "topic_based_linking")
	}
	if c.ContributorOverlapEnabled {
		out = append(out, "contributor_overlap_enabled")
	}
	if c.SharedOrganizationEnabled {
		out = append(out, "shared_organization_enabled")
	}
	if c.CommonStargazersEnabled {
		out = append(out, "common_stargazers_enabled")
	}
	if c.StrictANDLogic {
		out = append(out, "strict_and_logic")
	}
	if c.MinCriteriaRequired > 1 {
		out = append(out, "min_criteria_required")
	}
	if c.UseANDLogic {
		out = append(out, "use_and_logic")
	}
	return out
}
