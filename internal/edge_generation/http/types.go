package http

import (
	"github.com/deepgit-labs/deepgit-backend/internal/edge_generation/criteria"
	"github.com/deepgit-labs/deepgit-backend/internal/edge_generation/domain"
)

// CriteriaDTO mirrors criteria.Config with optional fields so absent keys
// fall back to the entry point's defaults instead of Go zero values.
type CriteriaDTO struct {
	TopicBasedLinking           *bool `json:"topic_based_linking,omitempty"`
	TopicThreshold              *int  `json:"topic_threshold,omitempty"`
	ContributorOverlapEnabled   *bool `json:"contributor_overlap_enabled,omitempty"`
	ContributorOverlapThreshold *int  `json:"contributor_overlap_threshold,omitempty"`
	SharedOrganizationEnabled   *bool `json:"shared_organization_enabled,omitempty"`
	CommonStargazersEnabled     *bool `json:"common_stargazers_enabled,omitempty"`
	StargazerOverlapThreshold   *int  `json:"stargazer_overlap_threshold,omitempty"`
	UseANDLogic                 *bool `json:"use_and_logic,omitempty"`
	MinCriteriaRequired         *int  `json:"min_criteria_required,omitempty"`
	StrictANDLogic              *bool `json:"strict_and_logic,omitempty"`
}

// Apply overlays the request's explicit options onto a base config.
func (d CriteriaDTO) Apply(base criteria.Config) criteria.Config {
	if d.TopicBasedLinking != nil {
		base.TopicBasedLinking = *d.TopicBasedLinking
	}
	if d.TopicThreshold != nil {
		base.TopicThreshold = *d.TopicThreshold
	}
	if d.ContributorOverlapEnabled != nil {
		base.ContributorOverlapEnabled = *d.ContributorOverlapEnabled
	}
	if d.ContributorOverlapThreshold != nil {
		base.ContributorOverlapThreshold = *d.ContributorOverlapThreshold
	}
	if d.SharedOrganizationEnabled != nil {
		base.SharedOrganizationEnabled = *d.SharedOrganizationEnabled
	}
	if d.CommonStargazersEnabled != nil {
		base.CommonStargazersEnabled = *d.CommonStargazersEnabled
	}
	if d.StargazerOverlapThreshold != nil {
		base.StargazerOverlapThreshold = *d.StargazerOverlapThreshold
	}
	if d.UseANDLogic != nil {
		base.UseANDLogic = *d.UseANDLogic
	}
	if d.MinCriteriaRequired != nil {
		base.MinCriteriaRequired = *d.MinCriteriaRequired
	}
	if d.StrictANDLogic != nil {
		base.StrictANDLogic = *d.StrictANDLogic
	}
	return base
}

type GenerateRequest struct {
	Topics   []string    `json:"topics"`
	Criteria CriteriaDTO `json:"criteria"`
}

type NodeDTO struct {
	ID           string         `json:"id"`
	Topics       string         `json:"topics"`
	Contributors string         `json:"contributors"`
	Stargazers   string         `json:"stargazers"`
	Attrs        map[string]any `json:"attrs,omitempty"`
}

type RebuildRequest struct {
	Nodes    []NodeDTO   `json:"nodes"`
	Criteria CriteriaDTO `json:"criteria"`
}

type ExportNodesRequest struct {
	Topics []string `json:"topics"`
}

func (r RebuildRequest) toGraph() *domain.Graph {
	g := domain.NewGraph()
	for _, n := range r.Nodes {
		g.Nodes[n.ID] = &domain.Node{
			ID:           n.ID,
			Topics:       n.Topics,
			Contributors: n.Contributors,
			Stargazers:   n.Stargazers,
			Attrs:        n.Attrs,
		}
	}
	return g
}
