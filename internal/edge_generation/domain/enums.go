package domain

type CriterionKind string

const (
	CriterionTopic        CriterionKind = "topic"
	CriterionContributor  CriterionKind = "contributor_overlap"
	CriterionOrganization CriterionKind = "shared_organization"
	CriterionStargazer    CriterionKind = "stargazer_overlap"
)

// CriterionOrder is the canonical evaluation order. Merged edges list their
// satisfied criteria in this order regardless of how candidates arrive.
func CriterionOrder() []CriterionKind {
	return []CriterionKind{
		CriterionTopic,
		CriterionContributor,
		CriterionOrganization,
		CriterionStargazer,
	}
}

type EdgeType string

const (
	EdgeTypeSingle   EdgeType = "single"
	EdgeTypeCombined EdgeType = "combined"
)

// Edge attribute keys as they appear on the externally visible graph.
const (
	AttrEdgeType          = "edge_type"
	AttrCriteriaSatisfied = "criteria_satisfied"
	AttrWeight            = "weight"
	AttrSharedTopics      = "shared_topics"
	AttrSharedContrib     = "shared_contributors"
	AttrOrganization      = "organization"
	AttrSharedStargazers  = "shared_stargazers"
)

// EvidenceAttr maps a criterion kind to the edge attribute its evidence is
// stored under.
func EvidenceAttr(k CriterionKind) string {
	switch k {
	case CriterionTopic:
		return AttrSharedTopics
	case CriterionContributor:
		return AttrSharedContrib
	case CriterionOrganization:
		return AttrOrganization
	case CriterionStargazer:
		return AttrSharedStargazers
	default:
		return string(k)
	}
}
