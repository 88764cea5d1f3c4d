package response

import (
	"encoding/json"
	"strings"

	"ml-discovery-be/internal/pkg/apperror"
)

// Response is the structured analysis the model must return. Every section is
// required; a missing or empty section invalidates the whole response so the
// caller can retry the full generation.
type Response struct {
	ExecutiveSummary    string              `json:"executive_summary"`
	CompetitiveAnalysis CompetitiveAnalysis `json:"competitive_analysis"`
	ComputeUpside       ComputeUpside       `json:"compute_upside"`
	Strategy            Strategy            `json:"strategy"`
	DiscoveryQuestions  []string            `json:"discovery_questions"`
	PocRecommendations  []string            `json:"poc_recommendations"`
	RisksToAvoid        []string            `json:"risks_to_avoid"`
}

type CompetitiveAnalysis struct {
	CurrentPlatforms    []string `json:"current_platforms"`
	SnowflakeAdvantages []string `json:"snowflake_advantages"`
	CompetitiveRisks    []string `json:"competitive_risks"`
}

type ComputeUpside struct {
	EstimatedWorkloads       string `json:"estimated_workloads"`
	PotentialComputeIncrease string `json:"potential_compute_increase"`
	RevenueOpportunity       string `json:"revenue_opportunity"`
}

type Strategy struct {
	ShortTerm []string `json:"short_term"`
	LongTerm  []string `json:"long_term"`
}

// Parse extracts and validates the JSON object from raw model output. Models
// occasionally wrap the object in markdown fences or commentary, so parsing
// starts at the first brace and ends at the last.
func Parse(raw string) (*Response, error) {
	body := extractObject(raw)
	if body == "" {
		return nil, apperror.New(apperror.KindGenerationError, "response contains no JSON object")
	}

	var resp Response
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		return nil, apperror.Wrap(apperror.KindGenerationError, "malformed response JSON", err)
	}

	if err := validate(&resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func extractObject(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return ""
	}
	return raw[start : end+1]
}

func validate(resp *Response) error {
	missing := func(section string) error {
		return apperror.New(apperror.KindGenerationError, "response missing section: "+section)
	}

	if strings.TrimSpace(resp.ExecutiveSummary) == "" {
		return missing("executive_summary")
	}
	ca := resp.CompetitiveAnalysis
	if len(ca.CurrentPlatforms) == 0 && len(ca.SnowflakeAdvantages) == 0 && len(ca.CompetitiveRisks) == 0 {
		return missing("competitive_analysis")
	}
	cu := resp.ComputeUpside
	if cu.EstimatedWorkloads == "" && cu.PotentialComputeIncrease == "" && cu.RevenueOpportunity == "" {
		return missing("compute_upside")
	}
	if len(resp.Strategy.ShortTerm) == 0 && len(resp.Strategy.LongTerm) == 0 {
		return missing("strategy")
	}
	if len(resp.DiscoveryQuestions) == 0 {
		return missing("discovery_questions")
	}
	if len(resp.PocRecommendations) == 0 {
		return missing("poc_recommendations")
	}
	if len(resp.RisksToAvoid) == 0 {
		return missing("risks_to_avoid")
	}
	return nil
}
