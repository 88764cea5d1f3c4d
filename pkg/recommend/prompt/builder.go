package prompt

import (
	"strings"

	"ml-discovery-be/internal/entity"
	"ml-discovery-be/pkg/matcher"
)

// SectionedBuilder assembles the single analysis prompt: customer profile,
// matched reference snippets, uploaded discovery material, then the response
// contract. Section labels are fixed so the model output stays parseable.
type SectionedBuilder struct {
	profile    *entity.CustomerProfile
	uploadText string
	matches    []matcher.Match
}

func NewSectionedBuilder(profile *entity.CustomerProfile, uploadText string, matches []matcher.Match) *SectionedBuilder {
	return &SectionedBuilder{
		profile:    profile,
		uploadText: uploadText,
		matches:    matches,
	}
}

func (b *SectionedBuilder) Build() string {
	var prompt strings.Builder

	b.writeRole(&prompt)
	b.writeProfile(&prompt)
	b.writeReferences(&prompt)
	b.writeUploads(&prompt)
	b.writeResponseContract(&prompt)

	return prompt.String()
}

func (b *SectionedBuilder) writeRole(prompt *strings.Builder) {
	prompt.WriteString("<task>\n")
	prompt.WriteString("You are an expert Snowflake sales consultant helping an Account Executive win ML workloads.\n")
	prompt.WriteString("Analyze the customer below and produce concrete, actionable guidance grounded in the reference material.\n")
	prompt.WriteString("</task>\n\n")
}

func (b *SectionedBuilder) writeProfile(prompt *strings.Builder) {
	prompt.WriteString("<customer_profile>\n")
	prompt.WriteString("Company: " + b.profile.CompanyName + "\n")
	prompt.WriteString("Industry: " + b.profile.Industry + "\n")
	prompt.WriteString("Size: " + b.profile.SizeBucket + "\n")
	prompt.WriteString("ML maturity: " + b.profile.MaturityLevel + "\n")
	writeList(prompt, "Current platforms", b.profile.CurrentPlatforms)
	writeList(prompt, "Use cases", b.profile.UseCases)
	writeList(prompt, "Pain points", b.profile.PainPoints)
	prompt.WriteString("</customer_profile>\n\n")
}

func (b *SectionedBuilder) writeReferences(prompt *strings.Builder) {
	if len(b.matches) == 0 {
		return
	}

	prompt.WriteString("<reference_knowledge>\n")
	for _, m := range b.matches {
		rec := m.Record
		prompt.WriteString("[" + rec.Category + "] " + rec.Title + "\n")
		body := rec.Summary
		if body == "" {
			body = rec.BodyText
		}
		prompt.WriteString(body + "\n\n")
	}
	prompt.WriteString("</reference_knowledge>\n\n")
}

func (b *SectionedBuilder) writeUploads(prompt *strings.Builder) {
	if strings.TrimSpace(b.uploadText) == "" {
		return
	}
	prompt.WriteString("<discovery_material>\n")
	prompt.WriteString(b.uploadText)
	prompt.WriteString("\n</discovery_material>\n\n")
}

func (b *SectionedBuilder) writeResponseContract(prompt *strings.Builder) {
	prompt.WriteString("Respond with ONLY a JSON object in exactly this format, no prose before or after:\n")
	prompt.WriteString(`{
  "executive_summary": "Brief 3-sentence summary of the opportunity",
  "competitive_analysis": {
    "current_platforms": ["list of identified competing platforms"],
    "snowflake_advantages": ["specific advantages Snowflake offers"],
    "competitive_risks": ["potential obstacles or risks"]
  },
  "compute_upside": {
    "estimated_workloads": "Description of ML workloads that could move to Snowflake",
    "potential_compute_increase": "Estimated percentage increase in compute usage",
    "revenue_opportunity": "Qualitative assessment of revenue potential"
  },
  "strategy": {
    "short_term": ["immediate next steps (30-90 days)"],
    "long_term": ["strategic initiatives (6-12 months)"]
  },
  "discovery_questions": ["key questions to ask in next customer conversation"],
  "poc_recommendations": ["specific proof-of-concept ideas"],
  "risks_to_avoid": ["things to be careful about or avoid"]
}`)
	prompt.WriteString("\n\nBe specific, actionable, and grounded in Snowflake's ML capabilities. Reference similar customer success stories where relevant.")
}

func writeList(prompt *strings.Builder, label string, values []string) {
	if len(values) == 0 {
		return
	}
	prompt.WriteString(label + ": " + strings.Join(values, ", ") + "\n")
}
