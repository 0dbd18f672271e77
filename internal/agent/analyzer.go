package agent

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/tailorloom/tailorloom/internal/industry"
	"github.com/tailorloom/tailorloom/internal/llm"
	"github.com/tailorloom/tailorloom/internal/logbook"
	"github.com/tailorloom/tailorloom/internal/model"
)

// Analyzer extracts a structured JobAnalysis from a raw posting.
type Analyzer struct {
	client  llm.Client
	profile industry.Profile
	log     *logbook.Logbook
}

// NewAnalyzer builds an analyzer bound to one industry profile.
func NewAnalyzer(client llm.Client, profile industry.Profile, log *logbook.Logbook) *Analyzer {
	return &Analyzer{client: client, profile: profile, log: log}
}

// analysisPayload is the shape the extraction prompt asks for. The posting
// and timestamp are stamped locally, never trusted from the response.
type analysisPayload struct {
	RoleType  string `json:"role_type"`
	Seniority string `json:"seniority"`
	Industry  string `json:"industry"`

	RequiredSkills  []string `json:"required_skills"`
	PreferredSkills []string `json:"preferred_skills"`
	TechnicalSkills []string `json:"technical_skills"`
	SoftSkills      []string `json:"soft_skills"`

	CriticalKeywords  []string `json:"critical_keywords"`
	SecondaryKeywords []string `json:"secondary_keywords"`

	EducationRequirements []string `json:"education_requirements"`
	Certifications        []string `json:"certifications"`

	YearsExperience    string   `json:"years_experience"`
	IndustryExperience []string `json:"industry_experience"`

	CultureKeywords []string `json:"culture_keywords"`
	Values          []string `json:"values"`

	KeyResponsibilities []string `json:"key_responsibilities"`
	ConfidenceScore     float64  `json:"confidence_score"`
}

// Analyze runs the extraction. Low temperature keeps repeat analyses of the
// same posting close to deterministic.
func (a *Analyzer) Analyze(ctx context.Context, posting model.JobPosting) (model.JobAnalysis, error) {
	a.log.Info("analyzing job: %s at %s", posting.Title, posting.Company)

	resp, err := a.client.Complete(ctx, llm.Request{
		System:      a.systemPrompt(),
		User:        a.userMessage(posting),
		MaxTokens:   4096,
		Temperature: 0.3,
	})
	if err != nil {
		return model.JobAnalysis{}, fmt.Errorf("agent: analyze %s at %s: %w", posting.Title, posting.Company, err)
	}

	var payload analysisPayload
	if err := llm.ExtractJSON(resp, &payload); err != nil {
		return model.JobAnalysis{}, fmt.Errorf("agent: analyze %s at %s: %w", posting.Title, posting.Company, err)
	}

	analysis := model.JobAnalysis{
		Posting:               posting,
		RoleType:              orUnknown(payload.RoleType),
		Seniority:             orUnknown(payload.Seniority),
		Industry:              orUnknown(payload.Industry),
		RequiredSkills:        payload.RequiredSkills,
		PreferredSkills:       payload.PreferredSkills,
		TechnicalSkills:       payload.TechnicalSkills,
		SoftSkills:            payload.SoftSkills,
		CriticalKeywords:      payload.CriticalKeywords,
		SecondaryKeywords:     payload.SecondaryKeywords,
		EducationRequirements: payload.EducationRequirements,
		Certifications:        payload.Certifications,
		YearsExperience:       payload.YearsExperience,
		IndustryExperience:    payload.IndustryExperience,
		CultureKeywords:       payload.CultureKeywords,
		Values:                payload.Values,
		KeyResponsibilities:   payload.KeyResponsibilities,
		AnalyzedAt:            time.Now().UTC(),
		ConfidenceScore:       payload.ConfidenceScore,
	}
	if analysis.ConfidenceScore == 0 {
		analysis.ConfidenceScore = 0.8
	}

	a.log.Info("analysis complete: %s (%s)", analysis.RoleType, analysis.Seniority)
	return analysis, nil
}

func (a *Analyzer) systemPrompt() string {
	var industryContext string
	if a.profile.Industry != "" {
		var b strings.Builder
		fmt.Fprintf(&b, "You are analyzing jobs in the %s industry.\n", a.profile.DisplayName)
		if len(a.profile.Acronyms) > 0 {
			b.WriteString("\nKey industry terminology to recognize:\n")
			acronyms := make([]string, 0, len(a.profile.Acronyms))
			for acronym := range a.profile.Acronyms {
				acronyms = append(acronyms, acronym)
			}
			// Sorted so the same profile always produces the same prompt.
			sort.Strings(acronyms)
			for _, acronym := range head(acronyms, 20) {
				fmt.Fprintf(&b, "  %s: %s\n", acronym, a.profile.Acronyms[acronym])
			}
		}
		if skills := a.profile.HighPrioritySkills(); len(skills) > 0 {
			fmt.Fprintf(&b, "\nHigh-priority skills in this industry: %s\n", joinHead(skills, 30))
		}
		if len(a.profile.PrimaryRoles) > 0 {
			fmt.Fprintf(&b, "\nCommon role titles: %s\n", strings.Join(a.profile.PrimaryRoles, ", "))
		}
		industryContext = b.String()
	}

	return fmt.Sprintf(`You are a job posting analyzer. Your task is to extract structured information from job postings.

%s

Analyze the job posting and extract the following information:

1. Role type (e.g., "Data Analyst", "Software Engineer", "Clinical Data Analyst")
2. Seniority level (Entry, Mid, Senior, Lead, Principal)
3. Industry (healthcare, tech, finance, etc.)
4. Required skills (must-have skills explicitly stated)
5. Preferred skills (nice-to-have skills)
6. Technical skills (programming languages, tools, systems)
7. Soft skills (communication, leadership, etc.)
8. Critical keywords (most important terms for ATS)
9. Secondary keywords (supporting terms for ATS)
10. Education requirements
11. Certifications mentioned
12. Years of experience required
13. Industry experience needed
14. Company culture keywords
15. Company values
16. Key responsibilities

Return your analysis as a JSON object with these fields. Be thorough but concise.
Extract exact phrases from the job posting when possible.

Return ONLY valid JSON, no additional text or markdown formatting.`, industryContext)
}

func (a *Analyzer) userMessage(posting model.JobPosting) string {
	return fmt.Sprintf(`Analyze this job posting:

Company: %s
Title: %s
Location: %s

Description:
%s`, posting.Company, posting.Title, posting.Location, posting.Description)
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
