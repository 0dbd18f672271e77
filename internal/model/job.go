package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// JobPosting is the raw target posting as supplied by the user.
type JobPosting struct {
	URL         string    `json:"url"`
	Company     string    `json:"company"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location,omitempty"`
	SalaryRange string    `json:"salary_range,omitempty"`
	FetchedAt   time.Time `json:"fetched_date"`
}

// JobAnalysis is the structured record the analysis stage extracts from a
// posting. It is the primary input to every downstream stage.
type JobAnalysis struct {
	Posting JobPosting `json:"job_posting"`

	RoleType  string `json:"role_type"`
	Seniority string `json:"seniority"`
	Industry  string `json:"industry"`

	RequiredSkills  []string `json:"required_skills"`
	PreferredSkills []string `json:"preferred_skills,omitempty"`
	TechnicalSkills []string `json:"technical_skills,omitempty"`
	SoftSkills      []string `json:"soft_skills,omitempty"`

	CriticalKeywords  []string `json:"critical_keywords,omitempty"`
	SecondaryKeywords []string `json:"secondary_keywords,omitempty"`

	EducationRequirements []string `json:"education_requirements,omitempty"`
	Certifications        []string `json:"certifications,omitempty"`

	YearsExperience    string   `json:"years_experience,omitempty"`
	IndustryExperience []string `json:"industry_experience,omitempty"`

	CultureKeywords []string `json:"culture_keywords,omitempty"`
	Values          []string `json:"values,omitempty"`

	KeyResponsibilities []string `json:"key_responsibilities,omitempty"`

	AnalyzedAt      time.Time `json:"analysis_date"`
	ConfidenceScore float64   `json:"confidence_score"`
}

// AnalysisFromJSON decodes a cached or freshly extracted analysis.
func AnalysisFromJSON(data []byte) (JobAnalysis, error) {
	var a JobAnalysis
	if err := json.Unmarshal(data, &a); err != nil {
		return JobAnalysis{}, fmt.Errorf("model: decode job analysis: %w", err)
	}
	return a, nil
}
