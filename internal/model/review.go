package model

import (
	"encoding/json"
	"fmt"
)

// MatchResult pairs a pool resume with the matcher's relevance score.
type MatchResult struct {
	Resume   Resume         `json:"-"`
	Metadata ResumeMetadata `json:"metadata"`
	Score    float64        `json:"score"`

	Reasoning string   `json:"reasoning,omitempty"`
	Strengths []string `json:"strengths,omitempty"`
	Gaps      []string `json:"gaps,omitempty"`
}

// ReviewReport is the hiring-manager critique the review stage produces.
type ReviewReport struct {
	OverallScore        float64  `json:"overall_score"`
	InterviewLikelihood string   `json:"interview_likelihood,omitempty"`
	Strengths           []string `json:"strengths,omitempty"`
	Weaknesses          []string `json:"weaknesses,omitempty"`
	Suggestions         []string `json:"suggestions,omitempty"`
	RedFlags            []string `json:"red_flags,omitempty"`
	PositiveKeywords    []string `json:"positive_keywords,omitempty"`
	Summary             string   `json:"summary,omitempty"`

	// Feedback carries the raw model output when the critique could not be
	// decoded into the fields above.
	Feedback string `json:"feedback,omitempty"`
}

// ReviewFromJSON decodes a cached or freshly produced review.
func ReviewFromJSON(data []byte) (ReviewReport, error) {
	var r ReviewReport
	if err := json.Unmarshal(data, &r); err != nil {
		return ReviewReport{}, fmt.Errorf("model: decode review: %w", err)
	}
	return r, nil
}
