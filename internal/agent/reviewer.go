package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/tailorloom/tailorloom/internal/llm"
	"github.com/tailorloom/tailorloom/internal/logbook"
	"github.com/tailorloom/tailorloom/internal/model"
)

// fallbackReviewScore is used when a review response cannot be decoded.
// The raw output still reaches the user via ReviewReport.Feedback.
const fallbackReviewScore = 7.0

// Reviewer critiques a tailored resume from a hiring manager's seat.
type Reviewer struct {
	client llm.Client
	log    *logbook.Logbook
}

// NewReviewer builds a reviewer.
func NewReviewer(client llm.Client, log *logbook.Logbook) *Reviewer {
	return &Reviewer{client: client, log: log}
}

// Review scores the tailored resume against the posting. A transport
// failure is an error; an unreadable critique degrades to a default score
// carrying the raw text.
func (r *Reviewer) Review(ctx context.Context, analysis model.JobAnalysis, tailored model.Resume) (model.ReviewReport, error) {
	r.log.Info("reviewing tailored resume for %s", analysis.Posting.Title)

	resp, err := r.client.Complete(ctx, llm.Request{
		System:      r.systemPrompt(analysis),
		User:        r.userMessage(analysis, tailored),
		MaxTokens:   2048,
		Temperature: 0.5,
	})
	if err != nil {
		return model.ReviewReport{}, fmt.Errorf("agent: review: %w", err)
	}

	var report model.ReviewReport
	if err := llm.ExtractJSON(resp, &report); err != nil {
		r.log.Warn("review response unreadable, keeping raw feedback: %v", err)
		return model.ReviewReport{
			OverallScore: fallbackReviewScore,
			Summary:      "Review generated but could not be parsed into structured form.",
			Feedback:     resp,
		}, nil
	}
	if report.OverallScore == 0 {
		report.OverallScore = fallbackReviewScore
	}

	r.log.Info("review complete: %.1f/10 (%s)", report.OverallScore, report.InterviewLikelihood)
	return report, nil
}

func (r *Reviewer) systemPrompt(analysis model.JobAnalysis) string {
	return fmt.Sprintf(`You are a hiring manager reviewing resumes for a %s (%s) position in the %s industry.

Evaluate the resume as you would during real screening:
1. Overall fit for the role on a 0-10 scale
2. Likelihood to invite for interview (High/Medium/Low)
3. Strengths that stand out
4. Weaknesses or missing qualifications
5. Concrete suggestions to improve the resume
6. Red flags, if any
7. ATS keywords the resume covers well

Return a JSON object:
{
    "overall_score": 8.5,
    "interview_likelihood": "High",
    "strengths": ["..."],
    "weaknesses": ["..."],
    "suggestions": ["..."],
    "red_flags": ["..."],
    "positive_keywords": ["..."],
    "summary": "One-paragraph overall assessment"
}

Return ONLY valid JSON.`, analysis.RoleType, analysis.Seniority, orGeneral(analysis.Industry))
}

func (r *Reviewer) userMessage(analysis model.JobAnalysis, resume model.Resume) string {
	return fmt.Sprintf(`Review this resume against the job posting:

JOB POSTING:
- Company: %s
- Title: %s
- Required Skills: %s
- Key Responsibilities: %s

RESUME:
%s`,
		analysis.Posting.Company,
		analysis.Posting.Title,
		joinHead(analysis.RequiredSkills, 10),
		joinHead(analysis.KeyResponsibilities, 5),
		formatResume(resume),
	)
}

// formatResume renders the resume as plain text for review prompts.
func formatResume(r model.Resume) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", r.Name)
	fmt.Fprintf(&b, "Summary: %s\n\n", r.Summary)

	b.WriteString("EXPERIENCE:\n")
	for _, exp := range r.Experience {
		fmt.Fprintf(&b, "%s at %s (%s - %s)\n", exp.Title, exp.Company, exp.StartDate, orPresent(exp.EndDate))
		for _, bullet := range exp.Bullets {
			fmt.Fprintf(&b, "  - %s\n", bullet)
		}
	}

	if len(r.TechnicalSkills) > 0 {
		fmt.Fprintf(&b, "\nTECHNICAL SKILLS: %s\n", strings.Join(r.TechnicalSkills, ", "))
	}
	if len(r.Education) > 0 {
		b.WriteString("\nEDUCATION:\n")
		for _, edu := range r.Education {
			fmt.Fprintf(&b, "  %s, %s\n", edu.Degree, edu.Institution)
		}
	}
	if len(r.Certifications) > 0 {
		fmt.Fprintf(&b, "\nCERTIFICATIONS: %s\n", strings.Join(r.Certifications, ", "))
	}
	return b.String()
}

func orPresent(s string) string {
	if s == "" {
		return "Present"
	}
	return s
}
