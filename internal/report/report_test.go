package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tailorloom/tailorloom/internal/diff"
	"github.com/tailorloom/tailorloom/internal/model"
)

func sampleSummary() diff.Summary {
	return diff.Summary{
		Headline:        "Tailored resume with 3 changes across 2 sections",
		TotalChanges:    3,
		ImportanceScore: 6,
		Reasoning:       "Targeted the posting's reporting requirements.",
		Sections: map[string][]diff.Change{
			diff.SectionSummary: {
				{Type: "rewrite", Description: "Rewrote professional summary", Importance: "high", Reason: "First impression for the hiring manager"},
			},
			diff.SectionSkills: {
				{Type: "added", Description: "Added skills: Epic, HL7", Importance: "medium"},
				{Type: "removed", Description: "Removed skills: Photoshop", Importance: "low"},
			},
		},
	}
}

func TestChangeSummaryListsSectionsInOrder(t *testing.T) {
	out := ChangeSummary(sampleSummary())
	if !strings.Contains(out, "Impact score: 6/10") {
		t.Fatalf("score missing:\n%s", out)
	}
	summaryIdx := strings.Index(out, "Professional Summary")
	skillsIdx := strings.Index(out, "Skills")
	if summaryIdx < 0 || skillsIdx < 0 {
		t.Fatalf("section headings missing:\n%s", out)
	}
	if summaryIdx > skillsIdx {
		t.Fatal("sections out of taxonomy order")
	}
	if !strings.Contains(out, "Added skills: Epic, HL7") {
		t.Fatalf("change description missing:\n%s", out)
	}
}

func TestMatchesEmpty(t *testing.T) {
	out := Matches(nil)
	if !strings.Contains(out, "No resumes") {
		t.Fatalf("empty pool message missing: %q", out)
	}
}

func TestReviewRendersFallbackFeedback(t *testing.T) {
	out := Review(model.ReviewReport{OverallScore: 7.0, Feedback: "raw critique text"})
	if !strings.Contains(out, "7.0/10") || !strings.Contains(out, "raw critique text") {
		t.Fatalf("fallback review render:\n%s", out)
	}
}

func TestWriteHTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.html")
	analysis := model.JobAnalysis{
		Posting: model.JobPosting{Company: "Initech", Title: "Data Analyst"},
	}
	d := model.ResumeDiff{
		SummaryChanged:  true,
		OriginalSummary: "Old summary with <tags>",
		NewSummary:      "New summary",
	}
	review := &model.ReviewReport{OverallScore: 8.5, InterviewLikelihood: "High", Strengths: []string{"Epic experience"}}

	if err := WriteHTML(path, analysis, sampleSummary(), d, review); err != nil {
		t.Fatalf("WriteHTML: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	html := string(data)
	if !strings.Contains(html, "Data Analyst at Initech") {
		t.Fatalf("header missing:\n%s", html)
	}
	if !strings.Contains(html, "8.5/10") {
		t.Fatal("review score missing")
	}
	if strings.Contains(html, "<tags>") {
		t.Fatal("summary text not escaped")
	}
	if !strings.Contains(html, "&lt;tags&gt;") {
		t.Fatal("escaped summary text missing")
	}
}

func TestWriteHTMLWithoutReview(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.html")
	if err := WriteHTML(path, model.JobAnalysis{}, sampleSummary(), model.ResumeDiff{}, nil); err != nil {
		t.Fatalf("WriteHTML: %v", err)
	}
	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "Quality review") {
		t.Fatal("review section rendered without a review")
	}
}
