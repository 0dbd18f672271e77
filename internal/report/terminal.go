// Package report renders run results for humans: a styled terminal
// change summary and a standalone HTML report for sharing.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tailorloom/tailorloom/internal/diff"
	"github.com/tailorloom/tailorloom/internal/model"
)

var (
	headStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF"))

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#A8CC8C"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	scoreStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFB454"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))
)

// sectionTitles maps taxonomy names to display headings.
var sectionTitles = map[string]string{
	diff.SectionSummary:    "Professional Summary",
	diff.SectionExperience: "Experience",
	diff.SectionSkills:     "Skills",
	diff.SectionEducation:  "Education",
	diff.SectionOther:      "Other",
}

// ChangeSummary renders the structural diff summary for the terminal.
func ChangeSummary(s diff.Summary) string {
	var b strings.Builder
	b.WriteString(headStyle.Render(s.Headline))
	b.WriteString("\n")
	b.WriteString(scoreStyle.Render(fmt.Sprintf("Impact score: %d/10", s.ImportanceScore)))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  (%d changes)", s.TotalChanges)))
	b.WriteString("\n")

	for _, name := range diff.Sections {
		changes := s.Sections[name]
		if len(changes) == 0 {
			continue
		}
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(sectionTitles[name]))
		b.WriteString("\n")
		for _, c := range changes {
			fmt.Fprintf(&b, "  - %s\n", c.Description)
			if c.Reason != "" {
				b.WriteString(dimStyle.Render(fmt.Sprintf("    %s", c.Reason)))
				b.WriteString("\n")
			}
		}
	}

	if s.Reasoning != "" {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(s.Reasoning))
		b.WriteString("\n")
	}
	return boxStyle.Render(strings.TrimRight(b.String(), "\n"))
}

// Matches renders the ranked match list.
func Matches(matches []model.MatchResult) string {
	if len(matches) == 0 {
		return warnStyle.Render("No resumes in the pool matched this posting.")
	}
	var b strings.Builder
	b.WriteString(headStyle.Render("Resume matches"))
	b.WriteString("\n")
	for i, m := range matches {
		fmt.Fprintf(&b, "%d. %s ", i+1, m.Metadata.ResumeID)
		b.WriteString(scoreStyle.Render(fmt.Sprintf("%.2f", m.Score)))
		b.WriteString("\n")
		if m.Reasoning != "" {
			b.WriteString(dimStyle.Render("   " + m.Reasoning))
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// Review renders the quality review verdict.
func Review(r model.ReviewReport) string {
	var b strings.Builder
	b.WriteString(headStyle.Render("Quality review"))
	b.WriteString("\n")
	b.WriteString(scoreStyle.Render(fmt.Sprintf("%.1f/10", r.OverallScore)))
	if r.InterviewLikelihood != "" {
		b.WriteString(dimStyle.Render("  interview likelihood: " + r.InterviewLikelihood))
	}
	b.WriteString("\n")

	writeList := func(title string, items []string, style lipgloss.Style) {
		if len(items) == 0 {
			return
		}
		b.WriteString("\n")
		b.WriteString(style.Render(title))
		b.WriteString("\n")
		for _, item := range items {
			fmt.Fprintf(&b, "  - %s\n", item)
		}
	}
	writeList("Strengths", r.Strengths, sectionStyle)
	writeList("Weaknesses", r.Weaknesses, warnStyle)
	writeList("Suggestions", r.Suggestions, sectionStyle)
	writeList("Red flags", r.RedFlags, warnStyle)

	if r.Feedback != "" {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(r.Feedback))
		b.WriteString("\n")
	}
	return boxStyle.Render(strings.TrimRight(b.String(), "\n"))
}
