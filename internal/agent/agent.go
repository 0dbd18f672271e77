// Package agent holds the LLM-backed workers behind each pipeline stage:
// job analysis, resume matching, tailoring, quality review, and skills
// discovery. Each agent owns its prompts and decodes its own responses;
// callers only see the structured model types.
package agent

import (
	"fmt"
	"strings"

	"github.com/tailorloom/tailorloom/internal/model"
)

// joinHead joins at most n items with commas. Prompts quote list heads
// rather than whole lists to keep token usage predictable.
func joinHead(items []string, n int) string {
	if len(items) > n {
		items = items[:n]
	}
	return strings.Join(items, ", ")
}

func orGeneral(s string) string {
	if s == "" {
		return "General"
	}
	return s
}

// summarizeExperience renders the parts of a resume the scoring and
// discovery prompts care about: recent positions, top skills, education.
func summarizeExperience(r model.Resume) string {
	var b strings.Builder
	if len(r.Experience) > 0 {
		b.WriteString("RECENT POSITIONS:\n")
		for i, exp := range r.Experience {
			if i >= 3 {
				break
			}
			fmt.Fprintf(&b, "  - %s at %s\n", exp.Title, exp.Company)
		}
	}
	if len(r.TechnicalSkills) > 0 {
		fmt.Fprintf(&b, "\nTECHNICAL SKILLS: %s\n", joinHead(r.TechnicalSkills, 10))
	}
	if len(r.Education) > 0 {
		b.WriteString("\nEDUCATION:\n")
		for _, edu := range r.Education {
			field := edu.FieldOfStudy
			if field == "" {
				field = "N/A"
			}
			fmt.Fprintf(&b, "  - %s in %s\n", edu.Degree, field)
		}
	}
	return b.String()
}
