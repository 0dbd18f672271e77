// Package diff computes the structural delta between a resume before and
// after tailoring and classifies how much the changes matter to a reviewer.
package diff

import (
	"fmt"
	"strings"
	"time"

	"github.com/tailorloom/tailorloom/internal/model"
)

// Section names are a fixed taxonomy; anything unrecognized lands in
// SectionOther so the total-change accounting never drops a change.
const (
	SectionSummary    = "summary"
	SectionExperience = "experience"
	SectionSkills     = "skills"
	SectionEducation  = "education"
	SectionOther      = "other"
)

// Sections lists the taxonomy in display order.
var Sections = []string{SectionSummary, SectionExperience, SectionSkills, SectionEducation, SectionOther}

// maxImportance bounds the importance score.
const maxImportance = 10

// summaryBonus reflects that a rewritten summary dominates a reviewer's
// first impression.
const summaryBonus = 3

// Change is one entry in a section of the summary report.
type Change struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Importance  string `json:"importance"`
	Reason      string `json:"reason"`
}

// Summary is the derived report over a ResumeDiff.
type Summary struct {
	Headline        string              `json:"summary"`
	Sections        map[string][]Change `json:"section_changes"`
	TotalChanges    int                 `json:"total_changes"`
	ImportanceScore int                 `json:"importance_score"`
	Reasoning       string              `json:"reasoning"`
}

// Compute finalizes the change log the rewrite stage accumulated: it derives
// the skills delta by comparing the two documents, fills in summary
// before/after text, stamps the change date, and validates flag/content
// consistency.
func Compute(original, tailored model.Resume, log model.ResumeDiff) (model.ResumeDiff, error) {
	d := log

	if d.SummaryChanged || original.Summary != tailored.Summary {
		d.SummaryChanged = original.Summary != tailored.Summary
	}
	if d.SummaryChanged {
		d.OriginalSummary = original.Summary
		d.NewSummary = tailored.Summary
	} else {
		d.OriginalSummary = ""
		d.NewSummary = ""
	}

	added, removed, reordered := skillsDelta(original.TechnicalSkills, tailored.TechnicalSkills)
	d.SkillsAdded = added
	d.SkillsRemoved = removed
	d.SkillsReordered = reordered

	if d.ChangeDate.IsZero() {
		d.ChangeDate = time.Now().UTC()
	}
	if d.ChangeSummary == "" {
		d.ChangeSummary = fmt.Sprintf("%d tracked changes", d.TotalChanges())
	}

	if err := d.Validate(); err != nil {
		return model.ResumeDiff{}, err
	}
	return d, nil
}

// skillsDelta compares skills as case-insensitive sets, then checks whether
// the surviving skills kept their relative order.
func skillsDelta(before, after []string) (added, removed []string, reordered bool) {
	norm := func(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
	beforeSet := make(map[string]bool, len(before))
	for _, s := range before {
		beforeSet[norm(s)] = true
	}
	afterSet := make(map[string]bool, len(after))
	for _, s := range after {
		afterSet[norm(s)] = true
	}
	for _, s := range after {
		if !beforeSet[norm(s)] {
			added = append(added, s)
		}
	}
	for _, s := range before {
		if !afterSet[norm(s)] {
			removed = append(removed, s)
		}
	}

	var keptBefore, keptAfter []string
	for _, s := range before {
		if afterSet[norm(s)] {
			keptBefore = append(keptBefore, norm(s))
		}
	}
	for _, s := range after {
		if beforeSet[norm(s)] {
			keptAfter = append(keptAfter, norm(s))
		}
	}
	if len(keptBefore) == len(keptAfter) {
		for i := range keptBefore {
			if keptBefore[i] != keptAfter[i] {
				reordered = true
				break
			}
		}
	}
	return added, removed, reordered
}

// Summarize groups the diff's changes into the fixed section taxonomy and
// scores their importance. A diff with no tracked changes summarizes as "no
// material changes" rather than erroring.
func Summarize(d model.ResumeDiff, analysis model.JobAnalysis) Summary {
	sections := map[string][]Change{}
	for _, name := range Sections {
		sections[name] = nil
	}

	if d.SummaryChanged {
		sections[SectionSummary] = append(sections[SectionSummary], Change{
			Type:        "modified",
			Description: "Professional summary rewritten to target the role",
			Importance:  "high",
			Reason:      fmt.Sprintf("Aligns the candidate's background with %s requirements", orUnknown(analysis.RoleType)),
		})
	}

	if n := len(d.BulletsModified); n > 0 {
		sections[SectionExperience] = append(sections[SectionExperience], Change{
			Type:        "enhanced",
			Description: fmt.Sprintf("%d bullet points enhanced with metrics and impact", n),
			Importance:  "high",
			Reason:      "Demonstrates measurable achievements matching the job responsibilities",
		})
	}

	if n := len(d.SkillsAdded); n > 0 {
		sections[SectionSkills] = append(sections[SectionSkills], Change{
			Type:        "added",
			Description: fmt.Sprintf("%d skills added: %s", n, strings.Join(head(d.SkillsAdded, 5), ", ")),
			Importance:  "critical",
			Reason:      "Addresses screening keywords and required qualifications",
		})
	}
	if n := len(d.SkillsRemoved); n > 0 {
		sections[SectionSkills] = append(sections[SectionSkills], Change{
			Type:        "removed",
			Description: fmt.Sprintf("%d less relevant skills deprioritized", n),
			Importance:  "medium",
			Reason:      "Focuses the resume on job-specific requirements",
		})
	}
	if d.SkillsReordered {
		sections[SectionSkills] = append(sections[SectionSkills], Change{
			Type:        "reordered",
			Description: "Skills reordered by relevance to the posting",
			Importance:  "medium",
			Reason:      "Prioritizes what the screen and the hiring manager read first",
		})
	}

	if n := len(d.KeywordsIntegrated); n > 0 {
		sections[SectionOther] = append(sections[SectionOther], Change{
			Type:        "integrated",
			Description: fmt.Sprintf("%d screening keywords woven into the document", n),
			Importance:  "medium",
			Reason:      "Improves automated screening coverage without keyword stuffing",
		})
	}

	total := d.TotalChanges()
	score := total
	if d.SummaryChanged {
		score += summaryBonus
	}
	if score > maxImportance {
		score = maxImportance
	}

	headline := fmt.Sprintf("Made %d strategic changes to target the %s role", total, orUnknown(analysis.RoleType))
	if total == 0 {
		headline = "No material changes"
	}

	return Summary{
		Headline:        headline,
		Sections:        sections,
		TotalChanges:    total,
		ImportanceScore: score,
		Reasoning:       reasoning(d, analysis),
	}
}

func reasoning(d model.ResumeDiff, analysis model.JobAnalysis) string {
	var reasons []string
	if d.SummaryChanged {
		reasons = append(reasons, fmt.Sprintf(
			"Repositioned the profile to align with %s %s requirements",
			strings.TrimSpace(analysis.Seniority), orUnknown(analysis.RoleType)))
	}
	if len(d.BulletsModified) > 0 {
		reasons = append(reasons, "Enhanced achievement statements to demonstrate impact against key responsibilities")
	}
	if len(d.SkillsAdded) > 0 {
		reasons = append(reasons, "Added critical keywords to pass automated screening")
	}
	if len(d.KeywordsIntegrated) > 0 {
		reasons = append(reasons, fmt.Sprintf("Integrated %d industry-specific terms", len(d.KeywordsIntegrated)))
	}
	if len(reasons) == 0 {
		return "Minor refinements to improve presentation"
	}
	return strings.Join(reasons, ". ")
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "target"
	}
	return s
}

func head(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
