package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// BulletChange records one rewritten experience bullet, attributed to a
// specific position and bullet slot rather than to bullet content.
type BulletChange struct {
	PositionIndex int    `json:"position_index"`
	BulletIndex   int    `json:"bullet_index"`
	Original      string `json:"original"`
	New           string `json:"new"`
}

// ResumeDiff is the structured account of what the rewrite stage changed.
// It is persisted inside the tailored_resume artifact so a cached rewrite
// always carries its diff.
type ResumeDiff struct {
	OriginalResumeID string `json:"original_resume_id"`
	TailoredResumeID string `json:"tailored_resume_id"`

	SummaryChanged  bool   `json:"summary_changed"`
	OriginalSummary string `json:"original_summary,omitempty"`
	NewSummary      string `json:"new_summary,omitempty"`

	BulletsModified []BulletChange `json:"bullets_modified,omitempty"`

	SkillsAdded     []string `json:"skills_added,omitempty"`
	SkillsRemoved   []string `json:"skills_removed,omitempty"`
	SkillsReordered bool     `json:"skills_reordered"`

	KeywordsIntegrated []string `json:"keywords_integrated,omitempty"`

	ChangeDate    time.Time `json:"change_date"`
	ChangeSummary string    `json:"change_summary,omitempty"`
}

// TotalChanges counts the atomic tracked changes: one for a summary rewrite,
// one per modified bullet, one per added or removed skill.
func (d ResumeDiff) TotalChanges() int {
	total := len(d.BulletsModified) + len(d.SkillsAdded) + len(d.SkillsRemoved)
	if d.SummaryChanged {
		total++
	}
	return total
}

// Validate enforces flag/content consistency: a diff claiming a summary
// rewrite must carry summary text for at least one side. An empty original
// is legal (a resume may start without a summary and gain one).
func (d ResumeDiff) Validate() error {
	if d.SummaryChanged && d.OriginalSummary == "" && d.NewSummary == "" {
		return fmt.Errorf("model: diff claims summary change without any summary text")
	}
	for _, bc := range d.BulletsModified {
		if bc.PositionIndex < 0 || bc.BulletIndex < 0 {
			return fmt.Errorf("model: diff bullet change has negative index")
		}
	}
	return nil
}

// DiffFromJSON decodes a diff reconstructed from a cached rewrite artifact.
func DiffFromJSON(data []byte) (ResumeDiff, error) {
	var d ResumeDiff
	if err := json.Unmarshal(data, &d); err != nil {
		return ResumeDiff{}, fmt.Errorf("model: decode diff: %w", err)
	}
	if err := d.Validate(); err != nil {
		return ResumeDiff{}, err
	}
	return d, nil
}
