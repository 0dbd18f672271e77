package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/tailorloom/tailorloom/internal/industry"
	"github.com/tailorloom/tailorloom/internal/llm"
	"github.com/tailorloom/tailorloom/internal/logbook"
	"github.com/tailorloom/tailorloom/internal/model"
)

// Focus area names accepted by Tailor.Run.
const (
	FocusSummary  = "summary"
	FocusBullets  = "bullets"
	FocusKeywords = "keywords"
	FocusSkills   = "skills"
)

// Tailoring limits. Only the most recent positions get rewritten, and the
// skills section is capped so keyword stuffing cannot bloat it.
const (
	maxEnhancedPositions  = 3
	maxIntegratedKeywords = 8
	maxAlignedSkills      = 20
	maxCarriedOtherSkills = 5
)

// Tailor rewrites a resume toward an analyzed posting. The original resume
// is never mutated; every change is recorded in the returned diff.
type Tailor struct {
	client  llm.Client
	profile industry.Profile
	log     *logbook.Logbook
}

// NewTailor builds a tailoring agent bound to one industry profile.
func NewTailor(client llm.Client, profile industry.Profile, log *logbook.Logbook) *Tailor {
	return &Tailor{client: client, profile: profile, log: log}
}

// Run tailors base for the analyzed posting. A nil focus means all areas.
// A failed summary rewrite aborts; a failed bullet rewrite for a single
// position keeps that position's original bullets and continues.
func (t *Tailor) Run(ctx context.Context, analysis model.JobAnalysis, base model.Resume, focus []string) (model.Resume, model.ResumeDiff, error) {
	if focus == nil {
		focus = []string{FocusSummary, FocusBullets, FocusKeywords, FocusSkills}
	}
	t.log.Info("tailoring resume for %s (focus: %s)", analysis.Posting.Title, strings.Join(focus, ", "))

	tailored := base.Clone()
	diff := model.ResumeDiff{ChangeDate: time.Now().UTC()}

	for _, area := range focus {
		switch area {
		case FocusSummary:
			summary, err := t.optimizeSummary(ctx, analysis, base)
			if err != nil {
				return model.Resume{}, model.ResumeDiff{}, err
			}
			tailored.Summary = summary
			diff.SummaryChanged = summary != base.Summary
			if diff.SummaryChanged {
				diff.OriginalSummary = base.Summary
				diff.NewSummary = summary
			}
		case FocusBullets:
			t.enhanceBullets(ctx, analysis, base, &tailored, &diff)
		case FocusKeywords:
			diff.KeywordsIntegrated = head(analysis.CriticalKeywords, maxIntegratedKeywords)
		case FocusSkills:
			tailored.TechnicalSkills = t.alignSkills(analysis, tailored)
		default:
			return model.Resume{}, model.ResumeDiff{}, fmt.Errorf("agent: unknown focus area %q", area)
		}
	}

	t.log.Info("tailoring complete: %d tracked changes", diff.TotalChanges())
	return tailored, diff, nil
}

func (t *Tailor) optimizeSummary(ctx context.Context, analysis model.JobAnalysis, base model.Resume) (string, error) {
	t.log.Info("  optimizing professional summary")

	system := fmt.Sprintf(`You are an expert resume writer. Rewrite the professional summary to target a specific role.

Guidelines:
- Keep it to 3-4 sentences
- Lead with the candidate's strongest relevant qualification
- Mirror the posting's language for skills the candidate actually has
- Never invent experience the candidate does not have

Industry tips for the summary section:
%s`, bulleted(t.profile.Tips("summary")))

	user := fmt.Sprintf(`Rewrite this professional summary:

CURRENT SUMMARY:
%s

TARGET ROLE:
%s (%s) in %s

KEY REQUIREMENTS:
%s

CANDIDATE'S ACTUAL SKILLS:
%s

Return just the rewritten summary text, no extra formatting.`,
		base.Summary,
		analysis.RoleType, analysis.Seniority, orGeneral(analysis.Industry),
		joinHead(analysis.RequiredSkills, 8),
		joinHead(base.TechnicalSkills, 12),
	)

	resp, err := t.client.Complete(ctx, llm.Request{
		System:      system,
		User:        user,
		MaxTokens:   512,
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("agent: optimize summary: %w", err)
	}
	return strings.TrimSpace(resp), nil
}

// enhanceBullets rewrites bullets for the most recent positions. Each
// position is one call; a position whose response cannot be decoded keeps
// its original bullets.
func (t *Tailor) enhanceBullets(ctx context.Context, analysis model.JobAnalysis, base model.Resume, tailored *model.Resume, diff *model.ResumeDiff) {
	t.log.Info("  enhancing experience bullet points")

	positions := len(base.Experience)
	if positions > maxEnhancedPositions {
		positions = maxEnhancedPositions
	}

	for i := 0; i < positions; i++ {
		original := base.Experience[i]
		enhanced, err := t.enhancePosition(ctx, analysis, original)
		if err != nil {
			t.log.Warn("bullets for %s at %s kept as-is: %v", original.Title, original.Company, err)
			continue
		}

		tailored.Experience[i].Bullets = enhanced
		for j := range enhanced {
			var before string
			if j < len(original.Bullets) {
				before = original.Bullets[j]
			}
			if before == enhanced[j] {
				continue
			}
			diff.BulletsModified = append(diff.BulletsModified, model.BulletChange{
				PositionIndex: i,
				BulletIndex:   j,
				Original:      before,
				New:           enhanced[j],
			})
		}
	}
}

func (t *Tailor) enhancePosition(ctx context.Context, analysis model.JobAnalysis, exp model.Experience) ([]string, error) {
	system := fmt.Sprintf(`You are an expert resume writer. Rewrite experience bullets to be:

1. Achievement-focused (not responsibility-focused)
2. Start with strong action verbs
3. Include metrics and quantifiable results
4. Relevant to the target role
5. Use industry-appropriate terminology

Guidelines:
- Use action verbs: %s
- Include metrics using patterns like: %s
- Keep each bullet to 1-2 lines
- Make impact clear and measurable

Industry tips for the experience section:
%s

Return the enhanced bullets as a JSON array of strings.`,
		joinHead(t.profile.ActionVerbs, 10),
		joinHead(t.profile.ImpactfulMetrics, 3),
		bulleted(t.profile.Tips("experience")))

	currentBullets, err := json.MarshalIndent(exp.Bullets, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("agent: encode bullets: %w", err)
	}

	user := fmt.Sprintf(`Enhance these experience bullets for the target role:

CURRENT BULLETS:
%s

POSITION:
%s at %s

TARGET ROLE:
%s (%s)

KEY REQUIREMENTS FROM JOB:
%s

RELEVANT SKILLS TO HIGHLIGHT:
%s

Return enhanced bullets as JSON array:`,
		currentBullets,
		exp.Title, exp.Company,
		analysis.RoleType, analysis.Seniority,
		joinHead(analysis.KeyResponsibilities, 5),
		joinHead(analysis.RequiredSkills, 8),
	)

	resp, err := t.client.Complete(ctx, llm.Request{
		System:      system,
		User:        user,
		MaxTokens:   2048,
		Temperature: 0.7,
	})
	if err != nil {
		return nil, err
	}

	var bullets []string
	if err := llm.ExtractJSON(resp, &bullets); err != nil {
		return nil, err
	}
	return bullets, nil
}

// alignSkills reorders the skills section without an LLM call: skills the
// posting asks for come first, then high-priority industry skills the
// candidate already lists. Nothing is invented, only dropped or reordered.
func (t *Tailor) alignSkills(analysis model.JobAnalysis, tailored model.Resume) []string {
	t.log.Info("  aligning skills section")

	wanted := make(map[string]bool, len(analysis.RequiredSkills)+len(analysis.PreferredSkills))
	for _, s := range analysis.RequiredSkills {
		wanted[strings.ToLower(s)] = true
	}
	for _, s := range analysis.PreferredSkills {
		wanted[strings.ToLower(s)] = true
	}

	var matching, other []string
	for _, s := range tailored.TechnicalSkills {
		if wanted[strings.ToLower(s)] {
			matching = append(matching, s)
		} else if t.profile.IsHighPrioritySkill(s) {
			other = append(other, s)
		}
	}

	aligned := append(matching, head(other, maxCarriedOtherSkills)...)
	return head(aligned, maxAlignedSkills)
}

func head(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func bulleted(items []string) string {
	if len(items) == 0 {
		return "(none)"
	}
	var b strings.Builder
	for _, it := range items {
		fmt.Fprintf(&b, "- %s\n", it)
	}
	return strings.TrimRight(b.String(), "\n")
}
