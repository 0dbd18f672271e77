package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/tailorloom/tailorloom/internal/llm"
	"github.com/tailorloom/tailorloom/internal/logbook"
	"github.com/tailorloom/tailorloom/internal/model"
)

// Gap analysis limits: surface only the head of each list so the
// interactive session stays short.
const (
	maxMissingRequired  = 10
	maxMissingPreferred = 5
)

// A discovery session walks at most this many skills from each list.
const (
	exploreRequired  = 3
	explorePreferred = 2
)

// GapAnalysis lists posting skills the resume does not surface anywhere.
type GapAnalysis struct {
	MissingRequired  []string `json:"missing_required"`
	MissingPreferred []string `json:"missing_preferred"`
}

// Explore returns the skills a discovery session should walk: the top
// missing required skills first, then preferred. The result is a fresh
// slice, never a view into the gap lists.
func (g GapAnalysis) Explore() []string {
	out := make([]string, 0, exploreRequired+explorePreferred)
	out = append(out, head(g.MissingRequired, exploreRequired)...)
	out = append(out, head(g.MissingPreferred, explorePreferred)...)
	return out
}

// DiscoveryGuide is one round of coaching questions for a missing skill.
type DiscoveryGuide struct {
	Questions            []string `json:"questions"`
	Context              string   `json:"context"`
	TransferableExamples []string `json:"transferable_examples"`
	RelatedSkills        []string `json:"related_skills"`
}

// Evaluation is the verdict on a user's answer about a missing skill.
type Evaluation struct {
	HasSkill             bool     `json:"has_skill"`
	Confidence           float64  `json:"confidence"`
	Reasoning            string   `json:"reasoning"`
	BulletSuggestions    []string `json:"bullet_suggestions"`
	NeedsMoreExploration bool     `json:"needs_more_exploration"`
	FollowUpQuestion     string   `json:"follow_up_question"`
}

// Discovery is the interactive coach that surfaces transferable skills the
// candidate has but the resume never mentions. Its results are driven by
// user input, so nothing here is ever cached.
type Discovery struct {
	client llm.Client
	log    *logbook.Logbook
}

// NewDiscovery builds a discovery agent.
func NewDiscovery(client llm.Client, log *logbook.Logbook) *Discovery {
	return &Discovery{client: client, log: log}
}

// AnalyzeGaps compares posting skills against every skill surface of the
// resume. Pure set arithmetic, no LLM call.
func (d *Discovery) AnalyzeGaps(analysis model.JobAnalysis, resume model.Resume) GapAnalysis {
	have := make(map[string]bool)
	for _, group := range [][]string{resume.TechnicalSkills, resume.SoftSkills, resume.Tools} {
		for _, s := range group {
			have[strings.ToLower(s)] = true
		}
	}
	for _, exp := range resume.Experience {
		for _, s := range exp.Technologies {
			have[strings.ToLower(s)] = true
		}
	}

	var gaps GapAnalysis
	for _, s := range analysis.RequiredSkills {
		if !have[strings.ToLower(s)] {
			gaps.MissingRequired = append(gaps.MissingRequired, s)
		}
	}
	for _, s := range analysis.PreferredSkills {
		if !have[strings.ToLower(s)] {
			gaps.MissingPreferred = append(gaps.MissingPreferred, s)
		}
	}
	gaps.MissingRequired = head(gaps.MissingRequired, maxMissingRequired)
	gaps.MissingPreferred = head(gaps.MissingPreferred, maxMissingPreferred)

	d.log.Info("skill gaps: %d required, %d preferred missing", len(gaps.MissingRequired), len(gaps.MissingPreferred))
	return gaps
}

// Guide produces coaching questions for one missing skill. When the
// response cannot be decoded it falls back to generic questions rather
// than failing: the session should keep moving.
func (d *Discovery) Guide(ctx context.Context, skill string, analysis model.JobAnalysis, resume model.Resume) DiscoveryGuide {
	d.log.Info("generating discovery questions for: %s", skill)

	system := fmt.Sprintf(`You are a career coach specializing in identifying transferable skills.

Your role is to help job seekers discover experiences that demonstrate skills they didn't realize they had.

Guidelines:
1. Ask open-ended questions about past experiences
2. Look for indirect evidence of the skill
3. Consider volunteer work, academic projects, hobbies, and life experiences
4. Frame questions to prompt specific examples
5. Be encouraging and creative in finding connections

Target Role: %s (%s)
Industry: %s`, analysis.RoleType, analysis.Seniority, orGeneral(analysis.Industry))

	user := fmt.Sprintf(`Help me discover if the candidate has experience with: %s

CANDIDATE'S BACKGROUND:
%s

WHY THIS SKILL MATTERS FOR THE JOB:
Key responsibilities: %s
Required skills: %s

Generate a JSON response with:
{
  "questions": ["three open-ended questions exploring related or adjacent experience"],
  "context": "Brief explanation of why this skill is important for the role",
  "transferable_examples": ["ways other experiences might demonstrate this skill"],
  "related_skills": ["related_skill_1", "related_skill_2"]
}`, skill, summarizeExperience(resume), joinHead(analysis.KeyResponsibilities, 3), joinHead(analysis.RequiredSkills, 5))

	resp, err := d.client.Complete(ctx, llm.Request{
		System:      system,
		User:        user,
		MaxTokens:   2048,
		Temperature: 0.8,
	})
	if err == nil {
		var guide DiscoveryGuide
		if err := llm.ExtractJSON(resp, &guide); err == nil {
			return guide
		}
	}
	if err != nil {
		d.log.Warn("discovery questions for %s failed, using generic set: %v", skill, err)
	}
	return genericGuide(skill, analysis)
}

func genericGuide(skill string, analysis model.JobAnalysis) DiscoveryGuide {
	return DiscoveryGuide{
		Questions: []string{
			fmt.Sprintf("Have you ever worked on a project that required %s, even informally?", skill),
			fmt.Sprintf("Can you describe a situation where you had to learn something similar to %s?", skill),
			fmt.Sprintf("What experiences have you had that might relate to %s?", skill),
		},
		Context: fmt.Sprintf("This skill is important for the %s role.", analysis.RoleType),
		TransferableExamples: []string{
			"Academic projects or coursework",
			"Volunteer work or community involvement",
			"Personal projects or hobbies",
			"On-the-job training or self-study",
		},
	}
}

// Evaluate judges whether the user's answer demonstrates the skill. A
// transport error is returned; an unreadable verdict degrades to
// needs-more-exploration.
func (d *Discovery) Evaluate(ctx context.Context, skill, answer string, analysis model.JobAnalysis) (Evaluation, error) {
	d.log.Info("evaluating response for: %s", skill)

	system := fmt.Sprintf(`You are an expert resume writer and skills analyst.

Evaluate whether the candidate's response demonstrates they have (or can demonstrate) the target skill.

Be generous in finding connections - look for:
1. Direct evidence of the skill
2. Transferable experiences
3. Learning ability and adaptability
4. Adjacent skills that translate

Target Role: %s
Industry Context: %s`, analysis.RoleType, orGeneral(analysis.Industry))

	user := fmt.Sprintf(`Evaluate this response for skill: %s

USER'S RESPONSE:
%s

JOB CONTEXT:
Role: %s
Key responsibilities: %s

Provide evaluation as JSON:
{
  "has_skill": true,
  "confidence": 0.8,
  "reasoning": "Explanation of your evaluation",
  "bullet_suggestions": ["Suggested resume bullet point"],
  "needs_more_exploration": false,
  "follow_up_question": "Optional follow-up question if more exploration is needed"
}`, skill, answer, analysis.RoleType, joinHead(analysis.KeyResponsibilities, 3))

	resp, err := d.client.Complete(ctx, llm.Request{
		System:      system,
		User:        user,
		MaxTokens:   1536,
		Temperature: 0.5,
	})
	if err != nil {
		return Evaluation{}, fmt.Errorf("agent: evaluate %s: %w", skill, err)
	}

	var eval Evaluation
	if err := llm.ExtractJSON(resp, &eval); err != nil {
		d.log.Warn("evaluation for %s unreadable: %v", skill, err)
		return Evaluation{
			Reasoning:            "Could not evaluate response",
			NeedsMoreExploration: true,
		}, nil
	}
	return eval, nil
}

// ApplyDiscoveries merges confirmed skills and bullets into a copy of the
// resume. Skills land in the technical skills list when not already there;
// bullets attach to the most recent position.
func ApplyDiscoveries(resume model.Resume, skills, bullets []string) model.Resume {
	enhanced := resume.Clone()

	have := make(map[string]bool, len(enhanced.TechnicalSkills))
	for _, s := range enhanced.TechnicalSkills {
		have[strings.ToLower(s)] = true
	}
	for _, s := range skills {
		if !have[strings.ToLower(s)] {
			enhanced.TechnicalSkills = append(enhanced.TechnicalSkills, s)
			have[strings.ToLower(s)] = true
		}
	}

	if len(bullets) > 0 && len(enhanced.Experience) > 0 {
		enhanced.Experience[0].Bullets = append(enhanced.Experience[0].Bullets, bullets...)
	}
	return enhanced
}

// SuggestBullet writes one polished resume bullet for a confirmed skill.
func (d *Discovery) SuggestBullet(ctx context.Context, skill, userContext string, analysis model.JobAnalysis) (string, error) {
	system := `You are an expert resume writer.

Create a strong, achievement-focused resume bullet point that:
1. Starts with an action verb
2. Includes the skill naturally
3. Shows impact or results
4. Fits the target role
5. Sounds professional and authentic

Keep it to 1-2 lines maximum.`

	user := fmt.Sprintf(`Create a resume bullet point:

SKILL TO HIGHLIGHT: %s

CANDIDATE'S EXPERIENCE:
%s

TARGET ROLE: %s

Return just the bullet point text, no extra formatting.`, skill, userContext, analysis.RoleType)

	resp, err := d.client.Complete(ctx, llm.Request{
		System:      system,
		User:        user,
		MaxTokens:   256,
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("agent: suggest bullet for %s: %w", skill, err)
	}
	return strings.Trim(strings.TrimSpace(resp), "•- "), nil
}
