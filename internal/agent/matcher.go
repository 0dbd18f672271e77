package agent

import (
	"context"
	"fmt"
	"sort"

	"github.com/tailorloom/tailorloom/internal/llm"
	"github.com/tailorloom/tailorloom/internal/logbook"
	"github.com/tailorloom/tailorloom/internal/model"
)

// defaultMatchScore is used when a scoring call fails or its response
// cannot be decoded. A middling score keeps the entry selectable without
// letting a transient failure promote it over cleanly scored resumes.
const defaultMatchScore = 0.5

// Matcher ranks pool resumes against an analyzed posting. Match results
// reflect the pool's current contents and are never cached.
type Matcher struct {
	client llm.Client
	log    *logbook.Logbook
}

// NewMatcher builds a matcher.
func NewMatcher(client llm.Client, log *logbook.Logbook) *Matcher {
	return &Matcher{client: client, log: log}
}

type matchPayload struct {
	MatchScore float64  `json:"match_score"`
	Reasoning  string   `json:"reasoning"`
	Strengths  []string `json:"strengths"`
	Gaps       []string `json:"gaps"`
}

// Match scores every pool entry and returns the results sorted best-first.
// An empty pool yields an empty slice, not an error.
func (m *Matcher) Match(ctx context.Context, analysis model.JobAnalysis, pool []model.PoolEntry) []model.MatchResult {
	m.log.Info("matching %d pool resumes against %s", len(pool), analysis.Posting.Title)

	results := make([]model.MatchResult, 0, len(pool))
	for _, entry := range pool {
		result := m.score(ctx, analysis, entry)
		results = append(results, result)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > 0 {
		m.log.Info("best match: %s (score %.2f)", results[0].Metadata.ResumeID, results[0].Score)
	}
	return results
}

func (m *Matcher) score(ctx context.Context, analysis model.JobAnalysis, entry model.PoolEntry) model.MatchResult {
	result := model.MatchResult{Resume: entry.Resume, Metadata: entry.Metadata}

	resp, err := m.client.Complete(ctx, llm.Request{
		System:      matchSystemPrompt,
		User:        m.userMessage(analysis, entry),
		MaxTokens:   1024,
		Temperature: 0.3,
	})
	if err != nil {
		m.log.Warn("scoring %s failed, defaulting to %.1f: %v", entry.Metadata.ResumeID, defaultMatchScore, err)
		result.Score = defaultMatchScore
		return result
	}

	var payload matchPayload
	if err := llm.ExtractJSON(resp, &payload); err != nil {
		m.log.Warn("match score for %s unreadable, defaulting to %.1f: %v", entry.Metadata.ResumeID, defaultMatchScore, err)
		result.Score = defaultMatchScore
		return result
	}

	result.Score = clamp01(payload.MatchScore)
	result.Reasoning = payload.Reasoning
	result.Strengths = payload.Strengths
	result.Gaps = payload.Gaps
	return result
}

const matchSystemPrompt = `You are a resume matching expert. Your task is to score how well a resume matches a job posting.

Consider:
1. Skills overlap (required vs preferred)
2. Years of experience alignment
3. Industry experience relevance
4. Education requirements
5. Role type compatibility
6. Seniority level match
7. Transferable skills for career transitions

Return a JSON object with:
{
    "match_score": 0.85,
    "reasoning": "Brief explanation of the score",
    "strengths": ["strength 1", "strength 2"],
    "gaps": ["gap 1", "gap 2"]
}

match_score is a float between 0.0 and 1.0. Return ONLY valid JSON.`

func (m *Matcher) userMessage(analysis model.JobAnalysis, entry model.PoolEntry) string {
	recentRole := "N/A"
	if len(entry.Resume.Experience) > 0 {
		recentRole = entry.Resume.Experience[0].Title
	}
	degree := "N/A"
	if len(entry.Resume.Education) > 0 {
		degree = entry.Resume.Education[0].Degree
	}
	years := analysis.YearsExperience
	if years == "" {
		years = "Not specified"
	}

	return fmt.Sprintf(`Score this resume match:

JOB POSTING:
- Company: %s
- Title: %s
- Role Type: %s
- Seniority: %s
- Industry: %s
- Required Skills: %s
- Preferred Skills: %s
- Years Experience: %s

RESUME:
- Name: %s
- Summary: %s
- Technical Skills: %s
- Experience: %d positions
- Most Recent Role: %s
- Education: %s

RESUME METADATA:
- Target Role: %s
- Target Industry: %s
- Tags: %s

Provide your match score and analysis as JSON.`,
		analysis.Posting.Company,
		analysis.Posting.Title,
		analysis.RoleType,
		analysis.Seniority,
		analysis.Industry,
		joinHead(analysis.RequiredSkills, 10),
		joinHead(analysis.PreferredSkills, 10),
		years,
		entry.Resume.Name,
		truncate(entry.Resume.Summary, 200),
		joinHead(entry.Resume.TechnicalSkills, 15),
		len(entry.Resume.Experience),
		recentRole,
		degree,
		orNA(entry.Metadata.TargetRole),
		orNA(entry.Metadata.TargetIndustry),
		joinHead(entry.Metadata.Tags, 10),
	)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
