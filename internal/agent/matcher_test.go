package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/tailorloom/tailorloom/internal/llm"
	"github.com/tailorloom/tailorloom/internal/model"
)

func testAnalysis() model.JobAnalysis {
	return model.JobAnalysis{
		Posting:        testPosting(),
		RoleType:       "Clinical Data Analyst",
		Seniority:      "Mid",
		Industry:       "healthcare",
		RequiredSkills: []string{"SQL", "Epic"},
	}
}

func poolOf(ids ...string) []model.PoolEntry {
	entries := make([]model.PoolEntry, 0, len(ids))
	for _, id := range ids {
		entries = append(entries, model.PoolEntry{
			Resume:   testResume(),
			Metadata: model.ResumeMetadata{ResumeID: id},
		})
	}
	return entries
}

func TestMatcherRanksBestFirst(t *testing.T) {
	mock := llm.NewMock(
		`{"match_score": 0.4, "reasoning": "partial overlap"}`,
		`{"match_score": 0.9, "reasoning": "strong fit", "strengths": ["Epic"]}`,
	)
	matcher := NewMatcher(mock, nil)

	results := matcher.Match(context.Background(), testAnalysis(), poolOf("weak", "strong"))
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	if results[0].Metadata.ResumeID != "strong" || results[0].Score != 0.9 {
		t.Fatalf("best result = %s (%.2f)", results[0].Metadata.ResumeID, results[0].Score)
	}
	if results[1].Metadata.ResumeID != "weak" {
		t.Fatalf("second result = %s", results[1].Metadata.ResumeID)
	}
	if mock.CallCount() != 2 {
		t.Fatalf("one call per resume expected, got %d", mock.CallCount())
	}
}

func TestMatcherEmptyPool(t *testing.T) {
	mock := llm.NewMock()
	matcher := NewMatcher(mock, nil)

	results := matcher.Match(context.Background(), testAnalysis(), nil)
	if len(results) != 0 {
		t.Fatalf("expected empty results, got %d", len(results))
	}
	if mock.CallCount() != 0 {
		t.Fatalf("no calls expected for empty pool, got %d", mock.CallCount())
	}
}

func TestMatcherDefaultsScoreOnClientError(t *testing.T) {
	mock := llm.NewMock().FailWith(errors.New("rate limited"))
	matcher := NewMatcher(mock, nil)

	results := matcher.Match(context.Background(), testAnalysis(), poolOf("only"))
	if len(results) != 1 {
		t.Fatalf("results = %d", len(results))
	}
	if results[0].Score != defaultMatchScore {
		t.Fatalf("score = %v, want default %v", results[0].Score, defaultMatchScore)
	}
}

func TestMatcherDefaultsScoreOnUnreadableResponse(t *testing.T) {
	mock := llm.NewMock("definitely a good fit, trust me")
	matcher := NewMatcher(mock, nil)

	results := matcher.Match(context.Background(), testAnalysis(), poolOf("only"))
	if results[0].Score != defaultMatchScore {
		t.Fatalf("score = %v, want default %v", results[0].Score, defaultMatchScore)
	}
}

func TestMatcherClampsOutOfRangeScore(t *testing.T) {
	mock := llm.NewMock(`{"match_score": 1.7}`, `{"match_score": -0.2}`)
	matcher := NewMatcher(mock, nil)

	results := matcher.Match(context.Background(), testAnalysis(), poolOf("a", "b"))
	if results[0].Score != 1.0 {
		t.Fatalf("high score not clamped: %v", results[0].Score)
	}
	if results[1].Score != 0.0 {
		t.Fatalf("low score not clamped: %v", results[1].Score)
	}
}
