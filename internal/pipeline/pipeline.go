// Package pipeline sequences the tailoring stages: analyze the posting,
// match a resume from the pool, rewrite it, and review the result. Each
// LLM-backed stage consults the artifact cache before running and writes
// through after; matching alone always runs fresh because it depends on
// the pool's current contents.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tailorloom/tailorloom/internal/cache"
	"github.com/tailorloom/tailorloom/internal/diff"
	"github.com/tailorloom/tailorloom/internal/logbook"
	"github.com/tailorloom/tailorloom/internal/model"
)

// StageError tags a failure with the stage that produced it. The pipeline
// aborts on the first stage failure; there are no retries.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("pipeline: stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// Analyzer extracts a structured analysis from a raw posting.
type Analyzer interface {
	Analyze(ctx context.Context, posting model.JobPosting) (model.JobAnalysis, error)
}

// Matcher ranks pool entries against an analysis, best first.
type Matcher interface {
	Match(ctx context.Context, analysis model.JobAnalysis, pool []model.PoolEntry) []model.MatchResult
}

// Rewriter tailors a resume toward an analysis.
type Rewriter interface {
	Run(ctx context.Context, analysis model.JobAnalysis, base model.Resume, focus []string) (model.Resume, model.ResumeDiff, error)
}

// Reviewer critiques a tailored resume.
type Reviewer interface {
	Review(ctx context.Context, analysis model.JobAnalysis, tailored model.Resume) (model.ReviewReport, error)
}

// Options controls one pipeline run.
type Options struct {
	// ResumeID selects a pool resume explicitly, skipping the match
	// stage. The selection is recorded with a pinned score of 1.0.
	ResumeID string

	// Select picks from ranked matches, e.g. an interactive picker.
	// Nil means take the top match.
	Select func(matches []model.MatchResult) (model.MatchResult, bool)

	// Focus restricts tailoring to specific areas. Nil means all.
	Focus []string

	// SkipReview stops the run after the rewrite stage.
	SkipReview bool
}

// Result is everything one run produced, including which stages were
// served from cache.
type Result struct {
	AnalysisKey string
	ResumeKey   string

	Analysis model.JobAnalysis
	Matches  []model.MatchResult
	Selected *model.MatchResult

	Tailored model.Resume
	Diff     model.ResumeDiff
	Review   model.ReviewReport

	CacheHits map[string]bool
}

// Orchestrator wires the stage agents to the artifact cache.
type Orchestrator struct {
	store    *cache.Store
	analyzer Analyzer
	matcher  Matcher
	rewriter Rewriter
	reviewer Reviewer
	log      *logbook.Logbook
}

// New builds an orchestrator.
func New(store *cache.Store, analyzer Analyzer, matcher Matcher, rewriter Rewriter, reviewer Reviewer, log *logbook.Logbook) *Orchestrator {
	return &Orchestrator{
		store:    store,
		analyzer: analyzer,
		matcher:  matcher,
		rewriter: rewriter,
		reviewer: reviewer,
		log:      log,
	}
}

// rewriteArtifact is the persisted payload of the rewrite stage. The diff
// travels inside the same artifact as the resume so a cached rewrite can
// always reconstruct what it changed.
type rewriteArtifact struct {
	Resume model.Resume     `json:"tailored_resume"`
	Diff   model.ResumeDiff `json:"diff"`
}

// Run executes the pipeline for one posting against the given pool. An
// empty pool (or a selector that declines every match) ends the run after
// the match stage with no error; the caller reads the empty selection
// from the result.
func (o *Orchestrator) Run(ctx context.Context, posting model.JobPosting, pool []model.PoolEntry, opts Options) (*Result, error) {
	res := &Result{
		AnalysisKey: cache.HashString(posting.Description),
		CacheHits:   make(map[string]bool),
	}
	o.log.Stage(cache.StageJobAnalysis, "run starting, key %s", res.AnalysisKey)

	if err := o.analyze(ctx, posting, res); err != nil {
		return nil, err
	}

	if err := o.selectResume(ctx, pool, opts, res); err != nil {
		return nil, err
	}
	if res.Selected == nil {
		o.log.Warn("no resume selected, stopping after match stage")
		return res, nil
	}
	res.ResumeKey = res.AnalysisKey + "_" + res.Selected.Metadata.ResumeID

	if err := o.rewrite(ctx, opts, res); err != nil {
		return nil, err
	}

	if opts.SkipReview {
		return res, nil
	}
	if err := o.review(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

// AnalyzePosting runs only the analysis stage, through the same cache as
// a full run. Callers that need the posting's analysis outside a full
// pipeline run (skill gap exploration) share cached artifacts this way.
func (o *Orchestrator) AnalyzePosting(ctx context.Context, posting model.JobPosting) (model.JobAnalysis, error) {
	res := &Result{
		AnalysisKey: cache.HashString(posting.Description),
		CacheHits:   make(map[string]bool),
	}
	if err := o.analyze(ctx, posting, res); err != nil {
		return model.JobAnalysis{}, err
	}
	return res.Analysis, nil
}

func (o *Orchestrator) analyze(ctx context.Context, posting model.JobPosting, res *Result) error {
	if data, ok := o.store.Load(cache.StageJobAnalysis, res.AnalysisKey); ok {
		analysis, err := model.AnalysisFromJSON(data)
		if err == nil {
			o.log.Stage(cache.StageJobAnalysis, "cache hit for %s", res.AnalysisKey)
			res.Analysis = analysis
			res.CacheHits[cache.StageJobAnalysis] = true
			return nil
		}
		o.log.Warn("cached analysis %s unreadable, re-analyzing: %v", res.AnalysisKey, err)
	}

	analysis, err := o.analyzer.Analyze(ctx, posting)
	if err != nil {
		return &StageError{Stage: cache.StageJobAnalysis, Err: err}
	}
	res.Analysis = analysis
	o.save(cache.StageJobAnalysis, res.AnalysisKey, analysis, analysis.RoleType)
	return nil
}

// selectResume resolves which pool resume to tailor: an explicit id pins
// the score to 1.0 and skips matching entirely; otherwise every entry is
// scored fresh.
func (o *Orchestrator) selectResume(ctx context.Context, pool []model.PoolEntry, opts Options, res *Result) error {
	if opts.ResumeID != "" {
		for _, entry := range pool {
			if entry.Metadata.ResumeID != opts.ResumeID {
				continue
			}
			selected := model.MatchResult{
				Resume:    entry.Resume,
				Metadata:  entry.Metadata,
				Score:     1.0,
				Reasoning: "explicitly selected",
			}
			res.Matches = []model.MatchResult{selected}
			res.Selected = &selected
			return nil
		}
		return &StageError{
			Stage: "match",
			Err:   fmt.Errorf("resume %q not found in pool", opts.ResumeID),
		}
	}

	if len(pool) == 0 {
		return nil
	}

	res.Matches = o.matcher.Match(ctx, res.Analysis, pool)
	if len(res.Matches) == 0 {
		return nil
	}

	pick := opts.Select
	if pick == nil {
		pick = func(matches []model.MatchResult) (model.MatchResult, bool) {
			return matches[0], true
		}
	}
	if selected, ok := pick(res.Matches); ok {
		res.Selected = &selected
	}
	return nil
}

func (o *Orchestrator) rewrite(ctx context.Context, opts Options, res *Result) error {
	if data, ok := o.store.Load(cache.StageTailoredResume, res.ResumeKey); ok {
		var art rewriteArtifact
		if err := json.Unmarshal(data, &art); err == nil && art.Resume.Validate() == nil {
			o.log.Stage(cache.StageTailoredResume, "cache hit for %s", res.ResumeKey)
			res.Tailored = art.Resume
			res.Diff = art.Diff
			res.CacheHits[cache.StageTailoredResume] = true
			return nil
		}
		o.log.Warn("cached rewrite %s unreadable, re-tailoring", res.ResumeKey)
	}

	tailored, changeLog, err := o.rewriter.Run(ctx, res.Analysis, res.Selected.Resume, opts.Focus)
	if err != nil {
		return &StageError{Stage: cache.StageTailoredResume, Err: err}
	}
	changeLog.OriginalResumeID = res.Selected.Metadata.ResumeID
	finalized, err := diff.Compute(res.Selected.Resume, tailored, changeLog)
	if err != nil {
		return &StageError{Stage: cache.StageTailoredResume, Err: err}
	}
	res.Tailored = tailored
	res.Diff = finalized
	o.save(cache.StageTailoredResume, res.ResumeKey, rewriteArtifact{Resume: tailored, Diff: finalized}, finalized.ChangeSummary)
	return nil
}

func (o *Orchestrator) review(ctx context.Context, res *Result) error {
	if data, ok := o.store.Load(cache.StageQualityReview, res.ResumeKey); ok {
		review, err := model.ReviewFromJSON(data)
		if err == nil {
			o.log.Stage(cache.StageQualityReview, "cache hit for %s", res.ResumeKey)
			res.Review = review
			res.CacheHits[cache.StageQualityReview] = true
			return nil
		}
		o.log.Warn("cached review %s unreadable, re-reviewing: %v", res.ResumeKey, err)
	}

	review, err := o.reviewer.Review(ctx, res.Analysis, res.Tailored)
	if err != nil {
		return &StageError{Stage: cache.StageQualityReview, Err: err}
	}
	res.Review = review
	o.save(cache.StageQualityReview, res.ResumeKey, review, review.Summary)
	return nil
}

// save writes a stage result through to the cache. A write failure is
// logged and swallowed: the run already has its result in memory, and the
// next run simply recomputes.
func (o *Orchestrator) save(stage, key string, payload any, preview string) {
	data, err := json.Marshal(payload)
	if err != nil {
		o.log.Warn("encoding %s/%s for cache: %v", stage, key, err)
		return
	}
	if err := o.store.Save(stage, key, data, preview); err != nil {
		o.log.Warn("caching %s/%s: %v", stage, key, err)
	}
}
