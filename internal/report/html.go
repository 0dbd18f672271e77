package report

import (
	"fmt"
	"html/template"
	"os"
	"time"

	"github.com/tailorloom/tailorloom/internal/diff"
	"github.com/tailorloom/tailorloom/internal/model"
)

// htmlSection is one taxonomy section prepared for the template.
type htmlSection struct {
	Title   string
	Changes []diff.Change
}

type htmlData struct {
	Company     string
	Title       string
	GeneratedAt string

	Headline        string
	TotalChanges    int
	ImportanceScore int
	Reasoning       string
	Sections        []htmlSection

	SummaryChanged  bool
	OriginalSummary string
	NewSummary      string

	HasReview bool
	Review    model.ReviewReport
}

// WriteHTML writes a standalone change report to path.
func WriteHTML(path string, analysis model.JobAnalysis, s diff.Summary, d model.ResumeDiff, review *model.ReviewReport) error {
	data := htmlData{
		Company:         analysis.Posting.Company,
		Title:           analysis.Posting.Title,
		GeneratedAt:     time.Now().Format("2006-01-02 15:04"),
		Headline:        s.Headline,
		TotalChanges:    s.TotalChanges,
		ImportanceScore: s.ImportanceScore,
		Reasoning:       s.Reasoning,
		SummaryChanged:  d.SummaryChanged,
		OriginalSummary: d.OriginalSummary,
		NewSummary:      d.NewSummary,
	}
	for _, name := range diff.Sections {
		if changes := s.Sections[name]; len(changes) > 0 {
			data.Sections = append(data.Sections, htmlSection{Title: sectionTitles[name], Changes: changes})
		}
	}
	if review != nil {
		data.HasReview = true
		data.Review = *review
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: create %s: %w", path, err)
	}
	defer f.Close()

	if err := htmlReport.Execute(f, data); err != nil {
		return fmt.Errorf("report: render %s: %w", path, err)
	}
	return nil
}

var htmlReport = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Resume Transformation Report</title>
<style>
  body { font-family: -apple-system, "Segoe UI", sans-serif; margin: 0; background: #f4f5f7; color: #1f2430; }
  .wrap { max-width: 860px; margin: 0 auto; padding: 24px; }
  .header { background: #2d3a5a; color: #fff; border-radius: 8px; padding: 20px 24px; }
  .header h1 { margin: 0 0 4px; font-size: 22px; }
  .header .meta { color: #aab4cc; font-size: 14px; }
  .card { background: #fff; border-radius: 8px; padding: 16px 20px; margin-top: 16px; box-shadow: 0 1px 3px rgba(0,0,0,.08); }
  .score { font-size: 28px; font-weight: 700; color: #e08a2e; }
  h3 { margin: 0 0 8px; font-size: 16px; color: #2d3a5a; }
  ul { margin: 4px 0; padding-left: 20px; }
  li { margin: 4px 0; }
  .reason { color: #6b7280; font-size: 13px; }
  .before { background: #fdecea; padding: 10px 12px; border-radius: 6px; }
  .after { background: #e8f5e9; padding: 10px 12px; border-radius: 6px; margin-top: 8px; }
  .label { font-size: 12px; text-transform: uppercase; letter-spacing: .05em; color: #6b7280; }
</style>
</head>
<body>
<div class="wrap">
  <div class="header">
    <h1>Resume Transformation Report</h1>
    <div class="meta">{{.Title}} at {{.Company}} &middot; generated {{.GeneratedAt}}</div>
  </div>

  <div class="card">
    <h3>{{.Headline}}</h3>
    <div class="score">{{.ImportanceScore}}/10</div>
    <div class="reason">{{.TotalChanges}} tracked changes{{if .Reasoning}} &mdash; {{.Reasoning}}{{end}}</div>
  </div>

  {{range .Sections}}
  <div class="card">
    <h3>{{.Title}}</h3>
    <ul>
      {{range .Changes}}
      <li>{{.Description}}{{if .Reason}}<div class="reason">{{.Reason}}</div>{{end}}</li>
      {{end}}
    </ul>
  </div>
  {{end}}

  {{if .SummaryChanged}}
  <div class="card">
    <h3>Summary rewrite</h3>
    <div class="label">Before</div>
    <div class="before">{{.OriginalSummary}}</div>
    <div class="label" style="margin-top:8px">After</div>
    <div class="after">{{.NewSummary}}</div>
  </div>
  {{end}}

  {{if .HasReview}}
  <div class="card">
    <h3>Quality review</h3>
    <div class="score">{{printf "%.1f" .Review.OverallScore}}/10</div>
    {{if .Review.InterviewLikelihood}}<div class="reason">Interview likelihood: {{.Review.InterviewLikelihood}}</div>{{end}}
    {{if .Review.Strengths}}<h3 style="margin-top:12px">Strengths</h3><ul>{{range .Review.Strengths}}<li>{{.}}</li>{{end}}</ul>{{end}}
    {{if .Review.Weaknesses}}<h3>Weaknesses</h3><ul>{{range .Review.Weaknesses}}<li>{{.}}</li>{{end}}</ul>{{end}}
    {{if .Review.Suggestions}}<h3>Suggestions</h3><ul>{{range .Review.Suggestions}}<li>{{.}}</li>{{end}}</ul>{{end}}
    {{if .Review.Summary}}<div class="reason">{{.Review.Summary}}</div>{{end}}
  </div>
  {{end}}
</div>
</body>
</html>
`))
