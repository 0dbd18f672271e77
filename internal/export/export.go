// Package export persists tailored resumes: a JSON document that can
// rejoin the pool, a Markdown rendering for humans, and a metadata
// sidecar linking the export back to its base resume and posting.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tailorloom/tailorloom/internal/model"
)

// Exporter writes tailored resumes and their metadata sidecars.
type Exporter struct {
	tailoredDir string
	metadataDir string
	now         func() time.Time
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithClock overrides the timestamp source, for deterministic ids in tests.
func WithClock(clock func() time.Time) Option {
	return func(e *Exporter) { e.now = clock }
}

// New builds an exporter over the tailored and metadata directories.
func New(tailoredDir, metadataDir string, opts ...Option) *Exporter {
	e := &Exporter{tailoredDir: tailoredDir, metadataDir: metadataDir, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Result reports where an export landed.
type Result struct {
	Metadata     model.ResumeMetadata
	ResumePath   string
	MarkdownPath string
	MetadataPath string
}

// Export writes the tailored resume plus its sidecar. The id combines a
// timestamp, the company, and a uuid fragment so concurrent exports for
// the same posting never collide.
func (e *Exporter) Export(resume model.Resume, analysis model.JobAnalysis, baseResumeID string, matchScore float64) (Result, error) {
	now := e.now()
	id := fmt.Sprintf("%s_%s_%s",
		now.Format("20060102_150405"),
		safeName(analysis.Posting.Company),
		strings.Split(uuid.NewString(), "-")[0],
	)

	meta := model.ResumeMetadata{
		ResumeID:       id,
		CreatedAt:      now,
		BaseResumeID:   baseResumeID,
		Company:        analysis.Posting.Company,
		JobTitle:       analysis.Posting.Title,
		TargetRole:     analysis.RoleType,
		TargetIndustry: analysis.Industry,
		KeySkills:      analysis.RequiredSkills,
		ATSOptimized:   true,
		MatchScore:     matchScore,
	}

	for _, dir := range []string{e.tailoredDir, e.metadataDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return Result{}, fmt.Errorf("export: ensure %s: %w", dir, err)
		}
	}

	res := Result{
		Metadata:     meta,
		ResumePath:   filepath.Join(e.tailoredDir, id+".json"),
		MarkdownPath: filepath.Join(e.tailoredDir, id+".md"),
		MetadataPath: filepath.Join(e.metadataDir, id+".json"),
	}
	meta.FilePath = res.ResumePath
	res.Metadata = meta

	resumeJSON, err := json.MarshalIndent(resume, "", "  ")
	if err != nil {
		return Result{}, fmt.Errorf("export: encode resume: %w", err)
	}
	if err := os.WriteFile(res.ResumePath, resumeJSON, 0644); err != nil {
		return Result{}, fmt.Errorf("export: write %s: %w", res.ResumePath, err)
	}

	if err := os.WriteFile(res.MarkdownPath, []byte(Markdown(resume)), 0644); err != nil {
		return Result{}, fmt.Errorf("export: write %s: %w", res.MarkdownPath, err)
	}

	metaJSON, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return Result{}, fmt.Errorf("export: encode metadata: %w", err)
	}
	if err := os.WriteFile(res.MetadataPath, metaJSON, 0644); err != nil {
		return Result{}, fmt.Errorf("export: write %s: %w", res.MetadataPath, err)
	}

	return res, nil
}

// Markdown renders a resume as a single Markdown document.
func Markdown(r model.Resume) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", r.Name)

	contact := []string{r.Email}
	if r.Phone != "" {
		contact = append(contact, r.Phone)
	}
	if r.Location != "" {
		contact = append(contact, r.Location)
	}
	b.WriteString(strings.Join(contact, " | "))
	b.WriteString("\n")
	if r.LinkedIn != "" {
		fmt.Fprintf(&b, "LinkedIn: %s\n", r.LinkedIn)
	}
	if r.GitHub != "" {
		fmt.Fprintf(&b, "GitHub: %s\n", r.GitHub)
	}
	b.WriteString("\n")

	if r.Summary != "" {
		b.WriteString("## Professional Summary\n\n")
		b.WriteString(r.Summary)
		b.WriteString("\n\n")
	}

	if len(r.TechnicalSkills) > 0 {
		b.WriteString("## Technical Skills\n\n")
		b.WriteString(strings.Join(r.TechnicalSkills, " · "))
		b.WriteString("\n\n")
	}

	if len(r.Experience) > 0 {
		b.WriteString("## Professional Experience\n\n")
		for _, exp := range r.Experience {
			end := exp.EndDate
			if end == "" {
				end = "Present"
			}
			fmt.Fprintf(&b, "### %s | %s\n", exp.Title, exp.Company)
			fmt.Fprintf(&b, "%s - %s", exp.StartDate, end)
			if exp.Location != "" {
				fmt.Fprintf(&b, " | %s", exp.Location)
			}
			b.WriteString("\n\n")
			for _, bullet := range exp.Bullets {
				fmt.Fprintf(&b, "- %s\n", bullet)
			}
			if len(exp.Technologies) > 0 {
				fmt.Fprintf(&b, "\n*Technologies: %s*\n", strings.Join(exp.Technologies, ", "))
			}
			b.WriteString("\n")
		}
	}

	if len(r.Education) > 0 {
		b.WriteString("## Education\n\n")
		for _, edu := range r.Education {
			fmt.Fprintf(&b, "- **%s**, %s", edu.Degree, edu.Institution)
			if edu.FieldOfStudy != "" {
				fmt.Fprintf(&b, ", %s", edu.FieldOfStudy)
			}
			if edu.GraduationDate != "" {
				fmt.Fprintf(&b, " (%s)", edu.GraduationDate)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(r.Certifications) > 0 {
		b.WriteString("## Certifications\n\n")
		for _, cert := range r.Certifications {
			fmt.Fprintf(&b, "- %s\n", cert)
		}
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

// safeName makes a company name filesystem-friendly.
func safeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return "unknown"
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "unknown"
	}
	return b.String()
}
