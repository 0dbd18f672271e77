// Package parse turns PDF resumes into structured model.Resume values.
// Text comes out of the PDF via the poppler pdftotext tool; structure
// comes from an LLM extraction pass over that text.
package parse

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/tailorloom/tailorloom/internal/llm"
	"github.com/tailorloom/tailorloom/internal/logbook"
	"github.com/tailorloom/tailorloom/internal/model"
)

// Extractor produces plain text from a document on disk.
type Extractor func(ctx context.Context, path string) (string, error)

// ExtractPDFText shells out to pdftotext. The "-" argument sends the text
// to stdout instead of a sidecar file.
func ExtractPDFText(ctx context.Context, path string) (string, error) {
	cmd := exec.CommandContext(ctx, "pdftotext", "-layout", path, "-")
	var out, errOut bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errOut
	if err := cmd.Run(); err != nil {
		if errors := strings.TrimSpace(errOut.String()); errors != "" {
			return "", fmt.Errorf("parse: pdftotext %s: %v: %s", path, err, errors)
		}
		return "", fmt.Errorf("parse: pdftotext %s: %w (is poppler installed?)", path, err)
	}
	text := strings.TrimSpace(out.String())
	if text == "" {
		return "", fmt.Errorf("parse: %s contains no extractable text", path)
	}
	return text, nil
}

// Parser converts resume text to a structured Resume.
type Parser struct {
	client  llm.Client
	extract Extractor
	log     *logbook.Logbook
}

// Option configures a Parser.
type Option func(*Parser)

// WithExtractor replaces the pdftotext extractor, mainly for tests.
func WithExtractor(e Extractor) Option {
	return func(p *Parser) { p.extract = e }
}

// NewParser builds a parser.
func NewParser(client llm.Client, log *logbook.Logbook, opts ...Option) *Parser {
	p := &Parser{client: client, extract: ExtractPDFText, log: log}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParsePDF extracts text from the PDF at path and structures it.
func (p *Parser) ParsePDF(ctx context.Context, path string) (model.Resume, error) {
	p.log.Info("parsing PDF resume %s", path)
	text, err := p.extract(ctx, path)
	if err != nil {
		return model.Resume{}, err
	}
	return p.ParseText(ctx, text)
}

// ParseText structures raw resume text. Temperature is pinned low so the
// same document parses the same way across runs.
func (p *Parser) ParseText(ctx context.Context, text string) (model.Resume, error) {
	if p.client == nil {
		return model.Resume{}, fmt.Errorf("parse: no LLM client configured, cannot structure resume text")
	}
	resp, err := p.client.Complete(ctx, llm.Request{
		System:      parseSystemPrompt,
		User:        fmt.Sprintf("Parse this resume into structured JSON format:\n\n%s\n\nReturn the structured JSON:", text),
		MaxTokens:   4096,
		Temperature: 0.1,
	})
	if err != nil {
		return model.Resume{}, fmt.Errorf("parse: structure resume text: %w", err)
	}

	var resume model.Resume
	if err := llm.ExtractJSON(resp, &resume); err != nil {
		return model.Resume{}, fmt.Errorf("parse: structure resume text: %w", err)
	}
	if err := resume.Validate(); err != nil {
		return model.Resume{}, fmt.Errorf("parse: structured resume incomplete: %w", err)
	}
	return resume, nil
}

const parseSystemPrompt = `You are an expert resume parser. Convert the provided resume text into a structured JSON format.

The JSON should match this exact structure:

{
  "name": "Full Name",
  "email": "email@example.com",
  "phone": "(555) 123-4567",
  "location": "City, State",
  "linkedin": "linkedin.com/in/username",
  "github": "github.com/username",
  "portfolio": "website.com",
  "professional_summary": "Professional summary text...",
  "experience": [
    {
      "company": "Company Name",
      "title": "Job Title",
      "start_date": "YYYY-MM",
      "end_date": "YYYY-MM or omit if current",
      "location": "City, State",
      "bullets": ["Achievement 1", "Achievement 2"],
      "technologies": ["Tech1", "Tech2"]
    }
  ],
  "education": [
    {
      "institution": "University Name",
      "degree": "Degree Name",
      "field_of_study": "Major/Field",
      "graduation_date": "YYYY-MM",
      "gpa": "3.8",
      "honors": ["Honor 1"]
    }
  ],
  "technical_skills": ["Skill 1", "Skill 2"],
  "soft_skills": ["Skill 1"],
  "tools": ["Tool 1"],
  "languages": ["Language 1"],
  "certifications": ["Cert 1"],
  "projects": []
}

Important:
- Extract ALL information present in the resume
- Preserve exact wording of achievements/bullets
- Omit missing optional fields
- For dates, use "YYYY-MM" format; omit end_date for current positions
- Empty arrays [] for missing sections
- Be thorough and accurate

Return ONLY valid JSON, no additional text.`
