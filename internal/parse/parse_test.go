package parse

import (
	"context"
	"errors"
	"testing"

	"github.com/tailorloom/tailorloom/internal/llm"
)

const structuredResponse = `{
  "name": "Dana Rivera",
  "email": "dana@example.com",
  "professional_summary": "Analyst.",
  "experience": [],
  "technical_skills": ["SQL"]
}`

func fakeExtractor(text string, err error) Extractor {
	return func(context.Context, string) (string, error) {
		return text, err
	}
}

func TestParsePDFStructuresExtractedText(t *testing.T) {
	mock := llm.NewMock(structuredResponse)
	parser := NewParser(mock, nil, WithExtractor(fakeExtractor("Dana Rivera\ndana@example.com", nil)))

	resume, err := parser.ParsePDF(context.Background(), "resume.pdf")
	if err != nil {
		t.Fatalf("ParsePDF: %v", err)
	}
	if resume.Name != "Dana Rivera" || resume.TechnicalSkills[0] != "SQL" {
		t.Fatalf("resume = %+v", resume)
	}
	calls := mock.Calls()
	if len(calls) != 1 || calls[0].Temperature != 0.1 {
		t.Fatalf("calls = %+v", calls)
	}
}

func TestParsePDFExtractionFailure(t *testing.T) {
	mock := llm.NewMock(structuredResponse)
	parser := NewParser(mock, nil, WithExtractor(fakeExtractor("", errors.New("no such file"))))

	if _, err := parser.ParsePDF(context.Background(), "missing.pdf"); err == nil {
		t.Fatal("expected extraction error")
	}
	if mock.CallCount() != 0 {
		t.Fatal("no LLM call expected when extraction fails")
	}
}

func TestParseTextRejectsIncompleteResume(t *testing.T) {
	// Missing email fails resume validation.
	mock := llm.NewMock(`{"name": "Dana Rivera"}`)
	parser := NewParser(mock, nil)

	if _, err := parser.ParseText(context.Background(), "some resume text"); err == nil {
		t.Fatal("expected validation error for incomplete resume")
	}
}

func TestParseTextRejectsProseResponse(t *testing.T) {
	mock := llm.NewMock("This resume describes a data analyst.")
	parser := NewParser(mock, nil)

	if _, err := parser.ParseText(context.Background(), "text"); err == nil {
		t.Fatal("expected error for response without JSON")
	}
}
