package pool

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/tailorloom/tailorloom/internal/cache"
	"github.com/tailorloom/tailorloom/internal/llm"
	"github.com/tailorloom/tailorloom/internal/parse"
)

const resumeJSON = `{
  "name": "Dana Rivera",
  "email": "dana@example.com",
  "professional_summary": "Analyst.",
  "experience": [],
  "technical_skills": ["SQL"]
}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func textExtractor(t *testing.T) parse.Extractor {
	t.Helper()
	return func(_ context.Context, path string) (string, error) {
		data, err := os.ReadFile(path)
		return string(data), err
	}
}

func TestLoadJSONResumes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "base.json", resumeJSON)
	writeFile(t, dir, "example_seed.json", resumeJSON)
	writeFile(t, dir, "notes.txt", "ignore me")

	loader := NewLoader(dir, nil, nil, nil)
	pool, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(pool) != 1 {
		t.Fatalf("pool size = %d, want 1 (example_ and non-resume files skipped)", len(pool))
	}
	if pool[0].Metadata.ResumeID != "base" {
		t.Fatalf("id = %q", pool[0].Metadata.ResumeID)
	}
	if pool[0].Resume.Name != "Dana Rivera" {
		t.Fatalf("resume = %+v", pool[0].Resume)
	}
}

func TestLoadSkipsUnreadableResume(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good.json", resumeJSON)
	writeFile(t, dir, "bad.json", "{not json")

	loader := NewLoader(dir, nil, nil, nil)
	pool, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(pool) != 1 || pool[0].Metadata.ResumeID != "good" {
		t.Fatalf("pool = %+v", pool)
	}
}

func TestLoadMissingDirIsEmptyPool(t *testing.T) {
	loader := NewLoader(filepath.Join(t.TempDir(), "absent"), nil, nil, nil)
	pool, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(pool) != 0 {
		t.Fatalf("pool = %+v", pool)
	}
}

func TestLoadPDFUsesParseCache(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "cv.pdf", "Dana Rivera resume text")

	rc, err := cache.NewResumeCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	mock := llm.NewMock(resumeJSON)
	parser := parse.NewParser(mock, nil, parse.WithExtractor(textExtractor(t)))
	loader := NewLoader(dir, parser, rc, nil)

	pool, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("first load: %v", err)
	}
	if len(pool) != 1 || pool[0].Resume.Name != "Dana Rivera" {
		t.Fatalf("pool = %+v", pool)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("calls = %d", mock.CallCount())
	}

	// Second load: the file is unchanged, so the cached parse serves
	// and the mock sees no further calls.
	pool, err = loader.Load(context.Background())
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if len(pool) != 1 {
		t.Fatalf("pool = %+v", pool)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("cached parse not used, calls = %d", mock.CallCount())
	}
}

func TestLoadPDFReparsesChangedFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "cv.pdf", "original resume text")

	rc, err := cache.NewResumeCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	mock := llm.NewMock(resumeJSON, resumeJSON)
	parser := parse.NewParser(mock, nil, parse.WithExtractor(textExtractor(t)))
	loader := NewLoader(dir, parser, rc, nil)

	if _, err := loader.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("rewritten resume text!"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := loader.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	if mock.CallCount() != 2 {
		t.Fatalf("changed file should reparse, calls = %d", mock.CallCount())
	}
}

func TestFind(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "base.json", resumeJSON)
	loader := NewLoader(dir, nil, nil, nil)
	pool, err := loader.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if _, ok := Find(pool, "base"); !ok {
		t.Fatal("existing id not found")
	}
	if _, ok := Find(pool, "ghost"); ok {
		t.Fatal("missing id reported found")
	}
}
