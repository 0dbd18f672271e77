package cache

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	return path
}

func TestResumeCacheRoundTrip(t *testing.T) {
	dir := t.TempDir()
	source := writeSource(t, dir, "jane.pdf", "binary-ish resume bytes")
	rc, err := NewResumeCache(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatalf("new resume cache: %v", err)
	}

	payload := []byte(`{"name":"Jane Doe","email":"jane@example.com"}`)
	if err := rc.Save("jane", source, payload); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, ok := rc.Load("jane", source)
	if !ok {
		t.Fatalf("expected hit for unchanged file")
	}
	if string(got) != string(payload) {
		t.Fatalf("payload mismatch: %s", got)
	}
}

func TestResumeCachePayloadBytesAreOpaque(t *testing.T) {
	dir := t.TempDir()
	source := writeSource(t, dir, "jane.pdf", "resume bytes")
	rc, err := NewResumeCache(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatalf("new resume cache: %v", err)
	}

	// Indented JSON must come back with its whitespace intact.
	payload := []byte("{\n  \"name\": \"Jane Doe\",\n  \"email\": \"jane@example.com\"\n}")
	if err := rc.Save("jane", source, payload); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, ok := rc.Load("jane", source)
	if !ok {
		t.Fatalf("expected hit for unchanged file")
	}
	if string(got) != string(payload) {
		t.Fatalf("payload altered in storage:\n saved %q\n loaded %q", payload, got)
	}
}

func TestResumeCacheInvalidatesOnContentChange(t *testing.T) {
	dir := t.TempDir()
	source := writeSource(t, dir, "jane.pdf", "original content")
	rc, err := NewResumeCache(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatalf("new resume cache: %v", err)
	}
	if err := rc.Save("jane", source, []byte(`{"name":"Jane"}`)); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Same length, different bytes: the size short-circuit must not mask it.
	if err := os.WriteFile(source, []byte("altered  content"), 0o644); err != nil {
		t.Fatalf("rewrite source: %v", err)
	}
	if _, ok := rc.Load("jane", source); ok {
		t.Fatalf("expected miss after content change")
	}
}

func TestResumeCacheInvalidatesOnSizeChange(t *testing.T) {
	dir := t.TempDir()
	source := writeSource(t, dir, "jane.pdf", "short")
	rc, err := NewResumeCache(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatalf("new resume cache: %v", err)
	}
	if err := rc.Save("jane", source, []byte(`{}`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := os.WriteFile(source, []byte("much longer content now"), 0o644); err != nil {
		t.Fatalf("rewrite source: %v", err)
	}
	if _, ok := rc.Load("jane", source); ok {
		t.Fatalf("expected miss after size change")
	}
}

func TestResumeCacheHalfWrittenPairIsAMiss(t *testing.T) {
	dir := t.TempDir()
	source := writeSource(t, dir, "jane.pdf", "content")
	root := filepath.Join(dir, "cache")
	rc, err := NewResumeCache(root)
	if err != nil {
		t.Fatalf("new resume cache: %v", err)
	}
	if err := rc.Save("jane", source, []byte(`{}`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	// Simulate a crash between the two writes: data file gone, meta intact.
	if err := os.Remove(filepath.Join(root, "jane.json")); err != nil {
		t.Fatalf("remove data file: %v", err)
	}
	if _, ok := rc.Load("jane", source); ok {
		t.Fatalf("half-written entry must read as a miss")
	}
}

func TestResumeCacheListAndClear(t *testing.T) {
	dir := t.TempDir()
	a := writeSource(t, dir, "a.pdf", "aaa")
	b := writeSource(t, dir, "b.pdf", "bbb")
	rc, err := NewResumeCache(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatalf("new resume cache: %v", err)
	}
	if err := rc.Save("a", a, []byte(`{}`)); err != nil {
		t.Fatalf("save a: %v", err)
	}
	if err := rc.Save("b", b, []byte(`{}`)); err != nil {
		t.Fatalf("save b: %v", err)
	}

	listed := rc.List()
	if len(listed) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(listed))
	}
	if listed["a"].SourcePath != a {
		t.Fatalf("unexpected source path: %+v", listed["a"])
	}

	if deleted := rc.Clear("a"); deleted != 1 {
		t.Fatalf("expected 1 entry cleared, got %d", deleted)
	}
	if _, ok := rc.Load("a", a); ok {
		t.Fatalf("cleared entry still loads")
	}
	if _, ok := rc.Load("b", b); !ok {
		t.Fatalf("unrelated entry lost")
	}
	if deleted := rc.Clear(""); deleted != 1 {
		t.Fatalf("expected 1 remaining entry cleared, got %d", deleted)
	}
}

func TestResumeCacheInvalidate(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "a.pdf", "aaa")
	rc, err := NewResumeCache(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatalf("new resume cache: %v", err)
	}
	if err := rc.Save("a", src, []byte(`{}`)); err != nil {
		t.Fatalf("save: %v", err)
	}

	if !rc.Invalidate("a") {
		t.Fatal("expected existing entry to be invalidated")
	}
	if _, ok := rc.Load("a", src); ok {
		t.Fatal("invalidated entry still loads")
	}
	if rc.Invalidate("a") {
		t.Fatal("second invalidate reported an entry")
	}
}
