package cache

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFingerprintMatchesUnchangedFile(t *testing.T) {
	path := writeSource(t, t.TempDir(), "doc.txt", "stable content")
	fp, err := FingerprintFile("doc", path)
	if err != nil {
		t.Fatalf("fingerprint: %v", err)
	}
	if fp.ByteSize != int64(len("stable content")) {
		t.Fatalf("unexpected size: %d", fp.ByteSize)
	}
	if !fp.Matches(path) {
		t.Fatalf("fingerprint should match untouched file")
	}
}

func TestFingerprintSurvivesTimestampOnlyRewrite(t *testing.T) {
	path := writeSource(t, t.TempDir(), "doc.txt", "same bytes")
	fp, err := FingerprintFile("doc", path)
	if err != nil {
		t.Fatalf("fingerprint: %v", err)
	}
	// Re-save identical content; mtime changes but the fingerprint holds.
	if err := os.WriteFile(path, []byte("same bytes"), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	if !fp.Matches(path) {
		t.Fatalf("timestamp-only rewrite must not invalidate")
	}
}

func TestFingerprintMissingFile(t *testing.T) {
	dir := t.TempDir()
	if _, err := FingerprintFile("doc", filepath.Join(dir, "absent.txt")); err == nil {
		t.Fatalf("expected error for missing file")
	}
	fp := Fingerprint{ByteSize: 1, ContentHash: "ff"}
	if fp.Matches(filepath.Join(dir, "absent.txt")) {
		t.Fatalf("missing file must not match")
	}
}
