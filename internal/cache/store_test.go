package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir(), WithClock(func() time.Time {
		return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	}))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store
}

func TestStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)
	payload := []byte(`{"role_type":"Data Analyst","seniority":"Senior"}`)
	if err := store.Save(StageJobAnalysis, "abc123", payload, "We are hiring..."); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, ok := store.Load(StageJobAnalysis, "abc123")
	if !ok {
		t.Fatalf("expected hit after save")
	}
	if string(got) != string(payload) {
		t.Fatalf("payload mismatch: %s", got)
	}
}

func TestStorePayloadBytesAreOpaque(t *testing.T) {
	store := newTestStore(t)
	payloads := [][]byte{
		[]byte("{\n  \"role_type\": \"Data Analyst\",\n  \"seniority\": \"Senior\"\n}"),
		[]byte(`{"compact":true}`),
		[]byte("not json at all"),
	}
	for i, payload := range payloads {
		key := string(rune('a' + i))
		if err := store.Save(StageJobAnalysis, key, payload, ""); err != nil {
			t.Fatalf("save %q: %v", payload, err)
		}
		got, ok := store.Load(StageJobAnalysis, key)
		if !ok {
			t.Fatalf("expected hit for %q", payload)
		}
		if string(got) != string(payload) {
			t.Fatalf("payload altered in storage:\n saved %q\n loaded %q", payload, got)
		}
	}
}

func TestStoreMissIsNotAnError(t *testing.T) {
	store := newTestStore(t)
	if _, ok := store.Load(StageQualityReview, "never-written"); ok {
		t.Fatalf("expected miss for unwritten key")
	}
}

func TestStoreCorruptedArtifactIsAMiss(t *testing.T) {
	store := newTestStore(t)
	if err := store.Save(StageTailoredResume, "k1", []byte(`{"x":1}`), ""); err != nil {
		t.Fatalf("save: %v", err)
	}
	path := filepath.Join(store.Root(), StageTailoredResume+"_k1.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("corrupt: %v", err)
	}
	if _, ok := store.Load(StageTailoredResume, "k1"); ok {
		t.Fatalf("corrupted artifact should load as a miss")
	}
}

func TestStoreRejectsMismatchedRecord(t *testing.T) {
	store := newTestStore(t)
	if err := store.Save(StageJobAnalysis, "k1", []byte(`{}`), ""); err != nil {
		t.Fatalf("save: %v", err)
	}
	// A record copied to another key's filename must not satisfy that key.
	src := filepath.Join(store.Root(), StageJobAnalysis+"_k1.json")
	dst := filepath.Join(store.Root(), StageJobAnalysis+"_k2.json")
	data, err := os.ReadFile(src)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, ok := store.Load(StageJobAnalysis, "k2"); ok {
		t.Fatalf("record with foreign key should be a miss")
	}
}

func TestStoreMetaCarriesPreview(t *testing.T) {
	store := newTestStore(t)
	long := make([]byte, 300)
	for i := range long {
		long[i] = 'j'
	}
	if err := store.Save(StageJobAnalysis, "k1", []byte(`{}`), string(long)); err != nil {
		t.Fatalf("save: %v", err)
	}
	cachedAt, preview, ok := store.Meta(StageJobAnalysis, "k1")
	if !ok {
		t.Fatalf("expected metadata")
	}
	if cachedAt.IsZero() {
		t.Fatalf("expected cached_at timestamp")
	}
	if len(preview) != previewLen+len("...") {
		t.Fatalf("preview not truncated: %d chars", len(preview))
	}
}

func TestStoreCountsAndClearByStage(t *testing.T) {
	store := newTestStore(t)
	seed := map[string][]string{
		StageJobAnalysis:    {"j1", "j2"},
		StageTailoredResume: {"j1_base", "j2_base"},
		StageQualityReview:  {"j1_base"},
	}
	for stage, keys := range seed {
		for _, key := range keys {
			if err := store.Save(stage, key, []byte(`{}`), ""); err != nil {
				t.Fatalf("save %s/%s: %v", stage, key, err)
			}
		}
	}

	counts := store.Counts()
	if counts[StageJobAnalysis] != 2 || counts[StageTailoredResume] != 2 || counts[StageQualityReview] != 1 {
		t.Fatalf("unexpected counts: %v", counts)
	}

	if deleted := store.Clear(StageQualityReview); deleted != 1 {
		t.Fatalf("expected 1 review deleted, got %d", deleted)
	}
	// Other stages stay loadable after a scoped clear.
	if _, ok := store.Load(StageJobAnalysis, "j1"); !ok {
		t.Fatalf("analysis artifact lost by review clear")
	}
	if _, ok := store.Load(StageTailoredResume, "j1_base"); !ok {
		t.Fatalf("rewrite artifact lost by review clear")
	}
	if _, ok := store.Load(StageQualityReview, "j1_base"); ok {
		t.Fatalf("review artifact survived clear")
	}

	if deleted := store.Clear(""); deleted != 4 {
		t.Fatalf("expected 4 remaining artifacts deleted, got %d", deleted)
	}
}

func TestStoreOverwriteSameKey(t *testing.T) {
	store := newTestStore(t)
	if err := store.Save(StageJobAnalysis, "k", []byte(`{"v":1}`), ""); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Save(StageJobAnalysis, "k", []byte(`{"v":2}`), ""); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, ok := store.Load(StageJobAnalysis, "k")
	if !ok || string(got) != `{"v":2}` {
		t.Fatalf("expected last write to win, got %s ok=%v", got, ok)
	}
	if store.Counts()[StageJobAnalysis] != 1 {
		t.Fatalf("overwrite must not grow the stage count")
	}
}
