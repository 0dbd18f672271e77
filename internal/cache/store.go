package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Stage names are part of the on-disk contract; the cache CLI and every
// stored artifact reference them by these exact strings.
const (
	StageJobAnalysis    = "job_analysis"
	StageTailoredResume = "tailored_resume"
	StageQualityReview  = "quality_review"
)

// Stages lists the cacheable pipeline stages in execution order.
var Stages = []string{StageJobAnalysis, StageTailoredResume, StageQualityReview}

// previewLen bounds the stored source preview for human inspection.
const previewLen = 200

// Store is a stage-keyed artifact cache: one JSON file per (stage, key)
// under the configured root. The stored record owns its payload; identical
// keys imply identical semantic input, so overwrites are benign.
type Store struct {
	root string
	now  func() time.Time
}

// StoreOption customizes a Store during construction.
type StoreOption func(*Store)

// WithClock overrides the clock used for artifact timestamps.
func WithClock(clock func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = clock
	}
}

// NewStore builds a store rooted at dir, creating it if needed.
func NewStore(dir string, opts ...StoreOption) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cache: ensure store root: %w", err)
	}
	store := &Store{root: dir, now: time.Now}
	for _, opt := range opts {
		opt(store)
	}
	return store, nil
}

// Root returns the directory backing this store.
func (s *Store) Root() string {
	return s.root
}

// artifact is the self-describing on-disk record for one stage result.
// Data holds the payload bytes exactly as given to Save: the payload is
// opaque to the store, and Load must return it byte-for-byte. encoding/json
// base64-encodes the field, which keeps arbitrary (even non-JSON) payloads
// intact inside the record.
type artifact struct {
	Stage    string    `json:"stage"`
	Key      string    `json:"key"`
	CachedAt time.Time `json:"cached_at"`
	Preview  string    `json:"source_preview,omitempty"`
	Data     []byte    `json:"data"`
}

func (s *Store) path(stage, key string) string {
	return filepath.Join(s.root, stage+"_"+key+".json")
}

// Save persists payload under (stage, key), replacing any prior artifact at
// that key. preview, when non-empty, is truncated and stored alongside for
// operator inspection.
func (s *Store) Save(stage, key string, payload []byte, preview string) error {
	if stage == "" || key == "" {
		return fmt.Errorf("cache: stage and key are required")
	}
	if preview != "" && len(preview) > previewLen {
		preview = preview[:previewLen] + "..."
	}
	record := artifact{
		Stage:    stage,
		Key:      key,
		CachedAt: s.now().UTC(),
		Preview:  preview,
		Data:     payload,
	}
	encoded, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("cache: encode %s artifact: %w", stage, err)
	}
	if err := os.WriteFile(s.path(stage, key), encoded, 0o644); err != nil {
		return fmt.Errorf("cache: write %s artifact: %w", stage, err)
	}
	return nil
}

// Load returns the payload stored under (stage, key). A missing, unreadable,
// or malformed artifact is reported as a plain miss; the cache is an
// optimization and corruption must never block recomputation.
func (s *Store) Load(stage, key string) ([]byte, bool) {
	data, err := os.ReadFile(s.path(stage, key))
	if err != nil {
		return nil, false
	}
	var record artifact
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, false
	}
	if record.Stage != stage || record.Key != key || len(record.Data) == 0 {
		return nil, false
	}
	return record.Data, true
}

// Meta returns the provenance of a stored artifact: when it was cached and
// the stored source preview. ok follows the same rules as Load.
func (s *Store) Meta(stage, key string) (cachedAt time.Time, preview string, ok bool) {
	data, err := os.ReadFile(s.path(stage, key))
	if err != nil {
		return time.Time{}, "", false
	}
	var record artifact
	if err := json.Unmarshal(data, &record); err != nil {
		return time.Time{}, "", false
	}
	return record.CachedAt, record.Preview, true
}

// Counts enumerates stored artifacts grouped by stage. Unrecognized files in
// the root are ignored.
func (s *Store) Counts() map[string]int {
	counts := make(map[string]int, len(Stages))
	for _, stage := range Stages {
		counts[stage] = 0
	}
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return counts
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		for _, stage := range Stages {
			if strings.HasPrefix(entry.Name(), stage+"_") {
				counts[stage]++
				break
			}
		}
	}
	return counts
}

// Clear deletes all artifacts for one stage, or for every stage when stage
// is empty, and returns the number of files removed.
func (s *Store) Clear(stage string) int {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return 0
	}
	deleted := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		if stage != "" && !strings.HasPrefix(entry.Name(), stage+"_") {
			continue
		}
		if stage == "" && !knownStageFile(entry.Name()) {
			continue
		}
		if err := os.Remove(filepath.Join(s.root, entry.Name())); err == nil {
			deleted++
		}
	}
	return deleted
}

func knownStageFile(name string) bool {
	for _, stage := range Stages {
		if strings.HasPrefix(name, stage+"_") {
			return true
		}
	}
	return false
}
