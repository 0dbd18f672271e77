package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ResumeCache memoizes the expensive parse of one source document. Each
// entry is a data file (payload plus fingerprint) and a lightweight _meta
// file (fingerprint only) so a lookup can reject a changed file without
// deserializing the full payload. The two writes are not atomic as a pair;
// a crash between them reads back as a plain miss.
type ResumeCache struct {
	root string
	now  func() time.Time
}

// ResumeCacheOption customizes a ResumeCache during construction.
type ResumeCacheOption func(*ResumeCache)

// WithResumeClock overrides the clock used for parse timestamps.
func WithResumeClock(clock func() time.Time) ResumeCacheOption {
	return func(c *ResumeCache) {
		c.now = clock
	}
}

// NewResumeCache builds a parse cache rooted at dir, creating it if needed.
func NewResumeCache(dir string, opts ...ResumeCacheOption) (*ResumeCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cache: ensure resume cache root: %w", err)
	}
	c := &ResumeCache{root: dir, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// resumeEntry is the on-disk record pairing the parsed payload with the
// fingerprint it was parsed from. Data is stored verbatim (base64 in the
// JSON) so Load hands back exactly the bytes Save was given.
type resumeEntry struct {
	Fingerprint Fingerprint `json:"fingerprint"`
	ParsedAt    time.Time   `json:"parsed_at"`
	Data        []byte      `json:"data"`
}

func (c *ResumeCache) dataPath(id string) string {
	return filepath.Join(c.root, id+".json")
}

func (c *ResumeCache) metaPath(id string) string {
	return filepath.Join(c.root, id+"_meta.json")
}

// Save persists the parsed payload together with the current fingerprint of
// sourcePath, so a later Load validates against exactly this file state.
func (c *ResumeCache) Save(id, sourcePath string, payload []byte) error {
	if id == "" {
		return fmt.Errorf("cache: resume id is required")
	}
	fp, err := FingerprintFile(id, sourcePath)
	if err != nil {
		return err
	}
	entry := resumeEntry{
		Fingerprint: fp,
		ParsedAt:    c.now().UTC(),
		Data:        payload,
	}
	encoded, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return fmt.Errorf("cache: encode parsed resume %s: %w", id, err)
	}
	if err := os.WriteFile(c.dataPath(id), encoded, 0o644); err != nil {
		return fmt.Errorf("cache: write parsed resume %s: %w", id, err)
	}
	meta, err := json.MarshalIndent(fp, "", "  ")
	if err != nil {
		return fmt.Errorf("cache: encode resume meta %s: %w", id, err)
	}
	if err := os.WriteFile(c.metaPath(id), meta, 0o644); err != nil {
		return fmt.Errorf("cache: write resume meta %s: %w", id, err)
	}
	return nil
}

// Load returns the cached payload for id if the file at sourcePath is
// byte-identical to the fingerprinted state. Any mismatch, missing file, or
// unreadable entry is a miss; stale entries are shadowed, not deleted.
func (c *ResumeCache) Load(id, sourcePath string) ([]byte, bool) {
	meta, err := os.ReadFile(c.metaPath(id))
	if err != nil {
		return nil, false
	}
	var fp Fingerprint
	if err := json.Unmarshal(meta, &fp); err != nil {
		return nil, false
	}
	if !fp.Matches(sourcePath) {
		return nil, false
	}
	data, err := os.ReadFile(c.dataPath(id))
	if err != nil {
		return nil, false
	}
	var entry resumeEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}
	if len(entry.Data) == 0 {
		return nil, false
	}
	return entry.Data, true
}

// Info returns the stored fingerprint for id without touching the source
// file, for cache inspection.
func (c *ResumeCache) Info(id string) (Fingerprint, bool) {
	meta, err := os.ReadFile(c.metaPath(id))
	if err != nil {
		return Fingerprint{}, false
	}
	var fp Fingerprint
	if err := json.Unmarshal(meta, &fp); err != nil {
		return Fingerprint{}, false
	}
	return fp, true
}

// List enumerates cached entries by id. Unreadable meta files are skipped.
func (c *ResumeCache) List() map[string]Fingerprint {
	out := map[string]Fingerprint{}
	entries, err := os.ReadDir(c.root)
	if err != nil {
		return out
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, "_meta.json") {
			continue
		}
		id := strings.TrimSuffix(name, "_meta.json")
		if fp, ok := c.Info(id); ok {
			out[id] = fp
		}
	}
	return out
}

// Invalidate drops the cached parse for id so the next Load re-parses
// the source file. Reports whether an entry existed.
func (c *ResumeCache) Invalidate(id string) bool {
	return c.Clear(id) > 0
}

// Clear removes the entry for id, or every entry when id is empty, and
// returns the number of cache entries (data+meta pairs count once) removed.
func (c *ResumeCache) Clear(id string) int {
	if id != "" {
		removed := 0
		if os.Remove(c.dataPath(id)) == nil {
			removed++
		}
		if os.Remove(c.metaPath(id)) == nil {
			removed++
		}
		if removed > 0 {
			return 1
		}
		return 0
	}
	deleted := 0
	for cachedID := range c.List() {
		deleted += c.Clear(cachedID)
	}
	return deleted
}
