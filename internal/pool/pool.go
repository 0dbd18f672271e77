// Package pool loads the base resume pool: JSON resumes are read
// directly, PDF resumes go through text extraction and LLM structuring
// with a fingerprint-keyed cache so an unchanged file never parses twice.
package pool

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/tailorloom/tailorloom/internal/cache"
	"github.com/tailorloom/tailorloom/internal/logbook"
	"github.com/tailorloom/tailorloom/internal/model"
	"github.com/tailorloom/tailorloom/internal/parse"
)

// examplePrefix marks seed files shipped for documentation; they never
// join the pool.
const examplePrefix = "example_"

// Loader reads the resume pool directory.
type Loader struct {
	dir    string
	parser *parse.Parser
	cache  *cache.ResumeCache
	log    *logbook.Logbook
	now    func() time.Time
}

// NewLoader builds a pool loader. cache may be nil, in which case every
// PDF parses fresh.
func NewLoader(dir string, parser *parse.Parser, rc *cache.ResumeCache, log *logbook.Logbook) *Loader {
	return &Loader{dir: dir, parser: parser, cache: rc, log: log, now: time.Now}
}

// Load reads every resume in the pool directory, sorted by id. A file
// that cannot be read or parsed is logged and skipped; a missing pool
// directory yields an empty pool.
func (l *Loader) Load(ctx context.Context) ([]model.PoolEntry, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var pool []model.PoolEntry
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, examplePrefix) {
			continue
		}
		id := strings.TrimSuffix(name, filepath.Ext(name))
		path := filepath.Join(l.dir, name)

		var resume model.Resume
		switch strings.ToLower(filepath.Ext(name)) {
		case ".json":
			resume, err = l.loadJSON(path)
		case ".pdf":
			resume, err = l.loadPDF(ctx, id, path)
		default:
			continue
		}
		if err != nil {
			l.log.Warn("skipping pool resume %s: %v", name, err)
			continue
		}

		pool = append(pool, model.PoolEntry{
			Resume: resume,
			Metadata: model.ResumeMetadata{
				ResumeID:  id,
				CreatedAt: l.now(),
				FilePath:  path,
			},
		})
	}

	sort.Slice(pool, func(i, j int) bool {
		return pool[i].Metadata.ResumeID < pool[j].Metadata.ResumeID
	})
	l.log.Info("loaded %d resumes from pool", len(pool))
	return pool, nil
}

func (l *Loader) loadJSON(path string) (model.Resume, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Resume{}, err
	}
	return model.ResumeFromJSON(data)
}

// loadPDF consults the parse cache first. The cache invalidates itself
// when the source file's size or content hash changes.
func (l *Loader) loadPDF(ctx context.Context, id, path string) (model.Resume, error) {
	if l.cache != nil {
		if data, ok := l.cache.Load(id, path); ok {
			resume, err := model.ResumeFromJSON(data)
			if err == nil {
				l.log.Info("pool resume %s: cached parse (file unchanged)", id)
				return resume, nil
			}
			l.log.Warn("cached parse for %s unreadable, re-parsing: %v", id, err)
		}
	}

	resume, err := l.parser.ParsePDF(ctx, path)
	if err != nil {
		return model.Resume{}, err
	}

	if l.cache != nil {
		payload, err := json.Marshal(resume)
		if err == nil {
			if err := l.cache.Save(id, path, payload); err != nil {
				l.log.Warn("caching parse for %s: %v", id, err)
			}
		}
	}
	return resume, nil
}

// Find returns the entry with the given id.
func Find(pool []model.PoolEntry, id string) (model.PoolEntry, bool) {
	for _, entry := range pool {
		if entry.Metadata.ResumeID == id {
			return entry, true
		}
	}
	return model.PoolEntry{}, false
}
