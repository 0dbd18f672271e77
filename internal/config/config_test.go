package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadProjectConfigDefaultsWhenMissing(t *testing.T) {
	projectDir := t.TempDir()
	stateDir := filepath.Join(projectDir, Dir)
	if err := os.MkdirAll(stateDir, 0755); err != nil {
		t.Fatal(err)
	}
	c := &Config{ProjectDir: projectDir, ProjectStateDir: stateDir, Project: defaultProjectConfig()}
	if err := c.loadProjectConfig(); err != nil {
		t.Fatalf("loadProjectConfig returned error: %v", err)
	}
	if c.Project.Version != 1 {
		t.Fatalf("expected default version == 1, got %d", c.Project.Version)
	}
	if c.Industry() != defaultIndustry {
		t.Fatalf("expected default industry %q, got %q", defaultIndustry, c.Industry())
	}
}

func TestLoadProjectConfigParsesYaml(t *testing.T) {
	projectDir := t.TempDir()
	stateDir := filepath.Join(projectDir, Dir)
	if err := os.MkdirAll(stateDir, 0755); err != nil {
		t.Fatal(err)
	}
	configYAML := strings.TrimSpace(`
version: 1
industry: Healthcare
pipeline:
  focus:
    - summary
    - skills
  skip_review: true
model: claude-sonnet-4-20250514
`)
	if err := os.WriteFile(filepath.Join(stateDir, "config.yaml"), []byte(configYAML), 0644); err != nil {
		t.Fatal(err)
	}
	c := &Config{ProjectDir: projectDir, ProjectStateDir: stateDir, Project: defaultProjectConfig()}
	if err := c.loadProjectConfig(); err != nil {
		t.Fatalf("loadProjectConfig returned error: %v", err)
	}
	if c.Industry() != "healthcare" {
		t.Fatalf("industry not normalized: %q", c.Industry())
	}
	if len(c.Project.Pipeline.Focus) != 2 || !c.Project.Pipeline.SkipReview {
		t.Fatalf("pipeline config = %+v", c.Project.Pipeline)
	}
}

func TestLoadProjectConfigRejectsUnknownFocus(t *testing.T) {
	projectDir := t.TempDir()
	stateDir := filepath.Join(projectDir, Dir)
	if err := os.MkdirAll(stateDir, 0755); err != nil {
		t.Fatal(err)
	}
	configYAML := "version: 1\npipeline:\n  focus:\n    - everything\n"
	if err := os.WriteFile(filepath.Join(stateDir, "config.yaml"), []byte(configYAML), 0644); err != nil {
		t.Fatal(err)
	}
	c := &Config{ProjectDir: projectDir, ProjectStateDir: stateDir, Project: defaultProjectConfig()}
	if err := c.loadProjectConfig(); err == nil {
		t.Fatal("expected error for unknown focus area")
	}
}

func TestInitProjectDirCreatesStructure(t *testing.T) {
	projectDir := t.TempDir()
	if err := InitProjectDir(projectDir); err != nil {
		t.Fatalf("InitProjectDir: %v", err)
	}

	for _, rel := range []string{
		"cache/resumes",
		"logs",
		"pool/tailored",
		"pool/metadata",
		"industries",
		"reports",
	} {
		path := filepath.Join(projectDir, Dir, rel)
		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			t.Fatalf("missing directory %s: %v", rel, err)
		}
	}
	if _, err := os.Stat(filepath.Join(projectDir, Dir, "config.yaml")); err != nil {
		t.Fatalf("config.yaml not seeded: %v", err)
	}
}

func TestInitProjectDirKeepsExistingConfig(t *testing.T) {
	projectDir := t.TempDir()
	if err := InitProjectDir(projectDir); err != nil {
		t.Fatal(err)
	}
	custom := "version: 1\nindustry: finance\n"
	path := filepath.Join(projectDir, Dir, "config.yaml")
	if err := os.WriteFile(path, []byte(custom), 0644); err != nil {
		t.Fatal(err)
	}

	if err := InitProjectDir(projectDir); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != custom {
		t.Fatal("re-init overwrote an existing config.yaml")
	}
}

func TestSetIndustryPersists(t *testing.T) {
	projectDir := t.TempDir()
	if err := InitProjectDir(projectDir); err != nil {
		t.Fatal(err)
	}
	c, err := New(projectDir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := c.SetIndustry("Finance"); err != nil {
		t.Fatalf("SetIndustry: %v", err)
	}

	reloaded, err := New(projectDir)
	if err != nil {
		t.Fatalf("New after save: %v", err)
	}
	if reloaded.Industry() != "finance" {
		t.Fatalf("persisted industry = %q", reloaded.Industry())
	}
}

func TestRequireAPIKey(t *testing.T) {
	c := &Config{ProjectDir: t.TempDir()}
	if _, err := c.RequireAPIKey(); err == nil {
		t.Fatal("expected error with no key configured")
	}
	c.APIKey = "sk-test"
	key, err := c.RequireAPIKey()
	if err != nil || key != "sk-test" {
		t.Fatalf("key = %q, err = %v", key, err)
	}
}

func TestPoolDirOverride(t *testing.T) {
	projectDir := t.TempDir()
	stateDir := filepath.Join(projectDir, Dir)

	c := &Config{ProjectDir: projectDir, ProjectStateDir: stateDir, Project: defaultProjectConfig()}
	if got, want := c.PoolDir(), filepath.Join(stateDir, "pool"); got != want {
		t.Fatalf("default pool dir = %q, want %q", got, want)
	}

	c.Project.Pool = "resumes"
	if got, want := c.PoolDir(), filepath.Join(projectDir, "resumes"); got != want {
		t.Fatalf("relative pool dir = %q, want %q", got, want)
	}

	abs := filepath.Join(t.TempDir(), "shared-pool")
	c.Project.Pool = abs
	if got := c.PoolDir(); got != abs {
		t.Fatalf("absolute pool dir = %q, want %q", got, abs)
	}
}
