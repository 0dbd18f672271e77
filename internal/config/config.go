// internal/config/config.go
//
// This package handles configuration and the .tailorloom directory
// structure. Every project that uses tailorloom gets a .tailorloom/
// folder created in its root.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// Dir is the name of the directory created in each project.
	Dir = ".tailorloom"

	// APIKeyEnv is the environment variable holding the Anthropic key.
	APIKeyEnv = "ANTHROPIC_API_KEY"

	defaultIndustry = "generic"
)

const defaultProjectConfigYAML = `# tailorloom project configuration
version: 1

# Default industry profile, overridable per run with --industry.
# Profiles live in .tailorloom/industries/ as YAML (or .go plugin) files.
industry: generic

pipeline:
  # Areas the tailoring stage rewrites. Remove entries to narrow a run.
  focus:
    - summary
    - bullets
    - keywords
    - skills
  # Skip the quality review stage entirely.
  skip_review: false

# Model override. Leave empty for the built-in default.
model: ""

# Resume pool location. Relative paths resolve against the project
# directory. Empty means .tailorloom/pool.
# pool: resumes
`

// PipelineConfig captures per-run pipeline preferences.
type PipelineConfig struct {
	Focus      []string `yaml:"focus,omitempty"`
	SkipReview bool     `yaml:"skip_review"`
}

// ProjectConfig models .tailorloom/config.yaml.
type ProjectConfig struct {
	Version  int            `yaml:"version"`
	Industry string         `yaml:"industry"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	Model    string         `yaml:"model,omitempty"`

	// Pool overrides the resume pool location. Empty means
	// .tailorloom/pool.
	Pool string `yaml:"pool,omitempty"`
}

// Config holds the runtime configuration.
type Config struct {
	// ProjectDir is the directory the CLI was started from.
	ProjectDir string

	// ProjectStateDir is ProjectDir/.tailorloom.
	ProjectStateDir string

	// APIKey is read from the environment, with .env as a fallback.
	APIKey string

	Project ProjectConfig
}

// InitProjectDir creates the .tailorloom directory structure.
//
// Structure created:
// .tailorloom/
// ├── cache/           <- Stage artifacts (job_analysis, tailored_resume, quality_review)
// │   └── resumes/     <- Parsed-resume cache keyed by source fingerprint
// ├── logs/            <- Run logbook
// ├── pool/            <- Base resumes (JSON or PDF)
// │   ├── tailored/    <- Exported tailored resumes
// │   └── metadata/    <- Pool entry metadata sidecars
// ├── industries/      <- Industry profile YAML and plugin files
// └── reports/         <- Generated change reports
func InitProjectDir(projectDir string) error {
	stateDir := filepath.Join(projectDir, Dir)

	dirs := []string{
		filepath.Join(stateDir, "cache"),
		filepath.Join(stateDir, "cache", "resumes"),
		filepath.Join(stateDir, "logs"),
		filepath.Join(stateDir, "pool"),
		filepath.Join(stateDir, "pool", "tailored"),
		filepath.Join(stateDir, "pool", "metadata"),
		filepath.Join(stateDir, "industries"),
		filepath.Join(stateDir, "reports"),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	return ensureProjectConfig(filepath.Join(stateDir, "config.yaml"))
}

// New loads the configuration for projectDir. A .env file in the project
// directory is read if present; real environment variables win.
func New(projectDir string) (*Config, error) {
	_ = godotenv.Load(filepath.Join(projectDir, ".env"))

	cfg := &Config{
		ProjectDir:      projectDir,
		ProjectStateDir: filepath.Join(projectDir, Dir),
		APIKey:          os.Getenv(APIKeyEnv),
		Project:         defaultProjectConfig(),
	}

	if err := cfg.loadProjectConfig(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// RequireAPIKey fails with a setup hint when no key is configured.
func (c *Config) RequireAPIKey() (string, error) {
	if c.APIKey == "" {
		return "", fmt.Errorf("config: %s is not set; export it or add it to %s", APIKeyEnv, filepath.Join(c.ProjectDir, ".env"))
	}
	return c.APIKey, nil
}

// CacheDir returns the stage artifact cache directory.
func (c *Config) CacheDir() string {
	return filepath.Join(c.ProjectStateDir, "cache")
}

// ResumeCacheDir returns the parsed-resume cache directory.
func (c *Config) ResumeCacheDir() string {
	return filepath.Join(c.CacheDir(), "resumes")
}

// LogsDir returns the logs directory.
func (c *Config) LogsDir() string {
	return filepath.Join(c.ProjectStateDir, "logs")
}

// LogbookPath returns the run logbook file.
func (c *Config) LogbookPath() string {
	return filepath.Join(c.LogsDir(), "tailorloom.log")
}

// PoolDir returns the base resume pool directory. A relative pool
// override in config.yaml resolves against the project directory.
func (c *Config) PoolDir() string {
	if c.Project.Pool != "" {
		if filepath.IsAbs(c.Project.Pool) {
			return c.Project.Pool
		}
		return filepath.Join(c.ProjectDir, c.Project.Pool)
	}
	return filepath.Join(c.ProjectStateDir, "pool")
}

// TailoredDir returns where exported tailored resumes land.
func (c *Config) TailoredDir() string {
	return filepath.Join(c.PoolDir(), "tailored")
}

// MetadataDir returns the pool metadata sidecar directory.
func (c *Config) MetadataDir() string {
	return filepath.Join(c.PoolDir(), "metadata")
}

// IndustriesDir returns the industry profile directory.
func (c *Config) IndustriesDir() string {
	return filepath.Join(c.ProjectStateDir, "industries")
}

// ReportsDir returns the generated report directory.
func (c *Config) ReportsDir() string {
	return filepath.Join(c.ProjectStateDir, "reports")
}

// LastJobPath returns the file remembering the previous run's job inputs.
func (c *Config) LastJobPath() string {
	return filepath.Join(c.ProjectStateDir, "last_job.json")
}

// ProjectConfigPath returns the on-disk location for config.yaml.
func (c *Config) ProjectConfigPath() string {
	return filepath.Join(c.ProjectStateDir, "config.yaml")
}

// Industry returns the configured default industry profile name.
func (c *Config) Industry() string {
	return c.Project.Industry
}

// SetIndustry updates the default industry and persists it.
func (c *Config) SetIndustry(name string) error {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return fmt.Errorf("config: industry name is required")
	}
	c.Project.Industry = name
	return c.saveProjectConfig()
}

func (c *Config) loadProjectConfig() error {
	path := c.ProjectConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var parsed ProjectConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	parsed.applyDefaults()
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	c.Project = parsed
	return nil
}

func defaultProjectConfig() ProjectConfig {
	return ProjectConfig{
		Version:  1,
		Industry: defaultIndustry,
	}
}

func (pc *ProjectConfig) applyDefaults() {
	if pc.Version == 0 {
		pc.Version = 1
	}
	pc.Industry = strings.ToLower(strings.TrimSpace(pc.Industry))
	if pc.Industry == "" {
		pc.Industry = defaultIndustry
	}
}

func (pc *ProjectConfig) validate() error {
	if pc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	for _, area := range pc.Pipeline.Focus {
		switch strings.TrimSpace(area) {
		case "summary", "bullets", "keywords", "skills":
		default:
			return fmt.Errorf("pipeline.focus has unknown area %q", area)
		}
	}
	return nil
}

func ensureProjectConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultProjectConfigYAML), 0644)
}

func (c *Config) saveProjectConfig() error {
	if c == nil {
		return fmt.Errorf("config: nil receiver")
	}
	c.Project.applyDefaults()
	if err := c.Project.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := os.MkdirAll(c.ProjectStateDir, 0o755); err != nil {
		return fmt.Errorf("config: ensure state dir: %w", err)
	}
	data, err := yaml.Marshal(c.Project)
	if err != nil {
		return fmt.Errorf("config: encode config: %w", err)
	}
	if err := os.WriteFile(c.ProjectConfigPath(), data, 0644); err != nil {
		return fmt.Errorf("config: write project config: %w", err)
	}
	return nil
}
