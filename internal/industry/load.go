package industry

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ProfileFile pairs a parsed profile with its on-disk source.
type ProfileFile struct {
	Profile Profile
	Path    string
}

// ParseProfileYAML decodes and validates a single profile payload.
func ParseProfileYAML(data []byte) (Profile, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Profile{}, fmt.Errorf("industry: profile payload is empty")
	}
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("industry: decode profile: %w", err)
	}
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// LoadProfileFile reads one YAML profile from disk.
func LoadProfileFile(path string) (ProfileFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ProfileFile{}, fmt.Errorf("industry: read %s: %w", path, err)
	}
	p, err := ParseProfileYAML(data)
	if err != nil {
		return ProfileFile{}, fmt.Errorf("industry: %s: %w", path, err)
	}
	return ProfileFile{Profile: p, Path: filepath.Clean(path)}, nil
}

// LoadProfileDir scans dir for *.yaml profiles plus *.go plugin profiles and
// returns them sorted by path. A missing directory means "no profiles".
func LoadProfileDir(dir string) ([]ProfileFile, error) {
	trimmed := strings.TrimSpace(dir)
	if trimmed == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(trimmed)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("industry: read %s: %w", trimmed, err)
	}
	var profiles []ProfileFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := strings.ToLower(entry.Name())
		path := filepath.Join(trimmed, entry.Name())
		switch {
		case strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml"):
			pf, err := LoadProfileFile(path)
			if err != nil {
				return nil, err
			}
			profiles = append(profiles, pf)
		case strings.HasSuffix(name, ".go"):
			plugged, err := loadPluginFile(path)
			if err != nil {
				return nil, err
			}
			profiles = append(profiles, plugged...)
		}
	}
	if len(profiles) == 0 {
		return nil, nil
	}
	sort.Slice(profiles, func(i, j int) bool { return profiles[i].Path < profiles[j].Path })
	return profiles, nil
}

// Select finds the profile named industry within dir, falling back to the
// built-in generic profile when the name is unknown.
func Select(dir, name string) (Profile, error) {
	profiles, err := LoadProfileDir(dir)
	if err != nil {
		return Profile{}, err
	}
	needle := strings.ToLower(strings.TrimSpace(name))
	for _, pf := range profiles {
		if strings.ToLower(pf.Profile.Industry) == needle {
			return pf.Profile, nil
		}
	}
	if needle == "" || needle == "generic" {
		return Generic(), nil
	}
	return Profile{}, fmt.Errorf("industry: no profile named %q in %s", name, dir)
}

// Names lists the industries available in dir, including the generic
// fallback.
func Names(dir string) ([]string, error) {
	profiles, err := LoadProfileDir(dir)
	if err != nil {
		return nil, err
	}
	names := []string{"generic"}
	for _, pf := range profiles {
		if !strings.EqualFold(pf.Profile.Industry, "generic") {
			names = append(names, pf.Profile.Industry)
		}
	}
	sort.Strings(names)
	return names, nil
}
