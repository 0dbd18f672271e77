package industry

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleProfile = `industry: healthcare
display_name: Healthcare & Health IT
description: Healthcare delivery, payers, and health technology.
acronyms:
  EHR: Electronic Health Record
  HIPAA: Health Insurance Portability and Accountability Act
common_terms:
  - clinical workflows
  - care coordination
skill_categories:
  clinical_systems:
    priority: high
    skills:
      - Epic
      - HL7
      - FHIR
  analytics:
    priority: medium
    skills:
      - SQL
      - Tableau
priority_keywords:
  - patient outcomes
  - HIPAA compliance
action_verbs:
  - Coordinated
  - Implemented
resume_tips:
  summary:
    - Mention regulated-environment experience early.
`

func TestParseProfileYAML(t *testing.T) {
	p, err := ParseProfileYAML([]byte(sampleProfile))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if p.Industry != "healthcare" || p.DisplayName == "" {
		t.Fatalf("unexpected profile: %+v", p)
	}
	if p.ExpandAcronym("EHR") != "Electronic Health Record" {
		t.Fatalf("acronym lookup failed")
	}
	if !p.IsHighPrioritySkill("fhir") {
		t.Fatalf("case-insensitive high-priority lookup failed")
	}
	if p.CategorizeSkill("SQL") != "analytics" {
		t.Fatalf("categorize failed: %q", p.CategorizeSkill("SQL"))
	}
	if p.CategorizeSkill("welding") != "" {
		t.Fatalf("unknown skill should not categorize")
	}
}

func TestParseProfileYAMLErrors(t *testing.T) {
	if _, err := ParseProfileYAML([]byte("")); err == nil {
		t.Fatalf("expected empty payload to fail")
	}
	if _, err := ParseProfileYAML([]byte("display_name: X")); err == nil {
		t.Fatalf("expected missing industry name to fail")
	}
	bad := "industry: x\ndisplay_name: X\nskill_categories:\n  a:\n    priority: urgent\n"
	if _, err := ParseProfileYAML([]byte(bad)); err == nil {
		t.Fatalf("expected unknown priority to fail")
	}
}

func TestLoadProfileDir(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "healthcare.yaml")
	if err := os.WriteFile(path, []byte(sampleProfile), 0o644); err != nil {
		t.Fatalf("write sample: %v", err)
	}
	profiles, err := LoadProfileDir(root)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(profiles) != 1 || profiles[0].Path != path {
		t.Fatalf("unexpected profiles: %+v", profiles)
	}
}

func TestLoadProfileDirMissing(t *testing.T) {
	profiles, err := LoadProfileDir(filepath.Join(t.TempDir(), "missing"))
	if err != nil {
		t.Fatalf("missing dir should not error: %v", err)
	}
	if profiles != nil {
		t.Fatalf("expected nil slice for missing dir, got %v", profiles)
	}
}

func TestSelectFallsBackToGeneric(t *testing.T) {
	p, err := Select(t.TempDir(), "generic")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if p.Industry != "generic" {
		t.Fatalf("unexpected fallback: %+v", p)
	}
	if _, err := Select(t.TempDir(), "maritime"); err == nil {
		t.Fatalf("unknown industry should error")
	}
}

func TestLoadGoPluginProfiles(t *testing.T) {
	root := t.TempDir()
	plugin := `package main

func IndustryProfiles() ([]map[string]any, error) {
	return []map[string]any{
		{
			"industry":     "gamedev",
			"display_name": "Game Development",
			"description":  "Studios and live-ops teams.",
			"priority_keywords": []string{"shipped titles", "live ops"},
		},
	}, nil
}
`
	if err := os.WriteFile(filepath.Join(root, "gamedev.go"), []byte(plugin), 0o644); err != nil {
		t.Fatalf("write plugin: %v", err)
	}
	profiles, err := LoadProfileDir(root)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(profiles) != 1 {
		t.Fatalf("expected 1 plugin profile, got %d", len(profiles))
	}
	if profiles[0].Profile.Industry != "gamedev" {
		t.Fatalf("unexpected profile: %+v", profiles[0].Profile)
	}
	if len(profiles[0].Profile.PriorityKeywords) != 2 {
		t.Fatalf("keywords lost in plugin round-trip: %+v", profiles[0].Profile)
	}
}

func TestLoadGoPluginMissingFunc(t *testing.T) {
	root := t.TempDir()
	plugin := "package main\n\nfunc Other() {}\n"
	if err := os.WriteFile(filepath.Join(root, "bad.go"), []byte(plugin), 0o644); err != nil {
		t.Fatalf("write plugin: %v", err)
	}
	if _, err := LoadProfileDir(root); err == nil {
		t.Fatalf("expected error for plugin without %s", pluginFuncName)
	}
}
