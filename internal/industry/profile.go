// Package industry loads the per-industry tailoring profiles: terminology,
// keyword strategy, and skill taxonomy. Profiles come from YAML files in
// the project's industries directory, with user-supplied Go plugin files as
// an escape hatch for anything YAML cannot express.
package industry

import (
	"fmt"
	"strings"
)

// SkillCategory groups related skills under a priority tier.
type SkillCategory struct {
	Priority string   `yaml:"priority"`
	Skills   []string `yaml:"skills"`
}

// Profile is one industry's tailoring configuration.
type Profile struct {
	Industry    string `yaml:"industry"`
	DisplayName string `yaml:"display_name"`
	Description string `yaml:"description"`

	Acronyms    map[string]string `yaml:"acronyms,omitempty"`
	CommonTerms []string          `yaml:"common_terms,omitempty"`

	SkillCategories map[string]SkillCategory `yaml:"skill_categories,omitempty"`

	PriorityKeywords []string `yaml:"priority_keywords,omitempty"`
	ActionVerbs      []string `yaml:"action_verbs,omitempty"`
	ImpactfulMetrics []string `yaml:"impactful_metrics,omitempty"`

	HighlyValuedCerts map[string]string `yaml:"highly_valued_certs,omitempty"`
	NiceToHaveCerts   map[string]string `yaml:"nice_to_have_certs,omitempty"`

	PrimaryRoles []string `yaml:"primary_roles,omitempty"`
	RelatedRoles []string `yaml:"related_roles,omitempty"`

	ResumeTips map[string][]string `yaml:"resume_tips,omitempty"`
}

// Validate ensures the profile is well-formed.
func (p Profile) Validate() error {
	if strings.TrimSpace(p.Industry) == "" {
		return fmt.Errorf("industry: profile name is required")
	}
	if strings.TrimSpace(p.DisplayName) == "" {
		return fmt.Errorf("industry: display name is required for %s", p.Industry)
	}
	for name, cat := range p.SkillCategories {
		switch cat.Priority {
		case "high", "medium", "low", "":
		default:
			return fmt.Errorf("industry: %s skill category %s has unknown priority %q", p.Industry, name, cat.Priority)
		}
	}
	return nil
}

// ExpandAcronym returns the full form of an industry acronym, or "" when
// the acronym is not known.
func (p Profile) ExpandAcronym(acronym string) string {
	if full, ok := p.Acronyms[acronym]; ok {
		return full
	}
	return p.Acronyms[strings.ToUpper(acronym)]
}

// HighPrioritySkills flattens every high-priority skill category.
func (p Profile) HighPrioritySkills() []string {
	var out []string
	for _, cat := range p.SkillCategories {
		if cat.Priority == "high" {
			out = append(out, cat.Skills...)
		}
	}
	return out
}

// IsHighPrioritySkill reports whether skill sits in a high-priority
// category, compared case-insensitively.
func (p Profile) IsHighPrioritySkill(skill string) bool {
	needle := strings.ToLower(strings.TrimSpace(skill))
	for _, cat := range p.SkillCategories {
		if cat.Priority != "high" {
			continue
		}
		for _, s := range cat.Skills {
			if strings.ToLower(s) == needle {
				return true
			}
		}
	}
	return false
}

// CategorizeSkill returns the name of the category containing skill, or ""
// when the skill is unrecognized in this industry.
func (p Profile) CategorizeSkill(skill string) string {
	needle := strings.ToLower(strings.TrimSpace(skill))
	for name, cat := range p.SkillCategories {
		for _, s := range cat.Skills {
			if strings.ToLower(s) == needle {
				return name
			}
		}
	}
	return ""
}

// Tips returns the resume-writing tips for one section, e.g. "summary".
func (p Profile) Tips(section string) []string {
	return p.ResumeTips[section]
}
