// Package model holds the canonical structured representations exchanged
// between the pipeline stages. Every entity has exactly one struct form,
// produced at the JSON boundary; nothing downstream branches on shape.
package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// Experience is a single work history entry.
type Experience struct {
	Company      string   `json:"company"`
	Title        string   `json:"title"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date,omitempty"`
	Location     string   `json:"location,omitempty"`
	Bullets      []string `json:"bullets"`
	Technologies []string `json:"technologies,omitempty"`
}

// Education is a single education entry.
type Education struct {
	Institution    string   `json:"institution"`
	Degree         string   `json:"degree"`
	FieldOfStudy   string   `json:"field_of_study,omitempty"`
	GraduationDate string   `json:"graduation_date,omitempty"`
	GPA            string   `json:"gpa,omitempty"`
	Honors         []string `json:"honors,omitempty"`
}

// Project is an optional portfolio entry.
type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	URL          string   `json:"url,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
}

// Resume is the candidate document the pipeline tailors.
type Resume struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Location  string `json:"location,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	GitHub    string `json:"github,omitempty"`
	Portfolio string `json:"portfolio,omitempty"`

	Summary string `json:"professional_summary"`

	Experience []Experience `json:"experience"`
	Education  []Education  `json:"education,omitempty"`

	TechnicalSkills []string `json:"technical_skills"`
	SoftSkills      []string `json:"soft_skills,omitempty"`
	Tools           []string `json:"tools,omitempty"`
	Languages       []string `json:"languages,omitempty"`

	Certifications []string  `json:"certifications,omitempty"`
	Projects       []Project `json:"projects,omitempty"`
}

// Clone returns a deep copy so a tailoring pass never mutates the original.
func (r Resume) Clone() Resume {
	out := r
	out.Experience = make([]Experience, len(r.Experience))
	for i, exp := range r.Experience {
		out.Experience[i] = exp
		out.Experience[i].Bullets = append([]string{}, exp.Bullets...)
		out.Experience[i].Technologies = append([]string{}, exp.Technologies...)
	}
	out.Education = append([]Education{}, r.Education...)
	out.TechnicalSkills = append([]string{}, r.TechnicalSkills...)
	out.SoftSkills = append([]string{}, r.SoftSkills...)
	out.Tools = append([]string{}, r.Tools...)
	out.Languages = append([]string{}, r.Languages...)
	out.Certifications = append([]string{}, r.Certifications...)
	out.Projects = append([]Project{}, r.Projects...)
	return out
}

// Validate checks the fields every consumer relies on.
func (r Resume) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("model: resume name is required")
	}
	if r.Email == "" {
		return fmt.Errorf("model: resume email is required for %s", r.Name)
	}
	return nil
}

// ResumeFromJSON decodes a resume at the boundary.
func ResumeFromJSON(data []byte) (Resume, error) {
	var r Resume
	if err := json.Unmarshal(data, &r); err != nil {
		return Resume{}, fmt.Errorf("model: decode resume: %w", err)
	}
	if err := r.Validate(); err != nil {
		return Resume{}, err
	}
	return r, nil
}

// PoolEntry pairs a parsed resume with its pool metadata. It is the unit
// the matcher scores and the pipeline selects from.
type PoolEntry struct {
	Resume   Resume
	Metadata ResumeMetadata
}

// ResumeMetadata describes one entry in the resume pool.
type ResumeMetadata struct {
	ResumeID     string    `json:"resume_id"`
	CreatedAt    time.Time `json:"created_at"`
	BaseResumeID string    `json:"base_resume_id,omitempty"`

	Company  string `json:"company,omitempty"`
	JobTitle string `json:"job_title,omitempty"`

	Tags           []string `json:"tags,omitempty"`
	TargetRole     string   `json:"target_role,omitempty"`
	TargetIndustry string   `json:"target_industry,omitempty"`
	KeySkills      []string `json:"key_skills_highlighted,omitempty"`

	ATSOptimized bool    `json:"ats_optimized"`
	MatchScore   float64 `json:"match_score,omitempty"`

	FilePath string `json:"file_path"`
}
