package agent

import (
	"strings"

	"github.com/tailorloom/tailorloom/internal/industry"
	"github.com/tailorloom/tailorloom/internal/model"
)

func testProfile() industry.Profile {
	return industry.Profile{
		Industry:    "healthcare",
		DisplayName: "Healthcare",
		Acronyms:    map[string]string{"EHR": "Electronic Health Record"},
		SkillCategories: map[string]industry.SkillCategory{
			"clinical_systems": {Priority: "high", Skills: []string{"Epic", "HL7", "FHIR"}},
			"general":          {Priority: "low", Skills: []string{"Excel"}},
		},
		ActionVerbs:      []string{"Streamlined", "Implemented", "Reduced"},
		ImpactfulMetrics: []string{"patient outcomes improved by X%", "processing time reduced by X hours"},
		PrimaryRoles:     []string{"Clinical Data Analyst"},
		ResumeTips: map[string][]string{
			"summary":    {"Lead with clinical domain expertise"},
			"experience": {"Quantify patient impact"},
		},
	}
}

func testResume() model.Resume {
	return model.Resume{
		Name:    "Dana Rivera",
		Email:   "dana@example.com",
		Summary: "Data analyst with five years in hospital operations.",
		Experience: []model.Experience{
			{
				Company:      "St. Luke's",
				Title:        "Data Analyst",
				StartDate:    "2021-03",
				Bullets:      []string{"Built dashboards for bed utilization", "Maintained nightly ETL jobs"},
				Technologies: []string{"SQL", "Tableau"},
			},
			{
				Company:   "Harborview",
				Title:     "Reporting Specialist",
				StartDate: "2018-06",
				EndDate:   "2021-02",
				Bullets:   []string{"Produced monthly compliance reports"},
			},
		},
		Education: []model.Education{
			{Institution: "UW", Degree: "BS", FieldOfStudy: "Statistics"},
		},
		TechnicalSkills: []string{"SQL", "Tableau", "Epic", "Python"},
	}
}

func contains(haystack, needle string) bool {
	return strings.Contains(haystack, needle)
}
