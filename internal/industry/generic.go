package industry

// Generic returns the built-in fallback profile used when no industry file
// matches. It carries broadly applicable keyword strategy so tailoring still
// produces sensible prompts without any configuration.
func Generic() Profile {
	return Profile{
		Industry:    "generic",
		DisplayName: "General",
		Description: "Cross-industry defaults used when no specific profile is configured.",
		SkillCategories: map[string]SkillCategory{
			"collaboration": {
				Priority: "high",
				Skills:   []string{"Cross-functional Collaboration", "Stakeholder Management", "Mentoring"},
			},
			"delivery": {
				Priority: "high",
				Skills:   []string{"Project Management", "Process Improvement", "Documentation"},
			},
		},
		PriorityKeywords: []string{
			"results-driven", "cross-functional", "data-informed",
			"stakeholder", "ownership", "process improvement",
		},
		ActionVerbs: []string{
			"Led", "Built", "Delivered", "Improved", "Reduced",
			"Launched", "Automated", "Streamlined", "Drove", "Designed",
		},
		ImpactfulMetrics: []string{
			"reduced X by N%", "saved $N annually", "served N users",
			"cut processing time from X to Y",
		},
		ResumeTips: map[string][]string{
			"summary": {
				"Lead with the role you are targeting, not your job history.",
				"Keep it under three sentences.",
			},
			"experience": {
				"Open every bullet with an action verb.",
				"Quantify outcomes wherever a number exists.",
			},
		},
	}
}
