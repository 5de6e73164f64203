package llmtool

// PromptPreset holds reusable constraints and rules for structured prompts.
type PromptPreset struct {
	Constraints []string
	Rules       []string
}

// ApplyPresets prepends preset constraints/rules to a structured prompt spec.
func ApplyPresets(spec StructuredPromptSpec, presets ...PromptPreset) StructuredPromptSpec {
	if len(presets) == 0 {
		return spec
	}
	var merged PromptPreset
	for _, p := range presets {
		merged.Constraints = append(merged.Constraints, p.Constraints...)
		merged.Rules = append(merged.Rules, p.Rules...)
	}
	spec.Constraints = append(merged.Constraints, spec.Constraints...)
	spec.Rules = append(merged.Rules, spec.Rules...)
	return spec
}

// PresetStrictJSON enforces strict JSON-only output.
func PresetStrictJSON() PromptPreset {
	return PromptPreset{
		Constraints: []string{
			"Return strict JSON only.",
			"Match the schema exactly; no extra top-level keys.",
			"No markdown, comments, or trailing commas.",
		},
	}
}

// PresetScores pins numeric scoring conventions.
func PresetScores() PromptPreset {
	return PromptPreset{
		Constraints: []string{
			"maturity and importance are integers from 0 to 100.",
		},
	}
}

// PresetConcise keeps conversational answers short.
func PresetConcise() PromptPreset {
	return PromptPreset{
		Rules: []string{
			"Answer in at most four sentences of plain text.",
			"Avoid guessing; if the question cannot be answered from the framework, say what is missing.",
		},
	}
}
