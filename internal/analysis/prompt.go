package analysis

import (
	"fmt"
	"strings"

	"archlens/internal/llmtool"
	arch "archlens/internal/types/architecture"
)

// scenarioSchema is reproduced verbatim in every scenario prompt.
const scenarioSchema = `{
  "businessArchitecture": {
    "capabilities": [
      {"name": "string", "description": "string", "maturity": 0, "importance": 0, "processes": ["string"], "systems": ["string"], "gaps": ["string"]}
    ],
    "processes": ["string"],
    "stakeholders": ["string"]
  },
  "applicationArchitecture": {"applications": ["string"], "services": ["string"], "interfaces": ["string"]},
  "dataArchitecture": {"entities": ["string"], "flows": ["string"], "governance": ["string"]},
  "technologyArchitecture": {"infrastructure": ["string"], "platforms": ["string"], "networks": ["string"]},
  "recommendations": ["string"],
  "risks": ["string"],
  "opportunities": ["string"],
  "visionTitle": "string",
  "visionDescription": "string",
  "objectives": ["string"],
  "constraints": ["string"],
  "assumptions": ["string"],
  "timeline": [
    {"phase": "string", "duration": "string", "deliverables": ["string"], "status": "planned | in-progress | completed"}
  ]
}`

const scenarioExampleInput = `Framework: TOGAF 9.2
Scenario:
An insurer wants customers to file and track claims online instead of by phone.`

const scenarioExampleOutput = `{"businessArchitecture":{"capabilities":[{"name":"Claims Handling","description":"Intake, assessment and settlement of claims","maturity":40,"importance":90,"processes":["Claim intake","Claim assessment"],"systems":["Claims System"],"gaps":["No self-service intake"]}],"processes":["Claim intake","Claim assessment"],"stakeholders":["Policyholders","Claims Adjusters"]},
"applicationArchitecture":{"applications":["Customer Portal","Claims System"],"services":["Claims API"],"interfaces":["REST"]},
"dataArchitecture":{"entities":["Claim","Policy"],"flows":["Portal to Claims API"],"governance":["Claim document retention"]},
"technologyArchitecture":{"infrastructure":["Cloud Hosting"],"platforms":["Kubernetes"],"networks":["Public HTTPS"]},
"recommendations":["Expose claim intake through the portal first"],"risks":["Legacy claims system integration"],"opportunities":["Faster settlement"],
"visionTitle":"Digital Claims","visionDescription":"Customers file and track claims online end to end.",
"objectives":["Cut phone-based claims"],"constraints":["Regulatory retention rules"],"assumptions":["Policy data is available via API"],
"timeline":[{"phase":"Online intake","duration":"3 months","deliverables":["Portal claim form"],"status":"planned"}]}`

// scenarioResponse documents the top-level keys for the OUTPUT section.
type scenarioResponse struct {
	Business          any      `json:"businessArchitecture" prompt_type:"object" prompt_desc:"capabilities[], processes[], stakeholders[]."`
	Application       any      `json:"applicationArchitecture" prompt_type:"object" prompt_desc:"applications[], services[], interfaces[]."`
	Data              any      `json:"dataArchitecture" prompt_type:"object" prompt_desc:"entities[], flows[], governance[]."`
	Technology        any      `json:"technologyArchitecture" prompt_type:"object" prompt_desc:"infrastructure[], platforms[], networks[]."`
	Recommendations   []string `json:"recommendations" prompt_desc:"Concrete next steps."`
	Risks             []string `json:"risks" prompt_desc:"Architecture and delivery risks."`
	Opportunities     []string `json:"opportunities" prompt_desc:"Improvement opportunities."`
	VisionTitle       string   `json:"visionTitle" prompt_desc:"Short title of the target architecture vision."`
	VisionDescription string   `json:"visionDescription" prompt_desc:"One paragraph describing the target state."`
	Objectives        []string `json:"objectives"`
	Constraints       []string `json:"constraints"`
	Assumptions       []string `json:"assumptions"`
	Timeline          any      `json:"timeline" prompt_type:"[]Phase" prompt_desc:"Ordered delivery phases with status planned, in-progress or completed."`
}

var scenarioPromptSpec = llmtool.ApplyPresets(llmtool.StructuredPromptSpec{
	Purpose:      "Analyze a business scenario and describe its enterprise architecture across the business, application, data and technology layers.",
	OutputFields: llmtool.MustFieldsFromStruct(scenarioResponse{}),
	Constraints: []string{
		"Use exactly the top-level keys of the schema in OUTPUT_FORMAT.",
		"Every list may be empty but must be present.",
	},
	Rules: []string{
		"Ground every element in the scenario; prefer fewer, specific items over generic filler.",
		"Name capabilities as business abilities (nouns), not projects.",
	},
	Assumptions: []string{"If the scenario is vague, state assumptions in the assumptions list."},
	Language:    "English",
	Examples:    []llmtool.PromptExample{{Input: scenarioExampleInput, Output: scenarioExampleOutput}},
}, llmtool.PresetStrictJSON(), llmtool.PresetScores())

var questionPromptSpec = llmtool.ApplyPresets(llmtool.StructuredPromptSpec{
	Purpose:      "Answer an enterprise architecture question as a strategy coach.",
	OutputFormat: "Plain text.",
	Language:     "English",
}, llmtool.PresetConcise())

// ScenarioPrompt builds the analysis prompt for scenario under fw.
func ScenarioPrompt(fw arch.Framework, scenario string) (string, error) {
	spec := scenarioPromptSpec
	spec.Background = FrameworkContext(fw)
	spec.OutputFormat = "JSON object matching this schema:\n" + scenarioSchema
	input := fmt.Sprintf("Framework: %s\nScenario:\n%s", fw.DisplayName(), scenario)
	return llmtool.Render(spec, input)
}

// QuestionPrompt builds the coaching prompt for a free-form question.
func QuestionPrompt(fw arch.Framework, question string) (string, error) {
	spec := questionPromptSpec
	spec.Background = FrameworkContext(fw)
	return llmtool.Render(spec, "Question: "+strings.TrimSpace(question))
}
