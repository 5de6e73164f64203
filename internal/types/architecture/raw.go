package architecture

// RawAnalysis is the four-quadrant structure extracted from a model response
// or produced by the fallback. Every list may be empty; numeric capability
// fields are nil when the source did not carry them.
type RawAnalysis struct {
	Business    BusinessQuadrant    `json:"businessArchitecture"`
	Application ApplicationQuadrant `json:"applicationArchitecture"`
	Data        DataQuadrant        `json:"dataArchitecture"`
	Technology  TechnologyQuadrant  `json:"technologyArchitecture"`
}

type BusinessQuadrant struct {
	Capabilities []RawCapability `json:"capabilities"`
	Processes    []string        `json:"processes"`
	Stakeholders []string        `json:"stakeholders"`
}

type ApplicationQuadrant struct {
	Applications []string `json:"applications"`
	Services     []string `json:"services"`
	Interfaces   []string `json:"interfaces"`
}

type DataQuadrant struct {
	Entities   []string `json:"entities"`
	Flows      []string `json:"flows"`
	Governance []string `json:"governance"`
}

type TechnologyQuadrant struct {
	Infrastructure []string `json:"infrastructure"`
	Platforms      []string `json:"platforms"`
	Networks       []string `json:"networks"`
}

type RawCapability struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Maturity    *float64 `json:"maturity,omitempty"`
	Importance  *float64 `json:"importance,omitempty"`
	Processes   []string `json:"processes"`
	Systems     []string `json:"systems"`
	Gaps        []string `json:"gaps"`
}

// Score returns a pointer to v, for building RawCapability literals.
func Score(v float64) *float64 { return &v }
