package analysis

import (
	"encoding/json"
	"strconv"
	"strings"

	arch "archlens/internal/types/architecture"
)

// response is the tolerant view of a parsed model reply. Absent keys stay at
// their zero value and are defaulted by the analyzer.
type response struct {
	Raw               arch.RawAnalysis
	Recommendations   []string
	Risks             []string
	Opportunities     []string
	VisionTitle       string
	VisionDescription string
	Objectives        []string
	Constraints       []string
	Assumptions       []string
	Timeline          []arch.Phase
}

func decodeResponse(obj map[string]any) response {
	var r response
	business := object(obj["businessArchitecture"])
	r.Raw.Business = arch.BusinessQuadrant{
		Capabilities: rawCapabilities(business["capabilities"]),
		Processes:    stringList(business["processes"]),
		Stakeholders: stringList(business["stakeholders"]),
	}
	app := object(obj["applicationArchitecture"])
	r.Raw.Application = arch.ApplicationQuadrant{
		Applications: stringList(app["applications"]),
		Services:     stringList(app["services"]),
		Interfaces:   stringList(app["interfaces"]),
	}
	data := object(obj["dataArchitecture"])
	r.Raw.Data = arch.DataQuadrant{
		Entities:   stringList(data["entities"]),
		Flows:      stringList(data["flows"]),
		Governance: stringList(data["governance"]),
	}
	tech := object(obj["technologyArchitecture"])
	r.Raw.Technology = arch.TechnologyQuadrant{
		Infrastructure: stringList(tech["infrastructure"]),
		Platforms:      stringList(tech["platforms"]),
		Networks:       stringList(tech["networks"]),
	}
	r.Recommendations = stringList(obj["recommendations"])
	r.Risks = stringList(obj["risks"])
	r.Opportunities = stringList(obj["opportunities"])
	r.VisionTitle = text(obj["visionTitle"])
	r.VisionDescription = text(obj["visionDescription"])
	r.Objectives = stringList(obj["objectives"])
	r.Constraints = stringList(obj["constraints"])
	r.Assumptions = stringList(obj["assumptions"])
	r.Timeline = phases(obj["timeline"])
	return r
}

func object(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func list(v any) []any {
	switch x := v.(type) {
	case []any:
		return x
	case nil:
		return nil
	}
	return []any{v}
}

// text renders scalars as strings; objects yield their "name" field.
func text(v any) string {
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case json.Number:
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	case map[string]any:
		return text(x["name"])
	}
	return ""
}

func stringList(v any) []string {
	items := list(v)
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s := text(it); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// number accepts JSON numbers and numeric strings ("75", "75%").
func number(v any) *float64 {
	switch x := v.(type) {
	case float64:
		return arch.Score(x)
	case json.Number:
		if f, err := x.Float64(); err == nil {
			return arch.Score(f)
		}
	case string:
		s := strings.TrimSuffix(strings.TrimSpace(x), "%")
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return arch.Score(f)
		}
	}
	return nil
}

func rawCapabilities(v any) []arch.RawCapability {
	items := list(v)
	out := make([]arch.RawCapability, 0, len(items))
	for _, it := range items {
		switch x := it.(type) {
		case map[string]any:
			out = append(out, arch.RawCapability{
				Name:        text(x["name"]),
				Description: text(x["description"]),
				Maturity:    number(x["maturity"]),
				Importance:  number(x["importance"]),
				Processes:   stringList(x["processes"]),
				Systems:     stringList(x["systems"]),
				Gaps:        stringList(x["gaps"]),
			})
		case string:
			if name := strings.TrimSpace(x); name != "" {
				out = append(out, arch.RawCapability{Name: name})
			}
		}
	}
	return out
}

func phases(v any) []arch.Phase {
	items := list(v)
	out := make([]arch.Phase, 0, len(items))
	for _, it := range items {
		m := object(it)
		if m == nil {
			if name := text(it); name != "" {
				out = append(out, arch.Phase{Phase: name, Deliverables: []string{}, Status: arch.PhasePlanned})
			}
			continue
		}
		out = append(out, arch.Phase{
			Phase:        text(m["phase"]),
			Duration:     text(m["duration"]),
			Deliverables: stringList(m["deliverables"]),
			Status:       arch.ParsePhaseStatus(text(m["status"])),
		})
	}
	return out
}
