// Package buildingcode extracts structured rules from uploaded building code
// documents. Plain text is parsed directly; PDF and DOCX extraction would
// need a document toolkit, so those formats fall back to the embedded default
// rule set.
package buildingcode

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"mepdesign/internal/logging"
)

// Rule is one structured building code requirement.
type Rule struct {
	Type        string  `json:"type" yaml:"type"`
	ID          string  `json:"id" yaml:"id"`
	Description string  `json:"description" yaml:"description"`
	Region      string  `json:"region" yaml:"region"`
	Values      []Value `json:"values" yaml:"values"`
}

// Value is a numeric quantity with its unit, extracted from rule text.
type Value struct {
	Value float64 `json:"value" yaml:"value"`
	Unit  string  `json:"unit" yaml:"unit"`
}

// Rule type codes, one per discipline plus a general bucket.
const (
	TypeMechanical = "M"
	TypeElectrical = "E"
	TypePlumbing   = "P"
	TypeGeneral    = "G"
)

var (
	sectionSplitRe = regexp.MustCompile(`\n\s*\n`)
	sectionIDRe    = regexp.MustCompile(`(\d+[.\d]*)\s+(.+?)(?:\n|$)`)
	valueUnitRe    = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*([a-zA-Z%]+)`)
)

var (
	mechanicalKeywords = []string{"hvac", "ventilation", "air conditioning", "heating", "duct", "fan", "air flow"}
	electricalKeywords = []string{"electrical", "voltage", "current", "circuit", "wire", "breaker", "panel", "conduit", "lighting"}
	plumbingKeywords   = []string{"plumbing", "pipe", "water", "drainage", "sanitary", "fixture", "valve", "vent"}
)

// Parse extracts rules from a building code document based on its extension.
func Parse(path string) ([]Rule, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read code file: %w", err)
		}
		rules := ParseText(string(content))
		if len(rules) == 0 {
			return DefaultRules(), nil
		}
		return rules, nil
	case ".pdf":
		logging.Warning("PDF text extraction is not implemented, using default rules")
		return DefaultRules(), nil
	case ".docx":
		logging.Warning("DOCX text extraction is not implemented, using default rules")
		return DefaultRules(), nil
	default:
		return nil, fmt.Errorf("unsupported building code format: %s", filepath.Ext(path))
	}
}

// ParseText splits code text into blank-line-separated sections and builds
// one rule per section: a leading dotted number becomes the rule id, keyword
// matching assigns the discipline, and number+unit pairs become values.
func ParseText(text string) []Rule {
	var rules []Rule
	for _, section := range sectionSplitRe.Split(text, -1) {
		section = strings.TrimSpace(section)
		if section == "" {
			continue
		}

		ruleID := ""
		if m := sectionIDRe.FindStringSubmatch(section); m != nil {
			ruleID = m[1]
		}

		rules = append(rules, Rule{
			Type:        ClassifyDiscipline(section),
			ID:          ruleID,
			Description: section,
			Region:      "General",
			Values:      ExtractValues(section),
		})
	}
	return rules
}

// ClassifyDiscipline assigns a rule to a discipline by keyword. Mechanical
// keywords win over electrical, which win over plumbing, matching the order
// fixtures like "duct ... panel clearance" were classified historically.
func ClassifyDiscipline(text string) string {
	lower := strings.ToLower(text)
	for _, kw := range mechanicalKeywords {
		if strings.Contains(lower, kw) {
			return TypeMechanical
		}
	}
	for _, kw := range electricalKeywords {
		if strings.Contains(lower, kw) {
			return TypeElectrical
		}
	}
	for _, kw := range plumbingKeywords {
		if strings.Contains(lower, kw) {
			return TypePlumbing
		}
	}
	return TypeGeneral
}

// ExtractValues pulls number+unit pairs ("15 cfm", "2.5 inches") from text.
func ExtractValues(text string) []Value {
	var values []Value
	for _, m := range valueUnitRe.FindAllStringSubmatch(text, -1) {
		var v float64
		fmt.Sscanf(m[1], "%g", &v)
		values = append(values, Value{Value: v, Unit: m[2]})
	}
	return values
}

// FilterByType returns the rules belonging to one discipline.
func FilterByType(rules []Rule, ruleType string) []Rule {
	var out []Rule
	for _, r := range rules {
		if r.Type == ruleType {
			out = append(out, r)
		}
	}
	return out
}
