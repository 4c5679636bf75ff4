// Package forms validates submitted form values and builds the requirements
// payload for design generation. Validators are constructed per form with
// explicit rules rather than discovered by field-name convention, so each
// page wires exactly the checks it needs.
package forms

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"mepdesign/internal/mep"
)

// Allowed upload extensions per field, lowercase without the dot.
var (
	BlueprintExtensions    = []string{"dwg", "dxf", "rvt", "ifc"}
	BuildingCodeExtensions = []string{"pdf", "docx", "txt"}
)

// FieldError is one validation failure tied to a named field.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Result collects validation outcomes. Blocking errors prevent the
// submission from being processed; warnings are reported but do not.
type Result struct {
	Errors   []FieldError
	Warnings []FieldError
}

// Valid reports whether the submission may proceed.
func (r *Result) Valid() bool {
	return len(r.Errors) == 0
}

func (r *Result) addError(field, message string) {
	r.Errors = append(r.Errors, FieldError{Field: field, Message: message})
}

func (r *Result) addWarning(field, message string) {
	r.Warnings = append(r.Warnings, FieldError{Field: field, Message: message})
}

// ErrorFor returns the blocking error message for a field, empty when none.
func (r *Result) ErrorFor(field string) string {
	for _, e := range r.Errors {
		if e.Field == field {
			return e.Message
		}
	}
	return ""
}

// Validator checks one form submission.
type Validator struct {
	result Result
	// strictExtensions promotes extension mismatches from warnings to
	// blocking errors. Off by default: the parser re-checks extensions
	// server-side, so a mismatch only warns.
	strictExtensions bool
}

// NewValidator returns a validator with the default lenient extension
// policy.
func NewValidator() *Validator {
	return &Validator{}
}

// NewStrictValidator returns a validator that rejects submissions with
// disallowed upload extensions.
func NewStrictValidator() *Validator {
	return &Validator{strictExtensions: true}
}

// Require checks that a text value is non-empty after trimming whitespace.
func (v *Validator) Require(field, value string) {
	if strings.TrimSpace(value) == "" {
		v.result.addError(field, "This field is required")
	}
}

// CheckExtension checks an uploaded filename against an allow-list. An empty
// filename passes (uploads are optional); a mismatch warns or, under the
// strict policy, blocks.
func (v *Validator) CheckExtension(field, filename string, allowed []string) {
	if filename == "" {
		return
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	for _, a := range allowed {
		if ext == a {
			return
		}
	}
	msg := fmt.Sprintf("Unsupported file type .%s, expected one of: %s", ext, strings.Join(allowed, ", "))
	if v.strictExtensions {
		v.result.addError(field, msg)
	} else {
		v.result.addWarning(field, msg)
	}
}

// Result returns the accumulated validation outcome.
func (v *Validator) Result() *Result {
	return &v.result
}

// ValidateProjectForm checks the project-creation form: name required,
// description optional.
func ValidateProjectForm(name string) *Result {
	v := NewValidator()
	v.Require("name", name)
	return v.Result()
}

// ValidateFeedbackForm checks the feedback form: component enum and a
// non-empty comment.
func ValidateFeedbackForm(component, comment string) *Result {
	v := NewValidator()
	switch component {
	case "mechanical", "electrical", "plumbing", "general":
	default:
		v.result.addError("component", "Unknown component")
	}
	v.Require("comment", comment)
	return v.Result()
}

// ValidateUploadForm checks the upload form's file fields against the
// extension allow-lists under the given policy.
func ValidateUploadForm(blueprintName, codeName string, strict bool) *Result {
	v := NewValidator()
	v.strictExtensions = strict
	v.CheckExtension("blueprint", blueprintName, BlueprintExtensions)
	v.CheckExtension("building_code", codeName, BuildingCodeExtensions)
	return v.Result()
}

// BuildRequirements assembles the requirements payload from submitted form
// values, applying the documented defaults for absent or empty fields.
func BuildRequirements(values map[string]string) mep.Requirements {
	req := mep.DefaultRequirements()

	if s := strings.TrimSpace(values["hvac_type"]); s != "" {
		req.Mechanical.HVACType = s
	}
	if f, ok := parseFloat(values["cooling_load"]); ok {
		req.Mechanical.CoolingLoad = f
	}
	if f, ok := parseFloat(values["voltage"]); ok {
		req.Electrical.Voltage = f
	}
	if f, ok := parseFloat(values["lighting_density"]); ok {
		req.Electrical.LightingDensity = f
	}
	if f, ok := parseFloat(values["water_pressure"]); ok {
		req.Plumbing.WaterPressure = f
	}
	if f, ok := parseFloat(values["fixture_units"]); ok {
		req.Plumbing.FixtureUnits = f
	}
	return req
}

// ParseRequirements decodes a serialized requirements JSON field, falling
// back to defaults when the field is empty or malformed.
func ParseRequirements(serialized string) mep.Requirements {
	if strings.TrimSpace(serialized) == "" {
		return mep.DefaultRequirements()
	}
	var req mep.Requirements
	if err := json.Unmarshal([]byte(serialized), &req); err != nil {
		return mep.DefaultRequirements()
	}
	fillDefaults(&req)
	return req
}

// fillDefaults replaces zero values with the documented defaults so a
// partial payload still yields a complete requirements set.
func fillDefaults(req *mep.Requirements) {
	if req.Mechanical.HVACType == "" {
		req.Mechanical.HVACType = mep.DefaultHVACType
	}
	if req.Mechanical.CoolingLoad == 0 {
		req.Mechanical.CoolingLoad = mep.DefaultCoolingLoad
	}
	if req.Electrical.Voltage == 0 {
		req.Electrical.Voltage = mep.DefaultVoltage
	}
	if req.Electrical.LightingDensity == 0 {
		req.Electrical.LightingDensity = mep.DefaultLightingDensity
	}
	if req.Plumbing.WaterPressure == 0 {
		req.Plumbing.WaterPressure = mep.DefaultWaterPressure
	}
	if req.Plumbing.FixtureUnits == 0 {
		req.Plumbing.FixtureUnits = mep.DefaultFixtureUnits
	}
}

func parseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
