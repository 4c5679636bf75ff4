package mep

import "mepdesign/internal/geometry"

// Design is the full generated MEP design, keyed by discipline. It is the
// payload served by GET /api/design/{projectId} and stored per discipline in
// the mep_designs table.
type Design struct {
	Mechanical *MechanicalDesign `json:"mechanical,omitempty"`
	Electrical *ElectricalDesign `json:"electrical,omitempty"`
	Plumbing   *PlumbingDesign   `json:"plumbing,omitempty"`
}

// MechanicalDesign holds the HVAC layout.
type MechanicalDesign struct {
	AirHandlers []AirHandler `json:"air_handlers"`
	Diffusers   []Diffuser   `json:"diffusers"`
	Ducts       []Duct       `json:"ducts"`
}

// AirHandler is a central air handling unit.
type AirHandler struct {
	ID       string         `json:"id"`
	Type     string         `json:"type"`
	Position geometry.Point `json:"position"`
	Capacity float64        `json:"capacity"`
}

// Diffuser is a supply air outlet in a space.
type Diffuser struct {
	ID       string         `json:"id"`
	Type     string         `json:"type"`
	Position geometry.Point `json:"position"`
	FlowRate float64        `json:"flow_rate"`
}

// Duct is a supply run from an air handler to a diffuser.
type Duct struct {
	ID       string           `json:"id"`
	Type     string           `json:"type"`
	Path     []geometry.Point `json:"path"`
	Diameter float64          `json:"diameter"`
	Source   string           `json:"source"`
	Target   string           `json:"target"`
}

// ElectricalDesign holds panels, devices, and conduit runs.
type ElectricalDesign struct {
	Panels   []Panel   `json:"panels"`
	Outlets  []Outlet  `json:"outlets"`
	Lights   []Light   `json:"lights"`
	Conduits []Conduit `json:"conduits"`
}

// Panel is a distribution panel.
type Panel struct {
	ID       string         `json:"id"`
	Type     string         `json:"type"`
	Position geometry.Point `json:"position"`
	Rating   float64        `json:"rating"`
}

// Outlet is a wall receptacle assigned to a circuit.
type Outlet struct {
	ID       string         `json:"id"`
	Type     string         `json:"type"`
	Position geometry.Point `json:"position"`
	Circuit  int            `json:"circuit"`
}

// Light is a ceiling fixture assigned to a lighting circuit.
type Light struct {
	ID       string         `json:"id"`
	Type     string         `json:"type"`
	Position geometry.Point `json:"position"`
	Circuit  int            `json:"circuit"`
}

// Conduit is a raceway from the panel to a device.
type Conduit struct {
	ID     string           `json:"id"`
	Type   string           `json:"type"`
	Path   []geometry.Point `json:"path"`
	Size   float64          `json:"size"`
	Source string           `json:"source"`
	Target string           `json:"target"`
}

// PlumbingDesign holds fixtures and pipe runs.
type PlumbingDesign struct {
	Fixtures []Fixture `json:"fixtures"`
	Pipes    []Pipe    `json:"pipes"`
}

// Fixture is a plumbing fixture or service connection point.
type Fixture struct {
	ID       string         `json:"id"`
	Type     string         `json:"type"`
	Position geometry.Point `json:"position"`
}

// Pipe is a supply or drain run between fixtures.
type Pipe struct {
	ID       string           `json:"id"`
	Type     string           `json:"type"`
	Path     []geometry.Point `json:"path"`
	Diameter float64          `json:"diameter,omitempty"`
	Source   string           `json:"source"`
	Target   string           `json:"target"`
}

// Pipe and fixture type strings used across generation and rendering.
const (
	FixtureWaterSource = "water_source"
	FixtureDrain       = "drain"
	FixtureToilet      = "toilet"
	FixtureSink        = "sink"

	PipeWater = "water_pipe"
	PipeDrain = "drain_pipe"
)

// IsDrainPipe reports whether a pipe type carries waste rather than supply.
func IsDrainPipe(pipeType string) bool {
	switch pipeType {
	case PipeDrain, "waste_pipe", "vent_pipe":
		return true
	default:
		return false
	}
}
