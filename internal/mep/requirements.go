package mep

// Requirements are the user-entered design parameters collected by the
// upload form. Field order matters: it defines the canonical serialized
// shape stored on the project row.
type Requirements struct {
	Mechanical MechanicalRequirements `json:"mechanical"`
	Electrical ElectricalRequirements `json:"electrical"`
	Plumbing   PlumbingRequirements   `json:"plumbing"`
}

// MechanicalRequirements configure the HVAC generator.
type MechanicalRequirements struct {
	HVACType    string  `json:"hvac_type"`
	CoolingLoad float64 `json:"cooling_load"`
}

// ElectricalRequirements configure the electrical generator.
type ElectricalRequirements struct {
	Voltage         float64 `json:"voltage"`
	LightingDensity float64 `json:"lighting_density"`
}

// PlumbingRequirements configure the plumbing generator.
type PlumbingRequirements struct {
	WaterPressure float64 `json:"water_pressure"`
	FixtureUnits  float64 `json:"fixture_units"`
}

// Defaults applied for any requirement the user left blank.
const (
	DefaultHVACType        = "forced_air"
	DefaultCoolingLoad     = 400
	DefaultVoltage         = 120
	DefaultLightingDensity = 1.5
	DefaultWaterPressure   = 40
	DefaultFixtureUnits    = 20
)

// DefaultRequirements returns the requirement set with every field at its
// default value.
func DefaultRequirements() Requirements {
	return Requirements{
		Mechanical: MechanicalRequirements{
			HVACType:    DefaultHVACType,
			CoolingLoad: DefaultCoolingLoad,
		},
		Electrical: ElectricalRequirements{
			Voltage:         DefaultVoltage,
			LightingDensity: DefaultLightingDensity,
		},
		Plumbing: PlumbingRequirements{
			WaterPressure: DefaultWaterPressure,
			FixtureUnits:  DefaultFixtureUnits,
		},
	}
}
