package scene

import (
	"mepdesign/internal/geometry"
	"mepdesign/internal/mep"
)

// Discipline palettes. Mechanical is the red family, electrical the blue
// family, plumbing varies by fixture type.
const (
	colorAirHandler = "#cc2222"
	colorDiffuser   = "#ee6666"
	colorDuct       = "#dd4444"

	colorPanel   = "#2244cc"
	colorOutlet  = "#4466ee"
	colorLight   = "#ffee44"
	colorConduit = "#3355dd"

	colorToilet      = "#eeeeee"
	colorSink        = "#999999"
	colorWaterSource = "#2288ee"
	colorDrain       = "#22aa55"
	colorFixture     = "#bbbbbb"
	colorWaterPipe   = "#44aaff"
	colorDrainPipe   = "#44cc77"

	colorLabel = "#ffffff"
)

// Tube radii fixed per discipline. Pipe radius derives from the pipe
// diameter instead (diameter/10, default when absent below).
const (
	ductTubeRadius     = 0.3
	conduitTubeRadius  = 0.05
	defaultPipeRadius  = 0.1
	pipeDiameterToTube = 10.0
)

// Components sit on the floor plane, z synthesized as 0.
func at(p geometry.Point) Vec3 {
	return Vec3{p.X, p.Y, 0}
}

func tubePath(path []geometry.Point) []Vec3 {
	out := make([]Vec3, len(path))
	for i, p := range path {
		out[i] = at(p)
	}
	return out
}

// Build assembles the complete scene for a design and frames the camera
// around it.
func Build(design *mep.Design) *Scene {
	s := New()
	if design != nil {
		AddMechanicalSystem(s, design.Mechanical)
		AddElectricalSystem(s, design.Electrical)
		AddPlumbingSystem(s, design.Plumbing)
	}
	s.Camera = FrameScene(s)
	return s
}

// AddMechanicalSystem adds air handlers, diffusers, and ducts. Nil or absent
// sub-arrays add nothing.
func AddMechanicalSystem(s *Scene, design *mep.MechanicalDesign) {
	if design == nil {
		return
	}
	for _, ahu := range design.AirHandlers {
		s.AddBox(ahu.ID, colorAirHandler, at(ahu.Position), Vec3{2, 2, 2})
		s.AddLabel(ahu.ID, colorLabel, Vec3{ahu.Position.X, ahu.Position.Y, 1.5})
	}
	for _, diffuser := range design.Diffusers {
		s.AddCylinder(diffuser.ID, colorDiffuser, at(diffuser.Position), 0.3, 0.2)
	}
	for _, duct := range design.Ducts {
		s.AddTube(duct.ID, colorDuct, tubePath(duct.Path), ductTubeRadius)
	}
}

// AddElectricalSystem adds panels, outlets, lights, and conduits.
func AddElectricalSystem(s *Scene, design *mep.ElectricalDesign) {
	if design == nil {
		return
	}
	for _, panel := range design.Panels {
		s.AddBox(panel.ID, colorPanel, at(panel.Position), Vec3{1, 1.5, 0.3})
		s.AddLabel(panel.ID, colorLabel, Vec3{panel.Position.X, panel.Position.Y, 1.2})
	}
	for _, outlet := range design.Outlets {
		s.AddBox(outlet.ID, colorOutlet, at(outlet.Position), Vec3{0.3, 0.3, 0.3})
	}
	for _, light := range design.Lights {
		s.AddSphere(light.ID, colorLight, at(light.Position), 0.2)
	}
	for _, conduit := range design.Conduits {
		s.AddTube(conduit.ID, colorConduit, tubePath(conduit.Path), conduitTubeRadius)
	}
}

// AddPlumbingSystem adds fixtures with type-specific shapes and pipes whose
// tube radius follows the pipe diameter.
func AddPlumbingSystem(s *Scene, design *mep.PlumbingDesign) {
	if design == nil {
		return
	}
	for _, fixture := range design.Fixtures {
		switch fixture.Type {
		case mep.FixtureToilet:
			s.AddCylinder(fixture.ID, colorToilet, at(fixture.Position), 0.4, 0.4)
		case mep.FixtureSink:
			s.AddBox(fixture.ID, colorSink, at(fixture.Position), Vec3{0.6, 0.4, 0.3})
		case mep.FixtureWaterSource:
			s.AddSphere(fixture.ID, colorWaterSource, at(fixture.Position), 0.3)
			s.AddLabel(fixture.ID, colorLabel, Vec3{fixture.Position.X, fixture.Position.Y, 0.8})
		case mep.FixtureDrain:
			s.AddSphere(fixture.ID, colorDrain, at(fixture.Position), 0.3)
			s.AddLabel(fixture.ID, colorLabel, Vec3{fixture.Position.X, fixture.Position.Y, 0.8})
		default:
			s.AddSphere(fixture.ID, colorFixture, at(fixture.Position), 0.25)
		}
	}
	for _, pipe := range design.Pipes {
		radius := defaultPipeRadius
		if pipe.Diameter > 0 {
			radius = pipe.Diameter / pipeDiameterToTube
		}
		color := colorWaterPipe
		if mep.IsDrainPipe(pipe.Type) {
			color = colorDrainPipe
		}
		s.AddTube(pipe.ID, color, tubePath(pipe.Path), radius)
	}
}
