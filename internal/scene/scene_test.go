package scene

import (
	"encoding/json"
	"math"
	"testing"

	"mepdesign/internal/geometry"
	"mepdesign/internal/mep"
)

func TestMechanicalOnlyPayload(t *testing.T) {
	design := &mep.Design{
		Mechanical: &mep.MechanicalDesign{
			AirHandlers: []mep.AirHandler{{ID: "AHU-1", Position: geometry.Point{X: 1, Y: 1}}},
			Diffusers:   []mep.Diffuser{{ID: "DIFF-1-1", Position: geometry.Point{X: 4, Y: 4}}},
		},
	}
	s := Build(design)

	for _, obj := range s.Objects {
		switch obj.Color {
		case colorPanel, colorOutlet, colorLight, colorConduit,
			colorToilet, colorSink, colorWaterSource, colorDrain, colorWaterPipe, colorDrainPipe:
			t.Errorf("Mechanical-only design produced non-mechanical primitive %+v", obj)
		}
	}
	if len(s.Objects) != 3 {
		t.Errorf("Expected box + label + cylinder, got %d objects", len(s.Objects))
	}
}

func TestSinglePointPathSkipped(t *testing.T) {
	s := New()
	AddMechanicalSystem(s, &mep.MechanicalDesign{
		Ducts: []mep.Duct{{ID: "DUCT-1-1", Path: []geometry.Point{{X: 1, Y: 1}}}},
	})
	if len(s.Objects) != 0 {
		t.Errorf("Single-point duct path should add nothing, got %d objects", len(s.Objects))
	}
}

func TestPipeTubeRadius(t *testing.T) {
	s := New()
	AddPlumbingSystem(s, &mep.PlumbingDesign{
		Pipes: []mep.Pipe{
			{ID: "WIDE", Type: mep.PipeWater, Diameter: 20, Path: []geometry.Point{{X: 0, Y: 0}, {X: 5, Y: 0}}},
			{ID: "DEFAULT", Type: mep.PipeWater, Path: []geometry.Point{{X: 0, Y: 0}, {X: 5, Y: 0}}},
		},
	})

	byName := make(map[string]Object)
	for _, obj := range s.Objects {
		byName[obj.Name] = obj
	}
	if got := byName["WIDE"].Radius; got != 2.0 {
		t.Errorf("Expected radius 2.0 for diameter 20, got %v", got)
	}
	if got := byName["DEFAULT"].Radius; got != 0.1 {
		t.Errorf("Expected default radius 0.1, got %v", got)
	}
}

func TestDrainPipesUseDrainColor(t *testing.T) {
	s := New()
	AddPlumbingSystem(s, &mep.PlumbingDesign{
		Pipes: []mep.Pipe{
			{ID: "D", Type: mep.PipeDrain, Path: []geometry.Point{{X: 0, Y: 0}, {X: 1, Y: 0}}},
			{ID: "W", Type: mep.PipeWater, Path: []geometry.Point{{X: 0, Y: 0}, {X: 1, Y: 0}}},
		},
	})
	colors := map[string]string{}
	for _, obj := range s.Objects {
		colors[obj.Name] = obj.Color
	}
	if colors["D"] == colors["W"] {
		t.Error("Drain and water pipes should be visually distinguishable")
	}
}

func TestUnknownFixtureFallsBack(t *testing.T) {
	s := New()
	AddPlumbingSystem(s, &mep.PlumbingDesign{
		Fixtures: []mep.Fixture{{ID: "F", Type: "bidet", Position: geometry.Point{X: 1, Y: 2}}},
	})
	if len(s.Objects) != 1 || s.Objects[0].Kind != KindSphere {
		t.Errorf("Unknown fixture type should render as the default shape, got %+v", s.Objects)
	}
}

func TestComponentsSitOnFloorPlane(t *testing.T) {
	s := New()
	AddElectricalSystem(s, &mep.ElectricalDesign{
		Outlets:  []mep.Outlet{{ID: "O", Position: geometry.Point{X: 3, Y: 4}}},
		Conduits: []mep.Conduit{{ID: "C", Path: []geometry.Point{{X: 0, Y: 0}, {X: 3, Y: 4}}}},
	})
	for _, obj := range s.Objects {
		if obj.Position[2] != 0 {
			t.Errorf("Object %s not on z=0 plane: %v", obj.Name, obj.Position)
		}
		for _, p := range obj.Path {
			if p[2] != 0 {
				t.Errorf("Path point of %s not on z=0 plane: %v", obj.Name, p)
			}
		}
	}
}

func TestCameraFraming(t *testing.T) {
	s := New()
	s.AddSphere("a", "#fff", Vec3{0, 0, 0}, 0)
	s.AddSphere("b", "#fff", Vec3{10, 4, 0}, 0)

	cam := FrameScene(s)
	if cam.Target != (Vec3{5, 2, 0}) {
		t.Errorf("Expected target at bounding-box center (5,2,0), got %v", cam.Target)
	}
	// Max dimension is 10, camera stands off at 2x along z
	if cam.Position != (Vec3{5, 2, 20}) {
		t.Errorf("Expected camera at (5,2,20), got %v", cam.Position)
	}
}

func TestCameraFramingEmptyScene(t *testing.T) {
	cam := FrameScene(New())
	if cam.Position[2] == 0 {
		t.Error("Empty scene camera should still stand off from the origin")
	}
}

func TestZoom(t *testing.T) {
	cam := Camera{Position: Vec3{0, 0, 10}, Target: Vec3{0, 0, 0}}

	in := cam.ZoomIn()
	if math.Abs(in.Position[2]-9) > 1e-9 {
		t.Errorf("Expected zoom-in distance 9, got %v", in.Position[2])
	}
	out := cam.ZoomOut()
	if math.Abs(out.Position[2]-11) > 1e-9 {
		t.Errorf("Expected zoom-out distance 11, got %v", out.Position[2])
	}
	// Zoom preserves the target
	if in.Target != cam.Target || out.Target != cam.Target {
		t.Error("Zoom must not move the target")
	}
}

func TestBoundsIncludeBoxExtents(t *testing.T) {
	s := New()
	s.AddBox("b", "#fff", Vec3{0, 0, 0}, Vec3{2, 4, 6})
	min, max, ok := s.Bounds()
	if !ok {
		t.Fatal("Expected bounds")
	}
	if min != (Vec3{-1, -2, -3}) || max != (Vec3{1, 2, 3}) {
		t.Errorf("Unexpected bounds %v..%v", min, max)
	}
}

func TestSceneJSONShape(t *testing.T) {
	design := &mep.Design{
		Plumbing: &mep.PlumbingDesign{
			Fixtures: []mep.Fixture{{ID: "WATER-MAIN", Type: mep.FixtureWaterSource, Position: geometry.Point{X: 1, Y: 1}}},
		},
	}
	data, err := json.Marshal(Build(design))
	if err != nil {
		t.Fatal(err)
	}

	var decoded struct {
		Objects []struct {
			Kind     string    `json:"kind"`
			Position []float64 `json:"position"`
		} `json:"objects"`
		Camera struct {
			Position []float64 `json:"position"`
			Target   []float64 `json:"target"`
		} `json:"camera"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Scene JSON does not decode: %v", err)
	}
	if len(decoded.Objects) == 0 {
		t.Fatal("Expected objects in scene JSON")
	}
	if len(decoded.Objects[0].Position) != 3 {
		t.Errorf("Positions must serialize as 3-element arrays, got %v", decoded.Objects[0].Position)
	}
	if len(decoded.Camera.Position) != 3 {
		t.Errorf("Camera position must serialize as a 3-element array")
	}
}
