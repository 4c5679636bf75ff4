// Package cad writes MEP designs out as CAD exchange files. The primary
// output is an ASCII DXF drawing with one layer per discipline; a JSON dump
// and a YAML summary are written alongside for web viewing and reporting.
package cad

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"mepdesign/internal/geometry"
	"mepdesign/internal/logging"
	"mepdesign/internal/mep"
)

// Discipline layer names and AutoCAD color indexes (red, blue, green).
const (
	LayerMechanical = "MECHANICAL"
	LayerElectrical = "ELECTRICAL"
	LayerPlumbing   = "PLUMBING"

	colorMechanical = 1
	colorElectrical = 5
	colorPlumbing   = 3
)

// Output file type keys returned by GenerateOutputs.
const (
	OutputDXF  = "DXF"
	OutputJSON = "JSON"
	OutputYAML = "YAML"
)

// GenerateOutputs writes every output file for a design into outputDir and
// returns a map from file type to path.
func GenerateOutputs(projectID int64, design *mep.Design, outputDir string) (map[string]string, error) {
	logging.Info("Generating CAD output for project %d", projectID)

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	outputs := make(map[string]string)
	base := fmt.Sprintf("project_%d_mep", projectID)

	dxfPath := filepath.Join(outputDir, base+".dxf")
	if err := GenerateDXF(dxfPath, design); err != nil {
		logging.Error("Failed to generate DXF file: %v", err)
	} else {
		outputs[OutputDXF] = dxfPath
	}

	jsonPath := filepath.Join(outputDir, base+".json")
	data, err := json.MarshalIndent(design, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode design: %w", err)
	}
	if err := os.WriteFile(jsonPath, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write JSON output: %w", err)
	}
	outputs[OutputJSON] = jsonPath

	yamlPath := filepath.Join(outputDir, base+".yaml")
	if err := writeSummary(yamlPath, design); err != nil {
		logging.Error("Failed to write design summary: %v", err)
	} else {
		outputs[OutputYAML] = yamlPath
	}

	return outputs, nil
}

// GenerateDXF writes the design as an ASCII DXF drawing.
func GenerateDXF(path string, design *mep.Design) error {
	w := newDXFWriter()
	w.AddLayer(LayerMechanical, colorMechanical)
	w.AddLayer(LayerElectrical, colorElectrical)
	w.AddLayer(LayerPlumbing, colorPlumbing)

	if design != nil {
		drawMechanical(w, design.Mechanical)
		drawElectrical(w, design.Electrical)
		drawPlumbing(w, design.Plumbing)
	}

	if err := w.Save(path); err != nil {
		return err
	}
	logging.Info("DXF file saved to %s", path)
	return nil
}

// drawMechanical renders AHUs as labeled rectangles, diffusers as labeled
// circles, and ducts as polylines.
func drawMechanical(w *dxfWriter, design *mep.MechanicalDesign) {
	if design == nil {
		return
	}
	for _, ahu := range design.AirHandlers {
		w.Rect(LayerMechanical, ahu.Position, 1, 1)
		w.Text(LayerMechanical, ahu.ID, ahu.Position, 0.25)
	}
	for _, diffuser := range design.Diffusers {
		w.Circle(LayerMechanical, diffuser.Position, 0.3)
		w.Text(LayerMechanical, diffuser.ID, geometry.Point{X: diffuser.Position.X, Y: diffuser.Position.Y - 0.4}, 0.15)
	}
	for _, duct := range design.Ducts {
		w.Polyline(LayerMechanical, duct.Path)
	}
}

// drawElectrical renders panels as labeled rectangles, outlets as small
// squares, lights as crossed circles, and conduits as polylines.
func drawElectrical(w *dxfWriter, design *mep.ElectricalDesign) {
	if design == nil {
		return
	}
	for _, panel := range design.Panels {
		w.Rect(LayerElectrical, panel.Position, 0.5, 0.75)
		w.Text(LayerElectrical, panel.ID, panel.Position, 0.2)
	}
	for _, outlet := range design.Outlets {
		w.Rect(LayerElectrical, outlet.Position, 0.15, 0.15)
	}
	for _, light := range design.Lights {
		w.Circle(LayerElectrical, light.Position, 0.2)
		w.Cross(LayerElectrical, light.Position, 0.15)
	}
	for _, conduit := range design.Conduits {
		w.Polyline(LayerElectrical, conduit.Path)
	}
}

// drawPlumbing renders fixtures with per-type symbols and pipes as polylines.
func drawPlumbing(w *dxfWriter, design *mep.PlumbingDesign) {
	if design == nil {
		return
	}
	for _, fixture := range design.Fixtures {
		switch fixture.Type {
		case mep.FixtureToilet:
			w.Ellipse(LayerPlumbing, fixture.Position, 0.4, 0.7)
		case mep.FixtureSink:
			w.Rect(LayerPlumbing, fixture.Position, 0.3, 0.2)
		case mep.FixtureWaterSource:
			w.Circle(LayerPlumbing, fixture.Position, 0.3)
			w.Circle(LayerPlumbing, fixture.Position, 0.05)
		case mep.FixtureDrain:
			w.Circle(LayerPlumbing, fixture.Position, 0.3)
			w.Cross(LayerPlumbing, fixture.Position, 0.2)
		}
	}
	for _, pipe := range design.Pipes {
		w.Polyline(LayerPlumbing, pipe.Path)
	}
}

// designSummary is the YAML report written next to the drawing files.
type designSummary struct {
	Mechanical struct {
		AirHandlers int `yaml:"air_handlers"`
		Diffusers   int `yaml:"diffusers"`
		Ducts       int `yaml:"ducts"`
	} `yaml:"mechanical"`
	Electrical struct {
		Panels   int `yaml:"panels"`
		Outlets  int `yaml:"outlets"`
		Lights   int `yaml:"lights"`
		Conduits int `yaml:"conduits"`
	} `yaml:"electrical"`
	Plumbing struct {
		Fixtures int `yaml:"fixtures"`
		Pipes    int `yaml:"pipes"`
	} `yaml:"plumbing"`
}

func writeSummary(path string, design *mep.Design) error {
	var summary designSummary
	if design != nil {
		if design.Mechanical != nil {
			summary.Mechanical.AirHandlers = len(design.Mechanical.AirHandlers)
			summary.Mechanical.Diffusers = len(design.Mechanical.Diffusers)
			summary.Mechanical.Ducts = len(design.Mechanical.Ducts)
		}
		if design.Electrical != nil {
			summary.Electrical.Panels = len(design.Electrical.Panels)
			summary.Electrical.Outlets = len(design.Electrical.Outlets)
			summary.Electrical.Lights = len(design.Electrical.Lights)
			summary.Electrical.Conduits = len(design.Electrical.Conduits)
		}
		if design.Plumbing != nil {
			summary.Plumbing.Fixtures = len(design.Plumbing.Fixtures)
			summary.Plumbing.Pipes = len(design.Plumbing.Pipes)
		}
	}

	data, err := yaml.Marshal(&summary)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
