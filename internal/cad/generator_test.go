package cad

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"mepdesign/internal/blueprint"
	"mepdesign/internal/geometry"
	"mepdesign/internal/mep"
)

func sampleDesign() *mep.Design {
	e := mep.NewEngine(blueprint.PlaceholderSpatialData(), nil, mep.DefaultRequirements())
	return e.Generate()
}

func TestGenerateOutputs(t *testing.T) {
	dir := t.TempDir()
	design := sampleDesign()

	outputs, err := GenerateOutputs(42, design, filepath.Join(dir, "out"))
	if err != nil {
		t.Fatalf("GenerateOutputs failed: %v", err)
	}

	for _, key := range []string{OutputDXF, OutputJSON, OutputYAML} {
		path, ok := outputs[key]
		if !ok {
			t.Fatalf("Missing %s output", key)
		}
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("Missing %s file: %v", key, err)
		}
		if info.Size() == 0 {
			t.Errorf("%s output is empty", key)
		}
	}

	if got := filepath.Base(outputs[OutputDXF]); got != "project_42_mep.dxf" {
		t.Errorf("Unexpected DXF filename %q", got)
	}

	// The JSON output must decode back into a design
	data, err := os.ReadFile(outputs[OutputJSON])
	if err != nil {
		t.Fatal(err)
	}
	var decoded mep.Design
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("JSON output does not decode: %v", err)
	}
	if decoded.Mechanical == nil || len(decoded.Mechanical.AirHandlers) != 1 {
		t.Errorf("JSON output lost the air handler")
	}
}

func TestGenerateDXFContent(t *testing.T) {
	design := sampleDesign()
	path := filepath.Join(t.TempDir(), "design.dxf")
	if err := GenerateDXF(path, design); err != nil {
		t.Fatalf("GenerateDXF failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)

	for _, layer := range []string{LayerMechanical, LayerElectrical, LayerPlumbing} {
		if !strings.Contains(content, layer) {
			t.Errorf("DXF output missing layer %s", layer)
		}
	}
	for _, label := range []string{"AHU-1", "PANEL-MAIN"} {
		if !strings.Contains(content, label) {
			t.Errorf("DXF output missing label %s", label)
		}
	}
	if !strings.HasSuffix(content, "0\nEOF\n") {
		t.Error("DXF output missing EOF marker")
	}
}

func TestGeneratedDXFParsesAsBlueprint(t *testing.T) {
	// The writer and the blueprint reader share the ASCII tag format, so a
	// generated drawing must at least survive a parse.
	design := sampleDesign()
	path := filepath.Join(t.TempDir(), "roundtrip.dxf")
	if err := GenerateDXF(path, design); err != nil {
		t.Fatal(err)
	}
	if _, err := blueprint.ParseDXF(path); err != nil {
		t.Errorf("Blueprint parser rejected generated DXF: %v", err)
	}
}

func TestGenerateDXFNilDesign(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.dxf")
	if err := GenerateDXF(path, nil); err != nil {
		t.Fatalf("GenerateDXF on nil design failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte("ENTITIES")) {
		t.Error("Empty drawing should still carry an entities section")
	}
}

func TestSummaryCounts(t *testing.T) {
	design := sampleDesign()
	path := filepath.Join(t.TempDir(), "summary.yaml")
	if err := writeSummary(path, design); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var summary designSummary
	if err := yaml.Unmarshal(data, &summary); err != nil {
		t.Fatalf("Summary does not decode: %v", err)
	}
	if summary.Mechanical.AirHandlers != 1 {
		t.Errorf("Expected 1 air handler in summary, got %d", summary.Mechanical.AirHandlers)
	}
	if summary.Electrical.Panels != 1 {
		t.Errorf("Expected 1 panel in summary, got %d", summary.Electrical.Panels)
	}
	if summary.Plumbing.Fixtures != len(design.Plumbing.Fixtures) {
		t.Errorf("Fixture count mismatch: %d vs %d", summary.Plumbing.Fixtures, len(design.Plumbing.Fixtures))
	}
}

func TestPolylineSkipsDegeneratePaths(t *testing.T) {
	w := newDXFWriter()
	w.AddLayer(LayerMechanical, colorMechanical)
	w.Polyline(LayerMechanical, []geometry.Point{{X: 1, Y: 1}})

	var buf bytes.Buffer
	if err := w.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "LWPOLYLINE") {
		t.Error("Single-point path should not produce a polyline")
	}
}
