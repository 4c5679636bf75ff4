// Package blueprint extracts spatial data (spaces, walls, doors, windows)
// from uploaded architectural drawings. ASCII DXF content is parsed directly;
// formats that need a full CAD kernel (binary DWG, RVT, IFC geometry) fall
// back to a fixed sample layout so the rest of the pipeline stays usable.
package blueprint

import (
	"fmt"
	"path/filepath"
	"strings"

	"mepdesign/internal/geometry"
	"mepdesign/internal/logging"
)

// Parse reads a blueprint file and extracts spatial data based on its
// extension. Unsupported extensions are an error; supported extensions never
// fail outright — unparseable content degrades to the placeholder layout.
func Parse(path string) (*SpatialData, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".dxf", ".dwg":
		data, err := ParseDXF(path)
		if err != nil {
			logging.Warning("Failed to parse %s as DXF, using placeholder layout: %v", filepath.Base(path), err)
			return PlaceholderSpatialData(), nil
		}
		if data.IsEmpty() {
			logging.Warning("No entities found in %s, using placeholder layout", filepath.Base(path))
			return PlaceholderSpatialData(), nil
		}
		return data, nil
	case ".ifc":
		logging.Warning("IFC geometry extraction is not implemented, using placeholder layout")
		return PlaceholderSpatialData(), nil
	case ".rvt":
		logging.Warning("Revit parsing requires the Revit API, using placeholder layout")
		return PlaceholderSpatialData(), nil
	default:
		return nil, fmt.Errorf("unsupported blueprint format: %s", filepath.Ext(path))
	}
}

// PlaceholderSpatialData returns a fixed four-room residential layout used
// when a drawing cannot be parsed. The layout includes a bathroom so the
// plumbing generator always has a target space.
func PlaceholderSpatialData() *SpatialData {
	return &SpatialData{
		Spaces: []Space{
			{Type: "space", ID: "1", Name: "Living Room", Vertices: geometry.Polygon{{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 5, Y: 4}, {X: 0, Y: 4}}},
			{Type: "space", ID: "2", Name: "Kitchen", Vertices: geometry.Polygon{{X: 5, Y: 0}, {X: 9, Y: 0}, {X: 9, Y: 4}, {X: 5, Y: 4}}},
			{Type: "space", ID: "3", Name: "Bathroom", Vertices: geometry.Polygon{{X: 0, Y: 4}, {X: 3, Y: 4}, {X: 3, Y: 7}, {X: 0, Y: 7}}},
			{Type: "space", ID: "4", Name: "Bedroom", Vertices: geometry.Polygon{{X: 3, Y: 4}, {X: 9, Y: 4}, {X: 9, Y: 7}, {X: 3, Y: 7}}},
		},
		Walls: []Wall{
			{Type: "wall", Start: geometry.Point{X: 0, Y: 0}, End: geometry.Point{X: 9, Y: 0}},
			{Type: "wall", Start: geometry.Point{X: 9, Y: 0}, End: geometry.Point{X: 9, Y: 7}},
			{Type: "wall", Start: geometry.Point{X: 9, Y: 7}, End: geometry.Point{X: 0, Y: 7}},
			{Type: "wall", Start: geometry.Point{X: 0, Y: 7}, End: geometry.Point{X: 0, Y: 0}},
			{Type: "wall", Start: geometry.Point{X: 5, Y: 0}, End: geometry.Point{X: 5, Y: 4}},
			{Type: "wall", Start: geometry.Point{X: 0, Y: 4}, End: geometry.Point{X: 9, Y: 4}},
			{Type: "wall", Start: geometry.Point{X: 3, Y: 4}, End: geometry.Point{X: 3, Y: 7}},
		},
		Doors: []Opening{
			{Type: "door", Position: geometry.Point{X: 2, Y: 0}, Rotation: 0, Width: 0.9},
			{Type: "door", Position: geometry.Point{X: 5, Y: 2}, Rotation: 90, Width: 0.8},
			{Type: "door", Position: geometry.Point{X: 1.5, Y: 4}, Rotation: 0, Width: 0.8},
			{Type: "door", Position: geometry.Point{X: 6, Y: 4}, Rotation: 0, Width: 0.8},
		},
		Windows: []Opening{
			{Type: "window", Position: geometry.Point{X: 4, Y: 0}, Rotation: 0, Width: 1.2},
			{Type: "window", Position: geometry.Point{X: 7, Y: 0}, Rotation: 0, Width: 1.2},
			{Type: "window", Position: geometry.Point{X: 9, Y: 2}, Rotation: 90, Width: 1.0},
			{Type: "window", Position: geometry.Point{X: 9, Y: 6}, Rotation: 90, Width: 1.0},
			{Type: "window", Position: geometry.Point{X: 6, Y: 7}, Rotation: 0, Width: 1.2},
		},
	}
}
