// Package mep generates mechanical, electrical, and plumbing designs from
// blueprint spatial data, building code rules, and user requirements.
package mep

import (
	"mepdesign/internal/blueprint"
	"mepdesign/internal/buildingcode"
	"mepdesign/internal/geometry"
	"mepdesign/internal/logging"
	"mepdesign/internal/pathfinding"
)

// Engine produces MEP designs for one building. The grid is built once from
// the walls and shared by all three generators.
type Engine struct {
	spatial      *blueprint.SpatialData
	rules        []buildingcode.Rule
	requirements Requirements
	grid         *pathfinding.Grid
	utility      geometry.Point
}

// NewEngine prepares an engine for the given inputs.
func NewEngine(spatial *blueprint.SpatialData, rules []buildingcode.Rule, requirements Requirements) *Engine {
	e := &Engine{
		spatial:      spatial,
		rules:        rules,
		requirements: requirements,
		grid:         pathfinding.BuildGrid(spatial.Walls),
	}
	e.utility = e.findUtilityLocation()
	return e
}

// Generate runs all three discipline generators.
func (e *Engine) Generate() *Design {
	logging.Info("Generating MEP design: %d spaces, %d walls, %d code rules",
		len(e.spatial.Spaces), len(e.spatial.Walls), len(e.rules))

	return &Design{
		Mechanical: e.generateMechanical(),
		Electrical: e.generateElectrical(),
		Plumbing:   e.generatePlumbing(),
	}
}

// findUtilityLocation picks the spot where central equipment (AHU, panel,
// water main) is placed: the centroid of a named utility room when one
// exists, otherwise just inside the minimum corner of the layout, otherwise
// the origin.
func (e *Engine) findUtilityLocation() geometry.Point {
	for _, space := range e.spatial.Spaces {
		if space.NameMatches("utility", "mechanical", "electrical") {
			return space.Vertices.Centroid()
		}
	}

	var points []geometry.Point
	for _, wall := range e.spatial.Walls {
		points = append(points, wall.Start, wall.End)
	}
	for _, space := range e.spatial.Spaces {
		points = append(points, space.Vertices...)
	}

	if b, ok := geometry.BoundsOf(points); ok {
		return geometry.Point{X: b.MinX + 1, Y: b.MinY + 1}
	}
	return geometry.Point{}
}

// route finds a path between two component positions on the shared grid.
func (e *Engine) route(from, to geometry.Point) []geometry.Point {
	return pathfinding.FindPath(from, to, e.grid, pathfinding.AlgorithmAStar)
}

// totalCoolingLoad sums the cooling load over all spaces using the
// configured load per unit area.
func (e *Engine) totalCoolingLoad() float64 {
	loadPerArea := e.requirements.Mechanical.CoolingLoad
	if loadPerArea == 0 {
		loadPerArea = DefaultCoolingLoad
	}

	total := 0.0
	for _, space := range e.spatial.Spaces {
		total += spaceArea(space) * loadPerArea
	}
	return total
}

// spaceArea returns the polygon area of a space, with the historical
// fallback for spaces without vertices.
func spaceArea(space blueprint.Space) float64 {
	if len(space.Vertices) >= 3 {
		return space.Vertices.Area()
	}
	return 100
}

// spacePerimeter returns the polygon perimeter of a space, with the
// historical fallback for spaces without vertices.
func spacePerimeter(space blueprint.Space) float64 {
	if len(space.Vertices) >= 2 {
		return space.Vertices.Perimeter()
	}
	return 40
}
