package mep

import (
	"fmt"

	"mepdesign/internal/blueprint"
	"mepdesign/internal/geometry"
)

// Pipe diameters in inches for each run class.
const (
	sinkSupplyDiameter   = 0.75
	sinkDrainDiameter    = 1.5
	toiletDrainDiameter  = 3
	toiletSupplyDiameter = 0.5
)

// generatePlumbing places the water and drain mains at the utility location
// and a toilet/sink pair in every bathroom, with supply and drain pipes
// routed between them.
func (e *Engine) generatePlumbing() *PlumbingDesign {
	design := &PlumbingDesign{
		Fixtures: []Fixture{},
		Pipes:    []Pipe{},
	}

	waterMain := Fixture{
		ID:       "WATER-MAIN",
		Type:     FixtureWaterSource,
		Position: e.utility,
	}
	drainMain := Fixture{
		ID:       "DRAIN-MAIN",
		Type:     FixtureDrain,
		Position: geometry.Point{X: e.utility.X, Y: e.utility.Y + 1},
	}
	design.Fixtures = append(design.Fixtures, waterMain, drainMain)

	for i, space := range e.bathroomSpaces() {
		toilet := Fixture{
			ID:       fmt.Sprintf("TOILET-%d", i+1),
			Type:     FixtureToilet,
			Position: space.Vertices.PointAt(0.3),
		}
		sink := Fixture{
			ID:       fmt.Sprintf("SINK-%d", i+1),
			Type:     FixtureSink,
			Position: space.Vertices.PointAt(0.7),
		}
		design.Fixtures = append(design.Fixtures, toilet, sink)

		runs := []struct {
			id       string
			pipeType string
			from     geometry.Point
			to       geometry.Point
			diameter float64
			source   string
			target   string
		}{
			{fmt.Sprintf("WATER-PIPE-%d", i+1), PipeWater, waterMain.Position, sink.Position, sinkSupplyDiameter, waterMain.ID, sink.ID},
			{fmt.Sprintf("SINK-DRAIN-%d", i+1), PipeDrain, sink.Position, drainMain.Position, sinkDrainDiameter, sink.ID, drainMain.ID},
			{fmt.Sprintf("TOILET-DRAIN-%d", i+1), PipeDrain, toilet.Position, drainMain.Position, toiletDrainDiameter, toilet.ID, drainMain.ID},
			{fmt.Sprintf("TOILET-WATER-%d", i+1), PipeWater, waterMain.Position, toilet.Position, toiletSupplyDiameter, waterMain.ID, toilet.ID},
		}

		for _, run := range runs {
			path := e.route(run.from, run.to)
			if len(path) < 2 {
				continue
			}
			design.Pipes = append(design.Pipes, Pipe{
				ID:       run.id,
				Type:     run.pipeType,
				Path:     path,
				Diameter: run.diameter,
				Source:   run.source,
				Target:   run.target,
			})
		}
	}

	return design
}

// bathroomSpaces finds spaces to receive plumbing fixtures by name keyword.
// When no space is named, the third space is assumed to be a bathroom so the
// generator still produces a usable demo layout.
func (e *Engine) bathroomSpaces() []blueprint.Space {
	var bathrooms []blueprint.Space
	for _, space := range e.spatial.Spaces {
		if space.NameMatches("bath", "restroom", "toilet", "wc") {
			bathrooms = append(bathrooms, space)
		}
	}
	if len(bathrooms) == 0 && len(e.spatial.Spaces) > 2 {
		bathrooms = append(bathrooms, e.spatial.Spaces[2])
	}
	return bathrooms
}
