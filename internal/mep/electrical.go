package mep

import (
	"fmt"
)

// Electrical layout constants: one outlet per 12 units of perimeter (min 2)
// spread across 3 receptacle circuits, one light per 50 square units (min 1)
// on lighting circuits numbered from 4.
const (
	outletPerimeterSpacing = 12
	outletCircuits         = 3
	lightCoverageArea      = 50
	lightingCircuitBase    = 4
	mainPanelRating        = 200
	outletConduitSize      = 0.75
	lightConduitSize       = 0.5
)

// generateElectrical places the main panel at the utility location, outlets
// around each space perimeter, lights across each space, and conduits routed
// from the panel to every device.
func (e *Engine) generateElectrical() *ElectricalDesign {
	design := &ElectricalDesign{
		Panels:   []Panel{},
		Outlets:  []Outlet{},
		Lights:   []Light{},
		Conduits: []Conduit{},
	}

	panel := Panel{
		ID:       "PANEL-MAIN",
		Type:     "panel",
		Position: e.utility,
		Rating:   mainPanelRating,
	}
	design.Panels = append(design.Panels, panel)

	for i, space := range e.spatial.Spaces {
		perimeter := spacePerimeter(space)
		numOutlets := int(perimeter / outletPerimeterSpacing)
		if numOutlets < 2 {
			numOutlets = 2
		}

		for j := 0; j < numOutlets; j++ {
			pos := space.Vertices.PointOnPerimeter(float64(j) / float64(numOutlets))
			outlet := Outlet{
				ID:       fmt.Sprintf("OUTLET-%d-%d", i+1, j+1),
				Type:     "outlet",
				Position: pos,
				Circuit:  j%outletCircuits + 1,
			}
			design.Outlets = append(design.Outlets, outlet)

			path := e.route(panel.Position, pos)
			if len(path) < 2 {
				continue
			}
			design.Conduits = append(design.Conduits, Conduit{
				ID:     fmt.Sprintf("CONDUIT-O-%d-%d", i+1, j+1),
				Type:   "conduit",
				Path:   path,
				Size:   outletConduitSize,
				Source: panel.ID,
				Target: outlet.ID,
			})
		}

		area := spaceArea(space)
		numLights := int(area / lightCoverageArea)
		if numLights < 1 {
			numLights = 1
		}

		for j := 0; j < numLights; j++ {
			pos := space.Vertices.PointAt((float64(j) + 0.5) / float64(numLights))
			light := Light{
				ID:       fmt.Sprintf("LIGHT-%d-%d", i+1, j+1),
				Type:     "light",
				Position: pos,
				Circuit:  j%2 + lightingCircuitBase,
			}
			design.Lights = append(design.Lights, light)

			path := e.route(panel.Position, pos)
			if len(path) < 2 {
				continue
			}
			design.Conduits = append(design.Conduits, Conduit{
				ID:     fmt.Sprintf("CONDUIT-L-%d-%d", i+1, j+1),
				Type:   "conduit",
				Path:   path,
				Size:   lightConduitSize,
				Source: panel.ID,
				Target: light.ID,
			})
		}
	}

	return design
}
