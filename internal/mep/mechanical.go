package mep

import (
	"fmt"
)

// Diffuser coverage and flow constants. One diffuser serves 20 square units
// of floor area at 200 CFM; supply ducts are 12 inch diameter.
const (
	diffuserCoverageArea = 20
	diffuserFlowRate     = 200
	ductDiameter         = 12
)

// generateMechanical places one central air handler at the utility location
// and diffusers across every space, with a duct routed from the AHU to each
// diffuser.
func (e *Engine) generateMechanical() *MechanicalDesign {
	design := &MechanicalDesign{
		AirHandlers: []AirHandler{},
		Diffusers:   []Diffuser{},
		Ducts:       []Duct{},
	}

	ahu := AirHandler{
		ID:       "AHU-1",
		Type:     "air_handler",
		Position: e.utility,
		Capacity: e.totalCoolingLoad(),
	}
	design.AirHandlers = append(design.AirHandlers, ahu)

	for i, space := range e.spatial.Spaces {
		area := spaceArea(space)
		numDiffusers := int(area / diffuserCoverageArea)
		if numDiffusers < 1 {
			numDiffusers = 1
		}

		for j := 0; j < numDiffusers; j++ {
			pos := space.Vertices.PointAt(0.5)
			diffuser := Diffuser{
				ID:       fmt.Sprintf("DIFF-%d-%d", i+1, j+1),
				Type:     "diffuser",
				Position: pos,
				FlowRate: diffuserFlowRate,
			}
			design.Diffusers = append(design.Diffusers, diffuser)

			path := e.route(ahu.Position, pos)
			if len(path) < 2 {
				continue
			}
			design.Ducts = append(design.Ducts, Duct{
				ID:       fmt.Sprintf("DUCT-%d-%d", i+1, j+1),
				Type:     "duct",
				Path:     path,
				Diameter: ductDiameter,
				Source:   ahu.ID,
				Target:   diffuser.ID,
			})
		}
	}

	return design
}
