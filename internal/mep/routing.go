package mep

import (
	"mepdesign/internal/logging"
	"mepdesign/internal/pathfinding"
)

// OptimizeRouting rewrites every duct, conduit, and pipe path in the design
// as an installable orthogonal run. The design is modified in place and
// returned for convenience.
func OptimizeRouting(design *Design) *Design {
	if design == nil {
		return nil
	}
	logging.Info("Optimizing MEP routing")

	if design.Mechanical != nil {
		for i := range design.Mechanical.Ducts {
			design.Mechanical.Ducts[i].Path = pathfinding.OptimizeDuctPath(design.Mechanical.Ducts[i].Path)
		}
	}

	if design.Electrical != nil {
		for i := range design.Electrical.Conduits {
			design.Electrical.Conduits[i].Path = pathfinding.OptimizeConduitPath(design.Electrical.Conduits[i].Path)
		}
	}

	if design.Plumbing != nil {
		for i := range design.Plumbing.Pipes {
			pipe := &design.Plumbing.Pipes[i]
			pipe.Path = pathfinding.OptimizePipePath(pipe.Path, IsDrainPipe(pipe.Type))
		}
	}

	return design
}
