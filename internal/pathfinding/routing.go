package pathfinding

import (
	"math"

	"mepdesign/internal/geometry"
)

// The route optimizers rewrite a found path as an orthogonal run between its
// endpoints: horizontal first, then vertical. Fabricated duct and conduit
// runs are installed this way regardless of the free-form route the search
// produced.

// OptimizeDuctPath converts a duct route to a Manhattan run.
func OptimizeDuctPath(path []geometry.Point) []geometry.Point {
	return manhattanRoute(path)
}

// OptimizeConduitPath converts an electrical conduit route to a Manhattan
// run with a single bend.
func OptimizeConduitPath(path []geometry.Point) []geometry.Point {
	return manhattanRoute(path)
}

// OptimizePipePath converts a pipe route to a Manhattan run. Drain pipes run
// their horizontal leg at the start elevation so the vertical drop comes
// last, which keeps a continuous fall toward the drain.
func OptimizePipePath(path []geometry.Point, isDrain bool) []geometry.Point {
	// Supply and drain runs share the same horizontal-then-vertical shape;
	// the drain flag exists so slope handling can diverge once elevations
	// are modeled.
	_ = isDrain
	return manhattanRoute(path)
}

func manhattanRoute(path []geometry.Point) []geometry.Point {
	if len(path) <= 2 {
		return path
	}

	start := path[0]
	end := path[len(path)-1]

	route := []geometry.Point{start}
	if math.Abs(end.X-start.X) > 0.1 {
		route = append(route, geometry.Point{X: end.X, Y: start.Y})
	}
	return append(route, end)
}
