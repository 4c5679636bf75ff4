// Package pathfinding routes MEP components through the building on a unit
// grid derived from the blueprint's walls.
package pathfinding

import (
	"math"

	"mepdesign/internal/blueprint"
	"mepdesign/internal/geometry"
)

type cell struct {
	X, Y int
}

// Grid marks which unit cells are blocked by walls. Cells not present are
// walkable.
type Grid struct {
	blocked map[cell]bool
	minX    int
	minY    int
	maxX    int
	maxY    int
	hasAny  bool
}

// BuildGrid rasterizes wall segments into blocked cells. Each wall blocks a
// band of cells half a unit to either side so routes keep clearance from the
// wall centerline.
func BuildGrid(walls []blueprint.Wall) *Grid {
	g := &Grid{blocked: make(map[cell]bool)}

	for _, wall := range walls {
		dx := wall.End.X - wall.Start.X
		dy := wall.End.Y - wall.Start.Y
		length := math.Hypot(dx, dy)
		if length == 0 {
			continue
		}

		steps := int(length * 2)
		if steps == 0 {
			steps = 1
		}
		for i := 0; i <= steps; i++ {
			t := float64(i) / float64(steps)
			x := wall.Start.X + t*dx
			y := wall.Start.Y + t*dy
			for ox := -1; ox <= 1; ox++ {
				for oy := -1; oy <= 1; oy++ {
					g.block(cell{
						X: int(math.Round(x + float64(ox)*0.5)),
						Y: int(math.Round(y + float64(oy)*0.5)),
					})
				}
			}
		}
	}

	return g
}

func (g *Grid) block(c cell) {
	g.blocked[c] = true
	if !g.hasAny {
		g.minX, g.maxX = c.X, c.X
		g.minY, g.maxY = c.Y, c.Y
		g.hasAny = true
		return
	}
	if c.X < g.minX {
		g.minX = c.X
	}
	if c.X > g.maxX {
		g.maxX = c.X
	}
	if c.Y < g.minY {
		g.minY = c.Y
	}
	if c.Y > g.maxY {
		g.maxY = c.Y
	}
}

// Walkable reports whether a cell is free of walls.
func (g *Grid) Walkable(x, y int) bool {
	return !g.blocked[cell{X: x, Y: y}]
}

// searchBounds returns the cell rectangle the search may explore: the grid
// extent plus the endpoints, padded by a margin. Without the bound an
// unreachable target would make the search wander forever on the open plane.
func (g *Grid) searchBounds(start, end geometry.Point, margin int) (minX, minY, maxX, maxY int) {
	minX = int(math.Floor(math.Min(start.X, end.X)))
	maxX = int(math.Ceil(math.Max(start.X, end.X)))
	minY = int(math.Floor(math.Min(start.Y, end.Y)))
	maxY = int(math.Ceil(math.Max(start.Y, end.Y)))
	if g.hasAny {
		minX = min(minX, g.minX)
		maxX = max(maxX, g.maxX)
		minY = min(minY, g.minY)
		maxY = max(maxY, g.maxY)
	}
	return minX - margin, minY - margin, maxX + margin, maxY + margin
}
