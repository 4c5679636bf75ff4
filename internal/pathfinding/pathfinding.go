package pathfinding

import (
	"container/heap"
	"math"

	"mepdesign/internal/geometry"
)

// Algorithm selects the search strategy used by FindPath.
type Algorithm string

const (
	AlgorithmAStar    Algorithm = "a_star"
	AlgorithmDijkstra Algorithm = "dijkstra"
)

// searchMargin pads the explored area beyond the grid extent.
const searchMargin = 5

// FindPath routes from start to end avoiding blocked cells. The returned
// path begins at the exact start point and ends at the exact end point, with
// grid waypoints in between. When no route exists the straight segment is
// returned so downstream consumers always get a drawable polyline.
func FindPath(start, end geometry.Point, grid *Grid, algorithm Algorithm) []geometry.Point {
	var cells []cell
	switch algorithm {
	case AlgorithmDijkstra:
		cells = search(start, end, grid, false)
	default:
		cells = search(start, end, grid, true)
	}

	if cells == nil {
		return []geometry.Point{start, end}
	}

	path := make([]geometry.Point, 0, len(cells)+2)
	path = append(path, start)
	for _, c := range cells {
		p := geometry.Point{X: float64(c.X), Y: float64(c.Y)}
		if p != path[len(path)-1] && p != end {
			path = append(path, p)
		}
	}
	if end != path[len(path)-1] {
		path = append(path, end)
	}
	return Simplify(path)
}

// node ordering for the priority queue.
type queueItem struct {
	c        cell
	priority float64
	index    int
}

type priorityQueue []*queueItem

func (pq priorityQueue) Len() int            { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool  { return pq[i].priority < pq[j].priority }
func (pq priorityQueue) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i]; pq[i].index = i; pq[j].index = j }
func (pq *priorityQueue) Push(x interface{}) { *pq = append(*pq, x.(*queueItem)) }
func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]
	return item
}

// search runs A* (or Dijkstra when astar is false) on the unit grid between
// the cells nearest to start and end. The goal test matches the target cell
// rather than the exact coordinates; callers splice the exact endpoints back
// onto the returned cell path.
func search(start, end geometry.Point, grid *Grid, astar bool) []cell {
	startCell := cell{X: int(math.Round(start.X)), Y: int(math.Round(start.Y))}
	endCell := cell{X: int(math.Round(end.X)), Y: int(math.Round(end.Y))}

	minX, minY, maxX, maxY := grid.searchBounds(start, end, searchMargin)

	heuristic := func(c cell) float64 {
		if !astar {
			return 0
		}
		return math.Abs(float64(c.X-endCell.X)) + math.Abs(float64(c.Y-endCell.Y))
	}

	open := &priorityQueue{}
	heap.Init(open)
	heap.Push(open, &queueItem{c: startCell, priority: heuristic(startCell)})

	gScore := map[cell]float64{startCell: 0}
	cameFrom := make(map[cell]cell)
	inOpen := map[cell]bool{startCell: true}

	directions := []cell{
		{0, 1}, {1, 0}, {0, -1}, {-1, 0},
		{1, 1}, {1, -1}, {-1, -1}, {-1, 1},
	}

	for open.Len() > 0 {
		current := heap.Pop(open).(*queueItem).c
		inOpen[current] = false

		if current == endCell {
			return reconstruct(cameFrom, current)
		}

		for _, d := range directions {
			next := cell{X: current.X + d.X, Y: current.Y + d.Y}
			if next.X < minX || next.X > maxX || next.Y < minY || next.Y > maxY {
				continue
			}
			if !grid.Walkable(next.X, next.Y) {
				continue
			}

			stepCost := 1.0
			if d.X != 0 && d.Y != 0 {
				stepCost = math.Sqrt2
			}
			tentative := gScore[current] + stepCost

			if known, ok := gScore[next]; !ok || tentative < known {
				cameFrom[next] = current
				gScore[next] = tentative
				if !inOpen[next] {
					heap.Push(open, &queueItem{c: next, priority: tentative + heuristic(next)})
					inOpen[next] = true
				}
			}
		}
	}

	return nil
}

func reconstruct(cameFrom map[cell]cell, current cell) []cell {
	path := []cell{current}
	for {
		prev, ok := cameFrom[current]
		if !ok {
			break
		}
		current = prev
		path = append(path, current)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// Simplify removes interior waypoints that do not change direction, keeping
// only the bends. Paths of two or fewer points are returned unchanged.
func Simplify(path []geometry.Point) []geometry.Point {
	if len(path) <= 2 {
		return path
	}

	simplified := []geometry.Point{path[0]}
	for i := 1; i < len(path)-1; i++ {
		prevDir := direction(path[i-1], path[i])
		nextDir := direction(path[i], path[i+1])
		if prevDir != nextDir {
			simplified = append(simplified, path[i])
		}
	}
	return append(simplified, path[len(path)-1])
}

type dir struct {
	dx, dy float64
}

// direction normalizes a step to its sign vector so collinear runs compare
// equal regardless of step length.
func direction(from, to geometry.Point) dir {
	return dir{dx: sign(to.X - from.X), dy: sign(to.Y - from.Y)}
}

func sign(v float64) float64 {
	switch {
	case v > 1e-9:
		return 1
	case v < -1e-9:
		return -1
	default:
		return 0
	}
}
