// Package geometry provides the 2D primitives shared by the blueprint,
// pathfinding, and MEP design packages.
package geometry

import (
	"encoding/json"
	"fmt"
	"math"
)

// Point is a 2D coordinate. It serializes as a 2-element JSON array so the
// stored design data stays interchangeable with the viewer payload format.
type Point struct {
	X float64
	Y float64
}

// MarshalJSON encodes the point as [x, y].
func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{p.X, p.Y})
}

// UnmarshalJSON decodes a 2-element numeric array into the point.
func (p *Point) UnmarshalJSON(data []byte) error {
	var arr []float64
	if err := json.Unmarshal(data, &arr); err != nil {
		return err
	}
	if len(arr) != 2 {
		return fmt.Errorf("position must be a 2-element array, got %d elements", len(arr))
	}
	p.X, p.Y = arr[0], arr[1]
	return nil
}

// Distance returns the Euclidean distance to other.
func (p Point) Distance(other Point) float64 {
	return math.Hypot(p.X-other.X, p.Y-other.Y)
}

// ManhattanDistance returns the Manhattan distance to other.
func (p Point) ManhattanDistance(other Point) float64 {
	return math.Abs(p.X-other.X) + math.Abs(p.Y-other.Y)
}

// Polygon is an ordered ring of vertices.
type Polygon []Point

// Area computes the polygon area using the shoelace formula.
func (poly Polygon) Area() float64 {
	n := len(poly)
	if n < 3 {
		return 0
	}
	area := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += poly[i].X * poly[j].Y
		area -= poly[j].X * poly[i].Y
	}
	return math.Abs(area) / 2
}

// Perimeter returns the total edge length of the polygon.
func (poly Polygon) Perimeter() float64 {
	n := len(poly)
	if n < 2 {
		return 0
	}
	perimeter := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		perimeter += poly[i].Distance(poly[j])
	}
	return perimeter
}

// Centroid returns the vertex average of the polygon.
func (poly Polygon) Centroid() Point {
	n := len(poly)
	if n == 0 {
		return Point{}
	}
	var cx, cy float64
	for _, v := range poly {
		cx += v.X
		cy += v.Y
	}
	return Point{X: cx / float64(n), Y: cy / float64(n)}
}

// PointAt returns a point inside the polygon, interpolated from the centroid
// toward the vertex selected by ratio. A ratio of 0 is the centroid, 1 is the
// vertex itself. Component placement uses this instead of random sampling so
// generated designs are reproducible.
func (poly Polygon) PointAt(ratio float64) Point {
	n := len(poly)
	if n == 0 {
		return Point{}
	}
	c := poly.Centroid()
	idx := int(ratio*float64(n)) % n
	if idx < 0 {
		idx = 0
	}
	v := poly[idx]
	frac := ratio - math.Floor(ratio)
	return Point{
		X: c.X + (v.X-c.X)*frac,
		Y: c.Y + (v.Y-c.Y)*frac,
	}
}

// PointOnPerimeter returns the point that lies ratio (0..1) of the way along
// the polygon's perimeter, walking edges in vertex order.
func (poly Polygon) PointOnPerimeter(ratio float64) Point {
	n := len(poly)
	if n == 0 {
		return Point{}
	}
	if n == 1 {
		return poly[0]
	}
	total := poly.Perimeter()
	if total == 0 {
		return poly[0]
	}
	target := total * ratio
	walked := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		length := poly[i].Distance(poly[j])
		if walked+length > target && length > 0 {
			t := (target - walked) / length
			return Point{
				X: poly[i].X + t*(poly[j].X-poly[i].X),
				Y: poly[i].Y + t*(poly[j].Y-poly[i].Y),
			}
		}
		walked += length
	}
	return poly[0]
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// BoundsOf computes the bounding box of a point set. The second return value
// is false when the set is empty.
func BoundsOf(points []Point) (Bounds, bool) {
	if len(points) == 0 {
		return Bounds{}, false
	}
	b := Bounds{
		MinX: points[0].X, MaxX: points[0].X,
		MinY: points[0].Y, MaxY: points[0].Y,
	}
	for _, p := range points[1:] {
		b.MinX = math.Min(b.MinX, p.X)
		b.MaxX = math.Max(b.MaxX, p.X)
		b.MinY = math.Min(b.MinY, p.Y)
		b.MaxY = math.Max(b.MaxY, p.Y)
	}
	return b, true
}

// Center returns the midpoint of the bounds.
func (b Bounds) Center() Point {
	return Point{X: (b.MinX + b.MaxX) / 2, Y: (b.MinY + b.MaxY) / 2}
}

// MaxDimension returns the longer side of the bounds.
func (b Bounds) MaxDimension() float64 {
	return math.Max(b.MaxX-b.MinX, b.MaxY-b.MinY)
}
