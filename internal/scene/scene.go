// Package scene builds a serializable 3D scene description from an MEP
// design. The scene is a flat list of typed primitives (boxes, cylinders,
// spheres, tubes, labels) with positions in world units; the browser viewer
// renders it without knowing anything about MEP semantics.
package scene

import "math"

// Vec3 is a world-space coordinate, serialized as a 3-element array.
type Vec3 [3]float64

// Primitive kinds understood by the viewer.
const (
	KindBox      = "box"
	KindCylinder = "cylinder"
	KindSphere   = "sphere"
	KindTube     = "tube"
	KindLabel    = "label"
)

// Object is one renderable primitive. Only the fields relevant to its kind
// are populated.
type Object struct {
	Kind     string  `json:"kind"`
	Name     string  `json:"name,omitempty"`
	Color    string  `json:"color"`
	Position Vec3    `json:"position"`
	Size     Vec3    `json:"size"`
	Radius   float64 `json:"radius,omitempty"`
	Height   float64 `json:"height,omitempty"`
	Path     []Vec3  `json:"path,omitempty"`
	Text     string  `json:"text,omitempty"`
}

// Scene is the full set of primitives for one design view.
type Scene struct {
	Objects []Object `json:"objects"`
	Camera  Camera   `json:"camera"`
}

// New returns an empty scene.
func New() *Scene {
	return &Scene{Objects: []Object{}}
}

func (s *Scene) add(obj Object) {
	s.Objects = append(s.Objects, obj)
}

// AddBox adds a box centered on position.
func (s *Scene) AddBox(name, color string, position, size Vec3) {
	s.add(Object{Kind: KindBox, Name: name, Color: color, Position: position, Size: size})
}

// AddCylinder adds an upright cylinder centered on position.
func (s *Scene) AddCylinder(name, color string, position Vec3, radius, height float64) {
	s.add(Object{Kind: KindCylinder, Name: name, Color: color, Position: position, Radius: radius, Height: height})
}

// AddSphere adds a sphere centered on position.
func (s *Scene) AddSphere(name, color string, position Vec3, radius float64) {
	s.add(Object{Kind: KindSphere, Name: name, Color: color, Position: position, Radius: radius})
}

// AddTube sweeps a tube along path. Paths with fewer than two points are
// skipped silently.
func (s *Scene) AddTube(name, color string, path []Vec3, radius float64) {
	if len(path) < 2 {
		return
	}
	s.add(Object{Kind: KindTube, Name: name, Color: color, Position: path[0], Path: path, Radius: radius})
}

// AddLabel places a text label at position.
func (s *Scene) AddLabel(text, color string, position Vec3) {
	s.add(Object{Kind: KindLabel, Color: color, Position: position, Text: text})
}

// Bounds computes the axis-aligned bounding box over every primitive,
// including tube path points and box extents. ok is false for an empty scene.
func (s *Scene) Bounds() (min, max Vec3, ok bool) {
	expand := func(p Vec3) {
		if !ok {
			min, max = p, p
			ok = true
			return
		}
		for i := 0; i < 3; i++ {
			if p[i] < min[i] {
				min[i] = p[i]
			}
			if p[i] > max[i] {
				max[i] = p[i]
			}
		}
	}

	for _, obj := range s.Objects {
		switch obj.Kind {
		case KindTube:
			for _, p := range obj.Path {
				expand(p)
			}
		case KindBox:
			expand(Vec3{obj.Position[0] - obj.Size[0]/2, obj.Position[1] - obj.Size[1]/2, obj.Position[2] - obj.Size[2]/2})
			expand(Vec3{obj.Position[0] + obj.Size[0]/2, obj.Position[1] + obj.Size[1]/2, obj.Position[2] + obj.Size[2]/2})
		default:
			expand(obj.Position)
			if obj.Radius > 0 {
				expand(Vec3{obj.Position[0] - obj.Radius, obj.Position[1] - obj.Radius, obj.Position[2] - obj.Radius})
				expand(Vec3{obj.Position[0] + obj.Radius, obj.Position[1] + obj.Radius, obj.Position[2] + obj.Radius})
			}
		}
	}
	return min, max, ok
}

// Center returns the bounding-box center, or the origin for an empty scene.
func (s *Scene) Center() Vec3 {
	min, max, ok := s.Bounds()
	if !ok {
		return Vec3{}
	}
	return Vec3{(min[0] + max[0]) / 2, (min[1] + max[1]) / 2, (min[2] + max[2]) / 2}
}

// MaxDimension returns the largest bounding-box edge length.
func (s *Scene) MaxDimension() float64 {
	min, max, ok := s.Bounds()
	if !ok {
		return 0
	}
	return math.Max(max[0]-min[0], math.Max(max[1]-min[1], max[2]-min[2]))
}
