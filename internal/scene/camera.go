package scene

// Camera zoom factors for the viewer controls.
const (
	zoomInFactor  = 0.9
	zoomOutFactor = 1.1
)

// Camera describes a perspective camera looking at a target.
type Camera struct {
	Position Vec3 `json:"position"`
	Target   Vec3 `json:"target"`
}

// FrameScene positions the camera to frame the scene: twice the maximum
// bounding dimension away from the bounding-box center, looking at the
// center. An empty scene gets a small default standoff.
func FrameScene(s *Scene) Camera {
	center := s.Center()
	distance := 2 * s.MaxDimension()
	if distance == 0 {
		distance = 10
	}
	return Camera{
		Position: Vec3{center[0], center[1], center[2] + distance},
		Target:   center,
	}
}

// scaleDistance moves the camera along its view axis by factor.
func (c Camera) scaleDistance(factor float64) Camera {
	for i := 0; i < 3; i++ {
		c.Position[i] = c.Target[i] + (c.Position[i]-c.Target[i])*factor
	}
	return c
}

// ZoomIn moves the camera 10% closer to the target.
func (c Camera) ZoomIn() Camera {
	return c.scaleDistance(zoomInFactor)
}

// ZoomOut moves the camera 10% further from the target.
func (c Camera) ZoomOut() Camera {
	return c.scaleDistance(zoomOutFactor)
}
