package blueprint

import (
	"strings"

	"mepdesign/internal/geometry"
)

// SpatialData is the structured output of blueprint parsing. It is persisted
// per category as JSON rows in the spatial_data table.
type SpatialData struct {
	Spaces  []Space   `json:"spaces"`
	Walls   []Wall    `json:"walls"`
	Doors   []Opening `json:"doors"`
	Windows []Opening `json:"windows"`
}

// Space is a closed region (room) extracted from the drawing.
type Space struct {
	Type     string           `json:"type"`
	ID       string           `json:"id,omitempty"`
	Name     string           `json:"name,omitempty"`
	Vertices geometry.Polygon `json:"vertices"`
	Layer    string           `json:"layer,omitempty"`
}

// Wall is a straight wall segment.
type Wall struct {
	Type  string         `json:"type"`
	Start geometry.Point `json:"start"`
	End   geometry.Point `json:"end"`
	Layer string         `json:"layer,omitempty"`
}

// Opening is a door or window placed at a point with a rotation.
type Opening struct {
	Type     string         `json:"type"`
	Position geometry.Point `json:"position"`
	Rotation float64        `json:"rotation"`
	Width    float64        `json:"width,omitempty"`
	Name     string         `json:"name,omitempty"`
}

// IsEmpty reports whether parsing produced no geometry at all.
func (sd *SpatialData) IsEmpty() bool {
	return len(sd.Spaces) == 0 && len(sd.Walls) == 0 &&
		len(sd.Doors) == 0 && len(sd.Windows) == 0
}

// NameMatches reports whether the space name contains any of the given terms,
// case-insensitively. Used for utility-room and bathroom detection.
func (s Space) NameMatches(terms ...string) bool {
	name := strings.ToLower(s.Name)
	if name == "" {
		return false
	}
	for _, term := range terms {
		if strings.Contains(name, term) {
			return true
		}
	}
	return false
}
