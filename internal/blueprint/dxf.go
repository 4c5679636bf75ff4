package blueprint

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"mepdesign/internal/geometry"
)

// tag is one group-code/value pair from an ASCII DXF stream.
type tag struct {
	code  int
	value string
}

// ParseDXF reads an ASCII DXF file and extracts spatial data from its
// ENTITIES section. LINE entities become walls, LWPOLYLINE/POLYLINE entities
// become spaces, and INSERT entities whose block name contains DOOR or WINDOW
// become openings. Everything else is ignored.
func ParseDXF(path string) (*SpatialData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open DXF file: %w", err)
	}
	defer f.Close()
	return parseDXFStream(f)
}

func parseDXFStream(r io.Reader) (*SpatialData, error) {
	tags, err := readTags(r)
	if err != nil {
		return nil, err
	}

	data := &SpatialData{}
	inEntities := false

	for i := 0; i < len(tags); i++ {
		t := tags[i]
		if t.code != 0 {
			continue
		}
		switch t.value {
		case "SECTION":
			// Section kind follows as a 2 tag
			if i+1 < len(tags) && tags[i+1].code == 2 {
				inEntities = tags[i+1].value == "ENTITIES"
			}
		case "ENDSEC":
			inEntities = false
		case "LINE":
			if !inEntities {
				continue
			}
			wall, next := parseLine(tags, i+1)
			data.Walls = append(data.Walls, wall)
			i = next - 1
		case "LWPOLYLINE", "POLYLINE":
			if !inEntities {
				continue
			}
			space, next := parsePolyline(tags, i+1)
			if len(space.Vertices) > 0 {
				data.Spaces = append(data.Spaces, space)
			}
			i = next - 1
		case "INSERT":
			if !inEntities {
				continue
			}
			opening, kind, next := parseInsert(tags, i+1)
			switch kind {
			case "door":
				data.Doors = append(data.Doors, opening)
			case "window":
				data.Windows = append(data.Windows, opening)
			}
			i = next - 1
		}
	}

	return data, nil
}

// readTags scans the whole stream into group-code/value pairs.
func readTags(r io.Reader) ([]tag, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var tags []tag
	for scanner.Scan() {
		codeLine := strings.TrimSpace(scanner.Text())
		if !scanner.Scan() {
			break
		}
		code, err := strconv.Atoi(codeLine)
		if err != nil {
			return nil, fmt.Errorf("invalid DXF group code %q", codeLine)
		}
		tags = append(tags, tag{code: code, value: strings.TrimSpace(scanner.Text())})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read DXF stream: %w", err)
	}
	return tags, nil
}

// parseLine consumes tags for a LINE entity starting at index start and
// returns the wall plus the index of the next 0 tag.
func parseLine(tags []tag, start int) (Wall, int) {
	wall := Wall{Type: "wall"}
	i := start
	for ; i < len(tags) && tags[i].code != 0; i++ {
		v, _ := strconv.ParseFloat(tags[i].value, 64)
		switch tags[i].code {
		case 8:
			wall.Layer = tags[i].value
		case 10:
			wall.Start.X = v
		case 20:
			wall.Start.Y = v
		case 11:
			wall.End.X = v
		case 21:
			wall.End.Y = v
		}
	}
	return wall, i
}

// parsePolyline consumes tags for a LWPOLYLINE/POLYLINE entity. Vertex
// coordinates arrive as repeated 10/20 pairs; classic POLYLINE VERTEX
// sub-entities are folded in the same way.
func parsePolyline(tags []tag, start int) (Space, int) {
	space := Space{Type: "space"}
	var current geometry.Point
	haveX := false

	i := start
	for ; i < len(tags); i++ {
		t := tags[i]
		if t.code == 0 {
			// VERTEX/SEQEND belong to a classic POLYLINE; keep folding
			if t.value == "VERTEX" || t.value == "SEQEND" {
				continue
			}
			break
		}
		v, _ := strconv.ParseFloat(t.value, 64)
		switch t.code {
		case 8:
			if space.Layer == "" {
				space.Layer = t.value
			}
		case 10:
			current.X = v
			haveX = true
		case 20:
			if haveX {
				current.Y = v
				space.Vertices = append(space.Vertices, current)
				haveX = false
			}
		}
	}
	return space, i
}

// parseInsert consumes tags for an INSERT entity and classifies it as a door
// or window by block name. Unrecognized blocks return an empty kind.
func parseInsert(tags []tag, start int) (Opening, string, int) {
	opening := Opening{}
	name := ""

	i := start
	for ; i < len(tags) && tags[i].code != 0; i++ {
		v, _ := strconv.ParseFloat(tags[i].value, 64)
		switch tags[i].code {
		case 2:
			name = tags[i].value
		case 10:
			opening.Position.X = v
		case 20:
			opening.Position.Y = v
		case 50:
			opening.Rotation = v
		}
	}

	opening.Name = name
	upper := strings.ToUpper(name)
	switch {
	case strings.Contains(upper, "DOOR"):
		opening.Type = "door"
		return opening, "door", i
	case strings.Contains(upper, "WINDOW"):
		opening.Type = "window"
		return opening, "window", i
	default:
		return opening, "", i
	}
}
