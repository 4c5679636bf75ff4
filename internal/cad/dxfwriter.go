package cad

import (
	"fmt"
	"io"
	"os"
	"strings"

	"mepdesign/internal/geometry"
)

// dxfWriter accumulates an ASCII DXF drawing (R12 tag format) with a layer
// table and an entities section.
type dxfWriter struct {
	layers   []dxfLayer
	entities strings.Builder
}

type dxfLayer struct {
	name  string
	color int
}

func newDXFWriter() *dxfWriter {
	return &dxfWriter{}
}

// AddLayer registers a layer with an AutoCAD color index.
func (w *dxfWriter) AddLayer(name string, color int) {
	w.layers = append(w.layers, dxfLayer{name: name, color: color})
}

func (w *dxfWriter) tag(code int, value string) {
	fmt.Fprintf(&w.entities, "%d\n%s\n", code, value)
}

func (w *dxfWriter) coord(x, y float64) {
	w.tag(10, formatFloat(x))
	w.tag(20, formatFloat(y))
}

// Polyline draws an open polyline through the given points.
func (w *dxfWriter) Polyline(layer string, points []geometry.Point) {
	if len(points) < 2 {
		return
	}
	w.tag(0, "LWPOLYLINE")
	w.tag(8, layer)
	w.tag(90, fmt.Sprintf("%d", len(points)))
	for _, p := range points {
		w.coord(p.X, p.Y)
	}
}

// Rect draws a closed rectangle centered on p.
func (w *dxfWriter) Rect(layer string, p geometry.Point, halfWidth, halfHeight float64) {
	w.Polyline(layer, []geometry.Point{
		{X: p.X - halfWidth, Y: p.Y - halfHeight},
		{X: p.X + halfWidth, Y: p.Y - halfHeight},
		{X: p.X + halfWidth, Y: p.Y + halfHeight},
		{X: p.X - halfWidth, Y: p.Y + halfHeight},
		{X: p.X - halfWidth, Y: p.Y - halfHeight},
	})
}

// Circle draws a circle.
func (w *dxfWriter) Circle(layer string, center geometry.Point, radius float64) {
	w.tag(0, "CIRCLE")
	w.tag(8, layer)
	w.coord(center.X, center.Y)
	w.tag(40, formatFloat(radius))
}

// Line draws a single segment.
func (w *dxfWriter) Line(layer string, start, end geometry.Point) {
	w.tag(0, "LINE")
	w.tag(8, layer)
	w.coord(start.X, start.Y)
	w.tag(11, formatFloat(end.X))
	w.tag(21, formatFloat(end.Y))
}

// Cross draws an X centered on p.
func (w *dxfWriter) Cross(layer string, p geometry.Point, arm float64) {
	w.Line(layer, geometry.Point{X: p.X - arm, Y: p.Y - arm}, geometry.Point{X: p.X + arm, Y: p.Y + arm})
	w.Line(layer, geometry.Point{X: p.X - arm, Y: p.Y + arm}, geometry.Point{X: p.X + arm, Y: p.Y - arm})
}

// Ellipse draws an ellipse with a horizontal major axis.
func (w *dxfWriter) Ellipse(layer string, center geometry.Point, majorAxis, ratio float64) {
	w.tag(0, "ELLIPSE")
	w.tag(8, layer)
	w.coord(center.X, center.Y)
	w.tag(11, formatFloat(majorAxis))
	w.tag(21, "0")
	w.tag(40, formatFloat(ratio))
}

// Text places a single-line text label at p.
func (w *dxfWriter) Text(layer, text string, p geometry.Point, height float64) {
	w.tag(0, "TEXT")
	w.tag(8, layer)
	w.coord(p.X, p.Y)
	w.tag(40, formatFloat(height))
	w.tag(1, text)
}

// WriteTo emits the full document: layer table, entities, EOF.
func (w *dxfWriter) WriteTo(out io.Writer) error {
	var doc strings.Builder

	doc.WriteString("0\nSECTION\n2\nTABLES\n")
	doc.WriteString("0\nTABLE\n2\nLAYER\n")
	fmt.Fprintf(&doc, "70\n%d\n", len(w.layers))
	for _, l := range w.layers {
		doc.WriteString("0\nLAYER\n")
		fmt.Fprintf(&doc, "2\n%s\n", l.name)
		doc.WriteString("70\n0\n")
		fmt.Fprintf(&doc, "62\n%d\n", l.color)
		doc.WriteString("6\nCONTINUOUS\n")
	}
	doc.WriteString("0\nENDTAB\n0\nENDSEC\n")

	doc.WriteString("0\nSECTION\n2\nENTITIES\n")
	doc.WriteString(w.entities.String())
	doc.WriteString("0\nENDSEC\n0\nEOF\n")

	_, err := io.WriteString(out, doc.String())
	return err
}

// Save writes the document to a file.
func (w *dxfWriter) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := w.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func formatFloat(v float64) string {
	s := fmt.Sprintf("%g", v)
	return s
}
