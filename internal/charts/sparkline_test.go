package charts

import (
	"strings"
	"testing"
)

func TestPercentSparkline(t *testing.T) {
	if got := PercentSparkline(nil, 100, 40, "#2563eb"); got != "" {
		t.Errorf("Expected empty output for no data, got %q", got)
	}
	if got := PercentSparkline([]float64{50}, 100, 40, "#2563eb"); got != "" {
		t.Errorf("Expected empty output for a single point, got %q", got)
	}

	svg := string(PercentSparkline([]float64{10, 50, 90}, 120, 40, "#2563eb"))
	for _, want := range []string{
		`<svg width="120" height="40"`,
		`viewBox="0 0 120 40"`,
		`stroke="#2563eb"`,
		`<polyline`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("Sparkline missing %q in %s", want, svg)
		}
	}
}

func TestSparklineFlatSeries(t *testing.T) {
	// A constant series must not divide by a zero range
	svg := string(Sparkline([]float64{5, 5, 5}, 100, 30, "#15803d"))
	if !strings.Contains(svg, "<polyline") {
		t.Errorf("Expected a polyline for a flat series, got %s", svg)
	}
}

func TestSparklinePointCount(t *testing.T) {
	svg := string(Sparkline([]float64{1, 2, 3, 4}, 100, 30, "#000"))
	start := strings.Index(svg, `points="`)
	if start < 0 {
		t.Fatalf("No points attribute in %s", svg)
	}
	rest := svg[start+len(`points="`):]
	pts := rest[:strings.Index(rest, `"`)]
	if got := len(strings.Fields(pts)); got != 4 {
		t.Errorf("Expected 4 points, got %d (%q)", got, pts)
	}
}
