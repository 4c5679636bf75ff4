package viewer

import (
	"context"
	"errors"
	"sync"
	"testing"

	"mepdesign/internal/geometry"
	"mepdesign/internal/mep"
)

func staticSource(design *mep.Design) DataSource {
	return DataSourceFunc(func(ctx context.Context) (*mep.Design, error) {
		return design, nil
	})
}

func sampleDesign() *mep.Design {
	return &mep.Design{
		Mechanical: &mep.MechanicalDesign{
			AirHandlers: []mep.AirHandler{{ID: "AHU-1", Position: geometry.Point{X: 1, Y: 1}}},
		},
	}
}

func TestActivateBuildsScene(t *testing.T) {
	m := NewManager()
	h := m.Activate(context.Background(), "viewer-tab", staticSource(sampleDesign()))

	if !h.Active() {
		t.Fatal("Expected handle to be active after a successful load")
	}
	if h.Scene() == nil || len(h.Scene().Objects) == 0 {
		t.Fatal("Expected a populated scene")
	}
	if h.FailureMessage() != "" {
		t.Errorf("Unexpected failure message %q", h.FailureMessage())
	}
	if h.Camera().Position == h.Camera().Target {
		t.Error("Camera should stand off from its target after framing")
	}
}

func TestActivateLoadFailure(t *testing.T) {
	m := NewManager()
	source := DataSourceFunc(func(ctx context.Context) (*mep.Design, error) {
		return nil, errors.New("design not found")
	})
	h := m.Activate(context.Background(), "viewer-tab", source)

	if h.Active() {
		t.Error("Failed load must not leave an active handle")
	}
	if h.Scene() != nil {
		t.Error("Failed load must not expose a scene")
	}
	if h.FailureMessage() != "design not found" {
		t.Errorf("Expected failure message, got %q", h.FailureMessage())
	}
}

func TestRepeatedActivationLeavesOneActiveHandle(t *testing.T) {
	m := NewManager()

	var handles []*Handle
	for i := 0; i < 5; i++ {
		handles = append(handles, m.Activate(context.Background(), "viewer-tab", staticSource(sampleDesign())))
	}

	if got := m.ActiveCount(); got != 1 {
		t.Errorf("Expected exactly 1 active handle after repeated activation, got %d", got)
	}
	for i, h := range handles[:4] {
		if h.Active() {
			t.Errorf("Superseded handle %d still active", i)
		}
	}
	if !handles[4].Active() {
		t.Error("Latest handle should be active")
	}
}

func TestStaleLoadDiscarded(t *testing.T) {
	m := NewManager()

	// The first activation's load does not resolve until a second activation
	// has replaced it.
	started := make(chan struct{})
	release := make(chan struct{})
	slow := DataSourceFunc(func(ctx context.Context) (*mep.Design, error) {
		close(started)
		<-release
		return sampleDesign(), nil
	})

	var wg sync.WaitGroup
	var first *Handle
	wg.Add(1)
	go func() {
		defer wg.Done()
		first = m.Activate(context.Background(), "viewer-tab", slow)
	}()

	<-started
	second := m.Activate(context.Background(), "viewer-tab", staticSource(sampleDesign()))
	close(release)
	wg.Wait()

	if first.Active() {
		t.Error("Stale activation must not become active")
	}
	if first.Scene() != nil {
		t.Error("Stale activation must not expose a scene")
	}
	if !second.Active() {
		t.Error("Replacement activation should be active")
	}
	if got := m.ActiveCount(); got != 1 {
		t.Errorf("Expected 1 active handle, got %d", got)
	}
}

func TestIndependentContainers(t *testing.T) {
	m := NewManager()
	a := m.Activate(context.Background(), "container-a", staticSource(sampleDesign()))
	b := m.Activate(context.Background(), "container-b", staticSource(sampleDesign()))

	if !a.Active() || !b.Active() {
		t.Error("Viewers in different containers must coexist")
	}
	if got := m.ActiveCount(); got != 2 {
		t.Errorf("Expected 2 active handles, got %d", got)
	}

	m.Dispose("container-a")
	if a.Active() {
		t.Error("Disposed handle still active")
	}
	if !b.Active() {
		t.Error("Dispose of one container must not affect another")
	}
}

func TestZoomAndReset(t *testing.T) {
	m := NewManager()
	h := m.Activate(context.Background(), "viewer-tab", staticSource(sampleDesign()))

	initial := h.Camera()
	zoomed := h.ZoomIn()
	if zoomed.Position == initial.Position {
		t.Error("ZoomIn should move the camera")
	}

	h.ZoomOut()
	h.ZoomOut()
	reset := h.ResetView()
	if reset != initial {
		t.Errorf("ResetView should restore the initial framing: got %+v want %+v", reset, initial)
	}
}

func TestDisposeUnknownContainer(t *testing.T) {
	m := NewManager()
	m.Dispose("never-activated")
	if got := m.ActiveCount(); got != 0 {
		t.Errorf("Expected 0 active handles, got %d", got)
	}
}
