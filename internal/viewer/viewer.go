// Package viewer manages 3D viewer sessions. Each browser container gets at
// most one live handle; activating a container again disposes the previous
// handle first. Handles carry a generation token so a slow data load whose
// viewer was replaced mid-flight is discarded instead of populating a dead
// session.
package viewer

import (
	"context"
	"sync"

	"mepdesign/internal/logging"
	"mepdesign/internal/mep"
	"mepdesign/internal/scene"
)

// DataSource supplies the design payload for one activation.
type DataSource interface {
	LoadDesign(ctx context.Context) (*mep.Design, error)
}

// DataSourceFunc adapts a function to the DataSource interface.
type DataSourceFunc func(ctx context.Context) (*mep.Design, error)

func (f DataSourceFunc) LoadDesign(ctx context.Context) (*mep.Design, error) {
	return f(ctx)
}

// Handle is one viewer session. A handle is live until its container is
// re-activated or disposed; a handle whose data load failed is never live
// and carries the failure message instead of a scene.
type Handle struct {
	containerID string
	generation  uint64

	mu      sync.Mutex
	active  bool
	scene   *scene.Scene
	camera  scene.Camera
	failure string
}

// Manager is the registry of viewer handles keyed by container id.
type Manager struct {
	mu         sync.Mutex
	viewers    map[string]*Handle
	generation uint64
}

// NewManager returns an empty registry.
func NewManager() *Manager {
	return &Manager{viewers: make(map[string]*Handle)}
}

// Activate disposes any existing handle for the container, registers a new
// one, and loads the design data through the source. The returned handle is
// live on success; on load failure it is inactive and carries the error
// message. If a newer activation replaces the handle while the load is in
// flight, the stale results are discarded and the stale handle returned
// inactive.
func (m *Manager) Activate(ctx context.Context, containerID string, source DataSource) *Handle {
	m.mu.Lock()
	if prev, ok := m.viewers[containerID]; ok {
		prev.deactivate()
	}
	m.generation++
	h := &Handle{containerID: containerID, generation: m.generation}
	m.viewers[containerID] = h
	m.mu.Unlock()

	design, err := source.LoadDesign(ctx)

	m.mu.Lock()
	current, ok := m.viewers[containerID]
	stale := !ok || current.generation != h.generation
	m.mu.Unlock()
	if stale {
		logging.Debug("Discarding stale viewer activation for container %s", containerID)
		return h
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if err != nil {
		h.failure = err.Error()
		logging.Error("Viewer data load failed for container %s: %v", containerID, err)
		return h
	}
	h.scene = scene.Build(design)
	h.camera = h.scene.Camera
	h.active = true
	return h
}

// Get returns the current handle for a container.
func (m *Manager) Get(containerID string) (*Handle, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.viewers[containerID]
	return h, ok
}

// Dispose releases the handle for a container.
func (m *Manager) Dispose(containerID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if h, ok := m.viewers[containerID]; ok {
		h.deactivate()
		delete(m.viewers, containerID)
	}
}

// ActiveCount reports how many registered handles are live.
func (m *Manager) ActiveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, h := range m.viewers {
		if h.Active() {
			n++
		}
	}
	return n
}

func (h *Handle) deactivate() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.active = false
}

// Active reports whether this handle is the live session for its container.
func (h *Handle) Active() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.active
}

// ContainerID returns the container this handle belongs to.
func (h *Handle) ContainerID() string {
	return h.containerID
}

// Scene returns the built scene, or nil when the load failed or the handle
// was superseded before the load resolved.
func (h *Handle) Scene() *scene.Scene {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.active {
		return nil
	}
	return h.scene
}

// Camera returns the current camera.
func (h *Handle) Camera() scene.Camera {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.camera
}

// FailureMessage returns the load error message, empty on success.
func (h *Handle) FailureMessage() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.failure
}

// ZoomIn moves the camera 10% closer.
func (h *Handle) ZoomIn() scene.Camera {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.camera = h.camera.ZoomIn()
	return h.camera
}

// ZoomOut moves the camera 10% further away.
func (h *Handle) ZoomOut() scene.Camera {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.camera = h.camera.ZoomOut()
	return h.camera
}

// ResetView reframes the camera around the scene, identical to the framing
// applied after the initial load.
func (h *Handle) ResetView() scene.Camera {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.scene != nil {
		h.camera = scene.FrameScene(h.scene)
	}
	return h.camera
}
