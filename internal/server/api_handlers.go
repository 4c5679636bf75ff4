package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"mepdesign/internal/database"
	"mepdesign/internal/logging"
	"mepdesign/internal/mep"
	"mepdesign/internal/monitoring"
	"mepdesign/internal/scene"
	"mepdesign/internal/version"
	"mepdesign/internal/viewer"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Error("Failed to encode JSON response: %v", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// routeDesignAPI dispatches /api/design/{id} and /api/design/{id}/scene
func (s *Server) routeDesignAPI(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/api/design/")
	parts := strings.SplitN(strings.Trim(rest, "/"), "/", 2)

	id, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		writeJSONError(w, http.StatusNotFound, "Invalid project id")
		return
	}

	if len(parts) == 2 && parts[1] == "scene" {
		s.handleSceneAPI(w, r, id)
		return
	}
	if len(parts) == 2 {
		writeJSONError(w, http.StatusNotFound, "Not found")
		return
	}

	designs, err := database.GetDesigns(id)
	if err != nil {
		logging.Error("Failed to load designs for project %d: %v", id, err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to load designs")
		return
	}
	if len(designs) == 0 {
		writeJSONError(w, http.StatusNotFound, "No design found for this project")
		return
	}
	writeJSON(w, http.StatusOK, designs)
}

// loadDesign reassembles the stored per-discipline payloads into one design.
// Results are cached briefly since the viewer re-requests the design on every
// activation.
func (s *Server) loadDesign(projectID int64) (*mep.Design, error) {
	key := strconv.FormatInt(projectID, 10)
	if design, ok := s.designs.Get(key); ok {
		return design, nil
	}

	designs, err := database.GetDesigns(projectID)
	if err != nil {
		return nil, err
	}
	if len(designs) == 0 {
		return nil, fmt.Errorf("design not found")
	}

	design := &mep.Design{}
	targets := map[string]interface{}{
		database.DisciplineMechanical: &design.Mechanical,
		database.DisciplineElectrical: &design.Electrical,
		database.DisciplinePlumbing:   &design.Plumbing,
	}
	for discipline, target := range targets {
		raw, ok := designs[discipline]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, target); err != nil {
			return nil, fmt.Errorf("corrupt %s design payload: %w", discipline, err)
		}
	}
	s.designs.Set(key, design)
	return design, nil
}

// scenePayload is the response shape consumed by the browser viewer
type scenePayload struct {
	Container string       `json:"container"`
	Scene     *scene.Scene `json:"scene"`
	Camera    scene.Camera `json:"camera"`
}

// handleSceneAPI activates a viewer session for the project's design and
// returns the renderable scene. The container query parameter identifies
// the browser-side viewer element.
func (s *Server) handleSceneAPI(w http.ResponseWriter, r *http.Request, projectID int64) {
	container := r.URL.Query().Get("container")
	if container == "" {
		container = fmt.Sprintf("viewer-%d", projectID)
	}

	source := viewer.DataSourceFunc(func(ctx context.Context) (*mep.Design, error) {
		return s.loadDesign(projectID)
	})
	handle := s.viewers.Activate(r.Context(), container, source)

	if !handle.Active() {
		message := handle.FailureMessage()
		if message == "" {
			message = "viewer session superseded"
		}
		status := http.StatusInternalServerError
		if strings.Contains(message, "not found") {
			status = http.StatusNotFound
		}
		writeJSONError(w, status, message)
		return
	}

	writeJSON(w, http.StatusOK, scenePayload{
		Container: container,
		Scene:     handle.Scene(),
		Camera:    handle.Camera(),
	})
}

// routeViewerAPI dispatches viewer session controls:
// POST /api/viewer/{container}/zoom?dir=in|out
// POST /api/viewer/{container}/reset
// DELETE /api/viewer/{container}
func (s *Server) routeViewerAPI(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/viewer/")
	parts := strings.SplitN(strings.Trim(rest, "/"), "/", 2)
	container := parts[0]
	if container == "" {
		writeJSONError(w, http.StatusNotFound, "Missing container id")
		return
	}

	if len(parts) == 1 {
		if r.Method != http.MethodDelete {
			writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		s.viewers.Dispose(container)
		writeJSON(w, http.StatusOK, map[string]string{"status": "disposed"})
		return
	}

	if r.Method != http.MethodPost {
		writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	handle, ok := s.viewers.Get(container)
	if !ok || !handle.Active() {
		writeJSONError(w, http.StatusNotFound, "No active viewer for this container")
		return
	}

	var camera scene.Camera
	switch parts[1] {
	case "zoom":
		switch r.URL.Query().Get("dir") {
		case "in":
			camera = handle.ZoomIn()
		case "out":
			camera = handle.ZoomOut()
		default:
			writeJSONError(w, http.StatusBadRequest, "dir must be in or out")
			return
		}
	case "reset":
		camera = handle.ResetView()
	default:
		writeJSONError(w, http.StatusNotFound, "Not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]scene.Camera{"camera": camera})
}

// jobStatusPayload flattens the nullable job columns for JSON polling
type jobStatusPayload struct {
	ID              string     `json:"id"`
	ProjectID       int64      `json:"project_id"`
	Status          string     `json:"status"`
	Progress        int        `json:"progress"`
	ProgressMessage string     `json:"progress_message"`
	ErrorMessage    string     `json:"error_message"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
}

func jobStatus(job *database.DesignJob) jobStatusPayload {
	payload := jobStatusPayload{
		ID:              job.ID,
		ProjectID:       job.ProjectID,
		Status:          job.Status,
		Progress:        job.Progress,
		ProgressMessage: job.ProgressMessage.String,
		ErrorMessage:    job.ErrorMessage.String,
		CreatedAt:       job.CreatedAt,
		UpdatedAt:       job.UpdatedAt,
	}
	if job.CompletedAt.Valid {
		payload.CompletedAt = &job.CompletedAt.Time
	}
	return payload
}

// handleJobStatus serves GET /api/jobs/{id} for generation progress polling
func (s *Server) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	jobID := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/jobs/"), "/")
	if jobID == "" {
		writeJSONError(w, http.StatusNotFound, "Missing job id")
		return
	}

	job, err := database.GetDesignJob(jobID)
	if err == sql.ErrNoRows {
		writeJSONError(w, http.StatusNotFound, "Job not found")
		return
	}
	if err != nil {
		logging.Error("Failed to load job %s: %v", jobID, err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to load job")
		return
	}
	writeJSON(w, http.StatusOK, jobStatus(job))
}

// handleSystemVitals serves the resource usage snapshot
func (s *Server) handleSystemVitals(w http.ResponseWriter, r *http.Request) {
	snap, err := monitoring.GetSnapshot()
	if err != nil {
		logging.Error("Failed to load system vitals: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to load system vitals")
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// handleVersion serves build version information
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, version.Get())
}
