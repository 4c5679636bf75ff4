package server

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"mepdesign/internal/blueprint"
	"mepdesign/internal/buildingcode"
	"mepdesign/internal/charts"
	"mepdesign/internal/config"
	"mepdesign/internal/database"
	"mepdesign/internal/forms"
	"mepdesign/internal/logging"
	"mepdesign/internal/monitoring"
)

// handleIndex renders the project list
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	// Only handle exact path match
	if r.URL.Path != "/" {
		s.renderNotFound(w)
		return
	}

	projects, err := database.ListProjects()
	if err != nil {
		logging.Error("Failed to list projects: %v", err)
		s.renderError(w, http.StatusInternalServerError)
		return
	}

	data := struct {
		Projects []database.Project
		Vitals   *systemStatus
		Messages []FlashMessage
	}{
		Projects: projects,
		Vitals:   loadSystemStatus(),
		Messages: s.takeFlashes(w, r),
	}
	s.render(w, "index", data)
}

// systemStatus is the vitals summary shown at the bottom of the dashboard
type systemStatus struct {
	Current  *database.SystemVitalLog
	CPUSpark template.HTML
	MemSpark template.HTML
}

func loadSystemStatus() *systemStatus {
	snap, err := monitoring.GetSnapshot()
	if err != nil {
		logging.Warning("Failed to load system vitals: %v", err)
		return nil
	}
	if snap.Current == nil {
		return nil
	}

	cpu := make([]float64, len(snap.History))
	mem := make([]float64, len(snap.History))
	for i, v := range snap.History {
		cpu[i] = v.CPUPercent
		mem[i] = v.MemoryPercent
	}
	return &systemStatus{
		Current:  snap.Current,
		CPUSpark: charts.PercentSparkline(cpu, 120, 32, "#2563eb"),
		MemSpark: charts.PercentSparkline(mem, 120, 32, "#15803d"),
	}
}

// handleNewProject renders and processes the project creation form
func (s *Server) handleNewProject(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		data := struct {
			Errors   map[string]string
			FormData map[string]string
			Messages []FlashMessage
		}{
			Errors:   map[string]string{},
			FormData: map[string]string{},
			Messages: s.takeFlashes(w, r),
		}
		s.render(w, "new_project", data)
		return
	}

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	name := r.FormValue("name")
	description := r.FormValue("description")

	result := forms.ValidateProjectForm(name)
	if !result.Valid() {
		data := struct {
			Errors   map[string]string
			FormData map[string]string
			Messages []FlashMessage
		}{
			Errors:   map[string]string{"name": result.ErrorFor("name")},
			FormData: map[string]string{"name": name, "description": description},
			Messages: nil,
		}
		w.WriteHeader(http.StatusUnprocessableEntity)
		s.render(w, "new_project", data)
		return
	}

	id, err := database.CreateProject(strings.TrimSpace(name), strings.TrimSpace(description))
	if err != nil {
		logging.Error("Failed to create project: %v", err)
		s.renderError(w, http.StatusInternalServerError)
		return
	}

	s.addFlash(w, r, "success", "Project created")
	http.Redirect(w, r, fmt.Sprintf("/projects/%d", id), http.StatusSeeOther)
}

// routeProjects dispatches /projects/{id} and its sub-pages
func (s *Server) routeProjects(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/projects/")
	parts := strings.SplitN(strings.Trim(rest, "/"), "/", 2)

	id, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		s.renderNotFound(w)
		return
	}

	action := ""
	if len(parts) == 2 {
		action = parts[1]
	}

	switch action {
	case "":
		s.handleProjectDetail(w, r, id)
	case "upload":
		s.handleUpload(w, r, id)
	case "generate":
		s.handleGenerate(w, r, id)
	case "design":
		s.handleDesignPage(w, r, id)
	case "feedback":
		s.handleFeedback(w, r, id)
	default:
		s.renderNotFound(w)
	}
}

// projectPageData is the shared payload for project-scoped pages
type projectPageData struct {
	Project      *database.Project
	Blueprint    *database.Blueprint
	BuildingCode *database.BuildingCode
	HasDesign    bool
	Job          *database.DesignJob
	OutputFiles  []database.OutputFile
	Feedback     []database.Feedback
	Messages     []FlashMessage
}

func (s *Server) loadProjectPageData(id int64) (*projectPageData, error) {
	project, err := database.GetProject(id)
	if err != nil {
		return nil, err
	}

	data := &projectPageData{Project: project}
	if data.Blueprint, err = database.LatestBlueprint(id); err != nil {
		return nil, err
	}
	if data.BuildingCode, err = database.LatestBuildingCode(id); err != nil {
		return nil, err
	}
	if data.HasDesign, err = database.HasDesign(id); err != nil {
		return nil, err
	}
	if data.Job, err = database.LatestJobForProject(id); err != nil {
		return nil, err
	}
	if data.OutputFiles, err = database.ListOutputFiles(id); err != nil {
		return nil, err
	}
	if data.Feedback, err = database.ListFeedback(id); err != nil {
		return nil, err
	}
	return data, nil
}

// handleProjectDetail renders one project with its uploads, job state, and
// generated outputs
func (s *Server) handleProjectDetail(w http.ResponseWriter, r *http.Request, id int64) {
	data, err := s.loadProjectPageData(id)
	if err == sql.ErrNoRows {
		s.renderNotFound(w)
		return
	}
	if err != nil {
		logging.Error("Failed to load project %d: %v", id, err)
		s.renderError(w, http.StatusInternalServerError)
		return
	}

	data.Messages = s.takeFlashes(w, r)
	s.render(w, "project", data)
}

// handleUpload accepts blueprint and building-code uploads plus the
// requirement form values
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request, id int64) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if _, err := database.GetProject(id); err != nil {
		s.renderNotFound(w)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, config.MaxUploadBytes)
	if err := r.ParseMultipartForm(config.MaxUploadBytes); err != nil {
		s.addFlash(w, r, "error", "Upload too large or malformed")
		http.Redirect(w, r, fmt.Sprintf("/projects/%d", id), http.StatusSeeOther)
		return
	}

	blueprintFile, blueprintHeader, _ := r.FormFile("blueprint")
	codeFile, codeHeader, _ := r.FormFile("building_code")
	defer closeUploads(blueprintFile, codeFile)

	result := forms.ValidateUploadForm(uploadName(blueprintHeader), uploadName(codeHeader), s.config.StrictUploads)
	for _, warning := range result.Warnings {
		s.addFlash(w, r, "warning", warning.Message)
	}
	if !result.Valid() {
		for _, e := range result.Errors {
			s.addFlash(w, r, "error", e.Message)
		}
		http.Redirect(w, r, fmt.Sprintf("/projects/%d", id), http.StatusSeeOther)
		return
	}

	if blueprintFile != nil {
		if err := s.storeBlueprint(id, blueprintFile, blueprintHeader); err != nil {
			logging.Error("Failed to store blueprint: %v", err)
			s.addFlash(w, r, "error", "Failed to process blueprint")
		} else {
			s.addFlash(w, r, "success", "Blueprint uploaded")
		}
	}
	if codeFile != nil {
		if err := s.storeBuildingCode(id, codeFile, codeHeader); err != nil {
			logging.Error("Failed to store building code: %v", err)
			s.addFlash(w, r, "error", "Failed to process building code document")
		} else {
			s.addFlash(w, r, "success", "Building code uploaded")
		}
	}

	// The requirements arrive either as a serialized JSON field or as the
	// individual form inputs; the serialized field wins when present.
	var requirements interface{}
	if serialized := r.FormValue("requirements"); serialized != "" {
		requirements = forms.ParseRequirements(serialized)
	} else {
		requirements = forms.BuildRequirements(formValues(r))
	}
	payload, err := json.Marshal(requirements)
	if err == nil {
		err = database.UpdateProjectRequirements(id, payload)
	}
	if err != nil {
		logging.Error("Failed to save requirements: %v", err)
		s.addFlash(w, r, "error", "Failed to save requirements")
	}

	http.Redirect(w, r, fmt.Sprintf("/projects/%d", id), http.StatusSeeOther)
}

func uploadName(header *multipart.FileHeader) string {
	if header == nil {
		return ""
	}
	return header.Filename
}

func closeUploads(files ...multipart.File) {
	for _, f := range files {
		if f != nil {
			f.Close()
		}
	}
}

func formValues(r *http.Request) map[string]string {
	values := make(map[string]string)
	for key := range r.Form {
		values[key] = r.FormValue(key)
	}
	return values
}

// saveUpload writes an uploaded file under the upload directory with a
// project-scoped, sanitized name
func (s *Server) saveUpload(projectID int64, file multipart.File, header *multipart.FileHeader) (string, error) {
	name := filepath.Base(strings.ReplaceAll(header.Filename, "\\", "/"))
	stored := filepath.Join(s.config.UploadDir, fmt.Sprintf("%d_%s", projectID, name))

	out, err := os.Create(stored)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		return "", err
	}
	return stored, nil
}

func (s *Server) storeBlueprint(projectID int64, file multipart.File, header *multipart.FileHeader) error {
	stored, err := s.saveUpload(projectID, file, header)
	if err != nil {
		return err
	}

	spatial, err := blueprint.Parse(stored)
	if err != nil {
		// Extension checks only warn by default, so an unparseable format
		// degrades to the placeholder layout instead of rejecting the file.
		if s.config.StrictUploads {
			return err
		}
		logging.Warning("Cannot parse blueprint %s, using placeholder layout: %v", header.Filename, err)
		spatial = blueprint.PlaceholderSpatialData()
	}
	payload, err := json.Marshal(spatial)
	if err != nil {
		return err
	}
	_, err = database.SaveBlueprint(projectID, header.Filename, stored, payload)
	return err
}

func (s *Server) storeBuildingCode(projectID int64, file multipart.File, header *multipart.FileHeader) error {
	stored, err := s.saveUpload(projectID, file, header)
	if err != nil {
		return err
	}

	rules, err := buildingcode.Parse(stored)
	if err != nil {
		if s.config.StrictUploads {
			return err
		}
		logging.Warning("Cannot parse building code %s, using default rules: %v", header.Filename, err)
		rules = buildingcode.DefaultRules()
	}
	payload, err := json.Marshal(rules)
	if err != nil {
		return err
	}
	_, err = database.SaveBuildingCode(projectID, header.Filename, stored, payload)
	return err
}

// handleGenerate queues a design generation job for the project
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request, id int64) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if _, err := database.GetProject(id); err != nil {
		s.renderNotFound(w)
		return
	}

	active, err := database.HasActiveJob(id)
	if err != nil {
		logging.Error("Failed to check active jobs: %v", err)
		s.renderError(w, http.StatusInternalServerError)
		return
	}
	if active {
		s.addFlash(w, r, "warning", "A design generation is already running for this project")
		http.Redirect(w, r, fmt.Sprintf("/projects/%d", id), http.StatusSeeOther)
		return
	}

	jobID, err := database.CreateDesignJob(id)
	if err != nil {
		logging.Error("Failed to create design job: %v", err)
		s.renderError(w, http.StatusInternalServerError)
		return
	}
	s.worker.Enqueue(jobID)
	s.designs.Delete(strconv.FormatInt(id, 10))

	s.addFlash(w, r, "info", "Design generation started")
	http.Redirect(w, r, fmt.Sprintf("/projects/%d", id), http.StatusSeeOther)
}

// handleDesignPage renders the 3D viewer page
func (s *Server) handleDesignPage(w http.ResponseWriter, r *http.Request, id int64) {
	data, err := s.loadProjectPageData(id)
	if err == sql.ErrNoRows {
		s.renderNotFound(w)
		return
	}
	if err != nil {
		logging.Error("Failed to load project %d: %v", id, err)
		s.renderError(w, http.StatusInternalServerError)
		return
	}

	if !data.HasDesign {
		s.addFlash(w, r, "warning", "No design has been generated for this project yet")
		http.Redirect(w, r, fmt.Sprintf("/projects/%d", id), http.StatusSeeOther)
		return
	}

	data.Messages = s.takeFlashes(w, r)
	s.render(w, "design", data)
}

// handleFeedback renders the feedback page and accepts new comments
func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request, id int64) {
	if r.Method == http.MethodPost {
		component := r.FormValue("component")
		comment := r.FormValue("comment")

		result := forms.ValidateFeedbackForm(component, comment)
		if !result.Valid() {
			for _, e := range result.Errors {
				s.addFlash(w, r, "error", e.Message)
			}
			http.Redirect(w, r, fmt.Sprintf("/projects/%d/feedback", id), http.StatusSeeOther)
			return
		}

		if _, err := database.CreateFeedback(id, component, strings.TrimSpace(comment)); err != nil {
			logging.Error("Failed to save feedback: %v", err)
			s.renderError(w, http.StatusInternalServerError)
			return
		}
		s.addFlash(w, r, "success", "Feedback submitted")
		http.Redirect(w, r, fmt.Sprintf("/projects/%d/feedback", id), http.StatusSeeOther)
		return
	}

	data, err := s.loadProjectPageData(id)
	if err == sql.ErrNoRows {
		s.renderNotFound(w)
		return
	}
	if err != nil {
		logging.Error("Failed to load project %d: %v", id, err)
		s.renderError(w, http.StatusInternalServerError)
		return
	}

	data.Messages = s.takeFlashes(w, r)
	s.render(w, "feedback", data)
}

// handleDownload serves a generated output file as an attachment. The path
// is /download/{projectID}/{fileType}.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/download/")
	parts := strings.SplitN(strings.Trim(rest, "/"), "/", 2)
	if len(parts) != 2 {
		s.renderNotFound(w)
		return
	}

	projectID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		s.renderNotFound(w)
		return
	}
	fileType := strings.ToUpper(parts[1])

	files, err := database.ListOutputFiles(projectID)
	if err != nil {
		logging.Error("Failed to list output files: %v", err)
		s.renderError(w, http.StatusInternalServerError)
		return
	}

	for _, f := range files {
		if f.FileType == fileType {
			w.Header().Set("Content-Disposition",
				fmt.Sprintf("attachment; filename=%q", filepath.Base(f.Path)))
			http.ServeFile(w, r, f.Path)
			return
		}
	}
	s.renderNotFound(w)
}

// renderNotFound renders the 404 page
func (s *Server) renderNotFound(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNotFound)
	s.render(w, "not_found", struct{ Messages []FlashMessage }{})
}

// renderError renders the 500 page
func (s *Server) renderError(w http.ResponseWriter, status int) {
	w.WriteHeader(status)
	s.render(w, "error", struct{ Messages []FlashMessage }{})
}
