package server

import (
	"fmt"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gorilla/sessions"

	"mepdesign/internal/cache"
	"mepdesign/internal/config"
	"mepdesign/internal/logging"
	"mepdesign/internal/mep"
	"mepdesign/internal/viewer"
	"mepdesign/internal/worker"
)

// designCacheTTL bounds how stale a cached design payload can be after a
// regeneration completes.
const designCacheTTL = 15 * time.Second

// Server represents the HTTP server
type Server struct {
	config       *config.Config
	templates    map[string]*template.Template
	sessionStore *sessions.CookieStore
	worker       *worker.Worker
	viewers      *viewer.Manager
	designs      *cache.Cache[*mep.Design]
}

// New creates a new server instance. The database must be initialized
// before calling New.
func New(cfg *config.Config, w *worker.Worker) (*Server, error) {
	s := &Server{
		config:       cfg,
		templates:    make(map[string]*template.Template),
		sessionStore: sessions.NewCookieStore([]byte(cfg.SessionSecret)),
		worker:       w,
		viewers:      viewer.NewManager(),
		designs:      cache.New[*mep.Design](designCacheTTL),
	}

	// Configure session store
	s.sessionStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   false, // Set to true in production with HTTPS
		SameSite: http.SameSiteLaxMode,
	}

	// Load templates
	if err := s.loadTemplates("templates"); err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	// Ensure storage directories exist
	for _, dir := range []string{cfg.UploadDir, cfg.OutputDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return s, nil
}

// loadTemplates loads all HTML templates from the given directory
func (s *Server) loadTemplates(dir string) error {
	baseTemplate := filepath.Join(dir, "layouts", "base.html")

	pages := map[string]string{
		"index":       filepath.Join(dir, "pages", "index.html"),
		"new_project": filepath.Join(dir, "pages", "new_project.html"),
		"project":     filepath.Join(dir, "pages", "project.html"),
		"design":      filepath.Join(dir, "pages", "design.html"),
		"feedback":    filepath.Join(dir, "pages", "feedback.html"),
		"not_found":   filepath.Join(dir, "pages", "404.html"),
		"error":       filepath.Join(dir, "pages", "500.html"),
	}

	for name, path := range pages {
		tmpl, err := template.ParseFiles(baseTemplate, path)
		if err != nil {
			return fmt.Errorf("failed to parse %s template: %w", name, err)
		}
		s.templates[name] = tmpl
	}

	return nil
}

// render executes a named page template against the base layout
func (s *Server) render(w http.ResponseWriter, name string, data interface{}) {
	tmpl, ok := s.templates[name]
	if !ok {
		logging.Error("Template not found: %s", name)
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "base", data); err != nil {
		logging.Error("Error rendering template %s: %v", name, err)
	}
}

// Handler builds the route table
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Static file serving
	fs := http.FileServer(http.Dir("static"))
	mux.Handle("/static/", http.StripPrefix("/static/", fs))

	// Pages
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/projects/new", s.handleNewProject)
	mux.HandleFunc("/projects/", s.routeProjects)
	mux.HandleFunc("/download/", s.handleDownload)

	// API routes
	mux.HandleFunc("/api/design/", s.routeDesignAPI)
	mux.HandleFunc("/api/jobs/", s.handleJobStatus)
	mux.HandleFunc("/api/viewer/", s.routeViewerAPI)
	mux.HandleFunc("/api/system-vitals", s.handleSystemVitals)
	mux.HandleFunc("/api/version", s.handleVersion)

	return s.recoveryMiddleware(s.loggingMiddleware(mux))
}

// Start starts the HTTP server
func (s *Server) Start() error {
	addr := s.config.ListenAddr
	if addr == "" {
		addr = config.DefaultPort
	}

	logging.Info("Starting server on %s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// Shutdown gracefully shuts down background processing
func (s *Server) Shutdown() {
	if s.worker != nil {
		s.worker.Stop()
	}
	if s.designs != nil {
		s.designs.Close()
	}
}
