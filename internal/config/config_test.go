package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.ListenAddr != DefaultPort {
		t.Errorf("ListenAddr = %v, want %v", cfg.ListenAddr, DefaultPort)
	}
	if cfg.DatabasePath != "mepdesign.db" {
		t.Errorf("DatabasePath = %v, want mepdesign.db", cfg.DatabasePath)
	}
	if cfg.StrictUploads {
		t.Error("StrictUploads should default to false")
	}
	if cfg.Workers != DefaultWorkers {
		t.Errorf("Workers = %v, want %v", cfg.Workers, DefaultWorkers)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	os.Clearenv()
	os.Setenv("DATABASE_PATH", "/tmp/test.db")       //nolint:errcheck,gosec // Test setup
	os.Setenv("LISTEN_ADDR", ":9999")                //nolint:errcheck,gosec // Test setup
	os.Setenv("MEP_UPLOAD_DIR", "/tmp/mep-uploads")  //nolint:errcheck,gosec // Test setup
	os.Setenv("MEP_STRICT_UPLOADS", "true")          //nolint:errcheck,gosec // Test setup
	os.Setenv("MEP_WORKERS", "4")                    //nolint:errcheck,gosec // Test setup
	defer os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.DatabasePath != "/tmp/test.db" {
		t.Errorf("DatabasePath = %v, want /tmp/test.db", cfg.DatabasePath)
	}
	if cfg.ListenAddr != ":9999" {
		t.Errorf("ListenAddr = %v, want :9999", cfg.ListenAddr)
	}
	if cfg.UploadDir != "/tmp/mep-uploads" {
		t.Errorf("UploadDir = %v, want /tmp/mep-uploads", cfg.UploadDir)
	}
	if !cfg.StrictUploads {
		t.Error("StrictUploads should be enabled")
	}
	if cfg.Workers != 4 {
		t.Errorf("Workers = %v, want 4", cfg.Workers)
	}
}

func TestLoadRejectsInvalidWorkerCount(t *testing.T) {
	os.Clearenv()
	os.Setenv("MEP_WORKERS", "zero") //nolint:errcheck,gosec // Test setup
	defer os.Clearenv()

	if _, err := Load(); err == nil {
		t.Error("Expected an error for a non-numeric worker count")
	}

	os.Setenv("MEP_WORKERS", "0") //nolint:errcheck,gosec // Test setup
	if _, err := Load(); err == nil {
		t.Error("Expected an error for a zero worker count")
	}
}

func TestLoadMakesStorageDirsAbsolute(t *testing.T) {
	os.Clearenv()
	defer os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if !filepath.IsAbs(cfg.UploadDir) {
		t.Errorf("UploadDir not absolute: %v", cfg.UploadDir)
	}
	if !filepath.IsAbs(cfg.OutputDir) {
		t.Errorf("OutputDir not absolute: %v", cfg.OutputDir)
	}
}
