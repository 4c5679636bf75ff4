package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds all configuration settings for the application
type Config struct {
	// DatabasePath is the path to the SQLite database file
	DatabasePath string `toml:"database_path"`

	// ListenAddr is the address and port for the web server
	ListenAddr string `toml:"listen_addr"`

	// UploadDir is where blueprint and building-code uploads are stored
	UploadDir string `toml:"upload_dir"`

	// OutputDir is where generated CAD output files are written
	OutputDir string `toml:"output_dir"`

	// LogDir is where log files are written
	LogDir string `toml:"log_dir"`

	// SessionSecret signs the session cookie used for flash messages
	SessionSecret string `toml:"session_secret"`

	// StrictUploads rejects uploads with disallowed file extensions
	// instead of accepting them with a warning
	StrictUploads bool `toml:"strict_uploads"`

	// Workers is the number of concurrent design generation workers
	Workers int `toml:"workers"`
}

// defaultConfig returns the default configuration
func defaultConfig() *Config {
	return &Config{
		DatabasePath:  "mepdesign.db",
		ListenAddr:    DefaultPort,
		UploadDir:     "uploads",
		OutputDir:     "output",
		LogDir:        "logs",
		SessionSecret: "mep-design-dev-secret",
		StrictUploads: false,
		Workers:       DefaultWorkers,
	}
}

// Load loads the configuration from file and environment variables
func Load() (*Config, error) {
	// Start with default configuration
	config := defaultConfig()

	// Try to load from config.toml if it exists
	configPath := "config.toml"
	if _, err := os.Stat(configPath); err == nil {
		if _, err := toml.DecodeFile(configPath, config); err != nil {
			return nil, fmt.Errorf("failed to decode config file: %w", err)
		}
	}

	// Override with environment variables if set
	if dbPath := os.Getenv("DATABASE_PATH"); dbPath != "" {
		config.DatabasePath = dbPath
	}
	if listenAddr := os.Getenv("LISTEN_ADDR"); listenAddr != "" {
		config.ListenAddr = listenAddr
	}
	if uploadDir := os.Getenv("MEP_UPLOAD_DIR"); uploadDir != "" {
		config.UploadDir = uploadDir
	}
	if outputDir := os.Getenv("MEP_OUTPUT_DIR"); outputDir != "" {
		config.OutputDir = outputDir
	}
	if logDir := os.Getenv("MEP_LOG_DIR"); logDir != "" {
		config.LogDir = logDir
	}
	if secret := os.Getenv("SESSION_SECRET"); secret != "" {
		config.SessionSecret = secret
	}
	if strict := os.Getenv("MEP_STRICT_UPLOADS"); strict != "" {
		config.StrictUploads = strict == "true" || strict == "1"
	}
	if workers := os.Getenv("MEP_WORKERS"); workers != "" {
		n, err := strconv.Atoi(workers)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid MEP_WORKERS value: %q", workers)
		}
		config.Workers = n
	}

	// Ensure storage directories are absolute
	for _, dir := range []*string{&config.UploadDir, &config.OutputDir} {
		if !filepath.IsAbs(*dir) {
			absPath, err := filepath.Abs(*dir)
			if err != nil {
				return nil, fmt.Errorf("failed to get absolute path for %s: %w", *dir, err)
			}
			*dir = absPath
		}
	}

	return config, nil
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	var parts []string
	parts = append(parts, fmt.Sprintf("DatabasePath: %s", c.DatabasePath))
	parts = append(parts, fmt.Sprintf("ListenAddr: %s", c.ListenAddr))
	parts = append(parts, fmt.Sprintf("UploadDir: %s", c.UploadDir))
	parts = append(parts, fmt.Sprintf("OutputDir: %s", c.OutputDir))
	parts = append(parts, fmt.Sprintf("StrictUploads: %t", c.StrictUploads))
	parts = append(parts, fmt.Sprintf("Workers: %d", c.Workers))
	return strings.Join(parts, ", ")
}
