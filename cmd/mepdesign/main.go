// Package main is the entry point for the MEP design server
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"mepdesign/internal/config"
	"mepdesign/internal/database"
	"mepdesign/internal/logging"
	"mepdesign/internal/monitoring"
	"mepdesign/internal/server"
	"mepdesign/internal/telemetry"
	"mepdesign/internal/version"
	"mepdesign/internal/worker"
)

func main() {
	// Load .env file if it exists (for development)
	if err := godotenv.Load(); err != nil {
		if os.Getenv("DEBUG") == "true" {
			fmt.Fprintf(os.Stderr, "No .env file found or error loading it: %v\n", err)
		}
	}

	// Handle version flag first, before loading configuration
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-version" || os.Args[1] == "version") {
		info := version.Get()
		fmt.Printf("mepdesign version %s\n", info.Version)
		fmt.Printf("  commit: %s\n", info.Commit)
		fmt.Printf("  built: %s\n", info.BuildDate)
		fmt.Printf("  go: %s\n", info.GoVersion)
		fmt.Printf("  platform: %s\n", info.Platform)
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logging.Initialize(cfg.LogDir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to initialize file logging: %v\n", err)
		// Continue with standard logging to stdout
	} else {
		defer logging.Close()
	}

	// Initialize telemetry
	ctx := context.Background()
	shutdown, err := telemetry.InitializeFromEnv(ctx)
	if err != nil {
		logging.Warning("Failed to initialize telemetry: %v", err)
		// Continue without telemetry
	} else {
		defer func() {
			if err := shutdown(ctx); err != nil {
				logging.Error("Error shutting down telemetry: %v", err)
			}
		}()
	}

	// Initialize database
	if err := database.Initialize(cfg.DatabasePath); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize database: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			logging.Error("Failed to close database: %v", err)
		}
	}()

	// Start background job processing
	w := worker.New(database.GetDB(), cfg.OutputDir)
	w.Start(cfg.Workers)

	// Start resource monitoring
	collector := monitoring.NewCollector()
	if err := collector.Start(); err != nil {
		logging.Warning("Failed to start resource monitoring: %v", err)
	}
	defer collector.Stop()

	logging.Info("Starting mepdesign %s", version.Get().Version)

	srv, err := server.New(cfg, w)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create server: %v\n", err)
		os.Exit(1)
	}
	defer srv.Shutdown()

	if err := srv.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
