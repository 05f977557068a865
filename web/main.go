package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/df07/go-pathtracer/pkg/config"
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/web/server"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Parse command line flags
	port := flag.Int("port", 8080, "Port to serve on")
	flag.StringVar(&cfg.ScenesDir, "scenes-dir", cfg.ScenesDir, "Directory searched for .json scene files")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	flag.Parse()

	level, err := config.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	core.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	// Create and start web server
	webServer := server.NewServer(*port, cfg.ScenesDir)
	core.Logger().Info("path tracer web server", "url", fmt.Sprintf("http://localhost:%d/api/scenes", *port))

	if err := webServer.Start(); err != nil {
		core.Logger().Error("server stopped", "error", err)
		os.Exit(1)
	}
}
