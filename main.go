package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-pathtracer/pkg/config"
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/output"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run parses args layered over .env and PT_* settings, then renders
func run(args []string, stdout, stderr io.Writer) error {
	cfg, err := config.Load(".env")
	if err != nil {
		return err
	}

	flags := flag.NewFlagSet("pathtracer", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVar(&cfg.Scene, "scene", cfg.Scene, "Built-in scene name, scene file name in -scenes-dir, or path to a .json scene")
	flags.StringVar(&cfg.ScenesDir, "scenes-dir", cfg.ScenesDir, "Directory searched for .json scene files")
	flags.IntVar(&cfg.Width, "width", cfg.Width, "Image width in pixels (0 uses the scene's width)")
	flags.IntVar(&cfg.SamplesPerPixel, "samples", cfg.SamplesPerPixel, "Samples per pixel (0 uses the scene's value)")
	flags.IntVar(&cfg.MaxDepth, "depth", cfg.MaxDepth, "Maximum bounces per path (0 uses the scene's value)")
	flags.IntVar(&cfg.Workers, "workers", cfg.Workers, "Render goroutines (0 uses every CPU)")
	flags.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Base random seed")
	flags.StringVar(&cfg.Output, "out", cfg.Output, "Output file (.ppm, .png, .bmp, .tiff) or - for PPM on stdout")
	flags.IntVar(&cfg.ThumbnailWidth, "thumb", cfg.ThumbnailWidth, "Also write a PNG thumbnail this many pixels wide (0 disables)")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	list := flags.Bool("list", false, "List available scenes and exit")
	help := flags.Bool("help", false, "Show help information")

	if err := flags.Parse(args); err != nil {
		return err
	}

	if *help {
		printHelp(stdout, flags, cfg.ScenesDir)
		return nil
	}
	if *list {
		return listScenes(stdout, cfg.ScenesDir)
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	level, _ := config.ParseLogLevel(cfg.LogLevel)
	core.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))

	return render(cfg, stdout)
}

func printHelp(w io.Writer, flags *flag.FlagSet, scenesDir string) {
	fmt.Fprintln(w, "Go Path Tracer")
	fmt.Fprintln(w, "Usage: pathtracer [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	flags.SetOutput(w)
	flags.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Settings can also come from PT_* environment variables or a .env file.")
	fmt.Fprintln(w)
	_ = listScenes(w, scenesDir)
}

func listScenes(w io.Writer, scenesDir string) error {
	catalog, err := scene.Catalog(scenesDir)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "Available scenes:")
	for _, group := range catalog.Groups {
		fmt.Fprintf(w, "  %s:\n", group.Name)
		for _, info := range group.Scenes {
			fmt.Fprintf(w, "    %-16s %s\n", info.ID, info.Description)
		}
	}
	return nil
}

// createScene builds the named scene and applies any size or quality overrides
func createScene(cfg config.Config) (*scene.Scene, error) {
	s, err := scene.Create(cfg.Scene, cfg.ScenesDir)
	if err != nil {
		return nil, err
	}
	if cfg.Width > 0 {
		s.SetWidth(cfg.Width)
	}
	if cfg.SamplesPerPixel > 0 {
		s.SamplingConfig.SamplesPerPixel = cfg.SamplesPerPixel
	}
	if cfg.MaxDepth > 0 {
		s.SamplingConfig.MaxDepth = cfg.MaxDepth
	}
	return s, nil
}

func render(cfg config.Config, stdout io.Writer) error {
	logger := core.Logger()

	selectedScene, err := createScene(cfg)
	if err != nil {
		return err
	}
	logger.Info("scene ready", "scene", selectedScene.Name, "primitives", selectedScene.GetPrimitiveCount())

	raytracer := renderer.NewRaytracer(selectedScene,
		renderer.WithWorkers(cfg.Workers),
		renderer.WithSeed(cfg.Seed))

	img, stats := raytracer.RenderPass()
	logger.Info("render complete",
		"elapsed", stats.Elapsed,
		"samplesPerPixel", stats.AverageSamples(),
		"workers", stats.Workers)

	format, err := output.FormatFromPath(cfg.Output)
	if err != nil {
		return err
	}
	var encoded bytes.Buffer
	if err := output.Encode(&encoded, img, format); err != nil {
		return err
	}

	toStdout := cfg.Output == "-"
	if toStdout {
		if _, err := stdout.Write(encoded.Bytes()); err != nil {
			return fmt.Errorf("failed to write image to stdout: %w", err)
		}
	} else {
		if err := writeFile(cfg.Output, encoded.Bytes()); err != nil {
			return err
		}
		logger.Info("render saved", "path", cfg.Output)
	}

	var thumbnail []byte
	thumbPath := thumbnailPath(cfg.Output)
	if cfg.ThumbnailWidth > 0 && !toStdout {
		var buf bytes.Buffer
		if err := output.Encode(&buf, output.Thumbnail(img, cfg.ThumbnailWidth), output.FormatPNG); err != nil {
			return err
		}
		if err := writeFile(thumbPath, buf.Bytes()); err != nil {
			return err
		}
		thumbnail = buf.Bytes()
		logger.Info("thumbnail saved", "path", thumbPath)
	}

	if !cfg.S3.Enabled() {
		return nil
	}
	publisher, err := output.NewS3Publisher(cfg.S3)
	if err != nil {
		return err
	}
	ctx := context.Background()
	key := objectKey(selectedScene.Name, cfg.Output, format)
	url, err := publisher.Publish(ctx, key, format, encoded.Bytes())
	if err != nil {
		return err
	}
	logger.Info("render published", "url", url)
	if thumbnail != nil {
		url, err := publisher.Publish(ctx, thumbnailPath(key), output.FormatPNG, thumbnail)
		if err != nil {
			return err
		}
		logger.Info("thumbnail published", "url", url)
	}
	return nil
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// thumbnailPath turns "out/render.ppm" into "out/render.thumb.png"
func thumbnailPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".thumb.png"
}

// objectKey names an upload "<scene>/<file>", with a timestamped file name for stdout renders
func objectKey(sceneName, out string, format output.Format) string {
	name := filepath.Base(out)
	if out == "-" {
		name = fmt.Sprintf("render_%s.%s", time.Now().Format("20060102_150405"), format)
	}
	return sceneName + "/" + name
}
