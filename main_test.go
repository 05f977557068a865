package main

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/df07/go-pathtracer/pkg/config"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// isolateEnv keeps the developer's PT_* settings out of the test
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"PT_SCENE", "PT_SCENES_DIR", "PT_WIDTH", "PT_SAMPLES", "PT_MAX_DEPTH",
		"PT_WORKERS", "PT_SEED", "PT_OUTPUT", "PT_THUMB_WIDTH", "PT_LOG_LEVEL", "PT_S3_BUCKET"} {
		t.Setenv(key, "")
	}
}

func TestCreateScene(t *testing.T) {
	tests := []struct {
		name        string
		sceneType   string
		expectError bool
	}{
		// Built-in scenes
		{"default scene", "default", false},
		{"spheregrid scene", "spheregrid", false},

		// Scene files (by name and by path)
		{"scene file by name", "glass-trio", false},
		{"scene file by path", "scenes/glass-trio.json", false},

		// Invalid scenes
		{"unknown scene", "nonexistent", true},
		{"invalid scene path", "scenes/nonexistent.json", true},
		{"empty scene name", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Scene = tt.sceneType
			s, err := createScene(cfg)

			if tt.expectError {
				if !errors.Is(err, scene.ErrUnknownScene) {
					t.Errorf("Expected ErrUnknownScene for '%s', got %v", tt.sceneType, err)
				}
				if s != nil {
					t.Errorf("Expected nil scene for invalid scene type '%s'", tt.sceneType)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error for scene type '%s': %v", tt.sceneType, err)
			}
			if s.SamplingConfig.Width <= 0 || s.SamplingConfig.Height <= 0 {
				t.Errorf("Scene dimensions should be positive, got %dx%d", s.SamplingConfig.Width, s.SamplingConfig.Height)
			}
			if s.GetPrimitiveCount() == 0 {
				t.Error("Scene should contain shapes")
			}
		})
	}
}

func TestCreateScene_Overrides(t *testing.T) {
	cfg := config.Default()
	cfg.Width = 160
	cfg.SamplesPerPixel = 3
	cfg.MaxDepth = 7

	s, err := createScene(cfg)
	if err != nil {
		t.Fatalf("createScene failed: %v", err)
	}
	want := scene.SamplingConfig{Width: 160, Height: 90, SamplesPerPixel: 3, MaxDepth: 7}
	if s.SamplingConfig != want {
		t.Errorf("Expected %+v, got %+v", want, s.SamplingConfig)
	}
}

func TestRun_StdoutPPM(t *testing.T) {
	isolateEnv(t)

	var stdout, stderr bytes.Buffer
	args := []string{"-scene", "default", "-width", "32", "-samples", "2", "-depth", "4", "-out", "-", "-log-level", "error"}
	if err := run(args, &stdout, &stderr); err != nil {
		t.Fatalf("run failed: %v (stderr: %s)", err, stderr.String())
	}

	out := stdout.String()
	header := "P3\n32 18\n255\n"
	if !strings.HasPrefix(out, header) {
		t.Fatalf("Expected header %q, got %q", header, out[:min(len(out), 20)])
	}

	lines := strings.Split(strings.TrimSuffix(strings.TrimPrefix(out, header), "\n"), "\n")
	if len(lines) != 32*18 {
		t.Fatalf("Expected %d pixel lines, got %d", 32*18, len(lines))
	}
	for i, line := range lines {
		fields := strings.Fields(line)
		if len(fields) != 3 {
			t.Fatalf("Line %d: expected 3 values, got %q", i, line)
		}
		for _, f := range fields {
			v, err := strconv.Atoi(f)
			if err != nil || v < 0 || v > 255 {
				t.Fatalf("Line %d: invalid channel value %q", i, f)
			}
		}
	}
}

func TestRun_FileAndThumbnail(t *testing.T) {
	isolateEnv(t)
	out := filepath.Join(t.TempDir(), "renders", "default.png")

	var stdout, stderr bytes.Buffer
	args := []string{"-width", "40", "-samples", "1", "-depth", "3", "-out", out, "-thumb", "10", "-log-level", "error"}
	if err := run(args, &stdout, &stderr); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	for path, wantWidth := range map[string]int{out: 40, thumbnailPath(out): 10} {
		f, err := os.Open(path)
		if err != nil {
			t.Fatalf("Expected %s to exist: %v", path, err)
		}
		cfg, err := png.DecodeConfig(f)
		f.Close()
		if err != nil {
			t.Fatalf("%s is not a PNG: %v", path, err)
		}
		if cfg.Width != wantWidth {
			t.Errorf("%s: expected width %d, got %d", path, wantWidth, cfg.Width)
		}
	}
}

func TestRun_Errors(t *testing.T) {
	isolateEnv(t)

	tests := []struct {
		name string
		args []string
	}{
		{"unknown scene", []string{"-scene", "nonexistent", "-out", "-"}},
		{"unknown format", []string{"-out", "render.gif"}},
		{"negative samples", []string{"-samples", "-1", "-out", "-"}},
		{"bad flag", []string{"-bogus"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if err := run(tt.args, &stdout, &stderr); err == nil {
				t.Errorf("Expected error for args %v", tt.args)
			}
			if stdout.Len() != 0 {
				t.Errorf("Expected no image output, got %d bytes", stdout.Len())
			}
		})
	}
}

func TestRun_List(t *testing.T) {
	isolateEnv(t)

	var stdout, stderr bytes.Buffer
	if err := run([]string{"-list"}, &stdout, &stderr); err != nil {
		t.Fatalf("run -list failed: %v", err)
	}
	for _, want := range []string{"default", "spheregrid", "glass-trio"} {
		if !strings.Contains(stdout.String(), want) {
			t.Errorf("Scene list should mention %q:\n%s", want, stdout.String())
		}
	}
}

func TestThumbnailPath(t *testing.T) {
	tests := map[string]string{
		"output/render.ppm": "output/render.thumb.png",
		"render":            "render.thumb.png",
		"a/b.tiff":          "a/b.thumb.png",
	}
	for in, want := range tests {
		if got := thumbnailPath(in); got != want {
			t.Errorf("thumbnailPath(%q) = %q, want %q", in, got, want)
		}
	}
}
