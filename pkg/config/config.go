// Package config loads render settings from a .env file and PT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/df07/go-pathtracer/pkg/output"
)

// S3Config describes where finished renders are published
type S3Config = output.S3Config

// Config holds the settings shared by the CLI and the web server.
// Zero Width, SamplesPerPixel and MaxDepth mean "use the scene's value".
type Config struct {
	Scene           string
	ScenesDir       string
	Width           int
	SamplesPerPixel int
	MaxDepth        int
	Workers         int // 0 uses every CPU
	Seed            int64
	Output          string
	ThumbnailWidth  int // 0 disables the thumbnail
	LogLevel        string
	S3              S3Config
}

// Default returns the configuration used when nothing is set
func Default() Config {
	return Config{
		Scene:     "default",
		ScenesDir: "scenes",
		Seed:      42,
		Output:    "output/render.ppm",
		LogLevel:  "info",
	}
}

// Load reads envFile (if it exists) into the environment, then builds a
// Config from the PT_* variables layered over Default().
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	cfg := Default()
	var errs []error
	readString("PT_SCENE", &cfg.Scene)
	readString("PT_SCENES_DIR", &cfg.ScenesDir)
	errs = append(errs,
		readInt("PT_WIDTH", &cfg.Width),
		readInt("PT_SAMPLES", &cfg.SamplesPerPixel),
		readInt("PT_MAX_DEPTH", &cfg.MaxDepth),
		readInt("PT_WORKERS", &cfg.Workers),
		readInt64("PT_SEED", &cfg.Seed),
		readInt("PT_THUMB_WIDTH", &cfg.ThumbnailWidth),
	)
	readString("PT_OUTPUT", &cfg.Output)
	readString("PT_LOG_LEVEL", &cfg.LogLevel)

	readString("PT_S3_BUCKET", &cfg.S3.Bucket)
	readString("PT_S3_REGION", &cfg.S3.Region)
	readString("PT_S3_ENDPOINT", &cfg.S3.Endpoint)
	readString("PT_S3_ACCESS_KEY", &cfg.S3.AccessKey)
	readString("PT_S3_SECRET_KEY", &cfg.S3.SecretKey)
	readString("PT_S3_PREFIX", &cfg.S3.Prefix)

	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every invalid setting
func (c Config) Validate() error {
	var errs []error
	nonNegative := []struct {
		name  string
		value int
	}{
		{"width", c.Width},
		{"samples", c.SamplesPerPixel},
		{"max depth", c.MaxDepth},
		{"workers", c.Workers},
		{"thumbnail width", c.ThumbnailWidth},
	}
	for _, field := range nonNegative {
		if field.value < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative, got %d", field.name, field.value))
		}
	}
	if c.Scene == "" {
		errs = append(errs, errors.New("scene must not be empty"))
	}
	if _, err := output.FormatFromPath(c.Output); err != nil {
		errs = append(errs, fmt.Errorf("output %q: %w", c.Output, err))
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ParseLogLevel maps debug, info, warn and error to slog levels
func ParseLogLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
}

func readString(key string, dst *string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func readInt(key string, dst *int) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

func readInt64(key string, dst *int64) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}
