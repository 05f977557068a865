package output

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"strings"
	"testing"
)

func TestWritePPM(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(0, 0, color.RGBA{255, 0, 0, 255})
	img.SetRGBA(1, 0, color.RGBA{0, 255, 0, 255})
	img.SetRGBA(0, 1, color.RGBA{0, 0, 255, 255})
	img.SetRGBA(1, 1, color.RGBA{12, 34, 56, 255})

	var buf bytes.Buffer
	if err := WritePPM(&buf, img); err != nil {
		t.Fatalf("WritePPM failed: %v", err)
	}

	want := "P3\n2 2\n255\n255 0 0\n0 255 0\n0 0 255\n12 34 56\n"
	if buf.String() != want {
		t.Errorf("WritePPM output mismatch:\ngot:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestWritePPM_LineCount(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 7, 3))

	var buf bytes.Buffer
	if err := WritePPM(&buf, img); err != nil {
		t.Fatalf("WritePPM failed: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 3+7*3 {
		t.Errorf("Expected %d lines, got %d", 3+7*3, len(lines))
	}
	if lines[1] != "7 3" {
		t.Errorf("Expected dimensions line '7 3', got %q", lines[1])
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWritePPM_WriteError(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	if err := WritePPM(failingWriter{}, img); err == nil {
		t.Error("Expected error from failing writer")
	}
}
