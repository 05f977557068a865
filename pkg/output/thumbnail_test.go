package output

import (
	"image"
	"testing"
)

func TestThumbnail(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 100, 50))

	tests := []struct {
		name       string
		width      int
		wantWidth  int
		wantHeight int
	}{
		{"downscale keeps aspect", 20, 20, 10},
		{"zero width keeps source", 0, 100, 50},
		{"negative width keeps source", -5, 100, 50},
		{"larger than source keeps source", 200, 100, 50},
		{"same as source keeps source", 100, 100, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			thumb := Thumbnail(src, tt.width)
			b := thumb.Bounds()
			if b.Dx() != tt.wantWidth || b.Dy() != tt.wantHeight {
				t.Errorf("Expected %dx%d, got %dx%d", tt.wantWidth, tt.wantHeight, b.Dx(), b.Dy())
			}
		})
	}
}
