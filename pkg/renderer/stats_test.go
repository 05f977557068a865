package renderer

import "testing"

func TestRenderStats_AverageSamples(t *testing.T) {
	tests := []struct {
		name  string
		stats RenderStats
		want  float64
	}{
		{"empty", RenderStats{}, 0},
		{"uniform", RenderStats{TotalPixels: 10, TotalSamples: 40}, 4},
		{"fractional", RenderStats{TotalPixels: 4, TotalSamples: 6}, 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.stats.AverageSamples(); got != tt.want {
				t.Errorf("AverageSamples() = %f, want %f", got, tt.want)
			}
		})
	}
}
