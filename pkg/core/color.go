package core

import (
	"image/color"
	"math"
)

// maxChannel keeps a channel strictly below 1 so it never rounds past 255
const maxChannel = 0.999

// AntiAliased averages an accumulated sample sum and applies gamma-2 correction.
// Each channel becomes clamp(sqrt(sum/samples), 0, 0.999).
func AntiAliased(sum Color, samples int) Color {
	if samples <= 0 {
		return Color{}
	}
	n := float64(samples)
	channel := func(s float64) float64 {
		return max(0.0, min(maxChannel, math.Sqrt(s/n)))
	}
	return NewColor(channel(sum.X), channel(sum.Y), channel(sum.Z))
}

// ToRGBA converts a gamma-corrected color in [0,1) to an opaque 8-bit pixel
func ToRGBA(c Color) color.RGBA {
	c = c.Clamp(0.0, maxChannel)
	return color.RGBA{
		R: uint8(c.X * 255.9),
		G: uint8(c.Y * 255.9),
		B: uint8(c.Z * 255.9),
		A: 255,
	}
}
