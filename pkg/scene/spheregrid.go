package scene

import (
	"math"
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// oklchToRGB converts OKLCH color values to RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Color {
	hRad := h * math.Pi / 180.0

	// OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to LMS
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b

	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	// LMS to linear RGB
	r := +4.0767416621*l_ - 3.3077115913*m_ + 0.2309699292*s_
	g := -1.2684380046*l_ + 2.6097574011*m_ - 0.3413193965*s_
	blue := -0.0041960863*l_ - 0.7034186147*m_ + 1.7076147010*s_

	return core.NewColor(r, g, blue).Clamp(0, 1)
}

// NewSphereGridScene scatters small spheres on a grid around the three feature spheres.
// The layout is a pure function of seed.
func NewSphereGridScene(seed int64) *Scene {
	s := New("spheregrid", DefaultCameraConfig(), SamplingConfig{
		Width:           400,
		SamplesPerPixel: 50,
		MaxDepth:        50,
	})

	random := rand.New(rand.NewSource(seed))

	s.AddSphere(core.NewVec3(0, -1000, 0), 1000, material.NewLambertian(core.NewColor(0.5, 0.5, 0.5)))

	// One shared glass instance for every small glass sphere
	glass := material.NewDielectric(1.5)
	clearance := core.NewVec3(4, 0.2, 0)

	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			center := core.NewVec3(float64(a)+0.9*random.Float64(), 0.2, float64(b)+0.9*random.Float64())
			if center.Subtract(clearance).Length() <= 0.9 {
				continue
			}

			hue := math.Mod(float64(a+11)*16.0+float64(b+11)*4.0, 360)
			chooseMat := random.Float64()
			switch {
			case chooseMat < 0.8:
				albedo := oklchToRGB(0.7, 0.15, hue)
				s.AddSphere(center, 0.2, material.NewLambertian(albedo.MultiplyVec(albedo)))
			case chooseMat < 0.95:
				albedo := oklchToRGB(0.85, 0.08, hue)
				s.AddSphere(center, 0.2, material.NewMetal(albedo, 0.5*random.Float64()))
			default:
				s.AddSphere(center, 0.2, glass)
			}
		}
	}

	addFeatureSpheres(s)

	return s
}
