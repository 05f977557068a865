package integrator

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// ShadowAcneEpsilon is the minimum hit distance, so a scattered ray does not
// re-hit the surface it just left because of floating-point error.
const ShadowAcneEpsilon = 0.001

// World is anything rays can be intersected against
type World interface {
	Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool)
}

// PathTracingIntegrator implements unidirectional path tracing
type PathTracingIntegrator struct {
	MaxDepth int
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(maxDepth int) *PathTracingIntegrator {
	return &PathTracingIntegrator{MaxDepth: maxDepth}
}

// RayColor traces ray through the scene up to MaxDepth bounces
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, s *scene.Scene, sampler core.Sampler) core.Color {
	return pt.Trace(ray, s.World, pt.MaxDepth, sampler)
}

// Trace returns the color for a given ray with at most depth bounces remaining
func (pt *PathTracingIntegrator) Trace(ray core.Ray, world World, depth int, sampler core.Sampler) core.Color {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Color{}
	}

	hit, isHit := world.Hit(ray, ShadowAcneEpsilon, math.Inf(1))
	if !isHit {
		return ray.BackgroundColor()
	}

	scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
	if !didScatter {
		return core.Color{} // Material absorbed the ray
	}

	return scatter.Attenuation.MultiplyVec(pt.Trace(scatter.Scattered, world, depth-1, sampler))
}

// SamplePixel estimates the color of pixel (i, j), where j counts up from the bottom row.
// Each sample is jittered uniformly within the pixel footprint; the sum is
// averaged and gamma corrected.
func SamplePixel(integ Integrator, s *scene.Scene, i, j, samples int, sampler core.Sampler) core.Color {
	width := s.SamplingConfig.Width
	height := s.SamplingConfig.Height
	uSpan := float64(max(1, width-1))
	vSpan := float64(max(1, height-1))

	var sum core.Color
	for sample := 0; sample < samples; sample++ {
		u := (float64(i) + sampler.Get1D()) / uSpan
		v := (float64(j) + sampler.Get1D()) / vSpan
		ray := s.Camera.GetRay(u, v, sampler)
		sum = sum.Add(integ.RayColor(ray, s, sampler))
	}

	return core.AntiAliased(sum, samples)
}

var _ World = (*geometry.HittableList)(nil)
