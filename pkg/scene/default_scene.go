package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// DefaultCameraConfig frames the three feature spheres from a low, distant viewpoint
func DefaultCameraConfig() geometry.CameraConfig {
	return geometry.CameraConfig{
		LookFrom:      core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          20.0,
		AspectRatio:   16.0 / 9.0,
		Aperture:      0.1,
		FocusDistance: 10.0,
	}
}

// NewDefaultScene creates a ground sphere with glass, diffuse, and metal spheres resting on it
func NewDefaultScene() *Scene {
	s := New("default", DefaultCameraConfig(), SamplingConfig{
		Width:           400,
		SamplesPerPixel: 100,
		MaxDepth:        50,
	})

	groundMaterial := material.NewLambertian(core.NewColor(0.5, 0.5, 0.5))
	s.AddSphere(core.NewVec3(0, -1000, 0), 1000, groundMaterial)

	addFeatureSpheres(s)

	return s
}

// addFeatureSpheres places the glass, diffuse, and metal showcase spheres
func addFeatureSpheres(s *Scene) {
	s.AddSphere(core.NewVec3(0, 1, 0), 1.0, material.NewDielectric(1.5))
	s.AddSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewColor(0.4, 0.2, 0.1)))
	s.AddSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewColor(0.7, 0.6, 0.5), 0.0))
}
