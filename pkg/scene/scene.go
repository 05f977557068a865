package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Scene contains all the elements needed for rendering.
// A scene is read-only once built and may be shared across render workers.
type Scene struct {
	Name           string
	Camera         *geometry.Camera
	CameraConfig   geometry.CameraConfig
	World          *geometry.HittableList // Objects in the scene
	SamplingConfig SamplingConfig
}

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width           int // Image width
	Height          int // Image height
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// HeightFor derives the image height from a width and aspect ratio
func HeightFor(width int, aspectRatio float64) int {
	if aspectRatio <= 0 {
		return max(1, width)
	}
	return max(1, int(float64(width)/aspectRatio))
}

// New creates an empty scene with a camera built from cameraConfig
func New(name string, cameraConfig geometry.CameraConfig, sampling SamplingConfig) *Scene {
	if sampling.Height <= 0 {
		sampling.Height = HeightFor(sampling.Width, cameraConfig.AspectRatio)
	}
	return &Scene{
		Name:           name,
		Camera:         geometry.NewCamera(cameraConfig),
		CameraConfig:   cameraConfig,
		World:          geometry.NewHittableList(),
		SamplingConfig: sampling,
	}
}

// AddSphere adds a sphere to the scene
func (s *Scene) AddSphere(center core.Point3, radius float64, mat material.Material) {
	s.World.Add(geometry.NewSphere(center, radius, mat))
}

// SetWidth changes the output width and derives the matching height
func (s *Scene) SetWidth(width int) {
	s.SamplingConfig.Width = width
	s.SamplingConfig.Height = HeightFor(width, s.CameraConfig.AspectRatio)
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return s.World.Len()
}
