package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// File is the JSON scene description
type File struct {
	Name        string                  `json:"name"`
	Description string                  `json:"description,omitempty"`
	Group       string                  `json:"group,omitempty"`
	Camera      CameraFile              `json:"camera"`
	Sampling    SamplingFile            `json:"sampling"`
	Materials   map[string]MaterialFile `json:"materials"`
	Spheres     []SphereFile            `json:"spheres"`
}

// CameraFile mirrors geometry.CameraConfig with array-encoded vectors
type CameraFile struct {
	LookFrom      [3]float64 `json:"lookFrom"`
	LookAt        [3]float64 `json:"lookAt"`
	Up            [3]float64 `json:"up"`
	VFov          float64    `json:"vfov"`
	AspectRatio   float64    `json:"aspectRatio"`
	Aperture      float64    `json:"aperture"`
	FocusDistance float64    `json:"focusDistance"`
}

// SamplingFile holds the render settings stored with a scene
type SamplingFile struct {
	Width           int `json:"width"`
	SamplesPerPixel int `json:"samplesPerPixel"`
	MaxDepth        int `json:"maxDepth"`
}

// MaterialFile describes one named material
type MaterialFile struct {
	Type            string     `json:"type"` // "lambertian", "metal" or "dielectric"
	Albedo          [3]float64 `json:"albedo,omitempty"`
	Fuzz            float64    `json:"fuzz,omitempty"`
	RefractiveIndex float64    `json:"refractiveIndex,omitempty"`
}

// SphereFile places a sphere using a named material
type SphereFile struct {
	Center   [3]float64 `json:"center"`
	Radius   float64    `json:"radius"`
	Material string     `json:"material"`
}

func vec(a [3]float64) core.Vec3 {
	return core.NewVec3(a[0], a[1], a[2])
}

// LoadSceneFile reads and builds a scene from a JSON description
func LoadSceneFile(path string) (*Scene, error) {
	file, err := ReadSceneFile(path)
	if err != nil {
		return nil, err
	}
	s, err := file.Build()
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// ReadSceneFile decodes a JSON scene description without building it
func ReadSceneFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scene file: %w", err)
	}
	defer f.Close()

	decoder := json.NewDecoder(f)
	decoder.DisallowUnknownFields()

	var file File
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("decode scene file %s: %w", path, err)
	}
	return &file, nil
}

// Build validates the description and instantiates the scene.
// Each named material is created once and shared by every sphere that uses it.
func (f *File) Build() (*Scene, error) {
	cameraConfig := geometry.CameraConfig{
		LookFrom:      vec(f.Camera.LookFrom),
		LookAt:        vec(f.Camera.LookAt),
		Up:            vec(f.Camera.Up),
		VFov:          f.Camera.VFov,
		AspectRatio:   f.Camera.AspectRatio,
		Aperture:      f.Camera.Aperture,
		FocusDistance: f.Camera.FocusDistance,
	}
	if err := cameraConfig.Validate(); err != nil {
		return nil, fmt.Errorf("camera: %w", err)
	}

	sampling := SamplingConfig{
		Width:           f.Sampling.Width,
		SamplesPerPixel: f.Sampling.SamplesPerPixel,
		MaxDepth:        f.Sampling.MaxDepth,
	}
	if sampling.Width <= 0 {
		sampling.Width = 400
	}
	if sampling.SamplesPerPixel <= 0 {
		sampling.SamplesPerPixel = 100
	}
	if sampling.MaxDepth <= 0 {
		sampling.MaxDepth = 50
	}

	// Sorted so errors are reported deterministically
	names := make([]string, 0, len(f.Materials))
	for name := range f.Materials {
		names = append(names, name)
	}
	sort.Strings(names)

	materials := make(map[string]material.Material, len(f.Materials))
	for _, name := range names {
		mat, err := f.Materials[name].build()
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", name, err)
		}
		materials[name] = mat
	}

	s := New(f.Name, cameraConfig, sampling)
	for i, sphere := range f.Spheres {
		mat, ok := materials[sphere.Material]
		if !ok {
			return nil, fmt.Errorf("sphere %d: unknown material %q", i, sphere.Material)
		}
		if sphere.Radius <= 0 {
			return nil, fmt.Errorf("sphere %d: radius must be positive, got %g", i, sphere.Radius)
		}
		s.AddSphere(vec(sphere.Center), sphere.Radius, mat)
	}

	return s, nil
}

func (m MaterialFile) build() (material.Material, error) {
	switch strings.ToLower(m.Type) {
	case "lambertian":
		return material.NewLambertian(vec(m.Albedo)), nil
	case "metal":
		return material.NewMetal(vec(m.Albedo), m.Fuzz), nil
	case "dielectric":
		if m.RefractiveIndex <= 0 {
			return nil, fmt.Errorf("refractive index must be positive, got %g", m.RefractiveIndex)
		}
		return material.NewDielectric(m.RefractiveIndex), nil
	case "":
		return nil, errors.New("missing type")
	default:
		return nil, fmt.Errorf("unknown type %q", m.Type)
	}
}
