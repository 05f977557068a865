package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// CameraConfig contains all parameters needed to create a camera
type CameraConfig struct {
	LookFrom      core.Point3 // Eye position
	LookAt        core.Point3 // Point the camera is aimed at
	Up            core.Vec3   // Up direction (usually (0,1,0))
	VFov          float64     // Vertical field of view in degrees
	AspectRatio   float64     // Width / height
	Aperture      float64     // Lens diameter; 0 gives a pinhole camera
	FocusDistance float64     // Distance to the plane of perfect focus
}

// Validate reports configurations that would produce a degenerate camera basis
func (c CameraConfig) Validate() error {
	var errs []error
	if c.VFov <= 0 || c.VFov >= 180 {
		errs = append(errs, fmt.Errorf("vertical fov must be in (0, 180), got %g", c.VFov))
	}
	if c.AspectRatio <= 0 {
		errs = append(errs, fmt.Errorf("aspect ratio must be positive, got %g", c.AspectRatio))
	}
	if c.Aperture < 0 {
		errs = append(errs, fmt.Errorf("aperture must not be negative, got %g", c.Aperture))
	}
	if c.FocusDistance <= 0 {
		errs = append(errs, fmt.Errorf("focus distance must be positive, got %g", c.FocusDistance))
	}
	view := c.LookFrom.Subtract(c.LookAt)
	if view.NearZero() {
		errs = append(errs, errors.New("look-from and look-at must differ"))
	} else if c.Up.Cross(view).NearZero() {
		errs = append(errs, errors.New("up vector must not be parallel to the view direction"))
	}
	return errors.Join(errs...)
}

// Camera generates rays for rendering with a thin-lens depth-of-field model
type Camera struct {
	config          CameraConfig
	origin          core.Point3
	lowerLeftCorner core.Point3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v, w         core.Vec3
	lensRadius      float64
}

// NewCamera creates a camera from the given configuration.
// The basis and viewport are derived once; the camera is read-only afterwards.
func NewCamera(config CameraConfig) *Camera {
	theta := config.VFov * math.Pi / 180.0
	h := math.Tan(theta / 2)
	viewportHeight := 2.0 * h
	viewportWidth := config.AspectRatio * viewportHeight

	w := config.LookFrom.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	origin := config.LookFrom
	horizontal := u.Multiply(config.FocusDistance * viewportWidth)
	vertical := v.Multiply(config.FocusDistance * viewportHeight)
	lowerLeftCorner := origin.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w.Multiply(config.FocusDistance))

	return &Camera{
		config:          config,
		origin:          origin,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		u:               u,
		v:               v,
		w:               w,
		lensRadius:      config.Aperture / 2,
	}
}

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig {
	return c.config
}

// GetRay generates a ray for screen coordinates (s, t) where 0 <= s,t <= 1.
// (0,0) is the lower-left corner of the image.
func (c *Camera) GetRay(s, t float64, sampler core.Sampler) core.Ray {
	offset := core.Vec3{}
	if c.lensRadius > 0 {
		rd := core.SamplePointInUnitDisk(sampler.Get2D()).Multiply(c.lensRadius)
		offset = c.u.Multiply(rd.X).Add(c.v.Multiply(rd.Y))
	}

	rayOrigin := c.origin.Add(offset)
	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(rayOrigin)

	return core.NewRay(rayOrigin, direction)
}
