package core

// Ray represents a ray with an origin and direction
type Ray struct {
	Origin    Point3
	Direction Vec3
}

// NewRay creates a new ray
func NewRay(origin Point3, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Point3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

var (
	skyBottom = NewColor(1.0, 1.0, 1.0)
	skyTop    = NewColor(0.5, 0.7, 1.0)
)

// BackgroundColor returns the sky seen by a ray that leaves the scene:
// a vertical blend from white at the horizon to light blue overhead.
func (r Ray) BackgroundColor() Color {
	unitDirection := r.Direction.Normalize()

	// Map y from [-1,1] to [0,1]
	t := 0.5 * (unitDirection.Y + 1.0)

	return skyBottom.Multiply(1.0 - t).Add(skyTop.Multiply(t))
}
