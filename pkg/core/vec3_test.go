package core

import (
	"math"
	"testing"
)

func TestVec3_Arithmetic(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, -5, 6)

	tests := []struct {
		name     string
		got      Vec3
		expected Vec3
	}{
		{"Add", a.Add(b), NewVec3(5, -3, 9)},
		{"Subtract", a.Subtract(b), NewVec3(-3, 7, -3)},
		{"Multiply", a.Multiply(2), NewVec3(2, 4, 6)},
		{"Divide", b.Divide(2), NewVec3(2, -2.5, 3)},
		{"MultiplyVec", a.MultiplyVec(b), NewVec3(4, -10, 18)},
		{"Negate", a.Negate(), NewVec3(-1, -2, -3)},
		{"Cross", a.Cross(b), NewVec3(27, 6, -13)},
		{"Clamp", NewVec3(-1, 0.5, 2).Clamp(0, 1), NewVec3(0, 0.5, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.got.Equals(tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, tt.got)
			}
		})
	}
}

func TestVec3_DotAndLength(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, -5, 6)

	if got := a.Dot(b); got != 12 {
		t.Errorf("Expected dot 12, got %f", got)
	}
	if got := NewVec3(3, 4, 0).Length(); got != 5 {
		t.Errorf("Expected length 5, got %f", got)
	}
	if got := a.LengthSquared(); got != 14 {
		t.Errorf("Expected squared length 14, got %f", got)
	}

	// Cross product is perpendicular to both inputs
	c := a.Cross(b)
	if c.Dot(a) != 0 || c.Dot(b) != 0 {
		t.Errorf("Cross product %v is not perpendicular to inputs", c)
	}
}

func TestVec3_Normalize(t *testing.T) {
	v := NewVec3(2, -3, 6).Normalize()
	if math.Abs(v.Length()-1.0) > 1e-12 {
		t.Errorf("Expected unit length, got %f", v.Length())
	}
	expected := NewVec3(2.0/7, -3.0/7, 6.0/7)
	if v.Subtract(expected).Length() > 1e-12 {
		t.Errorf("Expected %v, got %v", expected, v)
	}

	zero := Vec3{}.Normalize()
	if !zero.Equals(Vec3{}) || !zero.IsFinite() {
		t.Errorf("Normalizing the zero vector should give zero, got %v", zero)
	}
}

func TestVec3_NearZero(t *testing.T) {
	tests := []struct {
		name     string
		v        Vec3
		expected bool
	}{
		{"zero", NewVec3(0, 0, 0), true},
		{"tiny", NewVec3(1e-9, -1e-9, 5e-10), true},
		{"one component large", NewVec3(1e-9, 1e-3, 0), false},
		{"unit", NewVec3(1, 0, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.NearZero(); got != tt.expected {
				t.Errorf("NearZero(%v) = %t, want %t", tt.v, got, tt.expected)
			}
		})
	}
}

func TestVec3_IsFinite(t *testing.T) {
	if !NewVec3(1, 2, 3).IsFinite() {
		t.Error("Expected finite vector")
	}
	if NewVec3(math.NaN(), 0, 0).IsFinite() {
		t.Error("NaN component should not be finite")
	}
	if NewVec3(0, math.Inf(1), 0).IsFinite() {
		t.Error("Inf component should not be finite")
	}
}

func TestReflect_MirrorsNormalComponent(t *testing.T) {
	normals := []Vec3{
		NewVec3(0, 1, 0),
		NewVec3(1, 1, 0).Normalize(),
		NewVec3(-0.3, 0.2, 0.9).Normalize(),
	}
	vectors := []Vec3{
		NewVec3(1, -1, 0),
		NewVec3(0.2, -0.7, 0.4),
		NewVec3(-3, 2, 5),
	}

	for _, n := range normals {
		for _, v := range vectors {
			r := Reflect(v, n)
			if math.Abs(r.Dot(n)+v.Dot(n)) > 1e-12 {
				t.Errorf("Reflect(%v, %v): dot(r,n)=%f, want %f", v, n, r.Dot(n), -v.Dot(n))
			}
			// Tangential component is preserved, so length is unchanged
			if math.Abs(r.Length()-v.Length()) > 1e-12 {
				t.Errorf("Reflect changed length: %f -> %f", v.Length(), r.Length())
			}
		}
	}
}

func TestRefract_NormalIncidence(t *testing.T) {
	uv := NewVec3(0, -1, 0)
	n := NewVec3(0, 1, 0)

	refracted, ok := Refract(uv, n, 1.0/1.5)
	if !ok {
		t.Fatal("Refraction at normal incidence should always be possible")
	}
	if refracted.Subtract(uv).Length() > 1e-12 {
		t.Errorf("Expected undeviated ray %v, got %v", uv, refracted)
	}
}

func TestRefract_SnellsLaw(t *testing.T) {
	n := NewVec3(0, 1, 0)
	etaRatio := 1.0 / 1.5

	// 45 degrees incidence
	uv := NewVec3(1, -1, 0).Normalize()
	refracted, ok := Refract(uv, n, etaRatio)
	if !ok {
		t.Fatal("Expected refraction to succeed")
	}

	sinIn := math.Sqrt(1 - math.Pow(uv.Negate().Dot(n), 2))
	sinOut := math.Sqrt(1 - math.Pow(refracted.Negate().Dot(n), 2))
	if math.Abs(sinOut-etaRatio*sinIn) > 1e-9 {
		t.Errorf("Snell's law violated: sinOut=%f, eta*sinIn=%f", sinOut, etaRatio*sinIn)
	}
	if math.Abs(refracted.Length()-1.0) > 1e-12 {
		t.Errorf("Refracted vector should be unit length, got %f", refracted.Length())
	}
}

func TestRefract_TotalInternalReflection(t *testing.T) {
	// Leaving glass at a grazing angle: eta*sin(theta) > 1
	n := NewVec3(0, 1, 0)
	uv := NewVec3(0.9, -0.1, 0).Normalize()
	etaRatio := 1.5

	sinTheta := math.Sqrt(1 - math.Pow(uv.Negate().Dot(n), 2))
	if etaRatio*sinTheta <= 1 {
		t.Fatalf("Test setup should exceed the critical angle, got eta*sin=%f", etaRatio*sinTheta)
	}

	refracted, ok := Refract(uv, n, etaRatio)
	if ok {
		t.Errorf("Expected total internal reflection, got %v", refracted)
	}
	if !refracted.IsFinite() {
		t.Errorf("Refract must not produce NaN, got %v", refracted)
	}
}
