package core

import (
	"math"
	"testing"
)

func TestVec3_BasicOperations(t *testing.T) {
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
		{"Cross", NewVec3(1, 0, 0).Cross(NewVec3(0, 1, 0)), NewVec3(0, 0, 1)},
		{"Negate", a.Negate(), NewVec3(-1, -2, -3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got.Subtract(tt.expected).Length() > 1e-12 {
				t.Errorf("Expected %v, got %v", tt.expected, tt.got)
			}
		})
	}

	if dot := a.Dot(b); dot != 12 {
		t.Errorf("Expected dot product 12, got %f", dot)
	}
}

func TestVec3_Normalize(t *testing.T) {
	v := NewVec3(3, 4, 12).Normalize()
	if math.Abs(v.Length()-1.0) > 1e-12 {
		t.Errorf("Expected unit length, got %f", v.Length())
	}

	zero := Vec3{}.Normalize()
	if zero != (Vec3{}) {
		t.Errorf("Expected zero vector to normalize to zero, got %v", zero)
	}
}

func TestVec3_NearZero(t *testing.T) {
	tests := []struct {
		name     string
		v        Vec3
		expected bool
	}{
		{"zero", NewVec3(0, 0, 0), true},
		{"tiny", NewVec3(1e-9, -1e-9, 5e-9), true},
		{"one component large", NewVec3(1e-9, 1e-3, 0), false},
		{"unit", NewVec3(1, 0, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.NearZero(); got != tt.expected {
				t.Errorf("NearZero(%v) = %t, expected %t", tt.v, got, tt.expected)
			}
		})
	}
}

func TestReflect_PreservesMagnitudeAndAngle(t *testing.T) {
	normal := NewVec3(0, 1, 0)
	incoming := []Vec3{
		NewVec3(1, -1, 0),
		NewVec3(0.3, -2, 0.7),
		NewVec3(-4, -0.1, 2),
	}

	for _, v := range incoming {
		r := Reflect(v, normal)

		if math.Abs(r.Length()-v.Length()) > 1e-12 {
			t.Errorf("Reflect(%v) changed magnitude: %f -> %f", v, v.Length(), r.Length())
		}

		// Angle of incidence equals angle of reflection
		cosIn := -v.Normalize().Dot(normal)
		cosOut := r.Normalize().Dot(normal)
		if math.Abs(cosIn-cosOut) > 1e-12 {
			t.Errorf("Reflect(%v): incidence cos %f != reflection cos %f", v, cosIn, cosOut)
		}

		// Tangential component is unchanged
		if math.Abs(r.X-v.X) > 1e-12 || math.Abs(r.Z-v.Z) > 1e-12 {
			t.Errorf("Reflect(%v) altered tangential components: %v", v, r)
		}
	}
}

func TestRefract_NormalIncidencePassesStraight(t *testing.T) {
	normal := NewVec3(0, 1, 0)
	incoming := NewVec3(0, -1, 0)

	refracted := Refract(incoming, normal, 1.0/1.5)
	if refracted.Subtract(incoming).Length() > 1e-12 {
		t.Errorf("Expected straight-through refraction, got %v", refracted)
	}
}

func TestRefract_SnellsLaw(t *testing.T) {
	normal := NewVec3(0, 1, 0)
	etaRatio := 1.0 / 1.5
	incoming := NewVec3(1, -1, 0).Normalize()

	refracted := Refract(incoming, normal, etaRatio)

	if math.Abs(refracted.Length()-1.0) > 1e-9 {
		t.Errorf("Expected unit refracted vector, got length %f", refracted.Length())
	}

	sinIn := math.Sqrt(1 - math.Pow(incoming.Dot(normal), 2))
	sinOut := math.Sqrt(1 - math.Pow(refracted.Dot(normal), 2))
	if math.Abs(sinOut-etaRatio*sinIn) > 1e-9 {
		t.Errorf("Snell's law violated: sinOut=%f, expected %f", sinOut, etaRatio*sinIn)
	}

	if refracted.Y >= 0 {
		t.Errorf("Refracted ray should continue below the surface, got %v", refracted)
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRay(NewVec3(1, 1, 1), NewVec3(0, 0, -2))
	if p := ray.At(1.5); p != NewVec3(1, 1, -2) {
		t.Errorf("Expected (1,1,-2), got %v", p)
	}
}
