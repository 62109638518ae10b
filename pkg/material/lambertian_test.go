package material

import (
	"math/rand"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestLambertian_Scatter(t *testing.T) {
	albedo := core.NewVec3(0.8, 0.3, 0.3)
	lambertian := NewLambertian(albedo)
	random := rand.New(rand.NewSource(42))

	rayIn := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))
	hit := core.HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 1, 0),
		T:         1.0,
		FrontFace: true,
	}

	for i := 0; i < 1000; i++ {
		scatter, didScatter := lambertian.Scatter(rayIn, hit, random)
		if !didScatter {
			t.Fatal("Lambertian should always scatter")
		}
		if scatter.Scattered.Origin != hit.Point {
			t.Errorf("Scattered ray should start at hit point, got %v", scatter.Scattered.Origin)
		}
		// normal + unit vector never points below the surface
		if scatter.Scattered.Direction.Dot(hit.Normal) < 0 {
			t.Errorf("Scattered direction %v points below the surface", scatter.Scattered.Direction)
		}
		if scatter.Scattered.Direction.NearZero() {
			t.Error("Scattered direction must not be degenerate")
		}
		if scatter.Attenuation != albedo {
			t.Errorf("Expected attenuation %v, got %v", albedo, scatter.Attenuation)
		}
	}
}

func TestLambertian_TexturedAttenuation(t *testing.T) {
	odd := core.NewVec3(0.2, 0.3, 0.1)
	even := core.NewVec3(0.9, 0.9, 0.9)
	lambertian := NewTexturedLambertian(NewChecker(odd, even))
	random := rand.New(rand.NewSource(1))

	rayIn := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))
	hit := core.HitRecord{Normal: core.NewVec3(0, 1, 0), FrontFace: true}

	hit.Point = core.NewVec3(0.1, 0.1, 0.1)
	if scatter, _ := lambertian.Scatter(rayIn, hit, random); scatter.Attenuation != even {
		t.Errorf("Expected even color, got %v", scatter.Attenuation)
	}

	hit.Point = core.NewVec3(-0.1, 0.1, 0.1)
	if scatter, _ := lambertian.Scatter(rayIn, hit, random); scatter.Attenuation != odd {
		t.Errorf("Expected odd color, got %v", scatter.Attenuation)
	}
}
