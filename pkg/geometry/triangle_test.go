package geometry

import (
	"math"
	"testing"

	"github.com/lumeray/lumeray/pkg/core"
)

func newUnitTriangle() *Triangle {
	// Right triangle in the XY plane, counter-clockwise so the normal is +Z
	return NewTriangle(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), nil)
}

func TestTriangle_Hit(t *testing.T) {
	tri := newUnitTriangle()

	tests := []struct {
		name      string
		ray       core.Ray
		expectHit bool
	}{
		{
			name:      "interior hit",
			ray:       core.NewRay(core.NewVec3(0.25, 0.25, 1), core.NewVec3(0, 0, -1)),
			expectHit: true,
		},
		{
			name:      "outside hypotenuse",
			ray:       core.NewRay(core.NewVec3(0.75, 0.75, 1), core.NewVec3(0, 0, -1)),
			expectHit: false,
		},
		{
			name:      "outside u edge",
			ray:       core.NewRay(core.NewVec3(-0.1, 0.5, 1), core.NewVec3(0, 0, -1)),
			expectHit: false,
		},
		{
			name:      "outside v edge",
			ray:       core.NewRay(core.NewVec3(0.5, -0.1, 1), core.NewVec3(0, 0, -1)),
			expectHit: false,
		},
		{
			name:      "parallel to plane",
			ray:       core.NewRay(core.NewVec3(0.25, 0.25, 1), core.NewVec3(1, 0, 0)),
			expectHit: false,
		},
		{
			name:      "behind ray",
			ray:       core.NewRay(core.NewVec3(0.25, 0.25, 1), core.NewVec3(0, 0, 1)),
			expectHit: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, isHit := tri.Hit(tt.ray, 0.001, 1000.0)
			if isHit != tt.expectHit {
				t.Errorf("Expected hit=%t, got %t", tt.expectHit, isHit)
			}
		})
	}
}

func TestTriangle_HitDetails(t *testing.T) {
	tri := newUnitTriangle()
	ray := core.NewRay(core.NewVec3(0.25, 0.5, 2), core.NewVec3(0, 0, -1))

	hit, isHit := tri.Hit(ray, 0.001, 1000.0)
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}
	if math.Abs(hit.T-2.0) > 1e-9 {
		t.Errorf("Expected t=2, got %f", hit.T)
	}
	if math.Abs(hit.UV.X-0.25) > 1e-9 || math.Abs(hit.UV.Y-0.5) > 1e-9 {
		t.Errorf("Expected barycentric UV (0.25,0.5), got %v", hit.UV)
	}
	if !hit.FrontFace || hit.Normal.Subtract(core.NewVec3(0, 0, 1)).Length() > 1e-9 {
		t.Errorf("Expected front face with normal +z, got front=%t normal=%v", hit.FrontFace, hit.Normal)
	}
}

func TestTriangle_BoundingBox(t *testing.T) {
	tri := newUnitTriangle()
	box := tri.BoundingBox()

	if !box.IsValid() || box.IsDegenerate() {
		t.Errorf("Expected padded valid box, got %v", box)
	}
	if !box.Contains(core.NewAABB(core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 0))) {
		t.Errorf("Expected box to contain vertices, got %v", box)
	}
}

func TestTriangle_Validate(t *testing.T) {
	if err := newUnitTriangle().Validate(); err != nil {
		t.Errorf("Expected valid triangle, got error: %v", err)
	}

	collinear := NewTriangle(core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1), core.NewVec3(2, 2, 2), nil)
	if err := collinear.Validate(); err == nil {
		t.Error("Expected collinear vertices to be invalid")
	}

	nan := NewTriangle(core.NewVec3(math.NaN(), 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), nil)
	if err := nan.Validate(); err == nil {
		t.Error("Expected NaN vertex to be invalid")
	}
}
