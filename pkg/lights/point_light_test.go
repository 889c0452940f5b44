package lights

import (
	"math"
	"testing"

	"github.com/lumeray/lumeray/pkg/core"
)

func TestPointLight_Sample(t *testing.T) {
	light := NewPointLight(core.NewVec3(0, 2, 0), core.NewVec3(8, 8, 8))
	point := core.NewVec3(0, 0, 0)
	normal := core.NewVec3(0, 1, 0)

	sample, ok := light.Sample(point, normal, core.NewVec2(0.5, 0.5))
	if !ok {
		t.Fatal("Expected sample, got none")
	}
	if sample.Direction != core.NewVec3(0, 1, 0) {
		t.Errorf("Expected direction straight up, got %v", sample.Direction)
	}
	if math.Abs(sample.Distance-2.0) > 1e-9 {
		t.Errorf("Expected distance 2, got %f", sample.Distance)
	}
	if sample.PDF != 1.0 {
		t.Errorf("Expected delta PDF 1, got %f", sample.PDF)
	}

	// Intensity falls off with squared distance: 8 / 4 = 2
	if sample.Emission.Subtract(core.NewVec3(2, 2, 2)).Length() > 1e-9 {
		t.Errorf("Expected emission (2,2,2), got %v", sample.Emission)
	}
}

func TestPointLight_InverseSquareFalloff(t *testing.T) {
	light := NewPointLight(core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1))
	normal := core.NewVec3(0, 1, 0)

	near, _ := light.Sample(core.NewVec3(1, 0, 0), normal, core.Vec2{})
	far, _ := light.Sample(core.NewVec3(3, 0, 0), normal, core.Vec2{})

	ratio := near.Emission.X / far.Emission.X
	if math.Abs(ratio-9.0) > 1e-9 {
		t.Errorf("Expected 9x falloff at 3x distance, got %f", ratio)
	}
}

func TestPointLight_NeverHitByRays(t *testing.T) {
	light := NewPointLight(core.NewVec3(0, 2, 0), core.NewVec3(1, 1, 1))

	// BSDF sampling can never hit a point, so its PDF for MIS is zero
	if pdf := light.PDF(core.Vec3{}, core.NewVec3(0, 1, 0), core.NewVec3(0, 1, 0)); pdf != 0 {
		t.Errorf("Expected zero PDF, got %f", pdf)
	}
	if got := light.Emit(core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0))); got != (core.Vec3{}) {
		t.Errorf("Expected zero emission for escaping rays, got %v", got)
	}
}

func TestPointLight_CoincidentPoint(t *testing.T) {
	light := NewPointLight(core.NewVec3(1, 1, 1), core.NewVec3(1, 1, 1))
	if _, ok := light.Sample(core.NewVec3(1, 1, 1), core.NewVec3(0, 1, 0), core.Vec2{}); ok {
		t.Error("Expected no sample when shading point coincides with the light")
	}
}
