package scene

import (
	"math"
	"testing"

	"github.com/lumeray/lumeray/pkg/core"
	"github.com/lumeray/lumeray/pkg/geometry"
	"github.com/lumeray/lumeray/pkg/material"
	"github.com/lumeray/lumeray/pkg/renderer"
)

func testCamera() *renderer.Camera {
	return renderer.NewCamera(renderer.CameraConfig{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        60.0,
		Width:       64,
		AspectRatio: 1.0,
	})
}

func TestScene_Preprocess(t *testing.T) {
	s := &Scene{
		Camera: testCamera(),
		Shapes: []core.Shape{
			geometry.NewSphere(core.NewVec3(0, 0, -2), 1, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))),
		},
	}

	if err := s.Preprocess(); err != nil {
		t.Fatalf("Preprocess failed: %v", err)
	}
	if s.GetBVH() == nil {
		t.Fatal("Expected BVH after preprocess")
	}
	if s.GetBVH().ShapeCount() != 1 {
		t.Errorf("Expected 1 shape in BVH, got %d", s.GetBVH().ShapeCount())
	}
}

func TestScene_PreprocessRequiresCamera(t *testing.T) {
	s := &Scene{}
	if err := s.Preprocess(); err == nil {
		t.Error("Expected error for scene without camera")
	}
}

func TestScene_PreprocessExcludesDegenerateShapes(t *testing.T) {
	s := &Scene{
		Camera: testCamera(),
		Shapes: []core.Shape{
			geometry.NewSphere(core.NewVec3(0, 0, -2), 1, nil),
			geometry.NewSphere(core.NewVec3(0, 0, -2), 0, nil),                                       // zero radius
			geometry.NewSphere(core.NewVec3(math.NaN(), 0, -2), 1, nil),                              // NaN center
			geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(2, 0, 0), nil), // parallel edges
		},
	}

	if err := s.Preprocess(); err != nil {
		t.Fatalf("Preprocess failed: %v", err)
	}
	if s.GetBVH().Excluded != 3 {
		t.Errorf("Expected 3 excluded shapes, got %d", s.GetBVH().Excluded)
	}
	if s.GetBVH().ShapeCount() != 1 {
		t.Errorf("Expected 1 surviving shape, got %d", s.GetBVH().ShapeCount())
	}
}

func TestScene_AddQuadLight(t *testing.T) {
	s := &Scene{Camera: testCamera()}
	s.AddQuadLight(
		core.NewVec3(-1, 2, -1),
		core.NewVec3(2, 0, 0),
		core.NewVec3(0, 0, 2),
		core.NewVec3(5, 5, 5),
	)

	// The quad registers both as a sampled light and as an emissive shape
	if len(s.Lights) != 1 {
		t.Fatalf("Expected 1 light, got %d", len(s.Lights))
	}
	if len(s.Shapes) != 1 {
		t.Fatalf("Expected 1 shape, got %d", len(s.Shapes))
	}
	if s.Lights[0].Type() != core.LightTypeArea {
		t.Error("Expected area light type")
	}

	quad, ok := s.Shapes[0].(*geometry.Quad)
	if !ok {
		t.Fatal("Expected shape to be a quad")
	}
	if _, isEmitter := quad.Material.(core.Emitter); !isEmitter {
		t.Error("Expected quad material to emit")
	}
}

func TestScene_AddUniformInfiniteLight(t *testing.T) {
	s := &Scene{Camera: testCamera()}
	emission := core.NewVec3(0.4, 0.5, 0.6)
	s.AddUniformInfiniteLight(emission)

	if len(s.Lights) != 1 || s.Lights[0].Type() != core.LightTypeInfinite {
		t.Fatal("Expected one infinite light")
	}
	top, bottom := s.GetBackgroundColors()
	if top != emission || bottom != emission {
		t.Error("Expected background to match environment emission")
	}
}

func TestNewGroundQuad(t *testing.T) {
	quad := NewGroundQuad(core.NewVec3(0, 1, 0), 10, nil)

	if quad.Normal.Subtract(core.NewVec3(0, 1, 0)).Length() > 1e-9 {
		t.Errorf("Expected upward normal, got %v", quad.Normal)
	}
	if math.Abs(quad.Area()-100) > 1e-9 {
		t.Errorf("Expected area 100, got %f", quad.Area())
	}

	// Centered on the given point
	center := quad.PointAt(0.5, 0.5)
	if center.Subtract(core.NewVec3(0, 1, 0)).Length() > 1e-9 {
		t.Errorf("Expected center (0,1,0), got %v", center)
	}
}

func TestBuiltInScenes(t *testing.T) {
	scenes := map[string]*Scene{
		"default": NewDefaultScene(64, 36),
		"cornell": NewCornellScene(64, 64),
	}

	for name, s := range scenes {
		t.Run(name, func(t *testing.T) {
			if err := s.Preprocess(); err != nil {
				t.Fatalf("Preprocess failed: %v", err)
			}
			if s.GetBVH().Excluded != 0 {
				t.Errorf("Expected no degenerate shapes, excluded %d", s.GetBVH().Excluded)
			}
			if s.GetCamera() == nil {
				t.Error("Expected a camera")
			}
			if len(s.GetLights()) == 0 {
				t.Error("Expected at least one light")
			}
			if s.GetSamplingConfig().SamplesPerPixel <= 0 {
				t.Error("Expected positive sample count")
			}
		})
	}
}
