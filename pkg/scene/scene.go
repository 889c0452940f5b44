// Package scene assembles shapes, lights, camera and sampling settings
// into renderable scenes.
package scene

import (
	"fmt"

	"github.com/lumeray/lumeray/log"
	"github.com/lumeray/lumeray/pkg/core"
	"github.com/lumeray/lumeray/pkg/geometry"
	"github.com/lumeray/lumeray/pkg/lights"
	"github.com/lumeray/lumeray/pkg/material"
)

var logger = log.New("scene")

// Scene contains all the elements needed for rendering
type Scene struct {
	Camera         core.Camera
	Shapes         []core.Shape // Objects in the scene
	Lights         []core.Light // Lights in the scene
	TopColor       core.Vec3    // Background gradient top color
	BottomColor    core.Vec3    // Background gradient bottom color
	SamplingConfig core.SamplingConfig

	bvh *core.BVH
}

// Preprocess builds the acceleration structure. It must be called once
// after the shape list is final and before rendering starts.
func (s *Scene) Preprocess() error {
	if s.Camera == nil {
		return fmt.Errorf("scene has no camera")
	}

	s.bvh = core.NewBVH(s.Shapes)
	if excluded := s.bvh.Excluded; excluded > 0 {
		logger.Warningf("excluded %d degenerate shapes from acceleration structure", excluded)
	}
	logger.Debugf("built BVH over %d shapes, %d lights", s.bvh.ShapeCount(), len(s.Lights))

	return nil
}

// GetBVH returns the acceleration structure; Preprocess must have run
func (s *Scene) GetBVH() *core.BVH {
	return s.bvh
}

// GetLights returns the scene's light list
func (s *Scene) GetLights() []core.Light {
	return s.Lights
}

// GetCamera returns the scene camera
func (s *Scene) GetCamera() core.Camera {
	return s.Camera
}

// GetBackgroundColors returns the background gradient top and bottom colors
func (s *Scene) GetBackgroundColors() (core.Vec3, core.Vec3) {
	return s.TopColor, s.BottomColor
}

// GetSamplingConfig returns the scene's recommended sampling configuration
func (s *Scene) GetSamplingConfig() core.SamplingConfig {
	return s.SamplingConfig
}

// AddQuadLight adds a rectangular area light to the scene. The quad is
// registered both as a light for direct sampling and as an emissive shape
// so that rays hitting it pick up its radiance.
func (s *Scene) AddQuadLight(corner, u, v core.Vec3, emission core.Vec3) {
	emissiveMat := material.NewEmissive(emission)
	quad := geometry.NewQuad(corner, u, v, emissiveMat)
	s.Lights = append(s.Lights, lights.NewQuadLight(quad, emission))
	s.Shapes = append(s.Shapes, quad)
}

// AddPointLight adds a point light to the scene
func (s *Scene) AddPointLight(position, intensity core.Vec3) {
	s.Lights = append(s.Lights, lights.NewPointLight(position, intensity))
}

// AddUniformInfiniteLight surrounds the scene with a constant-radiance
// environment. The integrators let infinite lights replace the background
// gradient; the gradient colors are kept in sync so GetBackgroundColors
// still reports what escaping rays see.
func (s *Scene) AddUniformInfiniteLight(emission core.Vec3) {
	s.Lights = append(s.Lights, lights.NewUniformInfiniteLight(emission))
	s.TopColor = emission
	s.BottomColor = emission
}

// NewGroundQuad creates a large horizontal quad to stand in for an
// infinite ground plane. Infinite shapes cannot live in a bounded
// acceleration structure, so scenes use a quad big enough that its edges
// never show.
func NewGroundQuad(center core.Vec3, size float64, mat core.Material) *geometry.Quad {
	corner := core.NewVec3(center.X-size/2, center.Y, center.Z-size/2)
	u := core.NewVec3(0, 0, size)
	v := core.NewVec3(size, 0, 0) // u cross v points up
	return geometry.NewQuad(corner, u, v, mat)
}
