package scene

import (
	"github.com/lumeray/lumeray/pkg/core"
	"github.com/lumeray/lumeray/pkg/geometry"
	"github.com/lumeray/lumeray/pkg/material"
	"github.com/lumeray/lumeray/pkg/renderer"
)

// NewCornellScene creates a classic Cornell box with quad walls, a ceiling
// area light and two spheres
func NewCornellScene(width, height int) *Scene {
	camera := renderer.NewCamera(renderer.CameraConfig{
		Center:      core.NewVec3(278, 278, -800),
		LookAt:      core.NewVec3(278, 278, 0),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        40.0,
		Width:       width,
		AspectRatio: float64(width) / float64(height),
	})

	s := &Scene{
		Camera:      camera,
		TopColor:    core.NewVec3(0, 0, 0), // Closed box, black outside
		BottomColor: core.NewVec3(0, 0, 0),
		SamplingConfig: core.SamplingConfig{
			SamplesPerPixel:           256,
			MaxDepth:                  40,
			RussianRouletteMinBounces: 4,
			AdaptiveMinSamples:        0.15,
			AdaptiveThreshold:         0.01,
		},
	}

	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	red := material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05))
	green := material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15))

	boxSize := 555.0

	floor := geometry.NewQuad(
		core.NewVec3(0, 0, 0),
		core.NewVec3(boxSize, 0, 0),
		core.NewVec3(0, 0, boxSize),
		white,
	)
	ceiling := geometry.NewQuad(
		core.NewVec3(0, boxSize, 0),
		core.NewVec3(boxSize, 0, 0),
		core.NewVec3(0, 0, boxSize),
		white,
	)
	backWall := geometry.NewQuad(
		core.NewVec3(0, 0, boxSize),
		core.NewVec3(boxSize, 0, 0),
		core.NewVec3(0, boxSize, 0),
		white,
	)
	leftWall := geometry.NewQuad(
		core.NewVec3(0, 0, 0),
		core.NewVec3(0, 0, boxSize),
		core.NewVec3(0, boxSize, 0),
		red,
	)
	rightWall := geometry.NewQuad(
		core.NewVec3(boxSize, 0, 0),
		core.NewVec3(0, boxSize, 0),
		core.NewVec3(0, 0, boxSize),
		green,
	)
	s.Shapes = append(s.Shapes, floor, ceiling, backWall, leftWall, rightWall)

	// Ceiling light, slightly below the ceiling so it faces down
	lightSize := 130.0
	lightOffset := (boxSize - lightSize) / 2.0
	s.AddQuadLight(
		core.NewVec3(lightOffset, boxSize-1, lightOffset),
		core.NewVec3(lightSize, 0, 0), // u cross v points down into the box
		core.NewVec3(0, 0, lightSize),
		core.NewVec3(15.0, 15.0, 15.0),
	)

	s.Shapes = append(s.Shapes,
		geometry.NewSphere(core.NewVec3(185, 82.5, 169), 82.5, material.NewMetal(core.NewVec3(0.8, 0.8, 0.9), 0.0)),
		geometry.NewSphere(core.NewVec3(370, 90, 351), 90, material.NewDielectric(1.5)),
	)

	return s
}
