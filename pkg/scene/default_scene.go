package scene

import (
	"github.com/lumeray/lumeray/pkg/core"
	"github.com/lumeray/lumeray/pkg/geometry"
	"github.com/lumeray/lumeray/pkg/material"
	"github.com/lumeray/lumeray/pkg/renderer"
)

// NewDefaultScene creates a demo scene with spheres of every material kind
// on a checkered ground, lit by a quad light under an open sky
func NewDefaultScene(width, height int) *Scene {
	camera := renderer.NewCamera(renderer.CameraConfig{
		Center:      core.NewVec3(0, 0.75, 2),
		LookAt:      core.NewVec3(0, 0.5, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        40.0,
		Width:       width,
		AspectRatio: float64(width) / float64(height),
	})

	s := &Scene{
		Camera:      camera,
		TopColor:    core.NewVec3(0.5, 0.7, 1.0), // Blue sky
		BottomColor: core.NewVec3(1.0, 1.0, 1.0), // White horizon
		SamplingConfig: core.SamplingConfig{
			SamplesPerPixel:           128,
			MaxDepth:                  25,
			RussianRouletteMinBounces: 3,
			AdaptiveMinSamples:        0.15,
			AdaptiveThreshold:         0.01,
		},
	}

	checker := material.NewTexturedLambertian(
		material.NewCheckerColor(2.0, core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9)),
	)
	matte := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	silver := material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.0)
	gold := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3)
	glass := material.NewDielectric(1.5)
	brushed := material.NewMicrofacet(core.NewVec3(0.9, 0.4, 0.3), 0.25)

	s.Shapes = append(s.Shapes,
		NewGroundQuad(core.NewVec3(0, 0, 0), 10000.0, checker),
		geometry.NewSphere(core.NewVec3(0, 0.5, -1), 0.5, matte),
		geometry.NewSphere(core.NewVec3(-1, 0.5, -1), 0.5, silver),
		geometry.NewSphere(core.NewVec3(1, 0.5, -1), 0.5, gold),
		geometry.NewSphere(core.NewVec3(0.5, 0.25, -0.5), 0.25, glass),
		geometry.NewSphere(core.NewVec3(-0.5, 0.25, -0.5), 0.25, brushed),
	)

	// Overhead area light for soft shadows; u cross v points down
	s.AddQuadLight(
		core.NewVec3(-1.5, 3.0, -2.5),
		core.NewVec3(3, 0, 0),
		core.NewVec3(0, 0, 3),
		core.NewVec3(4.0, 3.8, 3.6),
	)

	return s
}
