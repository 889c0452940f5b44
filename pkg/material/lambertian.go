package material

import (
	"math"

	"github.com/lumeray/lumeray/pkg/core"
)

// Lambertian represents a perfectly diffuse material
type Lambertian struct {
	Albedo ColorSource // Base reflectance (solid or textured)
}

// NewLambertian creates a new lambertian material with a solid color
func NewLambertian(albedo core.Vec3) *Lambertian {
	return &Lambertian{Albedo: NewSolidColor(albedo)}
}

// NewTexturedLambertian creates a new lambertian material with a texture
func NewTexturedLambertian(albedo ColorSource) *Lambertian {
	return &Lambertian{Albedo: albedo}
}

// Scatter implements cosine-weighted hemisphere sampling
func (l *Lambertian) Scatter(rayIn core.Ray, hit core.HitRecord, sampler core.Sampler) (core.ScatterResult, bool) {
	scatterDirection := core.SampleCosineHemisphere(hit.Normal, sampler.Get2D())
	scattered := core.NewRay(hit.Point, scatterDirection)

	// PDF: cos(θ)/π where θ is the angle from the normal
	cosTheta := scatterDirection.Dot(hit.Normal)
	if cosTheta <= 0 {
		// Degenerate sample grazing the surface; treat as absorbed rather
		// than returning a zero PDF the integrator would divide by
		return core.ScatterResult{}, false
	}

	albedo := l.Albedo.Evaluate(hit.UV, hit.Point)

	return core.ScatterResult{
		Incoming:    rayIn,
		Scattered:   scattered,
		Attenuation: albedo.Multiply(1.0 / math.Pi), // BRDF: albedo/π
		PDF:         cosTheta / math.Pi,
	}, true
}

// EvaluateBRDF returns the constant lambertian BRDF: albedo/π
func (l *Lambertian) EvaluateBRDF(incomingDir, outgoingDir core.Vec3, hit *core.HitRecord) core.Vec3 {
	if outgoingDir.Dot(hit.Normal) <= 0 || incomingDir.Dot(hit.Normal) <= 0 {
		return core.Vec3{}
	}
	return l.Albedo.Evaluate(hit.UV, hit.Point).Multiply(1.0 / math.Pi)
}

// PDF returns the cosine-weighted sampling density
func (l *Lambertian) PDF(incomingDir, outgoingDir, normal core.Vec3) (float64, bool) {
	cosTheta := outgoingDir.Dot(normal)
	if cosTheta <= 0 {
		return 0, false
	}
	return cosTheta / math.Pi, false
}
