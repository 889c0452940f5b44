package material

import (
	"math"

	"github.com/lumeray/lumeray/pkg/core"
)

// Microfacet is a glossy material using the GGX distribution with Smith
// masking-shadowing and Schlick Fresnel. Roughness near 0 approaches a
// mirror, roughness 1 approaches diffuse-looking gloss.
type Microfacet struct {
	Albedo    core.Vec3 // Specular color at normal incidence
	Roughness float64   // Surface roughness in (0, 1]
}

// NewMicrofacet creates a new glossy microfacet material
func NewMicrofacet(albedo core.Vec3, roughness float64) *Microfacet {
	// Fully smooth GGX degenerates to a delta; keep a floor so the PDF
	// stays finite and the material remains sampleable
	if roughness < 0.01 {
		roughness = 0.01
	}
	if roughness > 1.0 {
		roughness = 1.0
	}
	return &Microfacet{Albedo: albedo, Roughness: roughness}
}

func (m *Microfacet) alpha() float64 {
	return m.Roughness * m.Roughness
}

// Scatter samples a GGX half-vector and reflects the incoming ray about it
func (m *Microfacet) Scatter(rayIn core.Ray, hit core.HitRecord, sampler core.Sampler) (core.ScatterResult, bool) {
	incoming := rayIn.Direction.Normalize().Negate()
	half := core.SampleGGXHalfVector(hit.Normal, m.alpha(), sampler.Get2D())
	outgoing := Reflect(incoming.Negate(), half)

	if outgoing.Dot(hit.Normal) <= 0 {
		return core.ScatterResult{}, false
	}

	pdf := m.pdfValue(incoming, outgoing, hit.Normal)
	if pdf <= 0 {
		return core.ScatterResult{}, false
	}

	return core.ScatterResult{
		Incoming:    rayIn,
		Scattered:   core.NewRay(hit.Point, outgoing),
		Attenuation: m.EvaluateBRDF(incoming, outgoing, &hit),
		PDF:         pdf,
	}, true
}

// EvaluateBRDF evaluates the Cook-Torrance BRDF:
// D(h)·G(i)·G(o)·F(i·h) / (4·cosθi·cosθo). Symmetric in the two
// directions, so reciprocity holds by construction.
func (m *Microfacet) EvaluateBRDF(incomingDir, outgoingDir core.Vec3, hit *core.HitRecord) core.Vec3 {
	normal := hit.Normal
	cosI := incomingDir.Dot(normal)
	cosO := outgoingDir.Dot(normal)
	if cosI <= 0 || cosO <= 0 {
		return core.Vec3{}
	}

	half := incomingDir.Add(outgoingDir)
	if half.LengthSquared() < 1e-24 {
		return core.Vec3{}
	}
	half = half.Normalize()

	alpha := m.alpha()
	d := core.GGXDistribution(half.Dot(normal), alpha)
	g := core.SmithG1(cosI, alpha) * core.SmithG1(cosO, alpha)
	f := fresnelSchlickVec(m.Albedo, incomingDir.Dot(half))

	return f.Multiply(d * g / (4.0 * cosI * cosO))
}

// PDF returns the density of the GGX half-vector sampling strategy
func (m *Microfacet) PDF(incomingDir, outgoingDir, normal core.Vec3) (float64, bool) {
	return m.pdfValue(incomingDir, outgoingDir, normal), false
}

func (m *Microfacet) pdfValue(incoming, outgoing, normal core.Vec3) float64 {
	if incoming.Dot(normal) <= 0 || outgoing.Dot(normal) <= 0 {
		return 0
	}

	half := incoming.Add(outgoing)
	if half.LengthSquared() < 1e-24 {
		return 0
	}
	half = half.Normalize()

	cosThetaH := half.Dot(normal)
	outDotHalf := outgoing.Dot(half)
	if cosThetaH <= 0 || outDotHalf <= 0 {
		return 0
	}

	// Half-vector density D(h)·cosθh converted to outgoing-direction
	// density via the reflection Jacobian 1/(4·o·h)
	return core.GGXDistribution(cosThetaH, m.alpha()) * cosThetaH / (4.0 * outDotHalf)
}

// fresnelSchlickVec applies Schlick's approximation per color channel
func fresnelSchlickVec(f0 core.Vec3, cosTheta float64) core.Vec3 {
	if cosTheta < 0 {
		cosTheta = 0
	}
	weight := math.Pow(1.0-cosTheta, 5)
	one := core.NewVec3(1, 1, 1)
	return f0.Add(one.Subtract(f0).Multiply(weight))
}
