package core

import "math"

// OrthonormalBasis builds a tangent frame around the given unit normal
func OrthonormalBasis(normal Vec3) (tangent, bitangent Vec3) {
	var nt Vec3
	if math.Abs(normal.X) > 0.1 {
		nt = NewVec3(0, 1, 0)
	} else {
		nt = NewVec3(1, 0, 0)
	}

	tangent = nt.Cross(normal).Normalize()
	bitangent = normal.Cross(tangent)
	return tangent, bitangent
}

// SampleCosineHemisphere generates a cosine-weighted random direction in the
// hemisphere around normal. The corresponding PDF is cos(θ)/π.
func SampleCosineHemisphere(normal Vec3, sample Vec2) Vec3 {
	// Generate point in unit disk, then project up onto the hemisphere
	a := 2.0 * math.Pi * sample.X
	z := sample.Y
	r := math.Sqrt(z)

	x := r * math.Cos(a)
	y := r * math.Sin(a)
	zCoord := math.Sqrt(1.0 - z)

	tangent, bitangent := OrthonormalBasis(normal)
	return tangent.Multiply(x).Add(bitangent.Multiply(y)).Add(normal.Multiply(zCoord))
}

// SampleOnUnitSphere generates a uniform random direction on the unit sphere
func SampleOnUnitSphere(sample Vec2) Vec3 {
	z := 1.0 - 2.0*sample.X // z ∈ [-1, 1]
	r := math.Sqrt(math.Max(0, 1.0-z*z))
	phi := 2.0 * math.Pi * sample.Y
	x := r * math.Cos(phi)
	y := r * math.Sin(phi)
	return NewVec3(x, y, z)
}

// SamplePointInUnitDisk generates a random point in a unit disk using
// concentric mapping, which avoids rejection sampling by mapping a square
// uniformly to a disk
func SamplePointInUnitDisk(sample Vec2) Vec3 {
	// Map sample to [-1,1]² and handle degeneracy at the origin
	uOffset := NewVec2(2*sample.X-1, 2*sample.Y-1)
	if uOffset.X == 0 && uOffset.Y == 0 {
		return NewVec3(0, 0, 0)
	}

	var theta, r float64
	if math.Abs(uOffset.X) > math.Abs(uOffset.Y) {
		r = uOffset.X
		theta = math.Pi / 4 * (uOffset.Y / uOffset.X)
	} else {
		r = uOffset.Y
		theta = math.Pi/2 - math.Pi/4*(uOffset.X/uOffset.Y)
	}

	return NewVec3(r*math.Cos(theta), r*math.Sin(theta), 0)
}

// SampleGGXHalfVector samples a microfacet half-vector from the GGX normal
// distribution around the given surface normal. alpha is the squared
// roughness. The PDF over half-vectors is D(h)·cos(θh).
func SampleGGXHalfVector(normal Vec3, alpha float64, sample Vec2) Vec3 {
	phi := 2.0 * math.Pi * sample.X
	cosTheta := math.Sqrt((1.0 - sample.Y) / (1.0 + (alpha*alpha-1.0)*sample.Y))
	sinTheta := math.Sqrt(math.Max(0, 1.0-cosTheta*cosTheta))

	x := sinTheta * math.Cos(phi)
	y := sinTheta * math.Sin(phi)

	tangent, bitangent := OrthonormalBasis(normal)
	return tangent.Multiply(x).Add(bitangent.Multiply(y)).Add(normal.Multiply(cosTheta))
}

// GGXDistribution evaluates the GGX normal distribution function for a
// half-vector with the given cosine to the surface normal
func GGXDistribution(cosThetaH, alpha float64) float64 {
	if cosThetaH <= 0 {
		return 0
	}
	a2 := alpha * alpha
	d := cosThetaH*cosThetaH*(a2-1.0) + 1.0
	return a2 / (math.Pi * d * d)
}

// SmithG1 is the Smith masking-shadowing term for one direction under GGX
func SmithG1(cosTheta, alpha float64) float64 {
	if cosTheta <= 0 {
		return 0
	}
	a2 := alpha * alpha
	return 2.0 * cosTheta / (cosTheta + math.Sqrt(a2+(1.0-a2)*cosTheta*cosTheta))
}

// PowerHeuristic computes the MIS weight for a sample drawn from the f
// strategy when the g strategy could also have produced it (β=2)
func PowerHeuristic(nf int, fPdf float64, ng int, gPdf float64) float64 {
	f := float64(nf) * fPdf
	g := float64(ng) * gPdf
	denom := f*f + g*g
	if denom == 0 {
		return 0
	}
	return f * f / denom
}
