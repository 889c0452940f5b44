package core

// Direction conventions used throughout the material and light interfaces:
// all directions are unit vectors pointing AWAY from the surface point.
// incomingDir points back toward the viewer (the previous path vertex),
// outgoingDir points toward the light or the next path vertex.

// Shape interface for objects that can be hit by rays
type Shape interface {
	Hit(ray Ray, tMin, tMax float64) (*HitRecord, bool)
	BoundingBox() AABB
}

// Validator is implemented by shapes that can detect their own degenerate
// configurations (zero radius, collinear triangle vertices). The BVH build
// excludes shapes whose Validate returns an error instead of letting them
// corrupt traversal.
type Validator interface {
	Validate() error
}

// Material interface for surface scattering behavior
type Material interface {
	// Scatter generates an importance-sampled outgoing direction for the
	// given hit. Returns false if the ray is absorbed.
	Scatter(rayIn Ray, hit HitRecord, sampler Sampler) (ScatterResult, bool)

	// EvaluateBRDF evaluates the BRDF for a specific direction pair.
	// Returns zero for delta (perfectly specular) materials.
	EvaluateBRDF(incomingDir, outgoingDir Vec3, hit *HitRecord) Vec3

	// PDF returns the probability density Scatter would have generated
	// outgoingDir with, and whether the material is a delta distribution.
	PDF(incomingDir, outgoingDir, normal Vec3) (pdf float64, isDelta bool)
}

// Emitter interface for materials that emit light
type Emitter interface {
	Emit(rayIn Ray, hit HitRecord) Vec3
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Incoming    Ray     // The incoming ray
	Scattered   Ray     // The scattered ray
	Attenuation Vec3    // BRDF value for the sampled direction
	PDF         float64 // Probability density of the sampled direction (0 for specular)
}

// IsSpecular returns true if this is specular scattering (no PDF)
func (s ScatterResult) IsSpecular() bool {
	return s.PDF <= 0
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     Vec3     // Point of intersection
	Normal    Vec3     // Surface normal at intersection, facing the ray
	T         float64  // Parameter t along the ray
	UV        Vec2     // Surface parametric coordinates
	FrontFace bool     // Whether ray hit the front face
	Material  Material // Material of the hit object
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *HitRecord) SetFaceNormal(ray Ray, outwardNormal Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Multiply(-1)
	}
}

// LightType identifies the sampling category of a light
type LightType string

const (
	LightTypeArea     LightType = "area"
	LightTypePoint    LightType = "point"
	LightTypeInfinite LightType = "infinite"
)

// Light interface for objects that can be sampled for direct lighting
type Light interface {
	Type() LightType

	// Sample samples the light toward a specific surface point.
	// The returned direction points FROM the shading point TO the light.
	Sample(point Vec3, normal Vec3, sample Vec2) (LightSample, bool)

	// PDF returns the probability density of sampling the given direction
	// toward this light from the shading point. Zero for delta lights,
	// which BSDF sampling can never hit.
	PDF(point Vec3, normal Vec3, direction Vec3) float64

	// Emit evaluates emission along an escaping ray. Finite lights return
	// zero; infinite lights return emission based on the ray direction.
	Emit(ray Ray) Vec3
}

// LightSample contains information about a sampled point on a light
type LightSample struct {
	Point     Vec3    // Point on the light source
	Normal    Vec3    // Normal at the light sample point
	Direction Vec3    // Direction from shading point to light
	Distance  float64 // Distance to light (may be +Inf for infinite lights)
	Emission  Vec3    // Emitted radiance
	PDF       float64 // Probability density of this sample
}

// Camera maps pixel coordinates plus a sample to a world-space ray
type Camera interface {
	GetRay(i, j int, sampler Sampler) Ray
}

// Scene is the read-only view of a preprocessed scene shared across all
// render workers. Implementations must not mutate any of this state while
// a render is in flight; that invariant is what makes lock-free concurrent
// traversal safe.
type Scene interface {
	GetBVH() *BVH
	GetLights() []Light
	GetCamera() Camera
	GetBackgroundColors() (topColor, bottomColor Vec3)
	GetSamplingConfig() SamplingConfig
}

// Integrator estimates radiance arriving along a camera ray
type Integrator interface {
	RayColor(ray Ray, scene Scene, sampler Sampler) Vec3
}

// SamplingConfig contains the per-pixel estimation configuration
type SamplingConfig struct {
	SamplesPerPixel           int     // Number of rays per pixel
	MaxDepth                  int     // Maximum ray bounce depth
	RussianRouletteMinBounces int     // Minimum bounces before Russian roulette can trigger
	AdaptiveMinSamples        float64 // Minimum samples as fraction of max before adaptive stop (0 disables)
	AdaptiveThreshold         float64 // Relative error threshold for adaptive convergence (0 disables)
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		SamplesPerPixel:           64,
		MaxDepth:                  25,
		RussianRouletteMinBounces: 3,
	}
}

// Merge overlays the non-zero fields of other onto this config
func (c SamplingConfig) Merge(other SamplingConfig) SamplingConfig {
	if other.SamplesPerPixel > 0 {
		c.SamplesPerPixel = other.SamplesPerPixel
	}
	if other.MaxDepth > 0 {
		c.MaxDepth = other.MaxDepth
	}
	if other.RussianRouletteMinBounces > 0 {
		c.RussianRouletteMinBounces = other.RussianRouletteMinBounces
	}
	if other.AdaptiveMinSamples > 0 {
		c.AdaptiveMinSamples = other.AdaptiveMinSamples
	}
	if other.AdaptiveThreshold != 0 {
		// A negative threshold explicitly disables adaptive sampling
		c.AdaptiveThreshold = other.AdaptiveThreshold
	}
	return c
}
