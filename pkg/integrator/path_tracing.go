package integrator

import (
	"math"

	"github.com/lumeray/lumeray/pkg/core"
)

// Shadow and intersection epsilon keeping secondary rays from re-hitting
// the surface they originate on
const rayEpsilon = 0.001

// PathTracingIntegrator implements unidirectional path tracing with
// next-event estimation, multiple importance sampling and Russian roulette.
//
// The path is walked with an explicit loop over mutable path state (ray,
// throughput, depth) rather than recursion, so deep paths cannot grow the
// call stack.
type PathTracingIntegrator struct {
	config core.SamplingConfig
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(config core.SamplingConfig) *PathTracingIntegrator {
	return &PathTracingIntegrator{config: config}
}

// pathState is the mutable state carried across bounces
type pathState struct {
	ray            core.Ray
	throughput     core.Vec3
	color          core.Vec3
	specularBounce bool      // Last bounce was a delta distribution (or this is the camera ray)
	prevPDF        float64   // BSDF PDF of the last non-specular bounce, for MIS
	prevPoint      core.Vec3 // Origin of the current ray segment
	prevNormal     core.Vec3 // Shading normal at that origin
}

// RayColor computes the radiance arriving along a camera ray
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, scene core.Scene, sampler core.Sampler) core.Vec3 {
	state := pathState{
		ray:            ray,
		throughput:     core.NewVec3(1, 1, 1),
		specularBounce: true,
	}

	for depth := 0; depth < pt.config.MaxDepth; depth++ {
		hit, isHit := scene.GetBVH().Hit(state.ray, rayEpsilon, core.MaxHitDistance)
		if !isHit {
			state.color = state.color.Add(state.throughput.MultiplyVec(pt.missRadiance(&state, scene)))
			break
		}

		pt.addEmittedLight(&state, scene, hit)

		scatter, didScatter := hit.Material.Scatter(state.ray, *hit, sampler)
		if !didScatter {
			break // Absorbed
		}

		if scatter.IsSpecular() {
			state.throughput = state.throughput.MultiplyVec(scatter.Attenuation)
			state.ray = scatter.Scattered
			state.specularBounce = true
		} else {
			direct := pt.sampleDirectLight(scene, hit, state.ray, sampler)
			state.color = state.color.Add(state.throughput.MultiplyVec(direct))

			cosine := scatter.Scattered.Direction.Normalize().Dot(hit.Normal)
			if cosine <= 0 || scatter.PDF <= 0 {
				break
			}

			state.throughput = state.throughput.MultiplyVec(scatter.Attenuation).Multiply(cosine / scatter.PDF)
			state.ray = scatter.Scattered
			state.specularBounce = false
			state.prevPDF = scatter.PDF
		}
		state.prevPoint = hit.Point
		state.prevNormal = hit.Normal

		if terminated := pt.applyRussianRoulette(&state, depth, sampler); terminated {
			break
		}
	}

	return sanitizeRadiance(state.color)
}

// missRadiance returns the radiance for a ray escaping the scene. Infinite
// lights replace the background gradient entirely so their energy is never
// counted twice; emission reached via BSDF sampling is MIS-weighted against
// the light sampling strategy that could also have found it. Scenes without
// an infinite light fall back to the gradient.
func (pt *PathTracingIntegrator) missRadiance(state *pathState, scene core.Scene) core.Vec3 {
	radiance := core.Vec3{}
	hasInfinite := false

	for _, light := range scene.GetLights() {
		if light.Type() != core.LightTypeInfinite {
			continue
		}
		hasInfinite = true

		emission := light.Emit(state.ray)
		if emission == (core.Vec3{}) {
			continue
		}
		radiance = radiance.Add(emission.Multiply(pt.emissionWeight(state, scene)))
	}

	if !hasInfinite {
		return backgroundGradient(state.ray, scene)
	}
	return radiance
}

// addEmittedLight accumulates emission from an emissive surface hit,
// MIS-weighted when the previous bounce also sampled lights directly
func (pt *PathTracingIntegrator) addEmittedLight(state *pathState, scene core.Scene, hit *core.HitRecord) {
	emitter, isEmissive := hit.Material.(core.Emitter)
	if !isEmissive {
		return
	}

	emitted := emitter.Emit(state.ray, *hit)
	if emitted == (core.Vec3{}) {
		return
	}

	weighted := emitted.Multiply(pt.emissionWeight(state, scene))
	state.color = state.color.Add(state.throughput.MultiplyVec(weighted))
}

// emissionWeight returns the MIS weight for emission found by BSDF
// sampling. Camera rays and specular bounces have no competing light
// sampling strategy, so their weight is 1.
func (pt *PathTracingIntegrator) emissionWeight(state *pathState, scene core.Scene) float64 {
	if state.specularBounce {
		return 1.0
	}

	direction := state.ray.Direction.Normalize()
	lightPDF := core.CalculateLightPDF(scene.GetLights(), state.prevPoint, state.prevNormal, direction)
	return core.PowerHeuristic(1, state.prevPDF, 1, lightPDF)
}

// sampleDirectLight performs next-event estimation: sample one light,
// trace a shadow ray via the BVH any-hit fast path, and weight the
// contribution against the BSDF sampling strategy
func (pt *PathTracingIntegrator) sampleDirectLight(scene core.Scene, hit *core.HitRecord, rayIn core.Ray, sampler core.Sampler) core.Vec3 {
	lightSample, light, hasLight := core.SampleLight(scene.GetLights(), hit.Point, hit.Normal, sampler.Get1D(), sampler.Get2D())
	if !hasLight {
		return core.Vec3{}
	}

	cosine := lightSample.Direction.Dot(hit.Normal)
	if cosine <= 0 {
		return core.Vec3{} // Light is behind the surface
	}

	shadowRay := core.NewRay(hit.Point, lightSample.Direction)
	if scene.GetBVH().HitAny(shadowRay, rayEpsilon, lightSample.Distance-rayEpsilon) {
		return core.Vec3{}
	}

	viewDir := rayIn.Direction.Normalize().Negate()
	brdf := hit.Material.EvaluateBRDF(viewDir, lightSample.Direction, hit)
	if brdf == (core.Vec3{}) {
		return core.Vec3{}
	}

	// Delta lights cannot be found by BSDF sampling; only area and
	// infinite lights need MIS weighting
	weight := 1.0
	if light.Type() != core.LightTypePoint {
		materialPDF, isDelta := hit.Material.PDF(viewDir, lightSample.Direction, hit.Normal)
		if !isDelta {
			weight = core.PowerHeuristic(1, lightSample.PDF, 1, materialPDF)
		}
	}

	return brdf.MultiplyVec(lightSample.Emission).Multiply(cosine * weight / lightSample.PDF)
}

// applyRussianRoulette probabilistically terminates low-throughput paths
// once enough bounces have happened, boosting survivors to keep the
// estimator unbiased
func (pt *PathTracingIntegrator) applyRussianRoulette(state *pathState, depth int, sampler core.Sampler) bool {
	if depth < pt.config.RussianRouletteMinBounces {
		return false
	}

	// Survival probability from throughput luminance, kept in [0.5, 0.95]
	// so the compensation factor stays between 1.05x and 2x
	survivalProb := math.Min(0.95, math.Max(0.5, state.throughput.Luminance()))
	if sampler.Get1D() > survivalProb {
		return true
	}

	state.throughput = state.throughput.Multiply(1.0 / survivalProb)
	return false
}

// backgroundGradient returns the vertical gradient between the scene's
// background colors. When both colors match the constant is returned
// directly so background pixels reproduce it exactly.
func backgroundGradient(r core.Ray, scene core.Scene) core.Vec3 {
	topColor, bottomColor := scene.GetBackgroundColors()
	if topColor == bottomColor {
		return topColor
	}

	unitDirection := r.Direction.Normalize()
	t := 0.5 * (unitDirection.Y + 1.0)
	return bottomColor.Multiply(1.0 - t).Add(topColor.Multiply(t))
}

// sanitizeRadiance replaces NaN/Inf components with zero and clamps
// negatives, so one degenerate sample cannot poison a whole pixel
func sanitizeRadiance(v core.Vec3) core.Vec3 {
	if !v.IsFinite() {
		fix := func(x float64) float64 {
			if math.IsNaN(x) || math.IsInf(x, 0) {
				return 0
			}
			return x
		}
		v = core.NewVec3(fix(v.X), fix(v.Y), fix(v.Z))
	}
	if v.X < 0 || v.Y < 0 || v.Z < 0 {
		v = v.Clamp(0, math.MaxFloat64)
	}
	return v
}
