package integrator

import (
	"github.com/lumeray/lumeray/pkg/core"
)

// WhittedIntegrator implements classic Whitted-style ray tracing: direct
// lighting from every light at each hit, with recursion only through
// perfectly specular materials. Fast and noise-free, but no indirect
// diffuse light; useful for previews and as a reference for tests.
type WhittedIntegrator struct {
	config  core.SamplingConfig
	ambient core.Vec3
}

// NewWhittedIntegrator creates a new Whitted-style integrator. The ambient
// term stands in for the indirect light this integrator cannot compute and
// is added once per non-specular hit.
func NewWhittedIntegrator(config core.SamplingConfig, ambient core.Vec3) *WhittedIntegrator {
	return &WhittedIntegrator{config: config, ambient: ambient}
}

// RayColor computes radiance using direct lighting plus specular recursion
func (w *WhittedIntegrator) RayColor(ray core.Ray, scene core.Scene, sampler core.Sampler) core.Vec3 {
	return sanitizeRadiance(w.trace(ray, scene, sampler, w.config.MaxDepth))
}

func (w *WhittedIntegrator) trace(ray core.Ray, scene core.Scene, sampler core.Sampler, depth int) core.Vec3 {
	if depth <= 0 {
		return core.Vec3{}
	}

	hit, isHit := scene.GetBVH().Hit(ray, rayEpsilon, core.MaxHitDistance)
	if !isHit {
		// Infinite lights replace the background gradient so escaping rays
		// never see the environment twice
		radiance := core.Vec3{}
		hasInfinite := false
		for _, light := range scene.GetLights() {
			if light.Type() != core.LightTypeInfinite {
				continue
			}
			hasInfinite = true
			radiance = radiance.Add(light.Emit(ray))
		}
		if !hasInfinite {
			return backgroundGradient(ray, scene)
		}
		return radiance
	}

	color := core.Vec3{}
	if emitter, isEmissive := hit.Material.(core.Emitter); isEmissive {
		color = color.Add(emitter.Emit(ray, *hit))
	}

	viewDir := ray.Direction.Normalize().Negate()

	scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
	if !didScatter {
		return color
	}

	if scatter.IsSpecular() {
		// Specular surface: follow the mirror/refraction path
		bounced := w.trace(scatter.Scattered, scene, sampler, depth-1)
		return color.Add(scatter.Attenuation.MultiplyVec(bounced))
	}

	// Diffuse/glossy surface: flat ambient term plus direct lighting from
	// every light
	color = color.Add(w.ambient)
	for _, light := range scene.GetLights() {
		lightSample, ok := light.Sample(hit.Point, hit.Normal, sampler.Get2D())
		if !ok || lightSample.PDF <= 0 {
			continue
		}

		cosine := lightSample.Direction.Dot(hit.Normal)
		if cosine <= 0 {
			continue
		}

		shadowRay := core.NewRay(hit.Point, lightSample.Direction)
		if scene.GetBVH().HitAny(shadowRay, rayEpsilon, lightSample.Distance-rayEpsilon) {
			continue
		}

		brdf := hit.Material.EvaluateBRDF(viewDir, lightSample.Direction, hit)
		color = color.Add(brdf.MultiplyVec(lightSample.Emission).Multiply(cosine / lightSample.PDF))
	}

	return color
}
