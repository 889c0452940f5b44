package material

import (
	"github.com/lumeray/lumeray/pkg/core"
)

// Emissive represents a material that emits light and scatters nothing
type Emissive struct {
	Emission core.Vec3 // Emitted radiance
}

// NewEmissive creates a new emissive material
func NewEmissive(emission core.Vec3) *Emissive {
	return &Emissive{Emission: emission}
}

// Scatter absorbs all incoming rays; emissive surfaces only emit
func (e *Emissive) Scatter(rayIn core.Ray, hit core.HitRecord, sampler core.Sampler) (core.ScatterResult, bool) {
	return core.ScatterResult{}, false
}

// EvaluateBRDF returns zero; emissive surfaces do not reflect
func (e *Emissive) EvaluateBRDF(incomingDir, outgoingDir core.Vec3, hit *core.HitRecord) core.Vec3 {
	return core.Vec3{}
}

// PDF returns zero density
func (e *Emissive) PDF(incomingDir, outgoingDir, normal core.Vec3) (float64, bool) {
	return 0, false
}

// Emit returns the emitted radiance. Emission is one-sided: only rays
// hitting the front face see it.
func (e *Emissive) Emit(rayIn core.Ray, hit core.HitRecord) core.Vec3 {
	if !hit.FrontFace {
		return core.Vec3{}
	}
	return e.Emission
}
