package core

// SampleLight picks one light uniformly and samples it toward the shading
// point. The returned sample's PDF already includes the 1/n selection
// probability, so it can be used directly in the estimator.
func SampleLight(lights []Light, point, normal Vec3, selector float64, sample Vec2) (LightSample, Light, bool) {
	if len(lights) == 0 {
		return LightSample{}, nil, false
	}

	index := int(selector * float64(len(lights)))
	if index >= len(lights) {
		index = len(lights) - 1
	}
	light := lights[index]

	lightSample, ok := light.Sample(point, normal, sample)
	if !ok || lightSample.PDF <= 0 {
		return LightSample{}, nil, false
	}

	lightSample.PDF /= float64(len(lights))
	return lightSample, light, true
}

// CalculateLightPDF returns the combined probability density of the uniform
// light-selection strategy generating the given direction. Used to weight
// BSDF samples against light samples in MIS.
func CalculateLightPDF(lights []Light, point, normal, direction Vec3) float64 {
	if len(lights) == 0 {
		return 0
	}

	totalPDF := 0.0
	for _, light := range lights {
		totalPDF += light.PDF(point, normal, direction)
	}
	return totalPDF / float64(len(lights))
}
