package core

import "math/rand"

// Sampler provides random sampling for rendering algorithms.
// Can be swapped out for deterministic testing or different sampling patterns.
// Samplers are stateful and thread-private; never share one across workers.
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
	Get3D() Vec3
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler seeded with the given value
func NewRandomSampler(seed int64) *RandomSampler {
	return &RandomSampler{random: rand.New(rand.NewSource(seed))}
}

// NewPixelSampler derives a deterministic sampler for one pixel sample.
// Mixing the pixel coordinates and sample index into the seed decorrelates
// adjacent pixels while keeping renders bit-reproducible for a fixed seed.
func NewPixelSampler(seed int64, x, y, sampleIndex int) *RandomSampler {
	return NewRandomSampler(PixelSeed(seed, x, y, sampleIndex))
}

// Reseed resets the sampler to a deterministic state
func (r *RandomSampler) Reseed(seed int64) {
	r.random = rand.New(rand.NewSource(seed))
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// Get3D returns three random float64 values in [0, 1)
func (r *RandomSampler) Get3D() Vec3 {
	return NewVec3(r.random.Float64(), r.random.Float64(), r.random.Float64())
}

// PixelSeed mixes a base seed with pixel coordinates and a sample index
// using a splitmix64-style finalizer, so nearby pixels get uncorrelated
// streams
func PixelSeed(seed int64, x, y, sampleIndex int) int64 {
	h := uint64(seed) ^ 0x9e3779b97f4a7c15
	for _, v := range [3]uint64{uint64(x), uint64(y), uint64(sampleIndex)} {
		h ^= v + 0x9e3779b97f4a7c15 + (h << 6) + (h >> 2)
		h ^= h >> 30
		h *= 0xbf58476d1ce4e5b9
		h ^= h >> 27
		h *= 0x94d049bb133111eb
		h ^= h >> 31
	}
	return int64(h)
}
