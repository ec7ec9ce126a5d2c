// Package randutil centralises how simulation RNGs are seeded so that a
// batch run with a fixed seed is reproducible regardless of worker timing.
package randutil

import rand "math/rand/v2"

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a PCG generator seeded deterministically from seed.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// ForWorker returns an independent generator for the given worker index.
// Streams for different workers of the same seed do not overlap in practice
// because each worker's seed pair is passed through the mixer separately.
func ForWorker(seed int64, worker int) *rand.Rand {
	u := uint64(seed) + uint64(worker+1)*goldenRatio64
	return rand.New(rand.NewPCG(mix(u), mix(u^uint64(seed))))
}

// mix is the splitmix64 finaliser.
func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
