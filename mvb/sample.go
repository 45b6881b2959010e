package mvb

const (
	// MinLgMaxSample is the smallest sampling exponent; lower values are
	// raised to it so at least 4 orientations are examined.
	MinLgMaxSample = 2
	// MaxLgMaxSample keeps 1 << lgMaxSample inside an int.
	MaxLgMaxSample = 62
)

// sampleStep returns the stride between evaluated candidates so that at
// most 1 << lgMaxSample of count candidates are examined.
//
// The stride is a power of two, so the candidates sampled for lgMaxSample
// are a subset of those sampled for lgMaxSample+1.
func sampleStep(count int, lgMaxSample uint) int {
	lg := min(max(lgMaxSample, MinLgMaxSample), MaxLgMaxSample)
	maxSample := 1 << lg

	if count <= maxSample {
		return 1
	}
	return nextPowerOfTwo((count + maxSample - 1) / maxSample)
}

// nextPowerOfTwo rounds n up to a power of two
func nextPowerOfTwo(n int) int {
	if n <= 0 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	n++
	return n
}
