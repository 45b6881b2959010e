package geometrictools

import (
	"math"
	"math/rand"
	"testing"

	"github.com/akmonengine/geometrictools/geom"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var identityAxes = [9]float32{1, 0, 0, 0, 1, 0, 0, 0, 1}

func cubeBuffer() []float32 {
	return geom.PointCloud{
		{-1, -1, -1}, {1, -1, -1}, {-1, 1, -1}, {1, 1, -1},
		{-1, -1, 1}, {1, -1, 1}, {-1, 1, 1}, {1, 1, 1},
	}.Flatten()
}

func randomBuffer(seed int64, count int) []float32 {
	rng := rand.New(rand.NewSource(seed))
	points := make(geom.PointCloud, count)
	for i := range points {
		points[i] = geom.Point3{rng.Float64()*10 - 5, rng.Float64()*2 - 1, rng.NormFloat64()}
	}
	return points.Flatten()
}

type boxOutput struct {
	center [3]float32
	axis   [9]float32
	extent [3]float32
	volume float32
}

func computeBox(numThreads uint32, numPoints int32, points []float32, lgMaxSample uint32) boxOutput {
	// Outputs start dirty to make sure every field is written
	out := boxOutput{
		center: [3]float32{7, 7, 7},
		axis:   [9]float32{7, 7, 7, 7, 7, 7, 7, 7, 7},
		extent: [3]float32{7, 7, 7},
		volume: 7,
	}
	ComputeMinimumVolumeBoxFromPoints(numThreads, numPoints, points, lgMaxSample, &out.center, &out.axis, &out.extent, &out.volume)
	return out
}

func TestComputeMinimumVolumeBoxFromPointsEmpty(t *testing.T) {
	tests := []struct {
		name      string
		numPoints int32
		points    []float32
	}{
		{"zero points", 0, cubeBuffer()},
		{"negative count", -5, cubeBuffer()},
		{"nil buffer", 8, nil},
		{"buffer shorter than a point", 1, []float32{1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := computeBox(4, tt.numPoints, tt.points, 3)

			assert.Equal(t, [3]float32{}, out.center)
			assert.Equal(t, identityAxes, out.axis)
			assert.Equal(t, [3]float32{}, out.extent)
			assert.Zero(t, out.volume)
		})
	}
}

func TestComputeMinimumVolumeBoxFromPointsCube(t *testing.T) {
	out := computeBox(4, 8, cubeBuffer(), 3)

	assert.Equal(t, float32(8), out.volume)
	assert.Equal(t, identityAxes, out.axis)
	assert.Equal(t, [3]float32{1, 1, 1}, out.extent)
	assert.Equal(t, [3]float32{}, out.center)
}

func TestComputeMinimumVolumeBoxFromPointsAxesAreRows(t *testing.T) {
	rotation := mgl64.QuatRotate(math.Pi/6, mgl64.Vec3{0, 0, 1})
	var points geom.PointCloud
	for _, sx := range []float64{-3, 3} {
		for _, sy := range []float64{-2, 2} {
			for _, sz := range []float64{-1, 1} {
				points = append(points, rotation.Rotate(mgl64.Vec3{sx, sy, sz}))
			}
		}
	}

	out := computeBox(2, int32(len(points)), points.Flatten(), 10)

	assert.InDelta(t, 48, out.volume, 1e-3)
	for i := 0; i < 3; i++ {
		row := mgl64.Vec3{float64(out.axis[3*i]), float64(out.axis[3*i+1]), float64(out.axis[3*i+2])}
		center := mgl64.Vec3{float64(out.center[0]), float64(out.center[1]), float64(out.center[2])}
		assert.InDelta(t, 1, row.Len(), 1e-5)

		// The extent along row i is the spread of the points along that row
		spread := 0.0
		for _, p := range points {
			spread = math.Max(spread, math.Abs(p.Sub(center).Dot(row)))
		}
		assert.InDelta(t, float64(out.extent[i]), spread, 1e-4, "axis %d", i)
	}
}

func TestComputeMinimumVolumeBoxFromPointsShortBuffer(t *testing.T) {
	// Two complete points and a dangling coordinate
	points := []float32{0, 0, 0, 4, 0, 0, 9}

	out := computeBox(1, 100, points, 3)

	assert.Zero(t, out.volume)
	assert.InDelta(t, 2, out.extent[0], 1e-6)
	assert.InDelta(t, 2, out.center[0], 1e-6)
}

func TestComputeMinimumVolumeBoxFromPointsNilOutputs(t *testing.T) {
	assert.NotPanics(t, func() {
		ComputeMinimumVolumeBoxFromPoints(2, 8, cubeBuffer(), 3, nil, nil, nil, nil)
	})
}

func TestComputeMinimumVolumeBoxFromPointsDeterministic(t *testing.T) {
	points := randomBuffer(3, 500)

	reference := computeBox(1, 500, points, 6)
	for _, threads := range []uint32{0, 2, 8} {
		assert.Equal(t, reference, computeBox(threads, 500, points, 6), "numThreads=%d", threads)
	}
}

func TestComputeConvexHull3DCube(t *testing.T) {
	var dimensions, hullSize uint32
	primitives := make([]uint32, 36)

	ok := ComputeConvexHull3D(4, 8, cubeBuffer(), &dimensions, 36, primitives, &hullSize)

	require.Equal(t, int32(1), ok)
	assert.Equal(t, uint32(3), dimensions)
	assert.Equal(t, uint32(36), hullSize)
	for _, idx := range primitives {
		assert.Less(t, idx, uint32(8))
	}
}

func TestComputeConvexHull3DCapacityExceeded(t *testing.T) {
	tests := []struct {
		name      string
		arraySize uint32
		sliceLen  int
	}{
		{"declared size too small", 10, 36},
		{"slice shorter than declared size", 36, 10},
		{"no buffer", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dimensions := uint32(99)
			hullSize := uint32(99)
			primitives := make([]uint32, tt.sliceLen)
			for i := range primitives {
				primitives[i] = 42
			}

			ok := ComputeConvexHull3D(2, 8, cubeBuffer(), &dimensions, tt.arraySize, primitives, &hullSize)

			assert.Equal(t, int32(0), ok)
			assert.Equal(t, uint32(36), hullSize)
			assert.Equal(t, uint32(99), dimensions)
			for _, idx := range primitives {
				assert.Equal(t, uint32(42), idx)
			}
		})
	}
}

func TestComputeConvexHull3DRetryWithReportedSize(t *testing.T) {
	points := randomBuffer(11, 300)
	var dimensions, hullSize uint32

	// First attempt with 3 slots per point, as a caller would guess
	capacity := uint32(3 * 300)
	primitives := make([]uint32, capacity)
	if ComputeConvexHull3D(4, 300, points, &dimensions, capacity, primitives, &hullSize) == 0 {
		capacity = hullSize
		primitives = make([]uint32, capacity)
		require.Equal(t, int32(1), ComputeConvexHull3D(4, 300, points, &dimensions, capacity, primitives, &hullSize))
	}

	assert.Equal(t, uint32(3), dimensions)
	assert.Zero(t, hullSize%3)
	assert.LessOrEqual(t, hullSize, capacity)
}

func TestComputeConvexHull3DDegenerate(t *testing.T) {
	tests := []struct {
		name       string
		points     []float32
		dimensions uint32
		primitives []uint32
	}{
		{"empty", nil, 0, []uint32{}},
		{"single point", []float32{1, 2, 3}, 0, []uint32{0}},
		{"coincident", []float32{1, 2, 3, 1, 2, 3, 1, 2, 3}, 0, []uint32{0}},
		{"collinear", []float32{0, 0, 0, 1, 1, 1, 3, 3, 3, 2, 2, 2}, 1, []uint32{0, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dimensions := uint32(99)
			hullSize := uint32(99)
			primitives := make([]uint32, 16)

			ok := ComputeConvexHull3D(2, uint32(len(tt.points)/3), tt.points, &dimensions, 16, primitives, &hullSize)

			require.Equal(t, int32(1), ok)
			assert.Equal(t, tt.dimensions, dimensions)
			require.Equal(t, uint32(len(tt.primitives)), hullSize)
			assert.ElementsMatch(t, tt.primitives, primitives[:hullSize])
		})
	}
}

func TestComputeConvexHull3DPlanar(t *testing.T) {
	points := []float32{
		0, 0, 2,
		1, 0, 2,
		1, 1, 2,
		0, 1, 2,
		0.5, 0.5, 2,
	}
	var dimensions, hullSize uint32
	primitives := make([]uint32, 15)

	ok := ComputeConvexHull3D(1, 5, points, &dimensions, 15, primitives, &hullSize)

	require.Equal(t, int32(1), ok)
	assert.Equal(t, uint32(2), dimensions)
	require.Equal(t, uint32(4), hullSize)
	assert.ElementsMatch(t, []uint32{0, 1, 2, 3}, primitives[:hullSize])
}

func TestComputeConvexHull3DDeterministic(t *testing.T) {
	points := randomBuffer(5, 2000)

	compute := func(threads uint32) []uint32 {
		var dimensions, hullSize uint32
		primitives := make([]uint32, 6*2000)
		require.Equal(t, int32(1), ComputeConvexHull3D(threads, 2000, points, &dimensions, uint32(len(primitives)), primitives, &hullSize))
		return primitives[:hullSize]
	}

	reference := compute(1)
	for _, threads := range []uint32{0, 3, 8} {
		assert.Equal(t, reference, compute(threads), "numThreads=%d", threads)
	}
}

func TestComputeConvexHull3DNilOutputs(t *testing.T) {
	assert.NotPanics(t, func() {
		assert.Equal(t, int32(0), ComputeConvexHull3D(1, 8, cubeBuffer(), nil, 0, nil, nil))
		assert.Equal(t, int32(1), ComputeConvexHull3D(1, 8, cubeBuffer(), nil, 36, make([]uint32, 36), nil))
	})
}

func TestComputeMinimumVolumeBoxFromPointsNonFinite(t *testing.T) {
	nan := float32(math.NaN())
	tests := []struct {
		name   string
		points []float32
	}{
		{"nan first", append([]float32{nan, 0, 0}, cubeBuffer()...)},
		{"nan among coincident", []float32{1, 2, 3, 1, 2, 3, 1, nan, 3, 1, 2, 3}},
		{"infinity", append(cubeBuffer(), float32(math.Inf(-1)), 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out boxOutput
			assert.NotPanics(t, func() {
				out = computeBox(4, int32(len(tt.points)/3), tt.points, 3)
			})

			assert.Equal(t, [3]float32{}, out.center)
			assert.Equal(t, identityAxes, out.axis)
			assert.Equal(t, [3]float32{}, out.extent)
			assert.Zero(t, out.volume)
		})
	}
}

func TestComputeConvexHull3DNonFinite(t *testing.T) {
	nan := float32(math.NaN())
	tests := []struct {
		name   string
		points []float32
	}{
		{"nan first", append([]float32{nan, 0, 0}, cubeBuffer()...)},
		{"nan among coincident", []float32{1, 2, 3, 1, 2, 3, 1, nan, 3, 1, 2, 3}},
		{"infinity", append(cubeBuffer(), float32(math.Inf(1)), 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dimensions := uint32(99)
			hullSize := uint32(99)
			primitives := make([]uint32, 64)

			var ok int32
			assert.NotPanics(t, func() {
				ok = ComputeConvexHull3D(2, uint32(len(tt.points)/3), tt.points, &dimensions, 64, primitives, &hullSize)
			})

			assert.Equal(t, int32(1), ok)
			assert.Zero(t, dimensions)
			assert.Zero(t, hullSize)
		})
	}
}

func TestHugeThreadCount(t *testing.T) {
	points := randomBuffer(9, 300)

	reference := computeBox(1, 300, points, 4)
	assert.Equal(t, reference, computeBox(0xFFFFFFFF, 300, points, 4))

	compute := func(threads uint32) []uint32 {
		var dimensions, hullSize uint32
		primitives := make([]uint32, 6*300)
		require.Equal(t, int32(1), ComputeConvexHull3D(threads, 300, points, &dimensions, uint32(len(primitives)), primitives, &hullSize))
		return primitives[:hullSize]
	}
	assert.Equal(t, compute(1), compute(0xFFFFFFFF))
}
