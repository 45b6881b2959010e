// Package geometrictools exposes the minimum-volume box and convex hull
// computations over flat float32 buffers, the layout used by host
// applications that hand over marker positions as x, y, z triples.
//
// The functions here only convert buffers; the geometry lives in the hull
// and mvb packages.
package geometrictools

import (
	"github.com/akmonengine/geometrictools/geom"
	"github.com/akmonengine/geometrictools/hull"
	"github.com/akmonengine/geometrictools/mvb"
)

// ComputeMinimumVolumeBoxFromPoints computes an oriented box of small volume
// enclosing the numPoints triples of points.
//
// numThreads workers evaluate at most 1 << lgMaxSample orientations. The
// box axes are written row-major: axis[3*i+j] is component j of axis i.
// A non-positive numPoints yields the zero box: center and extent 0,
// identity axes, volume 0. So does a buffer holding a NaN or infinite
// coordinate. Nil outputs are skipped.
func ComputeMinimumVolumeBoxFromPoints(numThreads uint32, numPoints int32, points []float32, lgMaxSample uint32,
	center *[3]float32, axis *[9]float32, extent *[3]float32, volume *float32) {
	cloud := geom.LoadPoints(int(numPoints), points)
	box, v := mvb.Compute(cloud, int(numThreads), uint(lgMaxSample))

	if center != nil {
		for j := 0; j < 3; j++ {
			center[j] = float32(box.Center[j])
		}
	}
	if axis != nil {
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				axis[3*i+j] = float32(box.Axis[i][j])
			}
		}
	}
	if extent != nil {
		for j := 0; j < 3; j++ {
			extent[j] = float32(box.Extent[j])
		}
	}
	if volume != nil {
		*volume = float32(v)
	}
}

// ComputeConvexHull3D computes the convex hull of the numPoints triples of
// points and returns 1 on success.
//
// hullSize always receives the number of index slots the hull needs. When
// primitivesArraySize (or the primitives slice itself) is smaller, 0 is
// returned and neither dimensions nor primitives are touched, so callers
// can retry with a buffer of hullSize slots.
//
// The layout of primitives depends on dimensions: one index for 0, the two
// extreme indices for 1, a counter-clockwise polygon for 2 and triangle
// triples, counter-clockwise seen from outside, for 3. A buffer holding a
// NaN or infinite coordinate yields dimension 0 and an empty hull.
func ComputeConvexHull3D(numThreads uint32, numPoints uint32, points []float32, dimensions *uint32,
	primitivesArraySize uint32, primitives []uint32, hullSize *uint32) int32 {
	cloud := geom.LoadPoints(int(numPoints), points)
	h := hull.Compute(cloud, int(numThreads))

	capacity := min(int(primitivesArraySize), len(primitives))
	size, err := h.CopyTo(primitives[:capacity])
	if hullSize != nil {
		*hullSize = uint32(size)
	}
	if err != nil {
		// hull.ErrCapacityExceeded, the only failure CopyTo reports
		return 0
	}

	if dimensions != nil {
		*dimensions = uint32(h.Dimension)
	}
	return 1
}
