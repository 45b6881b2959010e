// Package mvb finds an oriented bounding box of approximately minimal volume
// around a point cloud.
//
// The search works on the convex hull of the cloud. Every candidate frame
// has one axis along a hull face normal and a second axis along a hull
// edge projected onto that face, which is where a box with a face flush
// against the hull reaches its smallest cross-section. The axis-aligned
// frame is always tried as well. The number of candidates examined is
// bounded by 1 << LgMaxSample; the result is an upper bound of the true
// minimum volume that can only improve as LgMaxSample grows.
package mvb

import (
	"github.com/akmonengine/geometrictools/geom"
	"github.com/akmonengine/geometrictools/hull"
	"github.com/go-gl/mathgl/mgl64"
)

// Finder computes minimum-volume boxes.
// The zero value runs on one goroutine with the minimal sampling effort.
type Finder struct {
	// Workers evaluating candidate orientations, and building the hull
	Workers int
	// LgMaxSample bounds the examined orientations to 1 << LgMaxSample
	LgMaxSample uint
}

// Compute is a shorthand for Finder{numThreads, lgMaxSample}.Compute(points).
func Compute(points geom.PointCloud, numThreads int, lgMaxSample uint) (geom.OrientedBox, float64) {
	return Finder{Workers: numThreads, LgMaxSample: lgMaxSample}.Compute(points)
}

// Compute returns the box and its volume.
//
// An empty cloud, or one with a NaN or infinite coordinate, yields
// geom.ZeroBox. Coincident points give a box centered on them with identity
// axes; collinear points a box whose first axis follows the line. Otherwise
// the box is measured on the hull vertices.
func (f Finder) Compute(points geom.PointCloud) (geom.OrientedBox, float64) {
	if len(points) == 0 || !points.IsFinite() {
		return geom.ZeroBox(), 0
	}

	h := hull.Builder{Workers: f.Workers}.Compute(points)

	var box geom.OrientedBox
	switch h.Dimension {
	case 0:
		box = geom.FitFrame(geom.ZeroBox().Axis, points)
	case 1:
		direction := points[h.Indices[1]].Sub(points[h.Indices[0]]).Normalize()
		t1, t2 := geom.TangentBasis(direction)
		box = geom.FitFrame([3]mgl64.Vec3{direction, t1, t2}, points)
	default:
		best := newCandidateSet(points, h).search(f.Workers, f.LgMaxSample)
		if best.valid() {
			box = best.box
		} else {
			// Only reachable for a polygon whose edges all follow its normal
			normal := h.Normal(points)
			t1, t2 := geom.TangentBasis(normal)
			box = geom.FitFrame([3]mgl64.Vec3{t1, t2, normal}, points)
		}
	}

	return box, box.Volume()
}
