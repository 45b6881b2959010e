package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// ComputeAABB returns the bounds of the point cloud.
// An empty cloud yields the zero AABB at the origin.
func ComputeAABB(points PointCloud) AABB {
	if len(points) == 0 {
		return AABB{}
	}

	min := points[0]
	max := points[0]

	for i := 1; i < len(points); i++ {
		p := points[i]

		min[0] = math.Min(min[0], p[0])
		min[1] = math.Min(min[1], p[1])
		min[2] = math.Min(min[2], p[2])

		max[0] = math.Max(max[0], p[0])
		max[1] = math.Max(max[1], p[1])
		max[2] = math.Max(max[2], p[2])
	}

	return AABB{Min: min, Max: max}
}

// ContainsPoint checks if a point is inside the AABB
func (a AABB) ContainsPoint(point mgl64.Vec3) bool {
	return point.X() >= a.Min.X() && point.X() <= a.Max.X() &&
		point.Y() >= a.Min.Y() && point.Y() <= a.Max.Y() &&
		point.Z() >= a.Min.Z() && point.Z() <= a.Max.Z()
}

// Center returns the midpoint of the box
func (a AABB) Center() mgl64.Vec3 {
	return a.Min.Add(a.Max).Mul(0.5)
}

// HalfExtents returns half of the box size on each axis
func (a AABB) HalfExtents() mgl64.Vec3 {
	return a.Max.Sub(a.Min).Mul(0.5)
}

// MaxAbs returns the largest absolute coordinate reached by the box.
func (a AABB) MaxAbs() float64 {
	m := 0.0
	for i := 0; i < 3; i++ {
		m = math.Max(m, math.Abs(a.Min[i]))
		m = math.Max(m, math.Abs(a.Max[i]))
	}
	return m
}
