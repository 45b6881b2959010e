package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// OrientedBox represents a box with arbitrary orientation.
// Axis holds a right-handed orthonormal frame and Extent the half-extents
// along each of those axes.
type OrientedBox struct {
	Center mgl64.Vec3
	Axis   [3]mgl64.Vec3
	Extent mgl64.Vec3
}

// ZeroBox returns the box reported for an empty point cloud: centered at
// the origin, identity axes, zero extents.
func ZeroBox() OrientedBox {
	return OrientedBox{
		Axis: [3]mgl64.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
	}
}

// FitFrame returns the smallest box with the given axes enclosing points.
// The frame must be orthonormal and points non-empty.
func FitFrame(frame [3]mgl64.Vec3, points PointCloud) OrientedBox {
	var lo, hi mgl64.Vec3
	for k := 0; k < 3; k++ {
		lo[k] = math.Inf(1)
		hi[k] = math.Inf(-1)
	}

	for _, p := range points {
		for k := 0; k < 3; k++ {
			d := p.Dot(frame[k])
			lo[k] = math.Min(lo[k], d)
			hi[k] = math.Max(hi[k], d)
		}
	}

	box := OrientedBox{Axis: frame}
	for k := 0; k < 3; k++ {
		box.Center = box.Center.Add(frame[k].Mul(0.5 * (lo[k] + hi[k])))
		box.Extent[k] = 0.5 * (hi[k] - lo[k])
	}

	return box
}

// Volume = 8 * ex * ey * ez (full dimensions are 2*extents)
func (b OrientedBox) Volume() float64 {
	return 8.0 * b.Extent.X() * b.Extent.Y() * b.Extent.Z()
}

// Rotation returns the matrix whose columns are the box axes.
func (b OrientedBox) Rotation() mgl64.Mat3 {
	return mgl64.Mat3FromCols(b.Axis[0], b.Axis[1], b.Axis[2])
}

// ToLocal expresses a world point in the box frame, relative to its center.
func (b OrientedBox) ToLocal(point mgl64.Vec3) mgl64.Vec3 {
	return b.Rotation().Transpose().Mul3x1(point.Sub(b.Center))
}

// ContainsPoint checks if the point lies inside the box, allowing tolerance
// on every axis.
func (b OrientedBox) ContainsPoint(point mgl64.Vec3, tolerance float64) bool {
	local := b.ToLocal(point)
	for k := 0; k < 3; k++ {
		if math.Abs(local[k]) > b.Extent[k]+tolerance {
			return false
		}
	}
	return true
}

// Corners returns the 8 corners of the box in world space.
func (b OrientedBox) Corners() [8]mgl64.Vec3 {
	var corners [8]mgl64.Vec3
	rotation := b.Rotation()

	for i := 0; i < 8; i++ {
		local := mgl64.Vec3{b.Extent.X(), b.Extent.Y(), b.Extent.Z()}
		if i&1 == 0 {
			local[0] = -local[0]
		}
		if i&2 == 0 {
			local[1] = -local[1]
		}
		if i&4 == 0 {
			local[2] = -local[2]
		}
		corners[i] = rotation.Mul3x1(local).Add(b.Center)
	}

	return corners
}

// AABB returns the axis-aligned bounds of the oriented box.
func (b OrientedBox) AABB() AABB {
	corners := b.Corners()
	return ComputeAABB(corners[:])
}

// IsRightHanded reports whether the axes form a right-handed orthonormal
// basis within tolerance.
func (b OrientedBox) IsRightHanded(tolerance float64) bool {
	for k := 0; k < 3; k++ {
		if math.Abs(b.Axis[k].Len()-1) > tolerance {
			return false
		}
	}
	if math.Abs(b.Axis[0].Dot(b.Axis[1])) > tolerance ||
		math.Abs(b.Axis[0].Dot(b.Axis[2])) > tolerance ||
		math.Abs(b.Axis[1].Dot(b.Axis[2])) > tolerance {
		return false
	}

	return b.Axis[0].Cross(b.Axis[1]).Sub(b.Axis[2]).Len() <= tolerance
}
