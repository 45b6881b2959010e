// Package geom holds the value types shared by the hull and box
// computations: points, point clouds, bounding boxes and the tolerance
// policy used to classify degenerate configurations.
package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Point3 is a point in 3D space.
type Point3 = mgl64.Vec3

// PointCloud is an ordered, read-only sequence of points.
// Indices into a PointCloud are what the hull reports.
type PointCloud []Point3

// LoadPoints reinterprets a row-major buffer of xyz triples as a PointCloud.
// count is clamped to the number of complete triples available, and a
// non-positive count yields an empty cloud.
func LoadPoints(count int, flat []float32) PointCloud {
	if count <= 0 {
		return PointCloud{}
	}
	count = min(count, len(flat)/3)

	points := make(PointCloud, count)
	for i := range points {
		points[i] = Point3{
			float64(flat[3*i]),
			float64(flat[3*i+1]),
			float64(flat[3*i+2]),
		}
	}

	return points
}

// Flatten writes the cloud back as row-major float32 triples.
func (pc PointCloud) Flatten() []float32 {
	flat := make([]float32, 3*len(pc))
	for i, p := range pc {
		flat[3*i] = float32(p[0])
		flat[3*i+1] = float32(p[1])
		flat[3*i+2] = float32(p[2])
	}
	return flat
}

// Centroid returns the average of the points, or the origin for an empty cloud.
func (pc PointCloud) Centroid() Point3 {
	if len(pc) == 0 {
		return Point3{}
	}

	sum := Point3{}
	for _, p := range pc {
		sum = sum.Add(p)
	}
	return sum.Mul(1.0 / float64(len(pc)))
}

// IsFinite reports whether no coordinate is NaN or infinite.
func (pc PointCloud) IsFinite() bool {
	for _, p := range pc {
		for k := 0; k < 3; k++ {
			if math.IsNaN(p[k]) || math.IsInf(p[k], 0) {
				return false
			}
		}
	}
	return true
}
