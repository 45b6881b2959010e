package hull

import (
	"math"

	"github.com/akmonengine/geometrictools/geom"
	"github.com/go-gl/mathgl/mgl64"
)

// Simplex holds the indices of 1-4 affinely independent input points.
// Count is also the dimension of the point cloud plus one.
// Size progression: 1 point → 2 points (line) → 3 points (triangle) → 4 points (tetrahedron)
type Simplex struct {
	Indices [4]int
	Count   int
	// Normal of the supporting plane, set once Count reaches 3.
	Normal mgl64.Vec3
}

func (s *Simplex) Reset() {
	s.Count = 0
	s.Normal = mgl64.Vec3{}
}

// Dimension is the affine dimension spanned by the simplex.
func (s *Simplex) Dimension() int {
	return s.Count - 1
}

// FindSimplex grows a simplex over points, stopping as soon as no point is
// farther than tolerance from the span of the current simplex.
//
// Steps:
//  1. Farthest pair among the axis extreme points → edge, or a single point
//  2. Farthest point from the edge line → triangle, or stop (collinear)
//  3. Farthest point from the triangle plane → tetrahedron, or stop (coplanar)
//
// Ties always resolve to the lowest point index so the result does not
// depend on anything but the input order. points must be non-empty; a
// non-finite point stops the simplex where it can no longer be compared.
func FindSimplex(points geom.PointCloud, tolerance float64, simplex *Simplex) {
	simplex.Reset()

	a, b := farthestExtremePair(points)
	simplex.Indices[0] = a
	simplex.Count = 1

	if !(points[b].Sub(points[a]).Len() > tolerance) {
		return
	}
	simplex.Indices[1] = b
	simplex.Count = 2

	origin := points[a]
	direction := points[b].Sub(origin).Normalize()

	c, lineDistance := -1, -1.0
	for i, p := range points {
		d := distanceToLine(p, origin, direction)
		if d > lineDistance {
			c, lineDistance = i, d
		}
	}
	if c < 0 || lineDistance <= tolerance {
		return
	}
	simplex.Indices[2] = c
	simplex.Count = 3
	simplex.Normal = direction.Cross(points[c].Sub(origin)).Normalize()

	d, planeDistance := -1, -1.0
	for i, p := range points {
		dist := math.Abs(p.Sub(origin).Dot(simplex.Normal))
		if dist > planeDistance {
			d, planeDistance = i, dist
		}
	}
	if d < 0 || planeDistance <= tolerance {
		return
	}
	simplex.Indices[3] = d
	simplex.Count = 4
}

// farthestExtremePair returns the two most distant points among the
// minimum and maximum points on each axis.
func farthestExtremePair(points geom.PointCloud) (int, int) {
	var extremes [6]int
	for axis := 0; axis < 3; axis++ {
		lo, hi := 0, 0
		for i := 1; i < len(points); i++ {
			if points[i][axis] < points[lo][axis] {
				lo = i
			}
			if points[i][axis] > points[hi][axis] {
				hi = i
			}
		}
		extremes[2*axis] = lo
		extremes[2*axis+1] = hi
	}

	bestA, bestB, best := extremes[0], extremes[0], -1.0
	for i := 0; i < len(extremes); i++ {
		for j := i + 1; j < len(extremes); j++ {
			a, b := extremes[i], extremes[j]
			if a > b {
				a, b = b, a
			}
			d := points[b].Sub(points[a]).LenSqr()
			if d > best || (d == best && (a < bestA || (a == bestA && b < bestB))) {
				bestA, bestB, best = a, b, d
			}
		}
	}

	return bestA, bestB
}

// extremesAlong returns the indices of the points with the smallest and the
// largest projection on direction.
func extremesAlong(points geom.PointCloud, direction mgl64.Vec3) (int, int) {
	lo, hi := 0, 0
	loValue := points[0].Dot(direction)
	hiValue := loValue

	for i := 1; i < len(points); i++ {
		v := points[i].Dot(direction)
		if v < loValue {
			lo, loValue = i, v
		}
		if v > hiValue {
			hi, hiValue = i, v
		}
	}

	return lo, hi
}

func distanceToLine(p, origin, direction mgl64.Vec3) float64 {
	return p.Sub(origin).Cross(direction).Len()
}
