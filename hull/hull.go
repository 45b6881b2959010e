// Package hull computes the convex hull of a 3D point cloud.
//
// The hull is built with a quickhull-style incremental algorithm seeded by a
// tetrahedron of extreme points. Point clouds that do not span 3D are
// detected first and reported with their true dimension:
//   - 0: every point coincides; the hull is one point index
//   - 1: the points are collinear; the hull is the two extreme indices
//   - 2: the points are coplanar; the hull is a counter-clockwise polygon
//   - 3: the hull is a closed surface of outward, counter-clockwise triangles
//
// Classification of points against faces, the dominant cost on large clouds,
// is spread across worker goroutines. Faces are only ever added or removed
// by the calling goroutine.
//
// Degeneracy and visibility use the absolute tolerance returned by
// geom.Tolerance.
package hull

import (
	"math"

	"github.com/akmonengine/geometrictools/geom"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"github.com/willf/bitset"
)

// ErrCapacityExceeded is the cause of the error returned when an output
// buffer cannot hold the hull.
var ErrCapacityExceeded = errors.New("hull: output buffer too small")

// Hull is the result of a convex hull computation.
type Hull struct {
	// Dimension is the affine dimension of the point cloud, 0 to 3.
	Dimension int
	// Indices into the input points, laid out according to Dimension.
	Indices []int
}

// Builder computes convex hulls with a fixed number of workers.
// The zero value runs on a single goroutine.
type Builder struct {
	Workers int
}

// Compute is a shorthand for Builder{Workers: numThreads}.Compute(points).
func Compute(points geom.PointCloud, numThreads int) Hull {
	return Builder{Workers: numThreads}.Compute(points)
}

// Compute returns the convex hull of points. An empty cloud, or one with a
// NaN or infinite coordinate, yields a dimension 0 hull without indices.
func (b Builder) Compute(points geom.PointCloud) Hull {
	if len(points) == 0 || !points.IsFinite() {
		return Hull{}
	}

	tolerance := geom.Tolerance(points)

	var simplex Simplex
	FindSimplex(points, tolerance, &simplex)

	switch simplex.Dimension() {
	case 0:
		return Hull{Dimension: 0, Indices: []int{simplex.Indices[0]}}
	case 1:
		direction := points[simplex.Indices[1]].Sub(points[simplex.Indices[0]]).Normalize()
		lo, hi := extremesAlong(points, direction)
		return Hull{Dimension: 1, Indices: []int{lo, hi}}
	case 2:
		return Hull{Dimension: 2, Indices: planarHull(points, simplex.Normal)}
	}

	builder := polytopeBuilderPool.Get().(*PolytopeBuilder)
	defer func() {
		builder.Reset(nil, 0, 0)
		polytopeBuilderPool.Put(builder)
	}()

	builder.Reset(points, tolerance, b.Workers)
	builder.Build(&simplex)

	return Hull{Dimension: 3, Indices: builder.Triangles(nil)}
}

// Size is the number of index slots needed to store the hull.
func (h Hull) Size() int {
	return len(h.Indices)
}

// CopyTo writes the hull indices into dst and returns the hull size.
// When dst is too small nothing is written and the error's cause is
// ErrCapacityExceeded; the returned size is still the required one.
func (h Hull) CopyTo(dst []uint32) (int, error) {
	size := h.Size()
	if len(dst) < size {
		return size, errors.Wrapf(ErrCapacityExceeded, "hull needs %d slots, buffer holds %d", size, len(dst))
	}

	for i, idx := range h.Indices {
		dst[i] = uint32(idx)
	}
	return size, nil
}

// Vertices returns the distinct point indices used by the hull, ascending.
func (h Hull) Vertices() []int {
	if len(h.Indices) == 0 {
		return nil
	}

	set := bitset.New(0)
	for _, idx := range h.Indices {
		set.Set(uint(idx))
	}

	vertices := make([]int, 0, set.Count())
	for i, ok := set.NextSet(0); ok; i, ok = set.NextSet(i + 1) {
		vertices = append(vertices, int(i))
	}
	return vertices
}

// Triangles returns the faces of a dimension 3 hull, nil otherwise.
func (h Hull) Triangles() [][3]int {
	if h.Dimension != 3 {
		return nil
	}

	triangles := make([][3]int, 0, len(h.Indices)/3)
	for i := 0; i+2 < len(h.Indices); i += 3 {
		triangles = append(triangles, [3]int{h.Indices[i], h.Indices[i+1], h.Indices[i+2]})
	}
	return triangles
}

// Edges returns the distinct undirected edges of the hull, in order of
// first appearance: triangle edges for dimension 3, polygon sides for
// dimension 2 and the segment for dimension 1.
func (h Hull) Edges() []Edge {
	var edges []Edge

	switch h.Dimension {
	case 1:
		edges = append(edges, Edge{h.Indices[0], h.Indices[1]})
	case 2:
		for i := range h.Indices {
			edges = append(edges, Edge{h.Indices[i], h.Indices[(i+1)%len(h.Indices)]})
		}
	case 3:
		seen := make(map[Edge]struct{}, len(h.Indices))
		for _, t := range h.Triangles() {
			for k := 0; k < 3; k++ {
				edge := Edge{t[k], t[(k+1)%3]}
				if edge.A > edge.B {
					edge = edge.Reverse()
				}
				if _, ok := seen[edge]; ok {
					continue
				}
				seen[edge] = struct{}{}
				edges = append(edges, edge)
			}
		}
	}

	return edges
}

// Normal returns the unit normal of a dimension 2 polygon, oriented so the
// polygon winds counter-clockwise about it. Other dimensions have none.
func (h Hull) Normal(points geom.PointCloud) mgl64.Vec3 {
	if h.Dimension != 2 {
		return mgl64.Vec3{}
	}

	normal := polygonNormal(points, h.Indices)
	if normal.LenSqr() == 0 {
		return normal
	}
	return normal.Normalize()
}

// Area returns the surface area of a dimension 3 hull or the area of a
// dimension 2 polygon. Lower dimensions have no area.
func (h Hull) Area(points geom.PointCloud) float64 {
	switch h.Dimension {
	case 2:
		return polygonNormal(points, h.Indices).Len() / 2
	case 3:
		area := 0.0
		for _, t := range h.Triangles() {
			a := points[t[0]]
			area += points[t[1]].Sub(a).Cross(points[t[2]].Sub(a)).Len() / 2
		}
		return area
	}
	return 0
}

// Volume returns the enclosed volume of a dimension 3 hull, 0 otherwise.
func (h Hull) Volume(points geom.PointCloud) float64 {
	if h.Dimension != 3 {
		return 0
	}

	// Sum of signed tetrahedra against the first vertex
	origin := points[h.Indices[0]]
	volume := 0.0
	for _, t := range h.Triangles() {
		a := points[t[0]].Sub(origin)
		b := points[t[1]].Sub(origin)
		c := points[t[2]].Sub(origin)
		volume += a.Dot(b.Cross(c))
	}
	return volume / 6
}

// Contains reports whether p lies inside or on the hull, allowing tolerance.
func (h Hull) Contains(points geom.PointCloud, p mgl64.Vec3, tolerance float64) bool {
	switch h.Dimension {
	case 0:
		if len(h.Indices) == 0 {
			return false
		}
		return p.Sub(points[h.Indices[0]]).Len() <= tolerance
	case 1:
		a, b := points[h.Indices[0]], points[h.Indices[1]]
		return distanceToSegment(p, a, b) <= tolerance
	case 2:
		normal := polygonNormal(points, h.Indices)
		if normal.LenSqr() == 0 {
			return false
		}
		normal = normal.Normalize()
		origin := points[h.Indices[0]]
		if math.Abs(p.Sub(origin).Dot(normal)) > tolerance {
			return false
		}
		for i := range h.Indices {
			a := points[h.Indices[i]]
			b := points[h.Indices[(i+1)%len(h.Indices)]]
			inward := normal.Cross(b.Sub(a)).Normalize()
			if p.Sub(a).Dot(inward) < -tolerance {
				return false
			}
		}
		return true
	case 3:
		for _, t := range h.Triangles() {
			a := points[t[0]]
			normal := points[t[1]].Sub(a).Cross(points[t[2]].Sub(a))
			if normal.LenSqr() == 0 {
				continue
			}
			if p.Sub(a).Dot(normal.Normalize()) > tolerance {
				return false
			}
		}
		return true
	}
	return false
}

// polygonNormal returns the summed fan normal of a planar polygon, whose length is
// twice its area.
func polygonNormal(points geom.PointCloud, polygon []int) mgl64.Vec3 {
	var normal mgl64.Vec3
	if len(polygon) < 3 {
		return normal
	}

	origin := points[polygon[0]]
	for i := 1; i+1 < len(polygon); i++ {
		a := points[polygon[i]].Sub(origin)
		b := points[polygon[i+1]].Sub(origin)
		normal = normal.Add(a.Cross(b))
	}
	return normal
}

func distanceToSegment(p, a, b mgl64.Vec3) float64 {
	ab := b.Sub(a)
	lenSqr := ab.LenSqr()
	if lenSqr == 0 {
		return p.Sub(a).Len()
	}

	t := math.Max(0, math.Min(1, p.Sub(a).Dot(ab)/lenSqr))
	return p.Sub(a.Add(ab.Mul(t))).Len()
}
