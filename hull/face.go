package hull

import (
	"math"

	"github.com/akmonengine/geometrictools/geom"
	"github.com/go-gl/mathgl/mgl64"
)

// Face is a triangle of the hull under construction.
// Vertices are counter-clockwise seen from outside, so Normal follows the
// right-hand rule on (v0, v1, v2) and points outward.
type Face struct {
	Vertices [3]int
	Normal   mgl64.Vec3 // Unit normal pointing outward
	Offset   float64    // Normal · p for any point p on the face plane

	// Neighbors[k] is the face across the edge from Vertices[k] to
	// Vertices[(k+1)%3].
	Neighbors [3]int

	// Outside holds the indices of the points above this face that no
	// earlier face has claimed.
	Outside []int
	Alive   bool

	// Stamps of the expansion that last marked the face visible, kept or
	// forced into the visible region.
	visible, kept, forced int
}

// SignedDistance returns the distance of p above the face plane.
// Positive values are outside the hull.
func (f *Face) SignedDistance(p mgl64.Vec3) float64 {
	return f.Normal.Dot(p) - f.Offset
}

// Edges returns the three directed edges of the face, following its winding.
func (f *Face) Edges() [3]Edge {
	return [3]Edge{
		{f.Vertices[0], f.Vertices[1]},
		{f.Vertices[1], f.Vertices[2]},
		{f.Vertices[2], f.Vertices[0]},
	}
}

// edgeSlot returns k such that the edge k of the face goes from a to b,
// or -1.
func (f *Face) edgeSlot(a, b int) int {
	for k := 0; k < 3; k++ {
		if f.Vertices[k] == a && f.Vertices[(k+1)%3] == b {
			return k
		}
	}
	return -1
}

// Edge is a directed edge between two point indices.
type Edge struct {
	A, B int
}

// Reverse returns the same edge walked the other way.
func (e Edge) Reverse() Edge {
	return Edge{e.B, e.A}
}

// createFaceOutward creates a face on (a, b, c) whose normal points away
// from interior, a point strictly inside the hull.
//
// Algorithm:
//  1. Compute normal via cross product: (b-a) × (c-a)
//  2. If the normal points toward the interior point, swap b and c so the
//     winding and the normal both face outward
//  3. Degenerate (zero area) triangles fall back to the direction from the
//     interior point to a
func createFaceOutward(points geom.PointCloud, a, b, c int, interior mgl64.Vec3) Face {
	face := Face{Vertices: [3]int{a, b, c}, Alive: true}

	p0 := points[a]
	edge1 := points[b].Sub(p0)
	edge2 := points[c].Sub(p0)

	// Normal via cross product (right-hand rule)
	normal := edge1.Cross(edge2)
	normalLength := math.Sqrt(normal.Dot(normal))

	if normalLength*normalLength <= geom.DirectionEpsilon*edge1.LenSqr()*edge2.LenSqr() {
		normal = p0.Sub(interior)
		normalLength = normal.Len()
		if normalLength == 0 {
			normal, normalLength = mgl64.Vec3{0, 1, 0}, 1
		}
	}
	normal = normal.Mul(1.0 / normalLength)

	// If normal points TOWARDS the interior point, it's pointing INWARD
	if normal.Dot(interior.Sub(p0)) > 0 {
		normal = normal.Mul(-1)
		face.Vertices[1], face.Vertices[2] = face.Vertices[2], face.Vertices[1]
	}

	face.Normal = normal
	face.Offset = normal.Dot(p0)

	return face
}

// createFaceWound creates the face (a, b, c) keeping its winding, which
// must already be counter-clockwise seen from outside. A face too thin to
// carry a normal takes fallback as its normal.
func createFaceWound(points geom.PointCloud, a, b, c int, fallback mgl64.Vec3) Face {
	face := Face{Vertices: [3]int{a, b, c}, Alive: true}

	p0 := points[a]
	edge1 := points[b].Sub(p0)
	edge2 := points[c].Sub(p0)

	normal := edge1.Cross(edge2)
	if normal.LenSqr() <= geom.DirectionEpsilon*edge1.LenSqr()*edge2.LenSqr() {
		normal = fallback
	}

	face.Normal = normal.Normalize()
	face.Offset = face.Normal.Dot(p0)

	return face
}
