package hull

import (
	"sync"

	"github.com/akmonengine/geometrictools/geom"
	"github.com/akmonengine/geometrictools/pipeline"
	"github.com/go-gl/mathgl/mgl64"
)

// Small initial capacity for PolytopeBuilder - grows dynamically as needed
const polytopeInitialCapacity = 16

// PolytopeBuilder grows a convex polytope over a point cloud, one extreme
// point at a time. Only the goroutine that owns the builder mutates faces;
// workers write point classifications into private slots of assignment.
type PolytopeBuilder struct {
	points    geom.PointCloud
	tolerance float64
	workers   int

	// Dead faces stay in place so face indices remain stable.
	faces []Face
	// Every face before cursor has an empty outside set.
	cursor int

	// Stamps of the current expansion, compared against the face and
	// vertex stamps. They only grow, so pooled builders need no clearing.
	stamp, keepStamp, forceStamp int
	vertexStamp                  []int

	// Visible region of the current eye point, and its boundary in walk order
	visibleIndices []int
	horizon        []horizonEdge
	queue          []int

	// Points released by removed faces, waiting for reassignment
	orphans    []int
	assignment []int
}

// horizonEdge is a boundary edge of the visible region, directed as in the
// visible face Inner. Outer is the face across it, which stays.
type horizonEdge struct {
	Edge
	Inner, Outer int
}

// polytopeBuilderPool keeps builders between calls so concurrent
// computations each get their own scratch buffers.
var polytopeBuilderPool = sync.Pool{
	New: func() interface{} {
		return &PolytopeBuilder{
			faces:          make([]Face, 0, polytopeInitialCapacity),
			visibleIndices: make([]int, 0, polytopeInitialCapacity),
			horizon:        make([]horizonEdge, 0, polytopeInitialCapacity),
			queue:          make([]int, 0, polytopeInitialCapacity),
			orphans:        make([]int, 0, polytopeInitialCapacity),
			assignment:     make([]int, 0, polytopeInitialCapacity),
		}
	},
}

// Reset prepares the builder for a new point cloud.
func (b *PolytopeBuilder) Reset(points geom.PointCloud, tolerance float64, workers int) {
	b.points = points
	b.tolerance = tolerance
	b.workers = pipeline.Workers(workers)

	// Drop outside lists so pooled builders do not pin old point sets.
	for i := range b.faces {
		b.faces[i].Outside = nil
	}
	b.faces = b.faces[:0]
	b.cursor = 0

	if cap(b.vertexStamp) < len(points) {
		b.vertexStamp = make([]int, len(points))
	}
	b.vertexStamp = b.vertexStamp[:len(points)]

	b.visibleIndices = b.visibleIndices[:0]
	b.horizon = b.horizon[:0]
	b.queue = b.queue[:0]
	b.orphans = b.orphans[:0]
	b.assignment = b.assignment[:0]
}

// BuildInitialFaces creates the tetrahedron of a full simplex and assigns
// every other point to the first face it lies above.
func (b *PolytopeBuilder) BuildInitialFaces(simplex *Simplex) {
	i0, i1, i2, i3 := simplex.Indices[0], simplex.Indices[1], simplex.Indices[2], simplex.Indices[3]

	interior := b.points[i0].Add(b.points[i1]).Add(b.points[i2]).Add(b.points[i3]).Mul(0.25)

	// Each face is defined by 3 points; the centroid decides the orientation
	b.faces = append(b.faces,
		createFaceOutward(b.points, i0, i1, i2, interior),
		createFaceOutward(b.points, i0, i2, i3, interior),
		createFaceOutward(b.points, i0, i3, i1, interior),
		createFaceOutward(b.points, i1, i3, i2, interior),
	)

	for i := range b.faces {
		for k, edge := range b.faces[i].Edges() {
			for j := range b.faces {
				if j != i && b.faces[j].edgeSlot(edge.B, edge.A) >= 0 {
					b.faces[i].Neighbors[k] = j
					break
				}
			}
		}
	}

	for i := range b.points {
		if i == i0 || i == i1 || i == i2 || i == i3 {
			continue
		}
		b.orphans = append(b.orphans, i)
	}

	b.assignOrphans(0)
}

// assignOrphans classifies every orphan against the faces created from
// firstFace onward. Classification runs on the workers; appending to the
// outside lists is done here, in orphan order. Orphans above no new face
// are inside the hull and dropped.
func (b *PolytopeBuilder) assignOrphans(firstFace int) {
	b.assignment = b.assignment[:0]
	for range b.orphans {
		b.assignment = append(b.assignment, -1)
	}

	candidates := b.faces[firstFace:]
	pipeline.Chunks(b.workers, len(b.orphans), func(_, start, end int) {
		for k := start; k < end; k++ {
			b.assignment[k] = firstFaceAbove(candidates, b.points[b.orphans[k]], b.tolerance)
		}
	})

	for k, f := range b.assignment {
		if f < 0 {
			continue
		}
		face := &b.faces[firstFace+f]
		face.Outside = append(face.Outside, b.orphans[k])
	}
	b.orphans = b.orphans[:0]
}

// firstFaceAbove returns the first alive face that p lies above by more
// than tolerance, or -1.
func firstFaceAbove(faces []Face, p mgl64.Vec3, tolerance float64) int {
	for f := range faces {
		if faces[f].Alive && faces[f].SignedDistance(p) > tolerance {
			return f
		}
	}
	return -1
}

// nextFace returns the first alive face with outside points, or -1.
func (b *PolytopeBuilder) nextFace() int {
	for ; b.cursor < len(b.faces); b.cursor++ {
		face := &b.faces[b.cursor]
		if face.Alive && len(face.Outside) > 0 {
			return b.cursor
		}
	}
	return -1
}

// farthestOutside returns the outside point of the face with the largest
// distance above it, the first one on ties.
func (b *PolytopeBuilder) farthestOutside(faceIndex int) int {
	face := &b.faces[faceIndex]
	eye, best := face.Outside[0], face.SignedDistance(b.points[face.Outside[0]])

	for _, idx := range face.Outside[1:] {
		if d := face.SignedDistance(b.points[idx]); d > best {
			eye, best = idx, d
		}
	}

	return eye
}

// findVisibleFaces walks from seed across face neighbors, collecting the
// faces the eye lies above in visibleIndices and the boundary of that
// region in horizon. seed is always visible.
func (b *PolytopeBuilder) findVisibleFaces(eye mgl64.Vec3, seed int) {
	b.walkVisible(seed, func(f *Face) bool {
		return f.SignedDistance(eye) > b.tolerance
	})
}

// walkVisible collects the connected region of faces around seed accepted
// by visible. Each face continues with the edges following the one it was
// entered by, so the horizon comes out as one ordered loop when the region
// is a disk.
func (b *PolytopeBuilder) walkVisible(seed int, visible func(f *Face) bool) {
	b.stamp++
	b.visibleIndices = b.visibleIndices[:0]
	b.horizon = b.horizon[:0]

	b.visitFace(seed, -1, visible)
}

func (b *PolytopeBuilder) visitFace(index, enteredBy int, visible func(f *Face) bool) {
	b.faces[index].visible = b.stamp
	b.visibleIndices = append(b.visibleIndices, index)

	first, count := 0, 3
	if enteredBy >= 0 {
		first, count = enteredBy+1, 2
	}

	for n := 0; n < count; n++ {
		k := (first + n) % 3
		face := &b.faces[index]
		edge := Edge{face.Vertices[k], face.Vertices[(k+1)%3]}
		neighbor := face.Neighbors[k]

		next := &b.faces[neighbor]
		if next.visible == b.stamp {
			continue
		}
		if visible(next) {
			b.visitFace(neighbor, next.edgeSlot(edge.B, edge.A), visible)
		} else {
			b.horizon = append(b.horizon, horizonEdge{Edge: edge, Inner: index, Outer: neighbor})
		}
	}
}

// horizonIsLoop reports whether the horizon is a single closed loop that
// passes each vertex once. Horizon vertices are left stamped.
func (b *PolytopeBuilder) horizonIsLoop() bool {
	m := len(b.horizon)
	if m < 3 {
		return false
	}

	for i, h := range b.horizon {
		if b.vertexStamp[h.A] == b.stamp {
			return false
		}
		b.vertexStamp[h.A] = b.stamp

		if h.B != b.horizon[(i+1)%m].A {
			return false
		}
	}
	return true
}

// keepRegion marks the faces that stay: the connected region, outside the
// visible and forced faces, around the face lying lowest below the eye.
// It reports false when no face can stay.
func (b *PolytopeBuilder) keepRegion(eye mgl64.Vec3) bool {
	b.keepStamp++

	start, lowest := -1, 0.0
	for i := range b.faces {
		face := &b.faces[i]
		if !face.Alive || face.visible == b.stamp || face.forced == b.forceStamp {
			continue
		}
		if d := face.SignedDistance(eye); start < 0 || d < lowest {
			start, lowest = i, d
		}
	}
	if start < 0 {
		return false
	}

	b.faces[start].kept = b.keepStamp
	b.queue = append(b.queue[:0], start)
	for head := 0; head < len(b.queue); head++ {
		for _, neighbor := range b.faces[b.queue[head]].Neighbors {
			face := &b.faces[neighbor]
			if face.kept == b.keepStamp || face.visible == b.stamp || face.forced == b.forceStamp {
				continue
			}
			face.kept = b.keepStamp
			b.queue = append(b.queue, neighbor)
		}
	}
	return true
}

// expandVisibleRegion finds the faces to replace when adding eye.
//
// Points within tolerance of a face make the polytope convex only up to
// tolerance, so the faces above the eye may enclose faces that are not, or
// touch each other at a single vertex. Enclosed faces are removed with the
// region, and faces around a pinched vertex are forced into it, until the
// horizon is a simple loop. It reports false if that never happens.
func (b *PolytopeBuilder) expandVisibleRegion(eye, seed int) bool {
	eyePoint := b.points[eye]

	b.findVisibleFaces(eyePoint, seed)
	if b.horizonIsLoop() {
		return true
	}

	b.forceStamp++
	notKept := func(f *Face) bool {
		return f.kept != b.keepStamp
	}

	for attempt := 0; attempt < len(b.faces); attempt++ {
		if !b.keepRegion(eyePoint) {
			return false
		}
		b.walkVisible(seed, notKept)
		if b.horizonIsLoop() {
			return true
		}

		uses := map[int]int{}
		for _, h := range b.horizon {
			uses[h.A]++
		}
		pinched := false
		for _, count := range uses {
			pinched = pinched || count > 1
		}

		grown := false
		for _, h := range b.horizon {
			if pinched && uses[h.A] < 2 && uses[h.B] < 2 {
				continue
			}
			if outer := &b.faces[h.Outer]; outer.forced != b.forceStamp {
				outer.forced = b.forceStamp
				grown = true
			}
		}
		if !grown {
			return false
		}
	}

	return false
}

// removeVisibleFaces kills the visible faces and releases their outside
// points, except the eye, for reassignment. Their vertices off the horizon
// are released as well.
func (b *PolytopeBuilder) removeVisibleFaces(eye int) {
	for _, idx := range b.visibleIndices {
		face := &b.faces[idx]
		face.Alive = false

		for _, p := range face.Outside {
			if p != eye {
				b.orphans = append(b.orphans, p)
			}
		}
		face.Outside = nil
	}

	// Horizon vertices carry the current stamp already
	for _, idx := range b.visibleIndices {
		for _, v := range b.faces[idx].Vertices {
			if b.vertexStamp[v] != b.stamp {
				b.vertexStamp[v] = b.stamp
				b.orphans = append(b.orphans, v)
			}
		}
	}
}

// dropOutside removes p from the outside set of the face.
func (b *PolytopeBuilder) dropOutside(faceIndex, p int) {
	face := &b.faces[faceIndex]
	for i, idx := range face.Outside {
		if idx == p {
			face.Outside = append(face.Outside[:i], face.Outside[i+1:]...)
			return
		}
	}
}

// AddPointAndRebuildFaces expands the polytope toward the farthest outside
// point of faceIndex:
//  1. Walks the faces visible from the eye point, collecting the horizon
//  2. Removes visible faces
//  3. Creates new faces joining each horizon edge to the eye point, wound
//     like the face they replace
//  4. Links the new faces to each other and to the faces across the horizon
//  5. Reassigns the released points to the new faces
func (b *PolytopeBuilder) AddPointAndRebuildFaces(faceIndex int) {
	eye := b.farthestOutside(faceIndex)

	if !b.expandVisibleRegion(eye, faceIndex) {
		b.dropOutside(faceIndex, eye)
		return
	}
	b.removeVisibleFaces(eye)

	firstNew := len(b.faces)
	m := len(b.horizon)
	for i, h := range b.horizon {
		face := createFaceWound(b.points, h.A, h.B, eye, b.faces[h.Inner].Normal)
		face.Neighbors = [3]int{h.Outer, firstNew + (i+1)%m, firstNew + (i+m-1)%m}
		b.faces = append(b.faces, face)

		outer := &b.faces[h.Outer]
		outer.Neighbors[outer.edgeSlot(h.B, h.A)] = firstNew + i
	}

	b.assignOrphans(firstNew)
}

// Build expands the polytope until no point lies outside any face.
func (b *PolytopeBuilder) Build(simplex *Simplex) {
	b.BuildInitialFaces(simplex)

	for face := b.nextFace(); face >= 0; face = b.nextFace() {
		b.AddPointAndRebuildFaces(face)
	}
}

// Triangles appends the vertex indices of every alive face to dst, in face
// creation order.
func (b *PolytopeBuilder) Triangles(dst []int) []int {
	for i := range b.faces {
		face := &b.faces[i]
		if face.Alive {
			dst = append(dst, face.Vertices[:]...)
		}
	}
	return dst
}
