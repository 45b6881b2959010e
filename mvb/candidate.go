package mvb

import (
	"github.com/akmonengine/geometrictools/geom"
	"github.com/akmonengine/geometrictools/hull"
	"github.com/akmonengine/geometrictools/pipeline"
	"github.com/go-gl/mathgl/mgl64"
)

// candidate is an evaluated box orientation. index is its position in the
// enumeration order and breaks ties between equal scores.
type candidate struct {
	index int
	score float64
	box   geom.OrientedBox
}

func (c candidate) valid() bool {
	return c.index >= 0
}

// better reports whether c should replace other as the best candidate.
func (c candidate) better(other candidate) bool {
	if !other.valid() {
		return c.valid()
	}
	if !c.valid() {
		return false
	}
	return c.score < other.score || (c.score == other.score && c.index < other.index)
}

// candidateSet enumerates box orientations built from one hull face normal
// and one hull edge direction each.
//
// Enumeration index 0 is the axis-aligned frame when included; the
// face-edge pair (f, e) has index 1 + f*len(edges) + e.
type candidateSet struct {
	vertices geom.PointCloud
	normals  []mgl64.Vec3
	edges    []mgl64.Vec3
	planar   bool
}

// newCandidateSet collects the orientations of a dimension 2 or 3 hull.
func newCandidateSet(points geom.PointCloud, h hull.Hull) *candidateSet {
	set := &candidateSet{planar: h.Dimension == 2}

	for _, idx := range h.Vertices() {
		set.vertices = append(set.vertices, points[idx])
	}

	if set.planar {
		set.normals = append(set.normals, h.Normal(points))
	} else {
		for _, t := range h.Triangles() {
			a := points[t[0]]
			normal := points[t[1]].Sub(a).Cross(points[t[2]].Sub(a))
			if normal.LenSqr() == 0 {
				continue
			}
			set.normals = append(set.normals, normal.Normalize())
		}
	}

	for _, edge := range h.Edges() {
		set.edges = append(set.edges, points[edge.B].Sub(points[edge.A]))
	}

	return set
}

// count is the number of face-edge orientations.
func (s *candidateSet) count() int {
	return len(s.normals) * len(s.edges)
}

// fit measures the box of the hull vertices in frame. Planar sets are
// scored by the area of the rectangle in their plane.
func (s *candidateSet) fit(index int, frame [3]mgl64.Vec3) candidate {
	box := geom.FitFrame(frame, s.vertices)

	score := box.Volume()
	if s.planar {
		score = 4 * box.Extent.X() * box.Extent.Y()
	}

	return candidate{index: index, score: score, box: box}
}

// evaluate fits the face-edge orientation j, 0 <= j < count().
// ok is false when the edge is parallel to the face normal.
func (s *candidateSet) evaluate(j int) (candidate, bool) {
	normal := s.normals[j/len(s.edges)]
	edge := s.edges[j%len(s.edges)]

	frame, ok := geom.Frame(normal, edge)
	if !ok {
		return candidate{index: -1}, false
	}

	return s.fit(1+j, frame), true
}

// search evaluates the sampled orientations on workers goroutines and
// returns the best one. Each worker scans a contiguous range of the
// enumeration and keeps its first minimum; the reduction then compares
// scores and enumeration indices only, so the outcome does not depend on
// the number of workers.
func (s *candidateSet) search(workers int, lgMaxSample uint) candidate {
	best := candidate{index: -1}
	if !s.planar {
		best = s.fit(0, geom.ZeroBox().Axis)
	}

	count := s.count()
	if count == 0 {
		return best
	}

	step := sampleStep(count, lgMaxSample)
	samples := (count + step - 1) / step

	locals := make([]candidate, pipeline.ChunkCount(workers, samples))
	pipeline.Chunks(workers, samples, func(worker, start, end int) {
		local := candidate{index: -1}
		for k := start; k < end; k++ {
			if c, ok := s.evaluate(k * step); ok && c.better(local) {
				local = c
			}
		}
		locals[worker] = local
	})

	for _, local := range locals {
		if local.better(best) {
			best = local
		}
	}

	return best
}
