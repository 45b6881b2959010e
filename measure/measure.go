package measure

import (
	"math"

	"github.com/akmonengine/geometrictools"
	"github.com/akmonengine/geometrictools/geom"
	"github.com/go-gl/mathgl/mgl64"
)

// Surface is the convex hull surface spanned by markers.
type Surface struct {
	// Dimension of the hull, 0 to 3
	Dimension int
	// Triangles covering the surface, counter-clockwise seen from outside.
	// Planar hulls are covered by a fan from their first vertex.
	Triangles [][3]int
	// Area in Presets.Unit squared
	Area float64
}

// Distance between a and b.
func (p Presets) Distance(a, b geom.Point3) float64 {
	return a.Sub(b).Len() * p.scale(1)
}

// Angle returns the angle in degrees between the arms vertex->a and
// vertex->c. A zero-length arm gives 0.
func (p Presets) Angle(a, vertex, c geom.Point3) float64 {
	u := a.Sub(vertex)
	v := c.Sub(vertex)

	denominator := math.Sqrt(u.LenSqr() * v.LenSqr())
	if denominator == 0 {
		return 0
	}

	cos := mgl64.Clamp(u.Dot(v)/denominator, -1, 1)
	return mgl64.RadToDeg(math.Acos(cos))
}

// Trace is the length of the polyline through points, in order.
func (p Presets) Trace(points geom.PointCloud) float64 {
	length := 0.0
	for i := 1; i < len(points); i++ {
		length += points[i].Sub(points[i-1]).Len()
	}
	return length * p.scale(1)
}

// Area computes the convex hull of points and its surface area. Coplanar
// markers measure the area of their polygon; fewer dimensions measure 0.
func (p Presets) Area(points geom.PointCloud) Surface {
	flat := points.Flatten()
	count := uint32(len(points))

	var dimensions, hullSize uint32
	primitives := make([]uint32, 3*len(points))
	if geometrictools.ComputeConvexHull3D(p.Workers, count, flat, &dimensions, uint32(len(primitives)), primitives, &hullSize) == 0 {
		primitives = make([]uint32, hullSize)
		geometrictools.ComputeConvexHull3D(p.Workers, count, flat, &dimensions, hullSize, primitives, &hullSize)
	}
	primitives = primitives[:hullSize]

	surface := Surface{Dimension: int(dimensions)}
	switch dimensions {
	case 2:
		for i := 2; i < len(primitives); i++ {
			surface.Triangles = append(surface.Triangles, [3]int{
				int(primitives[0]), int(primitives[i-1]), int(primitives[i]),
			})
		}
	case 3:
		for i := 0; i+2 < len(primitives); i += 3 {
			surface.Triangles = append(surface.Triangles, [3]int{
				int(primitives[i]), int(primitives[i+1]), int(primitives[i+2]),
			})
		}
	}

	for _, t := range surface.Triangles {
		a := points[t[0]]
		surface.Area += 0.5 * points[t[1]].Sub(a).Cross(points[t[2]].Sub(a)).Len()
	}
	surface.Area *= p.scale(2)

	return surface
}

// Volume returns the approximate minimum-volume box around points, in
// scene units, and its volume in Presets.Unit cubed.
func (p Presets) Volume(points geom.PointCloud) (geom.OrientedBox, float64) {
	var center, extent [3]float32
	var axis [9]float32
	var volume float32
	geometrictools.ComputeMinimumVolumeBoxFromPoints(p.Workers, int32(len(points)), points.Flatten(), p.LgMaxSample,
		&center, &axis, &extent, &volume)

	box := geom.OrientedBox{
		Center: mgl64.Vec3{float64(center[0]), float64(center[1]), float64(center[2])},
		Extent: mgl64.Vec3{float64(extent[0]), float64(extent[1]), float64(extent[2])},
	}
	for i := 0; i < 3; i++ {
		box.Axis[i] = mgl64.Vec3{float64(axis[3*i]), float64(axis[3*i+1]), float64(axis[3*i+2])}
	}

	return box, float64(volume) * p.scale(3)
}
