package hull

import (
	"sort"

	"github.com/akmonengine/geometrictools/geom"
	"github.com/go-gl/mathgl/mgl64"
)

type planarPoint struct {
	x, y  float64
	index int
}

// planarHull returns the convex polygon of coplanar points, counter-clockwise
// about normal, using Andrew's monotone chain on the points projected in
// the tangent basis of normal. Points on polygon edges are dropped.
//
// The polygon starts at the lowest projected point (smallest x, then y,
// then index).
func planarHull(points geom.PointCloud, normal mgl64.Vec3) []int {
	// (u, v, normal) is right-handed, so counter-clockwise in (u, v) is
	// counter-clockwise about normal.
	u, v := geom.TangentBasis(normal)

	projected := make([]planarPoint, len(points))
	for i, p := range points {
		projected[i] = planarPoint{x: p.Dot(u), y: p.Dot(v), index: i}
	}

	sort.Slice(projected, func(i, j int) bool {
		a, b := projected[i], projected[j]
		if a.x != b.x {
			return a.x < b.x
		}
		if a.y != b.y {
			return a.y < b.y
		}
		return a.index < b.index
	})

	chain := make([]planarPoint, 0, 2*len(projected))

	// Lower chain
	for _, p := range projected {
		for len(chain) >= 2 && cross2D(chain[len(chain)-2], chain[len(chain)-1], p) <= 0 {
			chain = chain[:len(chain)-1]
		}
		chain = append(chain, p)
	}

	// Upper chain
	lower := len(chain) + 1
	for i := len(projected) - 2; i >= 0; i-- {
		p := projected[i]
		for len(chain) >= lower && cross2D(chain[len(chain)-2], chain[len(chain)-1], p) <= 0 {
			chain = chain[:len(chain)-1]
		}
		chain = append(chain, p)
	}

	// The last point closes the loop onto the first one
	chain = chain[:len(chain)-1]

	polygon := make([]int, len(chain))
	for i, p := range chain {
		polygon[i] = p.index
	}
	return polygon
}

// cross2D is positive when a → b → c turns counter-clockwise.
func cross2D(a, b, c planarPoint) float64 {
	return (b.x-a.x)*(c.y-a.y) - (b.y-a.y)*(c.x-a.x)
}
