package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// TangentBasis returns two unit vectors that complete normal into a
// right-handed orthonormal frame (normal, t1, t2). normal must be unit length.
func TangentBasis(normal mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3) {
	var tangent1 mgl64.Vec3
	if math.Abs(normal.X()) > 0.9 {
		tangent1 = mgl64.Vec3{0, 1, 0}
	} else {
		tangent1 = mgl64.Vec3{1, 0, 0}
	}

	tangent1 = tangent1.Sub(normal.Mul(tangent1.Dot(normal))).Normalize()
	tangent2 := normal.Cross(tangent1).Normalize()

	return tangent1, tangent2
}

// Frame builds the right-handed frame (u, v, w) whose third axis is w and
// whose first axis is dir projected onto the plane orthogonal to w.
// ok is false when dir is parallel to w.
func Frame(w, dir mgl64.Vec3) (frame [3]mgl64.Vec3, ok bool) {
	u := dir.Sub(w.Mul(dir.Dot(w)))
	if u.LenSqr() <= DirectionEpsilon*dir.LenSqr() {
		return frame, false
	}
	u = u.Normalize()
	v := w.Cross(u).Normalize()

	return [3]mgl64.Vec3{u, v, w}, true
}
