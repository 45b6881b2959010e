package geom

import "math"

const (
	// RelativeTolerance scales the diagonal of a cloud's bounds into the
	// absolute tolerance used for degeneracy classification.
	RelativeTolerance = 1e-6

	// RoundingTolerance scales the largest absolute coordinate into the
	// smallest tolerance allowed, the float32 machine epsilon. Coordinates
	// that went through float32 are not known more precisely than that.
	RoundingTolerance = 0x1p-23

	// DirectionEpsilon is the squared length under which a direction is
	// considered null and cannot be normalized.
	DirectionEpsilon = 1e-24
)

// Tolerance returns the absolute distance below which two points are
// coincident, a point lies on a line, or a point lies on a plane.
//
// The policy is fixed: RelativeTolerance times the diagonal of the cloud's
// bounds, but never less than RoundingTolerance times its largest absolute
// coordinate. It follows the size of the cloud wherever the cloud sits, and
// is zero when every coordinate is zero.
func Tolerance(points PointCloud) float64 {
	bounds := ComputeAABB(points)
	diagonal := bounds.Max.Sub(bounds.Min).Len()

	return math.Max(RelativeTolerance*diagonal, RoundingTolerance*bounds.MaxAbs())
}
