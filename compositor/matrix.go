package compositor

import "math"

// Matrix is a 2D affine transform, row-major, with an implicit final row
// of (0 0 1). It models the "transform matrix ops (init, scale, translate,
// multiply)" the compositor interface offers the shell per the external
// interfaces list; the compositor applies the result to pixels, the shell
// only composes it.
type Matrix struct {
	M [6]float64 // a, b, c, d, tx, ty: x' = a*x + c*y + tx; y' = b*x + d*y + ty
}

// Identity returns the identity transform.
func Identity() Matrix {
	return Matrix{M: [6]float64{1, 0, 0, 1, 0, 0}}
}

// Translate returns a pure translation transform.
func Translate(tx, ty float64) Matrix {
	return Matrix{M: [6]float64{1, 0, 0, 1, tx, ty}}
}

// Scale returns a pure (possibly non-uniform) scale transform.
func Scale(sx, sy float64) Matrix {
	return Matrix{M: [6]float64{sx, 0, 0, sy, 0, 0}}
}

// Rotate returns a pure rotation transform by the angle whose cosine and
// sine are given directly, avoiding a repeated trig call at grab sites
// that already derived cos/sin from a pointer offset (§4.8).
func Rotate(cos, sin float64) Matrix {
	return Matrix{M: [6]float64{cos, sin, -sin, cos, 0, 0}}
}

// Mul returns a·b, i.e. the transform that applies b first, then a.
func (a Matrix) Mul(b Matrix) Matrix {
	return Matrix{M: [6]float64{
		a.M[0]*b.M[0] + a.M[2]*b.M[1],
		a.M[1]*b.M[0] + a.M[3]*b.M[1],
		a.M[0]*b.M[2] + a.M[2]*b.M[3],
		a.M[1]*b.M[2] + a.M[3]*b.M[3],
		a.M[0]*b.M[4] + a.M[2]*b.M[5] + a.M[4],
		a.M[1]*b.M[4] + a.M[3]*b.M[5] + a.M[5],
	}}
}

// Apply transforms a point by the matrix.
func (a Matrix) Apply(x, y float64) (float64, float64) {
	return a.M[0]*x + a.M[2]*y + a.M[4], a.M[1]*x + a.M[3]*y + a.M[5]
}

// IsIdentity reports whether the matrix is (numerically) the identity.
func (a Matrix) IsIdentity() bool {
	const eps = 1e-9
	id := Identity()
	for i := range a.M {
		if math.Abs(a.M[i]-id.M[i]) > eps {
			return false
		}
	}
	return true
}
