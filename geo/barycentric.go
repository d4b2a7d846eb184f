package geo

// BarycentricCoords are the weights expressing a point as a convex
// combination of a triangle's vertices. Weights are non-negative and sum
// to 1.
type BarycentricCoords struct {
	W [3]float64
}

// Barycentric returns the barycentric coordinates of p relative to the
// triangle (a, b, c).
//
// ok is false when p lies outside the triangle or when the triangle is
// degenerate (near-zero area).
func Barycentric(a, b, c, p Vec2) (BarycentricCoords, bool) {
	v0 := b.Sub(a)
	v1 := c.Sub(a)
	v2 := p.Sub(a)

	denom := v0.Cross(v1)
	if denom > -CollinearEpsilon && denom < CollinearEpsilon {
		return BarycentricCoords{}, false
	}

	wb := v2.Cross(v1) / denom
	wc := v0.Cross(v2) / denom
	wa := 1 - wb - wc

	if wa < 0 || wb < 0 || wc < 0 {
		return BarycentricCoords{}, false
	}

	return BarycentricCoords{W: [3]float64{wa, wb, wc}}, true
}

// Interpolate blends the given per-vertex values with the weights.
func (bc BarycentricCoords) Interpolate(values [3]float64) float64 {
	return bc.W[0]*values[0] + bc.W[1]*values[1] + bc.W[2]*values[2]
}
