package geo

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
	"gonum.org/v1/gonum/floats/scalar"
)

const (
	// CollinearEpsilon is the smallest doubled signed area three points may
	// span and still be considered non-collinear. Circumcircle rejects
	// anything below it instead of producing an unbounded or NaN circle.
	CollinearEpsilon = 1e-9

	// ContainsEpsilon is the distance tolerance used for inclusive boundary
	// tests. A point within ContainsEpsilon of a circle is contained by it.
	ContainsEpsilon = 1e-9
)

// Circle is a center and a non-negative radius.
type Circle struct {
	Center Vec2
	Radius float64
}

func NewCircle(center Vec2, radius float64) Circle {
	return Circle{Center: center, Radius: radius}
}

// Contains reports whether p is inside the circle. The test is inclusive:
// points on the boundary, within ContainsEpsilon, are contained.
func (c Circle) Contains(p Vec2) bool {
	d := c.Center.Dist(p)
	return d < c.Radius || scalar.EqualWithinAbs(d, c.Radius, ContainsEpsilon)
}

// Circumcircle returns the unique circle through a, b and c.
//
// It returns an error when the points are collinear or duplicated within
// CollinearEpsilon, since the circumcircle is then undefined or arbitrarily
// large.
func Circumcircle(a, b, c Vec2) (Circle, error) {
	e := b.Sub(a)
	f := c.Sub(a)

	area2 := e.Cross(f)
	if scalar.EqualWithinAbs(area2, 0, CollinearEpsilon) {
		return Circle{}, errors.New("circumcircle of collinear points is undefined").
			WithTag("a", a).
			WithTag("b", b).
			WithTag("c", c)
	}

	e2 := e.Norm2()
	f2 := f.Norm2()
	d := 0.5 / area2

	center := a.Add(Vec2{
		X: (f.Y*e2 - e.Y*f2) * d,
		Y: (e.X*f2 - f.X*e2) * d,
	})

	return Circle{Center: center, Radius: center.Dist(a)}, nil
}
