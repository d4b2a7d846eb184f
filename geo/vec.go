package geo

import "math"

// Vec2 is a 2D point or direction. It is a plain value with no identity.
type Vec2 struct {
	X float64
	Y float64
}

func NewVec2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

func Zero() Vec2 {
	return Vec2{}
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

func (v Vec2) Mul(o Vec2) Vec2 {
	return Vec2{v.X * o.X, v.Y * o.Y}
}

func (v Vec2) Div(o Vec2) Vec2 {
	return Vec2{v.X / o.X, v.Y / o.Y}
}

func (v Vec2) AddN(s float64) Vec2 {
	return Vec2{v.X + s, v.Y + s}
}

func (v Vec2) SubN(s float64) Vec2 {
	return Vec2{v.X - s, v.Y - s}
}

func (v Vec2) MulN(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

func (v Vec2) DivN(s float64) Vec2 {
	return Vec2{v.X / s, v.Y / s}
}

func (v Vec2) Norm() float64 {
	return math.Sqrt(v.Norm2())
}

func (v Vec2) Norm2() float64 {
	return v.X*v.X + v.Y*v.Y
}

func (v Vec2) Dist(o Vec2) float64 {
	return math.Sqrt(v.Dist2(o))
}

// Dist2 is the squared distance between v and o. Prefer it over Dist whenever
// only the ordering of distances matters.
func (v Vec2) Dist2(o Vec2) float64 {
	return v.Sub(o).Norm2()
}

// Cross returns the z component of the cross product of v and o, i.e. twice
// the signed area of the triangle (origin, v, o).
func (v Vec2) Cross(o Vec2) float64 {
	return v.X*o.Y - v.Y*o.X
}
