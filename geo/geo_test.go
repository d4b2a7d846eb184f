package geo

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats/scalar"
)

func TestVec2Arithmetic(t *testing.T) {
	a := NewVec2(3, 4)
	b := NewVec2(1, 2)

	require.Equal(t, Vec2{4, 6}, a.Add(b))
	require.Equal(t, Vec2{2, 2}, a.Sub(b))
	require.Equal(t, Vec2{3, 8}, a.Mul(b))
	require.Equal(t, Vec2{3, 2}, a.Div(b))
	require.Equal(t, Vec2{5, 6}, a.AddN(2))
	require.Equal(t, Vec2{1, 2}, a.SubN(2))
	require.Equal(t, Vec2{6, 8}, a.MulN(2))
	require.Equal(t, Vec2{1.5, 2}, a.DivN(2))
}

func TestVec2Norms(t *testing.T) {
	v := NewVec2(3, 4)

	require.Equal(t, 25.0, v.Norm2())
	require.Equal(t, 5.0, v.Norm())
	require.Equal(t, 25.0, Zero().Dist2(v))
	require.Equal(t, 5.0, Zero().Dist(v))
}

func TestBboxExpand(t *testing.T) {
	b := NewBbox(NewVec2(1, 1))

	b.Expand(NewVec2(3, -2))
	require.Equal(t, Vec2{1, -2}, b.Min)
	require.Equal(t, Vec2{3, 1}, b.Max)

	// expanding with a contained point is a no-op
	before := b
	b.Expand(NewVec2(2, 0))
	require.Equal(t, before, b)
}

func TestBboxContains(t *testing.T) {
	b := Bbox{Min: Vec2{0, 0}, Max: Vec2{10, 10}}

	require.True(t, b.Contains(Vec2{5, 5}))
	require.True(t, b.Contains(Vec2{0, 0}))
	require.True(t, b.Contains(Vec2{10, 10}))
	require.True(t, b.Contains(Vec2{0, 10}))
	require.False(t, b.Contains(Vec2{-0.001, 5}))
	require.False(t, b.Contains(Vec2{5, 10.001}))
}

func TestBboxSplit(t *testing.T) {
	b := Bbox{Min: Vec2{0, 0}, Max: Vec2{10, 10}}
	quads := b.Split(Vec2{5, 5})

	area := func(b Bbox) float64 {
		d := b.Max.Sub(b.Min)
		return d.X * d.Y
	}

	var total float64
	for _, q := range quads {
		total += area(q)
	}
	require.Equal(t, area(b), total)

	// quarters only share boundary edges
	intersection := func(a, b Bbox) float64 {
		w := math.Min(a.Max.X, b.Max.X) - math.Max(a.Min.X, b.Min.X)
		h := math.Min(a.Max.Y, b.Max.Y) - math.Max(a.Min.Y, b.Min.Y)
		if w < 0 || h < 0 {
			return 0
		}
		return w * h
	}
	for i := range quads {
		for j := i + 1; j < len(quads); j++ {
			require.Zero(t, intersection(quads[i], quads[j]))
		}
	}
}

func TestBboxPad(t *testing.T) {
	b := Bbox{Min: Vec2{0, 0}, Max: Vec2{10, 10}}
	p := b.Pad(20)

	require.Equal(t, Vec2{-20, -20}, p.Min)
	require.Equal(t, Vec2{30, 30}, p.Max)
}

func TestCircumcircle(t *testing.T) {
	t.Run("vertices are on the boundary", func(t *testing.T) {
		a := NewVec2(0, 0)
		b := NewVec2(10, 0)
		c := NewVec2(3, 7)

		circle, err := Circumcircle(a, b, c)
		require.NoError(t, err)

		for _, p := range []Vec2{a, b, c} {
			require.True(t, scalar.EqualWithinAbs(circle.Center.Dist(p), circle.Radius, 1e-9))
			require.True(t, circle.Contains(p))
		}
	})

	t.Run("points outside are not contained", func(t *testing.T) {
		rng := rand.New(rand.NewPCG(1, 2))

		for i := 0; i < 100; i++ {
			a := NewVec2(rng.Float64()*100, rng.Float64()*100)
			b := NewVec2(rng.Float64()*100, rng.Float64()*100)
			c := NewVec2(rng.Float64()*100, rng.Float64()*100)

			circle, err := Circumcircle(a, b, c)
			if err != nil {
				continue
			}

			angle := rng.Float64() * 2 * math.Pi
			dist := circle.Radius * (1.01 + rng.Float64())
			outside := circle.Center.Add(NewVec2(math.Cos(angle), math.Sin(angle)).MulN(dist))
			require.False(t, circle.Contains(outside))
		}
	})

	t.Run("right triangle circumcircle is the hypotenuse circle", func(t *testing.T) {
		circle, err := Circumcircle(NewVec2(0, 0), NewVec2(4, 0), NewVec2(0, 3))
		require.NoError(t, err)
		require.Equal(t, Vec2{2, 1.5}, circle.Center)
		require.Equal(t, 2.5, circle.Radius)
	})

	t.Run("collinear points are rejected", func(t *testing.T) {
		_, err := Circumcircle(NewVec2(0, 0), NewVec2(1, 1), NewVec2(2, 2))
		require.Error(t, err)
	})

	t.Run("duplicate points are rejected", func(t *testing.T) {
		_, err := Circumcircle(NewVec2(1, 2), NewVec2(1, 2), NewVec2(5, 9))
		require.Error(t, err)
	})
}

func TestCircleContains(t *testing.T) {
	c := NewCircle(NewVec2(0, 0), 5)

	require.True(t, c.Contains(Vec2{0, 0}))
	require.True(t, c.Contains(Vec2{3, 4}))
	require.True(t, c.Contains(Vec2{5, 0}))
	require.False(t, c.Contains(Vec2{5.001, 0}))
}

func TestBarycentric(t *testing.T) {
	a := NewVec2(0, 0)
	b := NewVec2(10, 0)
	c := NewVec2(0, 10)

	t.Run("inside point has weights summing to one", func(t *testing.T) {
		bc, ok := Barycentric(a, b, c, NewVec2(2, 3))
		require.True(t, ok)
		require.True(t, scalar.EqualWithinAbs(bc.W[0]+bc.W[1]+bc.W[2], 1, 1e-12))
		for _, w := range bc.W {
			require.GreaterOrEqual(t, w, 0.0)
		}
	})

	t.Run("vertex has weight one", func(t *testing.T) {
		bc, ok := Barycentric(a, b, c, b)
		require.True(t, ok)
		require.Equal(t, [3]float64{0, 1, 0}, bc.W)
	})

	t.Run("outside point is rejected", func(t *testing.T) {
		_, ok := Barycentric(a, b, c, NewVec2(20, 20))
		require.False(t, ok)

		_, ok = Barycentric(a, b, c, NewVec2(-1, 5))
		require.False(t, ok)
	})

	t.Run("degenerate triangle is rejected", func(t *testing.T) {
		_, ok := Barycentric(a, NewVec2(1, 0), NewVec2(2, 0), NewVec2(1, 0))
		require.False(t, ok)
	})

	t.Run("interpolation is linear", func(t *testing.T) {
		// heights form the plane z = x + 2y
		heights := [3]float64{0, 10, 20}

		bc, ok := Barycentric(a, b, c, NewVec2(4, 3))
		require.True(t, ok)
		require.True(t, scalar.EqualWithinAbs(bc.Interpolate(heights), 10, 1e-9))
	})
}
