package geo

import "math"

// Bbox is an axis-aligned bounding box. Min.X <= Max.X and Min.Y <= Max.Y
// always hold.
type Bbox struct {
	Min Vec2
	Max Vec2
}

// NewBbox returns the degenerate box containing only p.
func NewBbox(p Vec2) Bbox {
	return Bbox{Min: p, Max: p}
}

// Expand grows the box so that it contains p. Expanding with an already
// contained point is a no-op; boxes never shrink.
func (b *Bbox) Expand(p Vec2) {
	b.Min.X = math.Min(b.Min.X, p.X)
	b.Min.Y = math.Min(b.Min.Y, p.Y)

	b.Max.X = math.Max(b.Max.X, p.X)
	b.Max.Y = math.Max(b.Max.Y, p.Y)
}

// Contains reports whether p is inside the box, boundary included.
func (b Bbox) Contains(p Vec2) bool {
	return b.Min.X <= p.X && b.Min.Y <= p.Y && b.Max.X >= p.X && b.Max.Y >= p.Y
}

func (b Bbox) Center() Vec2 {
	return b.Min.Add(b.Max).DivN(2)
}

// Split quarters the box around pivot, which must be contained in the box.
// The quarters tile the box, only share boundary edges and are ordered
// bottom-left, bottom-right, top-left, top-right.
func (b Bbox) Split(pivot Vec2) [4]Bbox {
	return [4]Bbox{
		{Min: b.Min, Max: pivot},
		{Min: Vec2{pivot.X, b.Min.Y}, Max: Vec2{b.Max.X, pivot.Y}},
		{Min: Vec2{b.Min.X, pivot.Y}, Max: Vec2{pivot.X, b.Max.Y}},
		{Min: pivot, Max: b.Max},
	}
}

// Pad returns the box grown by margin on every side.
func (b Bbox) Pad(margin float64) Bbox {
	return Bbox{
		Min: b.Min.SubN(margin),
		Max: b.Max.AddN(margin),
	}
}
