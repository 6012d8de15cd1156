package floorgraph

import "math"

// BottomCorner returns the bottom-left or bottom-right corner.
func (f Floor) BottomCorner(side Side) Position2 {
	if side == Left {
		return f.BottomLeft
	}
	return f.BottomRight
}

// BottomYAt interpolates the bottom edge at x. x is clamped to the edge.
func (f Floor) BottomYAt(x float64) float64 {
	l, r := f.BottomLeft, f.BottomRight
	if r.X == l.X {
		return l.Y
	}
	t := (x - l.X) / (r.X - l.X)
	t = math.Max(0, math.Min(1, t))
	return l.Y + (r.Y-l.Y)*t
}

// ClampX keeps x between the bottom corners.
func (f Floor) ClampX(x float64) float64 {
	lo := math.Min(f.BottomLeft.X, f.BottomRight.X)
	hi := math.Max(f.BottomLeft.X, f.BottomRight.X)
	return math.Max(lo, math.Min(hi, x))
}

// Bounds returns the axis-aligned bounding box of the quad.
func (f Floor) Bounds() (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, p := range f.corners() {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return minX, minY, maxX, maxY
}

// Contains reports whether p lies inside the quad or on its border.
func (f Floor) Contains(p Position2) bool {
	c := f.corners()
	var pos, neg bool
	for i := range c {
		a, b := c[i], c[(i+1)%len(c)]
		cross := (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
		if cross > 0 {
			pos = true
		} else if cross < 0 {
			neg = true
		}
		if pos && neg {
			return false
		}
	}
	return true
}

func (f Floor) corners() [4]Position2 {
	return [4]Position2{f.TopLeft, f.TopRight, f.BottomRight, f.BottomLeft}
}
