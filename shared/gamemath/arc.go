package gamemath

// Arc is a downward parabola reaching Peak at the centre of a horizontal Span and zero
// at both ends. Jumps, falls and dig-falls all use this shape.
type Arc struct {
	Peak float64
	Span float64
}

// HeightOffset returns the vertical offset at x, measured from the centre of the span.
func (a Arc) HeightOffset(x float64) float64 {
	if a.Span == 0 {
		return 0
	}
	return -(4*a.Peak/(a.Span*a.Span))*x*x + a.Peak
}

// OffsetAt returns the offset at progress t in [0, 1] along the span.
func (a Arc) OffsetAt(t float64) float64 {
	return a.HeightOffset((t - 0.5) * a.Span)
}

// JumpArc is used when an agent launches from walking or standing.
func JumpArc(peak, span float64) Arc {
	return Arc{Peak: peak, Span: span}
}

// FallArc is used when the landing floor lies below the launch point.
func FallArc(peak, span float64) Arc {
	return Arc{Peak: peak, Span: span}
}

// DigFallArc is used when an agent drops out of a tunnel it was digging.
func DigFallArc(peak, span float64) Arc {
	return Arc{Peak: peak, Span: span}
}
