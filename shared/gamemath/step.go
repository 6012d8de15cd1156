package gamemath

import "math"

// StepToward moves (x, y) toward (tx, ty) by speed. When the remaining distance is at
// most speed the result snaps exactly onto the target and arrived is true.
func StepToward(x, y, tx, ty, speed float64) (nx, ny float64, arrived bool) {
	dist := Distance(x, y, tx, ty)
	if dist <= speed {
		return tx, ty, true
	}
	return x + (tx-x)/dist*speed, y + (ty-y)/dist*speed, false
}

// Distance returns the euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

// Lerp interpolates between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// TicksToCover returns how many fixed steps of speed are needed to cover dist.
func TicksToCover(dist, speed float64) int {
	if speed <= 0 {
		return 0
	}
	return int(math.Ceil(dist / speed))
}
