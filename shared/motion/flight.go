package motion

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/automoto/burrow/shared/floorgraph"
	"github.com/automoto/burrow/shared/gamemath"
)

// Flight is an airborne interval between a launch point and a landing point on the
// target floor. Progress runs from 0 to 1 over a whole number of ticks.
type Flight struct {
	Target  floorgraph.FloorID
	From    floorgraph.Position2
	To      floorgraph.Position2
	Arc     gamemath.Arc
	Ticks   int
	elapsed int

	progress *gween.Tween
}

func newFlight(target floorgraph.FloorID, from, to floorgraph.Position2, arc gamemath.Arc, speed float64) *Flight {
	ticks := gamemath.TicksToCover(math.Abs(to.X-from.X), speed)
	if ticks < 1 {
		ticks = 1
	}
	return &Flight{
		Target:   target,
		From:     from,
		To:       to,
		Arc:      arc,
		Ticks:    ticks,
		progress: gween.New(0, 1, float32(ticks), ease.Linear),
	}
}

// step advances the flight by one tick and returns the new position.
func (f *Flight) step() (pos floorgraph.Position2, landed bool) {
	t, done := f.progress.Update(1)
	f.elapsed++
	if done || f.elapsed >= f.Ticks {
		return f.To, true
	}
	p := float64(t)
	return floorgraph.Position2{
		X: gamemath.Lerp(f.From.X, f.To.X, p),
		Y: gamemath.Lerp(f.From.Y, f.To.Y, p) + f.Arc.OffsetAt(p),
	}, false
}

// Clone returns an independent copy. Stepping either flight leaves the other alone.
func (f *Flight) Clone() *Flight {
	c := *f
	if f.progress != nil {
		progress := *f.progress
		c.progress = &progress
	}
	return &c
}

// Elapsed returns the number of ticks already flown.
func (f *Flight) Elapsed() int {
	return f.elapsed
}
