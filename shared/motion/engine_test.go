package motion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/automoto/burrow/config"
	"github.com/automoto/burrow/shared/floorgraph"
	"github.com/automoto/burrow/shared/gamemath"
)

func newEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(config.DefaultMotion(), nil)
	require.NoError(t, err)
	return e
}

// flat builds n floors 100 wide side by side with their bottoms at y = 0.
func flat(n int) *floorgraph.Builder {
	b := floorgraph.NewBuilder()
	for i := 0; i < n; i++ {
		x := float64(i * 100)
		b.Add(floorgraph.NewFloor(x, 60, x+100, 60, x+100, 0, x, 0))
	}
	return b
}

func build(t *testing.T, b *floorgraph.Builder) *floorgraph.Graph {
	t.Helper()
	g, err := b.Build()
	require.NoError(t, err)
	return g
}

// runUntil advances until done reports true and returns the ticks spent.
func runUntil(t *testing.T, e *Engine, a *Agent, g *floorgraph.Graph, limit int, done func() bool) int {
	t.Helper()
	for tick := 1; tick <= limit; tick++ {
		require.NoError(t, e.Advance(a, g))
		if done() {
			return tick
		}
	}
	t.Fatalf("condition not reached in %d ticks", limit)
	return 0
}

func TestWalkConvergesAndSnaps(t *testing.T) {
	e := newEngine(t)
	g := build(t, flat(1))

	a := NewAgent(0, floorgraph.Position2{X: 30, Y: 20})
	require.NoError(t, a.SetIntent(WalkingLeft, GazeLeft))

	for i := 0; i < 9; i++ {
		require.NoError(t, e.Advance(&a, g))
	}
	assert.InDelta(t, 3.0, a.Position.X, 1e-9)
	assert.Equal(t, WalkingLeft, a.Action)

	require.NoError(t, e.Advance(&a, g))
	assert.Equal(t, floorgraph.Position2{X: 0, Y: 20}, a.Position, "tenth tick snaps onto the corner")
	assert.Equal(t, WalkingRight, a.Action)
	assert.Equal(t, GazeRight, a.Gaze)
	assert.Equal(t, floorgraph.FloorID(0), a.Floor)
}

func TestWalkNeverOvershoots(t *testing.T) {
	e := newEngine(t)
	g := build(t, flat(1))

	a := NewAgent(0, floorgraph.Position2{X: 50, Y: 20})
	require.NoError(t, a.SetIntent(WalkingRight, GazeRight))

	for i := 0; i < 17; i++ {
		require.NoError(t, e.Advance(&a, g))
		assert.LessOrEqual(t, a.Position.X, 100.0)
	}
	assert.Equal(t, 100.0, a.Position.X)
	assert.Equal(t, WalkingLeft, a.Action)
}

func TestWalkDeadEndFollowsGaze(t *testing.T) {
	tests := []struct {
		name       string
		x          float64
		action     ActionState
		gaze       Gaze
		wantAction ActionState
		wantGaze   Gaze
	}{
		{"walking right gazing left", 98, WalkingRight, GazeLeft, WalkingRight, GazeRight},
		{"walking left gazing right", 2, WalkingLeft, GazeRight, WalkingLeft, GazeLeft},
		{"walking right gazing right", 98, WalkingRight, GazeRight, WalkingLeft, GazeLeft},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEngine(t)
			g := build(t, flat(1))

			a := NewAgent(0, floorgraph.Position2{X: tt.x, Y: 20})
			require.NoError(t, a.SetIntent(tt.action, tt.gaze))
			require.NoError(t, e.Advance(&a, g))

			assert.Equal(t, tt.wantAction, a.Action)
			assert.Equal(t, tt.wantGaze, a.Gaze)
			assert.Equal(t, floorgraph.FloorID(0), a.Floor)
		})
	}
}

func TestWalkMismatchedIntentSettles(t *testing.T) {
	e := newEngine(t)
	g := build(t, flat(1))

	a := NewAgent(0, floorgraph.Position2{X: 50, Y: 20})
	require.NoError(t, a.SetIntent(WalkingRight, GazeLeft))

	for i := 0; i < 200; i++ {
		require.NoError(t, e.Advance(&a, g))
	}
	assert.Equal(t, a.Action, Walking(a.Gaze.Side()), "after the first dead end action and gaze agree")
}

func TestWalkCrossesChain(t *testing.T) {
	e := newEngine(t)
	g := build(t, flat(3).LinkWalking(0, 1).LinkWalking(1, 2))

	a := NewAgent(0, floorgraph.Position2{X: 50, Y: 20})
	require.NoError(t, a.SetIntent(WalkingRight, GazeRight))

	ticks := runUntil(t, e, &a, g, 100, func() bool { return a.Floor == 1 })
	assert.Equal(t, 17, ticks)
	assert.Equal(t, floorgraph.Position2{X: 100, Y: 20}, a.Position, "position is kept on crossing")
	assert.Equal(t, WalkingRight, a.Action)

	ticks = runUntil(t, e, &a, g, 100, func() bool { return a.Floor == 2 })
	assert.Equal(t, 34, ticks)

	ticks = runUntil(t, e, &a, g, 100, func() bool { return a.Action == WalkingLeft })
	assert.Equal(t, 34, ticks)
	assert.Equal(t, floorgraph.FloorID(2), a.Floor)
	assert.Equal(t, floorgraph.Position2{X: 300, Y: 20}, a.Position)
}

func TestThreeFloorChainScenario(t *testing.T) {
	e := newEngine(t)
	g := build(t, flat(3).LinkWalking(0, 1).LinkWalking(1, 2))

	a := NewAgent(1, floorgraph.Position2{X: 100, Y: 20})
	require.NoError(t, a.SetIntent(WalkingLeft, GazeLeft))

	require.NoError(t, e.Advance(&a, g))
	assert.Equal(t, floorgraph.FloorID(0), a.Floor, "already on the left edge, so the first tick crosses")

	ticks := runUntil(t, e, &a, g, 100, func() bool { return a.Action == WalkingRight })
	assert.Equal(t, 34, ticks)
	assert.Equal(t, floorgraph.FloorID(0), a.Floor)
	assert.Equal(t, GazeRight, a.Gaze)
	assert.Equal(t, floorgraph.Position2{X: 0, Y: 20}, a.Position)

	runUntil(t, e, &a, g, 100, func() bool { return a.Floor == 1 })
	runUntil(t, e, &a, g, 100, func() bool { return a.Floor == 2 })
	assert.Equal(t, WalkingRight, a.Action)
}

func TestWalkTunnelRoundTrip(t *testing.T) {
	e := newEngine(t)
	b := floorgraph.NewBuilder()
	f0 := b.Add(floorgraph.NewFloor(-640, 160, -100, 60, -100, 0, -640, 100))
	f1 := b.Add(floorgraph.NewFloor(-100, 60, 0, 60, 0, 0, -100, 0))
	f2 := b.Add(floorgraph.NewFloor(0, 60, 300, 160, 300, 100, 0, 0))
	f3 := b.Add(floorgraph.NewFloor(300, 160, 640, -140, 640, -200, 300, 100))
	g := build(t, b.LinkWalking(f0, f1).LinkWalking(f1, f2).LinkWalking(f2, f3))

	a := NewAgent(f0, floorgraph.Position2{X: -640, Y: 120})
	require.NoError(t, a.SetIntent(WalkingRight, GazeRight))

	var visited []floorgraph.FloorID
	last := a.Floor
	for tick := 0; tick < 2000 && len(visited) < 6; tick++ {
		require.NoError(t, e.Advance(&a, g))
		if a.Floor != last {
			visited = append(visited, a.Floor)
			last = a.Floor
		}
	}

	assert.Equal(t, []floorgraph.FloorID{f1, f2, f3, f2, f1, f0}, visited)
	assert.Equal(t, WalkingLeft, a.Action)
}

func TestDigFollowsDiggingNeighbors(t *testing.T) {
	e := newEngine(t)
	g := build(t, flat(2).LinkDigging(0, 1))

	a := NewAgent(0, floorgraph.Position2{X: 50, Y: 20})
	require.NoError(t, a.SetIntent(Digging, GazeRight))

	ticks := runUntil(t, e, &a, g, 100, func() bool { return a.Floor == 1 })
	assert.Equal(t, 25, ticks, "digging is slower than walking")

	ticks = runUntil(t, e, &a, g, 100, func() bool { return a.Gaze == GazeLeft })
	assert.Equal(t, 50, ticks)
	assert.Equal(t, Digging, a.Action, "a dead end only turns the digger around")
	assert.Equal(t, floorgraph.Position2{X: 200, Y: 20}, a.Position)

	ticks = runUntil(t, e, &a, g, 100, func() bool { return a.Floor == 0 })
	assert.Equal(t, 50, ticks)
}

func TestDigIgnoresWalkingNeighbors(t *testing.T) {
	e := newEngine(t)
	g := build(t, flat(2).LinkWalking(0, 1))

	a := NewAgent(0, floorgraph.Position2{X: 96, Y: 20})
	require.NoError(t, a.SetIntent(Digging, GazeRight))

	for i := 0; i < 2; i++ {
		require.NoError(t, e.Advance(&a, g))
	}
	assert.Equal(t, floorgraph.FloorID(0), a.Floor)
	assert.Equal(t, GazeLeft, a.Gaze)
}

func TestJumpFlightLandsOnTarget(t *testing.T) {
	e := newEngine(t)
	b := floorgraph.NewBuilder()
	from := b.Add(floorgraph.NewFloor(0, 60, 100, 60, 100, 0, 0, 0))
	to := b.Add(floorgraph.NewFloor(200, 110, 300, 110, 300, 50, 200, 50))
	g := build(t, b.AddJump(from, to, 90))

	a := NewAgent(from, floorgraph.Position2{X: 90, Y: 20})
	require.NoError(t, a.SetIntent(WalkingRight, GazeRight))
	require.NoError(t, a.SetAction(Falling))
	assert.Equal(t, WalkingRight, a.LaunchedFrom)

	require.NoError(t, e.Advance(&a, g))
	require.True(t, a.Airborne())
	assert.Equal(t, 37, a.Flight.Ticks)
	assert.Equal(t, e.jump, a.Flight.Arc, "landing above the launch point is a jump")
	assert.Equal(t, from, a.Floor, "floor changes only on landing")

	for a.Flight.Elapsed() < 18 {
		require.NoError(t, e.Advance(&a, g))
	}
	p := 18.0 / 37.0
	baseline := gamemath.Lerp(20, 70, p)
	assert.InDelta(t, gamemath.Lerp(90, 200, p), a.Position.X, 1e-3)
	assert.Greater(t, a.Position.Y, baseline)

	for a.Airborne() {
		require.NoError(t, e.Advance(&a, g))
	}
	assert.Equal(t, floorgraph.Position2{X: 200, Y: 70}, a.Position)
	assert.Equal(t, to, a.Floor)
	assert.Equal(t, Idle, a.Action)
}

func TestFlightCloneIsIndependent(t *testing.T) {
	e := newEngine(t)
	b := floorgraph.NewBuilder()
	from := b.Add(floorgraph.NewFloor(0, 60, 100, 60, 100, 0, 0, 0))
	to := b.Add(floorgraph.NewFloor(200, 110, 300, 110, 300, 50, 200, 50))
	g := build(t, b.AddJump(from, to, 90))

	a := NewAgent(from, floorgraph.Position2{X: 90, Y: 20})
	require.NoError(t, a.SetAction(Falling))
	require.NoError(t, e.Advance(&a, g))
	require.True(t, a.Airborne())

	c := a.Flight.Clone()
	start := c.Elapsed()

	require.NoError(t, e.Advance(&a, g))
	next := a.Position
	for i := 0; i < 4; i++ {
		require.NoError(t, e.Advance(&a, g))
	}
	assert.Equal(t, start+5, a.Flight.Elapsed())
	assert.Equal(t, start, c.Elapsed())

	pos, landed := c.step()
	assert.False(t, landed)
	assert.Equal(t, next, pos, "the copy resumes from where it was taken")
}

func TestFlightArcSelection(t *testing.T) {
	cfg := config.DefaultMotion()
	cfg.Fall.Peak = 20
	cfg.DigFall.Peak = 10
	e, err := NewEngine(cfg, nil)
	require.NoError(t, err)

	b := floorgraph.NewBuilder()
	high := b.Add(floorgraph.NewFloor(0, 160, 100, 160, 100, 100, 0, 100))
	low := b.Add(floorgraph.NewFloor(100, 60, 200, 60, 200, 0, 100, 0))
	g := build(t, b.AddJump(high, low, 50))

	a := NewAgent(high, floorgraph.Position2{X: 50, Y: 120})
	require.NoError(t, a.SetAction(Falling))
	require.NoError(t, e.Advance(&a, g))
	require.True(t, a.Airborne())
	assert.Equal(t, 20.0, a.Flight.Arc.Peak, "landing below the launch point is a fall")
	assert.Equal(t, floorgraph.Position2{X: 100, Y: 20}, a.Flight.To)

	a = NewAgent(high, floorgraph.Position2{X: 50, Y: 120})
	require.NoError(t, a.SetAction(Digging))
	require.NoError(t, a.SetAction(Falling))
	require.NoError(t, e.Advance(&a, g))
	require.True(t, a.Airborne())
	assert.Equal(t, 10.0, a.Flight.Arc.Peak)
}

func TestStraightDropTakesOneTick(t *testing.T) {
	e := newEngine(t)
	b := floorgraph.NewBuilder()
	high := b.Add(floorgraph.NewFloor(0, 160, 100, 160, 100, 100, 0, 100))
	low := b.Add(floorgraph.NewFloor(0, 60, 100, 60, 100, 0, 0, 0))
	g := build(t, b.AddJump(high, low, 50))

	a := NewAgent(high, floorgraph.Position2{X: 50, Y: 120})
	require.NoError(t, a.SetAction(Falling))
	require.NoError(t, e.Advance(&a, g))

	assert.False(t, a.Airborne())
	assert.Equal(t, low, a.Floor)
	assert.Equal(t, floorgraph.Position2{X: 50, Y: 20}, a.Position)
	assert.Equal(t, Idle, a.Action)
}

func TestFallWithoutRouteLandsInPlace(t *testing.T) {
	e := newEngine(t)
	g := build(t, flat(2).AddJump(0, 1, 10))

	a := NewAgent(0, floorgraph.Position2{X: 60, Y: 20})
	require.NoError(t, a.SetAction(Falling))
	require.NoError(t, e.Advance(&a, g))

	assert.Equal(t, Idle, a.Action)
	assert.False(t, a.Airborne())
	assert.Equal(t, floorgraph.Position2{X: 60, Y: 20}, a.Position)
	assert.Equal(t, floorgraph.FloorID(0), a.Floor)
}

func TestIdleDoesNotMove(t *testing.T) {
	e := newEngine(t)
	g := build(t, flat(1))

	a := NewAgent(0, floorgraph.Position2{X: 42, Y: 20})
	for i := 0; i < 5; i++ {
		require.NoError(t, e.Advance(&a, g))
	}
	assert.Equal(t, floorgraph.Position2{X: 42, Y: 20}, a.Position)
}

func TestAdvanceInvalidFloor(t *testing.T) {
	e := newEngine(t)
	g := build(t, flat(2))

	a := NewAgent(7, floorgraph.Position2{})
	err := e.Advance(&a, g)
	assert.ErrorIs(t, err, floorgraph.ErrInvalidFloorID)
}

func TestAdvanceAllStopsAtFirstError(t *testing.T) {
	e := newEngine(t)
	g := build(t, flat(1))

	first := NewAgent(0, floorgraph.Position2{X: 50, Y: 20})
	broken := NewAgent(3, floorgraph.Position2{X: 50, Y: 20})
	last := NewAgent(0, floorgraph.Position2{X: 50, Y: 20})
	for _, a := range []*Agent{&first, &broken, &last} {
		a.Action = WalkingRight
	}

	err := e.AdvanceAll([]*Agent{&first, &broken, &last}, g)
	assert.ErrorIs(t, err, floorgraph.ErrInvalidFloorID)
	assert.Equal(t, 53.0, first.Position.X)
	assert.Equal(t, 50.0, last.Position.X)
}

func TestIntentValidation(t *testing.T) {
	a := NewAgent(0, floorgraph.Position2{})

	assert.ErrorIs(t, a.SetIntent(ActionState(9), GazeRight), ErrInvalidAction)
	assert.ErrorIs(t, a.SetIntent(WalkingRight, Gaze(4)), ErrInvalidGaze)
	assert.ErrorIs(t, a.SetAction(ActionState(-1)), ErrInvalidAction)
	assert.ErrorIs(t, a.SetGaze(Gaze(-2)), ErrInvalidGaze)
	assert.Equal(t, Idle, a.Action)
	assert.Equal(t, GazeLeft, a.Gaze)

	require.NoError(t, a.SetIntent(Digging, GazeRight))
	assert.Equal(t, Digging, a.Action)
	assert.Equal(t, GazeRight, a.Gaze)
}

func TestAdvanceRejectsCorruptAction(t *testing.T) {
	e := newEngine(t)
	g := build(t, flat(1))

	a := NewAgent(0, floorgraph.Position2{})
	a.Action = ActionState(42)
	assert.ErrorIs(t, e.Advance(&a, g), ErrInvalidAction)
}

func TestNewEngineValidatesConfig(t *testing.T) {
	cfg := config.DefaultMotion()
	cfg.WalkingSpeed = 0
	_, err := NewEngine(cfg, nil)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestStrings(t *testing.T) {
	assert.Equal(t, "walking_left", WalkingLeft.String())
	assert.Equal(t, "action(9)", ActionState(9).String())
	assert.Equal(t, "right", GazeRight.String())
	assert.Equal(t, floorgraph.Left, GazeLeft.Side())
}
