package motion

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/automoto/burrow/config"
	"github.com/automoto/burrow/logging"
	"github.com/automoto/burrow/shared/floorgraph"
	"github.com/automoto/burrow/shared/gamemath"
)

// Engine applies one tick of motion to agents. It holds no per-agent state, so one
// engine serves a whole world.
type Engine struct {
	cfg config.MotionConfig
	log *zap.Logger

	jump    gamemath.Arc
	fall    gamemath.Arc
	digFall gamemath.Arc
}

func NewEngine(cfg config.MotionConfig, log *zap.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{
		cfg:     cfg,
		log:     logging.OrNop(log).Named("motion"),
		jump:    gamemath.JumpArc(cfg.Jump.Peak, cfg.Jump.Span),
		fall:    gamemath.FallArc(cfg.Fall.Peak, cfg.Fall.Span),
		digFall: gamemath.DigFallArc(cfg.DigFall.Peak, cfg.DigFall.Span),
	}, nil
}

// Config returns the motion values the engine was built with.
func (e *Engine) Config() config.MotionConfig {
	return e.cfg
}

// Advance moves a by one tick. The only error is an agent standing on a floor the
// graph does not know, which the caller must treat as fatal.
func (e *Engine) Advance(a *Agent, g *floorgraph.Graph) error {
	floor, err := g.FloorAt(a.Floor)
	if err != nil {
		return fmt.Errorf("advance agent: %w", err)
	}

	switch a.Action {
	case Idle:
		return nil
	case WalkingLeft:
		e.walk(a, g, floor, floorgraph.Left)
	case WalkingRight:
		e.walk(a, g, floor, floorgraph.Right)
	case Digging:
		e.dig(a, g, floor)
	case Falling:
		return e.fly(a, g)
	default:
		return fmt.Errorf("advance agent: %w: %d", ErrInvalidAction, int(a.Action))
	}
	return nil
}

// AdvanceAll advances agents in slice order and stops at the first failure.
func (e *Engine) AdvanceAll(agents []*Agent, g *floorgraph.Graph) error {
	for i, a := range agents {
		if err := e.Advance(a, g); err != nil {
			return fmt.Errorf("agent %d: %w", i, err)
		}
	}
	return nil
}

// standingPoint is where the agent's centre sits when its feet are on p.
func (e *Engine) standingPoint(p floorgraph.Position2) floorgraph.Position2 {
	return floorgraph.Position2{X: p.X, Y: p.Y + e.cfg.AgentHeight/2}
}

// approach steps the agent toward target and reports arrival.
func approach(a *Agent, target floorgraph.Position2, speed float64) bool {
	x, y, arrived := gamemath.StepToward(a.Position.X, a.Position.Y, target.X, target.Y, speed)
	a.Position = floorgraph.Position2{X: x, Y: y}
	return arrived
}

func (e *Engine) walk(a *Agent, g *floorgraph.Graph, floor floorgraph.Floor, side floorgraph.Side) {
	target := e.standingPoint(floor.BottomCorner(side))
	if !approach(a, target, e.cfg.WalkingSpeed) {
		return
	}

	cross := a.Gaze.Side()
	if next, ok := g.WalkingNeighbor(a.Floor, cross); ok {
		e.log.Debug("walked onto floor",
			zap.Int("from", int(a.Floor)),
			zap.Int("to", int(next)),
			zap.Stringer("side", cross))
		a.Floor = next
		return
	}

	// Dead end: turn toward the opposite of the gaze. Action and gaze agree afterwards.
	back := cross.Opposite()
	a.Action = Walking(back)
	a.Gaze = GazeToward(back)
	e.log.Debug("walking dead end",
		zap.Int("floor", int(a.Floor)),
		zap.Stringer("action", a.Action))
}

func (e *Engine) dig(a *Agent, g *floorgraph.Graph, floor floorgraph.Floor) {
	side := a.Gaze.Side()
	target := e.standingPoint(floor.BottomCorner(side))
	if !approach(a, target, e.cfg.DiggingSpeed) {
		return
	}

	if next, ok := g.DiggingNeighbor(a.Floor, side); ok {
		e.log.Debug("dug into floor",
			zap.Int("from", int(a.Floor)),
			zap.Int("to", int(next)),
			zap.Stringer("side", side))
		a.Floor = next
		return
	}

	a.Gaze = GazeToward(side.Opposite())
	e.log.Debug("digging dead end", zap.Int("floor", int(a.Floor)))
}

func (e *Engine) fly(a *Agent, g *floorgraph.Graph) error {
	if a.Flight == nil {
		jr, ok := g.NearestJump(a.Floor, a.Position.X, e.cfg.WalkingSpeed)
		if !ok {
			a.Action = Idle
			a.LaunchedFrom = Idle
			e.log.Debug("no jump route, landing in place", zap.Int("floor", int(a.Floor)))
			return nil
		}
		target, err := g.FloorAt(jr.Target)
		if err != nil {
			return fmt.Errorf("jump route: %w", err)
		}
		x := target.ClampX(a.Position.X)
		landing := e.standingPoint(floorgraph.Position2{X: x, Y: target.BottomYAt(x)})
		a.Flight = newFlight(jr.Target, a.Position, landing, e.arcFor(a, landing), e.cfg.WalkingSpeed)
		e.log.Debug("launched",
			zap.Int("from", int(a.Floor)),
			zap.Int("to", int(jr.Target)),
			zap.Int("ticks", a.Flight.Ticks))
	}

	pos, landed := a.Flight.step()
	a.Position = pos
	if !landed {
		return nil
	}

	a.Floor = a.Flight.Target
	a.Action = Idle
	a.LaunchedFrom = Idle
	a.Flight = nil
	e.log.Debug("landed", zap.Int("floor", int(a.Floor)))
	return nil
}

func (e *Engine) arcFor(a *Agent, landing floorgraph.Position2) gamemath.Arc {
	switch {
	case a.LaunchedFrom == Digging:
		return e.digFall
	case landing.Y < a.Position.Y:
		return e.fall
	default:
		return e.jump
	}
}
