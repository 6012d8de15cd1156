// Package motion advances agents along the floor graph one fixed tick at a time.
package motion

import (
	"errors"
	"fmt"

	"github.com/automoto/burrow/shared/floorgraph"
)

var (
	ErrInvalidAction = errors.New("invalid action")
	ErrInvalidGaze   = errors.New("invalid gaze")
)

// ActionState is the behavior mode that picks the motion target.
type ActionState int

const (
	Idle ActionState = iota
	WalkingLeft
	WalkingRight
	Falling
	Digging
)

func (a ActionState) Valid() bool {
	return a >= Idle && a <= Digging
}

func (a ActionState) String() string {
	switch a {
	case Idle:
		return "idle"
	case WalkingLeft:
		return "walking_left"
	case WalkingRight:
		return "walking_right"
	case Falling:
		return "falling"
	case Digging:
		return "digging"
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// Walking returns the walking action heading toward side.
func Walking(side floorgraph.Side) ActionState {
	if side == floorgraph.Left {
		return WalkingLeft
	}
	return WalkingRight
}

// Gaze is the direction the agent faces.
type Gaze int

const (
	GazeLeft Gaze = iota
	GazeRight
)

func (g Gaze) Valid() bool {
	return g == GazeLeft || g == GazeRight
}

func (g Gaze) Side() floorgraph.Side {
	if g == GazeLeft {
		return floorgraph.Left
	}
	return floorgraph.Right
}

func (g Gaze) String() string {
	switch g {
	case GazeLeft:
		return "left"
	case GazeRight:
		return "right"
	}
	return fmt.Sprintf("gaze(%d)", int(g))
}

// GazeToward returns the gaze facing side.
func GazeToward(side floorgraph.Side) Gaze {
	if side == floorgraph.Left {
		return GazeLeft
	}
	return GazeRight
}

// Agent is the moving entity. Position is always read relative to Floor: it lies on or
// inside that floor, never on another one.
type Agent struct {
	Position floorgraph.Position2
	Floor    floorgraph.FloorID
	Gaze     Gaze
	Action   ActionState

	// Path is an optional precomputed route, filled by a steering policy.
	Path []floorgraph.FloorID

	// Flight is set while the agent is airborne.
	Flight *Flight
	// LaunchedFrom is the ground action the agent had when it started falling.
	LaunchedFrom ActionState
}

// NewAgent places an idle agent facing left.
func NewAgent(floor floorgraph.FloorID, pos floorgraph.Position2) Agent {
	return Agent{
		Position: pos,
		Floor:    floor,
		Gaze:     GazeLeft,
		Action:   Idle,
	}
}

// SetIntent sets action and gaze together.
func (a *Agent) SetIntent(action ActionState, gaze Gaze) error {
	if !gaze.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidGaze, int(gaze))
	}
	if err := a.SetAction(action); err != nil {
		return err
	}
	a.Gaze = gaze
	return nil
}

// SetAction changes the action. Switching into Falling from the ground remembers the
// previous action so the right trajectory can be picked.
func (a *Agent) SetAction(action ActionState) error {
	if !action.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidAction, int(action))
	}
	if action == Falling && a.Action != Falling {
		a.LaunchedFrom = a.Action
	}
	if action != Falling {
		a.Flight = nil
	}
	a.Action = action
	return nil
}

func (a *Agent) SetGaze(gaze Gaze) error {
	if !gaze.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidGaze, int(gaze))
	}
	a.Gaze = gaze
	return nil
}

// Airborne reports whether a flight is in progress.
func (a *Agent) Airborne() bool {
	return a.Flight != nil
}
