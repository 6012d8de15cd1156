package components

import (
	"github.com/yohamta/donburi"

	cfg "github.com/automoto/burrow/config"
	"github.com/automoto/burrow/shared/floorgraph"
)

type PatrolData struct {
	Waypoints  []floorgraph.FloorID
	Next       int // index into Waypoints
	Difficulty cfg.BotDifficulty

	ReplanTimer int // ticks until the current path is searched again
	DwellTimer  int // ticks left idling on a reached waypoint
	Skipped     int // unreachable waypoints skipped so far
}

// Goal returns the waypoint the bot is heading to.
func (p *PatrolData) Goal() (floorgraph.FloorID, bool) {
	if len(p.Waypoints) == 0 {
		return floorgraph.NoFloor, false
	}
	return p.Waypoints[p.Next%len(p.Waypoints)], true
}

// Advance moves on to the following waypoint, wrapping around.
func (p *PatrolData) Advance() {
	if len(p.Waypoints) == 0 {
		return
	}
	p.Next = (p.Next + 1) % len(p.Waypoints)
}

var Patrol = donburi.NewComponentType[PatrolData]()
