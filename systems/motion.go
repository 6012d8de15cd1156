package systems

import (
	"fmt"

	"github.com/yohamta/donburi/ecs"

	"github.com/automoto/burrow/components"
	"github.com/automoto/burrow/tags"
)

// UpdateMotion advances every agent by one tick in spawn order. A failure halts the
// simulation; agents after the failing one keep their state for this tick.
func UpdateMotion(e *ecs.ECS) {
	terrain := GetTerrain(e)
	if terrain == nil {
		return
	}

	for _, entry := range orderedEntries(e, tags.Agent) {
		agent := components.Agent.Get(entry)
		if err := terrain.Engine.Advance(agent, terrain.Graph); err != nil {
			id := components.AgentID.Get(entry).ID
			Halt(e, fmt.Errorf("agent %s: %w", id, err))
			return
		}
	}
}

// UpdateTick counts completed ticks.
func UpdateTick(e *ecs.ECS) {
	if status := GetStatus(e); status != nil {
		status.Tick++
	}
}
