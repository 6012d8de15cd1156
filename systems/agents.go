package systems

import (
	"sort"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"github.com/yohamta/donburi/filter"
	"go.uber.org/zap"

	"github.com/automoto/burrow/components"
)

// orderedEntries returns every entry carrying tag, sorted by spawn order. Archetype
// storage does not keep that order once bots and plain agents are mixed.
func orderedEntries(e *ecs.ECS, tag donburi.IComponentType) []*donburi.Entry {
	var entries []*donburi.Entry
	donburi.NewQuery(filter.Contains(tag)).Each(e.World, func(entry *donburi.Entry) {
		entries = append(entries, entry)
	})
	sort.Slice(entries, func(i, j int) bool {
		return components.AgentID.Get(entries[i]).Seq < components.AgentID.Get(entries[j]).Seq
	})
	return entries
}

// GetStatus returns the simulation singleton, or nil before it is created.
func GetStatus(e *ecs.ECS) *components.StatusData {
	entry, ok := components.Status.First(e.World)
	if !ok {
		return nil
	}
	return components.Status.Get(entry)
}

// GetTerrain returns the terrain singleton, or nil before it is created.
func GetTerrain(e *ecs.ECS) *components.TerrainData {
	entry, ok := components.Terrain.First(e.World)
	if !ok {
		return nil
	}
	return components.Terrain.Get(entry)
}

// Halt records the first fatal error and stops every wrapped system.
func Halt(e *ecs.ECS, err error) {
	status := GetStatus(e)
	if status == nil || status.Err != nil {
		return
	}
	status.Err = err
	status.Log.Error("simulation halted", zap.Error(err), zap.Uint64("tick", status.Tick))
}

// WithHaltCheck wraps a system to skip execution once the simulation has halted.
func WithHaltCheck(system ecs.System) ecs.System {
	return func(e *ecs.ECS) {
		if status := GetStatus(e); status != nil && status.Halted() {
			return
		}
		system(e)
	}
}
