package archetypes

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/automoto/burrow/components"
	"github.com/automoto/burrow/tags"
)

const layerDefault ecs.LayerID = 0

var (
	Agent = newArchetype(
		tags.Agent,
		components.AgentID,
		components.Agent,
	)
	Bot = newArchetype(
		tags.Agent,
		tags.Bot,
		components.AgentID,
		components.Agent,
		components.Patrol,
	)
	Terrain = newArchetype(
		components.Terrain,
	)
	Space = newArchetype(
		components.Space,
	)
	Status = newArchetype(
		components.Status,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(ecs *ecs.ECS, cs ...donburi.IComponentType) *donburi.Entry {
	e := ecs.World.Entry(ecs.Create(
		layerDefault,
		append(a.components, cs...)...,
	))
	return e
}
