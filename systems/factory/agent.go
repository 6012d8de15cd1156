package factory

import (
	"github.com/google/uuid"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/automoto/burrow/archetypes"
	"github.com/automoto/burrow/components"
	cfg "github.com/automoto/burrow/config"
	"github.com/automoto/burrow/shared/floorgraph"
	"github.com/automoto/burrow/shared/motion"
)

// CreateAgent spawns an idle agent on floor at pos. seq fixes its update order.
func CreateAgent(ecs *ecs.ECS, seq int, floor floorgraph.FloorID, pos floorgraph.Position2) *donburi.Entry {
	agent := archetypes.Agent.Spawn(ecs)
	setAgent(agent, seq, floor, pos)
	return agent
}

// CreateBot spawns an agent that patrols between waypoints.
func CreateBot(ecs *ecs.ECS, seq int, floor floorgraph.FloorID, pos floorgraph.Position2,
	waypoints []floorgraph.FloorID, difficulty cfg.BotDifficulty) *donburi.Entry {
	bot := archetypes.Bot.Spawn(ecs)
	setAgent(bot, seq, floor, pos)
	components.Patrol.SetValue(bot, NewPatrol(waypoints, difficulty))
	return bot
}

// NewPatrol builds patrol state starting at the first waypoint.
func NewPatrol(waypoints []floorgraph.FloorID, difficulty cfg.BotDifficulty) components.PatrolData {
	return components.PatrolData{
		Waypoints:  append([]floorgraph.FloorID(nil), waypoints...),
		Difficulty: difficulty,
	}
}

func setAgent(e *donburi.Entry, seq int, floor floorgraph.FloorID, pos floorgraph.Position2) {
	components.AgentID.SetValue(e, components.AgentIDData{
		ID:  uuid.New(),
		Seq: seq,
	})
	components.Agent.SetValue(e, motion.NewAgent(floor, pos))
}
