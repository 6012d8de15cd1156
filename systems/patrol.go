package systems

import (
	"fmt"
	"math"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"

	"github.com/automoto/burrow/components"
	cfg "github.com/automoto/burrow/config"
	"github.com/automoto/burrow/shared/floorgraph"
	"github.com/automoto/burrow/shared/motion"
	"github.com/automoto/burrow/shared/pathsearch"
	"github.com/automoto/burrow/tags"
)

// UpdatePatrol steers bots between their waypoint floors. Paths are searched in one
// batch per tick, then each bot turns the next hop of its path into an intent.
// Must run BEFORE UpdateMotion.
func UpdatePatrol(e *ecs.ECS) {
	terrain := GetTerrain(e)
	status := GetStatus(e)
	if terrain == nil || status == nil {
		return
	}
	log := status.Log.Named("patrol")
	speed := terrain.Engine.Config().WalkingSpeed

	var (
		planning []*donburi.Entry
		queries  []pathsearch.Query
	)
	bots := orderedEntries(e, tags.Bot)
	for _, entry := range bots {
		agent := components.Agent.Get(entry)
		patrol := components.Patrol.Get(entry)
		if !prepareBot(agent, patrol, terrain.Graph, log) {
			continue
		}
		goal, _ := patrol.Goal()
		planning = append(planning, entry)
		queries = append(queries, pathsearch.Query{Start: agent.Floor, Goal: goal})
	}

	if len(queries) > 0 {
		results, err := pathsearch.FindPaths(terrain.Graph, queries, cfg.Sim.PlanWorkers)
		if err != nil {
			Halt(e, fmt.Errorf("plan patrol: %w", err))
			return
		}
		for i, res := range results {
			applyPlan(planning[i], res, log)
		}
	}

	for _, entry := range bots {
		agent := components.Agent.Get(entry)
		if len(agent.Path) == 0 || agent.Action == motion.Falling {
			continue
		}
		if err := steer(agent, terrain.Graph, speed); err != nil {
			Halt(e, fmt.Errorf("steer bot %s: %w", components.AgentID.Get(entry).ID, err))
			return
		}
	}
}

// prepareBot updates timers and path bookkeeping and reports whether the bot needs a
// fresh path search this tick.
func prepareBot(agent *motion.Agent, patrol *components.PatrolData, g *floorgraph.Graph, log *zap.Logger) bool {
	goal, ok := patrol.Goal()
	if !ok || agent.Action == motion.Falling {
		return false
	}

	if patrol.DwellTimer > 0 {
		patrol.DwellTimer--
		return false
	}

	if agent.Floor == goal {
		log.Debug("waypoint reached", zap.Int("floor", int(goal)))
		agent.Path = nil
		_ = agent.SetAction(motion.Idle)
		patrol.Advance()
		patrol.ReplanTimer = 0
		patrol.DwellTimer = cfg.Bot.ForDifficulty(patrol.Difficulty).DwellTicks
		return false
	}

	if len(agent.Path) > 0 && agent.Path[0] == agent.Floor {
		agent.Path = agent.Path[1:]
	}
	if patrol.ReplanTimer > 0 {
		patrol.ReplanTimer--
	}

	if len(agent.Path) == 0 || patrol.ReplanTimer == 0 {
		return true
	}
	if _, ok := g.EdgeBetween(agent.Floor, agent.Path[0]); !ok {
		// Pushed off the planned route.
		return true
	}
	return false
}

func applyPlan(entry *donburi.Entry, res pathsearch.Result, log *zap.Logger) {
	agent := components.Agent.Get(entry)
	patrol := components.Patrol.Get(entry)

	if !res.Found {
		log.Debug("waypoint unreachable, skipping",
			zap.Int("from", int(res.Query.Start)),
			zap.Int("to", int(res.Query.Goal)))
		agent.Path = nil
		_ = agent.SetAction(motion.Idle)
		patrol.Advance()
		patrol.Skipped++
		patrol.DwellTimer = cfg.Bot.ForDifficulty(patrol.Difficulty).DwellTicks
		return
	}

	agent.Path = res.Path
	patrol.ReplanTimer = cfg.Bot.ForDifficulty(patrol.Difficulty).ReactionDelay
}

// steer sets the intent that carries the agent over the edge to the next hop.
func steer(agent *motion.Agent, g *floorgraph.Graph, walkingSpeed float64) error {
	edge, ok := g.EdgeBetween(agent.Floor, agent.Path[0])
	if !ok {
		agent.Path = nil
		return agent.SetAction(motion.Idle)
	}

	switch edge.Kind {
	case floorgraph.Walk:
		return intend(agent, motion.Walking(edge.Side), motion.GazeToward(edge.Side))
	case floorgraph.Dig:
		return intend(agent, motion.Digging, motion.GazeToward(edge.Side))
	case floorgraph.Jump:
		dx := edge.LaunchX - agent.Position.X
		if math.Abs(dx) <= walkingSpeed {
			return agent.SetAction(motion.Falling)
		}
		side := floorgraph.Right
		if dx < 0 {
			side = floorgraph.Left
		}
		return intend(agent, motion.Walking(side), motion.GazeToward(side))
	}
	return nil
}

func intend(agent *motion.Agent, action motion.ActionState, gaze motion.Gaze) error {
	if agent.Action == action && agent.Gaze == gaze {
		return nil
	}
	return agent.SetIntent(action, gaze)
}
