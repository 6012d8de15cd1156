package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/automoto/burrow/components"
	cfg "github.com/automoto/burrow/config"
	"github.com/automoto/burrow/shared/floorgraph"
	"github.com/automoto/burrow/shared/motion"
	"github.com/automoto/burrow/systems/factory"
	"github.com/automoto/burrow/tags"
)

func newTestECS(t *testing.T, b *floorgraph.Builder) *ecs.ECS {
	t.Helper()
	g, err := b.Build()
	require.NoError(t, err)
	engine, err := motion.NewEngine(cfg.DefaultMotion(), nil)
	require.NoError(t, err)

	e := ecs.NewECS(donburi.NewWorld())
	factory.CreateStatus(e, nil)
	factory.CreateTerrain(e, g, engine)
	return e
}

func flat(n int) *floorgraph.Builder {
	b := floorgraph.NewBuilder()
	for i := 0; i < n; i++ {
		x := float64(i * 100)
		b.Add(floorgraph.NewFloor(x, 60, x+100, 60, x+100, 0, x, 0))
	}
	return b
}

func tick(e *ecs.ECS) {
	WithHaltCheck(UpdatePatrol)(e)
	WithHaltCheck(UpdateMotion)(e)
	WithHaltCheck(UpdateTick)(e)
}

func runUntil(t *testing.T, e *ecs.ECS, limit int, done func() bool) {
	t.Helper()
	for i := 0; i < limit; i++ {
		tick(e)
		require.NoError(t, GetStatus(e).Err)
		if done() {
			return
		}
	}
	t.Fatalf("condition not reached in %d ticks", limit)
}

func TestOrderedEntriesFollowSpawnOrder(t *testing.T) {
	e := newTestECS(t, flat(1))
	factory.CreateBot(e, 0, 0, floorgraph.Position2{}, []floorgraph.FloorID{0}, cfg.BotDifficultyHard)
	factory.CreateAgent(e, 1, 0, floorgraph.Position2{})
	factory.CreateBot(e, 2, 0, floorgraph.Position2{}, []floorgraph.FloorID{0}, cfg.BotDifficultyHard)
	factory.CreateAgent(e, 3, 0, floorgraph.Position2{})

	var seqs []int
	for _, entry := range orderedEntries(e, tags.Agent) {
		seqs = append(seqs, components.AgentID.Get(entry).Seq)
	}
	assert.Equal(t, []int{0, 1, 2, 3}, seqs)
	assert.Len(t, orderedEntries(e, tags.Bot), 2)
}

func TestUpdateMotionMovesAgents(t *testing.T) {
	e := newTestECS(t, flat(1))
	entry := factory.CreateAgent(e, 0, 0, floorgraph.Position2{X: 50, Y: 20})
	require.NoError(t, components.Agent.Get(entry).SetIntent(motion.WalkingRight, motion.GazeRight))

	UpdateMotion(e)
	assert.Equal(t, 53.0, components.Agent.Get(entry).Position.X)
}

func TestUpdateMotionHaltsOnBadFloor(t *testing.T) {
	e := newTestECS(t, flat(1))
	good := factory.CreateAgent(e, 0, 0, floorgraph.Position2{X: 50, Y: 20})
	factory.CreateAgent(e, 1, 5, floorgraph.Position2{})
	after := factory.CreateAgent(e, 2, 0, floorgraph.Position2{X: 50, Y: 20})
	for _, entry := range []*donburi.Entry{good, after} {
		components.Agent.Get(entry).Action = motion.WalkingRight
	}

	tick(e)
	status := GetStatus(e)
	require.Error(t, status.Err)
	assert.ErrorIs(t, status.Err, floorgraph.ErrInvalidFloorID)
	assert.Equal(t, uint64(0), status.Tick, "a halted tick is not counted")
	assert.Equal(t, 53.0, components.Agent.Get(good).Position.X)
	assert.Equal(t, 50.0, components.Agent.Get(after).Position.X)

	tick(e)
	assert.Equal(t, 53.0, components.Agent.Get(good).Position.X, "nothing runs once halted")
}

func TestWithHaltCheck(t *testing.T) {
	e := newTestECS(t, flat(1))
	calls := 0
	system := WithHaltCheck(func(*ecs.ECS) { calls++ })

	system(e)
	Halt(e, assert.AnError)
	system(e)
	Halt(e, floorgraph.ErrInvalidFloorID)

	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, GetStatus(e).Err, assert.AnError, "the first error is kept")
}

func TestPatrolWalksBetweenWaypoints(t *testing.T) {
	e := newTestECS(t, flat(3).LinkWalking(0, 1).LinkWalking(1, 2))
	bot := factory.CreateBot(e, 0, 0, floorgraph.Position2{X: 50, Y: 20},
		[]floorgraph.FloorID{2, 0}, cfg.BotDifficultyHard)
	agent := components.Agent.Get(bot)
	patrol := components.Patrol.Get(bot)

	tick(e)
	assert.Equal(t, motion.WalkingRight, agent.Action)
	assert.Equal(t, motion.GazeRight, agent.Gaze)
	assert.Equal(t, []floorgraph.FloorID{1, 2}, agent.Path)

	runUntil(t, e, 200, func() bool { return patrol.Next == 1 })
	assert.Equal(t, floorgraph.FloorID(2), agent.Floor)
	assert.Equal(t, motion.Idle, agent.Action)
	assert.Empty(t, agent.Path)
	assert.Equal(t, floorgraph.Position2{X: 200, Y: 20}, agent.Position)

	runUntil(t, e, 200, func() bool { return agent.Floor == 0 })
	assert.Equal(t, motion.WalkingLeft, agent.Action)
}

func TestPatrolJumpsAtLaunchPoint(t *testing.T) {
	b := floorgraph.NewBuilder()
	from := b.Add(floorgraph.NewFloor(0, 60, 100, 60, 100, 0, 0, 0))
	to := b.Add(floorgraph.NewFloor(200, 110, 300, 110, 300, 50, 200, 50))
	e := newTestECS(t, b.AddJump(from, to, 90))

	bot := factory.CreateBot(e, 0, from, floorgraph.Position2{X: 50, Y: 20},
		[]floorgraph.FloorID{to}, cfg.BotDifficultyHard)
	agent := components.Agent.Get(bot)

	runUntil(t, e, 50, func() bool { return agent.Action == motion.Falling })
	assert.InDelta(t, 90.0, agent.Position.X, 3.0)
	assert.Equal(t, motion.WalkingRight, agent.LaunchedFrom)

	runUntil(t, e, 100, func() bool { return agent.Floor == to })
	assert.Equal(t, floorgraph.Position2{X: 200, Y: 70}, agent.Position)
}

func TestPatrolDigsThroughTunnels(t *testing.T) {
	e := newTestECS(t, flat(2).LinkDigging(0, 1))
	bot := factory.CreateBot(e, 0, 1, floorgraph.Position2{X: 150, Y: 20},
		[]floorgraph.FloorID{0}, cfg.BotDifficultyHard)
	agent := components.Agent.Get(bot)

	tick(e)
	assert.Equal(t, motion.Digging, agent.Action)
	assert.Equal(t, motion.GazeLeft, agent.Gaze)

	runUntil(t, e, 100, func() bool { return agent.Floor == 0 })
	assert.Equal(t, floorgraph.Position2{X: 100, Y: 20}, agent.Position)
}

func TestPatrolSkipsUnreachableWaypoint(t *testing.T) {
	e := newTestECS(t, flat(2))
	bot := factory.CreateBot(e, 0, 0, floorgraph.Position2{X: 50, Y: 20},
		[]floorgraph.FloorID{1, 0}, cfg.BotDifficultyNormal)
	agent := components.Agent.Get(bot)
	patrol := components.Patrol.Get(bot)

	tick(e)
	assert.Equal(t, 1, patrol.Skipped)
	assert.Equal(t, 1, patrol.Next)
	assert.Equal(t, cfg.Bot.ForDifficulty(cfg.BotDifficultyNormal).DwellTicks, patrol.DwellTimer)
	assert.Equal(t, motion.Idle, agent.Action)
	assert.Nil(t, agent.Path)
	assert.NoError(t, GetStatus(e).Err)
}

func TestPatrolReplansAfterReactionDelay(t *testing.T) {
	e := newTestECS(t, flat(3).LinkWalking(0, 1).LinkWalking(1, 2))
	bot := factory.CreateBot(e, 0, 0, floorgraph.Position2{X: 50, Y: 20},
		[]floorgraph.FloorID{2}, cfg.BotDifficultyNormal)
	patrol := components.Patrol.Get(bot)

	tick(e)
	delay := cfg.Bot.ForDifficulty(cfg.BotDifficultyNormal).ReactionDelay
	assert.Equal(t, delay, patrol.ReplanTimer)

	tick(e)
	assert.Equal(t, delay-1, patrol.ReplanTimer)
}

func TestPatrolHaltsOnInvalidWaypoint(t *testing.T) {
	e := newTestECS(t, flat(1))
	factory.CreateBot(e, 0, 0, floorgraph.Position2{X: 50, Y: 20},
		[]floorgraph.FloorID{9}, cfg.BotDifficultyHard)

	tick(e)
	assert.ErrorIs(t, GetStatus(e).Err, floorgraph.ErrInvalidFloorID)
}
