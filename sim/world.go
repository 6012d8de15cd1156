// Package sim runs agents over a floor graph inside a donburi world.
package sim

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"

	"github.com/automoto/burrow/components"
	"github.com/automoto/burrow/config"
	"github.com/automoto/burrow/logging"
	"github.com/automoto/burrow/shared/floorgraph"
	"github.com/automoto/burrow/shared/motion"
	"github.com/automoto/burrow/systems"
	"github.com/automoto/burrow/systems/factory"
	"github.com/automoto/burrow/tags"
)

var (
	ErrUnknownAgent = errors.New("unknown agent")
	ErrHalted       = errors.New("simulation halted")
	ErrNoFloor      = errors.New("no floor at position")
)

// Options configures a World. The zero value is not usable; start from DefaultOptions.
type Options struct {
	Motion config.MotionConfig
	Logger *zap.Logger
}

// DefaultOptions uses the package-level motion config and no logging.
func DefaultOptions() Options {
	return Options{Motion: config.Motion, Logger: logging.Nop()}
}

// OptionsFromConfig builds options, logger included, from a loaded config file.
func OptionsFromConfig(f config.File) (Options, error) {
	log, err := logging.New(f.Log)
	if err != nil {
		return Options{}, err
	}
	return Options{Motion: f.Motion, Logger: log}, nil
}

// AgentState is a snapshot of one agent.
type AgentState struct {
	ID    uuid.UUID
	Bot   bool
	Agent motion.Agent
}

// World owns the ECS world for one floor graph. All methods are safe for concurrent
// use; Step serializes with intent changes.
type World struct {
	ecs     *ecs.ECS
	graph   *floorgraph.Graph
	locator *Locator
	log     *zap.Logger

	agents  map[uuid.UUID]donburi.Entity
	nextSeq int
	mu      sync.Mutex
}

// NewWorld builds an empty world over graph and registers the systems in update order.
func NewWorld(graph *floorgraph.Graph, opts Options) (*World, error) {
	if graph == nil {
		return nil, errors.New("new world: nil graph")
	}
	log := logging.OrNop(opts.Logger)

	engine, err := motion.NewEngine(opts.Motion, log)
	if err != nil {
		return nil, fmt.Errorf("new world: %w", err)
	}

	e := ecs.NewECS(donburi.NewWorld())
	factory.CreateStatus(e, log)
	factory.CreateTerrain(e, graph, engine)
	space := factory.CreateSpace(e, graph)

	e.AddSystem(systems.WithHaltCheck(systems.UpdatePatrol))
	e.AddSystem(systems.WithHaltCheck(systems.UpdateMotion))
	e.AddSystem(systems.WithHaltCheck(systems.UpdateTick))

	log.Info("world created", zap.Int("floors", graph.Len()))

	return &World{
		ecs:     e,
		graph:   graph,
		locator: NewLocator(*components.Space.Get(space), graph),
		log:     log,
		agents:  make(map[uuid.UUID]donburi.Entity),
	}, nil
}

func (w *World) Graph() *floorgraph.Graph {
	return w.graph
}

// Spawn places an idle agent on floor at pos.
func (w *World) Spawn(floor floorgraph.FloorID, pos floorgraph.Position2) (uuid.UUID, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.spawn(floor, pos)
}

// SpawnAt places an idle agent on whichever floor contains pos.
func (w *World) SpawnAt(pos floorgraph.Position2) (uuid.UUID, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	floor, ok := w.locator.FloorAt(pos)
	if !ok {
		return uuid.Nil, fmt.Errorf("%w: (%v, %v)", ErrNoFloor, pos.X, pos.Y)
	}
	return w.spawn(floor, pos)
}

func (w *World) spawn(floor floorgraph.FloorID, pos floorgraph.Position2) (uuid.UUID, error) {
	if _, err := w.graph.FloorAt(floor); err != nil {
		return uuid.Nil, fmt.Errorf("spawn: %w", err)
	}

	entry := factory.CreateAgent(w.ecs, w.nextSeq, floor, pos)
	w.nextSeq++
	id := components.AgentID.Get(entry).ID
	w.agents[id] = entry.Entity()

	w.log.Debug("agent spawned", zap.Stringer("agent", id), zap.Int("floor", int(floor)))
	return id, nil
}

// Despawn removes an agent.
func (w *World) Despawn(id uuid.UUID) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	entry, err := w.entry(id)
	if err != nil {
		return err
	}
	entry.Remove()
	delete(w.agents, id)
	return nil
}

// SetIntent changes what an agent is trying to do from the next tick on.
func (w *World) SetIntent(id uuid.UUID, action motion.ActionState, gaze motion.Gaze) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	entry, err := w.entry(id)
	if err != nil {
		return err
	}
	return components.Agent.Get(entry).SetIntent(action, gaze)
}

// AssignPatrol turns an agent into a bot cycling through waypoints. Waypoints must be
// valid floors; reachability is only checked while patrolling.
func (w *World) AssignPatrol(id uuid.UUID, waypoints []floorgraph.FloorID, difficulty config.BotDifficulty) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	entry, err := w.entry(id)
	if err != nil {
		return err
	}
	for _, wp := range waypoints {
		if _, err := w.graph.FloorAt(wp); err != nil {
			return fmt.Errorf("assign patrol: %w", err)
		}
	}

	if !entry.HasComponent(components.Patrol) {
		entry.AddComponent(components.Patrol)
	}
	if !entry.HasComponent(tags.Bot) {
		entry.AddComponent(tags.Bot)
	}
	components.Patrol.SetValue(entry, factory.NewPatrol(waypoints, difficulty))
	return nil
}

// Agent returns a snapshot of one agent.
func (w *World) Agent(id uuid.UUID) (AgentState, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	entry, err := w.entry(id)
	if err != nil {
		return AgentState{}, err
	}
	return snapshot(entry), nil
}

// Agents returns snapshots of every agent in spawn order.
func (w *World) Agents() []AgentState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snapshots()
}

func (w *World) snapshots() []AgentState {
	entries := make([]*donburi.Entry, 0, len(w.agents))
	for _, entity := range w.agents {
		entries = append(entries, w.ecs.World.Entry(entity))
	}
	sortBySeq(entries)

	states := make([]AgentState, len(entries))
	for i, entry := range entries {
		states[i] = snapshot(entry)
	}
	return states
}

// Locate returns the floor containing pos.
func (w *World) Locate(pos floorgraph.Position2) (floorgraph.FloorID, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.locator.FloorAt(pos)
}

// Step runs one tick. After a fatal error every call returns ErrHalted wrapping the
// cause.
func (w *World) Step() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.status().Err; err != nil {
		return fmt.Errorf("%w: %w", ErrHalted, err)
	}
	w.ecs.Update()
	if err := w.status().Err; err != nil {
		return fmt.Errorf("%w: %w", ErrHalted, err)
	}
	return nil
}

// Tick returns the number of completed ticks.
func (w *World) Tick() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.status().Tick
}

// Err returns the error that halted the world, if any.
func (w *World) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.status().Err
}

func (w *World) status() *components.StatusData {
	return systems.GetStatus(w.ecs)
}

func (w *World) entry(id uuid.UUID) (*donburi.Entry, error) {
	entity, ok := w.agents[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAgent, id)
	}
	entry := w.ecs.World.Entry(entity)
	if !entry.Valid() {
		delete(w.agents, id)
		return nil, fmt.Errorf("%w: %s", ErrUnknownAgent, id)
	}
	return entry, nil
}

func snapshot(entry *donburi.Entry) AgentState {
	agent := *components.Agent.Get(entry)
	agent.Path = append([]floorgraph.FloorID(nil), agent.Path...)
	if agent.Flight != nil {
		agent.Flight = agent.Flight.Clone()
	}
	return AgentState{
		ID:    components.AgentID.Get(entry).ID,
		Bot:   entry.HasComponent(tags.Bot),
		Agent: agent,
	}
}

func sortBySeq(entries []*donburi.Entry) {
	sort.Slice(entries, func(i, j int) bool {
		return components.AgentID.Get(entries[i]).Seq < components.AgentID.Get(entries[j]).Seq
	})
}
