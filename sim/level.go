package sim

import (
	"fmt"
	"io/fs"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/automoto/burrow/config"
	"github.com/automoto/burrow/shared/floorgraph"
	"github.com/automoto/burrow/shared/leveldata"
)

// Level is a parsed level file with its validated graph.
type Level struct {
	Data  *leveldata.FloorData
	Graph *floorgraph.Graph
}

// LoadLevel reads one TMX level from fsys.
func LoadLevel(fsys fs.FS, path string) (*Level, error) {
	data, err := leveldata.LoadFloorData(fsys, path)
	if err != nil {
		return nil, err
	}
	return newLevel(path, data)
}

// LoadAllLevels loads all .tmx levels in dir, returning them keyed by stem name plus
// a sorted name list.
func LoadAllLevels(fsys fs.FS, dir string) (map[string]*Level, []string, error) {
	dataMap, names, err := leveldata.LoadAllLevels(fsys, dir)
	if err != nil {
		return nil, nil, fmt.Errorf("load all levels: %w", err)
	}

	levels := make(map[string]*Level, len(names))
	for _, name := range names {
		level, err := newLevel(name, dataMap[name])
		if err != nil {
			return nil, nil, err
		}
		levels[name] = level
	}
	return levels, names, nil
}

func newLevel(name string, data *leveldata.FloorData) (*Level, error) {
	g, err := data.Graph()
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", name, err)
	}
	return &Level{Data: data, Graph: g}, nil
}

// NewWorldFromLevel builds a world over the level graph and spawns its agents.
// Handles are returned in the level's spawn order.
func NewWorldFromLevel(level *Level, opts Options) (*World, []uuid.UUID, error) {
	w, err := NewWorld(level.Graph, opts)
	if err != nil {
		return nil, nil, err
	}
	ids, err := w.Populate(level.Data.Spawns)
	if err != nil {
		return nil, nil, err
	}
	return w, ids, nil
}

// Populate spawns one agent per spawn point. Spawns without a floor are placed on the
// floor containing their position; spawns with a patrol become bots.
func (w *World) Populate(spawns []leveldata.AgentSpawn) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(spawns))
	for i, s := range spawns {
		var (
			id  uuid.UUID
			err error
		)
		if s.Floor == floorgraph.NoFloor {
			id, err = w.SpawnAt(s.Position)
		} else {
			id, err = w.Spawn(s.Floor, s.Position)
		}
		if err != nil {
			return nil, fmt.Errorf("spawn %d: %w", i, err)
		}
		if s.IsBot() {
			if err := w.AssignPatrol(id, s.Patrol, config.BotDifficulty(s.Difficulty)); err != nil {
				return nil, fmt.Errorf("spawn %d: %w", i, err)
			}
		}
		ids = append(ids, id)
	}

	w.log.Info("level populated", zap.Int("agents", len(ids)))
	return ids, nil
}
