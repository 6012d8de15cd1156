// Package leveldata reads floor graphs and agent spawns out of Tiled TMX files.
// It has no dependencies on donburi or resolv, pure data only.
package leveldata

import "github.com/automoto/burrow/shared/floorgraph"

// Object group and property names used by level files.
const (
	FloorsGroup = "Floors"
	SpawnGroup  = "AgentSpawn"

	propLeftWalk   = "leftWalk"
	propRightWalk  = "rightWalk"
	propLeftDig    = "leftDig"
	propRightDig   = "rightDig"
	propJumps      = "jumps"
	propFloor      = "floor"
	propPatrol     = "patrol"
	propDifficulty = "difficulty"
)

// FloorData holds everything parsed from one TMX level. Coordinates are already
// flipped so that y grows upward from the bottom of the map.
type FloorData struct {
	Floors    []floorgraph.Floor
	ObjectIDs []uint32 // Tiled object id of each floor, same index as Floors
	Spawns    []AgentSpawn
	MapWidth  int
	MapHeight int
}

// AgentSpawn is an agent placed in the level. Floor is NoFloor when the level
// leaves it to be found from Position.
type AgentSpawn struct {
	Position   floorgraph.Position2
	Floor      floorgraph.FloorID
	Patrol     []floorgraph.FloorID
	Difficulty int
}

// IsBot reports whether the spawn carries a patrol route.
func (s AgentSpawn) IsBot() bool {
	return len(s.Patrol) > 0
}

// Graph validates the floors and builds the graph.
func (d *FloorData) Graph() (*floorgraph.Graph, error) {
	return floorgraph.New(d.Floors)
}
