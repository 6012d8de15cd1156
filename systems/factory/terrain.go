package factory

import (
	"math"

	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"

	"github.com/automoto/burrow/archetypes"
	"github.com/automoto/burrow/components"
	"github.com/automoto/burrow/logging"
	"github.com/automoto/burrow/shared/floorgraph"
	"github.com/automoto/burrow/shared/motion"
	"github.com/automoto/burrow/tags"
)

const spaceCellSize = 32

func CreateTerrain(ecs *ecs.ECS, graph *floorgraph.Graph, engine *motion.Engine) *donburi.Entry {
	terrain := archetypes.Terrain.Spawn(ecs)
	components.Terrain.SetValue(terrain, components.TerrainData{
		Graph:  graph,
		Engine: engine,
	})
	return terrain
}

// CreateSpace indexes the bounding box of every floor in a resolv space. Each object
// carries its FloorID in Data.
func CreateSpace(ecs *ecs.ECS, graph *floorgraph.Graph) *donburi.Entry {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for i := 0; i < graph.Len(); i++ {
		f, _ := graph.FloorAt(floorgraph.FloorID(i))
		x1, y1, x2, y2 := f.Bounds()
		minX, minY = math.Min(minX, x1), math.Min(minY, y1)
		maxX, maxY = math.Max(maxX, x2), math.Max(maxY, y2)
	}
	if graph.Len() == 0 {
		minX, minY, maxX, maxY = 0, 0, 0, 0
	}

	// One spare cell on each side keeps probes at the very edge inside the space.
	origin := floorgraph.Position2{X: minX - spaceCellSize, Y: minY - spaceCellSize}
	width := int(math.Ceil(maxX-origin.X)) + 2*spaceCellSize
	height := int(math.Ceil(maxY-origin.Y)) + 2*spaceCellSize
	space := resolv.NewSpace(width, height, spaceCellSize, spaceCellSize)

	for i := 0; i < graph.Len(); i++ {
		id := floorgraph.FloorID(i)
		f, _ := graph.FloorAt(id)
		x1, y1, x2, y2 := f.Bounds()
		obj := resolv.NewObject(x1-origin.X, y1-origin.Y, x2-x1, y2-y1, tags.ResolvFloor)
		obj.SetShape(resolv.NewRectangle(0, 0, x2-x1, y2-y1))
		obj.Data = id
		space.Add(obj)
	}

	entry := archetypes.Space.Spawn(ecs)
	components.Space.SetValue(entry, components.SpaceData{
		Space:  space,
		Origin: origin,
		Width:  float64(width),
		Height: float64(height),
	})
	return entry
}

func CreateStatus(ecs *ecs.ECS, log *zap.Logger) *donburi.Entry {
	status := archetypes.Status.Spawn(ecs)
	components.Status.SetValue(status, components.StatusData{Log: logging.OrNop(log)})
	return status
}
