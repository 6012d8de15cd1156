package components

import (
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"

	"github.com/automoto/burrow/shared/floorgraph"
	"github.com/automoto/burrow/shared/motion"
)

// TerrainData is the singleton holding the immutable floor graph and the engine that
// moves agents across it.
type TerrainData struct {
	Graph  *floorgraph.Graph
	Engine *motion.Engine
}

var Terrain = donburi.NewComponentType[TerrainData]()

// SpaceData indexes floor bounds for point lookups. Origin is the world point placed
// at the space's (0, 0), since resolv cells start there.
type SpaceData struct {
	*resolv.Space
	Origin        floorgraph.Position2
	Width, Height float64
}

// ToSpace converts a world point into space coordinates and reports whether it lies
// inside the space.
func (s *SpaceData) ToSpace(p floorgraph.Position2) (x, y float64, ok bool) {
	x, y = p.X-s.Origin.X, p.Y-s.Origin.Y
	return x, y, x >= 1 && y >= 1 && x < s.Width-1 && y < s.Height-1
}

var Space = donburi.NewComponentType[SpaceData]()
