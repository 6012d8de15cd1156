package sim

import (
	"github.com/solarlune/resolv"

	"github.com/automoto/burrow/components"
	"github.com/automoto/burrow/shared/floorgraph"
	"github.com/automoto/burrow/tags"
)

// Locator finds the floor under a world point. The resolv space narrows the search
// to floors whose bounding box shares a cell with the point, then the exact quad
// test decides. Not safe for concurrent use: a probe object is added to the space for
// the duration of a query.
type Locator struct {
	space components.SpaceData
	graph *floorgraph.Graph
}

func NewLocator(space components.SpaceData, graph *floorgraph.Graph) *Locator {
	return &Locator{space: space, graph: graph}
}

// FloorAt returns the floor containing p. Where floors overlap, as on a shared
// border, the lowest id wins.
func (l *Locator) FloorAt(p floorgraph.Position2) (floorgraph.FloorID, bool) {
	x, y, ok := l.space.ToSpace(p)
	if !ok {
		return floorgraph.NoFloor, false
	}

	probe := resolv.NewObject(x-1, y-1, 2, 2, tags.ResolvProbe)
	l.space.Add(probe)
	defer l.space.Remove(probe)

	check := probe.Check(0, 0, tags.ResolvFloor)
	if check == nil {
		return floorgraph.NoFloor, false
	}

	best := floorgraph.NoFloor
	for _, obj := range check.ObjectsByTags(tags.ResolvFloor) {
		id, ok := obj.Data.(floorgraph.FloorID)
		if !ok || (best != floorgraph.NoFloor && id >= best) {
			continue
		}
		f, err := l.graph.FloorAt(id)
		if err != nil || !f.Contains(p) {
			continue
		}
		best = id
	}
	return best, best != floorgraph.NoFloor
}
