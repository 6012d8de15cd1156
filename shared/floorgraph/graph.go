package floorgraph

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidFloorID is returned when a floor id falls outside the graph. It always
// means the graph or an agent was built wrong upstream.
var ErrInvalidFloorID = errors.New("invalid floor id")

// Graph owns every floor of a world. It is never mutated after New, so any number of
// goroutines may read it without locking.
type Graph struct {
	floors []Floor
}

// New copies floors into a graph and rejects dangling neighbor references.
func New(floors []Floor) (*Graph, error) {
	g := &Graph{floors: make([]Floor, len(floors))}
	for i, f := range floors {
		f.Jumps = append([]JumpRoute(nil), f.Jumps...)
		g.floors[i] = f
	}

	for i, f := range g.floors {
		refs := []struct {
			name string
			id   FloorID
		}{
			{"left walking", f.LeftWalking},
			{"right walking", f.RightWalking},
			{"left digging", f.LeftDigging},
			{"right digging", f.RightDigging},
		}
		for _, r := range refs {
			if r.id == NoFloor {
				continue
			}
			if !g.contains(r.id) {
				return nil, fmt.Errorf("floor %d %s neighbor: %w", i, r.name, g.outOfRange(r.id))
			}
		}
		for j, jr := range f.Jumps {
			if !g.contains(jr.Target) {
				return nil, fmt.Errorf("floor %d jump route %d: %w", i, j, g.outOfRange(jr.Target))
			}
		}
	}

	return g, nil
}

// Len returns the number of floors.
func (g *Graph) Len() int {
	return len(g.floors)
}

// FloorAt returns a copy of the floor with the given id.
func (g *Graph) FloorAt(id FloorID) (Floor, error) {
	if !g.contains(id) {
		return Floor{}, g.outOfRange(id)
	}
	return g.floors[id], nil
}

// WalkingNeighbor reports the walking neighbor of id on side. An out-of-range id has
// no neighbors.
func (g *Graph) WalkingNeighbor(id FloorID, side Side) (FloorID, bool) {
	if !g.contains(id) {
		return NoFloor, false
	}
	return g.floors[id].WalkingNeighbor(side)
}

// DiggingNeighbor reports the digging neighbor of id on side.
func (g *Graph) DiggingNeighbor(id FloorID, side Side) (FloorID, bool) {
	if !g.contains(id) {
		return NoFloor, false
	}
	return g.floors[id].DiggingNeighbor(side)
}

// JumpRoutes returns the jump routes leaving id, in authoring order.
func (g *Graph) JumpRoutes(id FloorID) []JumpRoute {
	if !g.contains(id) {
		return nil
	}
	return append([]JumpRoute(nil), g.floors[id].Jumps...)
}

// Edges lists every outgoing edge of id in a fixed order: left walking, right walking,
// left digging, right digging, then jump routes. Path search relies on this order to
// break ties between equally short routes.
func (g *Graph) Edges(id FloorID) []Edge {
	if !g.contains(id) {
		return nil
	}
	f := g.floors[id]

	edges := make([]Edge, 0, 4+len(f.Jumps))
	for _, side := range []Side{Left, Right} {
		if to, ok := f.WalkingNeighbor(side); ok {
			edges = append(edges, Edge{To: to, Kind: Walk, Side: side})
		}
	}
	for _, side := range []Side{Left, Right} {
		if to, ok := f.DiggingNeighbor(side); ok {
			edges = append(edges, Edge{To: to, Kind: Dig, Side: side})
		}
	}
	for _, jr := range f.Jumps {
		edges = append(edges, Edge{To: jr.Target, Kind: Jump, LaunchX: jr.LaunchX})
	}
	return edges
}

// EdgeBetween returns the first edge from one floor to another.
func (g *Graph) EdgeBetween(from, to FloorID) (Edge, bool) {
	for _, e := range g.Edges(from) {
		if e.To == to {
			return e, true
		}
	}
	return Edge{}, false
}

// NearestJump picks the jump route of id whose launch x is closest to x, provided it
// is no further than within. Ties keep the earlier route.
func (g *Graph) NearestJump(id FloorID, x, within float64) (JumpRoute, bool) {
	if !g.contains(id) {
		return JumpRoute{}, false
	}

	var (
		best  JumpRoute
		found bool
		dist  = math.Inf(1)
	)
	for _, jr := range g.floors[id].Jumps {
		d := math.Abs(jr.LaunchX - x)
		if d > within || d >= dist {
			continue
		}
		best, dist, found = jr, d, true
	}
	return best, found
}

func (g *Graph) contains(id FloorID) bool {
	return id >= 0 && int(id) < len(g.floors)
}

func (g *Graph) outOfRange(id FloorID) error {
	return fmt.Errorf("%w: %d (graph has %d floors)", ErrInvalidFloorID, id, len(g.floors))
}
