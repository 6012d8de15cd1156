// Package pathsearch finds fewest-hop routes across a floor graph.
package pathsearch

import (
	"fmt"

	"github.com/automoto/burrow/shared/floorgraph"
)

// FindPath runs a breadth-first search from start to goal. Walking, digging and jump
// edges each count as one hop. The returned path starts with the floor after start and
// ends with goal; it is empty when start == goal. found is false when goal cannot be
// reached, which is not an error. err is only set for ids outside the graph.
func FindPath(g *floorgraph.Graph, start, goal floorgraph.FloorID) (path []floorgraph.FloorID, found bool, err error) {
	if _, err := g.FloorAt(start); err != nil {
		return nil, false, fmt.Errorf("path start: %w", err)
	}
	if _, err := g.FloorAt(goal); err != nil {
		return nil, false, fmt.Errorf("path goal: %w", err)
	}
	if start == goal {
		return []floorgraph.FloorID{}, true, nil
	}

	// parent doubles as the visited set: a floor is marked when first discovered, so it
	// is queued at most once and the search expands at most g.Len() floors.
	parent := make([]floorgraph.FloorID, g.Len())
	for i := range parent {
		parent[i] = floorgraph.NoFloor
	}
	parent[start] = start

	queue := []floorgraph.FloorID{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, e := range g.Edges(current) {
			if parent[e.To] != floorgraph.NoFloor {
				continue
			}
			parent[e.To] = current
			if e.To == goal {
				return unwind(parent, start, goal), true, nil
			}
			queue = append(queue, e.To)
		}
	}

	return nil, false, nil
}

// HopDistance returns the number of hops on the shortest route.
func HopDistance(g *floorgraph.Graph, start, goal floorgraph.FloorID) (int, bool, error) {
	path, found, err := FindPath(g, start, goal)
	if err != nil || !found {
		return 0, found, err
	}
	return len(path), true, nil
}

func unwind(parent []floorgraph.FloorID, start, goal floorgraph.FloorID) []floorgraph.FloorID {
	var path []floorgraph.FloorID
	for id := goal; id != start; id = parent[id] {
		path = append(path, id)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
