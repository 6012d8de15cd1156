package pathsearch

import (
	"golang.org/x/sync/errgroup"

	"github.com/automoto/burrow/shared/floorgraph"
)

// Query is one start/goal pair for FindPaths.
type Query struct {
	Start floorgraph.FloorID
	Goal  floorgraph.FloorID
}

// Result mirrors the return values of FindPath.
type Result struct {
	Query Query
	Path  []floorgraph.FloorID
	Found bool
}

// FindPaths answers many queries concurrently. The graph is read-only so the searches
// share nothing. Results keep the order of queries. workers <= 0 means no limit.
func FindPaths(g *floorgraph.Graph, queries []Query, workers int) ([]Result, error) {
	results := make([]Result, len(queries))

	var group errgroup.Group
	if workers > 0 {
		group.SetLimit(workers)
	}
	for i, q := range queries {
		group.Go(func() error {
			path, found, err := FindPath(g, q.Start, q.Goal)
			if err != nil {
				return err
			}
			results[i] = Result{Query: q, Path: path, Found: found}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
