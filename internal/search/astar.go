// Package search implements a generic A* search over any node type that can
// name its own identity: a priority-queue-less A* that scans its open set
// linearly, guided by an admissible heuristic.
package search

import (
	"time"

	"github.com/dekarrin/shrdlite/internal/ierr"
)

// Identifiable is the minimal capability a search node needs: a
// deterministic string identity used for open/closed-set membership and
// path reconstruction.
type Identifiable interface {
	ID() string
}

// Edge is one legal transition out of a node, generic over the node type so
// this package has no dependency on the blocks-world model.
type Edge[N any] struct {
	To   N
	Cost int
}

// Graph is the only capability A* depends on: given a node, produce its
// legal successors.
type Graph[N any] interface {
	OutgoingEdges(node N) []Edge[N]
}

// entry is one open-set record: a node and the best known cost to reach it.
type entry[N any] struct {
	node N
	g    int
}

// AStar finds a minimum-cost path from start to any node satisfying isGoal,
// guided by the admissible heuristic h, giving up with a search-timeout
// error once timeout has elapsed. It returns ierr.ErrNoPath if the open set
// is exhausted without reaching a goal.
//
// There is no decrease-key priority queue: the open set is a plain map from
// node identity to its best known entry, so discovering a cheaper path to an
// already-open node simply overwrites that entry — equivalent to a
// re-enqueue-and-ignore-stale-entries scheme, without needing to carry stale
// duplicates at all. The minimum-f entry is found by linear scan each
// iteration.
func AStar[N Identifiable](g Graph[N], start N, isGoal func(N) bool, h func(N) int, timeout time.Duration) ([]N, int, error) {
	deadline := time.Now().Add(timeout)

	open := map[string]entry[N]{start.ID(): {node: start, g: 0}}
	closed := map[string]bool{}
	parent := map[string]string{}
	nodesByID := map[string]N{start.ID(): start}

	for len(open) > 0 {
		if time.Now().After(deadline) {
			return nil, 0, ierr.SearchTimeout()
		}

		curID, cur := popMinF(open, h)
		delete(open, curID)

		if isGoal(cur.node) {
			return reconstructPath(parent, nodesByID, curID, cur.node), cur.g, nil
		}

		closed[curID] = true

		for _, edge := range g.OutgoingEdges(cur.node) {
			nextID := edge.To.ID()
			if closed[nextID] {
				continue
			}
			tentativeG := cur.g + edge.Cost
			existing, inOpen := open[nextID]
			if !inOpen || tentativeG < existing.g {
				open[nextID] = entry[N]{node: edge.To, g: tentativeG}
				parent[nextID] = curID
				nodesByID[nextID] = edge.To
			}
		}
	}

	return nil, 0, ierr.NoPath()
}

// popMinF scans the open set for the entry with the lowest f = g + h(node),
// in place of a heap-backed priority queue.
func popMinF[N any](open map[string]entry[N], h func(N) int) (string, entry[N]) {
	var bestID string
	var best entry[N]
	bestF := 0
	first := true
	for id, e := range open {
		f := e.g + h(e.node)
		if first || f < bestF {
			bestID, best, bestF, first = id, e, f, false
		}
	}
	return bestID, best
}

func reconstructPath[N any](parent map[string]string, nodesByID map[string]N, goalID string, goalNode N) []N {
	path := []N{goalNode}
	id := goalID
	for {
		p, ok := parent[id]
		if !ok {
			break
		}
		path = append([]N{nodesByID[p]}, path...)
		id = p
	}
	return path
}
