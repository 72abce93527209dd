package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// lineNode models a trivial graph: integers on a number line, each
// connected to its immediate neighbors with cost 1. It exercises AStar
// without any dependency on the blocks-world model.
type lineNode int

func (n lineNode) ID() string {
	return string(rune('a' + int(n)))
}

type lineGraph struct {
	max int
}

func (g lineGraph) OutgoingEdges(n lineNode) []Edge[lineNode] {
	var edges []Edge[lineNode]
	if int(n) > 0 {
		edges = append(edges, Edge[lineNode]{To: n - 1, Cost: 1})
	}
	if int(n) < g.max {
		edges = append(edges, Edge[lineNode]{To: n + 1, Cost: 1})
	}
	return edges
}

func Test_AStar_findsShortestPath(t *testing.T) {
	g := lineGraph{max: 10}
	goal := func(n lineNode) bool { return n == 7 }
	h := func(n lineNode) int {
		d := int(n) - 7
		if d < 0 {
			d = -d
		}
		return d
	}

	path, cost, err := AStar[lineNode](g, 0, goal, h, time.Second)

	assert.NoError(t, err)
	assert.Equal(t, 7, cost)
	assert.Equal(t, lineNode(7), path[len(path)-1])
	assert.Equal(t, lineNode(0), path[0])
	assert.Len(t, path, 8)
}

func Test_AStar_noPath(t *testing.T) {
	g := lineGraph{max: 3}
	goal := func(n lineNode) bool { return n == 99 }
	h := func(n lineNode) int { return 0 }

	_, _, err := AStar[lineNode](g, 0, goal, h, time.Second)

	assert.Error(t, err)
}

func Test_AStar_timeout(t *testing.T) {
	g := lineGraph{max: 1000000}
	goal := func(n lineNode) bool { return false }
	h := func(n lineNode) int { return 0 }

	_, _, err := AStar[lineNode](g, 0, goal, h, time.Nanosecond)

	assert.Error(t, err)
}

func Test_AStar_startSatisfiesGoal(t *testing.T) {
	g := lineGraph{max: 5}
	goal := func(n lineNode) bool { return n == 0 }
	h := func(n lineNode) int { return 0 }

	path, cost, err := AStar[lineNode](g, 0, goal, h, time.Second)

	assert.NoError(t, err)
	assert.Equal(t, 0, cost)
	assert.Equal(t, []lineNode{0}, path)
}
