// This file contains a thin wrapper around the graph module
// for managing the opponent relation of a tournament.
package core

import (
	"cmp"
	"errors"
	"slices"

	"github.com/dominikbraun/graph"
)

// The OpponentGraph records which competitors already met
// each other. The competitor names are the nodes and every
// undirected edge is one pair that has been played (or is
// scheduled in the current round).
//
// The graph only grows. The only way to remove edges is to
// Reset the whole graph.
type OpponentGraph struct {
	graph.Graph[string, string]
}

func NewOpponentGraph(names ...string) *OpponentGraph {
	g := &OpponentGraph{Graph: graph.New(graph.StringHash)}
	for _, name := range names {
		g.addNode(name)
	}
	return g
}

func (g *OpponentGraph) addNode(name string) {
	err := g.AddVertex(name)
	if err != nil && !errors.Is(err, graph.ErrVertexAlreadyExists) {
		panic(err)
	}
}

// Records that a and b met. Recording the same pair
// again has no effect.
func (g *OpponentGraph) Record(a, b string) {
	g.addNode(a)
	g.addNode(b)
	err := g.AddEdge(a, b)
	if err != nil && !errors.Is(err, graph.ErrEdgeAlreadyExists) {
		panic(err)
	}
}

// Returns true when a and b already met.
// The query is symmetric: HaveMet(a, b) == HaveMet(b, a).
func (g *OpponentGraph) HaveMet(a, b string) bool {
	if a == b {
		return false
	}
	_, err := g.Edge(a, b)
	return err == nil
}

// Returns the sorted names of everyone the competitor met
func (g *OpponentGraph) Opponents(name string) []string {
	adjacency, err := g.AdjacencyMap()
	if err != nil {
		return nil
	}
	opponents := make([]string, 0, len(adjacency[name]))
	for opponent := range adjacency[name] {
		opponents = append(opponents, opponent)
	}
	slices.Sort(opponents)
	return opponents
}

// Returns every recorded pair once with the names of each
// pair in ascending order. The pairs are sorted.
func (g *OpponentGraph) Pairs() []Pair {
	edges, err := g.Edges()
	if err != nil {
		return nil
	}

	pairs := make([]Pair, 0, len(edges))
	for _, e := range edges {
		a, b := e.Source, e.Target
		if b < a {
			a, b = b, a
		}
		pairs = append(pairs, Pair{Player1: a, Player2: b})
	}
	slices.SortFunc(pairs, func(x, y Pair) int {
		return cmp.Or(
			cmp.Compare(x.Player1, y.Player1),
			cmp.Compare(x.Player2, y.Player2),
		)
	})
	return pairs
}

// Returns the number of recorded pairs
func (g *OpponentGraph) NumPairs() int {
	size, err := g.Size()
	if err != nil {
		return 0
	}
	return size
}

// Removes all recorded pairs but keeps the nodes
func (g *OpponentGraph) Reset() {
	names := make([]string, 0)
	adjacency, err := g.AdjacencyMap()
	if err == nil {
		for name := range adjacency {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	g.Graph = graph.New(graph.StringHash)
	for _, name := range names {
		g.addNode(name)
	}
}
