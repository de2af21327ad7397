// SPDX-License-Identifier: MPL-2.0

// Package dag orders packages by their prerequisites. Nodes are package ids and
// an edge from A to B means A must be loaded before B.
package dag

import (
	"fmt"
	"strings"
)

type (
	// CycleError indicates that the graph contains a cycle, preventing a
	// complete ordering.
	CycleError struct {
		// Cycle lists the nodes left unordered, in insertion order. It contains
		// every cycle member and may include nodes that only depend on one.
		Cycle []string
	}

	// Graph is a directed graph with deterministic ordering.
	Graph struct {
		// dependents maps each node to the nodes that require it.
		dependents map[string][]string
		// nodes tracks all nodes in insertion order.
		nodes   []string
		nodeSet map[string]bool
	}
)

func (e *CycleError) Error() string {
	return fmt.Sprintf("prerequisite cycle detected: %s", strings.Join(e.Cycle, " -> "))
}

// New creates an empty Graph.
func New() *Graph {
	return &Graph{
		dependents: make(map[string][]string),
		nodeSet:    make(map[string]bool),
	}
}

// AddNode adds a node. Adding an existing node is a no-op.
func (g *Graph) AddNode(name string) {
	if g.nodeSet[name] {
		return
	}
	g.nodeSet[name] = true
	g.nodes = append(g.nodes, name)
}

// AddEdge records that "from" must come before "to", adding either node if
// needed.
func (g *Graph) AddEdge(from, to string) {
	g.AddNode(from)
	g.AddNode(to)
	g.dependents[from] = append(g.dependents[from], to)
}

// HasNode reports whether name is in the graph.
func (g *Graph) HasNode(name string) bool {
	return g.nodeSet[name]
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Dependents returns the nodes that must come after name, in edge order.
func (g *Graph) Dependents(name string) []string {
	return g.dependents[name]
}

// TopologicalSort returns an order in which every node follows the nodes it
// depends on, using Kahn's algorithm. Nodes at the same level keep insertion
// order. A cycle yields *CycleError.
func (g *Graph) TopologicalSort() ([]string, error) {
	if len(g.nodes) == 0 {
		return nil, nil
	}

	inDegree := make(map[string]int, len(g.nodes))
	for _, node := range g.nodes {
		inDegree[node] = 0
	}
	for _, deps := range g.dependents {
		for _, d := range deps {
			inDegree[d]++
		}
	}

	queue := make([]string, 0, len(g.nodes))
	for _, node := range g.nodes {
		if inDegree[node] == 0 {
			queue = append(queue, node)
		}
	}

	result := make([]string, 0, len(g.nodes))
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		result = append(result, node)

		for _, d := range g.dependents[node] {
			inDegree[d]--
			if inDegree[d] == 0 {
				queue = append(queue, d)
			}
		}
	}

	if len(result) != len(g.nodes) {
		var stuck []string
		for _, node := range g.nodes {
			if inDegree[node] > 0 {
				stuck = append(stuck, node)
			}
		}
		return nil, &CycleError{Cycle: stuck}
	}
	return result, nil
}
