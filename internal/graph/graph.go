// Package graph provides a directed graph of declaration names and cycle
// detection over it.
package graph

import (
	"cmp"
	"slices"
)

// Graph is a directed graph of names with forward edges. Nodes remember
// the order they were added in, which makes every result deterministic.
type Graph struct {
	index map[string]int
	names []string
	edges map[string][]string
}

// New returns a graph with no nodes or edges.
func New() *Graph {
	return &Graph{
		index: make(map[string]int),
		edges: make(map[string][]string),
	}
}

// AddNode registers a name. Duplicate calls are no-ops.
func (g *Graph) AddNode(name string) {
	if _, ok := g.index[name]; ok {
		return
	}
	g.index[name] = len(g.names)
	g.names = append(g.names, name)
}

// AddEdge records that "from" refers to "to". Missing nodes are created
// implicitly. Duplicate edges are ignored.
func (g *Graph) AddEdge(from, to string) {
	g.AddNode(from)
	g.AddNode(to)

	if slices.Contains(g.edges[from], to) {
		return
	}
	g.edges[from] = append(g.edges[from], to)
}

// Dependencies returns the names that name refers to, in insertion order.
func (g *Graph) Dependencies(name string) []string {
	return g.edges[name]
}

// HasNode reports whether the name exists in the graph.
func (g *Graph) HasNode(name string) bool {
	_, ok := g.index[name]
	return ok
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.names)
}

// FindCycles returns every strongly connected component with more than
// one node, and every single node with a self-loop, found via Tarjan's
// algorithm. Nodes within a cycle and the cycles themselves are ordered
// by insertion.
func (g *Graph) FindCycles() [][]string {
	var (
		counter  int
		stack    []string
		onStack  = make(map[string]bool)
		indices  = make(map[string]int)
		lowlinks = make(map[string]int)
		sccs     [][]string
	)

	var strongConnect func(name string)
	strongConnect = func(name string) {
		indices[name] = counter
		lowlinks[name] = counter
		counter++
		stack = append(stack, name)
		onStack[name] = true

		for _, dep := range g.edges[name] {
			if _, visited := indices[dep]; !visited {
				strongConnect(dep)
				lowlinks[name] = min(lowlinks[name], lowlinks[dep])
			} else if onStack[dep] {
				lowlinks[name] = min(lowlinks[name], indices[dep])
			}
		}

		if lowlinks[name] != indices[name] {
			return
		}
		var scc []string
		for {
			w := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			onStack[w] = false
			scc = append(scc, w)
			if w == name {
				break
			}
		}
		if len(scc) > 1 || slices.Contains(g.edges[scc[0]], scc[0]) {
			sccs = append(sccs, scc)
		}
	}

	for _, name := range g.names {
		if _, visited := indices[name]; !visited {
			strongConnect(name)
		}
	}

	byInsertion := func(a, b string) int {
		return cmp.Compare(g.index[a], g.index[b])
	}
	for _, scc := range sccs {
		slices.SortFunc(scc, byInsertion)
	}
	slices.SortFunc(sccs, func(a, b []string) int {
		return byInsertion(a[0], b[0])
	})
	return sccs
}

// HasCycles reports whether the graph contains any cycles.
func (g *Graph) HasCycles() bool {
	return len(g.FindCycles()) > 0
}
