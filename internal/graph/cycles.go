package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bondcheck-labs/bondcheck/internal/report"
)

// DFS node colors. Unvisited nodes are white, nodes on the current traversal
// stack are gray, fully explored nodes are black.
const (
	white = iota
	gray
	black
)

// frame is one entry on the DFS stack: the node plus the edge used to
// reach it.
type frame struct {
	node   *Node
	inEdge *Edge
}

type cycleFinder struct {
	g      *Graph
	adj    map[*Node][]*Edge
	colors map[*Node]int
	stack  []frame
	pos    map[*Node]int    // node -> index on the stack
	seen   map[string]bool  // canonical node-set keys of reported cycles
	c      *report.Collector
}

// CheckCycles reports circular dependencies among bond edges. A back-edge to
// a node currently on the traversal stack signals a cycle; the full cycle
// path appears in the finding message. Each distinct cycle (by its sorted
// node set) is reported once.
//
// The one admissible loop is the reciprocal pair: an agent listing a skill
// that bonds straight back to it. That is the normal acknowledged bond, not
// a dependency cycle.
func (g *Graph) CheckCycles(c *report.Collector) {
	f := &cycleFinder{
		g:      g,
		adj:    make(map[*Node][]*Edge),
		colors: make(map[*Node]int),
		pos:    make(map[*Node]int),
		seen:   make(map[string]bool),
		c:      c,
	}
	// Adjacency over resolvable edges only; dangling edges are the broken
	// bond checker's concern.
	for _, e := range g.Edges {
		if from, ok := g.Node(e.FromKind, e.FromName); ok && g.resolve(e) != nil {
			f.adj[from] = append(f.adj[from], e)
		}
	}
	for _, n := range g.Nodes {
		if f.colors[n] == white {
			f.visit(n, nil)
		}
	}
}

func (f *cycleFinder) visit(n *Node, inEdge *Edge) {
	f.colors[n] = gray
	f.pos[n] = len(f.stack)
	f.stack = append(f.stack, frame{node: n, inEdge: inEdge})

	for _, e := range f.adj[n] {
		target := f.g.resolve(e)
		switch f.colors[target] {
		case white:
			f.visit(target, e)
		case gray:
			f.reportCycle(f.pos[target], e)
		case black:
			// Already fully explored; re-entering does not re-trigger
			// analysis.
		}
	}

	f.stack = f.stack[:len(f.stack)-1]
	delete(f.pos, n)
	f.colors[n] = black
}

// reportCycle emits a finding for the cycle running from stack[start] to the
// top of the stack, closed by backEdge.
func (f *cycleFinder) reportCycle(start int, backEdge *Edge) {
	nodes := make([]*Node, 0, len(f.stack)-start)
	edges := make([]*Edge, 0, len(f.stack)-start)
	for i := start; i < len(f.stack); i++ {
		nodes = append(nodes, f.stack[i].node)
		if i > start {
			edges = append(edges, f.stack[i].inEdge)
		}
	}
	edges = append(edges, backEdge)

	if isReciprocalBond(nodes, edges) {
		return
	}

	// One report per distinct cycle, keyed by its sorted node set.
	names := make([]string, len(nodes))
	for i, n := range nodes {
		names[i] = nodeKey(n.Kind, n.Name)
	}
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)
	key := strings.Join(sorted, ",")
	if f.seen[key] {
		return
	}
	f.seen[key] = true

	path := make([]string, 0, len(nodes)+1)
	for _, n := range nodes {
		path = append(path, n.Name)
	}
	path = append(path, nodes[0].Name)
	f.c.Error(report.CategoryCircularDependency, nodes[0].SourcePath,
		fmt.Sprintf("circular dependency: %s", strings.Join(path, " -> ")))
}

// isReciprocalBond reports whether a two-node cycle is the healthy
// agent-declares-skill / skill-bonds-agent pair.
func isReciprocalBond(nodes []*Node, edges []*Edge) bool {
	if len(nodes) != 2 || len(edges) != 2 {
		return false
	}
	var bond, declares *Edge
	for _, e := range edges {
		switch e.Kind {
		case EdgeBond:
			bond = e
		case EdgeDeclares:
			declares = e
		}
	}
	if bond == nil || declares == nil {
		return false
	}
	return bond.FromName == declares.ToName && bond.ToName == declares.FromName
}
