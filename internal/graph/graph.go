package graph

import (
	"github.com/bondcheck-labs/bondcheck/internal/manifest"
)

// EdgeKind labels the relationship an edge represents.
type EdgeKind string

const (
	// EdgeBond is a skill's declared bond to its agent (skill → agent).
	EdgeBond EdgeKind = "bond"
	// EdgeDeclares is an agent's skills-list reference (agent → skill).
	EdgeDeclares EdgeKind = "declares"
)

// Node is one entity in the bond graph, keyed by kind and name.
type Node struct {
	Kind         string
	Name         string
	SourcePath   string
	SchemaBroken bool
}

// Edge is one directed bond or declares relationship. Edges are materialized
// even when the target does not exist, so dangling references are reportable
// instead of silently dropped.
type Edge struct {
	Kind       EdgeKind
	FromKind   string
	FromName   string
	ToKind     string
	ToName     string
	BondType   string // PRIMARY_BOND / SECONDARY_BOND for bond edges
	SourcePath string // file that declared the edge
}

// Graph is the bond graph of a single validation run. It is rebuilt from
// scratch each run and never mutated after construction.
type Graph struct {
	Nodes []*Node
	Edges []*Edge
	index map[string]*Node
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{index: make(map[string]*Node)}
}

// Build constructs the bond graph from loaded entities. Node and edge
// insertion order follows the loader's discovery order, so a fixed file
// system state always yields the same graph.
func Build(entities []*manifest.Entity) *Graph {
	g := New()
	for _, e := range entities {
		g.AddNode(&Node{
			Kind:         e.Kind,
			Name:         e.Name,
			SourcePath:   e.SourcePath,
			SchemaBroken: e.SchemaBroken,
		})
	}
	for _, e := range entities {
		switch h := e.Header.(type) {
		case *manifest.SkillHeader:
			if h.BondedAgent != "" {
				g.AddEdge(&Edge{
					Kind:       EdgeBond,
					FromKind:   manifest.KindSkill,
					FromName:   e.Name,
					ToKind:     manifest.KindAgent,
					ToName:     h.BondedAgent,
					BondType:   h.BondType,
					SourcePath: e.SourcePath,
				})
			}
		case *manifest.AgentHeader:
			for _, skill := range h.Skills {
				g.AddEdge(&Edge{
					Kind:       EdgeDeclares,
					FromKind:   manifest.KindAgent,
					FromName:   e.Name,
					ToKind:     manifest.KindSkill,
					ToName:     skill,
					SourcePath: e.SourcePath,
				})
			}
		}
	}
	return g
}

// AddNode appends a node. The first node wins on key collisions; the loader
// reports duplicates before the graph is built.
func (g *Graph) AddNode(n *Node) {
	key := nodeKey(n.Kind, n.Name)
	if _, exists := g.index[key]; exists {
		return
	}
	g.Nodes = append(g.Nodes, n)
	g.index[key] = n
}

// AddEdge appends an edge. Edge construction never fails; dangling targets
// are kept for the integrity checker.
func (g *Graph) AddEdge(e *Edge) {
	g.Edges = append(g.Edges, e)
}

// Node looks up a node by kind and name.
func (g *Graph) Node(kind, name string) (*Node, bool) {
	n, ok := g.index[nodeKey(kind, name)]
	return n, ok
}

// resolve returns the target node of an edge, or nil when the edge dangles.
func (g *Graph) resolve(e *Edge) *Node {
	n, ok := g.Node(e.ToKind, e.ToName)
	if !ok {
		return nil
	}
	return n
}

func nodeKey(kind, name string) string {
	return kind + "/" + name
}
