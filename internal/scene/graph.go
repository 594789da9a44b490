package scene

import (
	"sync"
	"sync/atomic"

	"github.com/tomz197/birthday/internal/draw"
)

// Graph is the shared, append-only scene root.
// Writers take the mutex and publish a fresh slice; readers take a snapshot
// that never changes underneath them, so texture loads can insert while a
// frame is being rendered.
type Graph struct {
	Background draw.RGB

	mu    sync.Mutex
	nodes atomic.Pointer[[]Node]
}

// NewGraph creates an empty graph.
func NewGraph(background draw.RGB) *Graph {
	g := &Graph{Background: background}
	empty := []Node{}
	g.nodes.Store(&empty)
	return g
}

// Add appends nodes as one unit: a snapshot sees all of them or none.
func (g *Graph) Add(nodes ...Node) {
	if len(nodes) == 0 {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	old := *g.nodes.Load()
	next := make([]Node, len(old), len(old)+len(nodes))
	copy(next, old)
	next = append(next, nodes...)
	g.nodes.Store(&next)
}

// Snapshot returns the current node list. The slice must not be modified.
func (g *Graph) Snapshot() []Node {
	return *g.nodes.Load()
}

// Len returns the number of nodes currently in the graph.
func (g *Graph) Len() int {
	return len(g.Snapshot())
}
