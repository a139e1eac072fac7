package network

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/iterator"
	"gonum.org/v1/gonum/graph/layout"
	"gonum.org/v1/gonum/graph/simple"
)

// Position is a 2-D coordinate.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// EdgeRef is an undirected edge between two node IDs.
type EdgeRef struct {
	Source string
	Target string
}

// LayoutParams configures layout algorithms. Algorithms ignore fields they
// don't use.
type LayoutParams struct {
	K          float64 // Repulsion strength between nodes; <= 0 means 1
	Iterations int     // Upper bound on iterations
	Seed       int64   // Seed for the initial random placement
	Scale      float64 // Positions are rescaled to [-Scale, Scale]; <= 0 means 1
}

// DefaultLayoutParams returns the parameters the album graphs are drawn with.
func DefaultLayoutParams() LayoutParams {
	return LayoutParams{
		K:          3,
		Iterations: 1000,
		Seed:       1001,
		Scale:      1,
	}
}

// Layouter places graph nodes in the plane. Implementations must return a
// position for every node and an empty map for an empty node list.
type Layouter interface {
	Layout(nodes []string, edges []EdgeRef, params LayoutParams) map[string]Position
}

// LayoutFunc adapts an ordinary function to the Layouter interface.
type LayoutFunc func(nodes []string, edges []EdgeRef, params LayoutParams) map[string]Position

// Layout calls f.
func (f LayoutFunc) Layout(nodes []string, edges []EdgeRef, params LayoutParams) map[string]Position {
	return f(nodes, edges, params)
}

// EadesLayout is the Eades spring embedder from gonum: edges act as
// logarithmic springs, every pair of nodes repels, and Barnes-Hut keeps
// repulsion cheap on large graphs. The same seed gives the same layout.
type EadesLayout struct{}

// Eades step size and Barnes-Hut accuracy.
const (
	eadesRate  = 0.05
	eadesTheta = 0.2
)

// Layout implements Layouter. K is the repulsion strength.
func (EadesLayout) Layout(nodes []string, edges []EdgeRef, params LayoutParams) map[string]Position {
	n := len(nodes)
	out := make(map[string]Position, n)
	if n == 0 {
		return out
	}
	scale := params.Scale
	if scale <= 0 {
		scale = 1
	}
	if n == 1 {
		out[nodes[0]] = Position{}
		return out
	}
	if params.Iterations <= 0 {
		return placeOnCircle(nodes, scale)
	}

	index := make(map[string]int64, n)
	ug := simple.NewUndirectedGraph()
	for i, id := range nodes {
		index[id] = int64(i)
		ug.AddNode(simple.Node(i))
	}
	for _, e := range edges {
		i, ok1 := index[e.Source]
		j, ok2 := index[e.Target]
		if !ok1 || !ok2 || i == j {
			continue
		}
		ug.SetEdge(ug.NewEdge(simple.Node(i), simple.Node(j)))
	}

	repulsion := params.K
	if repulsion <= 0 {
		repulsion = 1
	}
	eades := layout.EadesR2{
		Updates:   params.Iterations,
		Repulsion: repulsion,
		Rate:      eadesRate,
		Theta:     eadesTheta,
		Src:       newSplitMix(uint64(params.Seed)),
	}
	opt := layout.NewOptimizerR2(orderedGraph{ug}, eades.Update)
	for opt.Update() {
	}

	xs := make([]float64, n)
	ys := make([]float64, n)
	for i := range nodes {
		v := opt.Coord2(int64(i))
		xs[i], ys[i] = v.X, v.Y
	}
	rescale(xs, ys, scale)
	for i, id := range nodes {
		out[id] = Position{X: xs[i], Y: ys[i]}
	}
	return out
}

// orderedGraph iterates nodes by ID so the optimizer places and sums them in
// a fixed order.
type orderedGraph struct {
	*simple.UndirectedGraph
}

func (g orderedGraph) Nodes() graph.Nodes {
	return byID(g.UndirectedGraph.Nodes())
}

func (g orderedGraph) From(id int64) graph.Nodes {
	return byID(g.UndirectedGraph.From(id))
}

func byID(it graph.Nodes) graph.Nodes {
	nodes := graph.NodesOf(it)
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID() < nodes[j].ID() })
	return iterator.NewOrderedNodes(nodes)
}

// placeOnCircle spaces nodes evenly on a circle of the given radius.
func placeOnCircle(nodes []string, radius float64) map[string]Position {
	out := make(map[string]Position, len(nodes))
	for i, id := range nodes {
		a := 2 * math.Pi * float64(i) / float64(len(nodes))
		out[id] = Position{X: radius * math.Cos(a), Y: radius * math.Sin(a)}
	}
	return out
}

// splitMix is a SplitMix64 generator. It has both Uint64 and Seed so it
// serves as a rand source for the gonum optimizer.
type splitMix struct {
	state uint64
}

func newSplitMix(seed uint64) *splitMix {
	return &splitMix{state: seed}
}

func (s *splitMix) Seed(seed uint64) {
	s.state = seed
}

func (s *splitMix) Uint64() uint64 {
	s.state += 0x9e3779b97f4a7c15
	z := s.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// rescale centres the points on the origin and scales them so the largest
// coordinate magnitude equals scale.
func rescale(xs, ys []float64, scale float64) {
	n := float64(len(xs))
	var mx, my float64
	for i := range xs {
		mx += xs[i]
		my += ys[i]
	}
	mx /= n
	my /= n

	var lim float64
	for i := range xs {
		xs[i] -= mx
		ys[i] -= my
		lim = math.Max(lim, math.Max(math.Abs(xs[i]), math.Abs(ys[i])))
	}
	if lim == 0 {
		return
	}
	for i := range xs {
		xs[i] *= scale / lim
		ys[i] *= scale / lim
	}
}
