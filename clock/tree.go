package clock

import (
	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Clock-tree node names, as used in the reference manual.
const (
	NodeHSI     = "hsi_ck"
	NodeHSE     = "hse_ck"
	NodeCSI     = "csi_ck"
	NodePLL3Ref = "pll3_ref_ck"
	NodePLL3VCO = "pll3_vco_ck"
	NodePLL3P   = "pll3_p_ck"
	NodeMCUSS   = "mcuss_ck"
	NodeMCU     = "mcu_ck"
)

// Node is one stage of the clock tree.
type Node struct {
	id   int64
	Name string
	Freq Frequency
}

func (n *Node) ID() int64 {
	return n.id
}

// Tree is the part of the clock tree that can feed mcu_ck. An oscillator
// fans out to both the PLL3 input mux and the MCU mux; every possible input
// is an edge and the selected ones are marked active.
type Tree struct {
	graph  *simple.DirectedGraph
	nodes  map[string]*Node
	active map[[2]int64]bool
}

// BuildTree evaluates every node of the tree for s. The mcu_ck node always
// equals Derive(s, osc).
func BuildTree(s Snapshot, osc Oscillators) *Tree {
	t := &Tree{
		graph:  simple.NewDirectedGraph(),
		nodes:  map[string]*Node{},
		active: map[[2]int64]bool{},
	}

	hsi := t.addNode(NodeHSI, sourceFrequency(HSI, s.HSIDiv, osc))
	hse := t.addNode(NodeHSE, sourceFrequency(HSE, s.HSIDiv, osc))
	csi := t.addNode(NodeCSI, sourceFrequency(CSI, s.HSIDiv, osc))
	oscillators := map[Source]*Node{HSI: hsi, HSE: hse, CSI: csi}

	ref := t.addNode(NodePLL3Ref, pllReference(s.PLL, s.HSIDiv, osc))
	vco := t.addNode(NodePLL3VCO, vcoFrequency(s.PLL, s.HSIDiv, osc))
	pllP := t.addNode(NodePLL3P, pllOutput(s.PLL, s.HSIDiv, osc))

	var mcuss Frequency
	if s.Source == PLL3 {
		mcuss = pllP.Freq
	} else {
		mcuss = sourceFrequency(s.Source, s.HSIDiv, osc)
	}
	mss := t.addNode(NodeMCUSS, mcuss)
	mcu := t.addNode(NodeMCU, Derive(s, osc))

	for src, node := range oscillators {
		t.connect(node, ref, s.PLL.Source == src)
		t.connect(node, mss, s.Source == src)
	}
	t.connect(ref, vco, true)
	t.connect(vco, pllP, true)
	t.connect(pllP, mss, s.Source == PLL3)
	t.connect(mss, mcu, true)

	return t
}

func (t *Tree) addNode(name string, freq Frequency) *Node {
	n := &Node{id: int64(len(t.nodes)), Name: name, Freq: freq}
	t.graph.AddNode(n)
	t.nodes[name] = n
	return n
}

func (t *Tree) connect(from, to *Node, active bool) {
	t.graph.SetEdge(t.graph.NewEdge(from, to))
	t.active[[2]int64{from.ID(), to.ID()}] = active
}

// Node returns the named node or nil.
func (t *Tree) Node(name string) *Node {
	return t.nodes[name]
}

// Sorted returns the nodes in dependency order, oscillators first and
// mcu_ck last.
func (t *Tree) Sorted() ([]*Node, error) {
	sorted, err := topo.SortStabilized(t.graph, byID)
	if err != nil {
		return nil, err
	}

	nodes := make([]*Node, len(sorted))
	for i, n := range sorted {
		nodes[i] = n.(*Node)
	}
	return nodes, nil
}

// Input is a possible driver of a node.
type Input struct {
	Node     *Node
	Selected bool
}

// Inputs returns the nodes that can drive n, marking the selected ones.
func (t *Tree) Inputs(n *Node) []Input {
	var inputs []Input
	for _, from := range graph.NodesOf(t.graph.To(n.ID())) {
		inputs = append(inputs, Input{
			Node:     from.(*Node),
			Selected: t.active[[2]int64{from.ID(), n.ID()}],
		})
	}
	slices.SortFunc(inputs, func(a, b Input) bool {
		return a.Node.id < b.Node.id
	})
	return inputs
}

// Fanout returns the nodes n feeds.
func (t *Tree) Fanout(n *Node) []*Node {
	var outputs []*Node
	for _, to := range graph.NodesOf(t.graph.From(n.ID())) {
		outputs = append(outputs, to.(*Node))
	}
	slices.SortFunc(outputs, func(a, b *Node) bool {
		return a.id < b.id
	})
	return outputs
}

func byID(nodes []graph.Node) {
	slices.SortFunc(nodes, func(a, b graph.Node) bool {
		return a.ID() < b.ID()
	})
}

func vcoFrequency(pll PLLConfig, hsiDiv uint8, osc Oscillators) Frequency {
	if pll.M == 0 {
		return 0
	}
	vco := pllVCO(pll, hsiDiv, osc)
	if vco >= maxFrequency {
		return Frequency(^uint32(0))
	}
	return Frequency(vco)
}
