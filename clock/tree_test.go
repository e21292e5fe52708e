package clock

import (
	"testing"
)

func TestTreeMatchesDerive(t *testing.T) {
	tests := []struct {
		name string
		s    Snapshot
	}{
		{"hsi", Snapshot{Source: HSI, HSIDiv: 2}},
		{"hse", Snapshot{Source: HSE, MCUDiv: 1}},
		{"csi", Snapshot{Source: CSI}},
		{"pll3", Snapshot{Source: PLL3, PLL: PLLConfig{Source: HSE, M: 1, N: 24, P: 1}}},
		{"pll3Fraction", Snapshot{Source: PLL3, PLL: PLLConfig{Source: CSI, M: 1, N: 99, FracEnable: true, FracValue: 1}, MCUDiv: 3}},
		{"pll3NoClock", Snapshot{Source: PLL3, PLL: PLLConfig{Source: NoClock, M: 1, N: 24}}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			tree := BuildTree(test.s, DefaultOscillators)
			sorted, err := tree.Sorted()
			if err != nil {
				t.Fatal(err)
			}
			if len(sorted) != 8 {
				t.Fatalf("got %d nodes, expected 8", len(sorted))
			}

			last := sorted[len(sorted)-1]
			if last.Name != NodeMCU {
				t.Errorf("last node = %s, expected %s", last.Name, NodeMCU)
			}
			if expected := Derive(test.s, DefaultOscillators); last.Freq != expected {
				t.Errorf("%s = %d, Derive() = %d", NodeMCU, last.Freq, expected)
			}
		})
	}
}

func TestTreeOrder(t *testing.T) {
	tree := BuildTree(Snapshot{Source: PLL3, PLL: PLLConfig{Source: HSE, M: 1, N: 24, P: 1}}, DefaultOscillators)
	sorted, err := tree.Sorted()
	if err != nil {
		t.Fatal(err)
	}

	position := map[string]int{}
	for i, n := range sorted {
		position[n.Name] = i
	}

	edges := [][2]string{
		{NodeHSE, NodePLL3Ref},
		{NodePLL3Ref, NodePLL3VCO},
		{NodePLL3VCO, NodePLL3P},
		{NodePLL3P, NodeMCUSS},
		{NodeMCUSS, NodeMCU},
	}
	for _, e := range edges {
		if position[e[0]] >= position[e[1]] {
			t.Errorf("%s sorted after %s", e[0], e[1])
		}
	}

	if f := tree.Node(NodePLL3VCO).Freq; f != 600*MHz {
		t.Errorf("%s = %v, expected 600 MHz", NodePLL3VCO, f)
	}
	if f := tree.Node(NodePLL3P).Freq; f != 300*MHz {
		t.Errorf("%s = %v, expected 300 MHz", NodePLL3P, f)
	}
}

func TestTreeSelection(t *testing.T) {
	s := Snapshot{Source: HSI, PLL: PLLConfig{Source: CSI, M: 1, N: 24}}
	tree := BuildTree(s, DefaultOscillators)

	selected := func(node string) []string {
		var names []string
		for _, in := range tree.Inputs(tree.Node(node)) {
			if in.Selected {
				names = append(names, in.Node.Name)
			}
		}
		return names
	}

	if got := selected(NodeMCUSS); len(got) != 1 || got[0] != NodeHSI {
		t.Errorf("%s selected inputs = %v, expected [%s]", NodeMCUSS, got, NodeHSI)
	}
	if got := selected(NodePLL3Ref); len(got) != 1 || got[0] != NodeCSI {
		t.Errorf("%s selected inputs = %v, expected [%s]", NodePLL3Ref, got, NodeCSI)
	}
	if got := len(tree.Inputs(tree.Node(NodeMCUSS))); got != 4 {
		t.Errorf("%s has %d inputs, expected 4", NodeMCUSS, got)
	}

	// Each oscillator fans out to the PLL input mux and the MCU mux.
	for _, name := range []string{NodeHSI, NodeHSE, NodeCSI} {
		out := tree.Fanout(tree.Node(name))
		if len(out) != 2 || out[0].Name != NodePLL3Ref || out[1].Name != NodeMCUSS {
			t.Errorf("%s fan-out = %v", name, out)
		}
	}

	if got := selected(NodeMCU); len(got) != 1 || got[0] != NodeMCUSS {
		t.Errorf("%s selected inputs = %v", NodeMCU, got)
	}
}
