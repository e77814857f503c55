package rbi

import "testing"

func net(edges ...[2]int) *FlowNetwork { return BuildFlowNetwork(edges) }

func TestDownstream_IncludesSeeds(t *testing.T) {
	n := net([2]int{1, 2}, [2]int{2, 3}, [2]int{5, 6})
	for _, seeds := range [][]int{{1}, {3}, {1, 5}, {9}} {
		got := n.Downstream(seeds)
		for _, s := range seeds {
			if !got[s] {
				t.Errorf("Downstream(%v) missing seed %d", seeds, s)
			}
		}
	}
}

func TestDownstream_Monotone(t *testing.T) {
	n := net([2]int{1, 2}, [2]int{2, 3}, [2]int{4, 3}, [2]int{3, 7})
	r1 := n.Downstream([]int{1})
	r2 := n.Downstream([]int{1, 4})
	for c := range r1 {
		if !r2[c] {
			t.Errorf("reachable({1}) ⊄ reachable({1,4}): %d missing", c)
		}
	}
}

func TestDownstream_CycleTerminates(t *testing.T) {
	// confluence/diversion loops occur in real drainage networks; the
	// traversal must terminate and return both members.
	n := net([2]int{10, 20}, [2]int{20, 10})
	got := n.Downstream([]int{10})
	if len(got) != 2 || !got[10] || !got[20] {
		t.Errorf("cycle closure = %v, want {10,20}", got)
	}
}

func TestDownstream_AbsentSeedIsLeaf(t *testing.T) {
	n := net([2]int{1, 2})
	got := n.Downstream([]int{99})
	if len(got) != 1 || !got[99] {
		t.Errorf("absent seed closure = %v, want {99}", got)
	}
}

func TestDownstream_NoOrderingDuplicateSeeds(t *testing.T) {
	n := net([2]int{1, 2}, [2]int{2, 3})
	got := n.Downstream([]int{1, 1, 2})
	want := []int{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("closure = %v, want %v", got, want)
	}
	for _, c := range want {
		if !got[c] {
			t.Errorf("closure missing %d", c)
		}
	}
}
