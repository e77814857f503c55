package rbi

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestBuildFlowNetwork_OutletSentinelDropped(t *testing.T) {
	n := BuildFlowNetwork([][2]int{{1, 2}, {2, 3}, {3, 0}})
	if _, ok := n.Down[3]; ok {
		t.Error("edge to outlet sentinel 0 must be dropped")
	}
	if len(n.Down[1]) != 1 || n.Down[1][0] != 2 {
		t.Errorf("Down[1] = %v, want [2]", n.Down[1])
	}
}

func TestFlowNetwork_Restrict(t *testing.T) {
	n := BuildFlowNetwork([][2]int{{1, 2}, {2, 3}, {4, 5}})
	r := n.Restrict(map[int]bool{1: true, 2: true})
	if _, ok := r.Down[4]; ok {
		t.Error("restricted graph must drop sources outside keep")
	}
	got := r.Downstream([]int{1})
	if !got[3] {
		t.Error("targets outside keep remain reachable; closure is intersected later")
	}
}

func TestLoadFlowTable(t *testing.T) {
	fp := filepath.Join(t.TempDir(), "flow.csv")
	if err := os.WriteFile(fp, []byte("from,to\n1,2\n2,3\n3,0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	edges, err := LoadFlowTable(fp)
	if err != nil {
		t.Fatalf("LoadFlowTable: %v", err)
	}
	if len(edges) != 3 {
		t.Fatalf("got %d edges, want 3", len(edges))
	}
}

func TestLoadFlowTable_Missing(t *testing.T) {
	_, err := LoadFlowTable(filepath.Join(t.TempDir(), "nope.csv"))
	if !errors.Is(err, ErrConfig) {
		t.Errorf("missing flow table: got %v, want ErrConfig", err)
	}
}

func TestLoadFlowTable_Malformed(t *testing.T) {
	fp := filepath.Join(t.TempDir(), "flow.csv")
	if err := os.WriteFile(fp, []byte("from,to\n1,2\nx,y\n"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadFlowTable(fp)
	if !errors.Is(err, ErrConfig) {
		t.Errorf("malformed flow table: got %v, want ErrConfig", err)
	}
}

func TestFlowNetworkFromTable_EditedTableInvalidatesGob(t *testing.T) {
	fp := filepath.Join(t.TempDir(), "flow.csv")
	if err := os.WriteFile(fp, []byte("1,2\n2,0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	n1, err := FlowNetworkFromTable(fp)
	if err != nil {
		t.Fatalf("FlowNetworkFromTable: %v", err)
	}
	if _, ok := n1.Down[2]; ok {
		t.Fatal("fixture: 2 drains to the outlet only")
	}

	// a later run starts with an empty in-run cache but finds the gob on
	// disk; an edit to the table between runs must not serve the old index.
	delete(netCache, fp)
	if err := os.WriteFile(fp, []byte("1,2\n2,3\n3,0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	n2, err := FlowNetworkFromTable(fp)
	if err != nil {
		t.Fatalf("FlowNetworkFromTable: %v", err)
	}
	if len(n2.Down[2]) != 1 || n2.Down[2][0] != 3 {
		t.Errorf("Down[2] = %v, want [3]: stale gob served after table edit", n2.Down[2])
	}
	if !n2.Downstream([]int{1})[3] {
		t.Error("closure from 1 must reach the added catchment 3")
	}
}

func TestFlowNetworkFromTable_Cached(t *testing.T) {
	fp := filepath.Join(t.TempDir(), "flow.csv")
	if err := os.WriteFile(fp, []byte("1,2\n2,0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	n1, err := FlowNetworkFromTable(fp)
	if err != nil {
		t.Fatalf("FlowNetworkFromTable: %v", err)
	}
	n2, err := FlowNetworkFromTable(fp)
	if err != nil {
		t.Fatalf("FlowNetworkFromTable: %v", err)
	}
	if n1 != n2 {
		t.Error("index must be built once per source within a run")
	}
	if n1.Source != fp {
		t.Errorf("Source = %s, want %s", n1.Source, fp)
	}
}
