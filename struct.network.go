package rbi

import (
	"encoding/gob"
	"fmt"
	"os"
)

// FlowNetwork is the downstream adjacency index of the catchment drainage
// network: catchment id to the ids it drains into. Built once per run from
// the flow-routing table and read-only thereafter.
type FlowNetwork struct {
	Down      map[int][]int
	Source    string // flow-table path the index was built from
	Mod, Size int64  // flow-table stamp at build time
}

// Restrict returns the subgraph whose edge sources are in keep. Targets are
// kept even when outside keep; the caller intersects the closure with its
// area of interest afterwards.
func (n *FlowNetwork) Restrict(keep map[int]bool) *FlowNetwork {
	d := make(map[int][]int, len(keep))
	for c, ds := range n.Down {
		if keep[c] {
			d[c] = ds
		}
	}
	return &FlowNetwork{Down: d, Source: n.Source, Mod: n.Mod, Size: n.Size}
}

func (n *FlowNetwork) SaveGob(fp string) error {
	f, err := os.Create(fp)
	if err != nil {
		return fmt.Errorf(" FlowNetwork.SaveGob %v", err)
	}
	if err := gob.NewEncoder(f).Encode(n); err != nil {
		return fmt.Errorf(" FlowNetwork.SaveGob %v", err)
	}
	f.Close()
	return nil
}

func LoadGobFlowNetwork(fp string) (*FlowNetwork, error) {
	var n FlowNetwork
	f, err := os.Open(fp)
	if err != nil {
		return nil, err
	}
	if err := gob.NewDecoder(f).Decode(&n); err != nil {
		return nil, err
	}
	f.Close()
	return &n, nil
}
