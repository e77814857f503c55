package rbi

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/maseology/mmio"
)

// BuildFlowNetwork records a downstream link for every edge with a non-zero
// to-id. A to-id of 0 is the outlet sentinel and terminates routing, so
// those edges are dropped. O(E).
func BuildFlowNetwork(edges [][2]int) *FlowNetwork {
	d := make(map[int][]int, len(edges))
	for _, e := range edges {
		if e[1] == 0 {
			continue
		}
		d[e[0]] = append(d[e[0]], e[1])
	}
	return &FlowNetwork{Down: d}
}

// LoadFlowTable reads a csv of (fromCatchmentID,toCatchmentID) rows.
func LoadFlowTable(fp string) ([][2]int, error) {
	if _, ok := mmio.FileExists(fp); !ok {
		return nil, fmt.Errorf("%w: flow table %s not found", ErrConfig, fp)
	}
	f, err := os.Open(fp)
	if err != nil {
		return nil, fmt.Errorf("%w: flow table: %v", ErrConfig, err)
	}
	defer f.Close()

	var edges [][2]int
	frst := true
	for rec := range mmio.LoadCSV(io.Reader(f)) {
		if len(rec) < 2 {
			return nil, fmt.Errorf("%w: flow table %s: short row %v", ErrConfig, fp, rec)
		}
		from, err0 := strconv.Atoi(rec[0])
		to, err1 := strconv.Atoi(rec[1])
		if err0 != nil || err1 != nil {
			if frst { // header row
				frst = false
				continue
			}
			return nil, fmt.Errorf("%w: flow table %s: non-integer row %v", ErrConfig, fp, rec)
		}
		frst = false
		edges = append(edges, [2]int{from, to})
	}
	if len(edges) == 0 {
		return nil, fmt.Errorf("%w: flow table %s holds no edges", ErrConfig, fp)
	}
	return edges, nil
}

var netCache = map[string]*FlowNetwork{}

// flowTableStamp identifies a flow table's content across runs.
func flowTableStamp(fp string) (mod, size int64) {
	fi, err := os.Stat(fp)
	if err != nil {
		return 0, 0
	}
	return fi.ModTime().Unix(), fi.Size()
}

// FlowNetworkFromTable builds (or returns the already-built) adjacency index
// for the given flow-table source, so one run never rebuilds it. The index
// is also gob-cached beside the table; a gob built from an earlier edit of
// the table (stamp mismatch) is discarded and rebuilt.
func FlowNetworkFromTable(fp string) (*FlowNetwork, error) {
	if n, ok := netCache[fp]; ok {
		return n, nil
	}
	mod, size := flowTableStamp(fp)
	gfp := fp + ".gob"
	if _, ok := mmio.FileExists(gfp); ok {
		if n, err := LoadGobFlowNetwork(gfp); err == nil && n.Source == fp && n.Mod == mod && n.Size == size {
			netCache[fp] = n
			return n, nil
		}
		mmio.DeleteFile(gfp) // stale or unreadable
	}
	edges, err := LoadFlowTable(fp)
	if err != nil {
		return nil, err
	}
	n := BuildFlowNetwork(edges)
	n.Source = fp
	n.Mod, n.Size = mod, size
	if err := n.SaveGob(gfp); err != nil {
		fmt.Printf(" FlowNetworkFromTable: gob cache not written: %v\n", err)
	}
	netCache[fp] = n
	return n, nil
}
