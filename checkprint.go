package rbi

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/maseology/mmio"
)

func (n *FlowNetwork) checkandprint(chkdir string) {
	ne := 0
	srcs := make([]int, 0, len(n.Down))
	for c, ds := range n.Down {
		srcs = append(srcs, c)
		ne += len(ds)
	}
	sort.Ints(srcs)
	fmt.Printf("   flow network: %s sources, %s downstream links\n",
		mmio.Thousands(int64(len(srcs))), mmio.Thousands(int64(ne)))

	csvw := mmio.NewCSVwriter(filepath.Join(chkdir, "network.edges.csv"))
	defer csvw.Close()
	if err := csvw.WriteHead("from,to"); err != nil {
		fmt.Printf("   network.edges.csv not written: %v\n", err)
		return
	}
	for _, c := range srcs {
		for _, d := range n.Down[c] {
			csvw.WriteLine(c, d)
		}
	}
}

func checkandprintFlood(chkdir string, sites []Site, tbl *ResultsTable) {
	csvw := mmio.NewCSVwriter(filepath.Join(chkdir, "flood.summary.csv"))
	defer csvw.Close()
	if err := csvw.WriteHead("siteid,dsfldarea,dsfldpct,benecnt"); err != nil {
		fmt.Printf("   flood.summary.csv not written: %v\n", err)
		return
	}
	nfrag := 0
	for _, s := range sites {
		a := tbl.Get(s.ID, ColDsFldArea)
		if a != "" && a != "0.000" {
			nfrag++
		}
		csvw.WriteLine(s.ID, a, tbl.Get(s.ID, ColDsFldPct), tbl.Get(s.ID, ColBeneCnt))
	}
	fmt.Printf("   %d of %d sites carry a downstream flood fragment\n", nfrag, len(sites))
}
