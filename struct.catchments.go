package rbi

import (
	"fmt"
	"sort"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/index/rtree"
	"github.com/jbousquin/rbi/overlay"
	"github.com/maseology/mmaths"
)

// Catchments is the drainage-basin polygon layer, rtree-indexed, keyed by
// the configurable join field whose id domain matches the flow table.
type Catchments struct {
	tree *rtree.Rtree
	geom map[int]geom.Polygonal
	N    int
}

type catchItem struct {
	geom.Polygonal
	id int
}

// LoadCatchments reads the catchment layer; joinField names the hydrologic
// id attribute.
func LoadCatchments(fp, joinField string) (*Catchments, error) {
	ips, err := overlay.LoadIDPolygons(fp, joinField)
	if err != nil {
		return nil, fmt.Errorf("%w: catchment layer: %v", ErrConfig, err)
	}
	if len(ips) == 0 {
		return nil, fmt.Errorf("%w: catchment layer %s is empty", ErrConfig, fp)
	}
	return newCatchments(ips), nil
}

func newCatchments(ips []overlay.IDPoly) *Catchments {
	ct := &Catchments{
		tree: rtree.NewTree(25, 50),
		geom: make(map[int]geom.Polygonal, len(ips)),
		N:    len(ips),
	}
	for _, ip := range ips {
		ct.tree.Insert(catchItem{ip.Poly, ip.ID})
		ct.geom[ip.ID] = ip.Poly // duplicate ids keep the last geometry
	}
	return ct
}

// Intersecting returns ids of catchments overlapping pg with non-zero area.
func (ct *Catchments) Intersecting(pg geom.Polygonal) []int {
	var ids []int
	for _, it := range ct.tree.SearchIntersect(pg.Bounds()) {
		c := it.(catchItem)
		if x := c.Intersection(pg); x != nil && x.Area() > 0 {
			ids = append(ids, c.id)
		}
	}
	ids = mmaths.UniqueInts(ids)
	sort.Ints(ids)
	return ids
}

// Geoms collects the polygons of the given catchment ids; ids without a
// polygon (flow-table entries outside the layer) are skipped.
func (ct *Catchments) Geoms(ids []int) []geom.Polygonal {
	gs := make([]geom.Polygonal, 0, len(ids))
	for _, id := range ids {
		if g, ok := ct.geom[id]; ok {
			gs = append(gs, g)
		}
	}
	return gs
}
