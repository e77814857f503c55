package overlay

import (
	"github.com/ctessum/geom"
	"github.com/ctessum/geom/index/rtree"
)

// PolySet is an rtree-indexed polygon layer used for coarse spatial
// selection; exact predicates are applied by the caller on the candidates.
type PolySet struct {
	tree *rtree.Rtree
	N    int
}

type polyItem struct{ geom.Polygonal }

func NewPolySet(polys []geom.Polygonal) *PolySet {
	t := rtree.NewTree(25, 50)
	n := 0
	for _, p := range polys {
		if p == nil {
			continue
		}
		t.Insert(polyItem{p})
		n++
	}
	return &PolySet{tree: t, N: n}
}

// Intersecting returns the members whose bounds overlap pg's bounds.
func (ps *PolySet) Intersecting(pg geom.Polygonal) []geom.Polygonal {
	if pg == nil {
		return nil
	}
	its := ps.tree.SearchIntersect(pg.Bounds())
	out := make([]geom.Polygonal, len(its))
	for i, it := range its {
		out[i] = it.(polyItem).Polygonal
	}
	return out
}
