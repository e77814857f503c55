package overlay

import (
	"fmt"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/shp"
	"github.com/ctessum/geom/index/rtree"
	"github.com/im7mortal/UTM"
)

// PointSet is an rtree-indexed point layer (e.g. beneficiary addresses).
type PointSet struct {
	tree *rtree.Rtree
	N    int
}

type pointItem struct{ geom.Point }

// NewPointSet indexes pts.
func NewPointSet(pts []geom.Point) *PointSet {
	t := rtree.NewTree(25, 50)
	for _, p := range pts {
		t.Insert(pointItem{p})
	}
	return &PointSet{tree: t, N: len(pts)}
}

// CountPointsIn is a one-to-one spatial join with an intersects predicate:
// the number of points of ps inside (or on the edge of) poly.
func CountPointsIn(poly geom.Polygonal, ps *PointSet) int {
	if poly == nil || ps == nil {
		return 0
	}
	n := 0
	for _, it := range ps.tree.SearchIntersect(poly.Bounds()) {
		p := it.(pointItem).Point
		if p.Within(poly) != geom.Outside {
			n++
		}
	}
	return n
}

// projectPoints converts lat/lon points to UTM metres in one planar frame.
// The zone and hemisphere are pinned by the first point; the library always
// projects into a point's own zone, so a layer whose points land in another
// zone would silently occupy a different frame and is rejected instead.
func projectPoints(pts []geom.Point) ([]geom.Point, error) {
	if len(pts) == 0 {
		return pts, nil
	}
	northern := pts[0].Y >= 0
	zone := 0
	out := make([]geom.Point, len(pts))
	for i, p := range pts {
		e, n, z, _, err := UTM.FromLatLon(p.Y, p.X, northern)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			zone = z
		} else if z != zone {
			return nil, fmt.Errorf("point %d lands in UTM zone %d, layer frame is zone %d", i, z, zone)
		}
		if (p.Y >= 0) != northern {
			return nil, fmt.Errorf("point %d crosses the equator, layer frame is northern=%v", i, northern)
		}
		out[i] = geom.Point{X: e, Y: n}
	}
	return out, nil
}

// LoadPoints reads a point shapefile. When geographic is set the coordinates
// are taken as lat/lon and projected to UTM metres so they share the planar
// unit of the polygon layers.
func LoadPoints(fp string, geographic bool) (*PointSet, error) {
	d, err := shp.NewDecoder(fp)
	if err != nil {
		return nil, fmt.Errorf("overlay.LoadPoints %s: %v", fp, err)
	}
	defer d.Close()

	var pts []geom.Point
	for {
		g, _, more := d.DecodeRowFields()
		if !more {
			break
		}
		p, ok := g.(geom.Point)
		if !ok {
			return nil, fmt.Errorf("overlay.LoadPoints %s: layer is not a point layer", fp)
		}
		pts = append(pts, p)
	}
	if err := d.Error(); err != nil {
		return nil, fmt.Errorf("overlay.LoadPoints %s: %v", fp, err)
	}
	if geographic {
		if pts, err = projectPoints(pts); err != nil {
			return nil, fmt.Errorf("overlay.LoadPoints %s: %v", fp, err)
		}
	}
	return NewPointSet(pts), nil
}
