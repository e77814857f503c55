package overlay

import (
	"errors"
	"fmt"

	"github.com/ctessum/geom"
	"github.com/ctessum/sparse"
	"github.com/maseology/goHydro/grid"
	"github.com/maseology/mmio"
)

// ErrRasterUnavailable signals that the raster zonal-statistics capability
// is absent for the run (no raster loaded). It is a distinct outcome from a
// zonal sum of zero and callers must propagate the difference.
var ErrRasterUnavailable = errors.New("overlay: raster analysis unavailable")

// Raster is a cell-centred value grid: goHydro grid definition for
// georeferencing, dense payload indexed by cell id.
type Raster struct {
	GD   *grid.Definition
	Data *sparse.DenseArray
	Cids []int // cells holding a value
}

// LoadRaster reads a grid definition and a binary cell-id to value map
// (rmap).
func LoadRaster(gdefFP, rmapFP string) (*Raster, error) {
	gd, err := grid.ReadGDEF(gdefFP, false)
	if err != nil {
		return nil, fmt.Errorf("overlay.LoadRaster %s: %v", gdefFP, err)
	}
	m, err := mmio.ReadBinaryRMAP(rmapFP)
	if err != nil {
		return nil, fmt.Errorf("overlay.LoadRaster %s: %v", rmapFP, err)
	}
	mx, cids := 0, make([]int, 0, len(m))
	for c := range m {
		if c > mx {
			mx = c
		}
		cids = append(cids, c)
	}
	da := sparse.ZerosDense(mx + 1)
	for c, v := range m {
		da.Set(v, c)
	}
	return &Raster{GD: gd, Data: da, Cids: cids}, nil
}

// SumRasterIn returns the zonal sum of raster values whose cell centre falls
// within poly. A nil raster returns ErrRasterUnavailable, never zero.
func SumRasterIn(poly geom.Polygonal, r *Raster) (float64, error) {
	if r == nil || r.Data == nil {
		return 0, ErrRasterUnavailable
	}
	if poly == nil {
		return 0, nil
	}
	b, sum := poly.Bounds(), 0.
	for _, c := range r.Cids {
		xy := r.GD.Coord[c]
		p := geom.Point{X: xy.X, Y: xy.Y}
		if !b.Overlaps(p.Bounds()) {
			continue
		}
		if p.Within(poly) != geom.Outside {
			sum += r.Data.Get(c)
		}
	}
	return sum, nil
}
