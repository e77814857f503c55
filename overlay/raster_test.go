package overlay

import (
	"errors"
	"testing"

	"github.com/ctessum/sparse"
	"github.com/maseology/goHydro/grid"
	"github.com/maseology/mmaths"
	"github.com/stretchr/testify/assert"
)

func testRaster() *Raster {
	// three cells: two centred inside the unit test square, one outside.
	gd := &grid.Definition{
		Coord: map[int]mmaths.Point{
			0: {X: 2, Y: 2},
			1: {X: 8, Y: 8},
			2: {X: 50, Y: 50},
		},
	}
	da := sparse.ZerosDense(3)
	da.Set(1.5, 0)
	da.Set(2.5, 1)
	da.Set(99., 2)
	return &Raster{GD: gd, Data: da, Cids: []int{0, 1, 2}}
}

func TestSumRasterIn(t *testing.T) {
	v, err := SumRasterIn(sq(0, 0, 10), testRaster())
	if assert.NoError(t, err) {
		assert.InDelta(t, 4., v, 1e-9)
	}
}

func TestSumRasterIn_Unavailable(t *testing.T) {
	// absent capability is a distinct signal, never a zero.
	_, err := SumRasterIn(sq(0, 0, 10), nil)
	assert.True(t, errors.Is(err, ErrRasterUnavailable))
}

func TestSumRasterIn_NilZone(t *testing.T) {
	v, err := SumRasterIn(nil, testRaster())
	assert.NoError(t, err)
	assert.Zero(t, v)
}
