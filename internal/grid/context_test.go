package grid

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
)

func TestContextCheck(t *testing.T) {
	ctx := &Context{Width: 3, Height: 2, Mask: []int{0, 5}}

	assert.NoError(t, ctx.Check(6))
	assert.ErrorIs(t, ctx.Check(5), ErrLengthMismatch)
	assert.ErrorIs(t, ctx.Check(7), ErrLengthMismatch)

	ctx.Mask = []int{6}
	assert.ErrorIs(t, ctx.Check(6), ErrStaleMask)

	empty := &Context{}
	assert.ErrorIs(t, empty.Check(0), ErrLengthMismatch)
}

func TestContextBounds(t *testing.T) {
	ctx := &Context{
		GeoTransform: [6]float64{100, 10, 0, 200, 0, -10},
		Width:        4,
		Height:       3,
	}

	assert.Equal(t, orb.Bound{Min: orb.Point{100, 170}, Max: orb.Point{140, 200}}, ctx.Bounds())
}

func TestContextBoundsRotated(t *testing.T) {
	ctx := &Context{
		GeoTransform: [6]float64{0, 1, 1, 0, 1, -1},
		Width:        2,
		Height:       2,
	}

	// corners: (0,0) (2,2) (2,-2) (4,0)
	assert.Equal(t, orb.Bound{Min: orb.Point{0, -2}, Max: orb.Point{4, 2}}, ctx.Bounds())
}

func TestContextSameGrid(t *testing.T) {
	a := &Context{GeoTransform: testGeoTransform, Projection: "wkt", Width: 2, Height: 2, Mask: []int{0}}
	b := &Context{GeoTransform: testGeoTransform, Projection: "wkt", Width: 2, Height: 2}

	assert.True(t, a.SameGrid(b))
	assert.False(t, a.SameGrid(nil))

	b.Height = 3
	assert.False(t, a.SameGrid(b))

	b.Height = 2
	b.Projection = "other"
	assert.False(t, a.SameGrid(b))
}
