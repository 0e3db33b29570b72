package grid

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb"
)

var (
	// ErrNoContext is returned by Write when called without a raster context.
	ErrNoContext = errors.New("grid: no raster context")
	// ErrNoBand is returned when the source raster has no readable band.
	ErrNoBand = errors.New("grid: raster has no band")
	// ErrLengthMismatch is returned when an array does not match the context size.
	ErrLengthMismatch = errors.New("grid: array length does not match raster size")
	// ErrStaleMask is returned when the context mask addresses cells outside the raster.
	ErrStaleMask = errors.New("grid: mask does not fit raster size")
)

// Context carries the spatial reference of the raster it was read from and
// the flat indices of its invalid cells. Write needs one to reconstitute the grid.
type Context struct {
	GeoTransform [6]float64
	Projection   string
	Width        int
	Height       int
	// Mask holds ascending flat indices of cells below the threshold.
	Mask []int
}

// Size returns the number of cells (Width * Height).
func (c *Context) Size() int {
	return c.Width * c.Height
}

// Check verifies that an array of length n can be written with this context.
func (c *Context) Check(n int) error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: invalid raster size %dx%d", ErrLengthMismatch, c.Width, c.Height)
	}
	if n != c.Size() {
		return fmt.Errorf("%w: got %d values, raster is %dx%d (%d)", ErrLengthMismatch, n, c.Width, c.Height, c.Size())
	}
	for _, i := range c.Mask {
		if i < 0 || i >= n {
			return fmt.Errorf("%w: index %d outside [0, %d)", ErrStaleMask, i, n)
		}
	}
	return nil
}

// SameGrid reports whether both contexts describe the same raster geometry.
// Masks are not compared.
func (c *Context) SameGrid(other *Context) bool {
	if other == nil {
		return false
	}
	return c.Width == other.Width &&
		c.Height == other.Height &&
		c.GeoTransform == other.GeoTransform &&
		c.Projection == other.Projection
}

// Apply maps pixel/line coordinates to georeferenced coordinates.
func (c *Context) Apply(px, py float64) (x, y float64) {
	gt := c.GeoTransform
	x = gt[0] + px*gt[1] + py*gt[2]
	y = gt[3] + px*gt[4] + py*gt[5]
	return x, y
}

// Bounds returns the extent of the raster in its own coordinate system.
// All four corners are transformed so rotated rasters are covered.
func (c *Context) Bounds() orb.Bound {
	w, h := float64(c.Width), float64(c.Height)
	corners := [4][2]float64{{0, 0}, {w, 0}, {0, h}, {w, h}}

	x, y := c.Apply(0, 0)
	bound := orb.Point{x, y}.Bound()
	for _, corner := range corners[1:] {
		x, y := c.Apply(corner[0], corner[1])
		bound = bound.Extend(orb.Point{x, y})
	}
	return bound
}

// defaultGeoTransform is what GDAL reports for rasters without georeferencing.
var defaultGeoTransform = [6]float64{0, 1, 0, 0, 0, 1}
