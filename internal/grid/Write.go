package grid

import (
	"fmt"
	"os"

	"github.com/airbusgeo/godal"
	log "github.com/sirupsen/logrus"
)

// Write persists data as a single band Float32 raster using the geometry of ctx.
// Cells listed in ctx.Mask are set to the no-data value regardless of data;
// data itself is left untouched.
func Write(path string, ctx *Context, data []float64, opts ...Option) error {
	if ctx == nil {
		return ErrNoContext
	}
	if err := ctx.Check(len(data)); err != nil {
		return err
	}
	o := newOptions(opts)

	buf := make([]float32, len(data))
	for i, v := range data {
		buf[i] = float32(v)
	}
	for _, i := range ctx.Mask {
		buf[i] = float32(o.noData)
	}

	ds, err := godal.Create(o.driver, path, 1, godal.Float32, ctx.Width, ctx.Height,
		godal.CreationOption(o.creationOptions...))
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if err := populate(ds, ctx, buf, o.noData); err != nil {
		ds.Close()
		os.Remove(path)
		return fmt.Errorf("write %s: %w", path, err)
	}

	// closing flushes the dataset to disk
	if err := ds.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("close %s: %w", path, err)
	}

	log.WithFields(log.Fields{
		"path":   path,
		"width":  ctx.Width,
		"height": ctx.Height,
		"masked": len(ctx.Mask),
	}).Debug("wrote grid")

	return nil
}

func populate(ds *godal.Dataset, ctx *Context, buf []float32, noData float64) error {
	if err := ds.SetGeoTransform(ctx.GeoTransform); err != nil {
		return err
	}
	if ctx.Projection != "" {
		if err := ds.SetProjection(ctx.Projection); err != nil {
			return err
		}
	}

	band := ds.Bands()[0]
	if err := band.Write(0, 0, buf, ctx.Width, ctx.Height); err != nil {
		return err
	}
	return band.SetNoData(noData)
}
