package grid

import (
	"fmt"
	"strings"

	"github.com/airbusgeo/godal"
	log "github.com/sirupsen/logrus"
)

func init() {
	godal.RegisterAll()
}

// Read loads the first band of the raster at path into a masked flat array.
func Read(path string, opts ...Option) (*Sample, error) {
	sample, _, err := read(path, newOptions(opts), false)
	return sample, err
}

// ReadWithContext is Read that also returns the raster's Context, with the
// mask computed from this read. Pass the context to Write.
func ReadWithContext(path string, opts ...Option) (*Sample, *Context, error) {
	return read(path, newOptions(opts), true)
}

// gdalPath lets GDAL decompress gzipped grids such as dem.asc.gz on the fly.
func gdalPath(path string) string {
	if strings.HasSuffix(strings.ToLower(path), ".gz") && !strings.HasPrefix(path, "/vsi") {
		return "/vsigzip/" + path
	}
	return path
}

func read(path string, o options, keepInfo bool) (*Sample, *Context, error) {
	ds, err := godal.Open(gdalPath(path))
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer ds.Close()

	structure := ds.Structure()
	bands := ds.Bands()
	if structure.NBands < 1 || len(bands) == 0 {
		return nil, nil, fmt.Errorf("%s: %w", path, ErrNoBand)
	}

	width, height := structure.SizeX, structure.SizeY
	values := make([]float64, width*height)
	if err := bands[0].Read(0, 0, values, width, height); err != nil {
		return nil, nil, fmt.Errorf("read band 1 of %s: %w", path, err)
	}

	sample := NewSample(values, o.threshold)

	log.WithFields(log.Fields{
		"path":    path,
		"width":   width,
		"height":  height,
		"invalid": sample.InvalidCount(),
	}).Debug("read grid")

	if !keepInfo {
		return sample, nil, nil
	}

	gt, err := ds.GeoTransform()
	if err != nil {
		log.WithField("path", path).Warn("raster has no geotransform, using identity")
		gt = defaultGeoTransform
	}

	ctx := &Context{
		GeoTransform: gt,
		Projection:   ds.Projection(),
		Width:        width,
		Height:       height,
		Mask:         sample.MaskIndices(),
	}
	return sample, ctx, nil
}
