package footprint

import (
	"os"

	"github.com/gruppe-adler/meh-grid/internal/grid"
	"github.com/paulmach/orb/geojson"
)

// Feature builds a polygon feature covering the extent of a raster context.
// The masked cell count is reported as "invalid".
func Feature(ctx *grid.Context) *geojson.Feature {
	feature := geojson.NewFeature(ctx.Bounds().ToPolygon())
	feature.Properties["width"] = ctx.Width
	feature.Properties["height"] = ctx.Height
	feature.Properties["invalid"] = len(ctx.Mask)
	feature.Properties["projection"] = ctx.Projection
	feature.Properties["geotransform"] = ctx.GeoTransform[:]

	return feature
}

// Write a FeatureCollection with the footprint of ctx to outputPath
func Write(outputPath string, ctx *grid.Context) error {
	fc := geojson.NewFeatureCollection()
	fc.Append(Feature(ctx))

	// marshal
	bytes, err := fc.MarshalJSON()
	if err != nil {
		return err
	}

	// create file
	f, err := os.Create(outputPath)
	if err != nil {
		return err
	}

	// write file
	if _, err := f.Write(bytes); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
