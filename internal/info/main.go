package info

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/gruppe-adler/meh-grid/internal/footprint"
	"github.com/gruppe-adler/meh-grid/internal/grid"
	"github.com/gruppe-adler/meh-grid/internal/validate"
	log "github.com/sirupsen/logrus"
)

// Run is the program's entrypoint
func Run(flagSet *flag.FlagSet) {
	inputPtr := flagSet.String("in", "", "Path to input grid")
	geojsonPtr := flagSet.String("geojson", "", "Write the grid footprint as GeoJSON to this path")
	thresholdPtr := flagSet.Float64("threshold", grid.DefaultThreshold, "Cells below this value are invalid")
	verbosePtr := flagSet.Bool("verbose", false, "Log debug output")

	flagSet.Parse(os.Args[2:])

	if *inputPtr == "" {
		flagSet.PrintDefaults()
		os.Exit(1)
	}

	if *verbosePtr {
		log.SetLevel(log.DebugLevel)
	}

	if err := validate.Grid(*inputPtr); err != nil {
		log.Fatal(err)
	}

	sample, ctx, err := grid.ReadWithContext(*inputPtr, grid.Threshold(*thresholdPtr))
	if err != nil {
		log.Fatal(err)
	}

	Print(os.Stdout, *inputPtr, sample, ctx)

	if *geojsonPtr != "" {
		if err := validate.Output(*geojsonPtr); err != nil {
			log.Fatal(err)
		}
		if err := footprint.Write(*geojsonPtr, ctx); err != nil {
			log.Fatal(err)
		}
		fmt.Println("✔️  Wrote footprint to", *geojsonPtr)
	}
}

// Print writes a human readable summary of a grid
func Print(w io.Writer, name string, sample *grid.Sample, ctx *grid.Context) {
	gt := ctx.GeoTransform
	bound := ctx.Bounds()

	fmt.Fprintf(w, "Grid:         %s\n", name)
	fmt.Fprintf(w, "Size:         %d x %d (%d cells)\n", ctx.Width, ctx.Height, ctx.Size())
	fmt.Fprintf(w, "Origin:       (%.6f, %.6f)\n", gt[0], gt[3])
	fmt.Fprintf(w, "Pixel size:   (%.6f, %.6f)\n", gt[1], gt[5])
	fmt.Fprintf(w, "Extent:       (%.6f, %.6f) - (%.6f, %.6f)\n", bound.Min[0], bound.Min[1], bound.Max[0], bound.Max[1])
	fmt.Fprintf(w, "Invalid:      %d\n", len(ctx.Mask))

	if min, max, ok := sample.MinMax(); ok {
		fmt.Fprintf(w, "Valid range:  %g .. %g\n", min, max)
	} else {
		fmt.Fprintf(w, "Valid range:  none\n")
	}

	if ctx.Projection == "" {
		fmt.Fprintf(w, "Projection:   none\n")
		return
	}
	fmt.Fprintf(w, "Projection:   %s\n", ctx.Projection)
}
