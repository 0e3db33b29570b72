package normalize

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gruppe-adler/meh-grid/internal/grid"
	"github.com/gruppe-adler/meh-grid/internal/validate"
	log "github.com/sirupsen/logrus"
)

// Run is the program's entrypoint
func Run(flagSet *flag.FlagSet) {

	start := time.Now()

	inputPtr := flagSet.String("in", "", "Path to input grid")
	outputPtr := flagSet.String("out", "", "Path to output GeoTIFF")
	thresholdPtr := flagSet.Float64("threshold", grid.DefaultThreshold, "Cells below this value are invalid")
	noDataPtr := flagSet.Float64("nodata", grid.DefaultNoData, "Value written to invalid cells")
	verbosePtr := flagSet.Bool("verbose", false, "Log debug output")

	flagSet.Parse(os.Args[2:])

	// make sure both flags are present
	if *outputPtr == "" || *inputPtr == "" {
		flagSet.PrintDefaults()
		os.Exit(1)
	}

	if *verbosePtr {
		log.SetLevel(log.DebugLevel)
	}

	if err := validate.Grid(*inputPtr); err != nil {
		log.Fatal(err)
	}
	if err := validate.Output(*outputPtr); err != nil {
		log.Fatal(err)
	}

	fmt.Println("▶️  Normalizing grid")
	masked, err := Normalize(*inputPtr, *outputPtr, *thresholdPtr, *noDataPtr)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("✔️  Wrote %s with %d invalid cells in %s\n", *outputPtr, masked, time.Since(start).String())
}

// Normalize rewrites a grid as a tiled Float32 GeoTIFF with every cell below
// threshold set to noData. It returns the number of invalid cells.
func Normalize(inputPath, outputPath string, threshold, noData float64) (int, error) {
	if err := validate.Sentinels(threshold, noData); err != nil {
		return 0, err
	}
	opts := []grid.Option{grid.Threshold(threshold), grid.NoData(noData)}

	sample, ctx, err := grid.ReadWithContext(inputPath, opts...)
	if err != nil {
		return 0, err
	}

	if err := grid.Write(outputPath, ctx, sample.Values, opts...); err != nil {
		return 0, err
	}

	return len(ctx.Mask), nil
}
