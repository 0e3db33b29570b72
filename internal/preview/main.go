package preview

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/gruppe-adler/meh-grid/internal/grid"
	"github.com/gruppe-adler/meh-grid/internal/utils"
	"github.com/gruppe-adler/meh-grid/internal/validate"
	log "github.com/sirupsen/logrus"
)

// Run is the program's entrypoint
func Run(flagSet *flag.FlagSet) {

	var timer time.Time
	start := time.Now()

	outputPtr := flagSet.String("out", "", "Path to output directory")
	inputPtr := flagSet.String("in", "", "Path to input grid")
	modePtr := flagSet.String("mode", string(Gray), "Color mode: gray or terrainrgb")
	thresholdPtr := flagSet.Float64("threshold", grid.DefaultThreshold, "Cells below this value are transparent")
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

	mode, err := ParseMode(*modePtr)
	if err != nil {
		log.Fatal(err)
	}

	// make sure given output directory is a valid directory
	if !utils.IsDirectory(*outputPtr) {
		log.Fatal(errors.New("Output directory doesn't exists"))
	}

	if err := validate.Grid(*inputPtr); err != nil {
		log.Fatal(err)
	}

	timer = time.Now()
	fmt.Println("▶️  Loading grid")
	sample, ctx, err := grid.ReadWithContext(*inputPtr, grid.Threshold(*thresholdPtr))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("✔️  Loaded grid in", time.Since(timer).String())

	timer = time.Now()
	fmt.Printf("▶️  Rendering %s image\n", mode)
	img, err := Render(sample, ctx.Width, ctx.Height, mode)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("✔️  Rendered image in", time.Since(timer).String())

	timer = time.Now()
	fmt.Println("▶️  Building preview images")
	if err := Build(img, *outputPtr, Sizes, runtime.NumCPU()); err != nil {
		log.Fatal(err)
	}
	fmt.Println("✔️  Built preview images in", time.Since(timer).String())

	fmt.Printf("\n    🎉  Finished in %s\n", time.Since(start).String())
}
