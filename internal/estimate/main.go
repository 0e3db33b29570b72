package estimate

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gruppe-adler/meh-grid/internal/config"
	"github.com/gruppe-adler/meh-grid/internal/validate"
	log "github.com/sirupsen/logrus"
)

// Run is the program's entrypoint
func Run(flagSet *flag.FlagSet) {

	var timer time.Time
	start := time.Now()

	jobPtr := flagSet.String("job", "", "Path to job.json")
	modelPtr := flagSet.String("model", "", "Write the fitted model as JSON to this path")
	verbosePtr := flagSet.Bool("verbose", false, "Log debug output")

	flagSet.Parse(os.Args[2:])

	if *jobPtr == "" {
		flagSet.PrintDefaults()
		os.Exit(1)
	}

	if *verbosePtr {
		log.SetLevel(log.DebugLevel)
	}

	// load job
	timer = time.Now()
	fmt.Println("▶️  Loading job")
	job, err := config.Load(*jobPtr)
	if err != nil {
		log.Fatal(err)
	}
	if err := validate.Job(job); err != nil {
		log.Fatal(err)
	}
	if *modelPtr != "" {
		if err := validate.Output(*modelPtr); err != nil {
			log.Fatal(err)
		}
	}
	fmt.Println("✔️  Loaded job in", time.Since(timer).String())

	// load grids
	timer = time.Now()
	fmt.Printf("▶️  Loading %d feature grids and target\n", len(job.Features))
	in, err := Load(job)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("✔️  Loaded grids in", time.Since(timer).String())

	// fit and predict
	timer = time.Now()
	fmt.Println("▶️  Fitting linear model")
	res, err := Fit(in, job.Standardize, job.GetNoData())
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("✔️  Fitted on %d cells (R² %.4f) in %s\n", res.TrainingCells, res.Score, time.Since(timer).String())

	// write grid
	timer = time.Now()
	fmt.Println("▶️  Writing estimate grid")
	if err := writeResult(job, res, *modelPtr); err != nil {
		log.Fatal(err)
	}
	fmt.Println("✔️  Wrote", job.Output, "in", time.Since(timer).String())

	fmt.Printf("\n    🎉  Finished in %s\n", time.Since(start).String())
}
