package estimate

import (
	"errors"
	"fmt"

	"github.com/gruppe-adler/meh-grid/internal/config"
	"github.com/gruppe-adler/meh-grid/internal/grid"
	"github.com/gruppe-adler/meh-grid/internal/regress"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

// ErrNoTrainingCells is returned when no cell is valid in every feature and the target.
var ErrNoTrainingCells = errors.New("estimate: no cell is valid in all features and the target")

// Inputs are the grids of a job, all sized like Context.
type Inputs struct {
	Context  *grid.Context
	Features []*grid.Sample
	Target   *grid.Sample
}

// Result is a fitted model and its per-cell predictions.
type Result struct {
	Model         *regress.Linear
	Context       *grid.Context
	Predictions   []float64
	TrainingCells int
	Score         float64
}

// Load reads the grids of a job. The first feature is read with its context;
// the other grids are read concurrently and must have the same size. Grids
// whose geotransform or projection differ from the reference are logged.
func Load(job *config.Job) (*Inputs, error) {
	threshold := grid.Threshold(job.GetThreshold())

	ref, ctx, err := grid.ReadWithContext(job.Features[0], threshold)
	if err != nil {
		return nil, err
	}

	paths := append(append([]string{}, job.Features[1:]...), job.Target)
	samples := make([]*grid.Sample, len(paths))

	var g errgroup.Group
	g.SetLimit(job.GetWorkers())
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			sample, other, err := grid.ReadWithContext(p, threshold)
			if err != nil {
				return err
			}
			if sample.Len() != ctx.Size() {
				return fmt.Errorf("%s: %w: %d cells, reference %s has %d",
					p, grid.ErrLengthMismatch, sample.Len(), job.Features[0], ctx.Size())
			}
			// same size is enough to pair cells, but mismatching georeferencing is suspicious
			if !ctx.SameGrid(other) {
				log.WithFields(log.Fields{
					"grid":      p,
					"reference": job.Features[0],
				}).Warn("grid georeferencing differs from reference, pairing cells by position")
			}
			samples[i] = sample
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Inputs{
		Context:  ctx,
		Features: append([]*grid.Sample{ref}, samples[:len(samples)-1]...),
		Target:   samples[len(samples)-1],
	}, nil
}

// validRow reports whether cell i is valid in every feature.
func (in *Inputs) validRow(i int) bool {
	for _, f := range in.Features {
		if !f.Valid(i) {
			return false
		}
	}
	return true
}

func (in *Inputs) row(dst []float64, i int) {
	for j, f := range in.Features {
		dst[j] = f.Values[i]
	}
}

// Fit trains a linear model on the cells valid everywhere and predicts every
// cell whose features are valid. Other cells get noData.
func Fit(in *Inputs, standardize bool, noData float64) (*Result, error) {
	size := in.Context.Size()
	cols := len(in.Features)

	var training []int
	for i := 0; i < size; i++ {
		if in.validRow(i) && in.Target.Valid(i) {
			training = append(training, i)
		}
	}
	if len(training) == 0 {
		return nil, ErrNoTrainingCells
	}

	x := mat.NewDense(len(training), cols, nil)
	y := make([]float64, len(training))
	row := make([]float64, cols)
	for r, i := range training {
		in.row(row, i)
		x.SetRow(r, row)
		y[r] = in.Target.Values[i]
	}

	model, err := regress.Fit(x, y, standardize)
	if err != nil {
		return nil, err
	}
	score := model.Score(x, y)

	log.WithFields(log.Fields{
		"training":  len(training),
		"features":  cols,
		"intercept": model.Intercept,
		"r2":        score,
	}).Debug("fitted linear model")

	predictions := make([]float64, size)
	for i := range predictions {
		if !in.validRow(i) {
			predictions[i] = noData
			continue
		}
		in.row(row, i)
		predictions[i] = model.Predict(row)
	}

	return &Result{
		Model:         model,
		Context:       in.Context,
		Predictions:   predictions,
		TrainingCells: len(training),
		Score:         score,
	}, nil
}

// Estimate runs a job end to end. It writes the predicted grid, its manifest
// and, when modelPath is set, the fitted model.
func Estimate(job *config.Job, modelPath string) (*Result, error) {
	in, err := Load(job)
	if err != nil {
		return nil, err
	}

	res, err := Fit(in, job.Standardize, job.GetNoData())
	if err != nil {
		return nil, err
	}

	if err := writeResult(job, res, modelPath); err != nil {
		return nil, err
	}
	return res, nil
}
