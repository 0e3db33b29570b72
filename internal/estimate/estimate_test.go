package estimate

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/gruppe-adler/meh-grid/internal/config"
	"github.com/gruppe-adler/meh-grid/internal/grid"
	"github.com/gruppe-adler/meh-grid/internal/regress"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const width, height = 4, 3

var testContext = &grid.Context{
	GeoTransform: [6]float64{300000, 25, 0, 5000000, 0, -25},
	Width:        width,
	Height:       height,
}

func writeGrid(t *testing.T, dir, name string, values []float64) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, grid.Write(path, testContext, values))
	return path
}

// target = 1 + 2*a - b where known
func fixture(t *testing.T) *config.Job {
	t.Helper()
	dir := t.TempDir()

	a := []float64{1, 2, 3, 4, 5, -9999, 7, 8, 9, 10, 11, 12}
	b := []float64{0, 3, 1, 4, 1, 5, 9, 2, 6, 5, 3, 5}
	target := make([]float64, len(a))
	for i := range a {
		target[i] = 1 + 2*a[i] - b[i]
	}
	// unknown observations
	target[2] = -9999
	target[10] = -9999

	return &config.Job{
		Features: []string{writeGrid(t, dir, "a.tif", a), writeGrid(t, dir, "b.tif", b)},
		Target:   writeGrid(t, dir, "target.tif", target),
		Output:   filepath.Join(dir, "estimate.tif"),
		Workers:  2,
	}
}

func TestEstimate(t *testing.T) {
	job := fixture(t)
	modelPath := filepath.Join(filepath.Dir(job.Output), "model.json")

	res, err := Estimate(job, modelPath)
	require.NoError(t, err)

	// cell 5 is masked in the reference feature, 2 and 10 have no target
	assert.Equal(t, 9, res.TrainingCells)
	assert.InDelta(t, 1, res.Score, 1e-9)
	assert.InDelta(t, 1, res.Model.Intercept, 1e-6)
	assert.Equal(t, []int{5}, res.Context.Mask)

	sample, ctx, err := grid.ReadWithContext(job.Output)
	require.NoError(t, err)
	assert.True(t, testContext.SameGrid(ctx))
	assert.Equal(t, []int{5}, ctx.Mask)
	assert.Equal(t, grid.DefaultNoData, sample.Values[5])

	// cells without a target are predicted
	assert.InDelta(t, 1+2*3-1, sample.Values[2], 1e-4)
	assert.InDelta(t, 1+2*11-3, sample.Values[10], 1e-4)

	data, err := os.ReadFile(ManifestPath(job.Output))
	require.NoError(t, err)
	var m Manifest
	require.NoError(t, json.Unmarshal(data, &m))
	assert.NotEmpty(t, m.RunID)
	assert.Equal(t, 9, m.TrainingCells)
	assert.Equal(t, width, m.Width)
	assert.Len(t, m.Coef, 2)

	f, err := os.Open(modelPath)
	require.NoError(t, err)
	defer f.Close()
	model, err := regress.Load(f)
	require.NoError(t, err)
	assert.InDelta(t, 2, model.Coef[0], 1e-6)
	assert.InDelta(t, -1, model.Coef[1], 1e-6)
}

func TestFitMasksInvalidFeatures(t *testing.T) {
	a := grid.NewSample([]float64{1, 2, 3, 4, 5, 6}, grid.DefaultThreshold)
	b := grid.NewSample([]float64{2, 1, -9999, 0, 2, 7}, grid.DefaultThreshold)
	y := grid.NewSample([]float64{3, 3, 0, 4, 7, 13}, grid.DefaultThreshold)
	in := &Inputs{
		Context:  &grid.Context{Width: 3, Height: 2},
		Features: []*grid.Sample{a, b},
		Target:   y,
	}

	res, err := Fit(in, true, -1)
	require.NoError(t, err)
	assert.Equal(t, 5, res.TrainingCells)
	assert.Equal(t, -1.0, res.Predictions[2])
	assert.InDelta(t, 13, res.Predictions[5], 1e-9)
}

func TestFitNoTrainingCells(t *testing.T) {
	in := &Inputs{
		Context:  &grid.Context{Width: 2, Height: 1},
		Features: []*grid.Sample{grid.NewSample([]float64{1, 2}, grid.DefaultThreshold)},
		Target:   grid.NewSample([]float64{-9999, -9999}, grid.DefaultThreshold),
	}

	_, err := Fit(in, false, grid.DefaultNoData)
	assert.ErrorIs(t, err, ErrNoTrainingCells)
}

func TestLoadSizeMismatch(t *testing.T) {
	job := fixture(t)

	small := &grid.Context{Width: 2, Height: 2}
	odd := filepath.Join(filepath.Dir(job.Output), "small.tif")
	require.NoError(t, grid.Write(odd, small, []float64{1, 2, 3, 4}))
	job.Features = append(job.Features, odd)

	_, err := Load(job)
	assert.ErrorIs(t, err, grid.ErrLengthMismatch)
}

func TestLoadMissingTarget(t *testing.T) {
	job := fixture(t)
	job.Target = filepath.Join(t.TempDir(), "missing.tif")

	_, err := Load(job)
	assert.Error(t, err)
}

func TestLoadWarnsOnShiftedGrid(t *testing.T) {
	job := fixture(t)
	hook := logtest.NewGlobal()
	defer hook.Reset()

	_, err := Load(job)
	require.NoError(t, err)
	for _, e := range hook.AllEntries() {
		assert.NotEqual(t, logrus.WarnLevel, e.Level, e.Message)
	}

	shifted := *testContext
	shifted.GeoTransform[0] += 1000
	path := filepath.Join(filepath.Dir(job.Output), "shifted.tif")
	require.NoError(t, grid.Write(path, &shifted, make([]float64, width*height)))
	job.Features = append(job.Features, path)

	hook.Reset()
	in, err := Load(job)
	require.NoError(t, err)
	assert.Len(t, in.Features, 3)

	var warned bool
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel && e.Data["grid"] == path {
			warned = true
		}
	}
	assert.True(t, warned, "expected a warning for %s", path)
}
