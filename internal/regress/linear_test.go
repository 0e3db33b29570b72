package regress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// y = 2 + 3*a - 0.5*b
func exactData() (*mat.Dense, []float64) {
	rows := [][2]float64{{0, 0}, {1, 0}, {0, 1}, {2, 3}, {4, 1}, {5, 5}, {-1, 2}}
	x := mat.NewDense(len(rows), 2, nil)
	y := make([]float64, len(rows))
	for i, r := range rows {
		x.Set(i, 0, r[0])
		x.Set(i, 1, r[1])
		y[i] = 2 + 3*r[0] - 0.5*r[1]
	}
	return x, y
}

func TestFitExact(t *testing.T) {
	x, y := exactData()

	m, err := Fit(x, y, false)
	require.NoError(t, err)

	assert.InDelta(t, 2, m.Intercept, 1e-9)
	require.Len(t, m.Coef, 2)
	assert.InDelta(t, 3, m.Coef[0], 1e-9)
	assert.InDelta(t, -0.5, m.Coef[1], 1e-9)
	assert.Nil(t, m.Scaler)

	assert.InDelta(t, 2+3*10-0.5*4, m.Predict([]float64{10, 4}), 1e-9)
	assert.InDelta(t, 1, m.Score(x, y), 1e-12)
}

func TestFitStandardized(t *testing.T) {
	x, y := exactData()

	m, err := Fit(x, y, true)
	require.NoError(t, err)
	require.NotNil(t, m.Scaler)

	pred := m.PredictAll(x)
	for i := range y {
		assert.InDelta(t, y[i], pred[i], 1e-9)
	}
	assert.InDelta(t, 2+3*10-0.5*4, m.Predict([]float64{10, 4}), 1e-9)
}

func TestFitErrors(t *testing.T) {
	x, y := exactData()

	_, err := Fit(x, y[:3], false)
	assert.ErrorIs(t, err, ErrDimension)

	small := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	_, err = Fit(small, []float64{1, 2}, false)
	assert.ErrorIs(t, err, ErrTooFewRows)

	// constant zero column carries no information
	degenerate := mat.NewDense(4, 2, []float64{1, 0, 2, 0, 3, 0, 4, 0})
	_, err = Fit(degenerate, []float64{1, 2, 3, 4}, false)
	assert.ErrorIs(t, err, ErrSingular)
}

func TestFitCollinearRejectedInBothModes(t *testing.T) {
	// b = 2a
	x := mat.NewDense(5, 2, []float64{
		1, 2,
		2, 4,
		3, 6,
		4, 8,
		5, 10,
	})
	y := []float64{3, 5, 7, 9, 11}

	for _, standardize := range []bool{false, true} {
		_, err := Fit(x, y, standardize)
		assert.ErrorIs(t, err, ErrSingular, "standardize=%v", standardize)
	}
}

func TestScaler(t *testing.T) {
	x := mat.NewDense(4, 2, []float64{
		1, 5,
		2, 5,
		3, 5,
		4, 5,
	})
	s := FitScaler(x)

	assert.Equal(t, []float64{2.5, 5}, s.Mean)
	assert.InDelta(t, 1.118033988749895, s.Scale[0], 1e-12)
	assert.Equal(t, 1.0, s.Scale[1])

	out := s.Transform(x)
	assert.InDelta(t, 0, mat.Sum(out.ColView(0)), 1e-12)
	assert.Equal(t, 0.0, out.At(2, 1))
}

func TestSaveLoad(t *testing.T) {
	x, y := exactData()
	m, err := Fit(x, y, true)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, m.Save(&buf))

	loaded, err := Load(&buf)
	require.NoError(t, err)
	assert.InDelta(t, m.Predict([]float64{3, 3}), loaded.Predict([]float64{3, 3}), 1e-12)

	_, err = Load(bytes.NewBufferString(`{"intercept":1,"coef":[1,2],"scaler":{"mean":[0],"scale":[1]}}`))
	assert.ErrorIs(t, err, ErrDimension)
}
