// Package regress fits per-pixel linear estimators over grid features.
package regress

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

var (
	// ErrDimension is returned when the response does not match the feature rows.
	ErrDimension = errors.New("regress: dimension mismatch")
	// ErrTooFewRows is returned when there are not more observations than coefficients.
	ErrTooFewRows = errors.New("regress: not enough observations")
	// ErrSingular is returned when the design matrix has no unique solution.
	ErrSingular = errors.New("regress: singular design matrix")
)

// rankTolerance is the relative singular value below which a direction of the
// design matrix counts as missing.
const rankTolerance = 1e-10

// Linear is an ordinary least squares model with intercept.
type Linear struct {
	Intercept float64   `json:"intercept"`
	Coef      []float64 `json:"coef"`
	Scaler    *Scaler   `json:"scaler,omitempty"`
}

// Fit solves y = b0 + X*b by least squares. With standardize set, features are
// scaled first and the scaler is kept on the model for prediction.
// Rank deficient designs (collinear or constant features) fail with ErrSingular.
func Fit(x mat.Matrix, y []float64, standardize bool) (*Linear, error) {
	rows, cols := x.Dims()
	if len(y) != rows {
		return nil, fmt.Errorf("%w: %d observations, %d responses", ErrDimension, rows, len(y))
	}
	if rows <= cols {
		return nil, fmt.Errorf("%w: %d observations for %d features", ErrTooFewRows, rows, cols)
	}

	model := &Linear{}
	if standardize {
		model.Scaler = FitScaler(x)
		x = model.Scaler.Transform(x)
	}

	// first column is the intercept
	design := mat.NewDense(rows, cols+1, nil)
	for i := 0; i < rows; i++ {
		design.Set(i, 0, 1)
		for j := 0; j < cols; j++ {
			design.Set(i, j+1, x.At(i, j))
		}
	}

	// rank is taken after scaling so both modes reject the same designs
	var svd mat.SVD
	if !svd.Factorize(design, mat.SVDThin) {
		return nil, fmt.Errorf("%w: SVD did not converge", ErrSingular)
	}
	rank := svd.Rank(rankTolerance)
	if rank < cols+1 {
		log.WithFields(log.Fields{"rank": rank, "columns": cols + 1}).Debug("design matrix rejected")
		return nil, fmt.Errorf("%w: rank %d for %d coefficients", ErrSingular, rank, cols+1)
	}

	var beta mat.VecDense
	svd.SolveVecTo(&beta, mat.NewVecDense(rows, append([]float64(nil), y...)), rank)

	model.Intercept = beta.AtVec(0)
	model.Coef = make([]float64, cols)
	for j := range model.Coef {
		model.Coef[j] = beta.AtVec(j + 1)
	}
	return model, nil
}

// Predict estimates the response for one observation.
func (m *Linear) Predict(row []float64) float64 {
	if m.Scaler != nil {
		scaled := make([]float64, len(row))
		m.Scaler.TransformRow(scaled, row)
		row = scaled
	}
	v := m.Intercept
	for j, c := range m.Coef {
		v += c * row[j]
	}
	return v
}

// PredictAll estimates the response for every row of x.
func (m *Linear) PredictAll(x mat.Matrix) []float64 {
	rows, cols := x.Dims()
	out := make([]float64, rows)
	row := make([]float64, cols)
	for i := range out {
		mat.Row(row, i, x)
		out[i] = m.Predict(row)
	}
	return out
}

// Score returns the coefficient of determination R² of the predictions on x against y.
func (m *Linear) Score(x mat.Matrix, y []float64) float64 {
	pred := m.PredictAll(x)
	mean := stat.Mean(y, nil)

	var ssRes, ssTot float64
	for i, v := range y {
		ssRes += (v - pred[i]) * (v - pred[i])
		ssTot += (v - mean) * (v - mean)
	}
	if ssTot == 0 {
		if ssRes == 0 {
			return 1
		}
		return 0
	}
	return 1 - ssRes/ssTot
}

// Save writes the model as JSON.
func (m *Linear) Save(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(m)
}

// Load reads a model written by Save.
func Load(r io.Reader) (*Linear, error) {
	var m Linear
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	if m.Scaler != nil && (len(m.Scaler.Mean) != len(m.Coef) || len(m.Scaler.Scale) != len(m.Coef)) {
		return nil, fmt.Errorf("%w: scaler has %d columns, model has %d", ErrDimension, len(m.Scaler.Mean), len(m.Coef))
	}
	return &m, nil
}
