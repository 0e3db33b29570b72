package estimate

import (
	"encoding/json"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/gruppe-adler/meh-grid/internal/config"
)

// Manifest records what produced an estimated grid.
type Manifest struct {
	RunID         string    `json:"run_id"`
	Created       time.Time `json:"created"`
	Features      []string  `json:"features"`
	Target        string    `json:"target"`
	Output        string    `json:"output"`
	Width         int       `json:"width"`
	Height        int       `json:"height"`
	Standardized  bool      `json:"standardized"`
	Intercept     float64   `json:"intercept"`
	Coef          []float64 `json:"coef"`
	R2            float64   `json:"r2"`
	TrainingCells int       `json:"training_cells"`
}

// NewManifest describes res as produced by job, under a fresh run id.
func NewManifest(job *config.Job, res *Result) Manifest {
	return Manifest{
		RunID:         uuid.NewString(),
		Created:       time.Now().UTC(),
		Features:      job.Features,
		Target:        job.Target,
		Output:        job.Output,
		Width:         res.Context.Width,
		Height:        res.Context.Height,
		Standardized:  res.Model.Scaler != nil,
		Intercept:     res.Model.Intercept,
		Coef:          res.Model.Coef,
		R2:            res.Score,
		TrainingCells: res.TrainingCells,
	}
}

// ManifestPath is where the manifest for an output grid is written.
func ManifestPath(output string) string {
	return output + ".json"
}

// WriteManifest writes m as indented JSON
func WriteManifest(path string, m Manifest) error {
	bytes, err := json.MarshalIndent(m, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, bytes, 0o644)
}
