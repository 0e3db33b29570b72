package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/gruppe-adler/meh-grid/internal/grid"
)

const maxJobFileSize = 1 * 1024 * 1024

// Job describes an estimate run: feature grids, the training target and the output grid.
type Job struct {
	// Features are read in order; the first one provides the output raster context.
	Features    []string `json:"features"`
	Target      string   `json:"target"`
	Output      string   `json:"output"`
	Threshold   *float64 `json:"threshold,omitempty"`
	NoData      *float64 `json:"nodata,omitempty"`
	Standardize bool     `json:"standardize"`
	Workers     int      `json:"workers,omitempty"`
}

// GetThreshold returns the invalid-cell threshold, defaulting to grid.DefaultThreshold.
func (j *Job) GetThreshold() float64 {
	if j.Threshold == nil {
		return grid.DefaultThreshold
	}
	return *j.Threshold
}

// GetNoData returns the output sentinel, defaulting to grid.DefaultNoData.
func (j *Job) GetNoData() float64 {
	if j.NoData == nil {
		return grid.DefaultNoData
	}
	return *j.NoData
}

// GetWorkers returns the number of concurrent raster reads.
func (j *Job) GetWorkers() int {
	if j.Workers <= 0 {
		return runtime.NumCPU()
	}
	return j.Workers
}

// Validate checks the job for values that cannot produce a usable run.
func (j *Job) Validate() error {
	if len(j.Features) == 0 {
		return errors.New("job needs at least one feature grid")
	}
	for i, f := range j.Features {
		if f == "" {
			return fmt.Errorf("feature %d has an empty path", i)
		}
	}
	if j.Target == "" {
		return errors.New("job has no target grid")
	}
	if j.Output == "" {
		return errors.New("job has no output path")
	}
	if j.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", j.Workers)
	}
	// written sentinels have to read back as invalid
	if j.GetNoData() >= j.GetThreshold() {
		return fmt.Errorf("nodata %g must be below threshold %g", j.GetNoData(), j.GetThreshold())
	}
	return nil
}

// Load reads a job file. Relative paths inside it are resolved against the
// directory containing the file.
func Load(path string) (*Job, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("job file must have .json extension, got %q", ext)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat job file: %w", err)
	}
	if info.Size() > maxJobFileSize {
		return nil, fmt.Errorf("job file too large: %d bytes (max %d)", info.Size(), maxJobFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read job file: %w", err)
	}

	job := &Job{}
	if err := json.Unmarshal(data, job); err != nil {
		return nil, fmt.Errorf("failed to parse job JSON: %w", err)
	}

	if err := job.Validate(); err != nil {
		return nil, fmt.Errorf("invalid job: %w", err)
	}

	job.resolve(filepath.Dir(cleanPath))
	return job, nil
}

func (j *Job) resolve(dir string) {
	abs := func(p string) string {
		if filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(dir, p)
	}
	for i, f := range j.Features {
		j.Features[i] = abs(f)
	}
	j.Target = abs(j.Target)
	j.Output = abs(j.Output)
}
