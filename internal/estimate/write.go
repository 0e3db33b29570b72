package estimate

import (
	"os"

	"github.com/gruppe-adler/meh-grid/internal/config"
	"github.com/gruppe-adler/meh-grid/internal/grid"
)

func writeResult(job *config.Job, res *Result, modelPath string) error {
	if err := grid.Write(job.Output, res.Context, res.Predictions, grid.NoData(job.GetNoData())); err != nil {
		return err
	}

	if err := WriteManifest(ManifestPath(job.Output), NewManifest(job, res)); err != nil {
		return err
	}

	if modelPath == "" {
		return nil
	}

	f, err := os.Create(modelPath)
	if err != nil {
		return err
	}
	if err := res.Model.Save(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
