package validate

import (
	"fmt"
	"strings"

	"github.com/gruppe-adler/meh-grid/internal/config"
	"github.com/gruppe-adler/meh-grid/internal/utils"
)

// Job validates that all grids of the job exist and that its output can be created
func Job(job *config.Job) error {
	for _, feature := range job.Features {
		if err := Grid(feature); err != nil {
			return err
		}
	}

	if err := Grid(job.Target); err != nil {
		return err
	}

	return Output(job.Output)
}

// Grid validates that given path is an existing file. GDAL virtual file system
// paths (/vsizip/, /vsicurl/, ...) are left for GDAL to resolve.
func Grid(gridPath string) error {
	if strings.HasPrefix(gridPath, "/vsi") {
		return nil
	}
	if !utils.IsFile(gridPath) {
		return fmt.Errorf("%s does not exist or is no file", gridPath)
	}
	return nil
}

// Sentinels validates that the no-data value reads back as invalid under threshold
func Sentinels(threshold, noData float64) error {
	if noData >= threshold {
		return fmt.Errorf("nodata %g must be below threshold %g", noData, threshold)
	}
	return nil
}

// Output validates that the directory for given output path exists
func Output(outputPath string) error {
	if utils.IsDirectory(outputPath) {
		return fmt.Errorf("%s is a directory", outputPath)
	}
	if !utils.ParentExists(outputPath) {
		return fmt.Errorf("output directory of %s doesn't exist", outputPath)
	}
	return nil
}
