package preview

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path"

	"github.com/nfnt/resize"
	"golang.org/x/sync/errgroup"
)

// Sizes are the preview heights built next to the full resolution preview.png.
var Sizes = []uint{128, 256, 512, 1024}

// Build writes img as preview.png and a resized preview_<size>.png for every size.
// Sizes are rendered concurrently, bounded by workers.
func Build(img image.Image, outputDirectory string, sizes []uint, workers int) error {
	if err := saveImage(path.Join(outputDirectory, "preview.png"), img); err != nil {
		return err
	}

	width := img.Bounds().Dx()
	height := img.Bounds().Dy()

	if workers < 1 {
		workers = 1
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for _, size := range sizes {
		size := size
		g.Go(func() error {
			factor := float64(size) / float64(height)
			w := uint(float64(width) * factor)
			if w == 0 {
				w = 1
			}

			resized := resize.Resize(w, size, img, resize.MitchellNetravali)
			return saveImage(path.Join(outputDirectory, fmt.Sprintf("preview_%d.png", size)), resized)
		})
	}
	return g.Wait()
}

func saveImage(filePath string, img image.Image) error {
	out, err := os.Create(filePath)
	if err != nil {
		return err
	}

	if err := png.Encode(out, img); err != nil {
		out.Close()
		return fmt.Errorf("encode %s: %w", filePath, err)
	}

	return out.Close()
}
