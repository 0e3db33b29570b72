package grid

import "github.com/airbusgeo/godal"

const (
	// DefaultThreshold is the value below which a source cell counts as invalid.
	DefaultThreshold = -9000.0
	// DefaultNoData is written to invalid cells and tagged as the band's no-data value.
	DefaultNoData = -9999.0
)

var defaultCreationOptions = []string{"TILED=YES", "COMPRESS=LZW"}

type options struct {
	threshold       float64
	noData          float64
	driver          godal.DriverName
	creationOptions []string
}

// Option configures Read, ReadWithContext and Write.
type Option func(*options)

// Threshold sets the invalid-cell threshold. Cells strictly below it are masked.
func Threshold(v float64) Option {
	return func(o *options) { o.threshold = v }
}

// NoData sets the sentinel written to masked cells.
func NoData(v float64) Option {
	return func(o *options) { o.noData = v }
}

// Driver selects the GDAL driver used by Write. Defaults to GTiff.
func Driver(name string) Option {
	return func(o *options) { o.driver = godal.DriverName(name) }
}

// CreationOptions replaces the default GTiff creation options (TILED=YES, COMPRESS=LZW).
func CreationOptions(opts ...string) Option {
	return func(o *options) { o.creationOptions = opts }
}

func newOptions(opts []Option) options {
	o := options{
		threshold:       DefaultThreshold,
		noData:          DefaultNoData,
		driver:          godal.GTiff,
		creationOptions: defaultCreationOptions,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
