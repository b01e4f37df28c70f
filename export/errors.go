package export

import "errors"

var (
	// ErrSurfaceNotFound is returned when the rendered document has no card surface
	ErrSurfaceNotFound = errors.New("card surface not found")
	// ErrExportInProgress is returned when an export is requested while another runs
	ErrExportInProgress = errors.New("export already in progress")
	// ErrEmptyImage is returned for rasters with no pixels
	ErrEmptyImage = errors.New("raster image is empty")
)
