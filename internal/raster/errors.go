package raster

import "errors"

var (
	ErrInvalidInput  = errors.New("invalid raster input")
	ErrEmptyGrid     = errors.New("raster grid is empty")
	ErrRaggedGrid    = errors.New("raster grid rows have uneven lengths")
	ErrShapeMismatch = errors.New("raster grids have different shapes")
	ErrBandIndex     = errors.New("raster band index out of range")
)
