package raster

import (
	"fmt"

	"github.com/airbusgeo/godal"
)

// ReadBand loads one band of an open dataset into a Grid. Band indexes
// are zero-based. Pixels equal to the band nodata value, if one is set,
// are flagged invalid.
func ReadBand(ds *godal.Dataset, bandIndex int) (*Grid, error) {
	bands := ds.Bands()
	if bandIndex < 0 || bandIndex >= len(bands) {
		return nil, fmt.Errorf("%w: band %d of %d", ErrBandIndex, bandIndex, len(bands))
	}
	band := bands[bandIndex]

	width := ds.Structure().SizeX
	height := ds.Structure().SizeY
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, ErrEmptyGrid)
	}

	data := make([]float64, width*height)
	if err := band.Read(0, 0, data, width, height); err != nil {
		return nil, fmt.Errorf("failed to read raster band %d: %w", bandIndex, err)
	}

	g := &Grid{
		Width:  width,
		Height: height,
		Data:   data,
		Valid:  make([]bool, width*height),
	}
	nodata, hasNodata := band.NoData()
	for i, v := range data {
		g.Valid[i] = !hasNodata || v != nodata
	}
	return g, nil
}

// OpenBand opens a raster file and reads a single band from it.
func OpenBand(path string, bandIndex int) (*Grid, error) {
	ds, err := godal.Open(path, godal.ErrLogger(func(ec godal.ErrorCategory, code int, msg string) error {
		if ec == godal.CE_Warning {
			return nil
		}
		return fmt.Errorf("gdal error %d: %s", code, msg)
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to open raster file %s: %w", path, err)
	}
	defer ds.Close()

	return ReadBand(ds, bandIndex)
}

// BandCount returns the number of bands in a raster file.
func BandCount(path string) (int, error) {
	ds, err := godal.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open raster file %s: %w", path, err)
	}
	defer ds.Close()
	return len(ds.Bands()), nil
}
