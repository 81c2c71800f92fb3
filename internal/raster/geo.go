package raster

import (
	"fmt"

	"github.com/airbusgeo/godal"
)

// PixelToLonLat converts pixel coordinates to WGS84 longitude/latitude
// using the dataset geotransform, sampling at the pixel center.
func PixelToLonLat(ds *godal.Dataset, x, y int) (float64, float64, error) {
	gt, err := ds.GeoTransform()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get GeoTransform: %w", err)
	}

	xCoord := gt[0] + gt[1]*(float64(x)+0.5) + gt[2]*(float64(y)+0.5)
	yCoord := gt[3] + gt[4]*(float64(x)+0.5) + gt[5]*(float64(y)+0.5)

	srcSR := ds.SpatialRef()
	defer srcSR.Close()
	dstSR, err := godal.NewSpatialRefFromEPSG(4326)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to create WGS84 ref: %w", err)
	}
	defer dstSR.Close()
	tr, err := godal.NewTransform(srcSR, dstSR)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to create transform: %w", err)
	}
	defer tr.Close()

	xs := []float64{xCoord}
	ys := []float64{yCoord}
	if err := tr.TransformEx(xs, ys, nil, nil); err != nil {
		return 0, 0, fmt.Errorf("transform error: %w", err)
	}
	return xs[0], ys[0], nil
}

// LonLatToPixel converts WGS84 coordinates to pixel coordinates,
// returning an error when the point falls outside the raster.
func LonLatToPixel(ds *godal.Dataset, lon, lat float64) (int, int, error) {
	gt, err := ds.GeoTransform()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get GeoTransform: %w", err)
	}

	dstSR := ds.SpatialRef()
	defer dstSR.Close()
	srcSR, err := godal.NewSpatialRefFromEPSG(4326)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to create WGS84 ref: %w", err)
	}
	defer srcSR.Close()
	tr, err := godal.NewTransform(srcSR, dstSR)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to create transform: %w", err)
	}
	defer tr.Close()

	xs := []float64{lon}
	ys := []float64{lat}
	if err := tr.TransformEx(xs, ys, nil, nil); err != nil {
		return 0, 0, fmt.Errorf("transform error: %w", err)
	}

	col := int((xs[0] - gt[0]) / gt[1])
	row := int((ys[0] - gt[3]) / gt[5])

	width := ds.Structure().SizeX
	height := ds.Structure().SizeY
	if col < 0 || col >= width || row < 0 || row >= height {
		return 0, 0, fmt.Errorf("coordinates (%f, %f) are out of image bounds", lon, lat)
	}
	return col, row, nil
}
