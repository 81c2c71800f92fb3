package indices

import (
	"fmt"

	"github.com/maskwatch/maskwatch-research-cli/internal/raster"
)

// NDWI computes the Normalized Difference Water Index
// (green - nir) / (green + nir) per pixel. Pixels where the
// denominator is zero get 0; pixels invalid in either input stay
// invalid in the output.
func NDWI(green, nir *raster.Grid) (*raster.Grid, error) {
	if green == nil || nir == nil || len(green.Data) == 0 {
		return nil, fmt.Errorf("%w: %w", raster.ErrInvalidInput, raster.ErrEmptyGrid)
	}
	if !green.SameShape(nir) {
		return nil, fmt.Errorf("%w: %w", raster.ErrInvalidInput, raster.ErrShapeMismatch)
	}

	out := green.Clone()
	for i := range out.Data {
		if !green.Valid[i] || !nir.Valid[i] {
			out.Valid[i] = false
			out.Data[i] = 0
			continue
		}
		denominator := green.Data[i] + nir.Data[i]
		if denominator != 0 {
			out.Data[i] = (green.Data[i] - nir.Data[i]) / denominator
		} else {
			out.Data[i] = 0
		}
	}
	return out, nil
}

// Threshold classifies an index band against a cutoff: pixels at or
// above the threshold become class 1, pixels below it class 0. Invalid
// pixels pass through unchanged. The result feeds the classified band
// renderer as a two-class water mask.
func Threshold(g *raster.Grid, threshold float64) (*raster.Grid, error) {
	if g == nil || len(g.Data) == 0 {
		return nil, fmt.Errorf("%w: %w", raster.ErrInvalidInput, raster.ErrEmptyGrid)
	}

	out := g.Clone()
	for i, v := range g.Data {
		if !g.Valid[i] {
			continue
		}
		if v >= threshold {
			out.Data[i] = 1
		} else {
			out.Data[i] = 0
		}
	}
	return out, nil
}
