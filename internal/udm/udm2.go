package udm

import (
	"fmt"
	"math"

	"github.com/maskwatch/maskwatch-research-cli/internal/raster"
	"github.com/maskwatch/maskwatch-research-cli/internal/render"
)

// UDM2 band layout, zero-based. Bands 1-6 of the product are boolean
// class masks, band 7 is the per-pixel confidence and band 8 carries
// the legacy bit-encoded mask.
const (
	BandClear = iota
	BandSnow
	BandShadow
	BandLightHaze
	BandHeavyHaze
	BandCloud
	BandConfidence
	BandUnusable

	BandCount = 8
)

// Class codes produced by ComposeClasses, one per boolean mask band.
const (
	ClassClear = iota
	ClassSnow
	ClassShadow
	ClassLightHaze
	ClassHeavyHaze
	ClassCloud
)

var classNames = []string{
	"clear",
	"snow",
	"shadow",
	"light haze",
	"heavy haze",
	"cloud",
}

// ClassLabels returns the legend labels for a composed UDM2 class band.
func ClassLabels() []render.ClassLabel {
	labels := make([]render.ClassLabel, len(classNames))
	for code, name := range classNames {
		labels[code] = render.ClassLabel{Code: code, Label: name}
	}
	return labels
}

// ComposeClasses flattens the six boolean UDM2 mask bands into one
// classified band. Each pixel gets the code of the first band that
// flags it, in the order clear, snow, shadow, light haze, heavy haze,
// cloud. Pixels flagged by no band are marked invalid, as are pixels
// invalid in any input. All bands must share one shape.
func ComposeClasses(bands []*raster.Grid) (*raster.Grid, error) {
	if len(bands) != len(classNames) {
		return nil, fmt.Errorf("%w: expected %d class bands, got %d", raster.ErrInvalidInput, len(classNames), len(bands))
	}
	first := bands[0]
	if first == nil || len(first.Data) == 0 {
		return nil, fmt.Errorf("%w: %w", raster.ErrInvalidInput, raster.ErrEmptyGrid)
	}
	for _, b := range bands[1:] {
		if b == nil || !first.SameShape(b) {
			return nil, fmt.Errorf("%w: %w", raster.ErrInvalidInput, raster.ErrShapeMismatch)
		}
	}

	out := first.Clone()
	for i := range out.Data {
		out.Data[i] = 0
		out.Valid[i] = false
		for code, band := range bands {
			if !band.Valid[i] {
				out.Valid[i] = false
				break
			}
			if math.RoundToEven(band.Data[i]) != 0 {
				out.Data[i] = float64(code)
				out.Valid[i] = true
				break
			}
		}
	}
	return out, nil
}

// BlackfillValidity marks pixels invalid where the legacy band reports
// blackfill, returning a copy of the target band with the adjusted
// validity. Used when displaying other bands of a scene that carries
// collar blackfill.
func BlackfillValidity(target, legacy *raster.Grid) (*raster.Grid, error) {
	if target == nil || legacy == nil || !target.SameShape(legacy) {
		return nil, fmt.Errorf("%w: %w", raster.ErrInvalidInput, raster.ErrShapeMismatch)
	}
	out := target.Clone()
	for i, v := range legacy.Data {
		if int(math.RoundToEven(v)) == legacyBlackfillBit {
			out.Valid[i] = false
		}
	}
	return out, nil
}
