package render

import (
	"fmt"
	"math"
	"sort"

	"github.com/maskwatch/maskwatch-research-cli/internal/raster"
)

// ClassMapping assigns each distinct class code found in a band a
// position in [0, 1], evenly spaced so a continuous colormap yields
// distinguishable colors no matter how the codes are numerically
// distributed. It is an immutable value rebuilt for every band.
type ClassMapping struct {
	codes     []int
	positions map[int]float64
}

// BuildClassMapping scans the valid pixels of a band and maps each
// distinct class code to a position in [0, 1]. Codes are compared after
// rounding to the nearest integer with ties rounded to even
// (math.RoundToEven), so raw values rounding to the same integer
// collapse into one class. Invalid pixels never contribute a code.
//
// With N distinct codes in ascending order, the i-th code maps to
// i/(N-1); a single code maps to 0 and an all-invalid band produces an
// empty mapping.
func BuildClassMapping(g *raster.Grid) (ClassMapping, error) {
	if g == nil || len(g.Data) == 0 {
		return ClassMapping{}, fmt.Errorf("%w: %w", raster.ErrInvalidInput, raster.ErrEmptyGrid)
	}

	seen := make(map[int]bool)
	for i, v := range g.Data {
		if !g.Valid[i] {
			continue
		}
		seen[int(math.RoundToEven(v))] = true
	}

	codes := make([]int, 0, len(seen))
	for code := range seen {
		codes = append(codes, code)
	}
	sort.Ints(codes)

	positions := make(map[int]float64, len(codes))
	for i, code := range codes {
		if len(codes) == 1 {
			positions[code] = 0
		} else {
			positions[code] = float64(i) / float64(len(codes)-1)
		}
	}
	return ClassMapping{codes: codes, positions: positions}, nil
}

// Len returns the number of distinct classes in the mapping.
func (m ClassMapping) Len() int {
	return len(m.codes)
}

// Codes returns the class codes in ascending order.
func (m ClassMapping) Codes() []int {
	out := make([]int, len(m.codes))
	copy(out, m.codes)
	return out
}

// Position returns the [0, 1] position of a code and whether the code
// is part of the mapping.
func (m ClassMapping) Position(code int) (float64, bool) {
	pos, ok := m.positions[code]
	return pos, ok
}

// Normalize replaces every valid pixel of the band with its mapped
// position, leaving invalid pixels untouched. The band must be the one
// the mapping was built from; a valid pixel whose rounded code is
// missing from the mapping is an internal consistency violation and
// fails with an error.
func (m ClassMapping) Normalize(g *raster.Grid) (*raster.Grid, error) {
	if g == nil || len(g.Data) == 0 {
		return nil, fmt.Errorf("%w: %w", raster.ErrInvalidInput, raster.ErrEmptyGrid)
	}

	out := g.Clone()
	for i, v := range g.Data {
		if !g.Valid[i] {
			continue
		}
		code := int(math.RoundToEven(v))
		pos, ok := m.positions[code]
		if !ok {
			return nil, fmt.Errorf("%w: class code %d is not present in the mapping", raster.ErrInvalidInput, code)
		}
		out.Data[i] = pos
	}
	return out, nil
}
