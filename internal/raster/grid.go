package raster

import "fmt"

// Grid is a single raster band held in memory: a width*height block of
// float64 samples in row-major order plus a per-pixel validity flag.
// Invalid pixels are carried through computations untouched so the
// renderer can map them to its own nodata color.
type Grid struct {
	Width  int
	Height int
	Data   []float64
	Valid  []bool
}

// NewGrid builds a Grid from row-major rows. A nil valid argument marks
// every pixel valid; otherwise valid must have the same shape as rows.
func NewGrid(rows [][]float64, valid [][]bool) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, ErrEmptyGrid)
	}
	width := len(rows[0])
	height := len(rows)
	if valid != nil && len(valid) != height {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, ErrShapeMismatch)
	}

	g := &Grid{
		Width:  width,
		Height: height,
		Data:   make([]float64, 0, width*height),
		Valid:  make([]bool, 0, width*height),
	}
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: %w", ErrInvalidInput, ErrRaggedGrid)
		}
		if valid != nil && len(valid[y]) != width {
			return nil, fmt.Errorf("%w: %w", ErrInvalidInput, ErrShapeMismatch)
		}
		g.Data = append(g.Data, row...)
		for x := range row {
			g.Valid = append(g.Valid, valid == nil || valid[y][x])
		}
	}
	return g, nil
}

// NewUniformGrid builds an all-valid Grid of the given shape with every
// sample set to value.
func NewUniformGrid(width, height int, value float64) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, ErrEmptyGrid)
	}
	g := &Grid{
		Width:  width,
		Height: height,
		Data:   make([]float64, width*height),
		Valid:  make([]bool, width*height),
	}
	for i := range g.Data {
		g.Data[i] = value
		g.Valid[i] = true
	}
	return g, nil
}

func (g *Grid) At(x, y int) float64 {
	return g.Data[y*g.Width+x]
}

func (g *Grid) ValidAt(x, y int) bool {
	return g.Valid[y*g.Width+x]
}

func (g *Grid) SetValid(x, y int, valid bool) {
	g.Valid[y*g.Width+x] = valid
}

// Clone returns a deep copy sharing no storage with the receiver.
func (g *Grid) Clone() *Grid {
	out := &Grid{
		Width:  g.Width,
		Height: g.Height,
		Data:   make([]float64, len(g.Data)),
		Valid:  make([]bool, len(g.Valid)),
	}
	copy(out.Data, g.Data)
	copy(out.Valid, g.Valid)
	return out
}

// SameShape reports whether two grids have identical dimensions.
func (g *Grid) SameShape(other *Grid) bool {
	return g.Width == other.Width && g.Height == other.Height
}

// ValidCount returns the number of valid pixels.
func (g *Grid) ValidCount() int {
	n := 0
	for _, ok := range g.Valid {
		if ok {
			n++
		}
	}
	return n
}
