package output

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/maskwatch/maskwatch-research-cli/internal/raster"
	"github.com/maskwatch/maskwatch-research-cli/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinearColormapEndpoints(t *testing.T) {
	assert.Equal(t, color.RGBA{68, 1, 84, 255}, Viridis.At(0))
	assert.Equal(t, color.RGBA{253, 231, 37, 255}, Viridis.At(1))
	assert.Equal(t, Viridis.At(0), Viridis.At(-0.5))
	assert.Equal(t, Viridis.At(1), Viridis.At(2))
}

func TestLinearColormapInterpolates(t *testing.T) {
	mid := Viridis.At(0.5)
	assert.NotEqual(t, Viridis.At(0), mid)
	assert.NotEqual(t, Viridis.At(1), mid)
	assert.Equal(t, uint8(255), mid.A)
}

func TestComputeClassStats(t *testing.T) {
	g, err := raster.NewGrid(
		[][]float64{{0, 0, 5}, {5, 5, 1}},
		[][]bool{{true, true, true}, {true, true, false}},
	)
	require.NoError(t, err)

	stats, err := ComputeClassStats(g, []render.ClassLabel{
		{Code: 0, Label: "clear"},
		{Code: 5, Label: "cloud"},
	})
	require.NoError(t, err)

	require.Len(t, stats, 2)
	assert.Equal(t, ClassStat{Code: 0, Label: "clear", Pixels: 2, Percent: 40}, stats[0])
	assert.Equal(t, ClassStat{Code: 5, Label: "cloud", Pixels: 3, Percent: 60}, stats[1])
}

func TestComputeClassStatsEmpty(t *testing.T) {
	_, err := ComputeClassStats(nil, nil)
	assert.ErrorIs(t, err, raster.ErrInvalidInput)
}

func TestWriteClassStatsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats")
	stats := []ClassStat{{Code: 0, Label: "clear", Pixels: 4, Percent: 100}}

	require.NoError(t, WriteClassStatsCSV(stats, path))

	data, readErr := os.ReadFile(path + ".csv")
	require.NoError(t, readErr)
	assert.Contains(t, string(data), "code,label,pixels,percent")
	assert.Contains(t, string(data), "0,clear,4,100")
}

func TestRenderClassifiedPNG(t *testing.T) {
	g, gridErr := raster.NewGrid(
		[][]float64{{0, 0.5}, {1, 0.5}},
		[][]bool{{true, true}, {true, false}},
	)
	require.NoError(t, gridErr)

	path := filepath.Join(t.TempDir(), "classified")
	entries := []render.LegendEntry{
		{Position: 0, Label: "clear"},
		{Position: 1, Label: "cloud"},
	}
	require.NoError(t, RenderClassifiedPNG(g, Viridis, entries, path))

	file, openErr := os.Open(path + ".png")
	require.NoError(t, openErr)
	defer file.Close()

	img, decodeErr := png.Decode(file)
	require.NoError(t, decodeErr)
	assert.Equal(t, 2, img.Bounds().Dx())
	// legend strip is appended below the 2-pixel raster
	assert.Greater(t, img.Bounds().Dy(), 2)
}

func TestRenderClassifiedEndToEnd(t *testing.T) {
	g, gridErr := raster.NewGrid([][]float64{{0, 1, 5}, {5, 1, 0}}, nil)
	require.NoError(t, gridErr)

	path := filepath.Join(t.TempDir(), "band.png")
	labels := []render.ClassLabel{
		{Code: 0, Label: "clear"},
		{Code: 1, Label: "snow"},
		{Code: 5, Label: "cloud"},
	}
	require.NoError(t, RenderClassified(g, labels, path))

	info, statErr := os.Stat(path)
	require.NoError(t, statErr)
	assert.Greater(t, info.Size(), int64(0))
}

func TestRenderClassifiedNoLegend(t *testing.T) {
	g, gridErr := raster.NewGrid([][]float64{{0, 1}}, nil)
	require.NoError(t, gridErr)

	path := filepath.Join(t.TempDir(), "nolegend.png")
	require.NoError(t, RenderClassified(g, nil, path))

	file, openErr := os.Open(path)
	require.NoError(t, openErr)
	defer file.Close()

	img, decodeErr := png.Decode(file)
	require.NoError(t, decodeErr)
	assert.Equal(t, 1, img.Bounds().Dy())
}
