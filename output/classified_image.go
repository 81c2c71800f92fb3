package output

import (
	"fmt"
	"strings"

	"github.com/fogleman/gg"
	"github.com/maskwatch/maskwatch-research-cli/internal/raster"
	"github.com/maskwatch/maskwatch-research-cli/internal/render"
)

const (
	legendRowHeight = 20
	legendSwatch    = 14
	legendPadding   = 6
)

// RenderClassifiedPNG draws a normalized classified band through a
// colormap and saves it as a PNG. Invalid pixels are left fully
// transparent. When legend entries are supplied a legend strip is
// appended below the raster, one swatch and label per entry; an empty
// entry list just renders the raster.
func RenderClassifiedPNG(g *raster.Grid, cm Colormap, entries []render.LegendEntry, outputPath string) error {
	if g == nil || len(g.Data) == 0 {
		return fmt.Errorf("%w: %w", raster.ErrInvalidInput, raster.ErrEmptyGrid)
	}
	if !strings.HasSuffix(outputPath, ".png") {
		outputPath += ".png"
	}

	legendHeight := 0
	if len(entries) > 0 {
		legendHeight = len(entries)*legendRowHeight + legendPadding
	}

	dc := gg.NewContext(g.Width, g.Height+legendHeight)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if !g.ValidAt(x, y) {
				continue
			}
			c := cm.At(g.At(x, y))
			dc.SetRGBA255(int(c.R), int(c.G), int(c.B), 255)
			dc.SetPixel(x, y)
		}
	}

	if legendHeight > 0 {
		dc.SetRGB(1, 1, 1)
		dc.DrawRectangle(0, float64(g.Height), float64(g.Width), float64(legendHeight))
		dc.Fill()

		for i, entry := range entries {
			rowTop := float64(g.Height + legendPadding/2 + i*legendRowHeight)
			c := cm.At(entry.Position)
			dc.SetRGBA255(int(c.R), int(c.G), int(c.B), 255)
			dc.DrawRectangle(float64(legendPadding), rowTop, legendSwatch, legendSwatch)
			dc.Fill()

			dc.SetRGB(0, 0, 0)
			dc.DrawString(entry.Label, float64(legendPadding*2+legendSwatch), rowTop+legendSwatch-3)
		}
	}

	if err := dc.SavePNG(outputPath); err != nil {
		return fmt.Errorf("failed to save PNG %s: %w", outputPath, err)
	}
	return nil
}

// RenderClassified builds the class mapping for a band, normalizes it
// and renders it with a legend in one step. Labels may be nil to
// suppress the legend, which callers do for bands with many classes.
func RenderClassified(g *raster.Grid, labels []render.ClassLabel, outputPath string) error {
	mapping, err := render.BuildClassMapping(g)
	if err != nil {
		return err
	}
	normalized, err := mapping.Normalize(g)
	if err != nil {
		return err
	}
	return RenderClassifiedPNG(normalized, Viridis, mapping.Legend(labels), outputPath)
}
