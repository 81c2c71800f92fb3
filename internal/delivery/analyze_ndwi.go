package delivery

import (
	"context"
	"fmt"
	"time"

	"github.com/airbusgeo/godal"
	"github.com/maskwatch/maskwatch-research-cli/internal/indices"
	"github.com/maskwatch/maskwatch-research-cli/internal/planet"
	"github.com/maskwatch/maskwatch-research-cli/internal/properties"
	"github.com/maskwatch/maskwatch-research-cli/internal/raster"
	"github.com/maskwatch/maskwatch-research-cli/internal/render"
	"github.com/maskwatch/maskwatch-research-cli/output"
)

// Ortho analytic 4-band layout, zero-based.
const (
	analyticBandBlue = iota
	analyticBandGreen
	analyticBandRed
	analyticBandNIR
)

// NDWIReport holds the artifacts of a water-index analysis.
type NDWIReport struct {
	SceneID      string
	Acquired     time.Time
	IndexPath    string
	WaterMapPath string
	WaterPercent float64
}

// AnalyzeNDWI downloads the analytic asset of the most recent scene
// over the AOI, computes NDWI from the green and NIR bands, renders
// the continuous index, then thresholds it into a two-class water mask
// and renders that through the classified band pipeline.
func AnalyzeNDWI(ctx context.Context, aoiName string, endDate time.Time, threshold float64) (*NDWIReport, error) {
	scene, scenePath, err := fetchLatestScene(ctx, aoiName, endDate, planet.AssetAnalytic)
	if err != nil {
		return nil, err
	}

	godal.RegisterAll()
	ds, err := godal.Open(scenePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open analytic file %s: %w", scenePath, err)
	}
	defer ds.Close()

	green, err := raster.ReadBand(ds, analyticBandGreen)
	if err != nil {
		return nil, err
	}
	nir, err := raster.ReadBand(ds, analyticBandNIR)
	if err != nil {
		return nil, err
	}

	ndwi, err := indices.NDWI(green, nir)
	if err != nil {
		return nil, err
	}

	outputBase := fmt.Sprintf("%s/data/result/%s_%s_ndwi", properties.RootPath(), aoiName, scene.ID)

	// NDWI spans [-1, 1]; shift into [0, 1] for the colormap.
	continuous := ndwi.Clone()
	for i, v := range continuous.Data {
		if continuous.Valid[i] {
			continuous.Data[i] = (v + 1) / 2
		}
	}
	indexPath := outputBase + ".png"
	if err := output.RenderClassifiedPNG(continuous, output.RdBu, nil, indexPath); err != nil {
		return nil, err
	}

	waterMask, err := indices.Threshold(ndwi, threshold)
	if err != nil {
		return nil, err
	}
	waterMapPath := outputBase + "_water.png"
	waterLabels := []render.ClassLabel{
		{Code: 0, Label: "not water"},
		{Code: 1, Label: "water"},
	}
	if err := output.RenderClassified(waterMask, waterLabels, waterMapPath); err != nil {
		return nil, err
	}

	waterPixels := 0
	validPixels := 0
	for i, v := range waterMask.Data {
		if !waterMask.Valid[i] {
			continue
		}
		validPixels++
		if v == 1 {
			waterPixels++
		}
	}
	waterPercent := 0.0
	if validPixels > 0 {
		waterPercent = float64(waterPixels) / float64(validPixels) * 100
	}

	return &NDWIReport{
		SceneID:      scene.ID,
		Acquired:     scene.Acquired,
		IndexPath:    indexPath,
		WaterMapPath: waterMapPath,
		WaterPercent: waterPercent,
	}, nil
}
