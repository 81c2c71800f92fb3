package delivery

import (
	"context"
	"fmt"
	"time"

	"github.com/airbusgeo/godal"
	"github.com/maskwatch/maskwatch-research-cli/internal/planet"
	"github.com/maskwatch/maskwatch-research-cli/internal/properties"
	"github.com/maskwatch/maskwatch-research-cli/internal/raster"
	"github.com/maskwatch/maskwatch-research-cli/internal/udm"
	"github.com/maskwatch/maskwatch-research-cli/internal/utils"
	"github.com/maskwatch/maskwatch-research-cli/output"
)

const (
	searchWindowDays = 30
	maxSceneCloud    = 0.5
	downloadTimeout  = 10 * time.Minute
)

// MaskReport holds the artifacts of a UDM2 mask analysis.
type MaskReport struct {
	SceneID      string
	Acquired     time.Time
	CenterLon    float64
	CenterLat    float64
	ImagePath    string
	StatsPath    string
	LegacyValues []udm.ValueLabel
}

// AnalyzeSceneMask searches for the most recent PSScene over the named
// AOI before endDate, downloads its UDM2 asset, renders the classified
// usability map with a legend, writes per-class statistics and decodes
// every legacy mask value present in the scene.
func AnalyzeSceneMask(ctx context.Context, aoiName string, endDate time.Time) (*MaskReport, error) {
	scene, scenePath, err := fetchLatestScene(ctx, aoiName, endDate, planet.AssetUDM2)
	if err != nil {
		return nil, err
	}

	godal.RegisterAll()
	bandCount, err := raster.BandCount(scenePath)
	if err != nil {
		return nil, err
	}
	if bandCount < udm.BandCount {
		return nil, fmt.Errorf("%w: UDM2 file %s has %d bands, expected %d", raster.ErrInvalidInput, scenePath, bandCount, udm.BandCount)
	}

	ds, err := godal.Open(scenePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open UDM2 file %s: %w", scenePath, err)
	}
	defer ds.Close()

	classBands := make([]*raster.Grid, 0, udm.ClassCloud+1)
	for band := udm.BandClear; band <= udm.BandCloud; band++ {
		g, err := raster.ReadBand(ds, band)
		if err != nil {
			return nil, err
		}
		classBands = append(classBands, g)
	}
	legacyBand, err := raster.ReadBand(ds, udm.BandUnusable)
	if err != nil {
		return nil, err
	}

	classes, err := udm.ComposeClasses(classBands)
	if err != nil {
		return nil, err
	}
	classes, err = udm.BlackfillValidity(classes, legacyBand)
	if err != nil {
		return nil, err
	}

	outputBase := fmt.Sprintf("%s/data/result/%s_%s_udm2", properties.RootPath(), aoiName, scene.ID)
	imagePath := outputBase + ".png"
	if err := output.RenderClassified(classes, udm.ClassLabels(), imagePath); err != nil {
		return nil, err
	}

	stats, err := output.ComputeClassStats(classes, udm.ClassLabels())
	if err != nil {
		return nil, err
	}
	statsPath := outputBase + ".csv"
	if err := output.WriteClassStatsCSV(stats, statsPath); err != nil {
		return nil, err
	}

	legacyValues, err := udm.DecodeDistinctLegacy(legacyBand)
	if err != nil {
		return nil, err
	}

	centerLon, centerLat, err := raster.PixelToLonLat(ds, classes.Width/2, classes.Height/2)
	if err != nil {
		return nil, err
	}

	return &MaskReport{
		SceneID:      scene.ID,
		Acquired:     scene.Acquired,
		CenterLon:    centerLon,
		CenterLat:    centerLat,
		ImagePath:    imagePath,
		StatsPath:    statsPath,
		LegacyValues: legacyValues,
	}, nil
}

// fetchLatestScene searches the AOI in a window before endDate,
// downloads the requested asset of every hit and returns the most
// recently acquired scene with its file path.
func fetchLatestScene(ctx context.Context, aoiName string, endDate time.Time, assetType string) (planet.Scene, string, error) {
	aoiPath := fmt.Sprintf("%s/data/geojsons/%s.geojson", properties.RootPath(), aoiName)
	aoi, err := planet.LoadAOI(aoiPath)
	if err != nil {
		return planet.Scene{}, "", err
	}

	client, err := planet.NewClient(ctx)
	if err != nil {
		return planet.Scene{}, "", err
	}

	startDate := endDate.AddDate(0, 0, -searchWindowDays)
	scenes, err := client.SearchScenes(ctx, aoi, startDate, endDate, maxSceneCloud)
	if err != nil {
		return planet.Scene{}, "", err
	}
	if len(scenes) == 0 {
		return planet.Scene{}, "", fmt.Errorf("no scenes found for AOI %s between %s and %s",
			aoiName, startDate.Format("2006-01-02"), endDate.Format("2006-01-02"))
	}

	destDir := fmt.Sprintf("%s/data/scenes/%s", properties.RootPath(), aoiName)
	paths, err := client.DownloadAssets(ctx, scenes, assetType, destDir, downloadTimeout)
	if err != nil {
		return planet.Scene{}, "", err
	}

	byDate := make(map[time.Time]int, len(scenes))
	for i, scene := range scenes {
		byDate[scene.Acquired] = i
	}
	latest := utils.GetSortedKeys(byDate, false)[0]
	idx := byDate[latest]
	return scenes[idx], paths[idx], nil
}
