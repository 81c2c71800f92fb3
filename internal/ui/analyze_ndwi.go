package ui

import (
	"context"
	"fmt"

	"github.com/maskwatch/maskwatch-research-cli/internal/delivery"
	"github.com/maskwatch/maskwatch-research-cli/internal/notification"
)

// AnalyzeNDWI handles the UI for computing and thresholding an NDWI
// water map over an AOI
func AnalyzeNDWI() {
	PrintWarning("- A '.geojson' file with the AOI name should be present in data/geojsons folder.\n- The analytic asset of the most recent scene is downloaded, which can take a while.")

	PrintInfo("Available AOIs: ")
	ListAOIs()
	aoi := ReadString("Enter the AOI name: ")
	if aoi == "" {
		PrintError("AOI name cannot be empty")
		return
	}

	endDate, err := ReadDate("Enter the date to be analyzed (YYYY-MM-DD | today): ")
	if err != nil {
		PrintError(err.Error())
		return
	}

	threshold, err := ReadFloat("Enter the NDWI water threshold (default 0): ", 0)
	if err != nil {
		PrintError(err.Error())
		return
	}

	report, err := delivery.AnalyzeNDWI(context.Background(), aoi, endDate, threshold)
	if err != nil {
		PrintError(fmt.Sprintf("Error computing NDWI: %s", err.Error()))
		notification.SendDiscordErrorNotification(fmt.Sprintf("Maskwatch CLI\n\nError computing NDWI: %s", err.Error()))
		return
	}

	fmt.Printf("\n%sScene %s acquired %s%s\n", ColorGreen, report.SceneID, report.Acquired.Format("2006-01-02 15:04"), ColorReset)
	fmt.Printf("%sWater coverage: %.1f%% of valid pixels%s\n", ColorGreen, report.WaterPercent, ColorReset)

	PrintSuccess(fmt.Sprintf("Successful analysis!\n NDWI map located at: %s\n Water map located at: %s", report.IndexPath, report.WaterMapPath))
	notification.SendDiscordSuccessNotification(fmt.Sprintf("Maskwatch CLI\n\nSuccessful analysis!\nNDWI map located at: %s\nWater map located at: %s", report.IndexPath, report.WaterMapPath))
}
