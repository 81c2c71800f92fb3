package ui

import (
	"context"
	"fmt"

	"github.com/maskwatch/maskwatch-research-cli/internal/delivery"
	"github.com/maskwatch/maskwatch-research-cli/internal/notification"
)

// AnalyzeMask handles the UI for analyzing the UDM2 usability mask of
// the latest scene over an AOI
func AnalyzeMask() {
	PrintWarning("- A '.geojson' file with the AOI name should be present in data/geojsons folder.\n- The most recent scene within the last 30 days is analyzed.")

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

	report, err := delivery.AnalyzeSceneMask(context.Background(), aoi, endDate)
	if err != nil {
		PrintError(fmt.Sprintf("Error analyzing scene mask: %s", err.Error()))
		notification.SendDiscordErrorNotification(fmt.Sprintf("Maskwatch CLI\n\nError analyzing scene mask: %s", err.Error()))
		return
	}

	fmt.Printf("\n%sScene %s acquired %s centered at (%.5f, %.5f)%s\n", ColorGreen, report.SceneID,
		report.Acquired.Format("2006-01-02 15:04"), report.CenterLon, report.CenterLat, ColorReset)
	fmt.Printf("%sLegacy mask values present in the scene:%s\n", ColorGreen, ColorReset)
	for _, pair := range report.LegacyValues {
		fmt.Printf("%s  %3d: %s%s\n", ColorGreen, pair.Value, pair.Label, ColorReset)
	}

	PrintSuccess(fmt.Sprintf("Successful analysis!\n Usability map located at: %s\n Class statistics located at: %s", report.ImagePath, report.StatsPath))
	notification.SendDiscordSuccessNotification(fmt.Sprintf("Maskwatch CLI\n\nSuccessful analysis!\nUsability map located at: %s\nClass statistics located at: %s", report.ImagePath, report.StatsPath))
}
