package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/maskwatch/maskwatch-research-cli/internal/planet"
	"github.com/maskwatch/maskwatch-research-cli/internal/properties"
)

func main() {
	// Hardcoded test parameters - modify these to test different scenarios
	aoiName := "san-francisco-bay"
	endDate := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	windowDays := 14

	fmt.Println("=== Maskwatch Test Scene Download ===")
	fmt.Printf("AOI: %s\n", aoiName)
	fmt.Printf("Date: %s\n", endDate.Format("2006-01-02"))
	fmt.Println()

	if err := godotenv.Load("../../.env"); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
		fmt.Println("Make sure you have set the required environment variables:")
		fmt.Println("- PL_API_KEY (or PLANET_CLIENT_ID / PLANET_CLIENT_SECRET / PLANET_TOKEN_URL)")
		fmt.Println("- ROOT_PATH")
		fmt.Println()
	}

	ctx := context.Background()

	aoiPath := fmt.Sprintf("%s/data/geojsons/%s.geojson", properties.RootPath(), aoiName)
	fmt.Printf("Loading AOI geometry from %s...\n", aoiPath)
	aoi, err := planet.LoadAOI(aoiPath)
	if err != nil {
		log.Fatalf("Failed to load AOI: %v", err)
	}
	fmt.Println("✓ AOI loaded successfully")
	if lon, lat, err := planet.AOICentroid(aoi); err == nil {
		fmt.Printf("  Centroid: (%.5f, %.5f)\n", lon, lat)
	}

	client, err := planet.NewClient(ctx)
	if err != nil {
		log.Fatalf("Failed to create Planet client: %v", err)
	}

	startDate := endDate.AddDate(0, 0, -windowDays)
	fmt.Printf("Searching scenes between %s and %s...\n", startDate.Format("2006-01-02"), endDate.Format("2006-01-02"))
	scenes, err := client.SearchScenes(ctx, aoi, startDate, endDate, 0.5)
	if err != nil {
		log.Fatalf("Search failed: %v", err)
	}
	fmt.Printf("✓ Found %d scenes\n", len(scenes))
	for _, scene := range scenes {
		fmt.Printf("  %s acquired %s cloud %.2f\n", scene.ID, scene.Acquired.Format("2006-01-02 15:04"), scene.CloudCover)
	}
	if len(scenes) == 0 {
		os.Exit(0)
	}

	destDir := fmt.Sprintf("%s/data/scenes/%s", properties.RootPath(), aoiName)
	fmt.Printf("Downloading UDM2 assets to %s...\n", destDir)
	paths, err := client.DownloadAssets(ctx, scenes, planet.AssetUDM2, destDir, 10*time.Minute)
	if err != nil {
		log.Fatalf("Download failed: %v", err)
	}
	fmt.Println("✓ Downloads complete:")
	for _, path := range paths {
		fmt.Printf("  %s\n", path)
	}
}
