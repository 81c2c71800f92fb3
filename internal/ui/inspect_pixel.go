package ui

import (
	"fmt"
	"math"

	"github.com/airbusgeo/godal"
	"github.com/maskwatch/maskwatch-research-cli/internal/raster"
	"github.com/maskwatch/maskwatch-research-cli/internal/udm"
)

// InspectPixel handles the UI for decoding the legacy mask value at a
// geographic coordinate of a downloaded UDM2 scene file
func InspectPixel() {
	PrintWarning("The scene file must be a UDM2 GeoTIFF downloaded to data/scenes.")

	path := ReadString("Enter the path of the UDM2 scene file: ")
	if path == "" {
		PrintError("Scene path cannot be empty")
		return
	}

	lon, err := ReadFloat("Enter the longitude: ", math.NaN())
	if err != nil || math.IsNaN(lon) {
		PrintError("Invalid longitude")
		return
	}
	lat, err := ReadFloat("Enter the latitude: ", math.NaN())
	if err != nil || math.IsNaN(lat) {
		PrintError("Invalid latitude")
		return
	}

	godal.RegisterAll()
	ds, err := godal.Open(path)
	if err != nil {
		PrintError(fmt.Sprintf("Error opening scene file: %s", err.Error()))
		return
	}
	defer ds.Close()

	x, y, err := raster.LonLatToPixel(ds, lon, lat)
	if err != nil {
		PrintError(err.Error())
		return
	}

	legacyBand, err := raster.OpenBand(path, udm.BandUnusable)
	if err != nil {
		PrintError(err.Error())
		return
	}

	value := int(math.RoundToEven(legacyBand.At(x, y)))
	label, err := udm.DecodeLegacy(value)
	if err != nil {
		PrintError(err.Error())
		return
	}

	fmt.Printf("\n%sPixel (%d, %d) at (%.5f, %.5f): %d -> %s%s\n", ColorGreen, x, y, lon, lat, value, label, ColorReset)
}
