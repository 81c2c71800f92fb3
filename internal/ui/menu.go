package ui

import (
	"fmt"
	"os"
)

type menuOption struct {
	title   string
	handler func()
}

// ShowMenu displays the main menu and handles user input
func ShowMenu() {
	menuOptions := []menuOption{
		{"Analyze the UDM2 usability mask of the latest scene over an AOI", AnalyzeMask},
		{"Compute and threshold an NDWI water map over an AOI", AnalyzeNDWI},
		{"Decode a legacy unusable-data-mask value", DecodeLegacyValue},
		{"Inspect the legacy mask at a coordinate of a downloaded scene", InspectPixel},
		{"View the list of available AOIs", ListAOIs},
		{"Exit the application", func() { fmt.Println("Exiting..."); os.Exit(0) }},
	}

	for {
		fmt.Println(ColorBlue + "===================" + ColorReset)
		for i, opt := range menuOptions {
			fmt.Printf("%s%d. %s%s\n", ColorBlue, i+1, opt.title, ColorReset)
		}
		fmt.Println(ColorBlue + "Please enter your choice:" + ColorReset)

		var choice int
		_, err := fmt.Scan(&choice)
		if err != nil {
			PrintError("Invalid input. Please enter a number.")
			fmt.Scanln() // Clear the buffer
			continue
		}

		if choice < 1 || choice > len(menuOptions) {
			PrintError("Invalid choice. Please try again.")
			continue
		}

		menuOptions[choice-1].handler()
	}
}
