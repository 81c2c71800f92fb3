package ui

import (
	"fmt"

	"github.com/maskwatch/maskwatch-research-cli/internal/udm"
)

// DecodeLegacyValue handles the UI for decoding a single legacy
// unusable-data-mask byte entered by hand
func DecodeLegacyValue() {
	value, err := ReadInt("Enter the legacy mask value (0-255): ", 0, 255)
	if err != nil {
		PrintError(err.Error())
		return
	}

	label, err := udm.DecodeLegacy(value)
	if err != nil {
		PrintError(err.Error())
		return
	}

	fmt.Printf("\n%s%d (%08b): %s%s\n", ColorGreen, value, value, label, ColorReset)
}
