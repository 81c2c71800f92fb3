package udm

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/maskwatch/maskwatch-research-cli/internal/raster"
)

// ErrDomain flags a legacy mask value outside the 0-255 byte range.
var ErrDomain = errors.New("legacy mask value out of byte range")

const (
	legacyBlackfillBit = 1 << 0
	legacyCloudBit     = 1 << 1
	legacyChannelMask  = 0b11111100
)

// legacyChannels names the per-channel missing/suspect flags of the
// legacy unusable data mask, ordered by bit position 2 through 7.
var legacyChannels = []string{
	"Blue",
	"Green",
	"Red",
	"Red-Edge",
	"NIR",
	"Coastal/Yellow-composite",
}

// DecodeLegacy translates one legacy unusable-data-mask byte into a
// human readable label. 0 is "clear", 1 is "blackfill"; any other value
// is decoded bit by bit, with cloud and channel labels joined by " + "
// when both occur. A byte that matches no known bit falls back to its
// zero-padded binary rendering. Values outside 0-255 fail with
// ErrDomain.
func DecodeLegacy(value int) (string, error) {
	if value < 0 || value > 255 {
		return "", fmt.Errorf("%w: %d", ErrDomain, value)
	}

	switch value {
	case 0:
		return "clear", nil
	case legacyBlackfillBit:
		return "blackfill", nil
	}

	var parts []string
	if value&legacyCloudBit != 0 {
		parts = append(parts, "cloud")
	}
	if value&legacyChannelMask != 0 {
		var channels []string
		for i, name := range legacyChannels {
			if value&(1<<(i+2)) != 0 {
				channels = append(channels, name)
			}
		}
		parts = append(parts, fmt.Sprintf("missing/suspect %s data", strings.Join(channels, ", ")))
	}

	if len(parts) == 0 {
		return fmt.Sprintf("%08b", value), nil
	}
	return strings.Join(parts, " + "), nil
}

// ValueLabel pairs a legacy mask byte with its decoded label.
type ValueLabel struct {
	Value int
	Label string
}

// DecodeDistinctLegacy decodes every distinct legacy mask value present
// among the valid pixels of a band, returning the pairs in ascending
// value order. Values are rounded to the nearest integer (ties to
// even) before decoding, matching the classified band renderer.
func DecodeDistinctLegacy(g *raster.Grid) ([]ValueLabel, error) {
	if g == nil || len(g.Data) == 0 {
		return nil, fmt.Errorf("%w: %w", raster.ErrInvalidInput, raster.ErrEmptyGrid)
	}

	seen := make(map[int]bool)
	for i, v := range g.Data {
		if !g.Valid[i] {
			continue
		}
		seen[int(math.RoundToEven(v))] = true
	}

	values := make([]int, 0, len(seen))
	for v := range seen {
		values = append(values, v)
	}
	sort.Ints(values)

	out := make([]ValueLabel, 0, len(values))
	for _, v := range values {
		label, err := DecodeLegacy(v)
		if err != nil {
			return nil, err
		}
		out = append(out, ValueLabel{Value: v, Label: label})
	}
	return out, nil
}
