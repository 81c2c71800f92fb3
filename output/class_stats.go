package output

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/maskwatch/maskwatch-research-cli/internal/raster"
	"github.com/maskwatch/maskwatch-research-cli/internal/render"
)

// ClassStat summarizes one class of a classified band.
type ClassStat struct {
	Code    int     `csv:"code"`
	Label   string  `csv:"label"`
	Pixels  int     `csv:"pixels"`
	Percent float64 `csv:"percent"`
}

// ComputeClassStats counts valid pixels per rounded class code and
// reports each class share as a percentage of the valid pixel total.
// Codes without a label get an empty label. Results are ordered by
// ascending code.
func ComputeClassStats(g *raster.Grid, labels []render.ClassLabel) ([]ClassStat, error) {
	if g == nil || len(g.Data) == 0 {
		return nil, fmt.Errorf("%w: %w", raster.ErrInvalidInput, raster.ErrEmptyGrid)
	}

	labelByCode := make(map[int]string, len(labels))
	for _, label := range labels {
		labelByCode[label.Code] = label.Label
	}

	counts := make(map[int]int)
	total := 0
	for i, v := range g.Data {
		if !g.Valid[i] {
			continue
		}
		counts[int(math.RoundToEven(v))]++
		total++
	}

	codes := make([]int, 0, len(counts))
	for code := range counts {
		codes = append(codes, code)
	}
	sort.Ints(codes)

	stats := make([]ClassStat, 0, len(codes))
	for _, code := range codes {
		percent := 0.0
		if total > 0 {
			percent = float64(counts[code]) / float64(total) * 100
		}
		stats = append(stats, ClassStat{
			Code:    code,
			Label:   labelByCode[code],
			Pixels:  counts[code],
			Percent: percent,
		})
	}
	return stats, nil
}

// WriteClassStatsCSV writes class statistics to a CSV file.
func WriteClassStatsCSV(stats []ClassStat, outputPath string) error {
	if !strings.HasSuffix(outputPath, ".csv") {
		outputPath += ".csv"
	}
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file %s: %w", outputPath, err)
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&stats, file); err != nil {
		return fmt.Errorf("failed to write CSV file %s: %w", outputPath, err)
	}
	return nil
}
