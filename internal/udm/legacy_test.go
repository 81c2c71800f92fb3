package udm

import (
	"testing"

	"github.com/maskwatch/maskwatch-research-cli/internal/raster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeLegacy(t *testing.T) {
	tests := []struct {
		name  string
		value int
		want  string
	}{
		{name: "clear", value: 0, want: "clear"},
		{name: "blackfill", value: 1, want: "blackfill"},
		{name: "cloud only", value: 0b00000010, want: "cloud"},
		{name: "blue missing", value: 0b00000100, want: "missing/suspect Blue data"},
		{
			name:  "cloud plus blue",
			value: 0b00000110,
			want:  "cloud + missing/suspect Blue data",
		},
		{
			name:  "two channels comma joined in bit order",
			value: 0b00001100,
			want:  "missing/suspect Blue, Green data",
		},
		{
			name:  "high bit channel",
			value: 0b10000000,
			want:  "missing/suspect Coastal/Yellow-composite data",
		},
		{
			name:  "all channels and cloud",
			value: 0b11111110,
			want:  "cloud + missing/suspect Blue, Green, Red, Red-Edge, NIR, Coastal/Yellow-composite data",
		},
		{
			name:  "cloud with blackfill bit set",
			value: 0b00000011,
			want:  "cloud",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeLegacy(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeLegacyOutOfRange(t *testing.T) {
	for _, value := range []int{-1, 256, 1000} {
		_, err := DecodeLegacy(value)
		assert.ErrorIs(t, err, ErrDomain, "value %d", value)
	}
}

func TestDecodeLegacyTotalOverDomain(t *testing.T) {
	for value := 0; value <= 255; value++ {
		label, err := DecodeLegacy(value)
		require.NoError(t, err, "value %d", value)
		assert.NotEmpty(t, label, "value %d", value)
	}
}

func TestDecodeDistinctLegacy(t *testing.T) {
	g, err := raster.NewGrid([][]float64{
		{0, 2, 6},
		{6, 1, 0},
	}, nil)
	require.NoError(t, err)

	pairs, err := DecodeDistinctLegacy(g)
	require.NoError(t, err)

	assert.Equal(t, []ValueLabel{
		{Value: 0, Label: "clear"},
		{Value: 1, Label: "blackfill"},
		{Value: 2, Label: "cloud"},
		{Value: 6, Label: "cloud + missing/suspect Blue data"},
	}, pairs)
}

func TestDecodeDistinctLegacySkipsInvalid(t *testing.T) {
	g, err := raster.NewGrid(
		[][]float64{{0, 2}},
		[][]bool{{true, false}},
	)
	require.NoError(t, err)

	pairs, err := DecodeDistinctLegacy(g)
	require.NoError(t, err)
	assert.Equal(t, []ValueLabel{{Value: 0, Label: "clear"}}, pairs)
}

func TestDecodeDistinctLegacyEmpty(t *testing.T) {
	_, err := DecodeDistinctLegacy(nil)
	assert.ErrorIs(t, err, raster.ErrInvalidInput)
}

func TestComposeClasses(t *testing.T) {
	mk := func(rows [][]float64) *raster.Grid {
		g, err := raster.NewGrid(rows, nil)
		require.NoError(t, err)
		return g
	}

	// 2x2 scene: (0,0) clear, (1,0) cloud, (0,1) snow, (1,1) unflagged.
	bands := []*raster.Grid{
		mk([][]float64{{1, 0}, {0, 0}}), // clear
		mk([][]float64{{0, 0}, {1, 0}}), // snow
		mk([][]float64{{0, 0}, {0, 0}}), // shadow
		mk([][]float64{{0, 0}, {0, 0}}), // light haze
		mk([][]float64{{0, 0}, {0, 0}}), // heavy haze
		mk([][]float64{{0, 1}, {0, 0}}), // cloud
	}

	classes, err := ComposeClasses(bands)
	require.NoError(t, err)

	assert.Equal(t, float64(ClassClear), classes.At(0, 0))
	assert.Equal(t, float64(ClassCloud), classes.At(1, 0))
	assert.Equal(t, float64(ClassSnow), classes.At(0, 1))
	assert.False(t, classes.ValidAt(1, 1))
	assert.True(t, classes.ValidAt(0, 0))
}

func TestComposeClassesBadInput(t *testing.T) {
	g, err := raster.NewGrid([][]float64{{1}}, nil)
	require.NoError(t, err)

	_, err = ComposeClasses([]*raster.Grid{g})
	assert.ErrorIs(t, err, raster.ErrInvalidInput)

	small, err := raster.NewGrid([][]float64{{1, 0}}, nil)
	require.NoError(t, err)
	_, err = ComposeClasses([]*raster.Grid{g, g, g, g, g, small})
	assert.ErrorIs(t, err, raster.ErrShapeMismatch)
}

func TestBlackfillValidity(t *testing.T) {
	target, err := raster.NewGrid([][]float64{{10, 20}}, nil)
	require.NoError(t, err)
	legacy, err := raster.NewGrid([][]float64{{1, 0}}, nil)
	require.NoError(t, err)

	out, err := BlackfillValidity(target, legacy)
	require.NoError(t, err)
	assert.False(t, out.ValidAt(0, 0))
	assert.True(t, out.ValidAt(1, 0))
	assert.True(t, target.ValidAt(0, 0))
}

func TestClassLabels(t *testing.T) {
	labels := ClassLabels()
	require.Len(t, labels, 6)
	assert.Equal(t, "clear", labels[ClassClear].Label)
	assert.Equal(t, "cloud", labels[ClassCloud].Label)
}
