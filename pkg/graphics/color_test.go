package graphics

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{in: "#000000", want: Color{0, 0, 0}},
		{in: "#FFFFFF", want: Color{255, 255, 255}},
		{in: "3b82f6", want: Color{0x3b, 0x82, 0xf6}},
		{in: "#94A3b8", want: Color{0x94, 0xa3, 0xb8}},
		{in: "#fff", wantErr: true},
		{in: "", wantErr: true},
		{in: "#12345g", wantErr: true},
		{in: "#1234567", wantErr: true},
		{in: "##123456", wantErr: true},
		{in: "red", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHex(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidColorFormat)
				var fe *FormatError
				require.ErrorAs(t, err, &fe)
				assert.Equal(t, tt.in, fe.Input)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHexRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 500; i++ {
		hex := fmt.Sprintf("#%02x%02x%02x", rng.Intn(256), rng.Intn(256), rng.Intn(256))
		r, g, b, err := HexToRGB(hex)
		require.NoError(t, err)
		assert.Equal(t, hex, RGBToHex(r, g, b))
	}
}

func TestContrastColor(t *testing.T) {
	got, err := ContrastColor("#000000")
	require.NoError(t, err)
	assert.Equal(t, LightText, got)

	got, err = ContrastColor("#FFFFFF")
	require.NoError(t, err)
	assert.Equal(t, DarkText, got)

	_, err = ContrastColor("#GGGGGG")
	assert.ErrorIs(t, err, ErrInvalidColorFormat)
}

func TestContrastLuminanceGap(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 1000; i++ {
		bg := Color{uint8(rng.Intn(256)), uint8(rng.Intn(256)), uint8(rng.Intn(256))}
		text, err := ContrastColor(bg.Hex())
		require.NoError(t, err)
		fg := MustParseHex(text)

		gap := fg.Luminance() - bg.Luminance()
		if gap < 0 {
			gap = -gap
		}
		assert.Greater(t, gap, 0.4, "background %s", bg.Hex())
	}
}

func TestHoverColor(t *testing.T) {
	// light: each channel * 0.8, rounded
	got, err := HoverColor("#ffffff")
	require.NoError(t, err)
	assert.Equal(t, "#cccccc", got)

	// dark: each channel * 1.3, clamped at 255
	got, err = HoverColor("#102030")
	require.NoError(t, err)
	assert.Equal(t, "#152a3e", got)

	got, err = HoverColor("#c80000")
	require.NoError(t, err)
	assert.Equal(t, "#ff0000", got)

	_, err = HoverColor("nope")
	assert.ErrorIs(t, err, ErrInvalidColorFormat)
}

func TestMix(t *testing.T) {
	black := MustParseHex("#000000")
	white := MustParseHex("#ffffff")
	assert.Equal(t, black, black.Mix(white, 0))
	assert.Equal(t, white, black.Mix(white, 1))
	mid := black.Mix(white, 0.5)
	assert.InDelta(t, 128, int(mid.R), 1)
}
