package domain

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{name: "white", in: "#FFFFFF", want: color.NRGBA{R: 255, G: 255, B: 255, A: 255}},
		{name: "lowercase", in: "#ff8800", want: color.NRGBA{R: 255, G: 136, A: 255}},
		{name: "with alpha", in: "#11223344", want: color.NRGBA{R: 0x11, G: 0x22, B: 0x33, A: 0x44}},
		{name: "no hash", in: "00FF00", want: color.NRGBA{G: 255, A: 255}},
		{name: "padded", in: "  #000000 ", want: color.NRGBA{A: 255}},
		{name: "too short", in: "#FFF", wantErr: true},
		{name: "not hex", in: "#GGGGGG", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHexColor(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestHexColorRoundTrip(t *testing.T) {
	for _, s := range []string{"#FFFFFF", "#1A2B3C", "#11223344"} {
		c, err := ParseHexColor(s)
		require.NoError(t, err)
		require.Equal(t, s, HexColor(c))
	}
}

func TestParseAnchor(t *testing.T) {
	tests := []struct {
		in   string
		want Anchor
		ok   bool
	}{
		{in: "tl", want: AnchorTopLeft, ok: true},
		{in: "tr", want: AnchorTopRight, ok: true},
		{in: "bl", want: AnchorBottomLeft, ok: true},
		{in: "br", want: AnchorBottomRight, ok: true},
		{in: "center", want: AnchorCenter, ok: true},
		{in: "top-center", want: AnchorTopCenter, ok: true},
		{in: "middle-left", want: AnchorMiddleLeft, ok: true},
		{in: "bottom-right", want: AnchorBottomRight, ok: true},
		{in: "middle", ok: false},
		{in: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseAnchor(tt.in)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				require.Equal(t, tt.want, got)
			}
		})
	}
}
