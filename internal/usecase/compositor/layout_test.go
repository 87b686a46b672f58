package compositor

import (
	"image"
	"testing"

	"photo-watermark/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestResolvePositionAnchors(t *testing.T) {
	canvas := image.Pt(800, 600)
	box := image.Pt(100, 50)
	const margin = 12

	tests := []struct {
		anchor domain.Anchor
		want   image.Point
	}{
		{domain.AnchorTopLeft, image.Pt(12, 12)},
		{domain.AnchorTopCenter, image.Pt(350, 12)},
		{domain.AnchorTopRight, image.Pt(688, 12)},
		{domain.AnchorMiddleLeft, image.Pt(12, 275)},
		{domain.AnchorCenter, image.Pt(350, 275)},
		{domain.AnchorMiddleRight, image.Pt(688, 275)},
		{domain.AnchorBottomLeft, image.Pt(12, 538)},
		{domain.AnchorBottomCenter, image.Pt(350, 538)},
		{domain.AnchorBottomRight, image.Pt(688, 538)},
	}

	for _, tt := range tests {
		t.Run(string(tt.anchor), func(t *testing.T) {
			got := ResolvePosition(canvas, box, domain.Placement{Anchor: tt.anchor, Margin: margin})
			require.Equal(t, tt.want, got)
		})
	}
}

// Clearance from every touched edge must equal the margin exactly.
func TestResolvePositionMarginClearance(t *testing.T) {
	canvas := image.Pt(640, 480)
	box := image.Pt(73, 21)
	const margin = 17

	br := ResolvePosition(canvas, box, domain.Placement{Anchor: domain.AnchorBottomRight, Margin: margin})
	require.Equal(t, margin, canvas.X-(br.X+box.X))
	require.Equal(t, margin, canvas.Y-(br.Y+box.Y))

	tl := ResolvePosition(canvas, box, domain.Placement{Anchor: domain.AnchorTopLeft, Margin: margin})
	require.Equal(t, margin, tl.X)
	require.Equal(t, margin, tl.Y)
}

// Center anchors ignore the margin on the centered axis.
func TestResolvePositionCenterIgnoresMargin(t *testing.T) {
	canvas := image.Pt(800, 600)
	box := image.Pt(100, 50)

	small := ResolvePosition(canvas, box, domain.Placement{Anchor: domain.AnchorCenter, Margin: 0})
	large := ResolvePosition(canvas, box, domain.Placement{Anchor: domain.AnchorCenter, Margin: 150})
	require.Equal(t, small, large)
}

func TestResolvePositionOffsetClamp(t *testing.T) {
	canvas := image.Pt(800, 600)
	box := image.Pt(100, 50)

	tests := []struct {
		name   string
		offset domain.Offset
		want   image.Point
	}{
		{"inside", domain.Offset{X: 40, Y: 30}, image.Pt(40, 30)},
		{"negative", domain.Offset{X: -10, Y: -99}, image.Pt(0, 0)},
		{"past right and bottom", domain.Offset{X: 5000, Y: 5000}, image.Pt(700, 550)},
		{"exactly at limit", domain.Offset{X: 700, Y: 550}, image.Pt(700, 550)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			off := tt.offset
			got := ResolvePosition(canvas, box, domain.Placement{Offset: &off})
			require.Equal(t, tt.want, got)
		})
	}
}

// A watermark larger than the image clamps to the origin.
func TestResolvePositionDegenerate(t *testing.T) {
	canvas := image.Pt(100, 80)
	box := image.Pt(300, 200)

	for _, anchor := range []domain.Anchor{domain.AnchorTopLeft, domain.AnchorCenter, domain.AnchorBottomRight} {
		got := ResolvePosition(canvas, box, domain.Placement{Anchor: anchor, Margin: 12})
		require.Equal(t, image.Pt(0, 0), got, "anchor %s", anchor)
	}

	off := domain.Offset{X: 50, Y: 50}
	got := ResolvePosition(canvas, box, domain.Placement{Offset: &off})
	require.Equal(t, image.Pt(0, 0), got)
}
