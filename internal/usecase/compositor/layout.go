package compositor

import (
	"image"

	"photo-watermark/internal/domain"
)

// ResolvePosition converts a placement into the absolute top-left pixel of a
// box-sized watermark on a canvas-sized image. Anchored placement puts the box
// exactly margin pixels from each touched edge; centered axes ignore the
// margin. A manual offset is clamped so the box stays fully on canvas. A box
// larger than the canvas resolves to (0,0).
func ResolvePosition(canvas, box image.Point, p domain.Placement) image.Point {
	if p.Offset != nil {
		return clampOffset(canvas, box, *p.Offset)
	}

	m := p.Margin
	var x, y int

	switch p.Anchor {
	case domain.AnchorTopLeft, domain.AnchorMiddleLeft, domain.AnchorBottomLeft:
		x = m
	case domain.AnchorTopCenter, domain.AnchorCenter, domain.AnchorBottomCenter:
		x = (canvas.X - box.X) / 2
	case domain.AnchorTopRight, domain.AnchorMiddleRight, domain.AnchorBottomRight:
		x = canvas.X - box.X - m
	default:
		// Unknown anchors fall back to bottom-right.
		x = canvas.X - box.X - m
	}

	switch p.Anchor {
	case domain.AnchorTopLeft, domain.AnchorTopCenter, domain.AnchorTopRight:
		y = m
	case domain.AnchorMiddleLeft, domain.AnchorCenter, domain.AnchorMiddleRight:
		y = (canvas.Y - box.Y) / 2
	default:
		y = canvas.Y - box.Y - m
	}

	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	return image.Pt(x, y)
}

func clampOffset(canvas, box image.Point, off domain.Offset) image.Point {
	x := clamp(off.X, 0, canvas.X-box.X)
	y := clamp(off.Y, 0, canvas.Y-box.Y)
	return image.Pt(x, y)
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
