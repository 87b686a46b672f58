package compositor

import (
	"image"
	"image/color"

	"photo-watermark/internal/domain"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

const italicSlant = 0.2

// layer is a rendered watermark ready for blending. box is the nominal
// bounding box used by the layout resolver; a shadow or an italic shear may
// spill past it.
type layer struct {
	img *image.NRGBA
	box image.Point
}

// renderText rasterizes the text spec into a transparent layer. A missing
// font degrades to the embedded default (the resolver logs the miss).
func (c *Compositor) renderText(spec *domain.TextSpec) (layer, error) {
	f, _ := c.fonts.Resolve(spec.FontName)

	face := truetype.NewFace(f, &truetype.Options{
		Size:    spec.FontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	defer face.Close()

	d := &font.Drawer{Face: face}
	w := d.MeasureString(spec.Content).Ceil()
	met := face.Metrics()
	ascent := met.Ascent.Ceil()
	h := (met.Ascent + met.Descent).Ceil()
	if spec.Bold {
		w++
	}

	shadowOff := 0
	if spec.Shadow {
		shadowOff = shadowOffset(spec.FontSize)
	}

	opacity := clampOpacity(spec.Opacity)
	canvas := image.NewNRGBA(image.Rect(0, 0, w+shadowOff, h+shadowOff))

	if spec.Shadow {
		shadow := color.NRGBA{A: scaleAlpha(domain.ShadowAlpha, opacity)}
		drawString(canvas, face, spec.Content, shadowOff, ascent+shadowOff, shadow, spec.Bold)
	}

	col := spec.Color
	col.A = scaleAlpha(col.A, opacity)
	drawString(canvas, face, spec.Content, 0, ascent, col, spec.Bold)

	if spec.Italic {
		canvas = shearRight(canvas, italicSlant)
	}

	return layer{img: canvas, box: image.Pt(w, h)}, nil
}

func shadowOffset(fontSize float64) int {
	off := int(fontSize) / 24
	if off < 1 {
		off = 1
	}
	return off
}

func drawString(dst *image.NRGBA, face font.Face, s string, x, y int, col color.NRGBA, bold bool) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
	if bold {
		// Faux bold: second strike one pixel to the right.
		d.Dot = fixed.P(x+1, y)
		d.DrawString(s)
	}
}

// shearRight skews the raster rightwards for a synthetic italic: row y is
// shifted by slant*(h-1-y) pixels, so the top leans right of the baseline.
func shearRight(src *image.NRGBA, slant float64) *image.NRGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	extra := int(slant * float64(h))
	dst := image.NewNRGBA(image.Rect(0, 0, w+extra, h))

	for y := 0; y < h; y++ {
		shift := int(slant * float64(h-1-y))
		srcRow := src.Pix[y*src.Stride : y*src.Stride+w*4]
		dstOff := y*dst.Stride + shift*4
		copy(dst.Pix[dstOff:dstOff+w*4], srcRow)
	}
	return dst
}

func clampOpacity(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func scaleAlpha(a uint8, opacity float64) uint8 {
	return uint8(float64(a)*opacity + 0.5)
}
