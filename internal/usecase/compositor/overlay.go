package compositor

import (
	"fmt"
	"image"

	"photo-watermark/internal/domain"

	"github.com/disintegration/imaging"
)

// renderOverlay loads and prepares an image watermark: resample to the target
// size, then fold the opacity into the alpha channel.
func (c *Compositor) renderOverlay(spec *domain.ImageSpec) (layer, error) {
	src, err := imaging.Open(spec.Path)
	if err != nil {
		return layer{}, fmt.Errorf("%w: watermark image %q: %v", domain.ErrResource, spec.Path, err)
	}

	wm := resampleOverlay(imaging.Clone(src), spec)
	applyOpacity(wm, clampOpacity(spec.Opacity))

	return layer{img: wm, box: wm.Bounds().Size()}, nil
}

// resampleOverlay picks the target size: an explicit Width/Height wins, a
// single dimension keeps the aspect ratio, otherwise the Scale fraction of
// the source size applies.
func resampleOverlay(src *image.NRGBA, spec *domain.ImageSpec) *image.NRGBA {
	switch {
	case spec.Width > 0 || spec.Height > 0:
		return imaging.Resize(src, spec.Width, spec.Height, imaging.Lanczos)
	default:
		scale := spec.Scale
		if scale <= 0 || scale > 1 {
			scale = domain.DefaultImageScale
		}
		w := int(float64(src.Bounds().Dx()) * scale)
		if w < 1 {
			w = 1
		}
		return imaging.Resize(src, w, 0, imaging.Lanczos)
	}
}

// applyOpacity multiplies the existing alpha channel in place.
func applyOpacity(img *image.NRGBA, opacity float64) {
	if opacity == 1 {
		return
	}
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = uint8(float64(img.Pix[i])*opacity + 0.5)
	}
}
