// Package compositor renders text and image watermarks and blends them onto
// base photos at resolved positions.
package compositor

import (
	"fmt"
	"image"

	"photo-watermark/internal/domain"

	"github.com/disintegration/imaging"
	"github.com/wb-go/wbf/zlog"
)

type Compositor struct {
	fonts  *FontResolver
	logger *zlog.Zerolog
}

func New(fonts *FontResolver, logger *zlog.Zerolog) *Compositor {
	return &Compositor{
		fonts:  fonts,
		logger: logger,
	}
}

// Composite blends the watermark onto base and returns a new buffer of the
// same dimensions. The base is never mutated. At opacity 0 the result is a
// plain copy of the base.
func (c *Compositor) Composite(base *image.NRGBA, spec domain.WatermarkSpec, pl domain.Placement) (*image.NRGBA, error) {
	if err := spec.CheckVariant(); err != nil {
		return nil, fmt.Errorf("invalid watermark spec: %w", err)
	}

	if spec.Opacity() <= 0 {
		return imaging.Clone(base), nil
	}

	var (
		l   layer
		err error
	)
	switch spec.Type {
	case domain.WatermarkText:
		l, err = c.renderText(spec.Text)
	case domain.WatermarkImage:
		l, err = c.renderOverlay(spec.Image)
	}
	if err != nil {
		return nil, err
	}

	pos := ResolvePosition(base.Bounds().Size(), l.box, pl)

	c.logger.Debug().
		Str("type", string(spec.Type)).
		Int("x", pos.X).
		Int("y", pos.Y).
		Int("width", l.box.X).
		Int("height", l.box.Y).
		Msg("Watermark placed")

	// Opacity is already baked into the layer alpha; Overlay clips pixels
	// outside the base canvas.
	return imaging.Overlay(base, l.img, pos, 1.0), nil
}

// Preview composites onto a downsampled copy of the base that fits the given
// box, keeping per-keystroke redraw cheap. Placement is resolved against the
// preview dimensions, so anchored watermarks land where the export will put
// them, at preview scale.
func (c *Compositor) Preview(base *image.NRGBA, spec domain.WatermarkSpec, pl domain.Placement, maxW, maxH int) (*image.NRGBA, error) {
	fitted := imaging.Fit(base, maxW, maxH, imaging.Lanczos)
	return c.Composite(fitted, spec, pl)
}
