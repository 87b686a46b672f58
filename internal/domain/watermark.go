package domain

import "image/color"

type WatermarkType string

const (
	WatermarkText  WatermarkType = "text"
	WatermarkImage WatermarkType = "image"
)

// WatermarkSpec is a tagged union: exactly one of Text or Image is set,
// selected by Type.
type WatermarkSpec struct {
	Type  WatermarkType `json:"type" validate:"required,oneof=text image"`
	Text  *TextSpec     `json:"text,omitempty"`
	Image *ImageSpec    `json:"image,omitempty"`
}

type TextSpec struct {
	Content  string      `json:"content" validate:"required"`
	FontName string      `json:"font,omitempty"`
	FontSize float64     `json:"font_size" validate:"gt=0"`
	Bold     bool        `json:"bold"`
	Italic   bool        `json:"italic"`
	Color    color.NRGBA `json:"color"`
	Shadow   bool        `json:"shadow"`
	Opacity  float64     `json:"opacity" validate:"min=0,max=1"`
}

type ImageSpec struct {
	Path string `json:"path" validate:"required"`
	// Scale is a fraction of the source watermark size, applied when no
	// explicit target size is given.
	Scale   float64 `json:"scale" validate:"min=0,max=1"`
	Width   int     `json:"width,omitempty" validate:"min=0"`
	Height  int     `json:"height,omitempty" validate:"min=0"`
	Opacity float64 `json:"opacity" validate:"min=0,max=1"`
}

// Opacity of whichever variant is active. Unset variants read as fully opaque.
func (s WatermarkSpec) Opacity() float64 {
	switch s.Type {
	case WatermarkText:
		if s.Text != nil {
			return s.Text.Opacity
		}
	case WatermarkImage:
		if s.Image != nil {
			return s.Image.Opacity
		}
	}
	return 1
}

type Anchor string

const (
	AnchorTopLeft      Anchor = "top-left"
	AnchorTopCenter    Anchor = "top-center"
	AnchorTopRight     Anchor = "top-right"
	AnchorMiddleLeft   Anchor = "middle-left"
	AnchorCenter       Anchor = "center"
	AnchorMiddleRight  Anchor = "middle-right"
	AnchorBottomLeft   Anchor = "bottom-left"
	AnchorBottomCenter Anchor = "bottom-center"
	AnchorBottomRight  Anchor = "bottom-right"
)

func (a Anchor) Valid() bool {
	switch a {
	case AnchorTopLeft, AnchorTopCenter, AnchorTopRight,
		AnchorMiddleLeft, AnchorCenter, AnchorMiddleRight,
		AnchorBottomLeft, AnchorBottomCenter, AnchorBottomRight:
		return true
	}
	return false
}

// ParseAnchor accepts both the full anchor names and the short position codes
// used by the CLI (tl, tr, bl, br, center).
func ParseAnchor(s string) (Anchor, bool) {
	switch s {
	case "tl":
		return AnchorTopLeft, true
	case "tr":
		return AnchorTopRight, true
	case "bl":
		return AnchorBottomLeft, true
	case "br":
		return AnchorBottomRight, true
	case "center":
		return AnchorCenter, true
	}
	a := Anchor(s)
	return a, a.Valid()
}

// Offset is a manual watermark position in base-image pixels, produced by
// dragging in the preview.
type Offset struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Placement positions the watermark either at a symbolic anchor or, when
// Offset is non-nil, at an explicit pixel offset. Margin applies to anchored
// placement only.
type Placement struct {
	Anchor Anchor  `json:"anchor"`
	Offset *Offset `json:"offset,omitempty"`
	Margin int     `json:"margin" validate:"min=0"`
}

type ExportFormat string

const (
	FormatJPEG ExportFormat = "jpeg"
	FormatPNG  ExportFormat = "png"
)

// Ext returns the output filename extension for the format.
func (f ExportFormat) Ext() string {
	if f == FormatPNG {
		return ".png"
	}
	return ".jpg"
}

type NamingRule string

const (
	NamingKeep   NamingRule = "keep"
	NamingPrefix NamingRule = "prefix"
	NamingSuffix NamingRule = "suffix"
)

type ExportSettings struct {
	Format ExportFormat `json:"format" validate:"required,oneof=jpeg png"`
	// Quality applies to JPEG output only.
	Quality int        `json:"quality" validate:"min=1,max=100"`
	Dir     string     `json:"dir"`
	Naming  NamingRule `json:"naming" validate:"required,oneof=keep prefix suffix"`
	Affix   string     `json:"affix,omitempty"`
	// Overwrite confirms that exporting over a source file is intended.
	Overwrite bool `json:"overwrite"`
}

const (
	DefaultFontSize    = 36.0
	DefaultMargin      = 12
	DefaultJPEGQuality = 95
	DefaultImageScale  = 0.5
	DefaultText        = "watermark"
	DefaultPrefix      = "wm_"
	DefaultSuffix      = "_watermarked"

	// Shadow is drawn first, offset by max(1, size/24), black at this base
	// alpha scaled by the text opacity.
	ShadowAlpha = 160
)

var SupportedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
}
