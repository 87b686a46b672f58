package app

import (
	"encoding/json"
	"image/color"
	"os"
	"path/filepath"

	"photo-watermark/internal/domain"

	"github.com/wb-go/wbf/zlog"
)

// Settings is the last-session snapshot: current watermark, placement and
// export settings. It is loaded at startup and flushed by Shutdown.
type Settings struct {
	Watermark domain.WatermarkSpec  `json:"watermark"`
	Placement domain.Placement      `json:"placement"`
	Export    domain.ExportSettings `json:"export"`
}

func DefaultSettings() Settings {
	return Settings{
		Watermark: domain.WatermarkSpec{
			Type: domain.WatermarkText,
			Text: &domain.TextSpec{
				Content:  domain.DefaultText,
				FontSize: domain.DefaultFontSize,
				Color:    color.NRGBA{R: 255, G: 255, B: 255, A: 255},
				Shadow:   true,
				Opacity:  1,
			},
		},
		Placement: domain.Placement{
			Anchor: domain.AnchorBottomRight,
			Margin: domain.DefaultMargin,
		},
		Export: domain.ExportSettings{
			Format:  domain.FormatJPEG,
			Quality: domain.DefaultJPEGQuality,
			Naming:  domain.NamingKeep,
		},
	}
}

// loadSettings reads the snapshot from path. A missing or unreadable file
// falls back to defaults.
func loadSettings(path string, logger *zlog.Zerolog) Settings {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultSettings()
	}

	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("Settings file unreadable, using defaults")
		return DefaultSettings()
	}
	if s.Watermark.CheckVariant() != nil {
		logger.Warn().Str("path", path).Msg("Settings failed validation, using defaults")
		return DefaultSettings()
	}
	return s
}

func saveSettings(path string, s Settings) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
