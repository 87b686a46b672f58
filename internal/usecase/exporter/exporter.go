// Package exporter encodes composited buffers to disk, applying the naming
// rule and destination-folder policy.
package exporter

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"photo-watermark/internal/domain"

	"github.com/disintegration/imaging"
	"github.com/wb-go/wbf/zlog"
)

type Exporter struct {
	logger *zlog.Zerolog
}

func New(logger *zlog.Zerolog) *Exporter {
	return &Exporter{logger: logger}
}

// OutputName applies the naming rule to the source filename and swaps the
// extension to the target format's.
func OutputName(src string, s domain.ExportSettings) string {
	base := filepath.Base(src)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	switch s.Naming {
	case domain.NamingPrefix:
		stem = s.Affix + stem
	case domain.NamingSuffix:
		stem = stem + s.Affix
	}
	return stem + s.Format.Ext()
}

// OutputPath resolves the destination path for src. Returns
// domain.ErrConflict when the result would overwrite the source file and the
// overwrite has not been confirmed.
func OutputPath(src string, s domain.ExportSettings) (string, error) {
	out := filepath.Join(s.Dir, OutputName(src, s))

	if !s.Overwrite && samePath(out, src) {
		return "", fmt.Errorf("%w: %s", domain.ErrConflict, out)
	}
	return out, nil
}

func samePath(a, b string) bool {
	aa, err1 := filepath.Abs(a)
	bb, err2 := filepath.Abs(b)
	if err1 != nil || err2 != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return aa == bb
}

// Export encodes img per the settings and writes it to the resolved path,
// creating the destination directory if needed. JPEG output honors the
// quality setting; PNG keeps the alpha channel.
func (e *Exporter) Export(img image.Image, src string, s domain.ExportSettings) (string, error) {
	out, err := OutputPath(src, s)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	if err := imaging.Save(img, out, imaging.JPEGQuality(s.Quality)); err != nil {
		return "", fmt.Errorf("save %s: %w", filepath.Base(out), err)
	}

	e.logger.Debug().Str("src", src).Str("out", out).Msg("Image exported")
	return out, nil
}
