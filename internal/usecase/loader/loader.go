package loader

import (
	"fmt"
	"image"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"photo-watermark/internal/domain"

	"github.com/disintegration/imaging"
	"github.com/wb-go/wbf/zlog"
)

// Loader decodes supported raster formats (JPEG, PNG, BMP, TIFF) into NRGBA
// buffers. Every Load returns a fresh buffer owned by the caller.
type Loader struct {
	logger *zlog.Zerolog
}

func New(logger *zlog.Zerolog) *Loader {
	return &Loader{logger: logger}
}

// Supported reports whether the path has a decodable image extension.
func Supported(path string) bool {
	return domain.SupportedExtensions[strings.ToLower(filepath.Ext(path))]
}

func (l *Loader) Load(path string) (*image.NRGBA, error) {
	if !Supported(path) {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, filepath.Ext(path))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	img, err := imaging.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}

	l.logger.Debug().
		Str("path", path).
		Int("width", img.Bounds().Dx()).
		Int("height", img.Bounds().Dy()).
		Msg("Image loaded")

	return imaging.Clone(img), nil
}

// ListDir returns the supported image files directly inside dir, sorted by
// name. If path is itself a supported file, it is returned as a single-entry
// list.
func (l *Loader) ListDir(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat input: %w", err)
	}

	if !info.IsDir() {
		if !Supported(path) {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, path)
		}
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !Supported(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(path, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// WalkDir collects supported image files recursively.
func (l *Loader) WalkDir(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && Supported(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk dir: %w", err)
	}
	sort.Strings(files)
	return files, nil
}
