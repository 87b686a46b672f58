package compositor

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"photo-watermark/internal/domain"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"github.com/wb-go/wbf/zlog"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	defaultFontOnce sync.Once
	defaultFont     *truetype.Font
)

// defaultTTF parses the embedded Go Regular font. goregular.TTF is known
// good, so the parse cannot fail at runtime.
func defaultTTF() *truetype.Font {
	defaultFontOnce.Do(func() {
		f, err := freetype.ParseFont(goregular.TTF)
		if err != nil {
			panic(fmt.Sprintf("parse embedded font: %v", err))
		}
		defaultFont = f
	})
	return defaultFont
}

// FontResolver maps a font name or file path to a parsed font. Lookups are
// cached. A failed resolution is a degradation, not a failure: Resolve
// returns the embedded default alongside an error wrapping
// domain.ErrResource.
type FontResolver struct {
	mu     sync.Mutex
	cache  map[string]*truetype.Font
	dirs   []string
	logger *zlog.Zerolog
}

func NewFontResolver(logger *zlog.Zerolog, extraDirs ...string) *FontResolver {
	return &FontResolver{
		cache:  make(map[string]*truetype.Font),
		dirs:   append(systemFontDirs(), extraDirs...),
		logger: logger,
	}
}

func systemFontDirs() []string {
	switch runtime.GOOS {
	case "windows":
		return []string{`C:\Windows\Fonts`}
	case "darwin":
		return []string{"/System/Library/Fonts", "/Library/Fonts"}
	default:
		dirs := []string{"/usr/share/fonts", "/usr/local/share/fonts"}
		if home, err := os.UserHomeDir(); err == nil {
			dirs = append(dirs, filepath.Join(home, ".fonts"))
		}
		return dirs
	}
}

func (r *FontResolver) Default() *truetype.Font {
	return defaultTTF()
}

func (r *FontResolver) Resolve(name string) (*truetype.Font, error) {
	if name == "" {
		return defaultTTF(), nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if f, ok := r.cache[name]; ok {
		return f, nil
	}

	path := name
	if !isFontPath(name) {
		found, ok := r.findByName(name)
		if !ok {
			r.logger.Warn().Str("font", name).Msg("Font not found, using default")
			return defaultTTF(), fmt.Errorf("%w: font %q", domain.ErrResource, name)
		}
		path = found
	}

	f, err := parseFontFile(path)
	if err != nil {
		r.logger.Warn().Err(err).Str("font", name).Msg("Font failed to load, using default")
		return defaultTTF(), fmt.Errorf("%w: font %q: %v", domain.ErrResource, name, err)
	}

	r.cache[name] = f
	return f, nil
}

func parseFontFile(path string) (*truetype.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return freetype.ParseFont(data)
}

func isFontPath(name string) bool {
	if strings.ContainsRune(name, os.PathSeparator) || strings.ContainsRune(name, '/') {
		return true
	}
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".ttf" || ext == ".otf"
}

// findByName scans the font directories for a file whose base name matches
// the requested family, case-insensitively.
func (r *FontResolver) findByName(name string) (string, bool) {
	want := strings.ToLower(name)
	for _, dir := range r.dirs {
		var found string
		filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
			if err != nil || info.IsDir() || found != "" {
				return nil
			}
			base := strings.ToLower(info.Name())
			ext := filepath.Ext(base)
			if ext != ".ttf" && ext != ".otf" {
				return nil
			}
			if strings.TrimSuffix(base, ext) == want {
				found = path
			}
			return nil
		})
		if found != "" {
			return found, true
		}
	}
	return "", false
}
