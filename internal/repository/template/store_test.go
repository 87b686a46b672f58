package template

import (
	"encoding/json"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"photo-watermark/internal/domain"

	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"
)

func testStrategy() retry.Strategy {
	return retry.Strategy{Attempts: 1, Delay: time.Millisecond, Backoff: 1}
}

func testStore(t *testing.T, path string) *Store {
	t.Helper()
	zlog.Init()
	s, err := NewStore(path, testStrategy(), &zlog.Logger)
	require.NoError(t, err)
	return s
}

func textTemplate(name string) domain.Template {
	return domain.Template{
		Name: name,
		Watermark: domain.WatermarkSpec{
			Type: domain.WatermarkText,
			Text: &domain.TextSpec{
				Content:  "© 2024",
				FontSize: 36,
				Bold:     true,
				Color:    color.NRGBA{R: 255, G: 200, B: 0, A: 255},
				Shadow:   true,
				Opacity:  0.8,
			},
		},
		Placement: domain.Placement{
			Anchor: domain.AnchorBottomRight,
			Margin: 12,
		},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := testStore(t, filepath.Join(t.TempDir(), "templates.json"))

	want := textTemplate("copyright")
	require.NoError(t, s.Save(want, false))

	got, err := s.Load("copyright")
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestSaveCollision(t *testing.T) {
	s := testStore(t, filepath.Join(t.TempDir(), "templates.json"))

	require.NoError(t, s.Save(textTemplate("dup"), false))

	err := s.Save(textTemplate("dup"), false)
	require.ErrorIs(t, err, domain.ErrConflict)

	// Confirmed overwrite replaces the entry.
	changed := textTemplate("dup")
	changed.Placement.Margin = 40
	require.NoError(t, s.Save(changed, true))

	got, err := s.Load("dup")
	require.NoError(t, err)
	require.Equal(t, 40, got.Placement.Margin)
}

func TestSaveInvalidTemplate(t *testing.T) {
	s := testStore(t, filepath.Join(t.TempDir(), "templates.json"))

	// Tagged as text but carrying no text variant.
	err := s.Save(domain.Template{
		Name:      "broken",
		Watermark: domain.WatermarkSpec{Type: domain.WatermarkText},
	}, false)
	require.ErrorIs(t, err, domain.ErrCorruptData)
}

func TestLoadMissing(t *testing.T) {
	s := testStore(t, filepath.Join(t.TempDir(), "templates.json"))

	_, err := s.Load("nope")
	require.ErrorIs(t, err, domain.ErrTemplateNotFound)
}

func TestDeleteIdempotent(t *testing.T) {
	s := testStore(t, filepath.Join(t.TempDir(), "templates.json"))

	require.NoError(t, s.Save(textTemplate("gone"), false))
	require.NoError(t, s.Delete("gone"))
	require.NoError(t, s.Delete("gone"))

	_, err := s.Load("gone")
	require.ErrorIs(t, err, domain.ErrTemplateNotFound)
}

func TestPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.json")

	s := testStore(t, path)
	require.NoError(t, s.Save(textTemplate("keep"), false))
	require.NoError(t, s.Save(textTemplate("also"), false))

	reopened := testStore(t, path)
	require.Equal(t, []string{"also", "keep"}, reopened.List())

	got, err := reopened.Load("keep")
	require.NoError(t, err)
	require.Equal(t, textTemplate("keep"), got)
}

// A corrupt entry on disk is dropped at load; the rest of the store survives.
func TestCorruptEntryDropped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.json")

	good := textTemplate("good")
	stored := map[string]domain.Template{
		"good":   good,
		"broken": {Name: "broken", Watermark: domain.WatermarkSpec{Type: "nonsense"}},
	}
	data, err := json.MarshalIndent(stored, "", "  ")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	s := testStore(t, path)
	require.Equal(t, []string{"good"}, s.List())

	got, err := s.Load("good")
	require.NoError(t, err)
	require.Equal(t, good, got)
}

func TestUnreadableFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.json")
	require.NoError(t, os.WriteFile(path, []byte("{{{"), 0o644))

	s := testStore(t, path)
	require.Empty(t, s.List())
}
