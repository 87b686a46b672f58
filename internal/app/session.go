// Package app wires the watermarking pipeline behind an explicit
// request/response surface for an external event loop.
package app

import (
	"context"
	"fmt"
	"image"

	"photo-watermark/internal/config"
	"photo-watermark/internal/domain"
	"photo-watermark/internal/repository/template"
	"photo-watermark/internal/usecase/compositor"
	"photo-watermark/internal/usecase/exporter"
	"photo-watermark/internal/usecase/loader"

	"github.com/wb-go/wbf/zlog"
)

// Session owns the current watermark settings and the pipeline components.
// It is single-threaded by design: the event loop calls it synchronously,
// and batch export owns its buffers on whichever goroutine runs it.
type Session struct {
	cfg        *config.Config
	logger     *zlog.Zerolog
	loader     *loader.Loader
	compositor *compositor.Compositor
	exporter   *exporter.Exporter
	templates  *template.Store

	settings Settings
	// dirty marks the preview stale after any setting change.
	dirty bool
}

func NewSession(cfg *config.Config, logger *zlog.Zerolog) (*Session, error) {
	store, err := template.NewStore(cfg.TemplatesPath(), cfg.DefaultRetryStrategy(), logger)
	if err != nil {
		return nil, fmt.Errorf("open template store: %w", err)
	}

	fonts := compositor.NewFontResolver(logger, cfg.Fonts.Dirs...)

	return &Session{
		cfg:        cfg,
		logger:     logger,
		loader:     loader.New(logger),
		compositor: compositor.New(fonts, logger),
		exporter:   exporter.New(logger),
		templates:  store,
		settings:   loadSettings(cfg.SettingsPath(), logger),
		dirty:      true,
	}, nil
}

func (s *Session) Settings() Settings { return s.settings }

func (s *Session) SetWatermark(spec domain.WatermarkSpec) error {
	if err := spec.CheckVariant(); err != nil {
		return err
	}
	s.settings.Watermark = spec
	s.dirty = true
	return nil
}

func (s *Session) SetPlacement(p domain.Placement) {
	s.settings.Placement = p
	s.dirty = true
}

func (s *Session) SetExport(e domain.ExportSettings) {
	s.settings.Export = e
}

func (s *Session) PreviewDirty() bool { return s.dirty }

// Preview composites the current watermark onto a downsampled copy of the
// image at path and clears the dirty flag.
func (s *Session) Preview(path string) (*image.NRGBA, error) {
	base, err := s.loader.Load(path)
	if err != nil {
		return nil, err
	}

	out, err := s.compositor.Preview(base, s.settings.Watermark, s.settings.Placement,
		s.cfg.Preview.MaxWidth, s.cfg.Preview.MaxHeight)
	if err != nil {
		return nil, err
	}

	s.dirty = false
	return out, nil
}

// ExportBatch watermarks and exports the files with the current settings.
// Per-file errors land in the report; the batch never aborts early except on
// context cancellation between files.
func (s *Session) ExportBatch(ctx context.Context, files []string) *exporter.Report {
	spec := s.settings.Watermark
	pl := s.settings.Placement

	batch := exporter.NewBatch(s.loader, s.exporter, func(base *image.NRGBA) (*image.NRGBA, error) {
		return s.compositor.Composite(base, spec, pl)
	}, s.logger)

	return batch.Run(ctx, files, s.settings.Export)
}

func (s *Session) Templates() []string { return s.templates.List() }

func (s *Session) SaveTemplate(name string, overwrite bool) error {
	return s.templates.Save(domain.Template{
		Name:      name,
		Watermark: s.settings.Watermark,
		Placement: s.settings.Placement,
	}, overwrite)
}

// ApplyTemplate replaces the current watermark and placement with the named
// template's.
func (s *Session) ApplyTemplate(name string) error {
	t, err := s.templates.Load(name)
	if err != nil {
		return err
	}
	s.settings.Watermark = t.Watermark
	s.settings.Placement = t.Placement
	s.dirty = true
	return nil
}

func (s *Session) DeleteTemplate(name string) error {
	return s.templates.Delete(name)
}

// Shutdown flushes the in-memory settings snapshot to disk. Templates are
// persisted on every mutation, so only the session settings need a flush
// here.
func (s *Session) Shutdown() error {
	if err := saveSettings(s.cfg.SettingsPath(), s.settings); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	s.logger.Info().Msg("Session settings saved")
	return nil
}
