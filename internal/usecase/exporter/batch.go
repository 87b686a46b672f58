package exporter

import (
	"context"
	"image"

	"photo-watermark/internal/domain"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/zlog"
)

// compositeFunc produces the watermarked buffer for one loaded image.
type compositeFunc func(base *image.NRGBA) (*image.NRGBA, error)

type imageLoader interface {
	Load(path string) (*image.NRGBA, error)
}

type FileResult struct {
	Source string
	Output string
	Err    error
}

// Report collects per-file outcomes of a batch run. Errors are reported here
// after the batch completes; no single bad file aborts the run.
type Report struct {
	ID        string
	Succeeded int
	Failed    int
	Canceled  bool
	Results   []FileResult
}

// Batch processes files strictly one at a time on the calling goroutine, so
// every image buffer has a single owner for its whole lifetime. Callers
// wanting a responsive UI run the whole batch on a worker goroutine and keep
// the report as the only shared value.
type Batch struct {
	loader    imageLoader
	exporter  *Exporter
	composite compositeFunc
	logger    *zlog.Zerolog
}

func NewBatch(loader imageLoader, exporter *Exporter, composite compositeFunc, logger *zlog.Zerolog) *Batch {
	return &Batch{
		loader:    loader,
		exporter:  exporter,
		composite: composite,
		logger:    logger,
	}
}

// Run watermarks and exports each file. Cancellation is checked between
// files only (best-effort abort); the file in flight is finished.
func (b *Batch) Run(ctx context.Context, files []string, settings domain.ExportSettings) *Report {
	report := &Report{ID: uuid.New().String()}

	b.logger.Info().
		Str("batch_id", report.ID).
		Int("files", len(files)).
		Str("dir", settings.Dir).
		Msg("Starting batch export")

	for _, src := range files {
		select {
		case <-ctx.Done():
			report.Canceled = true
			b.logger.Info().
				Str("batch_id", report.ID).
				Int("remaining", len(files)-len(report.Results)).
				Msg("Batch export canceled")
			return report
		default:
		}

		out, err := b.exportOne(src, settings)
		report.Results = append(report.Results, FileResult{Source: src, Output: out, Err: err})
		if err != nil {
			report.Failed++
			b.logger.Error().Err(err).Str("batch_id", report.ID).Str("src", src).Msg("Export failed")
			continue
		}
		report.Succeeded++
	}

	b.logger.Info().
		Str("batch_id", report.ID).
		Int("succeeded", report.Succeeded).
		Int("failed", report.Failed).
		Msg("Batch export finished")

	return report
}

func (b *Batch) exportOne(src string, settings domain.ExportSettings) (string, error) {
	base, err := b.loader.Load(src)
	if err != nil {
		return "", err
	}

	out, err := b.composite(base)
	if err != nil {
		return "", err
	}

	return b.exporter.Export(out, src, settings)
}
