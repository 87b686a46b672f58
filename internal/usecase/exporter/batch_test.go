package exporter

import (
	"context"
	"image"
	"os"
	"path/filepath"
	"testing"

	"photo-watermark/internal/domain"
	"photo-watermark/internal/usecase/loader"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/zlog"
)

func testBatch(t *testing.T) *Batch {
	t.Helper()
	zlog.Init()
	identity := func(base *image.NRGBA) (*image.NRGBA, error) { return base, nil }
	return NewBatch(loader.New(&zlog.Logger), New(&zlog.Logger), identity, &zlog.Logger)
}

func writeImage(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, imaging.Save(testImage(16, 16), path))
}

// Five files with an unreadable third: four succeed, one error is reported,
// the batch never aborts.
func TestBatchContinuesPastBadFile(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()

	files := make([]string, 0, 5)
	for _, name := range []string{"1.png", "2.png", "3.png", "4.png", "5.png"} {
		path := filepath.Join(srcDir, name)
		if name == "3.png" {
			require.NoError(t, os.WriteFile(path, []byte("corrupt"), 0o644))
		} else {
			writeImage(t, path)
		}
		files = append(files, path)
	}

	b := testBatch(t)
	report := b.Run(context.Background(), files, domain.ExportSettings{
		Format:  domain.FormatJPEG,
		Quality: 90,
		Dir:     outDir,
		Naming:  domain.NamingKeep,
	})

	require.Equal(t, 4, report.Succeeded)
	require.Equal(t, 1, report.Failed)
	require.False(t, report.Canceled)
	require.Len(t, report.Results, 5)

	require.Error(t, report.Results[2].Err)
	for _, i := range []int{0, 1, 3, 4} {
		require.NoError(t, report.Results[i].Err)
		require.FileExists(t, report.Results[i].Output)
	}
}

func TestBatchConflictReportedPerFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "same.png")
	writeImage(t, path)

	b := testBatch(t)
	report := b.Run(context.Background(), []string{path}, domain.ExportSettings{
		Format:  domain.FormatPNG,
		Quality: 100,
		Dir:     dir,
		Naming:  domain.NamingKeep,
	})

	require.Equal(t, 1, report.Failed)
	require.ErrorIs(t, report.Results[0].Err, domain.ErrConflict)
}

func TestBatchCancellation(t *testing.T) {
	dir := t.TempDir()
	outDir := t.TempDir()

	var files []string
	for _, name := range []string{"a.png", "b.png"} {
		path := filepath.Join(dir, name)
		writeImage(t, path)
		files = append(files, path)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := testBatch(t)
	report := b.Run(ctx, files, domain.ExportSettings{
		Format:  domain.FormatPNG,
		Quality: 100,
		Dir:     outDir,
		Naming:  domain.NamingKeep,
	})

	require.True(t, report.Canceled)
	require.Empty(t, report.Results)
}
