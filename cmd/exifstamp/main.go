// exifstamp adds the EXIF capture date (YYYY-MM-DD) as a text watermark to
// images. Output goes to a sibling directory named <dirname>_watermark with
// the original filenames. Files without an EXIF date are skipped with a
// notice; no single bad file aborts the batch.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"photo-watermark/internal/domain"
	"photo-watermark/internal/usecase/compositor"
	"photo-watermark/internal/usecase/loader"

	"github.com/disintegration/imaging"
	"github.com/wb-go/wbf/zlog"
)

func main() {
	os.Exit(run())
}

func run() int {
	fontSize := flag.Float64("font-size", domain.DefaultFontSize, "font size in pixels")
	colorStr := flag.String("color", "#FFFFFF", "text color (#RRGGBB)")
	position := flag.String("position", "br", "watermark position: tl, tr, bl, br, center")
	margin := flag.Int("margin", domain.DefaultMargin, "margin from edges in pixels")
	fontPath := flag.String("font", "", "path to a .ttf/.otf font file")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: exifstamp [flags] input_path")
		flag.PrintDefaults()
		return 1
	}
	input := flag.Arg(0)

	zlog.Init()
	logger := &zlog.Logger

	anchor, ok := domain.ParseAnchor(*position)
	if !ok {
		fmt.Fprintf(os.Stderr, "invalid position %q\n", *position)
		return 1
	}

	col, err := domain.ParseHexColor(*colorStr)
	if err != nil {
		fmt.Printf("[WARN] %v, defaulting to white\n", err)
		col = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	}

	ld := loader.New(logger)
	comp := compositor.New(compositor.NewFontResolver(logger), logger)

	files, err := ld.ListDir(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	if len(files) == 0 {
		fmt.Println("No supported image files found.")
		return 1
	}

	outDir := outputDir(input)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "create output dir: %v\n", err)
		return 1
	}

	placement := domain.Placement{Anchor: anchor, Margin: *margin}
	var done, skipped, failed int

	for _, src := range files {
		date, err := ld.ExifDate(src)
		if err != nil {
			if errors.Is(err, domain.ErrNoExifDate) {
				fmt.Printf("[SKIP] No EXIF date found: %s\n", src)
				skipped++
				continue
			}
			fmt.Printf("[ERROR] Failed to process %s: %v\n", src, err)
			failed++
			continue
		}

		out, err := stamp(ld, comp, src, outDir, date.Format("2006-01-02"), domain.TextSpec{
			FontName: *fontPath,
			FontSize: *fontSize,
			Color:    col,
			Shadow:   true,
			Opacity:  1,
		}, placement)
		if err != nil {
			fmt.Printf("[ERROR] Failed to process %s: %v\n", src, err)
			failed++
			continue
		}
		fmt.Printf("[OK] %s -> %s\n", src, out)
		done++
	}

	fmt.Printf("Done: %d watermarked, %d skipped, %d failed\n", done, skipped, failed)
	return 0
}

func stamp(ld *loader.Loader, comp *compositor.Compositor, src, outDir, text string, ts domain.TextSpec, pl domain.Placement) (string, error) {
	base, err := ld.Load(src)
	if err != nil {
		return "", err
	}

	ts.Content = text
	out, err := comp.Composite(base, domain.WatermarkSpec{Type: domain.WatermarkText, Text: &ts}, pl)
	if err != nil {
		return "", err
	}

	// Same filename, same format; JPEG output keeps high quality.
	dst := filepath.Join(outDir, filepath.Base(src))
	if err := imaging.Save(out, dst, imaging.JPEGQuality(domain.DefaultJPEGQuality)); err != nil {
		return "", err
	}
	return dst, nil
}

// outputDir resolves the sibling output directory: for a directory input,
// <dir>_watermark next to it; for a file input, next to its parent.
func outputDir(input string) string {
	dir := input
	if info, err := os.Stat(input); err == nil && !info.IsDir() {
		dir = filepath.Dir(input)
	}
	dir = filepath.Clean(dir)
	return filepath.Join(filepath.Dir(dir), filepath.Base(dir)+"_watermark")
}
