// watermark applies a text or image watermark to a folder of photos using
// the current session settings, a saved template, or command-line flags.
package main

import (
	"context"
	"flag"
	"fmt"
	"image/color"
	"os"
	"os/signal"
	"syscall"

	"photo-watermark/internal/app"
	"photo-watermark/internal/config"
	"photo-watermark/internal/domain"
	"photo-watermark/internal/usecase/loader"

	"github.com/wb-go/wbf/zlog"
)

func main() {
	os.Exit(run())
}

func run() int {
	out := flag.String("out", "", "output directory (required)")
	templateName := flag.String("template", "", "apply a saved template")
	text := flag.String("text", "", "text watermark content")
	fontName := flag.String("font", "", "font family name or path to a .ttf/.otf file")
	fontSize := flag.Float64("font-size", domain.DefaultFontSize, "font size in pixels")
	colorStr := flag.String("color", "#FFFFFF", "text color (#RRGGBB or #RRGGBBAA)")
	bold := flag.Bool("bold", false, "bold text")
	italic := flag.Bool("italic", false, "italic text")
	shadow := flag.Bool("shadow", true, "draw a text shadow")
	imagePath := flag.String("image", "", "image watermark file (overrides -text)")
	scale := flag.Float64("scale", domain.DefaultImageScale, "image watermark scale, fraction of source size")
	opacity := flag.Float64("opacity", 1, "watermark opacity, 0 to 1")
	position := flag.String("position", "", "anchor: tl, tr, bl, br, center or full anchor name")
	margin := flag.Int("margin", -1, "margin from edges in pixels")
	format := flag.String("format", "", "output format: jpeg or png")
	quality := flag.Int("quality", 0, "JPEG quality 1-100")
	prefix := flag.String("prefix", "", "prepend to output filenames")
	suffix := flag.String("suffix", "", "append to output filenames")
	overwrite := flag.Bool("overwrite", false, "allow overwriting source files")
	recursive := flag.Bool("recursive", false, "descend into subdirectories")
	flag.Parse()

	if flag.NArg() != 1 || *out == "" {
		fmt.Fprintln(os.Stderr, "usage: watermark -out DIR [flags] input_dir")
		flag.PrintDefaults()
		return 1
	}

	zlog.Init()
	logger := &zlog.Logger

	cfg, err := config.MustLoad()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load config")
		return 1
	}

	session, err := app.NewSession(cfg, logger)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create session")
		return 1
	}

	if err := applyFlags(session, specFlags{
		template: *templateName,
		text:     *text,
		fontName: *fontName,
		fontSize: *fontSize,
		colorStr: *colorStr,
		bold:     *bold,
		italic:   *italic,
		shadow:   *shadow,
		image:    *imagePath,
		scale:    *scale,
		opacity:  *opacity,
		position: *position,
		margin:   *margin,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}

	export := session.Settings().Export
	export.Dir = *out
	export.Overwrite = *overwrite
	if *format != "" {
		export.Format = domain.ExportFormat(*format)
	}
	if *quality > 0 {
		export.Quality = *quality
	}
	switch {
	case *prefix != "":
		export.Naming, export.Affix = domain.NamingPrefix, *prefix
	case *suffix != "":
		export.Naming, export.Affix = domain.NamingSuffix, *suffix
	}
	session.SetExport(export)

	ld := loader.New(logger)
	var files []string
	if *recursive {
		files, err = ld.WalkDir(flag.Arg(0))
	} else {
		files, err = ld.ListDir(flag.Arg(0))
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	if len(files) == 0 {
		fmt.Println("No supported image files found.")
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report := session.ExportBatch(ctx, files)
	for _, r := range report.Results {
		if r.Err != nil {
			fmt.Printf("[ERROR] %s: %v\n", r.Source, r.Err)
		}
	}
	fmt.Printf("Exported %d of %d images", report.Succeeded, len(files))
	if report.Canceled {
		fmt.Print(" (canceled)")
	}
	fmt.Println()

	if err := session.Shutdown(); err != nil {
		logger.Error().Err(err).Msg("Shutdown failed")
	}

	if report.Succeeded == 0 && report.Failed > 0 {
		return 1
	}
	return 0
}

type specFlags struct {
	template string
	text     string
	fontName string
	fontSize float64
	colorStr string
	bold     bool
	italic   bool
	shadow   bool
	image    string
	scale    float64
	opacity  float64
	position string
	margin   int
}

// applyFlags layers the command line over the session: a template first,
// then any explicit watermark flags, then placement overrides.
func applyFlags(session *app.Session, f specFlags) error {
	if f.template != "" {
		if err := session.ApplyTemplate(f.template); err != nil {
			return err
		}
	}

	switch {
	case f.image != "":
		if err := session.SetWatermark(domain.WatermarkSpec{
			Type: domain.WatermarkImage,
			Image: &domain.ImageSpec{
				Path:    f.image,
				Scale:   f.scale,
				Opacity: f.opacity,
			},
		}); err != nil {
			return err
		}
	case f.text != "":
		col, err := domain.ParseHexColor(f.colorStr)
		if err != nil {
			fmt.Printf("[WARN] %v, defaulting to white\n", err)
			col = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
		}
		if err := session.SetWatermark(domain.WatermarkSpec{
			Type: domain.WatermarkText,
			Text: &domain.TextSpec{
				Content:  f.text,
				FontName: f.fontName,
				FontSize: f.fontSize,
				Bold:     f.bold,
				Italic:   f.italic,
				Color:    col,
				Shadow:   f.shadow,
				Opacity:  f.opacity,
			},
		}); err != nil {
			return err
		}
	}

	pl := session.Settings().Placement
	if f.position != "" {
		anchor, ok := domain.ParseAnchor(f.position)
		if !ok {
			return fmt.Errorf("invalid position %q", f.position)
		}
		pl.Anchor = anchor
		pl.Offset = nil
	}
	if f.margin >= 0 {
		pl.Margin = f.margin
	}
	session.SetPlacement(pl)
	return nil
}
