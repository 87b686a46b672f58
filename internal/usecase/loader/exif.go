package loader

import (
	"fmt"
	"os"
	"strings"
	"time"

	"photo-watermark/internal/domain"

	"github.com/rwcarlsen/goexif/exif"
)

// Capture date precedence per the EXIF convention.
var dateTags = []exif.FieldName{
	exif.DateTimeOriginal,
	exif.DateTimeDigitized,
	exif.DateTime,
}

// ExifDate extracts the capture date of the image at path. Returns
// domain.ErrNoExifDate when the file carries no EXIF block or none of the
// datetime tags.
func (l *Loader) ExifDate(path string) (time.Time, error) {
	f, err := os.Open(path)
	if err != nil {
		return time.Time{}, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return time.Time{}, domain.ErrNoExifDate
	}

	return dateFromTags(func(name exif.FieldName) (string, bool) {
		tag, err := x.Get(name)
		if err != nil {
			return "", false
		}
		s, err := tag.StringVal()
		if err != nil {
			return "", false
		}
		return s, true
	})
}

// dateFromTags picks the first present tag in precedence order and parses it.
// EXIF datetimes are "YYYY:MM:DD HH:MM:SS"; some writers store the date part
// with hyphens already.
func dateFromTags(lookup func(exif.FieldName) (string, bool)) (time.Time, error) {
	for _, tag := range dateTags {
		raw, ok := lookup(tag)
		if !ok {
			continue
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}

		for _, layout := range []string{
			"2006:01:02 15:04:05",
			"2006:01:02",
			"2006-01-02 15:04:05",
			"2006-01-02",
		} {
			if t, err := time.Parse(layout, raw); err == nil {
				return t, nil
			}
		}
		// Tolerate trailing garbage after the date part.
		if fields := strings.Fields(raw); len(fields) > 0 {
			date := strings.ReplaceAll(fields[0], ":", "-")
			if t, err := time.Parse("2006-01-02", date); err == nil {
				return t, nil
			}
		}
	}
	return time.Time{}, domain.ErrNoExifDate
}
