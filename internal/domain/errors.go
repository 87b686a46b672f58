package domain

import "errors"

var (
	// ErrResource marks a missing font or watermark image file. Callers
	// degrade to a default resource instead of failing.
	ErrResource = errors.New("resource unavailable")

	ErrUnsupportedFormat = errors.New("unsupported image format")

	// ErrConflict is returned when an export would overwrite its source file
	// and the caller has not confirmed the overwrite.
	ErrConflict = errors.New("output path conflicts with source file")

	ErrTemplateNotFound = errors.New("template not found")

	// ErrCorruptData marks stored template data that failed validation. The
	// caller falls back to defaults for that template.
	ErrCorruptData = errors.New("corrupt template data")

	ErrNoExifDate = errors.New("no exif date present")
)
