package domain

// Template is a named, reusable watermark configuration. Names are unique
// within the store.
type Template struct {
	Name      string        `json:"name" validate:"required"`
	Watermark WatermarkSpec `json:"watermark" validate:"required"`
	Placement Placement     `json:"placement"`
}

// CheckVariant verifies that the spec carries the variant its tag announces.
// Struct tags cannot express this, so the stores call it alongside the
// validator.
func (s WatermarkSpec) CheckVariant() error {
	switch s.Type {
	case WatermarkText:
		if s.Text == nil {
			return ErrCorruptData
		}
	case WatermarkImage:
		if s.Image == nil {
			return ErrCorruptData
		}
	default:
		return ErrCorruptData
	}
	return nil
}
