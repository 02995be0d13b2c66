package layout

import (
	"strings"
	"time"

	"github.com/matzehuels/wordcloud/pkg/errors"
)

// Collision selects how candidate glyphs are tested against placed ones.
type Collision int

const (
	CollisionBox Collision = iota
	CollisionPixel
)

// String returns the configuration name of the collision mode.
func (c Collision) String() string {
	if c == CollisionPixel {
		return "pixel"
	}
	return "box"
}

// ParseCollision parses "box" or "pixel". The empty string means box.
func ParseCollision(s string) (Collision, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "box":
		return CollisionBox, nil
	case "pixel":
		return CollisionPixel, nil
	}
	return CollisionBox, errors.New(errors.ErrCodeInvalidConfig, "invalid collision: %q (must be one of: box, pixel)", s)
}

// ParseScaling parses "linear" or "log". The empty string means linear.
func ParseScaling(s string) (Scaling, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "linear":
		return ScaleLinear, nil
	case "log":
		return ScaleLog, nil
	}
	return ScaleLinear, errors.New(errors.ErrCodeInvalidConfig, "invalid scaling: %q (must be one of: linear, log)", s)
}

// Default option values.
const (
	DefaultMinFontSize = 10
	DefaultFontStep    = 2
	DefaultMargin      = 2
	DefaultStep        = 2.0
	DefaultSeed        = uint64(42)
)

// Options configures an Engine.
type Options struct {
	// Width and Height are the canvas size in pixels.
	Width, Height int

	// MinFontSize and MaxFontSize bound glyph sizes in pixels. A zero
	// MaxFontSize means a fifth of the shorter canvas side.
	MinFontSize int
	MaxFontSize int

	// FontStep is the size decrement applied when a term does not fit.
	FontStep int

	// Scaling maps counts to sizes.
	Scaling Scaling

	// MaxGlyphs stops the layout once this many terms are placed.
	// Zero places as many as the table holds.
	MaxGlyphs int

	// Margin is the minimum gap in pixels between placed glyphs.
	Margin int

	// Step is the spiral pitch and sample spacing in pixels.
	Step float64

	// MaxIterations caps the candidates tested per attempt (one size, one
	// orientation). Zero leaves only the radius bound.
	MaxIterations int

	// TermTimeout caps the wall time spent on one term across all sizes and
	// orientations. Zero disables the bound.
	TermTimeout time.Duration

	// Vertical is the probability in [0, 1] of trying a term rotated first.
	// Zero never rotates; any other value also tries the second orientation
	// when the first one does not fit.
	Vertical float64

	// Collision selects the overlap test.
	Collision Collision

	// Seed drives all randomness.
	Seed uint64
}

// WithDefaults fills zero values.
func (o Options) WithDefaults() Options {
	if o.MinFontSize == 0 {
		o.MinFontSize = DefaultMinFontSize
	}
	if o.MaxFontSize == 0 {
		o.MaxFontSize = max(o.MinFontSize, min(o.Width, o.Height)/5)
	}
	if o.FontStep == 0 {
		o.FontStep = DefaultFontStep
	}
	if o.Step == 0 {
		o.Step = DefaultStep
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	return o
}

// Validate rejects impossible settings. It does not clamp.
func (o Options) Validate() error {
	if err := errors.ValidateDimensions(o.Width, o.Height); err != nil {
		return err
	}
	if o.MinFontSize <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "min_font_size must be positive, got %d", o.MinFontSize)
	}
	if o.MaxFontSize < o.MinFontSize {
		return errors.New(errors.ErrCodeInvalidConfig, "max_font_size %d is below min_font_size %d", o.MaxFontSize, o.MinFontSize)
	}
	if o.FontStep <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "font_step must be positive, got %d", o.FontStep)
	}
	if o.Margin < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "margin cannot be negative, got %d", o.Margin)
	}
	if o.Step <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "spiral step must be positive, got %g", o.Step)
	}
	if o.MaxGlyphs < 0 || o.MaxIterations < 0 || o.TermTimeout < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "limits cannot be negative")
	}
	if o.Vertical < 0 || o.Vertical > 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "vertical probability must be in [0, 1], got %g", o.Vertical)
	}
	return nil
}
