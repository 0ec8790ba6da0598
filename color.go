package moji

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
)

// ColorEncoder turns pixel colors into terminal escape tokens.
type ColorEncoder interface {
	// Background returns the token that sets the cell background to c.
	Background(c color.RGBA) string
	// Reset returns the token that clears any color set by Background.
	Reset() string
}

// TermEncoder encodes colors as ANSI escape sequences for a termenv color
// profile. Colors are degraded to what the profile supports, termenv.Ascii
// produces no escapes at all.
type TermEncoder struct {
	Profile termenv.Profile
}

// Background implements ColorEncoder.
func (e TermEncoder) Background(c color.RGBA) string {
	hex := colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}.Hex()

	seq := e.Profile.Color(hex).Sequence(true)
	if seq == "" {
		return ""
	}

	return termenv.CSI + seq + "m"
}

// Reset implements ColorEncoder.
func (e TermEncoder) Reset() string {
	if e.Profile == termenv.Ascii {
		return ""
	}

	return termenv.CSI + termenv.ResetSeq + "m"
}

// DefaultEncoder returns a TermEncoder for the color profile of the
// environment (see termenv.EnvColorProfile).
func DefaultEncoder() TermEncoder {
	return TermEncoder{Profile: termenv.EnvColorProfile()}
}
