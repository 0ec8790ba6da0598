package moji

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/gift"
)

// ErrInvalidOption is returned for option values that would make a
// conversion meaningless, such as a non-positive scale or an empty palette.
var ErrInvalidOption = errors.New("moji: invalid option")

// Scale is a pair of multiplicative factors applied to the output width and
// height.
type Scale struct {
	X float64
	Y float64
}

// Uniform returns a Scale with both factors set to s.
func Uniform(s float64) Scale {
	return Scale{X: s, Y: s}
}

// Options controls a conversion. Use DefaultOptions as a starting point, the
// zero value is not valid.
type Options struct {
	// Size is the target size in character cells before FixScaling and
	// Scale are applied. A zero component means the native image size along
	// that axis.
	Size image.Point
	// Palette is ordered from lightest to darkest. nil means DefaultPalette.
	Palette []rune
	// SortChars calibrates Palette before use instead of trusting its order.
	SortChars bool
	// Calibrator sorts Palette when SortChars is set. nil means a calibrator
	// for DefaultFont.
	Calibrator *Calibrator
	// FixScaling doubles the output width to compensate for terminal cells
	// being about twice as tall as they are wide.
	FixScaling bool
	Scale      Scale
	// Brightness and Sharpness are enhancement factors, 1 leaves the image
	// unchanged.
	Brightness float64
	Sharpness  float64
	// Filter is the resampling filter. nil means gift.CubicResampling.
	Filter gift.Resampling
	// Colorful prefixes every character with the color of its pixel.
	Colorful bool
	// Encoder encodes colors when Colorful is set. nil means DefaultEncoder.
	Encoder ColorEncoder
}

// DefaultOptions returns options that convert an image at its native size
// with terminal aspect correction and no enhancement.
func DefaultOptions() Options {
	return Options{
		FixScaling: true,
		Scale:      Uniform(1),
		Brightness: 1,
		Sharpness:  1,
		Filter:     gift.CubicResampling,
	}
}

func (o *Options) validate() error {
	if !(o.Scale.X > 0) || !(o.Scale.Y > 0) {
		return fmt.Errorf("%w: scale must be positive, got %vx%v",
			ErrInvalidOption, o.Scale.X, o.Scale.Y)
	}
	if !(o.Brightness > 0) {
		return fmt.Errorf("%w: brightness must be positive, got %v",
			ErrInvalidOption, o.Brightness)
	}
	if !(o.Sharpness > 0) {
		return fmt.Errorf("%w: sharpness must be positive, got %v",
			ErrInvalidOption, o.Sharpness)
	}
	if o.Palette != nil && len(o.Palette) == 0 {
		return fmt.Errorf("%w: palette must not be empty", ErrInvalidOption)
	}
	if o.Size.X < 0 || o.Size.Y < 0 {
		return fmt.Errorf("%w: size must not be negative, got %v",
			ErrInvalidOption, o.Size)
	}

	return nil
}

func (o *Options) palette() []rune {
	if o.Palette == nil {
		return DefaultPalette()
	}

	if !o.SortChars {
		return o.Palette
	}

	if o.Calibrator != nil {
		return o.Calibrator.Sort(o.Palette)
	}

	return SortPalette(o.Palette, DefaultFont())
}

// Dimensions returns the size of the character grid produced for an image
// of the given native size: the target size, with the width doubled if
// FixScaling is set, multiplied by Scale and truncated.
func Dimensions(native image.Point, opts Options) (image.Point, error) {
	if err := opts.validate(); err != nil {
		return image.Point{}, err
	}

	size := native
	if opts.Size.X > 0 {
		size.X = opts.Size.X
	}
	if opts.Size.Y > 0 {
		size.Y = opts.Size.Y
	}

	width := float64(size.X)
	if opts.FixScaling {
		width *= 2
	}

	dim := image.Point{
		X: int(width * opts.Scale.X),
		Y: int(float64(size.Y) * opts.Scale.Y),
	}

	if dim.X < 1 || dim.Y < 1 {
		return image.Point{}, fmt.Errorf("%w: output would be %dx%d characters",
			ErrInvalidOption, dim.X, dim.Y)
	}

	return dim, nil
}

// Luminance returns the ITU-R 601-2 luma of c, computed the same way as
// common 8-bit grayscale conversions: (299R + 587G + 114B) / 1000, rounded.
func Luminance(c color.RGBA) uint8 {
	return uint8((uint32(c.R)*19595 + uint32(c.G)*38470 +
		uint32(c.B)*7471 + 0x8000) >> 16)
}

// Quantize maps an 8-bit luminance to an index into a palette of n
// characters.
func Quantize(lum uint8, n int) int {
	idx := int(lum) * n / 256
	if idx < 0 {
		return 0
	}
	if idx >= n {
		return n - 1
	}

	return idx
}

// Map resamples and enhances img and maps every pixel onto a palette
// character.
func Map(img image.Image, opts Options) (*Frame, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: image: nil image", ErrUnresolvableSource)
	}

	dim, err := Dimensions(img.Bounds().Size(), opts)
	if err != nil {
		return nil, fmt.Errorf("moji: Map: %w", err)
	}

	palette := opts.palette()

	filter := opts.Filter
	if filter == nil {
		filter = gift.CubicResampling
	}

	g := gift.New(gift.Resize(dim.X, dim.Y, filter))
	g.SetParallelization(false)

	resized := image.NewRGBA(g.Bounds(img.Bounds()))
	g.Draw(resized, img)

	enhanced := enhance(resized, opts.Brightness, opts.Sharpness)

	frame := &Frame{
		Width:  dim.X,
		Height: dim.Y,
		Rows:   make([]*FrameRow, 0, dim.Y),
	}

	b := enhanced.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := &FrameRow{
			Text:  make([]rune, 0, dim.X),
			Color: make([]color.RGBA, 0, dim.X),
		}

		for x := b.Min.X; x < b.Max.X; x++ {
			c := enhanced.RGBAAt(x, y)
			row.Text = append(row.Text, palette[Quantize(Luminance(c), len(palette))])
			row.Color = append(row.Color, c)
		}

		frame.Rows = append(frame.Rows, row)
	}

	return frame, nil
}

// Convert converts img into rows of palette characters separated by
// newlines. With opts.Colorful every character is preceded by a color token
// and every row ends with a reset token.
func Convert(img image.Image, opts Options) (string, error) {
	frame, err := Map(img, opts)
	if err != nil {
		return "", err
	}

	if !opts.Colorful {
		return frame.String(), nil
	}

	enc := opts.Encoder
	if enc == nil {
		enc = DefaultEncoder()
	}

	return frame.Colored(enc), nil
}

// ConvertSource resolves src and converts the resulting image.
func ConvertSource(ctx context.Context, src Source, opts Options) (string, error) {
	img, err := src.Resolve(ctx)
	if err != nil {
		return "", err
	}

	return Convert(img, opts)
}
