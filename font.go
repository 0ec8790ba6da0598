package moji

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io/ioutil"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// DefaultFontSize is the point size the reference font is rendered at.
const DefaultFontSize = 20

// Font is a rasterizable font face at a fixed size. It is safe for
// concurrent use.
type Font struct {
	Name string
	Size float64

	mu   sync.Mutex
	face font.Face
}

var (
	defaultFontOnce sync.Once
	defaultFont     *Font
)

// DefaultFont returns Go Mono at DefaultFontSize. It is parsed once.
func DefaultFont() *Font {
	defaultFontOnce.Do(func() {
		f, err := parseFont("gomono", gomono.TTF, DefaultFontSize)
		if err != nil {
			// gomono.TTF is compiled in, this only fails if x/image is broken.
			panic(err)
		}
		defaultFont = f
	})

	return defaultFont
}

// FallbackFont returns the built-in 7x13 bitmap face.
func FallbackFont() *Font {
	return &Font{
		Name: "basicfont7x13",
		Size: 13,
		face: basicfont.Face7x13,
	}
}

// LoadFont loads a TrueType or OpenType font file at the given size.
func LoadFont(path string, size float64) (*Font, error) {
	if size <= 0 {
		return nil, fmt.Errorf("moji: LoadFont: size must be positive, got %v", size)
	}

	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("moji: LoadFont: %w", err)
	}

	return parseFont(path, data, size)
}

// LoadFontOrFallback is like LoadFont, but always returns a usable font. If
// the file cannot be loaded the fallback font is returned together with the
// error that caused it.
func LoadFontOrFallback(path string, size float64) (*Font, error) {
	f, err := LoadFont(path, size)
	if err != nil {
		return FallbackFont(), err
	}

	return f, nil
}

func parseFont(name string, data []byte, size float64) (*Font, error) {
	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("moji: parse font %q: %w", name, err)
	}

	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("moji: parse font %q: %w", name, err)
	}

	return &Font{
		Name: name,
		Size: size,
		face: face,
	}, nil
}

func (f *Font) lineHeight() int {
	m := f.face.Metrics()
	h := m.Height.Ceil()
	if asc := (m.Ascent + m.Descent).Ceil(); asc > h {
		h = asc
	}

	return h
}

func (f *Font) lineWidth(line string) int {
	bounds, advance := font.BoundString(f.face, line)
	w := advance.Ceil()
	if right := bounds.Max.X.Ceil(); right > w {
		w = right
	}

	return w
}

// Measure returns the pixel size of text when rendered with the font. Each
// newline starts a new line.
func (f *Font) Measure(text string) image.Point {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.measure(text)
}

func (f *Font) measure(text string) image.Point {
	lines := strings.Split(text, "\n")

	var size image.Point
	for _, line := range lines {
		if w := f.lineWidth(line); w > size.X {
			size.X = w
		}
	}
	size.Y = len(lines) * f.lineHeight()

	return size
}

// Render draws text in fg onto a bg filled image sized to Measure(text).
func (f *Font) Render(text string, fg, bg color.Color) *image.RGBA {
	f.mu.Lock()
	defer f.mu.Unlock()

	img := image.NewRGBA(image.Rectangle{Max: f.measure(text)})
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(fg),
		Face: f.face,
	}

	ascent := f.face.Metrics().Ascent
	for i, line := range strings.Split(text, "\n") {
		d.Dot = fixed.Point26_6{
			X: 0,
			Y: ascent + fixed.I(i*f.lineHeight()),
		}
		d.DrawString(line)
	}

	return img
}
