package moji

import (
	"image/color"
	"sort"
	"sync"

	"golang.org/x/sync/singleflight"
)

// DefaultCharset is the set of characters the default palette is calibrated
// from.
const DefaultCharset = " .'`^\",:;Il!i><~+_-?][}{1)(|\\/tfjrxnuvczXYUJCLQ0OZmwqpdbkhao*#MW&8%B@$"

var (
	defaultPaletteOnce sync.Once
	defaultPalette     []rune
)

// DefaultPalette returns DefaultCharset sorted by brightness under
// DefaultFont. The calibration runs once per process, the returned slice is
// a copy.
func DefaultPalette() []rune {
	defaultPaletteOnce.Do(func() {
		defaultPalette = SortPalette([]rune(DefaultCharset), DefaultFont())
	})

	palette := make([]rune, len(defaultPalette))
	copy(palette, defaultPalette)
	return palette
}

// Brightness returns the ink coverage of r: the number of pixels that differ
// from the background when r is rendered alone with f.
func Brightness(r rune, f *Font) int {
	img := f.Render(string(r), color.White, color.Black)

	count := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			i := img.PixOffset(x, y)
			if img.Pix[i] != 0 || img.Pix[i+1] != 0 || img.Pix[i+2] != 0 {
				count++
			}
		}
	}

	return count
}

// GlyphMetric pairs a character with its measured brightness.
type GlyphMetric struct {
	Rune       rune
	Brightness int
}

// Measure returns the metric of every character in chars, in order.
func Measure(chars []rune, f *Font) []GlyphMetric {
	metrics := make([]GlyphMetric, len(chars))
	for i, r := range chars {
		metrics[i] = GlyphMetric{
			Rune:       r,
			Brightness: Brightness(r, f),
		}
	}

	return metrics
}

// SortPalette returns chars ordered from lightest to darkest under f. Ties in
// brightness are broken by the character itself. chars is not modified.
func SortPalette(chars []rune, f *Font) []rune {
	metrics := Measure(chars, f)
	sort.SliceStable(metrics, func(i, j int) bool {
		if metrics[i].Brightness != metrics[j].Brightness {
			return metrics[i].Brightness < metrics[j].Brightness
		}
		return metrics[i].Rune < metrics[j].Rune
	})

	sorted := make([]rune, len(metrics))
	for i, m := range metrics {
		sorted[i] = m.Rune
	}

	return sorted
}

// Calibrator memoizes SortPalette for a single font.
type Calibrator struct {
	font  *Font
	group singleflight.Group

	mu    sync.Mutex
	cache map[string][]rune
}

// NewCalibrator returns a calibrator for f. A nil f means DefaultFont.
func NewCalibrator(f *Font) *Calibrator {
	if f == nil {
		f = DefaultFont()
	}

	return &Calibrator{
		font:  f,
		cache: make(map[string][]rune),
	}
}

// Font returns the font the calibrator measures with.
func (c *Calibrator) Font() *Font {
	return c.font
}

// Sort is SortPalette with the result cached per charset. Concurrent calls
// for the same charset share one calibration.
func (c *Calibrator) Sort(chars []rune) []rune {
	key := string(chars)

	c.mu.Lock()
	sorted, ok := c.cache[key]
	c.mu.Unlock()

	if !ok {
		v, _, _ := c.group.Do(key, func() (interface{}, error) {
			s := SortPalette(chars, c.font)

			c.mu.Lock()
			c.cache[key] = s
			c.mu.Unlock()

			return s, nil
		})
		sorted = v.([]rune)
	}

	palette := make([]rune, len(sorted))
	copy(palette, sorted)
	return palette
}
