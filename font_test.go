package moji

import (
	"image"
	"image/color"
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/maruel/ut"
	"golang.org/x/image/font/gofont/gomono"
)

func writeTemp(t *testing.T, name string, data []byte) string {
	path := filepath.Join(t.TempDir(), name)
	if err := ioutil.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestMeasureGrowsWithText(t *testing.T) {
	t.Parallel()
	f := DefaultFont()

	short := f.Measure("Hi World")
	long := f.Measure("Hello World")
	ut.AssertEqual(t, true, short.X < long.X)
	ut.AssertEqual(t, short.Y, long.Y)
	ut.AssertEqual(t, true, short.Y > 0)

	twoLines := f.Measure("Hi World\nHi")
	ut.AssertEqual(t, short.X, twoLines.X)
	ut.AssertEqual(t, 2*short.Y, twoLines.Y)
}

func TestMeasureGrowsWithFontSize(t *testing.T) {
	t.Parallel()
	path := writeTemp(t, "gomono.ttf", gomono.TTF)

	small, err := LoadFont(path, 10)
	ut.AssertEqual(t, nil, err)
	large, err := LoadFont(path, 30)
	ut.AssertEqual(t, nil, err)

	s := small.Measure("Hi World")
	l := large.Measure("Hi World")
	ut.AssertEqual(t, true, s.X < l.X)
	ut.AssertEqual(t, true, s.Y < l.Y)
}

func TestLoadFontErrors(t *testing.T) {
	t.Parallel()

	_, err := LoadFont(filepath.Join(t.TempDir(), "missing.ttf"), 20)
	ut.AssertEqual(t, true, err != nil)

	_, err = LoadFont(writeTemp(t, "junk.ttf", []byte("not a font")), 20)
	ut.AssertEqual(t, true, err != nil)

	_, err = LoadFont(writeTemp(t, "gomono.ttf", gomono.TTF), 0)
	ut.AssertEqual(t, true, err != nil)
}

func TestLoadFontOrFallback(t *testing.T) {
	t.Parallel()

	f, err := LoadFontOrFallback(filepath.Join(t.TempDir(), "missing.ttf"), 20)
	ut.AssertEqual(t, true, err != nil)
	ut.AssertEqual(t, "basicfont7x13", f.Name)
	ut.AssertEqual(t, image.Pt(7, 13), f.Measure("a"))
	ut.AssertEqual(t, image.Pt(14, 26), f.Measure("ab\ncd"))

	f, err = LoadFontOrFallback(writeTemp(t, "gomono.ttf", gomono.TTF), 20)
	ut.AssertEqual(t, nil, err)
	ut.AssertEqual(t, float64(20), f.Size)
}

func TestRenderSizeAndFill(t *testing.T) {
	t.Parallel()
	f := DefaultFont()
	bg := color.RGBA{R: 10, G: 20, B: 30, A: 255}

	img := f.Render(" ", color.White, bg)
	ut.AssertEqual(t, f.Measure(" "), img.Bounds().Size())
	for y := 0; y < img.Bounds().Dy(); y++ {
		for x := 0; x < img.Bounds().Dx(); x++ {
			ut.AssertEqual(t, bg, img.RGBAAt(x, y))
		}
	}

	img = f.Render("Hi", color.White, bg)
	ut.AssertEqual(t, f.Measure("Hi"), img.Bounds().Size())
}

func TestRenderText(t *testing.T) {
	t.Parallel()

	img := RenderText("ab\ncd", FallbackFont())
	ut.AssertEqual(t, image.Pt(14, 26), img.Bounds().Size())

	img = RenderText("x", nil)
	ut.AssertEqual(t, DefaultFont().Measure("x"), img.Bounds().Size())
}
