package moji

import (
	"sync"
	"testing"

	"github.com/maruel/ut"
)

func reversed(chars []rune) []rune {
	out := make([]rune, len(chars))
	for i, r := range chars {
		out[len(chars)-1-i] = r
	}
	return out
}

func TestBrightness(t *testing.T) {
	t.Parallel()
	f := DefaultFont()

	ut.AssertEqual(t, 0, Brightness(' ', f))
	ut.AssertEqual(t, true, Brightness('.', f) > 0)
	ut.AssertEqual(t, true, Brightness('o', f) < Brightness('@', f))
	ut.AssertEqual(t, true, Brightness('.', f) < Brightness('#', f))
	ut.AssertEqual(t, Brightness('@', f), Brightness('@', f))
}

func TestSortPaletteMonotonic(t *testing.T) {
	t.Parallel()
	f := DefaultFont()

	sorted := SortPalette([]rune(DefaultCharset), f)
	ut.AssertEqual(t, len([]rune(DefaultCharset)), len(sorted))
	ut.AssertEqual(t, ' ', sorted[0])

	for i := 1; i < len(sorted); i++ {
		prev, cur := Brightness(sorted[i-1], f), Brightness(sorted[i], f)
		if prev > cur {
			t.Fatalf("%q (%d) sorted before %q (%d)", sorted[i-1], prev, sorted[i], cur)
		}
		if prev == cur && sorted[i-1] > sorted[i] {
			t.Fatalf("tie between %q and %q not broken by character", sorted[i-1], sorted[i])
		}
	}
}

func TestSortPaletteRoundTrip(t *testing.T) {
	t.Parallel()
	f := DefaultFont()

	input := []rune("@o.# :")
	sorted := SortPalette(input, f)
	ut.AssertEqual(t, []rune("@o.# :"), input)
	ut.AssertEqual(t, sorted, SortPalette(sorted, f))
	ut.AssertEqual(t, sorted, SortPalette(reversed(sorted), f))
}

func TestSortPaletteFallbackFont(t *testing.T) {
	t.Parallel()

	ut.AssertEqual(t, []rune(" .#"), SortPalette([]rune("#. "), FallbackFont()))
}

func TestDefaultPalette(t *testing.T) {
	t.Parallel()

	p := DefaultPalette()
	ut.AssertEqual(t, SortPalette([]rune(DefaultCharset), DefaultFont()), p)

	p[0] = 'X'
	ut.AssertEqual(t, ' ', DefaultPalette()[0])
}

func TestCalibrator(t *testing.T) {
	t.Parallel()
	c := NewCalibrator(nil)
	ut.AssertEqual(t, DefaultFont(), c.Font())

	chars := []rune("#@. o")
	want := SortPalette(chars, DefaultFont())

	var wg sync.WaitGroup
	results := make([][]rune, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = c.Sort(chars)
		}(i)
	}
	wg.Wait()

	for i, r := range results {
		ut.AssertEqualIndex(t, i, want, r)
	}

	got := c.Sort(chars)
	got[0] = 'X'
	ut.AssertEqual(t, want, c.Sort(chars))
}
