package moji

import (
	"image"
	"image/color"
)

// RenderText renders text, white on black, into an image sized to fit it.
// It is used to preview converted output as an image. A nil f means
// DefaultFont.
func RenderText(text string, f *Font) *image.RGBA {
	if f == nil {
		f = DefaultFont()
	}

	return f.Render(text, color.White, color.Black)
}
