package moji

import (
	"bufio"
	"image/color"
	"io"
	"strings"
)

// FrameRow represents a row of character cells in a frame.
type FrameRow struct {
	Text  []rune
	Color []color.RGBA
}

// Encode writes the row to a writer. If enc is nil the row is written as
// plain text, otherwise every character is preceded by its background color
// token and the row ends with a reset token.
func (f *FrameRow) Encode(wr io.StringWriter, enc ColorEncoder) (int, error) {
	if enc == nil {
		return wr.WriteString(string(f.Text))
	}

	total := 0
	for i, r := range f.Text {
		n, err := wr.WriteString(enc.Background(f.Color[i]))
		total += n
		if err != nil {
			return total, err
		}

		n, err = wr.WriteString(string(r))
		total += n
		if err != nil {
			return total, err
		}
	}

	n, err := wr.WriteString(enc.Reset())
	total += n
	return total, err
}

// Frame is a converted character grid. Every row has Width cells and there
// are Height rows.
type Frame struct {
	Width  int
	Height int

	Rows []*FrameRow
}

// Encode writes the frame to w, rows separated by a newline with no
// trailing newline. See FrameRow.Encode for the meaning of enc.
func (f *Frame) Encode(w io.Writer, enc ColorEncoder) error {
	wr := bufio.NewWriter(w)

	for i, row := range f.Rows {
		if i > 0 {
			if err := wr.WriteByte('\n'); err != nil {
				return err
			}
		}

		if _, err := row.Encode(wr, enc); err != nil {
			return err
		}
	}

	return wr.Flush()
}

func (f *Frame) render(enc ColorEncoder) string {
	var b strings.Builder
	b.Grow((f.Width + 1) * f.Height)

	for i, row := range f.Rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		row.Encode(&b, enc)
	}

	return b.String()
}

// String returns the plain character grid.
func (f *Frame) String() string {
	return f.render(nil)
}

// Colored returns the character grid with every character prefixed by the
// color token of its source pixel.
func (f *Frame) Colored(enc ColorEncoder) string {
	return f.render(enc)
}
