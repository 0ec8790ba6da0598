package moji

import (
	"bytes"
	"fmt"
	"image/color"
	"testing"

	"github.com/maruel/ut"
)

type bracketEncoder struct{}

func (bracketEncoder) Background(c color.RGBA) string {
	return fmt.Sprintf("[%d,%d,%d]", c.R, c.G, c.B)
}

func (bracketEncoder) Reset() string {
	return "|"
}

func testFrame() *Frame {
	return &Frame{
		Width:  2,
		Height: 2,
		Rows: []*FrameRow{
			{
				Text:  []rune("ab"),
				Color: []color.RGBA{{R: 1}, {G: 2}},
			},
			{
				Text:  []rune("cd"),
				Color: []color.RGBA{{B: 3}, {R: 4, G: 5, B: 6}},
			},
		},
	}
}

func TestFrameString(t *testing.T) {
	t.Parallel()
	f := testFrame()

	ut.AssertEqual(t, "ab\ncd", f.String())
	ut.AssertEqual(t, "[1,0,0]a[0,2,0]b|\n[0,0,3]c[4,5,6]d|", f.Colored(bracketEncoder{}))
}

func TestFrameEncode(t *testing.T) {
	t.Parallel()
	f := testFrame()

	var buf bytes.Buffer
	ut.AssertEqual(t, nil, f.Encode(&buf, nil))
	ut.AssertEqual(t, f.String(), buf.String())

	buf.Reset()
	ut.AssertEqual(t, nil, f.Encode(&buf, bracketEncoder{}))
	ut.AssertEqual(t, f.Colored(bracketEncoder{}), buf.String())
}

func TestFrameRowEncode(t *testing.T) {
	t.Parallel()
	row := testFrame().Rows[0]

	var buf bytes.Buffer
	n, err := row.Encode(&buf, bracketEncoder{})
	ut.AssertEqual(t, nil, err)
	ut.AssertEqual(t, "[1,0,0]a[0,2,0]b|", buf.String())
	ut.AssertEqual(t, buf.Len(), n)
}
