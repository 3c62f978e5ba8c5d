package ui2d

import (
	"image"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	firstGlyph = ' '
	lastGlyph  = 'ÿ'
	atlasCols  = 16
)

// Font is a fixed-width bitmap font baked into a single-channel atlas.
type Font struct {
	atlas  *image.Alpha
	glyphW int
	glyphH int
}

// NewFont bakes the Latin-1 range of the 7x13 basic font.
func NewFont() *Font {
	face := basicfont.Face7x13
	gw, gh := face.Advance, face.Height

	count := int(lastGlyph-firstGlyph) + 1
	rows := (count + atlasCols - 1) / atlasCols
	atlas := image.NewAlpha(image.Rect(0, 0, atlasCols*gw, rows*gh))

	d := font.Drawer{Dst: atlas, Src: image.Opaque, Face: face}
	for i := 0; i < count; i++ {
		col, row := i%atlasCols, i/atlasCols
		d.Dot = fixed.P(col*gw, row*gh+face.Ascent)
		d.DrawString(string(rune(firstGlyph + i)))
	}

	return &Font{atlas: atlas, glyphW: gw, glyphH: gh}
}

// Atlas returns the baked glyph coverage, one byte per pixel.
func (f *Font) Atlas() *image.Alpha {
	return f.atlas
}

// GlyphSize returns the cell size of one glyph in pixels.
func (f *Font) GlyphSize() (int, int) {
	return f.glyphW, f.glyphH
}

// GetGlyphUV returns the atlas coordinates of r. Runes outside the
// printable Latin-1 range render as '?'.
func (f *Font) GetGlyphUV(r rune) (u0, v0, u1, v1 float32) {
	if r < firstGlyph || r > lastGlyph || (r >= 0x7f && r < 0xa0) {
		r = '?'
	}
	i := int(r - firstGlyph)
	col, row := i%atlasCols, i/atlasCols

	b := f.atlas.Bounds()
	aw, ah := float32(b.Dx()), float32(b.Dy())
	u0 = float32(col*f.glyphW) / aw
	v0 = float32(row*f.glyphH) / ah
	u1 = float32((col+1)*f.glyphW) / aw
	v1 = float32((row+1)*f.glyphH) / ah
	return u0, v0, u1, v1
}

// MeasureText returns the width of the longest line and the total height.
func (f *Font) MeasureText(text string, scale float32) (float32, float32) {
	if text == "" {
		return 0, 0
	}
	lines := strings.Split(text, "\n")
	longest := 0
	for _, l := range lines {
		if n := len([]rune(l)); n > longest {
			longest = n
		}
	}
	return float32(longest*f.glyphW) * scale, float32(len(lines)*f.glyphH) * scale
}

// Wrap breaks text into lines no wider than maxWidth at the given scale.
// Words longer than a line are kept whole.
func (f *Font) Wrap(text string, scale, maxWidth float32) []string {
	perLine := int(maxWidth / (float32(f.glyphW) * scale))
	if perLine < 1 {
		perLine = 1
	}

	var lines []string
	for _, para := range strings.Split(text, "\n") {
		line := ""
		for _, word := range strings.Fields(para) {
			switch {
			case line == "":
				line = word
			case len([]rune(line))+1+len([]rune(word)) <= perLine:
				line += " " + word
			default:
				lines = append(lines, line)
				line = word
			}
		}
		lines = append(lines, line)
	}
	return lines
}
