package render

import (
	"strconv"
	"strings"

	"codeberg.org/go-pdf/fpdf"

	"github.com/verte-zerg/mathsheet/internal/generator"
)

// Palette.
const (
	colorNavy      = "#1a365d"
	colorSlate     = "#4a5568"
	colorInk       = "#2d3748"
	colorMuted     = "#718096"
	colorRule      = "#cbd5e0"
	colorBox       = "#e2e8f0"
	colorAnswer    = "#c53030"
	colorBlack     = "#000000"
	superScale     = 0.65
	superRiseScale = 0.38
)

// canvas wraps an fpdf document with cp1252 translation and hex colors.
type canvas struct {
	pdf    *fpdf.Fpdf
	tr     func(string) string
	family string
	cur    string
	style  string
	size   float64
}

func newCanvas(pdf *fpdf.Fpdf, family string) *canvas {
	return &canvas{
		pdf:    pdf,
		tr:     pdf.UnicodeTranslatorFromDescriptor(""),
		family: family,
	}
}

func (c *canvas) font(family, style string, size float64) {
	c.cur = family
	c.style = style
	c.size = size
	c.pdf.SetFont(family, style, size)
}

func (c *canvas) sans(style string, size float64) {
	c.font(c.family, style, size)
}

func (c *canvas) fill(hex string) {
	r, g, b := parseHex(hex)
	c.pdf.SetTextColor(r, g, b)
}

func (c *canvas) stroke(hex string, width float64) {
	r, g, b := parseHex(hex)
	c.pdf.SetDrawColor(r, g, b)
	c.pdf.SetLineWidth(width)
}

func (c *canvas) line(x1, y1, x2, y2 float64) {
	c.pdf.Line(x1, y1, x2, y2)
}

func (c *canvas) text(x, y float64, s string) {
	c.pdf.Text(x, y, c.tr(s))
}

func (c *canvas) width(s string) float64 {
	return c.pdf.GetStringWidth(c.tr(s))
}

func (c *canvas) textRight(right, y float64, s string) {
	c.text(right-c.width(s), y, s)
}

func (c *canvas) textCenter(center, y float64, s string) {
	c.text(center-c.width(s)/2, y, s)
}

// run is a span of text drawn either on the baseline or raised as an exponent.
type run struct {
	text  string
	super bool
}

// splitRuns separates superscript digits so exponents can be drawn raised
// in a smaller size instead of relying on glyphs the core fonts lack.
func splitRuns(s string) []run {
	var runs []run
	var b strings.Builder
	super := false
	flush := func() {
		if b.Len() > 0 {
			runs = append(runs, run{text: b.String(), super: super})
			b.Reset()
		}
	}
	for _, r := range s {
		isSuper := generator.IsSuperscript(r)
		if isSuper != super {
			flush()
			super = isSuper
		}
		if isSuper {
			r = generator.FromSuperscript(r)
		}
		b.WriteRune(r)
	}
	flush()
	return runs
}

// rich draws s at (x, y) with exponents raised and returns the drawn width.
// With draw false it only measures.
func (c *canvas) rich(x, y float64, s string, draw bool) float64 {
	family, style, size := c.cur, c.style, c.size
	start := x
	for _, r := range splitRuns(s) {
		if r.super {
			c.pdf.SetFont(family, style, size*superScale)
			if draw {
				c.text(x, y-size*superRiseScale, r.text)
			}
			x += c.width(r.text)
			c.pdf.SetFont(family, style, size)
			continue
		}
		if draw {
			c.text(x, y, r.text)
		}
		x += c.width(r.text)
	}
	return x - start
}

func parseHex(hex string) (int, int, int) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return 0, 0, 0
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)
}
