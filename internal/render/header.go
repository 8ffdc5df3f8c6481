package render

import (
	"fmt"

	"github.com/verte-zerg/mathsheet/internal/layout"
	"github.com/verte-zerg/mathsheet/internal/model"
)

const dateLayout = "January 02, 2006"

func (r *Renderer) drawHeader(c *canvas, ws model.Worksheet, title, subtitle string) {
	f := r.cfg.Frame
	left, right := f.Margin, f.PageWidth-f.Margin
	center := f.PageWidth / 2
	y := 0.5 * layout.Inch

	c.stroke(colorNavy, 2)
	c.line(left, y-0.15*layout.Inch, right, y-0.15*layout.Inch)

	c.fill(colorNavy)
	c.sans("B", 12)
	c.text(left, y+0.1*layout.Inch, ws.School)

	c.sans("B", 16)
	c.textCenter(center, y+0.1*layout.Inch, title)

	if !ws.Date.IsZero() {
		c.sans("", 10)
		c.textRight(right, y+0.1*layout.Inch, ws.Date.Format(dateLayout))
	}

	if subtitle != "" {
		c.sans("I", 10)
		c.fill(colorSlate)
		c.textCenter(center, y+0.35*layout.Inch, subtitle)
	}

	c.stroke(colorRule, 0.5)
	c.line(left, y+0.5*layout.Inch, right, y+0.5*layout.Inch)

	c.fill(colorInk)
	c.sans("", 10)
	c.text(left, y+0.75*layout.Inch, "Name: _______________________________")
	c.text(center+0.5*layout.Inch, y+0.75*layout.Inch, "Date: ________________    Score: ______ / ______")
}

func (r *Renderer) drawFooter(c *canvas, ws model.Worksheet, page, total int) {
	f := r.cfg.Frame
	left, right := f.Margin, f.PageWidth-f.Margin
	y := f.PageHeight - 0.5*layout.Inch

	c.stroke(colorRule, 0.5)
	c.line(left, y-0.25*layout.Inch, right, y-0.25*layout.Inch)

	c.fill(colorMuted)
	c.sans("", 8)
	c.text(left, y, copyrightLine(ws))

	c.sans("B", 10)
	c.fill(colorNavy)
	c.textCenter(f.PageWidth/2, y, fmt.Sprintf("Page %d of %d", page, total))

	if ws.Number > 0 {
		c.fill(colorMuted)
		c.sans("", 8)
		c.textRight(right, y, fmt.Sprintf("Worksheet #%d", ws.Number))
	}

	c.stroke(colorNavy, 2)
	c.line(left, y+0.15*layout.Inch, right, y+0.15*layout.Inch)
}

func copyrightLine(ws model.Worksheet) string {
	if ws.Date.IsZero() {
		return fmt.Sprintf("© %s | Mathematics Department", ws.School)
	}
	return fmt.Sprintf("© %d %s | Mathematics Department", ws.Date.Year(), ws.School)
}
