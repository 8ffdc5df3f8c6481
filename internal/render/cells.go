package render

import (
	"fmt"
	"strconv"

	"github.com/verte-zerg/mathsheet/internal/layout"
	"github.com/verte-zerg/mathsheet/internal/model"
)

const (
	monoFamily = "Courier"
	monoSize   = 14
)

// drawArithmeticCell draws the problem number, the stacked problem, and
// either the empty answer box or the answer in red.
func drawArithmeticCell(c *canvas, index int, p model.ArithmeticProblem, cell layout.Rect, showAnswer bool) {
	x := cell.X + 0.1*layout.Inch
	base := cell.Y + cell.H - 0.3*layout.Inch

	c.fill(colorNavy)
	c.sans("B", 9)
	c.text(x, base-0.55*layout.Inch, fmt.Sprintf("%d.", index+1))

	drawVertical(c, p, x+0.25*layout.Inch, base, showAnswer)

	if !showAnswer {
		c.stroke(colorBox, 0.5)
		c.pdf.RoundedRect(x+0.1*layout.Inch, base+0.05*layout.Inch, cell.W-0.3*layout.Inch, 0.3*layout.Inch, 3, "1234", "D")
	}
}

// drawVertical stacks top over operator and bottom, right-aligned to a rule.
func drawVertical(c *canvas, p model.ArithmeticProblem, x, base float64, showAnswer bool) {
	top := strconv.Itoa(p.Top)
	bottom := strconv.Itoa(p.Bottom)
	answer := strconv.Itoa(p.Answer)

	c.font(monoFamily, "B", monoSize)
	c.fill(colorBlack)
	charW := c.width("0")
	digits := max(len(top), len(bottom), len(answer))
	lineW := float64(digits+1)*charW + 10
	right := x + lineW

	c.textRight(right, base-0.35*layout.Inch, top)
	c.text(x, base-0.15*layout.Inch, string(p.Operator))
	c.textRight(right, base-0.15*layout.Inch, bottom)

	c.stroke(colorBlack, 1.5)
	c.line(x, base-0.05*layout.Inch, right, base-0.05*layout.Inch)

	if showAnswer {
		c.fill(colorAnswer)
		c.textRight(right, base+0.15*layout.Inch, answer)
	}
}

// drawPowersCell draws the problem number, the expression, and either an
// answer line or "= answer" in red.
func drawPowersCell(c *canvas, index int, p model.PowersProblem, cell layout.Rect, showAnswer bool) {
	x := cell.X + 0.15*layout.Inch
	base := cell.Y + cell.H - 0.4*layout.Inch

	c.fill(colorNavy)
	c.sans("B", 11)
	c.text(x, base-0.5*layout.Inch, fmt.Sprintf("%d.", index+1))

	ex := x + 0.3*layout.Inch
	if p.Fraction {
		drawFraction(c, p, ex, base, showAnswer)
	} else {
		drawHorizontal(c, p, ex, base, showAnswer)
	}

	if !showAnswer {
		c.stroke(colorRule, 1)
		c.line(ex, base+0.35*layout.Inch, x+cell.W-0.4*layout.Inch, base+0.35*layout.Inch)
		c.fill(colorMuted)
		c.sans("", 8)
		c.text(ex, base+0.5*layout.Inch, "Answer:")
	}
}

func drawHorizontal(c *canvas, p model.PowersProblem, x, base float64, showAnswer bool) {
	y := base - 0.15*layout.Inch
	c.fill(colorBlack)
	c.sans("", 13)
	exprW := c.rich(x, y, p.Expression, true)
	if showAnswer {
		c.sans("B", 13)
		c.text(x+exprW+15, y, "=")
		c.fill(colorAnswer)
		c.rich(x+exprW+30, y, p.Answer, true)
	}
}

func drawFraction(c *canvas, p model.PowersProblem, x, base float64, showAnswer bool) {
	c.fill(colorBlack)
	c.sans("", 12)
	numW := c.rich(0, 0, p.Numerator, false)
	denW := c.rich(0, 0, p.Denominator, false)
	barW := max(numW, denW) + 20

	c.rich(x+(barW-numW)/2, base-0.25*layout.Inch, p.Numerator, true)
	c.stroke(colorBlack, 1.5)
	c.line(x, base-0.1*layout.Inch, x+barW, base-0.1*layout.Inch)
	c.rich(x+(barW-denW)/2, base+0.1*layout.Inch, p.Denominator, true)

	if showAnswer {
		y := base - 0.05*layout.Inch
		c.sans("B", 12)
		c.text(x+barW+10, y, "=")
		c.fill(colorAnswer)
		c.rich(x+barW+25, y, p.Answer, true)
	}
}
