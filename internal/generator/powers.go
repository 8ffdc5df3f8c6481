package generator

import (
	"fmt"

	"github.com/verte-zerg/mathsheet/internal/model"
)

// Powers generates one powers-of-ten problem for the level.
func (g *Generator) Powers(level model.Level) (model.PowersProblem, error) {
	switch level {
	case model.LevelBasic:
		return g.basicPowers(), nil
	case model.LevelIntermediate:
		return g.intermediatePowers(), nil
	case model.LevelAdvanced:
		return g.advancedPowers(), nil
	default:
		return model.PowersProblem{}, fmt.Errorf("%w: %q", model.ErrUnknownLevel, string(level))
	}
}

// PowersProblems generates count problems for the level.
func (g *Generator) PowersProblems(count int, level model.Level) ([]model.PowersProblem, error) {
	result := make([]model.PowersProblem, 0, count)
	for i := 0; i < count; i++ {
		p, err := g.Powers(level)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, nil
}

func (g *Generator) basicPowers() model.PowersProblem {
	if g.rnd.Intn(2) == 0 {
		return singlePowers(g.Intn(1, 9), g.Intn(-3, 6))
	}
	a, b := g.Intn(1, 9), g.Intn(1, 9)
	m, n := g.Intn(1, 4), g.Intn(1, 4)
	p := scientificProblem(float64(a*b), m+n)
	p.Template = model.TemplateMultiplyTwo
	p.Expression = fmt.Sprintf("(%s) × (%s)", Term(a, m), Term(b, n))
	p.Horizontal = true
	return p
}

// singlePowers is "c × 10ⁿ" answered in positional notation.
func singlePowers(coef, exp int) model.PowersProblem {
	return model.PowersProblem{
		Template:    model.TemplateSingle,
		Expression:  Term(coef, exp),
		Answer:      FormatStandard(coef, exp),
		Scientific:  Term(coef, exp),
		Coefficient: float64(coef),
		Exponent:    exp,
		Horizontal:  true,
	}
}

func (g *Generator) intermediatePowers() model.PowersProblem {
	a, b := g.Intn(2, 9), g.Intn(2, 9)
	m, n := g.Intn(-3, 5), g.Intn(-3, 5)
	if g.rnd.Intn(2) == 0 {
		p := scientificProblem(float64(a*b), m+n)
		p.Template = model.TemplateMultiply
		p.Expression = fmt.Sprintf("(%s) × (%s)", Term(a, m), Term(b, n))
		p.Horizontal = true
		return p
	}

	a, b = g.cleanDivision()
	p := scientificProblem(float64(a)/float64(b), m-n)
	p.Template = model.TemplateDivide
	p.Expression = fmt.Sprintf("(%s) ÷ (%s)", Term(a, m), Term(b, n))
	p.HasDivision = true
	return p
}

// cleanDivision picks a single-digit dividend and a divisor that divides it.
func (g *Generator) cleanDivision() (int, int) {
	quotient := g.Intn(2, 9)
	b := g.Intn(2, 9)
	a := quotient * b
	if a <= 9 {
		return a, b
	}
	a = g.Intn(2, 9)
	return a, choice(g.rnd, divisors(a, 1, 9))
}

func (g *Generator) advancedPowers() model.PowersProblem {
	switch g.rnd.Intn(3) {
	case 0:
		a, b := g.Intn(2, 9), g.Intn(2, 8)
		m, n := g.Intn(2, 6), g.Intn(-3, 3)
		c := 1
		if ds := divisors(a*b, 2, 19); len(ds) > 0 {
			c = choice(g.rnd, ds)
		}
		p := scientificProblem(float64(a*b)/float64(c), m+n)
		p.Template = model.TemplateFraction
		p.Expression = fmt.Sprintf("(%s × %s) ÷ %d", Term(a, m), Term(b, n), c)
		p.HasDivision = true
		return p
	case 1:
		a, b := g.Intn(2, 9), g.Intn(2, 9)
		m, n, q := g.Intn(2, 5), g.Intn(-2, 3), g.Intn(-2, 4)
		c := g.divisorOr(a*b, 2, 9, 2, 5)
		p := scientificProblem(float64(a*b)/float64(c), m+n-q)
		p.Template = model.TemplateMultiTerm
		p.Expression = fmt.Sprintf("(%s) × (%s) ÷ (%s)", Term(a, m), Term(b, n), Term(c, q))
		p.HasDivision = true
		return p
	default:
		a, b := g.Intn(2, 9), g.Intn(2, 9)
		m, n := g.Intn(3, 6), g.Intn(-2, 3)
		c := g.divisorOr(a*b, 2, 11, 2, 6)
		q := g.Intn(1, 4)
		p := scientificProblem(float64(a*b)/float64(c), m+n-q)
		p.Template = model.TemplateComplexFraction
		p.Numerator = fmt.Sprintf("%s × %s", Term(a, m), Term(b, n))
		p.Denominator = Term(c, q)
		p.Expression = fmt.Sprintf("(%s) ÷ (%s)", p.Numerator, p.Denominator)
		p.HasDivision = true
		p.Fraction = true
		return p
	}
}

// divisorOr picks a divisor of n in [lo, hi], or a random value in
// [fallbackLo, fallbackHi] when none exists.
func (g *Generator) divisorOr(n, lo, hi, fallbackLo, fallbackHi int) int {
	if ds := divisors(n, lo, hi); len(ds) > 0 {
		return choice(g.rnd, ds)
	}
	return g.Intn(fallbackLo, fallbackHi)
}

// scientificProblem normalizes the raw value and fills the answer fields.
func scientificProblem(coef float64, exp int) model.PowersProblem {
	coef, exp = Normalize(coef, exp)
	answer := FormatScientific(coef, exp)
	return model.PowersProblem{
		Answer:      answer,
		Scientific:  answer,
		Coefficient: coef,
		Exponent:    exp,
	}
}

func divisors(n, lo, hi int) []int {
	var out []int
	for d := lo; d <= hi; d++ {
		if d != 0 && n%d == 0 {
			out = append(out, d)
		}
	}
	return out
}
