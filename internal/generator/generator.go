// Package generator builds randomized practice problems.
package generator

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/verte-zerg/mathsheet/internal/model"
)

// maxFactor caps the operands of multiplication and division facts.
const maxFactor = 12

// ErrInvalidRange is returned when min is greater than max.
var ErrInvalidRange = errors.New("invalid operand range")

// Generator produces randomized worksheet problems.
type Generator struct {
	rnd  *rand.Rand
	seed int64
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewWithSeed(time.Now().UnixNano())
}

// NewWithSeed returns a Generator whose output is reproducible for seed.
func NewWithSeed(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed)), seed: seed}
}

// Seed returns the seed the generator was created with.
func (g *Generator) Seed() int64 {
	return g.seed
}

// Intn returns a uniform integer in [lo, hi].
func (g *Generator) Intn(lo, hi int) int {
	return between(g.rnd, lo, hi)
}

// Problem generates one arithmetic problem for the operator token.
//
// Division picks the divisor and quotient first so the dividend always
// divides evenly. Without allowNegative the subtrahend never exceeds the
// minuend.
func (g *Generator) Problem(token string, minVal, maxVal int, allowNegative bool) (model.ArithmeticProblem, error) {
	op, err := model.ParseOperator(token)
	if err != nil {
		return model.ArithmeticProblem{}, err
	}
	return g.problem(op, minVal, maxVal, allowNegative)
}

// Problems generates count problems for a single operator.
func (g *Generator) Problems(count int, token string, minVal, maxVal int, allowNegative bool) ([]model.ArithmeticProblem, error) {
	op, err := model.ParseOperator(token)
	if err != nil {
		return nil, err
	}
	result := make([]model.ArithmeticProblem, 0, count)
	for i := 0; i < count; i++ {
		p, err := g.problem(op, minVal, maxVal, allowNegative)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, nil
}

// MixedProblems generates count problems with operators chosen uniformly.
func (g *Generator) MixedProblems(count, minVal, maxVal int, allowNegative bool) ([]model.ArithmeticProblem, error) {
	result := make([]model.ArithmeticProblem, 0, count)
	for i := 0; i < count; i++ {
		op := model.Operators[g.rnd.Intn(len(model.Operators))]
		p, err := g.problem(op, minVal, maxVal, allowNegative)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, nil
}

func (g *Generator) problem(op model.Operator, minVal, maxVal int, allowNegative bool) (model.ArithmeticProblem, error) {
	if minVal > maxVal {
		return model.ArithmeticProblem{}, fmt.Errorf("%w: min %d > max %d", ErrInvalidRange, minVal, maxVal)
	}
	var top, bottom, answer int
	switch op {
	case model.OpAdd:
		top = between(g.rnd, minVal, maxVal)
		bottom = between(g.rnd, minVal, maxVal)
		answer = top + bottom
	case model.OpSub:
		top = between(g.rnd, minVal, maxVal)
		if allowNegative {
			bottom = between(g.rnd, minVal, maxVal)
		} else {
			bottom = between(g.rnd, minVal, top)
		}
		answer = top - bottom
	case model.OpMul:
		hi := factorCeil(minVal, maxVal)
		top = between(g.rnd, minVal, hi)
		bottom = between(g.rnd, minVal, hi)
		answer = top * bottom
	case model.OpDiv:
		hi := factorCeil(minVal, maxVal)
		bottom = between(g.rnd, max(1, minVal), max(1, hi))
		answer = between(g.rnd, minVal, hi)
		return divisionProblem(bottom, answer), nil
	default:
		return model.ArithmeticProblem{}, fmt.Errorf("%w: %q", model.ErrUnknownOperator, string(op))
	}
	return model.ArithmeticProblem{Top: top, Bottom: bottom, Operator: op, Answer: answer}, nil
}

// divisionProblem derives the dividend from a divisor and quotient.
func divisionProblem(divisor, quotient int) model.ArithmeticProblem {
	return model.ArithmeticProblem{Top: divisor * quotient, Bottom: divisor, Operator: model.OpDiv, Answer: quotient}
}

// factorCeil clamps max to maxFactor without dropping below min.
func factorCeil(minVal, maxVal int) int {
	hi := min(maxVal, maxFactor)
	if hi < minVal {
		return minVal
	}
	return hi
}

func between(rnd *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rnd.Intn(hi-lo+1)
}

func choice(rnd *rand.Rand, values []int) int {
	return values[rnd.Intn(len(values))]
}
