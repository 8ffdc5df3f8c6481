package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/mathsheet/internal/model"
)

func TestDivisionAlwaysDividesEvenly(t *testing.T) {
	gen := NewWithSeed(1)
	for i := 0; i < 2000; i++ {
		p, err := gen.Problem("÷", 2, 12, false)
		require.NoError(t, err)
		require.Greater(t, p.Bottom, 0)
		require.Equal(t, p.Bottom*p.Answer, p.Top, "problem %s", p)
		assert.LessOrEqual(t, p.Bottom, 12)
		assert.LessOrEqual(t, p.Answer, 12)
	}
}

func TestDivisionDerivesDividend(t *testing.T) {
	p := divisionProblem(4, 7)
	assert.Equal(t, 28, p.Top)
	assert.Equal(t, 4, p.Bottom)
	assert.Equal(t, 7, p.Answer)
	assert.Equal(t, model.OpDiv, p.Operator)
	assert.Equal(t, 7, p.Top/p.Bottom)
}

func TestDivisionDivisorPositiveWithZeroMin(t *testing.T) {
	gen := NewWithSeed(7)
	for i := 0; i < 500; i++ {
		p, err := gen.Problem("/", 0, 5, false)
		require.NoError(t, err)
		require.Greater(t, p.Bottom, 0)
		require.Equal(t, p.Bottom*p.Answer, p.Top)
	}
}

func TestSubtractionWithoutNegatives(t *testing.T) {
	gen := NewWithSeed(2)
	for i := 0; i < 2000; i++ {
		p, err := gen.Problem("-", 1, 50, false)
		require.NoError(t, err)
		require.GreaterOrEqual(t, p.Top, p.Bottom, "problem %s", p)
		require.Equal(t, p.Top-p.Bottom, p.Answer)
		require.GreaterOrEqual(t, p.Answer, 0)
	}
}

func TestSubtractionAllowsNegatives(t *testing.T) {
	gen := NewWithSeed(3)
	sawNegative := false
	for i := 0; i < 500; i++ {
		p, err := gen.Problem("-", 1, 50, true)
		require.NoError(t, err)
		require.Equal(t, p.Top-p.Bottom, p.Answer)
		if p.Answer < 0 {
			sawNegative = true
		}
	}
	assert.True(t, sawNegative, "expected at least one negative result in 500 draws")
}

func TestMultiplicationCapsFactors(t *testing.T) {
	gen := NewWithSeed(4)
	for i := 0; i < 500; i++ {
		p, err := gen.Problem("*", 2, 99, false)
		require.NoError(t, err)
		assert.Equal(t, model.OpMul, p.Operator)
		assert.LessOrEqual(t, p.Top, 12)
		assert.LessOrEqual(t, p.Bottom, 12)
		assert.GreaterOrEqual(t, p.Top, 2)
		assert.Equal(t, p.Top*p.Bottom, p.Answer)
	}
}

func TestAdditionWithinRange(t *testing.T) {
	gen := NewWithSeed(5)
	for i := 0; i < 500; i++ {
		p, err := gen.Problem("+", 10, 20, false)
		require.NoError(t, err)
		assert.True(t, p.Top >= 10 && p.Top <= 20)
		assert.True(t, p.Bottom >= 10 && p.Bottom <= 20)
		assert.Equal(t, p.Top+p.Bottom, p.Answer)
	}
}

func TestUnknownOperator(t *testing.T) {
	gen := NewWithSeed(6)
	_, err := gen.Problem("%", 1, 10, false)
	require.ErrorIs(t, err, model.ErrUnknownOperator)
	assert.Contains(t, err.Error(), `"%"`)

	_, err = gen.Problems(3, "mod", 1, 10, false)
	require.ErrorIs(t, err, model.ErrUnknownOperator)
}

func TestInvalidRange(t *testing.T) {
	gen := NewWithSeed(6)
	_, err := gen.Problem("+", 10, 1, false)
	require.ErrorIs(t, err, ErrInvalidRange)
}

func TestMixedProblemsUseEveryOperator(t *testing.T) {
	gen := NewWithSeed(8)
	problems, err := gen.MixedProblems(200, 2, 20, false)
	require.NoError(t, err)
	require.Len(t, problems, 200)
	seen := map[model.Operator]bool{}
	for _, p := range problems {
		seen[p.Operator] = true
		assert.Equal(t, p.Operator.Apply(p.Top, p.Bottom), p.Answer, "problem %s", p)
		if p.Operator == model.OpSub {
			assert.GreaterOrEqual(t, p.Top, p.Bottom)
		}
	}
	assert.Len(t, seen, 4)
}

func TestSeedIsReproducible(t *testing.T) {
	a, err := NewWithSeed(42).Problems(20, "+", 1, 99, false)
	require.NoError(t, err)
	b, err := NewWithSeed(42).Problems(20, "+", 1, 99, false)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, int64(42), NewWithSeed(42).Seed())
}
