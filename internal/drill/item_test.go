package drill

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/mathsheet/internal/generator"
	"github.com/verte-zerg/mathsheet/internal/model"
)

func TestArithmeticItemCheck(t *testing.T) {
	it := ArithmeticItem(model.ArithmeticProblem{Top: 28, Bottom: 4, Operator: model.OpDiv, Answer: 7})
	assert.Equal(t, "28 ÷ 4 =", it.Prompt)
	assert.True(t, it.Check("7"))
	assert.True(t, it.Check(" 7 "))
	assert.False(t, it.Check("8"))
	assert.False(t, it.Check(""))
	assert.False(t, it.Check("seven"))

	neg := ArithmeticItem(model.ArithmeticProblem{Top: 3, Bottom: 5, Operator: model.OpSub, Answer: -2})
	assert.True(t, neg.Check("-2"))
	assert.True(t, neg.Check("−2"))
}

func TestPowersItemAcceptsAnyNotation(t *testing.T) {
	p := model.PowersProblem{Expression: "(2 × 10³) × (9 × 10⁻⁴)", Answer: "1.8 × 10⁰", Coefficient: 1.8, Exponent: 0}
	it := PowersItem(p)
	for _, input := range []string{"1.8 × 10⁰", "1.8", "1.8x10^0", "18e-1", "0.18*10^1"} {
		assert.True(t, it.Check(input), input)
	}
	assert.False(t, it.Check("1.9"))
	assert.False(t, it.Check("abc"))
}

func TestGeneratedPowersAnswersCheck(t *testing.T) {
	gen := generator.NewWithSeed(11)
	for _, level := range []model.Level{model.LevelBasic, model.LevelIntermediate, model.LevelAdvanced} {
		items, err := BuildItems(gen, Options{Kind: model.KindPowers, Level: level, Count: 50})
		require.NoError(t, err)
		require.Len(t, items, 50)
		for _, it := range items {
			assert.True(t, it.Check(it.Answer), "%s %s", it.Prompt, it.Answer)
		}
	}
}

func TestBuildItemsArithmetic(t *testing.T) {
	gen := generator.NewWithSeed(3)
	items, err := BuildItems(gen, Options{Kind: model.KindArithmetic, Op: "mul", Min: 1, Max: 12, Count: 20})
	require.NoError(t, err)
	require.Len(t, items, 20)
	for _, it := range items {
		assert.Contains(t, it.Prompt, "×")
		assert.True(t, it.Check(it.Answer))
	}

	_, err = BuildItems(gen, Options{Kind: model.KindArithmetic, Op: "pow", Count: 1})
	require.ErrorIs(t, err, model.ErrUnknownOperator)
}

func TestOptionsVariant(t *testing.T) {
	assert.Equal(t, "advanced", Options{Kind: model.KindPowers, Level: model.LevelAdvanced}.Variant())
	assert.Equal(t, "mixed", Options{Kind: model.KindArithmetic, Mixed: true, Op: "+"}.Variant())
	assert.Equal(t, "+", Options{Kind: model.KindArithmetic, Op: "+"}.Variant())
}
