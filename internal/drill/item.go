// Package drill provides the Bubble Tea practice interface.
package drill

import (
	"strconv"
	"strings"

	"github.com/verte-zerg/mathsheet/internal/generator"
	"github.com/verte-zerg/mathsheet/internal/model"
)

// Item is one drill prompt with its expected answer.
type Item struct {
	Prompt string
	Answer string
	value  float64
	exact  bool
}

// ArithmeticItem wraps an arithmetic problem; answers must match exactly.
func ArithmeticItem(p model.ArithmeticProblem) Item {
	return Item{
		Prompt: p.String() + " =",
		Answer: strconv.Itoa(p.Answer),
		value:  float64(p.Answer),
		exact:  true,
	}
}

// PowersItem wraps a powers problem; any notation with the same value is accepted.
func PowersItem(p model.PowersProblem) Item {
	return Item{
		Prompt: p.Expression + " =",
		Answer: p.Answer,
		value:  p.Value(),
	}
}

// Check reports whether input answers the item.
func (it Item) Check(input string) bool {
	input = strings.TrimSpace(input)
	if input == "" {
		return false
	}
	if it.exact {
		n, err := strconv.Atoi(strings.ReplaceAll(input, "−", "-"))
		return err == nil && float64(n) == it.value
	}
	v, err := generator.ParseScientific(input)
	if err != nil {
		return false
	}
	return generator.SameValue(v, it.value)
}

// Options selects what a drill generates.
type Options struct {
	Kind          model.SheetKind
	Op            string
	Mixed         bool
	Min           int
	Max           int
	AllowNegative bool
	Level         model.Level
	Count         int
}

// Variant names the operator or level for history.
func (o Options) Variant() string {
	if o.Kind == model.KindPowers {
		return string(o.Level)
	}
	if o.Mixed {
		return "mixed"
	}
	return o.Op
}

// BuildItems generates a fresh set of drill items.
func BuildItems(gen *generator.Generator, opts Options) ([]Item, error) {
	items := make([]Item, 0, opts.Count)
	if opts.Kind == model.KindPowers {
		problems, err := gen.PowersProblems(opts.Count, opts.Level)
		if err != nil {
			return nil, err
		}
		for _, p := range problems {
			items = append(items, PowersItem(p))
		}
		return items, nil
	}

	var problems []model.ArithmeticProblem
	var err error
	if opts.Mixed {
		problems, err = gen.MixedProblems(opts.Count, opts.Min, opts.Max, opts.AllowNegative)
	} else {
		problems, err = gen.Problems(opts.Count, opts.Op, opts.Min, opts.Max, opts.AllowNegative)
	}
	if err != nil {
		return nil, err
	}
	for _, p := range problems {
		items = append(items, ArithmeticItem(p))
	}
	return items, nil
}
