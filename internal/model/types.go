// Package model defines shared data structures.
package model

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

var (
	// ErrUnknownOperator is returned for operator tokens outside + - × ÷ and their aliases.
	ErrUnknownOperator = errors.New("unknown operation")
	// ErrUnknownLevel is returned for powers levels outside basic/intermediate/advanced.
	ErrUnknownLevel = errors.New("unknown level")
)

// Operator is an arithmetic operation sign as printed on a worksheet.
type Operator string

// Supported operators.
const (
	OpAdd Operator = "+"
	OpSub Operator = "-"
	OpMul Operator = "×"
	OpDiv Operator = "÷"
)

// Operators lists the operators in worksheet order.
var Operators = []Operator{OpAdd, OpSub, OpMul, OpDiv}

// ParseOperator maps a user token to an Operator.
func ParseOperator(token string) (Operator, error) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "+", "add", "addition", "plus":
		return OpAdd, nil
	case "-", "sub", "subtraction", "minus":
		return OpSub, nil
	case "×", "*", "x", "mul", "multiplication", "times":
		return OpMul, nil
	case "÷", "/", "div", "division":
		return OpDiv, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownOperator, token)
	}
}

// Name returns the lowercase English name of the operation.
func (o Operator) Name() string {
	switch o {
	case OpAdd:
		return "addition"
	case OpSub:
		return "subtraction"
	case OpMul:
		return "multiplication"
	case OpDiv:
		return "division"
	default:
		return "arithmetic"
	}
}

// Apply evaluates top o bottom. Division truncates.
func (o Operator) Apply(top, bottom int) int {
	switch o {
	case OpAdd:
		return top + bottom
	case OpSub:
		return top - bottom
	case OpMul:
		return top * bottom
	case OpDiv:
		if bottom == 0 {
			return 0
		}
		return top / bottom
	default:
		return 0
	}
}

// ArithmeticProblem is a vertical two-operand problem.
type ArithmeticProblem struct {
	Top      int
	Bottom   int
	Operator Operator
	Answer   int
}

// String renders the problem on one line, e.g. "28 ÷ 4".
func (p ArithmeticProblem) String() string {
	return fmt.Sprintf("%d %s %d", p.Top, p.Operator, p.Bottom)
}

// Level selects the difficulty tier of powers-of-ten problems.
type Level string

// Supported levels.
const (
	LevelBasic        Level = "basic"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// ParseLevel maps a user token to a Level.
func ParseLevel(token string) (Level, error) {
	switch Level(strings.ToLower(strings.TrimSpace(token))) {
	case LevelBasic:
		return LevelBasic, nil
	case LevelIntermediate:
		return LevelIntermediate, nil
	case LevelAdvanced:
		return LevelAdvanced, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownLevel, token)
	}
}

// PowersTemplate names the expression shape a powers problem was built from.
type PowersTemplate string

// Powers templates per level.
const (
	TemplateSingle          PowersTemplate = "single"
	TemplateMultiplyTwo     PowersTemplate = "multiply-two"
	TemplateMultiply        PowersTemplate = "multiply"
	TemplateDivide          PowersTemplate = "divide"
	TemplateFraction        PowersTemplate = "fraction"
	TemplateMultiTerm       PowersTemplate = "multi-term"
	TemplateComplexFraction PowersTemplate = "complex-fraction"
)

// PowersProblem is a powers-of-ten / scientific notation problem.
//
// Expression holds the horizontal text. When Fraction is set the problem is
// drawn as Numerator over Denominator and Expression joins them with " ÷ ".
// Coefficient and Exponent hold the normalized value of the expression.
type PowersProblem struct {
	Template    PowersTemplate
	Expression  string
	Numerator   string
	Denominator string
	Answer      string
	Scientific  string
	Coefficient float64
	Exponent    int
	Horizontal  bool
	Fraction    bool
	HasDivision bool
}

// Value returns Coefficient × 10^Exponent.
func (p PowersProblem) Value() float64 {
	return p.Coefficient * math.Pow10(p.Exponent)
}

// SheetKind distinguishes worksheet layouts.
type SheetKind string

// Worksheet kinds.
const (
	KindArithmetic SheetKind = "arith"
	KindPowers     SheetKind = "powers"
)

// Worksheet is everything the renderer needs to produce one document.
type Worksheet struct {
	Kind        SheetKind
	Title       string
	Subtitle    string
	School      string
	Number      int
	Date        time.Time
	ShowAnswers bool
	Arithmetic  []ArithmeticProblem
	Powers      []PowersProblem
}

// Len returns the number of problems on the worksheet.
func (w Worksheet) Len() int {
	if w.Kind == KindPowers {
		return len(w.Powers)
	}
	return len(w.Arithmetic)
}

// WorksheetRecord is a generated worksheet as kept in history.
type WorksheetRecord struct {
	ID        int64
	CreatedAt time.Time
	Kind      SheetKind
	Title     string
	Variant   string
	Problems  int
	Pages     int
	AnswerKey bool
	Seed      int64
	Number    int
	Path      string
}

// DrillSession captures a completed terminal drill.
type DrillSession struct {
	StartedAt  time.Time
	EndedAt    time.Time
	Kind       SheetKind
	Variant    string
	Correct    int
	Incorrect  int
	DurationMs int64
}

// DrillAggregate summarizes a drill session for reporting.
type DrillAggregate struct {
	SessionID  int64
	EndedAt    time.Time
	Kind       SheetKind
	Variant    string
	Correct    int
	Incorrect  int
	DurationMs int64
}

// HistoryFilter limits history queries.
type HistoryFilter struct {
	Kind  SheetKind
	Since *time.Time
	Last  int
}
