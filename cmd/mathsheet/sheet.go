package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/verte-zerg/mathsheet/internal/config"
	"github.com/verte-zerg/mathsheet/internal/generator"
	"github.com/verte-zerg/mathsheet/internal/model"
	"github.com/verte-zerg/mathsheet/internal/render"
	"github.com/verte-zerg/mathsheet/internal/store"
)

const powersSubtitle = "Express your answers in scientific notation where appropriate."

var powersTitles = map[model.Level]string{
	model.LevelBasic:        "Powers of Ten - Basic",
	model.LevelIntermediate: "Scientific Notation Practice",
	model.LevelAdvanced:     "Scientific Notation - Advanced",
}

// sheetFlags are the options every worksheet command shares.
type sheetFlags struct {
	answers  bool
	title    string
	subtitle string
	school   string
	seed     int64
	out      string
}

func (f *sheetFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.answers, "answers", false, "append an answer key")
	cmd.Flags().StringVar(&f.title, "title", "", "worksheet title (default depends on the problems)")
	cmd.Flags().StringVar(&f.subtitle, "subtitle", "", "line printed under the title")
	cmd.Flags().StringVar(&f.school, "school", "", "school name for the header")
	cmd.Flags().Int64Var(&f.seed, "seed", 0, "random seed for a reproducible worksheet")
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "output PDF path")
}

func (f *sheetFlags) apply(cmd *cobra.Command, fileCfg config.FileConfig) {
	applyBoolConfig(cmd, "answers", &f.answers, fileCfg.Sheet.Answers)
	applyStringConfig(cmd, "school", &f.school, fileCfg.Sheet.School)
}

// newGenerator returns a seeded generator when --seed was given.
func (f *sheetFlags) newGenerator(cmd *cobra.Command) *generator.Generator {
	if cmd.Flags().Changed("seed") {
		return generator.NewWithSeed(f.seed)
	}
	return generator.New()
}

// outputPath resolves --out, falling back to name inside the configured directory.
func (f *sheetFlags) outputPath(fileCfg config.FileConfig, name string) string {
	if f.out != "" {
		return f.out
	}
	dir := defaultOutDir
	if fileCfg.Sheet.OutDir != nil && *fileCfg.Sheet.OutDir != "" {
		dir = *fileCfg.Sheet.OutDir
	}
	return filepath.Join(dir, name)
}

var (
	arithOp            string
	arithMixed         bool
	arithMin           int
	arithMax           int
	arithCount         int
	arithAllowNegative bool
	arithSheet         sheetFlags

	powersLevel string
	powersCount int
	powersSheet sheetFlags
)

func newArithCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "arith",
		Short: "Generate an arithmetic worksheet",
		Args:  cobra.NoArgs,
		RunE:  runArithCmd,
	}
	cmd.Flags().StringVar(&arithOp, "op", defaultOp, "operation: + - × ÷ (or add, sub, mul, div)")
	cmd.Flags().BoolVar(&arithMixed, "mixed", false, "mix all four operations")
	cmd.Flags().IntVar(&arithMin, "min", defaultMin, "smallest operand")
	cmd.Flags().IntVar(&arithMax, "max", defaultMax, "largest operand")
	cmd.Flags().IntVar(&arithCount, "count", defaultArithCount, "number of problems")
	cmd.Flags().BoolVar(&arithAllowNegative, "allow-negative", false, "allow negative subtraction results")
	arithSheet.register(cmd)
	return cmd
}

func runArithCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "op", &arithOp, fileCfg.Arith.Op)
	applyBoolConfig(cmd, "mixed", &arithMixed, fileCfg.Arith.Mixed)
	applyIntConfig(cmd, "min", &arithMin, fileCfg.Arith.Min)
	applyIntConfig(cmd, "max", &arithMax, fileCfg.Arith.Max)
	applyIntConfig(cmd, "count", &arithCount, fileCfg.Arith.Count)
	applyBoolConfig(cmd, "allow-negative", &arithAllowNegative, fileCfg.Arith.AllowNegative)
	arithSheet.apply(cmd, fileCfg)

	if arithCount <= 0 {
		return fmt.Errorf("--count must be > 0")
	}
	if arithMin > arithMax {
		return fmt.Errorf("--min must be <= --max")
	}

	gen := arithSheet.newGenerator(cmd)
	var problems []model.ArithmeticProblem
	variant := "mixed"
	if arithMixed {
		problems, err = gen.MixedProblems(arithCount, arithMin, arithMax, arithAllowNegative)
	} else {
		op, perr := model.ParseOperator(arithOp)
		if perr != nil {
			return perr
		}
		variant = string(op)
		problems, err = gen.Problems(arithCount, arithOp, arithMin, arithMax, arithAllowNegative)
	}
	if err != nil {
		return fmt.Errorf("failed to generate problems: %w", err)
	}

	ws := model.Worksheet{
		Kind:        model.KindArithmetic,
		Title:       arithSheet.title,
		Subtitle:    arithSheet.subtitle,
		School:      arithSheet.school,
		Number:      gen.Intn(1000, 9999),
		Date:        time.Now(),
		ShowAnswers: arithSheet.answers,
		Arithmetic:  problems,
	}
	if ws.Title == "" {
		ws.Title = arithmeticTitle(variant)
	}
	if ws.Subtitle == "" {
		ws.Subtitle = fmt.Sprintf("Complete all %d problems. Show your work!", arithCount)
	}
	path := arithSheet.outputPath(fileCfg, fileNameFor(ws.Title))
	return writeWorksheet(cmd, fileCfg, ws, variant, gen.Seed(), path)
}

func newPowersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "powers",
		Short: "Generate a powers of ten worksheet",
		Args:  cobra.NoArgs,
		RunE:  runPowersCmd,
	}
	cmd.Flags().StringVar(&powersLevel, "level", defaultLevel, "difficulty: basic, intermediate, advanced")
	cmd.Flags().IntVar(&powersCount, "count", defaultPowersCount, "number of problems")
	powersSheet.register(cmd)
	return cmd
}

func runPowersCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "level", &powersLevel, fileCfg.Powers.Level)
	applyIntConfig(cmd, "count", &powersCount, fileCfg.Powers.Count)
	powersSheet.apply(cmd, fileCfg)

	if powersCount <= 0 {
		return fmt.Errorf("--count must be > 0")
	}
	level, err := model.ParseLevel(powersLevel)
	if err != nil {
		return err
	}

	gen := powersSheet.newGenerator(cmd)
	problems, err := gen.PowersProblems(powersCount, level)
	if err != nil {
		return fmt.Errorf("failed to generate problems: %w", err)
	}

	ws := model.Worksheet{
		Kind:        model.KindPowers,
		Title:       powersSheet.title,
		Subtitle:    powersSheet.subtitle,
		School:      powersSheet.school,
		Number:      gen.Intn(1000, 9999),
		Date:        time.Now(),
		ShowAnswers: powersSheet.answers,
		Powers:      problems,
	}
	if ws.Title == "" {
		ws.Title = powersTitles[level]
	}
	if ws.Subtitle == "" {
		ws.Subtitle = powersSubtitle
	}
	path := powersSheet.outputPath(fileCfg, fmt.Sprintf("powers_of_ten_%s.pdf", level))
	return writeWorksheet(cmd, fileCfg, ws, string(level), gen.Seed(), path)
}

// arithmeticTitle names the sheet after its operation, e.g. "Division Practice".
func arithmeticTitle(variant string) string {
	name := "mixed operations"
	if op, err := model.ParseOperator(variant); err == nil {
		name = op.Name()
	}
	return cases.Title(language.English).String(name) + " Practice"
}

// fileNameFor turns "Mixed Operations Practice" into "mixed_operations_practice.pdf".
func fileNameFor(title string) string {
	fields := strings.FieldsFunc(strings.ToLower(title), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
	if len(fields) == 0 {
		return "worksheet.pdf"
	}
	return strings.Join(fields, "_") + ".pdf"
}

func writeWorksheet(cmd *cobra.Command, fileCfg config.FileConfig, ws model.Worksheet, variant string, seed int64, path string) error {
	res, err := render.New(render.DefaultConfig()).WriteFile(path, ws)
	if err != nil {
		return fmt.Errorf("failed to render worksheet: %w", err)
	}
	logger.Debug("worksheet rendered",
		zap.String("path", path),
		zap.Int("problems", ws.Len()),
		zap.Int("pages", res.Pages),
		zap.Int64("seed", seed),
	)
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Worksheet saved to: %s\n", path); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if !historyEnabled(fileCfg) {
		return nil
	}
	recordWorksheet(model.WorksheetRecord{
		CreatedAt: ws.Date,
		Kind:      ws.Kind,
		Title:     ws.Title,
		Variant:   variant,
		Problems:  ws.Len(),
		Pages:     res.Pages,
		AnswerKey: ws.ShowAnswers,
		Seed:      seed,
		Number:    ws.Number,
		Path:      absPath(path),
	})
	return nil
}

// recordWorksheet stores rec in history. Failures are logged only.
func recordWorksheet(rec model.WorksheetRecord) {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		logger.Warn("failed to open history", zap.Error(err))
		return
	}
	defer closeStore(st)
	if _, err := st.InsertWorksheet(context.Background(), rec); err != nil {
		logger.Warn("failed to record worksheet", zap.Error(err))
	}
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
