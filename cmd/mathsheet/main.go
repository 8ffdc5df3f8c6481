// Package main provides the CLI entrypoint for mathsheet.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/verte-zerg/mathsheet/internal/config"
	"github.com/verte-zerg/mathsheet/internal/drill"
	"github.com/verte-zerg/mathsheet/internal/generator"
	"github.com/verte-zerg/mathsheet/internal/logging"
	"github.com/verte-zerg/mathsheet/internal/model"
	"github.com/verte-zerg/mathsheet/internal/stats"
	"github.com/verte-zerg/mathsheet/internal/store"
)

const (
	defaultOp          = "+"
	defaultMin         = 1
	defaultMax         = 99
	defaultArithCount  = 30
	defaultLevel       = "intermediate"
	defaultPowersCount = 20
	defaultDrillKind   = "arith"
	defaultDrillCount  = 10
	defaultOutDir      = "."
	defaultCurveWindow = 5
)

var (
	verbose bool
	logger  = zap.NewNop()

	drillKind          string
	drillOp            string
	drillMixed         bool
	drillLevel         string
	drillCount         int
	drillMin           int
	drillMax           int
	drillAllowNegative bool

	historyKind        string
	historySince       string
	historyLast        int
	historyCurveWindow int
)

func main() {
	rootCmd := newRootCmd()
	err := rootCmd.Execute()
	_ = logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "mathsheet",
		Short:         "Printable math practice worksheets",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			l, err := logging.New(verbose)
			if err != nil {
				return fmt.Errorf("failed to init logger: %w", err)
			}
			logger = l
			return nil
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(newArithCmd())
	rootCmd.AddCommand(newPowersCmd())
	rootCmd.AddCommand(newDrillCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func newDrillCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drill",
		Short: "Practice problems interactively in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runDrillCmd,
	}
	cmd.Flags().StringVar(&drillKind, "kind", defaultDrillKind, "problem kind: arith or powers")
	cmd.Flags().StringVar(&drillOp, "op", defaultOp, "operation: + - × ÷ (or add, sub, mul, div)")
	cmd.Flags().BoolVar(&drillMixed, "mixed", false, "mix all four operations")
	cmd.Flags().StringVar(&drillLevel, "level", defaultLevel, "powers level: basic, intermediate, advanced")
	cmd.Flags().IntVar(&drillCount, "count", defaultDrillCount, "problems per drill")
	cmd.Flags().IntVar(&drillMin, "min", defaultMin, "smallest operand")
	cmd.Flags().IntVar(&drillMax, "max", defaultMax, "largest operand")
	cmd.Flags().BoolVar(&drillAllowNegative, "allow-negative", false, "allow negative subtraction results")
	return cmd
}

func runDrillCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "kind", &drillKind, fileCfg.Drill.Kind)
	applyIntConfig(cmd, "count", &drillCount, fileCfg.Drill.Count)
	applyStringConfig(cmd, "op", &drillOp, fileCfg.Arith.Op)
	applyBoolConfig(cmd, "mixed", &drillMixed, fileCfg.Arith.Mixed)
	applyIntConfig(cmd, "min", &drillMin, fileCfg.Arith.Min)
	applyIntConfig(cmd, "max", &drillMax, fileCfg.Arith.Max)
	applyBoolConfig(cmd, "allow-negative", &drillAllowNegative, fileCfg.Arith.AllowNegative)
	applyStringConfig(cmd, "level", &drillLevel, fileCfg.Powers.Level)

	opts, err := drillOptions()
	if err != nil {
		return err
	}

	var st *store.Store
	if historyEnabled(fileCfg) {
		st, err = store.Open(config.DefaultDBPath())
		if err != nil {
			logger.Warn("history disabled", zap.Error(err))
			st = nil
		} else {
			defer closeStore(st)
		}
	}

	m, err := drill.NewModel(opts, st, generator.New(), logger)
	if err != nil {
		return err
	}
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run drill: %w", err)
	}
	return m.Err()
}

func drillOptions() (drill.Options, error) {
	if drillCount <= 0 {
		return drill.Options{}, fmt.Errorf("--count must be > 0")
	}
	opts := drill.Options{Count: drillCount}
	switch strings.ToLower(strings.TrimSpace(drillKind)) {
	case string(model.KindArithmetic), "arithmetic":
		if drillMin > drillMax {
			return drill.Options{}, fmt.Errorf("--min must be <= --max")
		}
		op := model.Operators[0]
		if !drillMixed {
			parsed, err := model.ParseOperator(drillOp)
			if err != nil {
				return drill.Options{}, err
			}
			op = parsed
		}
		opts.Kind = model.KindArithmetic
		opts.Op = string(op)
		opts.Mixed = drillMixed
		opts.Min = drillMin
		opts.Max = drillMax
		opts.AllowNegative = drillAllowNegative
	case string(model.KindPowers):
		level, err := model.ParseLevel(drillLevel)
		if err != nil {
			return drill.Options{}, err
		}
		opts.Kind = model.KindPowers
		opts.Level = level
	default:
		return drill.Options{}, fmt.Errorf("--kind must be arith or powers")
	}
	return opts, nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show generated worksheets and drill results",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().StringVar(&historyKind, "kind", "", "filter by kind: arith or powers")
	cmd.Flags().StringVar(&historySince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&historyLast, "last", 0, "limit to last N entries")
	cmd.Flags().IntVar(&historyCurveWindow, "curve-window", defaultCurveWindow, "moving average window for the accuracy trend")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	filter, err := historyFilter()
	if err != nil {
		return err
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer closeStore(st)

	report, err := stats.BuildReport(context.Background(), st, filter)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}
	if err := stats.RenderReport(cmd.OutOrStdout(), report, historyCurveWindow, stats.TerminalWidth()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func historyFilter() (model.HistoryFilter, error) {
	if historyLast < 0 {
		return model.HistoryFilter{}, fmt.Errorf("--last must be >= 0")
	}
	if historyCurveWindow <= 0 {
		return model.HistoryFilter{}, fmt.Errorf("--curve-window must be > 0")
	}
	filter := model.HistoryFilter{Last: historyLast}
	switch strings.ToLower(strings.TrimSpace(historyKind)) {
	case "":
	case string(model.KindArithmetic):
		filter.Kind = model.KindArithmetic
	case string(model.KindPowers):
		filter.Kind = model.KindPowers
	default:
		return model.HistoryFilter{}, fmt.Errorf("--kind must be arith or powers")
	}
	if historySince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", historySince, time.Local)
		if err != nil {
			return model.HistoryFilter{}, fmt.Errorf("invalid --since value: %w", err)
		}
		filter.Since = &parsed
	}
	return filter, nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := ensureConfigFile(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// ensureConfigFile writes the commented template unless a config already exists.
func ensureConfigFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# mathsheet configuration
# Uncomment a value to enable it. CLI flags override config values.

[sheet]
# school = ""               # School name printed in the header
# answers = false           # Append an answer key to every worksheet
# out-dir = %q             # Directory for worksheets without --out
# history = true            # Record generated worksheets and drills

[arith]
# op = %q                  # + - × ÷ (or add, sub, mul, div)
# mixed = false             # Mix all four operations
# min = %d                   # Smallest operand
# max = %d                  # Largest operand
# count = %d                # Problems per worksheet
# allow-negative = false    # Allow negative subtraction results

[powers]
# level = %q     # basic, intermediate, advanced
# count = %d                # Problems per worksheet

[drill]
# kind = %q             # arith or powers
# count = %d                # Problems per drill
`,
		defaultOutDir,
		defaultOp,
		defaultMin,
		defaultMax,
		defaultArithCount,
		defaultLevel,
		defaultPowersCount,
		defaultDrillKind,
		defaultDrillCount,
	)
}

func historyEnabled(fileCfg config.FileConfig) bool {
	return fileCfg.Sheet.History == nil || *fileCfg.Sheet.History
}

func closeStore(st *store.Store) {
	if err := st.Close(); err != nil {
		logger.Warn("failed to close db", zap.Error(err))
	}
}
