package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/verte-zerg/mathsheet/internal/config"
	"github.com/verte-zerg/mathsheet/internal/model"
	"github.com/verte-zerg/mathsheet/internal/store"
)

func setupHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	return dir
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestArithCommandWritesPDFAndHistory(t *testing.T) {
	dir := setupHome(t)
	path := filepath.Join(dir, "div.pdf")

	out, err := runCLI(t, "arith", "--op", "div", "--min", "2", "--max", "12", "--count", "31", "--answers", "--seed", "7", "-o", path)
	if err != nil {
		t.Fatalf("arith: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Worksheet saved to: "+path) {
		t.Fatalf("unexpected output: %q", out)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read pdf: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("output is not a pdf")
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer func() { _ = st.Close() }()
	sheets, err := st.ListWorksheets(context.Background(), model.HistoryFilter{})
	if err != nil {
		t.Fatalf("list worksheets: %v", err)
	}
	if len(sheets) != 1 {
		t.Fatalf("expected 1 worksheet, got %d", len(sheets))
	}
	got := sheets[0]
	if got.Title != "Division Practice" || got.Variant != "÷" || got.Problems != 31 || got.Pages != 4 || !got.AnswerKey || got.Seed != 7 {
		t.Fatalf("unexpected record: %+v", got)
	}
	if got.Number < 1000 || got.Number > 9999 {
		t.Fatalf("worksheet number out of range: %d", got.Number)
	}
}

func TestPowersCommandDefaultPath(t *testing.T) {
	dir := setupHome(t)
	outDir := filepath.Join(dir, "sheets")
	cfgPath := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(cfgPath), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	cfg := "[sheet]\nout-dir = \"" + filepath.ToSlash(outDir) + "\"\nhistory = false\n\n[powers]\nlevel = \"advanced\"\ncount = 12\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if out, err := runCLI(t, "powers"); err != nil {
		t.Fatalf("powers: %v\n%s", err, out)
	}
	if _, err := os.Stat(filepath.Join(outDir, "powers_of_ten_advanced.pdf")); err != nil {
		t.Fatalf("expected worksheet in out-dir: %v", err)
	}
	if _, err := os.Stat(config.DefaultDBPath()); !os.IsNotExist(err) {
		t.Fatalf("history disabled but db exists: %v", err)
	}
}

func TestCommandValidation(t *testing.T) {
	setupHome(t)
	cases := [][]string{
		{"arith", "--count", "0"},
		{"arith", "--min", "10", "--max", "1"},
		{"arith", "--op", "pow"},
		{"powers", "--level", "expert"},
		{"history", "--kind", "words"},
		{"history", "--since", "yesterday"},
	}
	for _, args := range cases {
		if _, err := runCLI(t, args...); err == nil {
			t.Fatalf("expected error for %v", args)
		}
	}
}

func TestHistoryCommandEmpty(t *testing.T) {
	setupHome(t)
	out, err := runCLI(t, "history")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if !strings.Contains(out, "No worksheets found.") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestArithmeticTitle(t *testing.T) {
	cases := map[string]string{
		"+":     "Addition Practice",
		"-":     "Subtraction Practice",
		"×":     "Multiplication Practice",
		"÷":     "Division Practice",
		"mixed": "Mixed Operations Practice",
	}
	for variant, want := range cases {
		if got := arithmeticTitle(variant); got != want {
			t.Fatalf("arithmeticTitle(%q) = %q, want %q", variant, got, want)
		}
	}
	if got := fileNameFor("Mixed Operations Practice"); got != "mixed_operations_practice.pdf" {
		t.Fatalf("unexpected file name %q", got)
	}
}

func TestDrillOptions(t *testing.T) {
	drillKind, drillOp, drillMixed, drillCount, drillMin, drillMax = "arith", "mul", false, 5, 1, 12
	opts, err := drillOptions()
	if err != nil {
		t.Fatalf("drillOptions: %v", err)
	}
	if opts.Kind != model.KindArithmetic || opts.Op != "×" || opts.Count != 5 {
		t.Fatalf("unexpected options: %+v", opts)
	}

	drillKind, drillLevel = "powers", "basic"
	opts, err = drillOptions()
	if err != nil {
		t.Fatalf("drillOptions: %v", err)
	}
	if opts.Kind != model.KindPowers || opts.Level != model.LevelBasic {
		t.Fatalf("unexpected options: %+v", opts)
	}

	drillKind = "words"
	if _, err := drillOptions(); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}

func TestEnsureConfigFileIsLoadable(t *testing.T) {
	setupHome(t)
	path := config.DefaultConfigPath()
	if err := ensureConfigFile(path); err != nil {
		t.Fatalf("ensureConfigFile: %v", err)
	}
	if _, err := config.LoadConfig(path); err != nil {
		t.Fatalf("template should load: %v", err)
	}
}
