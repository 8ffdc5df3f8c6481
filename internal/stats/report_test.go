package stats

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/mathsheet/internal/model"
	"github.com/verte-zerg/mathsheet/internal/store"
)

func TestBuildReport(t *testing.T) {
	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, "mathsheet.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		created := time.Unix(0, 0).Add(time.Duration(i) * time.Minute)
		rec := model.WorksheetRecord{
			CreatedAt: created,
			Kind:      model.KindArithmetic,
			Title:     "Addition Practice",
			Variant:   "+",
			Problems:  30,
			Pages:     2,
			AnswerKey: true,
			Seed:      int64(i),
			Number:    1000 + i,
			Path:      filepath.Join(dir, "addition.pdf"),
		}
		if _, err := st.InsertWorksheet(ctx, rec); err != nil {
			t.Fatalf("insert worksheet: %v", err)
		}
		drill := model.DrillSession{
			StartedAt:  created,
			EndedAt:    created.Add(time.Minute),
			Kind:       model.KindArithmetic,
			Variant:    "+",
			Correct:    9,
			Incorrect:  1,
			DurationMs: 60000,
		}
		if _, err := st.InsertDrillSession(ctx, drill); err != nil {
			t.Fatalf("insert drill: %v", err)
		}
	}

	report, err := BuildReport(ctx, st, model.HistoryFilter{Last: 2})
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if len(report.Worksheets) != 2 {
		t.Fatalf("expected 2 worksheets, got %d", len(report.Worksheets))
	}
	if report.Worksheets[1].Number != 1002 {
		t.Fatalf("expected newest worksheet last, got %+v", report.Worksheets)
	}
	if len(report.Drills) != 2 {
		t.Fatalf("expected 2 drills, got %d", len(report.Drills))
	}

	var buf bytes.Buffer
	if err := RenderReport(&buf, report, 5, 0); err != nil {
		t.Fatalf("render report: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Worksheets", "1002", "addition.pdf", "Drills: 2", "Accuracy: 90.00%", "Problems/min: 10.00"} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q:\n%s", want, out)
		}
	}
}

func TestRenderEmptyReport(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderReport(&buf, Report{}, 5, 80); err != nil {
		t.Fatalf("render report: %v", err)
	}
	if !strings.Contains(buf.String(), "No worksheets found.") || !strings.Contains(buf.String(), "No drills found.") {
		t.Fatalf("unexpected empty output: %q", buf.String())
	}
}

func TestDrillMetrics(t *testing.T) {
	perMin, acc := DrillMetrics(18, 2, 120000)
	if perMin != 10 {
		t.Fatalf("expected 10 problems/min, got %v", perMin)
	}
	if acc != 0.9 {
		t.Fatalf("expected accuracy 0.9, got %v", acc)
	}
	perMin, acc = DrillMetrics(0, 0, 0)
	if perMin != 0 || acc != 0 {
		t.Fatalf("expected zero metrics, got %v %v", perMin, acc)
	}
}

func TestMovingAverageAndSparkline(t *testing.T) {
	avg := MovingAverage([]float64{10, 20, 30, 40}, 2)
	want := []float64{10, 15, 25, 35}
	for i := range want {
		if avg[i] != want[i] {
			t.Fatalf("unexpected moving average: %v", avg)
		}
	}
	if got := Sparkline([]float64{0, 100}); got != " @" {
		t.Fatalf("unexpected sparkline: %q", got)
	}
	if got := Sparkline([]float64{5, 5, 5}); got != "+++" {
		t.Fatalf("unexpected flat sparkline: %q", got)
	}
}
