package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/mathsheet/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "nested", "mathsheet.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestWorksheetHistory(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, time.January, 5, 9, 0, 0, 0, time.UTC)
	kinds := []model.SheetKind{model.KindArithmetic, model.KindPowers, model.KindArithmetic}
	for i, kind := range kinds {
		rec := model.WorksheetRecord{
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
			Kind:      kind,
			Title:     "Sheet",
			Variant:   "+",
			Problems:  30,
			Pages:     2,
			AnswerKey: i%2 == 0,
			Seed:      int64(100 + i),
			Number:    1000 + i,
			Path:      "/tmp/sheet.pdf",
		}
		if _, err := st.InsertWorksheet(ctx, rec); err != nil {
			t.Fatalf("insert worksheet: %v", err)
		}
	}

	all, err := st.ListWorksheets(ctx, model.HistoryFilter{})
	if err != nil {
		t.Fatalf("list worksheets: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 worksheets, got %d", len(all))
	}
	if !all[0].AnswerKey || all[1].AnswerKey {
		t.Fatalf("answer key flag not round-tripped: %+v", all)
	}
	if !all[2].CreatedAt.Equal(base.Add(2 * time.Hour)) {
		t.Fatalf("unexpected created_at: %v", all[2].CreatedAt)
	}

	arith, err := st.ListWorksheets(ctx, model.HistoryFilter{Kind: model.KindArithmetic, Last: 1})
	if err != nil {
		t.Fatalf("list arith worksheets: %v", err)
	}
	if len(arith) != 1 || arith[0].Seed != 102 {
		t.Fatalf("expected most recent arithmetic sheet, got %+v", arith)
	}

	since := base.Add(90 * time.Minute)
	recent, err := st.ListWorksheets(ctx, model.HistoryFilter{Since: &since})
	if err != nil {
		t.Fatalf("list recent worksheets: %v", err)
	}
	if len(recent) != 1 {
		t.Fatalf("expected 1 recent worksheet, got %d", len(recent))
	}
}

func TestWorksheetHistorySubsecondOrder(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, time.January, 5, 9, 0, 0, 0, time.UTC)
	for i, created := range []time.Time{base.Add(500 * time.Millisecond), base} {
		rec := model.WorksheetRecord{CreatedAt: created, Kind: model.KindArithmetic, Number: 2000 + i}
		if _, err := st.InsertWorksheet(ctx, rec); err != nil {
			t.Fatalf("insert worksheet: %v", err)
		}
	}

	all, err := st.ListWorksheets(ctx, model.HistoryFilter{})
	if err != nil {
		t.Fatalf("list worksheets: %v", err)
	}
	if len(all) != 2 || all[0].Number != 2001 || all[1].Number != 2000 {
		t.Fatalf("expected whole-second sheet first, got %+v", all)
	}

	since := base.Add(250 * time.Millisecond)
	recent, err := st.ListWorksheets(ctx, model.HistoryFilter{Since: &since})
	if err != nil {
		t.Fatalf("list recent worksheets: %v", err)
	}
	if len(recent) != 1 || recent[0].Number != 2000 {
		t.Fatalf("expected only the later sheet, got %+v", recent)
	}
}

func TestDrillSessions(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	var ids []int64
	for i := 0; i < 3; i++ {
		start := time.Unix(0, 0).Add(time.Duration(i) * time.Minute)
		end := start.Add(45 * time.Second)
		id, err := st.InsertDrillSession(ctx, model.DrillSession{
			StartedAt:  start,
			EndedAt:    end,
			Kind:       model.KindPowers,
			Variant:    "basic",
			Correct:    8,
			Incorrect:  2,
			DurationMs: end.Sub(start).Milliseconds(),
		})
		if err != nil {
			t.Fatalf("insert drill session: %v", err)
		}
		ids = append(ids, id)
	}

	sessions, err := st.ListDrillSessions(ctx, model.HistoryFilter{Last: 2})
	if err != nil {
		t.Fatalf("list drill sessions: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}
	if sessions[0].SessionID != ids[1] || sessions[1].SessionID != ids[2] {
		t.Fatalf("unexpected session ids: %+v", sessions)
	}
	if sessions[1].Kind != model.KindPowers || sessions[1].DurationMs != 45000 {
		t.Fatalf("unexpected session: %+v", sessions[1])
	}

	none, err := st.ListDrillSessions(ctx, model.HistoryFilter{Kind: model.KindArithmetic})
	if err != nil {
		t.Fatalf("list arithmetic drills: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected no arithmetic drills, got %d", len(none))
	}
}
