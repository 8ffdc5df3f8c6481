package stats

import (
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/verte-zerg/mathsheet/internal/model"
	"github.com/verte-zerg/mathsheet/internal/store"
)

const terminalWidthBackup = 100

// Report contains precomputed history data for rendering.
type Report struct {
	Worksheets []model.WorksheetRecord
	Drills     []model.DrillAggregate
}

// BuildReport loads worksheet and drill history for the filter.
func BuildReport(ctx context.Context, st *store.Store, filter model.HistoryFilter) (Report, error) {
	sheets, err := st.ListWorksheets(ctx, filter)
	if err != nil {
		return Report{}, err
	}
	drills, err := st.ListDrillSessions(ctx, filter)
	if err != nil {
		return Report{}, err
	}
	return Report{Worksheets: sheets, Drills: drills}, nil
}

// RenderReport prints the worksheet table followed by the drill summary.
// Lines are clipped to width display cells when width > 0.
func RenderReport(w io.Writer, report Report, window, width int) error {
	if err := RenderWorksheets(w, report.Worksheets, width); err != nil {
		return err
	}
	return RenderDrillSummary(w, report.Drills, window)
}

// RenderWorksheets prints one row per generated worksheet.
func RenderWorksheets(w io.Writer, sheets []model.WorksheetRecord, width int) error {
	if len(sheets) == 0 {
		_, err := fmt.Fprintln(w, "No worksheets found.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Worksheets"); err != nil {
		return err
	}
	for _, line := range worksheetTable(worksheetColumns, sheets, width) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// TerminalWidth returns the width of stdout, or a fallback when it is not a terminal.
func TerminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}
