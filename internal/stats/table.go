package stats

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/mathsheet/internal/model"
)

// column is one field of the worksheet history table.
type column struct {
	header string
	right  bool
	cell   func(model.WorksheetRecord) string
}

var worksheetColumns = []column{
	{header: "#", right: true, cell: func(s model.WorksheetRecord) string { return strconv.Itoa(s.Number) }},
	{header: "Created", cell: func(s model.WorksheetRecord) string { return s.CreatedAt.Local().Format("2006-01-02 15:04") }},
	{header: "Kind", cell: func(s model.WorksheetRecord) string { return string(s.Kind) }},
	{header: "Variant", cell: func(s model.WorksheetRecord) string { return s.Variant }},
	{header: "Problems", right: true, cell: func(s model.WorksheetRecord) string { return strconv.Itoa(s.Problems) }},
	{header: "Pages", right: true, cell: func(s model.WorksheetRecord) string { return strconv.Itoa(s.Pages) }},
	{header: "Key", cell: answerKeyCell},
	{header: "Seed", right: true, cell: func(s model.WorksheetRecord) string { return strconv.FormatInt(s.Seed, 10) }},
	{header: "File", cell: func(s model.WorksheetRecord) string { return filepath.Base(s.Path) }},
}

func answerKeyCell(s model.WorksheetRecord) string {
	if s.AnswerKey {
		return "yes"
	}
	return "no"
}

// worksheetTable lays out sheets under cols, one line per sheet after the
// header. Widths count display cells, so × and superscripts stay aligned.
// With width > 0 every line is cut to fit the terminal.
func worksheetTable(cols []column, sheets []model.WorksheetRecord, width int) []string {
	grid := make([][]string, 0, len(sheets)+1)
	header := make([]string, len(cols))
	for i, col := range cols {
		header[i] = col.header
	}
	grid = append(grid, header)
	for _, s := range sheets {
		row := make([]string, len(cols))
		for i, col := range cols {
			row[i] = col.cell(s)
		}
		grid = append(grid, row)
	}

	widths := make([]int, len(cols))
	for _, row := range grid {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	lines := make([]string, 0, len(grid))
	for _, row := range grid {
		cells := make([]string, len(row))
		for i, cell := range row {
			if cols[i].right {
				cells[i] = runewidth.FillLeft(cell, widths[i])
			} else {
				cells[i] = runewidth.FillRight(cell, widths[i])
			}
		}
		line := strings.TrimRight(strings.Join(cells, " "), " ")
		if width > 0 {
			line = runewidth.Truncate(line, width, "…")
		}
		lines = append(lines, line)
	}
	return lines
}
