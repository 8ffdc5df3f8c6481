// Package render draws worksheets as paginated PDF documents.
package render

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"codeberg.org/go-pdf/fpdf"

	"github.com/verte-zerg/mathsheet/internal/layout"
	"github.com/verte-zerg/mathsheet/internal/model"
)

// ErrEmptyWorksheet is returned when a worksheet has no problems.
var ErrEmptyWorksheet = errors.New("worksheet has no problems")

const (
	answerKeySuffix   = " - ANSWER KEY"
	answerKeySubtitle = "For teacher use only"
)

// Config controls page geometry and document options.
type Config struct {
	Frame          layout.Frame
	ArithmeticGrid layout.Grid
	PowersGrid     layout.Grid
	FontFamily     string
	Compress       bool
	Creator        string
}

// DefaultConfig returns the US Letter layout used for every worksheet.
func DefaultConfig() Config {
	return Config{
		Frame:          layout.LetterFrame,
		ArithmeticGrid: layout.ArithmeticGrid,
		PowersGrid:     layout.PowersGrid,
		FontFamily:     "Helvetica",
		Compress:       true,
		Creator:        "mathsheet",
	}
}

// Result describes a rendered document.
type Result struct {
	Pages      int
	SheetPages int
}

// Renderer turns worksheets into PDF documents.
type Renderer struct {
	cfg Config
}

// New returns a Renderer for cfg.
func New(cfg Config) *Renderer {
	return &Renderer{cfg: cfg}
}

// Grid returns the grid used for worksheets of kind.
func (r *Renderer) Grid(kind model.SheetKind) layout.Grid {
	if kind == model.KindPowers {
		return r.cfg.PowersGrid
	}
	return r.cfg.ArithmeticGrid
}

// PageCount returns the total pages for ws, answer key included.
func (r *Renderer) PageCount(ws model.Worksheet) int {
	pages := r.Grid(ws.Kind).PageCount(ws.Len())
	if ws.ShowAnswers {
		pages *= 2
	}
	return pages
}

// Render writes ws as PDF to w. The problem pages come first; with
// ShowAnswers a second pass repeats the layout with answers overlaid.
func (r *Renderer) Render(w io.Writer, ws model.Worksheet) (Result, error) {
	if ws.Len() == 0 {
		return Result{}, ErrEmptyWorksheet
	}
	grid := r.Grid(ws.Kind)
	if grid.Capacity() == 0 {
		return Result{}, fmt.Errorf("invalid grid %dx%d", grid.Rows, grid.Cols)
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: r.cfg.Frame.PageWidth, Ht: r.cfg.Frame.PageHeight},
	})
	pdf.SetMargins(r.cfg.Frame.Margin, r.cfg.Frame.Margin, r.cfg.Frame.Margin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCompression(r.cfg.Compress)
	pdf.SetTitle(ws.Title, true)
	pdf.SetAuthor(ws.School, true)
	pdf.SetSubject(ws.Subtitle, true)
	pdf.SetCreator(r.cfg.Creator, true)
	if !ws.Date.IsZero() {
		pdf.SetCreationDate(ws.Date)
	}

	c := newCanvas(pdf, r.cfg.FontFamily)
	sheetPages := grid.PageCount(ws.Len())
	total := r.PageCount(ws)

	r.drawPass(c, ws, grid, pass{
		title:    ws.Title,
		subtitle: ws.Subtitle,
		first:    1,
		total:    total,
	})
	if ws.ShowAnswers {
		r.drawPass(c, ws, grid, pass{
			title:      ws.Title + answerKeySuffix,
			subtitle:   answerKeySubtitle,
			first:      sheetPages + 1,
			total:      total,
			showAnswer: true,
		})
	}

	pages := pdf.PageCount()
	if err := pdf.Output(w); err != nil {
		return Result{}, fmt.Errorf("failed to write pdf: %w", err)
	}
	return Result{Pages: pages, SheetPages: sheetPages}, nil
}

// WriteFile renders ws to path, replacing any existing file only on success.
func (r *Renderer) WriteFile(path string, ws model.Worksheet) (Result, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Result{}, fmt.Errorf("failed to create output dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(dir, "worksheet-*.pdf")
	if err != nil {
		return Result{}, fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	res, err := r.Render(tmpFile, ws)
	if err != nil {
		return Result{}, err
	}
	if err := tmpFile.Close(); err != nil {
		return Result{}, fmt.Errorf("failed to close pdf: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return Result{}, fmt.Errorf("failed to write pdf: %w", err)
	}
	return res, nil
}

// pass is one full run over the problems: the plain sheet or the answer key.
type pass struct {
	title      string
	subtitle   string
	first      int
	total      int
	showAnswer bool
}

func (r *Renderer) drawPass(c *canvas, ws model.Worksheet, grid layout.Grid, p pass) {
	for i, placements := range grid.Pages(ws.Len()) {
		c.pdf.AddPage()
		r.drawHeader(c, ws, p.title, p.subtitle)
		r.drawFooter(c, ws, p.first+i, p.total)
		for _, pl := range placements {
			cell := r.cfg.Frame.Cell(grid, pl)
			switch ws.Kind {
			case model.KindPowers:
				drawPowersCell(c, pl.Index, ws.Powers[pl.Index], cell, p.showAnswer)
			default:
				drawArithmeticCell(c, pl.Index, ws.Arithmetic[pl.Index], cell, p.showAnswer)
			}
		}
	}
}
