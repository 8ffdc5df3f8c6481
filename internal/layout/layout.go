// Package layout computes grid placement and pagination for worksheet pages.
package layout

// Points per inch.
const Inch = 72.0

// US Letter in points.
const (
	LetterWidth  = 8.5 * Inch
	LetterHeight = 11 * Inch
)

// Grid is a fixed rows × columns arrangement of problems on a page.
type Grid struct {
	Rows int
	Cols int
}

// Default grids per worksheet kind.
var (
	ArithmeticGrid = Grid{Rows: 6, Cols: 5}
	PowersGrid     = Grid{Rows: 5, Cols: 2}
)

// Capacity returns the number of problems that fit on one page.
func (g Grid) Capacity() int {
	if g.Rows <= 0 || g.Cols <= 0 {
		return 0
	}
	return g.Rows * g.Cols
}

// PageCount returns the pages needed for n problems in one pass.
func (g Grid) PageCount(n int) int {
	capacity := g.Capacity()
	if n <= 0 || capacity == 0 {
		return 0
	}
	return (n + capacity - 1) / capacity
}

// Placement locates one problem on the grid.
type Placement struct {
	Index int
	Page  int
	Row   int
	Col   int
}

// Place assigns n problems to pages in row-major order. Pages are 0-based.
func (g Grid) Place(n int) []Placement {
	capacity := g.Capacity()
	if n <= 0 || capacity == 0 {
		return nil
	}
	out := make([]Placement, n)
	for i := 0; i < n; i++ {
		slot := i % capacity
		out[i] = Placement{
			Index: i,
			Page:  i / capacity,
			Row:   slot / g.Cols,
			Col:   slot % g.Cols,
		}
	}
	return out
}

// Pages groups placements by page.
func (g Grid) Pages(n int) [][]Placement {
	placements := g.Place(n)
	if len(placements) == 0 {
		return nil
	}
	pages := make([][]Placement, g.PageCount(n))
	for _, p := range placements {
		pages[p.Page] = append(pages[p.Page], p)
	}
	return pages
}

// Rect is an axis-aligned box in points with the origin at the top-left of the page.
type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

// Frame is the printable content area between header and footer.
type Frame struct {
	PageWidth  float64
	PageHeight float64
	Margin     float64
	// Top and Bottom are distances from the top and bottom page edges.
	Top    float64
	Bottom float64
}

// LetterFrame is the content area used for every worksheet.
var LetterFrame = Frame{
	PageWidth:  LetterWidth,
	PageHeight: LetterHeight,
	Margin:     0.75 * Inch,
	Top:        1.5 * Inch,
	Bottom:     1 * Inch,
}

// Content returns the content rectangle.
func (f Frame) Content() Rect {
	return Rect{
		X: f.Margin,
		Y: f.Top,
		W: f.PageWidth - 2*f.Margin,
		H: f.PageHeight - f.Top - f.Bottom,
	}
}

// Cell returns the rectangle for a placement on grid g.
func (f Frame) Cell(g Grid, p Placement) Rect {
	content := f.Content()
	cellW := content.W / float64(g.Cols)
	cellH := content.H / float64(g.Rows)
	return Rect{
		X: content.X + float64(p.Col)*cellW,
		Y: content.Y + float64(p.Row)*cellH,
		W: cellW,
		H: cellH,
	}
}
