package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Cell is one grid position of a composed frame.
type Cell struct {
	Glyph rune
	Color string // hex foreground color
}

// Frame is a dense width×height grid of styled glyphs. Layers are composed
// by writing in back-to-front order; every write is bounds-checked so a
// resize race can never corrupt memory, only drop glyphs off-grid.
type Frame struct {
	Width      int
	Height     int
	Background string // hex background color, uniform for the whole frame
	cells      []Cell
}

// NewFrame returns a frame filled with spaces in the background color.
// Degenerate dimensions produce an empty frame that silently drops writes.
func NewFrame(width, height int, background string) *Frame {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	f := &Frame{Width: width, Height: height, Background: background}
	f.cells = make([]Cell, width*height)
	for i := range f.cells {
		f.cells[i] = Cell{Glyph: ' ', Color: background}
	}
	return f
}

// Set writes one glyph. Out-of-range positions are ignored.
func (f *Frame) Set(row, col int, glyph rune, color string) {
	if row < 0 || row >= f.Height || col < 0 || col >= f.Width {
		return
	}
	f.cells[row*f.Width+col] = Cell{Glyph: glyph, Color: color}
}

// SetText writes a horizontal string starting at (row, col), advancing by
// each rune's terminal width so wide glyphs don't shift the tail.
func (f *Frame) SetText(row, col int, text, color string) {
	for _, r := range text {
		f.Set(row, col, r, color)
		col += runewidth.RuneWidth(r)
	}
}

// At returns the cell at (row, col); ok is false out of range.
func (f *Frame) At(row, col int) (Cell, bool) {
	if row < 0 || row >= f.Height || col < 0 || col >= f.Width {
		return Cell{}, false
	}
	return f.cells[row*f.Width+col], true
}

// Span is a maximal run of same-colored glyphs within one row.
type Span struct {
	Text  string
	Color string
}

// EncodeRuns serializes the frame as one span slice per row, coalescing
// horizontal runs of identical color. This is the wire form handed to the
// terminal: one style change per run instead of per character.
func (f *Frame) EncodeRuns() [][]Span {
	rows := make([][]Span, f.Height)
	for r := 0; r < f.Height; r++ {
		var spans []Span
		col := 0
		for col < f.Width {
			color := f.cells[r*f.Width+col].Color
			run := make([]rune, 0, f.Width-col)
			for col < f.Width && f.cells[r*f.Width+col].Color == color {
				run = append(run, f.cells[r*f.Width+col].Glyph)
				col++
			}
			spans = append(spans, Span{Text: string(run), Color: color})
		}
		rows[r] = spans
	}
	return rows
}

// DecodeRuns rebuilds a frame from its run-length form. It is the exact
// inverse of EncodeRuns for any frame, which keeps the encoder honest.
func DecodeRuns(rows [][]Span, background string) *Frame {
	width := 0
	for _, span := range firstRow(rows) {
		width += len([]rune(span.Text))
	}
	f := NewFrame(width, len(rows), background)
	for r, spans := range rows {
		col := 0
		for _, span := range spans {
			for _, g := range span.Text {
				f.Set(r, col, g, span.Color)
				col++
			}
		}
	}
	return f
}

func firstRow(rows [][]Span) []Span {
	if len(rows) == 0 {
		return nil
	}
	return rows[0]
}

// Draw paints the frame onto a tcell screen. Wide runes get their trailing
// column filled with a space to avoid rendering artifacts, mirroring how
// the terminal itself advances the cursor.
func (f *Frame) Draw(screen tcell.Screen) {
	bg := ToTcell(f.Background)
	for r := 0; r < f.Height; r++ {
		skip := false
		for c := 0; c < f.Width; c++ {
			if skip {
				skip = false
				continue
			}
			cell := f.cells[r*f.Width+c]
			style := tcell.StyleDefault.Foreground(ToTcell(cell.Color)).Background(bg)
			screen.SetContent(c, r, cell.Glyph, nil, style)
			if runewidth.RuneWidth(cell.Glyph) == 2 {
				screen.SetContent(c+1, r, ' ', nil, style)
				skip = true
			}
		}
	}
}
