// Package vt implements the virtual terminal engine: it interprets tokens
// produced by the token package against a pair of grids (printable clusters
// and per-cell style), owns cursor and viewport state, and exposes the
// rendered byte streams a caller writes to a real terminal. Grounded on the
// teacher's internal/process/vterm.go, which wrapped a third-party VT
// emulator for exactly this purpose (feeding a subprocess's PTY bytes
// through a screen model before repainting a bubbletea pane); this package
// is that emulator, implemented directly instead of wrapped.
package vt

import (
	"github.com/kimaguri/vtcell/cell"
	"github.com/kimaguri/vtcell/grid"
	"github.com/kimaguri/vtcell/internal/widthfn"
	"github.com/kimaguri/vtcell/render"
	"github.com/kimaguri/vtcell/token"
)

// savedCursor holds the DECSC state: column absolute, row relative to the
// viewport at the moment of the save (so a later restore is correct even
// if the viewport has since scrolled).
type savedCursor struct {
	col, viewportRow int
}

// Engine is the virtual terminal: it owns a Printable grid, a Style grid,
// cursor/viewport state, a saved-cursor slot, and a change tracker. It is
// not safe for concurrent use; the caller serializes access (§5).
type Engine struct {
	width, height int

	printable *grid.Printable
	style     *grid.Style
	tracker   *changeTracker

	cursorRow, cursorCol int
	linesOffScreen        int
	saved                 *savedCursor

	queryResponder  func([]byte)
	lastRenderedSeq uint64

	widthFn   func(string) int
	clusterFn func(string) []string

	onTrim      func(dropped, cap int)
	onMalformed func(raw []byte)
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithRowCap overrides the default grid row cap (grid.DefaultRowCap).
func WithRowCap(n int) Option {
	return func(e *Engine) {
		e.printable.Cap = n
		e.style.Cap = n
	}
}

// WithWidthFunc overrides the display-width collaborator (default
// internal/widthfn.DisplayWidth).
func WithWidthFunc(f func(string) int) Option {
	return func(e *Engine) { e.widthFn = f }
}

// WithClusterFunc overrides the grapheme-cluster collaborator (default
// internal/widthfn.Clusters).
func WithClusterFunc(f func(string) []string) Option {
	return func(e *Engine) { e.clusterFn = f }
}

// WithTrimHook registers a callback invoked whenever the row-cap trimmer
// discards rows, with the number dropped and the cap that triggered it.
// The engine never logs on its own (§7); a caller that wants this surfaced
// (e.g. cmd/vtcelldemo wiring internal/vtlog.BufferTrimmed) supplies the
// callback itself. Unset by default.
func WithTrimHook(f func(dropped, cap int)) Option {
	return func(e *Engine) { e.onTrim = f }
}

// WithMalformedHook registers a callback invoked whenever the parser hands
// back an Invalid token the engine recovers by treating it as text, with
// the raw bytes that could not be interpreted. Unset by default.
func WithMalformedHook(f func(raw []byte)) Option {
	return func(e *Engine) { e.onMalformed = f }
}

// New creates an Engine of the given fixed dimensions with an empty buffer
// and cursor at the origin.
func New(width, height int, opts ...Option) *Engine {
	e := &Engine{
		width:     width,
		height:    height,
		printable: grid.NewPrintable(width, grid.DefaultRowCap),
		style:     grid.NewStyle(width, grid.DefaultRowCap),
		tracker:   newChangeTracker(),
		widthFn:   widthfn.DisplayWidth,
		clusterFn: widthfn.Clusters,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Cursor returns the current absolute (row, col) position.
func (e *Engine) Cursor() (row, col int) { return e.cursorRow, e.cursorCol }

// CurrentSeq returns the change tracker's monotonic counter.
func (e *Engine) CurrentSeq() uint64 { return e.tracker.CurrentSeq() }

// LastRenderedSeq returns the sequence value as of the most recent Render
// or RenderSince call.
func (e *Engine) LastRenderedSeq() uint64 { return e.lastRenderedSeq }

// SetQueryResponder registers the callback invoked with DSR/color-query
// replies. If unset, queries are silently dropped.
func (e *Engine) SetQueryResponder(f func([]byte)) { e.queryResponder = f }

// Write mutates the buffer and cursor as if bytes were delivered to a
// virtual terminal: backspace and carriage-return are rewritten to their
// cursor-motion equivalents, the result is tokenized, and each token is
// dispatched in order.
func (e *Engine) Write(data []byte) {
	pre := preprocess(data)
	for _, tok := range token.Parse(pre) {
		e.normalizeWrap()
		e.dispatch(tok)
		e.trimIfNeeded()
	}
}

// Writeln writes data followed by a newline; if the cursor is not already
// at column 0, a leading newline is written first.
func (e *Engine) Writeln(data []byte) {
	buf := make([]byte, 0, len(data)+2)
	if e.cursorCol != 0 {
		buf = append(buf, '\n')
	}
	buf = append(buf, data...)
	buf = append(buf, '\n')
	e.Write(buf)
}

// preprocess rewrites backspace (0x08) to ESC[D and carriage return (0x0D)
// to ESC[G before tokenization, per §4.2.
func preprocess(data []byte) []byte {
	out := make([]byte, 0, len(data))
	for _, b := range data {
		switch b {
		case 0x08:
			out = append(out, "\x1b[D"...)
		case 0x0d:
			out = append(out, "\x1b[G"...)
		default:
			out = append(out, b)
		}
	}
	return out
}

func (e *Engine) dispatch(tok token.Token) {
	switch tok.Kind {
	case token.Text:
		e.writeText(tok.Raw)
	case token.Csi:
		e.dispatchCSI(tok)
	case token.Osc:
		// semantically ignored; already consumed by the parser.
	case token.SimpleEsc:
		e.dispatchSimpleEsc(tok)
	case token.CharsetEsc:
		// parsed but ignored, per spec.
	case token.Invalid:
		if len(tok.Raw) == 1 && tok.Raw[0] == 0x1b {
			return
		}
		if e.onMalformed != nil {
			e.onMalformed(tok.Raw)
		}
		e.writeText(tok.Raw)
	}
}

func (e *Engine) dispatchSimpleEsc(tok token.Token) {
	switch tok.Command {
	case '7':
		e.saved = &savedCursor{col: e.cursorCol, viewportRow: e.cursorRow - e.linesOffScreen}
	case '8':
		e.restoreCursor()
	case 'M':
		e.reverseIndex()
	}
}

func (e *Engine) restoreCursor() {
	if e.saved == nil {
		return
	}
	row := e.linesOffScreen + e.saved.viewportRow
	e.cursorRow = clampInt(row, e.linesOffScreen, e.linesOffScreen+e.height-1)
	e.cursorCol = clampInt(e.saved.col, 0, e.width-1)
}

// normalizeWrap resolves the transient cursor_col == width state left by
// writeClusters (§8 invariant 1) before the next token is dispatched.
func (e *Engine) normalizeWrap() {
	if e.cursorCol >= e.width {
		e.newlineAdvance()
	}
}

// newlineAdvance implements the "newline with scroll" primitive shared by
// wrap normalization, between-segment newlines, and Writeln: the cursor
// always moves to the next absolute row; if it was at the bottom of the
// viewport, the viewport scrolls down with it.
func (e *Engine) newlineAdvance() {
	atBottom := e.cursorRow == e.linesOffScreen+e.height-1
	e.cursorRow++
	e.cursorCol = 0
	if atBottom {
		e.linesOffScreen++
		e.markViewportDirty()
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// markViewportDirty records every currently visible row as changed at a
// fresh sequence number. Used whenever the viewport's mapping from
// viewport-relative to absolute row changes without every individual
// row's content changing (scroll), and after insert-lines, so render_since
// still detects the visual change (see DESIGN.md).
func (e *Engine) markViewportDirty() {
	rows := make([]int, e.height)
	for v := 0; v < e.height; v++ {
		rows[v] = e.linesOffScreen + v
	}
	e.tracker.MarkRows(rows...)
}

// shiftAndMarkInserted updates the change tracker for a physical row insert
// at [at, bottom] by n rows (see grid.InsertRowsAt): rows that carried their
// content down to a new index carry their recorded sequence down with it via
// ShiftRange, and the newly blank rows [at, at+n-1] are marked fresh, since
// ShiftRange only preserves sequences that actually followed their content —
// it never invents one for a row a shift didn't touch.
func (e *Engine) shiftAndMarkInserted(at, bottom, n int) {
	e.tracker.ShiftRange(at, bottom, n)
	last := at + n - 1
	if last > bottom {
		last = bottom
	}
	rows := make([]int, 0, last-at+1)
	for r := at; r <= last; r++ {
		rows = append(rows, r)
	}
	e.tracker.MarkRows(rows...)
}

// trimIfNeeded discards the oldest rows once the grids exceed their cap,
// shifting cursor, viewport offset, and the change tracker's recordings to
// match. The saved-cursor slot is stored viewport-relative and needs no
// adjustment.
func (e *Engine) trimIfNeeded() {
	drop := e.printable.TrimToCap()
	e.style.TrimToCap()
	if drop == 0 {
		return
	}
	e.cursorRow -= drop
	e.linesOffScreen -= drop
	e.tracker.DropAndShiftAll(drop)
	if e.onTrim != nil {
		e.onTrim(drop, e.printable.Cap)
	}
}

// Render returns the full-viewport relative-positioning frame (§4.6).
func (e *Engine) Render() []byte {
	out := render.New(e).Render()
	e.lastRenderedSeq = e.tracker.CurrentSeq()
	return out
}

// RenderSince returns the absolute-addressed rewrite of every viewport row
// changed since seq (§4.6).
func (e *Engine) RenderSince(seq uint64) []byte {
	out := render.New(e).RenderSince(seq)
	e.lastRenderedSeq = e.tracker.CurrentSeq()
	return out
}

// Snapshot projects the current viewport into a unified CellBuffer for
// value-based comparison (C11).
func (e *Engine) Snapshot() *render.CellBuffer {
	return render.Snapshot(e)
}

// render.Source implementation. vt never imports render's Source type by
// name; Engine simply exposes the methods it demands.

// Width reports the fixed column count.
func (e *Engine) Width() int { return e.width }

// Height reports the fixed viewport row count.
func (e *Engine) Height() int { return e.height }

// ViewportOffset reports lines_off_screen.
func (e *Engine) ViewportOffset() int { return e.linesOffScreen }

// CellAt returns the cell at an absolute row/column, combining the
// printable and style grids.
func (e *Engine) CellAt(absRow, col int) cell.Cell {
	cl := e.printable.Get(absRow, col)
	st := e.style.Get(absRow, col)
	return cell.Cell{Cluster: cl, Style: st}
}

// RowsChangedSince delegates to the change tracker.
func (e *Engine) RowsChangedSince(seq uint64) []int {
	return e.tracker.RowsChangedSince(seq)
}
