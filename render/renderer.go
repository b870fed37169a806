// Package render turns virtual-terminal buffer state back into a minimal
// ANSI byte stream: a full relative-positioning frame suitable for
// embedding inside a larger real terminal, a rows-changed-since-checkpoint
// differential rewrite, and a cell-level diff between two buffer
// snapshots. All three paths route cursor motion and style transitions
// through the cursor and style optimizers so that only the bytes actually
// needed to reach the target state are ever emitted.
package render

import (
	"bytes"
	"encoding/binary"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"github.com/kimaguri/vtcell/cell"
)

// Source is the read-only view of virtual-terminal state the renderer
// needs. An *vt.Engine satisfies this structurally; render never imports
// vt, so the Renderer only ever "borrows" the grids through this
// interface, never mutates them.
type Source interface {
	Width() int
	Height() int
	ViewportOffset() int
	CellAt(absRow, col int) cell.Cell
	CurrentSeq() uint64
	RowsChangedSince(seq uint64) []int
}

// Renderer produces output bytes from a Source. It owns no persistent
// state of its own beyond the Source reference: each call constructs its
// own transient cursor/style optimizers, per §"Ownership" in the data
// model.
type Renderer struct {
	src Source
}

// New creates a Renderer over src.
func New(src Source) *Renderer {
	return &Renderer{src: src}
}

// Render returns the full-viewport frame in relative-positioning form: no
// \r, no \n, no absolute cursor addressing, safe to write starting at
// whatever position the caller's real cursor currently occupies.
func (r *Renderer) Render() []byte {
	var buf bytes.Buffer
	buf.WriteString("\x1b7")
	h := r.src.Height()
	off := r.src.ViewportOffset()
	for v := 0; v < h; v++ {
		buf.WriteString("\x1b8")
		if v > 0 {
			buf.Write(seq(v, 'B'))
		}
		buf.Write(renderRow(r.src, off+v))
	}
	return buf.Bytes()
}

// RenderSince returns the absolute-addressed rewrite of every viewport row
// whose recorded change sequence exceeds seq, or nil if none changed.
// Differential output uses absolute addressing because, unlike Render, it
// is not composable with a caller-chosen offset.
func (r *Renderer) RenderSince(seq uint64) []byte {
	var buf bytes.Buffer
	off := r.src.ViewportOffset()
	h := r.src.Height()
	for _, absRow := range r.src.RowsChangedSince(seq) {
		v := absRow - off
		if v < 0 || v >= h {
			continue
		}
		buf.WriteString("\x1b[" + strconv.Itoa(v+1) + ";1H")
		buf.Write(renderRow(r.src, absRow))
		buf.WriteString("\x1b[K")
	}
	return buf.Bytes()
}

// renderRow renders one full-width row, seeding a fresh style tracker at
// the default rendition so each row's output is self-contained.
func renderRow(src Source, absRow int) []byte {
	var buf bytes.Buffer
	st := newStyleTracker(cell.Default())
	w := src.Width()
	for c := 0; c < w; c++ {
		cl := src.CellAt(absRow, c)
		if cl.IsContinuation() {
			continue
		}
		buf.Write(st.Move(cl.Style))
		buf.WriteString(cl.Cluster)
	}
	return buf.Bytes()
}

// CellBuffer is the unified per-cell projection of a Source's viewport
// (C11): it holds two generations of cells, "current" and "previous", so
// that DiffRender can emit only what changed between them.
type CellBuffer struct {
	Width, Height int
	current       []cell.Cell
	previous      []cell.Cell
}

// NewCellBuffer creates a CellBuffer of the given shape, filled with blank
// cells.
func NewCellBuffer(width, height int) *CellBuffer {
	b := &CellBuffer{Width: width, Height: height}
	b.current = make([]cell.Cell, width*height)
	b.previous = make([]cell.Cell, width*height)
	for i := range b.current {
		b.current[i] = cell.Blank()
		b.previous[i] = cell.Blank()
	}
	return b
}

// Snapshot projects src's current viewport into a fresh CellBuffer's
// current generation; its previous generation starts identical, so an
// immediate DiffRender is a no-op until SwapBuffers is called.
func Snapshot(src Source) *CellBuffer {
	b := NewCellBuffer(src.Width(), src.Height())
	off := src.ViewportOffset()
	for row := 0; row < b.Height; row++ {
		for col := 0; col < b.Width; col++ {
			c := src.CellAt(off+row, col)
			b.current[row*b.Width+col] = c
			b.previous[row*b.Width+col] = c
		}
	}
	return b
}

// Capture re-projects src's current viewport into the current generation,
// leaving previous untouched (typically called after SwapBuffers).
func (b *CellBuffer) Capture(src Source) {
	off := src.ViewportOffset()
	for row := 0; row < b.Height; row++ {
		for col := 0; col < b.Width; col++ {
			b.current[row*b.Width+col] = src.CellAt(off+row, col)
		}
	}
}

// SwapBuffers promotes current to previous, so a subsequent Capture starts
// a new comparison generation.
func (b *CellBuffer) SwapBuffers() {
	b.previous, b.current = b.current, b.previous
}

func (b *CellBuffer) at(cells []cell.Cell, row, col int) cell.Cell {
	return cells[row*b.Width+col]
}

// Cells returns a copy of the current generation's cells in row-major
// order, for callers (such as internal/snapshot) that need to persist or
// otherwise inspect the projected buffer outside the diff path.
func (b *CellBuffer) Cells() []cell.Cell {
	out := make([]cell.Cell, len(b.current))
	copy(out, b.current)
	return out
}

// LoadCells replaces both generations with cells (row-major, len must equal
// Width*Height), so a loaded snapshot starts as its own fixed point: an
// immediate DiffRender is a no-op until the buffer is captured again.
func (b *CellBuffer) LoadCells(cells []cell.Cell) {
	copy(b.current, cells)
	copy(b.previous, cells)
}

// DiffRender walks cells changed between previous and current, sorted by
// (row, col), and emits the minimal ANSI bytes to update only those cells
// on a real terminal, positioned as if this buffer's origin were at
// (baseRow, baseCol). Emits a final SGR reset if any non-default style is
// still active when done, to prevent bleeding into surrounding content.
func (b *CellBuffer) DiffRender(baseRow, baseCol int) []byte {
	var buf bytes.Buffer
	cur := newCursorOptimizer(baseRow, baseCol)
	st := newStyleTracker(cell.Default())

	for row := 0; row < b.Height; row++ {
		for col := 0; col < b.Width; col++ {
			nc := b.at(b.current, row, col)
			pc := b.at(b.previous, row, col)
			if nc == pc {
				continue
			}
			buf.Write(cur.Move(baseRow+row, baseCol+col))
			buf.Write(st.Move(nc.Style))
			if nc.IsContinuation() {
				continue
			}
			buf.WriteString(nc.Cluster)
			cur.Advance(b.displayColumns(row, col))
		}
	}

	if st.active != cell.Default() {
		buf.WriteString("\x1b[0m")
	}
	return buf.Bytes()
}

// displayColumns reports how many columns the cluster at (row, col) in the
// current generation occupies, for advancing the tracked cursor after a
// printable write: 2 when the next column holds that cluster's
// continuation cell, 1 otherwise. DiffRender never calls this for a
// continuation cell itself (it skips writing those), so only one column of
// lookahead is needed.
func (b *CellBuffer) displayColumns(row, col int) int {
	if col+1 < b.Width && b.at(b.current, row, col+1).IsContinuation() {
		return 2
	}
	return 1
}

// RowHash returns a content hash of the current generation's row, useful
// for cheap equality probes before a full RowEquals comparison.
func (b *CellBuffer) RowHash(row int) uint64 {
	h := xxhash.New()
	var lenBuf [2]byte
	for col := 0; col < b.Width; col++ {
		c := b.at(b.current, row, col)
		binary.LittleEndian.PutUint16(lenBuf[:], uint16(len(c.Cluster)))
		h.Write(lenBuf[:])
		h.Write([]byte(c.Cluster))
		writeStyle(h, c.Style)
	}
	return h.Sum64()
}

// RowEquals reports whether this buffer's current row equals another
// buffer's current row, cell for cell.
func (b *CellBuffer) RowEquals(row int, other *CellBuffer) bool {
	if b.Width != other.Width {
		return false
	}
	for col := 0; col < b.Width; col++ {
		if b.at(b.current, row, col) != other.at(other.current, row, col) {
			return false
		}
	}
	return true
}

func writeStyle(h *xxhash.Digest, s cell.Style) {
	var buf [10]byte
	binary.LittleEndian.PutUint16(buf[0:2], uint16(s.Attr))
	binary.LittleEndian.PutUint32(buf[2:6], uint32(int32(s.FgBasic)))
	binary.LittleEndian.PutUint32(buf[6:10], uint32(int32(s.BgBasic)))
	h.Write(buf[:])
	h.Write([]byte{byte(s.FgExt.Kind), s.FgExt.Index, s.FgExt.R, s.FgExt.G, s.FgExt.B})
	h.Write([]byte{byte(s.BgExt.Kind), s.BgExt.Index, s.BgExt.R, s.BgExt.G, s.BgExt.B})
}
