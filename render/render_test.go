package render

import (
	"strings"
	"testing"

	"github.com/kimaguri/vtcell/cell"
)

func TestCursorOptimizer_AlreadyAtTarget(t *testing.T) {
	o := newCursorOptimizer(3, 4)
	if got := o.Move(3, 4); got != nil {
		t.Fatalf("expected no bytes, got %q", got)
	}
}

func TestCursorOptimizer_Origin(t *testing.T) {
	o := newCursorOptimizer(5, 5)
	if got := string(o.Move(0, 0)); got != "\x1b[H" {
		t.Fatalf("expected ESC[H, got %q", got)
	}
}

func TestCursorOptimizer_CarriageReturn(t *testing.T) {
	o := newCursorOptimizer(2, 7)
	if got := string(o.Move(2, 0)); got != "\r" {
		t.Fatalf("expected CR, got %q", got)
	}
}

func TestCursorOptimizer_Newline(t *testing.T) {
	o := newCursorOptimizer(2, 0)
	if got := string(o.Move(3, 0)); got != "\n" {
		t.Fatalf("expected LF, got %q", got)
	}
}

func TestCursorOptimizer_RelativePreferredOverAbsolute(t *testing.T) {
	o := newCursorOptimizer(2, 2)
	got := string(o.Move(2, 5))
	if got != "\x1b[3C" {
		t.Fatalf("expected relative move, got %q", got)
	}
}

func TestCursorOptimizer_OmitsUnitDistance(t *testing.T) {
	o := newCursorOptimizer(2, 2)
	if got := string(o.Move(2, 3)); got != "\x1b[C" {
		t.Fatalf("expected unit move without digit, got %q", got)
	}
}

func TestCursorOptimizer_RelativeWinsTieWithAbsolute(t *testing.T) {
	o := newCursorOptimizer(0, 0)
	got := string(o.Move(1, 1))
	// relative would be ESC[BESC[C (6 bytes); CR+relative \n... but from (0,0)
	// col already 0 so relative-down-both-zero doesn't apply since target col
	// isn't 0. Absolute is "\x1b[2;2H" (6 bytes) too; relative is
	// "\x1b[B\x1b[C" (6 bytes) - both tie, relative listed first wins.
	if got != "\x1b[B\x1b[C" {
		t.Fatalf("expected relative on tie, got %q", got)
	}
}

func TestCursorOptimizer_Advance(t *testing.T) {
	o := newCursorOptimizer(0, 0)
	o.Advance(5)
	if got := o.Move(0, 5); got != nil {
		t.Fatalf("expected already-at-target after advance, got %q", got)
	}
}

func TestStyleTracker_NoChange(t *testing.T) {
	s := cell.Style{FgBasic: 31, BgBasic: cell.NoColor}
	tr := newStyleTracker(s)
	if got := tr.Move(s); got != nil {
		t.Fatalf("expected no bytes, got %q", got)
	}
}

func TestStyleTracker_IncrementalAddsOnlyNewBits(t *testing.T) {
	base := cell.Style{FgBasic: 31, BgBasic: cell.NoColor}
	tr := newStyleTracker(base)
	target := base
	target.Attr |= cell.Bold
	got := string(tr.Move(target))
	if got != "\x1b[1m" {
		t.Fatalf("expected only bold code, got %q", got)
	}
}

func TestStyleTracker_ExtendedToBasicForcesReset(t *testing.T) {
	base := cell.Style{FgExt: cell.RGB(1, 2, 3), FgBasic: cell.NoColor, BgBasic: cell.NoColor}
	tr := newStyleTracker(base)
	target := cell.Style{FgBasic: 32, BgBasic: cell.NoColor}
	got := string(tr.Move(target))
	if !strings.HasPrefix(got, "\x1b[0;") {
		t.Fatalf("expected reset-prefixed sequence, got %q", got)
	}
	if !strings.Contains(got, "32") {
		t.Fatalf("expected fg 32 in reset sequence, got %q", got)
	}
}

func TestStyleTracker_TurnOffBitForcesReset(t *testing.T) {
	base := cell.Style{Attr: cell.Bold | cell.Underline, FgBasic: cell.NoColor, BgBasic: cell.NoColor}
	tr := newStyleTracker(base)
	target := cell.Style{Attr: cell.Underline, FgBasic: cell.NoColor, BgBasic: cell.NoColor}
	got := string(tr.Move(target))
	if !strings.HasPrefix(got, "\x1b[0;") {
		t.Fatalf("expected reset when clearing a bit, got %q", got)
	}
}

func TestStyleTracker_ExtendedColorSerialization(t *testing.T) {
	tr := newStyleTracker(cell.Default())
	target := cell.Style{FgBasic: cell.NoColor, BgBasic: cell.NoColor, FgExt: cell.Palette256(200)}
	got := string(tr.Move(target))
	if got != "\x1b[38;5;200m" {
		t.Fatalf("expected palette sequence, got %q", got)
	}
}

// fakeSource is a minimal in-memory Source for renderer tests.
type fakeSource struct {
	width, height int
	offset        int
	cells         map[[2]int]cell.Cell
	seq           uint64
	changed       map[int]uint64
}

func newFakeSource(w, h int) *fakeSource {
	return &fakeSource{width: w, height: h, cells: make(map[[2]int]cell.Cell), changed: make(map[int]uint64)}
}

func (f *fakeSource) Width() int          { return f.width }
func (f *fakeSource) Height() int         { return f.height }
func (f *fakeSource) ViewportOffset() int { return f.offset }
func (f *fakeSource) CellAt(row, col int) cell.Cell {
	if c, ok := f.cells[[2]int{row, col}]; ok {
		return c
	}
	return cell.Blank()
}
func (f *fakeSource) CurrentSeq() uint64 { return f.seq }
func (f *fakeSource) RowsChangedSince(n uint64) []int {
	var rows []int
	for r, s := range f.changed {
		if s > n {
			rows = append(rows, r)
		}
	}
	return rows
}

func (f *fakeSource) set(row, col int, c cell.Cell) {
	f.cells[[2]int{row, col}] = c
	f.seq++
	f.changed[row] = f.seq
}

func TestRenderer_FullFrame_NoRedundantSGR(t *testing.T) {
	src := newFakeSource(5, 1)
	styled := cell.Style{Attr: 0, FgBasic: 31, BgBasic: cell.NoColor}
	src.set(0, 0, cell.Cell{Cluster: "A", Style: styled})
	src.set(0, 1, cell.Cell{Cluster: "B", Style: styled})

	out := string(New(src).Render())
	if strings.Count(out, "31") != 1 {
		t.Fatalf("expected fg 31 emitted exactly once, got %q", out)
	}
	if !strings.HasPrefix(out, "\x1b7\x1b8") {
		t.Fatalf("expected save-then-restore prologue, got %q", out)
	}
}

func TestRenderer_RenderSince_OnlyChangedRows(t *testing.T) {
	src := newFakeSource(5, 3)
	src.set(0, 0, cell.Cell{Cluster: "x", Style: cell.Default()})
	base := src.CurrentSeq()
	src.set(1, 0, cell.Cell{Cluster: "y", Style: cell.Default()})

	out := string(New(src).RenderSince(base))
	if !strings.Contains(out, "y") {
		t.Fatalf("expected changed row content, got %q", out)
	}
	if strings.Contains(out, "x") {
		t.Fatalf("expected unchanged row omitted, got %q", out)
	}
	if !strings.Contains(out, "\x1b[2;1H") {
		t.Fatalf("expected absolute move to row 2, got %q", out)
	}
	if !strings.HasSuffix(out, "\x1b[K") {
		t.Fatalf("expected trailing erase-to-EOL, got %q", out)
	}
}

func TestCellBuffer_DiffRenderSkipsUnchanged(t *testing.T) {
	src := newFakeSource(3, 1)
	src.set(0, 0, cell.Cell{Cluster: "a", Style: cell.Default()})
	buf := Snapshot(src)
	buf.SwapBuffers()
	src.set(0, 1, cell.Cell{Cluster: "b", Style: cell.Default()})
	buf.Capture(src)

	out := string(buf.DiffRender(0, 0))
	if !strings.Contains(out, "b") {
		t.Fatalf("expected changed cell content, got %q", out)
	}
	if strings.Contains(out, "a") {
		t.Fatalf("unchanged cell should not be re-emitted, got %q", out)
	}
}

func TestCellBuffer_DisplayColumns_WideClusterAdvancesTwo(t *testing.T) {
	src := newFakeSource(4, 1)
	src.set(0, 0, cell.Cell{Cluster: "中", Style: cell.Default()})
	src.set(0, 1, cell.Continuation(cell.Default()))
	buf := Snapshot(src)
	if got := buf.displayColumns(0, 0); got != 2 {
		t.Fatalf("expected wide cluster to occupy 2 columns, got %d", got)
	}
	if got := buf.displayColumns(0, 1); got != 1 {
		t.Fatalf("continuation cell lookahead should not itself claim 2, got %d", got)
	}
}

func TestCellBuffer_DiffRenderWideClusterAdvancesCursorByTwo(t *testing.T) {
	src := newFakeSource(4, 1)
	buf := Snapshot(src)
	buf.SwapBuffers()

	src.set(0, 0, cell.Cell{Cluster: "中", Style: cell.Default()})
	src.set(0, 1, cell.Continuation(cell.Default()))
	src.set(0, 2, cell.Cell{Cluster: "Z", Style: cell.Default()})
	buf.Capture(src)

	out := string(buf.DiffRender(0, 0))
	idxWide := strings.Index(out, "中")
	idxZ := strings.Index(out, "Z")
	if idxWide < 0 || idxZ < 0 {
		t.Fatalf("expected both clusters present, got %q", out)
	}
	between := out[idxWide+len("中") : idxZ]
	// After a correctly-tracked 2-column advance, the cursor is already at
	// column 2 where "Z" belongs; the only motion between the two clusters
	// is the continuation cell's own one-column step back and Z's one-column
	// step forward again, never a drifted larger move.
	if strings.Contains(between, "\x1b[2;") || strings.Contains(between, "\x1b[3C") {
		t.Fatalf("expected no drifted absolute/large relative move before Z, got %q", between)
	}
}

func TestCellBuffer_RowHashStable(t *testing.T) {
	src := newFakeSource(3, 1)
	src.set(0, 0, cell.Cell{Cluster: "a", Style: cell.Default()})
	b1 := Snapshot(src)
	b2 := Snapshot(src)
	if b1.RowHash(0) != b2.RowHash(0) {
		t.Fatalf("expected identical row hashes for identical content")
	}
	if !b1.RowEquals(0, b2) {
		t.Fatalf("expected rows to compare equal")
	}
}
