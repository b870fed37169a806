package vt

import "strings"

// writeText applies one Text (or verbatim Invalid) token: split on '\n'
// into segments, write each segment's clusters, and perform a
// newline-with-scroll between segments (§4.2).
func (e *Engine) writeText(raw []byte) {
	segments := strings.Split(string(raw), "\n")
	for i, seg := range segments {
		if i > 0 {
			e.newlineAdvance()
		}
		if seg != "" {
			e.writeClusters(e.clusterFn(seg))
		}
	}
}

// writeClusters writes clusters left to right starting at the current
// cursor position, wrapping to the next row exactly when the next cluster
// does not fit in the remaining columns of the current row — never before,
// never as a separate "pending wrap" state (§4.2).
func (e *Engine) writeClusters(clusters []string) {
	for _, cl := range clusters {
		w := e.widthFn(cl)
		if w <= 0 {
			w = 1
		}
		if e.cursorCol+w > e.width {
			e.newlineAdvance()
		}
		e.putCell(e.cursorRow, e.cursorCol, cl)
		if w == 2 {
			e.putContinuation(e.cursorRow, e.cursorCol+1)
		}
		e.cursorCol += w
	}
}

// putCell stamps a printable cluster and the current active style at
// (row, col), and marks the row changed.
func (e *Engine) putCell(row, col int, cluster string) {
	e.printable.Set(row, col, cluster)
	e.style.Set(row, col, e.style.Active)
	e.tracker.MarkRow(row)
}

// putContinuation stamps the empty-cluster right half of a wide cluster
// just written to its left, carrying the same style.
func (e *Engine) putContinuation(row, col int) {
	if col >= e.width {
		return
	}
	e.printable.Set(row, col, "")
	e.style.Set(row, col, e.style.Active)
}
