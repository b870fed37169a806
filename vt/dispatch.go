package vt

import (
	"strconv"

	"github.com/kimaguri/vtcell/cell"
	"github.com/kimaguri/vtcell/token"
)

// dispatchCSI applies one Csi token per the dispatch table (§4.2). Unknown
// commands are silently ignored, matching the Engine's total-function
// failure model (§7).
func (e *Engine) dispatchCSI(tok token.Token) {
	params := parseParams(tok.Params)
	switch tok.Command {
	case 'A':
		e.cursorRow = clampInt(e.cursorRow-pOne(params), e.linesOffScreen, e.linesOffScreen+e.height-1)
	case 'B':
		e.cursorRow = clampInt(e.cursorRow+pOne(params), e.linesOffScreen, e.linesOffScreen+e.height-1)
	case 'C':
		e.cursorCol = clampInt(e.cursorCol+pOne(params), 0, e.width-1)
	case 'D':
		e.cursorCol = clampInt(e.cursorCol-pOne(params), 0, e.width-1)
	case 'E':
		e.cursorRow = clampInt(e.cursorRow+pOne(params), e.linesOffScreen, e.linesOffScreen+e.height-1)
		e.cursorCol = 0
	case 'F':
		e.cursorRow = clampInt(e.cursorRow-pOne(params), e.linesOffScreen, e.linesOffScreen+e.height-1)
		e.cursorCol = 0
	case 'G':
		e.cursorCol = clampInt(pOne(params)-1, 0, e.width-1)
	case 'H', 'f':
		r := pAt(params, 0, 1)
		c := pAt(params, 1, 1)
		e.cursorRow = clampInt(e.linesOffScreen+r-1, e.linesOffScreen, e.linesOffScreen+e.height-1)
		e.cursorCol = clampInt(c-1, 0, e.width-1)
	case 'I':
		e.tabForward(pOne(params))
	case 'J':
		e.eraseDisplay(pZero(params))
	case 'K':
		e.eraseLine(pZero(params))
	case 'L':
		e.insertLines(pOne(params))
	case 'S':
		e.scrollUp(pOne(params))
	case 'T':
		e.scrollDown(pOne(params))
	case '@':
		e.insertChars(pOne(params))
	case 'P':
		e.deleteChars(pOne(params))
	case 'm':
		e.applySGR(params)
	case 'h', 'l':
		// cursor-visibility and other modes: ignored.
	case 'n':
		e.respondToQuery(tok.Params)
	}
}

func (e *Engine) tabForward(n int) {
	for i := 0; i < n; i++ {
		next := (e.cursorCol/8 + 1) * 8
		if next > e.width-1 {
			next = e.width - 1
		}
		e.cursorCol = next
	}
}

// eraseFillStyle returns the style erased cells are stamped with: the
// active style when it carries a non-default background (xterm behavior,
// §4.2/§9 open question), otherwise the default style.
func (e *Engine) eraseFillStyle() cell.Style {
	if e.style.Active.HasBg() {
		return e.style.Active
	}
	return cell.Default()
}

func (e *Engine) clearCells(row, from, to int) {
	fill := e.eraseFillStyle()
	for c := from; c < to && c < e.width; c++ {
		e.printable.Set(row, c, " ")
		e.style.Set(row, c, fill)
	}
	e.tracker.MarkRow(row)
}

func (e *Engine) eraseLine(mode int) {
	switch mode {
	case 0:
		e.clearCells(e.cursorRow, e.cursorCol, e.width)
	case 1:
		e.clearCells(e.cursorRow, 0, e.cursorCol+1)
	case 2:
		e.clearCells(e.cursorRow, 0, e.width)
	}
}

func (e *Engine) eraseDisplay(mode int) {
	top, bottom := e.linesOffScreen, e.linesOffScreen+e.height-1
	switch mode {
	case 0:
		e.clearCells(e.cursorRow, e.cursorCol, e.width)
		for r := e.cursorRow + 1; r <= bottom; r++ {
			e.clearCells(r, 0, e.width)
		}
	case 1:
		for r := top; r < e.cursorRow; r++ {
			e.clearCells(r, 0, e.width)
		}
		e.clearCells(e.cursorRow, 0, e.cursorCol+1)
	case 2:
		for r := top; r <= bottom; r++ {
			e.clearCells(r, 0, e.width)
		}
	}
}

// insertLines shifts rows [cursorRow, bottom] down by n within the
// viewport, truncating at the bottom. The change tracker follows the same
// shift (see shiftAndMarkInserted), and then every visible row is marked
// changed at a fresh sequence.
func (e *Engine) insertLines(n int) {
	bottom := e.linesOffScreen + e.height - 1
	e.printable.InsertRowsAt(e.cursorRow, n, bottom)
	e.style.InsertRowsAt(e.cursorRow, n, bottom)
	e.shiftAndMarkInserted(e.cursorRow, bottom, n)
	e.markViewportDirty()
}

// scrollUp advances the viewport offset by n, which — because storage
// beyond the old viewport bottom is always blank until written — has the
// same visible effect as deleting the top n viewport rows and appending n
// blank rows at the bottom, without disturbing already-recorded
// scrollback content above the new offset.
func (e *Engine) scrollUp(n int) {
	e.linesOffScreen += n
	if e.cursorRow < e.linesOffScreen {
		e.cursorRow = e.linesOffScreen
	}
	e.markViewportDirty()
}

// scrollDown inserts n blank rows at the top of the viewport, shifting
// existing viewport content down and truncating at the bottom — the mirror
// of scrollUp, implemented via storage shift because there is no
// scrollback below the viewport to reveal.
func (e *Engine) scrollDown(n int) {
	bottom := e.linesOffScreen + e.height - 1
	e.printable.InsertRowsAt(e.linesOffScreen, n, bottom)
	e.style.InsertRowsAt(e.linesOffScreen, n, bottom)
	e.shiftAndMarkInserted(e.linesOffScreen, bottom, n)
}

// reverseIndex (ESC M): cursor up one line; if already at the top of the
// viewport, scroll the viewport down instead of moving the cursor above
// it, reusing scrollback if any is available.
func (e *Engine) reverseIndex() {
	if e.cursorRow > e.linesOffScreen {
		e.cursorRow--
		return
	}
	if e.linesOffScreen > 0 {
		e.linesOffScreen--
		e.cursorRow--
		e.markViewportDirty()
		return
	}
	bottom := e.linesOffScreen + e.height - 1
	e.printable.InsertRowsAt(e.linesOffScreen, 1, bottom)
	e.style.InsertRowsAt(e.linesOffScreen, 1, bottom)
	e.shiftAndMarkInserted(e.linesOffScreen, bottom, 1)
}

// insertChars shifts the current row's content right by n from the cursor
// column, truncating at the row's right edge and blank-filling the
// vacated columns with the active style (ICH, expansion §4.2).
func (e *Engine) insertChars(n int) {
	row := e.cursorRow
	for c := e.width - 1; c >= e.cursorCol+n; c-- {
		src := c - n
		e.printable.Set(row, c, e.printable.Get(row, src))
		e.style.Set(row, c, e.style.Get(row, src))
	}
	last := e.cursorCol + n
	if last > e.width {
		last = e.width
	}
	for c := e.cursorCol; c < last; c++ {
		e.printable.Set(row, c, " ")
		e.style.Set(row, c, e.style.Active)
	}
	e.tracker.MarkRow(row)
}

// deleteChars shifts the current row's content left by n starting at the
// cursor column, blank-filling the columns exposed at the right edge with
// the active style (DCH, expansion §4.2).
func (e *Engine) deleteChars(n int) {
	row := e.cursorRow
	for c := e.cursorCol; c < e.width; c++ {
		src := c + n
		if src < e.width {
			e.printable.Set(row, c, e.printable.Get(row, src))
			e.style.Set(row, c, e.style.Get(row, src))
		} else {
			e.printable.Set(row, c, " ")
			e.style.Set(row, c, e.style.Active)
		}
	}
	e.tracker.MarkRow(row)
}

func (e *Engine) applySGR(params []int) {
	codes := params
	if codes == nil {
		codes = []int{0}
	}
	e.style.ApplySGR(codes)
}

func (e *Engine) respondToQuery(params string) {
	if e.queryResponder == nil {
		return
	}
	switch params {
	case "6":
		v := e.cursorRow - e.linesOffScreen
		reply := "\x1b[" + strconv.Itoa(v+1) + ";" + strconv.Itoa(e.cursorCol+1) + "R"
		e.queryResponder([]byte(reply))
	case "?10":
		e.queryResponder([]byte("\x1b]10;rgb:0000/0000/0000\x1b\\"))
	case "?11":
		e.queryResponder([]byte("\x1b]11;rgb:FFFF/FFFF/FFFF\x1b\\"))
	}
}
