package grid

import "github.com/kimaguri/vtcell/cell"

// Style is row-major storage of per-cell rendition state, parallel in
// indexing to Printable, plus the "active" style stamped onto newly
// written cells.
type Style struct {
	rows   [][]cell.Style
	Width  int
	Cap    int
	Active cell.Style
}

// NewStyle creates an empty Style grid with the given column width and row
// cap. The active style starts at the default (reset) rendition.
func NewStyle(width, cap int) *Style {
	if cap <= 0 {
		cap = DefaultRowCap
	}
	return &Style{Width: width, Cap: cap, Active: cell.Default()}
}

// RowCount returns the number of rows currently allocated.
func (s *Style) RowCount() int { return len(s.rows) }

// EnsureRow grows the grid so that row index `row` exists.
func (s *Style) EnsureRow(row int) {
	for len(s.rows) <= row {
		s.rows = append(s.rows, nil)
	}
}

// Get returns the style stored at (row, col), or the default style if the
// row does not exist or has not been written that far.
func (s *Style) Get(row, col int) cell.Style {
	if row < 0 || row >= len(s.rows) {
		return cell.Default()
	}
	r := s.rows[row]
	if col < 0 || col >= len(r) {
		return cell.Default()
	}
	return r[col]
}

// Set stores st at (row, col), growing and default-padding the row as
// needed.
func (s *Style) Set(row, col int, st cell.Style) {
	s.EnsureRow(row)
	r := s.rows[row]
	for len(r) <= col {
		r = append(r, cell.Default())
	}
	r[col] = st
	s.rows[row] = r
}

// ClearRange resets columns [from, to) of row to fill, typically
// cell.Default() or the active background per the erase-to-EOL rule.
func (s *Style) ClearRange(row, from, to int, fill cell.Style) {
	if to > s.Width {
		to = s.Width
	}
	for c := from; c < to; c++ {
		s.Set(row, c, fill)
	}
}

// ClearRow resets the entire row to fill.
func (s *Style) ClearRow(row int, fill cell.Style) { s.ClearRange(row, 0, s.Width, fill) }

// ApplySGR updates the active style from a sequence of SGR parameter
// codes.
func (s *Style) ApplySGR(codes []int) {
	s.Active = cell.ApplySGR(s.Active, codes)
}

// InsertRowsAt inserts n rows (default-styled) at index `at`, shifting
// rows at and below down; rows beyond `bottom` are discarded.
func (s *Style) InsertRowsAt(at, n, bottom int) {
	s.EnsureRow(bottom)
	tail := append([][]cell.Style(nil), s.rows[at:bottom+1]...)
	for i := 0; i < n; i++ {
		s.rows[at+i] = nil
	}
	for i, row := range tail {
		dst := at + n + i
		if dst > bottom {
			break
		}
		s.rows[dst] = row
	}
}

// DeleteRowsAt deletes n rows starting at `at`, shifting rows below up and
// blanking the vacated bottom rows.
func (s *Style) DeleteRowsAt(at, n, bottom int) {
	s.EnsureRow(bottom)
	tail := append([][]cell.Style(nil), s.rows[at+n:bottom+1]...)
	for i, row := range tail {
		s.rows[at+i] = row
	}
	for i := len(tail); i <= bottom-at; i++ {
		s.rows[at+i] = nil
	}
}

// TrimToCap discards the oldest rows if the grid exceeds Cap, returning the
// number of rows dropped.
func (s *Style) TrimToCap() int {
	if len(s.rows) <= s.Cap {
		return 0
	}
	drop := len(s.rows) - s.Cap
	s.rows = s.rows[drop:]
	return drop
}
