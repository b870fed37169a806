package vt

import "sort"

// changeTracker maintains a monotonic sequence counter and, for each row
// that has ever been mutated, the sequence number of its most recent
// mutation. Rows with no recorded sequence are treated as sequence 0.
// Grounded on the dirty-row bitset shape of a screen damage tracker, but
// generalized from a boolean "dirty since last consume" flag into a
// sequence number so that "changed since an arbitrary past checkpoint" can
// be answered, not just "changed since the last render".
type changeTracker struct {
	seq    uint64
	rowSeq map[int]uint64
}

func newChangeTracker() *changeTracker {
	return &changeTracker{rowSeq: make(map[int]uint64)}
}

// CurrentSeq returns the counter's current value without advancing it.
func (t *changeTracker) CurrentSeq() uint64 { return t.seq }

// MarkRow advances the counter and records it against row.
func (t *changeTracker) MarkRow(row int) {
	t.seq++
	t.rowSeq[row] = t.seq
}

// MarkRows marks every row in rows, each with its own advance of the
// counter, in the given order.
func (t *changeTracker) MarkRows(rows ...int) {
	for _, r := range rows {
		t.MarkRow(r)
	}
}

// RowsChangedSince returns, in ascending order, every row index whose
// recorded sequence exceeds n.
func (t *changeTracker) RowsChangedSince(n uint64) []int {
	var rows []int
	for r, s := range t.rowSeq {
		if s > n {
			rows = append(rows, r)
		}
	}
	sort.Ints(rows)
	return rows
}

// ShiftRange moves the recorded sequence for every row in [at, bottom] to
// row+delta, dropping any whose destination falls outside [at, bottom].
// Used when insert/delete-line or scroll operations move content within a
// bounded range: "if row k is shifted to row k+d, its recorded seq
// attaches to row k+d."
func (t *changeTracker) ShiftRange(at, bottom, delta int) {
	if delta == 0 {
		return
	}
	updated := make(map[int]uint64, len(t.rowSeq))
	for r, s := range t.rowSeq {
		if r < at || r > bottom {
			updated[r] = s
			continue
		}
		nr := r + delta
		if nr < at || nr > bottom {
			continue
		}
		updated[nr] = s
	}
	t.rowSeq = updated
}

// DropAndShiftAll accounts for the memory-cap trimmer discarding the
// oldest `drop` rows: every remaining row's absolute index decreases by
// drop, and rows below 0 after the shift (the discarded ones) lose their
// recorded sequence.
func (t *changeTracker) DropAndShiftAll(drop int) {
	if drop == 0 {
		return
	}
	updated := make(map[int]uint64, len(t.rowSeq))
	for r, s := range t.rowSeq {
		nr := r - drop
		if nr < 0 {
			continue
		}
		updated[nr] = s
	}
	t.rowSeq = updated
}
