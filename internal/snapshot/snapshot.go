// Package snapshot persists a render.CellBuffer to disk as a TOML document
// and reloads it, for the demo's "dump" subcommand and for tests that
// diff two captures of the same session. Atomic writes go through
// google/renameio/v2, matching the teacher's session-file durability
// concern in internal/process/state.go (SaveSession), generalized from
// os.WriteFile to a rename-into-place write so a crash mid-dump never
// leaves a half-written snapshot file.
package snapshot

import (
	"fmt"
	"os"

	"github.com/google/renameio/v2"
	"github.com/pelletier/go-toml/v2"

	"github.com/kimaguri/vtcell/cell"
	"github.com/kimaguri/vtcell/render"
)

// CellRecord is the TOML-serializable form of a single cell.
type CellRecord struct {
	Cluster string `toml:"c"`
	Attr    uint16 `toml:"a,omitempty"`
	FgBasic int    `toml:"fg"`
	BgBasic int    `toml:"bg"`
	FgExt   string `toml:"fgx,omitempty"`
	BgExt   string `toml:"bgx,omitempty"`
}

// RowRecord holds one row's cells.
type RowRecord struct {
	Cells []CellRecord `toml:"cells"`
}

// Snapshot is the on-disk representation of one viewport capture.
type Snapshot struct {
	Width  int         `toml:"width"`
	Height int         `toml:"height"`
	Rows   []RowRecord `toml:"rows"`
}

// FromCellBuffer converts a live buffer's current generation into a
// Snapshot ready to marshal.
func FromCellBuffer(b *render.CellBuffer) Snapshot {
	cells := b.Cells()
	s := Snapshot{Width: b.Width, Height: b.Height, Rows: make([]RowRecord, b.Height)}
	for row := 0; row < b.Height; row++ {
		rec := RowRecord{Cells: make([]CellRecord, b.Width)}
		for col := 0; col < b.Width; col++ {
			rec.Cells[col] = encodeCell(cells[row*b.Width+col])
		}
		s.Rows[row] = rec
	}
	return s
}

// ToCellBuffer reconstructs a fresh CellBuffer from a loaded Snapshot.
func (s Snapshot) ToCellBuffer() *render.CellBuffer {
	b := render.NewCellBuffer(s.Width, s.Height)
	cells := make([]cell.Cell, 0, s.Width*s.Height)
	for _, row := range s.Rows {
		for _, rec := range row.Cells {
			cells = append(cells, decodeCell(rec))
		}
	}
	b.LoadCells(cells)
	return b
}

func encodeCell(c cell.Cell) CellRecord {
	rec := CellRecord{Cluster: c.Cluster, Attr: uint16(c.Style.Attr), FgBasic: c.Style.FgBasic, BgBasic: c.Style.BgBasic}
	if c.Style.FgExt.IsSet() {
		rec.FgExt = encodeExt(c.Style.FgExt)
	}
	if c.Style.BgExt.IsSet() {
		rec.BgExt = encodeExt(c.Style.BgExt)
	}
	return rec
}

func decodeCell(rec CellRecord) cell.Cell {
	st := cell.Style{Attr: cell.Attr(rec.Attr), FgBasic: rec.FgBasic, BgBasic: rec.BgBasic}
	st.FgExt = decodeExt(rec.FgExt)
	st.BgExt = decodeExt(rec.BgExt)
	return cell.Cell{Cluster: rec.Cluster, Style: st}
}

func encodeExt(c cell.ExtColor) string {
	if c.Kind == cell.ColorPalette256 {
		return fmt.Sprintf("p:%d", c.Index)
	}
	return fmt.Sprintf("rgb:%d,%d,%d", c.R, c.G, c.B)
}

func decodeExt(s string) cell.ExtColor {
	if s == "" {
		return cell.ExtColor{}
	}
	var idx uint8
	var r, g, b uint8
	if n, _ := fmt.Sscanf(s, "p:%d", &idx); n == 1 {
		return cell.Palette256(idx)
	}
	if n, _ := fmt.Sscanf(s, "rgb:%d,%d,%d", &r, &g, &b); n == 3 {
		return cell.RGB(r, g, b)
	}
	return cell.ExtColor{}
}

// Save atomically writes snap to path as TOML.
func Save(path string, snap Snapshot) error {
	data, err := toml.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := renameio.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot %q: %w", path, err)
	}
	return nil
}

// Load reads and decodes a Snapshot previously written by Save.
func Load(path string) (Snapshot, error) {
	var s Snapshot
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("read snapshot %q: %w", path, err)
	}
	if err := toml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parse snapshot %q: %w", path, err)
	}
	return s, nil
}
