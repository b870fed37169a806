// Package cell defines the per-cell data model shared by the printable and
// style grids: a grapheme cluster, a decoration bitmask, and optional basic
// or extended foreground/background colors.
package cell

// Attr is a bitmask over the nine standard SGR decoration codes.
type Attr uint16

const (
	Bold Attr = 1 << iota
	Dim
	Italic
	Underline
	Blink
	RapidBlink
	Reverse
	Hidden
	Strikethrough
)

// Has reports whether every bit in mask is set in a.
func (a Attr) Has(mask Attr) bool { return a&mask == mask }

// decorationCode maps a single decoration bit to its SGR "set" code.
var decorationCode = map[Attr]int{
	Bold:          1,
	Dim:           2,
	Italic:        3,
	Underline:     4,
	Blink:         5,
	RapidBlink:    6,
	Reverse:       7,
	Hidden:        8,
	Strikethrough: 9,
}

// decorationBits lists the bits in ascending SGR-code order, used whenever
// decorations must be re-emitted deterministically.
var decorationBits = []Attr{Bold, Dim, Italic, Underline, Blink, RapidBlink, Reverse, Hidden, Strikethrough}

// DecorationBits returns the standard decoration bits in ascending SGR-code order.
func DecorationBits() []Attr {
	out := make([]Attr, len(decorationBits))
	copy(out, decorationBits)
	return out
}

// SetCode returns the SGR "turn on" code for a single decoration bit, and
// whether bit names exactly one known bit.
func SetCode(bit Attr) (int, bool) {
	c, ok := decorationCode[bit]
	return c, ok
}

// ColorKind distinguishes the two extended-color encodings.
type ColorKind int

const (
	ColorNone ColorKind = iota
	ColorPalette256
	ColorRGB
)

// ExtColor is an extended (256-palette or truecolor) color descriptor.
// The zero value means "no extended color".
type ExtColor struct {
	Kind    ColorKind
	Index   uint8
	R, G, B uint8
}

// Palette256 builds an extended 256-color-palette descriptor.
func Palette256(n uint8) ExtColor { return ExtColor{Kind: ColorPalette256, Index: n} }

// RGB builds an extended truecolor descriptor.
func RGB(r, g, b uint8) ExtColor { return ExtColor{Kind: ColorRGB, R: r, G: g, B: b} }

// IsSet reports whether c names an actual color.
func (c ExtColor) IsSet() bool { return c.Kind != ColorNone }

// NoColor is the sentinel for "basic color absent" in FgBasic/BgBasic.
const NoColor = -1

// Style is the full active-rendition state: decoration bits plus
// foreground/background, each either a basic ANSI code, an extended color,
// or absent. FgBasic/FgExt are mutually exclusive, as are BgBasic/BgExt.
type Style struct {
	Attr    Attr
	FgBasic int
	BgBasic int
	FgExt   ExtColor
	BgExt   ExtColor
}

// Default is the reset style: no decorations, no colors.
func Default() Style {
	return Style{FgBasic: NoColor, BgBasic: NoColor}
}

// HasFg reports whether a foreground color (basic or extended) is set.
func (s Style) HasFg() bool { return s.FgBasic != NoColor || s.FgExt.IsSet() }

// HasBg reports whether a background color (basic or extended) is set.
func (s Style) HasBg() bool { return s.BgBasic != NoColor || s.BgExt.IsSet() }

// Cell is a single position in the terminal grid: a printable cluster plus
// the style stamped on it when it was written. The empty cluster marks a
// continuation cell occupying the right half of a wide cluster to its left.
type Cell struct {
	Cluster string
	Style   Style
}

// Blank is a space cluster with the default (reset) style.
func Blank() Cell {
	return Cell{Cluster: " ", Style: Default()}
}

// BlankStyled is a space cluster carrying the given style, the shape of an
// erased cell under a non-default active background.
func BlankStyled(s Style) Cell {
	return Cell{Cluster: " ", Style: s}
}

// IsContinuation reports whether c is the empty-cluster right half of a
// wide cluster.
func (c Cell) IsContinuation() bool { return c.Cluster == "" }

// Continuation returns the continuation cell for a wide cluster written
// with style s: empty cluster, style mirrors the left half.
func Continuation(s Style) Cell {
	return Cell{Cluster: "", Style: s}
}
