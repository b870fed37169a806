package render

import (
	"strconv"
	"strings"

	"github.com/kimaguri/vtcell/cell"
)

// styleTracker tracks a real terminal's active SGR rendition and computes
// the minimal escape sequence to bring it to successive target styles.
// Grounded on the bit-per-decoration SGR model of an ANSI attribute
// encoder, run here in the opposite direction (style → codes rather than
// codes → style).
type styleTracker struct {
	active cell.Style
}

func newStyleTracker(initial cell.Style) *styleTracker {
	return &styleTracker{active: initial}
}

// Move returns the SGR escape sequence (possibly empty) that brings the
// tracked style to target, and updates the tracked state.
func (t *styleTracker) Move(target cell.Style) []byte {
	current := t.active
	t.active = target
	if current == target {
		return nil
	}

	turnedOff := current.Attr &^ target.Attr
	fgBoundary := current.FgExt.IsSet() && !target.FgExt.IsSet() && target.FgBasic != cell.NoColor
	bgBoundary := current.BgExt.IsSet() && !target.BgExt.IsSet() && target.BgBasic != cell.NoColor
	needsReset := turnedOff != 0 || fgBoundary || bgBoundary

	var codes []int
	if needsReset {
		codes = append(codes, 0)
		for _, bit := range cell.DecorationBits() {
			if target.Attr.Has(bit) {
				if c, ok := cell.SetCode(bit); ok {
					codes = append(codes, c)
				}
			}
		}
		codes = append(codes, fgCodes(target)...)
		codes = append(codes, bgCodes(target)...)
	} else {
		added := target.Attr &^ current.Attr
		for _, bit := range cell.DecorationBits() {
			if added.Has(bit) {
				if c, ok := cell.SetCode(bit); ok {
					codes = append(codes, c)
				}
			}
		}
		if !fgEqual(current, target) {
			codes = append(codes, fgCodes(target)...)
		}
		if !bgEqual(current, target) {
			codes = append(codes, bgCodes(target)...)
		}
	}

	if len(codes) == 0 {
		return nil
	}
	return sgrBytes(codes)
}

func fgEqual(a, b cell.Style) bool { return a.FgBasic == b.FgBasic && a.FgExt == b.FgExt }
func bgEqual(a, b cell.Style) bool { return a.BgBasic == b.BgBasic && a.BgExt == b.BgExt }

func fgCodes(s cell.Style) []int {
	switch {
	case s.FgExt.Kind == cell.ColorPalette256:
		return []int{38, 5, int(s.FgExt.Index)}
	case s.FgExt.Kind == cell.ColorRGB:
		return []int{38, 2, int(s.FgExt.R), int(s.FgExt.G), int(s.FgExt.B)}
	case s.FgBasic != cell.NoColor:
		return []int{s.FgBasic}
	default:
		return []int{39}
	}
}

func bgCodes(s cell.Style) []int {
	switch {
	case s.BgExt.Kind == cell.ColorPalette256:
		return []int{48, 5, int(s.BgExt.Index)}
	case s.BgExt.Kind == cell.ColorRGB:
		return []int{48, 2, int(s.BgExt.R), int(s.BgExt.G), int(s.BgExt.B)}
	case s.BgBasic != cell.NoColor:
		return []int{s.BgBasic}
	default:
		return []int{49}
	}
}

func sgrBytes(codes []int) []byte {
	parts := make([]string, len(codes))
	for i, c := range codes {
		parts[i] = strconv.Itoa(c)
	}
	return []byte("\x1b[" + strings.Join(parts, ";") + "m")
}
