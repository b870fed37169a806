// Package widthfn binds the core engine's external "display width" and
// "grapheme cluster" collaborators (spec.md §1: deliberately out of scope
// for the core, consumed as a display_width(cluster) → {0,1,2} function and
// a cluster iterator) to real Unicode libraries, so the demo and tests run
// against production-grade segmentation instead of a stub.
package widthfn

import (
	"github.com/clipperhouse/displaywidth"
	"github.com/clipperhouse/uax29/v2/graphemes"
	"golang.org/x/text/width"
)

// Clusters splits s into extended grapheme clusters in order, using the
// same UAX#29 segmentation the wider Go terminal ecosystem (uax29/v2) uses.
func Clusters(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	seg := graphemes.FromString(s)
	for seg.Next() {
		out = append(out, seg.Value())
	}
	return out
}

// DisplayWidth returns the number of terminal columns a single grapheme
// cluster occupies: 0 (combining/zero-width), 1, or 2 (wide, e.g. most CJK
// ideographs and emoji). Ambiguous-width codepoints take displaywidth's
// narrow default, matching the common terminal default; the East-Asian-width
// tables are consulted only when displaywidth reports zero.
func DisplayWidth(clusterStr string) int {
	w := displaywidth.Options{}.String(clusterStr)
	switch {
	case w <= 0:
		return normalizeZero(clusterStr)
	case w == 1:
		return 1
	default:
		return 2
	}
}

// normalizeZero double-checks a zero-width verdict against the East-Asian
// width tables for the cluster's lead rune, since displaywidth treats
// unassigned/control input as zero but a lead rune classified Wide/Fullwidth
// there should still occupy two columns.
func normalizeZero(clusterStr string) int {
	for _, r := range clusterStr {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			return 2
		}
		return 0
	}
	return 0
}
