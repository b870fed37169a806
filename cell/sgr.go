package cell

// ApplySGR applies a left-to-right sequence of SGR parameter codes to s,
// returning the resulting style. Unknown codes are ignored. This mirrors
// the parameter grammar of ESC[<codes>m as documented for the engine's
// active-style tracking (§4.3): 0 resets, 1-9 set decoration bits, 22-29
// clear them (22 clears both bold and dim), 30-37/90-97 and 40-47/100-107
// select basic colors, 39/49 clear a color, and 38/48 consume a trailing
// "5;n" or "2;r;g;b" extended-color sub-sequence.
func ApplySGR(s Style, codes []int) Style {
	i := 0
	for i < len(codes) {
		code := codes[i]
		switch {
		case code == 0:
			s = Default()
		case code >= 1 && code <= 9:
			if bit, ok := bitForSetCode(code); ok {
				s.Attr |= bit
			}
		case code >= 22 && code <= 29:
			if code == 22 {
				s.Attr &^= Bold
				s.Attr &^= Dim
			} else if bit, ok := bitForClearCode(code); ok {
				s.Attr &^= bit
			}
		case code >= 30 && code <= 37:
			s.FgBasic = code
			s.FgExt = ExtColor{}
		case code >= 90 && code <= 97:
			s.FgBasic = code
			s.FgExt = ExtColor{}
		case code >= 40 && code <= 47:
			s.BgBasic = code
			s.BgExt = ExtColor{}
		case code >= 100 && code <= 107:
			s.BgBasic = code
			s.BgExt = ExtColor{}
		case code == 39:
			s.FgBasic = NoColor
			s.FgExt = ExtColor{}
		case code == 49:
			s.BgBasic = NoColor
			s.BgExt = ExtColor{}
		case code == 38:
			var consumed int
			s.FgExt, s.FgBasic, consumed = parseExtended(codes[i+1:], NoColor)
			i += consumed
		case code == 48:
			var consumed int
			s.BgExt, s.BgBasic, consumed = parseExtended(codes[i+1:], NoColor)
			i += consumed
		default:
			// unknown code: ignored
		}
		i++
	}
	return s
}

// parseExtended consumes the "5;n" or "2;r;g;b" tail following a 38/48
// code and returns the extended color, the cleared basic-color sentinel,
// and the number of extra codes consumed.
func parseExtended(rest []int, clearedBasic int) (ExtColor, int, int) {
	if len(rest) == 0 {
		return ExtColor{}, clearedBasic, 0
	}
	switch rest[0] {
	case 5:
		if len(rest) < 2 {
			return ExtColor{}, clearedBasic, 1
		}
		return Palette256(uint8(rest[1])), clearedBasic, 2
	case 2:
		if len(rest) < 4 {
			return ExtColor{}, clearedBasic, len(rest)
		}
		return RGB(uint8(rest[1]), uint8(rest[2]), uint8(rest[3])), clearedBasic, 4
	default:
		return ExtColor{}, clearedBasic, 1
	}
}

func bitForSetCode(code int) (Attr, bool) {
	for bit, c := range decorationCode {
		if c == code {
			return bit, true
		}
	}
	return 0, false
}

// bitForClearCode maps a 22-29 "turn off" code back to its decoration bit
// (22 is handled specially by the caller for the bold+dim pair).
func bitForClearCode(code int) (Attr, bool) {
	return bitForSetCode(code - 20)
}
