// Package token implements the byte-level ANSI/VT tokenizer: a pure
// function that scans a byte stream and emits an ordered sequence of
// Tokens, without interpreting parameter content or regex matching.
package token

// Kind identifies which alternative a Token holds.
type Kind int

const (
	Text Kind = iota
	Csi
	Osc
	SimpleEsc
	CharsetEsc
	Invalid
)

// Token is a single parsed unit: a text run or a parsed escape sequence.
// Only the fields relevant to Kind are meaningful; Raw always holds the
// exact bytes consumed for this token so that re-emitting every token's
// Raw in order reconstructs the original input.
type Token struct {
	Kind    Kind
	Command byte   // Csi/SimpleEsc: the final/command byte
	Params  string // Csi: literal parameter bytes, unparsed
	Raw     []byte
}

// simpleEscCommands is the fixed set of single-byte ESC commands recognized
// as SimpleEsc rather than Invalid.
var simpleEscCommands = map[byte]bool{
	'7': true, '8': true, 'c': true, 'D': true, 'E': true, 'H': true,
	'M': true, 'N': true, 'O': true, 'Z': true, '=': true, '>': true,
	'<': true, '1': true, '2': true, 's': true, 'u': true,
}

const esc = 0x1b

// Parse scans data and returns the ordered sequence of Tokens. It never
// fails: malformed or truncated escape sequences become Invalid tokens
// carrying whatever bytes were consumed. Concatenating every token's Raw
// in order reproduces data exactly.
func Parse(data []byte) []Token {
	var toks []Token
	i := 0
	for i < len(data) {
		if data[i] != esc {
			j := i
			for j < len(data) && data[j] != esc {
				j++
			}
			toks = append(toks, Token{Kind: Text, Raw: data[i:j]})
			i = j
			continue
		}

		// data[i] == ESC
		if i+1 >= len(data) {
			toks = append(toks, Token{Kind: Invalid, Raw: data[i : i+1]})
			i++
			continue
		}

		next := data[i+1]
		switch {
		case next == '[':
			tok, consumed := parseCSI(data[i:])
			toks = append(toks, tok)
			i += consumed
		case next == ']':
			tok, consumed := parseOSC(data[i:])
			toks = append(toks, tok)
			i += consumed
		case next == '(' || next == ')' || next == '#':
			tok, consumed := parseCharset(data[i:])
			toks = append(toks, tok)
			i += consumed
		case simpleEscCommands[next]:
			toks = append(toks, Token{Kind: SimpleEsc, Command: next, Raw: data[i : i+2]})
			i += 2
		default:
			toks = append(toks, Token{Kind: Invalid, Raw: data[i : i+1]})
			i++
		}
	}
	return toks
}

// parseCSI parses starting at data[0]==ESC, data[1]=='['. Returns the
// token and the number of bytes consumed from data.
func parseCSI(data []byte) (Token, int) {
	j := 2
	// parameter bytes 0x30-0x3F
	for j < len(data) && data[j] >= 0x30 && data[j] <= 0x3f {
		j++
	}
	paramEnd := j
	// intermediate bytes 0x20-0x2F
	for j < len(data) && data[j] >= 0x20 && data[j] <= 0x2f {
		j++
	}
	if j >= len(data) || data[j] < 0x40 || data[j] > 0x7e {
		return Token{Kind: Invalid, Raw: data[:len(data)]}, len(data)
	}
	final := data[j]
	raw := data[:j+1]
	return Token{Kind: Csi, Command: final, Params: string(data[2:paramEnd]), Raw: raw}, j + 1
}

// parseOSC parses starting at data[0]==ESC, data[1]==']'. Terminated by
// BEL, two-byte ST (ESC \\), single-byte ST (0x9C), or end of input
// (Invalid).
func parseOSC(data []byte) (Token, int) {
	j := 2
	for j < len(data) {
		if data[j] == 0x07 {
			return Token{Kind: Osc, Raw: data[:j+1]}, j + 1
		}
		if data[j] == esc && j+1 < len(data) && data[j+1] == '\\' {
			return Token{Kind: Osc, Raw: data[:j+2]}, j + 2
		}
		if data[j] == 0x9c {
			return Token{Kind: Osc, Raw: data[:j+1]}, j + 1
		}
		j++
	}
	return Token{Kind: Invalid, Raw: data[:len(data)]}, len(data)
}

// parseCharset parses starting at data[0]==ESC, data[1] in {(,),#}.
// Consumes exactly one more byte if available.
func parseCharset(data []byte) (Token, int) {
	if len(data) < 3 {
		return Token{Kind: Invalid, Raw: data[:len(data)]}, len(data)
	}
	return Token{Kind: CharsetEsc, Raw: data[:3]}, 3
}
