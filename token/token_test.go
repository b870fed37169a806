package token

import "bytes"

import "testing"

func rawConcat(toks []Token) []byte {
	var buf bytes.Buffer
	for _, t := range toks {
		buf.Write(t.Raw)
	}
	return buf.Bytes()
}

func TestParse_TextRun(t *testing.T) {
	toks := Parse([]byte("hello"))
	if len(toks) != 1 || toks[0].Kind != Text || string(toks[0].Raw) != "hello" {
		t.Fatalf("unexpected tokens: %+v", toks)
	}
}

func TestParse_CSI(t *testing.T) {
	toks := Parse([]byte("\x1b[1;31;44m"))
	if len(toks) != 1 {
		t.Fatalf("expected 1 token, got %d: %+v", len(toks), toks)
	}
	tok := toks[0]
	if tok.Kind != Csi || tok.Command != 'm' || tok.Params != "1;31;44" {
		t.Fatalf("unexpected token: %+v", tok)
	}
}

func TestParse_OSC_BEL(t *testing.T) {
	toks := Parse([]byte("\x1b]0;title\x07"))
	if len(toks) != 1 || toks[0].Kind != Osc {
		t.Fatalf("unexpected tokens: %+v", toks)
	}
}

func TestParse_OSC_ST(t *testing.T) {
	toks := Parse([]byte("\x1b]0;title\x1b\\"))
	if len(toks) != 1 || toks[0].Kind != Osc {
		t.Fatalf("unexpected tokens: %+v", toks)
	}
}

func TestParse_OSC_SingleByteST(t *testing.T) {
	toks := Parse([]byte("\x1b]0;title\x9c"))
	if len(toks) != 1 || toks[0].Kind != Osc {
		t.Fatalf("unexpected tokens: %+v", toks)
	}
}

func TestParse_SimpleEsc(t *testing.T) {
	toks := Parse([]byte("\x1b7"))
	if len(toks) != 1 || toks[0].Kind != SimpleEsc || toks[0].Command != '7' {
		t.Fatalf("unexpected tokens: %+v", toks)
	}
}

func TestParse_CharsetEsc(t *testing.T) {
	toks := Parse([]byte("\x1b(B"))
	if len(toks) != 1 || toks[0].Kind != CharsetEsc {
		t.Fatalf("unexpected tokens: %+v", toks)
	}
}

func TestParse_LoneEscIsInvalidAndDropped(t *testing.T) {
	toks := Parse([]byte("\x1bXfoo"))
	if len(toks) != 2 {
		t.Fatalf("expected 2 tokens, got %d: %+v", len(toks), toks)
	}
	if toks[0].Kind != Invalid || string(toks[0].Raw) != "\x1b" {
		t.Fatalf("expected leading invalid ESC, got %+v", toks[0])
	}
	if toks[1].Kind != Text || string(toks[1].Raw) != "Xfoo" {
		t.Fatalf("expected trailing text, got %+v", toks[1])
	}
}

func TestParse_TruncatedCSIAtEOF(t *testing.T) {
	toks := Parse([]byte("\x1b[1;3"))
	if len(toks) != 1 || toks[0].Kind != Invalid {
		t.Fatalf("expected single invalid token, got %+v", toks)
	}
}

func TestParse_TruncatedOSCAtEOF(t *testing.T) {
	toks := Parse([]byte("\x1b]0;no-terminator"))
	if len(toks) != 1 || toks[0].Kind != Invalid {
		t.Fatalf("expected single invalid token, got %+v", toks)
	}
}

func TestParse_NeverCombinesAdjacentTextRuns(t *testing.T) {
	// Two escapes separated by text produce distinct text tokens around them.
	toks := Parse([]byte("ab\x1b7cd\x1b8ef"))
	var textCount int
	for _, tk := range toks {
		if tk.Kind == Text {
			textCount++
		}
	}
	if textCount != 3 {
		t.Fatalf("expected 3 text tokens, got %d: %+v", textCount, toks)
	}
}

func TestParse_IsLossless(t *testing.T) {
	inputs := [][]byte{
		[]byte("Hello, \x1b[1;32mWorld!\x1b[0m"),
		[]byte("\x1b7foo\x1b[5;10H\x1b8"),
		[]byte("\x1b]0;title\x07plain\x1b(Bmore\x1b[2J"),
		[]byte("trailing\x1b"),
		[]byte("\x1b[?25h\x1b[?25l"),
	}
	for _, in := range inputs {
		toks := Parse(in)
		out := rawConcat(toks)
		if !bytes.Equal(in, out) {
			t.Fatalf("lossy round trip: in=%q out=%q toks=%+v", in, out, toks)
		}
	}
}

func TestParse_ParamsNotInterpreted(t *testing.T) {
	toks := Parse([]byte("\x1b[38;5;200m"))
	if toks[0].Params != "38;5;200" {
		t.Fatalf("expected literal params string, got %q", toks[0].Params)
	}
}
