package assembler

import "testing"

type collectSink struct {
	diags []Diagnostic
}

func (c *collectSink) Report(kind Kind, msg string, line, column int) {
	c.diags = append(c.diags, Diagnostic{Kind: kind, Msg: msg, Line: line, Column: column})
}

func lexAll(src string, sink Sink) []Token {
	l := NewLexer(src, sink)
	var toks []Token
	for {
		t := l.Next()
		toks = append(toks, t)
		if t.Kind == EOF {
			return toks
		}
	}
}

func TestLexerTokens(t *testing.T) {
	src := "start: LDA #$1F ; load\n\tsta (ptr),y\n.byte \"a\\\"b\", 'c', %101, -5, 0x10, 0b11\nX = 10"
	want := []struct {
		kind TokenKind
		text string
		line int
		col  int
	}{
		{IDENTIFIER, "start", 1, 1},
		{PUNCTUATION, ":", 1, 6},
		{MNEMONIC, "LDA", 1, 8},
		{PUNCTUATION, "#", 1, 12},
		{NUMBER, "$1F", 1, 13},
		{MNEMONIC, "sta", 2, 2},
		{PUNCTUATION, "(", 2, 6},
		{IDENTIFIER, "ptr", 2, 7},
		{PUNCTUATION, ")", 2, 10},
		{PUNCTUATION, ",", 2, 11},
		{IDENTIFIER, "y", 2, 12},
		{DIRECTIVE, ".byte", 3, 1},
		{STRING, "a\"b", 3, 7},
		{PUNCTUATION, ",", 3, 13},
		{NUMBER, "'c'", 3, 15},
		{PUNCTUATION, ",", 3, 18},
		{NUMBER, "%101", 3, 20},
		{PUNCTUATION, ",", 3, 24},
		{NUMBER, "-5", 3, 26},
		{PUNCTUATION, ",", 3, 28},
		{NUMBER, "0x10", 3, 30},
		{PUNCTUATION, ",", 3, 34},
		{NUMBER, "0b11", 3, 36},
		{IDENTIFIER, "X", 4, 1},
		{PUNCTUATION, "=", 4, 3},
		{NUMBER, "10", 4, 5},
		{EOF, "", 4, 7},
	}

	sink := &collectSink{}
	got := lexAll(src, sink)
	if len(sink.diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", sink.diags)
	}
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d:\n%v", len(got), len(want), got)
	}
	for i, w := range want {
		g := got[i]
		if g.Kind != w.kind || g.Text != w.text || g.Line != w.line || g.Column != w.col {
			t.Errorf("token %d: got %s, want %s %q line %d col %d", i, g, w.kind, w.text, w.line, w.col)
		}
	}
}

func TestLexerEOFRepeats(t *testing.T) {
	l := NewLexer("nop", nil)
	l.Next()
	for i := 0; i < 3; i++ {
		if tok := l.Next(); tok.Kind != EOF {
			t.Fatalf("got %s after end of input", tok)
		}
	}
}

func TestLexerPseudoMnemonics(t *testing.T) {
	for _, name := range []string{"goto", "PUSH", "Pull", "carry"} {
		toks := lexAll(name, nil)
		if toks[0].Kind != MNEMONIC {
			t.Errorf("%s lexed as %s", name, toks[0].Kind)
		}
	}
}

func TestLexerErrors(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		count int
		line  int
		col   int
	}{
		{"BadChar", "nop\n  @ nop", 1, 2, 3},
		{"Unterminated", "\"abc\nnop", 1, 1, 1},
		{"BadEscape", "\"a\\qb\"", 1, 1, 3},
		{"BadCharLiteral", "'ab", 1, 1, 1},
	}
	for _, tc := range tests {
		sink := &collectSink{}
		lexAll(tc.src, sink)
		if len(sink.diags) != tc.count {
			t.Errorf("[%s] got %d diagnostics, want %d: %v", tc.name, len(sink.diags), tc.count, sink.diags)
			continue
		}
		d := sink.diags[0]
		if d.Kind != KindLexical || d.Line != tc.line || d.Column != tc.col {
			t.Errorf("[%s] got %s at %d:%d, want Lexical at %d:%d", tc.name, d.Kind, d.Line, d.Column, tc.line, tc.col)
		}
	}
}
