package assembler

import "fmt"

// TokenKind identifies the category of a token.
type TokenKind int

const (
	EOF TokenKind = iota // end of input, repeated forever once reached

	MNEMONIC    // instruction or pseudo-instruction name
	IDENTIFIER  // label, constant or register name
	NUMBER      // $hex, %bin, 0x.., 0b.., decimal, -decimal, 'c'
	STRING      // "..." with escapes already decoded
	DIRECTIVE   // .name
	PUNCTUATION // : , # ( ) =
)

var tokenNames = [...]string{
	EOF:         "EOF",
	MNEMONIC:    "MNEMONIC",
	IDENTIFIER:  "IDENTIFIER",
	NUMBER:      "NUMBER",
	STRING:      "STRING",
	DIRECTIVE:   "DIRECTIVE",
	PUNCTUATION: "PUNCTUATION",
}

func (k TokenKind) String() string {
	if int(k) >= 0 && int(k) < len(tokenNames) {
		return tokenNames[k]
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// Token is a single lexical unit.
type Token struct {
	Kind   TokenKind
	Text   string // source text; decoded contents for STRING
	Line   int    // 1-based
	Column int    // 1-based, in runes
}

func (t Token) String() string {
	return fmt.Sprintf("%-11s %-12q line %d col %d", t.Kind, t.Text, t.Line, t.Column)
}

// isPunct reports whether t is the punctuation character p.
func (t Token) isPunct(p string) bool {
	return t.Kind == PUNCTUATION && t.Text == p
}

// describe is used in syntax error messages.
func (t Token) describe() string {
	switch t.Kind {
	case EOF:
		return "end of input"
	case STRING:
		return fmt.Sprintf("string %q", t.Text)
	default:
		return fmt.Sprintf("%q", t.Text)
	}
}
