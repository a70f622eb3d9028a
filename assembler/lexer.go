package assembler

import (
	"strings"
	"unicode"
)

// Lexer turns source text into tokens on demand. It is not restartable:
// each call to Next consumes input, and after the end it returns EOF forever.
type Lexer struct {
	src  []rune
	pos  int // index of the next rune to consume
	line int // 1-based line of src[pos]
	col  int // 1-based column of src[pos]
	sink Sink
	// bad holds the lines where a lexical error was reported.
	bad map[int]bool
}

// NewLexer returns a lexer over src. Lexical errors go to sink, which may be nil.
func NewLexer(src string, sink Sink) *Lexer {
	return &Lexer{src: []rune(src), line: 1, col: 1, sink: sink, bad: make(map[int]bool)}
}

func (l *Lexer) peek() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peek2() rune {
	if l.pos+1 >= len(l.src) {
		return 0
	}
	return l.src[l.pos+1]
}

func (l *Lexer) advance() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	r := l.src[l.pos]
	l.pos++
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

func (l *Lexer) report(line, col int, msg string) {
	l.bad[line] = true
	if l.sink != nil {
		l.sink.Report(KindLexical, msg, line, col)
	}
}

// Failed reports whether a lexical error was reported on line so far.
func (l *Lexer) Failed(line int) bool {
	return l.bad[line]
}

// skipSpace discards whitespace and ';' comments.
func (l *Lexer) skipSpace() {
	for l.pos < len(l.src) {
		r := l.peek()
		switch {
		case unicode.IsSpace(r):
			l.advance()
		case r == ';':
			for l.pos < len(l.src) && l.peek() != '\n' {
				l.advance()
			}
		default:
			return
		}
	}
}

// Next returns the next token.
func (l *Lexer) Next() Token {
	for {
		l.skipSpace()
		if l.pos >= len(l.src) {
			return Token{Kind: EOF, Line: l.line, Column: l.col}
		}

		line, col := l.line, l.col
		r := l.peek()
		switch {
		case isIdentStart(r):
			return l.scanIdent(line, col)
		case isDecDigit(r):
			return l.scanNumber(line, col)
		case r == '$' && isHexDigit(l.peek2()):
			l.advance()
			return l.scanDigits(line, col, "$", isHexDigit)
		case r == '%' && isBinDigit(l.peek2()):
			l.advance()
			return l.scanDigits(line, col, "%", isBinDigit)
		case r == '-' && isDecDigit(l.peek2()):
			l.advance()
			tok := l.scanNumber(line, col)
			tok.Text = "-" + tok.Text
			return tok
		case r == '\'':
			if tok, ok := l.scanChar(line, col); ok {
				return tok
			}
			continue
		case r == '"':
			return l.scanString(line, col)
		case r == '.' && isIdentStart(l.peek2()):
			l.advance()
			tok := l.scanIdent(line, col)
			return Token{Kind: DIRECTIVE, Text: "." + tok.Text, Line: line, Column: col}
		case strings.ContainsRune(":,#()=", r):
			l.advance()
			return Token{Kind: PUNCTUATION, Text: string(r), Line: line, Column: col}
		}

		l.advance()
		l.report(line, col, "unexpected character "+quoteRune(r))
	}
}

// scanIdent collects an identifier and classifies mnemonics.
func (l *Lexer) scanIdent(line, col int) Token {
	start := l.pos
	for l.pos < len(l.src) && isIdentPart(l.peek()) {
		l.advance()
	}
	text := string(l.src[start:l.pos])
	kind := IDENTIFIER
	if isMnemonic(strings.ToUpper(text)) {
		kind = MNEMONIC
	}
	return Token{Kind: kind, Text: text, Line: line, Column: col}
}

// scanNumber handles decimal, 0x and 0b literals. The first digit is at peek().
func (l *Lexer) scanNumber(line, col int) Token {
	if l.peek() == '0' {
		switch l.peek2() {
		case 'x', 'X':
			l.advance()
			l.advance()
			return l.scanDigits(line, col, "0x", isHexDigit)
		case 'b', 'B':
			l.advance()
			l.advance()
			return l.scanDigits(line, col, "0b", isBinDigit)
		}
	}
	return l.scanDigits(line, col, "", isDecDigit)
}

func (l *Lexer) scanDigits(line, col int, prefix string, ok func(rune) bool) Token {
	start := l.pos
	for l.pos < len(l.src) && ok(l.peek()) {
		l.advance()
	}
	if l.pos == start {
		l.report(line, col, "missing digits after "+prefix)
	}
	return Token{Kind: NUMBER, Text: prefix + string(l.src[start:l.pos]), Line: line, Column: col}
}

// scanChar reads 'c'. A malformed literal is reported and skipped.
func (l *Lexer) scanChar(line, col int) (Token, bool) {
	l.advance() // opening quote
	c := l.peek()
	if c == 0 || c == '\n' || l.peek2() != '\'' {
		l.report(line, col, "malformed character literal")
		for l.pos < len(l.src) && l.peek() != '\n' {
			if l.advance() == '\'' {
				break
			}
		}
		return Token{}, false
	}
	l.advance()
	l.advance()
	return Token{Kind: NUMBER, Text: "'" + string(c) + "'", Line: line, Column: col}, true
}

// scanString reads "..." and decodes escapes. An unterminated string is
// reported and ends at the end of the line.
func (l *Lexer) scanString(line, col int) Token {
	l.advance() // opening quote
	var sb strings.Builder
	for {
		r := l.peek()
		switch {
		case l.pos >= len(l.src) || r == '\n':
			l.report(line, col, "unterminated string")
			return Token{Kind: STRING, Text: sb.String(), Line: line, Column: col}
		case r == '"':
			l.advance()
			return Token{Kind: STRING, Text: sb.String(), Line: line, Column: col}
		case r == '\\':
			escLine, escCol := l.line, l.col
			l.advance()
			e := l.advance()
			switch e {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			case '0':
				sb.WriteByte(0)
			case '\\', '"':
				sb.WriteRune(e)
			default:
				l.report(escLine, escCol, "unknown escape sequence \\"+string(e))
			}
		default:
			sb.WriteRune(l.advance())
		}
	}
}

func isIdentStart(r rune) bool {
	return r == '_' || (r < unicode.MaxASCII && unicode.IsLetter(r))
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || (r >= '0' && r <= '9')
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func isBinDigit(r rune) bool {
	return r == '0' || r == '1'
}

func quoteRune(r rune) string {
	return "'" + string(r) + "'"
}

func isDecDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
