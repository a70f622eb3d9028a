package assembler

import (
	"errors"
	"strings"

	"github.com/Urethramancer/fass/cpu"
)

// Parser recognises statements in the token stream:
//
//	program     := statement*
//	statement   := label-def | instruction | directive | assignment
//	label-def   := IDENTIFIER ':'
//	instruction := MNEMONIC [operand (',' operand)*]
//	directive   := DIRECTIVE [argument (','? argument)*]
//	assignment  := IDENTIFIER '=' value
//
// Operands and arguments must stay on the line where their statement starts.
// After a syntax error the rest of that line is discarded.
type Parser struct {
	lex  *Lexer
	sink Sink
	prev Token
	cur  Token
	next Token
}

// NewParser returns a parser reading from lex. Syntax errors go to sink, which may be nil.
func NewParser(lex *Lexer, sink Sink) *Parser {
	p := &Parser{lex: lex, sink: sink}
	p.cur = lex.Next()
	p.next = lex.Next()
	return p
}

func (p *Parser) advance() Token {
	t := p.cur
	p.prev = t
	p.cur = p.next
	p.next = p.lex.Next()
	return t
}

// onLine reports whether the current token continues a statement on line.
func (p *Parser) onLine(line int) bool {
	return p.cur.Kind != EOF && p.cur.Line == line
}

// Next returns the next complete statement. It returns false at the end of input.
func (p *Parser) Next() (Statement, bool) {
	for p.cur.Kind != EOF {
		line := p.cur.Line
		st, err := p.statement()
		if err == nil {
			// The lexer has already reported what is wrong with this line.
			if p.lex.Failed(line) {
				for p.onLine(line) {
					p.advance()
				}
				continue
			}
			return st, true
		}
		for p.onLine(line) {
			p.advance()
		}
		if !p.lex.Failed(line) {
			p.report(err)
		}
	}
	return Statement{}, false
}

func (p *Parser) report(err error) {
	if p.sink == nil {
		return
	}
	var d Diagnostic
	if errors.As(err, &d) {
		p.sink.Report(d.Kind, d.Msg, d.Line, d.Column)
		return
	}
	p.sink.Report(KindSyntax, err.Error(), p.cur.Line, p.cur.Column)
}

func (p *Parser) unexpected(tok Token, what string) error {
	return errorAt(KindSyntax, tok.Line, tok.Column, "unexpected %s, expected %s", tok.describe(), what)
}

// statement parses one statement starting at the current token.
func (p *Parser) statement() (Statement, error) {
	start := p.cur
	st := Statement{Line: start.Line, Column: start.Column}

	switch start.Kind {
	case IDENTIFIER:
		if cpu.IsRegister(strings.ToUpper(start.Text)) {
			return st, errorAt(KindSyntax, start.Line, start.Column, "%s is a register name", start.Text)
		}
		sameLine := p.next.Line == start.Line
		switch {
		case sameLine && p.next.isPunct(":"):
			p.advance()
			p.advance()
			st.Type = StmtLabel
			st.Name = start.Text
			return st, nil

		case sameLine && p.next.isPunct("="):
			p.advance()
			p.advance()
			value, err := p.value(start.Line)
			if err != nil {
				return st, err
			}
			st.Type = StmtDirective
			st.Name = "const"
			st.Operands = []Operand{
				{Kind: OpLabel, Symbol: start.Text, Line: start.Line, Column: start.Column},
				value,
			}
			return st, p.endOfStatement(start.Line)
		}
		return st, errorAt(KindSyntax, start.Line, start.Column, "unknown instruction %q (missing ':' after label?)", start.Text)

	case MNEMONIC:
		p.advance()
		st.Type = StmtInstruction
		st.Name = strings.ToUpper(start.Text)
		if p.onLine(start.Line) {
			ops, err := p.operandList(start.Line)
			if err != nil {
				return st, err
			}
			st.Operands = ops
		}
		return st, p.endOfStatement(start.Line)

	case DIRECTIVE:
		p.advance()
		st.Type = StmtDirective
		st.Name = strings.ToLower(strings.TrimPrefix(start.Text, "."))
		for p.onLine(start.Line) {
			arg, err := p.operand(start.Line)
			if err != nil {
				return st, err
			}
			st.Operands = append(st.Operands, arg)
			if p.onLine(start.Line) && p.cur.isPunct(",") {
				comma := p.advance()
				if !p.onLine(start.Line) {
					return st, errorAt(KindSyntax, comma.Line, comma.Column, "missing argument after ','")
				}
			}
		}
		return st, nil
	}

	return st, p.unexpected(start, "label, instruction or directive")
}

// endOfStatement fails if anything else follows on the statement's line.
func (p *Parser) endOfStatement(line int) error {
	if p.onLine(line) {
		return p.unexpected(p.cur, "end of line")
	}
	return nil
}

// operandList parses operand (',' operand)*.
func (p *Parser) operandList(line int) ([]Operand, error) {
	var ops []Operand
	for {
		op, err := p.operand(line)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
		if !p.onLine(line) || !p.cur.isPunct(",") {
			return ops, nil
		}
		p.advance()
	}
}

// operand parses '#' value | '(' value [',' X] ')' | STRING | value.
func (p *Parser) operand(line int) (Operand, error) {
	if !p.onLine(line) {
		return Operand{}, errorAt(KindSyntax, p.prev.Line, p.prev.Column, "missing operand after %s", p.prev.describe())
	}
	tok := p.cur

	switch {
	case tok.isPunct("#"):
		p.advance()
		v, err := p.value(line)
		if err != nil {
			return v, err
		}
		if v.Kind == OpRegister {
			return v, errorAt(KindSyntax, v.Line, v.Column, "register %s can't be used as an immediate value", v.Register)
		}
		v.Kind = OpImmediate
		v.Line, v.Column = tok.Line, tok.Column
		return v, nil

	case tok.isPunct("("):
		p.advance()
		v, err := p.value(line)
		if err != nil {
			return v, err
		}
		if v.Kind == OpRegister {
			return v, errorAt(KindSyntax, v.Line, v.Column, "register %s can't be used as an address", v.Register)
		}
		if p.onLine(line) && p.cur.isPunct(",") {
			p.advance()
			if !p.onLine(line) || p.cur.Kind != IDENTIFIER || strings.ToUpper(p.cur.Text) != cpu.RegX {
				return v, p.unexpected(p.cur, "X")
			}
			p.advance()
			v.Index = cpu.RegX
		}
		if !p.onLine(line) || !p.cur.isPunct(")") {
			return v, p.unexpected(p.cur, "')'")
		}
		p.advance()
		v.Indirect = true
		v.Line, v.Column = tok.Line, tok.Column
		return v, nil

	case tok.Kind == STRING:
		p.advance()
		return Operand{Kind: OpString, Bytes: []byte(tok.Text), Line: tok.Line, Column: tok.Column}, nil
	}

	return p.value(line)
}

// value parses NUMBER | IDENTIFIER. Identifiers naming registers become
// register operands.
func (p *Parser) value(line int) (Operand, error) {
	tok := p.cur
	if !p.onLine(line) {
		return Operand{}, errorAt(KindSyntax, p.prev.Line, p.prev.Column, "missing value after %s", p.prev.describe())
	}
	op := Operand{Line: tok.Line, Column: tok.Column}

	switch tok.Kind {
	case NUMBER:
		v, err := parseNumber(tok.Text)
		if err != nil && !errors.Is(err, ErrRange) {
			return op, errorAt(KindSyntax, tok.Line, tok.Column, "%v", err)
		}
		if err != nil || v > maxValue || v < minValue {
			return op, errorAt(KindRange, tok.Line, tok.Column,
				"value %s not allowed, it must be in range -128..$FFFF", tok.Text)
		}
		p.advance()
		op.Kind = OpNumber
		op.Value = int(v)
		return op, nil

	case IDENTIFIER:
		p.advance()
		if up := strings.ToUpper(tok.Text); cpu.IsRegister(up) {
			op.Kind = OpRegister
			op.Register = up
			return op, nil
		}
		op.Kind = OpLabel
		op.Symbol = tok.Text
		return op, nil
	}

	return op, p.unexpected(tok, "number or name")
}
