package assembler

import (
	"strings"
)

// directiveFunc handles one directive statement.
type directiveFunc func(s *session, st Statement) error

// directives maps directive names (lower case, no dot) to their handlers.
// Adding a directive means adding an entry here.
var directives = map[string]directiveFunc{
	"org":    dirOrg,
	"byte":   dirBytes,
	"db":     dirBytes,
	"word":   dirWords,
	"dw":     dirWords,
	"text":   dirText,
	"asciiz": dirText,
	"fill":   dirFill,
	"align":  dirAlign,
	"filler": dirFiller,
	"const":  dirConst,
	"equ":    dirConst,
	"label":  dirLabel,
}

// wantArgs checks the argument count of a directive.
func wantArgs(st Statement, min, max int) error {
	n := len(st.Operands)
	if n < min || n > max {
		if min == max {
			return errorAt(KindSyntax, st.Line, st.Column, ".%s requires %d argument(s), got %d", st.Name, min, n)
		}
		return errorAt(KindSyntax, st.Line, st.Column, ".%s requires %d to %d arguments, got %d", st.Name, min, max, n)
	}
	return nil
}

// constValue returns a value that must be known now: a number, or a name
// defined earlier in the source.
func (s *session) constValue(op Operand) (int, error) {
	switch {
	case op.Indirect:
		return 0, errorAt(KindSyntax, op.Line, op.Column, "indirect operand not allowed here")
	case op.Kind == OpNumber:
		return op.Value, nil
	case op.Kind == OpLabel:
		sym, ok := s.symbols.Lookup(op.Symbol)
		if !ok || !sym.Defined {
			return 0, errorAt(KindSyntax, op.Line, op.Column, "%s must be defined before it is used here", op.Symbol)
		}
		return sym.Value, nil
	}
	return 0, errorAt(KindSyntax, op.Line, op.Column, "expected a number or a name")
}

// dirOrg sets the address of the next byte. The first .org before any output
// moves the origin; later ones pad with the filler byte.
func dirOrg(s *session, st Statement) error {
	if err := wantArgs(st, 1, 1); err != nil {
		return err
	}
	addr, err := s.constValue(st.Operands[0])
	if err != nil {
		return err
	}
	if !s.orgSet && len(s.code) == 0 {
		s.origin = addr
		s.orgSet = true
		return nil
	}
	if addr < s.pc() {
		return errorAt(KindSyntax, st.Line, st.Column,
			"can't set address %s lower than current address %s", hexValue(addr), hexValue(s.pc()))
	}
	return s.pad(st, addr-s.pc(), s.filler)
}

// dirBytes emits byte values and strings.
func dirBytes(s *session, st Statement) error {
	if err := wantArgs(st, 1, maxArgs); err != nil {
		return err
	}
	c := &chunk{s: s}
	for _, op := range st.Operands {
		switch {
		case op.Kind == OpString:
			c.bytes = append(c.bytes, op.Bytes...)
		case (op.Kind == OpNumber || op.Kind == OpLabel || op.Kind == OpImmediate) && !op.Indirect:
			if err := c.put(op, 1, false, 0); err != nil {
				return err
			}
		default:
			return errorAt(KindSyntax, op.Line, op.Column, ".%s accepts numbers, names and strings", st.Name)
		}
	}
	return s.commit(st, c)
}

// dirWords emits little-endian 16-bit values. Names may be forward references.
func dirWords(s *session, st Statement) error {
	if err := wantArgs(st, 1, maxArgs); err != nil {
		return err
	}
	c := &chunk{s: s}
	for _, op := range st.Operands {
		if !op.IsAddress() || op.Indirect {
			return errorAt(KindSyntax, op.Line, op.Column, ".%s accepts numbers and names", st.Name)
		}
		if err := c.put(op, 2, false, 0); err != nil {
			return err
		}
	}
	return s.commit(st, c)
}

// dirText emits strings verbatim; .asciiz adds a terminating zero.
func dirText(s *session, st Statement) error {
	if err := wantArgs(st, 1, maxArgs); err != nil {
		return err
	}
	c := &chunk{s: s}
	for _, op := range st.Operands {
		if op.Kind != OpString {
			return errorAt(KindSyntax, op.Line, op.Column, ".%s accepts only strings", st.Name)
		}
		c.bytes = append(c.bytes, op.Bytes...)
	}
	if st.Name == "asciiz" {
		c.bytes = append(c.bytes, 0)
	}
	return s.commit(st, c)
}

// dirFill emits count bytes of value, or of the current filler.
func dirFill(s *session, st Statement) error {
	if err := wantArgs(st, 1, 2); err != nil {
		return err
	}
	count, err := s.constValue(st.Operands[0])
	if err != nil {
		return err
	}
	if count < 0 {
		return errorAt(KindRange, st.Line, st.Column, ".fill count %d is negative", count)
	}
	b := s.filler
	if len(st.Operands) == 2 {
		v, err := s.byteValue(st.Operands[1])
		if err != nil {
			return err
		}
		b = v
	}
	return s.pad(st, count, b)
}

// dirAlign pads with the filler up to the next multiple of n.
func dirAlign(s *session, st Statement) error {
	if err := wantArgs(st, 1, 1); err != nil {
		return err
	}
	n, err := s.constValue(st.Operands[0])
	if err != nil {
		return err
	}
	if n < 1 {
		return errorAt(KindRange, st.Line, st.Column, ".align needs a positive value, got %d", n)
	}
	return s.pad(st, (n-s.pc()%n)%n, s.filler)
}

// dirFiller changes the byte used by .org, .fill and .align.
func dirFiller(s *session, st Statement) error {
	if err := wantArgs(st, 1, 1); err != nil {
		return err
	}
	op := st.Operands[0]
	if op.Kind == OpLabel && strings.EqualFold(op.Symbol, "default") {
		s.filler = s.asm.filler
		return nil
	}
	b, err := s.byteValue(op)
	if err != nil {
		return err
	}
	s.filler = b
	return nil
}

// dirConst defines a named constant: .const NAME, value (also NAME = value).
func dirConst(s *session, st Statement) error {
	if err := wantArgs(st, 2, 2); err != nil {
		return err
	}
	name := st.Operands[0]
	if name.Kind != OpLabel || name.Indirect {
		return errorAt(KindSyntax, name.Line, name.Column, ".%s needs a name first", st.Name)
	}
	v, err := s.constValue(st.Operands[1])
	if err != nil {
		return err
	}
	if err := s.symbols.DefineConstant(name.Symbol, v); err != nil {
		return errorAt(KindDuplicateLabel, name.Line, name.Column, "%v", err)
	}
	return nil
}

// dirLabel defines a label at an explicit address: .label NAME, address.
func dirLabel(s *session, st Statement) error {
	if err := wantArgs(st, 2, 2); err != nil {
		return err
	}
	name := st.Operands[0]
	if name.Kind != OpLabel || name.Indirect {
		return errorAt(KindSyntax, name.Line, name.Column, ".label needs a name first")
	}
	addr, err := s.constValue(st.Operands[1])
	if err != nil {
		return err
	}
	if err := s.symbols.Define(name.Symbol, addr); err != nil {
		return errorAt(KindDuplicateLabel, name.Line, name.Column, "%v", err)
	}
	return nil
}

// byteValue returns a known value that fits in one byte.
func (s *session) byteValue(op Operand) (byte, error) {
	v, err := s.constValue(op)
	if err != nil {
		return 0, err
	}
	if v < 0 || v > 0xFF {
		return 0, errorAt(KindRange, op.Line, op.Column, "value %s is larger than $FF", hexValue(v))
	}
	return byte(v), nil
}

// maxArgs bounds list directives.
const maxArgs = 1 << 16
