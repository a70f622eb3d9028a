package assembler

import (
	"errors"
	"fmt"

	"github.com/Urethramancer/fass/cpu"
)

// chunk collects the bytes and fixups of one statement. Nothing reaches the
// output buffer unless the whole statement encodes.
type chunk struct {
	s      *session
	bytes  []byte
	fixups []Fixup
}

// put appends op as a width-byte value. Unknown symbols get a zero
// placeholder and a fixup, which only count once the chunk is committed.
func (c *chunk) put(op Operand, width int, relative bool, base int) error {
	v := op.Value
	if op.IsSymbolic() {
		sym, ok := c.s.symbols.Lookup(op.Symbol)
		if !ok || !sym.Defined {
			c.fixups = append(c.fixups, Fixup{
				Offset:   len(c.bytes),
				Symbol:   op.Symbol,
				Width:    width,
				Relative: relative,
				Base:     base,
				Line:     op.Line,
				Column:   op.Column,
			})
			c.bytes = append(c.bytes, make([]byte, width)...)
			return nil
		}
		v = sym.Value
	}

	v, err := encodeValue(v, width, relative, base)
	if err != nil {
		return errorAt(KindRange, op.Line, op.Column, "%v", err)
	}
	buf := make([]byte, width)
	cpu.PutValue(buf, v, width)
	c.bytes = append(c.bytes, buf...)
	return nil
}

// assembleInstruction encodes one instruction through the instruction table.
func (s *session) assembleInstruction(st Statement) error {
	name, ops := st.Name, st.Operands
	if fn, ok := pseudoInstructions[name]; ok {
		var err error
		name, ops, err = fn(ops)
		if err != nil {
			return errorAt(KindSyntax, st.Line, st.Column, "%s %v", st.Name, err)
		}
	}

	mode, arg, err := s.selectMode(name, ops)
	if err != nil {
		return errorAt(KindSyntax, st.Line, st.Column, "%s: %v", name, err)
	}
	inst, ok := cpu.Lookup(name, mode)
	if !ok {
		return errorAt(KindSyntax, st.Line, st.Column, "%s does not support %s addressing", name, mode)
	}

	c := &chunk{s: s, bytes: []byte{inst.Opcode}}
	if arg != nil {
		relative := mode == cpu.Relative
		base := 0
		if relative {
			base = s.pc() + inst.Length()
		}
		if err := c.put(*arg, mode.OperandSize(), relative, base); err != nil {
			return err
		}
	}
	return s.commit(st, c)
}

// selectMode picks the addressing mode from the shape of the operands and
// returns the operand carrying the value, if any.
func (s *session) selectMode(name string, ops []Operand) (cpu.Mode, *Operand, error) {
	switch len(ops) {
	case 0:
		if cpu.HasMode(name, cpu.Implied) {
			return cpu.Implied, nil, nil
		}
		if cpu.HasMode(name, cpu.Accumulator) {
			return cpu.Accumulator, nil, nil
		}
		return 0, nil, errors.New("missing operand")

	case 1:
		op := &ops[0]
		switch {
		case op.IsRegister(cpu.RegA):
			return cpu.Accumulator, nil, nil
		case op.Kind == OpRegister:
			return 0, nil, fmt.Errorf("register %s can't be used here", op.Register)
		case op.Kind == OpString:
			return 0, nil, errors.New("string operands are only allowed in directives")
		case op.Kind == OpImmediate:
			return cpu.Immediate, op, nil
		case op.Indirect && op.Index == cpu.RegX:
			return cpu.IndexedIndirect, op, nil
		case op.Indirect:
			return cpu.Indirect, op, nil
		case cpu.HasMode(name, cpu.Relative):
			return cpu.Relative, op, nil
		}
		return s.addressMode(name, op, cpu.ZeroPage, cpu.Absolute), op, nil

	case 2:
		op, idx := &ops[0], &ops[1]
		if idx.Kind != OpRegister || (idx.Register != cpu.RegX && idx.Register != cpu.RegY) {
			return 0, nil, errors.New("second operand must be X or Y")
		}
		if op.Indirect {
			if op.Index == "" && idx.Register == cpu.RegY {
				return cpu.IndirectIndexed, op, nil
			}
			return 0, nil, errors.New("only (address),Y and (address,X) indexing exist")
		}
		if !op.IsAddress() {
			return 0, nil, errors.New("indexed addressing needs an address")
		}
		if idx.Register == cpu.RegX {
			return s.addressMode(name, op, cpu.ZeroPageX, cpu.AbsoluteX), op, nil
		}
		return s.addressMode(name, op, cpu.ZeroPageY, cpu.AbsoluteY), op, nil
	}

	return 0, nil, fmt.Errorf("too many operands (%d)", len(ops))
}

// addressMode chooses between the zero page and absolute form. Labels always
// take the absolute form so that forward and backward references encode the
// same way; numbers and known constants below $100 use zero page.
func (s *session) addressMode(name string, op *Operand, zp, abs cpu.Mode) cpu.Mode {
	if s.isZeroPage(op) && cpu.HasMode(name, zp) {
		return zp
	}
	if !cpu.HasMode(name, abs) && cpu.HasMode(name, zp) {
		return zp
	}
	return abs
}

func (s *session) isZeroPage(op *Operand) bool {
	v := op.Value
	if op.IsSymbolic() {
		sym, ok := s.symbols.Lookup(op.Symbol)
		if !ok || !sym.Defined || sym.Kind != SymConstant {
			return false
		}
		v = sym.Value
	}
	return v >= 0 && v <= 0xFF
}
