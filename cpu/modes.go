package cpu

// Mode is a 6502 addressing mode.
type Mode int

const (
	// Implied takes no operand: NOP
	Implied Mode = iota
	// Accumulator operates on A: ASL A
	Accumulator
	// Immediate carries a one-byte value: LDA #$10
	Immediate
	// ZeroPage addresses the first 256 bytes: LDA $10
	ZeroPage
	// ZeroPageX is zero page indexed by X: LDA $10,X
	ZeroPageX
	// ZeroPageY is zero page indexed by Y: LDX $10,Y
	ZeroPageY
	// Absolute is a full 16-bit address: JMP $1234
	Absolute
	// AbsoluteX is absolute indexed by X: LDA $1234,X
	AbsoluteX
	// AbsoluteY is absolute indexed by Y: LDA $1234,Y
	AbsoluteY
	// Indirect reads the target from memory: JMP ($1234)
	Indirect
	// IndexedIndirect is (zp,X).
	IndexedIndirect
	// IndirectIndexed is (zp),Y.
	IndirectIndexed
	// Relative is a signed branch displacement: BNE loop
	Relative
)

var modeNames = [...]string{
	Implied:         "implied",
	Accumulator:     "accumulator",
	Immediate:       "immediate",
	ZeroPage:        "zero page",
	ZeroPageX:       "zero page,X",
	ZeroPageY:       "zero page,Y",
	Absolute:        "absolute",
	AbsoluteX:       "absolute,X",
	AbsoluteY:       "absolute,Y",
	Indirect:        "indirect",
	IndexedIndirect: "(indirect,X)",
	IndirectIndexed: "(indirect),Y",
	Relative:        "relative",
}

func (m Mode) String() string {
	if m >= 0 && int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "unknown"
}

// OperandSize returns the number of operand bytes that follow the opcode.
func (m Mode) OperandSize() int {
	switch m {
	case Implied, Accumulator:
		return 0
	case Absolute, AbsoluteX, AbsoluteY, Indirect:
		return 2
	default:
		return 1
	}
}

// Register names recognised in operands.
const (
	RegA     = "A"
	RegX     = "X"
	RegY     = "Y"
	RegFlags = "FLAGS"
)

// IsRegister reports whether name (upper case) is a register name.
func IsRegister(name string) bool {
	switch name {
	case RegA, RegX, RegY, RegFlags:
		return true
	}
	return false
}
