package cpu

import "sort"

// Opcodes used directly by the assembler and its tests.
const (
	OPBRK = 0x00 // BRK
	OPNOP = 0xEA // NOP
	OPJMP = 0x4C // JMP absolute
	OPJMI = 0x6C // JMP indirect
	OPJSR = 0x20 // JSR
	OPRTS = 0x60 // RTS
	OPRTI = 0x40 // RTI
	OPPHA = 0x48 // PHA
	OPPHP = 0x08 // PHP
	OPPLA = 0x68 // PLA
	OPPLP = 0x28 // PLP
	OPCLC = 0x18 // CLC
	OPSEC = 0x38 // SEC
	OPCLI = 0x58 // CLI
	OPSEI = 0x78 // SEI
	OPCLD = 0xD8 // CLD
	OPSED = 0xF8 // SED
	OPCLV = 0xB8 // CLV
)

// Instruction is one opcode of the instruction set.
type Instruction struct {
	Name   string
	Mode   Mode
	Opcode byte
}

// Length is the encoded size of the instruction in bytes.
func (i Instruction) Length() int {
	return 1 + i.Mode.OperandSize()
}

// Instructions maps mnemonics to the opcode for each supported addressing mode.
// New mnemonics are added here; the assembler has no per-instruction logic.
var Instructions = map[string]map[Mode]byte{
	"ADC": {Immediate: 0x69, ZeroPage: 0x65, ZeroPageX: 0x75, Absolute: 0x6D, AbsoluteX: 0x7D, AbsoluteY: 0x79, IndexedIndirect: 0x61, IndirectIndexed: 0x71},
	"AND": {Immediate: 0x29, ZeroPage: 0x25, ZeroPageX: 0x35, Absolute: 0x2D, AbsoluteX: 0x3D, AbsoluteY: 0x39, IndexedIndirect: 0x21, IndirectIndexed: 0x31},
	"ASL": {Accumulator: 0x0A, ZeroPage: 0x06, ZeroPageX: 0x16, Absolute: 0x0E, AbsoluteX: 0x1E},
	"BCC": {Relative: 0x90},
	"BCS": {Relative: 0xB0},
	"BEQ": {Relative: 0xF0},
	"BIT": {ZeroPage: 0x24, Absolute: 0x2C},
	"BMI": {Relative: 0x30},
	"BNE": {Relative: 0xD0},
	"BPL": {Relative: 0x10},
	"BRK": {Implied: OPBRK},
	"BVC": {Relative: 0x50},
	"BVS": {Relative: 0x70},
	"CLC": {Implied: OPCLC},
	"CLD": {Implied: OPCLD},
	"CLI": {Implied: OPCLI},
	"CLV": {Implied: OPCLV},
	"CMP": {Immediate: 0xC9, ZeroPage: 0xC5, ZeroPageX: 0xD5, Absolute: 0xCD, AbsoluteX: 0xDD, AbsoluteY: 0xD9, IndexedIndirect: 0xC1, IndirectIndexed: 0xD1},
	"CPX": {Immediate: 0xE0, ZeroPage: 0xE4, Absolute: 0xEC},
	"CPY": {Immediate: 0xC0, ZeroPage: 0xC4, Absolute: 0xCC},
	"DEC": {ZeroPage: 0xC6, ZeroPageX: 0xD6, Absolute: 0xCE, AbsoluteX: 0xDE},
	"DEX": {Implied: 0xCA},
	"DEY": {Implied: 0x88},
	"EOR": {Immediate: 0x49, ZeroPage: 0x45, ZeroPageX: 0x55, Absolute: 0x4D, AbsoluteX: 0x5D, AbsoluteY: 0x59, IndexedIndirect: 0x41, IndirectIndexed: 0x51},
	"INC": {ZeroPage: 0xE6, ZeroPageX: 0xF6, Absolute: 0xEE, AbsoluteX: 0xFE},
	"INX": {Implied: 0xE8},
	"INY": {Implied: 0xC8},
	"JMP": {Absolute: OPJMP, Indirect: OPJMI},
	"JSR": {Absolute: OPJSR},
	"LDA": {Immediate: 0xA9, ZeroPage: 0xA5, ZeroPageX: 0xB5, Absolute: 0xAD, AbsoluteX: 0xBD, AbsoluteY: 0xB9, IndexedIndirect: 0xA1, IndirectIndexed: 0xB1},
	"LDX": {Immediate: 0xA2, ZeroPage: 0xA6, ZeroPageY: 0xB6, Absolute: 0xAE, AbsoluteY: 0xBE},
	"LDY": {Immediate: 0xA0, ZeroPage: 0xA4, ZeroPageX: 0xB4, Absolute: 0xAC, AbsoluteX: 0xBC},
	"LSR": {Accumulator: 0x4A, ZeroPage: 0x46, ZeroPageX: 0x56, Absolute: 0x4E, AbsoluteX: 0x5E},
	"NOP": {Implied: OPNOP},
	"ORA": {Immediate: 0x09, ZeroPage: 0x05, ZeroPageX: 0x15, Absolute: 0x0D, AbsoluteX: 0x1D, AbsoluteY: 0x19, IndexedIndirect: 0x01, IndirectIndexed: 0x11},
	"PHA": {Implied: OPPHA},
	"PHP": {Implied: OPPHP},
	"PLA": {Implied: OPPLA},
	"PLP": {Implied: OPPLP},
	"ROL": {Accumulator: 0x2A, ZeroPage: 0x26, ZeroPageX: 0x36, Absolute: 0x2E, AbsoluteX: 0x3E},
	"ROR": {Accumulator: 0x6A, ZeroPage: 0x66, ZeroPageX: 0x76, Absolute: 0x6E, AbsoluteX: 0x7E},
	"RTI": {Implied: OPRTI},
	"RTS": {Implied: OPRTS},
	"SBC": {Immediate: 0xE9, ZeroPage: 0xE5, ZeroPageX: 0xF5, Absolute: 0xED, AbsoluteX: 0xFD, AbsoluteY: 0xF9, IndexedIndirect: 0xE1, IndirectIndexed: 0xF1},
	"SEC": {Implied: OPSEC},
	"SED": {Implied: OPSED},
	"SEI": {Implied: OPSEI},
	"STA": {ZeroPage: 0x85, ZeroPageX: 0x95, Absolute: 0x8D, AbsoluteX: 0x9D, AbsoluteY: 0x99, IndexedIndirect: 0x81, IndirectIndexed: 0x91},
	"STX": {ZeroPage: 0x86, ZeroPageY: 0x96, Absolute: 0x8E},
	"STY": {ZeroPage: 0x84, ZeroPageX: 0x94, Absolute: 0x8C},
	"TAX": {Implied: 0xAA},
	"TAY": {Implied: 0xA8},
	"TSX": {Implied: 0xBA},
	"TXA": {Implied: 0x8A},
	"TXS": {Implied: 0x9A},
	"TYA": {Implied: 0x98},
}

// byOpcode is the reverse of Instructions, filled in init.
var byOpcode [256]*Instruction

func init() {
	for name, modes := range Instructions {
		for mode, op := range modes {
			byOpcode[op] = &Instruction{Name: name, Mode: mode, Opcode: op}
		}
	}
}

// Lookup returns the instruction for a mnemonic in the given mode.
func Lookup(mnemonic string, mode Mode) (Instruction, bool) {
	modes, ok := Instructions[mnemonic]
	if !ok {
		return Instruction{}, false
	}
	op, ok := modes[mode]
	if !ok {
		return Instruction{}, false
	}
	return Instruction{Name: mnemonic, Mode: mode, Opcode: op}, true
}

// HasMode reports whether mnemonic supports mode.
func HasMode(mnemonic string, mode Mode) bool {
	_, ok := Lookup(mnemonic, mode)
	return ok
}

// IsMnemonic reports whether s (upper case) is in the instruction table.
func IsMnemonic(s string) bool {
	_, ok := Instructions[s]
	return ok
}

// Decode returns the instruction for an opcode byte, or nil when the opcode
// is not part of the documented set.
func Decode(op byte) *Instruction {
	return byOpcode[op]
}

// Mnemonics returns all mnemonics in sorted order.
func Mnemonics() []string {
	names := make([]string, 0, len(Instructions))
	for name := range Instructions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
