package disassembler

import (
	"fmt"
	"strings"

	"github.com/Urethramancer/fass/cpu"
)

// Instruction represents a single decoded instruction at a specific address.
type Instruction struct {
	Address  int
	Bytes    []byte
	Mnemonic string // lower case
	Mode     cpu.Mode
	// Operand is the raw operand value. For relative branches it is the
	// target address instead of the displacement.
	Operand int
}

// Size returns the encoded length in bytes.
func (inst *Instruction) Size() int {
	return len(inst.Bytes)
}

// Decode reads the instruction at the start of code, which is located at
// addr. It returns nil for undocumented opcodes and truncated instructions.
func Decode(code []byte, addr int) *Instruction {
	if len(code) == 0 {
		return nil
	}
	def := cpu.Decode(code[0])
	if def == nil || len(code) < def.Length() {
		return nil
	}

	inst := &Instruction{
		Address:  addr,
		Bytes:    code[:def.Length()],
		Mnemonic: strings.ToLower(def.Name),
		Mode:     def.Mode,
	}
	switch def.Mode.OperandSize() {
	case 1:
		inst.Operand = int(code[1])
		if def.Mode == cpu.Relative {
			inst.Operand = addr + def.Length() + int(int8(code[1]))
		}
	case 2:
		inst.Operand = int(cpu.Word(code[1:]))
	}
	return inst
}

// IsFlow returns true for instructions whose operand is a code address.
func (inst *Instruction) IsFlow() bool {
	switch inst.Mode {
	case cpu.Relative:
		return true
	case cpu.Absolute:
		return inst.Mnemonic == "jmp" || inst.Mnemonic == "jsr"
	}
	return false
}

// Terminal reports whether execution never falls through to the next byte.
func (inst *Instruction) Terminal() bool {
	switch inst.Mnemonic {
	case "jmp", "rts", "rti", "brk":
		return true
	}
	return false
}

// reassembles reports whether the source form produced by formatOperand
// encodes back to the same bytes. Absolute addresses below $100 would be
// narrowed to zero page, and branch targets must stay in the address space.
func (inst *Instruction) reassembles() bool {
	name := strings.ToUpper(inst.Mnemonic)
	switch inst.Mode {
	case cpu.Absolute:
		return inst.Operand > 0xFF || !cpu.HasMode(name, cpu.ZeroPage)
	case cpu.AbsoluteX:
		return inst.Operand > 0xFF || !cpu.HasMode(name, cpu.ZeroPageX)
	case cpu.AbsoluteY:
		return inst.Operand > 0xFF || !cpu.HasMode(name, cpu.ZeroPageY)
	case cpu.Relative:
		return inst.Operand >= 0 && inst.Operand <= 0xFFFF
	}
	return true
}

// formatOperand renders the operand in source syntax. target replaces the
// address of flow instructions when it is not empty.
func (inst *Instruction) formatOperand(target string) string {
	v := inst.Operand
	if target == "" {
		target = fmt.Sprintf("$%04x", v)
	}
	switch inst.Mode {
	case cpu.Accumulator:
		return "a"
	case cpu.Immediate:
		return fmt.Sprintf("#$%02x", v)
	case cpu.ZeroPage:
		return fmt.Sprintf("$%02x", v)
	case cpu.ZeroPageX:
		return fmt.Sprintf("$%02x,x", v)
	case cpu.ZeroPageY:
		return fmt.Sprintf("$%02x,y", v)
	case cpu.Absolute, cpu.Relative:
		return target
	case cpu.AbsoluteX:
		return fmt.Sprintf("$%04x,x", v)
	case cpu.AbsoluteY:
		return fmt.Sprintf("$%04x,y", v)
	case cpu.Indirect:
		return fmt.Sprintf("($%04x)", v)
	case cpu.IndexedIndirect:
		return fmt.Sprintf("($%02x,x)", v)
	case cpu.IndirectIndexed:
		return fmt.Sprintf("($%02x),y", v)
	}
	return ""
}

// String returns the instruction in source syntax without labels.
func (inst *Instruction) String() string {
	ops := inst.formatOperand("")
	if ops == "" {
		return inst.Mnemonic
	}
	return inst.Mnemonic + " " + ops
}
