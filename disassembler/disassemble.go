package disassembler

import (
	"fmt"
	"sort"
	"strings"
)

// block is a run of output: one instruction, or bytes kept as data.
type block struct {
	addr int
	inst *Instruction
	data []byte
}

// Disassemble takes 6502 machine code loaded at origin and returns it as
// source text that assembles back to the same bytes.
func Disassemble(code []byte, origin int) (string, error) {
	return render(code, origin, false)
}

// Listing is like Disassemble, but every line also carries its address and
// the encoded bytes as a comment.
func Listing(code []byte, origin int) (string, error) {
	return render(code, origin, true)
}

// Labels returns the addresses that Disassemble would label, sorted.
func Labels(code []byte, origin int) []int {
	var addrs []int
	for addr := range findLabels(sweep(code, origin)) {
		addrs = append(addrs, addr)
	}
	sort.Ints(addrs)
	return addrs
}

// sweep decodes code front to back. Bytes that do not decode, or would not
// encode the same way again, are collected into data blocks.
func sweep(code []byte, origin int) []block {
	var blocks []block
	for pc := 0; pc < len(code); {
		addr := origin + pc
		inst := Decode(code[pc:], addr)
		if inst != nil && inst.reassembles() {
			blocks = append(blocks, block{addr: addr, inst: inst})
			pc += inst.Size()
			continue
		}

		n := 1
		if inst != nil {
			n = inst.Size()
		}
		if len(blocks) > 0 && blocks[len(blocks)-1].inst == nil {
			last := &blocks[len(blocks)-1]
			last.data = append(last.data, code[pc:pc+n]...)
		} else {
			blocks = append(blocks, block{addr: addr, data: append([]byte(nil), code[pc:pc+n]...)})
		}
		pc += n
	}
	return blocks
}

// findLabels names every flow target that is the start of a decoded instruction.
func findLabels(blocks []block) map[int]string {
	starts := make(map[int]bool)
	for _, b := range blocks {
		if b.inst != nil {
			starts[b.addr] = true
		}
	}
	labels := make(map[int]string)
	for _, b := range blocks {
		if b.inst != nil && b.inst.IsFlow() && starts[b.inst.Operand] {
			labels[b.inst.Operand] = labelName(b.inst.Operand)
		}
	}
	return labels
}

func render(code []byte, origin int, listing bool) (string, error) {
	if origin < 0 || origin+len(code) > 0x10000 {
		return "", fmt.Errorf("%d bytes at $%04x do not fit the 64K address space", len(code), origin)
	}
	if len(code) == 0 {
		return "", nil
	}

	blocks := sweep(code, origin)
	labels := findLabels(blocks)

	var out strings.Builder
	if origin != 0 {
		fmt.Fprintf(&out, "    .org $%04x\n", origin)
	}
	stringCounter := 1
	for _, b := range blocks {
		if b.inst == nil {
			out.WriteString(formatData(b.data, b.addr, &stringCounter, listing))
			continue
		}
		if name, ok := labels[b.addr]; ok {
			fmt.Fprintf(&out, "%s:\n", name)
		}

		inst := b.inst
		target := ""
		if inst.IsFlow() {
			target = labels[inst.Operand]
		}
		line := inst.Mnemonic
		if ops := inst.formatOperand(target); ops != "" {
			line = fmt.Sprintf("%-4s %s", inst.Mnemonic, ops)
		}
		if listing {
			fmt.Fprintf(&out, "    %-20s ; $%04x  %s\n", line, b.addr, hexBytes(inst.Bytes))
		} else {
			fmt.Fprintf(&out, "    %s\n", line)
		}
	}

	return out.String(), nil
}

// labelName returns the generated label for a code address.
func labelName(addr int) string {
	return fmt.Sprintf("L%04x", addr)
}

func hexBytes(b []byte) string {
	parts := make([]string, len(b))
	for i, c := range b {
		parts[i] = fmt.Sprintf("%02x", c)
	}
	return strings.Join(parts, " ")
}
