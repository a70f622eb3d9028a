package cpu

import "testing"

func TestOpcodeTable(t *testing.T) {
	count := 0
	for name, modes := range Instructions {
		for mode, op := range modes {
			count++
			inst := Decode(op)
			if inst == nil || inst.Name != name || inst.Mode != mode {
				t.Errorf("opcode $%02X: got %+v, want %s %s", op, inst, name, mode)
			}
		}
	}
	// The documented NMOS 6502 set.
	if count != 151 {
		t.Errorf("table has %d opcodes, want 151", count)
	}
	if len(Mnemonics()) != 56 {
		t.Errorf("table has %d mnemonics, want 56", len(Mnemonics()))
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		name   string
		mode   Mode
		opcode byte
		length int
	}{
		{"NOP", Implied, OPNOP, 1},
		{"JMP", Absolute, OPJMP, 3},
		{"JMP", Indirect, OPJMI, 3},
		{"LDA", Immediate, 0xA9, 2},
		{"LDX", ZeroPageY, 0xB6, 2},
		{"BNE", Relative, 0xD0, 2},
		{"ASL", Accumulator, 0x0A, 1},
	}
	for _, tt := range tests {
		inst, ok := Lookup(tt.name, tt.mode)
		if !ok || inst.Opcode != tt.opcode || inst.Length() != tt.length {
			t.Errorf("%s %s: got %+v (%v)", tt.name, tt.mode, inst, ok)
		}
	}
	if HasMode("LDA", ZeroPageY) {
		t.Error("LDA has no zero page,Y form")
	}
	if IsMnemonic("GOTO") {
		t.Error("GOTO is not a CPU instruction")
	}
}

func TestEndian(t *testing.T) {
	b := make([]byte, 2)
	PutValue(b, 0x1234, 2)
	if b[0] != 0x34 || b[1] != 0x12 || Word(b) != 0x1234 {
		t.Errorf("got % X", b)
	}
	PutValue(b, -2, 1)
	if b[0] != 0xFE {
		t.Errorf("got $%02X", b[0])
	}
	if !Fits(-128, 1) || Fits(-129, 1) || Fits(0x100, 1) || !Fits(0xFFFF, 2) || Fits(0x10000, 2) {
		t.Error("Fits boundaries")
	}
}
