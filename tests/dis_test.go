package assembler_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Urethramancer/fass/assembler"
	"github.com/Urethramancer/fass/cpu"
	"github.com/Urethramancer/fass/disassembler"
)

// Basic sanity tests
func TestDecodeInstructions(t *testing.T) {
	tests := []struct {
		code []byte
		want string
	}{
		{[]byte{cpu.OPNOP}, "nop"},
		{[]byte{cpu.OPRTS}, "rts"},
		{[]byte{cpu.OPBRK}, "brk"},
		{[]byte{0xA9, 0x10}, "lda #$10"},
		{[]byte{0xA5, 0x10}, "lda $10"},
		{[]byte{0xB6, 0x10}, "ldx $10,y"},
		{[]byte{0xAD, 0x34, 0x12}, "lda $1234"},
		{[]byte{0x9D, 0x00, 0x02}, "sta $0200,x"},
		{[]byte{0xA1, 0x10}, "lda ($10,x)"},
		{[]byte{0xB1, 0x10}, "lda ($10),y"},
		{[]byte{cpu.OPJMI, 0x34, 0x12}, "jmp ($1234)"},
		{[]byte{0x0A}, "asl a"},
	}
	for _, tt := range tests {
		inst := disassembler.Decode(tt.code, 0)
		if inst == nil {
			t.Errorf("% X did not decode", tt.code)
			continue
		}
		if inst.String() != tt.want {
			t.Errorf("% X: got %q, want %q", tt.code, inst.String(), tt.want)
		}
		if inst.Size() != len(tt.code) {
			t.Errorf("% X: size %d", tt.code, inst.Size())
		}
	}
}

func TestDecodeBranchTarget(t *testing.T) {
	inst := disassembler.Decode([]byte{0xD0, 0xFE}, 0x0600)
	if inst == nil || inst.Operand != 0x0600 || inst.String() != "bne $0600" {
		t.Fatalf("got %+v", inst)
	}
	inst = disassembler.Decode([]byte{0xF0, 0x10}, 0x0600)
	if inst == nil || inst.Operand != 0x0612 {
		t.Fatalf("got %+v", inst)
	}
}

func TestDecodeRejects(t *testing.T) {
	if inst := disassembler.Decode([]byte{0x02}, 0); inst != nil {
		t.Errorf("undocumented opcode decoded as %s", inst)
	}
	if inst := disassembler.Decode([]byte{0xAD, 0x34}, 0); inst != nil {
		t.Errorf("truncated instruction decoded as %s", inst)
	}
	if inst := disassembler.Decode(nil, 0); inst != nil {
		t.Errorf("empty input decoded as %s", inst)
	}
}

func TestDisassembleText(t *testing.T) {
	tests := []struct {
		name   string
		code   []byte
		origin int
		want   string
	}{
		{
			"Loop",
			[]byte{0xEA, 0x4C, 0x00, 0x00},
			0,
			"L0000:\n    nop\n    jmp  L0000\n",
		},
		{
			"Origin",
			[]byte{0xEA, 0x4C, 0x00, 0x06},
			0x0600,
			"    .org $0600\nL0600:\n    nop\n    jmp  L0600\n",
		},
		{
			"Undocumented",
			[]byte{0x02, 0x03, 0xEA},
			0,
			"    .byte $02,$03\n    nop\n",
		},
		{
			"NarrowAbsolute",
			[]byte{0xAD, 0x10, 0x00},
			0,
			"    .byte $ad,$10,$00\n",
		},
		{
			"Truncated",
			[]byte{0xEA, 0xAD, 0x34},
			0,
			"    nop\n    .byte $ad,$34\n",
		},
		{
			"PrintableData",
			[]byte{0x22, 0x23, 0x27, 0x2B},
			0,
			"string1:\n    .text \"\\\"#'+\"\n",
		},
	}
	for _, tt := range tests {
		got, err := disassembler.Disassemble(tt.code, tt.origin)
		if err != nil {
			t.Errorf("[%s] %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("[%s] got:\n%s\nwant:\n%s", tt.name, got, tt.want)
		}
	}
}

func TestDisassembleRange(t *testing.T) {
	if _, err := disassembler.Disassemble([]byte{0xEA, 0xEA}, 0xFFFF); err == nil {
		t.Error("expected an error for code past $FFFF")
	}
}

func TestListing(t *testing.T) {
	got, err := disassembler.Listing([]byte{0xA9, 0x01, 0x02}, 0x0600)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"; $0600  a9 01", "; $0602"} {
		if !strings.Contains(got, want) {
			t.Errorf("listing lacks %q:\n%s", want, got)
		}
	}
}

func TestLabels(t *testing.T) {
	code := []byte{0xA2, 0x00, 0xCA, 0xD0, 0xFD, 0x20, 0x00, 0x00, 0x60}
	got := disassembler.Labels(code, 0)
	if len(got) != 2 || got[0] != 0 || got[1] != 2 {
		t.Errorf("got %v, want [0 2]", got)
	}
}

// Disassembled output must assemble back to the original bytes.
func TestRoundTrip(t *testing.T) {
	programs := []struct {
		name, src string
	}{
		{"Scenario", "START: NOP\nJMP START"},
		{"Forward", "JMP SKIP\nNOP\nSKIP: NOP"},
		{"Hello", `
			.org $0600
			CHROUT = $FFD2
			start:  ldx #0
			loop:   lda msg,x
			        beq done
			        jsr CHROUT
			        inx
			        bne loop
			done:   rts
			msg:    .asciiz "Hello, world!"
		`},
		{"Modes", `
			.org $C000
			lda #$01
			sta $20
			sta $20,x
			ldx $30,y
			sta $1234
			sta $1234,x
			lda $1234,y
			lda ($40,x)
			sta ($40),y
			jmp ($FFFC)
			asl
			rol a
			lda $0010
			.byte 2, 3, 4
		`},
		{"Pseudo", "push a\npush flags\ncarry 1\ndecimal 0\npull flags\npull a\ngoto $1234"},
	}
	for _, p := range programs {
		first, err := assembler.Assemble(p.src)
		if err != nil {
			t.Errorf("[%s] %v", p.name, err)
			continue
		}
		text, err := disassembler.Disassemble(first.Code, first.Origin)
		if err != nil {
			t.Errorf("[%s] %v", p.name, err)
			continue
		}
		second, err := assembler.Assemble(text)
		if err != nil {
			t.Errorf("[%s] reassembly failed: %v\n%s", p.name, err, text)
			continue
		}
		if second.Origin != first.Origin || !bytes.Equal(second.Code, first.Code) {
			t.Errorf("[%s] round trip changed the code\nfirst:  % X\nsecond: % X\n%s",
				p.name, first.Code, second.Code, text)
		}
	}
}
