package assembler

import (
	"bytes"
	"testing"
)

func TestEncodeValue(t *testing.T) {
	tests := []struct {
		name     string
		v, width int
		relative bool
		base     int
		want     int
		ok       bool
	}{
		{"Byte", 0xFF, 1, false, 0, 0xFF, true},
		{"NegativeByte", -1, 1, false, 0, -1, true},
		{"ByteOverflow", 0x100, 1, false, 0, 0, false},
		{"Word", 0xFFFF, 2, false, 0, 0xFFFF, true},
		{"WordOverflow", 0x10000, 2, false, 0, 0, false},
		{"BranchBack", 0x0600, 1, true, 0x0602, -2, true},
		{"BranchForwardMax", 0x0681, 1, true, 0x0602, 127, true},
		{"BranchTooFar", 0x0682, 1, true, 0x0602, 0, false},
		{"BranchBackMax", 0x0582, 1, true, 0x0602, -128, true},
	}
	for _, tt := range tests {
		got, err := encodeValue(tt.v, tt.width, tt.relative, tt.base)
		if (err == nil) != tt.ok {
			t.Errorf("[%s] error = %v", tt.name, err)
			continue
		}
		if tt.ok && got != tt.want {
			t.Errorf("[%s] got %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestResolveFixups(t *testing.T) {
	st := NewSymbolTable()
	st.Resolve("target", 1, 5)
	st.Resolve("missing", 2, 5)
	st.Define("target", 0x1234)
	st.Define("near", 0x0010)

	code := []byte{0x4C, 0, 0, 0xD0, 0, 0x20, 0, 0, 0x4C, 0, 0}
	fixups := []Fixup{
		{Offset: 1, Symbol: "target", Width: 2, Line: 1, Column: 5},
		{Offset: 4, Symbol: "near", Width: 1, Relative: true, Base: 5, Line: 2, Column: 5},
		{Offset: 6, Symbol: "missing", Width: 2, Line: 2, Column: 5},
		{Offset: 9, Symbol: "MISSING", Width: 2, Line: 3, Column: 5},
	}
	sink := &collectSink{}
	resolveFixups(code, fixups, st, sink)

	want := []byte{0x4C, 0x34, 0x12, 0xD0, 0x0B, 0x20, 0, 0, 0x4C, 0, 0}
	if !bytes.Equal(code, want) {
		t.Errorf("got % X, want % X", code, want)
	}
	if len(sink.diags) != 0 {
		t.Errorf("unexpected diagnostics: %v", sink.diags)
	}
}

func TestReportUndefined(t *testing.T) {
	st := NewSymbolTable()
	st.Resolve("Zeta", 3, 9)
	st.Resolve("alpha", 5, 1)
	st.Resolve("ZETA", 1, 1)
	st.Resolve("Beta", 2, 4)
	st.Define("beta", 1)

	sink := &collectSink{}
	reportUndefined(st, sink)
	if len(sink.diags) != 2 {
		t.Fatalf("got %d diagnostics, want 2: %v", len(sink.diags), sink.diags)
	}
	first, second := sink.diags[0], sink.diags[1]
	if first.Kind != KindUndefinedLabel || first.Line != 3 || first.Column != 9 || first.Msg != "label Zeta is not defined" {
		t.Errorf("first: %+v", first)
	}
	if second.Line != 5 || second.Msg != "label alpha is not defined" {
		t.Errorf("second: %+v", second)
	}
}

func TestResolveFixupsRange(t *testing.T) {
	st := NewSymbolTable()
	st.Define("far", 0x0300)
	code := []byte{0xA9, 0}
	sink := &collectSink{}
	resolveFixups(code, []Fixup{{Offset: 1, Symbol: "far", Width: 1, Line: 1, Column: 5}}, st, sink)
	if len(sink.diags) != 1 || sink.diags[0].Kind != KindRange {
		t.Errorf("diagnostics: %v", sink.diags)
	}
	if code[1] != 0 {
		t.Errorf("placeholder overwritten with $%02X", code[1])
	}
}
