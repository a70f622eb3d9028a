package assembler

import (
	"fmt"
	"sort"

	"github.com/Urethramancer/fass/cpu"
)

// Fixup is a placeholder in the output waiting for a symbol's value.
type Fixup struct {
	Offset   int    // index of the placeholder in the output buffer
	Symbol   string // name the placeholder refers to
	Width    int    // placeholder size in bytes
	Relative bool   // store value-Base instead of value
	Base     int    // address that relative values are measured from
	Line     int
	Column   int
}

// encodeValue applies relative arithmetic and checks that the result fits.
func encodeValue(v, width int, relative bool, base int) (int, error) {
	if relative {
		d := v - base
		if width == 1 && (d < -128 || d > 127) {
			return 0, fmt.Errorf("branch offset %d out of range -128..127", d)
		}
		return d, nil
	}
	if !cpu.Fits(v, width) {
		return 0, fmt.Errorf("value %s does not fit in %d byte(s)", hexValue(v), width)
	}
	return v, nil
}

// resolveFixups patches every placeholder whose symbol is now known.
// Placeholders for undefined names stay zero. Patches overwrite bytes in
// place; code never changes length.
func resolveFixups(code []byte, fixups []Fixup, symbols *SymbolTable, sink Sink) {
	for _, f := range fixups {
		sym, ok := symbols.Lookup(f.Symbol)
		if !ok || !sym.Defined {
			continue
		}
		v, err := encodeValue(sym.Value, f.Width, f.Relative, f.Base)
		if err != nil {
			sink.Report(KindRange, fmt.Sprintf("%s: %v", f.Symbol, err), f.Line, f.Column)
			continue
		}
		cpu.PutValue(code[f.Offset:f.Offset+f.Width], v, f.Width)
	}
}

// reportUndefined reports each name that is still undefined once, at its
// first reference, in source order.
func reportUndefined(symbols *SymbolTable, sink Sink) {
	var list []Symbol
	for _, name := range symbols.Undefined() {
		sym, _ := symbols.Lookup(name)
		list = append(list, sym)
	}
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Line != list[j].Line {
			return list[i].Line < list[j].Line
		}
		return list[i].Column < list[j].Column
	})
	for _, sym := range list {
		sink.Report(KindUndefinedLabel, fmt.Sprintf("label %s is not defined", sym.Name), sym.Line, sym.Column)
	}
}
