package assembler

import (
	"fmt"
	"sort"
)

// SymbolKind tells labels and constants apart.
type SymbolKind int

const (
	// SymLabel is an address in the output.
	SymLabel SymbolKind = iota
	// SymConstant is a named value.
	SymConstant
)

func (k SymbolKind) String() string {
	if k == SymConstant {
		return "constant"
	}
	return "label"
}

// Symbol is one entry of the symbol table.
type Symbol struct {
	// Name is spelled as it first appeared.
	Name    string
	Value   int
	Defined bool
	Kind    SymbolKind
	// Line and Column locate the first reference, or the definition when
	// the name was defined before any use.
	Line   int
	Column int
}

// SymbolTable maps names to values. Names are case-insensitive. An entry is
// created by whichever comes first, a reference or a definition, and its
// value is set exactly once.
type SymbolTable struct {
	entries map[string]*Symbol
}

// NewSymbolTable returns an empty table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{entries: make(map[string]*Symbol)}
}

func (st *SymbolTable) entry(name string, line, column int) *Symbol {
	key := normalizeName(name)
	sym, ok := st.entries[key]
	if !ok {
		sym = &Symbol{Name: name, Line: line, Column: column}
		st.entries[key] = sym
	}
	return sym
}

func (st *SymbolTable) define(name string, value int, kind SymbolKind) error {
	sym := st.entry(name, 0, 0)
	if sym.Defined {
		return fmt.Errorf("%w: %s is already defined as a %s", ErrDuplicateLabel, sym.Name, sym.Kind)
	}
	sym.Value = value
	sym.Kind = kind
	sym.Defined = true
	return nil
}

// Define binds a label to an address. Redefinition fails with
// ErrDuplicateLabel and keeps the original address.
func (st *SymbolTable) Define(name string, address int) error {
	return st.define(name, address, SymLabel)
}

// DefineConstant binds a constant. Constants share the label namespace.
func (st *SymbolTable) DefineConstant(name string, value int) error {
	return st.define(name, value, SymConstant)
}

// Resolve returns the value of name, or false if it is still pending. A
// pending lookup records the reference site; the caller is expected to
// create a fixup.
func (st *SymbolTable) Resolve(name string, line, column int) (int, bool) {
	sym := st.entry(name, line, column)
	if sym.Line == 0 {
		sym.Line, sym.Column = line, column
	}
	return sym.Value, sym.Defined
}

// Lookup returns the entry for name without creating one.
func (st *SymbolTable) Lookup(name string) (Symbol, bool) {
	sym, ok := st.entries[normalizeName(name)]
	if !ok {
		return Symbol{}, false
	}
	return *sym, true
}

// AllDefined reports whether every referenced name has been defined.
func (st *SymbolTable) AllDefined() bool {
	for _, sym := range st.entries {
		if !sym.Defined {
			return false
		}
	}
	return true
}

// Undefined returns the names that were referenced but never defined,
// sorted without regard to case.
func (st *SymbolTable) Undefined() []string {
	var keys []string
	for key, sym := range st.entries {
		if !sym.Defined {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	names := make([]string, len(keys))
	for i, key := range keys {
		names[i] = st.entries[key].Name
	}
	return names
}

// Symbols returns a copy of all defined entries ordered by value, then name.
func (st *SymbolTable) Symbols() []Symbol {
	list := make([]Symbol, 0, len(st.entries))
	for _, sym := range st.entries {
		if sym.Defined {
			list = append(list, *sym)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Value != list[j].Value {
			return list[i].Value < list[j].Value
		}
		return normalizeName(list[i].Name) < normalizeName(list[j].Name)
	})
	return list
}
