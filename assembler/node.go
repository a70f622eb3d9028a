package assembler

// StatementType defines the type of a parsed statement.
type StatementType int

const (
	// StmtLabel defines a label at the current address.
	StmtLabel StatementType = iota
	// StmtInstruction is a mnemonic with operands.
	StmtInstruction
	// StmtDirective is a dot-directive with arguments.
	StmtDirective
)

// Statement represents one parsed element of the source. It is handed to the
// code generator as soon as it is recognised and not kept afterwards.
type Statement struct {
	Type StatementType
	// Name is the label name, the upper-case mnemonic, or the lower-case
	// directive name without its dot.
	Name     string
	Operands []Operand
	Line     int
	Column   int
}

// OperandKind defines what an operand holds.
type OperandKind int

const (
	// OpNumber is a bare numeric value, usually an address.
	OpNumber OperandKind = iota
	// OpImmediate is #value or #symbol.
	OpImmediate
	// OpRegister is A, X, Y or FLAGS.
	OpRegister
	// OpLabel is a reference to a label or constant.
	OpLabel
	// OpString is a string literal.
	OpString
)

// Operand represents a parsed instruction operand or directive argument.
type Operand struct {
	Kind     OperandKind
	Value    int    // literal value when Symbol is empty
	Symbol   string // referenced name for OpLabel and symbolic OpImmediate
	Register string // upper case, for OpRegister
	Bytes    []byte // for OpString
	Indirect bool   // written in parentheses
	Index    string // "X" for (zp,X)
	Line     int
	Column   int
}

// IsSymbolic returns true if the operand's value comes from the symbol table.
func (o *Operand) IsSymbolic() bool {
	return o.Symbol != ""
}

// IsRegister returns true if the operand is the named register.
func (o *Operand) IsRegister(name string) bool {
	return o.Kind == OpRegister && o.Register == name
}

// IsAddress returns true for plain numeric or label operands.
func (o *Operand) IsAddress() bool {
	return o.Kind == OpNumber || o.Kind == OpLabel
}
