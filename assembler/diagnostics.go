package assembler

import (
	"errors"
	"fmt"
	"io"
)

// Kind classifies a diagnostic.
type Kind int

const (
	// KindLexical is an unrecognised character or malformed literal.
	KindLexical Kind = iota
	// KindSyntax is a grammar violation or an unusable operand.
	KindSyntax
	// KindDuplicateLabel is a second definition of a name.
	KindDuplicateLabel
	// KindUndefinedLabel is a name that was referenced but never defined.
	KindUndefinedLabel
	// KindRange is a value that does not fit where it is used.
	KindRange
)

var kindNames = [...]string{
	KindLexical:        "Lexical",
	KindSyntax:         "Syntax",
	KindDuplicateLabel: "Duplicate label",
	KindUndefinedLabel: "Undefined label",
	KindRange:          "Range",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Sentinel errors, one per Kind, so callers can use errors.Is on a result.
var (
	ErrLexical        = errors.New("lexical error")
	ErrSyntax         = errors.New("syntax error")
	ErrDuplicateLabel = errors.New("duplicate label")
	ErrUndefinedLabel = errors.New("undefined label")
	ErrRange          = errors.New("value out of range")
	// ErrStrict is returned when strict mode suppressed the output.
	ErrStrict = errors.New("compilation failed in strict mode")
)

var kindErrors = [...]error{
	KindLexical:        ErrLexical,
	KindSyntax:         ErrSyntax,
	KindDuplicateLabel: ErrDuplicateLabel,
	KindUndefinedLabel: ErrUndefinedLabel,
	KindRange:          ErrRange,
}

// Diagnostic is one problem found during a run.
type Diagnostic struct {
	Kind   Kind
	Msg    string
	Line   int
	Column int
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("line %d, col %d: %s", d.Line, d.Column, d.Msg)
}

// Unwrap returns the sentinel error for the diagnostic's kind.
func (d Diagnostic) Unwrap() error {
	if d.Kind >= 0 && int(d.Kind) < len(kindErrors) {
		return kindErrors[d.Kind]
	}
	return nil
}

// Sink receives diagnostics as they are found.
type Sink interface {
	Report(kind Kind, msg string, line, column int)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(kind Kind, msg string, line, column int)

// Report calls f.
func (f SinkFunc) Report(kind Kind, msg string, line, column int) {
	f(kind, msg, line, column)
}

// WriterSink prints each diagnostic on its own line.
type WriterSink struct {
	w io.Writer
}

// NewWriterSink returns a sink printing to w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// Report writes "<Kind> error line L, col C: msg".
func (ws *WriterSink) Report(kind Kind, msg string, line, column int) {
	fmt.Fprintf(ws.w, "%s error line %d, col %d: %s\n", kind, line, column, msg)
}

// errorAt builds a Diagnostic that can travel through an error return.
func errorAt(kind Kind, line, column int, format string, args ...any) error {
	return Diagnostic{Kind: kind, Msg: fmt.Sprintf(format, args...), Line: line, Column: column}
}
