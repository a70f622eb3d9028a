package assembler

import (
	"context"
	"errors"
	"fmt"

	"github.com/Urethramancer/fass/cpu"
)

// DefaultFiller is the byte used for padding unless changed: NOP.
const DefaultFiller = cpu.OPNOP

// Assembler holds the configuration for assembly runs. It is safe to use
// from several goroutines; each run gets its own state.
type Assembler struct {
	strict bool
	origin int
	filler byte
	sink   Sink
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithStrict suppresses the output whenever any diagnostic was reported.
func WithStrict(strict bool) Option {
	return func(asm *Assembler) { asm.strict = strict }
}

// WithOrigin sets the address of the first output byte.
func WithOrigin(addr int) Option {
	return func(asm *Assembler) { asm.origin = addr }
}

// WithFiller sets the default padding byte.
func WithFiller(b byte) Option {
	return func(asm *Assembler) { asm.filler = b }
}

// WithSink forwards every diagnostic to sink as it is found.
func WithSink(sink Sink) Option {
	return func(asm *Assembler) { asm.sink = sink }
}

// New creates a new Assembler instance.
func New(opts ...Option) *Assembler {
	asm := &Assembler{filler: DefaultFiller}
	for _, opt := range opts {
		opt(asm)
	}
	return asm
}

// Result is the outcome of one run.
type Result struct {
	// Code is the compiled output. It is nil in strict mode when there were
	// diagnostics, and may hold unpatched placeholders otherwise.
	Code        []byte
	Origin      int
	Diagnostics []Diagnostic
	Symbols     []Symbol
}

// Err joins all diagnostics into one error, or returns nil.
func (r *Result) Err() error {
	if len(r.Diagnostics) == 0 {
		return nil
	}
	errs := make([]error, len(r.Diagnostics))
	for i, d := range r.Diagnostics {
		errs[i] = d
	}
	return errors.Join(errs...)
}

// Count returns the number of diagnostics of a kind.
func (r *Result) Count(kind Kind) int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Kind == kind {
			n++
		}
	}
	return n
}

// Assemble compiles src with a default Assembler configured by opts.
func Assemble(src string, opts ...Option) (*Result, error) {
	return New(opts...).Assemble(src)
}

// Assemble takes fass source and returns the machine code.
func (asm *Assembler) Assemble(src string) (*Result, error) {
	return asm.AssembleContext(context.Background(), src)
}

// AssembleContext is Assemble with cancellation checked between statements.
// The returned error joins all diagnostics; the Result is still returned so
// the caller can inspect partial output.
func (asm *Assembler) AssembleContext(ctx context.Context, src string) (*Result, error) {
	s := newSession(asm)
	p := NewParser(NewLexer(src, s), s)
	for {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("assembly cancelled: %w", err)
		}
		st, ok := p.Next()
		if !ok {
			break
		}
		s.emit(st)
	}
	resolveFixups(s.code, s.fixups, s.symbols, s)
	s.fixups = nil
	if !s.symbols.AllDefined() {
		reportUndefined(s.symbols, s)
	}

	res := &Result{
		Code:        s.code,
		Origin:      s.origin,
		Diagnostics: s.diags,
		Symbols:     s.symbols.Symbols(),
	}
	if len(res.Diagnostics) == 0 {
		return res, nil
	}
	if asm.strict {
		res.Code = nil
		return res, fmt.Errorf("%w: %w", ErrStrict, res.Err())
	}
	return res, res.Err()
}

// session is the state of a single run: output buffer, symbols and fixups.
type session struct {
	asm     *Assembler
	code    []byte
	origin  int
	orgSet  bool
	filler  byte
	symbols *SymbolTable
	fixups  []Fixup
	diags   []Diagnostic
}

func newSession(asm *Assembler) *session {
	return &session{
		asm:     asm,
		origin:  asm.origin,
		filler:  asm.filler,
		symbols: NewSymbolTable(),
	}
}

// Report records a diagnostic and forwards it to the configured sink.
func (s *session) Report(kind Kind, msg string, line, column int) {
	s.diags = append(s.diags, Diagnostic{Kind: kind, Msg: msg, Line: line, Column: column})
	if s.asm.sink != nil {
		s.asm.sink.Report(kind, msg, line, column)
	}
}

// pc is the address of the next byte.
func (s *session) pc() int {
	return s.origin + len(s.code)
}

// emit generates code for one statement.
func (s *session) emit(st Statement) {
	var err error
	switch st.Type {
	case StmtLabel:
		if err = s.symbols.Define(st.Name, s.pc()); err != nil {
			err = errorAt(KindDuplicateLabel, st.Line, st.Column, "%v", err)
		}
	case StmtInstruction:
		err = s.assembleInstruction(st)
	case StmtDirective:
		fn, ok := directives[st.Name]
		if !ok {
			err = errorAt(KindSyntax, st.Line, st.Column, "unknown directive .%s", st.Name)
			break
		}
		err = fn(s, st)
	}
	if err != nil {
		s.fail(st, err)
	}
}

func (s *session) fail(st Statement, err error) {
	var d Diagnostic
	if errors.As(err, &d) {
		s.Report(d.Kind, d.Msg, d.Line, d.Column)
		return
	}
	s.Report(KindSyntax, err.Error(), st.Line, st.Column)
}

// room fails if n more bytes would run past the end of the address space.
func (s *session) room(st Statement, n int) error {
	if s.pc()+n > addressSpace {
		return errorAt(KindRange, st.Line, st.Column,
			"%d byte(s) at %s run past the end of memory", n, hexValue(s.pc()))
	}
	return nil
}

// commit appends a finished statement to the output and records its
// pending references.
func (s *session) commit(st Statement, c *chunk) error {
	if err := s.room(st, len(c.bytes)); err != nil {
		return err
	}
	for _, f := range c.fixups {
		s.symbols.Resolve(f.Symbol, f.Line, f.Column)
		f.Offset += len(s.code)
		s.fixups = append(s.fixups, f)
	}
	s.code = append(s.code, c.bytes...)
	return nil
}

// pad appends n copies of b.
func (s *session) pad(st Statement, n int, b byte) error {
	if err := s.room(st, n); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		s.code = append(s.code, b)
	}
	return nil
}
