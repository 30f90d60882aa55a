// Package ilerr defines the compiler's error taxonomy and an accumulator
// used to collect diagnostics across a phase before deciding whether to
// abort.
package ilerr

import (
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"

	"github.com/shadow-lang/shadowc/internal/ast"
)

// enableDebugErrorPrinting includes a caller frame alongside every
// formatted error; useful when a diagnostic's location looks wrong and
// the fix is in the pass that produced it, not in the source.
const enableDebugErrorPrinting = false

// ErrCode enumerates every diagnosable condition. Values above zero are
// grouped by phase; the numeric value has no meaning outside display
// ordering (E%03d).
type ErrCode int

const (
	None ErrCode = iota

	// Parse (fatal to the unit).
	SyntaxError

	// TypeCheck.
	UnresolvedName
	NotASubtype
	AmbiguousOverload
	NoMatchingMethod
	DuplicateDeclaration
	IllegalCast
	BadGenericArity
	FieldNotInitialized

	// Flow warnings (non-fatal).
	DeadCode
	UnusedField
	UnusedMethod

	// Compile.
	InvalidIR
	ExternalToolFailed

	// Configuration (fatal, exit -6).
	MissingLLVM
	LLVMVersionTooLow
	MissingSystemImport

	// IO.
	FileNotFound
	UnreadableDirectory

	// Command line (fatal, exit -5): a driver-level precondition the
	// invocation itself violated, independent of any one unit's source.
	CommandLineError
)

// Severity distinguishes a fatal diagnostic from an advisory one.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

// IleError is the interface every diagnostic value satisfies.
type IleError interface {
	error
	Code() ErrCode
	Severity() Severity
	ast.Positioner

	withStack([]byte) IleError
	getStack() []byte
}

// FormatWithCode renders e as "(E%03d) message", prefixed with a caller
// frame when enableDebugErrorPrinting is set.
func FormatWithCode(e IleError) string {
	if enableDebugErrorPrinting && e.getStack() != nil {
		lines := strings.Split(string(e.getStack()), "\n")
		frame := ""
		if len(lines) > 6 {
			frame = strings.TrimSpace(lines[6]) + ": "
		}
		return fmt.Sprintf("%s(E%03d) %s", frame, e.Code(), e.Error())
	}
	return fmt.Sprintf("(E%03d) %s", e.Code(), e.Error())
}

// New captures a stack trace at the call site and returns err wrapped as
// an IleError, so a later panic-recovery site can log where a diagnostic
// actually originated.
func New[E IleError](err E) IleError {
	return err.withStack(debug.Stack())
}

// Errors accumulates diagnostics across a phase. A nil *Errors behaves
// as an empty accumulator, so callers can thread it through without a
// prior allocation.
type Errors struct {
	errs []IleError
}

func (r *Errors) With(err ...IleError) *Errors {
	if r == nil {
		return &Errors{errs: err}
	}
	r.errs = append(r.errs, err...)
	return r
}

func (r *Errors) Merge(other *Errors) *Errors {
	if r == nil {
		return other
	}
	if other == nil || len(other.errs) == 0 {
		return r
	}
	return r.With(other.errs...)
}

func (r *Errors) All() []IleError {
	if r == nil {
		return nil
	}
	return r.errs
}

func (r *Errors) HasError() bool {
	if r == nil {
		return false
	}
	for _, e := range r.errs {
		if e.Severity() == SeverityError {
			return true
		}
	}
	return false
}

// ExitCode maps the first fatal error found to the CLI exit code
// contract; returns 0 if there is no fatal error.
func (r *Errors) ExitCode() int {
	if r == nil {
		return 0
	}
	for _, e := range r.errs {
		if e.Severity() != SeverityError {
			continue
		}
		switch e.Code() {
		case FileNotFound, UnreadableDirectory:
			return -1
		case SyntaxError:
			return -2
		case UnresolvedName, NotASubtype, AmbiguousOverload, NoMatchingMethod,
			DuplicateDeclaration, IllegalCast, BadGenericArity, FieldNotInitialized:
			return -3
		case InvalidIR, ExternalToolFailed:
			return -4
		case CommandLineError:
			return -5
		case MissingLLVM, LLVMVersionTooLow, MissingSystemImport:
			return -6
		}
	}
	return -1
}

func (r *Errors) LogValue() slog.Value {
	if r == nil {
		return slog.GroupValue()
	}
	attrs := make([]slog.Attr, len(r.errs))
	for i, e := range r.errs {
		attrs[i] = slog.String(fmt.Sprintf("e%d", i), FormatWithCode(e))
	}
	return slog.GroupValue(attrs...)
}
