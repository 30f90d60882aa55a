package ilerr

import (
	"fmt"

	"github.com/shadow-lang/shadowc/internal/ast"
	"github.com/shadow-lang/shadowc/internal/types"
)

// Unclassified wraps a cross-boundary error (typically from os/exec or
// the filesystem) that does not fit a specific diagnostic shape.
type Unclassified struct {
	ast.Positioner
	From  error
	stack []byte
}

func (e Unclassified) Error() string           { return fmt.Sprintf("unclassified error: %v", e.From) }
func (e Unclassified) Code() ErrCode           { return None }
func (e Unclassified) Severity() Severity      { return SeverityError }
func (e Unclassified) getStack() []byte        { return e.stack }
func (e Unclassified) withStack(s []byte) IleError {
	e.stack = s
	return e
}

// Syntax reports a parse failure; fatal to the unit.
type Syntax struct {
	ast.Positioner
	Message string
	stack   []byte
}

func (e Syntax) Error() string      { return e.Message }
func (e Syntax) Code() ErrCode      { return SyntaxError }
func (e Syntax) Severity() Severity { return SeverityError }
func (e Syntax) getStack() []byte   { return e.stack }
func (e Syntax) withStack(s []byte) IleError {
	e.stack = s
	return e
}

// UndefinedName reports a reference to a name with no visible
// declaration.
type UndefinedName struct {
	ast.Positioner
	Name  string
	stack []byte
}

func (e UndefinedName) Error() string      { return fmt.Sprintf("undefined name '%s'", e.Name) }
func (e UndefinedName) Code() ErrCode      { return UnresolvedName }
func (e UndefinedName) Severity() Severity { return SeverityError }
func (e UndefinedName) getStack() []byte   { return e.stack }
func (e UndefinedName) withStack(s []byte) IleError {
	e.stack = s
	return e
}

// TypeMismatch reports a value of type Actual used where Expected was
// required.
type TypeMismatch struct {
	ast.Positioner
	Expected, Actual types.Type
	stack            []byte
}

func (e TypeMismatch) Error() string {
	return fmt.Sprintf("expected type '%v' but found '%v'", e.Expected, e.Actual)
}
func (e TypeMismatch) Code() ErrCode      { return NotASubtype }
func (e TypeMismatch) Severity() Severity { return SeverityError }
func (e TypeMismatch) getStack() []byte   { return e.stack }
func (e TypeMismatch) withStack(s []byte) IleError {
	e.stack = s
	return e
}

// AmbiguousCall reports an overload resolution with more than one
// equally applicable candidate.
type AmbiguousCall struct {
	ast.Positioner
	MethodName string
	Candidates int
	stack      []byte
}

func (e AmbiguousCall) Error() string {
	return fmt.Sprintf("call to '%s' is ambiguous between %d equally applicable overloads", e.MethodName, e.Candidates)
}
func (e AmbiguousCall) Code() ErrCode      { return AmbiguousOverload }
func (e AmbiguousCall) Severity() Severity { return SeverityError }
func (e AmbiguousCall) getStack() []byte   { return e.stack }
func (e AmbiguousCall) withStack(s []byte) IleError {
	e.stack = s
	return e
}

// NoMatchingMethodErr reports an overload resolution with zero
// applicable candidates.
type NoMatchingMethodErr struct {
	ast.Positioner
	MethodName string
	On         types.Type
	stack      []byte
}

func (e NoMatchingMethodErr) Error() string {
	return fmt.Sprintf("no method '%s' found on '%v'", e.MethodName, e.On)
}
func (e NoMatchingMethodErr) Code() ErrCode      { return NoMatchingMethod }
func (e NoMatchingMethodErr) Severity() Severity { return SeverityError }
func (e NoMatchingMethodErr) getStack() []byte   { return e.stack }
func (e NoMatchingMethodErr) withStack(s []byte) IleError {
	e.stack = s
	return e
}

// DuplicateDecl reports a name declared more than once in the same
// scope.
type DuplicateDecl struct {
	ast.Positioner
	Name  string
	stack []byte
}

func (e DuplicateDecl) Error() string { return fmt.Sprintf("'%s' is already declared", e.Name) }
func (e DuplicateDecl) Code() ErrCode      { return DuplicateDeclaration }
func (e DuplicateDecl) Severity() Severity { return SeverityError }
func (e DuplicateDecl) getStack() []byte   { return e.stack }
func (e DuplicateDecl) withStack(s []byte) IleError {
	e.stack = s
	return e
}

// IllegalCastErr reports a cast the checker can statically prove can
// never succeed.
type IllegalCastErr struct {
	ast.Positioner
	From, To types.Type
	stack    []byte
}

func (e IllegalCastErr) Error() string {
	return fmt.Sprintf("cannot cast '%v' to '%v'", e.From, e.To)
}
func (e IllegalCastErr) Code() ErrCode      { return IllegalCast }
func (e IllegalCastErr) Severity() Severity { return SeverityError }
func (e IllegalCastErr) getStack() []byte   { return e.stack }
func (e IllegalCastErr) withStack(s []byte) IleError {
	e.stack = s
	return e
}

// BadArity reports a generic instantiation with the wrong number of
// type arguments.
type BadArity struct {
	ast.Positioner
	TypeName string
	Want     int
	Got      int
	stack    []byte
}

func (e BadArity) Error() string {
	return fmt.Sprintf("'%s' expects %d type argument(s), got %d", e.TypeName, e.Want, e.Got)
}
func (e BadArity) Code() ErrCode      { return BadGenericArity }
func (e BadArity) Severity() Severity { return SeverityError }
func (e BadArity) getStack() []byte   { return e.stack }
func (e BadArity) withStack(s []byte) IleError {
	e.stack = s
	return e
}

// FieldUninitialized reports a non-nullable field that is not definitely
// assigned before `this` escapes or the constructor returns.
type FieldUninitialized struct {
	ast.Positioner
	FieldName string
	stack     []byte
}

func (e FieldUninitialized) Error() string {
	return fmt.Sprintf("field '%s' may not be initialized before use", e.FieldName)
}
func (e FieldUninitialized) Code() ErrCode      { return FieldNotInitialized }
func (e FieldUninitialized) Severity() Severity { return SeverityError }
func (e FieldUninitialized) getStack() []byte   { return e.stack }
func (e FieldUninitialized) withStack(s []byte) IleError {
	e.stack = s
	return e
}

// UnreachableCode is a warning for a statement run following a
// terminator (Return/Throw/Branch that never falls through).
type UnreachableCode struct {
	ast.Positioner
	stack []byte
}

func (e UnreachableCode) Error() string      { return "unreachable code" }
func (e UnreachableCode) Code() ErrCode      { return DeadCode }
func (e UnreachableCode) Severity() Severity { return SeverityWarning }
func (e UnreachableCode) getStack() []byte   { return e.stack }
func (e UnreachableCode) withStack(s []byte) IleError {
	e.stack = s
	return e
}

// UnusedFieldWarning is a warning for a declared field never loaded or
// stored anywhere in the compilation unit.
type UnusedFieldWarning struct {
	ast.Positioner
	TypeName, FieldName string
	stack               []byte
}

func (e UnusedFieldWarning) Error() string {
	return fmt.Sprintf("field '%s.%s' is never used", e.TypeName, e.FieldName)
}
func (e UnusedFieldWarning) Code() ErrCode      { return UnusedField }
func (e UnusedFieldWarning) Severity() Severity { return SeverityWarning }
func (e UnusedFieldWarning) getStack() []byte   { return e.stack }
func (e UnusedFieldWarning) withStack(s []byte) IleError {
	e.stack = s
	return e
}

// UnusedMethodWarning is a warning for a declared private method never
// called anywhere in the compilation unit.
type UnusedMethodWarning struct {
	ast.Positioner
	TypeName, MethodName string
	stack                []byte
}

func (e UnusedMethodWarning) Error() string {
	return fmt.Sprintf("private method '%s.%s' is never used", e.TypeName, e.MethodName)
}
func (e UnusedMethodWarning) Code() ErrCode      { return UnusedMethod }
func (e UnusedMethodWarning) Severity() Severity { return SeverityWarning }
func (e UnusedMethodWarning) getStack() []byte   { return e.stack }
func (e UnusedMethodWarning) withStack(s []byte) IleError {
	e.stack = s
	return e
}

// InvalidIRErr reports LLVM IR the emitter produced that failed a
// well-formedness invariant before ever reaching llc.
type InvalidIRErr struct {
	ast.Positioner
	Detail string
	stack  []byte
}

func (e InvalidIRErr) Error() string      { return fmt.Sprintf("invalid LLVM IR: %s", e.Detail) }
func (e InvalidIRErr) Code() ErrCode      { return InvalidIR }
func (e InvalidIRErr) Severity() Severity { return SeverityError }
func (e InvalidIRErr) getStack() []byte   { return e.stack }
func (e InvalidIRErr) withStack(s []byte) IleError {
	e.stack = s
	return e
}

// ExternalToolErr reports a non-zero exit from an external toolchain
// invocation (llc, clang).
type ExternalToolErr struct {
	ast.Positioner
	Tool     string
	ExitCode int
	Stderr   string
	stack    []byte
}

func (e ExternalToolErr) Error() string {
	return fmt.Sprintf("%s exited with code %d: %s", e.Tool, e.ExitCode, e.Stderr)
}
func (e ExternalToolErr) Code() ErrCode      { return ExternalToolFailed }
func (e ExternalToolErr) Severity() Severity { return SeverityError }
func (e ExternalToolErr) getStack() []byte   { return e.stack }
func (e ExternalToolErr) withStack(s []byte) IleError {
	e.stack = s
	return e
}

// ConfigError reports a fatal environment or configuration problem:
// missing LLVM, a version below the minimum, or a missing system
// import.
type ConfigError struct {
	ast.Positioner
	code    ErrCode
	Message string
	stack   []byte
}

func NewMissingLLVM(msg string) ConfigError         { return ConfigError{code: MissingLLVM, Message: msg} }
func NewLLVMVersionTooLow(msg string) ConfigError   { return ConfigError{code: LLVMVersionTooLow, Message: msg} }
func NewMissingSystemImport(msg string) ConfigError { return ConfigError{code: MissingSystemImport, Message: msg} }

func (e ConfigError) Error() string      { return e.Message }
func (e ConfigError) Code() ErrCode      { return e.code }
func (e ConfigError) Severity() Severity { return SeverityError }
func (e ConfigError) getStack() []byte   { return e.stack }
func (e ConfigError) withStack(s []byte) IleError {
	e.stack = s
	return e
}

// FileNotFoundErr reports a missing source, config, or import file.
type FileNotFoundErr struct {
	ast.Positioner
	Path  string
	stack []byte
}

func (e FileNotFoundErr) Error() string      { return fmt.Sprintf("file not found: %s", e.Path) }
func (e FileNotFoundErr) Code() ErrCode      { return FileNotFound }
func (e FileNotFoundErr) Severity() Severity { return SeverityError }
func (e FileNotFoundErr) getStack() []byte   { return e.stack }
func (e FileNotFoundErr) withStack(s []byte) IleError {
	e.stack = s
	return e
}

// UnreadableDirectoryErr reports a source root that exists but could not
// be listed (permissions, not a directory).
type UnreadableDirectoryErr struct {
	ast.Positioner
	Path   string
	Reason error
	stack  []byte
}

func (e UnreadableDirectoryErr) Error() string {
	return fmt.Sprintf("cannot read directory '%s': %v", e.Path, e.Reason)
}
func (e UnreadableDirectoryErr) Code() ErrCode      { return UnreadableDirectory }
func (e UnreadableDirectoryErr) Severity() Severity { return SeverityError }
func (e UnreadableDirectoryErr) getStack() []byte   { return e.stack }
func (e UnreadableDirectoryErr) withStack(s []byte) IleError {
	e.stack = s
	return e
}

// CommandLineErr reports an invocation-level precondition violated
// independent of any unit's source, such as main-class selection failing
// to find exactly one candidate.
type CommandLineErr struct {
	ast.Positioner
	Message string
	stack   []byte
}

func (e CommandLineErr) Error() string      { return e.Message }
func (e CommandLineErr) Code() ErrCode      { return CommandLineError }
func (e CommandLineErr) Severity() Severity { return SeverityError }
func (e CommandLineErr) getStack() []byte   { return e.stack }
func (e CommandLineErr) withStack(s []byte) IleError {
	e.stack = s
	return e
}
