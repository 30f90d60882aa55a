// Package build implements the TAC Builder: it lowers a checked AST
// module into a fully populated tac.Module, one tac.TACMethod per
// declared method, handling the block-stack discipline that break,
// continue, and the try/catch/finally exception machinery need.
package build

import (
	"fmt"

	"github.com/shadow-lang/shadowc/internal/ast"
	"github.com/shadow-lang/shadowc/internal/ilerr"
	"github.com/shadow-lang/shadowc/internal/tac"
	"github.com/shadow-lang/shadowc/internal/types"
)

// scope is one lexical nesting level of the builder's name-resolution
// stack. owned lists the local slots this scope introduced that hold a
// reference-typed value the scope itself is responsible for releasing —
// a VarDeclStmt local or a catch clause's bound exception, but never a
// parameter or `this`, which the caller retains ownership of.
type scope struct {
	vars  map[string]int
	owned []int
}

// Builder holds the mutable state threaded through the lowering of a
// single method: the method being built, the current append cursor, the
// current block (for label-role lookup), and a scope stack mapping
// source-level names to their TAC local slot.
type Builder struct {
	ctx     *types.TypeCtx
	method  *tac.TACMethod
	current *tac.Node // append cursor: the last node emitted
	block   *tac.Block
	scopes  []*scope
	temps   int
	labels  int
	errs    *ilerr.Errors
}

// New returns a Builder that registers generic instantiations it
// encounters (via NewObject/NewArray of a parameterized type) into ctx,
// so the emitter can later back-patch _genericSet/_arraySet from
// ctx.Instantiations().
func New(ctx *types.TypeCtx) *Builder {
	return &Builder{ctx: ctx}
}

// BuildModule lowers every declared method of decl into a tac.Module.
func (b *Builder) BuildModule(decl *ast.ModuleDecl) (*tac.Module, *ilerr.Errors) {
	module := tac.NewModule(decl.Type)
	for _, m := range decl.Methods {
		method := b.buildMethod(decl.Type, m)
		module.Methods = append(module.Methods, method)
	}
	for _, f := range decl.Fields {
		module.Fields.Add(f.Name, f.Type)
	}
	for _, inner := range decl.Inner {
		innerModule, errs := b.BuildModule(inner)
		b.errs = b.errs.Merge(errs)
		for _, ref := range innerModule.References {
			module.AddReference(ref)
		}
	}
	return module, b.errs
}

func (b *Builder) buildMethod(owner types.Type, decl *ast.MethodDecl) *tac.TACMethod {
	method := tac.NewMethod(decl.Signature)
	b.method = method
	b.current = method.Entry
	b.block = method.Root
	b.scopes = []*scope{{vars: make(map[string]int)}}
	b.temps = 0
	b.labels = 0

	// Instance methods always reserve local slot 0 for the receiver, so
	// This/Super lowering and the field-initialization analysis's
	// escapesThis/assignedField checks can recognize `this` by slot
	// number alone rather than threading a separate flag through the
	// CFG.
	if !decl.Signature.Mods.IsStatic() {
		method.AddParam("this", types.ModifiedType{Type: owner})
		b.declare("this", len(method.Locals)-1)
	}
	for _, p := range decl.Params {
		method.AddParam(p.Name, p.Type)
		b.declare(p.Name, len(method.Locals)-1)
	}

	if decl.Body != nil {
		b.pushScope()
		for _, stmt := range decl.Body {
			b.lowerStmt(stmt)
		}
		b.popScope()
		if decl.Signature.Returns.Len() == 0 {
			b.emit(tac.OpReturn, ast.SourceLocation{}, types.ModifiedType{Type: types.Void})
		}
	}
	return method
}

// emit appends a new Node after the current cursor and advances the
// cursor to it.
func (b *Builder) emit(op tac.Opcode, loc ast.SourceLocation, result types.ModifiedType) *tac.Node {
	n := &tac.Node{Op: op, Loc: loc, Result: result, Owner: b.block}
	b.method.Append(b.current, n)
	b.current = n
	return n
}

// newLabel allocates a fresh Label node not yet linked into the
// instruction stream — callers link it in when the corresponding block
// becomes reachable.
func (b *Builder) newLabel() *tac.Node {
	b.labels++
	return &tac.Node{Op: tac.OpLabel, Owner: b.block}
}

func (b *Builder) newTemp(t types.ModifiedType) string {
	b.temps++
	name := fmt.Sprintf("$t%d", b.temps)
	b.method.AddLocal(name, t, true)
	b.declare(name, len(b.method.Locals)-1)
	return name
}

func (b *Builder) pushScope() { b.scopes = append(b.scopes, &scope{vars: make(map[string]int)}) }

// popScope leaves the innermost scope, releasing every reference-typed
// local it owns with __decrementRef before discarding it — the normal-
// exit half of the copy/move-on-assignment rule lowerAssign implements
// for reassignment. A scope left via break, continue, or return is
// released earlier, by decrementOwnedScopes, since control never reaches
// the end of the block those jump out of.
func (b *Builder) popScope() {
	top := b.scopes[len(b.scopes)-1]
	for _, slot := range top.owned {
		b.emitDecrementLocal(ast.SourceLocation{}, slot)
	}
	b.scopes = b.scopes[:len(b.scopes)-1]
}

func (b *Builder) declare(name string, slot int) {
	b.scopes[len(b.scopes)-1].vars[name] = slot
}

// markOwned records that slot, just declared in the innermost scope,
// holds a reference-typed value that scope must release on every exit
// path, normal or not.
func (b *Builder) markOwned(slot int) {
	top := b.scopes[len(b.scopes)-1]
	top.owned = append(top.owned, slot)
}

func (b *Builder) resolve(name string) (int, bool) {
	for i := len(b.scopes) - 1; i >= 0; i-- {
		if slot, ok := b.scopes[i].vars[name]; ok {
			return slot, true
		}
	}
	return 0, false
}

func (b *Builder) emitDecrementLocal(loc ast.SourceLocation, slot int) {
	n := b.emit(tac.OpLoad, loc, b.method.Locals[slot].Type)
	n.Payload = slot
	b.emitRefCountCall(loc, decrementRefName, n)
}

// decrementOwnedScopes releases every reference-typed local owned by
// scopes[downTo:], innermost first, used by break/continue/return to
// balance refcounts on a jump that skips the scopes' own popScope.
func (b *Builder) decrementOwnedScopes(loc ast.SourceLocation, downTo int) {
	for i := len(b.scopes) - 1; i >= downTo; i-- {
		for _, slot := range b.scopes[i].owned {
			b.emitDecrementLocal(loc, slot)
		}
	}
}

// pushBlock enters a nested Block for the duration of fn, restoring the
// previous block afterward — this is the block-stack discipline every
// construct that owns a label role (loop, try) uses.
func (b *Builder) pushBlock(fn func(child *tac.Block)) {
	child := tac.NewBlock(b.block)
	child.ScopeDepth = len(b.scopes)
	prev := b.block
	b.block = child
	fn(child)
	b.block = prev
}
