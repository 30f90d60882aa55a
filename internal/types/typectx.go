package types

import (
	"fmt"

	"github.com/benbjohnson/immutable"
)

// TypeCtx is the process-wide type registry: an arena of named
// definitions addressed by qualified name, not owning pointers between
// them, since class, method signature, type parameter, and outer class
// form a cycle that a pointer-owning tree cannot represent cleanly.
type TypeCtx struct {
	parent *TypeCtx
	defs   map[string]Type
	// instantiationLog records, in registration order, every distinct
	// generic instantiation requested through this context — the LLVM
	// emitter walks this to build the _genericSet/_arraySet globals.
	instantiationLog *immutable.List[Type]
}

// NewTypeCtx returns an empty registry seeded with the primitive types
// and Object: the primitive set and Object are always reachable so
// runtime descriptors get emitted for them regardless of what a given
// module actually references.
func NewTypeCtx() *TypeCtx {
	ctx := &TypeCtx{
		defs:             make(map[string]Type),
		instantiationLog: immutable.NewList[Type](),
	}
	ctx.Register(Object())
	for kind := range primitiveNames {
		ctx.Register(Primitive(kind))
	}
	return ctx
}

// Child returns a nested context sharing this one's definitions but able
// to add its own without mutating the parent — used when checking a
// module's inner types.
func (ctx *TypeCtx) Child() *TypeCtx {
	return &TypeCtx{parent: ctx, defs: make(map[string]Type), instantiationLog: ctx.instantiationLog}
}

// Register adds a top-level type definition to the arena.
func (ctx *TypeCtx) Register(t Type) {
	ctx.defs[t.QualifiedName()] = t
}

// Lookup finds a definition by qualified name, walking up to parent
// contexts if not found locally.
func (ctx *TypeCtx) Lookup(qualifiedName string) (Type, bool) {
	if t, ok := ctx.defs[qualifiedName]; ok {
		return t, true
	}
	if ctx.parent != nil {
		return ctx.parent.Lookup(qualifiedName)
	}
	return nil, false
}

// RecordInstantiation appends t to the instantiation log if t is a
// distinct generic instantiation not already recorded (by Equals) —
// backing the emitter's back-patched _genericSet/_arraySet globals.
func (ctx *TypeCtx) RecordInstantiation(t Type) {
	itr := ctx.instantiationLog.Iterator()
	for !itr.Done() {
		_, v := itr.Next()
		if v.(Type).Equals(t) {
			return
		}
	}
	ctx.instantiationLog = ctx.instantiationLog.Append(t)
}

// Instantiations returns every distinct type recorded via
// RecordInstantiation, in registration order.
func (ctx *TypeCtx) Instantiations() []Type {
	var out []Type
	itr := ctx.instantiationLog.Iterator()
	for !itr.Done() {
		_, v := itr.Next()
		out = append(out, v.(Type))
	}
	return out
}

// CheckCycle walks t's extend/implements chain looking for t's own
// qualified name reappearing, e.g. "class A extends B extends A".
func CheckCycle(t declaredMember) error {
	return checkCycleHelper(t, t.QualifiedName(), map[string]bool{t.QualifiedName(): true})
}

func checkCycleHelper(t declaredMember, rootName string, traversed map[string]bool) error {
	for _, super := range t.SuperTypes() {
		dm, ok := super.(declaredMember)
		if !ok {
			continue
		}
		if dm.QualifiedName() == rootName {
			return fmt.Errorf("illegal cycle detected: %s occurs within its own extends/implements chain via %s", rootName, dm.QualifiedName())
		}
		if traversed[dm.QualifiedName()] {
			continue
		}
		traversed[dm.QualifiedName()] = true
		if err := checkCycleHelper(dm, rootName, traversed); err != nil {
			return err
		}
	}
	return nil
}
