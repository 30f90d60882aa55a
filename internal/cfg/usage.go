package cfg

import (
	"fmt"

	"github.com/shadow-lang/shadowc/internal/ilerr"
	"github.com/shadow-lang/shadowc/internal/tac"
	"github.com/shadow-lang/shadowc/internal/types"
)

// FieldKey and MethodKey are the union keys used-field/used-method
// accounting is built from: qualified type name plus member name, since
// the same field or method name can exist unrelated on two different
// types.
type FieldKey struct{ Type, Field string }
type MethodKey struct{ Type, Signature string }

// isSyntheticMethod reports whether a method was compiler-generated
// (a copy, destroy, or class-descriptor-init method) and so is excluded
// from used-method accounting, since these are synthesized exhaustively
// rather than written and potentially forgotten by a user.
func isSyntheticMethod(name string) bool {
	switch name {
	case "copy", "destroy", "$classInit":
		return true
	default:
		return false
	}
}

// UsedFields returns the set of (type, field) pairs a single method's
// TAC loads or stores.
func UsedFields(m *tac.TACMethod) []FieldKey {
	var out []FieldKey
	m.Nodes(func(n *tac.Node) bool {
		if n.Op != tac.OpLoad && n.Op != tac.OpStore {
			return true
		}
		fp, ok := n.Payload.(tac.FieldPayload)
		if !ok {
			return true
		}
		out = append(out, FieldKey{Type: fp.On.QualifiedName(), Field: fp.FieldName})
		return true
	})
	return out
}

// CalledMethods returns the set of MethodKey a single method's TAC
// calls, ignoring generic type-argument substitution (a call to
// List<Int>.add and List<String>.add both count as List.add).
func CalledMethods(m *tac.TACMethod) []MethodKey {
	var out []MethodKey
	m.Nodes(func(n *tac.Node) bool {
		if n.Op != tac.OpCall {
			return true
		}
		mp, ok := n.Payload.(tac.MethodPayload)
		if !ok || mp.Method == nil {
			return true
		}
		out = append(out, MethodKey{
			Type:      mp.Method.Outer.QualifiedName(),
			Signature: fmt.Sprintf("%s%s", mp.Method.MethodName, mp.Method.MangledSuffix()),
		})
		return true
	})
	return out
}

// UnusedFields reports UNUSED_FIELD warnings for every field declared on
// t that is never loaded or stored anywhere in used, and not flagged
// unused.
func UnusedFields(t *types.ClassType, used map[FieldKey]bool) *ilerr.Errors {
	var errs *ilerr.Errors
	for _, name := range t.Fields.Names() {
		f, _ := t.Fields.Get(name)
		if f.Modifiers.IsUnused() {
			continue
		}
		if used[FieldKey{Type: t.QualifiedName(), Field: name}] {
			continue
		}
		errs = errs.With(ilerr.New(ilerr.UnusedFieldWarning{TypeName: t.Name(), FieldName: name}))
	}
	return errs
}

// UnusedMethods reports UNUSED_METHOD warnings for every private,
// non-synthetic method declared on t that is never called anywhere in
// called, and not flagged unused.
func UnusedMethods(t *types.ClassType, called map[MethodKey]bool) *ilerr.Errors {
	var errs *ilerr.Errors
	for _, m := range t.Methods.All() {
		if !m.Mods.IsPrivate() || m.Mods.IsUnused() {
			continue
		}
		if isSyntheticMethod(m.MethodName) {
			continue
		}
		key := MethodKey{Type: t.QualifiedName(), Signature: m.MethodName + m.MangledSuffix()}
		if called[key] {
			continue
		}
		errs = errs.With(ilerr.New(ilerr.UnusedMethodWarning{TypeName: t.Name(), MethodName: m.MethodName}))
	}
	return errs
}
