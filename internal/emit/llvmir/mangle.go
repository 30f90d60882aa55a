package llvmir

import (
	"fmt"
	"strings"

	"github.com/shadow-lang/shadowc/internal/types"
)

// Mangle produces the ABI-mandated linker name for a method:
// Type_MName_ParamType1_ParamType2…, reusing MethodType.MangledSuffix
// for the parameter segment so the builder's overload accounting and
// the emitter's linker names never drift apart.
func Mangle(m *types.MethodType) string {
	return m.Outer.Name() + "_" + m.MethodName + m.MangledSuffix()
}

// Demangle recovers the type name, method name, and parameter type
// segments from a mangled name. Because MangledSuffix joins an array
// element's "_A" suffix with the same underscore used as the segment
// separator, a lone "A" segment following another segment is folded
// back onto it; this is unambiguous as long as no Shadow type is
// itself named "A".
func Demangle(mangled string) (typeName, methodName string, paramTypes []string, err error) {
	parts := strings.Split(mangled, "_")
	if len(parts) < 2 {
		return "", "", nil, fmt.Errorf("llvmir: %q is not a mangled method name", mangled)
	}
	typeName, methodName = parts[0], parts[1]
	rest := parts[2:]
	for i := 0; i < len(rest); i++ {
		seg := rest[i]
		for i+1 < len(rest) && rest[i+1] == "A" {
			seg += "_A"
			i++
		}
		paramTypes = append(paramTypes, seg)
	}
	return typeName, methodName, paramTypes, nil
}

// remangle reassembles the string Demangle's components came from,
// used by tests to check the round trip without depending on a live
// *types.MethodType.
func remangle(typeName, methodName string, paramTypes []string) string {
	if len(paramTypes) == 0 {
		return typeName + "_" + methodName
	}
	return typeName + "_" + methodName + "_" + strings.Join(paramTypes, "_")
}
