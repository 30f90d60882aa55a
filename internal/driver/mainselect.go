package driver

import (
	"fmt"

	"github.com/shadow-lang/shadowc/internal/types"
)

// SelectMain finds the single public static main(String[]) or main()
// method among the given top-level classes, the one the driver
// synthesizes the process entry point against. Exactly one candidate is
// required; zero or more than one is a command-line error, since the
// driver has no further disambiguation rule (no "which package" concept
// exists at this scope).
func SelectMain(classes []*types.ClassType) (*types.ClassType, *types.MethodType, error) {
	var foundClass *types.ClassType
	var foundMethod *types.MethodType

	for _, c := range classes {
		for _, m := range c.Methods.Overloads("main") {
			if !m.Mods.IsStatic() || !m.Mods.IsPublic() {
				continue
			}
			if m.Arity() > 1 {
				continue
			}
			if foundMethod != nil {
				return nil, nil, fmt.Errorf("driver: more than one candidate main method found (%s.main, %s.main)",
					foundClass.QualifiedName(), c.QualifiedName())
			}
			foundClass, foundMethod = c, m
		}
	}
	if foundMethod == nil {
		return nil, nil, fmt.Errorf("driver: no public static main method found among %d compiled class(es)", len(classes))
	}
	return foundClass, foundMethod, nil
}
