package driver

import (
	"os"

	"github.com/shadow-lang/shadowc/internal/ast"
	"github.com/shadow-lang/shadowc/internal/build"
	"github.com/shadow-lang/shadowc/internal/cfg"
	"github.com/shadow-lang/shadowc/internal/emit/llvmir"
	"github.com/shadow-lang/shadowc/internal/ilerr"
	"github.com/shadow-lang/shadowc/internal/log"
	"github.com/shadow-lang/shadowc/internal/tac"
	"github.com/shadow-lang/shadowc/internal/types"
)

var driverLogger = log.DefaultLogger.With("section", "driver")

// CheckUnit runs the parse and type-check stages only, for --check: no
// TAC is built and no LLVM is emitted.
func CheckUnit(frontend Frontend, ctx *types.TypeCtx, u Unit) (*ast.ModuleDecl, *ilerr.Errors) {
	source, err := os.ReadFile(u.Path)
	if err != nil {
		return nil, (*ilerr.Errors)(nil).With(ilerr.New(ilerr.FileNotFoundErr{Path: u.Path}))
	}

	tree, errs, ioErr := frontend.Parse(u.Path, source)
	if ioErr != nil {
		return nil, errs.With(ilerr.New(ilerr.Unclassified{From: ioErr}))
	}
	if errs.HasError() {
		return nil, errs
	}

	decl, checkErrs := frontend.TypeCheck(ctx, tree)
	return decl, errs.Merge(checkErrs)
}

// BuildResult is one compiled unit's TAC module, its emitted LLVM IR
// text, and the diagnostics (including flow warnings) raised while
// building and analyzing it.
type BuildResult struct {
	Module *tac.Module
	LLVMIR string
	Errs   *ilerr.Errors
}

// CompileUnit runs the full middle-end pipeline over a checked module
// declaration: TAC build, per-method CFG analyses, then LLVM emission.
// A fatal diagnostic at any stage still returns whatever partial result
// was produced, so the driver can log it, but the caller must check
// Errs.HasError() before trusting Module/LLVMIR.
func CompileUnit(ctx *types.TypeCtx, decl *ast.ModuleDecl) BuildResult {
	builder := build.New(ctx)
	module, errs := builder.BuildModule(decl)

	class, isClass := decl.Type.(*types.ClassType)

	for _, method := range module.Methods {
		graph := cfg.Build(method)
		errs = errs.Merge(cfg.Reachability(graph))
		errs = errs.Merge(cfg.ReturnCoverage(graph, method.Signature.Returns))
		if isClass {
			errs = errs.Merge(cfg.FieldInitialization(graph, requiredFields(class)))
		}
	}

	if isClass {
		errs = errs.Merge(usageWarnings(class, module))
	}

	if errs.HasError() {
		return BuildResult{Module: module, Errs: errs}
	}

	llvmText, err := llvmir.EmitClass(module)
	if err != nil {
		errs = errs.With(ilerr.New(ilerr.InvalidIRErr{Detail: err.Error()}))
		return BuildResult{Module: module, Errs: errs}
	}

	return BuildResult{Module: module, LLVMIR: llvmText, Errs: errs}
}

// requiredFields lists the non-nullable fields FieldInitialization must
// prove definitely assigned in every constructor path.
func requiredFields(c *types.ClassType) []string {
	var out []string
	for _, name := range c.Fields.Names() {
		f, _ := c.Fields.Get(name)
		if !f.IsNullable() {
			out = append(out, name)
		}
	}
	return out
}

// usageWarnings accumulates UnusedFields/UnusedMethods across every
// method in module, unioning each method's UsedFields/CalledMethods
// first the way the analysis package's set-based accounting expects.
func usageWarnings(c *types.ClassType, module *tac.Module) *ilerr.Errors {
	usedFields := make(map[cfg.FieldKey]bool)
	calledMethods := make(map[cfg.MethodKey]bool)
	for _, method := range module.Methods {
		for _, key := range cfg.UsedFields(method) {
			usedFields[key] = true
		}
		for _, key := range cfg.CalledMethods(method) {
			calledMethods[key] = true
		}
	}
	errs := cfg.UnusedFields(c, usedFields)
	return errs.Merge(cfg.UnusedMethods(c, calledMethods))
}
