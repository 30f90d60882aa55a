// Package driver orders compilation units, drives each through the
// middle-end pipeline, selects the program's main class, produces the
// main-shim LLVM IR, and invokes the external LLVM toolchain — the
// glue named but not specified by the driver-glue module.
package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shadow-lang/shadowc/internal/config"
	"github.com/shadow-lang/shadowc/internal/emit/llvmir"
	"github.com/shadow-lang/shadowc/internal/ilerr"
	"github.com/shadow-lang/shadowc/internal/types"
)

// Options carries the per-run settings the CLI's compile and check
// subcommands pass in. CheckOnly is set by the check subcommand;
// CompileOnly has no CLI flag and is set only by direct callers.
type Options struct {
	CheckOnly      bool
	CompileOnly    bool
	NoLink         bool // --no-link
	ForceRecompile bool // --force-recompile
	HumanReadable  bool // --human-readable
	Output         string
}

// Driver holds the state shared across every unit in one invocation: the
// frontend collaborator, the resolved configuration, and the type
// registry every unit's checked declarations are registered into so
// later units can resolve earlier ones' types.
type Driver struct {
	Frontend Frontend
	Config   *config.Configuration
	Ctx      *types.TypeCtx
}

// New returns a Driver with a fresh type registry.
func New(frontend Frontend, cfg *config.Configuration) *Driver {
	return &Driver{Frontend: frontend, Config: cfg, Ctx: types.NewTypeCtx()}
}

// Run compiles every unit under root according to opts, returning the
// accumulated diagnostics. A caller maps errs.ExitCode() onto the
// process exit status.
func (d *Driver) Run(root string, opts Options) *ilerr.Errors {
	if err := d.Config.Validate(); err != nil {
		return (*ilerr.Errors)(nil).With(asIleError(err))
	}

	units, err := DiscoverUnits(root)
	if err != nil {
		if ile, ok := err.(ilerr.IleError); ok {
			return (*ilerr.Errors)(nil).With(ile)
		}
		return (*ilerr.Errors)(nil).With(ilerr.New(ilerr.UnreadableDirectoryErr{Path: root, Reason: err}))
	}
	if len(units) == 0 {
		return (*ilerr.Errors)(nil).With(ilerr.New(ilerr.FileNotFoundErr{Path: root}))
	}

	var errs *ilerr.Errors
	var classes []*types.ClassType
	var results []BuildResult
	var compiled []Unit

	for _, u := range units {
		if !opts.ForceRecompile && !NeedsRecompile(u, false) {
			driverLogger.Debug("skipping up-to-date unit", "section", "driver", "path", u.Path)
			continue
		}

		decl, checkErrs := CheckUnit(d.Frontend, d.Ctx, u)
		errs = errs.Merge(checkErrs)
		if checkErrs.HasError() || decl == nil {
			continue
		}
		if opts.CheckOnly {
			continue
		}

		if c, ok := decl.Type.(*types.ClassType); ok {
			classes = append(classes, c)
		}

		result := CompileUnit(d.Ctx, decl)
		errs = errs.Merge(result.Errs)
		if result.Errs.HasError() {
			d.discardPartialOutputs(u)
			continue
		}

		if opts.HumanReadable {
			if err := WriteLL(u, result.LLVMIR); err != nil {
				errs = errs.With(ilerr.New(ilerr.Unclassified{From: err}))
				continue
			}
		}
		if err := AssembleObject(d.Config, u, result.LLVMIR); err != nil {
			errs = errs.With(asIleError(err))
			d.discardPartialOutputs(u)
			continue
		}

		writeMetaStub(u)
		results = append(results, result)
		compiled = append(compiled, u)
	}

	if errs.HasError() || opts.CheckOnly || opts.CompileOnly || opts.NoLink {
		return errs
	}

	mainClass, mainMethod, err := SelectMain(classes)
	if err != nil {
		return errs.With(ilerr.New(ilerr.CommandLineErr{Message: err.Error()}))
	}

	mainUnit, err := d.emitAndAssembleMain(root, mainClass, mainMethod)
	if err != nil {
		return errs.With(ilerr.New(ilerr.Unclassified{From: err}))
	}

	objectPaths := make([]string, 0, len(compiled)+1)
	for _, u := range compiled {
		objectPaths = append(objectPaths, u.ObjectPath)
	}
	objectPaths = append(objectPaths, mainUnit.ObjectPath)

	outputPath := opts.Output
	if outputPath == "" {
		outputPath = filepath.Join(root, "a.out")
	}
	if err := Link(d.Config, objectPaths, outputPath); err != nil {
		return errs.With(asIleError(err))
	}
	return errs
}

// asIleError adapts any error into an IleError, preserving the original
// classification when tools.go already raised one (a specific exit
// code matters) and falling back to Unclassified otherwise.
func asIleError(err error) ilerr.IleError {
	if ile, ok := err.(ilerr.IleError); ok {
		return ile
	}
	return ilerr.New(ilerr.Unclassified{From: err})
}

// emitAndAssembleMain synthesizes and compiles the process entry point's
// translation unit, keyed by the same on-disk artifact convention as a
// user unit under a synthetic "$main" name.
func (d *Driver) emitAndAssembleMain(root string, mainClass *types.ClassType, mainMethod *types.MethodType) (Unit, error) {
	u := unitFor(filepath.Join(root, "$main"+shadowExt))
	llText, err := llvmir.EmitMain(mainClass, mainMethod, d.Ctx.Instantiations())
	if err != nil {
		return Unit{}, fmt.Errorf("driver: could not emit main shim: %w", err)
	}
	if err := AssembleObject(d.Config, u, llText); err != nil {
		return Unit{}, err
	}
	return u, nil
}

// discardPartialOutputs removes any object file a failed compile stage
// left behind, matching the cancellation policy: on any hard failure,
// partial .o outputs are deleted.
func (d *Driver) discardPartialOutputs(u Unit) {
	_ = os.Remove(u.ObjectPath)
}

// writeMetaStub records only the timestamp NeedsRecompile checks
// against; the meta file's actual signature contents are the
// out-of-scope external collaborator's responsibility.
func writeMetaStub(u Unit) {
	_ = os.WriteFile(u.MetaPath, []byte(strings.TrimSuffix(filepath.Base(u.Path), shadowExt)+"\n"), 0o644)
}
