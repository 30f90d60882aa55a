package driver

import (
	"os"
	"os/exec"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/shadow-lang/shadowc/internal/config"
	"github.com/shadow-lang/shadowc/internal/ilerr"
)

// WriteLL writes text to u.LLPath, used only when --human-readable is
// set: the .o is always produced from a temp file, .ll is a debugging
// convenience alongside it.
func WriteLL(u Unit, text string) error {
	return os.WriteFile(u.LLPath, []byte(text), 0o644)
}

// AssembleObject runs `llc -filetype=obj` over llText and writes the
// resulting object to u.ObjectPath, the sole compile-stage external
// tool invocation --compile and --no-link still perform.
func AssembleObject(cfg *config.Configuration, u Unit, llText string) error {
	tmp, err := os.CreateTemp(filepath.Dir(u.ObjectPath), "shadow-*.ll")
	if err != nil {
		return errors.Wrap(err, "driver: could not create temporary IR file")
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.WriteString(llText); err != nil {
		tmp.Close()
		return errors.Wrap(err, "driver: could not write temporary IR file")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "driver: could not close temporary IR file")
	}

	cmd := exec.Command(cfg.LLC, "-filetype=obj", "-o", u.ObjectPath, tmp.Name())
	output, err := cmd.CombinedOutput()
	if err != nil {
		exitCode := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
		return ilerr.New(ilerr.ExternalToolErr{Tool: cfg.LLC, ExitCode: exitCode, Stderr: string(output)})
	}
	return nil
}

// Link invokes clang against every unit's object file plus the native
// runtime object, producing outputPath.
func Link(cfg *config.Configuration, objectPaths []string, outputPath string) error {
	args := append([]string{}, objectPaths...)
	if cfg.NativeRuntimeObject != "" {
		args = append(args, cfg.NativeRuntimeObject)
	}
	args = append(args, "-o", outputPath)

	cmd := exec.Command(cfg.Clang, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		exitCode := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
		return ilerr.New(ilerr.ExternalToolErr{Tool: cfg.Clang, ExitCode: exitCode, Stderr: string(output)})
	}
	return nil
}
