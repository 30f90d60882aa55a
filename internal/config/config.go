// Package config implements the process-wide Configuration singleton:
// the minimum supported LLVM version, external tool paths, and system
// import search paths a compilation reads once at startup and never
// mutates again. It is built from an XML file — either the one named by
// --config, the one named by SHADOW_SYSTEM_CONFIG, or an OS-selected
// built-in default. No CLI flag overrides an individual setting.
package config

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/pkg/errors"

	"github.com/shadow-lang/shadowc/internal/ilerr"
)

// systemConfigEnv names the environment variable that overrides the
// built-in config file path.
const systemConfigEnv = "SHADOW_SYSTEM_CONFIG"

// Configuration is the immutable, process-wide compiler configuration.
// A single instance is built by Load and threaded read-only through
// every later phase; nothing after typecheck may mutate it.
type Configuration struct {
	// MinimumLLVMVersion is the lowest `llc`/`clang` major.minor version
	// the configuration names; Load fills in the platform default when
	// the file leaves it empty. Nothing compares the installed tools'
	// versions against it, and no LLVMVersionTooLow error is raised.
	MinimumLLVMVersion string `xml:"minimumLlvmVersion"`
	// LLC and Clang are the external tool names or absolute paths the
	// driver invokes via os/exec.
	LLC   string `xml:"llc"`
	Clang string `xml:"clang"`
	// SystemImportPaths are searched, in order, for a `shadow:standard`
	// (or other system-package) import that is not satisfied by any
	// compilation unit on the command line.
	SystemImportPaths []string `xml:"systemImportPaths>path"`
	// NativeRuntimeObject is the hand-written runtime object file
	// (Name.native.o) every linked program links in unmodified.
	NativeRuntimeObject string `xml:"nativeRuntimeObject"`
}

// xmlConfig is an alias of Configuration, whose own xml struct tags
// describe the on-disk shape Load unmarshals.
type xmlConfig = Configuration

// builtinPath returns the OS-selected built-in config file shipped
// alongside the compiler binary, before any environment or flag
// override is applied.
func builtinPath(installDir string) string {
	name := "linux_system.xml"
	if runtime.GOOS == "windows" {
		name = "windows_system.xml"
	}
	return filepath.Join(installDir, name)
}

// defaultForGOOS returns the configuration a fresh install ships when no
// config file can be found at all — the minimum LLVM version the spec
// documents per platform (6.0 on Linux, 10.0 on Windows) and bare tool
// names resolved via PATH.
func defaultForGOOS() *Configuration {
	if runtime.GOOS == "windows" {
		return &Configuration{
			MinimumLLVMVersion: "10.0",
			LLC:                "llc.exe",
			Clang:              "clang.exe",
		}
	}
	return &Configuration{
		MinimumLLVMVersion: "6.0",
		LLC:                "llc",
		Clang:              "clang",
	}
}

// Load resolves and parses the effective config file: explicitPath (the
// --config flag) if non-empty, else SHADOW_SYSTEM_CONFIG if set, else
// the OS-selected built-in under installDir. A missing built-in is not
// an error — Load falls back to defaultForGOOS() — but a missing
// explicitly-named file is, since the user asked for it by name.
func Load(installDir, explicitPath string) (*Configuration, error) {
	path := explicitPath
	explicit := explicitPath != ""
	if path == "" {
		path = os.Getenv(systemConfigEnv)
		explicit = path != ""
	}
	if path == "" {
		path = builtinPath(installDir)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return defaultForGOOS(), nil
		}
		return nil, ilerr.New(ilerr.FileNotFoundErr{Path: path})
	}

	cfg := &xmlConfig{}
	if err := xml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "config: %s is not well-formed", path)
	}
	if cfg.MinimumLLVMVersion == "" {
		def := defaultForGOOS()
		cfg.MinimumLLVMVersion = def.MinimumLLVMVersion
	}
	if cfg.LLC == "" {
		cfg.LLC = defaultForGOOS().LLC
	}
	if cfg.Clang == "" {
		cfg.Clang = defaultForGOOS().Clang
	}
	return cfg, nil
}

// Validate reports a MissingLLVM configuration error if LLC/Clang are
// unset, and a MissingSystemImport configuration error if import paths
// are configured but none of them exist on disk — both fatal, exit code
// -6 per the driver's error taxonomy.
func (c *Configuration) Validate() error {
	if c.LLC == "" || c.Clang == "" {
		return ilerr.New(ilerr.NewMissingLLVM("configuration does not name an llc/clang tool"))
	}
	for _, p := range c.SystemImportPaths {
		if _, err := os.Stat(p); err == nil {
			return nil
		}
	}
	if len(c.SystemImportPaths) > 0 {
		return ilerr.New(ilerr.NewMissingSystemImport(fmt.Sprintf("no configured system import path exists: %v", c.SystemImportPaths)))
	}
	return nil
}
