package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shadow-lang/shadowc/internal/config"
	"github.com/shadow-lang/shadowc/internal/driver"
	"github.com/shadow-lang/shadowc/internal/frontend"
	"github.com/shadow-lang/shadowc/internal/ilerr"
	"github.com/shadow-lang/shadowc/internal/log"
)

// LastExitCode is set by run() to the documented exit-code contract
// (spec §6) whenever a driver stage reports a fatal diagnostic. main
// reads it after rootCmd.Execute() returns, since a cobra RunE only
// carries a plain error, not a numeric status.
var LastExitCode int

// commonFlags holds the flag values shared by CompileCmd and CheckCmd,
// bound once per command the way the teacher's BuildCmd binds --out and
// --log-level via package-level pointers into cobra.Command.Flags().
type commonFlags struct {
	configPath     string
	noLink         bool
	forceRecompile bool
	humanReadable  bool
	out            string
	logLevel       int
}

func bindCommonFlags(c *cobra.Command) *commonFlags {
	f := &commonFlags{}
	c.Flags().StringVar(&f.configPath, "config", "", "path to an XML system configuration file")
	c.Flags().BoolVar(&f.noLink, "no-link", false, "assemble object files but do not invoke the linker")
	c.Flags().BoolVar(&f.forceRecompile, "force-recompile", false, "ignore .meta timestamps and rebuild every unit")
	c.Flags().BoolVar(&f.humanReadable, "human-readable", false, "also emit a .ll file alongside each .o")
	c.Flags().StringVarP(&f.out, "out", "o", "", "output binary path")
	c.Flags().IntVarP(&f.logLevel, "log-level", "l", int(slog.LevelWarn), "log level")
	return f
}

var CompileCmd = &cobra.Command{
	Use:          "compile ./folder|file.shadow",
	Short:        "Compile a Shadow program to an object file (or, unless --no-link, a linked binary)",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
}

var CheckCmd = &cobra.Command{
	Use:          "check ./folder|file.shadow",
	Short:        "Type-check a Shadow program without building TAC or LLVM IR",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
}

func init() {
	compileFlags := bindCommonFlags(CompileCmd)
	CompileCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return run(args[0], compileFlags, driver.Options{
			NoLink:         compileFlags.noLink,
			ForceRecompile: compileFlags.forceRecompile,
			HumanReadable:  compileFlags.humanReadable,
			Output:         compileFlags.out,
		})
	}

	checkFlags := bindCommonFlags(CheckCmd)
	CheckCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return run(args[0], checkFlags, driver.Options{CheckOnly: true})
	}
}

// resolveRoot mirrors the teacher's build.go: a positional argument may
// name either the project directory or a single .shadow file within it;
// the driver always operates over the containing directory, since a
// Shadow program's units are every `.shadow` file alongside its main
// source (spec §1, §4.6: single-package scope).
func resolveRoot(target string) (string, error) {
	abs, err := filepath.Abs(target)
	if err != nil {
		return "", fmt.Errorf("could not resolve absolute path of %s: %w", target, err)
	}
	stat, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("could not stat %s: %w", abs, err)
	}
	if stat.IsDir() {
		return abs, nil
	}
	return filepath.Dir(abs), nil
}

// installDir locates the directory the running binary lives in, the base
// against which config.Load resolves the OS-selected built-in system
// config when --config and SHADOW_SYSTEM_CONFIG are both unset.
func installDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

func run(target string, flags *commonFlags, opts driver.Options) error {
	log.SetLevel(slog.Level(flags.logLevel))

	root, err := resolveRoot(target)
	if err != nil {
		LastExitCode = -1
		return err
	}

	cfg, err := config.Load(installDir(), flags.configPath)
	if err != nil {
		LastExitCode = exitCodeOf(err)
		return err
	}

	d := driver.New(frontend.NotImplemented{}, cfg)
	errs := d.Run(root, opts)
	if !errs.HasError() {
		return nil
	}

	LastExitCode = errs.ExitCode()
	return fmt.Errorf("compilation failed:\n%s", formatErrors(errs))
}

func formatErrors(errs *ilerr.Errors) string {
	var sb strings.Builder
	for _, e := range errs.All() {
		sb.WriteString(ilerr.FormatWithCode(e))
		sb.WriteString("\n")
	}
	return sb.String()
}

func exitCodeOf(err error) int {
	if ile, ok := err.(ilerr.IleError); ok {
		return (&ilerr.Errors{}).With(ile).ExitCode()
	}
	return -1
}
