package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shadow-lang/shadowc/cmd"
)

// version and minLLVMVersion are surfaced by --information; kept here
// rather than in internal/config since they describe this binary, not
// the resolved runtime configuration.
const (
	version        = "0.1.0"
	minLLVMVersion = "6.0 (Linux) / 10.0 (Windows)"
)

var information bool

var rootCmd = &cobra.Command{
	Use:   "shadowc [subcommand]",
	Short: "shadowc — the Shadow language compiler middle-end and driver",
	Args:  cobra.MinimumNArgs(1),
	PersistentPreRunE: func(c *cobra.Command, args []string) error {
		if information {
			fmt.Printf("shadowc %s\nminimum LLVM version: %s\n", version, minLLVMVersion)
			os.Exit(0)
		}
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&information, "information", false, "print version and toolchain requirements, then exit")
	rootCmd.AddCommand(cmd.CompileCmd)
	rootCmd.AddCommand(cmd.CheckCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if cmd.LastExitCode != 0 {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(cmd.LastExitCode)
		}
		os.Exit(1)
	}
}
