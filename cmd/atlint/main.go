package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"atlint/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "atlint [flags] [dir]",
	Short: "Autotools project linter",
	Long:  `atlint scans configure.ac for style and correctness problems without expanding any macros`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLint,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")

	registerLintFlags(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal reports whether the file is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
