package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"atlint/internal/diagfmt"
	"atlint/internal/lint"
)

var lintCmd = &cobra.Command{
	Use:   "lint [flags] [dir]",
	Short: "Lint the configure script of an autotools project",
	Long:  `Lint locates configure.ac (or the deprecated configure.in) in the given directory and reports style and correctness problems`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLint,
}

func init() {
	registerLintFlags(lintCmd)
}

func registerLintFlags(cmd *cobra.Command) {
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	cmd.Flags().Bool("preview", false, "show the offending source line under each diagnostic")
	cmd.Flags().Bool("codes", false, "include diagnostic codes in json output")
}

func runLint(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	showPreview, err := cmd.Flags().GetBool("preview")
	if err != nil {
		return fmt.Errorf("failed to get preview flag: %w", err)
	}
	includeCodes, err := cmd.Flags().GetBool("codes")
	if err != nil {
		return fmt.Errorf("failed to get codes flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	useColor := colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stdout))
	color.NoColor = !useColor

	cfg, err := loadProjectConfig(dir)
	if err != nil {
		return err
	}

	scriptPath, deprecated, err := lint.FindConfigureScript(dir)
	if errors.Is(err, lint.ErrNoConfigureScript) {
		fmt.Fprintf(os.Stderr, "atlint: %v\n", err)
		return silentExit(cmd)
	} else if err != nil {
		return err
	}

	opts := lint.Options{
		DeprecatedScriptName: deprecated,
		ExtraRequired:        cfg.Lint.Require,
		MaxDiagnostics:       maxDiagnostics,
	}
	if lint.HasAutomakeFile(dir) {
		opts.HasAutomake = true
		opts.AutomakePath = filepath.Join(dir, lint.AutomakeFile)
	}

	result, err := lint.LintFile(scriptPath, opts)
	if err != nil {
		return fmt.Errorf("lint failed: %w", err)
	}

	switch format {
	case "pretty":
		diagfmt.Pretty(os.Stdout, result.Bag.Items(), result.File, diagfmt.PrettyOpts{
			Color:       useColor,
			ShowPreview: showPreview || cfg.Lint.Preview,
		})
	case "json":
		if err := diagfmt.JSON(os.Stdout, result.Bag.Items(), result.File, diagfmt.JSONOpts{
			IncludeCodes: includeCodes,
		}); err != nil {
			return fmt.Errorf("failed to encode diagnostics: %w", err)
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if result.Fatal {
		return silentExit(cmd)
	}
	return nil
}

// silentExit forces a non-zero exit without cobra noise; whatever needed
// saying has already been printed.
func silentExit(cmd *cobra.Command) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	return fmt.Errorf("")
}
