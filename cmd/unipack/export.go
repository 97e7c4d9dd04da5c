package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/unipack/internal/batch"
	"github.com/vmunix/unipack/internal/descriptor"
	"github.com/vmunix/unipack/internal/history"
)

func init() {
	exportCmd := &cobra.Command{
		Use:   "export [id...]",
		Short: "Export packages (legacy archive and mirror)",
		Long: `Runs the legacy archive export and the source mirror for the given
descriptor IDs, or for every descriptor in the project when none are given.
Steps whose destination is not set are skipped.

Examples:
  unipack export                                # Export every package
  unipack export 0d4c7a3e-1b2f-4f0a-9c55-6a1f3f0e2a01 --version 1.4.0
  unipack export --codegen                      # Also generate version constants`,
		RunE: runExport,
	}
	exportCmd.Flags().String("version", "", "Override the package version for this run")
	exportCmd.Flags().Bool("codegen", false, "Generate version constants before exporting")

	ciCmd := &cobra.Command{
		Use:   "ci [key=value...]",
		Short: "Batch export driven by key=value tokens",
		Long: `Runs a batch export from raw command-line tokens, as passed by a build pipeline.

Recognized keys (case-insensitive):
  id=<id>[,<id>...]               Descriptors to export (default: all)
  version=<semver>                Version override for this run
  generateversionconstants[=bool] Generate version constants first

Other tokens are logged and ignored.`,
		FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
		RunE:               runCI,
	}

	codegenCmd := &cobra.Command{
		Use:   "codegen <id>",
		Short: "Generate the version constants file for a descriptor",
		Args:  cobra.ExactArgs(1),
		RunE:  runCodegen,
	}
	codegenCmd.Flags().String("version", "", "Override the package version for this run")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(ciCmd)
	rootCmd.AddCommand(codegenCmd)
}

// exportTokens converts export flags into batch tokens.
func exportTokens(ids []string, version string, codegen bool) []string {
	var tokens []string
	if len(ids) > 0 {
		tokens = append(tokens, batch.KeyID+"="+strings.Join(ids, ","))
	}
	if version != "" {
		tokens = append(tokens, batch.KeyVersion+"="+version)
	}
	if codegen {
		tokens = append(tokens, batch.KeyGenerateVersionConstants+"=true")
	}
	return tokens
}

func runExport(cmd *cobra.Command, args []string) error {
	version, _ := cmd.Flags().GetString("version")
	codegen, _ := cmd.Flags().GetBool("codegen")
	return runBatch(exportTokens(args, version, codegen))
}

func runCI(cmd *cobra.Command, args []string) error {
	return runBatch(args)
}

func runBatch(tokens []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	driver, err := a.driver()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	report, runErr := driver.Run(ctx, batch.ParseArgs(tokens))
	if report != nil {
		if jsonOutput {
			printJSON(report)
		} else {
			printReport(report)
		}
	}
	return runErr
}

func printReport(r *batch.Report) {
	if len(r.Outcomes) == 0 {
		fmt.Println("No packages to export.")
		return
	}
	for _, o := range r.Outcomes {
		if !o.Found {
			fmt.Printf("%s: not found, skipped\n", o.ID)
			continue
		}
		fmt.Printf("%s (%s)\n", o.PackageName, o.ID)
		for _, s := range o.Steps {
			line := fmt.Sprintf("  %-8s %-8s", s.Step, s.Status)
			if s.Destination != "" {
				line += fmt.Sprintf(" %s (%d files)", s.Destination, s.Files)
			}
			if s.Error != "" {
				line += " " + s.Error
			}
			fmt.Println(strings.TrimRight(line, " "))
		}
	}
}

func runCodegen(cmd *cobra.Command, args []string) error {
	version, _ := cmd.Flags().GetString("version")

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := context.Background()
	d, err := a.store.Get(ctx, args[0])
	if err != nil {
		return err
	}
	if version != "" {
		d.Version = version
	}

	entry := &history.Entry{
		DescriptorID: d.ID,
		PackageName:  d.PackageName,
		Version:      d.Version,
		Step:         history.StepCodegen,
		Status:       history.StatusOK,
	}

	path, genErr := a.generator().Generate(ctx, d)
	switch {
	case errors.Is(genErr, descriptor.ErrMissingOutputPath):
		entry.Status = history.StatusSkipped
		entry.Error = genErr.Error()
	case genErr != nil:
		entry.Status = history.StatusFailed
		entry.Error = genErr.Error()
	default:
		entry.Destination = path
		entry.Files = 1
	}

	if a.history != nil {
		if err := a.history.Add(entry); err != nil {
			a.log.Warn("failed to record history", "error", err)
		}
	}

	if genErr != nil {
		return genErr
	}
	if jsonOutput {
		printJSON(entry)
		return nil
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}
