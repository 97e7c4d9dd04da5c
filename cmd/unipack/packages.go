package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/unipack/internal/manifest"
	"github.com/vmunix/unipack/internal/pathutil"
)

func init() {
	newCmd := &cobra.Command{
		Use:   "new <package-name>",
		Short: "Create a package descriptor",
		Long: `Creates a new package descriptor with a fresh ID in a project folder.

Examples:
  unipack new com.example.tools --dir Assets/Tools --display-name "Example Tools"`,
		Args: cobra.ExactArgs(1),
		RunE: runNew,
	}
	newCmd.Flags().String("dir", "Assets", "Project-relative folder for the descriptor")
	newCmd.Flags().String("display-name", "", "Display name (default: package name)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List package descriptors in the project",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}

	manifestCmd := &cobra.Command{
		Use:   "manifest <id>",
		Short: "Print the package.json manifest for a descriptor",
		Args:  cobra.ExactArgs(1),
		RunE:  runManifest,
	}
	manifestCmd.Flags().Bool("write", false, "Write the manifest next to the descriptor instead of printing it")

	relpathCmd := &cobra.Command{
		Use:   "relpath <path> [base]",
		Short: "Print path relative to base (default: project root)",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  runRelPath,
	}

	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(manifestCmd)
	rootCmd.AddCommand(relpathCmd)
}

func runNew(cmd *cobra.Command, args []string) error {
	dir, _ := cmd.Flags().GetString("dir")
	displayName, _ := cmd.Flags().GetString("display-name")
	if displayName == "" {
		displayName = args[0]
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	d, err := a.store.Create(dir, args[0], displayName)
	if err != nil {
		return err
	}

	if jsonOutput {
		printJSON(d)
		return nil
	}
	fmt.Printf("Created %s\n", a.project.PathToAsset(d.Path()))
	fmt.Printf("  ID: %s\n", d.ID)
	return nil
}

// descriptorRow is the list view of a descriptor.
type descriptorRow struct {
	ID          string `json:"id"`
	PackageName string `json:"package_name"`
	DisplayName string `json:"display_name"`
	Version     string `json:"version"`
	Asset       string `json:"asset"`
	Destination string `json:"destination,omitempty"`
	Legacy      string `json:"legacy_destination,omitempty"`
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	descs, err := a.store.All(context.Background())
	if err != nil {
		return err
	}

	rows := make([]descriptorRow, len(descs))
	for i, d := range descs {
		rows[i] = descriptorRow{
			ID:          d.ID,
			PackageName: d.PackageName,
			DisplayName: d.DisplayName,
			Version:     d.Version,
			Asset:       a.project.PathToAsset(d.Path()),
			Destination: d.DestinationPath,
			Legacy:      d.LegacyDestinationPath,
		}
	}

	if jsonOutput {
		printJSON(rows)
		return nil
	}

	if len(rows) == 0 {
		fmt.Println("No package descriptors found.")
		return nil
	}
	printDescriptorList(rows)
	return nil
}

func printDescriptorList(rows []descriptorRow) {
	fmt.Printf("Packages (%d):\n\n", len(rows))
	fmt.Printf("  %-36s %-32s %-10s %s\n", "ID", "PACKAGE", "VERSION", "ASSET")
	fmt.Println("  " + strings.Repeat("-", 100))
	for _, r := range rows {
		fmt.Printf("  %-36s %-32s %-10s %s\n", r.ID, truncate(r.PackageName, 32), r.Version, r.Asset)
	}
}

func runManifest(cmd *cobra.Command, args []string) error {
	write, _ := cmd.Flags().GetBool("write")

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	d, err := a.store.Get(context.Background(), args[0])
	if err != nil {
		return err
	}

	if write {
		exp, err := a.exporter()
		if err != nil {
			return err
		}
		path, err := exp.WriteManifest(d)
		if err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", path)
		return nil
	}

	var opts []manifest.Option
	if a.cfg.Manifest.EscapeStrings {
		opts = append(opts, manifest.WithEscaping())
	}
	out, err := manifest.Generate(d, opts...)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

func runRelPath(cmd *cobra.Command, args []string) error {
	var base string
	if len(args) > 1 {
		base = args[1]
	} else {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()
		base = a.project.Root()
	}

	full, err := filepath.Abs(args[0])
	if err != nil {
		return err
	}
	if base, err = filepath.Abs(base); err != nil {
		return err
	}
	fmt.Println(pathutil.RelativePath(full, base))
	return nil
}
