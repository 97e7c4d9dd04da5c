package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vmunix/unipack/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the default configuration file",
	Long:  "Writes a commented default config to path (default: ./unipack.toml).",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as TOML",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate configuration file",
	Long:  "Validates config syntax, values and environment variable substitution without touching the project.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigValidate,
}

func init() {
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing file")

	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configValidateCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := "unipack.toml"
	if len(args) > 0 {
		path = args[0]
	}
	force, _ := cmd.Flags().GetBool("force")

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists, use --force to overwrite", path)
	}
	if err := config.WriteDefault(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, path, err := loadConfig()
	if err != nil {
		return err
	}
	if path == "" {
		fmt.Println("# no config file found, showing defaults")
	} else {
		fmt.Printf("# %s\n", path)
	}
	return cfg.Encode(os.Stdout)
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	path := cfgFile
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		found, err := config.Discover()
		if err != nil {
			return err
		}
		path = found
	}

	fmt.Printf("Validating %s...\n\n", path)

	cfg, err := config.Load(path)
	if err != nil {
		var cfgErr *config.ConfigError
		if errors.As(err, &cfgErr) {
			printConfigErrors(cfgErr)
			return fmt.Errorf("configuration invalid")
		}
		return fmt.Errorf("failed to load config: %w", err)
	}

	printConfigSummary(cfg)
	fmt.Println("\nConfiguration valid!")
	return nil
}

func printConfigErrors(e *config.ConfigError) {
	if len(e.Missing) > 0 {
		fmt.Println("Missing environment variables:")
		for _, m := range e.Missing {
			fmt.Printf("  - %s\n", m)
		}
		fmt.Println()
	}

	if len(e.Errors) > 0 {
		fmt.Println("Validation errors:")
		for _, err := range e.Errors {
			fmt.Printf("  - %s\n", err)
		}
		fmt.Println()
	}
}

func printConfigSummary(cfg *config.Config) {
	fmt.Println("Configuration Summary:")
	root := cfg.Project.Root
	if root == "" {
		root = "(current directory)"
	}
	fmt.Printf("  Project:   %s\n", root)
	fmt.Printf("  Log level: %s\n", cfg.Log.Level)
	fmt.Printf("  Manifest:  escape strings %t\n", cfg.Manifest.EscapeStrings)
	fmt.Printf("  Legacy:    %s\n", cfg.Legacy.Format)

	tmpl := cfg.Codegen.Template
	if tmpl == "" {
		tmpl = "built-in"
	}
	fmt.Printf("  Codegen:   %s (template: %s)\n", cfg.Codegen.Filename, tmpl)

	if cfg.History.Enabled {
		fmt.Printf("  History:   %s\n", cfg.History.Path)
	} else {
		fmt.Println("  History:   disabled")
	}
}
