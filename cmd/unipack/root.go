package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var (
	cfgFile    string
	projectDir string
	logLevel   string
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "unipack",
	Short: "Unity package manifest and export tool",
	Long: `unipack - Unity package manifest and export tool

Finds package descriptors (*.upkg.toml) in a Unity project, generates
their package.json manifests, mirrors package sources to a destination
folder, builds legacy archives and generates version constants.

Run 'unipack ci id=<ids> version=<semver>' from a build pipeline.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: discovered)")
	rootCmd.PersistentFlags().StringVarP(&projectDir, "project", "p", "", "Unity project root (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("unipack {{.Version}}\n")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("unipack %s\n", version)
		},
	})
}
