package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/unipack/internal/history"
)

func init() {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show export history",
		Args:  cobra.NoArgs,
		RunE:  runHistory,
	}
	historyCmd.Flags().String("id", "", "Filter by descriptor ID")
	historyCmd.Flags().String("step", "", "Filter by step (mirror, legacy, codegen)")
	historyCmd.Flags().String("status", "", "Filter by status (ok, skipped, failed)")
	historyCmd.Flags().IntP("limit", "l", 20, "Maximum number of entries")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	id, _ := cmd.Flags().GetString("id")
	step, _ := cmd.Flags().GetString("step")
	status, _ := cmd.Flags().GetString("status")
	limit, _ := cmd.Flags().GetInt("limit")

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if a.history == nil {
		return fmt.Errorf("history is disabled in config")
	}

	filter := history.Filter{Limit: limit}
	if id != "" {
		filter.DescriptorID = &id
	}
	if step != "" {
		filter.Step = &step
	}
	if status != "" {
		filter.Status = &status
	}

	entries, err := a.history.List(filter)
	if err != nil {
		return err
	}

	if jsonOutput {
		printJSON(entries)
		return nil
	}
	if len(entries) == 0 {
		fmt.Println("No history.")
		return nil
	}
	printHistory(entries)
	return nil
}

func printHistory(entries []*history.Entry) {
	fmt.Printf("  %-19s %-30s %-10s %-8s %-8s %s\n", "TIME", "PACKAGE", "VERSION", "STEP", "STATUS", "DETAIL")
	fmt.Println("  " + strings.Repeat("-", 100))
	for _, e := range entries {
		detail := e.Destination
		if e.Error != "" {
			detail = e.Error
		}
		fmt.Printf("  %-19s %-30s %-10s %-8s %-8s %s\n",
			e.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			truncate(e.PackageName, 30),
			e.Version,
			e.Step,
			e.Status,
			detail)
	}
}
