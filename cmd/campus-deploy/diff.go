package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/campustime/campus-deploy/internal/differ"
)

func newDiffCmd() *cobra.Command {
	var (
		outputFormat string
		exitCode     bool
	)

	cmd := &cobra.Command{
		Use:   "diff <old-file> <new-file>",
		Short: "Diff two deployment description files",
		Long: `Diff compares two description files and reports added, removed, and
modified roles, functions, and build specifications. The CI harness posts
this output on pull requests before a provisioning run.

Examples:
    campus-deploy diff deployed.yml description.yml
    campus-deploy diff deployed.yml description.yml --exit-code`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(args[0], args[1], outputFormat, exitCode)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format: text, json, or yaml")
	cmd.Flags().BoolVar(&exitCode, "exit-code", false, "Exit with status 1 when differences are found")

	return cmd
}

func runDiff(oldPath, newPath, format string, exitCode bool) error {
	result, err := differ.CompareFiles(oldPath, newPath)
	if err != nil {
		return err
	}

	switch format {
	case "text":
		printDiffText(result)
	case "json":
		data, err := json.MarshalIndent(result.Diff, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
	case "yaml":
		data, err := yaml.Marshal(result.Diff)
		if err != nil {
			return err
		}
		fmt.Print(string(data))
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if exitCode && result.Summary.Total > 0 {
		os.Exit(1)
	}
	return nil
}

func printDiffText(result *differ.Result) {
	for _, e := range result.Diff.Added {
		fmt.Printf("+ %s %s\n", e.Kind, e.Name)
	}
	for _, e := range result.Diff.Removed {
		fmt.Printf("- %s %s\n", e.Kind, e.Name)
	}
	for _, e := range result.Diff.Modified {
		fmt.Printf("~ %s %s\n", e.Kind, e.Name)
		for _, c := range e.Changes {
			fmt.Printf("    %s\n", c)
		}
	}
	fmt.Printf("%d added, %d removed, %d modified\n",
		result.Summary.Added, result.Summary.Removed, result.Summary.Modified)
}
