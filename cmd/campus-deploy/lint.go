package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	campusdeploy "github.com/campustime/campus-deploy"
	"github.com/campustime/campus-deploy/internal/differ"
	"github.com/campustime/campus-deploy/internal/lint"
)

func newLintCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "lint <description-file>",
		Short: "Lint a deployment description file",
		Long: `Lint checks a built description file for configuration smells: orphan
roles, privilege mismatches, missing baseline policies, empty environment
values.

Examples:
    campus-deploy lint description.yml
    campus-deploy lint description.json --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(args[0], asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output issues as JSON")

	return cmd
}

func runLint(path string, asJSON bool) error {
	desc, err := differ.LoadDescription(path)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}

	result := lint.Check(desc)

	if asJSON {
		out := campusdeploy.LintResult{Success: result.Success, Issues: result.Issues}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
	} else {
		for _, issue := range result.Issues {
			fmt.Printf("%s: %s: %s: %s\n", issue.Severity, issue.Rule, issue.Name, issue.Message)
		}
		if result.Success {
			fmt.Println("no issues found")
		}
	}

	if !result.Success {
		os.Exit(1)
	}
	return nil
}
