package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	campusdeploy "github.com/campustime/campus-deploy"
	"github.com/campustime/campus-deploy/amplify"
	"github.com/campustime/campus-deploy/internal/describe"
	"github.com/campustime/campus-deploy/internal/lint"
)

func newValidateCmd() *cobra.Command {
	var (
		envFile string
		mode    string
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the deployment description builds cleanly",
		Long: `Validate builds the description and runs all lint rules on the result,
without writing anything. Exit status is non-zero on any error.

Examples:
    campus-deploy validate
    campus-deploy validate --env-file deploy.env`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(envFile, mode)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Read configuration from a KEY=VALUE file instead of the environment")
	cmd.Flags().StringVar(&mode, "mode", string(amplify.ModeProduction), "Build mode: production or development")

	return cmd
}

func runValidate(envFile, mode string) error {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}

	result := campusdeploy.ValidateResult{Success: true}

	desc, err := describe.Build(cfg, describe.Options{Mode: amplify.Mode(mode)})
	if err != nil {
		result.Success = false
		result.Errors = append(result.Errors, err.Error())
	} else {
		result.Roles = len(desc.Roles)
		result.Functions = len(desc.Functions)
		result.BuildSpecs = len(desc.BuildSpecs)

		lintResult := lint.Check(desc)
		for _, issue := range lintResult.Issues {
			if issue.Severity == lint.SeverityError {
				result.Success = false
			}
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %s: %s", issue.Rule, issue.Name, issue.Message))
		}
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))

	if !result.Success {
		os.Exit(1)
	}
	return nil
}
