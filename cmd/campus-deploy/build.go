package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	campusdeploy "github.com/campustime/campus-deploy"
	"github.com/campustime/campus-deploy/amplify"
	"github.com/campustime/campus-deploy/config"
	"github.com/campustime/campus-deploy/internal/describe"
)

func newBuildCmd() *cobra.Command {
	var (
		outputFormat string
		outputFile   string
		envFile      string
		mode         string
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Generate the deployment description",
		Long: `Build assembles the full deployment description and prints it.

Configuration is captured from the process environment, or from an env file
with --env-file. Build mode selects the frontend build specifications:
production (default) or development.

Examples:
    campus-deploy build
    campus-deploy build -o description.yml --format yaml
    campus-deploy build --mode development --env-file deploy.env`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(envFile, mode, outputFormat, outputFile)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "Output format: json or yaml")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVar(&envFile, "env-file", "", "Read configuration from a KEY=VALUE file instead of the environment")
	cmd.Flags().StringVar(&mode, "mode", string(amplify.ModeProduction), "Build mode: production or development")

	return cmd
}

func runBuild(envFile, mode, format, outputFile string) error {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}

	desc, err := describe.Build(cfg, describe.Options{Mode: amplify.Mode(mode)})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return fmt.Errorf("build failed")
	}

	log.WithFields(map[string]any{
		"roles":      len(desc.Roles),
		"functions":  len(desc.Functions),
		"buildSpecs": len(desc.BuildSpecs),
	}).Debug("description built")

	return outputDescription(desc, format, outputFile)
}

func loadConfig(envFile string) (config.Config, error) {
	if envFile == "" {
		return config.FromEnv(), nil
	}
	log.WithField("path", envFile).Debug("loading configuration from file")
	return config.FromFile(envFile)
}

func outputDescription(desc *campusdeploy.Description, format, outputFile string) error {
	var data []byte
	var err error

	switch format {
	case "json":
		data, err = json.MarshalIndent(desc, "", "  ")
	case "yaml":
		data, err = yaml.Marshal(desc)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if err != nil {
		return err
	}

	if outputFile == "" {
		fmt.Println(string(data))
		return nil
	}

	return os.WriteFile(outputFile, data, 0644)
}
