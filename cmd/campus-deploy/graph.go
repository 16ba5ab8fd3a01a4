package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/campustime/campus-deploy/amplify"
	"github.com/campustime/campus-deploy/internal/describe"
	"github.com/campustime/campus-deploy/internal/graph"
)

func newGraphCmd() *cobra.Command {
	var (
		outputFormat      string
		includeBuildSpecs bool
		envFile           string
	)

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Generate DOT graph of function-to-role bindings",
		Long: `Generate a DOT or Mermaid format graph of the deployment's privilege
topology: which function assumes which access role.

The output can be rendered with Graphviz:
    campus-deploy graph | dot -Tpng -o privileges.png

Or used in GitHub markdown (Mermaid format):
    campus-deploy graph -f mermaid`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGraph(envFile, outputFormat, includeBuildSpecs)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "dot", "Output format: dot or mermaid")
	cmd.Flags().BoolVarP(&includeBuildSpecs, "include-builds", "b", false, "Include build specification nodes in the graph")
	cmd.Flags().StringVar(&envFile, "env-file", "", "Read configuration from a KEY=VALUE file instead of the environment")

	return cmd
}

func runGraph(envFile, format string, includeBuilds bool) error {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}

	desc, err := describe.Build(cfg, describe.Options{Mode: amplify.ModeProduction})
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	var graphFormat graph.Format
	switch format {
	case "dot":
		graphFormat = graph.FormatDOT
	case "mermaid":
		graphFormat = graph.FormatMermaid
	default:
		return fmt.Errorf("unknown format: %s (use 'dot' or 'mermaid')", format)
	}

	gen := &graph.Generator{
		Format:            graphFormat,
		IncludeBuildSpecs: includeBuilds,
	}

	return gen.Generate(desc, os.Stdout)
}
