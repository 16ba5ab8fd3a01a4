// Command campus-deploy builds and inspects the campus platform's serverless
// deployment description.
//
// Usage:
//
//	campus-deploy build                 Generate the deployment description
//	campus-deploy validate              Check the description builds cleanly
//	campus-deploy lint description.yml  Lint a description file
//	campus-deploy diff old.yml new.yml  Diff two description files
//	campus-deploy graph                 Graph function-to-role bindings
//	campus-deploy version               Show version
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var log = logrus.New()

func main() {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "campus-deploy",
		Short: "Build the campus platform deployment description",
		Long: `campus-deploy assembles the deployment description handed to the
provisioning engine: IAM access roles, Lambda function descriptors, and
frontend build specifications.

The description is built from declarative Go values plus a fixed set of
configuration variables (secrets, webhooks, tokens) captured from the
environment or an env file:

    campus-deploy build --format yaml -o description.yml`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.SetOutput(os.Stderr)
			if verbose {
				log.SetLevel(logrus.DebugLevel)
			} else {
				log.SetLevel(logrus.WarnLevel)
			}
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		newBuildCmd(),
		newValidateCmd(),
		newLintCmd(),
		newDiffCmd(),
		newGraphCmd(),
		newWatchCmd(),
		newVersionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("campus-deploy %s\n", resolveVersion())
		},
	}
}
