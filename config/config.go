// Package config captures the process-wide configuration the deployment
// description depends on.
//
// The description builder never reads the environment directly: every value
// is captured once into a Config and passed in explicitly, so construction
// is testable with injected fixtures.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Named configuration values the deployment description may require.
const (
	// KeyAPIServiceKey is the service-account credential for the external
	// translation API used by the course review functions.
	KeyAPIServiceKey = "API_SERVICE_KEY"

	// KeySlackDeployWebhook receives frontend build-status notifications.
	KeySlackDeployWebhook = "SLACK_WEBHOOK_DEPLOY"

	// KeySlackScraperWebhook receives syllabus-scraper job-status notifications.
	KeySlackScraperWebhook = "SLACK_WEBHOOK_SCRAPER"

	// KeyGitHubToken authenticates the feeds submodule sync during builds.
	KeyGitHubToken = "GITHUB_OAUTH_TOKEN"

	// KeyRegion is the target deployment region.
	KeyRegion = "AWS_REGION"
)

// Keys lists every configuration value FromEnv captures.
var Keys = []string{
	KeyAPIServiceKey,
	KeySlackDeployWebhook,
	KeySlackScraperWebhook,
	KeyGitHubToken,
	KeyRegion,
}

// ErrMissingRequiredEnv is returned when a required configuration value is
// absent or empty. A function must not be provisioned with a partial
// environment, so this aborts the description build.
var ErrMissingRequiredEnv = errors.New("missing required environment value")

// Config is an immutable snapshot of the configuration source.
type Config struct {
	values map[string]string
}

// New creates a Config from an explicit value map. Intended for tests.
func New(values map[string]string) Config {
	copied := make(map[string]string, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return Config{values: copied}
}

// FromEnv captures the fixed key set from the process environment.
// Unset and empty variables are equivalent: both are treated as absent.
func FromEnv() Config {
	values := make(map[string]string, len(Keys))
	for _, key := range Keys {
		if v := os.Getenv(key); v != "" {
			values[key] = v
		}
	}
	return Config{values: values}
}

// FromFile reads KEY=VALUE pairs from a dotenv file. Comments, blank lines
// and quoting follow dotenv conventions. Used by the CLI's --env-file flag
// and by the watch command to rebuild when the file changes.
func FromFile(path string) (Config, error) {
	parsed, err := godotenv.Read(path)
	if err != nil {
		return Config{}, fmt.Errorf("read env file %s: %w", path, err)
	}
	values := make(map[string]string, len(parsed))
	for key, value := range parsed {
		if value != "" {
			values[key] = value
		}
	}
	return Config{values: values}, nil
}

// Lookup returns the value for key and whether it is present.
func (c Config) Lookup(key string) (string, bool) {
	v, ok := c.values[key]
	return v, ok
}

// Require returns the value for key, or ErrMissingRequiredEnv if it is
// absent or empty.
func (c Config) Require(key string) (string, error) {
	v, ok := c.values[key]
	if !ok || v == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingRequiredEnv, key)
	}
	return v, nil
}
