// Package statuspub builds the status publisher descriptor: a fire-and-forget
// relay from one event source to a messaging webhook.
//
// Publishers run under the default execution identity with a short timeout
// and a small memory footprint. Each event source gets its own independent
// instantiation — publishers never share a descriptor or role, since they are
// triggered by unrelated sources and must fail independently.
package statuspub

import (
	"fmt"

	"github.com/campustime/campus-deploy/config"
	"github.com/campustime/campus-deploy/functions"
)

// WebhookEnvKey is the single environment variable a publisher receives.
const WebhookEnvKey = "WEBHOOK_URL"

// New builds a publisher descriptor for one event source. webhookURL must be
// non-empty; relaying to a missing destination is a configuration error, not
// a runtime fallback.
func New(name, webhookURL string) (functions.Descriptor, error) {
	if name == "" {
		return functions.Descriptor{}, fmt.Errorf("status publisher name must not be empty")
	}
	if webhookURL == "" {
		return functions.Descriptor{}, fmt.Errorf("status publisher %s: %w: %s", name, config.ErrMissingRequiredEnv, WebhookEnvKey)
	}

	desc := functions.Descriptor{
		Name:         name,
		CodeURI:      "lambda/" + name,
		Handler:      "index.handler",
		Runtime:      functions.RuntimeNode,
		Intent:       "notify",
		MemoryMB:     128,
		TimeoutSec:   3,
		LogRetention: functions.RetainOneWeek,
		Env:          map[string]string{WebhookEnvKey: webhookURL},
	}
	if err := desc.Validate(); err != nil {
		return functions.Descriptor{}, err
	}
	return desc, nil
}
