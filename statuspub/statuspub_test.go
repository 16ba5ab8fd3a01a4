package statuspub

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campustime/campus-deploy/config"
	"github.com/campustime/campus-deploy/roles"
)

func TestNew(t *testing.T) {
	fn, err := New("deploy-status-publisher", "https://hooks.example.com/deploy")
	require.NoError(t, err)

	assert.Equal(t, "deploy-status-publisher", fn.Name)
	assert.Equal(t, 128, fn.MemoryMB)
	assert.Equal(t, 3, fn.TimeoutSec)
	assert.Equal(t, "notify", fn.Intent)
	assert.Equal(t, map[string]string{WebhookEnvKey: "https://hooks.example.com/deploy"}, fn.Env)

	// No custom role: publishers run under the default minimal identity.
	assert.Nil(t, fn.Role)
	assert.Same(t, roles.DefaultIdentity, fn.BoundRole())
}

func TestNew_MissingWebhook(t *testing.T) {
	_, err := New("deploy-status-publisher", "")
	require.ErrorIs(t, err, config.ErrMissingRequiredEnv)
}

func TestNew_EmptyName(t *testing.T) {
	_, err := New("", "https://hooks.example.com/deploy")
	require.Error(t, err)
}

func TestNew_InstancesAreIndependent(t *testing.T) {
	deploy, err := New("deploy-status-publisher", "https://hooks.example.com/deploy")
	require.NoError(t, err)
	scraper, err := New("scraper-status-publisher", "https://hooks.example.com/scraper")
	require.NoError(t, err)

	// Unrelated event sources must not share a descriptor or environment.
	assert.NotEqual(t, deploy.Name, scraper.Name)
	assert.NotEqual(t, deploy.Env[WebhookEnvKey], scraper.Env[WebhookEnvKey])

	deploy.Env[WebhookEnvKey] = "tampered"
	assert.Equal(t, "https://hooks.example.com/scraper", scraper.Env[WebhookEnvKey])
}
