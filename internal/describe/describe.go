// Package describe assembles the complete deployment description: every
// workload family's roles and functions, the status publishers, and one
// build specification per managed application.
package describe

import (
	"fmt"
	"sort"

	campusdeploy "github.com/campustime/campus-deploy"
	"github.com/campustime/campus-deploy/amplify"
	"github.com/campustime/campus-deploy/config"
	"github.com/campustime/campus-deploy/families"
	"github.com/campustime/campus-deploy/roles"
	"github.com/campustime/campus-deploy/statuspub"
)

// Options configures the description build.
type Options struct {
	// Mode tags the generated build specifications. Defaults to production.
	Mode amplify.Mode
}

// Build constructs the fully resolved description from cfg. It is pure:
// equal configuration yields structurally equal output, and all errors
// surface here, before anything reaches the provisioning engine.
func Build(cfg config.Config, opts Options) (*campusdeploy.Description, error) {
	mode := opts.Mode
	if mode == "" {
		mode = amplify.ModeProduction
	}

	desc := &campusdeploy.Description{Version: campusdeploy.DescriptionFormatVersion}
	cat := roles.NewCatalog()

	for _, spec := range families.Platform() {
		group, err := families.Build(cat, spec, cfg)
		if err != nil {
			return nil, err
		}
		for _, fn := range group.Functions {
			desc.Functions = append(desc.Functions, fn.Def())
		}
	}
	for _, role := range cat.Roles() {
		desc.Roles = append(desc.Roles, role.Def())
	}

	publishers := []struct {
		name       string
		webhookKey string
	}{
		{"deploy-status-publisher", config.KeySlackDeployWebhook},
		{"scraper-status-publisher", config.KeySlackScraperWebhook},
	}
	for _, p := range publishers {
		url, err := cfg.Require(p.webhookKey)
		if err != nil {
			return nil, fmt.Errorf("status publisher %s: %w", p.name, err)
		}
		fn, err := statuspub.New(p.name, url)
		if err != nil {
			return nil, err
		}
		desc.Functions = append(desc.Functions, fn.Def())
	}

	for _, app := range amplify.Apps() {
		spec, err := amplify.BuildSpec(app, mode, cfg)
		if err != nil {
			return nil, err
		}
		desc.BuildSpecs = append(desc.BuildSpecs, spec)
	}

	sortDescription(desc)
	return desc, nil
}

// sortDescription orders all slices by name so the engine's diff input is
// stable across builds.
func sortDescription(desc *campusdeploy.Description) {
	sort.Slice(desc.Roles, func(i, j int) bool {
		return desc.Roles[i].Name < desc.Roles[j].Name
	})
	sort.Slice(desc.Functions, func(i, j int) bool {
		return desc.Functions[i].Name < desc.Functions[j].Name
	})
	sort.Slice(desc.BuildSpecs, func(i, j int) bool {
		return desc.BuildSpecs[i].App < desc.BuildSpecs[j].App
	})
}
