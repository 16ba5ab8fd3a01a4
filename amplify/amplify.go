// Package amplify generates the build specifications for the managed
// frontend applications: build phases, artifact selection, cache paths, and
// CDN response-header injection.
package amplify

import (
	"fmt"

	campusdeploy "github.com/campustime/campus-deploy"
	"github.com/campustime/campus-deploy/config"
)

// Mode selects the build command sequence and header set.
type Mode string

const (
	// ModeProduction runs the full install+build sequence and injects the
	// complete security-header set.
	ModeProduction Mode = "production"
	// ModeDevelopment additionally exports a branch-derived prefix before
	// building, enabling per-branch preview builds, and injects only the
	// CORS header: preview artifacts are not publicly distributed with the
	// same trust assumptions.
	ModeDevelopment Mode = "development"
)

// Managed application names.
const (
	AppWeb       = "web"
	AppTimetable = "timetable"
	AppForum     = "forum"
	AppCareer    = "career"
	AppFeeds     = "feeds"
	AppAPIDocs   = "api-docs"
)

// Apps lists every managed application: the main web app, the micro-apps,
// and the API documentation site.
func Apps() []string {
	return []string{AppWeb, AppTimetable, AppForum, AppCareer, AppFeeds, AppAPIDocs}
}

// Phase names, in execution order.
const (
	PhaseSubmoduleSync = "submoduleSync"
	PhasePreBuild      = "preBuild"
	PhaseBuild         = "build"
)

// productionHeaders is the baseline security-header set applied to all
// output paths in production. The development set must stay a strict subset
// of this one.
var productionHeaders = map[string]string{
	"Strict-Transport-Security":   "max-age=31536000; includeSubDomains",
	"X-Frame-Options":             "SAMEORIGIN",
	"X-Content-Type-Options":      "nosniff",
	"Content-Security-Policy":     "default-src 'self'; img-src 'self' data:; script-src 'self'; style-src 'self' 'unsafe-inline'",
	"Access-Control-Allow-Origin": "*",
}

// developmentHeaders is the reduced set for preview builds.
var developmentHeaders = map[string]string{
	"Access-Control-Allow-Origin": "*",
}

// BuildSpec generates the build specification for one application in the
// given mode. The feeds app is special-cased by identity, not by mode: its
// content lives in an external source submodule that must be synchronized
// with an authenticated fetch before dependency installation, which requires
// the source-control token from cfg.
func BuildSpec(app string, mode Mode, cfg config.Config) (campusdeploy.BuildSpecDef, error) {
	if !knownApp(app) {
		return campusdeploy.BuildSpecDef{}, fmt.Errorf("unknown application %q", app)
	}
	if mode != ModeProduction && mode != ModeDevelopment {
		return campusdeploy.BuildSpecDef{}, fmt.Errorf("unknown build mode %q", mode)
	}

	var phases []campusdeploy.PhaseDef

	if app == AppFeeds {
		token, err := cfg.Require(config.KeyGitHubToken)
		if err != nil {
			return campusdeploy.BuildSpecDef{}, fmt.Errorf("app %s: %w", app, err)
		}
		phases = append(phases, campusdeploy.PhaseDef{
			Name: PhaseSubmoduleSync,
			Commands: []string{
				"git submodule init",
				fmt.Sprintf("git config submodule.feeds.url https://%s@github.com/campustime/feeds.git", token),
				"git submodule update --remote feeds",
			},
		})
	}

	phases = append(phases, campusdeploy.PhaseDef{
		Name:     PhasePreBuild,
		Commands: []string{"npm ci"},
	})

	buildCommands := []string{"npm run build"}
	if mode == ModeDevelopment {
		buildCommands = append([]string{
			`export BRANCH_PREFIX=$(echo "${AWS_BRANCH}" | sed 's/[^a-zA-Z0-9-]/-/g')`,
		}, buildCommands...)
	}
	phases = append(phases, campusdeploy.PhaseDef{
		Name:     PhaseBuild,
		Commands: buildCommands,
	})

	headers := developmentHeaders
	if mode == ModeProduction {
		headers = productionHeaders
	}

	return campusdeploy.BuildSpecDef{
		App:    app,
		Mode:   string(mode),
		Phases: phases,
		Artifacts: campusdeploy.ArtifactDef{
			BaseDirectory: "dist",
			Files:         []string{"**/*"},
		},
		CachePaths: []string{"node_modules/**/*"},
		Headers: []campusdeploy.HeaderRuleDef{
			{Pattern: "/**", Headers: copyHeaders(headers)},
		},
	}, nil
}

func knownApp(app string) bool {
	for _, a := range Apps() {
		if a == app {
			return true
		}
	}
	return false
}

func copyHeaders(h map[string]string) map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		out[k] = v
	}
	return out
}
