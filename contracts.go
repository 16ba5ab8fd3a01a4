// Package campusdeploy provides Go types for the campus platform's serverless
// deployment description.
//
// The deployment is described as plain Go values — IAM access roles, Lambda
// function descriptors, and frontend build specifications — assembled into a
// single Description that the provisioning engine diffs against live
// infrastructure:
//
//	cfg := config.FromEnv()
//	desc, err := describe.Build(cfg, describe.Options{})
//
// The campus-deploy CLI builds, validates, lints, diffs, and graphs the
// resulting description.
package campusdeploy

// Description is the fully resolved deployment description handed to the
// provisioning engine. All slices are sorted by name; there are no lazy or
// deferred values.
type Description struct {
	Version    string         `json:"Version" yaml:"Version"`
	Roles      []RoleDef      `json:"Roles,omitempty" yaml:"Roles,omitempty"`
	Functions  []FunctionDef  `json:"Functions,omitempty" yaml:"Functions,omitempty"`
	BuildSpecs []BuildSpecDef `json:"BuildSpecs,omitempty" yaml:"BuildSpecs,omitempty"`
}

// DescriptionFormatVersion identifies the wire format of Description.
const DescriptionFormatVersion = "2024-04-01"

// RoleDef is a single access role in the deployment description.
type RoleDef struct {
	Name      string   `json:"Name" yaml:"Name"`
	Principal string   `json:"Principal" yaml:"Principal"`
	Path      string   `json:"Path,omitempty" yaml:"Path,omitempty"`
	Policies  []string `json:"Policies" yaml:"Policies"`
}

// FunctionDef is a single compute unit in the deployment description.
// Role is the name of a RoleDef in the same description, or empty when the
// function runs under the default execution identity.
type FunctionDef struct {
	Name             string            `json:"Name" yaml:"Name"`
	CodeURI          string            `json:"CodeUri" yaml:"CodeUri"`
	Handler          string            `json:"Handler" yaml:"Handler"`
	Runtime          string            `json:"Runtime" yaml:"Runtime"`
	Intent           string            `json:"Intent" yaml:"Intent"`
	MemoryMB         int               `json:"MemorySize" yaml:"MemorySize"`
	TimeoutSec       int               `json:"Timeout" yaml:"Timeout"`
	LogRetentionDays int               `json:"LogRetentionDays" yaml:"LogRetentionDays"`
	Role             string            `json:"Role,omitempty" yaml:"Role,omitempty"`
	Env              map[string]string `json:"Environment,omitempty" yaml:"Environment,omitempty"`
}

// BuildSpecDef is the build specification for one managed frontend
// application, tagged with the mode that produced it.
type BuildSpecDef struct {
	App        string          `json:"App" yaml:"App"`
	Mode       string          `json:"Mode" yaml:"Mode"`
	Phases     []PhaseDef      `json:"Phases" yaml:"Phases"`
	Artifacts  ArtifactDef     `json:"Artifacts" yaml:"Artifacts"`
	CachePaths []string        `json:"CachePaths,omitempty" yaml:"CachePaths,omitempty"`
	Headers    []HeaderRuleDef `json:"Headers,omitempty" yaml:"Headers,omitempty"`
}

// PhaseDef is a named command sequence within a build specification.
type PhaseDef struct {
	Name     string   `json:"Name" yaml:"Name"`
	Commands []string `json:"Commands" yaml:"Commands"`
}

// ArtifactDef selects the files a build publishes.
type ArtifactDef struct {
	BaseDirectory string   `json:"BaseDirectory" yaml:"BaseDirectory"`
	Files         []string `json:"Files" yaml:"Files"`
}

// HeaderRuleDef injects response headers for paths matching Pattern.
// Rules apply in declaration order; headers from later rules are additive.
type HeaderRuleDef struct {
	Pattern string            `json:"Pattern" yaml:"Pattern"`
	Headers map[string]string `json:"Headers" yaml:"Headers"`
}

// DescriptionDiff contains the differences between two descriptions.
type DescriptionDiff struct {
	Added    []DiffEntry `json:"added,omitempty" yaml:"added,omitempty"`
	Removed  []DiffEntry `json:"removed,omitempty" yaml:"removed,omitempty"`
	Modified []DiffEntry `json:"modified,omitempty" yaml:"modified,omitempty"`
}

// DiffEntry is a single added, removed, or modified deployment element.
type DiffEntry struct {
	Name    string   `json:"name" yaml:"name"`
	Kind    string   `json:"kind" yaml:"kind"` // "role", "function", "buildspec"
	Changes []string `json:"changes,omitempty" yaml:"changes,omitempty"`
}

// DiffSummary counts the entries in a DescriptionDiff.
type DiffSummary struct {
	Added    int `json:"added" yaml:"added"`
	Removed  int `json:"removed" yaml:"removed"`
	Modified int `json:"modified" yaml:"modified"`
	Total    int `json:"total" yaml:"total"`
}

// BuildResult is the JSON output from `campus-deploy build`.
type BuildResult struct {
	Success     bool        `json:"success"`
	Description Description `json:"description,omitempty"`
	Errors      []string    `json:"errors,omitempty"`
}

// ValidateResult is the JSON output from `campus-deploy validate`.
type ValidateResult struct {
	Success    bool     `json:"success"`
	Roles      int      `json:"roles"`
	Functions  int      `json:"functions"`
	BuildSpecs int      `json:"build_specs"`
	Errors     []string `json:"errors,omitempty"`
}

// LintResult is the JSON output from `campus-deploy lint`.
type LintResult struct {
	Success bool        `json:"success"`
	Issues  []LintIssue `json:"issues,omitempty"`
}

// LintIssue is a single linting issue.
type LintIssue struct {
	Rule     string `json:"rule"`
	Severity string `json:"severity"` // "error", "warning", "info"
	Name     string `json:"name"`
	Message  string `json:"message"`
}
