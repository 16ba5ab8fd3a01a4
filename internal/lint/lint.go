// Package lint checks deployment descriptions for configuration smells the
// type system cannot rule out: orphan roles, privilege mismatches, missing
// baseline policies.
//
// The library builders already refuse to construct most of these, so lint
// mainly guards description files that were hand-edited or produced by an
// older build.
package lint

import (
	"fmt"

	campusdeploy "github.com/campustime/campus-deploy"
	"github.com/campustime/campus-deploy/families"
	"github.com/campustime/campus-deploy/roles"
)

// Severity levels.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Rule names.
const (
	RuleOrphanRole        = "orphan-role"
	RuleUnknownRole       = "unknown-role"
	RuleMissingBaseline   = "missing-baseline-policy"
	RulePrivilegeMismatch = "privilege-mismatch"
	RuleDuplicateFunction = "duplicate-function"
	RuleEmptyEnvValue     = "empty-env-value"
)

// Result contains the outcome of linting a description.
type Result struct {
	Success bool
	Issues  []campusdeploy.LintIssue
}

// Check runs all rules against desc.
func Check(desc *campusdeploy.Description) Result {
	var issues []campusdeploy.LintIssue

	roleByName := make(map[string]campusdeploy.RoleDef, len(desc.Roles))
	referenced := make(map[string]bool)
	for _, r := range desc.Roles {
		roleByName[r.Name] = r
	}

	seen := make(map[string]bool, len(desc.Functions))
	for _, f := range desc.Functions {
		if seen[f.Name] {
			issues = append(issues, campusdeploy.LintIssue{
				Rule:     RuleDuplicateFunction,
				Severity: SeverityError,
				Name:     f.Name,
				Message:  "function name appears more than once",
			})
		}
		seen[f.Name] = true

		if f.Role != "" {
			referenced[f.Role] = true
			if _, ok := roleByName[f.Role]; !ok {
				issues = append(issues, campusdeploy.LintIssue{
					Rule:     RuleUnknownRole,
					Severity: SeverityError,
					Name:     f.Name,
					Message:  fmt.Sprintf("references undefined role %s", f.Role),
				})
			}
		}

		issues = append(issues, checkPrivilege(f, roleByName)...)

		for k, v := range f.Env {
			if v == "" {
				issues = append(issues, campusdeploy.LintIssue{
					Rule:     RuleEmptyEnvValue,
					Severity: SeverityError,
					Name:     f.Name,
					Message:  fmt.Sprintf("environment variable %s is empty", k),
				})
			}
		}
	}

	for _, r := range desc.Roles {
		if !referenced[r.Name] {
			issues = append(issues, campusdeploy.LintIssue{
				Rule:     RuleOrphanRole,
				Severity: SeverityError,
				Name:     r.Name,
				Message:  "no function references this role",
			})
		}
		if !hasPolicy(r, roles.BaselineExecutionPolicy) {
			issues = append(issues, campusdeploy.LintIssue{
				Rule:     RuleMissingBaseline,
				Severity: SeverityError,
				Name:     r.Name,
				Message:  "role does not carry the baseline execution policy",
			})
		}
	}

	return Result{Success: len(issues) == 0, Issues: issues}
}

// checkPrivilege verifies the intent/role pairing on the wire form. Unknown
// intents only warn: older descriptions may predate an intent.
func checkPrivilege(f campusdeploy.FunctionDef, roleByName map[string]campusdeploy.RoleDef) []campusdeploy.LintIssue {
	access, err := families.Intent(f.Intent).Access()
	if err != nil {
		return []campusdeploy.LintIssue{{
			Rule:     RulePrivilegeMismatch,
			Severity: SeverityWarning,
			Name:     f.Name,
			Message:  fmt.Sprintf("unknown intent %q", f.Intent),
		}}
	}

	role, bound := roleByName[f.Role]
	if f.Role != "" && !bound {
		// Reported separately by RuleUnknownRole.
		return nil
	}

	var msg string
	switch access {
	case families.AccessNone:
		if f.Role != "" {
			msg = fmt.Sprintf("store-free function is bound role %s", f.Role)
		}
	case families.AccessRead:
		switch {
		case f.Role == "":
			msg = "retrieval function has no role"
		case hasPolicy(role, roles.DynamoDBFullPolicy):
			msg = fmt.Sprintf("retrieval function is bound write-capable role %s", f.Role)
		case !hasPolicy(role, roles.DynamoDBReadPolicy):
			msg = fmt.Sprintf("retrieval function is bound role %s without read access", f.Role)
		}
	case families.AccessWrite:
		switch {
		case f.Role == "":
			msg = "mutating function has no role"
		case !hasPolicy(role, roles.DynamoDBFullPolicy):
			msg = fmt.Sprintf("mutating function is bound role %s without write access", f.Role)
		}
	}

	if msg == "" {
		return nil
	}
	return []campusdeploy.LintIssue{{
		Rule:     RulePrivilegeMismatch,
		Severity: SeverityError,
		Name:     f.Name,
		Message:  msg,
	}}
}

func hasPolicy(r campusdeploy.RoleDef, ref string) bool {
	for _, p := range r.Policies {
		if p == ref {
			return true
		}
	}
	return false
}
