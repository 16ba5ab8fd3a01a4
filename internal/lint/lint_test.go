package lint

import (
	"testing"

	campusdeploy "github.com/campustime/campus-deploy"
	"github.com/campustime/campus-deploy/roles"
)

func cleanDescription() *campusdeploy.Description {
	return &campusdeploy.Description{
		Version: campusdeploy.DescriptionFormatVersion,
		Roles: []campusdeploy.RoleDef{
			{
				Name:      "timetable-read-role",
				Principal: roles.LambdaPrincipal,
				Policies:  []string{roles.BaselineExecutionPolicy, roles.DynamoDBReadPolicy},
			},
			{
				Name:      "timetable-write-role",
				Principal: roles.LambdaPrincipal,
				Policies:  []string{roles.BaselineExecutionPolicy, roles.DynamoDBFullPolicy},
			},
		},
		Functions: []campusdeploy.FunctionDef{
			{Name: "timetable-get", Intent: "retrieve", Role: "timetable-read-role"},
			{Name: "timetable-post", Intent: "create", Role: "timetable-write-role"},
			{Name: "timetable-export", Intent: "export"},
		},
	}
}

func hasIssue(result Result, rule, name string) bool {
	for _, issue := range result.Issues {
		if issue.Rule == rule && issue.Name == name {
			return true
		}
	}
	return false
}

func TestCheck_Clean(t *testing.T) {
	result := Check(cleanDescription())
	if !result.Success {
		t.Errorf("expected success, got issues: %v", result.Issues)
	}
}

func TestCheck_OrphanRole(t *testing.T) {
	desc := cleanDescription()
	desc.Roles = append(desc.Roles, campusdeploy.RoleDef{
		Name:      "career-read-role",
		Principal: roles.LambdaPrincipal,
		Policies:  []string{roles.BaselineExecutionPolicy, roles.DynamoDBReadPolicy},
	})

	result := Check(desc)
	if result.Success {
		t.Fatal("expected failure")
	}
	if !hasIssue(result, RuleOrphanRole, "career-read-role") {
		t.Errorf("expected orphan-role issue, got %v", result.Issues)
	}
}

func TestCheck_UnknownRole(t *testing.T) {
	desc := cleanDescription()
	desc.Functions[0].Role = "no-such-role"

	result := Check(desc)
	if !hasIssue(result, RuleUnknownRole, "timetable-get") {
		t.Errorf("expected unknown-role issue, got %v", result.Issues)
	}
}

func TestCheck_MissingBaseline(t *testing.T) {
	desc := cleanDescription()
	desc.Roles[0].Policies = []string{roles.DynamoDBReadPolicy}

	result := Check(desc)
	if !hasIssue(result, RuleMissingBaseline, "timetable-read-role") {
		t.Errorf("expected missing-baseline issue, got %v", result.Issues)
	}
}

func TestCheck_PrivilegeMismatch(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*campusdeploy.Description)
		fnName string
	}{
		{
			name:   "retrieval bound write role",
			mutate: func(d *campusdeploy.Description) { d.Functions[0].Role = "timetable-write-role" },
			fnName: "timetable-get",
		},
		{
			name:   "mutating bound read role",
			mutate: func(d *campusdeploy.Description) { d.Functions[1].Role = "timetable-read-role" },
			fnName: "timetable-post",
		},
		{
			name:   "mutating with no role",
			mutate: func(d *campusdeploy.Description) { d.Functions[1].Role = "" },
			fnName: "timetable-post",
		},
		{
			name:   "store-free bound a role",
			mutate: func(d *campusdeploy.Description) { d.Functions[2].Role = "timetable-read-role" },
			fnName: "timetable-export",
		},
		{
			name:   "retrieval with no role",
			mutate: func(d *campusdeploy.Description) { d.Functions[0].Role = "" },
			fnName: "timetable-get",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desc := cleanDescription()
			tt.mutate(desc)

			result := Check(desc)
			if !hasIssue(result, RulePrivilegeMismatch, tt.fnName) {
				t.Errorf("expected privilege-mismatch issue for %s, got %v", tt.fnName, result.Issues)
			}
		})
	}
}

func TestCheck_DuplicateFunction(t *testing.T) {
	desc := cleanDescription()
	desc.Functions = append(desc.Functions, desc.Functions[0])

	result := Check(desc)
	if !hasIssue(result, RuleDuplicateFunction, "timetable-get") {
		t.Errorf("expected duplicate-function issue, got %v", result.Issues)
	}
}

func TestCheck_EmptyEnvValue(t *testing.T) {
	desc := cleanDescription()
	desc.Functions[2].Env = map[string]string{"WEBHOOK_URL": ""}

	result := Check(desc)
	if !hasIssue(result, RuleEmptyEnvValue, "timetable-export") {
		t.Errorf("expected empty-env-value issue, got %v", result.Issues)
	}
}

func TestCheck_UnknownIntentWarns(t *testing.T) {
	desc := cleanDescription()
	desc.Functions[2].Intent = "launch"

	result := Check(desc)
	found := false
	for _, issue := range result.Issues {
		if issue.Rule == RulePrivilegeMismatch && issue.Severity == SeverityWarning {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a warning for unknown intent, got %v", result.Issues)
	}
}
