package graph

import (
	"strings"
	"testing"

	campusdeploy "github.com/campustime/campus-deploy"
)

func testDescription() *campusdeploy.Description {
	return &campusdeploy.Description{
		Roles: []campusdeploy.RoleDef{
			{Name: "timetable-read-role"},
			{Name: "timetable-write-role"},
		},
		Functions: []campusdeploy.FunctionDef{
			{Name: "timetable-get", Role: "timetable-read-role"},
			{Name: "timetable-post", Role: "timetable-write-role"},
			{Name: "timetable-export"},
		},
		BuildSpecs: []campusdeploy.BuildSpecDef{
			{App: "web", Mode: "production"},
		},
	}
}

func TestGenerator_Generate(t *testing.T) {
	gen := &Generator{}
	var sb strings.Builder
	if err := gen.Generate(testDescription(), &sb); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := sb.String()

	if !strings.Contains(output, "digraph") {
		t.Error("expected digraph declaration")
	}
	for _, node := range []string{"timetable-get", "timetable-post", "timetable-export", "timetable-read-role", "timetable-write-role"} {
		if !strings.Contains(output, node) {
			t.Errorf("expected %s node", node)
		}
	}
	if !strings.Contains(output, "assumes") {
		t.Error("expected assumes edge label")
	}
}

func TestGenerator_Generate_Mermaid(t *testing.T) {
	gen := &Generator{Format: FormatMermaid}
	var sb strings.Builder
	if err := gen.Generate(testDescription(), &sb); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := sb.String()
	if !strings.Contains(output, "graph") {
		t.Error("expected mermaid graph declaration")
	}
	if strings.Contains(output, "digraph") {
		t.Error("mermaid output should not contain DOT syntax")
	}
}

func TestGenerator_Generate_DanglingRole(t *testing.T) {
	desc := testDescription()
	desc.Functions[0].Role = "missing-role"

	gen := &Generator{}
	output, err := gen.GenerateString(desc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The dangling reference still renders, dashed.
	if !strings.Contains(output, "missing-role") {
		t.Error("expected dangling role node")
	}
	if !strings.Contains(output, "dashed") {
		t.Error("expected dashed style on dangling role")
	}
}

func TestGenerator_Generate_BuildSpecs(t *testing.T) {
	gen := &Generator{IncludeBuildSpecs: true}
	output, err := gen.GenerateString(testDescription())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(output, "build:web") {
		t.Error("expected build spec node")
	}

	gen = &Generator{}
	output, err = gen.GenerateString(testDescription())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(output, "build:web") {
		t.Error("build spec nodes should be excluded by default")
	}
}
