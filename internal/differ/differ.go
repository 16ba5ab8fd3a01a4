// Package differ provides semantic comparison of deployment descriptions.
//
// The CI harness runs it between the freshly built description and the last
// deployed one to report what a provisioning run would change.
package differ

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"sort"

	"gopkg.in/yaml.v3"

	campusdeploy "github.com/campustime/campus-deploy"
)

// Element kinds reported in diff entries.
const (
	KindRole      = "role"
	KindFunction  = "function"
	KindBuildSpec = "buildspec"
)

// Result contains the difference between two descriptions.
type Result struct {
	Diff    campusdeploy.DescriptionDiff
	Summary campusdeploy.DiffSummary
}

// Compare compares two descriptions and returns their differences.
func Compare(before, after *campusdeploy.Description) (*Result, error) {
	result := &Result{}

	compareSets(result, KindRole, roleSet(before), roleSet(after))
	compareSets(result, KindFunction, functionSet(before), functionSet(after))
	compareSets(result, KindBuildSpec, buildSpecSet(before), buildSpecSet(after))

	sortEntries(result.Diff.Added)
	sortEntries(result.Diff.Removed)
	sortEntries(result.Diff.Modified)

	result.Summary = campusdeploy.DiffSummary{
		Added:    len(result.Diff.Added),
		Removed:  len(result.Diff.Removed),
		Modified: len(result.Diff.Modified),
	}
	result.Summary.Total = result.Summary.Added + result.Summary.Removed + result.Summary.Modified

	return result, nil
}

// CompareFiles compares two description files.
func CompareFiles(oldPath, newPath string) (*Result, error) {
	before, err := LoadDescription(oldPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", oldPath, err)
	}

	after, err := LoadDescription(newPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", newPath, err)
	}

	return Compare(before, after)
}

// LoadDescription loads a deployment description from a JSON or YAML file.
func LoadDescription(path string) (*campusdeploy.Description, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var desc campusdeploy.Description

	// Try JSON first
	if err := json.Unmarshal(data, &desc); err != nil {
		// Try YAML
		if err := yaml.Unmarshal(data, &desc); err != nil {
			return nil, fmt.Errorf("failed to parse as JSON or YAML: %w", err)
		}
	}

	return &desc, nil
}

// element is one named deployment element flattened to comparable fields.
type element struct {
	fields map[string]any
}

func compareSets(result *Result, kind string, before, after map[string]element) {
	for name := range after {
		if _, exists := before[name]; !exists {
			result.Diff.Added = append(result.Diff.Added, campusdeploy.DiffEntry{Name: name, Kind: kind})
		}
	}

	for name := range before {
		if _, exists := after[name]; !exists {
			result.Diff.Removed = append(result.Diff.Removed, campusdeploy.DiffEntry{Name: name, Kind: kind})
		}
	}

	for name, e1 := range before {
		e2, exists := after[name]
		if !exists {
			continue
		}
		changes := compareFields(e1.fields, e2.fields)
		if len(changes) > 0 {
			result.Diff.Modified = append(result.Diff.Modified, campusdeploy.DiffEntry{
				Name:    name,
				Kind:    kind,
				Changes: changes,
			})
		}
	}
}

// compareFields reports per-field changes between two elements.
func compareFields(f1, f2 map[string]any) []string {
	var changes []string

	for key, v2 := range f2 {
		if v1, exists := f1[key]; exists {
			if !reflect.DeepEqual(v1, v2) {
				changes = append(changes, fmt.Sprintf("%s changed: %v → %v", key, v1, v2))
			}
		} else {
			changes = append(changes, fmt.Sprintf("%s added", key))
		}
	}

	for key := range f1 {
		if _, exists := f2[key]; !exists {
			changes = append(changes, fmt.Sprintf("%s removed", key))
		}
	}

	sort.Strings(changes)
	return changes
}

func roleSet(desc *campusdeploy.Description) map[string]element {
	out := make(map[string]element, len(desc.Roles))
	for _, r := range desc.Roles {
		out[r.Name] = element{fields: map[string]any{
			"Principal": r.Principal,
			"Path":      r.Path,
			"Policies":  fmt.Sprintf("%v", r.Policies),
		}}
	}
	return out
}

func functionSet(desc *campusdeploy.Description) map[string]element {
	out := make(map[string]element, len(desc.Functions))
	for _, f := range desc.Functions {
		fields := map[string]any{
			"CodeUri":          f.CodeURI,
			"Handler":          f.Handler,
			"Runtime":          f.Runtime,
			"Intent":           f.Intent,
			"MemorySize":       f.MemoryMB,
			"Timeout":          f.TimeoutSec,
			"LogRetentionDays": f.LogRetentionDays,
			"Role":             f.Role,
		}
		for k, v := range f.Env {
			fields["Environment."+k] = v
		}
		out[f.Name] = element{fields: fields}
	}
	return out
}

func buildSpecSet(desc *campusdeploy.Description) map[string]element {
	out := make(map[string]element, len(desc.BuildSpecs))
	for _, b := range desc.BuildSpecs {
		fields := map[string]any{
			"Mode":       b.Mode,
			"Artifacts":  fmt.Sprintf("%v", b.Artifacts),
			"CachePaths": fmt.Sprintf("%v", b.CachePaths),
		}
		for _, p := range b.Phases {
			fields["Phases."+p.Name] = fmt.Sprintf("%v", p.Commands)
		}
		for _, h := range b.Headers {
			for name, value := range h.Headers {
				fields["Headers."+h.Pattern+"."+name] = value
			}
		}
		out[b.App] = element{fields: fields}
	}
	return out
}

// sortEntries sorts diff entries by kind then name.
func sortEntries(entries []campusdeploy.DiffEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Kind != entries[j].Kind {
			return entries[i].Kind < entries[j].Kind
		}
		return entries[i].Name < entries[j].Name
	})
}
