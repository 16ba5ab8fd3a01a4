// Package families groups related function descriptors into workload
// families and derives their role bindings.
//
// A family (timetable, course reviews, ...) shares at most two roles: a
// read-only role for retrieval functions and a read-write role for mutating
// functions. Functions that never touch the persistent store — imports,
// exports, transforms, notifiers — are bound no role at all and run under
// the default execution identity. The builder applies this rule
// deterministically and refuses to construct a role no function references.
package families

import (
	"errors"
	"fmt"

	"github.com/campustime/campus-deploy/config"
	"github.com/campustime/campus-deploy/functions"
	"github.com/campustime/campus-deploy/roles"
)

// Intent is a function's declared operation intent. It determines the role
// binding.
type Intent string

// Known intents.
const (
	IntentRetrieve  Intent = "retrieve"
	IntentCreate    Intent = "create"
	IntentUpdate    Intent = "update"
	IntentDelete    Intent = "delete"
	IntentImport    Intent = "import"
	IntentExport    Intent = "export"
	IntentTransform Intent = "transform"
	IntentNotify    Intent = "notify"
)

// Access is the store-access level an intent implies.
type Access int

const (
	// AccessNone means the function never touches the persistent store.
	AccessNone Access = iota
	// AccessRead means the function only reads the persistent store.
	AccessRead
	// AccessWrite means the function mutates the persistent store.
	AccessWrite
)

// Access maps the intent to its required store-access level.
func (i Intent) Access() (Access, error) {
	switch i {
	case IntentRetrieve:
		return AccessRead, nil
	case IntentCreate, IntentUpdate, IntentDelete:
		return AccessWrite, nil
	case IntentImport, IntentExport, IntentTransform, IntentNotify:
		return AccessNone, nil
	}
	return AccessNone, fmt.Errorf("unknown intent %q", i)
}

// ErrPrivilegeMismatch is returned when a function's explicit role binding
// is inconsistent with its intent: a store-writing function without a
// write-capable role, or a store-free function bound any role. Silent
// over-granting is the risk this check exists to catch, so it is a hard
// construction-time error.
var ErrPrivilegeMismatch = errors.New("role binding inconsistent with operation intent")

// FunctionSpec declares one function of a workload family. Memory and
// timeout are supplied explicitly per workload: they encode empirically
// tuned cost/latency tradeoffs, not derivable invariants.
type FunctionSpec struct {
	Name         string
	Intent       Intent
	CodeURI      string
	Handler      string
	Runtime      string
	MemoryMB     int
	TimeoutSec   int
	LogRetention functions.LogRetention

	// RequiredEnv names configuration values the function cannot run
	// without. Each is resolved against the supplied Config; a missing
	// value aborts the build.
	RequiredEnv []string

	// StaticEnv is injected verbatim.
	StaticEnv map[string]string

	// Role optionally pins an explicit binding. When set, Build verifies it
	// against the intent and fails with ErrPrivilegeMismatch on any
	// inconsistency. When nil, the binding is derived from the intent.
	Role *roles.AccessRole
}

// Spec declares a complete workload family.
type Spec struct {
	Family    string
	Functions []FunctionSpec
}

// Group is the built output of one family: the roles actually referenced and
// the descriptors referencing them.
type Group struct {
	Family    string
	Roles     []*roles.AccessRole
	Functions []functions.Descriptor
}

// Build materializes a family. Roles are created in the supplied catalog on
// first use, so a family whose functions are all store-free produces no
// roles at all, and a read-only family produces exactly one.
func Build(cat *roles.Catalog, spec Spec, cfg config.Config) (Group, error) {
	group := Group{Family: spec.Family}
	if spec.Family == "" {
		return Group{}, errors.New("family name must not be empty")
	}
	if len(spec.Functions) == 0 {
		return group, nil
	}

	var readRole, writeRole *roles.AccessRole

	for _, fn := range spec.Functions {
		access, err := fn.Intent.Access()
		if err != nil {
			return Group{}, fmt.Errorf("family %s: function %s: %w", spec.Family, fn.Name, err)
		}

		var bound *roles.AccessRole
		if fn.Role != nil {
			if err := checkBinding(access, fn.Role); err != nil {
				return Group{}, fmt.Errorf("family %s: function %s: %w", spec.Family, fn.Name, err)
			}
			// An explicit default identity stays an absent binding on the wire.
			if fn.Role != roles.DefaultIdentity {
				bound = fn.Role
			}
		} else {
			switch access {
			case AccessRead:
				if readRole == nil {
					readRole, err = cat.ReadOnlyDataRole(spec.Family)
					if err != nil {
						return Group{}, fmt.Errorf("family %s: %w", spec.Family, err)
					}
					group.Roles = append(group.Roles, readRole)
				}
				bound = readRole
			case AccessWrite:
				if writeRole == nil {
					writeRole, err = cat.ReadWriteDataRole(spec.Family)
					if err != nil {
						return Group{}, fmt.Errorf("family %s: %w", spec.Family, err)
					}
					group.Roles = append(group.Roles, writeRole)
				}
				bound = writeRole
			}
		}

		env, err := resolveEnv(fn, cfg)
		if err != nil {
			return Group{}, fmt.Errorf("family %s: function %s: %w", spec.Family, fn.Name, err)
		}

		desc := functions.Descriptor{
			Name:         fmt.Sprintf("%s-%s", spec.Family, fn.Name),
			CodeURI:      fn.CodeURI,
			Handler:      fn.Handler,
			Runtime:      fn.Runtime,
			Intent:       string(fn.Intent),
			MemoryMB:     fn.MemoryMB,
			TimeoutSec:   fn.TimeoutSec,
			LogRetention: fn.LogRetention,
			Role:         bound,
			Env:          env,
		}
		if err := desc.Validate(); err != nil {
			return Group{}, fmt.Errorf("family %s: %w", spec.Family, err)
		}
		group.Functions = append(group.Functions, desc)
	}

	return group, nil
}

// checkBinding verifies an explicit role against the access level the
// intent requires.
func checkBinding(access Access, role *roles.AccessRole) error {
	switch access {
	case AccessNone:
		if role != roles.DefaultIdentity {
			return fmt.Errorf("%w: store-free function bound role %s", ErrPrivilegeMismatch, role.Name)
		}
	case AccessRead:
		if role.Writable() {
			return fmt.Errorf("%w: retrieval function bound write-capable role %s", ErrPrivilegeMismatch, role.Name)
		}
		if !role.HasPolicy(roles.DynamoDBReadPolicy) {
			return fmt.Errorf("%w: retrieval function bound role %s without read access", ErrPrivilegeMismatch, role.Name)
		}
	case AccessWrite:
		if !role.Writable() {
			return fmt.Errorf("%w: mutating function bound role %s without write access", ErrPrivilegeMismatch, role.Name)
		}
	}
	return nil
}

// resolveEnv merges static env with required configuration values.
func resolveEnv(fn FunctionSpec, cfg config.Config) (map[string]string, error) {
	if len(fn.StaticEnv) == 0 && len(fn.RequiredEnv) == 0 {
		return nil, nil
	}
	env := make(map[string]string, len(fn.StaticEnv)+len(fn.RequiredEnv))
	for k, v := range fn.StaticEnv {
		env[k] = v
	}
	for _, key := range fn.RequiredEnv {
		v, err := cfg.Require(key)
		if err != nil {
			return nil, err
		}
		env[key] = v
	}
	return env, nil
}
