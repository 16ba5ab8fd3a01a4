// Package functions defines the function descriptor value object: a static,
// immutable description of one deployable compute unit.
package functions

import (
	"errors"
	"fmt"

	campusdeploy "github.com/campustime/campus-deploy"
	"github.com/campustime/campus-deploy/roles"
)

// MaxTimeoutSec is the runtime-imposed ceiling on function timeouts.
const MaxTimeoutSec = 900

// Runtime identifiers for the workloads this deployment ships.
const (
	RuntimePython = "python3.12"
	RuntimeNode   = "nodejs20.x"
)

// LogRetention is the retained-log duration in days. Only the listed values
// are accepted by the log service.
type LogRetention int

// Allowed retention periods.
const (
	RetainOneWeek     LogRetention = 7
	RetainOneMonth    LogRetention = 30
	RetainThreeMonths LogRetention = 90
	RetainOneYear     LogRetention = 365
)

// Valid reports whether r is one of the allowed retention periods.
func (r LogRetention) Valid() bool {
	switch r {
	case RetainOneWeek, RetainOneMonth, RetainThreeMonths, RetainOneYear:
		return true
	}
	return false
}

// ErrInvalidDescriptor wraps all descriptor validation failures.
var ErrInvalidDescriptor = errors.New("invalid function descriptor")

// Descriptor describes one compute unit. Role is a shared reference, not
// owned; nil means the function runs under roles.DefaultIdentity.
// Descriptors are constructed once from static configuration and never
// mutated afterwards.
type Descriptor struct {
	Name         string
	CodeURI      string
	Handler      string
	Runtime      string
	Intent       string
	MemoryMB     int
	TimeoutSec   int
	LogRetention LogRetention
	Role         *roles.AccessRole
	Env          map[string]string
}

// BoundRole returns the function's role, or roles.DefaultIdentity when none
// is bound.
func (d Descriptor) BoundRole() *roles.AccessRole {
	if d.Role == nil {
		return roles.DefaultIdentity
	}
	return d.Role
}

// Validate checks the descriptor's invariants. It does not check role/intent
// consistency; that is the family builder's concern.
func (d Descriptor) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidDescriptor)
	}
	if d.CodeURI == "" {
		return fmt.Errorf("%w: %s: code location must not be empty", ErrInvalidDescriptor, d.Name)
	}
	if d.Handler == "" {
		return fmt.Errorf("%w: %s: handler must not be empty", ErrInvalidDescriptor, d.Name)
	}
	if d.Runtime == "" {
		return fmt.Errorf("%w: %s: runtime must not be empty", ErrInvalidDescriptor, d.Name)
	}
	if d.MemoryMB <= 0 {
		return fmt.Errorf("%w: %s: memory must be positive, got %d", ErrInvalidDescriptor, d.Name, d.MemoryMB)
	}
	if d.TimeoutSec <= 0 || d.TimeoutSec > MaxTimeoutSec {
		return fmt.Errorf("%w: %s: timeout must be in (0, %d], got %d", ErrInvalidDescriptor, d.Name, MaxTimeoutSec, d.TimeoutSec)
	}
	if !d.LogRetention.Valid() {
		return fmt.Errorf("%w: %s: log retention %d days is not an allowed period", ErrInvalidDescriptor, d.Name, d.LogRetention)
	}
	for k, v := range d.Env {
		if k == "" {
			return fmt.Errorf("%w: %s: environment key must not be empty", ErrInvalidDescriptor, d.Name)
		}
		if v == "" {
			return fmt.Errorf("%w: %s: environment value for %s must not be empty", ErrInvalidDescriptor, d.Name, k)
		}
	}
	return nil
}

// Def returns the descriptor's wire form. The role is referenced by name;
// the default identity serializes as no role at all.
func (d Descriptor) Def() campusdeploy.FunctionDef {
	def := campusdeploy.FunctionDef{
		Name:             d.Name,
		CodeURI:          d.CodeURI,
		Handler:          d.Handler,
		Runtime:          d.Runtime,
		Intent:           d.Intent,
		MemoryMB:         d.MemoryMB,
		TimeoutSec:       d.TimeoutSec,
		LogRetentionDays: int(d.LogRetention),
	}
	if d.Role != nil {
		def.Role = d.Role.Name
	}
	if len(d.Env) > 0 {
		def.Env = make(map[string]string, len(d.Env))
		for k, v := range d.Env {
			def.Env[k] = v
		}
	}
	return def
}
