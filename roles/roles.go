// Package roles builds the named IAM access roles bound to the deployment's
// compute units.
//
// Roles are constructed through a Catalog, which rejects duplicate names and
// duplicate policy references and guarantees that every role carries the
// baseline execution policy. Two preset shapes cover the common cases:
//
//	read, _ := cat.ReadOnlyDataRole("timetable")
//	write, _ := cat.ReadWriteDataRole("timetable")
//
// Presets are per workload family: each family gets its own role instances,
// so a compromise of one family's write role grants nothing against another
// family's data.
package roles

import (
	"errors"
	"fmt"

	campusdeploy "github.com/campustime/campus-deploy"
)

// Managed policy references and role constants.
const (
	// BaselineExecutionPolicy grants the minimal CloudWatch logging
	// permission. The catalog attaches it to every role it builds.
	BaselineExecutionPolicy = "arn:aws:iam::aws:policy/service-role/AWSLambdaBasicExecutionRole"

	// DynamoDBReadPolicy is the managed read-only data-access policy.
	DynamoDBReadPolicy = "arn:aws:iam::aws:policy/AmazonDynamoDBReadOnlyAccess"

	// DynamoDBFullPolicy is the managed read-write data-access policy.
	DynamoDBFullPolicy = "arn:aws:iam::aws:policy/AmazonDynamoDBFullAccess"

	// LambdaPrincipal is the service principal that assumes function roles.
	LambdaPrincipal = "lambda.amazonaws.com"

	// DefaultPath namespaces all service roles for this deployment.
	DefaultPath = "/service-role/"
)

// Construction-time configuration errors. All are fatal: the correct remedy
// is fixing the declarative input and rebuilding the description.
var (
	ErrDuplicateRoleName        = errors.New("duplicate role name")
	ErrDuplicatePolicyReference = errors.New("duplicate policy reference")
	ErrEmptyPolicySet           = errors.New("role requires at least one policy")
)

// AccessRole is a named bundle of permissions assumable by a compute unit.
// The policy set is fixed at construction; roles are shared by reference and
// never mutated.
type AccessRole struct {
	Name      string
	Principal string
	Path      string
	Purpose   string

	policies []string
}

// Policies returns a copy of the role's ordered policy references.
func (r *AccessRole) Policies() []string {
	out := make([]string, len(r.policies))
	copy(out, r.policies)
	return out
}

// HasPolicy reports whether the role carries the given policy reference.
func (r *AccessRole) HasPolicy(ref string) bool {
	for _, p := range r.policies {
		if p == ref {
			return true
		}
	}
	return false
}

// Writable reports whether the role grants write access to the persistent
// store.
func (r *AccessRole) Writable() bool {
	return r.HasPolicy(DynamoDBFullPolicy)
}

// Def returns the role's wire form for the provisioning engine.
func (r *AccessRole) Def() campusdeploy.RoleDef {
	return campusdeploy.RoleDef{
		Name:      r.Name,
		Principal: r.Principal,
		Path:      r.Path,
		Policies:  r.Policies(),
	}
}

// DefaultIdentity is the explicit minimal identity for functions with no
// persistent-store access. It carries no policies and is never provisioned;
// it exists so the absence of a role binding is a named value rather than an
// implicit nil.
var DefaultIdentity = &AccessRole{
	Name:      "default-execution-identity",
	Principal: LambdaPrincipal,
	Purpose:   "minimal identity for functions without store access",
}

// Catalog constructs the deployment's access roles and enforces name
// uniqueness across all of them.
type Catalog struct {
	byName map[string]*AccessRole
	order  []string
}

// NewCatalog returns an empty role catalog.
func NewCatalog() *Catalog {
	return &Catalog{byName: make(map[string]*AccessRole)}
}

// BuildRole constructs a role from a principal and an ordered set of managed
// policy references. The baseline execution policy is always attached first;
// callers need not (and should not) pass it, though doing so is tolerated.
func (c *Catalog) BuildRole(name, principal string, policies []string, purpose string) (*AccessRole, error) {
	if name == "" {
		return nil, errors.New("role name must not be empty")
	}
	if _, exists := c.byName[name]; exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateRoleName, name)
	}
	if len(policies) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyPolicySet, name)
	}

	attached := []string{BaselineExecutionPolicy}
	seen := map[string]bool{BaselineExecutionPolicy: true}
	for _, p := range policies {
		if p == BaselineExecutionPolicy {
			continue
		}
		if seen[p] {
			return nil, fmt.Errorf("%w: %s in role %s", ErrDuplicatePolicyReference, p, name)
		}
		seen[p] = true
		attached = append(attached, p)
	}

	role := &AccessRole{
		Name:      name,
		Principal: principal,
		Path:      DefaultPath,
		Purpose:   purpose,
		policies:  attached,
	}
	c.byName[name] = role
	c.order = append(c.order, name)
	return role, nil
}

// ReadOnlyDataRole builds the family's read-only data-access role.
func (c *Catalog) ReadOnlyDataRole(family string) (*AccessRole, error) {
	return c.BuildRole(
		family+"-read-role",
		LambdaPrincipal,
		[]string{DynamoDBReadPolicy},
		fmt.Sprintf("read-only store access for the %s family", family),
	)
}

// ReadWriteDataRole builds the family's read-write data-access role.
func (c *Catalog) ReadWriteDataRole(family string) (*AccessRole, error) {
	return c.BuildRole(
		family+"-write-role",
		LambdaPrincipal,
		[]string{DynamoDBFullPolicy},
		fmt.Sprintf("read-write store access for the %s family", family),
	)
}

// Roles returns all constructed roles in creation order.
func (c *Catalog) Roles() []*AccessRole {
	out := make([]*AccessRole, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.byName[name])
	}
	return out
}
