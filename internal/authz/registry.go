package authz

import (
	"fmt"

	"github.com/sigac/sigac-core/internal/model"
)

// Grants maps each role to the subset of the statement it is allowed
// to perform.
type Grants map[model.Role]Statement

// DefaultGrants returns the role grants of the system.
//
// The admin grant is intentionally absent here: NewRegistry always
// assigns admin the full statement, which keeps the admin-superset
// invariant true for any future role added to this table.
func DefaultGrants() Grants {
	return Grants{
		model.RoleAluno: {
			ResourceSession:  {ActionCreate, ActionDelete},
			ResourceReport:   {ActionCreate, ActionList, ActionUpdate, ActionDelete},
			ResourceCategory: {ActionList},
		},
		model.RoleProfessor: {
			ResourceSession:  {ActionCreate, ActionDelete},
			ResourceReport:   {ActionList, ActionValidate},
			ResourceCategory: {ActionList},
		},
		model.RoleCoordenador: {
			ResourceSession:  {ActionCreate, ActionDelete},
			ResourceReport:   {ActionList, ActionValidate},
			ResourceCategory: {ActionCreate, ActionUpdate, ActionDelete, ActionList},
		},
	}
}

// Registry holds the permission statement and the per-role grants.
// It is immutable after construction and safe for concurrent readers.
type Registry struct {
	statement map[Resource]map[Action]struct{}
	grants    map[model.Role]map[Resource]map[Action]struct{}
}

// NewRegistry builds a registry from a statement and role grants.
// Grants referencing a resource or action missing from the statement,
// or an unknown role, fail construction.
func NewRegistry(statement Statement, grants Grants) (*Registry, error) {
	reg := &Registry{
		statement: make(map[Resource]map[Action]struct{}, len(statement)),
		grants:    make(map[model.Role]map[Resource]map[Action]struct{}, len(grants)+1),
	}

	for res, actions := range statement {
		set := make(map[Action]struct{}, len(actions))
		for _, a := range actions {
			set[a] = struct{}{}
		}
		reg.statement[res] = set
	}

	for role, grant := range grants {
		if !role.Valid() {
			return nil, fmt.Errorf("grant for unknown role %q", role)
		}
		if role == model.RoleAdmin {
			return nil, fmt.Errorf("admin grant is derived from the statement, not configured")
		}
		roleSet := make(map[Resource]map[Action]struct{}, len(grant))
		for res, actions := range grant {
			declared, ok := reg.statement[res]
			if !ok {
				return nil, fmt.Errorf("role %q granted unknown resource %q", role, res)
			}
			set := make(map[Action]struct{}, len(actions))
			for _, a := range actions {
				if _, ok := declared[a]; !ok {
					return nil, fmt.Errorf("role %q granted undefined action %q on %q", role, a, res)
				}
				set[a] = struct{}{}
			}
			roleSet[res] = set
		}
		reg.grants[role] = roleSet
	}

	// Admin always holds the full statement.
	admin := make(map[Resource]map[Action]struct{}, len(reg.statement))
	for res, actions := range reg.statement {
		set := make(map[Action]struct{}, len(actions))
		for a := range actions {
			set[a] = struct{}{}
		}
		admin[res] = set
	}
	reg.grants[model.RoleAdmin] = admin

	return reg, nil
}

// NewDefaultRegistry builds the registry from the built-in statement
// and grants. Construction cannot fail for the defaults; a failure
// here is a programming error.
func NewDefaultRegistry() *Registry {
	reg, err := NewRegistry(DefaultStatement(), DefaultGrants())
	if err != nil {
		panic(fmt.Sprintf("default registry: %v", err))
	}
	return reg
}

// HasCapability reports whether the role is granted the action on the
// resource. Unknown roles, resources, and actions all return false.
func (r *Registry) HasCapability(role model.Role, res Resource, action Action) bool {
	grant, ok := r.grants[role]
	if !ok {
		return false
	}
	actions, ok := grant[res]
	if !ok {
		return false
	}
	_, ok = actions[action]
	return ok
}

// Declares reports whether the statement contains the (resource,
// action) pair at all.
func (r *Registry) Declares(res Resource, action Action) bool {
	actions, ok := r.statement[res]
	if !ok {
		return false
	}
	_, ok = actions[action]
	return ok
}

// GrantFor returns a copy of a role's granted actions per resource,
// for introspection (e.g. sending capabilities to a UI).
func (r *Registry) GrantFor(role model.Role) Statement {
	grant, ok := r.grants[role]
	if !ok {
		return nil
	}
	out := make(Statement, len(grant))
	for res, actions := range grant {
		list := make([]Action, 0, len(actions))
		for a := range actions {
			list = append(list, a)
		}
		out[res] = list
	}
	return out
}
