package model

import "fmt"

// Role is the closed set of user roles in the system.
type Role string

const (
	// RoleAluno is a student submitting activity reports.
	RoleAluno Role = "aluno"

	// RoleProfessor is a teacher who reviews submitted reports.
	RoleProfessor Role = "professor"

	// RoleCoordenador is a course coordinator managing the activity
	// categories of the course they are responsible for.
	RoleCoordenador Role = "coordenador"

	// RoleAdmin manages users and courses and holds every permission.
	RoleAdmin Role = "admin"
)

// AllRoles is a slice of all valid roles.
var AllRoles = []Role{RoleAluno, RoleProfessor, RoleCoordenador, RoleAdmin}

// ParseRole converts a raw string into a Role. Unknown values are
// rejected here so they never reach authorization decisions.
func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case RoleAluno, RoleProfessor, RoleCoordenador, RoleAdmin:
		return Role(raw), nil
	default:
		return "", fmt.Errorf("unknown role %q", raw)
	}
}

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}
