package authz

import "github.com/sigac/sigac-core/internal/model"

// Instance-level ownership rules. Role-level permission says an aluno
// may "delete reports"; these predicates say which concrete report.
// Any false answer must surface as Forbidden, never NotFound.

// ReportPolicy gates mutations on a specific report.
type ReportPolicy struct{}

// Owns reports whether the principal is the report's author.
func (ReportPolicy) Owns(p *model.Principal, r *model.Report) bool {
	if p == nil || r == nil {
		return false
	}
	return r.OwnerID == p.ID
}

// StateAllows reports whether the report's lifecycle still permits
// edits and deletes. Once a reviewer has moved it past
// AGUARDANDO_VALIDACAO the report is locked, even for its owner.
func (ReportPolicy) StateAllows(r *model.Report) bool {
	return r != nil && r.Status == model.StatusAguardandoValidacao
}

// CanMutate combines ownership and the state gate. Admins get no
// bypass: they manage users and courses, not report contents, so they
// go through the same predicate as everyone else.
func (pol ReportPolicy) CanMutate(p *model.Principal, r *model.Report) bool {
	return pol.Owns(p, r) && pol.StateAllows(r)
}

// CategoryPolicy scopes category management to the responsible course.
type CategoryPolicy struct{}

// CanManage reports whether the principal may create, update, or
// delete a category of the given course. Admins manage any course; a
// coordenador only the course they are responsible for.
func (CategoryPolicy) CanManage(p *model.Principal, c *model.Category) bool {
	if p == nil || c == nil {
		return false
	}
	switch p.Role {
	case model.RoleAdmin:
		return true
	case model.RoleCoordenador:
		return p.CourseID != nil && *p.CourseID == c.CourseID
	default:
		return false
	}
}
