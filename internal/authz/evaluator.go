package authz

import "github.com/sigac/sigac-core/internal/model"

// DenyReason explains why an evaluation denied the request.
type DenyReason string

const (
	DenyNoPrincipal  DenyReason = "no_principal"
	DenyBanned       DenyReason = "banned"
	DenyNoCapability DenyReason = "no_capability"
)

// Decision is the outcome of a permission evaluation.
type Decision struct {
	Allowed bool
	Reason  DenyReason
}

// Allow is the single allowed decision.
var Allow = Decision{Allowed: true}

// Deny builds a denial with the given reason.
func Deny(reason DenyReason) Decision {
	return Decision{Reason: reason}
}

// Evaluator answers role-level permission questions against the
// registry. It is pure: no side effects, no hidden state.
type Evaluator struct {
	registry *Registry
}

// NewEvaluator creates an evaluator over an immutable registry.
func NewEvaluator(registry *Registry) *Evaluator {
	return &Evaluator{registry: registry}
}

// Evaluate decides whether the principal may perform the action on the
// resource. A nil principal or a banned principal is always denied,
// regardless of role.
func (e *Evaluator) Evaluate(p *model.Principal, res Resource, action Action) Decision {
	if p == nil {
		return Deny(DenyNoPrincipal)
	}
	if p.Banned {
		return Deny(DenyBanned)
	}
	if !e.registry.HasCapability(p.Role, res, action) {
		return Deny(DenyNoCapability)
	}
	return Allow
}
