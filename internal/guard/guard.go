package guard

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/sigac/sigac-core/internal/apperr"
	"github.com/sigac/sigac-core/internal/model"
	"github.com/sigac/sigac-core/internal/session"
	"github.com/sigac/sigac-core/internal/validator"
)

// Options declares what a guarded action requires before its business
// logic may run.
type Options struct {
	// RequireAuth demands a resolvable principal. Implied by Roles.
	RequireAuth bool

	// Roles restricts the action to principals whose role is in the
	// set. A mismatch surfaces as Unauthorized, the same kind as a
	// missing session, so endpoints do not reveal which roles exist.
	Roles []model.Role
}

// Context is what a passing guard hands to the action: the validated
// params and the resolved principal (nil when auth was not required).
type Context[T any] struct {
	Params    T
	Principal *model.Principal
}

// None is the params type for actions that take no input.
type None struct{}

// Guard is the single chokepoint every guarded action passes through.
// It validates input shape, resolves the session, and checks the role
// requirement, in that strict order. Permission and ownership checks
// happen in the action itself, against the evaluator and policies.
type Guard struct {
	sessions session.Provider
	validate *validator.Validator
	log      zerolog.Logger
}

// New creates a Guard.
func New(sessions session.Provider, validate *validator.Validator, log zerolog.Logger) *Guard {
	return &Guard{sessions: sessions, validate: validate, log: log}
}

// Run executes the guard steps for one action invocation.
//
// Order matters: invalid input never reaches the session provider, so
// validation failures cannot leak whether the caller is logged in, and
// an anonymous caller with malformed input gets a Validation error,
// not Unauthorized.
func Run[T any](ctx context.Context, g *Guard, params T, opts Options) (*Context[T], error) {
	// 1. Shape validation.
	if _, skip := any(params).(None); !skip {
		if fields := g.validate.Check(params); fields != nil {
			return nil, apperr.Validation(fields)
		}
	}

	gctx := &Context[T]{Params: params}

	if !opts.RequireAuth && len(opts.Roles) == 0 {
		return gctx, nil
	}

	// 2. Authentication.
	principal, err := g.sessions.Current(ctx)
	if err != nil || principal == nil {
		g.log.Debug().Err(err).Msg("guard: no usable session")
		return nil, apperr.Unauthorized()
	}
	gctx.Principal = principal

	// 3. Role requirement.
	if len(opts.Roles) > 0 {
		allowed := false
		for _, role := range opts.Roles {
			if principal.Role == role {
				allowed = true
				break
			}
		}
		if !allowed {
			g.log.Debug().
				Str("role", string(principal.Role)).
				Msg("guard: role not permitted")
			return nil, apperr.Unauthorized()
		}
	}

	return gctx, nil
}
