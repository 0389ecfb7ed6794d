package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sigac/sigac-core/internal/apperr"
	"github.com/sigac/sigac-core/internal/authz"
	"github.com/sigac/sigac-core/internal/guard"
	"github.com/sigac/sigac-core/internal/model"
	"github.com/sigac/sigac-core/internal/repository"
	"github.com/sigac/sigac-core/internal/response"
	"github.com/sigac/sigac-core/internal/session"
)

// UserService handles user administration: creation, role changes,
// bans, impersonation, password resets, and removal. Admin-only.
type UserService struct {
	guard    *guard.Guard
	eval     *authz.Evaluator
	userRepo repository.UserRepository
	tokens   *session.TokenService
	log      zerolog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(
	g *guard.Guard,
	eval *authz.Evaluator,
	userRepo repository.UserRepository,
	tokens *session.TokenService,
	log zerolog.Logger,
) *UserService {
	return &UserService{guard: g, eval: eval, userRepo: userRepo, tokens: tokens, log: log}
}

var adminOnly = []model.Role{model.RoleAdmin}

// CreateUserInput is the payload for registering a user.
type CreateUserInput struct {
	Name     string     `json:"name" validate:"required,max=160"`
	Email    string     `json:"email" validate:"required,email,max=255"`
	Password string     `json:"password" validate:"required,min=8,max=128"`
	Role     string     `json:"role" validate:"required,oneof=aluno professor coordenador admin"`
	CourseID *uuid.UUID `json:"course_id,omitempty"`
}

// SetRoleInput is the payload for changing a user's role.
type SetRoleInput struct {
	Role     string     `json:"role" validate:"required,oneof=aluno professor coordenador admin"`
	CourseID *uuid.UUID `json:"course_id,omitempty"`
}

// SetPasswordInput is the payload for resetting a user's password.
type SetPasswordInput struct {
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// List returns all users, paginated.
func (s *UserService) List(ctx context.Context, page, perPage int) ([]*model.User, *response.Pagination, error) {
	gctx, err := guard.Run(ctx, s.guard, guard.None{}, guard.Options{Roles: adminOnly})
	if err != nil {
		return nil, nil, err
	}
	if err := denyError(s.eval.Evaluate(gctx.Principal, authz.ResourceUser, authz.ActionList)); err != nil {
		return nil, nil, err
	}

	page, perPage = normalizePage(page, perPage)
	users, total, err := s.userRepo.List(ctx, perPage, (page-1)*perPage)
	if err != nil {
		return nil, nil, err
	}
	return users, response.NewPagination(page, perPage, total), nil
}

// Create registers a new user with a hashed password.
func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*model.User, error) {
	gctx, err := guard.Run(ctx, s.guard, input, guard.Options{Roles: adminOnly})
	if err != nil {
		return nil, err
	}
	if err := denyError(s.eval.Evaluate(gctx.Principal, authz.ResourceUser, authz.ActionCreate)); err != nil {
		return nil, err
	}

	role, err := model.ParseRole(input.Role)
	if err != nil {
		return nil, apperr.Validation(map[string]string{"role": "papel desconhecido"})
	}

	hash, err := s.tokens.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	user := &model.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         role,
		CourseID:     input.CourseID,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("user_id", user.ID.String()).
		Str("role", string(user.Role)).
		Msg("User created")

	return user, nil
}

// SetRole changes a user's role. Changing a role invalidates the
// target's session so stale claims cannot outlive the change.
func (s *UserService) SetRole(ctx context.Context, id uuid.UUID, input SetRoleInput) error {
	gctx, err := guard.Run(ctx, s.guard, input, guard.Options{Roles: adminOnly})
	if err != nil {
		return err
	}
	if err := denyError(s.eval.Evaluate(gctx.Principal, authz.ResourceUser, authz.ActionSetRole)); err != nil {
		return err
	}

	role, err := model.ParseRole(input.Role)
	if err != nil {
		return apperr.Validation(map[string]string{"role": "papel desconhecido"})
	}

	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.userRepo.SetRole(ctx, id, role, input.CourseID); err != nil {
		return err
	}
	if err := s.tokens.InvalidateSession(ctx, id); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// Ban suspends a user and kills their active session immediately.
// An admin cannot ban themselves.
func (s *UserService) Ban(ctx context.Context, id uuid.UUID) error {
	gctx, err := guard.Run(ctx, s.guard, guard.None{}, guard.Options{Roles: adminOnly})
	if err != nil {
		return err
	}
	if err := denyError(s.eval.Evaluate(gctx.Principal, authz.ResourceUser, authz.ActionBan)); err != nil {
		return err
	}
	if gctx.Principal.ID == id {
		return apperr.Forbidden()
	}

	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.userRepo.SetBanned(ctx, id, true); err != nil {
		return err
	}
	if err := s.tokens.InvalidateSession(ctx, id); err != nil {
		return apperr.Internal(err)
	}

	s.log.Warn().Str("user_id", id.String()).Msg("User banned")
	return nil
}

// Unban lifts a suspension.
func (s *UserService) Unban(ctx context.Context, id uuid.UUID) error {
	gctx, err := guard.Run(ctx, s.guard, guard.None{}, guard.Options{Roles: adminOnly})
	if err != nil {
		return err
	}
	if err := denyError(s.eval.Evaluate(gctx.Principal, authz.ResourceUser, authz.ActionBan)); err != nil {
		return err
	}

	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.userRepo.SetBanned(ctx, id, false)
}

// Impersonate mints a session token acting as the target user.
func (s *UserService) Impersonate(ctx context.Context, id uuid.UUID) (string, error) {
	gctx, err := guard.Run(ctx, s.guard, guard.None{}, guard.Options{Roles: adminOnly})
	if err != nil {
		return "", err
	}
	if err := denyError(s.eval.Evaluate(gctx.Principal, authz.ResourceUser, authz.ActionImpersonate)); err != nil {
		return "", err
	}
	if gctx.Principal.ID == id {
		return "", apperr.Forbidden()
	}

	target, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	token, err := s.tokens.Impersonate(ctx, gctx.Principal.ID, target)
	if err != nil {
		if errors.Is(err, session.ErrUserBanned) {
			return "", apperr.Forbidden()
		}
		return "", apperr.Internal(err)
	}

	s.log.Warn().
		Str("admin_id", gctx.Principal.ID.String()).
		Str("target_id", id.String()).
		Msg("Impersonation started")

	return token, nil
}

// SetPassword resets a user's password and invalidates their session.
func (s *UserService) SetPassword(ctx context.Context, id uuid.UUID, input SetPasswordInput) error {
	gctx, err := guard.Run(ctx, s.guard, input, guard.Options{Roles: adminOnly})
	if err != nil {
		return err
	}
	if err := denyError(s.eval.Evaluate(gctx.Principal, authz.ResourceUser, authz.ActionSetPassword)); err != nil {
		return err
	}

	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		return err
	}

	hash, err := s.tokens.HashPassword(input.Password)
	if err != nil {
		return apperr.Internal(err)
	}
	if err := s.userRepo.SetPasswordHash(ctx, id, hash); err != nil {
		return err
	}
	if err := s.tokens.InvalidateSession(ctx, id); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// Delete removes a user. An admin cannot delete themselves.
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	gctx, err := guard.Run(ctx, s.guard, guard.None{}, guard.Options{Roles: adminOnly})
	if err != nil {
		return err
	}
	if err := denyError(s.eval.Evaluate(gctx.Principal, authz.ResourceUser, authz.ActionDelete)); err != nil {
		return err
	}
	if gctx.Principal.ID == id {
		return apperr.Forbidden()
	}

	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.tokens.InvalidateSession(ctx, id); err != nil {
		return apperr.Internal(err)
	}
	return nil
}
