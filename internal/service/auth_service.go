package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/sigac/sigac-core/internal/apperr"
	"github.com/sigac/sigac-core/internal/guard"
	"github.com/sigac/sigac-core/internal/model"
	"github.com/sigac/sigac-core/internal/repository"
	"github.com/sigac/sigac-core/internal/session"
)

// AuthService handles login and logout. Login is the only guarded
// action that runs without a principal; logout requires one.
type AuthService struct {
	guard    *guard.Guard
	userRepo repository.UserRepository
	tokens   *session.TokenService
	log      zerolog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	g *guard.Guard,
	userRepo repository.UserRepository,
	tokens *session.TokenService,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{guard: g, userRepo: userRepo, tokens: tokens, log: log}
}

// LoginInput is the payload for authentication.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// LoginOutput carries the minted token and the user's profile.
type LoginOutput struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// Login verifies credentials and mints a session token. Failed lookups
// and wrong passwords produce the same error so the endpoint does not
// reveal which e-mails exist. A banned account is rejected explicitly.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginOutput, error) {
	if _, err := guard.Run(ctx, s.guard, input, guard.Options{}); err != nil {
		return nil, err
	}

	invalid := &apperr.Error{
		Kind:    apperr.KindUnauthorized,
		Code:    apperr.ErrInvalidCredentials,
		Message: apperr.GetMessage(apperr.ErrInvalidCredentials),
	}

	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return nil, invalid
		}
		return nil, err
	}
	if err := s.tokens.CheckPassword(user.PasswordHash, input.Password); err != nil {
		return nil, invalid
	}

	token, err := s.tokens.GenerateToken(ctx, user)
	if err != nil {
		if errors.Is(err, session.ErrUserBanned) {
			return nil, &apperr.Error{
				Kind:    apperr.KindForbidden,
				Code:    apperr.ErrUserBanned,
				Message: apperr.GetMessage(apperr.ErrUserBanned),
			}
		}
		return nil, apperr.Internal(err)
	}

	s.log.Info().
		Str("user_id", user.ID.String()).
		Str("role", string(user.Role)).
		Msg("User logged in")

	return &LoginOutput{Token: token, User: user}, nil
}

// Logout invalidates the caller's active session.
func (s *AuthService) Logout(ctx context.Context) error {
	gctx, err := guard.Run(ctx, s.guard, guard.None{}, guard.Options{RequireAuth: true})
	if err != nil {
		return err
	}
	if err := s.tokens.InvalidateSession(ctx, gctx.Principal.ID); err != nil {
		return apperr.Internal(err)
	}
	return nil
}
