package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sigac/sigac-core/internal/config"
	"github.com/sigac/sigac-core/internal/model"
	"golang.org/x/crypto/bcrypt"
)

// Common auth errors.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionInvalidated = errors.New("session invalidated")
	ErrUserBanned         = errors.New("user is banned")
)

// Claims extends JWT standard claims with app-specific fields.
type Claims struct {
	jwt.RegisteredClaims
	Role     string     `json:"role"`
	Banned   bool       `json:"banned,omitempty"`
	CourseID *uuid.UUID `json:"course_id,omitempty"`

	// ImpersonatorID is set when an admin minted this token to act as
	// another user.
	ImpersonatorID *uuid.UUID `json:"impersonator_id,omitempty"`
}

// TokenService issues and validates JWTs and tracks the single active
// session per user in Redis. It implements Provider.
type TokenService struct {
	cfg *config.Config
	rdb *redis.Client
}

// NewTokenService creates a new TokenService.
func NewTokenService(cfg *config.Config, rdb *redis.Client) *TokenService {
	return &TokenService{cfg: cfg, rdb: rdb}
}

// HashPassword hashes a password with the configured bcrypt cost.
func (s *TokenService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	return string(hash), err
}

// CheckPassword compares a plaintext password against a bcrypt hash.
func (s *TokenService) CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// GenerateToken creates a JWT for the user and registers its JTI as the
// user's single active session. A banned user cannot log in.
func (s *TokenService) GenerateToken(ctx context.Context, user *model.User) (string, error) {
	if user.Banned {
		return "", ErrUserBanned
	}

	jti := uuid.New().String()
	signed, err := s.sign(user, jti, nil)
	if err != nil {
		return "", err
	}

	// Store session in Redis with same expiry as JWT. Overwrites any
	// previous session, logging the user out elsewhere.
	sessionKey := config.CacheKey.UserSessionKey(user.ID)
	if err := s.rdb.Set(ctx, sessionKey, jti, s.cfg.JWTExpiry).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}

	return signed, nil
}

// Impersonate mints a token acting as target on behalf of an admin.
// The target's active session is replaced and the impersonation is
// recorded for auditing.
func (s *TokenService) Impersonate(ctx context.Context, adminID uuid.UUID, target *model.User) (string, error) {
	if target.Banned {
		return "", ErrUserBanned
	}

	jti := uuid.New().String()
	signed, err := s.sign(target, jti, &adminID)
	if err != nil {
		return "", err
	}

	if err := s.rdb.Set(ctx, config.CacheKey.UserSessionKey(target.ID), jti, s.cfg.JWTExpiry).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	if err := s.rdb.Set(ctx, config.CacheKey.ImpersonationKey(target.ID), adminID.String(), s.cfg.JWTExpiry).Err(); err != nil {
		return "", fmt.Errorf("record impersonation: %w", err)
	}

	return signed, nil
}

// ValidateToken parses and validates a JWT, returning the claims.
func (s *TokenService) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}

// Current implements Provider. It resolves the principal from the raw
// token on the context, checks the JTI against the active session in
// Redis, and rejects unknown roles and banned users.
func (s *TokenService) Current(ctx context.Context) (*model.Principal, error) {
	tokenStr := TokenFromContext(ctx)
	if tokenStr == "" {
		return nil, ErrNoSession
	}

	claims, err := s.ValidateToken(tokenStr)
	if err != nil {
		return nil, ErrNoSession
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrNoSession
	}

	// A session reset (ban, impersonation, re-login) replaces the JTI;
	// older tokens stop resolving immediately.
	stored, err := s.rdb.Get(ctx, config.CacheKey.UserSessionKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("check session: %w", err)
	}
	if stored != claims.ID {
		return nil, ErrSessionInvalidated
	}

	role, err := model.ParseRole(claims.Role)
	if err != nil {
		return nil, ErrNoSession
	}

	return &model.Principal{
		ID:       userID,
		Role:     role,
		Banned:   claims.Banned,
		CourseID: claims.CourseID,
	}, nil
}

// InvalidateSession removes a user's active session, forcing re-login.
func (s *TokenService) InvalidateSession(ctx context.Context, userID uuid.UUID) error {
	return s.rdb.Del(ctx, config.CacheKey.UserSessionKey(userID)).Err()
}

func (s *TokenService) sign(user *model.User, jti string, impersonator *uuid.UUID) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTExpiry)),
		},
		Role:           string(user.Role),
		Banned:         user.Banned,
		CourseID:       user.CourseID,
		ImpersonatorID: impersonator,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
