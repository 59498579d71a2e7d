package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"instiwise-api/internal/cache"
	"instiwise-api/internal/model"
)

// Revocation key prefixes. The raw token string is the key suffix, so
// a lookup is a single EXISTS with no decoding.
const (
	accessBlacklistPrefix  = "blacklist:"
	refreshBlacklistPrefix = "blacklist:refresh:"
)

const minUsernameLen = 3

// UserStore is the credential-store surface the session lifecycle
// needs. The pgx repository satisfies it; tests use an in-memory one.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id string) (model.User, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	Activate(ctx context.Context, id string, username string) error
	UpdatePassword(ctx context.Context, id string, passwordHash string, validAfter time.Time) error
}

// AuthService orchestrates the account lifecycle: registration, login,
// username activation, password change, refresh, and logout. It owns
// no state of its own: credentials live in the store, revocations in
// the blacklist, everything else in the tokens themselves.
type AuthService struct {
	users     UserStore
	tokens    *TokenService
	blacklist cache.Blacklist
	now       func() time.Time
}

func NewAuthService(users UserStore, tokens *TokenService, blacklist cache.Blacklist) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    tokens,
		blacklist: blacklist,
		now:       time.Now,
	}
}

func (s *AuthService) SetClock(now func() time.Time) {
	s.now = now
	s.tokens.SetClock(now)
}

// Register creates a pending-activation account and signs it in. The
// email pre-check is a fast path for a friendly message only; the
// unique index is what actually resolves concurrent registrations.
func (s *AuthService) Register(ctx context.Context, email string, password string) (*model.AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, model.ErrInvalidInput
	}
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}

	if taken, err := s.users.ExistsByEmail(ctx, email); err == nil && taken {
		return nil, model.ErrEmailTaken
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC()
	user := &model.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		IsAdmin:      false,
		IsActive:     false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.issueTokens(*user)
}

// Login verifies credentials and issues a fresh token pair. Unknown
// email and wrong password surface identically so the endpoint cannot
// be used to enumerate accounts. Activation state does not gate login;
// it gates profile access.
func (s *AuthService) Login(ctx context.Context, email string, password string) (*model.AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.ErrInvalidCredentials
		}
		return nil, err
	}

	if !CheckPassword(password, user.PasswordHash) {
		return nil, model.ErrInvalidCredentials
	}

	return s.issueTokens(user)
}

// SetupUsername completes account activation. It happens exactly once
// per account; the username unique index is authoritative for races,
// the ExistsByUsername pre-check only improves the error message.
func (s *AuthService) SetupUsername(ctx context.Context, userID string, username string) (*model.AuthResult, error) {
	username = strings.TrimSpace(username)

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.IsActive {
		return nil, model.ErrAlreadyActive
	}

	if len(username) < minUsernameLen {
		return nil, model.ErrUsernameTooShort
	}

	if taken, err := s.users.ExistsByUsername(ctx, username); err == nil && taken {
		return nil, model.ErrUsernameTaken
	}

	if err := s.users.Activate(ctx, userID, username); err != nil {
		return nil, err
	}

	user, err = s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.issueTokens(user)
}

// Me returns the sanitized profile. This is the one place activation
// state is enforced.
func (s *AuthService) Me(ctx context.Context, userID string) (model.PublicUser, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return model.PublicUser{}, err
	}

	if !user.IsActive {
		return model.PublicUser{}, model.ErrNotActivated
	}

	return user.Public(), nil
}

// ChangePassword replaces the stored hash and bumps the account's
// token-valid-after mark, so access tokens issued before the change
// stop verifying.
func (s *AuthService) ChangePassword(ctx context.Context, userID string, oldPassword string, newPassword string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if !CheckPassword(oldPassword, user.PasswordHash) {
		return model.ErrInvalidCredentials
	}

	if err := ValidatePassword(newPassword); err != nil {
		return err
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return s.users.UpdatePassword(ctx, userID, hash, s.now().UTC())
}

// Refresh exchanges a live refresh token for a new access token and a
// rotated refresh token. The presented token is revoked for the rest
// of its lifetime, so replaying it after rotation fails.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*model.RefreshResult, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, model.ErrTokenMissing
	}

	revoked, err := s.blacklist.Contains(ctx, refreshBlacklistPrefix+refreshToken)
	if err != nil {
		return nil, fmt.Errorf("check refresh revocation: %w", err)
	}
	if revoked {
		return nil, model.ErrTokenRevoked
	}

	claims, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	if err := s.blacklist.Add(ctx, refreshBlacklistPrefix+refreshToken, claims.ExpiresAt.Sub(s.now())); err != nil {
		return nil, fmt.Errorf("revoke rotated refresh token: %w", err)
	}

	access, _, err := s.tokens.IssueAccessToken(user.ID, user.IsAdmin)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}

	refresh, refreshExp, err := s.tokens.IssueRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}

	return &model.RefreshResult{
		AccessToken:      access,
		RefreshToken:     refresh,
		RefreshExpiresAt: refreshExp,
	}, nil
}

// Logout revokes whichever tokens were presented. Each entry's TTL is
// the token's remaining lifetime, so the deny-list never outlives the
// tokens it shadows. Logout is idempotent and never fails on invalid
// or absent tokens.
func (s *AuthService) Logout(ctx context.Context, accessToken string, refreshToken string) {
	now := s.now()

	if accessToken != "" {
		if claims, err := s.tokens.VerifyAccessToken(accessToken); err == nil {
			if err := s.blacklist.Add(ctx, accessBlacklistPrefix+accessToken, claims.ExpiresAt.Sub(now)); err != nil {
				slog.Warn("failed to blacklist access token", "error", err)
			}
		}
	}

	if refreshToken != "" {
		if claims, err := s.tokens.VerifyRefreshToken(refreshToken); err == nil {
			if err := s.blacklist.Add(ctx, refreshBlacklistPrefix+refreshToken, claims.ExpiresAt.Sub(now)); err != nil {
				slog.Warn("failed to blacklist refresh token", "error", err)
			}
		}
	}
}

// VerifyAccess is the per-request check behind the auth middleware:
// revocation list first, then signature and expiry, then the
// account's token-valid-after mark.
func (s *AuthService) VerifyAccess(ctx context.Context, accessToken string) (*model.AccessClaims, error) {
	revoked, err := s.blacklist.Contains(ctx, accessBlacklistPrefix+accessToken)
	if err != nil {
		return nil, fmt.Errorf("check access revocation: %w", err)
	}
	if revoked {
		return nil, model.ErrTokenRevoked
	}

	claims, err := s.tokens.VerifyAccessToken(accessToken)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.ErrTokenRevoked
		}
		return nil, err
	}

	if claims.IssuedAt.Before(user.TokenValidAfter) {
		return nil, model.ErrTokenRevoked
	}

	return claims, nil
}

func (s *AuthService) issueTokens(user model.User) (*model.AuthResult, error) {
	access, _, err := s.tokens.IssueAccessToken(user.ID, user.IsAdmin)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}

	refresh, refreshExp, err := s.tokens.IssueRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}

	return &model.AuthResult{
		User:             user.Public(),
		AccessToken:      access,
		RefreshToken:     refresh,
		RefreshExpiresAt: refreshExp,
	}, nil
}
