package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"instiwise-api/internal/model"
)

// TokenService mints and verifies the two JWT classes. Access and
// refresh tokens are signed with distinct secrets so compromise of one
// cannot forge the other. Both are self-contained: validity is
// signature plus expiry, with revocation handled upstream by the
// blacklist.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

func NewTokenService(accessSecret string, refreshSecret string, accessTTL time.Duration, refreshTTL time.Duration) *TokenService {
	return &TokenService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		now:           time.Now,
	}
}

// SetClock replaces the signing clock; tests use it to cross expiry
// boundaries without sleeping.
func (s *TokenService) SetClock(now func() time.Time) {
	s.now = now
}

func (s *TokenService) IssueAccessToken(userID string, isAdmin bool) (string, time.Time, error) {
	now := s.now().UTC()
	exp := now.Add(s.accessTTL)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      userID,
		"is_admin": isAdmin,
		"jti":      uuid.NewString(),
		"iat":      now.Unix(),
		"exp":      exp.Unix(),
	})

	signed, err := token.SignedString(s.accessSecret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

func (s *TokenService) IssueRefreshToken(userID string) (string, time.Time, error) {
	now := s.now().UTC()
	exp := now.Add(s.refreshTTL)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID,
		"jti": uuid.NewString(),
		"iat": now.Unix(),
		"exp": exp.Unix(),
	})

	signed, err := token.SignedString(s.refreshSecret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// VerifyAccessToken checks signature and expiry only; blacklist and
// token-valid-after checks belong to the session layer.
func (s *TokenService) VerifyAccessToken(raw string) (*model.AccessClaims, error) {
	claims, err := s.parse(raw, s.accessSecret)
	if err != nil {
		return nil, err
	}

	isAdmin, _ := claims["is_admin"].(bool)
	out := &model.AccessClaims{IsAdmin: isAdmin}
	out.UserID, out.TokenID, out.IssuedAt, out.ExpiresAt, err = commonClaims(claims)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *TokenService) VerifyRefreshToken(raw string) (*model.RefreshClaims, error) {
	claims, err := s.parse(raw, s.refreshSecret)
	if err != nil {
		return nil, err
	}

	out := &model.RefreshClaims{}
	out.UserID, out.TokenID, out.IssuedAt, out.ExpiresAt, err = commonClaims(claims)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *TokenService) AccessTTL() time.Duration { return s.accessTTL }

func (s *TokenService) RefreshTTL() time.Duration { return s.refreshTTL }

func (s *TokenService) parse(raw string, secret []byte) (jwt.MapClaims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return s.now() }),
		jwt.WithExpirationRequired(),
	)

	parsed, err := parser.Parse(raw, func(token *jwt.Token) (any, error) {
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, model.ErrTokenExpired
		}
		return nil, model.ErrTokenMalformed
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, model.ErrTokenMalformed
	}
	return claims, nil
}

func commonClaims(claims jwt.MapClaims) (sub string, jti string, iat time.Time, exp time.Time, err error) {
	sub, _ = claims["sub"].(string)
	if sub == "" {
		return "", "", time.Time{}, time.Time{}, model.ErrTokenMalformed
	}
	jti, _ = claims["jti"].(string)

	if v, ok := claims["iat"].(float64); ok {
		iat = time.Unix(int64(v), 0).UTC()
	}
	if v, ok := claims["exp"].(float64); ok {
		exp = time.Unix(int64(v), 0).UTC()
	}

	return sub, jti, iat, exp, nil
}
