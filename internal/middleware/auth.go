package middleware

import (
	"context"
	"net/http"
	"strings"

	"instiwise-api/internal/model"
)

type accessVerifier interface {
	VerifyAccess(ctx context.Context, accessToken string) (*model.AccessClaims, error)
}

type contextKey string

const (
	authClaimsContextKey contextKey = "auth_claims"
	accessTokenContextKey contextKey = "access_token"
)

type AuthMiddleware struct {
	verifier accessVerifier
}

func NewAuthMiddleware(verifier accessVerifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

// RequireAuth checks the bearer token against the revocation list, the
// signature, and the account's token-valid-after mark. The raw token
// is kept in the context so logout can revoke the exact string it was
// called with.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := strings.TrimSpace(r.Header.Get("Authorization"))
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			writeAuthError(w, http.StatusUnauthorized, model.TagAuthError, "You are not authenticated")
			return
		}

		token := strings.TrimSpace(header[7:])
		claims, err := m.verifier.VerifyAccess(r.Context(), token)
		if err != nil {
			writeAuthError(w, http.StatusUnauthorized, model.TagAuthError, "Invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), authClaimsContextKey, claims)
		ctx = context.WithValue(ctx, accessTokenContextKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			writeAuthError(w, http.StatusUnauthorized, model.TagAuthError, "You are not authenticated")
			return
		}

		if !claims.IsAdmin {
			writeAuthError(w, http.StatusForbidden, model.TagForbidden, "You are not authorized")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func ClaimsFromContext(ctx context.Context) (*model.AccessClaims, bool) {
	claims, ok := ctx.Value(authClaimsContextKey).(*model.AccessClaims)
	return claims, ok
}

func AccessTokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(accessTokenContextKey).(string)
	return token, ok
}

func writeAuthError(w http.ResponseWriter, status int, tag string, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = jsonEncode(w, model.APIResponse{
		Success: false,
		Message: message,
		Error:   tag,
	})
}
