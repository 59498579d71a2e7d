package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"instiwise-api/internal/middleware"
	"instiwise-api/internal/model"
	"instiwise-api/internal/service"
	"instiwise-api/pkg/apierror"
)

const refreshCookieName = "refresh_token"

type AuthHandler struct {
	service      *service.AuthService
	cookieSecure bool
}

func NewAuthHandler(service *service.AuthService, cookieSecure bool) *AuthHandler {
	return &AuthHandler{service: service, cookieSecure: cookieSecure}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeBadJSON(w)
		return
	}

	result, err := h.service.Register(r.Context(), payload.Email, payload.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	h.deliverTokens(w, r, result)
	writeSuccess(w, http.StatusCreated, "Account created", result, nil)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeBadJSON(w)
		return
	}

	result, err := h.service.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	h.deliverTokens(w, r, result)
	writeSuccess(w, http.StatusOK, "Logged in", result, nil)
}

func (h *AuthHandler) SetupUsername(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return
	}

	var payload model.SetupUsernameRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeBadJSON(w)
		return
	}

	result, err := h.service.SetupUsername(r.Context(), claims.UserID, payload.Username)
	if err != nil {
		writeError(w, err)
		return
	}

	h.deliverTokens(w, r, result)
	writeSuccess(w, http.StatusOK, "Username set", result, nil)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return
	}

	user, err := h.service.Me(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "", user, nil)
}

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return
	}

	var payload model.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeBadJSON(w)
		return
	}

	if err := h.service.ChangePassword(r.Context(), claims.UserID, payload.OldPassword, payload.NewPassword); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Password changed", nil, nil)
}

// Refresh rotates the pair: the presented refresh token is revoked and
// a fresh access plus refresh token come back in its place.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	token := h.refreshTokenFromRequest(r)
	if token == "" {
		writeError(w, apierror.New(model.TagAuthError, "Refresh token required", http.StatusUnauthorized))
		return
	}

	result, err := h.service.Refresh(r.Context(), token)
	if err != nil {
		writeError(w, err)
		return
	}

	if browserClient(r) {
		h.setRefreshCookie(w, result.RefreshToken, result.RefreshExpiresAt)
		result.RefreshToken = ""
	}

	writeSuccess(w, http.StatusOK, "Token refreshed", result, nil)
}

// Logout revokes whatever tokens the request presents and always
// succeeds. The cookie is cleared regardless.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	accessToken, _ := middleware.AccessTokenFromContext(r.Context())
	refreshToken := h.refreshTokenFromRequest(r)

	h.service.Logout(r.Context(), accessToken, refreshToken)
	h.clearRefreshCookie(w)

	writeSuccess(w, http.StatusOK, "Logged out", nil, nil)
}

func (h *AuthHandler) deliverTokens(w http.ResponseWriter, r *http.Request, result *model.AuthResult) {
	if browserClient(r) {
		h.setRefreshCookie(w, result.RefreshToken, result.RefreshExpiresAt)
		result.RefreshToken = ""
	}
}

// refreshTokenFromRequest prefers the JSON body, then falls back to
// the cookie browsers carry.
func (h *AuthHandler) refreshTokenFromRequest(r *http.Request) string {
	if r.Body != nil {
		var payload model.RefreshRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err == nil {
			if token := strings.TrimSpace(payload.RefreshToken); token != "" {
				return token
			}
		}
	}

	cookie, err := r.Cookie(refreshCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func (h *AuthHandler) setRefreshCookie(w http.ResponseWriter, token string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		Path:     "/api/v1/auth",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteStrictMode,
	})
}

func (h *AuthHandler) clearRefreshCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/api/v1/auth",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteStrictMode,
	})
}

// browserClient reports whether the caller wants cookie delivery.
// Mobile and API clients send X-Client-Type and get the refresh token
// in the response body instead.
func browserClient(r *http.Request) bool {
	clientType := strings.ToLower(strings.TrimSpace(r.Header.Get("X-Client-Type")))
	return clientType == "" || clientType == "web"
}
