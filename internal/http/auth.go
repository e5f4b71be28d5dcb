package http

import (
	"net/http"
	"strings"

	"github.com/mfreund/ipam-console/internal/auth"
)

// openPaths are reachable without a bearer token.
var openPaths = []string{
	"/healthz",
	"/readyz",
	"/swagger/",
	"/api/v1/auth/login",
}

func isOpenPath(path string) bool {
	for _, p := range openPaths {
		if path == p || (strings.HasSuffix(p, "/") && strings.HasPrefix(path, p)) {
			return true
		}
	}
	return false
}

// authMiddleware verifies the Authorization header on every closed
// route and attaches the resulting principal to the request context.
// A nil Authenticator turns verification off entirely.
func (a *API) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.Authenticator == nil || isOpenPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			a.respond(w, r, http.StatusUnauthorized, ErrorResponse{Error: "missing bearer token"})
			return
		}

		principal, err := a.Authenticator.Authenticate(r.Context(), token)
		if err != nil {
			a.Logger.DebugContext(r.Context(), "token rejected", "err", err.Error())
			a.respond(w, r, http.StatusUnauthorized, ErrorResponse{Error: "invalid token"})
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), principal)))
	})
}

// @Summary Log in with username and password
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Credentials"
// @Success 200 {object} TokenResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/v1/auth/login [post]
func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	if a.Credentials == nil {
		a.badRequest(w, r, "password login is handled by the identity provider")
		return
	}

	req, err := decode[LoginRequest](r)
	defer r.Body.Close()
	if err != nil {
		a.badRequest(w, r, "bad request")
		return
	}

	token, err := a.Credentials.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	a.respond(w, r, http.StatusOK, TokenResponse{AccessToken: token})
}

// @Summary Change the password of the authenticated user
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body ChangePasswordRequest true "Current and new password"
// @Success 204 "No content"
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/auth/change-password [post]
func (a *API) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	if a.Credentials == nil {
		a.badRequest(w, r, "passwords are handled by the identity provider")
		return
	}

	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		a.respond(w, r, http.StatusUnauthorized, ErrorResponse{Error: "missing bearer token"})
		return
	}

	req, err := decode[ChangePasswordRequest](r)
	defer r.Body.Close()
	if err != nil {
		a.badRequest(w, r, "bad request")
		return
	}
	if req.NewPassword == "" {
		a.badRequest(w, r, "new password must not be empty")
		return
	}

	if err := a.Credentials.ChangePassword(r.Context(), principal.Subject, req.CurrentPassword, req.NewPassword); err != nil {
		a.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// @Summary Who am I
// @Tags auth
// @Produce json
// @Success 200 {object} MeResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/auth/me [get]
func (a *API) handleMe(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		a.respond(w, r, http.StatusUnauthorized, ErrorResponse{Error: "missing bearer token"})
		return
	}
	a.respond(w, r, http.StatusOK, MeResponse{Username: principal.Subject})
}
