package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/mfreund/ipam-console/internal/auth"
	"github.com/mfreund/ipam-console/internal/domain"
)

type HealthChecker interface {
	Ping(ctx context.Context) error
}

type API struct {
	Logger        *slog.Logger
	Health        HealthChecker
	Service       domain.NetworkService
	Authenticator auth.Authenticator
	Credentials   auth.CredentialStore
}

func NewAPI(logger *slog.Logger, health HealthChecker, service domain.NetworkService, authenticator auth.Authenticator, credentials auth.CredentialStore) *API {
	return &API{
		Logger:        logger,
		Health:        health,
		Service:       service,
		Authenticator: authenticator,
		Credentials:   credentials,
	}
}

func (a *API) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", a.handleHealthz)
	mux.HandleFunc("/readyz", a.handleReadyz)
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	mux.HandleFunc("POST /api/v1/auth/login", a.handleLogin)
	mux.HandleFunc("POST /api/v1/auth/change-password", a.handleChangePassword)
	mux.HandleFunc("GET /api/v1/auth/me", a.handleMe)

	mux.HandleFunc("GET /api/v1/subnets", a.handleListSubnets)
	mux.HandleFunc("POST /api/v1/subnets", a.handleCreateSubnet)
	mux.HandleFunc("GET /api/v1/subnets/{id}", a.handleGetSubnet)
	mux.HandleFunc("PATCH /api/v1/subnets/{id}", a.handleUpdateSubnet)
	mux.HandleFunc("DELETE /api/v1/subnets/{id}", a.handleDeleteSubnet)
	mux.HandleFunc("GET /api/v1/subnets/{id}/ips", a.handleListIPs)

	mux.HandleFunc("POST /api/v1/ips", a.handleCreateIP)
	mux.HandleFunc("PATCH /api/v1/ips/{id}", a.handleUpdateIP)
	mux.HandleFunc("DELETE /api/v1/ips/{id}", a.handleDeleteIP)

	mux.HandleFunc("GET /api/v1/export/ips", a.handleExportIPs)
	mux.HandleFunc("POST /api/v1/import/ips", a.handleImportIPs)

	return a.authMiddleware(mux)
}

// respondError translates a domain error into the wire envelope. The
// message is what the console shows the operator, so validation and
// conflict reasons pass through verbatim while internal failures stay
// generic.
func (a *API) respondError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()

	status := http.StatusInternalServerError
	message := "internal server error"
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, domain.ErrConflict):
		status = http.StatusConflict
		message = err.Error()
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, auth.ErrBadCredentials), errors.Is(err, auth.ErrInvalidToken):
		status = http.StatusUnauthorized
		message = err.Error()
	default:
		a.Logger.ErrorContext(ctx, "request failed", "path", r.URL.Path, "err", err.Error())
	}

	if encodeErr := encode(w, r, status, ErrorResponse{Error: message}); encodeErr != nil {
		a.Logger.ErrorContext(ctx, "cant respond to client", "err", encodeErr.Error())
	}
}

func (a *API) respond(w http.ResponseWriter, r *http.Request, status int, v any) {
	if err := encode(w, r, status, v); err != nil {
		a.Logger.ErrorContext(r.Context(), "cant respond to client", "err", err.Error())
	}
}

func (a *API) badRequest(w http.ResponseWriter, r *http.Request, message string) {
	a.respond(w, r, http.StatusBadRequest, ErrorResponse{Error: message})
}
