package auth

import (
	"context"
	"errors"
)

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrBadCredentials = errors.New("bad username or password")
)

type Principal struct {
	Issuer   string
	Subject  string
	Audience any
	Claims   map[string]any
}

// Authenticator verifies a bearer token presented by a request.
type Authenticator interface {
	Authenticate(ctx context.Context, bearerToken string) (Principal, error)
}

// CredentialStore manages password-based credentials. Only the local
// mode implements it; in OIDC mode login and password changes belong to
// the identity provider.
type CredentialStore interface {
	Login(ctx context.Context, username, password string) (string, error)
	ChangePassword(ctx context.Context, username, current, next string) error
}
