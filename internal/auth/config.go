package auth

import "time"

const (
	ModeLocal = "local"
	ModeOIDC  = "oidc"
)

type Config struct {
	Enabled bool
	Mode    string

	// local mode
	Secret   string
	TokenTTL time.Duration

	// oidc mode
	Issuer   string
	Audience string
	JWKSURL  string
}
