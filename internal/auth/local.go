package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/mfreund/ipam-console/internal/domain"
)

const localIssuer = "ipamd"

// localAuthenticator signs and verifies its own HS256 tokens against
// the user table.
type localAuthenticator struct {
	users    domain.UserRepository
	secret   []byte
	tokenTTL time.Duration
}

func NewLocalAuthenticator(users domain.UserRepository, cfg Config) (*localAuthenticator, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("local auth requires a signing secret")
	}
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}

	return &localAuthenticator{
		users:    users,
		secret:   []byte(cfg.Secret),
		tokenTTL: ttl,
	}, nil
}

func (a *localAuthenticator) Login(ctx context.Context, username, password string) (string, error) {
	user, err := a.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", ErrBadCredentials
		}
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", ErrBadCredentials
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iss": localIssuer,
		"sub": user.Username,
		"iat": now.Unix(),
		"exp": now.Add(a.tokenTTL).Unix(),
	})

	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (a *localAuthenticator) ChangePassword(ctx context.Context, username, current, next string) error {
	user, err := a.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrBadCredentials
		}
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)) != nil {
		return ErrBadCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return a.users.UpdatePasswordHash(ctx, user.ID, string(hash))
}

func (a *localAuthenticator) Authenticate(_ context.Context, bearerToken string) (Principal, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(bearerToken, claims,
		func(*jwt.Token) (any, error) { return a.secret, nil },
		jwt.WithLeeway(5*time.Second),
		jwt.WithIssuer(localIssuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil || !token.Valid {
		return Principal{}, ErrInvalidToken
	}

	return Principal{
		Issuer:  stringClaim(claims, "iss"),
		Subject: stringClaim(claims, "sub"),
		Claims:  claims,
	}, nil
}

// EnsureUser creates the bootstrap account when it does not exist yet.
func (a *localAuthenticator) EnsureUser(ctx context.Context, username, password string) error {
	_, err := a.users.FindByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	_, err = a.users.Create(ctx, username, string(hash))
	if errors.Is(err, domain.ErrConflict) {
		return nil
	}
	return err
}

func stringClaim(claims jwt.MapClaims, key string) string {
	value, ok := claims[key].(string)
	if !ok {
		return ""
	}
	return value
}
