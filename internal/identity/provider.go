package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid custom token")

// Identity is a stable per-session player id.
type Identity struct {
	ID        string
	Anonymous bool
}

type Provider interface {
	SignIn(ctx context.Context) (*Identity, error)
}

type anonymousProvider struct{}

func NewAnonymousProvider() Provider {
	return &anonymousProvider{}
}

func (that *anonymousProvider) SignIn(ctx context.Context) (*Identity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &Identity{ID: uuid.NewString(), Anonymous: true}, nil
}

// tokenProvider signs in with an HS256 token whose subject is the player id.
type tokenProvider struct {
	logger   *slog.Logger
	token    string
	secret   []byte
	fallback Provider
}

// NewTokenProvider - falls back to the given provider when the token does not verify.
func NewTokenProvider(logger *slog.Logger, token, secret string, fallback Provider) Provider {
	return &tokenProvider{
		logger:   logger.With("component", "token_provider"),
		token:    token,
		secret:   []byte(secret),
		fallback: fallback,
	}
}

func (that *tokenProvider) SignIn(ctx context.Context) (*Identity, error) {
	log := that.logger.With("method", "SignIn")

	id, err := that.verify()
	if err == nil {
		log.Info("signed in with custom token")
		return &Identity{ID: id}, nil
	}

	if that.fallback == nil {
		return nil, err
	}

	log.Warn("custom token failed, falling back to anonymous", "error", err)

	return that.fallback.SignIn(ctx)
}

func (that *tokenProvider) verify() (string, error) {
	if that.token == "" {
		return "", fmt.Errorf("%w: empty token", ErrInvalidToken)
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(that.token, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return that.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if claims.Subject == "" {
		return "", fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	return claims.Subject, nil
}

// IssueToken - signs a custom token for the player id.
func IssueToken(secret, playerID string) (string, error) {
	claims := jwt.RegisteredClaims{Subject: playerID}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return token, nil
}
