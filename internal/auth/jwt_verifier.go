package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"docshare/internal/domain"
	"docshare/internal/domain/models"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
)

// SessionVerifier implements JWTVerifier for the backend's session tokens.
// Keys come either from a JWKS endpoint (RS256/ES256) or a shared HS256 secret.
type SessionVerifier struct {
	keyfunc jwt.Keyfunc
	methods []string
	logger  *slog.Logger
}

// NewJWKSVerifier verifies tokens against public keys from a JWKS endpoint.
// keyfunc caches and refreshes keys based on HTTP cache headers.
func NewJWKSVerifier(ctx context.Context, jwksURL string, logger *slog.Logger) (JWTVerifier, error) {
	if jwksURL == "" {
		return nil, errors.New("JWKS URL cannot be empty")
	}

	jwks, err := keyfunc.NewDefaultCtx(ctx, []string{jwksURL})
	if err != nil {
		return nil, fmt.Errorf("failed to create JWKS client: %w", err)
	}

	logger.Info("JWT verifier initialized", "mode", "jwks", "jwks_url", jwksURL)

	return &SessionVerifier{
		keyfunc: jwks.Keyfunc,
		methods: []string{"RS256", "ES256"},
		logger:  logger,
	}, nil
}

// NewSecretVerifier verifies HS256 tokens signed with a shared secret
func NewSecretVerifier(secret string, logger *slog.Logger) (JWTVerifier, error) {
	if secret == "" {
		return nil, errors.New("JWT secret cannot be empty")
	}

	logger.Info("JWT verifier initialized", "mode", "secret")

	key := []byte(secret)
	return &SessionVerifier{
		keyfunc: func(*jwt.Token) (interface{}, error) { return key, nil },
		methods: []string{"HS256"},
		logger:  logger,
	}, nil
}

// VerifyToken validates a JWT token and extracts session claims
func (v *SessionVerifier) VerifyToken(tokenString string) (*models.SessionClaims, error) {
	// WithValidMethods prevents algorithm confusion
	token, err := jwt.ParseWithClaims(tokenString, &models.SessionClaims{}, v.keyfunc,
		jwt.WithValidMethods(v.methods),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		v.logger.Debug("token parse failed", "error", err.Error())
		return nil, domain.ErrUnauthorized
	}

	if !token.Valid {
		v.logger.Debug("token is invalid after parsing")
		return nil, domain.ErrUnauthorized
	}

	claims, ok := token.Claims.(*models.SessionClaims)
	if !ok {
		v.logger.Error("failed to extract claims from token")
		return nil, domain.ErrUnauthorized
	}

	if claims.GetUserID() == "" {
		v.logger.Debug("token missing user id claim")
		return nil, domain.ErrUnauthorized
	}

	return claims, nil
}

// Close is a no-op; keyfunc manages its own refresh goroutine lifetime via context
func (v *SessionVerifier) Close() error {
	v.logger.Info("JWT verifier closed")
	return nil
}
