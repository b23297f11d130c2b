package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/banking_backoffice/internal/apperrors"
	portssvc "github.com/SscSPs/banking_backoffice/internal/core/ports/services"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthConfig holds the token verification settings.
type AuthConfig struct {
	JWTSecret string
	// Issuer, when set, must match the token's iss claim.
	Issuer string
	// DefaultProvider names the identity provider for tokens without an idp claim.
	DefaultProvider string
}

// Claims are the registered claims plus the identity provider of the subject.
type Claims struct {
	IdentityProvider string `json:"idp,omitempty"`
	jwt.RegisteredClaims
}

// AuthMiddleware creates a Gin middleware handler that validates JWT tokens and
// resolves the caller's principal. A valid token whose identity is not bound yet
// proceeds without a principal.
func AuthMiddleware(cfg AuthConfig, resolver portssvc.PrincipalResolverSvc) gin.HandlerFunc {
	parserOpts := []jwt.ParserOption{jwt.WithValidMethods([]string{
		jwt.SigningMethodHS256.Alg(), jwt.SigningMethodHS384.Alg(), jwt.SigningMethodHS512.Alg(),
	})}
	if cfg.Issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(cfg.Issuer))
	}
	parser := jwt.NewParser(parserOpts...)

	return func(c *gin.Context) {
		logger := GetLoggerFromContext(c)

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing")
			AbortWithProblem(c, http.StatusUnauthorized, "Authorization header required")
			return
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			logger.Warn("Authorization header format invalid")
			AbortWithProblem(c, http.StatusUnauthorized, "Authorization header format must be Bearer {token}")
			return
		}

		claims := &Claims{}
		_, err := parser.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (any, error) {
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil {
			logger.Warn("Invalid token", slog.String("error", err.Error()))
			msg := "Invalid token"
			switch {
			case errors.Is(err, jwt.ErrTokenExpired):
				msg = "Token has expired"
			case errors.Is(err, jwt.ErrTokenNotValidYet):
				msg = "Token not valid yet"
			case errors.Is(err, jwt.ErrTokenInvalidIssuer):
				msg = "Token issuer is not accepted"
			}
			AbortWithProblem(c, http.StatusUnauthorized, msg)
			return
		}

		if claims.Subject == "" {
			logger.Warn("Subject missing from valid token")
			AbortWithProblem(c, http.StatusUnauthorized, "Invalid token claims")
			return
		}
		identity := Identity{Provider: claims.IdentityProvider, ExternalID: claims.Subject}
		if identity.Provider == "" {
			identity.Provider = cfg.DefaultProvider
		}
		c.Set(string(identityKey), identity)
		logger = logger.With(slog.String("subject", identity.ExternalID), slog.String("provider", identity.Provider))

		resolved, err := resolver.ResolvePrincipal(c.Request.Context(), identity.Provider, identity.ExternalID)
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Debug("Identity is not bound to a principal")
		case err != nil:
			logger.Error("Failed to resolve principal", slog.String("error", err.Error()))
			AbortWithProblem(c, http.StatusInternalServerError, "failed to resolve principal")
			return
		default:
			logger = logger.With(slog.String("principal_id", resolved.PrincipalID))
			c.Set(string(principalKey), resolved)
			c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), principalKey, resolved))
		}

		WithLogger(c, logger)
		c.Next()
	}
}
