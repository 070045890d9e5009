package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"parcels/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const (
	// RoleAdmin may mutate rules and departments and decide insurance reviews.
	RoleAdmin = "admin"

	// RoleInsurance may decide insurance reviews only.
	RoleInsurance = "insurance"
)

const (
	contextKeyRole     = "auth.role"
	contextKeySubject  = "auth.subject"
	bearerPrefix       = "Bearer "
	authorizationLabel = "Authorization"
)

// ErrNoOperatorIdentity is returned when a handler needs the caller's
// identity but the token carried no usable subject claim.
var ErrNoOperatorIdentity = errors.New("token carries no operator identity")

// AuthMiddleware validates bearer tokens and enforces role claims.
// Token issuance is external; this service only verifies HMAC-signed tokens
// against a shared secret and reads the "role" and "sub" claims.
type AuthMiddleware struct {
	secret []byte
}

// NewAuthMiddleware creates the middleware for a shared signing secret.
func NewAuthMiddleware(secret string) *AuthMiddleware {
	return &AuthMiddleware{secret: []byte(secret)}
}

// RequireRole returns an echo middleware that rejects requests whose token
// is missing, invalid, or whose role claim is not in the allowed set.
func (m *AuthMiddleware) RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := m.parseToken(ctx.Request().Header.Get(authorizationLabel))
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, Error{
					Code:    http.StatusUnauthorized,
					Message: "Invalid or missing token",
				})
			}

			role, _ := claims["role"].(string)
			if !roleAllowed(role, roles) {
				return ctx.JSON(http.StatusForbidden, Error{
					Code:    http.StatusForbidden,
					Message: "Insufficient role",
				})
			}

			ctx.Set(contextKeyRole, role)
			if subject, ok := claims["sub"].(string); ok {
				ctx.Set(contextKeySubject, subject)
			}

			return next(ctx)
		}
	}
}

func (m *AuthMiddleware) parseToken(header string) (jwt.MapClaims, error) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return nil, errors.New("missing bearer token")
	}

	token, err := jwt.Parse(
		strings.TrimPrefix(header, bearerPrefix),
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %s", t.Method.Alg())
			}
			return m.secret, nil
		},
	)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}

func roleAllowed(role string, allowed []string) bool {
	for _, a := range allowed {
		if role == a {
			return true
		}
	}
	return false
}

// operatorID extracts the caller's identity from the token subject claim.
// Insurance decisions record it on the parcel.
func operatorID(ctx echo.Context) (kernel.UUID, error) {
	subject, _ := ctx.Get(contextKeySubject).(string)
	if subject == "" {
		return kernel.UUID{}, ErrNoOperatorIdentity
	}

	id, err := kernel.UUIDFromString(subject)
	if err != nil {
		return kernel.UUID{}, fmt.Errorf("%w: %w", ErrNoOperatorIdentity, err)
	}

	return id, nil
}
