package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/samber/lo"
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleVendor   Role = "vendor"
	RoleCourier  Role = "courier"
)

func (r Role) valid() bool {
	return r == RoleCustomer || r == RoleVendor || r == RoleCourier
}

const identityKey = "identity"

var errMissingToken = echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")

// Identity is the authenticated caller. Vendors and couriers act under the id
// of their vendor or courier record.
type Identity struct {
	ID   kernel.UUID
	Role Role
}

// Claims is the bearer token body: the subject is the caller id.
type Claims struct {
	Role Role `json:"role"`
	jwt.RegisteredClaims
}

// Authenticator verifies HS256 bearer tokens issued for the three roles.
type Authenticator struct {
	secret []byte
	issuer string
}

func NewAuthenticator(secret, issuer string) (*Authenticator, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	return &Authenticator{secret: []byte(secret), issuer: issuer}, nil
}

// Issue signs a token for subject. It backs the token CLI command and tests.
func (a *Authenticator) Issue(subject kernel.UUID, role Role, ttl time.Duration) (string, error) {
	if err := subject.Validate(); err != nil {
		return "", err
	}
	if !role.valid() {
		return "", errors.New("unknown role " + string(role))
	}

	now := time.Now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject.String(),
			Issuer:    a.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

func (a *Authenticator) parse(raw string) (Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
	}
	if !claims.Role.valid() {
		return Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "token has no valid role")
	}
	id, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "token subject is not an id")
	}
	return Identity{ID: id, Role: claims.Role}, nil
}

func bearer(c echo.Context) (string, bool) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", false
	}
	return strings.TrimSpace(token), true
}

// Required rejects requests without a valid token. When roles are given the
// caller must hold one of them.
func (a *Authenticator) Required(roles ...Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearer(c)
			if !ok {
				return errMissingToken
			}
			identity, err := a.parse(raw)
			if err != nil {
				return err
			}
			if len(roles) > 0 && !lo.Contains(roles, identity.Role) {
				return echo.NewHTTPError(http.StatusForbidden, "role "+string(identity.Role)+" may not call this endpoint")
			}
			c.Set(identityKey, identity)
			return next(c)
		}
	}
}

// Optional attaches the identity when a valid token is present and lets
// anonymous requests through. A present but invalid token is still rejected.
func (a *Authenticator) Optional() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearer(c)
			if !ok {
				return next(c)
			}
			identity, err := a.parse(raw)
			if err != nil {
				return err
			}
			c.Set(identityKey, identity)
			return next(c)
		}
	}
}

func identityOf(c echo.Context) (Identity, bool) {
	identity, ok := c.Get(identityKey).(Identity)
	return identity, ok
}

// caller is used behind Required, where the identity is always set.
func caller(c echo.Context) Identity {
	identity, _ := identityOf(c)
	return identity
}
