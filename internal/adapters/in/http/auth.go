package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"supplyhub/internal/core/domain/model/actor"
	"supplyhub/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const actorContextKey = "actor"

var errMissingToken = errors.New("missing bearer token")

// Claims is the token payload: the subject is the actor id and role is one
// of vendor, supplier or delivery_partner.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Authenticator verifies HS256 bearer tokens and puts the caller's actor
// into the echo context.
type Authenticator struct {
	secret []byte
}

func NewAuthenticator(secret string) *Authenticator {
	return &Authenticator{secret: []byte(secret)}
}

// SignToken issues a token for a. Used by ordersctl and tests.
func (a *Authenticator) SignToken(who actor.Actor, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: who.Role().String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   who.ID().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

func (a *Authenticator) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			who, err := a.authenticate(c.Request())
			if err != nil {
				return c.JSON(http.StatusUnauthorized, Error{
					Code:    http.StatusUnauthorized,
					Kind:    kindUnauthenticated,
					Message: err.Error(),
				})
			}
			c.Set(actorContextKey, who)
			return next(c)
		}
	}
}

func (a *Authenticator) authenticate(r *http.Request) (actor.Actor, error) {
	raw := extractToken(r)
	if raw == "" {
		return actor.Actor{}, errMissingToken
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return actor.Actor{}, err
	}

	id, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return actor.Actor{}, errors.New("token subject is not an actor id")
	}
	role, err := actor.ParseRole(claims.Role)
	if err != nil {
		return actor.Actor{}, errors.New("token role is not recognized")
	}
	return actor.NewActor(id, role)
}

// extractToken prefers the Authorization header. EventSource clients cannot
// set headers, so the access_token cookie and query parameter are accepted
// as well.
func extractToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	if cookie, err := r.Cookie("access_token"); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return r.URL.Query().Get("access_token")
}

// actorFrom returns the authenticated caller. Routes behind the
// authenticator always have one.
func actorFrom(c echo.Context) actor.Actor {
	who, _ := c.Get(actorContextKey).(actor.Actor)
	return who
}
