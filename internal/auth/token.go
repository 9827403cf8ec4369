package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"technest/models"
)

// Principal represents the authenticated caller from a bearer token.
// Role reflects the role at issue time; authorization checks re-derive the
// current role from the credential store instead of trusting it.
type Principal struct {
	Name string
	Role models.Role
}

type principalKey struct{}

// WithPrincipal stores the principal in context.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// FromContext retrieves the principal from context (if any).
func FromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*Principal)
	return p, ok
}

type tokenClaims struct {
	Name string `json:"name"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// IssueToken signs an HS256 token for the given account.
// A zero ttl produces a token without expiry.
func IssueToken(secret, username string, role models.Role, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("token secret is empty")
	}
	claims := tokenClaims{
		Name: username,
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	if ttl != 0 {
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(ttl))
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseFromHeader extracts and validates a Bearer token from an
// Authorization header value and returns the Principal.
func ParseFromHeader(header, secret string) (*Principal, error) {
	if header == "" {
		return nil, errors.New("missing authorization")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, errors.New("invalid authorization header")
	}
	return parseToken(strings.TrimSpace(parts[1]), secret)
}

// parseToken validates and extracts claims from a signed token.
func parseToken(tokenStr, secret string) (*Principal, error) {
	if secret == "" {
		return nil, errors.New("token secret is empty")
	}
	tok, err := jwt.ParseWithClaims(tokenStr, &tokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		if err == nil {
			err = errors.New("invalid token")
		}
		return nil, err
	}
	c, _ := tok.Claims.(*tokenClaims)
	if c == nil || c.Name == "" {
		return nil, errors.New("invalid claims")
	}
	role := models.Role(strings.ToLower(c.Role))
	if !role.Valid() {
		role = models.RoleUser
	}
	return &Principal{Name: c.Name, Role: role}, nil
}
