package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"technest/models"
)

// ErrForbidden is returned when the caller lacks the required role.
var ErrForbidden = errors.New("only admin can perform this action")

// AccountLookup is the subset of the credential store needed to re-derive
// the caller's current role.
type AccountLookup interface {
	Find(username string) (*models.Account, error)
}

// Middleware returns HTTP middleware that extracts and validates a Bearer
// token from the Authorization header and injects the Principal into the
// request context. Requests without a valid token get 401.
func Middleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, err := ParseFromHeader(r.Header.Get("Authorization"), secret)
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "auth error: " + err.Error()})
				return
			}
			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
		})
	}
}

// RequirePrincipal ensures a principal is present in context.
func RequirePrincipal(ctx context.Context) (*Principal, error) {
	p, ok := FromContext(ctx)
	if !ok {
		return nil, errors.New("missing principal")
	}
	return p, nil
}

// RequireAdmin ensures the caller is an admin according to the credential
// store right now, not according to the token's role claim. This prevents a
// stale or spoofed token from carrying admin rights after a demotion.
func RequireAdmin(ctx context.Context, accounts AccountLookup) (*Principal, error) {
	p, err := RequirePrincipal(ctx)
	if err != nil {
		return nil, err
	}
	if accounts == nil {
		return nil, errors.New("account lookup not configured")
	}
	a, err := accounts.Find(p.Name)
	if err != nil {
		return nil, fmt.Errorf("find account: %w", err)
	}
	if a == nil || a.Role != models.RoleAdmin {
		return nil, ErrForbidden
	}
	return p, nil
}
