package auth

import (
	"strings"

	"technest/models"
)

// Policy enforces the invariants around the reserved administrator account:
// its role is pinned to admin, it can never be deleted, and an administrator
// may not delete their own account through the administrative path.
//
// The reserved-name comparison is case-insensitive; every other username
// comparison in the system is exact.
type Policy struct {
	reserved string
}

// NewPolicy creates a Policy with the given reserved administrator username.
func NewPolicy(reservedAdmin string) *Policy {
	return &Policy{reserved: strings.TrimSpace(reservedAdmin)}
}

// ReservedUsername returns the configured reserved administrator name.
func (p *Policy) ReservedUsername() string {
	return p.reserved
}

// IsReserved reports whether username names the reserved administrator.
func (p *Policy) IsReserved(username string) bool {
	return p.reserved != "" && strings.EqualFold(username, p.reserved)
}

// RoleFor returns the role a newly registered account gets.
func (p *Policy) RoleFor(username string) models.Role {
	if p.IsReserved(username) {
		return models.RoleAdmin
	}
	return models.RoleUser
}

// Normalize pins the reserved account to admin and defaults a missing role
// to user. Applied on every read so stale stored data cannot leak a demotion.
func (p *Policy) Normalize(a models.Account) models.Account {
	if p.IsReserved(a.Username) {
		a.Role = models.RoleAdmin
	} else if !a.Role.Valid() {
		a.Role = models.RoleUser
	}
	return a
}

// CanSetRole reports whether the target account may be given the role.
func (p *Policy) CanSetRole(username string, role models.Role) bool {
	if p.IsReserved(username) && role != models.RoleAdmin {
		return false
	}
	return true
}

// CanDelete reports whether the target account may be deleted at all.
func (p *Policy) CanDelete(username string) bool {
	return !p.IsReserved(username)
}

// CanAdminDelete reports whether actor may delete target through the
// administrative path. Self-deletion must go through the self-service path.
func (p *Policy) CanAdminDelete(actor, target string) bool {
	if !p.CanDelete(target) {
		return false
	}
	return actor != target
}
