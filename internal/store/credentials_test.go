package store

import (
	"errors"
	"testing"

	"technest/internal/auth"
	"technest/internal/testutil"
	"technest/models"
)

func newCredentials(t *testing.T) *Credentials {
	t.Helper()
	return NewCredentials(testutil.OpenKV(t), auth.NewPolicy("bilous"))
}

func TestRegister_DuplicateLeavesStoreUnchanged(t *testing.T) {
	c := newCredentials(t)

	if _, err := c.Register("alice", "pw1"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := c.Register("alice", "pw2"); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}

	list, err := c.List()
	if err != nil || len(list) != 1 {
		t.Fatalf("list: %v len=%d", err, len(list))
	}
	// The first registration's password still authenticates.
	if _, err := c.Authenticate("alice", "pw2"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for pw2, got %v", err)
	}
	a, err := c.Authenticate("alice", "pw1")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if a.Role != models.RoleUser {
		t.Fatalf("role = %q, want user", a.Role)
	}
}

func TestRegister_RejectsEmptyInput(t *testing.T) {
	c := newCredentials(t)
	if _, err := c.Register("", "pw"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty username, got %v", err)
	}
	if _, err := c.Register("alice", ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty password, got %v", err)
	}
}

func TestRegister_ReservedAdminGetsAdminRole(t *testing.T) {
	c := newCredentials(t)

	a, err := c.Register("bilous", "x")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if a.Role != models.RoleAdmin {
		t.Fatalf("role = %q, want admin", a.Role)
	}

	if err := c.UpdateRole("bilous", models.RoleUser); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for demotion, got %v", err)
	}
	if err := c.Remove("bilous"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for deletion, got %v", err)
	}

	got, _ := c.Find("bilous")
	if got == nil || got.Role != models.RoleAdmin {
		t.Fatalf("reserved admin mutated: %+v", got)
	}
}

func TestRegister_ReservedCheckIsCaseInsensitive(t *testing.T) {
	c := newCredentials(t)
	a, err := c.Register("BILOUS", "x")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if a.Role != models.RoleAdmin {
		t.Fatalf("role = %q, want admin for case-variant reserved name", a.Role)
	}
}

func TestUpdateRole(t *testing.T) {
	c := newCredentials(t)
	if _, err := c.Register("alice", "pw"); err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := c.UpdateRole("alice", models.RoleAdmin); err != nil {
		t.Fatalf("promote: %v", err)
	}
	a, _ := c.Find("alice")
	if a.Role != models.RoleAdmin {
		t.Fatalf("role not updated: %+v", a)
	}
	if err := c.UpdateRole("alice", models.RoleUser); err != nil {
		t.Fatalf("demote: %v", err)
	}
	if err := c.UpdateRole("ghost", models.RoleAdmin); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := c.UpdateRole("alice", models.Role("owner")); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown role, got %v", err)
	}
}

func TestUpdatePassword(t *testing.T) {
	c := newCredentials(t)
	if _, err := c.Register("alice", "old"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := c.UpdatePassword("ghost", "x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := c.UpdatePassword("alice", "new"); err != nil {
		t.Fatalf("update password: %v", err)
	}
	if _, err := c.Authenticate("alice", "old"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("old password still accepted")
	}
	if _, err := c.Authenticate("alice", "new"); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}
}

func TestRemove(t *testing.T) {
	c := newCredentials(t)
	if _, err := c.Register("alice", "pw"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := c.Remove("ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := c.Remove("alice"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	a, err := c.Find("alice")
	if err != nil || a != nil {
		t.Fatalf("account still findable after removal: %+v err=%v", a, err)
	}
}

func TestLoad_NormalizesStaleRoles(t *testing.T) {
	kvs := testutil.OpenKV(t)
	c := NewCredentials(kvs, auth.NewPolicy("bilous"))
	// Simulate an older persisted set where the reserved account was demoted
	// and another account has no role at all.
	raw := []byte(`[{"username":"bilous","password_hash":"h","role":"user"},{"username":"alice","password_hash":"h"}]`)
	if err := kvs.Put("auth", "auth_users", raw); err != nil {
		t.Fatalf("seed: %v", err)
	}
	b, _ := c.Find("bilous")
	if b == nil || b.Role != models.RoleAdmin {
		t.Fatalf("reserved account not re-pinned to admin: %+v", b)
	}
	a, _ := c.Find("alice")
	if a == nil || a.Role != models.RoleUser {
		t.Fatalf("missing role not defaulted: %+v", a)
	}
}
