package auth

import (
	"testing"

	"technest/models"
)

func TestPolicy_ReservedNameIsCaseInsensitive(t *testing.T) {
	p := NewPolicy("bilous")
	for _, name := range []string{"bilous", "Bilous", "BILOUS"} {
		if !p.IsReserved(name) {
			t.Fatalf("expected %q to be reserved", name)
		}
		if p.RoleFor(name) != models.RoleAdmin {
			t.Fatalf("expected admin role for %q", name)
		}
	}
	if p.IsReserved("bilous2") {
		t.Fatalf("bilous2 must not be reserved")
	}
	if p.RoleFor("alice") != models.RoleUser {
		t.Fatalf("expected user role for alice")
	}
}

func TestPolicy_RolePinnedForReserved(t *testing.T) {
	p := NewPolicy("bilous")
	if p.CanSetRole("bilous", models.RoleUser) {
		t.Fatalf("reserved admin must not be demotable")
	}
	if !p.CanSetRole("bilous", models.RoleAdmin) {
		t.Fatalf("setting admin on reserved account is a no-op, not a violation")
	}
	if !p.CanSetRole("alice", models.RoleAdmin) || !p.CanSetRole("alice", models.RoleUser) {
		t.Fatalf("other accounts must be freely promotable/demotable")
	}
}

func TestPolicy_Normalize(t *testing.T) {
	p := NewPolicy("bilous")
	a := p.Normalize(models.Account{Username: "Bilous", Role: models.RoleUser})
	if a.Role != models.RoleAdmin {
		t.Fatalf("reserved account not pinned to admin: %+v", a)
	}
	b := p.Normalize(models.Account{Username: "alice"})
	if b.Role != models.RoleUser {
		t.Fatalf("missing role not defaulted to user: %+v", b)
	}
}

func TestPolicy_Deletion(t *testing.T) {
	p := NewPolicy("bilous")
	if p.CanDelete("bilous") || p.CanDelete("BILOUS") {
		t.Fatalf("reserved account must never be deletable")
	}
	if !p.CanDelete("alice") {
		t.Fatalf("regular accounts must be deletable")
	}
	if p.CanAdminDelete("alice", "alice") {
		t.Fatalf("admin self-deletion must be rejected")
	}
	if !p.CanAdminDelete("bilous", "alice") {
		t.Fatalf("admin deletion of another account must be allowed")
	}
	if p.CanAdminDelete("alice", "bilous") {
		t.Fatalf("admin deletion of the reserved account must be rejected")
	}
}
