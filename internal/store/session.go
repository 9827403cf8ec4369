package store

import (
	"fmt"
	"sync"

	"technest/internal/kv"
	"technest/models"
)

// Sessions tracks the currently authenticated account. The active username
// is persisted under a fixed marker key so the session survives restarts;
// a missing or stale marker is recovered silently as "no session".
type Sessions struct {
	accounts *Credentials
	kv       *kv.Store

	mu      sync.Mutex
	current *models.Account
}

// NewSessions creates a session manager over the given credential store.
func NewSessions(accounts *Credentials, kvs *kv.Store) *Sessions {
	return &Sessions{accounts: accounts, kv: kvs}
}

// Login validates the credentials, persists the session marker and returns
// the account with its current role.
func (s *Sessions) Login(username, password string) (*models.Account, error) {
	a, err := s.accounts.Authenticate(username, password)
	if err != nil {
		return nil, err
	}
	if err := s.kv.Put(authBucket, currentUserKey, []byte(a.Username)); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	s.set(a)
	return a, nil
}

// Logout clears the in-memory session and removes the persisted marker.
func (s *Sessions) Logout() error {
	s.set(nil)
	if err := s.kv.Delete(authBucket, currentUserKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Restore reads the persisted marker on process start. A marker that points
// at a still-existing account restores the session; a missing or stale
// marker leaves the session empty without error.
func (s *Sessions) Restore() (*models.Account, error) {
	raw, err := s.kv.Get(authBucket, currentUserKey)
	if err != nil {
		return nil, fmt.Errorf("read session marker: %w", err)
	}
	if raw == nil {
		return nil, nil
	}
	a, err := s.accounts.Find(string(raw))
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, nil
	}
	s.set(a)
	return a, nil
}

// Current returns a copy of the active account, or nil when logged out.
func (s *Sessions) Current() *models.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	a := *s.current
	return &a
}

// ChangePassword replaces the active account's password after verifying the
// current one. A wrong current password leaves the stored one untouched.
func (s *Sessions) ChangePassword(currentPassword, newPassword string) error {
	cur := s.Current()
	if cur == nil {
		return fmt.Errorf("%w: no active session", ErrInvalidCredentials)
	}
	if _, err := s.accounts.Authenticate(cur.Username, currentPassword); err != nil {
		return err
	}
	return s.accounts.UpdatePassword(cur.Username, newPassword)
}

// DeleteOwnAccount removes the active account and clears the session.
// It always targets the caller's own account; the reserved administrator is
// rejected by the credential store's policy check.
func (s *Sessions) DeleteOwnAccount() error {
	cur := s.Current()
	if cur == nil {
		return fmt.Errorf("%w: no active session", ErrInvalidCredentials)
	}
	if err := s.accounts.Remove(cur.Username); err != nil {
		return err
	}
	return s.Logout()
}

// ClearIf logs out the session if it belongs to username. Used when an
// administrator deletes an account so no session outlives its account.
func (s *Sessions) ClearIf(username string) error {
	cur := s.Current()
	if cur == nil || cur.Username != username {
		return nil
	}
	return s.Logout()
}

func (s *Sessions) set(a *models.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a == nil {
		s.current = nil
		return
	}
	cp := *a
	s.current = &cp
}
