package store

import (
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"technest/internal/auth"
	"technest/internal/kv"
	"technest/models"
)

// Storage keys. The whole account set lives under one key and is rewritten
// on every mutation; the current-session marker holds just a username.
const (
	authBucket     = "auth"
	usersKey       = "auth_users"
	currentUserKey = "auth_current_user"
)

// Credentials is the credential store: one record per registered account,
// persisted as a single JSON document in the key-value store. Usernames are
// unique with exact-match comparison; only the reserved-administrator check
// in the policy is case-insensitive.
type Credentials struct {
	kv     *kv.Store
	policy *auth.Policy
}

// NewCredentials creates a credential store over the given key-value store.
func NewCredentials(kvs *kv.Store, policy *auth.Policy) *Credentials {
	return &Credentials{kv: kvs, policy: policy}
}

func (c *Credentials) load() ([]models.Account, error) {
	raw, err := c.kv.Get(authBucket, usersKey)
	if err != nil {
		return nil, fmt.Errorf("read accounts: %w", err)
	}
	if raw == nil {
		return nil, nil
	}
	var accounts []models.Account
	if err := json.Unmarshal(raw, &accounts); err != nil {
		return nil, fmt.Errorf("decode accounts: %w", err)
	}
	// Re-derive roles on every read so stale stored data cannot demote the
	// reserved administrator.
	for i := range accounts {
		accounts[i] = c.policy.Normalize(accounts[i])
	}
	return accounts, nil
}

func (c *Credentials) save(accounts []models.Account) error {
	if accounts == nil {
		accounts = []models.Account{}
	}
	raw, err := json.Marshal(accounts)
	if err != nil {
		return fmt.Errorf("encode accounts: %w", err)
	}
	// Whole-set write, last writer wins.
	if err := c.kv.Put(authBucket, usersKey, raw); err != nil {
		return fmt.Errorf("write accounts: %w", err)
	}
	return nil
}

// Register creates a new account. The reserved administrator name gets the
// admin role; everyone else starts as a regular user.
func (c *Credentials) Register(username, password string) (*models.Account, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrInvalidInput)
	}
	accounts, err := c.load()
	if err != nil {
		return nil, err
	}
	for _, a := range accounts {
		if a.Username == username {
			return nil, ErrAlreadyExists
		}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	acct := models.Account{
		Username:     username,
		PasswordHash: string(hash),
		Role:         c.policy.RoleFor(username),
	}
	if err := c.save(append(accounts, acct)); err != nil {
		return nil, err
	}
	return &acct, nil
}

// Find returns the account with the exact username, or nil if absent.
func (c *Credentials) Find(username string) (*models.Account, error) {
	accounts, err := c.load()
	if err != nil {
		return nil, err
	}
	for i := range accounts {
		if accounts[i].Username == username {
			a := accounts[i]
			return &a, nil
		}
	}
	return nil, nil
}

// List returns all registered accounts in registration order.
func (c *Credentials) List() ([]models.Account, error) {
	return c.load()
}

// Authenticate checks username and password and returns the account with its
// current role. Both an unknown username and a wrong password yield
// ErrInvalidCredentials.
func (c *Credentials) Authenticate(username, password string) (*models.Account, error) {
	a, err := c.Find(strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return a, nil
}

// UpdatePassword replaces the stored password for the given account.
func (c *Credentials) UpdatePassword(username, newPassword string) error {
	if newPassword == "" {
		return fmt.Errorf("%w: new password must not be empty", ErrInvalidInput)
	}
	accounts, err := c.load()
	if err != nil {
		return err
	}
	for i := range accounts {
		if accounts[i].Username != username {
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		accounts[i].PasswordHash = string(hash)
		return c.save(accounts)
	}
	return ErrNotFound
}

// UpdateRole changes an account's role. Demoting the reserved administrator
// is forbidden.
func (c *Credentials) UpdateRole(username string, role models.Role) error {
	if !role.Valid() {
		return fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
	}
	if !c.policy.CanSetRole(username, role) {
		return fmt.Errorf("%w: %s is always an administrator", ErrForbidden, c.policy.ReservedUsername())
	}
	accounts, err := c.load()
	if err != nil {
		return err
	}
	for i := range accounts {
		if accounts[i].Username != username {
			continue
		}
		accounts[i].Role = role
		return c.save(accounts)
	}
	return ErrNotFound
}

// Remove deletes an account. The reserved administrator can never be removed.
func (c *Credentials) Remove(username string) error {
	if !c.policy.CanDelete(username) {
		return fmt.Errorf("%w: %s cannot be deleted", ErrForbidden, c.policy.ReservedUsername())
	}
	accounts, err := c.load()
	if err != nil {
		return err
	}
	kept := accounts[:0]
	for _, a := range accounts {
		if a.Username != username {
			kept = append(kept, a)
		}
	}
	if len(kept) == len(accounts) {
		return ErrNotFound
	}
	return c.save(kept)
}
