package models

// Role classifies an account's privileges.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// Account is a locally registered user. The full account set is persisted
// as one JSON document in the key-value store; there is no accounts table.
type Account struct {
	Username     string `json:"username"`
	PasswordHash string `json:"password_hash"`
	Role         Role   `json:"role"`
}

// Public returns a copy safe to hand to API clients (no password hash).
func (a Account) Public() PublicAccount {
	return PublicAccount{Username: a.Username, Role: a.Role}
}

// PublicAccount is the externally visible view of an Account.
type PublicAccount struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
}
