package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	jwt "github.com/golang-jwt/jwt/v5"

	"technest/internal/db"
	"technest/internal/kv"
)

// OpenInMemoryDB opens an in-memory SQLite database and applies migrations.
// The name keeps shared-cache databases of different tests apart.
func OpenInMemoryDB(t *testing.T, name string) *sql.DB {
	t.Helper()
	d, err := db.Open("file:" + name + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

// OpenKV opens a key-value store in a per-test temp directory.
func OpenKV(t *testing.T) *kv.Store {
	t.Helper()
	s, err := kv.Open(filepath.Join(t.TempDir(), "test.kv"))
	if err != nil {
		t.Fatalf("open test kv: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// BearerToken returns a signed HS256 token with the minimal claims the app uses.
func BearerToken(t *testing.T, secret, name, role string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"name": name,
		"role": role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}
