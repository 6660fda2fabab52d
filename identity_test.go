package backoffice

import (
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/atelier-sites/backoffice/storage/model"
)

type fakeAdminStore struct {
	id  *model.AdminIdentity
	err error
}

func (s fakeAdminStore) AdminIdentity() (*model.AdminIdentity, error) { return s.id, s.err }
func (s fakeAdminStore) SetAdminIdentity(model.AdminIdentity) error   { return nil }

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	return string(hash)
}

func TestResolveUsesStore(t *testing.T) {
	store := fakeAdminStore{
		id: &model.AdminIdentity{Username: "Jane", PasswordHash: mustHash(t, "pw")},
	}
	r := &IdentityResolver{store: store}
	if got := r.Resolve().Username; got != "Jane" {
		t.Errorf("expected stored identity, got username %q", got)
	}
}

func TestResolveFallsBack(t *testing.T) {
	tests := []struct {
		name  string
		store model.AdminConfigStore
	}{
		{"nil store", nil},
		{"empty store", fakeAdminStore{}},
		{"incomplete identity", fakeAdminStore{id: &model.AdminIdentity{Username: "x"}}},
		{"store error", fakeAdminStore{err: model.NotFoundError("settings")}},
	}
	for _, test := range tests {
		r := &IdentityResolver{store: test.store}
		if got := r.Resolve().Username; got != fallbackIdentity.Username {
			t.Errorf("%s: expected fallback identity, got username %q", test.name, got)
		}
	}
}

func TestResolvePrefersStoreOverEnv(t *testing.T) {
	store := fakeAdminStore{
		id: &model.AdminIdentity{Username: "stored", PasswordHash: mustHash(t, "pw")},
	}
	r := &IdentityResolver{
		store: store,
		env:   &model.AdminIdentity{Username: "env", PasswordHash: mustHash(t, "pw")},
	}
	if got := r.Resolve().Username; got != "stored" {
		t.Errorf("expected stored identity to win, got %q", got)
	}
}

func TestResolveEnvBeforeFallback(t *testing.T) {
	r := &IdentityResolver{
		env: &model.AdminIdentity{Username: "env", PasswordHash: mustHash(t, "pw")},
	}
	if got := r.Resolve().Username; got != "env" {
		t.Errorf("expected env identity, got %q", got)
	}
}

func TestNewIdentityResolverEnvTier(t *testing.T) {
	t.Setenv("ADMIN_USERNAME", "envadmin")
	t.Setenv("ADMIN_PASSWORD", "")
	t.Setenv("ADMIN_PASSWORD_HASH", mustHash(t, "from env"))
	r := NewIdentityResolver(nil)
	if got := r.Resolve().Username; got != "envadmin" {
		t.Fatalf("expected env identity, got %q", got)
	}
	if _, err := r.Authenticate("envadmin", "from env"); err != nil {
		t.Errorf("expected env credentials to authenticate: %v", err)
	}
}

func TestAuthenticate(t *testing.T) {
	store := fakeAdminStore{
		id: &model.AdminIdentity{Username: "Jane Doe", PasswordHash: mustHash(t, "correct horse")},
	}
	r := &IdentityResolver{store: store}

	tests := []struct {
		name     string
		username string
		password string
		ok       bool
	}{
		{"exact", "Jane Doe", "correct horse", true},
		{"case insensitive", "jane doe", "correct horse", true},
		{"surrounding whitespace", "  JANE DOE  ", "correct horse", true},
		{"wrong password", "Jane Doe", "wrong", false},
		{"wrong username", "John Doe", "correct horse", false},
		{"empty", "", "", false},
	}
	for _, test := range tests {
		username, err := r.Authenticate(test.username, test.password)
		if test.ok {
			if err != nil {
				t.Errorf("%s: expected success, got %v", test.name, err)
			} else if username != "Jane Doe" {
				t.Errorf("%s: expected canonical username, got %q", test.name, username)
			}
		} else if err == nil {
			t.Errorf("%s: expected authentication to fail", test.name)
		}
	}
}
