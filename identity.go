package backoffice

import (
	"strings"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/atelier-sites/backoffice/storage/model"
)

// ErrInvalidCredentials is returned for any failed login attempt. It is
// deliberately the same for unknown usernames and wrong passwords.
var ErrInvalidCredentials = errors.New("invalid credentials")

// fallbackIdentity is used when neither the settings document nor the
// environment provide admin credentials. The hash is a bcrypt hash of the
// initial password; it should be replaced through the settings endpoint on
// first login.
var fallbackIdentity = model.AdminIdentity{
	Username:     "admin",
	PasswordHash: "$2a$10$nZmwD97Pp08pqH0N5P4IT.m1toKh8rN5pzpaBvfYmqMseY6fTBfo.",
}

type envIdentity struct {
	Username string `envconfig:"ADMIN_USERNAME"`
	Password string `envconfig:"ADMIN_PASSWORD"`
	// PasswordHash takes precedence over Password when both are set.
	PasswordHash string `envconfig:"ADMIN_PASSWORD_HASH"`
}

// IdentityResolver resolves the current admin identity. Resolution walks
// three tiers: the live settings document, then credentials from the
// environment, then a built-in fallback. It never fails; the fallback tier
// is always complete.
type IdentityResolver struct {
	store model.AdminConfigStore
	env   *model.AdminIdentity
}

// NewIdentityResolver creates an IdentityResolver over the passed settings
// store. Environment credentials are read and hashed once at construction.
func NewIdentityResolver(store model.AdminConfigStore) *IdentityResolver {
	r := &IdentityResolver{store: store}
	var env envIdentity
	if err := envconfig.Process("", &env); err != nil {
		log.WithError(err).Warn("could not read admin credentials from environment")
		return r
	}
	if env.Username == "" || (env.Password == "" && env.PasswordHash == "") {
		return r
	}
	hash := env.PasswordHash
	if hash == "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(env.Password), bcrypt.DefaultCost)
		if err != nil {
			log.WithError(err).Warn("could not hash admin password from environment")
			return r
		}
		hash = string(hashed)
	}
	r.env = &model.AdminIdentity{
		Username:     env.Username,
		PasswordHash: hash,
	}
	return r
}

// Resolve returns the current admin identity. The settings document is
// consulted on every call so credential changes apply without a restart.
func (r *IdentityResolver) Resolve() model.AdminIdentity {
	if r.store != nil {
		id, err := r.store.AdminIdentity()
		if err != nil {
			log.WithError(err).Warn("could not load admin identity from settings")
		} else if id != nil && id.Complete() {
			return *id
		}
	}
	if r.env != nil {
		return *r.env
	}
	return fallbackIdentity
}

// Authenticate checks the passed credentials against the resolved identity
// and returns the canonical username on success. The username comparison is
// case-insensitive and ignores surrounding whitespace; the password is
// compared against the stored bcrypt hash.
func (r *IdentityResolver) Authenticate(username, password string) (string, error) {
	admin := r.Resolve()
	normalized := strings.ToLower(strings.TrimSpace(username))
	if normalized != strings.ToLower(admin.Username) {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return admin.Username, nil
}
