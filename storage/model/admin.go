package model

// AdminIdentity is the single administrator identity a deployment is gated
// behind. It is resolved at login time and never persisted by the
// authenticator itself; writes go through the settings document.
type AdminIdentity struct {
	Username string `json:"username"`
	// PasswordHash is a bcrypt hash of the admin password.
	PasswordHash string `json:"passwordHash"`
}

// Complete reports whether both fields are set. An incomplete identity is
// skipped by the resolver in favor of the next tier.
func (id AdminIdentity) Complete() bool {
	return id.Username != "" && id.PasswordHash != ""
}

// AdminConfigStore is the credential view onto the settings document,
// decoupled from generic section storage.
type AdminConfigStore interface {
	// AdminIdentity returns the stored identity, or nil when the settings
	// document is missing or carries no complete identity.
	AdminIdentity() (*AdminIdentity, error)
	// SetAdminIdentity writes the identity into the settings document,
	// preserving its other keys.
	SetAdminIdentity(id AdminIdentity) error
}
