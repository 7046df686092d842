package identity

import (
	"fmt"
	"strings"

	"github.com/contactdesk/contactdesk-backend/pkg/config"
	"github.com/contactdesk/contactdesk-backend/pkg/security"
)

// credentialScheme isolates how the stored password is produced and checked,
// so a real credential backend can replace the plaintext comparison without
// touching the session flow.
type credentialScheme interface {
	// Seal transforms a raw password into its stored representation.
	Seal(password string) (string, error)
	// Verify reports whether the raw password matches the stored value.
	Verify(password, stored string) (bool, error)
}

func schemeFromConfig(cfg config.AuthConfig) (credentialScheme, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Scheme)) {
	case "", config.AuthSchemePlain:
		return plainScheme{}, nil
	case config.AuthSchemeArgon2id:
		return argonScheme{cfg: cfg}, nil
	}
	return nil, fmt.Errorf("unknown credential scheme %q", cfg.Scheme)
}

// plainScheme stores and compares the password verbatim. This is the
// original single-tenant behavior and the default.
type plainScheme struct{}

func (plainScheme) Seal(password string) (string, error) {
	return password, nil
}

func (plainScheme) Verify(password, stored string) (bool, error) {
	return password == stored, nil
}

// argonScheme stores an Argon2id hash instead of the raw password.
type argonScheme struct {
	cfg config.AuthConfig
}

func (s argonScheme) Seal(password string) (string, error) {
	return security.HashPassword(password, s.cfg)
}

func (s argonScheme) Verify(password, stored string) (bool, error) {
	ok, err := security.VerifyPassword(password, stored)
	if err != nil {
		// a malformed stored hash is a mismatch, not a server fault
		return false, nil
	}
	return ok, nil
}
