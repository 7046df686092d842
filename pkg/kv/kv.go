// Package kv provides the string-keyed persistence layer backing the
// identity and contact stores. Values are opaque strings (JSON for the
// structured keys); a missing key is reported as ErrNotFound and callers
// are expected to degrade to empty state rather than fail.
package kv

import (
	"context"
	"errors"
)

// Keys used by the application stores.
const (
	KeyUser       = "user"
	KeyIsLoggedIn = "isLoggedIn"
	KeyContacts   = "contacts"
)

// ErrNotFound signals an absent key.
var ErrNotFound = errors.New("kv: key not found")

// Store is the persistence surface shared by every backend.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Del(ctx context.Context, keys ...string) error
	Ping(ctx context.Context) error
	Close() error
}
