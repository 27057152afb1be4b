// Package auth is virtboard's authentication subsystem. A single
// process-global Provider performs credential checks; tests may swap it out
// via SetProvider and restore the previous one afterwards.
package auth

import (
	"errors"
	"sync"
)

// ErrBadCredentials is returned when a username/password pair does not check out.
var ErrBadCredentials = errors.New("bad login")

// ErrNoProvider is returned when Authenticate runs before a provider is installed.
var ErrNoProvider = errors.New("no authentication provider configured")

// Provider checks a username/password pair. Implementations must be safe
// for concurrent use; the server consults the provider on every Basic-auth
// request.
type Provider interface {
	Authenticate(username, password string) error
}

var (
	providerMu sync.RWMutex
	provider   Provider
)

// SetProvider installs p as the process-global provider and returns the
// previous one (nil if none was set). Callers replacing the provider for a
// test should restore the returned value when done.
func SetProvider(p Provider) Provider {
	providerMu.Lock()
	defer providerMu.Unlock()
	prev := provider
	provider = p
	return prev
}

// Authenticate checks the pair against the current provider.
func Authenticate(username, password string) error {
	providerMu.RLock()
	p := provider
	providerMu.RUnlock()

	if p == nil {
		return ErrNoProvider
	}
	return p.Authenticate(username, password)
}
