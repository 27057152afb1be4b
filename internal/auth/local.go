package auth

import (
	"virtboard/internal/utils/crypto"
)

// LocalProvider keeps bcrypt-hashed credentials in memory. It backs the
// server's Basic-auth checks when no external identity source is wired in.
type LocalProvider struct {
	users map[string]string // username -> bcrypt hash
	cost  int
}

// NewLocalProvider creates an empty provider hashing with the given bcrypt cost.
func NewLocalProvider(cost int) *LocalProvider {
	return &LocalProvider{
		users: make(map[string]string),
		cost:  cost,
	}
}

// AddUser hashes the password and registers the user, replacing any
// existing entry. Call during boot, before the provider is installed;
// LocalProvider is read-only afterwards.
func (p *LocalProvider) AddUser(username, password string) error {
	hash, err := crypto.HashPassword(password, p.cost)
	if err != nil {
		return err
	}
	p.users[username] = hash
	return nil
}

// Authenticate implements Provider.
func (p *LocalProvider) Authenticate(username, password string) error {
	hash, ok := p.users[username]
	if !ok {
		return ErrBadCredentials
	}
	if err := crypto.CheckPassword(password, hash); err != nil {
		return ErrBadCredentials
	}
	return nil
}
