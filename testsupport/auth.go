package testsupport

import (
	"virtboard/internal/auth"
)

// Default credential the fake user store knows about and the request
// helpers fall back to when no Authorization header is supplied.
const (
	TestUser     = "admin"
	TestPassword = "letmein!"
)

// fakeProvider authenticates against a fixed plaintext user table.
type fakeProvider map[string]string

func (f fakeProvider) Authenticate(username, password string) error {
	pw, ok := f[username]
	if !ok || pw != password {
		return auth.ErrBadCredentials
	}
	return nil
}

// PatchAuth overrides the authentication subsystem with a simple check
// against an internal map of users and passwords (TestUser/TestPassword).
// The returned restore function reinstalls the previous provider; register
// it with a Rollback or t.Cleanup.
func PatchAuth() (restore func()) {
	return PatchAuthUsers(map[string]string{TestUser: TestPassword})
}

// PatchAuthUsers is PatchAuth with a caller-supplied credential table.
func PatchAuthUsers(users map[string]string) (restore func()) {
	prev := auth.SetProvider(fakeProvider(users))
	return func() {
		auth.SetProvider(prev)
	}
}
