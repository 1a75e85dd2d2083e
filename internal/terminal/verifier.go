package terminal

import "strings"

// CredentialVerifier decides the PASSWORD branch outcome.
type CredentialVerifier interface {
	Verify(username, password string) bool
}

// VerifierFunc adapts a function to CredentialVerifier.
type VerifierFunc func(username, password string) bool

func (f VerifierFunc) Verify(username, password string) bool { return f(username, password) }

var (
	// DenyAll rejects every login; this is the stock demo behaviour.
	DenyAll  CredentialVerifier = VerifierFunc(func(string, string) bool { return false })
	AllowAll CredentialVerifier = VerifierFunc(func(string, string) bool { return true })
)

// VerifierByName maps a config value to a verifier, defaulting to DenyAll.
func VerifierByName(name string) CredentialVerifier {
	if strings.EqualFold(strings.TrimSpace(name), "allow") {
		return AllowAll
	}
	return DenyAll
}
