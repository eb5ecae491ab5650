package authenticator

import (
	"context"
	"crypto/subtle"
	"encoding/base64"
	"strings"
)

// BasicVerifier validates a static username/password pair presented
// via HTTP basic auth.
type BasicVerifier struct {
	username string
	password string
}

// NewBasicVerifier creates a verifier for the given credential pair.
func NewBasicVerifier(username, password string) *BasicVerifier {
	return &BasicVerifier{username: username, password: password}
}

// Verify checks a "Basic <base64>" authorization header value.
func (v *BasicVerifier) Verify(_ context.Context, authorization string) bool {
	encoded, ok := strings.CutPrefix(authorization, "Basic ")
	if !ok {
		return false
	}

	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return false
	}

	username, password, ok := strings.Cut(string(decoded), ":")
	if !ok {
		return false
	}

	userMatch := subtle.ConstantTimeCompare([]byte(username), []byte(v.username)) == 1
	passMatch := subtle.ConstantTimeCompare([]byte(password), []byte(v.password)) == 1
	return userMatch && passMatch
}
