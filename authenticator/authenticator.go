package authenticator

import "context"

// Verifier checks the credential presented in an Authorization header.
// It is injected into the auth middleware at process start, so the
// request handlers stay free of credential material and the scheme can
// be swapped without touching them.
type Verifier interface {
	Verify(ctx context.Context, authorization string) bool
}
