package middleware

import (
	"net/http"

	"github.com/tasktrail/tasktrail/authenticator"
)

// RequireAuth rejects any request whose Authorization header does not
// pass the injected verifier. It runs before path or body parsing so
// unauthenticated requests never reach an operation.
func RequireAuth(verifier authenticator.Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !verifier.Verify(r.Context(), r.Header.Get("Authorization")) {
				writeJSONError(w, http.StatusUnauthorized, "Unauthorized access. Please provide valid credentials.")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
