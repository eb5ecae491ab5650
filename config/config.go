package config

import "os"

// Config captures process-level configuration. Values come from the
// environment so main stays lean; .env files are loaded before this
// runs.
type Config struct {
	Addr         string
	DatabasePath string

	// Static credential pair for basic auth. The defaults are for
	// local development and must be overridden in production.
	AuthUsername string
	AuthPassword string

	// When OIDCIssuer is set the basic-auth verifier is swapped for
	// bearer-token verification against that issuer.
	OIDCIssuer   string
	OIDCClientID string
}

// FromEnv builds a Config from environment variables, applying
// development defaults.
func FromEnv() Config {
	return Config{
		Addr:         getenv("TASKTRAIL_ADDR", ":8080"),
		DatabasePath: getenv("TASKTRAIL_DB", "tasktrail.db"),
		AuthUsername: getenv("TASKTRAIL_AUTH_USERNAME", "admin"),
		AuthPassword: getenv("TASKTRAIL_AUTH_PASSWORD", "password123"),
		OIDCIssuer:   os.Getenv("TASKTRAIL_OIDC_ISSUER"),
		OIDCClientID: os.Getenv("TASKTRAIL_OIDC_CLIENT_ID"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
