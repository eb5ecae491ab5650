package authenticator

import (
	"context"
	"errors"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"
)

// BearerVerifier validates OIDC bearer tokens against an issuer. It is
// the drop-in replacement for BasicVerifier when a deployment fronts
// the API with a real identity provider.
type BearerVerifier struct {
	verifier *oidc.IDTokenVerifier
}

// BearerConfig holds OIDC issuer configuration.
type BearerConfig struct {
	Issuer   string
	ClientID string
}

// NewBearerVerifier discovers the issuer and prepares a token verifier.
func NewBearerVerifier(ctx context.Context, cfg BearerConfig) (*BearerVerifier, error) {
	if cfg.Issuer == "" {
		return nil, errors.New("issuer is required")
	}
	if cfg.ClientID == "" {
		return nil, errors.New("client ID is required")
	}

	provider, err := oidc.NewProvider(ctx, cfg.Issuer)
	if err != nil {
		return nil, err
	}

	return &BearerVerifier{
		verifier: provider.Verifier(&oidc.Config{ClientID: cfg.ClientID}),
	}, nil
}

// Verify checks a "Bearer <token>" authorization header value.
func (v *BearerVerifier) Verify(ctx context.Context, authorization string) bool {
	token, ok := strings.CutPrefix(authorization, "Bearer ")
	if !ok {
		return false
	}

	_, err := v.verifier.Verify(ctx, token)
	return err == nil
}
