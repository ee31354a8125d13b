package identityprovider

import (
	"context"
	"errors"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"

	"github.com/jhoicas/storefront-api/internal/application/authentication"
	"github.com/jhoicas/storefront-api/internal/domain"
	"github.com/jhoicas/storefront-api/internal/domain/identity"
	"github.com/jhoicas/storefront-api/pkg/config"
)

var _ authentication.AssertionVerifier = (*OIDCVerifier)(nil)

// OIDCVerifier valida ID tokens de un proveedor OpenID Connect (Keycloak, Google, Entra...).
// Solo entrega hechos de identidad; no crea clientes ni sesiones.
type OIDCVerifier struct {
	verifier *oidc.IDTokenVerifier
	names    map[identity.ClaimKind]string
}

// NewOIDCVerifier inicializa el proveedor por discovery. Audience es el client_id esperado.
func NewOIDCVerifier(ctx context.Context, cfg config.IdentityConfig) (*OIDCVerifier, error) {
	if cfg.Issuer == "" || cfg.Audience == "" {
		return nil, errors.New("identityprovider: issuer y audience son obligatorios en modo oidc")
	}
	provider, err := oidc.NewProvider(ctx, cfg.Issuer)
	if err != nil {
		return nil, fmt.Errorf("identityprovider: discovery de %s: %w", cfg.Issuer, err)
	}
	return &OIDCVerifier{
		verifier: provider.Verifier(&oidc.Config{ClientID: cfg.Audience}),
		names:    claimNames(cfg.Claims),
	}, nil
}

// Verify valida el ID token contra las claves publicadas por el emisor.
func (v *OIDCVerifier) Verify(ctx context.Context, rawToken string) (*identity.Assertion, error) {
	idToken, err := v.verifier.Verify(ctx, rawToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	var raw map[string]any
	if err := idToken.Claims(&raw); err != nil {
		return nil, fmt.Errorf("identityprovider: leer claims: %w", err)
	}
	return identity.FromNamedClaims(raw, v.names), nil
}
