package identityprovider

import (
	"context"
	"fmt"

	"github.com/jhoicas/storefront-api/internal/application/authentication"
	"github.com/jhoicas/storefront-api/internal/domain/identity"
	"github.com/jhoicas/storefront-api/pkg/config"
)

// claimNames traduce la configuración de nombres de claim al mapa que usa identity.FromNamedClaims.
func claimNames(c config.ClaimNames) map[identity.ClaimKind]string {
	return map[identity.ClaimKind]string{
		identity.ClaimSubject:    c.Subject,
		identity.ClaimEmail:      c.Email,
		identity.ClaimUsername:   c.Username,
		identity.ClaimGivenName:  c.GivenName,
		identity.ClaimFamilyName: c.FamilyName,
	}
}

// New construye el verificador según IDENTITY_MODE. En modo oidc consulta el discovery del emisor.
func New(ctx context.Context, cfg config.IdentityConfig) (authentication.AssertionVerifier, error) {
	switch cfg.Mode {
	case config.IdentityModeHMAC:
		return NewHMACVerifier(cfg)
	case config.IdentityModeOIDC:
		return NewOIDCVerifier(ctx, cfg)
	default:
		return nil, fmt.Errorf("identityprovider: modo desconocido %q", cfg.Mode)
	}
}
