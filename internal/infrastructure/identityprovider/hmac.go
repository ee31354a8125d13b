package identityprovider

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jhoicas/storefront-api/internal/application/authentication"
	"github.com/jhoicas/storefront-api/internal/domain"
	"github.com/jhoicas/storefront-api/internal/domain/identity"
	"github.com/jhoicas/storefront-api/pkg/config"
)

var _ authentication.AssertionVerifier = (*HMACVerifier)(nil)

// HMACVerifier valida aserciones firmadas con un secreto compartido (HS256/384/512).
// Pensado para un gateway o IdP interno que firma los claims del cliente.
type HMACVerifier struct {
	secret []byte
	names  map[identity.ClaimKind]string
	opts   []jwt.ParserOption
}

// NewHMACVerifier construye el verificador. Issuer y Audience se exigen solo si están configurados.
func NewHMACVerifier(cfg config.IdentityConfig) (*HMACVerifier, error) {
	if cfg.HMACSecret == "" {
		return nil, errors.New("identityprovider: secreto HMAC vacío")
	}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{
			jwt.SigningMethodHS256.Alg(), jwt.SigningMethodHS384.Alg(), jwt.SigningMethodHS512.Alg(),
		}),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(cfg.Audience))
	}
	return &HMACVerifier{
		secret: []byte(cfg.HMACSecret),
		names:  claimNames(cfg.Claims),
		opts:   opts,
	}, nil
}

// Verify comprueba firma y vigencia y devuelve la aserción. Un token inválido envuelve domain.ErrUnauthorized.
func (v *HMACVerifier) Verify(_ context.Context, rawToken string) (*identity.Assertion, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(rawToken, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return v.secret, nil
	}, v.opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	if !token.Valid {
		return nil, domain.ErrUnauthorized
	}
	return identity.FromNamedClaims(claims, v.names), nil
}
