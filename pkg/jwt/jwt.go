package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims incluye los claims estándar JWT más los campos de la sesión del storefront.
// El Subject es el GUID del cliente; SessionID apunta al registro de sesión en Redis.
type Claims struct {
	jwt.RegisteredClaims
	SessionID  string `json:"sid"`
	Persistent bool   `json:"persistent"`
}

// SessionToken datos que viajan dentro de un token de sesión ya validado.
type SessionToken struct {
	CustomerGUID string
	SessionID    string
	Persistent   bool
	ExpiresAt    time.Time
}

// Generate genera un token de sesión firmado (HS256) atado al GUID del cliente.
func Generate(secret, issuer string, tok SessionToken, issuedAt time.Time) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	if tok.CustomerGUID == "" || tok.SessionID == "" {
		return "", fmt.Errorf("jwt: customer guid y session id son obligatorios")
	}
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   tok.CustomerGUID,
			ID:        tok.SessionID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(tok.ExpiresAt),
		},
		SessionID:  tok.SessionID,
		Persistent: tok.Persistent,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida el token (firma, expiración y emisor) y devuelve sus datos de sesión.
func Parse(secret, issuer, tokenString string) (*SessionToken, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	if claims.Subject == "" || claims.SessionID == "" {
		return nil, fmt.Errorf("claims incompletos")
	}
	out := &SessionToken{
		CustomerGUID: claims.Subject,
		SessionID:    claims.SessionID,
		Persistent:   claims.Persistent,
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}
