package authentication

import (
	"context"
	"time"

	"github.com/jhoicas/storefront-api/internal/domain/identity"
)

// AssertionVerifier valida un token emitido por el proveedor de identidad y lo convierte
// en una aserción tipada. Solo entrega hechos; no crea clientes ni sesiones.
type AssertionVerifier interface {
	Verify(ctx context.Context, rawToken string) (*identity.Assertion, error)
}

// Session sesión emitida tras SignIn. Guarda solo punteros de identidad.
type Session struct {
	ID           string    `json:"id"`
	CustomerGUID string    `json:"customer_guid"`
	Persistent   bool      `json:"persistent"`
	CreatedAt    time.Time `json:"created_at"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// SessionStore persistencia de sesiones (Redis en producción).
// Get devuelve nil, nil si la sesión no existe o expiró.
type SessionStore interface {
	Create(ctx context.Context, s Session) error
	Get(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
}
