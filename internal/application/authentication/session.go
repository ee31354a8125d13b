package authentication

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/storefront-api/internal/application/dto"
	"github.com/jhoicas/storefront-api/internal/domain"
	"github.com/jhoicas/storefront-api/internal/domain/entity"
	"github.com/jhoicas/storefront-api/internal/domain/repository"
	"github.com/jhoicas/storefront-api/pkg/jwt"
	"github.com/jhoicas/storefront-api/pkg/logger"
)

// SessionConfig configuración para la emisión de tokens de sesión.
type SessionConfig struct {
	Secret        string
	Issuer        string
	TTL           time.Duration
	PersistentTTL time.Duration
}

// SessionService emite y revoca sesiones ligadas al GUID de un cliente ya reconciliado.
type SessionService struct {
	store     SessionStore
	customers repository.CustomerRepository
	cfg       SessionConfig
	log       *logger.Logger
	now       func() time.Time
}

// NewSessionService construye el servicio de sesiones. customers se consulta al validar
// para que una sesión no sobreviva a la desactivación o baja del cliente.
func NewSessionService(store SessionStore, customers repository.CustomerRepository, cfg SessionConfig, log *logger.Logger) *SessionService {
	if log == nil {
		log = logger.Nop()
	}
	return &SessionService{store: store, customers: customers, cfg: cfg, log: log.Named("sessions"), now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (s *SessionService) WithClock(now func() time.Time) *SessionService {
	s.now = now
	return s
}

// SignIn crea la sesión del cliente. persistent elige la vigencia larga.
// Devuelve domain.ErrForbidden si el cliente no puede autenticarse.
func (s *SessionService) SignIn(ctx context.Context, customer *entity.Customer, persistent bool) (*dto.SessionResponse, error) {
	if !customer.CanAuthenticate() {
		return nil, domain.ErrForbidden
	}
	now := s.now()
	ttl := s.cfg.TTL
	if persistent {
		ttl = s.cfg.PersistentTTL
	}
	sess := Session{
		ID:           uuid.NewString(),
		CustomerGUID: customer.GUID.String(),
		Persistent:   persistent,
		CreatedAt:    now,
		ExpiresAt:    now.Add(ttl),
	}
	token, err := jwt.Generate(s.cfg.Secret, s.cfg.Issuer, jwt.SessionToken{
		CustomerGUID: sess.CustomerGUID,
		SessionID:    sess.ID,
		Persistent:   persistent,
		ExpiresAt:    sess.ExpiresAt,
	}, now)
	if err != nil {
		return nil, fmt.Errorf("firmar token de sesión: %w", err)
	}
	if err := s.store.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("guardar sesión: %w", err)
	}

	s.log.Info().
		Str("customer_guid", sess.CustomerGUID).
		Str("session_id", sess.ID).
		Bool("persistent", persistent).
		Msg("sesión iniciada")

	return &dto.SessionResponse{
		Token:      token,
		ExpiresAt:  sess.ExpiresAt,
		Persistent: persistent,
	}, nil
}

// Validate comprueba firma y vigencia del token, que la sesión no haya sido revocada y que
// el cliente siga pudiendo autenticarse. Si el cliente fue desactivado, eliminado o ya no
// existe, la sesión se revoca y se devuelve domain.ErrForbidden.
func (s *SessionService) Validate(ctx context.Context, token string) (*Session, error) {
	parsed, err := jwt.Parse(s.cfg.Secret, s.cfg.Issuer, token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	sess, err := s.store.Get(ctx, parsed.SessionID)
	if err != nil {
		return nil, err
	}
	if sess == nil || sess.CustomerGUID != parsed.CustomerGUID {
		return nil, domain.ErrSessionNotFound
	}

	guid, err := uuid.Parse(sess.CustomerGUID)
	if err != nil {
		return nil, domain.ErrSessionNotFound
	}
	customer, err := s.customers.GetByGUID(ctx, guid)
	if err != nil {
		return nil, err
	}
	if !customer.CanAuthenticate() {
		if err := s.store.Delete(ctx, sess.ID); err != nil {
			return nil, fmt.Errorf("borrar sesión: %w", err)
		}
		s.log.Info().
			Str("customer_guid", sess.CustomerGUID).
			Str("session_id", sess.ID).
			Msg("sesión revocada: el cliente ya no puede autenticarse")
		return nil, domain.ErrForbidden
	}
	return sess, nil
}

// SignOut revoca la sesión del token. Revocar una sesión inexistente no es error.
func (s *SessionService) SignOut(ctx context.Context, token string) error {
	parsed, err := jwt.Parse(s.cfg.Secret, s.cfg.Issuer, token)
	if err != nil {
		return domain.ErrUnauthorized
	}
	if err := s.store.Delete(ctx, parsed.SessionID); err != nil {
		return fmt.Errorf("borrar sesión: %w", err)
	}
	s.log.Info().Str("session_id", parsed.SessionID).Msg("sesión cerrada")
	return nil
}
