package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/storefront-api/internal/application/authentication"
)

var _ authentication.SessionStore = (*SessionStore)(nil)

const sessionKeyPrefix = "session:"

// SessionStore sesiones del storefront en Redis: un JSON por sesión con TTL igual a su vigencia.
type SessionStore struct {
	client goredis.Cmdable
	now    func() time.Time
}

// NewSessionStore construye el store sobre un cliente ya conectado.
func NewSessionStore(client goredis.Cmdable) *SessionStore {
	return &SessionStore{client: client, now: time.Now}
}

func sessionKey(sessionID string) string {
	return sessionKeyPrefix + sessionID
}

// Create guarda la sesión hasta su ExpiresAt.
func (s *SessionStore) Create(ctx context.Context, sess authentication.Session) error {
	if sess.ID == "" || sess.CustomerGUID == "" {
		return fmt.Errorf("session: id y customer_guid son obligatorios")
	}
	ttl := sess.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return fmt.Errorf("session: expires_at debe ser futuro")
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("session: marshal: %w", err)
	}
	return s.client.Set(ctx, sessionKey(sess.ID), data, ttl).Err()
}

// Get devuelve la sesión o nil, nil si no existe o expiró.
func (s *SessionStore) Get(ctx context.Context, sessionID string) (*authentication.Session, error) {
	val, err := s.client.Get(ctx, sessionKey(sessionID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session: get: %w", err)
	}
	var sess authentication.Session
	if err := json.Unmarshal(val, &sess); err != nil {
		return nil, fmt.Errorf("session: unmarshal: %w", err)
	}
	return &sess, nil
}

// Delete borra la sesión. Borrar una sesión inexistente no es error.
func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, sessionKey(sessionID)).Err()
}
