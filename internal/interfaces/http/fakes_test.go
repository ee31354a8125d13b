package http_test

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/jhoicas/storefront-api/internal/application/authentication"
	"github.com/jhoicas/storefront-api/internal/domain"
	"github.com/jhoicas/storefront-api/internal/domain/entity"
	"github.com/jhoicas/storefront-api/internal/domain/identity"
)

// staticVerifier acepta solo los tokens registrados.
type staticVerifier map[string]*identity.Assertion

func (v staticVerifier) Verify(_ context.Context, raw string) (*identity.Assertion, error) {
	a, ok := v[raw]
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return a, nil
}

type memCustomers struct {
	mu      sync.Mutex
	byGUID  map[uuid.UUID]*entity.Customer
	roles   map[string]entity.CustomerRole
	lookups int
}

func newMemCustomers() *memCustomers {
	return &memCustomers{
		byGUID: map[uuid.UUID]*entity.Customer{},
		roles: map[string]entity.CustomerRole{
			entity.RoleRegistered: {ID: 3, Name: "Registered", SystemName: entity.RoleRegistered, Active: true},
		},
	}
}

func (m *memCustomers) GetByGUID(_ context.Context, guid uuid.UUID) (*entity.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lookups++
	c, ok := m.byGUID[guid]
	if !ok {
		return nil, nil
	}
	cp := *c
	cp.Roles = entity.NewRoleSet(c.Roles.Slice()...)
	return &cp, nil
}

func (m *memCustomers) Create(_ context.Context, c *entity.Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byGUID[c.GUID]; ok {
		return domain.ErrDuplicate
	}
	c.ID = int64(len(m.byGUID) + 1)
	cp := *c
	m.byGUID[c.GUID] = &cp
	return nil
}

func (m *memCustomers) Update(_ context.Context, c *entity.Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *c
	m.byGUID[c.GUID] = &cp
	return nil
}

func (m *memCustomers) GetRoleBySystemName(_ context.Context, name string) (*entity.CustomerRole, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.roles[name]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

type memAttributes struct {
	mu     sync.Mutex
	values map[int64]map[string]string
}

func newMemAttributes() *memAttributes {
	return &memAttributes{values: map[int64]map[string]string{}}
}

func (m *memAttributes) Save(_ context.Context, id int64, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.values[id] == nil {
		m.values[id] = map[string]string{}
	}
	m.values[id][key] = value
	return nil
}

func (m *memAttributes) Get(_ context.Context, id int64, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[id][key]
	return v, ok, nil
}

type memSessions struct {
	mu       sync.Mutex
	sessions map[string]authentication.Session
}

func newMemSessions() *memSessions {
	return &memSessions{sessions: map[string]authentication.Session{}}
}

func (m *memSessions) Create(_ context.Context, s authentication.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

func (m *memSessions) Get(_ context.Context, id string) (*authentication.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *memSessions) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}
