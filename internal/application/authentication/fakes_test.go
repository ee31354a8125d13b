package authentication_test

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/jhoicas/storefront-api/internal/application/authentication"
	"github.com/jhoicas/storefront-api/internal/domain"
	"github.com/jhoicas/storefront-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Directorio de clientes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeCustomers struct {
	mu        sync.Mutex
	byGUID    map[uuid.UUID]*entity.Customer
	roles     map[string]entity.CustomerRole
	nextID    int64
	lookups   int
	creates   int
	updates   int
	lookupErr error
	createErr error
	updateErr error

	// beforeCreate simula otra petición que inserta el mismo GUID justo antes.
	beforeCreate func(c *entity.Customer)
}

func newFakeCustomers() *fakeCustomers {
	return &fakeCustomers{
		byGUID: make(map[uuid.UUID]*entity.Customer),
		roles: map[string]entity.CustomerRole{
			entity.RoleRegistered: {ID: 3, Name: "Registered", SystemName: entity.RoleRegistered, Active: true},
			entity.RoleGuests:     {ID: 4, Name: "Guests", SystemName: entity.RoleGuests, Active: true},
		},
		nextID: 1,
	}
}

func (f *fakeCustomers) seed(c *entity.Customer) *entity.Customer {
	f.mu.Lock()
	defer f.mu.Unlock()
	c.ID = f.nextID
	f.nextID++
	stored := *c
	f.byGUID[c.GUID] = &stored
	return c
}

func (f *fakeCustomers) stored(guid uuid.UUID) *entity.Customer {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.byGUID[guid]
}

func (f *fakeCustomers) GetByGUID(_ context.Context, guid uuid.UUID) (*entity.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookups++
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	c, ok := f.byGUID[guid]
	if !ok {
		return nil, nil
	}
	cp := *c
	cp.Roles = entity.NewRoleSet(c.Roles.Slice()...)
	return &cp, nil
}

func (f *fakeCustomers) Create(_ context.Context, c *entity.Customer) error {
	if f.beforeCreate != nil {
		hook := f.beforeCreate
		f.beforeCreate = nil
		hook(c)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	if f.createErr != nil {
		return f.createErr
	}
	if _, exists := f.byGUID[c.GUID]; exists {
		return domain.ErrDuplicate
	}
	c.ID = f.nextID
	f.nextID++
	stored := *c
	f.byGUID[c.GUID] = &stored
	return nil
}

func (f *fakeCustomers) Update(_ context.Context, c *entity.Customer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates++
	if f.updateErr != nil {
		return f.updateErr
	}
	stored := *c
	f.byGUID[c.GUID] = &stored
	return nil
}

func (f *fakeCustomers) GetRoleBySystemName(_ context.Context, systemName string) (*entity.CustomerRole, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.roles[systemName]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Almacén de atributos en memoria
// ──────────────────────────────────────────────────────────────────────────────

type attrKey struct {
	customerID int64
	key        string
}

type fakeAttributes struct {
	values map[attrKey]string
	saves  int
	getErr error
}

func newFakeAttributes() *fakeAttributes {
	return &fakeAttributes{values: make(map[attrKey]string)}
}

func (f *fakeAttributes) Save(_ context.Context, customerID int64, key, value string) error {
	f.saves++
	f.values[attrKey{customerID, key}] = value
	return nil
}

func (f *fakeAttributes) Get(_ context.Context, customerID int64, key string) (string, bool, error) {
	if f.getErr != nil {
		return "", false, f.getErr
	}
	v, ok := f.values[attrKey{customerID, key}]
	return v, ok, nil
}

func (f *fakeAttributes) value(customerID int64, key string) (string, bool) {
	v, ok := f.values[attrKey{customerID, key}]
	return v, ok
}

// ──────────────────────────────────────────────────────────────────────────────
// Almacén de sesiones en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeSessions struct {
	sessions map[string]authentication.Session
	deletes  int
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{sessions: make(map[string]authentication.Session)}
}

func (f *fakeSessions) Create(_ context.Context, s authentication.Session) error {
	f.sessions[s.ID] = s
	return nil
}

func (f *fakeSessions) Get(_ context.Context, id string) (*authentication.Session, error) {
	s, ok := f.sessions[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (f *fakeSessions) Delete(_ context.Context, id string) error {
	f.deletes++
	delete(f.sessions, id)
	return nil
}
