package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jhoicas/storefront-api/internal/domain/entity"
)

// CustomerRepository puerto de persistencia del directorio de clientes (DIP).
// GetByGUID y GetRoleBySystemName devuelven nil, nil cuando no hay registro.
type CustomerRepository interface {
	GetByGUID(ctx context.Context, guid uuid.UUID) (*entity.Customer, error)
	// Create inserta el cliente con sus roles y asigna customer.ID.
	// Devuelve domain.ErrDuplicate si el GUID ya existe.
	Create(ctx context.Context, customer *entity.Customer) error
	// Update persiste email y username; no toca Active, Deleted ni fechas.
	Update(ctx context.Context, customer *entity.Customer) error
	GetRoleBySystemName(ctx context.Context, systemName string) (*entity.CustomerRole, error)
}

// RoleRepository administración de roles (siembra y listado).
type RoleRepository interface {
	List(ctx context.Context) ([]*entity.CustomerRole, error)
	// Upsert crea o actualiza el rol por nombre de sistema.
	Upsert(ctx context.Context, role *entity.CustomerRole) error
}
