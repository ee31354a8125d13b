package usecase

import (
	"context"

	"github.com/jhoicas/storefront-api/internal/application/dto"
	"github.com/jhoicas/storefront-api/internal/domain/entity"
	"github.com/jhoicas/storefront-api/internal/domain/repository"
)

// RoleUseCase administración del catálogo de roles de cliente.
type RoleUseCase struct {
	repo repository.RoleRepository
}

// NewRoleUseCase construye el caso de uso.
func NewRoleUseCase(repo repository.RoleRepository) *RoleUseCase {
	return &RoleUseCase{repo: repo}
}

// SeedSystemRoles crea o actualiza los roles de sistema. Sin "Registered" no hay alta de clientes.
// Es idempotente; devuelve los nombres de sistema sembrados.
func (uc *RoleUseCase) SeedSystemRoles(ctx context.Context) ([]string, error) {
	seeded := make([]string, 0, len(entity.SystemRoles))
	for _, r := range entity.SystemRoles {
		role := r
		if err := uc.repo.Upsert(ctx, &role); err != nil {
			return seeded, err
		}
		seeded = append(seeded, role.SystemName)
	}
	return seeded, nil
}

// List devuelve los roles existentes.
func (uc *RoleUseCase) List(ctx context.Context) ([]dto.RoleResponse, error) {
	roles, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RoleResponse, 0, len(roles))
	for _, r := range roles {
		out = append(out, dto.RoleResponse{Name: r.Name, SystemName: r.SystemName, Active: r.Active})
	}
	return out, nil
}
