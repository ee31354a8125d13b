package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/storefront-api/internal/domain/entity"
	"github.com/jhoicas/storefront-api/internal/domain/repository"
)

var _ repository.RoleRepository = (*RoleRepo)(nil)

// RoleRepo administración del catálogo customer_roles.
type RoleRepo struct {
	q Querier
}

// NewRoleRepository construye el adaptador.
func NewRoleRepository(q Querier) *RoleRepo {
	return &RoleRepo{q: q}
}

// List devuelve todos los roles ordenados por nombre de sistema.
func (r *RoleRepo) List(ctx context.Context) ([]*entity.CustomerRole, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, name, system_name, active, is_system_role
		FROM customer_roles ORDER BY system_name`)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()
	var list []*entity.CustomerRole
	for rows.Next() {
		var role entity.CustomerRole
		if err := rows.Scan(&role.ID, &role.Name, &role.SystemName, &role.Active, &role.IsSystemRole); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		list = append(list, &role)
	}
	return list, rows.Err()
}

// Upsert crea el rol o actualiza nombre y banderas si ya existe; asigna role.ID.
func (r *RoleRepo) Upsert(ctx context.Context, role *entity.CustomerRole) error {
	query := `
		INSERT INTO customer_roles (name, system_name, active, is_system_role)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (system_name) DO UPDATE
		SET name = EXCLUDED.name, active = EXCLUDED.active, is_system_role = EXCLUDED.is_system_role
		RETURNING id`
	if err := r.q.QueryRow(ctx, query, role.Name, role.SystemName, role.Active, role.IsSystemRole).Scan(&role.ID); err != nil {
		return fmt.Errorf("upsert role %s: %w", role.SystemName, err)
	}
	return nil
}
